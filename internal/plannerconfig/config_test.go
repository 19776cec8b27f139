package plannerconfig

import (
	"os"
	"testing"
)

func TestLoad_DefaultsWhenUnset(t *testing.T) {
	os.Unsetenv("PLANNER_MAX_PLAN_STEPS")
	cfg := Load()
	if cfg.MaxPlanSteps != 256 {
		t.Fatalf("expected default MaxPlanSteps 256, got %d", cfg.MaxPlanSteps)
	}
	if cfg.DefaultPriority != DefaultPriority {
		t.Fatalf("expected DefaultPriority %d, got %d", DefaultPriority, cfg.DefaultPriority)
	}
}

func TestLoad_ReadsEnvOverride(t *testing.T) {
	t.Setenv("PLANNER_MAX_SEARCH_DEPTH", "3")
	cfg := Load()
	if cfg.MaxSearchDepth != 3 {
		t.Fatalf("expected MaxSearchDepth 3, got %d", cfg.MaxSearchDepth)
	}
}

func TestLoad_IgnoresMalformedInt(t *testing.T) {
	t.Setenv("PLANNER_MAX_PARALLEL_PLAN_STEPS", "not-a-number")
	cfg := Load()
	if cfg.MaxParallelPlanSteps != 256 {
		t.Fatalf("expected fallback to default 256, got %d", cfg.MaxParallelPlanSteps)
	}
}
