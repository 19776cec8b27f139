package planner

import "github.com/carloacu/sequential-goals-planner-sub001/internal/plannerconfig"

// Configure overrides the planner's tractability bounds from cfg, letting
// a caller (cmd/planner-demo, or a test) tune them via
// PLANNER_MAX_*/PLANNER_DEFAULT_PRIORITY environment variables instead of
// the package defaults.
func Configure(cfg *plannerconfig.Config) {
	if cfg == nil {
		return
	}
	defaultPriority = cfg.DefaultPriority
	maxGroundingCombinations = cfg.MaxGroundingCombinations
	maxSearchDepth = cfg.MaxSearchDepth
	maxDistanceDepth = cfg.MaxDistanceDepth
	maxPlanSteps = cfg.MaxPlanSteps
	maxParallelPlanSteps = cfg.MaxParallelPlanSteps
}

// defaultPriority is the priority goalsToAddInCurrentPriority falls back
// to when the triggering invocation carries no goal context (spec.md's
// Open Question on an empty goal stack, decided in DESIGN.md).
var defaultPriority = plannerconfig.DefaultPriority
