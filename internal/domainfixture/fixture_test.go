package domainfixture

import (
	"testing"
	"time"

	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
	"github.com/carloacu/sequential-goals-planner-sub001/planner"
)

func TestLoad_BuildsPlannableFixture(t *testing.T) {
	now := time.Now()
	fx, err := Load("testdata/delivery.yaml", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := fx.Types.Lookup("robot"); !ok {
		t.Fatal("expected robot type to be declared")
	}

	robotType, _ := fx.Types.Lookup("robot")
	locationType, _ := fx.Types.Lookup("location")
	isAtDock := fact.New("isAt", ontology.NewEntity("robot1", robotType), ontology.NewEntity("dock", locationType))
	if !fx.Problem.WorldState.Has(isAtDock) {
		t.Fatal("expected initial isAt(robot1, dock) fact")
	}

	plan, err := planner.PlanForEveryGoals(fx.Problem, fx.Domain, now, nil, nil)
	if err != nil {
		t.Fatalf("unexpected planning error: %v", err)
	}
	if len(plan) != 1 || plan[0].ActionID != "move" {
		t.Fatalf("expected a single move step, got %v", plan)
	}
}

func TestBuild_UnknownPredicateIsRejected(t *testing.T) {
	cfg := &Config{
		Types:    []TypeConfig{{Name: "robot"}},
		Entities: []EntityConfig{{Name: "robot1", Type: "robot"}},
		Initial:  []FactConfig{{Predicate: "missing", Args: []string{"robot1"}}},
	}
	if _, err := Build(cfg, time.Now()); err == nil {
		t.Fatal("expected an error for an undeclared predicate")
	}
}

func TestBuild_UnknownTypeIsRejected(t *testing.T) {
	cfg := &Config{
		Entities: []EntityConfig{{Name: "robot1", Type: "robot"}},
	}
	if _, err := Build(cfg, time.Now()); err == nil {
		t.Fatal("expected an error for an undeclared entity type")
	}
}
