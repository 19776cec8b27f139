package problem

import (
	"sync"
	"testing"

	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
)

func TestHistorical_IncrementAndCount(t *testing.T) {
	h := NewHistorical()
	h.Increment("greet")
	h.Increment("greet")
	h.Increment("checkIn")

	if h.Count("greet") != 2 {
		t.Errorf("expected greet count 2, got %d", h.Count("greet"))
	}
	if h.Count("checkIn") != 1 {
		t.Errorf("expected checkIn count 1, got %d", h.Count("checkIn"))
	}
	if h.Count("never") != 0 {
		t.Errorf("expected unseen action count 0, got %d", h.Count("never"))
	}
}

func TestHistorical_ConcurrentAccess(t *testing.T) {
	h := NewHistorical()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Increment("action")
		}()
	}
	wg.Wait()
	if h.Count("action") != 50 {
		t.Errorf("expected 50 increments to land, got %d", h.Count("action"))
	}
}

func TestProblem_New(t *testing.T) {
	p := New()
	if p.WorldState == nil || p.GoalStack == nil || p.Historical == nil {
		t.Fatal("expected New to populate all three core fields")
	}
	if !p.GoalStack.IsEmpty() {
		t.Fatal("expected a fresh goal stack to be empty")
	}
}

func TestProblem_EntitiesOfType(t *testing.T) {
	reg := ontology.NewRegistry()
	robot, _ := reg.Declare("robot", "")
	other, _ := reg.Declare("gadget", "")

	p := New()
	p.Entities = []ontology.Entity{
		ontology.NewEntity("r2d2", robot),
		ontology.NewEntity("flashlight", other),
	}
	got := p.EntitiesOfType(robot)
	if len(got) != 1 || got[0].Value() != "r2d2" {
		t.Fatalf("expected only r2d2, got %v", got)
	}
}
