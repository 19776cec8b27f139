package notify

import (
	"testing"

	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/goalstack"
	"github.com/carloacu/sequential-goals-planner-sub001/logic"
)

type recordingSink struct {
	added, removed, punctual, changed []fact.Fact
	goalsChanged, goalsRemoved        []*goalstack.Goal
	order                             []string
}

func (r *recordingSink) OnFactsAdded(f []fact.Fact)             { r.added = f; r.order = append(r.order, "added") }
func (r *recordingSink) OnFactsRemoved(f []fact.Fact)           { r.removed = f; r.order = append(r.order, "removed") }
func (r *recordingSink) OnPunctualFacts(f []fact.Fact)          { r.punctual = f; r.order = append(r.order, "punctual") }
func (r *recordingSink) OnFactsChanged(f []fact.Fact)           { r.changed = f; r.order = append(r.order, "changed") }
func (r *recordingSink) OnGoalsChanged(g []*goalstack.Goal)     { r.goalsChanged = g; r.order = append(r.order, "goalsChanged") }
func (r *recordingSink) OnGoalsRemoved(g []*goalstack.Goal)     { r.goalsRemoved = g; r.order = append(r.order, "goalsRemoved") }

func TestBroadcaster_EmitOrder(t *testing.T) {
	sink := &recordingSink{}
	b := &Broadcaster{}
	b.Register(sink)

	added := []fact.Fact{fact.New("greeted")}
	removed := []fact.Fact{fact.New("sleeping")}
	goals := []*goalstack.Goal{{Objective: logic.FactCondition{Fact: fact.New("beHappy")}}}

	b.Emit(added, removed, nil, added, goals, nil)

	wantOrder := []string{"added", "removed", "changed", "goalsChanged"}
	if len(sink.order) != len(wantOrder) {
		t.Fatalf("expected order %v, got %v", wantOrder, sink.order)
	}
	for i, step := range wantOrder {
		if sink.order[i] != step {
			t.Fatalf("expected order %v, got %v", wantOrder, sink.order)
		}
	}
}

func TestTracker_DiffFindsRemovedGoals(t *testing.T) {
	tr := NewTracker()
	g1 := &goalstack.Goal{Objective: logic.FactCondition{Fact: fact.New("a")}}
	g2 := &goalstack.Goal{Objective: logic.FactCondition{Fact: fact.New("b")}}

	tr.Diff([]*goalstack.Goal{g1, g2})
	removed := tr.Diff([]*goalstack.Goal{g1})
	if len(removed) != 1 || removed[0] != g2 {
		t.Fatalf("expected g2 reported removed, got %v", removed)
	}

	removed = tr.Diff([]*goalstack.Goal{g1})
	if len(removed) != 0 {
		t.Fatalf("expected no removal on an unchanged snapshot, got %v", removed)
	}
}
