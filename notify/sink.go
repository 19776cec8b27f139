// Package notify carries the observable-signal plumbing of spec.md §5/
// §11: an opaque Sink interface, a Broadcaster that delivers one
// change-set to registered sinks when its Emit is called, and a Tracker
// bridging goal-changed notifications to goal-removed ones. WorldState,
// GoalStack and the planner do not call Emit themselves.
package notify

import (
	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/goalstack"
)

// Sink receives change notifications from a WorldState/GoalStack pairing.
// Implementations must not re-enter the mutator that triggered the
// callback (spec.md §5: "Observers must not re-enter mutators from
// within a callback; doing so ... corrupts the event-firing fixed-point
// iteration").
type Sink interface {
	OnFactsAdded(facts []fact.Fact)
	OnFactsRemoved(facts []fact.Fact)
	OnPunctualFacts(facts []fact.Fact)
	OnFactsChanged(facts []fact.Fact)
	OnGoalsChanged(goals []*goalstack.Goal)
	OnGoalsRemoved(goals []*goalstack.Goal)
}

// Broadcaster fans one mutation's notifications out to every registered
// Sink, in the exact order spec.md §5 mandates: facts added, facts
// removed, punctual facts, facts changed, goals changed, goals removed.
// Grounded on the teacher's callback-slot fields (onGoalActivated et al.
// in internal/memory/goal_stack.go), generalized from fixed struct
// fields to a registered slice so more than one observer can attach.
type Broadcaster struct {
	sinks []Sink
}

// Register adds a Sink to the broadcaster.
func (b *Broadcaster) Register(s Sink) {
	b.sinks = append(b.sinks, s)
}

// Emit delivers one mutation's notifications to every registered sink, in
// spec order. Any argument may be nil/empty; a sink method is called only
// for the non-empty arguments, so an empty change-set reaches no sink.
func (b *Broadcaster) Emit(added, removed, punctual, changed []fact.Fact, goalsChanged, goalsRemoved []*goalstack.Goal) {
	for _, s := range b.sinks {
		if len(added) > 0 {
			s.OnFactsAdded(added)
		}
		if len(removed) > 0 {
			s.OnFactsRemoved(removed)
		}
		if len(punctual) > 0 {
			s.OnPunctualFacts(punctual)
		}
		if len(changed) > 0 {
			s.OnFactsChanged(changed)
		}
		if len(goalsChanged) > 0 {
			s.OnGoalsChanged(goalsChanged)
		}
		if len(goalsRemoved) > 0 {
			s.OnGoalsRemoved(goalsRemoved)
		}
	}
}
