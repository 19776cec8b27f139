package worldstate

import (
	"fmt"

	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/logic"
	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
)

// Event is a forward-chained rule: whenever Condition holds, Effect is
// applied. Events are the GLOSSARY's "forward-chained rules over the
// world state"; Domain compiles Axioms into pairs of events (one per
// direction) and registers them here (spec.md §4.5/§6).
type Event struct {
	ID        string
	Condition logic.Condition
	Effect    logic.Modification
}

// NewEvent builds a named Event. Domain calls this when compiling an
// Axiom into its two directional events.
func NewEvent(id string, cond logic.Condition, effect logic.Modification) Event {
	return Event{ID: id, Condition: cond, Effect: effect}
}

// EventSet is a named, ordered group of Events a Domain can add or remove
// as a unit (spec.md §4.5: "named references to *worldstate.EventSet").
type EventSet struct {
	Name   string
	Events []Event
}

// NewEventSet creates an empty, named event set.
func NewEventSet(name string) *EventSet {
	return &EventSet{Name: name}
}

// Add appends an event to the set.
func (s *EventSet) Add(e Event) {
	s.Events = append(s.Events, e)
}

// firingKey identifies one (event, binding) pair for EventLoopDivergence
// detection: the same event firing against the same grounded bindings
// twice within one outer fixed-point call means the event set is not
// converging (spec.md §4.3).
func firingKey(eventID string, bindings fact.Bindings) string {
	key := eventID
	for p, set := range bindings {
		if e, ok := set.Single(); ok {
			key += fmt.Sprintf("|%s=%s", p.Name, e.Value())
		}
	}
	return key
}
