package domain

import (
	"sort"

	"github.com/carloacu/sequential-goals-planner-sub001/fact"
)

// caches holds the incremental indices spec.md §4.5 lists. They are
// rebuilt wholesale (see Domain.reindex) on every structural mutation,
// together with the Domain's UUID, rather than patched incrementally —
// a simpler, still-correct reading of "maintained incrementally" given
// this project's in-memory scale, grounded on the teacher's
// internal/agents/registry.go rebuilding its capability index wholesale
// on every Register/Unregister rather than patching it.
type caches struct {
	// preconditionToActions indexes actions whose precondition
	// references a fact (by relaxed signature) positively.
	preconditionToActions map[fact.RelaxedSignature]map[string]bool

	// notPreconditionToActions is the negative-reference counterpart.
	notPreconditionToActions map[fact.RelaxedSignature]map[string]bool

	// actionsWithoutFactToAddInPrecondition are actions satisfiable in
	// the empty world (no precondition, or a precondition with no fact
	// literal at all — a pure arithmetic/equality test).
	actionsWithoutFactToAddInPrecondition map[string]bool

	// actionsPredecessorsCache maps an action ID to the set of action IDs
	// whose effect could enable it (their effect's added facts overlap
	// this action's precondition's positive fact references).
	actionsPredecessorsCache map[string]map[string]bool

	// eventsPredecessorsCache is the same relation for events: event ID
	// -> producer action IDs.
	eventsPredecessorsCache map[string]map[string]bool

	// conditionToEvents / notConditionToEvents index, within each named
	// event set, which events reference a fact positively/negatively in
	// their condition — spec.md §4.5's "reachable-event-links".
	conditionToEvents    map[string]map[fact.RelaxedSignature]map[string]bool
	notConditionToEvents map[string]map[fact.RelaxedSignature]map[string]bool

	// effectToActions indexes actions whose effect can touch a fact (by
	// relaxed signature), the planner's entry point for "candidate
	// generation" (spec.md §4.6: "actions whose effect could help").
	effectToActions map[fact.RelaxedSignature]map[string]bool
}

func newCaches() *caches {
	return &caches{
		preconditionToActions:                 map[fact.RelaxedSignature]map[string]bool{},
		notPreconditionToActions:               map[fact.RelaxedSignature]map[string]bool{},
		actionsWithoutFactToAddInPrecondition:  map[string]bool{},
		actionsPredecessorsCache:               map[string]map[string]bool{},
		eventsPredecessorsCache:                map[string]map[string]bool{},
		conditionToEvents:                      map[string]map[fact.RelaxedSignature]map[string]bool{},
		notConditionToEvents:                   map[string]map[fact.RelaxedSignature]map[string]bool{},
		effectToActions:                        map[fact.RelaxedSignature]map[string]bool{},
	}
}

func addIndexed(idx map[fact.RelaxedSignature]map[string]bool, sig fact.RelaxedSignature, id string) {
	set, ok := idx[sig]
	if !ok {
		set = map[string]bool{}
		idx[sig] = set
	}
	set[id] = true
}

// ActionsReferencing returns, sorted for determinism, the IDs of actions
// whose precondition references the given fact name positively (or
// negatively, if negated is true).
func (c *caches) ActionsReferencing(name fact.RelaxedSignature, negated bool) []string {
	idx := c.preconditionToActions
	if negated {
		idx = c.notPreconditionToActions
	}
	set := idx[name]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ActionsWithoutPrecondition returns every action satisfiable with no
// facts present, sorted for determinism.
func (c *caches) ActionsWithoutPrecondition() []string {
	out := make([]string, 0, len(c.actionsWithoutFactToAddInPrecondition))
	for id := range c.actionsWithoutFactToAddInPrecondition {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Predecessors returns the sorted action IDs whose effect could enable
// actionID.
func (c *caches) Predecessors(actionID string) []string {
	set := c.actionsPredecessorsCache[actionID]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ActionsWithEffectOn returns, sorted for determinism, the IDs of
// actions whose effect can touch the given fact signature.
func (c *caches) ActionsWithEffectOn(name fact.RelaxedSignature) []string {
	set := c.effectToActions[name]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
