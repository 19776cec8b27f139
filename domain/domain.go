package domain

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/logic"
	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
	"github.com/carloacu/sequential-goals-planner-sub001/worldstate"
)

// Domain holds the actions, named event sets, compiled axioms and derived
// predicate registry a Problem plans against, together with the
// incremental indices the planner queries and a structural UUID
// regenerated on every mutation (spec.md §4.5).
type Domain struct {
	actions      map[string]Action
	eventSets    map[string]*worldstate.EventSet
	axioms       map[string]Axiom
	requirements map[string]bool
	predicates   map[string]ontology.Predicate

	uuid   uuid.UUID
	caches *caches
}

// New creates an empty Domain.
func New() *Domain {
	d := &Domain{
		actions:      map[string]Action{},
		eventSets:    map[string]*worldstate.EventSet{},
		axioms:       map[string]Axiom{},
		requirements: map[string]bool{},
		predicates:   map[string]ontology.Predicate{},
	}
	d.regenerate()
	return d
}

// UUID returns the Domain's current structural identity, regenerated on
// every mutating call. Goal predecessor caches elsewhere compare against
// this to decide whether they must recompute (spec.md §4.5, §8
// invariant 7).
func (d *Domain) UUID() uuid.UUID {
	return d.uuid
}

func (d *Domain) regenerate() {
	d.uuid = uuid.New()
	d.reindex()
}

// AddPredicate declares a predicate so UnknownSymbol validation can catch
// facts referencing an undeclared one.
func (d *Domain) AddPredicate(p ontology.Predicate) {
	d.predicates[p.Name] = p
	d.regenerate()
}

// AddAction registers or replaces an action, validating it first
// (spec.md §7: "surfaced to the caller at construction time").
func (d *Domain) AddAction(a Action) error {
	if err := d.validateAction(a); err != nil {
		return err
	}
	d.actions[a.ID] = a
	d.regenerate()
	return nil
}

// RemoveAction drops an action by ID; a no-op if it was not present.
func (d *Domain) RemoveAction(id string) {
	delete(d.actions, id)
	d.regenerate()
}

// Action looks up an action by ID.
func (d *Domain) Action(id string) (Action, bool) {
	a, ok := d.actions[id]
	return a, ok
}

// Actions returns every registered action, sorted by ID for determinism.
func (d *Domain) Actions() []Action {
	out := make([]Action, 0, len(d.actions))
	for _, a := range d.actions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AddSetOfEvents registers a named set of forward-chained events,
// wiring it into the world state so it participates in the fixed-point
// firing loop.
func (d *Domain) AddSetOfEvents(store *worldstate.WorldState, es *worldstate.EventSet) {
	d.eventSets[es.Name] = es
	if store != nil {
		store.AddEventSet(es)
	}
	d.regenerate()
}

// RemoveSetOfEvents drops a named event set by name.
func (d *Domain) RemoveSetOfEvents(store *worldstate.WorldState, name string) {
	delete(d.eventSets, name)
	if store != nil {
		store.RemoveEventSet(name)
	}
	d.regenerate()
}

// EventSets returns every registered event set, sorted by name.
func (d *Domain) EventSets() []*worldstate.EventSet {
	out := make([]*worldstate.EventSet, 0, len(d.eventSets))
	for _, es := range d.eventSets {
		out = append(out, es)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AddAxiom compiles axiom into a positive/negative event pair (spec.md
// §4.5) and registers both under an event set named after the axiom's
// ID, wiring it into store.
func (d *Domain) AddAxiom(store *worldstate.WorldState, axiom Axiom) {
	d.axioms[axiom.ID] = axiom
	positive, negative := axiom.compile()
	es := worldstate.NewEventSet(axiom.ID)
	es.Add(positive)
	es.Add(negative)
	d.AddSetOfEvents(store, es)
}

// AddRequirement records an opaque textual capability flag, consulted by
// serializers outside this package's scope (spec.md §4.5).
func (d *Domain) AddRequirement(flag string) {
	d.requirements[flag] = true
	d.regenerate()
}

// Requirements returns every recorded requirement flag, sorted.
func (d *Domain) Requirements() []string {
	out := make([]string, 0, len(d.requirements))
	for flag := range d.requirements {
		out = append(out, flag)
	}
	sort.Strings(out)
	return out
}

// Caches exposes the planner-facing indices. The planner package is this
// method's only intended caller.
func (d *Domain) Caches() *caches {
	return d.caches
}

// reindex rebuilds every cache from the current set of actions/events
// (spec.md §4.5's cache list).
func (d *Domain) reindex() {
	c := newCaches()

	for _, a := range d.actions {
		sawFact := false
		if a.Precondition != nil {
			a.Precondition.ForEachFact(func(f fact.Fact, negated bool) {
				sawFact = true
				if negated {
					addIndexed(c.notPreconditionToActions, f.RelaxedSignature(), a.ID)
				} else {
					addIndexed(c.preconditionToActions, f.RelaxedSignature(), a.ID)
				}
			})
		}
		if !sawFact {
			c.actionsWithoutFactToAddInPrecondition[a.ID] = true
		}
		a.Effect.forEachModification(func(m logic.Modification) {
			m.ForEachFact(func(f fact.Fact) {
				addIndexed(c.effectToActions, f.RelaxedSignature(), a.ID)
			})
		})
	}

	// actionsPredecessorsCache: an action B is a predecessor of action A
	// if some fact B's effect can add is positively referenced by A's
	// precondition.
	for _, a := range d.actions {
		producers := map[string]bool{}
		if a.Precondition != nil {
			a.Precondition.ForEachFact(func(f fact.Fact, negated bool) {
				if negated {
					return
				}
				for _, producer := range d.actions {
					if producer.ID == a.ID {
						continue
					}
					if actionMayProduce(producer, f) {
						producers[producer.ID] = true
					}
				}
			})
		}
		if len(producers) > 0 {
			c.actionsPredecessorsCache[a.ID] = producers
		}
	}

	for _, es := range d.eventSets {
		posIdx := map[fact.RelaxedSignature]map[string]bool{}
		negIdx := map[fact.RelaxedSignature]map[string]bool{}
		for _, ev := range es.Events {
			producers := map[string]bool{}
			if ev.Condition != nil {
				ev.Condition.ForEachFact(func(f fact.Fact, negated bool) {
					if negated {
						addIndexed(negIdx, f.RelaxedSignature(), ev.ID)
						return
					}
					addIndexed(posIdx, f.RelaxedSignature(), ev.ID)
					for _, producer := range d.actions {
						if actionMayProduce(producer, f) {
							producers[producer.ID] = true
						}
					}
				})
			}
			if len(producers) > 0 {
				c.eventsPredecessorsCache[ev.ID] = producers
			}
		}
		c.conditionToEvents[es.Name] = posIdx
		c.notConditionToEvents[es.Name] = negIdx
	}

	d.caches = c
}

// actionMayProduce reports whether a's effect could add f (by relaxed
// signature, ignoring bindings — a conservative over-approximation used
// only to seed predecessor caches, not to decide applicability).
func actionMayProduce(a Action, f fact.Fact) bool {
	produced := false
	a.Effect.forEachModification(func(m logic.Modification) {
		m.ForEachFact(func(candidate fact.Fact) {
			if candidate.RelaxedSignature() == f.RelaxedSignature() {
				produced = true
			}
		})
	})
	return produced
}

// Validate re-applies the construction-time checks of validateAction to
// every currently registered action, so that actions added before a
// predicate was declared with AddPredicate are checked against the
// current predicate set.
func (d *Domain) Validate() error {
	for _, a := range d.Actions() {
		if err := d.validateAction(a); err != nil {
			return err
		}
	}
	return nil
}

// validateAction applies the MalformedInput/TypeMismatch/UnknownSymbol
// checks of spec.md §7 to a single action.
func (d *Domain) validateAction(a Action) error {
	if a.ID == "" {
		return logic.NewPlannerError(logic.KindMalformedInput, "", "action has no ID")
	}
	for _, p := range a.Parameters {
		if p.Type == nil {
			return logic.NewPlannerError(logic.KindTypeMismatch, p.Name, fmt.Sprintf("action %q: parameter %s has no declared type", a.ID, p.String()))
		}
	}
	var err error
	checkFact := func(f fact.Fact, _ bool) {
		if err != nil {
			return
		}
		if len(d.predicates) == 0 {
			return
		}
		pred, ok := d.predicates[f.Name]
		if !ok {
			err = logic.NewPlannerError(logic.KindUnknownSymbol, f.Name, fmt.Sprintf("action %q references undeclared predicate %q", a.ID, f.Name))
			return
		}
		if f.HasFluent() && !pred.IsFunction() {
			err = logic.NewPlannerError(logic.KindMalformedInput, f.Name, fmt.Sprintf("action %q: predicate %q is not functional but is used with a fluent value", a.ID, f.Name))
		}
	}
	if a.Precondition != nil {
		a.Precondition.ForEachFact(checkFact)
	}
	a.Effect.forEachModification(func(m logic.Modification) {
		m.ForEachFact(func(f fact.Fact) { checkFact(f, false) })
		if assign, ok := m.(logic.AssignModification); ok {
			if err == nil && len(d.predicates) > 0 {
				if pred, known := d.predicates[assign.Target.Name]; known && !pred.IsFunction() {
					err = logic.NewPlannerError(logic.KindMalformedInput, assign.Target.Name, fmt.Sprintf("action %q: assign to non-functional predicate %q", a.ID, assign.Target.Name))
				}
			}
		}
	})
	return err
}
