package worldstate

import (
	"sort"

	"go.uber.org/zap"

	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/logic"
	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
)

// Option configures a WorldState at construction time.
type Option func(*WorldState)

// WithLogger injects a structured logger used for the EventLoopDivergence
// warning (spec.md §4.3, §7). Without this option the WorldState logs
// nothing, keeping it side-effect-free for tests — the same
// injected-no-op-by-default shape codenerd uses for its own zap logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(w *WorldState) { w.logger = l }
}

// WorldState is the mutable set of ground facts a Problem reasons over,
// kept consistent under forward-chained Events/Axioms (spec.md §3/§4.3).
// It implements logic.MutableFactStore so Conditions and Modifications
// never need to know about events at all.
type WorldState struct {
	facts     *SetOfFacts
	eventSets map[string]*EventSet
	logger    *zap.SugaredLogger

	// punctual accumulates punctual facts produced by the modification
	// currently being applied (including those produced transitively by
	// event firings); it is drained by the caller through
	// DrainPunctualFacts after each top-level Add/Remove call.
	punctual []fact.Fact

	accessibility *accessibilityCache
}

// NewWorldState returns an empty world state.
func NewWorldState(opts ...Option) *WorldState {
	w := &WorldState{
		facts:     NewSetOfFacts(),
		eventSets: make(map[string]*EventSet),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Has reports whether f currently holds.
func (w *WorldState) Has(f fact.Fact) bool { return w.facts.Has(f) }

// FluentValue returns the current bound value of a functional fact.
func (w *WorldState) FluentValue(f fact.Fact) (ontology.Entity, bool) {
	return w.facts.FluentValue(f)
}

// EntitiesOfType enumerates known entities is-a typ.
func (w *WorldState) EntitiesOfType(typ *ontology.Type) []ontology.Entity {
	return w.facts.EntitiesOfType(typ)
}

// Add stores f (see SetOfFacts.Add for the functional-fluent invariant),
// then re-runs the event/axiom fixed point so derived facts stay in sync,
// and invalidates the accessibility cache on any net change.
func (w *WorldState) Add(f fact.Fact) (added bool, replaced *fact.Fact) {
	if f.IsPunctual() {
		w.punctual = append(w.punctual, f)
		return true, nil
	}
	added, replaced = w.facts.Add(f)
	if added {
		w.accessibility = nil
		w.fireToFixedPoint()
	}
	return added, replaced
}

// Remove deletes f (or, for a wildcard-fluent fact, whatever concrete
// fluent is currently stored), then re-runs the event fixed point.
func (w *WorldState) Remove(f fact.Fact) (removed bool, actual *fact.Fact) {
	removed, actual = w.facts.Remove(f)
	if removed {
		w.accessibility = nil
		w.fireToFixedPoint()
	}
	return removed, actual
}

// All returns a stable snapshot of every stored fact.
func (w *WorldState) All() []fact.Fact { return w.facts.All() }

// Clone returns an independent copy of w: its own fact index seeded from
// w's current facts, and the same *EventSet values (event rules are
// read-only once built, so sharing them is safe — only the fact index
// needs copy-on-write isolation). Used by the planner to simulate a step
// without mutating the live world state (spec.md §4.6:
// "planForEveryGoals ... simulate its effect on a copy of the world
// state").
func (w *WorldState) Clone() *WorldState {
	clone := &WorldState{
		facts:     NewSetOfFacts(),
		eventSets: make(map[string]*EventSet, len(w.eventSets)),
		logger:    w.logger,
	}
	for name, es := range w.eventSets {
		clone.eventSets[name] = es
	}
	for _, f := range w.facts.All() {
		clone.facts.Add(f)
	}
	return clone
}

// DrainPunctualFacts returns and clears the punctual facts accumulated
// since the last drain (spec.md §3: punctual facts are never stored, only
// notified once).
func (w *WorldState) DrainPunctualFacts() []fact.Fact {
	out := w.punctual
	w.punctual = nil
	return out
}

// AddEventSet registers es under its name, replacing any previous set of
// the same name, and immediately runs the fixed point once so facts
// already present can trigger it.
func (w *WorldState) AddEventSet(es *EventSet) {
	w.eventSets[es.Name] = es
	w.accessibility = nil
	w.fireToFixedPoint()
}

// RemoveEventSet unregisters the named event set.
func (w *WorldState) RemoveEventSet(name string) {
	delete(w.eventSets, name)
	w.accessibility = nil
}

// EventSets returns the currently registered event sets in name order, for
// Domain's reachable-link indices.
func (w *WorldState) EventSets() []*EventSet {
	names := make([]string, 0, len(w.eventSets))
	for n := range w.eventSets {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]*EventSet, len(names))
	for i, n := range names {
		out[i] = w.eventSets[n]
	}
	return out
}

// fireToFixedPoint repeatedly scans every registered event, firing any
// whose Condition currently holds, until no event fires in a full pass
// (spec.md §4.3's forward-chaining fixed point) — the same
// match/conflict-set/fire cadence as the teacher's
// ProductionSystem.Cycle, generalized to "fire every match in a pass"
// instead of picking one winner per cycle, since world-state events are
// not mutually exclusive the way productions are.
//
// EventLoopDivergence: if the same (eventID, grounded bindings) pair would
// fire a second time within one outer call, that firing is skipped and a
// warning is logged rather than looping forever (spec.md §4.3, §7 — this
// is a logged condition, never a returned error).
func (w *WorldState) fireToFixedPoint() {
	fired := make(map[string]bool)
	for {
		progressed := false
		for _, es := range w.sortedEventSets() {
			for _, ev := range es.Events {
				for _, bindings := range w.matchingBindings(ev) {
					key := firingKey(ev.ID, bindings)
					if fired[key] {
						if w.logger != nil {
							w.logger.Warnw("EventLoopDivergence: event re-fired with identical bindings, skipping",
								"event", ev.ID, "eventSet", es.Name)
						}
						continue
					}
					fired[key] = true
					if _, _, err := ev.Effect.Apply(w, bindings); err == nil {
						progressed = true
					}
				}
			}
		}
		if !progressed {
			return
		}
	}
}

func (w *WorldState) sortedEventSets() []*EventSet {
	return w.EventSets()
}

// matchingBindings returns the single binding, if any, under which ev's
// Condition currently holds, as reported by one IsTrue call. Other
// bindings that would also satisfy the Condition are not enumerated.
func (w *WorldState) matchingBindings(ev Event) []fact.Bindings {
	ok, bindings := ev.Condition.IsTrue(w, fact.NewBindings())
	if !ok {
		return nil
	}
	return []fact.Bindings{bindings}
}

var _ logic.MutableFactStore = (*WorldState)(nil)
