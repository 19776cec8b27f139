package worldstate

import (
	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/logic"
	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
)

var _ logic.MutableFactStore = (*simulatedStore)(nil)

// accessibilityCache memoizes, for one WorldState snapshot, which facts are
// reachable from the current state by firing a bounded number of events —
// a lazily-built, coarsely invalidated cache (spec.md §4.3): any mutating
// Add/Remove/AddEventSet throws the whole cache away rather than trying to
// patch it incrementally, mirroring world_model.go's own state-simulation
// shape (a fresh reachable-set walk per query, memoized for repeat
// questions against the same frozen state).
type accessibilityCache struct {
	reachable map[fact.ExactSignature]bool
}

// Reachable reports whether f was found reachable by a previous call to
// ComputeReachability for the same cache instance.
func (c *accessibilityCache) Reachable(f fact.Fact) bool {
	if c == nil {
		return false
	}
	return c.reachable[f.ExactSignature()]
}

// ComputeReachability walks events/axioms forward from the world state's
// current facts up to maxDepth firings, recording every fact that appears
// in some reachable state. Actions are not walked and removable facts are
// not recorded; the planner's distance estimate does not consult it.
func (w *WorldState) ComputeReachability(maxDepth int) {
	cache := &accessibilityCache{reachable: make(map[fact.ExactSignature]bool)}
	for _, f := range w.facts.All() {
		cache.reachable[f.ExactSignature()] = true
	}

	frontier := w.facts.All()
	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []fact.Fact
		for _, es := range w.sortedEventSets() {
			for _, ev := range es.Events {
				for _, bindings := range w.matchingBindings(ev) {
					sim := &simulatedStore{base: w}
					added, _, err := ev.Effect.Apply(sim, bindings)
					if err != nil {
						continue
					}
					for _, f := range added {
						sig := f.ExactSignature()
						if !cache.reachable[sig] {
							cache.reachable[sig] = true
							next = append(next, f)
						}
					}
				}
			}
		}
		frontier = next
	}
	w.accessibility = cache
}

// IsReachable reports whether f is known reachable per the last
// ComputeReachability call; it returns false (never cached "yes") if the
// cache has been invalidated by a mutation since.
func (w *WorldState) IsReachable(f fact.Fact) bool {
	return w.accessibility.Reachable(f)
}

// simulatedStore wraps a WorldState so a reachability probe can apply a
// Modification without mutating the real state: writes are captured in an
// overlay rather than forwarded to base, and Add/Remove never touch base's
// index or re-trigger its event loop.
type simulatedStore struct {
	base    *WorldState
	overlay []fact.Fact
}

func (s *simulatedStore) Has(f fact.Fact) bool {
	for _, o := range s.overlay {
		if o.Equal(f) {
			return true
		}
	}
	return s.base.Has(f)
}

func (s *simulatedStore) FluentValue(f fact.Fact) (ontology.Entity, bool) {
	for _, o := range s.overlay {
		if sameNameAndArgs(o, f) {
			return o.GroundFluent()
		}
	}
	return s.base.FluentValue(f)
}

func (s *simulatedStore) EntitiesOfType(typ *ontology.Type) []ontology.Entity {
	return s.base.EntitiesOfType(typ)
}

func (s *simulatedStore) Add(f fact.Fact) (added bool, replaced *fact.Fact) {
	if s.Has(f) {
		return false, nil
	}
	s.overlay = append(s.overlay, f)
	return true, nil
}

func (s *simulatedStore) Remove(f fact.Fact) (removed bool, actual *fact.Fact) {
	for i, o := range s.overlay {
		if o.Equal(f) {
			s.overlay = append(s.overlay[:i], s.overlay[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
