// Package worldstate holds the mutable set of ground facts a planner
// reasons over, together with the forward-chained events/axioms that keep
// derived facts in sync (spec.md §3/§4.3).
package worldstate

import (
	"sort"

	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
)

// SetOfFacts indexes ground facts by relaxed signature (predicate name),
// with per-argument-position and per-fluent-value sub-indices so a lookup
// for "every fact of predicate p whose 2nd argument is e" never scans the
// full set (spec.md §4.1/§4.3).
type SetOfFacts struct {
	byRelaxed   map[fact.RelaxedSignature]map[fact.ExactSignature]fact.Fact
	byArgSubKey map[string]map[fact.ExactSignature]fact.Fact
	byFluentKey map[string]map[fact.ExactSignature]fact.Fact
	byType      map[string][]ontology.Entity
	typeSeen    map[string]map[string]bool
}

// NewSetOfFacts returns an empty index.
func NewSetOfFacts() *SetOfFacts {
	return &SetOfFacts{
		byRelaxed:   make(map[fact.RelaxedSignature]map[fact.ExactSignature]fact.Fact),
		byArgSubKey: make(map[string]map[fact.ExactSignature]fact.Fact),
		byFluentKey: make(map[string]map[fact.ExactSignature]fact.Fact),
		byType:      make(map[string][]ontology.Entity),
		typeSeen:    make(map[string]map[string]bool),
	}
}

// Has reports whether f (or, when f carries the wildcard fluent, some fact
// sharing its name/arguments) is present.
func (s *SetOfFacts) Has(f fact.Fact) bool {
	_, ok := s.find(f)
	return ok
}

// find returns the stored fact matching f, honoring wildcard-fluent
// lookups.
func (s *SetOfFacts) find(f fact.Fact) (fact.Fact, bool) {
	bucket := s.byRelaxed[f.RelaxedSignature()]
	if bucket == nil {
		return fact.Fact{}, false
	}
	if f.IsCompleteWithAnyFluent() {
		for _, got := range bucket {
			if sameNameAndArgs(got, f) {
				return got, true
			}
		}
		return fact.Fact{}, false
	}
	got, ok := bucket[f.ExactSignature()]
	return got, ok
}

// FluentValue returns the bound fluent value for f's name+arguments.
func (s *SetOfFacts) FluentValue(f fact.Fact) (ontology.Entity, bool) {
	bucket := s.byRelaxed[f.RelaxedSignature()]
	for _, got := range bucket {
		if sameNameAndArgs(got, f) {
			return got.GroundFluent()
		}
	}
	return ontology.Entity{}, false
}

// Add inserts f. If f's predicate is functional (HasFluent), any existing
// fact with the same name+arguments but a different fluent value is
// removed first, and returned as replaced (spec.md §4.3's functional
// invariant).
func (s *SetOfFacts) Add(f fact.Fact) (added bool, replaced *fact.Fact) {
	bucket := s.byRelaxed[f.RelaxedSignature()]
	if bucket == nil {
		bucket = make(map[fact.ExactSignature]fact.Fact)
		s.byRelaxed[f.RelaxedSignature()] = bucket
	}

	if f.HasFluent() {
		for sig, got := range bucket {
			if sameNameAndArgs(got, f) && !got.Equal(f) {
				s.removeExact(got, sig)
				r := got
				replaced = &r
				break
			}
		}
	}

	if _, exists := bucket[f.ExactSignature()]; exists {
		return false, replaced
	}

	bucket[f.ExactSignature()] = f
	s.index(f)
	return true, replaced
}

// Remove deletes f. A fact carrying the wildcard fluent matches and
// removes whatever concrete fluent value is currently stored for the same
// name+arguments, reporting it as actual.
func (s *SetOfFacts) Remove(f fact.Fact) (removed bool, actual *fact.Fact) {
	bucket := s.byRelaxed[f.RelaxedSignature()]
	if bucket == nil {
		return false, nil
	}
	if f.IsCompleteWithAnyFluent() {
		for sig, got := range bucket {
			if sameNameAndArgs(got, f) {
				s.removeExact(got, sig)
				a := got
				return true, &a
			}
		}
		return false, nil
	}
	sig := f.ExactSignature()
	got, ok := bucket[sig]
	if !ok {
		return false, nil
	}
	s.removeExact(got, sig)
	return true, nil
}

func (s *SetOfFacts) removeExact(f fact.Fact, sig fact.ExactSignature) {
	delete(s.byRelaxed[f.RelaxedSignature()], sig)
	for i := range f.Arguments {
		key := f.ArgumentSubKey(i)
		delete(s.byArgSubKey[key], sig)
	}
	if key := f.FluentSubKey(); key != "" {
		delete(s.byFluentKey[key], sig)
	}
}

func (s *SetOfFacts) index(f fact.Fact) {
	sig := f.ExactSignature()
	for i, a := range f.Arguments {
		e, ok := ontology.AsEntity(a)
		if !ok {
			continue
		}
		key := f.ArgumentSubKey(i)
		if s.byArgSubKey[key] == nil {
			s.byArgSubKey[key] = make(map[fact.ExactSignature]fact.Fact)
		}
		s.byArgSubKey[key][sig] = f
		s.observeEntity(e)
	}
	if e, ok := f.GroundFluent(); ok && !e.IsAny() {
		key := f.FluentSubKey()
		if s.byFluentKey[key] == nil {
			s.byFluentKey[key] = make(map[fact.ExactSignature]fact.Fact)
		}
		s.byFluentKey[key][sig] = f
		s.observeEntity(e)
	}
}

func (s *SetOfFacts) observeEntity(e ontology.Entity) {
	if e.Type() == nil {
		return
	}
	typeName := e.Type().Name()
	if s.typeSeen[typeName] == nil {
		s.typeSeen[typeName] = make(map[string]bool)
	}
	if s.typeSeen[typeName][e.Value()] {
		return
	}
	s.typeSeen[typeName][e.Value()] = true
	s.byType[typeName] = append(s.byType[typeName], e)
}

// FactsWithArgument returns every indexed fact whose argument at position i
// equals e, for predicate name, without scanning every fact.
func (s *SetOfFacts) FactsWithArgument(name string, i int, e ontology.Entity) []fact.Fact {
	probe := fact.Fact{Name: name, Arguments: make([]ontology.Term, i+1)}
	probe.Arguments[i] = e
	bucket := s.byArgSubKey[probe.ArgumentSubKey(i)]
	out := make([]fact.Fact, 0, len(bucket))
	for _, f := range bucket {
		out = append(out, f)
	}
	return out
}

// All returns every fact currently stored, in a stable order (by
// fact.Compare) so callers get deterministic iteration for tests and
// snapshotting.
func (s *SetOfFacts) All() []fact.Fact {
	var out []fact.Fact
	for _, bucket := range s.byRelaxed {
		for _, f := range bucket {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return fact.Compare(out[i], out[j]) < 0 })
	return out
}

// EntitiesOfType returns every entity observed (as an argument or fluent
// value) whose type is-a typ.
func (s *SetOfFacts) EntitiesOfType(typ *ontology.Type) []ontology.Entity {
	var out []ontology.Entity
	for _, entities := range s.byType {
		for _, e := range entities {
			if e.CompatibleWith(typ) {
				out = append(out, e)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return ontology.Compare(out[i], out[j]) < 0 })
	return out
}

func sameNameAndArgs(a, b fact.Fact) bool {
	if a.Name != b.Name || len(a.Arguments) != len(b.Arguments) {
		return false
	}
	for i := range a.Arguments {
		ae, aok := ontology.AsEntity(a.Arguments[i])
		be, bok := ontology.AsEntity(b.Arguments[i])
		if !aok || !bok || !ae.Equal(be) {
			return false
		}
	}
	return true
}
