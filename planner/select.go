package planner

import (
	"sort"

	"github.com/carloacu/sequential-goals-planner-sub001/domain"
	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/logic"
	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
)

// maxGroundingCombinations bounds how many concrete parameter assignments
// groundAction tries before giving up on a candidate whose remaining
// parameters are still multi-valued after unification against the target
// fact (spec.md §4.6: "a small bound for tractability" — exhaustive
// grounding over every entity combination is not guaranteed to terminate
// quickly). A var, not a const, so Configure can tune it from
// internal/plannerconfig.
var maxGroundingCombinations = 64

// collectPolarFacts walks m's tree of Add/Delete/Assign/Counter/And nodes
// and appends every leaf fact whose application would make a fact's
// presence match wantTrue (true for "becomes present", false for
// "becomes absent") — the polarity distinction Modification.ForEachFact
// itself does not expose, needed so backward search only matches an
// action against a goal fact whose truth value it could actually flip the
// right way (spec.md §4.1, §4.6).
func collectPolarFacts(m logic.Modification, wantTrue bool, out *[]fact.Fact) {
	switch v := m.(type) {
	case logic.AddFact:
		if wantTrue {
			*out = append(*out, v.Fact)
		}
	case logic.DeleteFact:
		if !wantTrue {
			*out = append(*out, v.Fact)
		}
	case logic.AndModification:
		for _, item := range v.Items {
			collectPolarFacts(item, wantTrue, out)
		}
	case logic.AssignModification:
		if _, isUndef := v.Value.(logic.UndefinedValue); isUndef {
			if !wantTrue {
				*out = append(*out, v.Target)
			}
		} else if wantTrue {
			*out = append(*out, v.Target)
		}
	case logic.CounterModification:
		if wantTrue {
			*out = append(*out, v.Target)
		}
	}
}

// unifyFactAgainstEffect tries to match target (with the given polarity)
// against one of action's effect facts, writing refined candidate sets
// into fresh bindings for the action's own parameters (spec.md §4.1,
// §4.6). It reports whether at least one fact matched with the right
// polarity.
func unifyFactAgainstEffect(action domain.Action, target fact.Fact, negated bool) (fact.Bindings, bool) {
	wantTrue := !negated
	bindings := fact.NewBindings()
	matched := false
	for _, m := range action.EffectModifications() {
		var facts []fact.Fact
		collectPolarFacts(m, wantTrue, &facts)
		for _, effectFact := range facts {
			if effectFact.Name != target.Name || len(effectFact.Arguments) != len(target.Arguments) {
				continue
			}
			if target.IsInOtherFact(effectFact, nil, bindings, false) {
				matched = true
			}
		}
	}
	if !matched {
		return nil, false
	}
	return bindings, true
}

// candidateEntities returns every entity compatible with typ known either
// to the world state (has appeared in some fact) or declared as a
// problem-local constant.
func candidateEntities(typ *ontology.Type, store logic.FactStore, extra []ontology.Entity) []ontology.Entity {
	seen := map[string]ontology.Entity{}
	for _, e := range store.EntitiesOfType(typ) {
		seen[e.Value()] = e
	}
	for _, e := range extra {
		if e.CompatibleWith(typ) {
			seen[e.Value()] = e
		}
	}
	out := make([]ontology.Entity, 0, len(seen))
	for _, e := range seen {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value() < out[j].Value() })
	return out
}

// groundAction completes a partial unification into one or more fully
// ground parameter assignments, then returns the first whose precondition
// currently holds (spec.md §4.6 steps 2-3). Parameters left unbound by
// unifyFactAgainstEffect are widened to every compatible entity and
// enumerated, bounded by maxGroundingCombinations; any parameter still
// left with no candidate at all makes the action inapplicable.
func groundAction(action domain.Action, partial fact.Bindings, store logic.FactStore, extraEntities []ontology.Entity) (fact.Bindings, bool) {
	free := make([]ontology.Parameter, 0)
	domains := make([][]ontology.Entity, 0)
	fixed := partial.Clone()

	for _, p := range action.Parameters {
		set, ok := fixed[p]
		if ok {
			if _, single := set.Single(); single {
				continue
			}
			opts := set.Values()
			sort.Slice(opts, func(i, j int) bool { return opts[i].Value() < opts[j].Value() })
			free = append(free, p)
			domains = append(domains, opts)
			delete(fixed, p)
			continue
		}
		opts := candidateEntities(p.Type, store, extraEntities)
		if len(opts) == 0 {
			return nil, false
		}
		free = append(free, p)
		domains = append(domains, opts)
	}

	base := fact.NewBindings()
	for p, set := range fixed {
		if e, ok := set.Single(); ok {
			base[p] = ontology.NewEntitySet(e)
		}
	}

	tried := 0
	var best fact.Bindings
	var walk func(i int, acc fact.Bindings) bool
	walk = func(i int, acc fact.Bindings) bool {
		if i == len(free) {
			tried++
			if action.Precondition == nil {
				best = acc
				return true
			}
			ok, _ := action.Precondition.IsTrue(store, acc)
			if ok {
				best = acc
				return true
			}
			return tried >= maxGroundingCombinations
		}
		for _, e := range domains[i] {
			if !free[i].AcceptsEntity(e) {
				continue
			}
			next := acc.Clone()
			next[free[i]] = ontology.NewEntitySet(e)
			if walk(i+1, next) {
				return true
			}
			if tried >= maxGroundingCombinations {
				return true
			}
		}
		return false
	}
	walk(0, base)
	if best == nil {
		return nil, false
	}
	return best, true
}
