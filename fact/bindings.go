package fact

import "github.com/carloacu/sequential-goals-planner-sub001/ontology"

// Bindings maps a parameter to the set of entities it may still be bound
// to. It is the data structure threaded through condition evaluation and
// planner unification (spec.md §4.1, §4.2, §4.6).
type Bindings map[ontology.Parameter]*ontology.EntitySet

// NewBindings creates an empty bindings map.
func NewBindings() Bindings {
	return make(Bindings)
}

// Clone returns an independent deep copy of b.
func (b Bindings) Clone() Bindings {
	out := make(Bindings, len(b))
	for p, s := range b {
		out[p] = s.Clone()
	}
	return out
}

// Restrict intersects the existing possibility set for p (if any) with
// candidates, narrowing future matches. A previously-unbound parameter
// is simply bound to candidates.
func (b Bindings) Restrict(p ontology.Parameter, candidates *ontology.EntitySet) {
	if existing, ok := b[p]; ok {
		b[p] = existing.Intersect(candidates)
		return
	}
	b[p] = candidates
}

// Merge intersects every parameter that exists in both b and o, and
// copies over parameters unique to o. Used when combining bindings from
// independently-evaluated conjuncts.
func (b Bindings) Merge(o Bindings) Bindings {
	out := b.Clone()
	for p, s := range o {
		out.Restrict(p, s)
	}
	return out
}

// IsConsistent reports whether every bound parameter still has at least
// one candidate entity.
func (b Bindings) IsConsistent() bool {
	for _, s := range b {
		if s.Len() == 0 {
			return false
		}
	}
	return true
}

// resolveTerm resolves a term to a ground entity given the current
// bindings, if possible.
func resolveTerm(t ontology.Term, b Bindings) (ontology.Entity, bool) {
	if e, ok := ontology.AsEntity(t); ok {
		return e, true
	}
	p, _ := ontology.AsParameter(t)
	set, ok := b[p]
	if !ok {
		return ontology.Entity{}, false
	}
	return set.Single()
}

// ReplaceArguments substitutes parameter occurrences in f's argument
// vector and fluent slot with their bound value from bindings, returning
// a new fact (spec.md §4.1). Parameters with no resolvable binding are
// left untouched.
func (f Fact) ReplaceArguments(bindings Bindings) Fact {
	out := f.Clone()
	for i, a := range out.Arguments {
		if p, ok := ontology.AsParameter(a); ok {
			if e, ok := resolveTerm(p, bindings); ok {
				out.Arguments[i] = e
			}
		}
	}
	if out.Fluent != nil {
		if p, ok := ontology.AsParameter(out.Fluent); ok {
			if e, ok := resolveTerm(p, bindings); ok {
				out.Fluent = e
			}
		}
	}
	return out
}

// ExtractParameterToArguments returns the inverse map used during
// unification with an example ground fact: for each parameter occurring
// in f, the ground entity occupying that position in example (spec.md
// §4.1). It returns ok=false if f and example have incompatible shapes
// (different name/arity) or a parameter appears with two different
// ground values in example.
func (f Fact) ExtractParameterToArguments(example Fact) (map[ontology.Parameter]ontology.Entity, bool) {
	if f.Name != example.Name || len(f.Arguments) != len(example.Arguments) {
		return nil, false
	}
	out := make(map[ontology.Parameter]ontology.Entity)
	assign := func(term ontology.Term, value ontology.Term) bool {
		p, isParam := ontology.AsParameter(term)
		if !isParam {
			return true
		}
		e, ok := ontology.AsEntity(value)
		if !ok {
			return true
		}
		if existing, seen := out[p]; seen && !existing.Equal(e) {
			return false
		}
		out[p] = e
		return true
	}
	for i := range f.Arguments {
		if !assign(f.Arguments[i], example.Arguments[i]) {
			return nil, false
		}
	}
	if f.Fluent != nil && example.Fluent != nil {
		if !assign(f.Fluent, example.Fluent) {
			return nil, false
		}
	}
	return out, true
}

// IsInOtherFact returns whether there is a substitution making self ==
// other. paramsForSelf/paramsForOther, when non-nil, receive the
// refined bindings for parameters occurring in self/other respectively
// (spec.md §4.1). ignoreFluent skips the fluent slot comparison.
func (f Fact) IsInOtherFact(other Fact, paramsForSelf, paramsForOther Bindings, ignoreFluent bool) bool {
	if f.Name != other.Name || len(f.Arguments) != len(other.Arguments) {
		return false
	}
	ok := true
	for i := range f.Arguments {
		if !unifyTerm(f.Arguments[i], other.Arguments[i], paramsForSelf, paramsForOther) {
			ok = false
		}
	}
	if !ignoreFluent {
		switch {
		case f.Fluent == nil && other.Fluent == nil:
		case f.Fluent == nil || other.Fluent == nil:
			ok = false
		default:
			if other.IsCompleteWithAnyFluent() || f.IsCompleteWithAnyFluent() {
				// wildcard fluent matches any bound fluent value.
			} else if !unifyTerm(f.Fluent, other.Fluent, paramsForSelf, paramsForOther) {
				ok = false
			}
		}
	}
	return ok
}

// unifyTerm attempts to unify a against b, writing refined candidate
// sets back into the appropriate bindings maps. It returns false only
// when both sides are ground and unequal; parameter restriction failures
// (empty resulting set) are reported through IsConsistent by the caller.
func unifyTerm(a, b ontology.Term, paramsForA, paramsForB Bindings) bool {
	ae, aGround := ontology.AsEntity(a)
	be, bGround := ontology.AsEntity(b)

	switch {
	case aGround && bGround:
		return ae.Equal(be)
	case aGround && !bGround:
		if paramsForB != nil {
			p, _ := ontology.AsParameter(b)
			paramsForB.Restrict(p, ontology.NewEntitySet(ae))
		}
		return true
	case !aGround && bGround:
		if paramsForA != nil {
			p, _ := ontology.AsParameter(a)
			paramsForA.Restrict(p, ontology.NewEntitySet(be))
		}
		return true
	default:
		// Both unbound: no constraint can be derived without a domain
		// of discourse; leave both open for the caller's quantifier
		// expansion to narrow.
		return true
	}
}
