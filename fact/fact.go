// Package fact provides the grounded (or nearly grounded) predicate
// instances that are the atoms of world state, and the signature /
// substitution / unification machinery operating over them (spec.md
// §4.1).
package fact

import (
	"strings"

	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
)

// PunctualPrefix marks a predicate name as punctual (spec.md §3, §6):
// facts with this prefix are never stored in world state.
const PunctualPrefix = "~"

// Fact is an instance of a predicate: a name, an ordered list of
// arguments (each an Entity or a Parameter — only ground Facts, i.e.
// those whose IsGround() is true, may ever enter world state), and an
// optional fluent term.
type Fact struct {
	Name          string
	Arguments     []ontology.Term
	Fluent        ontology.Term // nil if the predicate is relational
	FluentNegated bool
}

// New creates a relational fact (no fluent) from ground entities.
func New(name string, args ...ontology.Entity) Fact {
	return Fact{Name: name, Arguments: entitiesToTerms(args)}
}

// NewTerms creates a fact whose arguments may mix entities and
// parameters, as used inside Conditions/Modifications prior to
// unification.
func NewTerms(name string, args ...ontology.Term) Fact {
	return Fact{Name: name, Arguments: args}
}

// NewWithFluent creates a functional fact bound to value.
func NewWithFluent(name string, value ontology.Entity, negated bool, args ...ontology.Entity) Fact {
	return Fact{Name: name, Arguments: entitiesToTerms(args), Fluent: value, FluentNegated: negated}
}

// WithFluentTerm returns a copy of f with its fluent slot set to value
// (which may be a Parameter prior to unification, or the wildcard
// Entity for "complete with any fluent" matching).
func (f Fact) WithFluentTerm(value ontology.Term, negated bool) Fact {
	out := f.Clone()
	out.Fluent = value
	out.FluentNegated = negated
	return out
}

func entitiesToTerms(es []ontology.Entity) []ontology.Term {
	if es == nil {
		return nil
	}
	out := make([]ontology.Term, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}

// IsPunctual reports whether f's predicate name starts with the punctual
// prefix: such a fact is never stored in world state (spec.md §3).
func (f Fact) IsPunctual() bool {
	return strings.HasPrefix(f.Name, PunctualPrefix)
}

// IsCompleteWithAnyFluent reports whether f has a fluent slot bound to the
// wildcard, in which case it matches any bound fluent value for the same
// arguments (spec.md §3).
func (f Fact) IsCompleteWithAnyFluent() bool {
	if f.Fluent == nil {
		return false
	}
	e, ok := ontology.AsEntity(f.Fluent)
	return ok && e.IsAny()
}

// HasFluent reports whether f carries a fluent slot at all.
func (f Fact) HasFluent() bool {
	return f.Fluent != nil
}

// IsGround reports whether every term in f (arguments and fluent) is a
// bound Entity, i.e. f is eligible to be stored in world state.
func (f Fact) IsGround() bool {
	for _, a := range f.Arguments {
		if _, ok := ontology.AsEntity(a); !ok {
			return false
		}
	}
	if f.Fluent != nil {
		if _, ok := ontology.AsEntity(f.Fluent); !ok {
			return false
		}
	}
	return true
}

// GroundArguments returns f's arguments as entities. It panics if f is
// not ground; callers must check IsGround first (mirrors the source's
// assumption that world-state facts are always fully ground).
func (f Fact) GroundArguments() []ontology.Entity {
	out := make([]ontology.Entity, len(f.Arguments))
	for i, a := range f.Arguments {
		e, ok := ontology.AsEntity(a)
		if !ok {
			panic("fact: GroundArguments called on a non-ground fact")
		}
		out[i] = e
	}
	return out
}

// GroundFluent returns f's fluent as an entity, if any.
func (f Fact) GroundFluent() (ontology.Entity, bool) {
	if f.Fluent == nil {
		return ontology.Entity{}, false
	}
	return ontology.AsEntity(f.Fluent)
}

// Clone returns a deep copy of f.
func (f Fact) Clone() Fact {
	out := Fact{Name: f.Name, FluentNegated: f.FluentNegated, Fluent: f.Fluent}
	if f.Arguments != nil {
		out.Arguments = append([]ontology.Term(nil), f.Arguments...)
	}
	return out
}

func termEqual(a, b ontology.Term) bool {
	ae, aok := ontology.AsEntity(a)
	be, bok := ontology.AsEntity(b)
	if aok && bok {
		return ae.Equal(be)
	}
	if !aok && !bok {
		ap, _ := ontology.AsParameter(a)
		bp, _ := ontology.AsParameter(b)
		return ap.Name == bp.Name
	}
	return false
}

// Equal implements fact equality per spec.md §4.1: names match, argument
// vectors are equal element-wise, fluent options are equal (with the
// wildcard never equal to a concrete value), and negation flags match.
func (f Fact) Equal(o Fact) bool {
	if f.Name != o.Name || f.FluentNegated != o.FluentNegated {
		return false
	}
	if len(f.Arguments) != len(o.Arguments) {
		return false
	}
	for i := range f.Arguments {
		if !termEqual(f.Arguments[i], o.Arguments[i]) {
			return false
		}
	}
	switch {
	case f.Fluent == nil && o.Fluent == nil:
		return true
	case f.Fluent == nil || o.Fluent == nil:
		return false
	default:
		return termEqual(f.Fluent, o.Fluent)
	}
}

func termString(t ontology.Term) string {
	if t == nil {
		return ""
	}
	return ontology.TermString(t)
}

func termCompare(a, b ontology.Term) int {
	as, bs := termString(a), termString(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

// Compare gives a total order over facts: lexicographic on (name,
// arguments, fluent, negation), as required by spec.md §4.1.
func Compare(a, b Fact) int {
	if a.Name != b.Name {
		if a.Name < b.Name {
			return -1
		}
		return 1
	}
	for i := 0; i < len(a.Arguments) && i < len(b.Arguments); i++ {
		if c := termCompare(a.Arguments[i], b.Arguments[i]); c != 0 {
			return c
		}
	}
	if len(a.Arguments) != len(b.Arguments) {
		if len(a.Arguments) < len(b.Arguments) {
			return -1
		}
		return 1
	}
	if c := termCompare(a.Fluent, b.Fluent); c != 0 {
		return c
	}
	if a.FluentNegated != b.FluentNegated {
		if !a.FluentNegated {
			return -1
		}
		return 1
	}
	return 0
}

// String renders the fact in the textual grammar's atom form
// (spec.md §6): "name(arg, ...)" or "name(arg, ...)=value".
func (f Fact) String() string {
	var b strings.Builder
	b.WriteString(f.Name)
	if len(f.Arguments) > 0 {
		b.WriteByte('(')
		for i, a := range f.Arguments {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(termString(a))
		}
		b.WriteByte(')')
	}
	if f.Fluent != nil {
		b.WriteByte('=')
		if f.FluentNegated {
			b.WriteByte('!')
		}
		b.WriteString(termString(f.Fluent))
	}
	return b.String()
}
