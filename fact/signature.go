package fact

import "fmt"

// ExactSignature is name + argument values + fluent: two facts with the
// same exact signature are (ignoring negation) the same fact.
type ExactSignature string

// RelaxedSignature is the predicate name only, used for indexing
// (spec.md §4.1).
type RelaxedSignature string

// ExactSignature computes f's exact signature. Only meaningful for ground
// facts; parameters render by name, which is enough for index purposes
// during planning (distinct parameter names never collide within one
// action/event's scope).
func (f Fact) ExactSignature() ExactSignature {
	s := f.Name
	for _, a := range f.Arguments {
		s += "|" + termString(a)
	}
	if f.Fluent != nil {
		s += "=>" + termString(f.Fluent)
	}
	return ExactSignature(s)
}

// RelaxedSignature computes f's relaxed signature (predicate name only).
func (f Fact) RelaxedSignature() RelaxedSignature {
	return RelaxedSignature(f.Name)
}

// ArgumentSubKey computes an index key for the sub-index on argument
// position i, used by SetOfFacts to avoid scanning every fact sharing a
// relaxed signature (spec.md §4.1, §4.3).
func (f Fact) ArgumentSubKey(i int) string {
	if i < 0 || i >= len(f.Arguments) {
		return ""
	}
	return fmt.Sprintf("%s#%d=%s", f.Name, i, termString(f.Arguments[i]))
}

// FluentSubKey computes an index key for the sub-index on fluent value.
func (f Fact) FluentSubKey() string {
	if f.Fluent == nil {
		return ""
	}
	return fmt.Sprintf("%s$fluent=%s", f.Name, termString(f.Fluent))
}
