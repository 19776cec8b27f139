package ontology

// Predicate names a relation, or, when FluentType is non-nil, a function
// from an argument tuple to a value of FluentType (spec.md §3).
type Predicate struct {
	Name       string
	Parameters []Parameter
	FluentType *Type
}

// NewPredicate creates a relation predicate (no fluent).
func NewPredicate(name string, params ...Parameter) Predicate {
	return Predicate{Name: name, Parameters: params}
}

// NewFunctionalPredicate creates a predicate denoting a function into
// fluentType.
func NewFunctionalPredicate(name string, fluentType *Type, params ...Parameter) Predicate {
	return Predicate{Name: name, Parameters: params, FluentType: fluentType}
}

// IsFunction reports whether the predicate has a fluent type.
func (p Predicate) IsFunction() bool {
	return p.FluentType != nil
}

// Arity returns the number of ordered parameters.
func (p Predicate) Arity() int {
	return len(p.Parameters)
}
