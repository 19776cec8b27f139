package ontology

import "errors"

// Error sentinels for the ontology package, in the teacher's style of
// package-level error vars rather than ad-hoc fmt.Errorf strings
// (internal/memory/goal_stack.go, internal/memory/production_system.go).
var (
	// ErrTypeAlreadyDeclared indicates a type name collision.
	ErrTypeAlreadyDeclared = errors.New("type already declared")

	// ErrUnknownType indicates a reference to an undeclared type.
	ErrUnknownType = errors.New("unknown type")

	// ErrIncompatibleType indicates a value or binding does not satisfy a
	// parameter's declared type.
	ErrIncompatibleType = errors.New("incompatible type")
)
