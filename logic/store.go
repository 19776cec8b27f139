// Package logic provides the Condition and WorldStateModification tagged
// unions (spec.md §3/§4.2): first-order formulas over facts and the
// effects that mutate them. Conditions and modifications never touch
// world state directly — they are evaluated/applied against a FactStore,
// an interface implemented by worldstate.WorldState. This keeps the
// dependency order of spec.md §3 intact: logic sits below worldstate.
package logic

import (
	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
)

// FactStore is the read surface a Condition needs to evaluate itself, and
// a Modification needs to read current fluent values from before
// mutating them (e.g. Assign copying another fluent's current value).
type FactStore interface {
	// Has reports whether the given ground fact (or one matching it, for
	// facts carrying the wildcard fluent) is currently true.
	Has(f fact.Fact) bool

	// FluentValue returns the current bound value of a functional fact's
	// fluent, given its ground arguments.
	FluentValue(f fact.Fact) (ontology.Entity, bool)

	// EntitiesOfType enumerates known entities compatible with typ, for
	// quantifier expansion (Exists/ForAll). worldstate.WorldState's
	// implementation enumerates only entities that appear in stored facts;
	// problem constants that appear in no fact are not enumerated.
	EntitiesOfType(typ *ontology.Type) []ontology.Entity
}

// MutableFactStore is the write surface a Modification needs.
type MutableFactStore interface {
	FactStore
	// Add stores f, returning false if it was already present (a no-op).
	// If f's predicate is functional, adding it first removes any
	// existing fact of the same predicate+arguments with a different
	// fluent value (spec.md §4.3's functional invariant); replaced
	// reports that removed fact, if any.
	Add(f fact.Fact) (added bool, replaced *fact.Fact)
	// Remove deletes f, returning false if no matching fact was present.
	// A fact carrying the wildcard fluent (fact.Fact.IsCompleteWithAnyFluent)
	// matches and removes whatever concrete fluent value is currently
	// stored for the same name+arguments (spec.md §3).
	Remove(f fact.Fact) (removed bool, actual *fact.Fact)
}
