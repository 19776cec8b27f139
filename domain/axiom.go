package domain

import (
	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/logic"
	"github.com/carloacu/sequential-goals-planner-sub001/worldstate"
)

// Axiom is a derived-predicate rule: whenever Condition holds, Head must
// hold too, and whenever Condition stops holding, Head is retracted
// (spec.md §4.5's "derived-predicate closure property").
type Axiom struct {
	ID        string
	Condition logic.Condition
	Head      logic.Modification

	// RetractHead undoes Head when Condition stops holding. When nil, the
	// compiler derives it by wrapping Head's facts in DeleteFact — correct
	// for plain AddFact heads, but an axiom with a more elaborate head
	// (AssignModification, CounterModification) must supply its own
	// retraction explicitly.
	RetractHead logic.Modification
}

// compile turns an Axiom into the positive/negative event pair spec.md
// §4.5 calls for: a positive event firing Head when Condition holds, and
// a negative event firing the retraction when it doesn't. Both land in
// the same named EventSet so they share one entry in Domain.eventSets
// and fire together in the world state's fixed-point loop
// (worldstate.WorldState.fireToFixedPoint).
func (a Axiom) compile() (positive, negative worldstate.Event) {
	retract := a.RetractHead
	if retract == nil {
		retract = invertToRetraction(a.Head)
	}
	positive = worldstate.NewEvent(a.ID+"#positive", a.Condition, a.Head)
	negative = worldstate.NewEvent(a.ID+"#negative", logic.NotCondition{Inner: a.Condition}, retract)
	return positive, negative
}

// invertToRetraction builds the default retraction for a head made only
// of AddFact/AndModification nodes, by deleting every fact the head would
// have added.
func invertToRetraction(head logic.Modification) logic.Modification {
	var items []logic.Modification
	head.ForEachFact(func(f fact.Fact) {
		items = append(items, logic.DeleteFact{Fact: f})
	})
	return logic.AndModification{Items: items}
}
