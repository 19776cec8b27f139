package logic

import "github.com/carloacu/sequential-goals-planner-sub001/fact"

// DoesFactEffectOfSuccessorGiveAnInterestForSuccessor returns true when
// effect unifies with conditionFact under some binding (spec.md §4.2),
// i.e. an action/event producing effect could help satisfy a successor
// whose precondition references conditionFact. Domain's predecessor
// caches do not call it; they match producers by relaxed signature only.
func DoesFactEffectOfSuccessorGiveAnInterestForSuccessor(effect, conditionFact fact.Fact) bool {
	if effect.Name != conditionFact.Name || len(effect.Arguments) != len(conditionFact.Arguments) {
		return false
	}
	selfBindings := fact.NewBindings()
	otherBindings := fact.NewBindings()
	return effect.IsInOtherFact(conditionFact, selfBindings, otherBindings, false) ||
		conditionFact.IsInOtherFact(effect, otherBindings, selfBindings, false)
}
