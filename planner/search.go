package planner

import (
	"github.com/carloacu/sequential-goals-planner-sub001/domain"
	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/logic"
	"github.com/carloacu/sequential-goals-planner-sub001/problem"
)

// maxSearchDepth bounds how many levels of "this action's own precondition
// is unmet, so look for a predecessor action" backward chaining searchStep
// performs before giving up on a goal fact (spec.md §4.6). A var, not a
// const, so Configure can tune it from internal/plannerconfig.
var maxSearchDepth = 6

// collectUnmetFacts walks cond looking for the fact literals whose current
// truth value does not match what cond (given the truth value wantTrue
// asked of it) requires, reporting each as (fact, negated) where negated
// mirrors FactCondition.Negated — true meaning the fact must become
// absent. Unlike Condition.ForEachFact, this composes negation correctly
// through NotCondition, which a bare ForEachFact walk does not (it is a
// flat literal enumerator, not a truth-directed one).
func collectUnmetFacts(cond logic.Condition, wantTrue bool, store logic.FactStore, bindings fact.Bindings, visit func(f fact.Fact, negated bool)) {
	switch c := cond.(type) {
	case logic.FactCondition:
		grounded := c.Fact.ReplaceArguments(bindings)
		if !grounded.IsGround() {
			return
		}
		desiredPresence := wantTrue != c.Negated
		present := store.Has(grounded)
		if present == desiredPresence {
			return
		}
		visit(grounded, !desiredPresence)
	case logic.NotCondition:
		collectUnmetFacts(c.Inner, !wantTrue, store, bindings, visit)
	case logic.AndCondition:
		if !wantTrue {
			return
		}
		for _, item := range c.Items {
			collectUnmetFacts(item, true, store, bindings, visit)
		}
	case logic.OrCondition:
		if !wantTrue {
			return
		}
		for _, item := range c.Items {
			collectUnmetFacts(item, true, store, bindings, visit)
		}
	}
}

// searchStep performs bounded backward chaining for a single unmet fact:
// it first looks for an action whose effect touches f with the right
// polarity and is applicable right now, and only if none exists does it
// descend one level into each such action's own unmet precondition facts
// (spec.md §4.6 steps 1-3). The result bubbles up unchanged from whatever
// depth first found an applicable action, since that is the actual next
// step toward satisfying f.
func searchStep(f fact.Fact, negated bool, store logic.FactStore, dom *domain.Domain, prob *problem.Problem, globalHistorical *problem.Historical, visited map[string]bool, depth int) (ActionInvocationWithGoal, cost, bool) {
	var best ActionInvocationWithGoal
	var bestCost cost
	have := false
	consider := func(actionID string, bindings fact.Bindings) {
		action, ok := dom.Action(actionID)
		if !ok {
			return
		}
		c := computeCost(action, bindings, store, dom, prob, globalHistorical)
		if !have || c.less(bestCost) {
			best = ActionInvocationWithGoal{ActionID: actionID, Parameters: bindings}
			bestCost = c
			have = true
		}
	}

	ids := dom.Caches().ActionsWithEffectOn(f.RelaxedSignature())

	for _, id := range ids {
		action, ok := dom.Action(id)
		if !ok || action.EffectEqualsPrecondition() {
			continue
		}
		partial, matched := unifyFactAgainstEffect(action, f, negated)
		if !matched {
			continue
		}
		grounded, ok := groundAction(action, partial, store, prob.Entities)
		if !ok {
			continue
		}
		consider(action.ID, grounded)
	}
	if have {
		return best, bestCost, true
	}
	if depth <= 0 {
		return ActionInvocationWithGoal{}, cost{}, false
	}

	for _, id := range ids {
		action, ok := dom.Action(id)
		if !ok || action.EffectEqualsPrecondition() || action.Precondition == nil {
			continue
		}
		partial, matched := unifyFactAgainstEffect(action, f, negated)
		if !matched {
			continue
		}
		collectUnmetFacts(action.Precondition, true, store, partial, func(pf fact.Fact, pnegated bool) {
			key := string(pf.ExactSignature())
			if pnegated {
				key = "!" + key
			}
			if visited[key] {
				return
			}
			visited[key] = true
			step, c, ok := searchStep(pf, pnegated, store, dom, prob, globalHistorical, visited, depth-1)
			if ok && (!have || c.less(bestCost)) {
				best, bestCost, have = step, c, true
			}
		})
	}
	if !have {
		return ActionInvocationWithGoal{}, cost{}, false
	}
	return best, bestCost, true
}
