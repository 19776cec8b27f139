package planner

import (
	"sort"
	"time"

	"github.com/carloacu/sequential-goals-planner-sub001/domain"
	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/problem"
)

// maxParallelPlanSteps bounds ParallelPlanForEveryGoals the same way
// maxPlanSteps bounds the sequential form. A var, not a const, so
// Configure can tune it from internal/plannerconfig.
var maxParallelPlanSteps = 256

// parallelCandidate pairs a grounded invocation with its resolved action
// and cost, so ActionsToDoInParallelNow can sort and conflict-check a
// batch before committing to it.
type parallelCandidate struct {
	invocation ActionInvocationWithGoal
	action     domain.Action
	c          cost
}

// conflicts reports whether two grounded invocations of potentially
// different actions could not run together: either they are the same
// action instance, or one's effect could touch a fact the other's
// precondition or effect also references under an overlapping argument
// binding (spec.md §4.6's mutual-exclusion rule for "do in parallel").
// This is a conservative, relaxed-signature check — two actions sharing a
// referenced predicate name are treated as conflicting even if their
// grounded arguments would not actually overlap, trading recall for the
// simplicity spec.md's Non-goals accept for this first cut.
func conflicts(a ActionInvocationWithGoal, aAction domain.Action, b ActionInvocationWithGoal, bAction domain.Action) bool {
	if a.ActionID == b.ActionID && a.FromGoal == b.FromGoal {
		return true
	}
	touched := func(act domain.Action) map[fact.RelaxedSignature]bool {
		out := map[fact.RelaxedSignature]bool{}
		if act.Precondition != nil {
			act.Precondition.ForEachFact(func(f fact.Fact, _ bool) { out[f.RelaxedSignature()] = true })
		}
		for _, m := range act.EffectModifications() {
			m.ForEachFact(func(f fact.Fact) { out[f.RelaxedSignature()] = true })
		}
		return out
	}
	aSigs := touched(aAction)
	bSigs := touched(bAction)
	aEffect := map[fact.RelaxedSignature]bool{}
	for _, m := range aAction.EffectModifications() {
		m.ForEachFact(func(f fact.Fact) { aEffect[f.RelaxedSignature()] = true })
	}
	for sig := range aEffect {
		if bSigs[sig] {
			return true
		}
	}
	bEffect := map[fact.RelaxedSignature]bool{}
	for _, m := range bAction.EffectModifications() {
		m.ForEachFact(func(f fact.Fact) { bEffect[f.RelaxedSignature()] = true })
	}
	for sig := range bEffect {
		if aSigs[sig] {
			return true
		}
	}
	return false
}

// ActionsToDoInParallelNow first picks the step for the most important
// non-gated, unsatisfied goal that has an applicable candidate (the goal
// PlanForMoreImportantGoalPossible would serve, without its goal-stack
// ageing), then greedily adds every other goal's candidate (cheapest
// first) that does not conflict with anything already chosen (spec.md
// §4.6).
func ActionsToDoInParallelNow(prob *problem.Problem, dom *domain.Domain, now time.Time, globalHistorical *problem.Historical) (ActionsToDoInParallel, error) {
	if err := dom.Validate(); err != nil {
		return ActionsToDoInParallel{}, err
	}

	var pool []parallelCandidate

	for _, p := range prob.GoalStack.Priorities() {
		for _, g := range prob.GoalStack.GoalsAt(p) {
			if g.IsGatedOff(prob.WorldState) || g.IsSatisfied(prob.WorldState) {
				continue
			}
			inv, ok := selectForGoal(prob, dom, g, p, now, globalHistorical)
			if !ok {
				continue
			}
			action, _ := dom.Action(inv.ActionID)
			c := computeCost(action, inv.Parameters, prob.WorldState, dom, prob, globalHistorical)
			pool = append(pool, parallelCandidate{invocation: inv, action: action, c: c})
		}
	}

	if len(pool) > 1 {
		rest := pool[1:]
		sort.SliceStable(rest, func(i, j int) bool { return rest[i].c.less(rest[j].c) })
	}

	var chosen []parallelCandidate
	for _, cand := range pool {
		ok := true
		for _, already := range chosen {
			if conflicts(cand.invocation, cand.action, already.invocation, already.action) {
				ok = false
				break
			}
		}
		if ok {
			chosen = append(chosen, cand)
		}
	}

	out := ActionsToDoInParallel{}
	for _, c := range chosen {
		out.Actions = append(out.Actions, c.invocation)
	}
	return out, nil
}

// ParallelPlanForEveryGoals builds a full plan as a sequence of parallel
// batches, simulating each batch's combined effect before picking the
// next (spec.md §4.6).
func ParallelPlanForEveryGoals(prob *problem.Problem, dom *domain.Domain, now time.Time, globalHistorical *problem.Historical) ([]ActionsToDoInParallel, error) {
	if err := dom.Validate(); err != nil {
		return nil, err
	}

	simWorldState := prob.WorldState.Clone()
	sim := &problem.Problem{
		WorldState: simWorldState,
		GoalStack:  cloneGoalStack(prob.GoalStack, simWorldState, now),
		Historical: prob.Historical,
		Entities:   prob.Entities,
	}

	var batches []ActionsToDoInParallel
	for step := 0; step < maxParallelPlanSteps; step++ {
		batch, err := ActionsToDoInParallelNow(sim, dom, now, globalHistorical)
		if err != nil {
			return batches, err
		}
		if len(batch.Actions) == 0 {
			break
		}
		for _, act := range batch.Actions {
			if err := NotifyActionStarted(sim, dom, act); err != nil {
				return batches, err
			}
			if err := NotifyActionDone(sim, dom, act, now); err != nil {
				return batches, err
			}
		}
		batches = append(batches, batch)
	}
	return batches, nil
}
