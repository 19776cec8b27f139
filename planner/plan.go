package planner

import (
	"sort"
	"time"

	"github.com/carloacu/sequential-goals-planner-sub001/domain"
	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/goalstack"
	"github.com/carloacu/sequential-goals-planner-sub001/logic"
	"github.com/carloacu/sequential-goals-planner-sub001/problem"
)

// maxPlanSteps bounds planForEveryGoals's simulate-and-append loop, the
// same tractability guard the grounding and distance-estimate searches
// apply (spec.md §4.6). A var, not a const, so Configure can tune it from
// internal/plannerconfig.
var maxPlanSteps = 256

// selectForGoal looks for the lowest-cost safely-applicable action
// advancing g, backward-chaining from each of the goal's currently unmet
// facts through the domain's effect index (spec.md §4.6 steps 1-4).
func selectForGoal(prob *problem.Problem, dom *domain.Domain, g *goalstack.Goal, priority int, now time.Time, globalHistorical *problem.Historical) (ActionInvocationWithGoal, bool) {
	var best ActionInvocationWithGoal
	var bestCost cost
	have := false

	visited := map[string]bool{}
	collectUnmetFacts(g.Objective, true, prob.WorldState, fact.NewBindings(), func(f fact.Fact, negated bool) {
		key := string(f.ExactSignature())
		if negated {
			key = "!" + key
		}
		if visited[key] {
			return
		}
		visited[key] = true
		step, c, ok := searchStep(f, negated, prob.WorldState, dom, prob, globalHistorical, visited, maxSearchDepth)
		if !ok {
			return
		}
		if !have || c.less(bestCost) {
			best, bestCost, have = step, c, true
		}
	})

	if !have {
		return ActionInvocationWithGoal{}, false
	}
	action, ok := dom.Action(best.ActionID)
	if !ok || !isSafelyApplicable(prob, g, priority, action, best.Parameters) {
		return ActionInvocationWithGoal{}, false
	}
	best.FromGoal = g
	best.FromGoalPriority = priority
	return best, true
}

// applyEffect runs an action's at-start and on-done modifications against
// store, ignoring errors (best-effort, used only for simulation/execution
// where the caller already validated groundedness).
func applyEffect(store logic.MutableFactStore, action domain.Action, bindings fact.Bindings) {
	if action.Effect.WorldStateModificationAtStart != nil {
		action.Effect.WorldStateModificationAtStart.Apply(store, bindings)
	}
	if action.Effect.WorldStateModification != nil {
		action.Effect.WorldStateModification.Apply(store, bindings)
	}
}

// goalsToAddRestoresObjective reports whether action's enqueued goals
// would re-introduce a goal with the same textual Objective as g, making
// breaking g's current satisfaction acceptable (spec.md §4.6's
// "safely applicable" carve-out).
func goalsToAddRestoresObjective(action domain.Action, g *goalstack.Goal) bool {
	text := g.Objective.String()
	for _, goals := range action.Effect.GoalsToAdd {
		for _, ng := range goals {
			if ng.Objective.String() == text {
				return true
			}
		}
	}
	for _, ng := range action.Effect.GoalsToAddInCurrentPriority {
		if ng.Objective.String() == text {
			return true
		}
	}
	return false
}

// isSafelyApplicable implements spec.md §4.6's priority guard: simulating
// action's effect must not break a strictly-higher-priority, non-gated
// goal that currently holds, unless the action's own GoalsToAdd would
// re-enqueue an equivalent goal.
func isSafelyApplicable(prob *problem.Problem, g *goalstack.Goal, priority int, action domain.Action, bindings fact.Bindings) bool {
	hasHigherPriorityGoals := false
	for _, p := range prob.GoalStack.Priorities() {
		if p > priority {
			hasHigherPriorityGoals = true
			break
		}
	}
	if !hasHigherPriorityGoals {
		return true
	}

	clone := prob.WorldState.Clone()
	applyEffect(clone, action, bindings)

	for _, p := range prob.GoalStack.Priorities() {
		if p <= priority {
			continue
		}
		for _, other := range prob.GoalStack.GoalsAt(p) {
			if other == g || other.IsGatedOff(prob.WorldState) {
				continue
			}
			if !other.IsSatisfied(prob.WorldState) {
				continue
			}
			if other.IsSatisfied(clone) {
				continue
			}
			if goalsToAddRestoresObjective(action, other) {
				continue
			}
			return false
		}
	}
	return true
}

// PlanForMoreImportantGoalPossible selects a single best step for the
// highest-priority goal that currently has an applicable candidate,
// descending through lower-priority goals when a higher one has none
// (spec.md §4.6, §6). An empty ActionInvocationWithGoal with a nil error
// means no action could be found; outInfo, when non-nil, reports why.
func PlanForMoreImportantGoalPossible(prob *problem.Problem, dom *domain.Domain, now time.Time, globalHistorical *problem.Historical, outInfo *LookForAnActionOutputInfos) (ActionInvocationWithGoal, error) {
	if err := dom.Validate(); err != nil {
		return ActionInvocationWithGoal{}, err
	}

	var result ActionInvocationWithGoal
	found := false
	needsWork := false

	prob.GoalStack.IterateOnGoalsAndRemoveNonPersistent(prob.WorldState, now, func(priority int, g *goalstack.Goal) bool {
		if g.IsSatisfied(prob.WorldState) {
			return false
		}
		needsWork = true
		act, ok := selectForGoal(prob, dom, g, priority, now, globalHistorical)
		if !ok {
			return false
		}
		result = act
		found = true
		return true
	})

	if outInfo != nil {
		switch {
		case found:
			outInfo.Status = StatusInProgress
		case needsWork:
			outInfo.Status = StatusFinishedOnFailure
		default:
			outInfo.Status = StatusFinishedOnSuccess
		}
	}
	if !found {
		return ActionInvocationWithGoal{}, nil
	}
	return result, nil
}

// NotifyActionStarted applies an action's at-start modification, for a
// caller that executes actions asynchronously and wants world state to
// reflect the action the instant it begins (spec.md §4.6's
// notifyActionStarted/notifyActionDone split).
func NotifyActionStarted(prob *problem.Problem, dom *domain.Domain, invocation ActionInvocationWithGoal) error {
	action, ok := dom.Action(invocation.ActionID)
	if !ok {
		return logic.NewPlannerError(logic.KindUnknownSymbol, invocation.ActionID, "unknown action")
	}
	if action.Effect.WorldStateModificationAtStart == nil {
		return nil
	}
	_, _, err := action.Effect.WorldStateModificationAtStart.Apply(prob.WorldState, invocation.Parameters)
	return err
}

// NotifyActionDone applies an action's completion modification, enqueues
// any goals it adds, bumps the historical invocation count, and drops any
// goal thereby satisfied (spec.md §4.6).
func NotifyActionDone(prob *problem.Problem, dom *domain.Domain, invocation ActionInvocationWithGoal, now time.Time) error {
	action, ok := dom.Action(invocation.ActionID)
	if !ok {
		return logic.NewPlannerError(logic.KindUnknownSymbol, invocation.ActionID, "unknown action")
	}
	if action.Effect.WorldStateModification != nil {
		if _, _, err := action.Effect.WorldStateModification.Apply(prob.WorldState, invocation.Parameters); err != nil {
			return err
		}
	}

	priorities := make([]int, 0, len(action.Effect.GoalsToAdd))
	for p := range action.Effect.GoalsToAdd {
		priorities = append(priorities, p)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(priorities)))
	for _, p := range priorities {
		prob.GoalStack.AddGoals(p, action.Effect.GoalsToAdd[p], prob.WorldState, now)
	}
	if len(action.Effect.GoalsToAddInCurrentPriority) > 0 {
		priority := defaultPriority
		if invocation.FromGoal != nil {
			priority = invocation.FromGoalPriority
		}
		prob.GoalStack.AddGoals(priority, action.Effect.GoalsToAddInCurrentPriority, prob.WorldState, now)
	}

	prob.Historical.Increment(invocation.ActionID)

	if invocation.FromGoal != nil && invocation.FromGoal.OneStepTowards {
		prob.GoalStack.RemoveGoals(invocation.FromGoal.GoalGroupID)
	}
	prob.GoalStack.RemoveSatisfied(prob.WorldState)
	return nil
}

// PlanForEveryGoals builds a full plan by repeatedly selecting and
// simulating a step on a cloned world state until no candidate advances
// any remaining goal (spec.md §4.6: "simulate its effect on a copy of the
// world state" — the live Problem's WorldState and GoalStack are left
// untouched, but its Historical is shared with the simulation, so each
// simulated step increments the live invocation counts; callers that want
// the plan actually executed replay it through NotifyActionStarted/Done).
// outGoalsDone, when non-nil, is appended with the goal each step was
// selected for, whenever that step turned it from unsatisfied to
// satisfied; goals satisfied as a side effect are not recorded.
func PlanForEveryGoals(prob *problem.Problem, dom *domain.Domain, now time.Time, globalHistorical *problem.Historical, outGoalsDone *[]*goalstack.Goal) ([]ActionInvocationWithGoal, error) {
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

	var plan []ActionInvocationWithGoal
	for step := 0; step < maxPlanSteps; step++ {
		var outInfo LookForAnActionOutputInfos
		act, err := PlanForMoreImportantGoalPossible(sim, dom, now, globalHistorical, &outInfo)
		if err != nil {
			return plan, err
		}
		if act.IsEmpty() {
			break
		}
		if err := NotifyActionStarted(sim, dom, act); err != nil {
			return plan, err
		}
		before := act.FromGoal != nil && act.FromGoal.IsSatisfied(sim.WorldState)
		if err := NotifyActionDone(sim, dom, act, now); err != nil {
			return plan, err
		}
		plan = append(plan, act)
		if outGoalsDone != nil && act.FromGoal != nil {
			after := act.FromGoal.IsSatisfied(sim.WorldState)
			if after && !before {
				*outGoalsDone = append(*outGoalsDone, act.FromGoal)
			}
		}
	}
	return plan, nil
}

// cloneGoalStack builds an independent GoalStack holding the same goal
// pointers at the same priorities, so PlanForEveryGoals's simulation can
// mutate stack structure (removing satisfied goals, enqueuing new ones)
// without touching the live Problem's stack. Goal pointers are shared
// deliberately: the simulation only ever reads a goal's fields or flips
// its own InactiveSince/seq bookkeeping, which real execution will redo
// identically when the plan is replayed.
func cloneGoalStack(s *goalstack.GoalStack, store logic.FactStore, now time.Time) *goalstack.GoalStack {
	clone := goalstack.NewGoalStack()
	for _, p := range s.Priorities() {
		clone.SetGoals(p, s.GoalsAt(p), store, now)
	}
	return clone
}
