package planner

import (
	"github.com/carloacu/sequential-goals-planner-sub001/domain"
	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/logic"
	"github.com/carloacu/sequential-goals-planner-sub001/problem"
)

// maxDistanceDepth bounds the recursive predecessor-cache expansion
// distanceToGoal performs, the same tractability guard groundAction
// applies to grounding combinations (spec.md §4.6). A var, not a const,
// so Configure can tune it from internal/plannerconfig.
var maxDistanceDepth = 6

// cost is the lexicographic selection key of spec.md §4.6: the distance
// estimate to making the candidate applicable (lower is better), the
// count of preferInContext conditions it satisfies right now (more is
// better, stored negated so the tuple still sorts ascending-is-better),
// the historical invocation count when the action cares about not being
// repeated (lower is better), and finally the action ID as a
// deterministic tie-break.
type cost struct {
	distance             int
	negatedPreferInCount int
	historicalCount      uint32
	actionID             string
}

// less reports whether a should be preferred over b.
func (a cost) less(b cost) bool {
	if a.distance != b.distance {
		return a.distance < b.distance
	}
	if a.negatedPreferInCount != b.negatedPreferInCount {
		return a.negatedPreferInCount < b.negatedPreferInCount
	}
	if a.historicalCount != b.historicalCount {
		return a.historicalCount < b.historicalCount
	}
	return a.actionID < b.actionID
}

// computeCost builds the cost tuple for invoking action with the given
// fully-ground bindings against store (spec.md §4.6).
func computeCost(action domain.Action, bindings fact.Bindings, store logic.FactStore, dom *domain.Domain, prob *problem.Problem, globalHistorical *problem.Historical) cost {
	satisfied := 0
	for _, cond := range action.PreferInContext {
		if ok, _ := cond.IsTrue(store, bindings); ok {
			satisfied++
		}
	}

	var historical uint32
	if action.HighImportanceOfNotRepeatingIt {
		historical = prob.Historical.Count(action.ID)
		if globalHistorical != nil {
			historical += globalHistorical.Count(action.ID)
		}
	}

	return cost{
		distance:             distanceToGoal(action, bindings, store, dom, map[string]bool{}, maxDistanceDepth),
		negatedPreferInCount: -satisfied,
		historicalCount:      historical,
		actionID:             action.ID,
	}
}

// distanceToGoal estimates how many actions stand between store's current
// state and action becoming applicable, by recursively walking the
// producer actions indexed against each unmet precondition fact (spec.md
// §4.6). visited guards against cycles in the predecessor graph; depth
// bounds the recursion when no fixed point is reached quickly.
func distanceToGoal(action domain.Action, bindings fact.Bindings, store logic.FactStore, dom *domain.Domain, visited map[string]bool, depth int) int {
	if action.Precondition == nil {
		return 0
	}
	if ok, _ := action.Precondition.IsTrue(store, bindings); ok {
		return 0
	}
	if depth <= 0 {
		return 1
	}

	total := 0
	action.Precondition.ForEachFact(func(f fact.Fact, negated bool) {
		grounded := f.ReplaceArguments(bindings)
		if !grounded.IsGround() {
			total++
			return
		}
		present := store.Has(grounded)
		unmet := present == negated
		if !unmet {
			return
		}
		key := string(grounded.ExactSignature())
		if negated {
			key = "!" + key
		}
		if visited[key] {
			return
		}
		visited[key] = true

		producers := dom.Caches().ActionsWithEffectOn(grounded.RelaxedSignature())
		if len(producers) == 0 {
			total++
			return
		}
		best := -1
		for _, pid := range producers {
			producer, ok := dom.Action(pid)
			if !ok {
				continue
			}
			d := distanceToGoal(producer, fact.NewBindings(), store, dom, visited, depth-1)
			step := d + 1
			if best == -1 || step < best {
				best = step
			}
		}
		if best == -1 {
			best = 1
		}
		total += best
	})
	if total == 0 {
		return 1
	}
	return total
}
