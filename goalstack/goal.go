// Package goalstack provides the priority-ordered goal container a
// Problem carries: goals keyed by signed priority, iterated highest
// priority first and front-to-back within a priority, with persistence,
// conditional activation and inactivity-timeout policies (spec.md
// §3/§4.4).
package goalstack

import (
	"time"

	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/logic"
)

// InfinitePatience is the sentinel MaxTimeToKeepInactive value meaning a
// goal never self-destructs while inactive (spec.md §3: "a negative
// maxTimeToKeepInactive means infinite patience").
const InfinitePatience time.Duration = -1

// Goal is a single objective tracked by a GoalStack.
type Goal struct {
	// Objective is the condition this goal wants to see hold.
	Objective logic.Condition

	// IsPersistent, when true, keeps the goal on the stack even after its
	// Objective becomes true (set by the `persist(g)` wrapper, spec.md §6).
	IsPersistent bool

	// OneStepTowards tells the planner to take exactly one productive step
	// towards Objective, then drop the goal regardless of persistence
	// (the `oneStepTowards(g)` wrapper).
	OneStepTowards bool

	// ConditionFact, when non-nil, gates the goal: while the fact is not
	// currently true, IterateOnGoalsAndRemoveNonPersistent skips the goal
	// without any inactivity accounting (spec.md §4.4).
	ConditionFact *fact.Fact

	// MaxTimeToKeepInactive bounds how long the goal may sit inactive
	// (neither skipped by a ConditionFact nor the one goal of the whole
	// stack the iteration commits to) before it is removed. InfinitePatience (or any negative
	// value) disables the timeout.
	MaxTimeToKeepInactive time.Duration

	// GoalGroupID tags the goal for bulk removal via RemoveGoals.
	GoalGroupID string

	// InactiveSince records when the goal first became inactive; nil while
	// the goal has never been inactive or since it was last the committed
	// goal of an iteration. Skipping a gated goal leaves it unchanged.
	InactiveSince *time.Time

	// seq orders goals within a priority bucket; lower sequences sort
	// earlier (front of the front-to-back iteration). PushFrontGoal
	// allocates a sequence below the bucket's current minimum,
	// PushBackGoal one above its current maximum — the same
	// heap.Interface-backed ordering idiom as the teacher's
	// goalPriorityQueue (goal_stack.go), keyed here by insertion sequence
	// within a priority bucket rather than by the teacher's cross-stack
	// GoalPriority field, since priority is this package's bucket key.
	seq int64

	// index is the heap position, maintained by container/heap callbacks.
	index int
}

// IsSatisfied reports whether g's Objective currently holds.
func (g *Goal) IsSatisfied(store logic.FactStore) bool {
	ok, _ := g.Objective.IsTrue(store, fact.NewBindings())
	return ok
}

// IsGatedOff reports whether g's ConditionFact, if any, is not currently
// true — in which case the goal must be skipped without inactivity
// accounting (spec.md §4.4).
func (g *Goal) IsGatedOff(store logic.FactStore) bool {
	if g.ConditionFact == nil {
		return false
	}
	return !store.Has(*g.ConditionFact)
}

// hasInfinitePatience reports whether g never expires while inactive.
func (g *Goal) hasInfinitePatience() bool {
	return g.MaxTimeToKeepInactive < 0
}
