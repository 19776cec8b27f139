package goalstack

import (
	"container/heap"
	"sort"
	"time"

	"github.com/carloacu/sequential-goals-planner-sub001/logic"
)

// goalHeap orders the goals of a single priority bucket by insertion
// sequence ascending (front of the front-to-back iteration first),
// implementing container/heap.Interface the same way the teacher's
// goalPriorityQueue does (goal_stack.go), with the ordering key narrowed
// to "position within this bucket" since cross-bucket ordering is handled
// by GoalStack.Priorities instead.
type goalHeap []*Goal

func (h goalHeap) Len() int            { return len(h) }
func (h goalHeap) Less(i, j int) bool  { return h[i].seq < h[j].seq }
func (h goalHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *goalHeap) Push(x interface{}) {
	g := x.(*Goal)
	g.index = len(*h)
	*h = append(*h, g)
}
func (h *goalHeap) Pop() interface{} {
	old := *h
	n := len(old)
	g := old[n-1]
	old[n-1] = nil
	g.index = -1
	*h = old[:n-1]
	return g
}

// GoalStack is a mapping from signed-integer priority (higher = more
// important) to a front-to-back ordered list of goals (spec.md §3).
type GoalStack struct {
	buckets map[int]*goalHeap
	minSeq  int64
	maxSeq  int64
}

// NewGoalStack returns an empty goal stack.
func NewGoalStack() *GoalStack {
	return &GoalStack{buckets: make(map[int]*goalHeap)}
}

func (s *GoalStack) bucket(priority int) *goalHeap {
	b, ok := s.buckets[priority]
	if !ok {
		b = &goalHeap{}
		heap.Init(b)
		s.buckets[priority] = b
	}
	return b
}

// PushFrontGoal inserts g at the front of priority's list, then sweeps the
// stack so newly-inactive goals are marked and any already past their
// inactivity budget are removed immediately (spec.md §4.4).
func (s *GoalStack) PushFrontGoal(priority int, g *Goal, store logic.FactStore, now time.Time) []*Goal {
	s.minSeq--
	g.seq = s.minSeq
	heap.Push(s.bucket(priority), g)
	return s.Sweep(store, now)
}

// PushBackGoal inserts g at the back of priority's list, then sweeps.
func (s *GoalStack) PushBackGoal(priority int, g *Goal, store logic.FactStore, now time.Time) []*Goal {
	s.maxSeq++
	g.seq = s.maxSeq
	heap.Push(s.bucket(priority), g)
	return s.Sweep(store, now)
}

// AddGoals appends goals to the back of priority's list, in order, then
// sweeps once.
func (s *GoalStack) AddGoals(priority int, goals []*Goal, store logic.FactStore, now time.Time) []*Goal {
	for _, g := range goals {
		s.maxSeq++
		g.seq = s.maxSeq
		heap.Push(s.bucket(priority), g)
	}
	return s.Sweep(store, now)
}

// SetGoals replaces priority's entire list with goals (front-to-back in
// the order given), then sweeps.
func (s *GoalStack) SetGoals(priority int, goals []*Goal, store logic.FactStore, now time.Time) []*Goal {
	b := &goalHeap{}
	heap.Init(b)
	for _, g := range goals {
		s.maxSeq++
		g.seq = s.maxSeq
		heap.Push(b, g)
	}
	s.buckets[priority] = b
	return s.Sweep(store, now)
}

// ChangeGoalPriority moves the first goal whose Objective renders to
// goalText (spec.md §4.4: "the first goal whose textual form equals
// goalStr") to newPriority, pushed to the front or back of that
// priority's list as pushFront indicates. It reports whether a goal was
// found and moved.
func (s *GoalStack) ChangeGoalPriority(goalText string, newPriority int, pushFront bool) bool {
	for priority, b := range s.buckets {
		for i, g := range *b {
			if g.Objective.String() != goalText {
				continue
			}
			heap.Remove(b, i)
			if pushFront {
				s.minSeq--
				g.seq = s.minSeq
			} else {
				s.maxSeq++
				g.seq = s.maxSeq
			}
			heap.Push(s.bucket(newPriority), g)
			_ = priority
			return true
		}
	}
	return false
}

// RemoveGoals removes every goal whose GoalGroupID equals groupID,
// returning the removed goals.
func (s *GoalStack) RemoveGoals(groupID string) []*Goal {
	var removed []*Goal
	for _, b := range s.buckets {
		kept := (*b)[:0]
		for _, g := range *b {
			if g.GoalGroupID == groupID {
				removed = append(removed, g)
				continue
			}
			kept = append(kept, g)
		}
		*b = kept
		heap.Init(b)
	}
	return removed
}

// Priorities returns every priority with at least one goal, highest
// first.
func (s *GoalStack) Priorities() []int {
	out := make([]int, 0, len(s.buckets))
	for p, b := range s.buckets {
		if b.Len() > 0 {
			out = append(out, p)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// GoalsAt returns priority's goals in front-to-back order.
func (s *GoalStack) GoalsAt(priority int) []*Goal {
	b, ok := s.buckets[priority]
	if !ok {
		return nil
	}
	out := make([]*Goal, len(*b))
	copy(out, *b)
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// IsEmpty reports whether the stack holds no goals at all.
func (s *GoalStack) IsEmpty() bool {
	for _, b := range s.buckets {
		if b.Len() > 0 {
			return false
		}
	}
	return true
}

// IterateOnGoalsAndRemoveNonPersistent walks priority groups highest to
// lowest and, within each, front-to-back, applying the exact discipline
// of spec.md §4.4:
//   - a goal gated by an untrue ConditionFact is skipped without
//     inactivity accounting;
//   - callback is invoked with non-gated goals in order until one returns
//     true; that goal is the "first active" goal (the planner committed to
//     acting on it) and its InactiveSince is cleared. The walk then goes
//     on, without calling callback again, to age the remaining goals;
//   - every other non-gated goal is inactive: if it has been inactive for
//     longer than MaxTimeToKeepInactive (measured from InactiveSince,
//     which is set the first time a goal is observed inactive and
//     preserved afterwards), it is removed; otherwise it is kept and its
//     InactiveSince is initialised if absent.
//
// It returns the goals removed by the timeout rule.
// Before a goal commits, callback is offered every non-gated goal in
// order until one returns true (spec.md §4.6: "If no candidate applies,
// the goal is treated as inactive ... and the planner descends to the
// next goal" — a callback returning false for the planner's use case
// means exactly that: no candidate, keep looking). Once a goal commits,
// every later goal (in the same bucket or a lower-priority one) is never
// offered the callback again and is aged as ordinary inactive bookkeeping.
func (s *GoalStack) IterateOnGoalsAndRemoveNonPersistent(store logic.FactStore, now time.Time, callback func(priority int, g *Goal) bool) []*Goal {
	var removed []*Goal
	committed := false

	for _, priority := range s.Priorities() {
		b := s.bucket(priority)
		var kept []*Goal
		for _, g := range s.GoalsAt(priority) {
			if g.IsGatedOff(store) {
				kept = append(kept, g)
				continue
			}
			if !committed && callback(priority, g) {
				committed = true
				g.InactiveSince = nil
				kept = append(kept, g)
				continue
			}
			// Inactive: age it against MaxTimeToKeepInactive. This also
			// covers a goal the callback declined before committing.
			if g.InactiveSince == nil {
				t := now
				g.InactiveSince = &t
				kept = append(kept, g)
				continue
			}
			if !g.hasInfinitePatience() && now.Sub(*g.InactiveSince) > g.MaxTimeToKeepInactive {
				removed = append(removed, g)
				continue
			}
			kept = append(kept, g)
		}
		*b = goalHeap(kept)
		heap.Init(b)
	}
	return removed
}

// Sweep re-runs the inactivity bookkeeping of
// IterateOnGoalsAndRemoveNonPersistent with a callback that always returns
// true, so the first non-gated goal counts as the active one and every
// later non-gated goal is aged as inactive — the "immediately run a sweep"
// step spec.md §4.4 mandates after every mutator call.
func (s *GoalStack) Sweep(store logic.FactStore, now time.Time) []*Goal {
	return s.IterateOnGoalsAndRemoveNonPersistent(store, now, func(int, *Goal) bool { return true })
}

// RemoveSatisfied drops every non-persistent, non-gated goal whose
// Objective currently holds (spec.md §8 invariant 3: "goal satisfaction
// implies removal"), returning the removed goals. A OneStepTowards goal
// whose Objective does not hold is kept: RemoveSatisfied only implements
// the Objective-became-true rule, and dropping a goal after one step is
// left to the caller.
func (s *GoalStack) RemoveSatisfied(store logic.FactStore) []*Goal {
	var removed []*Goal
	for _, b := range s.buckets {
		kept := (*b)[:0]
		for _, g := range *b {
			if !g.IsPersistent && !g.IsGatedOff(store) && g.IsSatisfied(store) {
				removed = append(removed, g)
				continue
			}
			kept = append(kept, g)
		}
		*b = kept
		heap.Init(b)
	}
	return removed
}
