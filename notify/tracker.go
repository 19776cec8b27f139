package notify

import "github.com/carloacu/sequential-goals-planner-sub001/goalstack"

// Tracker is "a thin wrapper comparing snapshots" (spec.md §9) that
// derives goal-removed notifications from two goal-changed snapshots: a
// goal present in the previous snapshot but absent from the current one
// was removed.
type Tracker struct {
	previous map[*goalstack.Goal]bool
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{previous: make(map[*goalstack.Goal]bool)}
}

// Diff records current as the new snapshot and returns the goals that
// were present before but are gone now.
func (t *Tracker) Diff(current []*goalstack.Goal) []*goalstack.Goal {
	now := make(map[*goalstack.Goal]bool, len(current))
	for _, g := range current {
		now[g] = true
	}
	var removed []*goalstack.Goal
	for g := range t.previous {
		if !now[g] {
			removed = append(removed, g)
		}
	}
	t.previous = now
	return removed
}
