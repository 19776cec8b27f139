// Package planner implements the four public planning entry points of
// spec.md §4.6: single-step selection, parallel step selection, and the
// iterated forms that build a full plan by simulating steps on a copy of
// the world state.
package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/carloacu/sequential-goals-planner-sub001/goalstack"
	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
)

// Status is the three-value outcome of a planForEveryGoals-style call
// (spec.md §6).
type Status int

const (
	StatusInProgress Status = iota
	StatusFinishedOnSuccess
	StatusFinishedOnFailure
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "IN_PROGRESS"
	case StatusFinishedOnSuccess:
		return "FINISHED_ON_SUCCESS"
	case StatusFinishedOnFailure:
		return "FINISHED_ON_FAILURE"
	default:
		return "UNKNOWN"
	}
}

// LookForAnActionOutputInfos reports how a plan-building call concluded
// (spec.md §6).
type LookForAnActionOutputInfos struct {
	Status         Status
	GoalsDoneCount int
	GoalsDone      []*goalstack.Goal
}

// ActionInvocationWithGoal is one step of a plan: a fully-bound action
// together with the goal (and its priority) that motivated selecting it
// (spec.md §3).
type ActionInvocationWithGoal struct {
	ActionID         string
	Parameters       map[ontology.Parameter]*ontology.EntitySet
	FromGoal         *goalstack.Goal
	FromGoalPriority int

	// CorrelationID is additive domain-stack wiring (SPEC_FULL.md §10):
	// external callers may set it to correlate NotifyActionStarted/
	// NotifyActionDone pairs across the opaque-sink notification
	// boundary. It is not compared by IsEmpty or by plan-equality tests.
	CorrelationID *uuid.UUID
}

// IsEmpty reports whether this is the "no action can be selected"
// sentinel value spec.md §6 returns instead of an error.
func (a ActionInvocationWithGoal) IsEmpty() bool {
	return a.ActionID == ""
}

// boundValue renders one parameter's binding for String(): a singleton
// set prints its value directly; a wider set prints as a brace list.
func boundValue(set *ontology.EntitySet) string {
	if set == nil {
		return "?"
	}
	if e, ok := set.Single(); ok {
		return e.Value()
	}
	values := set.Values()
	names := make([]string, len(values))
	for i, e := range values {
		names[i] = e.Value()
	}
	sort.Strings(names)
	return "{" + strings.Join(names, ",") + "}"
}

// String renders the invocation in the plan-printing grammar of spec.md
// §6: `action1(?p1 -> v1, ?p2 -> v2)`.
func (a ActionInvocationWithGoal) String() string {
	if a.IsEmpty() {
		return ""
	}
	params := make([]ontology.Parameter, 0, len(a.Parameters))
	for p := range a.Parameters {
		params = append(params, p)
	}
	sort.Slice(params, func(i, j int) bool { return params[i].Name < params[j].Name })
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s -> %s", p.String(), boundValue(a.Parameters[p]))
	}
	return a.ActionID + "(" + strings.Join(parts, ", ") + ")"
}

// PrintPlan renders a full plan using String()'s grammar, separated by
// sep (spec.md §6: "a plan prints as action1(...), action2(...) with
// configurable separator").
func PrintPlan(plan []ActionInvocationWithGoal, sep string) string {
	parts := make([]string, len(plan))
	for i, a := range plan {
		parts[i] = a.String()
	}
	return strings.Join(parts, sep)
}

// PrintPlanPDDL renders a plan PDDL-style: one `NN: (action v1 v2) [1]`
// line per step, in order, with a monotonic step number (spec.md §6).
func PrintPlanPDDL(plan []ActionInvocationWithGoal) string {
	lines := make([]string, len(plan))
	for i, a := range plan {
		params := make([]ontology.Parameter, 0, len(a.Parameters))
		for p := range a.Parameters {
			params = append(params, p)
		}
		sort.Slice(params, func(x, y int) bool { return params[x].Name < params[y].Name })
		values := make([]string, len(params))
		for j, p := range params {
			values[j] = boundValue(a.Parameters[p])
		}
		body := a.ActionID
		if len(values) > 0 {
			body += " " + strings.Join(values, " ")
		}
		lines[i] = fmt.Sprintf("%d: (%s) [1]", i, body)
	}
	return strings.Join(lines, "\n")
}

// ActionsToDoInParallel is a set of actions that may be executed together
// at the current instant without conflict (spec.md §4.6).
type ActionsToDoInParallel struct {
	Actions []ActionInvocationWithGoal
}
