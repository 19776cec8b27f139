package planner

import (
	"testing"
	"time"

	"github.com/carloacu/sequential-goals-planner-sub001/domain"
	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/goalstack"
	"github.com/carloacu/sequential-goals-planner-sub001/logic"
	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
	"github.com/carloacu/sequential-goals-planner-sub001/problem"
)

// buildChainedDomain wires two actions where the second's precondition is
// the first's effect: greet() must run before checkIn() can.
func buildChainedDomain(t *testing.T) (*domain.Domain, *problem.Problem) {
	t.Helper()
	d := domain.New()
	greeted := fact.New("greeted")
	checkedIn := fact.New("checkedIn")

	greet := domain.Action{
		ID:     "greet",
		Effect: domain.ProblemModification{WorldStateModification: logic.AddFact{Fact: greeted}},
	}
	checkIn := domain.Action{
		ID:           "checkIn",
		Precondition: logic.FactCondition{Fact: greeted},
		Effect:       domain.ProblemModification{WorldStateModification: logic.AddFact{Fact: checkedIn}},
	}
	if err := d.AddAction(greet); err != nil {
		t.Fatal(err)
	}
	if err := d.AddAction(checkIn); err != nil {
		t.Fatal(err)
	}

	prob := problem.New()
	goal := &goalstack.Goal{Objective: logic.FactCondition{Fact: checkedIn}}
	prob.GoalStack.AddGoals(0, []*goalstack.Goal{goal}, prob.WorldState, time.Now())
	return d, prob
}

func TestPlanForEveryGoals_ChainedPreconditions(t *testing.T) {
	d, prob := buildChainedDomain(t)

	var done []*goalstack.Goal
	plan, err := PlanForEveryGoals(prob, d, time.Now(), nil, &done)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan) != 2 {
		t.Fatalf("expected a 2-step plan, got %d: %s", len(plan), PrintPlan(plan, ", "))
	}
	if plan[0].ActionID != "greet" || plan[1].ActionID != "checkIn" {
		t.Fatalf("expected greet then checkIn, got %s", PrintPlan(plan, ", "))
	}
	if len(done) != 1 {
		t.Fatalf("expected exactly one goal recorded done, got %d", len(done))
	}
}

func TestPlanForMoreImportantGoalPossible_NoCandidateReportsFailure(t *testing.T) {
	d := domain.New()
	prob := problem.New()
	unreachable := fact.New("unobtainable")
	goal := &goalstack.Goal{Objective: logic.FactCondition{Fact: unreachable}}
	prob.GoalStack.AddGoals(0, []*goalstack.Goal{goal}, prob.WorldState, time.Now())

	var outInfo LookForAnActionOutputInfos
	act, err := PlanForMoreImportantGoalPossible(prob, d, time.Now(), nil, &outInfo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !act.IsEmpty() {
		t.Fatalf("expected no action, got %v", act)
	}
	if outInfo.Status != StatusFinishedOnFailure {
		t.Fatalf("expected FINISHED_ON_FAILURE, got %v", outInfo.Status)
	}
}

func TestPlanForMoreImportantGoalPossible_AlreadySatisfiedReportsSuccess(t *testing.T) {
	d := domain.New()
	prob := problem.New()
	done := fact.New("done")
	prob.WorldState.Add(done)
	goal := &goalstack.Goal{Objective: logic.FactCondition{Fact: done}}
	prob.GoalStack.AddGoals(0, []*goalstack.Goal{goal}, prob.WorldState, time.Now())

	var outInfo LookForAnActionOutputInfos
	act, err := PlanForMoreImportantGoalPossible(prob, d, time.Now(), nil, &outInfo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !act.IsEmpty() {
		t.Fatalf("expected no action, got %v", act)
	}
	if outInfo.Status != StatusFinishedOnSuccess {
		t.Fatalf("expected FINISHED_ON_SUCCESS, got %v", outInfo.Status)
	}
}

func TestSelect_GoalArgumentBindsActionParameter(t *testing.T) {
	reg := ontology.NewRegistry()
	doorType, _ := reg.Declare("door", "")
	front := ontology.NewEntity("front", doorType)
	back := ontology.NewEntity("back", doorType)

	open := func(doorParam ontology.Parameter) domain.Action {
		return domain.Action{
			ID:         "open",
			Parameters: []ontology.Parameter{doorParam},
			Effect: domain.ProblemModification{
				WorldStateModification: logic.AddFact{Fact: fact.NewTerms("open", doorParam)},
			},
			PreferInContext: []logic.Condition{
				logic.FactCondition{Fact: fact.New("preferred", front)},
			},
		}
	}
	doorParam := ontology.NewParameter("d", doorType)
	d := domain.New()
	if err := d.AddAction(open(doorParam)); err != nil {
		t.Fatal(err)
	}

	prob := problem.New()
	prob.WorldState.Add(fact.New("preferred", front))
	prob.Entities = []ontology.Entity{front, back}

	goal := &goalstack.Goal{Objective: logic.FactCondition{Fact: fact.New("open", front)}}
	prob.GoalStack.AddGoals(0, []*goalstack.Goal{goal}, prob.WorldState, time.Now())

	act, err := PlanForMoreImportantGoalPossible(prob, d, time.Now(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if act.IsEmpty() || act.ActionID != "open" {
		t.Fatalf("expected an open action, got %v", act)
	}
	bound, ok := act.Parameters[doorParam].Single()
	if !ok || !bound.Equal(front) {
		t.Fatalf("expected the action bound to the front door via unification, got %v", act.Parameters[doorParam])
	}
}

func TestNotifyActionDone_EnqueuesGoalsAndIncrementsHistorical(t *testing.T) {
	triggered := fact.New("triggered")
	followUp := fact.New("followUp")

	d := domain.New()
	act := domain.Action{
		ID: "trigger",
		Effect: domain.ProblemModification{
			WorldStateModification: logic.AddFact{Fact: triggered},
			GoalsToAddInCurrentPriority: []*goalstack.Goal{
				{Objective: logic.FactCondition{Fact: followUp}},
			},
		},
		HighImportanceOfNotRepeatingIt: true,
	}
	if err := d.AddAction(act); err != nil {
		t.Fatal(err)
	}

	prob := problem.New()
	triggeringGoal := &goalstack.Goal{Objective: logic.FactCondition{Fact: triggered}}
	invocation := ActionInvocationWithGoal{ActionID: "trigger", Parameters: fact.NewBindings(), FromGoal: triggeringGoal, FromGoalPriority: 3}

	if err := NotifyActionDone(prob, d, invocation, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !prob.WorldState.Has(triggered) {
		t.Fatal("expected the effect to have applied")
	}
	if prob.Historical.Count("trigger") != 1 {
		t.Fatalf("expected historical count 1, got %d", prob.Historical.Count("trigger"))
	}
	goals := prob.GoalStack.GoalsAt(3)
	if len(goals) != 1 || goals[0].Objective.String() != followUp.String() {
		t.Fatalf("expected followUp goal enqueued at priority 3, got %v", goals)
	}
}

func TestActionsToDoInParallelNow_IndependentGoalsRunTogether(t *testing.T) {
	d := domain.New()
	left := domain.Action{ID: "waterPlantA", Effect: domain.ProblemModification{WorldStateModification: logic.AddFact{Fact: fact.New("wateredA")}}}
	right := domain.Action{ID: "waterPlantB", Effect: domain.ProblemModification{WorldStateModification: logic.AddFact{Fact: fact.New("wateredB")}}}
	if err := d.AddAction(left); err != nil {
		t.Fatal(err)
	}
	if err := d.AddAction(right); err != nil {
		t.Fatal(err)
	}

	prob := problem.New()
	goalA := &goalstack.Goal{Objective: logic.FactCondition{Fact: fact.New("wateredA")}}
	goalB := &goalstack.Goal{Objective: logic.FactCondition{Fact: fact.New("wateredB")}}
	prob.GoalStack.AddGoals(0, []*goalstack.Goal{goalA, goalB}, prob.WorldState, time.Now())

	batch, err := ActionsToDoInParallelNow(prob, d, time.Now(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch.Actions) != 2 {
		t.Fatalf("expected both independent actions selected for parallel execution, got %d: %v", len(batch.Actions), batch.Actions)
	}
}

func TestActionsToDoInParallelNow_ConflictingEffectsExcludeOneCandidate(t *testing.T) {
	counter := fact.New("lightOn")
	d := domain.New()
	turnOn := domain.Action{ID: "turnOn", Effect: domain.ProblemModification{WorldStateModification: logic.AddFact{Fact: counter}}}
	turnOff := domain.Action{ID: "turnOff", Effect: domain.ProblemModification{WorldStateModification: logic.AndModification{Items: []logic.Modification{
		logic.DeleteFact{Fact: counter},
		logic.AddFact{Fact: fact.New("lightSwitchedOff")},
	}}}}
	if err := d.AddAction(turnOn); err != nil {
		t.Fatal(err)
	}
	if err := d.AddAction(turnOff); err != nil {
		t.Fatal(err)
	}

	prob := problem.New()
	goalOn := &goalstack.Goal{Objective: logic.FactCondition{Fact: counter}}
	goalOff := &goalstack.Goal{Objective: logic.FactCondition{Fact: fact.New("lightSwitchedOff")}}
	prob.GoalStack.AddGoals(10, []*goalstack.Goal{goalOn}, prob.WorldState, time.Now())
	prob.GoalStack.AddGoals(5, []*goalstack.Goal{goalOff}, prob.WorldState, time.Now())

	batch, err := ActionsToDoInParallelNow(prob, d, time.Now(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch.Actions) != 1 {
		t.Fatalf("expected only one of the conflicting actions chosen, got %d: %v", len(batch.Actions), batch.Actions)
	}
}

func TestPrintPlan_RendersGrammar(t *testing.T) {
	reg := ontology.NewRegistry()
	roomType, _ := reg.Declare("room", "")
	kitchen := ontology.NewEntity("kitchen", roomType)
	p := ontology.NewParameter("r", roomType)

	plan := []ActionInvocationWithGoal{
		{ActionID: "goTo", Parameters: map[ontology.Parameter]*ontology.EntitySet{p: ontology.NewEntitySet(kitchen)}},
	}
	got := PrintPlan(plan, ", ")
	want := "goTo(?r -> kitchen)"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	pddl := PrintPlanPDDL(plan)
	wantPDDL := "0: (goTo kitchen) [1]"
	if pddl != wantPDDL {
		t.Fatalf("expected %q, got %q", wantPDDL, pddl)
	}
}

func TestStatus_String(t *testing.T) {
	cases := map[Status]string{
		StatusInProgress:       "IN_PROGRESS",
		StatusFinishedOnSuccess: "FINISHED_ON_SUCCESS",
		StatusFinishedOnFailure: "FINISHED_ON_FAILURE",
	}
	for status, want := range cases {
		if got := status.String(); got != want {
			t.Fatalf("status %d: expected %q, got %q", status, want, got)
		}
	}
}
