package domain

import (
	"errors"
	"testing"

	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/logic"
	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
	"github.com/carloacu/sequential-goals-planner-sub001/worldstate"
)

func TestDomain_AddActionIndexesPrecondition(t *testing.T) {
	reg := ontology.NewRegistry()
	robot, _ := reg.Declare("robot", "")
	r2d2 := ontology.NewEntity("r2d2", robot)

	d := New()
	before := d.UUID()

	greeted := fact.New("greeted", r2d2)
	checkIn := Action{
		ID:           "checkIn",
		Precondition: logic.FactCondition{Fact: greeted},
		Effect: ProblemModification{
			WorldStateModification: logic.AddFact{Fact: fact.New("checkedIn", r2d2)},
		},
	}
	if err := d.AddAction(checkIn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.UUID() == before {
		t.Fatal("expected UUID to change after a structural mutation")
	}

	ids := d.Caches().ActionsReferencing(greeted.RelaxedSignature(), false)
	if len(ids) != 1 || ids[0] != "checkIn" {
		t.Fatalf("expected checkIn indexed under greeted's signature, got %v", ids)
	}
}

func TestDomain_ActionsWithoutPrecondition(t *testing.T) {
	d := New()
	greet := Action{
		ID:     "greet",
		Effect: ProblemModification{WorldStateModification: logic.AddFact{Fact: fact.New("greeted")}},
	}
	if err := d.AddAction(greet); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := d.Caches().ActionsWithoutPrecondition()
	if len(ids) != 1 || ids[0] != "greet" {
		t.Fatalf("expected greet with no precondition, got %v", ids)
	}
}

func TestDomain_PredecessorCache(t *testing.T) {
	d := New()
	greet := Action{
		ID:     "greet",
		Effect: ProblemModification{WorldStateModification: logic.AddFact{Fact: fact.New("greeted")}},
	}
	checkIn := Action{
		ID:           "checkIn",
		Precondition: logic.FactCondition{Fact: fact.New("greeted")},
		Effect:       ProblemModification{WorldStateModification: logic.AddFact{Fact: fact.New("checkedIn")}},
	}
	if err := d.AddAction(greet); err != nil {
		t.Fatal(err)
	}
	if err := d.AddAction(checkIn); err != nil {
		t.Fatal(err)
	}
	preds := d.Caches().Predecessors("checkIn")
	if len(preds) != 1 || preds[0] != "greet" {
		t.Fatalf("expected greet as checkIn's predecessor, got %v", preds)
	}
}

func TestDomain_AddActionRejectsUnknownPredicate(t *testing.T) {
	d := New()
	d.AddPredicate(ontology.NewPredicate("greeted"))
	bad := Action{
		ID:           "mystery",
		Precondition: logic.FactCondition{Fact: fact.New("undeclared")},
	}
	err := d.AddAction(bad)
	if err == nil {
		t.Fatal("expected an UnknownSymbol error")
	}
	var perr *logic.PlannerError
	if !errors.As(err, &perr) || perr.Kind != logic.KindUnknownSymbol {
		t.Fatalf("expected KindUnknownSymbol, got %v", err)
	}
	if !errors.Is(err, logic.ErrUnknownSymbol) {
		t.Fatal("expected errors.Is to match the sentinel")
	}
}

func TestDomain_AddActionRejectsAssignToNonFunctionalPredicate(t *testing.T) {
	d := New()
	d.AddPredicate(ontology.NewPredicate("greeted"))
	bad := Action{
		ID: "badAssign",
		Effect: ProblemModification{
			WorldStateModification: logic.AssignModification{
				Target: fact.New("greeted"),
				Value:  ontology.AnyEntity(nil),
			},
		},
	}
	err := d.AddAction(bad)
	if err == nil {
		t.Fatal("expected a MalformedInput error")
	}
}

func TestAxiom_CompileProducesPositiveAndNegativeEvents(t *testing.T) {
	reg := ontology.NewRegistry()
	numberType := reg.Number()

	cond := logic.EqualityCondition{
		Op:    logic.OpEquals,
		Left:  logic.FactTerm{Fact: fact.New("numberOfQuestion")},
		Right: logic.ArithTerm{Expr: logic.Literal(3), Registry: reg},
	}
	axiom := Axiom{
		ID:        "allAsked",
		Condition: cond,
		Head:      logic.AddFact{Fact: fact.New("ask_all")},
	}
	d := New()
	store := worldstate.NewWorldState()
	d.AddAxiom(store, axiom)

	es, ok := d.eventSets["allAsked"]
	if !ok || len(es.Events) != 2 {
		t.Fatalf("expected a compiled 2-event set, got %v", es)
	}
	_ = numberType
}
