package fact

import (
	"testing"

	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
)

func TestFact_IsPunctual(t *testing.T) {
	if !New("~greeted").IsPunctual() {
		t.Error("expected ~greeted to be punctual")
	}
	if New("greeted").IsPunctual() {
		t.Error("did not expect greeted to be punctual")
	}
}

func TestFact_Equal(t *testing.T) {
	reg := ontology.NewRegistry()
	robot, _ := reg.Declare("robot", "")

	a := New("at", ontology.NewEntity("r2d2", robot))
	b := New("at", ontology.NewEntity("r2d2", robot))
	c := New("at", ontology.NewEntity("c3po", robot))

	if !a.Equal(b) {
		t.Error("expected equal facts to compare equal")
	}
	if a.Equal(c) {
		t.Error("did not expect facts with different arguments to be equal")
	}
}

func TestFact_ReplaceArguments(t *testing.T) {
	reg := ontology.NewRegistry()
	robot, _ := reg.Declare("robot", "")

	p := ontology.NewParameter("r", robot)
	templated := NewTerms("at", p)

	bindings := NewBindings()
	bindings.Restrict(p, ontology.NewEntitySet(ontology.NewEntity("r2d2", robot)))

	grounded := templated.ReplaceArguments(bindings)
	if !grounded.IsGround() {
		t.Fatal("expected grounded fact to be ground")
	}
	if grounded.Arguments[0].(ontology.Entity).Value() != "r2d2" {
		t.Errorf("unexpected grounded argument: %v", grounded.Arguments[0])
	}
}

func TestFact_ExtractParameterToArguments(t *testing.T) {
	reg := ontology.NewRegistry()
	robot, _ := reg.Declare("robot", "")

	p := ontology.NewParameter("r", robot)
	templated := NewTerms("at", p)
	example := New("at", ontology.NewEntity("r2d2", robot))

	out, ok := templated.ExtractParameterToArguments(example)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if out[p].Value() != "r2d2" {
		t.Errorf("unexpected binding: %v", out[p])
	}
}

func TestFact_IsInOtherFact(t *testing.T) {
	reg := ontology.NewRegistry()
	robot, _ := reg.Declare("robot", "")

	p := ontology.NewParameter("r", robot)
	templated := NewTerms("at", p)
	example := New("at", ontology.NewEntity("r2d2", robot))

	selfBindings := NewBindings()
	if !templated.IsInOtherFact(example, selfBindings, nil, false) {
		t.Fatal("expected templated fact to match example")
	}
	set, ok := selfBindings[p]
	if !ok || set.Len() != 1 {
		t.Fatalf("expected a single-candidate binding for %v, got %v", p, set)
	}
}

func TestFact_CompleteWithAnyFluent(t *testing.T) {
	reg := ontology.NewRegistry()
	numberType := reg.Number()

	f := New("battery").WithFluentTerm(ontology.AnyEntity(numberType), false)
	if !f.IsCompleteWithAnyFluent() {
		t.Error("expected wildcard fluent fact to be complete-with-any-fluent")
	}
}
