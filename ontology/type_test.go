package ontology

import "testing"

func TestRegistry_DeclareAndIsA(t *testing.T) {
	reg := NewRegistry()

	animal, err := reg.Declare("animal", "")
	if err != nil {
		t.Fatalf("Declare(animal) failed: %v", err)
	}

	dog, err := reg.Declare("dog", "animal")
	if err != nil {
		t.Fatalf("Declare(dog) failed: %v", err)
	}

	if !IsA(dog, animal) {
		t.Error("expected dog isA animal")
	}
	if IsA(animal, dog) {
		t.Error("did not expect animal isA dog")
	}
	if !IsA(dog, dog) {
		t.Error("expected dog isA dog (reflexive)")
	}
}

func TestRegistry_DeclareUnknownParent(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Declare("dog", "animal"); err == nil {
		t.Fatal("expected error declaring a type with an unknown parent")
	}
}

func TestRegistry_DeclareDuplicate(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Declare("animal", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := reg.Declare("animal", "robot"); err == nil {
		t.Fatal("expected error redeclaring a type under a different parent")
	}
}

func TestEntity_AnyNeverEqualsConcrete(t *testing.T) {
	reg := NewRegistry()
	robot, _ := reg.Declare("robot", "")

	any := AnyEntity(robot)
	concrete := NewEntity("r2d2", robot)

	if any.Equal(concrete) {
		t.Error("wildcard entity should never equal a concrete bound value")
	}
	if !any.Equal(AnyEntity(robot)) {
		t.Error("two wildcard entities of the same type should be equal")
	}
}

func TestParameter_AcceptsEntity(t *testing.T) {
	reg := NewRegistry()
	animal, _ := reg.Declare("animal", "")
	dog, _ := reg.Declare("dog", "animal")

	p := NewParameter("a", animal)
	if !p.AcceptsEntity(NewEntity("rex", dog)) {
		t.Error("expected animal-typed parameter to accept a dog entity")
	}

	cat, _ := reg.Declare("cat", "animal")
	p2 := NewParameter("d", dog)
	if p2.AcceptsEntity(NewEntity("felix", cat)) {
		t.Error("did not expect dog-typed parameter to accept a cat entity")
	}
}
