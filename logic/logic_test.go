package logic

import (
	"testing"

	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
)

// memStore is a minimal FactStore/MutableFactStore used only to exercise
// logic in isolation (worldstate.WorldState is the real implementation).
type memStore struct {
	facts   map[fact.ExactSignature]fact.Fact
	byName  map[string][]fact.Fact
	typeUni map[string][]ontology.Entity
}

func newMemStore() *memStore {
	return &memStore{facts: map[fact.ExactSignature]fact.Fact{}, byName: map[string][]fact.Fact{}}
}

func (s *memStore) Has(f fact.Fact) bool {
	for _, got := range s.byName[f.Name] {
		if got.Equal(f) {
			return true
		}
	}
	return false
}

func (s *memStore) FluentValue(f fact.Fact) (ontology.Entity, bool) {
	for _, got := range s.byName[f.Name] {
		if len(got.Arguments) != len(f.Arguments) {
			continue
		}
		match := true
		for i := range got.Arguments {
			ge, _ := ontology.AsEntity(got.Arguments[i])
			fe, _ := ontology.AsEntity(f.Arguments[i])
			if !ge.Equal(fe) {
				match = false
				break
			}
		}
		if match && got.Fluent != nil {
			v, _ := ontology.AsEntity(got.Fluent)
			return v, true
		}
	}
	return ontology.Entity{}, false
}

func (s *memStore) EntitiesOfType(typ *ontology.Type) []ontology.Entity {
	return s.typeUni[typ.Name()]
}

func (s *memStore) Add(f fact.Fact) (bool, *fact.Fact) {
	var replaced *fact.Fact
	if f.HasFluent() {
		kept := s.byName[f.Name][:0]
		for _, got := range s.byName[f.Name] {
			if sameArgs(got, f) {
				r := got
				replaced = &r
				continue
			}
			kept = append(kept, got)
		}
		s.byName[f.Name] = kept
	}
	if s.Has(f) {
		return false, replaced
	}
	s.byName[f.Name] = append(s.byName[f.Name], f)
	s.facts[f.ExactSignature()] = f
	return true, replaced
}

func (s *memStore) Remove(f fact.Fact) (bool, *fact.Fact) {
	list := s.byName[f.Name]
	for i, got := range list {
		if f.IsCompleteWithAnyFluent() {
			if sameArgs(got, f) {
				s.byName[f.Name] = append(list[:i], list[i+1:]...)
				r := got
				return true, &r
			}
			continue
		}
		if got.Equal(f) {
			s.byName[f.Name] = append(list[:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func sameArgs(a, b fact.Fact) bool {
	if len(a.Arguments) != len(b.Arguments) {
		return false
	}
	for i := range a.Arguments {
		ae, _ := ontology.AsEntity(a.Arguments[i])
		be, _ := ontology.AsEntity(b.Arguments[i])
		if !ae.Equal(be) {
			return false
		}
	}
	return true
}

func TestFactCondition_IsTrue(t *testing.T) {
	store := newMemStore()
	reg := ontology.NewRegistry()
	robot, _ := reg.Declare("robot", "")
	r2d2 := ontology.NewEntity("r2d2", robot)
	store.Add(fact.New("greeted", r2d2))

	cond := FactCondition{Fact: fact.New("greeted", r2d2)}
	ok, _ := cond.IsTrue(store, fact.NewBindings())
	if !ok {
		t.Fatal("expected greeted(r2d2) to be true")
	}

	negated := FactCondition{Fact: fact.New("greeted", r2d2), Negated: true}
	ok, _ = negated.IsTrue(store, fact.NewBindings())
	if ok {
		t.Fatal("expected not(greeted(r2d2)) to be false")
	}
}

func TestAndCondition_IsTrue(t *testing.T) {
	store := newMemStore()
	reg := ontology.NewRegistry()
	robot, _ := reg.Declare("robot", "")
	r2d2 := ontology.NewEntity("r2d2", robot)
	store.Add(fact.New("greeted", r2d2))
	store.Add(fact.New("checkedIn", r2d2))

	cond := AndCondition{Items: []Condition{
		FactCondition{Fact: fact.New("greeted", r2d2)},
		FactCondition{Fact: fact.New("checkedIn", r2d2)},
	}}
	ok, _ := cond.IsTrue(store, fact.NewBindings())
	if !ok {
		t.Fatal("expected conjunction to hold")
	}
}

func TestAssignModification_SetsAndOverwrites(t *testing.T) {
	store := newMemStore()
	reg := ontology.NewRegistry()
	numberType := reg.Number()

	mod := AssignModification{
		Target:     fact.New("numberOfQuestion"),
		FluentType: numberType,
		Value:      Literal(0),
	}
	_, _, err := mod.Apply(store, fact.NewBindings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := store.FluentValue(fact.New("numberOfQuestion"))
	if !ok {
		t.Fatal("expected numberOfQuestion to be set")
	}
	if n, _ := v.AsNumber(); n != 0 {
		t.Errorf("expected 0, got %v", n)
	}

	inc := CounterModification{
		Op:     CounterIncrease,
		Target: fact.New("numberOfQuestion"),
		Delta:  Literal(1),
	}
	_, _, err = inc.Apply(store, fact.NewBindings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ = store.FluentValue(fact.New("numberOfQuestion"))
	if n, _ := v.AsNumber(); n != 1 {
		t.Errorf("expected 1 after increase, got %v", n)
	}
}

func TestCloneInverted_DeMorgan(t *testing.T) {
	reg := ontology.NewRegistry()
	robot, _ := reg.Declare("robot", "")
	r2d2 := ontology.NewEntity("r2d2", robot)

	a := FactCondition{Fact: fact.New("greeted", r2d2)}
	b := FactCondition{Fact: fact.New("checkedIn", r2d2)}
	and := AndCondition{Items: []Condition{a, b}}

	inverted := CloneInverted(and)
	or, ok := inverted.(OrCondition)
	if !ok || len(or.Items) != 2 {
		t.Fatalf("expected not(and(a,b)) to invert to or(not a, not b), got %#v", inverted)
	}
	if fc, ok := or.Items[0].(FactCondition); !ok || !fc.Negated {
		t.Error("expected first inverted item to be negated")
	}
}
