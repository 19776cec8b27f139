package logic

import (
	"fmt"
	"strings"

	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
)

// Modification is the tagged-union AST for world-state effects
// (spec.md §3/§4.2): Add/Delete/And/Assign/Increase/Decrease/ForAll/When.
type Modification interface {
	// Apply executes the modification against store under bindings,
	// returning the facts added/removed so callers can build change
	// notifications (spec.md §5, §11).
	Apply(store MutableFactStore, bindings fact.Bindings) (added, removed []fact.Fact, err error)

	// ForEachFact visits every Fact literal this modification may touch,
	// mirroring Condition.ForEachFact (used to build Domain's effect
	// indices).
	ForEachFact(visit func(f fact.Fact))

	String() string

	isModification()
}

// AddFact stores a fact.
type AddFact struct{ Fact fact.Fact }

func (AddFact) isModification() {}
func (m AddFact) Apply(store MutableFactStore, bindings fact.Bindings) ([]fact.Fact, []fact.Fact, error) {
	grounded := m.Fact.ReplaceArguments(bindings)
	if !grounded.IsGround() {
		return nil, nil, NewPlannerError(KindMalformedInput, grounded.Name, "cannot add a fact with unbound arguments")
	}
	added, replaced := store.Add(grounded)
	if !added {
		return nil, nil, nil
	}
	var removed []fact.Fact
	if replaced != nil {
		removed = append(removed, *replaced)
	}
	return []fact.Fact{grounded}, removed, nil
}
func (m AddFact) ForEachFact(visit func(fact.Fact)) { visit(m.Fact) }
func (m AddFact) String() string                    { return "add(" + m.Fact.String() + ")" }

// DeleteFact removes a fact.
type DeleteFact struct{ Fact fact.Fact }

func (DeleteFact) isModification() {}
func (m DeleteFact) Apply(store MutableFactStore, bindings fact.Bindings) ([]fact.Fact, []fact.Fact, error) {
	grounded := m.Fact.ReplaceArguments(bindings)
	if !grounded.IsGround() {
		return nil, nil, NewPlannerError(KindMalformedInput, grounded.Name, "cannot delete a fact with unbound arguments")
	}
	removedOK, actual := store.Remove(grounded)
	if !removedOK {
		return nil, nil, nil
	}
	if actual != nil {
		return nil, []fact.Fact{*actual}, nil
	}
	return nil, []fact.Fact{grounded}, nil
}
func (m DeleteFact) ForEachFact(visit func(fact.Fact)) { visit(m.Fact) }
func (m DeleteFact) String() string                    { return "delete(" + m.Fact.String() + ")" }

// AndModification applies its items in order.
type AndModification struct{ Items []Modification }

func (AndModification) isModification() {}
func (m AndModification) Apply(store MutableFactStore, bindings fact.Bindings) ([]fact.Fact, []fact.Fact, error) {
	var added, removed []fact.Fact
	for _, item := range m.Items {
		a, r, err := item.Apply(store, bindings)
		if err != nil {
			return added, removed, err
		}
		added = append(added, a...)
		removed = append(removed, r...)
	}
	return added, removed, nil
}
func (m AndModification) ForEachFact(visit func(fact.Fact)) {
	for _, item := range m.Items {
		item.ForEachFact(visit)
	}
}
func (m AndModification) String() string {
	parts := make([]string, len(m.Items))
	for i, it := range m.Items {
		parts[i] = it.String()
	}
	return "and(" + strings.Join(parts, ", ") + ")"
}

// UndefinedValue is the sentinel rhs of Assign meaning "remove the fact"
// (the literal `undefined` of spec.md §6).
type UndefinedValue struct{}

// AssignModification sets a functional fact's fluent. Value is one of
// ArithExpr, fact.Fact (copy the rhs fluent's current bound value) or
// UndefinedValue{} (remove the fact). Target names the function
// application (predicate name + arguments) without a bound fluent;
// FluentType is the predicate's declared fluent type, needed to build the
// new bound entity when Value is a plain number.
type AssignModification struct {
	Target     fact.Fact // the functional fact whose fluent is being set
	FluentType *ontology.Type
	Value      interface{}
}

func (AssignModification) isModification() {}
func (m AssignModification) Apply(store MutableFactStore, bindings fact.Bindings) ([]fact.Fact, []fact.Fact, error) {
	target := m.Target.ReplaceArguments(bindings)
	if m.FluentType == nil {
		return nil, nil, NewPlannerError(KindMalformedInput, target.Name, "assign to a non-functional predicate")
	}

	if _, isUndef := m.Value.(UndefinedValue); isUndef {
		wildcard := target.WithFluentTerm(ontology.AnyEntity(m.FluentType), false)
		removedOK, actual := store.Remove(wildcard)
		if !removedOK {
			return nil, nil, nil
		}
		if actual != nil {
			return nil, []fact.Fact{*actual}, nil
		}
		return nil, []fact.Fact{target}, nil
	}

	var value ontology.Entity
	switch v := m.Value.(type) {
	case ArithExpr:
		f, ok := v.Eval(store, bindings)
		if !ok {
			return nil, nil, NewPlannerError(KindMalformedInput, target.Name, "assign rhs did not evaluate")
		}
		value = ontology.NumberEntity(f, m.FluentType)
	case fact.Fact:
		rhs := v.ReplaceArguments(bindings)
		resolved, ok := store.FluentValue(rhs)
		if !ok {
			return nil, nil, NewPlannerError(KindMalformedInput, target.Name, "assign rhs fluent has no current value")
		}
		value = resolved
	case ontology.Entity:
		value = v
	default:
		return nil, nil, NewPlannerError(KindMalformedInput, target.Name, "unsupported assign rhs")
	}

	newFact := fact.NewWithFluent(target.Name, value, false, target.GroundArguments()...)
	_, replaced := store.Add(newFact)
	var removed []fact.Fact
	if replaced != nil {
		removed = append(removed, *replaced)
	}
	return []fact.Fact{newFact}, removed, nil
}
func (m AssignModification) ForEachFact(visit func(fact.Fact)) { visit(m.Target) }
func (m AssignModification) String() string {
	return fmt.Sprintf("assign(%s, %v)", m.Target.String(), m.Value)
}

// CounterOp distinguishes Increase from Decrease.
type CounterOp int

const (
	CounterIncrease CounterOp = iota
	CounterDecrease
)

// CounterModification increases or decreases a numeric fluent by the
// value of an arithmetic expression.
type CounterModification struct {
	Op     CounterOp
	Target fact.Fact
	Delta  ArithExpr
}

func (CounterModification) isModification() {}
func (m CounterModification) Apply(store MutableFactStore, bindings fact.Bindings) ([]fact.Fact, []fact.Fact, error) {
	target := m.Target.ReplaceArguments(bindings)
	current, ok := store.FluentValue(target)
	if !ok {
		return nil, nil, NewPlannerError(KindMalformedInput, target.Name, "counter modification on an unset fluent")
	}
	delta, ok := m.Delta.Eval(store, bindings)
	if !ok {
		return nil, nil, NewPlannerError(KindMalformedInput, target.Name, "counter delta did not evaluate")
	}
	cv, _ := current.AsNumber()
	var next float64
	if m.Op == CounterIncrease {
		next = cv + delta
	} else {
		next = cv - delta
	}
	newValue := ontology.NumberEntity(next, current.Type())
	newFact := fact.NewWithFluent(target.Name, newValue, false, target.GroundArguments()...)
	_, replaced := store.Add(newFact)
	var removed []fact.Fact
	if replaced != nil {
		removed = append(removed, *replaced)
	}
	return []fact.Fact{newFact}, removed, nil
}
func (m CounterModification) ForEachFact(visit func(fact.Fact)) { visit(m.Target) }
func (m CounterModification) String() string {
	op := "increase"
	if m.Op == CounterDecrease {
		op = "decrease"
	}
	return fmt.Sprintf("%s(%s)", op, m.Target.String())
}

// ForAllModification expands Inner once per grounded value of Param that
// satisfies Where, applying Then with Param bound each time (spec.md
// §3). When Where is nil, it expands over every entity of Param's type.
type ForAllModification struct {
	Param ontology.Parameter
	Where Condition // may be nil
	Then  Modification
}

func (ForAllModification) isModification() {}
func (m ForAllModification) Apply(store MutableFactStore, bindings fact.Bindings) ([]fact.Fact, []fact.Fact, error) {
	var added, removed []fact.Fact
	for _, e := range store.EntitiesOfType(m.Param.Type) {
		trial := bindings.Clone()
		trial.Restrict(m.Param, ontology.NewEntitySet(e))
		if m.Where != nil {
			ok, refined := m.Where.IsTrue(store, trial)
			if !ok {
				continue
			}
			trial = refined
		}
		a, r, err := m.Then.Apply(store, trial)
		if err != nil {
			return added, removed, err
		}
		added = append(added, a...)
		removed = append(removed, r...)
	}
	return added, removed, nil
}
func (m ForAllModification) ForEachFact(visit func(fact.Fact)) {
	if m.Where != nil {
		m.Where.ForEachFact(func(f fact.Fact, _ bool) { visit(f) })
	}
	m.Then.ForEachFact(visit)
}
func (m ForAllModification) String() string {
	return fmt.Sprintf("forall(%s, %s)", m.Param.String(), m.Then.String())
}

// WhenModification applies Then only if Cond currently holds — the
// conditional-effect node (spec.md §3).
type WhenModification struct {
	Cond Condition
	Then Modification
}

func (WhenModification) isModification() {}
func (m WhenModification) Apply(store MutableFactStore, bindings fact.Bindings) ([]fact.Fact, []fact.Fact, error) {
	ok, refined := m.Cond.IsTrue(store, bindings)
	if !ok {
		return nil, nil, nil
	}
	return m.Then.Apply(store, refined)
}
func (m WhenModification) ForEachFact(visit func(fact.Fact)) {
	m.Cond.ForEachFact(func(f fact.Fact, _ bool) { visit(f) })
	m.Then.ForEachFact(visit)
}
func (m WhenModification) String() string {
	return fmt.Sprintf("when(%s, %s)", m.Cond.String(), m.Then.String())
}
