package logic

import (
	"strings"

	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
)

// Condition is the tagged-union AST for first-order formulas (spec.md
// §3). Each variant is a small struct implementing the marker method;
// spec.md §9's "rewrite as a tagged variant" redesign flag is realized
// here as a closed set of concrete types behind the interface rather
// than a class hierarchy.
type Condition interface {
	// IsTrue evaluates the condition against store under the given
	// bindings (possibly nil/empty), returning whether it holds and a
	// refined bindings map usable by the caller for further unification
	// (spec.md §4.2).
	IsTrue(store FactStore, bindings fact.Bindings) (bool, fact.Bindings)

	// ForEachFact calls visit for every Fact literal reachable in the
	// AST (spec.md §9's visitor replacement for virtual dispatch), used
	// by Domain to index actions/events by the facts their precondition
	// references.
	ForEachFact(visit func(f fact.Fact, negated bool))

	// String renders the condition in the textual grammar of spec.md §6.
	String() string

	isCondition()
}

// FactCondition is a (possibly negated) fact literal.
type FactCondition struct {
	Fact    fact.Fact
	Negated bool
}

func (c FactCondition) isCondition() {}

func (c FactCondition) IsTrue(store FactStore, bindings fact.Bindings) (bool, fact.Bindings) {
	out := bindings.Clone()
	grounded := c.Fact.ReplaceArguments(out)
	if grounded.IsGround() {
		present := store.Has(grounded)
		if c.Negated {
			present = !present
		}
		return present, out
	}
	// Partially bound: try every compatible ground fact the store knows
	// of by unifying positionally against candidate entities per
	// parameter's declared type — handled by the caller's quantifier
	// expansion for Exists; here we degrade to "cannot decide without
	// more bindings" which IsTrue treats as false outside of Exists.
	return false, out
}

func (c FactCondition) ForEachFact(visit func(fact.Fact, bool)) {
	visit(c.Fact, c.Negated)
}

func (c FactCondition) String() string {
	if c.Negated {
		return "!" + c.Fact.String()
	}
	return c.Fact.String()
}

// NotCondition negates its inner condition.
type NotCondition struct{ Inner Condition }

func (NotCondition) isCondition() {}
func (c NotCondition) IsTrue(store FactStore, bindings fact.Bindings) (bool, fact.Bindings) {
	ok, b := c.Inner.IsTrue(store, bindings)
	return !ok, b
}
func (c NotCondition) ForEachFact(visit func(fact.Fact, bool)) { c.Inner.ForEachFact(visit) }
func (c NotCondition) String() string                          { return "not(" + c.Inner.String() + ")" }

// AndCondition is a conjunction.
type AndCondition struct{ Items []Condition }

func (AndCondition) isCondition() {}
func (c AndCondition) IsTrue(store FactStore, bindings fact.Bindings) (bool, fact.Bindings) {
	cur := bindings.Clone()
	for _, item := range c.Items {
		ok, refined := item.IsTrue(store, cur)
		if !ok {
			return false, cur
		}
		cur = cur.Merge(refined)
		if !cur.IsConsistent() {
			return false, cur
		}
	}
	return true, cur
}
func (c AndCondition) ForEachFact(visit func(fact.Fact, bool)) {
	for _, item := range c.Items {
		item.ForEachFact(visit)
	}
}
func (c AndCondition) String() string { return "and(" + joinConditions(c.Items) + ")" }

// OrCondition is a disjunction.
type OrCondition struct{ Items []Condition }

func (OrCondition) isCondition() {}
func (c OrCondition) IsTrue(store FactStore, bindings fact.Bindings) (bool, fact.Bindings) {
	for _, item := range c.Items {
		if ok, refined := item.IsTrue(store, bindings); ok {
			return true, refined
		}
	}
	return false, bindings.Clone()
}
func (c OrCondition) ForEachFact(visit func(fact.Fact, bool)) {
	for _, item := range c.Items {
		item.ForEachFact(visit)
	}
}
func (c OrCondition) String() string { return "or(" + joinConditions(c.Items) + ")" }

// Imply builds Or(Not(a), b), the expansion spec.md §3 mandates for
// Imply(a,b).
func Imply(a, b Condition) Condition {
	return OrCondition{Items: []Condition{NotCondition{Inner: a}, b}}
}

// ExistsCondition existentially quantifies Param over Inner.
type ExistsCondition struct {
	Param ontology.Parameter
	Inner Condition
}

func (ExistsCondition) isCondition() {}
func (c ExistsCondition) IsTrue(store FactStore, bindings fact.Bindings) (bool, fact.Bindings) {
	for _, e := range store.EntitiesOfType(c.Param.Type) {
		trial := bindings.Clone()
		trial.Restrict(c.Param, ontology.NewEntitySet(e))
		if ok, refined := c.Inner.IsTrue(store, trial); ok {
			return true, refined
		}
	}
	return false, bindings.Clone()
}
func (c ExistsCondition) ForEachFact(visit func(fact.Fact, bool)) { c.Inner.ForEachFact(visit) }
func (c ExistsCondition) String() string {
	return "exists(" + c.Param.String() + ", " + c.Inner.String() + ")"
}

// EqualityOp is the comparison operator of an EqualityCondition.
type EqualityOp int

const (
	OpEquals EqualityOp = iota
	OpNotEquals
	OpLessThan
	OpGreaterThan
)

func (op EqualityOp) String() string {
	switch op {
	case OpEquals:
		return "="
	case OpNotEquals:
		return "!="
	case OpLessThan:
		return "<"
	case OpGreaterThan:
		return ">"
	default:
		return "?"
	}
}

// TermExpr is either side of an EqualityCondition: a fact reference (for
// `=`/`!=` over bound fact values) or an arithmetic expression (for
// numeric comparisons, spec.md §4.2: "interpret both sides as the
// arithmetic extension Number").
type TermExpr interface {
	resolve(store FactStore, bindings fact.Bindings) (ontology.Entity, bool)
	isTermExpr()
}

// FactTerm resolves to a fact's current fluent value (or, for a
// relational fact, a boolean-ish entity representing presence).
type FactTerm struct{ Fact fact.Fact }

func (t FactTerm) isTermExpr() {}
func (t FactTerm) resolve(store FactStore, bindings fact.Bindings) (ontology.Entity, bool) {
	grounded := t.Fact.ReplaceArguments(bindings)
	if !grounded.IsGround() {
		return ontology.Entity{}, false
	}
	if grounded.HasFluent() {
		return store.FluentValue(grounded)
	}
	if store.Has(grounded) {
		return ontology.NewEntity("true", nil), true
	}
	return ontology.Entity{}, false
}

// ArithTerm resolves to the numeric value of an ArithExpr.
type ArithTerm struct {
	Expr     ArithExpr
	Registry *ontology.Registry
}

func (t ArithTerm) isTermExpr() {}
func (t ArithTerm) resolve(store FactStore, bindings fact.Bindings) (ontology.Entity, bool) {
	v, ok := t.Expr.Eval(store, bindings)
	if !ok {
		return ontology.Entity{}, false
	}
	return NumberEntity(t.Registry, v), true
}

// EqualityCondition compares two TermExprs.
type EqualityCondition struct {
	Op    EqualityOp
	Left  TermExpr
	Right TermExpr
}

func (EqualityCondition) isCondition() {}
func (c EqualityCondition) IsTrue(store FactStore, bindings fact.Bindings) (bool, fact.Bindings) {
	lv, lok := c.Left.resolve(store, bindings)
	rv, rok := c.Right.resolve(store, bindings)
	if !lok || !rok {
		return false, bindings.Clone()
	}
	switch c.Op {
	case OpEquals:
		return lv.Equal(rv), bindings.Clone()
	case OpNotEquals:
		return !lv.Equal(rv), bindings.Clone()
	case OpLessThan, OpGreaterThan:
		lf, lok := lv.AsNumber()
		rf, rok := rv.AsNumber()
		if !lok || !rok {
			return false, bindings.Clone()
		}
		if c.Op == OpLessThan {
			return lf < rf, bindings.Clone()
		}
		return lf > rf, bindings.Clone()
	default:
		return false, bindings.Clone()
	}
}
func (c EqualityCondition) ForEachFact(visit func(fact.Fact, bool)) {
	if ft, ok := c.Left.(FactTerm); ok {
		visit(ft.Fact, false)
	}
	if ft, ok := c.Right.(FactTerm); ok {
		visit(ft.Fact, false)
	}
}
func (c EqualityCondition) String() string {
	return termExprString(c.Left) + c.Op.String() + termExprString(c.Right)
}

func termExprString(t TermExpr) string {
	switch v := t.(type) {
	case FactTerm:
		return v.Fact.String()
	case ArithTerm:
		return "<expr>"
	default:
		return "?"
	}
}

func joinConditions(items []Condition) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, ", ")
}
