package logic

import (
	"fmt"

	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
)

// ArithExpr is the arithmetic extension over fluents and numeric
// literals (spec.md §3): "+", "-", "*" over integer/float literals and
// functional-fluent references.
type ArithExpr interface {
	Eval(store FactStore, bindings fact.Bindings) (float64, bool)
	isArith()
}

// Literal is a constant numeric value.
type Literal float64

func (l Literal) Eval(FactStore, fact.Bindings) (float64, bool) { return float64(l), true }
func (Literal) isArith()                                        {}

// FluentRef evaluates to the current bound value of a functional fact's
// fluent.
type FluentRef struct {
	Fact fact.Fact
}

func (r FluentRef) Eval(store FactStore, bindings fact.Bindings) (float64, bool) {
	grounded := r.Fact.ReplaceArguments(bindings)
	if !grounded.IsGround() {
		return 0, false
	}
	v, ok := store.FluentValue(grounded)
	if !ok {
		return 0, false
	}
	return v.AsNumber()
}
func (FluentRef) isArith() {}

// ArithOp is the operator of a binary arithmetic expression.
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
)

func (op ArithOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	default:
		return "?"
	}
}

// BinaryArith is a binary arithmetic expression: left <op> right.
type BinaryArith struct {
	Op    ArithOp
	Left  ArithExpr
	Right ArithExpr
}

func (b BinaryArith) Eval(store FactStore, bindings fact.Bindings) (float64, bool) {
	l, ok := b.Left.Eval(store, bindings)
	if !ok {
		return 0, false
	}
	r, ok := b.Right.Eval(store, bindings)
	if !ok {
		return 0, false
	}
	switch b.Op {
	case OpAdd:
		return l + r, true
	case OpSub:
		return l - r, true
	case OpMul:
		return l * r, true
	default:
		return 0, false
	}
}
func (BinaryArith) isArith() {}

// NumberEntity converts a raw float64 result into an ontology.Entity of
// the registry's number type.
func NumberEntity(reg *ontology.Registry, v float64) ontology.Entity {
	return ontology.NumberEntity(v, reg.Number())
}

func (op ArithOp) apply(l, r float64) (float64, error) {
	switch op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	default:
		return 0, fmt.Errorf("%w: unknown arithmetic operator", ErrMalformedInput)
	}
}
