package logic

// CloneInverted returns the negation normal form of Not(c): De Morgan's
// laws push the negation down to the leaves, not-not collapses to the
// original, and an equality's operator flips to its complement rather
// than being wrapped in a NotCondition (spec.md §4.2).
func CloneInverted(c Condition) Condition {
	switch v := c.(type) {
	case FactCondition:
		return FactCondition{Fact: v.Fact, Negated: !v.Negated}
	case NotCondition:
		return v.Inner
	case AndCondition:
		items := make([]Condition, len(v.Items))
		for i, it := range v.Items {
			items[i] = CloneInverted(it)
		}
		return OrCondition{Items: items}
	case OrCondition:
		items := make([]Condition, len(v.Items))
		for i, it := range v.Items {
			items[i] = CloneInverted(it)
		}
		return AndCondition{Items: items}
	case ExistsCondition:
		// not exists(p, c) has no ForAll node in this AST (spec.md §3
		// lists no universal quantifier condition); the planner never
		// needs to invert an Exists, so this degrades to a plain
		// negation wrapper, matching the source's narrower inversion
		// support.
		return NotCondition{Inner: v}
	case EqualityCondition:
		return EqualityCondition{Op: complementOp(v.Op), Left: v.Left, Right: v.Right}
	default:
		return NotCondition{Inner: c}
	}
}

func complementOp(op EqualityOp) EqualityOp {
	switch op {
	case OpEquals:
		return OpNotEquals
	case OpNotEquals:
		return OpEquals
	case OpLessThan:
		return OpGreaterThan
	case OpGreaterThan:
		return OpLessThan
	default:
		return op
	}
}

// Negate returns a condition equivalent to "not c", already in negation
// normal form (spec.md §4.2: "Condition::clone(bindings, invert=true)").
func Negate(c Condition) Condition {
	return CloneInverted(c)
}
