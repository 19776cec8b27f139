// Package domain holds Actions, compiled Axioms, named event sets, the
// incremental precondition/effect indices the planner queries, and the
// Domain's structural identity (spec.md §4.5).
package domain

import (
	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/goalstack"
	"github.com/carloacu/sequential-goals-planner-sub001/logic"
	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
)

// ProblemModification is the effect of an Action: a split between what
// happens the instant the action starts, what happens when it completes,
// a non-committal "could happen" variant used by reachability estimates,
// and the goals it enqueues (spec.md §4.5, §4.6's notifyActionStarted/
// notifyActionDone split).
type ProblemModification struct {
	// WorldStateModificationAtStart applies when the action starts
	// (notifyActionStarted).
	WorldStateModificationAtStart logic.Modification

	// WorldStateModification applies when the action finishes
	// (notifyActionDone).
	WorldStateModification logic.Modification

	// PotentialWorldStateModification is consulted by distance estimates
	// and reachability walks without being guaranteed to actually apply
	// (e.g. the branch of a When the precondition may or may not take).
	PotentialWorldStateModification logic.Modification

	// GoalsToAdd enqueues new goals at the given priorities.
	GoalsToAdd map[int][]*goalstack.Goal

	// GoalsToAddInCurrentPriority appends goals to whatever priority the
	// triggering goal occupied (spec.md §9's defaultPriority open
	// question covers the case where there is no current priority).
	GoalsToAddInCurrentPriority []*goalstack.Goal
}

// forEachModification visits every non-nil Modification carried by m.
func (m ProblemModification) forEachModification(visit func(logic.Modification)) {
	if m.WorldStateModificationAtStart != nil {
		visit(m.WorldStateModificationAtStart)
	}
	if m.WorldStateModification != nil {
		visit(m.WorldStateModification)
	}
	if m.PotentialWorldStateModification != nil {
		visit(m.PotentialWorldStateModification)
	}
}

// Action is a parameterized operator: a precondition gating when it may
// apply and an effect describing what changes when it does (spec.md §3,
// §4.5).
type Action struct {
	ID         string
	Parameters []ontology.Parameter
	Precondition logic.Condition
	Effect     ProblemModification

	// PreferInContext are soft conditions that tilt candidate selection
	// toward this action without gating it (spec.md GLOSSARY).
	PreferInContext []logic.Condition

	// HighImportanceOfNotRepeatingIt makes the planner's cost function
	// weigh this action's historical invocation count (spec.md §4.6).
	HighImportanceOfNotRepeatingIt bool
}

// EffectModifications returns every non-nil Modification carried by the
// action's effect, for callers outside this package (the planner) that
// need to inspect them directly.
func (a Action) EffectModifications() []logic.Modification {
	var out []logic.Modification
	a.Effect.forEachModification(func(m logic.Modification) { out = append(out, m) })
	return out
}

// EffectEqualsPrecondition reports the "no progress" edge policy of
// spec.md §4.6 for external callers (the planner).
func (a Action) EffectEqualsPrecondition() bool { return a.effectEqualsPrecondition() }

// effectEqualsPrecondition reports whether applying Effect could not
// possibly change anything the Precondition already guarantees — the "no
// progress" edge policy of spec.md §4.6. This is a syntactic, conservative
// check: it only catches the case the spec calls out explicitly (effect
// and precondition reference exactly the same facts with the same
// polarity), not general semantic equivalence.
func (a Action) effectEqualsPrecondition() bool {
	if a.Precondition == nil {
		return false
	}
	precFacts := map[string]bool{}
	a.Precondition.ForEachFact(func(f fact.Fact, negated bool) {
		precFacts[signatureKey(f, negated)] = true
	})
	effectFacts := map[string]bool{}
	a.Effect.forEachModification(func(m logic.Modification) {
		m.ForEachFact(func(f fact.Fact) {
			effectFacts[signatureKey(f, false)] = true
		})
	})
	if len(precFacts) == 0 || len(precFacts) != len(effectFacts) {
		return false
	}
	for key := range precFacts {
		if !effectFacts[key] {
			return false
		}
	}
	return true
}

// signatureKey builds a map key combining a fact's exact signature with
// its polarity, used to compare precondition references against effect
// references irrespective of argument binding direction.
func signatureKey(f fact.Fact, negated bool) string {
	key := string(f.ExactSignature())
	if negated {
		return "!" + key
	}
	return key
}
