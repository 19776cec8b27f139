package problem

import (
	"github.com/carloacu/sequential-goals-planner-sub001/goalstack"
	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
	"github.com/carloacu/sequential-goals-planner-sub001/worldstate"
)

// Problem is the planner's unit of work: a world state, a goal stack, the
// per-problem action-invocation history, and problem-local constant
// entities supplementing the domain ontology (spec.md §3).
type Problem struct {
	WorldState *worldstate.WorldState
	GoalStack  *goalstack.GoalStack
	Historical *Historical
	Entities   []ontology.Entity
}

// New creates a Problem with a fresh WorldState, GoalStack and
// Historical.
func New(opts ...worldstate.Option) *Problem {
	return &Problem{
		WorldState: worldstate.NewWorldState(opts...),
		GoalStack:  goalstack.NewGoalStack(),
		Historical: NewHistorical(),
	}
}

// EntitiesOfType returns problem-local entities compatible with typ, for
// callers (e.g. quantifier expansion) that must see both domain and
// problem entities; WorldState.EntitiesOfType only sees entities that
// have appeared in some fact, so declared-but-unused problem constants
// still need this explicit list.
func (p *Problem) EntitiesOfType(typ *ontology.Type) []ontology.Entity {
	var out []ontology.Entity
	for _, e := range p.Entities {
		if e.CompatibleWith(typ) {
			out = append(out, e)
		}
	}
	return out
}
