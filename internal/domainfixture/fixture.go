// Package domainfixture loads a domain and problem from a YAML file, the
// same ManifestConfig/yaml.Unmarshal idiom the teacher's
// internal/agents/registry.go uses for agents-manifest.yaml, repointed at
// types/predicates/actions/goals instead of agent tiers.
//
// The format is deliberately flat key/value YAML, not the textual
// condition/modification grammar a domain file would otherwise need to
// parse: every argument is either a bare entity name or a "?name"
// parameter reference, resolved positionally against the declared
// predicate. This keeps the loader a straightforward structural
// unmarshal instead of a second parser.
package domainfixture

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/carloacu/sequential-goals-planner-sub001/domain"
	"github.com/carloacu/sequential-goals-planner-sub001/fact"
	"github.com/carloacu/sequential-goals-planner-sub001/goalstack"
	"github.com/carloacu/sequential-goals-planner-sub001/logic"
	"github.com/carloacu/sequential-goals-planner-sub001/ontology"
	"github.com/carloacu/sequential-goals-planner-sub001/problem"
)

// Config is the structure of a fixture YAML file.
type Config struct {
	Types      []TypeConfig      `yaml:"types"`
	Predicates []PredicateConfig `yaml:"predicates"`
	Entities   []EntityConfig    `yaml:"entities"`
	Initial    []FactConfig      `yaml:"initial"`
	Actions    []ActionConfig    `yaml:"actions"`
	Goals      []GoalConfig      `yaml:"goals"`
}

// TypeConfig declares one node of the type forest.
type TypeConfig struct {
	Name   string `yaml:"name"`
	Parent string `yaml:"parent"`
}

// PredicateConfig declares a relation, or a function into Fluent when
// Fluent is non-empty.
type PredicateConfig struct {
	Name   string   `yaml:"name"`
	Params []string `yaml:"params"`
	Fluent string   `yaml:"fluent"`
}

// EntityConfig declares a ground value of Type.
type EntityConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// FactConfig names a predicate application. Fluent, when set, is the
// bound value for a functional predicate's Args. Negated is read only by
// callers building a precondition or goal from this literal (it has no
// meaning for Initial or Effect facts, which are always asserted as-is).
type FactConfig struct {
	Predicate string   `yaml:"predicate"`
	Args      []string `yaml:"args"`
	Fluent    string   `yaml:"fluent"`
	Negated   bool     `yaml:"negated"`
}

// ParamConfig declares one of an action's typed parameters, referenced
// from FactConfig.Args as "?Name".
type ParamConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// AssignConfig is one `assign(target, value)` effect entry.
type AssignConfig struct {
	Predicate string   `yaml:"predicate"`
	Args      []string `yaml:"args"`
	Value     string   `yaml:"value"`
}

// EffectConfig is an action's ProblemModification, minus the
// start-of-action and potential-effect splits a fixture has no need to
// express.
type EffectConfig struct {
	Add    []FactConfig   `yaml:"add"`
	Delete []FactConfig   `yaml:"delete"`
	Assign []AssignConfig `yaml:"assign"`
}

// ActionConfig declares one domain.Action.
type ActionConfig struct {
	ID                     string       `yaml:"id"`
	Params                 []ParamConfig `yaml:"params"`
	Precondition           []FactConfig `yaml:"precondition"`
	Effect                 EffectConfig `yaml:"effect"`
	HighImportanceOfNotRepeatingIt bool `yaml:"highImportanceOfNotRepeatingIt"`
}

// GoalConfig declares one goalstack.Goal, enqueued at Priority.
type GoalConfig struct {
	Priority       int    `yaml:"priority"`
	Predicate      string `yaml:"predicate"`
	Args           []string `yaml:"args"`
	Negated        bool   `yaml:"negated"`
	Persistent     bool   `yaml:"persistent"`
	OneStepTowards bool   `yaml:"oneStepTowards"`
}

// Fixture is the fully-built result of loading a Config: the ontology
// registry, domain and problem a planner entry point can be called
// against directly.
type Fixture struct {
	Types    *ontology.Registry
	Domain   *domain.Domain
	Problem  *problem.Problem
}

// resolver holds the symbol tables a Config's facts and actions resolve
// their string tokens against.
type resolver struct {
	types      *ontology.Registry
	predicates map[string]ontology.Predicate
	entities   map[string]ontology.Entity
}

// Load reads path, parses it as a Config, and builds a Fixture from it.
// now timestamps the goals added to the returned Problem's GoalStack,
// mirroring the rest of this module's explicit-now style (spec.md §4.4).
func Load(path string, now time.Time) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("domainfixture: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("domainfixture: parse %s: %w", path, err)
	}

	return Build(&cfg, now)
}

// Build constructs a Fixture from an already-parsed Config, so tests can
// build fixtures inline without a YAML file on disk.
func Build(cfg *Config, now time.Time) (*Fixture, error) {
	r := &resolver{
		types:      ontology.NewRegistry(),
		predicates: map[string]ontology.Predicate{},
		entities:   map[string]ontology.Entity{},
	}

	for _, t := range cfg.Types {
		if _, err := r.types.Declare(t.Name, t.Parent); err != nil {
			return nil, fmt.Errorf("domainfixture: type %q: %w", t.Name, err)
		}
	}
	for _, e := range cfg.Entities {
		typ, ok := r.types.Lookup(e.Type)
		if !ok {
			return nil, fmt.Errorf("domainfixture: entity %q: unknown type %q", e.Name, e.Type)
		}
		r.entities[e.Name] = ontology.NewEntity(e.Name, typ)
	}
	for _, p := range cfg.Predicates {
		params := make([]ontology.Parameter, len(p.Params))
		for i, typeName := range p.Params {
			typ, ok := r.types.Lookup(typeName)
			if !ok {
				return nil, fmt.Errorf("domainfixture: predicate %q: unknown param type %q", p.Name, typeName)
			}
			params[i] = ontology.NewParameter(fmt.Sprintf("p%d", i), typ)
		}
		if p.Fluent != "" {
			fluentType, ok := r.types.Lookup(p.Fluent)
			if !ok {
				return nil, fmt.Errorf("domainfixture: predicate %q: unknown fluent type %q", p.Name, p.Fluent)
			}
			r.predicates[p.Name] = ontology.NewFunctionalPredicate(p.Name, fluentType, params...)
		} else {
			r.predicates[p.Name] = ontology.NewPredicate(p.Name, params...)
		}
	}

	dom := domain.New()
	for _, p := range r.predicates {
		dom.AddPredicate(p)
	}

	worldStateFacts := make([]fact.Fact, 0, len(cfg.Initial))
	for _, fc := range cfg.Initial {
		f, err := r.groundFact(fc, nil)
		if err != nil {
			return nil, fmt.Errorf("domainfixture: initial fact: %w", err)
		}
		worldStateFacts = append(worldStateFacts, f)
	}

	for _, ac := range cfg.Actions {
		action, err := r.buildAction(ac)
		if err != nil {
			return nil, fmt.Errorf("domainfixture: action %q: %w", ac.ID, err)
		}
		if err := dom.AddAction(action); err != nil {
			return nil, fmt.Errorf("domainfixture: action %q: %w", ac.ID, err)
		}
	}

	prob := problem.New()
	for _, f := range worldStateFacts {
		prob.WorldState.Add(f)
	}
	for _, e := range r.entities {
		prob.Entities = append(prob.Entities, e)
	}

	priorities := map[int][]*goalstack.Goal{}
	order := make([]int, 0)
	seen := map[int]bool{}
	for _, gc := range cfg.Goals {
		f, err := r.groundFact(FactConfig{Predicate: gc.Predicate, Args: gc.Args}, nil)
		if err != nil {
			return nil, fmt.Errorf("domainfixture: goal: %w", err)
		}
		g := &goalstack.Goal{
			Objective:      logic.FactCondition{Fact: f, Negated: gc.Negated},
			IsPersistent:   gc.Persistent,
			OneStepTowards: gc.OneStepTowards,
		}
		priorities[gc.Priority] = append(priorities[gc.Priority], g)
		if !seen[gc.Priority] {
			seen[gc.Priority] = true
			order = append(order, gc.Priority)
		}
	}
	for _, p := range order {
		prob.GoalStack.AddGoals(p, priorities[p], prob.WorldState, now)
	}

	return &Fixture{Types: r.types, Domain: dom, Problem: prob}, nil
}

// resolveTerm turns one argument token into an ontology.Term: a "?name"
// token becomes the matching entry of params (an action parameter
// reference), anything else is looked up as a declared entity.
func (r *resolver) resolveTerm(token string, params map[string]ontology.Parameter) (ontology.Term, error) {
	if strings.HasPrefix(token, ontology.ParameterSigil) {
		name := strings.TrimPrefix(token, ontology.ParameterSigil)
		p, ok := params[name]
		if !ok {
			return nil, fmt.Errorf("undeclared parameter %q", token)
		}
		return p, nil
	}
	e, ok := r.entities[token]
	if !ok {
		return nil, fmt.Errorf("undeclared entity %q", token)
	}
	return e, nil
}

// groundFact builds a fact.Fact for cfg, resolving each argument against
// params (nil when cfg carries no parameter references, as for initial
// facts and goals).
func (r *resolver) groundFact(cfg FactConfig, params map[string]ontology.Parameter) (fact.Fact, error) {
	pred, ok := r.predicates[cfg.Predicate]
	if !ok {
		return fact.Fact{}, fmt.Errorf("undeclared predicate %q", cfg.Predicate)
	}
	if len(cfg.Args) != pred.Arity() {
		return fact.Fact{}, fmt.Errorf("predicate %q wants %d args, got %d", cfg.Predicate, pred.Arity(), len(cfg.Args))
	}
	terms := make([]ontology.Term, len(cfg.Args))
	for i, a := range cfg.Args {
		t, err := r.resolveTerm(a, params)
		if err != nil {
			return fact.Fact{}, fmt.Errorf("predicate %q arg %d: %w", cfg.Predicate, i, err)
		}
		terms[i] = t
	}
	f := fact.NewTerms(cfg.Predicate, terms...)
	if pred.IsFunction() {
		if cfg.Fluent == "" {
			return fact.Fact{}, fmt.Errorf("predicate %q is functional and needs a fluent value", cfg.Predicate)
		}
		fluentTerm, err := r.resolveFluentValue(cfg.Fluent, pred.FluentType, params)
		if err != nil {
			return fact.Fact{}, fmt.Errorf("predicate %q fluent: %w", cfg.Predicate, err)
		}
		f = f.WithFluentTerm(fluentTerm, false)
	}
	return f, nil
}

// resolveFluentValue turns a fluent's string value into a Term: a
// numeric literal becomes a NumberEntity, a "?name" token an action
// parameter reference, anything else a declared entity.
func (r *resolver) resolveFluentValue(raw string, fluentType *ontology.Type, params map[string]ontology.Parameter) (ontology.Term, error) {
	if strings.HasPrefix(raw, ontology.ParameterSigil) {
		return r.resolveTerm(raw, params)
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return ontology.NumberEntity(n, fluentType), nil
	}
	return r.resolveTerm(raw, params)
}

// buildAction translates one ActionConfig into a domain.Action.
func (r *resolver) buildAction(cfg ActionConfig) (domain.Action, error) {
	params := make(map[string]ontology.Parameter, len(cfg.Params))
	paramList := make([]ontology.Parameter, len(cfg.Params))
	for i, pc := range cfg.Params {
		typ, ok := r.types.Lookup(pc.Type)
		if !ok {
			return domain.Action{}, fmt.Errorf("param %q: unknown type %q", pc.Name, pc.Type)
		}
		p := ontology.NewParameter(pc.Name, typ)
		params[pc.Name] = p
		paramList[i] = p
	}

	var precondition logic.Condition
	if len(cfg.Precondition) > 0 {
		items := make([]logic.Condition, len(cfg.Precondition))
		for i, lit := range cfg.Precondition {
			f, err := r.groundFact(lit, params)
			if err != nil {
				return domain.Action{}, fmt.Errorf("precondition: %w", err)
			}
			items[i] = logic.FactCondition{Fact: f, Negated: lit.Negated}
		}
		if len(items) == 1 {
			precondition = items[0]
		} else {
			precondition = logic.AndCondition{Items: items}
		}
	}

	effect, err := r.buildEffect(cfg.Effect, params)
	if err != nil {
		return domain.Action{}, fmt.Errorf("effect: %w", err)
	}

	return domain.Action{
		ID:                             cfg.ID,
		Parameters:                     paramList,
		Precondition:                   precondition,
		Effect:                         effect,
		HighImportanceOfNotRepeatingIt: cfg.HighImportanceOfNotRepeatingIt,
	}, nil
}

// buildEffect translates cfg into a domain.ProblemModification, combining
// Add/Delete/Assign entries into a single AndModification when more than
// one is present.
func (r *resolver) buildEffect(cfg EffectConfig, params map[string]ontology.Parameter) (domain.ProblemModification, error) {
	var mods []logic.Modification
	for _, fc := range cfg.Add {
		f, err := r.groundFact(fc, params)
		if err != nil {
			return domain.ProblemModification{}, fmt.Errorf("add: %w", err)
		}
		mods = append(mods, logic.AddFact{Fact: f})
	}
	for _, fc := range cfg.Delete {
		f, err := r.groundFact(fc, params)
		if err != nil {
			return domain.ProblemModification{}, fmt.Errorf("delete: %w", err)
		}
		mods = append(mods, logic.DeleteFact{Fact: f})
	}
	for _, ac := range cfg.Assign {
		pred, ok := r.predicates[ac.Predicate]
		if !ok {
			return domain.ProblemModification{}, fmt.Errorf("assign: undeclared predicate %q", ac.Predicate)
		}
		if !pred.IsFunction() {
			return domain.ProblemModification{}, fmt.Errorf("assign: predicate %q is not functional", ac.Predicate)
		}
		terms := make([]ontology.Term, len(ac.Args))
		for i, a := range ac.Args {
			t, err := r.resolveTerm(a, params)
			if err != nil {
				return domain.ProblemModification{}, fmt.Errorf("assign %q arg %d: %w", ac.Predicate, i, err)
			}
			terms[i] = t
		}
		target := fact.NewTerms(ac.Predicate, terms...)
		value, err := r.resolveAssignValue(ac.Value, params)
		if err != nil {
			return domain.ProblemModification{}, fmt.Errorf("assign %q: %w", ac.Predicate, err)
		}
		mods = append(mods, logic.AssignModification{Target: target, FluentType: pred.FluentType, Value: value})
	}

	var combined logic.Modification
	switch len(mods) {
	case 0:
		combined = nil
	case 1:
		combined = mods[0]
	default:
		combined = logic.AndModification{Items: mods}
	}
	return domain.ProblemModification{WorldStateModification: combined}, nil
}

// resolveAssignValue turns an assign effect's value string into the
// interface{} AssignModification.Value accepts: "undefined" removes the
// fact, a number becomes a constant logic.Literal, anything else a
// parameter or entity reference.
func (r *resolver) resolveAssignValue(raw string, params map[string]ontology.Parameter) (interface{}, error) {
	if raw == "undefined" {
		return logic.UndefinedValue{}, nil
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return logic.Literal(n), nil
	}
	t, err := r.resolveTerm(raw, params)
	if err != nil {
		return nil, err
	}
	e, ok := ontology.AsEntity(t)
	if !ok {
		return nil, fmt.Errorf("assign value %q must be ground", raw)
	}
	return e, nil
}
