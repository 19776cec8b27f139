// Command planner-demo loads a fixture, builds a full plan for its goals,
// and prints it — the one-shot construct-and-run wiring shape of the
// teacher's cmd/server/main.go, minus the HTTP server: this program plans
// once and exits instead of serving requests.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/carloacu/sequential-goals-planner-sub001/internal/domainfixture"
	"github.com/carloacu/sequential-goals-planner-sub001/internal/plannerconfig"
	"github.com/carloacu/sequential-goals-planner-sub001/planner"
)

func main() {
	fixturePath := flag.String("fixture", "", "path to a domain/problem fixture YAML file")
	pddl := flag.Bool("pddl", false, "print the plan PDDL-style instead of the default grammar")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: planner-demo -fixture path/to/fixture.yaml [-pddl]")
		os.Exit(2)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg := plannerconfig.Load()
	planner.Configure(cfg)
	sugar.Infow("loaded planner configuration",
		"maxPlanSteps", cfg.MaxPlanSteps,
		"maxSearchDepth", cfg.MaxSearchDepth,
		"defaultPriority", cfg.DefaultPriority,
	)

	now := time.Now()
	fx, err := domainfixture.Load(*fixturePath, now)
	if err != nil {
		sugar.Fatalw("failed to load fixture", "path", *fixturePath, "error", err)
	}
	sugar.Infow("loaded fixture", "path", *fixturePath, "actions", len(fx.Domain.Actions()))

	plan, err := planner.PlanForEveryGoals(fx.Problem, fx.Domain, now, nil, nil)
	if err != nil {
		sugar.Fatalw("planning failed", "error", err)
	}

	if len(plan) == 0 {
		sugar.Warn("no plan found: either already satisfied or no applicable action exists")
		return
	}

	if *pddl {
		fmt.Println(planner.PrintPlanPDDL(plan))
		return
	}
	fmt.Println(planner.PrintPlan(plan, ", "))
}
