// Command essence loads a model (built in Go via the examples package,
// since parsing Essence source text is explicitly out of scope — spec.md
// §1 Non-goals), rewrites it to a solver-ready form, prints a summary of
// the rewrite statistics, and stores a run record when a trace database
// is configured. It does not pass the rewritten model to a solver.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	essence_examples "github.com/gitrdm/essencelogic/examples/essence"
	"github.com/gitrdm/essencelogic/pkg/essence"
	"github.com/gitrdm/essencelogic/pkg/essence/config"
	_ "github.com/gitrdm/essencelogic/pkg/essence/rules"
	"github.com/gitrdm/essencelogic/pkg/essence/stats"
	"github.com/gitrdm/essencelogic/pkg/essence/tracedb"
)

func main() {
	configPath := flag.String("config", "essence.toml", "path to settings file")
	modelName := flag.String("model", "send-more-money", "built-in example model to solve")
	traceOut := flag.String("trace-db", "", "optional path to persist this run's trace to")
	checkAmbiguous := flag.Bool("check-ambiguous-rules", false, "fail if multiple rules apply at the same position")
	flag.Parse()

	if err := run(*configPath, *modelName, *traceOut, *checkAmbiguous); err != nil {
		fmt.Fprintln(os.Stderr, "essence:", err)
		os.Exit(1)
	}
}

func run(configPath, modelName, traceOut string, checkAmbiguous bool) error {
	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logrus.New()
	if level, err := logrus.ParseLevel(settings.Log.Level); err == nil {
		log.SetLevel(level)
	}
	if settings.Log.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	model, err := essence_examples.Build(modelName)
	if err != nil {
		return err
	}

	if settings.IntEncoding != "" {
		essence.SetIntEncoding(settings.IntEncoding)
	}

	registry := essence.GlobalRegistry()
	ruleSets, err := registry.ResolveRuleSets(settings.RuleSets)
	if err != nil {
		return fmt.Errorf("resolving rule sets %v: %w", settings.RuleSets, err)
	}

	start := time.Now()
	_, rewriteStats, err := essence.RewriteNaive(model, essence.RewriterOptions{
		RuleSets:            ruleSets,
		CheckAmbiguousRules: checkAmbiguous,
		ExitAfterUnrolling:  settings.ExitAfterUnrolling,
		Log:                 log,
	})
	if err != nil {
		return fmt.Errorf("rewriting model: %w", err)
	}
	elapsed := time.Since(start)

	summary := stats.Summarize(rewriteStats, elapsed)
	fmt.Print(summary.String())

	path := settings.TraceDBPath
	if traceOut != "" {
		path = traceOut
	}
	if path != "" {
		if err := persistTrace(path, modelName, settings.RuleSets, rewriteStats); err != nil {
			return err
		}
	}
	return nil
}

func persistTrace(path, modelName string, ruleSetNames []string, s *essence.RewriteStats) error {
	store, err := tracedb.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	return store.InsertRun(ctx, tracedb.RunRecord{
		RunID:        modelName,
		StartedAt:    time.Now().UTC().Format(time.RFC3339),
		RuleSets:     fmt.Sprint(ruleSetNames),
		Iterations:   s.Iterations,
		RulesApplied: s.RulesApplied,
	})
}
