// Command weavetree-search runs an MCTS search over a YAML-described MDP
// and reports the best root action found.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"

	"github.com/janpfeifer/weavetree/internal/mcts"
	"github.com/janpfeifer/weavetree/internal/mcts/telemetry"
	"github.com/janpfeifer/weavetree/internal/mdp"
	"github.com/janpfeifer/weavetree/internal/parameters"
	"github.com/janpfeifer/weavetree/internal/ui/spinning"
)

var (
	flagMdpFile    = flag.String("mdp", "", "Path to a YAML-described MDP (required).")
	flagConfigFile = flag.String("config", "", "Path to a YAML search config. Uses built-in defaults if unset.")
	flagSeed       = flag.Uint64("seed", 1, "Seed for the simulator's PRNG.")
	flagSnapshot   = flag.String("snapshot", "", "If set, write the final tree snapshot as JSON to this path.")
	flagVerbose    = flag.Bool("telemetry", false, "Emit per-iteration telemetry (in addition to run-boundary events).")
	flagOverride   = flag.String("override", "", "Comma-separated key=value overrides applied on top of --config, "+
		"e.g. \"iterations=1000,exploration_constant=2.0\".")
)

// applyOverrides mutates config in place from a comma-separated key=value
// string, using the same parsing convention as internal/parameters.
func applyOverrides(config *mcts.SearchConfig, overrideString string) error {
	if overrideString == "" {
		return nil
	}
	params := parameters.NewFromConfigString(overrideString)

	var err error
	if config.Iterations, err = parameters.GetParamOr(params, "iterations", config.Iterations); err != nil {
		return err
	}
	if config.C, err = parameters.GetParamOr(params, "exploration_constant", config.C); err != nil {
		return err
	}
	if config.Gamma, err = parameters.GetParamOr(params, "gamma", config.Gamma); err != nil {
		return err
	}
	if config.MaxSteps, err = parameters.GetParamOr(params, "max_steps", config.MaxSteps); err != nil {
		return err
	}
	if config.FixedHorizonSteps, err = parameters.GetParamOr(params, "fixed_horizon_steps", config.FixedHorizonSteps); err != nil {
		return err
	}
	return nil
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *flagMdpFile == "" {
		klog.Fatal("--mdp is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 5*time.Second)
	defer cancel()

	err := exceptions.TryCatch[error](func() {
		run(ctx)
	})
	if err != nil {
		klog.Exit(err)
	}
}

func run(ctx context.Context) {
	compiled, err := mdp.CompileYAML(*flagMdpFile)
	if err != nil {
		exceptions.Panicf("failed to load MDP: %v", err)
	}

	config := mcts.DefaultSearchConfig()
	if *flagConfigFile != "" {
		config, err = mcts.LoadSearchConfigYAML(*flagConfigFile)
		if err != nil {
			exceptions.Panicf("failed to load search config: %v", err)
		}
	}
	if err := applyOverrides(&config, *flagOverride); err != nil {
		exceptions.Panicf("failed to apply --override: %v", err)
	}
	if err := config.Validate(); err != nil {
		exceptions.Panicf("invalid search config: %v", err)
	}

	sim := mdp.NewSimulator(compiled, *flagSeed)
	start := compiled.Start()
	terminal, _ := compiled.IsTerminal(start)
	tree := mcts.NewTree(mcts.StateKey(start.Index()), terminal)

	numActions := func(s mcts.StateKey) (int, error) {
		return sim.NumActions(mdp.StateKey(s.Value())), nil
	}
	step := func(s mcts.StateKey, a mcts.ActionId) (mcts.StateKey, float64, bool, error) {
		next, reward, isTerminal := sim.Step(mdp.StateKey(s.Value()), a.Index())
		return mcts.StateKey(next), reward, isTerminal, nil
	}
	rolloutPolicy := func(s mcts.StateKey, n int) (mcts.ActionId, error) {
		return mcts.ActionId(0), nil
	}
	cb := mcts.Callbacks{NumActions: numActions, Step: step, RolloutPolicy: rolloutPolicy}

	sink := telemetry.KlogTextSink{Level: 1}
	sink.Emit(telemetry.RunStarted(config.Iterations, config.C, config.ReturnType.String()))

	onIteration := func(im mcts.IterationMetrics) {
		if *flagVerbose {
			sink.Emit(telemetry.IterationCompleted(im.Index, im.Leaf.Index(), im.LeafIsNew, im.PathLen, im.RolloutReturn, im.TotalReturn))
		}
	}

	metrics, err := tree.RunWithHook(ctx, config, cb, onIteration)
	if err != nil {
		exceptions.Panicf("search failed: %v", err)
	}
	sink.Emit(telemetry.RunCompleted(metrics.Completed, metrics.Sum, metrics.Avg))

	best, ok, err := tree.BestRootActionByValue()
	if err != nil {
		exceptions.Panicf("root action lookup failed: %v", err)
	}

	fmt.Println(titleStyle.Render("weavetree search"))
	if !ok {
		fmt.Println("root has no expanded actions")
		return
	}
	fmt.Println(okStyle.Render(fmt.Sprintf("best root action: %d (%d/%d iterations completed)",
		best.Index(), metrics.Completed, metrics.IterationsRequested)))

	if *flagSnapshot != "" {
		writeSnapshot(tree, *flagSnapshot)
	}
}

func writeSnapshot(tree *mcts.Tree, path string) {
	data, err := json.MarshalIndent(tree.Snapshot(), "", "  ")
	if err != nil {
		exceptions.Panicf("failed to marshal snapshot: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		exceptions.Panicf("failed to write snapshot: %v", err)
	}
}
