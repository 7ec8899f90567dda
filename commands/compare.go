package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/nomutin/Push2D/env"
	"github.com/nomutin/Push2D/rl"
)

// Compare runs the tabular policies against each other on the scenario
func Compare(ctx context.Context) error {
	scenario, err := env.ResolveScenario(scenarioName)
	if err != nil {
		return err
	}
	scenario.Seed = seed

	newEnvironment := func() (rl.Environment, error) {
		e, err := env.NewEnv(scenario)
		if err != nil {
			return nil, err
		}
		return rl.NewPushEnvironment(e, 20), nil
	}

	c := rl.NewComparison(&rl.ComparisonConfig{
		Runs:         runs,
		Episodes:     episodes,
		Horizon:      horizon,
		RecordPath:   saveFile,
		RecordTraces: true,
		RecordPolicy: true,
	})
	for _, exp := range []struct {
		name   string
		policy rl.Policy
	}{
		{"Random", rl.NewRandomPolicy()},
		{"SoftMax", rl.NewSoftMaxPolicy(0.3, 0.7)},
		{"EpsGreedy", rl.NewEpsilonGreedyPolicy(0.3, 0.7, 0.1)},
	} {
		environment, err := newEnvironment()
		if err != nil {
			return err
		}
		c.AddExperiment(rl.NewExperiment(exp.name, exp.policy, environment))
	}
	c.AddAnalysis("coverage", rl.NewCoverageAnalyzer(), rl.CoverageComparator(saveFile))
	c.AddAnalysis("returns", rl.NewReturnAnalyzer(), rl.ReturnComparator(saveFile))
	c.AddAnalysis("visits", rl.NewVisitAnalyzer(20), rl.VisitComparator(saveFile))

	c.Run(ctx)
	return nil
}

func CompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare tabular policies on the pushing environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt)

			doneCh := make(chan struct{})

			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				select {
				case <-sigCh:
				case <-doneCh:
				}
				cancel()
			}()

			err := Compare(ctx)

			close(doneCh)
			return err
		},
	}
	cmd.Flags().IntVarP(&episodes, "episodes", "e", 1000, "Number of episodes to run")
	cmd.Flags().IntVar(&horizon, "horizon", 200, "Horizon of each episode")
	cmd.Flags().IntVar(&runs, "runs", 1, "Number of experiment runs")
	cmd.Flags().StringVarP(&saveFile, "save", "s", "results", "Save the result data in the specified folder")
	return cmd
}
