package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nomutin/Push2D/collector"
	"github.com/nomutin/Push2D/env"
)

// Replay re-executes a recorded action file and stores the observations
func Replay(actionPath string) error {
	scenario, err := env.ResolveScenario(scenarioName)
	if err != nil {
		return err
	}
	scenario.Seed = seed
	e, err := env.NewEnv(scenario)
	if err != nil {
		return err
	}

	outPath, err := collector.Replay(e, actionPath)
	if err != nil {
		return err
	}
	fmt.Printf("Replay written to %s\n", outPath)
	return nil
}

func ReplayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <raw_action_N.npy>",
		Short: "Re-run a recorded action sequence and save the observations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Replay(args[0])
		},
	}
}
