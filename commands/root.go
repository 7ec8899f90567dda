package commands

import "github.com/spf13/cobra"

var (
	scenarioName string
	seed         int64
	dataPath     string

	episodes int
	horizon  int
	runs     int
	saveFile string

	sequenceLength int
	redisAddr      string
	redisKey       string
	redisCapacity  int64

	port int
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "push2d",
		Short: "2D pushing environment for play data collection",
	}
	rootCommand.PersistentFlags().StringVar(&scenarioName, "scenario", "red-and-green", "Builtin scenario name or path to a scenario json file")
	rootCommand.PersistentFlags().Int64Var(&seed, "seed", 42, "Seed for the scenario random placement")
	rootCommand.PersistentFlags().StringVar(&dataPath, "data", "data", "Base directory for recorded datasets")
	// adding the subcommands here
	rootCommand.AddCommand(CollectCommand())
	rootCommand.AddCommand(ReplayCommand())
	rootCommand.AddCommand(CompareCommand())
	rootCommand.AddCommand(ServeCommand())
	return rootCommand
}
