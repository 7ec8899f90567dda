package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/nomutin/Push2D/env"
	"github.com/nomutin/Push2D/viewer"
)

// Serve starts the HTTP viewer over the recorded datasets
func Serve(ctx context.Context) error {
	server := viewer.NewServer(ctx, port, dataPath)

	scenario, err := env.ResolveScenario(scenarioName)
	if err != nil {
		return err
	}
	scenario.Seed = seed
	e, err := env.NewEnv(scenario)
	if err != nil {
		return err
	}
	server.Attach(e)

	server.Start()
	fmt.Printf("Serving datasets from %s on localhost:%d\n", dataPath, port)
	<-ctx.Done()
	return nil
}

func ServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve recorded datasets and the live frame over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt)

			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				<-sigCh
				cancel()
			}()

			return Serve(ctx)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
	return cmd
}
