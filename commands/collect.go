package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/nomutin/Push2D/collector"
	"github.com/nomutin/Push2D/env"
	"github.com/nomutin/Push2D/manual"
)

// Collect opens the terminal operator for manual play data collection
func Collect(sink *collector.RedisSink) error {
	scenario, err := env.ResolveScenario(scenarioName)
	if err != nil {
		return err
	}
	scenario.Seed = seed
	e, err := env.NewEnv(scenario)
	if err != nil {
		return err
	}

	dir, err := collector.DatasetDir(dataPath, time.Now())
	if err != nil {
		return err
	}
	saver := collector.NewSaver(dir, sequenceLength)

	operator, err := manual.NewOperator(e, saver)
	if err != nil {
		return err
	}
	if sink != nil {
		defer sink.Close()
		operator.SetSink(sink)
	}
	return operator.Run()
}

func CollectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Manually drive the agent and record (action, observation) sequences",
		RunE: func(cmd *cobra.Command, args []string) error {
			var sink *collector.RedisSink
			if redisAddr != "" {
				sink = collector.NewRedisSink(&collector.RedisSinkConfig{
					Addr:     redisAddr,
					Key:      redisKey,
					Capacity: redisCapacity,
				})
				// confirm the buffer is reachable before opening the screen
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if _, err := sink.Len(ctx); err != nil {
					return err
				}
			}
			return Collect(sink)
		},
	}
	cmd.Flags().IntVar(&sequenceLength, "length", 200, "Number of steps per recorded episode")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the transition sink (disabled when empty)")
	cmd.Flags().StringVar(&redisKey, "redis-key", "push2d:transitions", "Redis list key for the transition sink")
	cmd.Flags().Int64Var(&redisCapacity, "redis-capacity", 100000, "Maximum transitions kept in the Redis list")
	return cmd
}
