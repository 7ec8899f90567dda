package collector

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/nomutin/Push2D/env"
)

// Transition is the JSON record pushed to the replay buffer
type Transition struct {
	Action [4]int64  `json:"action"`
	Reward float64   `json:"reward"`
	Info   *env.Info `json:"info,omitempty"`
}

// RedisSinkConfig configures the replay-buffer connection
type RedisSinkConfig struct {
	Addr     string
	Key      string
	Capacity int64
}

// RedisSink pushes transitions to a capped Redis list, usable as a shared
// replay buffer by training processes.
type RedisSink struct {
	client *redis.Client
	config *RedisSinkConfig
}

func NewRedisSink(config *RedisSinkConfig) *RedisSink {
	if config.Key == "" {
		config.Key = "push2d:transitions"
	}
	return &RedisSink{
		client: redis.NewClient(&redis.Options{
			Addr: config.Addr,
		}),
		config: config,
	}
}

// Push appends the transition and trims the list to the capacity
func (s *RedisSink) Push(ctx context.Context, tr *Transition) error {
	bs, err := json.Marshal(tr)
	if err != nil {
		return err
	}
	if err := s.client.RPush(ctx, s.config.Key, bs).Err(); err != nil {
		return err
	}
	if s.config.Capacity > 0 {
		return s.client.LTrim(ctx, s.config.Key, -s.config.Capacity, -1).Err()
	}
	return nil
}

// Len returns the current buffer length
func (s *RedisSink) Len(ctx context.Context) (int64, error) {
	return s.client.LLen(ctx, s.config.Key).Result()
}

func (s *RedisSink) Close() error {
	return s.client.Close()
}
