package rl

// Environment is the tabular view of an environment: states are hashable,
// actions enumerable, and every step yields a reward.
type Environment interface {
	// Reset called at the start of each episode
	Reset() State
	// Step applies the action and returns the next state and the reward
	Step(Action) (State, float64)
}

// State of the system that RL policies observe
type State interface {
	// Indexed by the Hash
	// Should be deterministic
	Hash() string
	// Actions possible from the state
	Actions() []Action
}

// An Action that an RL policy can take
type Action interface {
	// Index of the action
	// Should be deterministic
	Hash() string
}
