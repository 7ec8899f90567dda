package rl

// AgentConfig pairs a policy with an environment and the episode counts
type AgentConfig struct {
	Episodes    int
	Horizon     int
	Policy      Policy
	Environment Environment
}

// RL Agent configured with the corresponding policy and environment
type Agent struct {
	config      *AgentConfig
	policy      Policy
	environment Environment
}

func NewAgent(config *AgentConfig) *Agent {
	return &Agent{
		config:      config,
		policy:      config.Policy,
		environment: config.Environment,
	}
}

// Run the agent for the configured number of episodes and horizon
func (a *Agent) Run() []*Trace {
	traces := make([]*Trace, a.config.Episodes)
	for i := 0; i < a.config.Episodes; i++ {
		traces[i] = a.RunEpisode(i)
	}
	return traces
}

// RunEpisode runs a single episode and returns the resulting trace
func (a *Agent) RunEpisode(episode int) *Trace {
	state := a.environment.Reset()
	trace := NewTrace()
	actions := state.Actions()

	for i := 0; i < a.config.Horizon; i++ {
		if len(actions) == 0 {
			break
		}
		nextAction, ok := a.policy.NextAction(i, state, actions)
		if !ok {
			break
		}
		nextState, reward := a.environment.Step(nextAction)
		a.policy.Update(i, state, nextAction, reward, nextState)

		trace.Append(state, nextAction, reward, nextState)
		state = nextState
		actions = nextState.Actions()
	}
	a.policy.UpdateIteration(episode, trace)

	return trace
}
