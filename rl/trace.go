package rl

import "encoding/json"

// Trace of an episode as tuples (state, action, reward, nextState)
type Trace struct {
	states     []State
	actions    []Action
	rewards    []float64
	nextStates []State
}

func NewTrace() *Trace {
	return &Trace{
		states:     make([]State, 0),
		actions:    make([]Action, 0),
		rewards:    make([]float64, 0),
		nextStates: make([]State, 0),
	}
}

func (t *Trace) Append(state State, action Action, reward float64, nextState State) {
	t.states = append(t.states, state)
	t.actions = append(t.actions, action)
	t.rewards = append(t.rewards, reward)
	t.nextStates = append(t.nextStates, nextState)
}

func (t *Trace) Len() int {
	return len(t.states)
}

func (t *Trace) Get(i int) (State, Action, float64, State, bool) {
	if i >= len(t.states) {
		return nil, nil, 0, nil, false
	}
	return t.states[i], t.actions[i], t.rewards[i], t.nextStates[i], true
}

func (t *Trace) Last() (State, Action, float64, State, bool) {
	if len(t.states) < 1 {
		return nil, nil, 0, nil, false
	}
	i := len(t.states) - 1
	return t.states[i], t.actions[i], t.rewards[i], t.nextStates[i], true
}

// Return is the undiscounted sum of rewards
func (t *Trace) Return() float64 {
	total := 0.0
	for _, r := range t.rewards {
		total += r
	}
	return total
}

type traceRecord struct {
	States  []string  `json:"states"`
	Actions []string  `json:"actions"`
	Rewards []float64 `json:"rewards"`
}

// MarshalJSON records the trace as hashes, one line per episode when
// appended to a jsonl file.
func (t *Trace) MarshalJSON() ([]byte, error) {
	rec := traceRecord{
		States:  make([]string, 0, len(t.states)),
		Actions: make([]string, 0, len(t.actions)),
		Rewards: t.rewards,
	}
	for _, s := range t.states {
		rec.States = append(rec.States, s.Hash())
	}
	for _, a := range t.actions {
		rec.Actions = append(rec.Actions, a.Hash())
	}
	return json.Marshal(rec)
}
