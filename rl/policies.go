package rl

import (
	"encoding/json"
	"math"
	"math/rand"
	"os"
	"path"
	"time"

	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Policy decides the next action and learns from transitions
type Policy interface {
	NextAction(step int, state State, actions []Action) (Action, bool)
	Update(step int, state State, action Action, reward float64, nextState State)
	UpdateIteration(episode int, trace *Trace)
	Reset()
}

// QTable maps state hash and action hash to a value
type QTable struct {
	table map[string]map[string]float64
}

func NewQTable() *QTable {
	return &QTable{
		table: make(map[string]map[string]float64),
	}
}

func (q *QTable) Get(state, action string, def float64) float64 {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	if _, ok := q.table[state][action]; !ok {
		q.table[state][action] = def
	}
	return q.table[state][action]
}

func (q *QTable) Set(state, action string, val float64) {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	q.table[state][action] = val
}

func (q *QTable) HasState(state string) bool {
	_, ok := q.table[state]
	return ok
}

// Max returns the best action hash for the state and its value
func (q *QTable) Max(state string, def float64) (string, float64) {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
		return "", def
	}
	maxAction := ""
	maxVal := math.Inf(-1)
	for action, val := range q.table[state] {
		if val > maxVal {
			maxAction = action
			maxVal = val
		}
	}
	if maxAction == "" {
		return "", def
	}
	return maxAction, maxVal
}

func (q *QTable) Reset() {
	q.table = make(map[string]map[string]float64)
}

// Record writes the table as json to the given path
func (q *QTable) Record(savePath string) error {
	if err := os.MkdirAll(path.Dir(savePath), os.ModePerm); err != nil {
		return err
	}
	bs, err := json.Marshal(q.table)
	if err != nil {
		return err
	}
	return os.WriteFile(savePath, bs, 0644)
}

// Read loads a table recorded with Record
func (q *QTable) Read(savePath string) error {
	bs, err := os.ReadFile(savePath)
	if err != nil {
		return err
	}
	return json.Unmarshal(bs, &q.table)
}

// RandomPolicy picks uniformly among the available actions
type RandomPolicy struct {
	rand *rand.Rand
}

var _ Policy = &RandomPolicy{}

func NewRandomPolicy() *RandomPolicy {
	return &RandomPolicy{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *RandomPolicy) NextAction(_ int, _ State, actions []Action) (Action, bool) {
	if len(actions) == 0 {
		return nil, false
	}
	return actions[r.rand.Intn(len(actions))], true
}

func (r *RandomPolicy) Update(_ int, _ State, _ Action, _ float64, _ State) {}

func (r *RandomPolicy) UpdateIteration(_ int, _ *Trace) {}

func (r *RandomPolicy) Reset() {}

// SoftMaxPolicy samples actions with Boltzmann weights over Q values
type SoftMaxPolicy struct {
	qTable *QTable
	alpha  float64
	gamma  float64
}

var _ Policy = &SoftMaxPolicy{}

func NewSoftMaxPolicy(alpha, gamma float64) *SoftMaxPolicy {
	return &SoftMaxPolicy{
		qTable: NewQTable(),
		alpha:  alpha,
		gamma:  gamma,
	}
}

func (s *SoftMaxPolicy) NextAction(_ int, state State, actions []Action) (Action, bool) {
	stateHash := state.Hash()

	sum := float64(0)
	weights := make([]float64, len(actions))
	vals := make([]float64, len(actions))
	for i, action := range actions {
		val := s.qTable.Get(stateHash, action.Hash(), 0)
		exp := math.Exp(val)
		vals[i] = exp
		sum += exp
	}
	for i, v := range vals {
		weights[i] = v / sum
	}
	i, ok := sampleuv.NewWeighted(weights, nil).Take()
	if !ok {
		return nil, false
	}
	return actions[i], true
}

func (s *SoftMaxPolicy) Update(_ int, state State, action Action, reward float64, nextState State) {
	stateHash := state.Hash()
	actionHash := action.Hash()
	_, max := s.qTable.Max(nextState.Hash(), 0)
	cur := s.qTable.Get(stateHash, actionHash, 0)
	next := (1-s.alpha)*cur + s.alpha*(reward+s.gamma*max)
	s.qTable.Set(stateHash, actionHash, next)
}

func (s *SoftMaxPolicy) UpdateIteration(_ int, _ *Trace) {}

func (s *SoftMaxPolicy) Reset() {
	s.qTable.Reset()
}

// EpsilonGreedyPolicy is tabular Q learning with epsilon-greedy exploration
type EpsilonGreedyPolicy struct {
	qTable  *QTable
	alpha   float64
	gamma   float64
	epsilon float64
	rand    *exprand.Rand
}

var _ Policy = &EpsilonGreedyPolicy{}

func NewEpsilonGreedyPolicy(alpha, gamma, epsilon float64) *EpsilonGreedyPolicy {
	return &EpsilonGreedyPolicy{
		qTable:  NewQTable(),
		alpha:   alpha,
		gamma:   gamma,
		epsilon: epsilon,
		rand:    exprand.New(exprand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (e *EpsilonGreedyPolicy) NextAction(_ int, state State, actions []Action) (Action, bool) {
	if len(actions) == 0 {
		return nil, false
	}
	if e.rand.Float64() < e.epsilon {
		return actions[e.rand.Intn(len(actions))], true
	}
	stateHash := state.Hash()
	bestHash, _ := e.qTable.Max(stateHash, 0)
	for _, a := range actions {
		if a.Hash() == bestHash {
			return a, true
		}
	}
	return actions[e.rand.Intn(len(actions))], true
}

func (e *EpsilonGreedyPolicy) Update(_ int, state State, action Action, reward float64, nextState State) {
	stateHash := state.Hash()
	actionHash := action.Hash()
	_, max := e.qTable.Max(nextState.Hash(), 0)
	cur := e.qTable.Get(stateHash, actionHash, 0)
	next := (1-e.alpha)*cur + e.alpha*(reward+e.gamma*max)
	e.qTable.Set(stateHash, actionHash, next)
}

func (e *EpsilonGreedyPolicy) UpdateIteration(_ int, _ *Trace) {}

func (e *EpsilonGreedyPolicy) Reset() {
	e.qTable.Reset()
}

// Record stores the learned table, used with the record-policy flag
func (e *EpsilonGreedyPolicy) Record(savePath string) error {
	return e.qTable.Record(savePath)
}
