package rl

import (
	"fmt"

	"github.com/nomutin/Push2D/env"
	"github.com/nomutin/Push2D/util"
)

// Cell is a quantized field position
type Cell struct {
	I int
	J int
}

// CellState abstracts a frame into grid cells: the agent cell followed by
// the cell of every obstacle. Tabular policies index on its hash.
type CellState struct {
	Agent   Cell
	Objects []Cell
}

var _ State = &CellState{}

func (c Cell) Key() string {
	return fmt.Sprintf("(%d,%d)", c.I, c.J)
}

// Hash treats obstacles as interchangeable, two placements with the same
// occupied cells map to the same state.
func (s *CellState) Hash() string {
	objects := make(util.MultiSet, 0, len(s.Objects))
	for _, c := range s.Objects {
		objects = append(objects, c)
	}
	return s.Agent.Key() + "#" + objects.Hash()
}

func (s *CellState) Actions() []Action {
	return allMoves
}

// Move wraps the environment action for the policy interface
type Move struct {
	Act env.Action
}

var _ Action = Move{}

func (m Move) Hash() string {
	return m.Act.String()
}

var allMoves = func() []Action {
	moves := make([]Action, 0, 16)
	for _, a := range env.AllActions() {
		moves = append(moves, Move{Act: a})
	}
	return moves
}()

// PushEnvironment adapts the pushing environment to the tabular interface
// by quantizing object positions to cells of the given resolution.
type PushEnvironment struct {
	Env        *env.Env
	Resolution float64
}

var _ Environment = &PushEnvironment{}

func NewPushEnvironment(e *env.Env, resolution float64) *PushEnvironment {
	if resolution <= 0 {
		resolution = 20
	}
	return &PushEnvironment{Env: e, Resolution: resolution}
}

func (p *PushEnvironment) Reset() State {
	_, info := p.Env.Reset()
	return p.abstract(info)
}

func (p *PushEnvironment) Step(a Action) (State, float64) {
	move := a.(Move)
	_, reward, _, _, info := p.Env.Step(move.Act)
	return p.abstract(info), reward
}

func (p *PushEnvironment) abstract(info env.Info) *CellState {
	s := &CellState{
		Agent:   p.cell(info.Agent),
		Objects: make([]Cell, 0, len(info.Objects)),
	}
	for _, o := range info.Objects {
		s.Objects = append(s.Objects, p.cell(o))
	}
	return s
}

func (p *PushEnvironment) cell(o env.ObjectInfo) Cell {
	return Cell{
		I: int(o.Position.Y / p.Resolution),
		J: int(o.Position.X / p.Resolution),
	}
}
