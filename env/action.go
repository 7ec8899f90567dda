package env

import (
	"strings"

	"github.com/nomutin/Push2D/physics"
)

// Action is a bitmask over the four movement keys. The wire format is the
// MultiDiscrete [2,2,2,2] convention: one binary slot per direction, all 16
// combinations are legal. Opposite keys cancel out.
type Action uint8

const (
	Up Action = 1 << iota
	Down
	Left
	Right

	NoOp Action = 0
)

// direction table in the slot order up, down, left, right (y grows down)
var directions = [4]physics.Vec2{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

var actionNames = [4]string{"Up", "Down", "Left", "Right"}

// Direction sums the pressed direction vectors
func (a Action) Direction() physics.Vec2 {
	var d physics.Vec2
	for i := 0; i < 4; i++ {
		if a&(1<<i) != 0 {
			d = d.Add(directions[i])
		}
	}
	return d
}

// Slots encodes the action as the four binary slots
func (a Action) Slots() [4]int64 {
	var s [4]int64
	for i := 0; i < 4; i++ {
		if a&(1<<i) != 0 {
			s[i] = 1
		}
	}
	return s
}

// FromSlots decodes the MultiDiscrete representation, nonzero means pressed
func FromSlots(s [4]int64) Action {
	var a Action
	for i := 0; i < 4; i++ {
		if s[i] != 0 {
			a |= 1 << i
		}
	}
	return a
}

func (a Action) String() string {
	if a == NoOp {
		return "NoOp"
	}
	parts := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		if a&(1<<i) != 0 {
			parts = append(parts, actionNames[i])
		}
	}
	return strings.Join(parts, "+")
}

// AllActions enumerates the full action space
func AllActions() []Action {
	actions := make([]Action, 16)
	for i := range actions {
		actions[i] = Action(i)
	}
	return actions
}
