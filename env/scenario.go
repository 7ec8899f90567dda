package env

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nomutin/Push2D/physics"
)

// ButtonParams places a colored button on the floor
type ButtonParams struct {
	Position physics.Vec2 `json:"position"`
	Size     float64      `json:"size"`
	Color    Color        `json:"color"`
}

// Scenario describes a full situation: field, agent, objects and reward
type Scenario struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	FPS        int     `json:"fps"`
	Background Color   `json:"background"`
	Seed       int64   `json:"seed,omitempty"`

	Agent   CircleParams   `json:"agent"`
	Circles []CircleParams `json:"circles,omitempty"`
	Boxes   []BoxParams    `json:"boxes,omitempty"`

	Buttons   []ButtonParams `json:"buttons,omitempty"`
	LightSize float64        `json:"light_size,omitempty"`

	// Reward names a registered reward function, empty means constant 1.0
	Reward string `json:"reward,omitempty"`
}

func (s *Scenario) validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid field size %gx%g", s.Width, s.Height)
	}
	if s.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", s.FPS)
	}
	if s.Agent.Radius <= 0 {
		return fmt.Errorf("agent radius must be positive")
	}
	if s.Reward != "" {
		if _, ok := rewardRegistry[s.Reward]; !ok {
			return fmt.Errorf("unknown reward function: %s", s.Reward)
		}
	}
	return nil
}

// LoadScenario reads a scenario from a JSON file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading scenario file: %w", err)
	}
	s := &Scenario{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("error parsing scenario file: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// RedAndGreen is the standard situation: a blue agent in the center of a
// 300x225 field with one red and one green circle to push around.
func RedAndGreen() *Scenario {
	return &Scenario{
		Width:      300,
		Height:     225,
		FPS:        15,
		Background: White,
		Seed:       42,
		Agent: CircleParams{
			Radius:   20,
			Position: physics.V(150, 110),
			Color:    Blue,
			Speed:    100,
		},
		Circles: []CircleParams{
			{Radius: 30, Position: physics.V(50, 50), Color: Red},
			{Radius: 30, Position: physics.V(250, 175), Color: Green},
		},
	}
}

// RandomCircles scatters n red circles at random positions on each reset
func RandomCircles(n int) *Scenario {
	s := &Scenario{
		Width:      300,
		Height:     225,
		FPS:        15,
		Background: White,
		Seed:       42,
		Agent: CircleParams{
			Radius:   20,
			Position: physics.V(150, 110),
			Color:    Blue,
			Speed:    100,
		},
	}
	for i := 0; i < n; i++ {
		s.Circles = append(s.Circles, CircleParams{
			Radius: 15,
			Color:  Red,
			Random: true,
		})
	}
	return s
}

// Buttons is the button-and-lights situation: pushing a colored circle
// over a matching floor button lights the color strip at the top.
func Buttons() *Scenario {
	s := RedAndGreen()
	s.Buttons = []ButtonParams{
		{Position: physics.V(40, 180), Size: 30, Color: Red},
		{Position: physics.V(230, 180), Size: 30, Color: Green},
	}
	s.LightSize = 20
	return s
}

var builtinScenarios = map[string]func() *Scenario{
	"red-and-green": RedAndGreen,
	"buttons":       Buttons,
	"random": func() *Scenario {
		return RandomCircles(5)
	},
}

// ResolveScenario returns a built-in scenario by name, or loads a JSON
// file when the argument is a path.
func ResolveScenario(nameOrPath string) (*Scenario, error) {
	if builder, ok := builtinScenarios[nameOrPath]; ok {
		return builder(), nil
	}
	if _, err := os.Stat(nameOrPath); err == nil {
		return LoadScenario(nameOrPath)
	}
	return nil, fmt.Errorf("unknown scenario: %s", nameOrPath)
}
