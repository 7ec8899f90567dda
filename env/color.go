package env

import (
	"encoding/json"
	"fmt"
)

// Color is an RGB triple. Scenario files refer to colors by name, the
// renderer and the reward functions compare them by value.
type Color struct {
	R, G, B uint8
}

var (
	White  = Color{255, 255, 255}
	Black  = Color{0, 0, 0}
	Red    = Color{255, 0, 0}
	Green  = Color{0, 255, 0}
	Blue   = Color{0, 0, 255}
	Yellow = Color{255, 255, 0}
	Purple = Color{128, 0, 128}
	Gray   = Color{128, 128, 128}
)

var colorNames = map[string]Color{
	"white":  White,
	"black":  Black,
	"red":    Red,
	"green":  Green,
	"blue":   Blue,
	"yellow": Yellow,
	"purple": Purple,
	"gray":   Gray,
}

func ParseColor(name string) (Color, error) {
	c, ok := colorNames[name]
	if !ok {
		return Color{}, fmt.Errorf("unknown color name: %s", name)
	}
	return c, nil
}

func (c Color) Name() string {
	for name, known := range colorNames {
		if known == c {
			return name
		}
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Name())
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseColor(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
