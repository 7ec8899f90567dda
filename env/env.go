package env

import (
	"fmt"
	"math/rand"

	"github.com/nomutin/Push2D/physics"
)

// ObjectInfo is the pose of one object after a step
type ObjectInfo struct {
	Color    Color        `json:"color"`
	Radius   float64      `json:"radius"`
	Position physics.Vec2 `json:"position"`
	Velocity physics.Vec2 `json:"velocity"`
}

// Info is the auxiliary diagnostic information returned next to every
// observation: field size and the pose of the agent and each object.
type Info struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Agent   ObjectInfo   `json:"agent"`
	Objects []ObjectInfo `json:"objects"`

	// Pressed lists the button colors lit so far, oldest first
	Pressed []Color `json:"pressed,omitempty"`
}

// Env is the pushing environment. It follows the reset/step convention:
// Reset rebuilds the scene and returns the first observation, Step applies
// one action for one physics tick and returns the next observation, the
// reward and the info.
type Env struct {
	scenario *Scenario
	reward   RewardFunc

	space   *physics.Space
	agent   *Agent
	circles []*CircleObstacle
	boxes   []*DynamicBox
	walls   []*Wall

	rng     *rand.Rand
	seed    int64
	frame   *Frame
	pressed []Color
}

// NewEnv builds the environment from a scenario and performs the first reset
func NewEnv(scenario *Scenario) (*Env, error) {
	if err := scenario.validate(); err != nil {
		return nil, err
	}
	reward, ok := RewardByName(scenario.Reward)
	if !ok {
		return nil, fmt.Errorf("unknown reward function: %s", scenario.Reward)
	}
	seed := scenario.Seed
	if seed == 0 {
		seed = 42
	}
	e := &Env{
		scenario: scenario,
		reward:   reward,
		space:    physics.NewSpace(),
		rng:      rand.New(rand.NewSource(seed)),
		seed:     seed,
		frame:    NewFrame(int(scenario.Width), int(scenario.Height)),
	}
	e.Reset()
	return e, nil
}

func (e *Env) Scenario() *Scenario {
	return e.scenario
}

// Seed reseeds the randomized placement generator. Takes effect on the
// next Reset.
func (e *Env) Seed(seed int64) {
	e.seed = seed
	e.rng = rand.New(rand.NewSource(seed))
}

// Reset clears the space, rebuilds every component and returns the initial
// observation and info.
func (e *Env) Reset() (*Frame, Info) {
	e.space.Clear()
	e.pressed = e.pressed[:0]

	e.agent = NewAgent(e.scenario.Agent)
	e.agent.AddTo(e.space)

	e.circles = e.circles[:0]
	for _, params := range e.scenario.Circles {
		if params.Random {
			params.Position = e.randomPosition(params.Radius)
		}
		c := NewCircleObstacle(params)
		c.AddTo(e.space)
		e.circles = append(e.circles, c)
	}

	e.boxes = e.boxes[:0]
	for _, params := range e.scenario.Boxes {
		b := NewDynamicBox(params)
		b.AddTo(e.space)
		e.boxes = append(e.boxes, b)
	}

	e.walls = FieldWalls(e.scenario.Width, e.scenario.Height)
	for _, w := range e.walls {
		w.AddTo(e.space)
	}

	e.render()
	return e.frame.Clone(), e.info()
}

// Step applies the action for one tick. Terminated and truncated are
// always false: episode boundaries belong to the caller.
func (e *Env) Step(action Action) (*Frame, float64, bool, bool, Info) {
	e.agent.Steer(action.Direction())
	e.space.Step(1 / float64(e.scenario.FPS))
	e.detectButtonPresses()
	e.render()
	info := e.info()
	return e.frame.Clone(), e.reward(info), false, false, info
}

// Frame returns the most recently rendered frame without copying
func (e *Env) Frame() *Frame {
	return e.frame
}

func (e *Env) randomPosition(radius float64) physics.Vec2 {
	x := radius + e.rng.Float64()*(e.scenario.Width-2*radius)
	y := radius + e.rng.Float64()*(e.scenario.Height-2*radius)
	return physics.V(x, y)
}

// detectButtonPresses lights a button's color when a circle of the same
// color overlaps it. Consecutive presses of the same color are ignored.
func (e *Env) detectButtonPresses() {
	for _, b := range e.scenario.Buttons {
		for _, c := range e.circles {
			if c.Params.Color != b.Color {
				continue
			}
			if !circleOverlapsRect(c.body.Position, c.Params.Radius, b) {
				continue
			}
			if len(e.pressed) > 0 && e.pressed[len(e.pressed)-1] == b.Color {
				continue
			}
			e.pressed = append(e.pressed, b.Color)
		}
	}
}

func circleOverlapsRect(center physics.Vec2, radius float64, b ButtonParams) bool {
	cx := clamp(center.X, b.Position.X, b.Position.X+b.Size)
	cy := clamp(center.Y, b.Position.Y, b.Position.Y+b.Size)
	return center.Sub(physics.V(cx, cy)).LengthSq() <= radius*radius
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (e *Env) render() {
	f := e.frame
	f.Fill(e.scenario.Background)

	for _, b := range e.scenario.Buttons {
		f.DrawRect(b.Position, b.Size, b.Size, b.Color)
	}
	// lights strip across the top, one half-width cell per press
	for i, c := range e.pressed {
		left := float64(i) * e.scenario.LightSize / 2
		f.DrawRect(physics.V(left, 0), e.scenario.LightSize/2, e.scenario.LightSize, c)
	}

	for _, w := range e.walls {
		a, b := w.shape.A, w.shape.B
		f.DrawSegment(a, b, w.shape.Radius, e.scenario.Background)
	}
	for _, box := range e.boxes {
		for _, seg := range box.Segments() {
			a := box.body.Position.Add(seg.A)
			b := box.body.Position.Add(seg.B)
			f.DrawSegment(a, b, seg.Radius, box.Params.Color)
		}
	}
	for _, c := range e.circles {
		f.DrawCircle(c.body.Position, c.Params.Radius, c.Params.Color)
	}
	f.DrawCircle(e.agent.body.Position, e.agent.Params.Radius, e.agent.Params.Color)
}

func (e *Env) info() Info {
	info := Info{
		Width:  e.scenario.Width,
		Height: e.scenario.Height,
		Agent: ObjectInfo{
			Color:    e.agent.Params.Color,
			Radius:   e.agent.Params.Radius,
			Position: e.agent.body.Position,
			Velocity: e.agent.body.Velocity,
		},
		Objects: make([]ObjectInfo, 0, len(e.circles)),
	}
	for _, c := range e.circles {
		info.Objects = append(info.Objects, ObjectInfo{
			Color:    c.Params.Color,
			Radius:   c.Params.Radius,
			Position: c.body.Position,
			Velocity: c.body.Velocity,
		})
	}
	if len(e.pressed) > 0 {
		info.Pressed = append([]Color(nil), e.pressed...)
	}
	return info
}
