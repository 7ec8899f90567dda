package env

import (
	"github.com/nomutin/Push2D/physics"
)

// joint force caps taken from the pushing simulation: obstacles get light
// friction against the floor, the agent a strong coupling to its control body
const (
	obstacleLinearFriction  = 1000
	obstacleAngularFriction = 5000
	agentLinearCoupling     = 10000
	agentAngularCoupling    = 50000
	boxLinearFriction       = 10000
	boxAngularFriction      = 50000
)

// CircleParams configures one circle component
type CircleParams struct {
	Radius   float64      `json:"radius"`
	Position physics.Vec2 `json:"position"`
	Color    Color        `json:"color"`
	Speed    float64      `json:"speed,omitempty"`
	Random   bool         `json:"random,omitempty"`
}

// Component is a piece of the scene that can rebuild itself into a fresh
// space on every reset.
type Component interface {
	Reset()
	AddTo(s *physics.Space)
}

var (
	_ Component = &CircleObstacle{}
	_ Component = &Agent{}
	_ Component = &Wall{}
	_ Component = &DynamicBox{}
)

// CircleObstacle is a pushable circle: dynamic body of mass 1 with
// floor-friction joints against the static frame.
type CircleObstacle struct {
	Params CircleParams

	body  *physics.Body
	shape *physics.Circle
}

func NewCircleObstacle(params CircleParams) *CircleObstacle {
	c := &CircleObstacle{Params: params}
	c.Reset()
	return c
}

func (c *CircleObstacle) Reset() {
	c.body = physics.NewBody(physics.Dynamic)
	c.body.Mass = 1.0
	c.body.Position = c.Params.Position
	c.shape = physics.NewCircle(c.body, c.Params.Radius)
	c.shape.Friction = 0.7
	c.shape.Elasticity = 0
}

func (c *CircleObstacle) AddTo(s *physics.Space) {
	s.AddBody(c.body)
	s.AddShape(c.shape)
	floor := physics.NewBody(physics.Static)
	s.AddConstraint(physics.NewPivotJoint(floor, c.body, obstacleLinearFriction))
	s.AddConstraint(physics.NewGearJoint(floor, c.body, obstacleAngularFriction))
}

func (c *CircleObstacle) Body() *physics.Body {
	return c.body
}

func (c *CircleObstacle) Shape() *physics.Circle {
	return c.shape
}

// Agent is the controllable circle: a heavy dynamic body dragged around by
// a kinematic control body. Setting the control velocity steers the agent,
// the joints keep pushes feeling inertial.
type Agent struct {
	Params CircleParams

	body    *physics.Body
	control *physics.Body
	shape   *physics.Circle
}

func NewAgent(params CircleParams) *Agent {
	a := &Agent{Params: params}
	a.Reset()
	return a
}

func (a *Agent) Reset() {
	a.body = physics.NewBody(physics.Dynamic)
	a.body.Mass = 10
	a.body.Position = a.Params.Position
	a.control = physics.NewBody(physics.Kinematic)
	a.control.Position = a.Params.Position
	a.shape = physics.NewCircle(a.body, a.Params.Radius)
	a.shape.Friction = 0.7
	a.shape.Elasticity = 0
}

func (a *Agent) AddTo(s *physics.Space) {
	s.AddBody(a.control)
	s.AddBody(a.body)
	s.AddShape(a.shape)
	s.AddConstraint(physics.NewPivotJoint(a.control, a.body, agentLinearCoupling))
	s.AddConstraint(physics.NewGearJoint(a.control, a.body, agentAngularCoupling))
}

// Steer sets the control-body velocity toward the given direction
func (a *Agent) Steer(direction physics.Vec2) {
	a.control.Velocity = direction.Scale(a.Params.Speed)
}

func (a *Agent) Body() *physics.Body {
	return a.body
}

func (a *Agent) Shape() *physics.Circle {
	return a.shape
}

// Wall is a static segment, drawn in the background color so the field
// looks open while still boxing everything in.
type Wall struct {
	a, b physics.Vec2

	body  *physics.Body
	shape *physics.Segment
}

func NewWall(a, b physics.Vec2) *Wall {
	w := &Wall{a: a, b: b}
	w.Reset()
	return w
}

func (w *Wall) Reset() {
	w.body = physics.NewBody(physics.Static)
	w.shape = physics.NewSegment(w.body, w.a, w.b, 1)
	w.shape.Elasticity = 1.0
}

func (w *Wall) AddTo(s *physics.Space) {
	s.AddBody(w.body)
	s.AddShape(w.shape)
}

// FieldWalls builds the four segments just inside the field edges
func FieldWalls(width, height float64) []*Wall {
	return []*Wall{
		NewWall(physics.V(0, 1), physics.V(width, 1)),
		NewWall(physics.V(1, 0), physics.V(1, height)),
		NewWall(physics.V(width-1, 0), physics.V(width-1, height)),
		NewWall(physics.V(0, height-1), physics.V(width, height-1)),
	}
}

// BoxParams configures a dynamic open box
type BoxParams struct {
	HalfSize float64      `json:"half_size"`
	Position physics.Vec2 `json:"position"`
	Color    Color        `json:"color"`
}

// DynamicBox is a movable open box: three segments on one dynamic body,
// open side facing down so circles can be scooped and carried.
type DynamicBox struct {
	Params BoxParams

	body     *physics.Body
	segments []*physics.Segment
}

func NewDynamicBox(params BoxParams) *DynamicBox {
	b := &DynamicBox{Params: params}
	b.Reset()
	return b
}

func (b *DynamicBox) Reset() {
	r := b.Params.HalfSize
	b.body = physics.NewBody(physics.Dynamic)
	b.body.Mass = 1.0
	b.body.Position = b.Params.Position

	starts := []physics.Vec2{physics.V(-r, -r), physics.V(-r, -r), physics.V(r, -r)}
	ends := []physics.Vec2{physics.V(r, -r), physics.V(-r, r), physics.V(r, r)}
	b.segments = make([]*physics.Segment, 0, 3)
	for i := range starts {
		seg := physics.NewSegment(b.body, starts[i], ends[i], 4)
		seg.Friction = 0.7
		seg.Elasticity = 0
		b.segments = append(b.segments, seg)
	}
}

func (b *DynamicBox) AddTo(s *physics.Space) {
	s.AddBody(b.body)
	for _, seg := range b.segments {
		s.AddShape(seg)
	}
	floor := physics.NewBody(physics.Static)
	s.AddConstraint(physics.NewPivotJoint(floor, b.body, boxLinearFriction))
	s.AddConstraint(physics.NewGearJoint(floor, b.body, boxAngularFriction))
}

func (b *DynamicBox) Body() *physics.Body {
	return b.body
}

func (b *DynamicBox) Segments() []*physics.Segment {
	return b.segments
}
