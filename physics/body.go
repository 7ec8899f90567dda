package physics

// BodyType distinguishes how a body reacts to forces and collisions
type BodyType int

const (
	// Dynamic bodies are moved by collisions and friction
	Dynamic BodyType = iota
	// Kinematic bodies move with their set velocity and are never pushed
	Kinematic
	// Static bodies never move
	Static
)

// Body carries the motion state of one simulated object
type Body struct {
	Type BodyType

	Position Vec2
	Velocity Vec2

	Angle           float64
	AngularVelocity float64

	Mass float64
}

func NewBody(t BodyType) *Body {
	mass := 0.0
	if t == Dynamic {
		mass = 1.0
	}
	return &Body{Type: t, Mass: mass}
}

// InvMass is zero for non-dynamic bodies so collision impulses ignore them
func (b *Body) InvMass() float64 {
	if b.Type != Dynamic || b.Mass == 0 {
		return 0
	}
	return 1 / b.Mass
}

func (b *Body) integrate(dt float64) {
	if b.Type == Static {
		return
	}
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	b.Angle += b.AngularVelocity * dt
}
