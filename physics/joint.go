package physics

// Joints here reproduce the constraint trick the environment relies on:
// a pivot joint with zero bias acts as linear friction between two bodies,
// a gear joint with zero bias as angular friction. The joint pulls the
// velocities of the two bodies together with an impulse capped by MaxForce.

// Constraint is applied each step before integration
type Constraint interface {
	apply(dt float64)
}

// PivotJoint drags the velocity of B toward the velocity of A.
// With A static it emulates linear friction against the floor; with A a
// kinematic control body it steers B.
type PivotJoint struct {
	A, B     *Body
	MaxForce float64
}

func NewPivotJoint(a, b *Body, maxForce float64) *PivotJoint {
	return &PivotJoint{A: a, B: b, MaxForce: maxForce}
}

func (p *PivotJoint) apply(dt float64) {
	if p.B.Type != Dynamic {
		return
	}
	diff := p.A.Velocity.Sub(p.B.Velocity)
	if diff.IsZero() {
		return
	}
	// impulse capped at MaxForce*dt
	maxDelta := p.MaxForce * dt * p.B.InvMass()
	p.B.Velocity = p.B.Velocity.Add(diff.ClampLength(maxDelta))
}

// GearJoint drags the angular velocity of B toward that of A
type GearJoint struct {
	A, B     *Body
	MaxForce float64
}

func NewGearJoint(a, b *Body, maxForce float64) *GearJoint {
	return &GearJoint{A: a, B: b, MaxForce: maxForce}
}

func (g *GearJoint) apply(dt float64) {
	if g.B.Type != Dynamic {
		return
	}
	diff := g.A.AngularVelocity - g.B.AngularVelocity
	if diff == 0 {
		return
	}
	maxDelta := g.MaxForce * dt * g.B.InvMass()
	if diff > maxDelta {
		diff = maxDelta
	} else if diff < -maxDelta {
		diff = -maxDelta
	}
	g.B.AngularVelocity += diff
}
