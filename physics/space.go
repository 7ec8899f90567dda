package physics

const (
	// positional correction keeps resting shapes from sinking into each other
	correctionPercent = 0.8
	correctionSlop    = 0.01
)

// Space owns all bodies, shapes and constraints and advances the simulation
// with a fixed timestep.
type Space struct {
	bodies      []*Body
	shapes      []Shape
	constraints []Constraint
	filter      CollisionFilter
}

func NewSpace() *Space {
	return &Space{
		bodies:      make([]*Body, 0),
		shapes:      make([]Shape, 0),
		constraints: make([]Constraint, 0),
	}
}

func (s *Space) AddBody(b *Body) {
	s.bodies = append(s.bodies, b)
}

func (s *Space) AddShape(sh Shape) {
	s.shapes = append(s.shapes, sh)
}

func (s *Space) AddConstraint(c Constraint) {
	s.constraints = append(s.constraints, c)
}

func (s *Space) Bodies() []*Body {
	return s.bodies
}

func (s *Space) Shapes() []Shape {
	return s.shapes
}

// Clear removes every body, shape and constraint
func (s *Space) Clear() {
	s.bodies = s.bodies[:0]
	s.shapes = s.shapes[:0]
	s.constraints = s.constraints[:0]
}

// Step advances the simulation by dt seconds: constraints first, then
// integration, then collision resolution.
func (s *Space) Step(dt float64) {
	for _, c := range s.constraints {
		c.apply(dt)
	}
	for _, b := range s.bodies {
		b.integrate(dt)
	}
	s.resolveCollisions()
}

// CollisionFilter can veto a contact before it is resolved. Returning
// false skips the collision response for this pair.
type CollisionFilter func(a, b Shape) bool

var noFilter CollisionFilter = func(a, b Shape) bool { return true }

// SetCollisionFilter installs the filter applied to every contact
func (s *Space) SetCollisionFilter(f CollisionFilter) {
	if f == nil {
		f = noFilter
	}
	s.filter = f
}

func (s *Space) resolveCollisions() {
	if s.filter == nil {
		s.filter = noFilter
	}
	for i := 0; i < len(s.shapes); i++ {
		for j := i + 1; j < len(s.shapes); j++ {
			a, b := s.shapes[i], s.shapes[j]
			if a.Body().Type != Dynamic && b.Body().Type != Dynamic {
				continue
			}
			if a.Body() == b.Body() {
				continue
			}
			switch sa := a.(type) {
			case *Circle:
				switch sb := b.(type) {
				case *Circle:
					s.collideCircles(sa, sb)
				case *Segment:
					s.collideCircleSegment(sa, sb)
				}
			case *Segment:
				if sb, ok := b.(*Circle); ok {
					s.collideCircleSegment(sb, sa)
				}
			}
		}
	}
}

func (s *Space) collideCircles(a, b *Circle) {
	delta := b.Body().Position.Sub(a.Body().Position)
	dist := delta.Length()
	penetration := a.Radius + b.Radius - dist
	if penetration <= 0 {
		return
	}
	normal := V(1, 0)
	if dist > 0 {
		normal = delta.Scale(1 / dist)
	}
	if !s.filter(a, b) {
		return
	}
	resolveContact(contact{
		a: a.Body(), b: b.Body(),
		normal:      normal,
		penetration: penetration,
		elasticity:  a.Elasticity * b.Elasticity,
		friction:    a.Friction * b.Friction,
	})
}

func (s *Space) collideCircleSegment(c *Circle, seg *Segment) {
	sa, sb := seg.worldEndpoints()
	closest := closestOnSegment(c.Body().Position, sa, sb)
	delta := c.Body().Position.Sub(closest)
	dist := delta.Length()
	penetration := c.Radius + seg.Radius - dist
	if penetration <= 0 {
		return
	}
	normal := V(0, -1)
	if dist > 0 {
		normal = delta.Scale(1 / dist)
	}
	if !s.filter(c, seg) {
		return
	}
	resolveContact(contact{
		a: seg.Body(), b: c.Body(),
		normal:      normal,
		penetration: penetration,
		elasticity:  c.Elasticity * seg.Elasticity,
		friction:    c.Friction * seg.Friction,
	})
}

// contact between bodies a and b, normal pointing from a to b
type contact struct {
	a, b        *Body
	normal      Vec2
	penetration float64
	elasticity  float64
	friction    float64
}

func resolveContact(ct contact) {
	invA, invB := ct.a.InvMass(), ct.b.InvMass()
	invSum := invA + invB
	if invSum == 0 {
		return
	}

	rv := ct.b.Velocity.Sub(ct.a.Velocity)
	velAlongNormal := rv.Dot(ct.normal)
	if velAlongNormal < 0 {
		j := -(1 + ct.elasticity) * velAlongNormal / invSum
		impulse := ct.normal.Scale(j)
		ct.a.Velocity = ct.a.Velocity.Sub(impulse.Scale(invA))
		ct.b.Velocity = ct.b.Velocity.Add(impulse.Scale(invB))

		// Coulomb friction along the contact tangent
		if ct.friction > 0 {
			rv = ct.b.Velocity.Sub(ct.a.Velocity)
			tangent := rv.Sub(ct.normal.Scale(rv.Dot(ct.normal)))
			if !tangent.IsZero() {
				tangent = tangent.Normalized()
				jt := -rv.Dot(tangent) / invSum
				maxJt := ct.friction * j
				if jt > maxJt {
					jt = maxJt
				} else if jt < -maxJt {
					jt = -maxJt
				}
				fImpulse := tangent.Scale(jt)
				ct.a.Velocity = ct.a.Velocity.Sub(fImpulse.Scale(invA))
				ct.b.Velocity = ct.b.Velocity.Add(fImpulse.Scale(invB))
			}
		}
	}

	depth := ct.penetration - correctionSlop
	if depth > 0 {
		correction := ct.normal.Scale(depth / invSum * correctionPercent)
		ct.a.Position = ct.a.Position.Sub(correction.Scale(invA))
		ct.b.Position = ct.b.Position.Add(correction.Scale(invB))
	}
}
