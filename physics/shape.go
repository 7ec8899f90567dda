package physics

// Shape is a collision volume attached to a body
type Shape interface {
	Body() *Body
}

// Circle is a circular shape centered on its body position
type Circle struct {
	body *Body

	Radius     float64
	Friction   float64
	Elasticity float64
}

func NewCircle(body *Body, radius float64) *Circle {
	return &Circle{body: body, Radius: radius}
}

func (c *Circle) Body() *Body {
	return c.body
}

// Segment is a thick line between two points, in body-local coordinates
type Segment struct {
	body *Body

	A, B       Vec2
	Radius     float64
	Friction   float64
	Elasticity float64
}

func NewSegment(body *Body, a, b Vec2, radius float64) *Segment {
	return &Segment{body: body, A: a, B: b, Radius: radius}
}

func (s *Segment) Body() *Body {
	return s.body
}

// world endpoints of the segment (bodies carrying segments do not rotate
// in this simulation, so translation is enough)
func (s *Segment) worldEndpoints() (Vec2, Vec2) {
	return s.body.Position.Add(s.A), s.body.Position.Add(s.B)
}

// closestOnSegment returns the point on ab closest to p
func closestOnSegment(p, a, b Vec2) Vec2 {
	ab := b.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t))
}
