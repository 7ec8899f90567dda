package physics

import (
	"math"
	"testing"
)

func TestNormalized(t *testing.T) {
	v := V(3, 4).Normalized()
	if math.Abs(v.Length()-1) > 1e-9 {
		t.Errorf("unit vector expected, got length %f", v.Length())
	}
	if !V(0, 0).Normalized().IsZero() {
		t.Errorf("normalizing zero vector should stay zero")
	}
}

func TestClampLength(t *testing.T) {
	v := V(30, 40).ClampLength(5)
	if math.Abs(v.Length()-5) > 1e-9 {
		t.Errorf("expected clamped length 5, got %f", v.Length())
	}
	v = V(1, 0).ClampLength(5)
	if v != V(1, 0) {
		t.Errorf("short vector should be unchanged, got %v", v)
	}
}

func TestClosestOnSegment(t *testing.T) {
	cases := []struct {
		p, a, b, want Vec2
	}{
		{V(5, 5), V(0, 0), V(10, 0), V(5, 0)},
		{V(-5, 5), V(0, 0), V(10, 0), V(0, 0)},
		{V(15, 5), V(0, 0), V(10, 0), V(10, 0)},
		{V(1, 1), V(2, 2), V(2, 2), V(2, 2)},
	}
	for _, c := range cases {
		got := closestOnSegment(c.p, c.a, c.b)
		if got != c.want {
			t.Errorf("closestOnSegment(%v, %v, %v) = %v, want %v", c.p, c.a, c.b, got, c.want)
		}
	}
}
