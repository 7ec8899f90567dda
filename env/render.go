package env

import (
	"image"
	"math"

	"github.com/nomutin/Push2D/physics"
)

// Frame is an RGB image of the field, row-major, three bytes per pixel.
// It doubles as the environment observation.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
}

func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

func (f *Frame) Set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	i := (y*f.Width + x) * 3
	f.Pix[i] = c.R
	f.Pix[i+1] = c.G
	f.Pix[i+2] = c.B
}

func (f *Frame) At(x, y int) Color {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return Color{}
	}
	i := (y*f.Width + x) * 3
	return Color{f.Pix[i], f.Pix[i+1], f.Pix[i+2]}
}

func (f *Frame) Fill(c Color) {
	for i := 0; i < len(f.Pix); i += 3 {
		f.Pix[i] = c.R
		f.Pix[i+1] = c.G
		f.Pix[i+2] = c.B
	}
}

func (f *Frame) Clone() *Frame {
	clone := NewFrame(f.Width, f.Height)
	copy(clone.Pix, f.Pix)
	return clone
}

// RGBA converts the frame for PNG encoding
func (f *Frame) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			si := (y*f.Width + x) * 3
			di := img.PixOffset(x, y)
			img.Pix[di] = f.Pix[si]
			img.Pix[di+1] = f.Pix[si+1]
			img.Pix[di+2] = f.Pix[si+2]
			img.Pix[di+3] = 255
		}
	}
	return img
}

func (f *Frame) DrawCircle(center physics.Vec2, radius float64, c Color) {
	minX := int(math.Floor(center.X - radius))
	maxX := int(math.Ceil(center.X + radius))
	minY := int(math.Floor(center.Y - radius))
	maxY := int(math.Ceil(center.Y + radius))
	rSq := radius * radius
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) + 0.5 - center.X
			dy := float64(y) + 0.5 - center.Y
			if dx*dx+dy*dy <= rSq {
				f.Set(x, y, c)
			}
		}
	}
}

func (f *Frame) DrawSegment(a, b physics.Vec2, radius float64, c Color) {
	minX := int(math.Floor(math.Min(a.X, b.X) - radius))
	maxX := int(math.Ceil(math.Max(a.X, b.X) + radius))
	minY := int(math.Floor(math.Min(a.Y, b.Y) - radius))
	maxY := int(math.Ceil(math.Max(a.Y, b.Y) + radius))
	rSq := radius * radius
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := physics.V(float64(x)+0.5, float64(y)+0.5)
			d := p.Sub(closestPointOnSegment(p, a, b))
			if d.LengthSq() <= rSq {
				f.Set(x, y, c)
			}
		}
	}
}

func (f *Frame) DrawRect(pos physics.Vec2, w, h float64, c Color) {
	for y := int(pos.Y); y < int(pos.Y+h); y++ {
		for x := int(pos.X); x < int(pos.X+w); x++ {
			f.Set(x, y, c)
		}
	}
}

func closestPointOnSegment(p, a, b physics.Vec2) physics.Vec2 {
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
