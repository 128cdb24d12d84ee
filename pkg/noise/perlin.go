package noise

import (
	gomath "math"

	"github.com/Faultbox/terragen/pkg/math"
)

// Sample evaluates 2D gradient noise at (x, y) and returns a value in [0, 1].
// The result depends only on the inputs and the table contents.
func (t *Table) Sample(x, y float32) float32 {
	fx := floorf(x)
	fy := floorf(y)

	// Lattice cell, wrapped into table range
	xi := int(fx) & 255
	yi := int(fy) & 255

	// Offset inside the cell, in [0, 1)
	xf := x - fx
	yf := y - fy

	p := &t.p
	bottomLeft := int(p[int(p[xi])+yi])
	bottomRight := int(p[int(p[xi+1])+yi])
	topLeft := int(p[int(p[xi])+yi+1])
	topRight := int(p[int(p[xi+1])+yi+1])

	dotBottomLeft := gradient(bottomLeft, math.Vec2{X: xf, Y: yf})
	dotBottomRight := gradient(bottomRight, math.Vec2{X: xf - 1, Y: yf})
	dotTopLeft := gradient(topLeft, math.Vec2{X: xf, Y: yf - 1})
	dotTopRight := gradient(topRight, math.Vec2{X: xf - 1, Y: yf - 1})

	u := Fade(xf)
	v := Fade(yf)
	bottom := Lerp(u, dotBottomLeft, dotBottomRight)
	top := Lerp(u, dotTopLeft, dotTopRight)
	raw := Lerp(v, bottom, top)

	// [-1, 1] -> [0, 1], sign flipped
	return (1 - raw) / 2
}

// Sample evaluates noise against the canonical table.
func Sample(x, y float32) float32 {
	return canonical.Sample(x, y)
}

// Fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func Fade(t float32) float32 {
	return t * t * t * (t*(t*6-15) + 10)
}

// Lerp interpolates linearly between a and b.
func Lerp(t, a, b float32) float32 {
	return a + t*(b-a)
}

// gradient dots one of four diagonal gradients, picked by hash, with offset.
func gradient(hash int, offset math.Vec2) float32 {
	var g math.Vec2
	switch hash % 4 {
	case 0:
		g = math.Vec2{X: 1, Y: 1}
	case 1:
		g = math.Vec2{X: -1, Y: 1}
	case 2:
		g = math.Vec2{X: -1, Y: -1}
	case 3:
		g = math.Vec2{X: 1, Y: -1}
	default:
		panic("noise: gradient hash out of range")
	}
	return g.Dot(offset)
}

func floorf(v float32) float32 {
	return float32(gomath.Floor(float64(v)))
}
