package terrain

import (
	gomath "math"

	"github.com/Faultbox/terragen/pkg/math"
)

// Placement positions a terrain in the world.
type Placement struct {
	Offset     [3]float32
	Scale      [3]float32
	YawDegrees float32
}

// DefaultPlacement leaves the terrain at the origin, unscaled.
func DefaultPlacement() Placement {
	return Placement{Scale: [3]float32{1, 1, 1}}
}

// Transform returns the model matrix: scale, then yaw, then translate.
func (p Placement) Transform() math.Mat4 {
	if p == DefaultPlacement() {
		return math.Identity()
	}
	yaw := float32(float64(p.YawDegrees) * gomath.Pi / 180)
	return math.Translate(p.Offset[0], p.Offset[1], p.Offset[2]).
		Mul(math.RotateY(yaw)).
		Mul(math.Scale(p.Scale[0], p.Scale[1], p.Scale[2]))
}

// Collider is the static triangle surface handed to a physics engine.
// Positions are in mesh space; Transform places them in the world.
type Collider struct {
	Positions [][3]float32
	Triangles [][3]uint32
	Transform math.Mat4
}

// NewCollider shares the mesh positions and groups indices into triangles.
func NewCollider(m *Mesh, p Placement) *Collider {
	triangles := make([][3]uint32, m.TriangleCount())
	for i := range triangles {
		triangles[i] = [3]uint32{m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]}
	}

	return &Collider{
		Positions: m.Positions,
		Triangles: triangles,
		Transform: p.Transform(),
	}
}

// WorldPositions returns the collider vertices with the placement applied.
func (c *Collider) WorldPositions() [][3]float32 {
	out := make([][3]float32, len(c.Positions))
	for i, p := range c.Positions {
		out[i] = c.Transform.TransformPoint(p)
	}
	return out
}

// WorldBounds returns the bounding box of the placed collider.
func (c *Collider) WorldBounds() Bounds {
	b := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for _, p := range c.WorldPositions() {
		updateBounds(&b, p)
	}
	return b
}

// SurfaceArea returns the total world-space area of the collider triangles.
func (c *Collider) SurfaceArea() float64 {
	world := c.WorldPositions()

	var area float64
	for _, t := range c.Triangles {
		a := math.V3(world[t[0]])
		b := math.V3(world[t[1]])
		d := math.V3(world[t[2]])
		area += float64(b.Sub(a).Cross(d.Sub(a)).Length()) / 2
	}
	return area
}
