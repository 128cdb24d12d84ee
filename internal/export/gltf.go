// Package export writes generated terrain to interchange formats consumed by
// renderers and analysis tools.
package export

import (
	"fmt"
	gomath "math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/terragen/internal/terrain"
)

const generator = "terragen"

// NewDocument converts a mesh into a single-node glTF document. The placement
// is stored on the node so vertex data stays in the generator's local space.
func NewDocument(m *terrain.Mesh, pl terrain.Placement) *gltf.Document {
	doc := gltf.NewDocument()
	doc.Asset.Generator = generator

	posAccessor := modeler.WritePosition(doc, m.Positions)
	normalAccessor := modeler.WriteNormal(doc, m.Normals)
	uvAccessor := modeler.WriteTextureCoord(doc, m.UVs)
	indicesAccessor := modeler.WriteIndices(doc, m.Indices)

	prim := &gltf.Primitive{
		Attributes: map[string]int{
			gltf.POSITION:   posAccessor,
			gltf.NORMAL:     normalAccessor,
			gltf.TEXCOORD_0: uvAccessor,
		},
		Indices:  gltf.Index(indicesAccessor),
		Material: gltf.Index(0),
	}

	pbr := &gltf.PBRMetallicRoughness{
		BaseColorFactor: &[4]float64{1, 1, 1, 1},
		MetallicFactor:  gltf.Float(0),
		RoughnessFactor: gltf.Float(1),
	}
	doc.Materials = []*gltf.Material{{Name: "Ground", PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}}

	name := fmt.Sprintf("Terrain_%dx%d", m.Width, m.Height)
	doc.Meshes = []*gltf.Mesh{{Name: name, Primitives: []*gltf.Primitive{prim}}}

	half := float64(pl.YawDegrees) * gomath.Pi / 360
	node := &gltf.Node{
		Name:        name,
		Mesh:        gltf.Index(0),
		Translation: vec3d(pl.Offset),
		Rotation:    [4]float64{0, gomath.Sin(half), 0, gomath.Cos(half)},
		Scale:       vec3d(pl.Scale),
	}
	doc.Nodes = []*gltf.Node{node}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	return doc
}

// vec3d widens a mesh-space triple to the float64 node transform fields.
func vec3d(v [3]float32) [3]float64 {
	return [3]float64{float64(v[0]), float64(v[1]), float64(v[2])}
}

// WriteGLB saves the mesh as a binary glTF file with the identity placement.
func WriteGLB(m *terrain.Mesh, path string) error {
	return WritePlacedGLB(m, terrain.DefaultPlacement(), path)
}

// WritePlacedGLB saves the mesh as a binary glTF file with the given node transform.
func WritePlacedGLB(m *terrain.Mesh, pl terrain.Placement, path string) error {
	if m.VertexCount() == 0 {
		return fmt.Errorf("export glb: empty mesh")
	}
	if err := gltf.SaveBinary(NewDocument(m, pl), path); err != nil {
		return fmt.Errorf("export glb %s: %w", path, err)
	}
	return nil
}
