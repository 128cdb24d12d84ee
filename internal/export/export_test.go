package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/qmuntal/gltf"

	"github.com/Faultbox/terragen/internal/terrain"
	"github.com/Faultbox/terragen/pkg/noise"
)

func buildMesh(t *testing.T, width, height int) *terrain.Mesh {
	t.Helper()
	p := terrain.DefaultParams()
	p.Width = width
	p.Height = height
	m, err := terrain.Build(noise.Canonical(), p)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return m
}

func TestNewDocument(t *testing.T) {
	m := buildMesh(t, 4, 3)
	doc := NewDocument(m, terrain.DefaultPlacement())

	if doc.Asset.Generator != "terragen" {
		t.Errorf("Generator = %q, want terragen", doc.Asset.Generator)
	}
	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != 1 {
		t.Fatalf("expected 1 mesh with 1 primitive, got %d meshes", len(doc.Meshes))
	}
	prim := doc.Meshes[0].Primitives[0]

	for _, attr := range []string{gltf.POSITION, gltf.NORMAL, gltf.TEXCOORD_0} {
		idx, ok := prim.Attributes[attr]
		if !ok {
			t.Errorf("missing attribute %s", attr)
			continue
		}
		if got := int(doc.Accessors[idx].Count); got != m.VertexCount() {
			t.Errorf("%s count = %d, want %d", attr, got, m.VertexCount())
		}
	}
	if prim.Indices == nil {
		t.Fatal("primitive has no indices")
	}
	if got := int(doc.Accessors[*prim.Indices].Count); got != len(m.Indices) {
		t.Errorf("index count = %d, want %d", got, len(m.Indices))
	}

	if len(doc.Materials) != 1 || doc.Materials[0].AlphaMode != gltf.AlphaOpaque {
		t.Error("expected one opaque material")
	}
	if len(doc.Nodes) != 1 || len(doc.Scenes[0].Nodes) != 1 {
		t.Errorf("expected one node in the scene, got %d nodes", len(doc.Nodes))
	}
	if doc.Meshes[0].Name != "Terrain_4x3" {
		t.Errorf("mesh name = %q, want Terrain_4x3", doc.Meshes[0].Name)
	}
}

func TestNewDocumentPlacement(t *testing.T) {
	m := buildMesh(t, 2, 2)
	doc := NewDocument(m, terrain.Placement{
		Offset:     [3]float32{5, 0, -2},
		Scale:      [3]float32{2, 3, 2},
		YawDegrees: 180,
	})

	node := doc.Nodes[0]
	if node.Translation != [3]float64{5, 0, -2} {
		t.Errorf("Translation = %v, want (5,0,-2)", node.Translation)
	}
	if node.Scale != [3]float64{2, 3, 2} {
		t.Errorf("Scale = %v, want (2,3,2)", node.Scale)
	}
	// Half turn about Y: (0, 1, 0, ~0)
	if r := node.Rotation; r[0] != 0 || r[2] != 0 || r[1] < 0.9999 || r[3] > 1e-6 || r[3] < -1e-6 {
		t.Errorf("Rotation = %v, want (0,1,0,0)", r)
	}
}

func TestWriteGLB(t *testing.T) {
	m := buildMesh(t, 8, 8)
	path := filepath.Join(t.TempDir(), "terrain.glb")

	if err := WriteGLB(m, path); err != nil {
		t.Fatalf("WriteGLB failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read glb: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("glTF")) {
		t.Errorf("file does not start with glTF magic: %q", data[:4])
	}

	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("gltf.Open failed: %v", err)
	}
	pos := doc.Meshes[0].Primitives[0].Attributes[gltf.POSITION]
	if got := int(doc.Accessors[pos].Count); got != 81 {
		t.Errorf("position count = %d, want 81", got)
	}
}

func TestWritePlacedGLB(t *testing.T) {
	m := buildMesh(t, 3, 3)
	path := filepath.Join(t.TempDir(), "placed.glb")
	pl := terrain.Placement{
		Offset:     [3]float32{1.5, -2, 4},
		Scale:      [3]float32{2, 0.5, 2},
		YawDegrees: 90,
	}

	if err := WritePlacedGLB(m, pl, path); err != nil {
		t.Fatalf("WritePlacedGLB failed: %v", err)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("gltf.Open failed: %v", err)
	}

	if len(doc.Scenes) == 0 || len(doc.Scenes[0].Nodes) != 1 || doc.Scenes[0].Nodes[0] != 0 {
		t.Fatalf("scene nodes = %v, want [0]", doc.Scenes[0].Nodes)
	}
	node := doc.Nodes[0]
	if node.Mesh == nil || *node.Mesh != 0 {
		t.Errorf("node mesh = %v, want 0", node.Mesh)
	}
	if node.Translation != [3]float64{1.5, -2, 4} {
		t.Errorf("Translation = %v, want (1.5,-2,4)", node.Translation)
	}
	if node.Scale != [3]float64{2, 0.5, 2} {
		t.Errorf("Scale = %v, want (2,0.5,2)", node.Scale)
	}
	// Quarter turn about Y: (0, sin 45°, 0, cos 45°)
	const s = 0.7071067811865476
	if r := node.Rotation; r[0] != 0 || r[2] != 0 || r[1]-s > 1e-9 || s-r[1] > 1e-9 || r[3]-s > 1e-9 || s-r[3] > 1e-9 {
		t.Errorf("Rotation = %v, want (0,%v,0,%v)", r, s, s)
	}

	prim := doc.Meshes[0].Primitives[0]
	if prim.Material == nil || *prim.Material != 0 {
		t.Errorf("primitive material = %v, want 0", prim.Material)
	}
	if pbr := doc.Materials[0].PBRMetallicRoughness; pbr == nil || pbr.BaseColorFactor == nil || *pbr.BaseColorFactor != [4]float64{1, 1, 1, 1} {
		t.Errorf("base color = %+v, want opaque white", pbr)
	}
}

func TestWriteGLBEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.glb")
	if err := WriteGLB(&terrain.Mesh{}, path); err == nil {
		t.Error("expected error for empty mesh")
	}
}

func TestWriteHeightCSV(t *testing.T) {
	m := buildMesh(t, 3, 2)

	var buf bytes.Buffer
	if err := WriteHeightCSV(m, &buf); err != nil {
		t.Fatalf("WriteHeightCSV failed: %v", err)
	}

	header := strings.SplitN(buf.String(), "\n", 2)[0]
	if header != "x,y,world_x,world_z,height" {
		t.Errorf("header = %q, want x,y,world_x,world_z,height", header)
	}

	var rows []*HeightRow
	if err := gocsv.Unmarshal(strings.NewReader(buf.String()), &rows); err != nil {
		t.Fatalf("gocsv.Unmarshal failed: %v", err)
	}
	if len(rows) != m.VertexCount() {
		t.Fatalf("expected %d rows, got %d", m.VertexCount(), len(rows))
	}

	for _, r := range rows {
		p := m.Positions[m.Index(r.X, r.Y)]
		if r.WorldX != p[0] || r.WorldZ != p[2] || r.Height != p[1] {
			t.Errorf("row (%d,%d) = %+v, want position %v", r.X, r.Y, r, p)
		}
	}

	// x-major order
	if rows[0].X != 0 || rows[0].Y != 0 || rows[1].X != 0 || rows[1].Y != 1 || rows[3].X != 1 {
		t.Errorf("unexpected row order: %+v %+v %+v", rows[0], rows[1], rows[3])
	}
}

func TestWriteHeightCSVFile(t *testing.T) {
	m := buildMesh(t, 2, 2)
	path := filepath.Join(t.TempDir(), "heights.csv")

	if err := WriteHeightCSVFile(m, path); err != nil {
		t.Fatalf("WriteHeightCSVFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 10 {
		t.Errorf("expected 10 lines (header + 9 rows), got %d", len(lines))
	}
}

func TestHeightImage(t *testing.T) {
	m := buildMesh(t, 6, 4)
	img := HeightImage(m)

	if b := img.Bounds(); b.Dx() != 7 || b.Dy() != 5 {
		t.Fatalf("image size = %dx%d, want 7x5", b.Dx(), b.Dy())
	}

	var sawBlack, sawWhite bool
	for x := 0; x <= m.Width; x++ {
		for y := 0; y <= m.Height; y++ {
			v := img.Gray16At(x, y).Y
			sawBlack = sawBlack || v == 0
			sawWhite = sawWhite || v == 0xffff
		}
	}
	if !sawBlack || !sawWhite {
		t.Errorf("expected full range, black=%v white=%v", sawBlack, sawWhite)
	}

	// The lowest vertex maps to black.
	lowest := 0
	for i, p := range m.Positions {
		if p[1] < m.Positions[lowest][1] {
			lowest = i
		}
	}
	x, y := lowest/(m.Height+1), lowest%(m.Height+1)
	if v := img.Gray16At(x, y).Y; v != 0 {
		t.Errorf("pixel (%d,%d) = %d, want 0", x, y, v)
	}
}

func TestHeightImageFlat(t *testing.T) {
	m := &terrain.Mesh{
		Width:     1,
		Height:    1,
		Positions: [][3]float32{{0, 2, 0}, {0, 2, 1}, {1, 2, 0}, {1, 2, 1}},
		Bounds:    terrain.Bounds{Min: [3]float32{0, 2, 0}, Max: [3]float32{1, 2, 1}},
	}
	img := HeightImage(m)
	if v := img.Gray16At(1, 1).Y; v != 0x8000 {
		t.Errorf("flat pixel = %#x, want 0x8000", v)
	}
}

func TestWriteHeightImage(t *testing.T) {
	m := buildMesh(t, 5, 5)

	tests := []struct {
		format string
		magic  string
	}{
		{"png", "\x89PNG"},
		{"bmp", "BM"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteHeightImage(m, &buf, tt.format); err != nil {
				t.Fatalf("WriteHeightImage failed: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte(tt.magic)) {
				t.Errorf("output does not start with %q", tt.magic)
			}
		})
	}

	var buf bytes.Buffer
	if err := WriteHeightImage(m, &buf, "tiff"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestWriteHeightImageFile(t *testing.T) {
	m := buildMesh(t, 3, 3)
	dir := t.TempDir()

	path := filepath.Join(dir, "heights.png")
	if err := WriteHeightImageFile(m, path); err != nil {
		t.Fatalf("WriteHeightImageFile failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("image not written: %v", err)
	}

	bad := filepath.Join(dir, "heights.gif")
	if err := WriteHeightImageFile(m, bad); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Error("failed write should not leave a file behind")
	}
}
