package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// TMSH format errors.
var (
	ErrInvalidTMSHMagic       = errors.New("invalid TMSH magic: expected 'TMSH'")
	ErrUnsupportedTMSHVersion = errors.New("unsupported TMSH version")
	ErrTruncatedTMSHData      = errors.New("truncated TMSH data")
	ErrInvalidTMSHIndex       = errors.New("TMSH index out of range")
)

// Current TMSH version written by Encode.
const (
	TMSHVersionMajor = 1
	TMSHVersionMinor = 0
)

// tmshHeaderSize: magic(4) + version(2) + width, height, extent, vertex count, index count (4 each).
const tmshHeaderSize = 26

// Bytes per vertex: position(12) + normal(12) + uv(8).
const tmshVertexSize = 32

// TMSHVersion represents the TMSH file version.
type TMSHVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v TMSHVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// TMSH is a terrain mesh container: a grid description plus the four
// parallel vertex/index buffers.
type TMSH struct {
	Version   TMSHVersion
	Width     uint32 // Grid cells along X
	Height    uint32 // Grid cells along Z
	Extent    float32
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *TMSH) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *TMSH) TriangleCount() int {
	return len(m.Indices) / 3
}

// Encode serializes the mesh. Buffers must have equal vertex counts.
func (m *TMSH) Encode() ([]byte, error) {
	if len(m.Normals) != len(m.Positions) || len(m.UVs) != len(m.Positions) {
		return nil, fmt.Errorf("mismatched buffers: %d positions, %d normals, %d uvs",
			len(m.Positions), len(m.Normals), len(m.UVs))
	}

	buf := new(bytes.Buffer)
	buf.Grow(tmshHeaderSize + len(m.Positions)*tmshVertexSize + len(m.Indices)*4)

	buf.WriteString("TMSH")
	// Version is stored as [minor, major]
	buf.WriteByte(TMSHVersionMinor)
	buf.WriteByte(TMSHVersionMajor)

	header := []any{
		m.Width,
		m.Height,
		m.Extent,
		uint32(len(m.Positions)),
		uint32(len(m.Indices)),
	}
	for _, v := range header {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}

	for _, section := range []any{m.Positions, m.Normals, m.UVs, m.Indices} {
		if err := binary.Write(buf, binary.LittleEndian, section); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// ParseTMSH parses a TMSH file from raw bytes.
func ParseTMSH(data []byte) (*TMSH, error) {
	if len(data) < tmshHeaderSize {
		return nil, ErrTruncatedTMSHData
	}

	if string(data[0:4]) != "TMSH" {
		return nil, ErrInvalidTMSHMagic
	}

	version := TMSHVersion{
		Major: data[5],
		Minor: data[4],
	}
	if version.Major != TMSHVersionMajor {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTMSHVersion, version)
	}

	r := bytes.NewReader(data[6:])

	m := &TMSH{Version: version}
	var vertexCount, indexCount uint32
	for _, field := range []struct {
		name string
		dst  any
	}{
		{"width", &m.Width},
		{"height", &m.Height},
		{"extent", &m.Extent},
		{"vertex count", &vertexCount},
		{"index count", &indexCount},
	} {
		if err := binary.Read(r, binary.LittleEndian, field.dst); err != nil {
			return nil, fmt.Errorf("%w: reading %s", ErrTruncatedTMSHData, field.name)
		}
	}

	// Check the payload size up front so a corrupt header cannot force a huge allocation.
	need := uint64(vertexCount)*tmshVertexSize + uint64(indexCount)*4
	if uint64(r.Len()) < need {
		return nil, fmt.Errorf("%w: need %d payload bytes, have %d", ErrTruncatedTMSHData, need, r.Len())
	}

	m.Positions = make([][3]float32, vertexCount)
	m.Normals = make([][3]float32, vertexCount)
	m.UVs = make([][2]float32, vertexCount)
	m.Indices = make([]uint32, indexCount)

	for _, section := range []struct {
		name string
		dst  any
	}{
		{"positions", m.Positions},
		{"normals", m.Normals},
		{"uvs", m.UVs},
		{"indices", m.Indices},
	} {
		if err := binary.Read(r, binary.LittleEndian, section.dst); err != nil {
			return nil, fmt.Errorf("%w: reading %s", ErrTruncatedTMSHData, section.name)
		}
	}

	if indexCount%3 != 0 {
		return nil, fmt.Errorf("%w: index count %d is not a multiple of 3", ErrInvalidTMSHIndex, indexCount)
	}
	for i, idx := range m.Indices {
		if idx >= vertexCount {
			return nil, fmt.Errorf("%w: index %d = %d, vertex count %d", ErrInvalidTMSHIndex, i, idx, vertexCount)
		}
	}

	return m, nil
}

// ParseTMSHFile parses a TMSH file from disk.
func ParseTMSHFile(path string) (*TMSH, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading TMSH file: %w", err)
	}
	return ParseTMSH(data)
}

// GetHeightRange returns the minimum and maximum vertex height.
func (m *TMSH) GetHeightRange() (min, max float32) {
	if len(m.Positions) == 0 {
		return 0, 0
	}

	min = m.Positions[0][1]
	max = m.Positions[0][1]
	for _, p := range m.Positions {
		if p[1] < min {
			min = p[1]
		}
		if p[1] > max {
			max = p[1]
		}
	}
	return min, max
}
