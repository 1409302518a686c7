// Package mesh provides the in-memory triangle mesh shared by the codecs.
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh validation errors.
var (
	ErrAttributeLength = errors.New("attribute length does not match vertex count")
	ErrFaceIndex       = errors.New("face index out of range")
)

// Face holds three indices into Mesh.Vertices.
type Face [3]int

// Mesh is a triangle mesh with optional per-vertex attributes.
// An attribute is either present for every vertex or absent (empty).
type Mesh struct {
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	Colors   []mgl32.Vec4 // RGBA, not clamped
	UVs      []mgl32.Vec2
	Faces    []Face
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of triangles.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// HasNormals reports whether the mesh carries per-vertex normals.
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) != 0
}

// HasColors reports whether the mesh carries per-vertex colors.
func (m *Mesh) HasColors() bool {
	return len(m.Colors) != 0
}

// HasUVs reports whether the mesh carries texture coordinates.
func (m *Mesh) HasUVs() bool {
	return len(m.UVs) != 0
}

// CheckAttributes verifies that every present attribute has one entry per vertex.
func (m *Mesh) CheckAttributes() error {
	n := len(m.Vertices)
	if m.HasNormals() && len(m.Normals) != n {
		return fmt.Errorf("%w: %d normals for %d vertices", ErrAttributeLength, len(m.Normals), n)
	}
	if m.HasColors() && len(m.Colors) != n {
		return fmt.Errorf("%w: %d colors for %d vertices", ErrAttributeLength, len(m.Colors), n)
	}
	if m.HasUVs() && len(m.UVs) != n {
		return fmt.Errorf("%w: %d uvs for %d vertices", ErrAttributeLength, len(m.UVs), n)
	}
	return nil
}

// Validate checks attribute lengths and that every face index refers to a vertex.
func (m *Mesh) Validate() error {
	if err := m.CheckAttributes(); err != nil {
		return err
	}
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("%w: face %d references vertex %d (have %d)", ErrFaceIndex, i, idx, n)
			}
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the vertices.
// Both corners are zero for an empty mesh.
func (m *Mesh) Bounds() (min, max mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}

	min = m.Vertices[0]
	max = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		for axis := 0; axis < 3; axis++ {
			if v[axis] < min[axis] {
				min[axis] = v[axis]
			}
			if v[axis] > max[axis] {
				max[axis] = v[axis]
			}
		}
	}

	return min, max
}

// Transform applies an affine transform to the positions in place.
// Normals are transformed by the inverse transpose and renormalized.
func (m *Mesh) Transform(t mgl32.Mat4) {
	for i, v := range m.Vertices {
		m.Vertices[i] = t.Mul4x1(v.Vec4(1)).Vec3()
	}

	if !m.HasNormals() {
		return
	}

	normalMat := t.Mat3().Inv().Transpose()
	for i, n := range m.Normals {
		n = normalMat.Mul3x1(n)
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
		}
		m.Normals[i] = n
	}
}
