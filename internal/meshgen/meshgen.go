// Package meshgen builds primitive triangle meshes with the sdfx
// SDF library, for producing sample OFF files.
package meshgen

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/offmesh/pkg/mesh"
)

// Generation errors.
var (
	ErrUnknownShape = errors.New("unknown shape")
	ErrInvalidSize  = errors.New("shape size must be positive")
	ErrInvalidCells = errors.New("marching cubes cells must be positive")
)

// Shape is a primitive solid.
type Shape string

// Supported shapes.
const (
	ShapeBox      Shape = "box"
	ShapeSphere   Shape = "sphere"
	ShapeCylinder Shape = "cylinder"
)

// Shapes lists every supported shape.
var Shapes = []Shape{ShapeBox, ShapeSphere, ShapeCylinder}

// Options controls primitive generation.
type Options struct {
	Size  float64 // edge length, diameter or height, in model units
	Cells int     // marching cubes cells along the longest axis
}

// Generate tessellates a primitive centered at the origin. The mesh carries
// one face normal per vertex and does not share vertices between triangles.
func Generate(shape Shape, opts Options) (*mesh.Mesh, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSize, opts.Size)
	}
	if opts.Cells <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCells, opts.Cells)
	}

	solid, err := solidFor(shape, opts.Size)
	if err != nil {
		return nil, err
	}

	renderer := render.NewMarchingCubesUniform(opts.Cells)
	triangles := render.ToTriangles(solid, renderer)

	m := &mesh.Mesh{
		Vertices: make([]mgl32.Vec3, 0, len(triangles)*3),
		Normals:  make([]mgl32.Vec3, 0, len(triangles)*3),
		Faces:    make([]mesh.Face, 0, len(triangles)),
	}

	for i, tri := range triangles {
		n := tri.Normal()
		normal := mgl32.Vec3{float32(n.X), float32(n.Y), float32(n.Z)}

		for j := 0; j < 3; j++ {
			v := tri[j]
			m.Vertices = append(m.Vertices, mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)})
			m.Normals = append(m.Normals, normal)
		}
		m.Faces = append(m.Faces, mesh.Face{i * 3, i*3 + 1, i*3 + 2})
	}

	return m, nil
}

// solidFor builds the signed distance field of a shape.
func solidFor(shape Shape, size float64) (sdf.SDF3, error) {
	switch shape {
	case ShapeBox:
		return sdf.Box3D(v3.Vec{X: size, Y: size, Z: size}, 0)
	case ShapeSphere:
		return sdf.Sphere3D(size / 2)
	case ShapeCylinder:
		return sdf.Cylinder3D(size, size/2, 0)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, shape)
	}
}
