package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/offmesh/pkg/mesh"
)

// EncodeOptions controls optional parts of the OFF output.
type EncodeOptions struct {
	// Comments are written as '#' lines after the header keyword.
	Comments []string
}

// EncodeOFF writes m to w as 3D, non-homogeneous OFF text.
func EncodeOFF(w io.Writer, m *mesh.Mesh) error {
	return EncodeOFFWithOptions(w, m, EncodeOptions{})
}

// EncodeOFFWithOptions writes m to w. The header declares ST, C and N for
// every non-empty attribute and the vertex lines carry exactly those fields,
// in position, normal, color, uv order.
func EncodeOFFWithOptions(w io.Writer, m *mesh.Mesh, opts EncodeOptions) error {
	if m == nil {
		return fmt.Errorf("%w: nil mesh", ErrInvalidMesh)
	}
	if err := m.CheckAttributes(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMesh, err)
	}

	bw := bufio.NewWriter(w)
	enc := offEncoder{w: bw}

	enc.line(EncodeHeader(m).Keyword())
	for _, c := range opts.Comments {
		enc.line("# " + strings.ReplaceAll(c, "\n", " "))
	}
	enc.line(fmt.Sprintf("%d %d 0", m.VertexCount(), m.FaceCount()))

	for i, v := range m.Vertices {
		enc.floats(v[:])
		if m.HasNormals() {
			enc.floats(m.Normals[i][:])
		}
		if m.HasColors() {
			enc.floats(m.Colors[i][:])
		}
		if m.HasUVs() {
			enc.floats(m.UVs[i][:])
		}
		enc.endLine()
	}

	for _, f := range m.Faces {
		enc.line(fmt.Sprintf("3 %d %d %d", f[0], f[1], f[2]))
	}

	if enc.err != nil {
		return fmt.Errorf("writing OFF: %w", enc.err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing OFF: %w", err)
	}
	return nil
}

// EncodeHeader returns the header the encoder writes for m.
func EncodeHeader(m *mesh.Mesh) Header {
	h := Header{Dimension: defaultOFFDimension}
	if m.HasUVs() {
		h.Caps |= CapTextureCoord
	}
	if m.HasColors() {
		h.Caps |= CapColor
	}
	if m.HasNormals() {
		h.Caps |= CapNormal
	}
	return h
}

// offEncoder writes space separated fields and keeps the first write error.
type offEncoder struct {
	w       *bufio.Writer
	started bool // current line has a field
	buf     []byte
	err     error
}

func (e *offEncoder) line(s string) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(s)
	e.endLine()
}

func (e *offEncoder) floats(vals []float32) {
	for _, v := range vals {
		if e.err != nil {
			return
		}
		e.buf = e.buf[:0]
		if e.started {
			e.buf = append(e.buf, ' ')
		}
		e.buf = strconv.AppendFloat(e.buf, float64(v), 'g', -1, 32)
		_, e.err = e.w.Write(e.buf)
		e.started = true
	}
}

func (e *offEncoder) endLine() {
	e.started = false
	if e.err != nil {
		return
	}
	e.err = e.w.WriteByte('\n')
}
