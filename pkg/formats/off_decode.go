package formats

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/offmesh/pkg/mesh"
)

// offPreallocLimit caps slice capacity reserved from the counts line, so a
// bogus count fails with ErrTokenExhausted instead of a huge allocation.
const offPreallocLimit = 1 << 16

// offState is a stage of the OFF decoder. Each stage consumes one token
// group per record.
type offState int

const (
	stateHeader offState = iota
	stateDimension
	stateCounts
	stateVertices
	stateFaces
	stateDone
)

// String returns the record name expected in the state.
func (s offState) String() string {
	switch s {
	case stateHeader:
		return "header"
	case stateDimension:
		return "dimension"
	case stateCounts:
		return "counts"
	case stateVertices:
		return "vertex"
	case stateFaces:
		return "face"
	case stateDone:
		return "done"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// offDecoder holds the state of a single OFF decode.
type offDecoder struct {
	state  offState
	header Header
	layout Layout

	vertexCount int
	faceCount   int
	cursor      int // index of the next vertex or face

	mesh *mesh.Mesh
}

// DecodeOFF reads a complete OFF mesh from r. No mesh is returned on error.
// r is read to the end of the last face record; closing it is up to the caller.
func DecodeOFF(r io.Reader) (*mesh.Mesh, error) {
	m, _, err := DecodeOFFWithHeader(r)
	return m, err
}

// DecodeOFFWithHeader is DecodeOFF that also returns the header as read from
// the input, including the dimension of nOFF files.
func DecodeOFFWithHeader(r io.Reader) (*mesh.Mesh, Header, error) {
	tokens := newOFFTokenizer(r)
	d := &offDecoder{state: stateHeader}

	for d.state != stateDone {
		group, ok := tokens.Next()
		if !ok {
			if err := tokens.Err(); err != nil {
				return nil, Header{}, fmt.Errorf("reading OFF input: %w", err)
			}
			return nil, Header{}, &ParseError{
				Index: d.recordIndex(),
				Err:   fmt.Errorf("%w: expected %s record", ErrTokenExhausted, d.state),
			}
		}

		if err := d.handle(group); err != nil {
			return nil, Header{}, &ParseError{Line: tokens.Line(), Index: d.recordIndex(), Err: err}
		}
	}

	return d.mesh, d.header, nil
}

// recordIndex returns the vertex or face index being read, or -1.
func (d *offDecoder) recordIndex() int {
	if d.state == stateVertices || d.state == stateFaces {
		return d.cursor
	}
	return -1
}

// handle dispatches one token group to the handler of the current state.
func (d *offDecoder) handle(tokens []string) error {
	switch d.state {
	case stateHeader:
		return d.handleHeader(tokens)
	case stateDimension:
		return d.handleDimension(tokens)
	case stateCounts:
		return d.handleCounts(tokens)
	case stateVertices:
		return d.handleVertex(tokens)
	case stateFaces:
		return d.handleFace(tokens)
	default:
		return fmt.Errorf("unexpected OFF decoder state %s", d.state)
	}
}

func (d *offDecoder) handleHeader(tokens []string) error {
	h, err := ParseHeader(tokens)
	if err != nil {
		return err
	}
	d.header = h

	if h.Has(CapNDimension) {
		d.state = stateDimension
	} else {
		d.state = stateCounts
	}
	return nil
}

func (d *offDecoder) handleDimension(tokens []string) error {
	dim, err := ParseDimension(tokens)
	if err != nil {
		return err
	}
	d.header.Dimension = dim
	d.state = stateCounts
	return nil
}

func (d *offDecoder) handleCounts(tokens []string) error {
	vertexCount, faceCount, err := ParseCounts(tokens)
	if err != nil {
		return err
	}
	d.vertexCount = vertexCount
	d.faceCount = faceCount
	d.layout = ComputeLayout(d.header)

	vcap := min(vertexCount, offPreallocLimit)
	m := &mesh.Mesh{
		Vertices: make([]mgl32.Vec3, 0, vcap),
		Faces:    make([]mesh.Face, 0, min(faceCount, offPreallocLimit)),
	}
	if d.header.Has(CapNormal) {
		m.Normals = make([]mgl32.Vec3, 0, vcap)
	}
	if d.header.Has(CapColor) {
		m.Colors = make([]mgl32.Vec4, 0, vcap)
	}
	if d.header.Has(CapTextureCoord) {
		m.UVs = make([]mgl32.Vec2, 0, vcap)
	}
	d.mesh = m

	d.state = stateVertices
	d.cursor = 0
	d.skipCompleted()
	return nil
}

// skipCompleted leaves the vertex and face blocks once no records remain.
func (d *offDecoder) skipCompleted() {
	if d.state == stateVertices && d.cursor == d.vertexCount {
		d.state = stateFaces
		d.cursor = 0
	}
	if d.state == stateFaces && d.cursor == d.faceCount {
		d.state = stateDone
	}
}

func (d *offDecoder) handleVertex(tokens []string) error {
	i := d.cursor
	dim := d.header.Dimension

	var pos mgl32.Vec3
	if err := parseOFFFloats(tokens, 0, pos[:dim]); err != nil {
		return fmt.Errorf("%w: vertex %d position: %v", ErrVertexParse, i, err)
	}

	w := float32(1)
	if d.header.Has(CapHomogeneous) {
		var hw [1]float32
		if err := parseOFFFloats(tokens, dim, hw[:]); err != nil {
			return fmt.Errorf("%w: vertex %d weight: %v", ErrVertexParse, i, err)
		}
		w = hw[0]
	}

	var normal mgl32.Vec3
	if d.header.Has(CapNormal) {
		if err := parseOFFFloats(tokens, d.layout.Normal, normal[:]); err != nil {
			return fmt.Errorf("%w: vertex %d normal: %v", ErrVertexParse, i, err)
		}
	}

	var color mgl32.Vec4
	if d.header.Has(CapColor) {
		if err := parseOFFFloats(tokens, d.layout.Color, color[:]); err != nil {
			return fmt.Errorf("%w: vertex %d color: %v", ErrVertexParse, i, err)
		}
	}

	var uv mgl32.Vec2
	if d.header.Has(CapTextureCoord) {
		if err := parseOFFFloats(tokens, d.layout.UV, uv[:]); err != nil {
			return fmt.Errorf("%w: vertex %d uv: %v", ErrVertexParse, i, err)
		}
	}

	// w == 0 yields Inf/NaN coordinates.
	if d.header.Has(CapHomogeneous) {
		pos = mgl32.Vec3{pos[0] / w, pos[1] / w, pos[2] / w}
	}

	d.mesh.Vertices = append(d.mesh.Vertices, pos)
	if d.header.Has(CapNormal) {
		d.mesh.Normals = append(d.mesh.Normals, normal)
	}
	if d.header.Has(CapColor) {
		d.mesh.Colors = append(d.mesh.Colors, color)
	}
	if d.header.Has(CapTextureCoord) {
		d.mesh.UVs = append(d.mesh.UVs, uv)
	}

	d.cursor++
	d.skipCompleted()
	return nil
}

func (d *offDecoder) handleFace(tokens []string) error {
	i := d.cursor

	if len(tokens) < 4 {
		return fmt.Errorf("%w: face %d: expected 4 values, got %d", ErrFaceParse, i, len(tokens))
	}
	if tokens[0] != "3" {
		return fmt.Errorf("%w: face %d: only triangles are supported, got %q vertices", ErrFaceParse, i, tokens[0])
	}

	var f mesh.Face
	for k := range f {
		idx, err := strconv.Atoi(tokens[k+1])
		if err != nil {
			return fmt.Errorf("%w: face %d index %d: %q", ErrFaceParse, i, k, tokens[k+1])
		}
		f[k] = idx
	}
	d.mesh.Faces = append(d.mesh.Faces, f)

	d.cursor++
	d.skipCompleted()
	return nil
}

// parseOFFFloats parses len(dst) tokens starting at offset. Values beyond the
// float32 range become ±Inf.
func parseOFFFloats(tokens []string, offset int, dst []float32) error {
	if offset+len(dst) > len(tokens) {
		return fmt.Errorf("expected %d values at field %d, line has %d fields", len(dst), offset, len(tokens))
	}
	for k := range dst {
		v, err := strconv.ParseFloat(tokens[offset+k], 32)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return fmt.Errorf("field %d: %q is not a number", offset+k, tokens[offset+k])
		}
		dst[k] = float32(v)
	}
	return nil
}
