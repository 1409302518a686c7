package formats

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/Faultbox/offmesh/pkg/mesh"
)

// OFF format errors.
var (
	ErrInvalidHeader    = errors.New("invalid OFF header")
	ErrInvalidDimension = errors.New("invalid OFF dimension: expected 1 to 3")
	ErrInvalidCounts    = errors.New("invalid OFF vertex or face count")
	ErrVertexParse      = errors.New("OFF vertex parse error")
	ErrFaceParse        = errors.New("OFF face parse error")
	ErrTokenExhausted   = errors.New("OFF input ended before all records were read")
	ErrInvalidMesh      = errors.New("mesh cannot be encoded as OFF")
)

// ParseError reports where an OFF decode failed. Err wraps one of the
// OFF format error sentinels.
type ParseError struct {
	Line  int // 1-based source line, 0 when the input ran out
	Index int // 0-based vertex or face index, -1 for other records
	Err   error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseOFF parses an OFF mesh from raw bytes.
func ParseOFF(data []byte) (*mesh.Mesh, error) {
	return DecodeOFF(bytes.NewReader(data))
}

// ParseOFFFile parses an OFF file from disk.
func ParseOFFFile(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OFF file: %w", err)
	}
	defer f.Close()

	return DecodeOFF(f)
}

// WriteOFFFile encodes m into a new file at path, replacing any existing file.
func WriteOFFFile(path string, m *mesh.Mesh, opts EncodeOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating OFF file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing OFF file: %w", cerr)
		}
	}()

	return EncodeOFFWithOptions(f, m, opts)
}
