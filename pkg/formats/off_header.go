package formats

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Capability is a per-vertex field declared by an OFF header prefix.
type Capability uint8

// Header prefix capabilities, in keyword order.
const (
	CapTextureCoord Capability = 1 << iota // ST
	CapColor                               // C
	CapNormal                              // N
	CapHomogeneous                         // 4
	CapNDimension                          // n
)

// offPrefixes lists header prefixes in the order they must appear.
var offPrefixes = []struct {
	cap    Capability
	prefix string
}{
	{CapTextureCoord, "ST"},
	{CapColor, "C"},
	{CapNormal, "N"},
	{CapHomogeneous, "4"},
	{CapNDimension, "n"},
}

// offHeaderPattern matches the whole header keyword; group i+1 is offPrefixes[i].
var offHeaderPattern = regexp.MustCompile(`^(ST)?(C)?(N)?(4)?(n)?OFF$`)

// String returns the prefix spelling of a single capability, or the
// concatenated prefixes for a combination.
func (c Capability) String() string {
	var sb strings.Builder
	for _, p := range offPrefixes {
		if c&p.cap != 0 {
			sb.WriteString(p.prefix)
		}
	}
	if sb.Len() == 0 {
		return "none"
	}
	return sb.String()
}

// defaultOFFDimension is the vertex dimension without an 'n' prefix.
const defaultOFFDimension = 3

// Header describes the per-vertex layout declared by an OFF file.
type Header struct {
	Caps      Capability
	Dimension int
}

// Has reports whether the header declares c.
func (h Header) Has(c Capability) bool {
	return h.Caps&c != 0
}

// Keyword returns the header line keyword, e.g. "STCNOFF".
func (h Header) Keyword() string {
	if h.Caps == 0 {
		return "OFF"
	}
	return h.Caps.String() + "OFF"
}

// ParseHeader interprets the header line. The dimension defaults to 3 and is
// replaced by ParseDimension when the 'n' prefix is present.
func ParseHeader(tokens []string) (Header, error) {
	if len(tokens) != 1 {
		return Header{}, fmt.Errorf("%w: expected a single keyword, got %d tokens", ErrInvalidHeader, len(tokens))
	}

	groups := offHeaderPattern.FindStringSubmatch(tokens[0])
	if groups == nil {
		return Header{}, fmt.Errorf("%w: %q", ErrInvalidHeader, tokens[0])
	}

	h := Header{Dimension: defaultOFFDimension}
	for i, p := range offPrefixes {
		if groups[i+1] != "" {
			h.Caps |= p.cap
		}
	}
	return h, nil
}

// ParseDimension parses the dimension line that follows an "nOFF" header.
func ParseDimension(tokens []string) (int, error) {
	if len(tokens) != 1 {
		return 0, fmt.Errorf("%w: expected one value, got %d", ErrInvalidDimension, len(tokens))
	}
	dim, err := strconv.Atoi(tokens[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDimension, tokens[0])
	}
	if dim < 1 || dim > 3 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidDimension, dim)
	}
	return dim, nil
}

// ParseCounts parses the "<vertices> <faces> [edges]" line.
func ParseCounts(tokens []string) (vertexCount, faceCount int, err error) {
	if len(tokens) < 2 {
		return 0, 0, fmt.Errorf("%w: expected at least 2 values, got %d", ErrInvalidCounts, len(tokens))
	}
	if vertexCount, err = strconv.Atoi(tokens[0]); err != nil {
		return 0, 0, fmt.Errorf("%w: vertex count %q", ErrInvalidCounts, tokens[0])
	}
	if faceCount, err = strconv.Atoi(tokens[1]); err != nil {
		return 0, 0, fmt.Errorf("%w: face count %q", ErrInvalidCounts, tokens[1])
	}
	if vertexCount < 0 || faceCount < 0 {
		return 0, 0, fmt.Errorf("%w: negative count %d %d", ErrInvalidCounts, vertexCount, faceCount)
	}
	return vertexCount, faceCount, nil
}

// Layout holds token offsets of the optional fields within a vertex line.
type Layout struct {
	Normal int
	Color  int
	UV     int
}

// ComputeLayout derives vertex field offsets from a header.
// The color offset advances by the dimension, not by 3, after a normal.
func ComputeLayout(h Header) Layout {
	var l Layout

	l.Normal = h.Dimension
	if h.Has(CapHomogeneous) {
		l.Normal++
	}

	l.Color = l.Normal
	if h.Has(CapNormal) {
		l.Color += h.Dimension
	}

	l.UV = l.Color
	if h.Has(CapColor) {
		l.UV += 4
	}

	return l
}
