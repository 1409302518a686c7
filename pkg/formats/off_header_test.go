package formats

import (
	"errors"
	"testing"
)

func TestParseHeader_Prefixes(t *testing.T) {
	tests := []struct {
		keyword string
		want    Capability
	}{
		{"OFF", 0},
		{"NOFF", CapNormal},
		{"COFF", CapColor},
		{"STOFF", CapTextureCoord},
		{"4OFF", CapHomogeneous},
		{"nOFF", CapNDimension},
		{"CNOFF", CapColor | CapNormal},
		{"STCNOFF", CapTextureCoord | CapColor | CapNormal},
		{"STCN4nOFF", CapTextureCoord | CapColor | CapNormal | CapHomogeneous | CapNDimension},
		{"N4OFF", CapNormal | CapHomogeneous},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			h, err := ParseHeader([]string{tt.keyword})
			if err != nil {
				t.Fatalf("ParseHeader failed: %v", err)
			}
			if h.Caps != tt.want {
				t.Errorf("expected caps %v, got %v", tt.want, h.Caps)
			}
			if h.Dimension != 3 {
				t.Errorf("expected default dimension 3, got %d", h.Dimension)
			}
			if h.Keyword() != tt.keyword {
				t.Errorf("expected keyword %q, got %q", tt.keyword, h.Keyword())
			}
		})
	}
}

func TestParseHeader_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
	}{
		{"unknown prefix", []string{"XOFF"}},
		{"wrong order", []string{"NCOFF"}},
		{"st after n", []string{"nSTOFF"}},
		{"repeated prefix", []string{"NNOFF"}},
		{"lower case", []string{"off"}},
		{"missing OFF", []string{"STCN"}},
		{"trailing text", []string{"OFFX"}},
		{"leading text", []string{"XNOFF"}},
		{"two tokens", []string{"OFF", "3"}},
		{"no tokens", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(tt.tokens)
			if !errors.Is(err, ErrInvalidHeader) {
				t.Errorf("expected ErrInvalidHeader, got %v", err)
			}
		})
	}
}

func TestParseDimension(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		want    int
		wantErr bool
	}{
		{"one", []string{"1"}, 1, false},
		{"two", []string{"2"}, 2, false},
		{"three", []string{"3"}, 3, false},
		{"four", []string{"4"}, 0, true},
		{"zero", []string{"0"}, 0, true},
		{"negative", []string{"-1"}, 0, true},
		{"not a number", []string{"two"}, 0, true},
		{"two tokens", []string{"2", "3"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dim, err := ParseDimension(tt.tokens)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDimension) {
					t.Errorf("expected ErrInvalidDimension, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dim != tt.want {
				t.Errorf("expected %d, got %d", tt.want, dim)
			}
		})
	}
}

func TestParseCounts(t *testing.T) {
	tests := []struct {
		name      string
		tokens    []string
		vertices  int
		faces     int
		wantError bool
	}{
		{"with edges", []string{"8", "12", "0"}, 8, 12, false},
		{"without edges", []string{"3", "1"}, 3, 1, false},
		{"extra tokens", []string{"3", "1", "0", "junk"}, 3, 1, false},
		{"single token", []string{"3"}, 0, 0, true},
		{"bad vertex count", []string{"x", "1"}, 0, 0, true},
		{"bad face count", []string{"3", "1.5"}, 0, 0, true},
		{"negative vertices", []string{"-3", "1"}, 0, 0, true},
		{"negative faces", []string{"3", "-1"}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, f, err := ParseCounts(tt.tokens)
			if tt.wantError {
				if !errors.Is(err, ErrInvalidCounts) {
					t.Errorf("expected ErrInvalidCounts, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v != tt.vertices || f != tt.faces {
				t.Errorf("expected %d/%d, got %d/%d", tt.vertices, tt.faces, v, f)
			}
		})
	}
}

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name   string
		header Header
		want   Layout
	}{
		{"plain", Header{Dimension: 3}, Layout{3, 3, 3}},
		{"homogeneous", Header{Caps: CapHomogeneous, Dimension: 3}, Layout{4, 4, 4}},
		{"normals", Header{Caps: CapNormal, Dimension: 3}, Layout{3, 6, 6}},
		{"all", Header{Caps: CapTextureCoord | CapColor | CapNormal, Dimension: 3}, Layout{3, 6, 10}},
		{"all homogeneous", Header{Caps: CapTextureCoord | CapColor | CapNormal | CapHomogeneous, Dimension: 3}, Layout{4, 7, 11}},
		{"2d normals advance by dimension", Header{Caps: CapNormal | CapColor, Dimension: 2}, Layout{2, 4, 8}},
		{"1d homogeneous color", Header{Caps: CapHomogeneous | CapColor, Dimension: 1}, Layout{2, 2, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeLayout(tt.header); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestCapability_String(t *testing.T) {
	if got := CapNormal.String(); got != "N" {
		t.Errorf("expected N, got %s", got)
	}
	if got := (CapTextureCoord | CapNormal).String(); got != "STN" {
		t.Errorf("expected STN, got %s", got)
	}
	if got := Capability(0).String(); got != "none" {
		t.Errorf("expected none, got %s", got)
	}
}
