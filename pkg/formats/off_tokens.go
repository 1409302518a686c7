package formats

import (
	"bufio"
	"io"
	"strings"
)

// maxOFFLineSize bounds a single input line.
const maxOFFLineSize = 1 << 20

// offTokenizer yields the whitespace separated tokens of each non-empty line,
// with '#' comments removed. It reads its input once and cannot be rewound.
type offTokenizer struct {
	scanner *bufio.Scanner
	line    int
}

func newOFFTokenizer(r io.Reader) *offTokenizer {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxOFFLineSize)
	return &offTokenizer{scanner: scanner}
}

// Next returns the tokens of the next non-empty line.
// ok is false at end of input or on a read error, see Err.
func (t *offTokenizer) Next() (tokens []string, ok bool) {
	for t.scanner.Scan() {
		t.line++
		text := t.scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		tokens = strings.Fields(text)
		if len(tokens) > 0 {
			return tokens, true
		}
	}
	return nil, false
}

// Line returns the 1-based line number of the last line read.
func (t *offTokenizer) Line() int {
	return t.line
}

// Err returns the first read error, if any.
func (t *offTokenizer) Err() error {
	return t.scanner.Err()
}
