// Package embedding loads pre-trained GloVe word vectors and builds the
// fixed-length passage vectors the similarity index consumes.
package embedding

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidFormat reports an unreadable or malformed embedding table.
// The table is loaded once at startup, so any occurrence is fatal.
var ErrInvalidFormat = errors.New("embedding: invalid format")

// maxLineSize bounds a single table line. A 300-dimension entry is
// around 4KB, so this leaves generous headroom.
const maxLineSize = 1024 * 1024

// Table is an in-memory word vector table. Lookup is exact and
// case-sensitive: "God" and "god" are distinct entries.
type Table struct {
	dimension int
	vectors   map[string][]float32
}

// LoadTable reads a GloVe text-format table from path.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	table, err := ParseTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// ParseTable parses GloVe text format: one entry per line, the word
// followed by its whitespace-separated components. The first entry fixes
// the table dimension and every later entry must match it. Blank lines
// are skipped.
func ParseTable(r io.Reader) (*Table, error) {
	table := &Table{vectors: make(map[string][]float32)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d: entry has no components", ErrInvalidFormat, lineNo)
		}

		word := fields[0]
		components := fields[1:]

		if table.dimension == 0 {
			table.dimension = len(components)
		} else if len(components) != table.dimension {
			return nil, fmt.Errorf("%w: line %d: expected %d components, got %d",
				ErrInvalidFormat, lineNo, table.dimension, len(components))
		}

		vec := make([]float32, len(components))
		for i, c := range components {
			v, err := strconv.ParseFloat(c, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: component %d: %v", ErrInvalidFormat, lineNo, i+1, err)
			}
			vec[i] = float32(v)
		}
		table.vectors[word] = vec
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidFormat, lineNo+1, err)
	}
	if len(table.vectors) == 0 {
		return nil, fmt.Errorf("%w: table is empty", ErrInvalidFormat)
	}

	return table, nil
}

// Resolve returns the vector for word. The second return reports whether
// the word is present; absent words are expected and never an error.
func (t *Table) Resolve(word string) ([]float32, bool) {
	vec, ok := t.vectors[word]
	return vec, ok
}

// Dimension returns the per-word component count.
func (t *Table) Dimension() int {
	return t.dimension
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.vectors)
}
