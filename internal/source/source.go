// Package source loads an Octo source file into memory and provides the
// line-indexed view the diagnostic reporter needs to render a caret under an
// offending column.
package source

import (
	"fmt"
	"os"
	"strings"
)

// Position locates a byte in a source file. Line and Column are 1-based;
// Offset is the 0-based byte offset. It lives here, below both the lexer
// and the diagnostic reporter, so tokens, AST nodes, and errors all share
// one position type without an import cycle.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String renders "line:column", the form the diagnostic reporter and CLI
// --show-pos flag both use.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Map is an immutable, loaded source file: the raw buffer, terminated by
// a NUL sentinel so the scanner never bounds-checks, plus a table of byte
// offsets, one per line, with line 1 starting at offset 0.
//
// A Map is created once at load time and lives for the entire compilation;
// nothing mutates it afterwards.
type Map struct {
	Path    string
	buf     []byte // includes a trailing NUL sentinel
	lineAt  []int  // lineAt[i] is the byte offset where line i+1 begins
}

// Load reads path into a Map, appending a NUL sentinel and indexing line
// starts in a single scan.
func Load(path string) (*Map, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: failed to read %s: %w", path, err)
	}
	return FromBytes(path, content), nil
}

// FromBytes builds a Map directly from an in-memory buffer, useful for
// tests and for the CLI's inline "-e" mode. The path is cosmetic: it is only
// used when rendering diagnostics.
func FromBytes(path string, content []byte) *Map {
	buf := make([]byte, len(content)+1)
	copy(buf, content)
	buf[len(content)] = 0

	m := &Map{Path: path, buf: buf}
	m.lineAt = append(m.lineAt, 0)
	for i, b := range content {
		if b == '\n' {
			m.lineAt = append(m.lineAt, i+1)
		}
	}
	return m
}

// Bytes returns the raw buffer including the trailing NUL sentinel.
func (m *Map) Bytes() []byte { return m.buf }

// Len returns the length of the source excluding the NUL sentinel.
func (m *Map) Len() int { return len(m.buf) - 1 }

// LineCount returns the number of lines indexed.
func (m *Map) LineCount() int { return len(m.lineAt) }

// Line returns the content of the given 1-based line number, stopping at
// the first '\n' or NUL. Returns "" for an out-of-range line.
func (m *Map) Line(line int) string {
	if line < 1 || line > len(m.lineAt) {
		return ""
	}
	start := m.lineAt[line-1]
	end := start
	for end < len(m.buf) && m.buf[end] != '\n' && m.buf[end] != 0 {
		end++
	}
	return string(m.buf[start:end])
}

// PrintLine renders a line in the "%5d | %s" format, the same gutter the
// diagnostic reporter writes before a source line.
func (m *Map) PrintLine(line int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%5d | %s", line, m.Line(line))
	return sb.String()
}
