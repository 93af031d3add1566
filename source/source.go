// Package source defines named source text with line/column mapping.
package source

import (
	"bytes"
	"sort"
	"unicode/utf8"
)

// Source is a named immutable text with precomputed line starts.
type Source struct {
	name       string
	content    []byte
	lineStarts []int
}

// New creates a source. content must not be changed afterwards.
func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, 1, lineCnt)
	for i, c := range content {
		if c == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}

	return s
}

// NewString creates a source from a string.
func NewString(name, content string) *Source {
	return New(name, []byte(content))
}

// Name returns source name, usually file name.
func (s *Source) Name() string {
	return s.name
}

// Content returns the whole source text.
func (s *Source) Content() []byte {
	return s.content
}

// Len returns the length of source text in bytes.
func (s *Source) Len() int {
	return len(s.content)
}

// LineCount returns the number of lines, the last line may be empty.
func (s *Source) LineCount() int {
	return len(s.lineStarts)
}

// Line returns the text of 1-based line n without trailing line feed.
// Returns empty string if there is no such line.
func (s *Source) Line(n int) string {
	if n <= 0 || n > len(s.lineStarts) {
		return ""
	}

	start := s.lineStarts[n-1]
	end := len(s.content)
	if n < len(s.lineStarts) {
		end = s.lineStarts[n] - 1
	}
	return string(s.content[start:end])
}

// LineCol converts byte position to 1-based line and column (in runes).
// Positions out of range are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.content) {
		pos = len(s.content)
	}

	lineIndex := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > pos
	}) - 1

	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

// Pos is a position inside a source, it implements bnfcheck.SourcePos.
type Pos struct {
	src       *Source
	line, col int
}

// NewPos creates position for byte offset pos of src.
func NewPos(src *Source, pos int) Pos {
	res := Pos{src: src}
	if src != nil {
		res.line, res.col = src.LineCol(pos)
	}
	return res
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.Name()
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
