package lexer

import (
	"github.com/ava12/bnfcheck/source"
)

// Token is a lexeme fetched by Lexer, it implements bnfcheck.SourcePos.
type Token struct {
	tokenType int
	typeName  string
	text      string
	pos       source.Pos
}

// NewToken creates a token, pos may be zero value if the token has no source.
func NewToken(tokenType int, typeName, text string, pos source.Pos) *Token {
	return &Token{tokenType, typeName, text, pos}
}

func (t *Token) Type() int {
	return t.tokenType
}

func (t *Token) TypeName() string {
	return t.typeName
}

func (t *Token) Text() string {
	return t.text
}

func (t *Token) SourceName() string {
	return t.pos.SourceName()
}

func (t *Token) Line() int {
	return t.pos.Line()
}

func (t *Token) Col() int {
	return t.pos.Col()
}

const (
	EofTokenType    = -2
	LowestTokenType = -2
	EofTokenName    = "-end-of-file-"
)

// EofToken creates end-of-file token positioned after the last byte of s.
func EofToken(s *source.Source) *Token {
	pos := source.NewPos(s, 0)
	if s != nil {
		pos = source.NewPos(s, s.Len())
	}
	return &Token{tokenType: EofTokenType, typeName: EofTokenName, pos: pos}
}

// IsEof reports whether t is end-of-file token.
func (t *Token) IsEof() bool {
	return t.tokenType == EofTokenType
}
