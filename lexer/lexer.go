// Package lexer defines lexical analyzer.
package lexer

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/ava12/bnfcheck"
	"github.com/ava12/bnfcheck/source"
)

const (
	// ErrorTokenType is the type for fake tokens capturing broken lexemes (e.g. unterminated string literals).
	// The purpose of these tokens is to generate more informative error messages.
	// Lexer will never return a token of this type, an error with message containing token text will be returned instead.
	ErrorTokenType = LowestTokenType - 1

	// ErrorTokenName is the type name for ErrorTokenType.
	ErrorTokenName = "-error-"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that lexer cannot fetch any token at current position.
	// Error message contains the rune at current source position.
	WrongCharError = bnfcheck.LexicalErrors + iota

	// BadTokenError indicates that lexer has fetched a token of ErrorTokenType.
	BadTokenError
)

// TokenType describes token type for specific capturing group of regular expression.
type TokenType struct {
	// Type contains token type, may be any non-negative value. ErrorTokenType is treated specially.
	Type int

	// TypeName contains token type name, may be any value.
	TypeName string
}

// Lexer performs lexical analysis of a single source using regexp.Regexp.
// Each token type that may be returned by lexer maps to its own regexp capturing group index.
// A match containing no captured groups is treated as insignificant lexeme (e.g. whitespace or comment),
// in this case lexer tries to fetch a token again at new position.
// Every byte of source must belong to some lexeme.
type Lexer struct {
	types []TokenType
	re    *regexp.Regexp
	src   *source.Source
	pos   int
}

// New creates new Lexer reading src.
// Each n-th element of types describes token type for (n+1)-th regexp capturing group.
// A group that has no description or that has negative token type is treated as ErrorTokenType.
func New(re *regexp.Regexp, types []TokenType, src *source.Source) *Lexer {
	ts := make([]TokenType, len(types))
	for i, t := range types {
		ts[i].TypeName = t.TypeName
		if t.Type >= 0 {
			ts[i].Type = t.Type
		} else {
			ts[i].Type = ErrorTokenType
		}
	}
	return &Lexer{types: ts, re: re, src: src}
}

func wrongCharError(s *source.Source, content []byte, pos int) *bnfcheck.Error {
	r, _ := utf8.DecodeRune(content)
	msg := fmt.Sprintf("wrong char \"%c\" (u+%x)", r, r)
	return bnfcheck.FormatErrorPos(source.NewPos(s, pos), WrongCharError, msg)
}

func badTokenError(t *Token) *bnfcheck.Error {
	return bnfcheck.FormatErrorPos(t, BadTokenError, "bad token %q", t.Text())
}

func (l *Lexer) matchToken() (*Token, int, error) {
	content := l.src.Content()[l.pos:]
	match := l.re.FindSubmatchIndex(content)
	if len(match) == 0 || match[0] != 0 || match[1] <= match[0] {
		return nil, 0, wrongCharError(l.src, content, l.pos)
	}

	for i := 2; i < len(match); i += 2 {
		if match[i] < 0 || match[i+1] < 0 {
			continue
		}

		tokenType := ErrorTokenType
		typeName := ErrorTokenName
		if len(l.types) >= (i >> 1) {
			tokenType = l.types[(i>>1)-1].Type
			typeName = l.types[(i>>1)-1].TypeName
		}
		token := NewToken(tokenType, typeName, string(content[match[i]:match[i+1]]), source.NewPos(l.src, l.pos+match[i]))
		if tokenType == ErrorTokenType {
			return nil, 0, badTokenError(token)
		}

		return token, match[1], nil
	}

	return nil, match[1], nil
}

// Next fetches token starting at current source position and advances current position.
// Returns nil token and bnfcheck.Error and does not make any changes if there is a lexical error.
// Returns EoF token if current position is beyond the end of source.
func (l *Lexer) Next() (*Token, error) {
	for {
		if l.pos >= l.src.Len() {
			return EofToken(l.src), nil
		}

		t, advance, e := l.matchToken()
		if e != nil {
			return nil, e
		}

		l.pos += advance
		if t != nil {
			return t, nil
		}
	}
}
