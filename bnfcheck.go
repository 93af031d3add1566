/*
Package bnfcheck is a grammar-driven token validator.

Consists of subpackages:
  - cmd/bnfcheck: console utility classifying lines of an input file against a grammar file;
  - source: defines named source text with line/column mapping and file loading;
  - lexer: lexical analyzer used to read grammar descriptions;
  - grammar: defines compiled rule table (rules, alternatives, symbols, terminal classes);
  - langdef: compiles grammar description (written in simplified BNF) to rule table;
  - classify: decides which rule (if any) a token satisfies;
  - expand: enumerates sample strings accepted by a rule;
  - goebnf: exports rule table to Go EBNF notation and verifies it.

Typical usage is:

1. Describe token shapes in simplified BNF:

	token  ::= <atom> | <number>
	atom   ::= LOWER ALNUM_*
	number ::= DIGIT+ ("." DIGIT+)?

2. Compile the description using langdef subpackage.

3. Classify tokens using classify subpackage. Compiled grammar is immutable,
the same grammar may be used by any number of goroutines.
*/
package bnfcheck

import (
	"errors"
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	CompileErrors  = 1   // used by langdef
	LexicalErrors  = 101 // used by lexer
	ClassifyErrors = 201 // used by classify
	LoadErrors     = 301 // used by source
	ExportErrors   = 401 // used by goebnf
)

// Error is the error type used by bnfcheck subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int

	// Err contains wrapped error or nil.
	Err error
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{Code: code, Message: msg, SourceName: name, Line: line, Col: col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns wrapped error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// WrapError creates Error structure wrapping e; e.Error() is appended to the message.
func WrapError(e error, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	res := NewError(code, msg+": "+e.Error(), "", 0, 0)
	res.Err = e
	return res
}

// ErrorCode returns Code of e if e is (or wraps) *Error, 0 otherwise.
func ErrorCode(e error) int {
	var ee *Error
	if errors.As(e, &ee) {
		return ee.Code
	}
	return 0
}
