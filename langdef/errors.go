package langdef

import (
	"strings"

	"github.com/ava12/bnfcheck"
	"github.com/ava12/bnfcheck/lexer"
)

// Error codes used by langdef:
const (
	// MalformedRuleError indicates text not matching "name ::= alternatives" shape.
	MalformedRuleError = bnfcheck.CompileErrors + iota

	// UndefinedReferenceError indicates reference to a rule that is never defined.
	UndefinedReferenceError

	// DuplicateRuleError indicates a rule defined more than once.
	DuplicateRuleError

	// LeftRecursionError indicates rules that can reach themselves without consuming input.
	LeftRecursionError

	// EmptyGrammarError indicates description containing no rules.
	EmptyGrammarError
)

func malformedError(t *lexer.Token, msg string, params ...any) *bnfcheck.Error {
	return bnfcheck.FormatErrorPos(t, MalformedRuleError, "malformed rule: "+msg, params...)
}

func unexpectedTokenError(t *lexer.Token) *bnfcheck.Error {
	if t.IsEof() {
		return malformedError(t, "unexpected end of grammar")
	}
	return malformedError(t, "unexpected %s %q", t.TypeName(), t.Text())
}

func lexicalError(e error) error {
	ee, is := e.(*bnfcheck.Error)
	if !is {
		return e
	}

	msg := "malformed rule: " + ee.Message
	return &bnfcheck.Error{Code: MalformedRuleError, Message: msg, SourceName: ee.SourceName, Line: ee.Line, Col: ee.Col, Err: ee}
}

func duplicateRuleError(t *lexer.Token, name string) *bnfcheck.Error {
	return bnfcheck.FormatErrorPos(t, DuplicateRuleError, "rule %q already defined", name)
}

func undefinedReferenceError(t *lexer.Token, names []string) *bnfcheck.Error {
	return bnfcheck.FormatErrorPos(t, UndefinedReferenceError, "undefined rules: %s", strings.Join(names, ", "))
}

func leftRecursionError(names []string) *bnfcheck.Error {
	return bnfcheck.FormatError(LeftRecursionError, "found left-recursive rules: %s", strings.Join(names, ", "))
}

func emptyGrammarError(t *lexer.Token) *bnfcheck.Error {
	return bnfcheck.FormatErrorPos(t, EmptyGrammarError, "no rules defined")
}
