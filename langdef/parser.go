package langdef

import (
	"regexp"
	"strconv"

	"github.com/ava12/bnfcheck/grammar"
	"github.com/ava12/bnfcheck/lexer"
	"github.com/ava12/bnfcheck/source"
)

// token types
const (
	stringTok = iota + 1
	refTok
	nameTok
	opTok
)

const (
	defineOp  = "::="
	pipeOp    = "|"
	lBraceOp  = "("
	rBraceOp  = ")"
	lSquareOp = "["
	rSquareOp = "]"
	lCurlyOp  = "{"
	rCurlyOp  = "}"
)

const emptyRefName = "empty"

// reference to a name that may resolve to terminal class
const bareRef = -2

var bnfLexerRe = regexp.MustCompile(
	`^(?:\s+|#[^\n]*|` +
		`("(?:[^\\"\n]|\\.)*"|'[^'\n]*')|` +
		`(<[a-zA-Z_][a-zA-Z_0-9-]*>)|` +
		`([a-zA-Z_][a-zA-Z_0-9-]*)|` +
		`(::=|[|()\[\]{}?*+])|` +
		`(["'<:].{0,10}))`)

var bnfTokenTypes = []lexer.TokenType{
	{Type: stringTok, TypeName: "string"},
	{Type: refTok, TypeName: "rule reference"},
	{Type: nameTok, TypeName: "name"},
	{Type: opTok, TypeName: "operator"},
	{Type: lexer.ErrorTokenType, TypeName: ""},
}

type parseContext struct {
	tokens    []*lexer.Token
	index     int
	rules     []grammar.Rule
	ruleIndex map[string]int
	refTokens map[string]*lexer.Token
	refOrder  []string
}

// CompileString compiles grammar description and returns a grammar on success.
// Returns nil and bnfcheck.Error on error.
func CompileString(name, content string) (*grammar.Grammar, error) {
	return Compile(source.NewString(name, content))
}

// CompileBytes compiles grammar description and returns a grammar on success.
// Returns nil and bnfcheck.Error on error.
func CompileBytes(name string, content []byte) (*grammar.Grammar, error) {
	return Compile(source.New(name, content))
}

// CompileFile loads and compiles grammar description file, see source.Load.
func CompileFile(path string) (*grammar.Grammar, error) {
	src, e := source.Load(path)
	if e != nil {
		return nil, e
	}
	return Compile(src)
}

// Compile compiles grammar description and returns a grammar on success.
// Returns nil and bnfcheck.Error on error, no partial grammar is ever returned.
func Compile(s *source.Source) (*grammar.Grammar, error) {
	c, e := newParseContext(s)
	if e != nil {
		return nil, e
	}

	e = c.parse()
	e = c.resolveRefs(e)
	if e != nil {
		return nil, e
	}

	g := grammar.New(c.rules)
	e = findLeftRecursions(g, e)
	if e != nil {
		return nil, e
	}

	return g, nil
}

func newParseContext(s *source.Source) (*parseContext, error) {
	c := &parseContext{
		ruleIndex: make(map[string]int),
		refTokens: make(map[string]*lexer.Token),
	}

	l := lexer.New(bnfLexerRe, bnfTokenTypes, s)
	for {
		t, e := l.Next()
		if e != nil {
			return nil, lexicalError(e)
		}

		c.tokens = append(c.tokens, t)
		if t.IsEof() {
			return c, nil
		}
	}
}

func (c *parseContext) peek(offset int) *lexer.Token {
	i := c.index + offset
	if i >= len(c.tokens) {
		i = len(c.tokens) - 1
	}
	return c.tokens[i]
}

func (c *parseContext) next() *lexer.Token {
	t := c.peek(0)
	if !t.IsEof() {
		c.index++
	}
	return t
}

func isOp(t *lexer.Token, op string) bool {
	return t.Type() == opTok && t.Text() == op
}

func isName(t *lexer.Token) bool {
	return t.Type() == nameTok || t.Type() == refTok
}

func nameOf(t *lexer.Token) string {
	if t.Type() == refTok {
		return t.Text()[1 : len(t.Text())-1]
	}
	return t.Text()
}

func isEmptyKeyword(t *lexer.Token) bool {
	return (t.Type() == nameTok && t.Text() == grammar.EmptyName) ||
		(t.Type() == refTok && nameOf(t) == emptyRefName)
}

// rule head is a name followed by ::=
func (c *parseContext) atRuleHead() bool {
	return isName(c.peek(0)) && isOp(c.peek(1), defineOp)
}

func (c *parseContext) parse() error {
	if c.peek(0).IsEof() {
		return emptyGrammarError(c.peek(0))
	}

	for !c.peek(0).IsEof() {
		e := c.parseRule()
		if e != nil {
			return e
		}
	}
	return nil
}

func (c *parseContext) parseRule() error {
	head := c.next()
	if !isName(head) {
		return malformedError(head, "expected rule name, got %q", head.Text())
	}

	name := nameOf(head)
	if name == grammar.EmptyName || name == emptyRefName {
		return malformedError(head, "cannot define reserved name %q", head.Text())
	}

	t := c.next()
	if !isOp(t, defineOp) {
		if t.IsEof() {
			return malformedError(t, "expected %q after %q, got end of grammar", defineOp, head.Text())
		}
		return malformedError(t, "expected %q after %q, got %q", defineOp, head.Text(), t.Text())
	}

	if _, has := c.ruleIndex[name]; has {
		return duplicateRuleError(head, name)
	}

	alts, e := c.parseAlts(t)
	if e != nil {
		return e
	}

	t = c.peek(0)
	if !t.IsEof() && !c.atRuleHead() {
		return unexpectedTokenError(t)
	}

	c.ruleIndex[name] = len(c.rules)
	c.rules = append(c.rules, grammar.Rule{Name: name, Alts: alts})
	return nil
}

// parseAlts parses alternatives separated by pipes, opener is the token preceding alternatives.
func (c *parseContext) parseAlts(opener *lexer.Token) ([]grammar.Alternative, error) {
	var alts []grammar.Alternative
	for {
		alt, e := c.parseAlt(opener)
		if e != nil {
			return nil, e
		}

		alts = append(alts, alt)
		t := c.peek(0)
		if !isOp(t, pipeOp) {
			return alts, nil
		}

		opener = c.next()
	}
}

func (c *parseContext) atAltEnd() bool {
	t := c.peek(0)
	if t.IsEof() || c.atRuleHead() {
		return true
	}

	if t.Type() != opTok {
		return false
	}

	switch t.Text() {
	case pipeOp, rBraceOp, rSquareOp, rCurlyOp:
		return true
	}
	return false
}

func (c *parseContext) parseAlt(opener *lexer.Token) (grammar.Alternative, error) {
	var (
		syms  []grammar.Symbol
		empty *lexer.Token
		items int
	)

	for !c.atAltEnd() {
		t := c.peek(0)
		if isEmptyKeyword(t) {
			c.next()
			empty = t
			items++
			if q := c.peek(0); q.Type() == opTok && quantifier(q.Text()) != grammar.One {
				return grammar.Alternative{}, malformedError(q, "quantifier %q after %q", q.Text(), t.Text())
			}
			continue
		}

		s, e := c.parseItem()
		if e != nil {
			return grammar.Alternative{}, e
		}

		syms = append(syms, s)
		items++
	}

	if items == 0 {
		return grammar.Alternative{}, malformedError(opener, "empty alternative after %q", opener.Text())
	}

	if empty != nil && items > 1 {
		return grammar.Alternative{}, malformedError(empty, "%q must be the only item of an alternative", empty.Text())
	}

	return grammar.Alternative{Symbols: syms}, nil
}

func quantifier(op string) grammar.Quantifier {
	switch op {
	case "?":
		return grammar.Optional
	case "*":
		return grammar.ZeroOrMore
	case "+":
		return grammar.OneOrMore
	default:
		return grammar.One
	}
}

func (c *parseContext) parseItem() (grammar.Symbol, error) {
	t := c.next()
	var s grammar.Symbol

	switch t.Type() {
	case stringTok:
		text, e := unquote(t)
		if e != nil {
			return s, e
		}
		s = grammar.Symbol{Kind: grammar.LiteralSymbol, Text: text}

	case nameTok, refTok:
		name := nameOf(t)
		rule := -1
		if t.Type() == nameTok {
			rule = bareRef
		}
		s = grammar.Symbol{Kind: grammar.RuleSymbol, Text: name, Rule: rule}
		if _, has := c.refTokens[name]; !has {
			c.refTokens[name] = t
			c.refOrder = append(c.refOrder, name)
		}

	case opTok:
		var (
			closer string
			quant  grammar.Quantifier
		)
		switch t.Text() {
		case lBraceOp:
			closer, quant = rBraceOp, grammar.One
		case lSquareOp:
			closer, quant = rSquareOp, grammar.Optional
		case lCurlyOp:
			closer, quant = rCurlyOp, grammar.ZeroOrMore
		default:
			return s, unexpectedTokenError(t)
		}

		alts, e := c.parseAlts(t)
		if e != nil {
			return s, e
		}

		ct := c.next()
		if !isOp(ct, closer) {
			if ct.IsEof() {
				return s, malformedError(t, "unclosed %q", t.Text())
			}
			return s, malformedError(ct, "expected %q, got %q", closer, ct.Text())
		}

		s = grammar.Symbol{Kind: grammar.GroupSymbol, Alts: alts, Quant: quant}
		if quant != grammar.One {
			if q := c.peek(0); q.Type() == opTok && quantifier(q.Text()) != grammar.One {
				return s, malformedError(q, "quantifier %q after %q group", q.Text(), t.Text()+closer)
			}
			return s, nil
		}

	default:
		return s, unexpectedTokenError(t)
	}

	if q := c.peek(0); q.Type() == opTok {
		if quant := quantifier(q.Text()); quant != grammar.One {
			c.next()
			s.Quant = quant
		}
	}

	return s, nil
}

func unquote(t *lexer.Token) (string, error) {
	text := t.Text()
	var res string
	if text[0] == '\'' {
		res = text[1 : len(text)-1]
	} else {
		var e error
		res, e = strconv.Unquote(text)
		if e != nil {
			return "", malformedError(t, "invalid escape sequence in %s", text)
		}
	}

	if res == "" {
		return "", malformedError(t, "empty literal")
	}
	return res, nil
}

func (c *parseContext) resolveRefs(e error) error {
	if e != nil {
		return e
	}

	undefined := make(map[string]bool)
	for i := range c.rules {
		grammar.WalkRefs(c.rules[i].Alts, func(s *grammar.Symbol) {
			index, has := c.ruleIndex[s.Text]
			if has {
				s.Rule = index
				return
			}

			if s.Rule == bareRef {
				if class, isClass := grammar.ClassByName(s.Text); isClass {
					*s = grammar.Symbol{Kind: grammar.ClassSymbol, Class: class, Quant: s.Quant}
					return
				}
			}

			undefined[s.Text] = true
		})
	}

	if len(undefined) == 0 {
		return nil
	}

	var names []string
	for _, name := range c.refOrder {
		if undefined[name] {
			names = append(names, name)
		}
	}
	return undefinedReferenceError(c.refTokens[names[0]], names)
}
