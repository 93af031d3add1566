/*
Package classify decides which grammar rule (if any) a token satisfies.

Matcher computes sets of positions where a symbol started at given position may end.
These sets are memoized for every symbol and position, so classification time is polynomial
in token length even for grammars that need a lot of backtracking.
*/
package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/ava12/bnfcheck"
	"github.com/ava12/bnfcheck/grammar"
	"github.com/ava12/bnfcheck/internal/ints"
	"github.com/ava12/bnfcheck/internal/queue"
)

// Error codes used by classifier:
const (
	// RecursionLimitError indicates that rule nesting exceeded the depth ceiling.
	RecursionLimitError = bnfcheck.ClassifyErrors + iota

	// StepLimitError indicates that matching exceeded the step budget set with WithMaxSteps.
	StepLimitError

	// UnknownRuleError indicates that requested start rule is not defined.
	UnknownRuleError
)

// InvalidName is the name printed for invalid tokens.
const InvalidName = "INVALID"

// Result is the outcome of token classification.
type Result struct {
	// Rule contains the name of matched rule or empty string.
	Rule string

	// Path contains rule names from the start rule down to Rule, see Classifier.Classify.
	Path []string

	// Valid is true if the token matched.
	Valid bool

	// Reason contains *bnfcheck.Error if classification was aborted by a limit, nil otherwise.
	Reason error
}

// Matched creates a successful result for the classified rule start,
// inner lists rules the classifier descended into, the last one is the matched rule.
func Matched(start string, inner ...string) Result {
	path := append([]string{start}, inner...)
	return Result{Rule: path[len(path)-1], Path: path, Valid: true}
}

// Invalid creates a failed result, reason may be nil.
func Invalid(reason error) Result {
	return Result{Reason: reason}
}

// String returns rule name or InvalidName.
func (r Result) String() string {
	if r.Valid {
		return r.Rule
	}
	return InvalidName
}

// Option configures Classifier.
type Option func(c *Classifier)

// WithStart sets the rule tokens are classified against, default is the grammar start rule.
func WithStart(name string) Option {
	return func(c *Classifier) {
		c.startName = name
	}
}

// WithMaxDepth sets the ceiling for rule nesting depth.
// Non-positive value means (token length + 1) * (number of rules),
// which is never reached by grammars free of left recursion.
func WithMaxDepth(depth int) Option {
	return func(c *Classifier) {
		c.maxDepth = depth
	}
}

// WithMaxSteps sets the number of symbol match attempts allowed per token.
// Non-positive value (the default) means no limit.
func WithMaxSteps(steps int) Option {
	return func(c *Classifier) {
		c.maxSteps = steps
	}
}

// Classifier matches tokens against a grammar. Classifier is immutable and safe for concurrent use.
type Classifier struct {
	g         *grammar.Grammar
	start     int
	startName string
	maxDepth  int
	maxSteps  int
}

// New creates a classifier for g.
// Returns nil and bnfcheck.Error if the start rule set with WithStart is not defined.
func New(g *grammar.Grammar, opts ...Option) (*Classifier, error) {
	c := &Classifier{g: g, start: g.Start}
	for _, opt := range opts {
		opt(c)
	}

	if c.startName != "" {
		c.start = g.RuleIndex(c.startName)
		if c.start < 0 {
			return nil, bnfcheck.FormatError(UnknownRuleError, "unknown rule %q", c.startName)
		}
	}
	return c, nil
}

// Classify matches token against the start rule of g with default settings.
func Classify(g *grammar.Grammar, token string) Result {
	c, _ := New(g)
	return c.Classify(token)
}

// Grammar returns classified grammar.
func (c *Classifier) Grammar() *grammar.Grammar {
	return c.g
}

// Classify matches the whole token against alternatives of the start rule in declaration order,
// the first alternative consuming the whole token wins.
// If the matched alternative consists of a single rule reference the classifier descends
// into that rule, so Result.Rule is the innermost rule and Result.Path lists the chain.
// Empty token is always invalid.
func (c *Classifier) Classify(token string) Result {
	if token == "" {
		return Invalid(nil)
	}

	m := c.newMatcher(token)
	var path []string
	index := c.start
	for {
		m.steps = 0
		m.reason = nil
		alt := m.matchWhole(index)
		if alt < 0 {
			if len(path) == 0 {
				return Invalid(m.reason)
			}

			res := Matched(path[0], path[1:]...)
			res.Reason = m.reason
			return res
		}

		path = append(path, c.g.Rules[index].Name)
		syms := c.g.Rules[index].Alts[alt].Symbols
		if len(syms) != 1 || syms[0].Kind != grammar.RuleSymbol || syms[0].Quant != grammar.One || contains(path, syms[0].Text) {
			return Matched(path[0], path[1:]...)
		}

		index = syms[0].Rule
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

type symbolKey struct {
	sym *grammar.Symbol
	pos int
}

type ruleKey struct {
	rule, pos int
}

type matcher struct {
	g        *grammar.Grammar
	token    string
	depth    int
	maxDepth int
	steps    int
	maxSteps int
	reason   error

	// memoized end positions, only complete results are stored
	contents map[symbolKey]*ints.Set
	seqs     map[symbolKey]*ints.Set
	rules    map[ruleKey]*ints.Set
}

func (c *Classifier) newMatcher(token string) *matcher {
	m := &matcher{
		g:        c.g,
		token:    token,
		maxDepth: c.maxDepth,
		maxSteps: c.maxSteps,
		contents: make(map[symbolKey]*ints.Set),
		seqs:     make(map[symbolKey]*ints.Set),
		rules:    make(map[ruleKey]*ints.Set),
	}
	if m.maxDepth <= 0 {
		m.maxDepth = (len(token) + 1) * len(c.g.Rules)
	}
	return m
}

// matchWhole returns index of the first alternative of rule consuming the whole token or -1.
func (m *matcher) matchWhole(rule int) int {
	m.depth = 1
	for i, alt := range m.g.Rules[rule].Alts {
		ends := m.seq(alt.Symbols, 0)
		if m.reason != nil {
			break
		}
		if ends.Contains(len(m.token)) {
			return i
		}
	}
	return -1
}

func (m *matcher) step() bool {
	if m.reason != nil {
		return false
	}

	m.steps++
	if m.maxSteps > 0 && m.steps > m.maxSteps {
		m.reason = bnfcheck.FormatError(StepLimitError, "step limit %d exceeded for %q", m.maxSteps, m.token)
		return false
	}
	return true
}

// seq returns end positions of syms matched starting at pos.
// Returned sets may be shared and must not be changed.
func (m *matcher) seq(syms []grammar.Symbol, pos int) *ints.Set {
	if len(syms) == 0 {
		return ints.NewSet(pos)
	}

	key := symbolKey{&syms[0], pos}
	if res, has := m.seqs[key]; has {
		return res
	}

	res := ints.NewSet()
	for _, p := range m.quantified(&syms[0], pos).ToSlice() {
		res.Union(m.seq(syms[1:], p))
		if m.reason != nil {
			return res
		}
	}

	m.seqs[key] = res
	return res
}

func (m *matcher) quantified(s *grammar.Symbol, pos int) *ints.Set {
	switch s.Quant {
	case grammar.Optional:
		return m.content(s, pos).Copy().Add(pos)
	case grammar.ZeroOrMore:
		return m.repeat(s, ints.NewSet(pos))
	case grammar.OneOrMore:
		return m.repeat(s, m.content(s, pos))
	default:
		return m.content(s, pos)
	}
}

// repeat extends positions of from with any number of s repetitions, each repetition must consume input
func (m *matcher) repeat(s *grammar.Symbol, from *ints.Set) *ints.Set {
	res := from.Copy()
	q := queue.New(from.ToSlice()...)
	for !q.IsEmpty() && m.reason == nil {
		pos, _ := q.First()
		for _, p := range m.content(s, pos).Copy().Remove(pos).ToSlice() {
			if !res.Contains(p) {
				res.Add(p)
				q.Append(p)
			}
		}
	}
	return res
}

// content returns end positions of s matched once starting at pos, ignoring quantifier
func (m *matcher) content(s *grammar.Symbol, pos int) *ints.Set {
	key := symbolKey{s, pos}
	if res, has := m.contents[key]; has {
		return res
	}

	res := ints.NewSet()
	if !m.step() {
		return res
	}

	switch s.Kind {
	case grammar.ClassSymbol:
		r, size := utf8.DecodeRuneInString(m.token[pos:])
		if size > 0 && s.Class.Contains(r) {
			res.Add(pos + size)
		}

	case grammar.LiteralSymbol:
		if strings.HasPrefix(m.token[pos:], s.Text) {
			res.Add(pos + len(s.Text))
		}

	case grammar.RuleSymbol:
		res = m.rule(s.Rule, pos)

	case grammar.GroupSymbol:
		res = m.alts(s.Alts, pos)
	}

	if m.reason == nil {
		m.contents[key] = res
	}
	return res
}

func (m *matcher) alts(alts []grammar.Alternative, pos int) *ints.Set {
	res := ints.NewSet()
	for _, alt := range alts {
		res.Union(m.seq(alt.Symbols, pos))
		if m.reason != nil {
			break
		}
	}
	return res
}

// rule tracks nesting depth of rule expansions
func (m *matcher) rule(index, pos int) *ints.Set {
	key := ruleKey{index, pos}
	if res, has := m.rules[key]; has {
		return res
	}

	if m.depth >= m.maxDepth {
		m.reason = bnfcheck.FormatError(RecursionLimitError, "recursion limit %d exceeded in rule %q for %q", m.maxDepth, m.g.Rules[index].Name, m.token)
		return ints.NewSet()
	}

	m.depth++
	res := m.alts(m.g.Rules[index].Alts, pos)
	m.depth--

	if m.reason == nil {
		m.rules[key] = res
	}
	return res
}
