// Package expand enumerates sample strings accepted by grammar rules.
package expand

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/ava12/bnfcheck/grammar"
	"github.com/ava12/bnfcheck/internal/queue"
)

// Default option values, used for zero fields of Options.
const (
	DefaultMaxLen     = 8
	DefaultMaxCount   = 20
	DefaultClassLimit = 2
	DefaultMaxStates  = 1 << 16
)

// Options limit the enumeration.
type Options struct {
	// MaxLen is the maximum sample length in runes.
	MaxLen int

	// MaxCount is the maximum number of samples.
	MaxCount int

	// ClassLimit is the number of representative runes taken from each terminal class.
	ClassLimit int

	// MaxStates is the maximum number of partial derivations examined.
	MaxStates int
}

func (o Options) withDefaults() Options {
	if o.MaxLen <= 0 {
		o.MaxLen = DefaultMaxLen
	}
	if o.MaxCount <= 0 {
		o.MaxCount = DefaultMaxCount
	}
	if o.ClassLimit <= 0 {
		o.ClassLimit = DefaultClassLimit
	}
	if o.MaxStates <= 0 {
		o.MaxStates = DefaultMaxStates
	}
	return o
}

// partial derivation: produced prefix and pending symbols, the next symbol is the last one
type state struct {
	prefix  string
	size    int
	pending []grammar.Symbol
	minLen  int
}

type expander struct {
	g       *grammar.Grammar
	opts    Options
	ruleMin []int
	samples []string
	seen    map[string]bool
	q       *queue.Queue[state]
}

// Samples returns distinct strings accepted by rule with given index, ordered by length, then lexically.
// Derivations are examined breadth-first, so the result is deterministic for given options.
func Samples(g *grammar.Grammar, rule int, opts Options) []string {
	x := &expander{
		g:       g,
		opts:    opts.withDefaults(),
		ruleMin: MinLengths(g),
		seen:    make(map[string]bool),
		q:       queue.New[state](),
	}

	if x.ruleMin[rule] > x.opts.MaxLen {
		return nil
	}

	x.push(state{}, "", 0, []grammar.Symbol{{Kind: grammar.RuleSymbol, Text: g.Rules[rule].Name, Rule: rule}})
	for states := 0; states < x.opts.MaxStates && len(x.samples) < x.opts.MaxCount; states++ {
		st, fetched := x.q.First()
		if !fetched {
			break
		}

		x.step(st)
	}

	sort.Slice(x.samples, func(i, j int) bool {
		a, b := x.samples[i], x.samples[j]
		la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
		if la != lb {
			return la < lb
		}
		return a < b
	})
	return x.samples
}

// push queues a derivation consisting of st with appended text and pending symbols replaced by more
func (x *expander) push(st state, text string, textLen int, more []grammar.Symbol) {
	next := state{
		prefix:  st.prefix + text,
		size:    st.size + textLen,
		pending: make([]grammar.Symbol, 0, len(st.pending)+len(more)),
	}
	next.pending = append(next.pending, st.pending...)
	for i := len(more) - 1; i >= 0; i-- {
		next.pending = append(next.pending, more[i])
	}

	for _, s := range next.pending {
		next.minLen = addMin(next.minLen, symbolMin(s, x.ruleMin))
	}
	if addMin(next.size, next.minLen) > x.opts.MaxLen {
		return
	}

	if len(next.pending) == 0 {
		if next.size > 0 && !x.seen[next.prefix] && len(x.samples) < x.opts.MaxCount {
			x.seen[next.prefix] = true
			x.samples = append(x.samples, next.prefix)
		}
		return
	}

	x.q.Append(next)
}

func (x *expander) step(st state) {
	last := len(st.pending) - 1
	s := st.pending[last]
	st.pending = st.pending[:last]

	switch s.Quant {
	case grammar.Optional:
		x.push(st, "", 0, nil)
		s.Quant = grammar.One
		x.push(st, "", 0, []grammar.Symbol{s})
		return

	case grammar.ZeroOrMore:
		x.push(st, "", 0, nil)
		one := s
		one.Quant = grammar.One
		x.push(st, "", 0, []grammar.Symbol{one, s})
		return

	case grammar.OneOrMore:
		one, more := s, s
		one.Quant = grammar.One
		more.Quant = grammar.ZeroOrMore
		x.push(st, "", 0, []grammar.Symbol{one, more})
		return
	}

	switch s.Kind {
	case grammar.LiteralSymbol:
		x.push(st, s.Text, utf8.RuneCountInString(s.Text), nil)

	case grammar.ClassSymbol:
		for _, r := range Representatives(s.Class, x.opts.ClassLimit) {
			x.push(st, string(r), 1, nil)
		}

	case grammar.RuleSymbol:
		for _, alt := range x.g.Rules[s.Rule].Alts {
			x.push(st, "", 0, alt.Symbols)
		}

	case grammar.GroupSymbol:
		for _, alt := range s.Alts {
			x.push(st, "", 0, alt.Symbols)
		}
	}
}

// Representatives returns up to limit runes of class c, taking runes from each range in turn.
func Representatives(c grammar.Class, limit int) []rune {
	ranges := c.Ranges()
	var res []rune
	for offset := rune(0); len(res) < limit; offset++ {
		added := false
		for _, rng := range ranges {
			if rng.Lo+offset <= rng.Hi && len(res) < limit {
				res = append(res, rng.Lo+offset)
				added = true
			}
		}
		if !added {
			break
		}
	}
	return res
}

// MinLengths returns, for every rule, the length in runes of its shortest accepted string,
// math.MaxInt for rules accepting nothing finite.
func MinLengths(g *grammar.Grammar) []int {
	res := make([]int, len(g.Rules))
	for i := range res {
		res[i] = math.MaxInt
	}

	changed := true
	for changed {
		changed = false
		for i, r := range g.Rules {
			if l := altsMin(r.Alts, res); l < res[i] {
				res[i] = l
				changed = true
			}
		}
	}
	return res
}

func altsMin(alts []grammar.Alternative, ruleMin []int) int {
	res := math.MaxInt
	for _, alt := range alts {
		sum := 0
		for _, s := range alt.Symbols {
			sum = addMin(sum, symbolMin(s, ruleMin))
		}
		if sum < res {
			res = sum
		}
	}
	return res
}

func addMin(a, b int) int {
	if a == math.MaxInt || b == math.MaxInt {
		return math.MaxInt
	}
	return a + b
}

func symbolMin(s grammar.Symbol, ruleMin []int) int {
	if s.IsOptional() {
		return 0
	}

	switch s.Kind {
	case grammar.LiteralSymbol:
		return utf8.RuneCountInString(s.Text)
	case grammar.ClassSymbol:
		return 1
	case grammar.RuleSymbol:
		return ruleMin[s.Rule]
	case grammar.GroupSymbol:
		return altsMin(s.Alts, ruleMin)
	}
	return 0
}
