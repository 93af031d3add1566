// Package grammar defines compiled rule table used by classifier.
package grammar

import (
	"github.com/ava12/bnfcheck/internal/queue"
)

// StartRuleName is the name of the rule used as start rule when defined.
const StartRuleName = "start"

// SymbolKind defines the type of a symbol.
type SymbolKind int

const (
	// ClassSymbol matches one rune of terminal class.
	ClassSymbol SymbolKind = iota + 1
	// LiteralSymbol matches literal text.
	LiteralSymbol
	// RuleSymbol matches any alternative of referenced rule.
	RuleSymbol
	// GroupSymbol matches any of nested alternatives.
	GroupSymbol
)

var kindNames = [...]string{"", "class", "literal", "rule", "group"}

func (k SymbolKind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Quantifier defines how many times a symbol may be repeated.
type Quantifier int

const (
	One        Quantifier = iota // exactly once
	Optional                     // ?, zero or one time
	ZeroOrMore                   // *
	OneOrMore                    // +
)

var quantSuffixes = [...]string{"", "?", "*", "+"}

// Suffix returns quantifier notation used in grammar description.
func (q Quantifier) Suffix() string {
	if q >= 0 && int(q) < len(quantSuffixes) {
		return quantSuffixes[q]
	}
	return ""
}

// Symbol is a single item of an alternative.
type Symbol struct {
	Kind SymbolKind

	// Class contains terminal class for ClassSymbol.
	Class Class `json:",omitempty"`

	// Text contains literal text for LiteralSymbol or rule name for RuleSymbol.
	Text string `json:",omitempty"`

	// Rule contains referenced rule index for RuleSymbol.
	Rule int `json:",omitempty"`

	// Alts contains nested alternatives for GroupSymbol.
	Alts []Alternative `json:",omitempty"`

	Quant Quantifier `json:",omitempty"`
}

// IsRepeated reports whether the symbol may match more than once.
func (s Symbol) IsRepeated() bool {
	return s.Quant == ZeroOrMore || s.Quant == OneOrMore
}

// IsOptional reports whether the symbol may be skipped by quantifier.
func (s Symbol) IsOptional() bool {
	return s.Quant == Optional || s.Quant == ZeroOrMore
}

// Alternative is a sequence of symbols, empty sequence matches empty string.
type Alternative struct {
	Symbols []Symbol
}

// Rule is a named list of alternatives in declaration order.
type Rule struct {
	Name string
	Alts []Alternative
}

// Grammar is an immutable rule table.
type Grammar struct {
	Rules []Rule
	Start int
	index map[string]int
}

// New creates grammar from rules. Start rule is the one named StartRuleName if any,
// the first one otherwise. Rules must not be changed afterwards.
// Rule references are not checked, use langdef to build grammars from descriptions.
func New(rules []Rule) *Grammar {
	g := &Grammar{Rules: rules, index: make(map[string]int, len(rules))}
	for i, r := range rules {
		if _, has := g.index[r.Name]; !has {
			g.index[r.Name] = i
		}
	}
	if i, has := g.index[StartRuleName]; has {
		g.Start = i
	}
	return g
}

// RuleIndex returns index of named rule or -1.
func (g *Grammar) RuleIndex(name string) int {
	i, has := g.index[name]
	if !has {
		return -1
	}
	return i
}

// Rule returns named rule or nil.
func (g *Grammar) Rule(name string) *Rule {
	i := g.RuleIndex(name)
	if i < 0 {
		return nil
	}
	return &g.Rules[i]
}

// StartRule returns the start rule.
func (g *Grammar) StartRule() *Rule {
	return &g.Rules[g.Start]
}

// Names returns rule names in declaration order.
func (g *Grammar) Names() []string {
	res := make([]string, len(g.Rules))
	for i, r := range g.Rules {
		res[i] = r.Name
	}
	return res
}

// WalkRefs calls f for every rule reference found in alts, including nested groups.
func WalkRefs(alts []Alternative, f func(s *Symbol)) {
	for i := range alts {
		syms := alts[i].Symbols
		for j := range syms {
			switch syms[j].Kind {
			case RuleSymbol:
				f(&syms[j])
			case GroupSymbol:
				WalkRefs(syms[j].Alts, f)
			}
		}
	}
}

// Reachable returns indexes of rules reachable from rule with index from, in breadth-first order.
func (g *Grammar) Reachable(from int) []int {
	seen := make([]bool, len(g.Rules))
	var res []int
	q := queue.New(from)
	for {
		index, fetched := q.First()
		if !fetched {
			break
		}

		if seen[index] {
			continue
		}

		seen[index] = true
		res = append(res, index)
		WalkRefs(g.Rules[index].Alts, func(s *Symbol) {
			if !seen[s.Rule] {
				q.Append(s.Rule)
			}
		})
	}
	return res
}

// Unreachable returns names of rules not reachable from the start rule, in declaration order.
func (g *Grammar) Unreachable() []string {
	reached := make([]bool, len(g.Rules))
	for _, i := range g.Reachable(g.Start) {
		reached[i] = true
	}

	var res []string
	for i, r := range g.Rules {
		if !reached[i] {
			res = append(res, r.Name)
		}
	}
	return res
}

// Nullable returns, for every rule, whether the rule can match the empty string.
func (g *Grammar) Nullable() []bool {
	res := make([]bool, len(g.Rules))
	changed := true
	for changed {
		changed = false
		for i, r := range g.Rules {
			if !res[i] && AltsNullable(r.Alts, res) {
				res[i] = true
				changed = true
			}
		}
	}
	return res
}

// AltsNullable reports whether any of alts can match the empty string.
// nullable contains known nullability of rules.
func AltsNullable(alts []Alternative, nullable []bool) bool {
	for _, alt := range alts {
		if SeqNullable(alt.Symbols, nullable) {
			return true
		}
	}
	return false
}

// SeqNullable reports whether symbol sequence can match the empty string.
func SeqNullable(syms []Symbol, nullable []bool) bool {
	for _, s := range syms {
		if !SymbolNullable(s, nullable) {
			return false
		}
	}
	return true
}

// SymbolNullable reports whether a symbol can match the empty string.
func SymbolNullable(s Symbol, nullable []bool) bool {
	if s.IsOptional() {
		return true
	}
	return ContentNullable(s, nullable)
}

// ContentNullable reports whether a symbol can match the empty string ignoring its quantifier.
func ContentNullable(s Symbol, nullable []bool) bool {
	switch s.Kind {
	case RuleSymbol:
		return nullable[s.Rule]
	case GroupSymbol:
		return AltsNullable(s.Alts, nullable)
	case LiteralSymbol:
		return s.Text == ""
	default:
		return false
	}
}
