/*
Package goebnf exports compiled grammars to Go EBNF notation used by golang.org/x/exp/ebnf.

Every exported production is lexical: rule names are mangled to start with a lower case letter,
terminal classes are written as character ranges ("a" … "z"), quantifiers are written as options
and repetitions. Only rules reachable from the start rule are exported.
Alternatives written as EMPTY turn the remaining alternatives into an option.
*/
package goebnf

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/exp/ebnf"

	"github.com/ava12/bnfcheck"
	"github.com/ava12/bnfcheck/grammar"
)

// Error codes used by goebnf:
const (
	// EmptyGroupError indicates that a group contains only empty alternatives and cannot be exported.
	EmptyGroupError = bnfcheck.ExportErrors + iota

	// VerifyError indicates that exported grammar is rejected by ebnf package.
	VerifyError
)

const rangeSep = " … "

// Names returns mangled production names for all rules, indexed by rule index.
// Names are unique valid identifiers starting with a lower case letter.
func Names(g *grammar.Grammar) []string {
	res := make([]string, len(g.Rules))
	used := make(map[string]bool, len(g.Rules))
	for i, r := range g.Rules {
		name := mangle(r.Name)
		if used[name] {
			base := name
			for n := i; used[name]; n++ {
				name = base + "_" + strconv.Itoa(n)
			}
		}
		used[name] = true
		res[i] = name
	}
	return res
}

func mangle(name string) string {
	var sb strings.Builder
	for i, r := range name {
		switch {
		case i == 0 && r >= 'A' && r <= 'Z':
			sb.WriteRune(unicode.ToLower(r))
		case i == 0 && !unicode.IsLower(r):
			sb.WriteByte('r')
			if r == '_' || unicode.IsDigit(r) {
				sb.WriteRune(r)
			} else {
				sb.WriteByte('_')
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

type writer struct {
	names []string
	sb    strings.Builder
	rule  string
}

// String returns Go EBNF export of g, see Write.
func String(g *grammar.Grammar) (string, error) {
	w := &writer{names: Names(g)}
	for _, index := range sortedReachable(g) {
		r := &g.Rules[index]
		w.rule = r.Name
		w.sb.WriteString(w.names[index])
		w.sb.WriteString(" =")

		if allEmpty(r.Alts) {
			w.sb.WriteString(" .\n")
			continue
		}

		w.sb.WriteByte(' ')
		e := w.expression(r.Alts)
		if e != nil {
			return "", e
		}
		w.sb.WriteString(" .\n")
	}
	return w.sb.String(), nil
}

// Write writes Go EBNF export of g to w. Start rule goes first, other rules keep declaration order.
func Write(w io.Writer, g *grammar.Grammar) error {
	text, e := String(g)
	if e != nil {
		return e
	}

	_, e = io.WriteString(w, text)
	return e
}

// StartName returns the production name of the start rule.
func StartName(g *grammar.Grammar) string {
	return Names(g)[g.Start]
}

// Verify exports g and checks the result with ebnf.Parse and ebnf.Verify.
func Verify(g *grammar.Grammar) error {
	text, e := String(g)
	if e != nil {
		return e
	}

	eg, e := ebnf.Parse(g.StartRule().Name+".ebnf", strings.NewReader(text))
	if e == nil {
		e = ebnf.Verify(eg, StartName(g))
	}
	if e != nil {
		return bnfcheck.WrapError(e, VerifyError, "Go EBNF export rejected")
	}
	return nil
}

func sortedReachable(g *grammar.Grammar) []int {
	reached := make([]bool, len(g.Rules))
	for _, i := range g.Reachable(g.Start) {
		reached[i] = true
	}

	res := []int{g.Start}
	for i := range g.Rules {
		if reached[i] && i != g.Start {
			res = append(res, i)
		}
	}
	return res
}

func allEmpty(alts []grammar.Alternative) bool {
	for _, alt := range alts {
		if len(alt.Symbols) > 0 {
			return false
		}
	}
	return true
}

func (w *writer) expression(alts []grammar.Alternative) error {
	if allEmpty(alts) {
		return bnfcheck.FormatError(EmptyGroupError, "rule %q: group contains only empty alternatives", w.rule)
	}

	hasEmpty := false
	var nonEmpty []grammar.Alternative
	for _, alt := range alts {
		if len(alt.Symbols) == 0 {
			hasEmpty = true
		} else {
			nonEmpty = append(nonEmpty, alt)
		}
	}

	if hasEmpty {
		w.sb.WriteString("[ ")
	}
	for i, alt := range nonEmpty {
		if i > 0 {
			w.sb.WriteString(" | ")
		}
		for j, s := range alt.Symbols {
			if j > 0 {
				w.sb.WriteByte(' ')
			}
			if e := w.symbol(s); e != nil {
				return e
			}
		}
	}
	if hasEmpty {
		w.sb.WriteString(" ]")
	}
	return nil
}

func (w *writer) symbol(s grammar.Symbol) error {
	switch s.Quant {
	case grammar.Optional:
		return w.wrapped("[ ", s, " ]")
	case grammar.ZeroOrMore:
		return w.wrapped("{ ", s, " }")
	case grammar.OneOrMore:
		e := w.term(s, false)
		if e != nil {
			return e
		}
		return w.wrapped(" { ", s, " }")
	default:
		return w.term(s, false)
	}
}

func (w *writer) wrapped(open string, s grammar.Symbol, close string) error {
	w.sb.WriteString(open)
	e := w.term(s, true)
	w.sb.WriteString(close)
	return e
}

// term writes symbol content ignoring quantifier, bare is set when content is already enclosed in brackets
func (w *writer) term(s grammar.Symbol, bare bool) error {
	switch s.Kind {
	case grammar.LiteralSymbol:
		w.sb.WriteString(strconv.Quote(s.Text))

	case grammar.RuleSymbol:
		w.sb.WriteString(w.names[s.Rule])

	case grammar.ClassSymbol:
		ranges := s.Class.Ranges()
		enclose := !bare && len(ranges) > 1
		if enclose {
			w.sb.WriteString("( ")
		}
		for i, r := range ranges {
			if i > 0 {
				w.sb.WriteString(" | ")
			}
			w.sb.WriteString(strconv.Quote(string(r.Lo)))
			if r.Hi != r.Lo {
				w.sb.WriteString(rangeSep)
				w.sb.WriteString(strconv.Quote(string(r.Hi)))
			}
		}
		if enclose {
			w.sb.WriteString(" )")
		}

	case grammar.GroupSymbol:
		if !bare {
			w.sb.WriteString("( ")
		}
		if e := w.expression(s.Alts); e != nil {
			return e
		}
		if !bare {
			w.sb.WriteString(" )")
		}
	}
	return nil
}
