package grammar

import (
	"io"
	"strconv"
	"strings"
)

// EmptyName is the keyword denoting empty alternative.
const EmptyName = "EMPTY"

// String returns canonical grammar description, one rule per line.
// Compiling the description yields an equal grammar.
func (g *Grammar) String() string {
	var sb strings.Builder
	for i := range g.Rules {
		writeRule(&sb, &g.Rules[i])
	}
	return sb.String()
}

// Format writes canonical grammar description to w.
func (g *Grammar) Format(w io.Writer) error {
	_, e := io.WriteString(w, g.String())
	return e
}

// String returns rule definition without trailing line feed.
func (r *Rule) String() string {
	var sb strings.Builder
	writeRule(&sb, r)
	return strings.TrimSuffix(sb.String(), "\n")
}

func writeRule(sb *strings.Builder, r *Rule) {
	sb.WriteString("<" + r.Name + "> ::= ")
	writeAlts(sb, r.Alts)
	sb.WriteByte('\n')
}

func writeAlts(sb *strings.Builder, alts []Alternative) {
	for i, alt := range alts {
		if i > 0 {
			sb.WriteString(" | ")
		}
		if len(alt.Symbols) == 0 {
			sb.WriteString(EmptyName)
			continue
		}

		for j, s := range alt.Symbols {
			if j > 0 {
				sb.WriteByte(' ')
			}
			writeSymbol(sb, s)
		}
	}
}

func writeSymbol(sb *strings.Builder, s Symbol) {
	switch s.Kind {
	case ClassSymbol:
		sb.WriteString(s.Class.String())
	case LiteralSymbol:
		sb.WriteString(strconv.Quote(s.Text))
	case RuleSymbol:
		sb.WriteString("<" + s.Text + ">")
	case GroupSymbol:
		sb.WriteByte('(')
		writeAlts(sb, s.Alts)
		sb.WriteByte(')')
	}
	sb.WriteString(s.Quant.Suffix())
}

// String returns symbol notation.
func (s Symbol) String() string {
	var sb strings.Builder
	writeSymbol(&sb, s)
	return sb.String()
}
