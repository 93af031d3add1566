package langdef

import (
	"fmt"

	"github.com/ava12/bnfcheck/grammar"
	"github.com/ava12/bnfcheck/internal/ints"
)

// leftRefs adds to refs every rule that may be referenced at the first position of alts.
func leftRefs(alts []grammar.Alternative, nullable []bool, refs *ints.Set) {
	for _, alt := range alts {
		for _, s := range alt.Symbols {
			switch s.Kind {
			case grammar.RuleSymbol:
				refs.Add(s.Rule)
			case grammar.GroupSymbol:
				leftRefs(s.Alts, nullable, refs)
			}

			if !grammar.SymbolNullable(s, nullable) {
				break
			}
		}
	}
}

func findLeftRecursions(g *grammar.Grammar, e error) error {
	if e != nil {
		return e
	}

	nullable := g.Nullable()
	reach := make([]*ints.Set, len(g.Rules))
	for i, r := range g.Rules {
		reach[i] = ints.NewSet()
		leftRefs(r.Alts, nullable, reach[i])
	}

	changed := true
	for changed {
		changed = false
		for i := range reach {
			for _, j := range reach[i].ToSlice() {
				if reach[i].Union(reach[j]) {
					changed = true
				}
			}
		}
	}

	var names []string
	for i, r := range g.Rules {
		if reach[i].Contains(i) {
			names = append(names, r.Name)
		}
	}

	if len(names) > 0 {
		return leftRecursionError(names)
	}
	return nil
}

// EmptyRepeats returns descriptions of repeated items that can match empty string.
// Such items are legal since every repetition must consume input, but they usually indicate a mistake.
func EmptyRepeats(g *grammar.Grammar) []string {
	var res []string
	nullable := g.Nullable()
	for _, r := range g.Rules {
		for _, s := range emptyRepeats(r.Alts, nullable, nil) {
			res = append(res, fmt.Sprintf("rule %q: repeated item %s can match empty string", r.Name, s))
		}
	}
	return res
}

func emptyRepeats(alts []grammar.Alternative, nullable []bool, res []string) []string {
	for _, alt := range alts {
		for _, s := range alt.Symbols {
			if s.IsRepeated() && grammar.ContentNullable(s, nullable) {
				res = append(res, s.String())
			}

			if s.Kind == grammar.GroupSymbol {
				res = emptyRepeats(s.Alts, nullable, res)
			}
		}
	}
	return res
}
