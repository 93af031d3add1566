package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/ava12/bnfcheck/goebnf"
	"github.com/ava12/bnfcheck/grammar"
)

const (
	formatBNF  = "bnf"
	formatJSON = "json"
	formatEBNF = "ebnf"
	formatRepr = "repr"
)

var dumpers = map[string]func(w io.Writer, g *grammar.Grammar) error{
	formatBNF: func(w io.Writer, g *grammar.Grammar) error {
		return g.Format(w)
	},
	formatJSON: func(w io.Writer, g *grammar.Grammar) error {
		data, e := json.MarshalIndent(g, "", "  ")
		if e == nil {
			data = append(data, '\n')
			_, e = w.Write(data)
		}
		return e
	},
	formatEBNF: goebnf.Write,
	formatRepr: func(w io.Writer, g *grammar.Grammar) error {
		repr.New(w, repr.Indent("  ")).Println(g.Rules)
		return nil
	},
}

func newDumpCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump [--format bnf|json|ebnf|repr] <grammar-file>",
		Short: "Print compiled grammar",
		Long: `dump compiles a grammar file and prints it in one of the formats:
  bnf   canonical grammar description, one rule per line;
  json  rule table in JSON;
  ebnf  Go EBNF notation (golang.org/x/exp/ebnf), rules reachable from the start rule only;
  repr  Go syntax debug dump.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dumper := dumpers[format]
			if dumper == nil {
				return fmt.Errorf("unknown format %q", format)
			}

			g, e := loadGrammar(args[0])
			if e != nil {
				return e
			}
			return fail(dumper(cmd.OutOrStdout(), g))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatBNF, "output format: bnf, json, ebnf, or repr")
	return cmd
}
