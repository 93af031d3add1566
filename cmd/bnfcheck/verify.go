package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ava12/bnfcheck/goebnf"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <grammar-file>",
		Short: "Check grammar and its Go EBNF export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, e := loadGrammar(args[0])
			if e != nil {
				return e
			}

			out := cmd.OutOrStdout()
			if names := g.Unreachable(); len(names) > 0 {
				fmt.Fprintf(out, "Unreachable rules: %s.\n", strings.Join(names, ", "))
			}

			if e = goebnf.Verify(g); e != nil {
				return fail(e)
			}

			fmt.Fprintf(out, "Grammar '%s' is valid: %d rules, start rule is '%s'.\n", args[0], len(g.Rules), g.StartRule().Name)
			return nil
		},
	}
}
