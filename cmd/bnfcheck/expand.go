package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava12/bnfcheck/expand"
)

func newExpandCmd() *cobra.Command {
	var (
		rule string
		opts expand.Options
	)

	cmd := &cobra.Command{
		Use:   "expand [--rule <rule>] [--max-len <n>] [--count <n>] <grammar-file>",
		Short: "Print sample strings accepted by a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, e := loadGrammar(args[0])
			if e != nil {
				return e
			}

			index := g.Start
			if rule != "" {
				index = g.RuleIndex(rule)
				if index < 0 {
					return fmt.Errorf("unknown rule %q", rule)
				}
			}

			out := cmd.OutOrStdout()
			for _, sample := range expand.Samples(g, index, opts) {
				fmt.Fprintln(out, sample)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&rule, "rule", "r", "", "rule name, default is the start rule")
	flags.IntVar(&opts.MaxLen, "max-len", expand.DefaultMaxLen, "maximum sample length in characters")
	flags.IntVarP(&opts.MaxCount, "count", "n", expand.DefaultMaxCount, "maximum number of samples")
	flags.IntVar(&opts.ClassLimit, "class-limit", expand.DefaultClassLimit, "characters taken from each terminal class")
	return cmd
}
