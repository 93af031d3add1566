package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/ava12/bnfcheck/classify"
	"github.com/ava12/bnfcheck/grammar"
	"github.com/ava12/bnfcheck/langdef"
	"github.com/ava12/bnfcheck/source"
)

type checkOptions struct {
	start    string
	split    bool
	maxDepth int
	maxSteps int
	workers  int
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "bnfcheck [flags] <grammar-file> <input-file>",
		Short: "Classify input lines against a grammar written in simplified BNF",
		Long: `bnfcheck compiles a grammar file and classifies every line of an input file
against the start rule of the grammar. Blank lines and lines starting with # are skipped.`,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args[0], args[1])
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.start, "start", "", "classify against this rule instead of the start rule")
	flags.BoolVar(&opts.split, "split", false, "classify every token of a line")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "rule nesting limit, 0 means (token length + 1) * (rule count)")
	flags.IntVar(&opts.maxSteps, "max-steps", 0, "match attempts allowed per token, 0 means no limit")
	flags.IntVar(&opts.workers, "workers", 1, "number of classifying goroutines")
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	cmd.AddCommand(newDumpCmd(), newExpandCmd(), newVerifyCmd())
	return cmd
}

func loadGrammar(path string) (*grammar.Grammar, error) {
	g, e := langdef.CompileFile(path)
	if e != nil {
		return nil, fail(e)
	}

	log.V(1).Infof("compiled %d rules from %s, start rule is %q", len(g.Rules), path, g.StartRule().Name)
	if names := g.Unreachable(); len(names) > 0 {
		log.Warningf("%s: rules unreachable from %q: %s", path, g.StartRule().Name, strings.Join(names, ", "))
	}
	for _, msg := range langdef.EmptyRepeats(g) {
		log.Warningf("%s: %s", path, msg)
	}
	return g, nil
}

func runCheck(cmd *cobra.Command, opts *checkOptions, grammarPath, inputPath string) error {
	if opts.workers < 1 {
		return fmt.Errorf("invalid number of workers: %d", opts.workers)
	}

	g, e := loadGrammar(grammarPath)
	if e != nil {
		return e
	}

	c, e := classify.New(g, classify.WithStart(opts.start), classify.WithMaxDepth(opts.maxDepth), classify.WithMaxSteps(opts.maxSteps))
	if e != nil {
		return e
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "BNF grammar loaded from '%s'.\n", grammarPath)

	src, e := source.Load(inputPath)
	if e != nil {
		return fail(e)
	}

	items := classify.Tokens(classify.Lines(src), opts.split)
	log.V(1).Infof("classifying %d tokens from %s", len(items), inputPath)
	e = c.ClassifyAll(cmd.Context(), items, opts.workers)
	if e != nil {
		return fail(e)
	}

	invalid := 0
	for _, item := range items {
		if item.Reason != nil {
			fmt.Fprintf(out, "%s (%s)\n", item, item.Reason)
		} else {
			fmt.Fprintln(out, item.String())
		}
		if !item.Valid {
			invalid++
		}
	}

	log.V(1).Infof("%d of %d tokens are invalid", invalid, len(items))
	return nil
}
