/*
bnfcheck is a console utility classifying input lines against a grammar written in simplified BNF.
Usage is

	bnfcheck [--start <rule>] [--split] [--max-depth <n>] [--workers <n>] <grammar-file> <input-file>
	bnfcheck dump [--format bnf|json|ebnf|repr] <grammar-file>
	bnfcheck expand [--rule <rule>] [--max-len <n>] [--count <n>] <grammar-file>
	bnfcheck verify <grammar-file>

Every non-blank input line not starting with # is classified against the start rule, the result is printed as

	Line <n>: '<token>' is <rule name or INVALID>

--split flag classifies every token of a line instead, tokens are separated with white space and ( ) { } [ ] , .

Files with .gz and .zst suffixes are decompressed transparently.
Exit code is 0 on success, 1 if a file cannot be read or the grammar cannot be compiled, 2 on usage error.
glog flags (-v, --logtostderr, etc.) are accepted, logs go to stderr by default.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	log "github.com/golang/glog"
)

const (
	exitOk      = 0
	exitFailure = 1
	exitUsage   = 2
)

// failure is an error not caused by command line usage
type failure struct {
	err error
}

func (f failure) Error() string {
	return f.err.Error()
}

func (f failure) Unwrap() error {
	return f.err
}

func fail(e error) error {
	if e == nil {
		return nil
	}
	return failure{e}
}

func main() {
	_ = flag.Set("logtostderr", "true")
	_ = flag.CommandLine.Parse(nil)
	code := run(os.Args[1:], os.Stdout, os.Stderr)
	log.Flush()
	os.Exit(code)
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	e := cmd.Execute()
	if e == nil {
		return exitOk
	}

	fmt.Fprintln(stderr, e.Error())
	var f failure
	if errors.As(e, &f) {
		return exitFailure
	}

	fmt.Fprintln(stderr, "Run 'bnfcheck --help' for usage.")
	return exitUsage
}
