package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava12/bnfcheck/grammar"
)

const tokensGrammar = "testdata/tokens.bnf"

func TestMain(m *testing.M) {
	_ = flag.Set("logtostderr", "true")
	os.Exit(m.Run())
}

func runCmd(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o666))
	return path
}

func TestCheck(t *testing.T) {
	expected, e := os.ReadFile("testdata/input.out")
	require.NoError(t, e)

	code, out, errOut := runCmd(tokensGrammar, "testdata/input.txt")
	require.Equal(t, exitOk, code, errOut)
	require.Equal(t, string(expected), out)

	code, out, _ = runCmd("--workers", "3", tokensGrammar, "testdata/input.txt")
	require.Equal(t, exitOk, code)
	require.Equal(t, string(expected), out)
}

func TestCheckSplit(t *testing.T) {
	input := writeFile(t, "input.txt", "# call\nfoo(Bar, 42)\n\n[x.y]\n")
	code, out, _ := runCmd("--split", tokensGrammar, input)
	require.Equal(t, exitOk, code)
	require.Equal(t, "BNF grammar loaded from 'testdata/tokens.bnf'.\n"+
		"Line 2: 'foo' is atom\n"+
		"Line 2: 'Bar' is variable\n"+
		"Line 2: '42' is number\n"+
		"Line 4: 'x' is atom\n"+
		"Line 4: 'y' is atom\n", out)
}

func TestCheckStartRule(t *testing.T) {
	input := writeFile(t, "input.txt", "42\nfoo\n")
	code, out, _ := runCmd("--start", "integer", tokensGrammar, input)
	require.Equal(t, exitOk, code)
	require.Contains(t, out, "Line 1: '42' is integer\n")
	require.Contains(t, out, "Line 2: 'foo' is INVALID\n")

	code, _, errOut := runCmd("--start", "missing", tokensGrammar, input)
	require.Equal(t, exitUsage, code)
	require.Contains(t, errOut, "unknown rule")
}

func TestCheckDepthLimit(t *testing.T) {
	g := writeFile(t, "digits.bnf", "digits ::= DIGIT digits | DIGIT\n")
	input := writeFile(t, "input.txt", "12\n12345\n")
	code, out, _ := runCmd("--max-depth", "3", g, input)
	require.Equal(t, exitOk, code)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "Line 1: '12' is digits", lines[1])
	require.True(t, strings.HasPrefix(lines[2], "Line 2: '12345' is INVALID (recursion limit 3 exceeded"), lines[2])
}

func TestCheckBacktracking(t *testing.T) {
	g := writeFile(t, "ambiguous.bnf", "s ::= (\"a\" | \"a\")* \"b\" | (\"x\"?)+ \"y\" | \"a\"+\n")
	long := strings.Repeat("a", 40)
	input := writeFile(t, "input.txt", long+"\nxxy\n"+long+"c\n")
	code, out, _ := runCmd(g, input)
	require.Equal(t, exitOk, code)
	require.Equal(t, "BNF grammar loaded from '"+g+"'.\n"+
		"Line 1: '"+long+"' is s\n"+
		"Line 2: 'xxy' is s\n"+
		"Line 3: '"+long+"c' is INVALID\n", out)
}

func TestCheckFailures(t *testing.T) {
	code, out, errOut := runCmd(tokensGrammar, filepath.Join(t.TempDir(), "missing.txt"))
	require.Equal(t, exitFailure, code)
	require.Contains(t, out, "BNF grammar loaded")
	require.Contains(t, errOut, "missing.txt")

	bad := writeFile(t, "bad.bnf", "start ::= foo\n")
	code, out, errOut = runCmd(bad, "testdata/input.txt")
	require.Equal(t, exitFailure, code)
	require.Empty(t, out)
	require.Contains(t, errOut, "undefined rules: foo")

	leftRec := writeFile(t, "left.bnf", "a ::= a 'x'\n")
	code, _, errOut = runCmd(leftRec, "testdata/input.txt")
	require.Equal(t, exitFailure, code)
	require.Contains(t, errOut, "left-recursive")
}

func TestUsageErrors(t *testing.T) {
	samples := [][]string{
		{},
		{tokensGrammar},
		{tokensGrammar, "testdata/input.txt", "extra"},
		{"--no-such-flag", tokensGrammar, "testdata/input.txt"},
		{"--workers", "0", tokensGrammar, "testdata/input.txt"},
		{"dump"},
		{"dump", "--format", "xml", tokensGrammar},
		{"expand", "--rule", "missing", tokensGrammar},
	}

	for _, args := range samples {
		code, _, errOut := runCmd(args...)
		require.Equal(t, exitUsage, code, "args: %v", args)
		require.Contains(t, errOut, "--help", "args: %v", args)
	}
}

func TestDump(t *testing.T) {
	code, out, _ := runCmd("dump", tokensGrammar)
	require.Equal(t, exitOk, code)
	require.True(t, strings.HasPrefix(out, "<token> ::= <atom> | <variable> | <number> | <string>\n<atom> ::= LOWER ALNUM_* | \"'\" (ALNUM | SPACE | PUNCT)+ \"'\"\n"), out)

	code, out, _ = runCmd("dump", "--format", "json", tokensGrammar)
	require.Equal(t, exitOk, code)
	var g grammar.Grammar
	require.NoError(t, json.Unmarshal([]byte(out), &g))
	require.Len(t, g.Rules, 6)
	require.Equal(t, "integer", g.Rules[4].Name)
	require.Equal(t, grammar.Digit, g.Rules[4].Alts[0].Symbols[0].Class)

	code, out, _ = runCmd("dump", "-f", "ebnf", tokensGrammar)
	require.Equal(t, exitOk, code)
	require.True(t, strings.HasPrefix(out, "token = atom | variable | number | string .\n"), out)

	code, out, _ = runCmd("dump", "--format", "repr", tokensGrammar)
	require.Equal(t, exitOk, code)
	require.Contains(t, out, `"variable"`)
}

func TestExpand(t *testing.T) {
	code, out, _ := runCmd("expand", "--rule", "integer", "--max-len", "2", tokensGrammar)
	require.Equal(t, exitOk, code)
	require.Equal(t, "0\n1\n00\n01\n10\n11\n", out)

	code, out, _ = runCmd("expand", "-n", "5", tokensGrammar)
	require.Equal(t, exitOk, code)
	require.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 5)
}

func TestVerify(t *testing.T) {
	code, out, _ := runCmd("verify", tokensGrammar)
	require.Equal(t, exitOk, code)
	require.Equal(t, "Grammar 'testdata/tokens.bnf' is valid: 6 rules, start rule is 'token'.\n", out)

	g := writeFile(t, "unused.bnf", "a ::= 'a'\nb ::= 'b'\nc ::= 'x' (EMPTY)\n")
	code, out, _ = runCmd("verify", g)
	require.Equal(t, exitOk, code)
	require.Contains(t, out, "Unreachable rules: b, c.\n")

	g = writeFile(t, "empty-group.bnf", "a ::= 'x' (EMPTY)\n")
	code, _, errOut := runCmd("verify", g)
	require.Equal(t, exitFailure, code)
	require.Contains(t, errOut, "only empty alternatives")
}
