package classify

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava12/bnfcheck/grammar"
	. "github.com/ava12/bnfcheck/internal/test"
	"github.com/ava12/bnfcheck/langdef"
	"github.com/ava12/bnfcheck/source"
)

const tokenGrammar = `
token  ::= <atom> | <number> | <hex> | <quoted>
atom   ::= LOWER ALNUM_*
number ::= "-"? DIGIT+ ("." DIGIT+)?
hex    ::= "0x" HEXDIGIT+
quoted ::= "'" (ALNUM | SPACE | PUNCT)* "'"
`

func compile(t *testing.T, src string) *grammar.Grammar {
	t.Helper()
	g, e := langdef.CompileString("test", src)
	require.NoError(t, e)
	return g
}

type sample struct {
	token string
	rule  string
}

func checkSamples(t *testing.T, c *Classifier, samples []sample) {
	t.Helper()
	for _, s := range samples {
		res := c.Classify(s.token)
		if s.rule == "" {
			require.False(t, res.Valid, "%q must be invalid, got %s", s.token, res.Rule)
			require.Equal(t, InvalidName, res.String())
			continue
		}

		require.True(t, res.Valid, "%q must match %s", s.token, s.rule)
		require.Equal(t, s.rule, res.Rule, "token %q", s.token)
		require.Equal(t, s.rule, res.String())
	}
}

func newClassifier(t *testing.T, src string, opts ...Option) *Classifier {
	t.Helper()
	c, e := New(compile(t, src), opts...)
	require.NoError(t, e)
	return c
}

func TestSingleRule(t *testing.T) {
	checkSamples(t, newClassifier(t, "atom ::= LOWER ALNUM_*"), []sample{
		{"foo_1", "atom"},
		{"x", "atom"},
		{"a@b", "atom"},
		{"Foo", ""},
		{"1foo", ""},
		{"foo-1", ""},
		{"", ""},
	})

	checkSamples(t, newClassifier(t, `number ::= DIGIT+ ("." DIGIT+)?`), []sample{
		{"3.14", "number"},
		{"42", "number"},
		{"3.", ""},
		{".5", ""},
		{"1.2.3", ""},
	})
}

func TestInnermostRule(t *testing.T) {
	c := newClassifier(t, tokenGrammar)
	checkSamples(t, c, []sample{
		{"foo_1", "atom"},
		{"-3.14", "number"},
		{"0x1F", "hex"},
		{"'a b!'", "quoted"},
		{"''", "quoted"},
		{"0x", ""},
		{"0xG", ""},
		{"'open", ""},
		{"FOO", ""},
	})

	res := c.Classify("0x1f")
	require.Equal(t, []string{"token", "hex"}, res.Path)
	require.Nil(t, res.Reason)
}

func TestDescentStopsAtComposite(t *testing.T) {
	c := newClassifier(t, "start ::= <pair> | <word>\npair ::= <word> '=' <word>\nword ::= LOWER+")
	res := c.Classify("a=b")
	require.True(t, res.Valid)
	require.Equal(t, "pair", res.Rule)
	require.Equal(t, []string{"start", "pair"}, res.Path)

	res = c.Classify("ab")
	require.Equal(t, []string{"start", "word"}, res.Path)
}

func TestQuantifiedRefIsNotDescended(t *testing.T) {
	c := newClassifier(t, "start ::= <d>+\nd ::= DIGIT")
	res := c.Classify("123")
	require.True(t, res.Valid)
	require.Equal(t, "start", res.Rule)
	require.Equal(t, []string{"start"}, res.Path)
}

func TestFirstAlternativeWins(t *testing.T) {
	checkSamples(t, newClassifier(t, "start ::= <word> | <keyword>\nword ::= LOWER+\nkeyword ::= 'if' | 'else'"), []sample{
		{"if", "word"},
		{"iff", "word"},
	})

	checkSamples(t, newClassifier(t, "start ::= <keyword> | <word>\nword ::= LOWER+\nkeyword ::= 'if' | 'else'"), []sample{
		{"if", "keyword"},
		{"else", "keyword"},
		{"iff", "word"},
		{"elsewhere", "word"},
	})
}

func TestBacktracking(t *testing.T) {
	checkSamples(t, newClassifier(t, "a ::= LOWER* 'x'"), []sample{
		{"abx", "a"},
		{"x", "a"},
		{"xx", "a"},
		{"xa", ""},
	})

	checkSamples(t, newClassifier(t, "a ::= ('ab' | 'a') 'bc'"), []sample{
		{"abbc", "a"},
		{"abc", "a"},
		{"ac", ""},
	})

	checkSamples(t, newClassifier(t, "a ::= b b 'c'\nb ::= 'x'? 'x'?"), []sample{
		{"c", "a"},
		{"xxxc", "a"},
		{"xxxxc", "a"},
		{"xxxxxc", ""},
	})
}

func TestOptionalAndRepeatedGroups(t *testing.T) {
	checkSamples(t, newClassifier(t, "list ::= '[' [<item> {',' <item>}] ']'\nitem ::= DIGIT+"), []sample{
		{"[]", "list"},
		{"[1]", "list"},
		{"[1,22,333]", "list"},
		{"[1,]", ""},
		{"[,1]", ""},
		{"[1 2]", ""},
	})
}

func TestEmptyAlternative(t *testing.T) {
	checkSamples(t, newClassifier(t, "a ::= 'x' <a> | EMPTY"), []sample{
		{"x", "a"},
		{"xxxx", "a"},
		{"", ""},
		{"xy", ""},
	})
}

func TestUnicodeLiterals(t *testing.T) {
	checkSamples(t, newClassifier(t, `word ::= "ж"+ DIGIT`), []sample{
		{"жж1", "word"},
		{"ж", ""},
		{"жx1", ""},
	})
}

func TestRightRecursion(t *testing.T) {
	c := newClassifier(t, "digits ::= DIGIT <digits> | DIGIT")
	long := strings.Repeat("7", 500)
	res := c.Classify(long)
	require.True(t, res.Valid)
	require.Nil(t, res.Reason)

	res = c.Classify(long + "x")
	require.False(t, res.Valid)
	require.Nil(t, res.Reason)
}

func TestRecursionLimit(t *testing.T) {
	c := newClassifier(t, "digits ::= DIGIT <digits> | DIGIT", WithMaxDepth(3))
	res := c.Classify("12")
	require.True(t, res.Valid)

	res = c.Classify("12345")
	require.False(t, res.Valid)
	ExpectErrorCode(t, RecursionLimitError, res.Reason)
	require.Equal(t, InvalidName, res.String())
}

func TestStepLimit(t *testing.T) {
	c := newClassifier(t, "a ::= (LOWER | 'a')* 'b'", WithMaxSteps(50))
	res := c.Classify(strings.Repeat("a", 40) + "c")
	require.False(t, res.Valid)
	ExpectErrorCode(t, StepLimitError, res.Reason)

	c = newClassifier(t, "a ::= (LOWER | 'a')* 'b'", WithMaxSteps(0))
	res = c.Classify(strings.Repeat("a", 12) + "c")
	require.False(t, res.Valid)
	require.Nil(t, res.Reason)
}

func TestAmbiguousRepeat(t *testing.T) {
	g := compile(t, `s ::= ("a" | "a")* "b" | "a"+`)
	long := strings.Repeat("a", 30)
	require.Equal(t, Matched("s"), Classify(g, long))
	require.Equal(t, Matched("s"), Classify(g, long+"b"))

	res := Classify(g, long+"c")
	require.False(t, res.Valid)
	require.Nil(t, res.Reason)
}

func TestRepeatedNullableItem(t *testing.T) {
	checkSamples(t, newClassifier(t, `s ::= ("x"?)+ "y"`), []sample{
		{"y", "s"},
		{"xxxy", "s"},
		{"xx", ""},
	})

	checkSamples(t, newClassifier(t, "a ::= b* 'z'\nb ::= EMPTY | 'x' | 'yy'"), []sample{
		{"z", "a"},
		{"xyyxz", "a"},
		{"yz", ""},
	})
}

func TestDescentStepBudget(t *testing.T) {
	c := newClassifier(t, tokenGrammar)
	m := c.newMatcher("0x1f")
	require.Equal(t, 2, m.matchWhole(c.start))
	require.Nil(t, m.reason)

	c = newClassifier(t, tokenGrammar, WithMaxSteps(m.steps))
	res := c.Classify("0x1f")
	require.Equal(t, Matched("token", "hex"), res)
	require.Nil(t, res.Reason)

	c = newClassifier(t, tokenGrammar, WithMaxSteps(m.steps-1))
	res = c.Classify("0x1f")
	require.False(t, res.Valid)
	ExpectErrorCode(t, StepLimitError, res.Reason)
}

func TestMatched(t *testing.T) {
	res := Matched("token")
	require.True(t, res.Valid)
	require.Equal(t, "token", res.Rule)
	require.Equal(t, []string{"token"}, res.Path)

	res = Matched("token", "number", "integer")
	require.Equal(t, "integer", res.Rule)
	require.Equal(t, []string{"token", "number", "integer"}, res.Path)
	require.Equal(t, "integer", res.String())
}

func TestWithStart(t *testing.T) {
	g := compile(t, tokenGrammar)
	c, e := New(g, WithStart("number"))
	require.NoError(t, e)
	checkSamples(t, c, []sample{
		{"12", "number"},
		{"abc", ""},
	})
	require.Same(t, g, c.Grammar())

	_, e = New(g, WithStart("missing"))
	ExpectErrorCode(t, UnknownRuleError, e)
}

func TestClassifyFunc(t *testing.T) {
	g := compile(t, tokenGrammar)
	require.Equal(t, Matched("token", "atom"), Classify(g, "abc"))
	require.Equal(t, Invalid(nil), Classify(g, "ABC"))
	require.Equal(t, Classify(g, "0x10"), Classify(g, "0x10"))
}

func TestLines(t *testing.T) {
	src := source.NewString("input", "foo\n\n# comment\n  \t\n  bar baz  \r\n#\n3.14")
	require.Equal(t, []Line{{1, "foo"}, {5, "bar baz"}, {7, "3.14"}}, Lines(src))
	require.Empty(t, Lines(source.NewString("", "")))
}

func TestSplitTokens(t *testing.T) {
	require.Equal(t, []string{"foo", "bar", "3", "14", "x"}, SplitTokens(" foo(bar, 3.14)\t{x}"))
	require.Empty(t, SplitTokens("(),. "))
}

func TestTokens(t *testing.T) {
	lines := []Line{{2, "a b"}, {4, "c(d)"}}
	require.Equal(t, []LineResult{{Line: 2, Token: "a b"}, {Line: 4, Token: "c(d)"}}, Tokens(lines, false))
	require.Equal(t, []LineResult{
		{Line: 2, Token: "a"},
		{Line: 2, Token: "b"},
		{Line: 4, Token: "c"},
		{Line: 4, Token: "d"},
	}, Tokens(lines, true))
}

func TestLineResultString(t *testing.T) {
	lr := LineResult{Line: 3, Token: "foo_1", Result: Matched("token", "atom")}
	require.Equal(t, "Line 3: 'foo_1' is atom", lr.String())
	lr = LineResult{Line: 12, Token: "3.", Result: Invalid(nil)}
	require.Equal(t, "Line 12: '3.' is INVALID", lr.String())
}

func TestClassifyAll(t *testing.T) {
	c := newClassifier(t, tokenGrammar)
	var items []LineResult
	for i := 0; i < 200; i++ {
		items = append(items, LineResult{Line: i + 1, Token: "x" + strconv.Itoa(i)})
		items = append(items, LineResult{Line: i + 1, Token: strconv.Itoa(i) + "x"})
	}

	expected := make([]LineResult, len(items))
	copy(expected, items)
	require.NoError(t, c.ClassifyAll(context.Background(), expected, 1))

	require.NoError(t, c.ClassifyAll(context.Background(), items, 8))
	require.Equal(t, expected, items)
	for i, item := range items {
		require.Equal(t, i%2 == 0, item.Valid, item.Token)
	}
}

func TestClassifyAllCancelled(t *testing.T) {
	c := newClassifier(t, tokenGrammar)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []LineResult{{Line: 1, Token: "abc"}}
	require.ErrorIs(t, c.ClassifyAll(ctx, items, 1), context.Canceled)
	require.False(t, items[0].Valid)

	require.ErrorIs(t, c.ClassifyAll(ctx, items, 4), context.Canceled)
}
