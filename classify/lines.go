package classify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/ava12/bnfcheck/source"
)

// CommentPrefix marks input lines that are skipped.
const CommentPrefix = "#"

// tokenSeparators split a line into tokens in addition to white space.
const tokenSeparators = "(){}[],."

// Line is a non-blank non-comment input line.
type Line struct {
	// Num contains 1-based line number in the source.
	Num int

	// Text contains the line with leading and trailing white space removed.
	Text string
}

// Lines returns input lines that should be classified, skipping blank lines and lines starting with CommentPrefix.
func Lines(src *source.Source) []Line {
	var res []Line
	for n := 1; n <= src.LineCount(); n++ {
		text := strings.TrimSpace(src.Line(n))
		if text == "" || strings.HasPrefix(text, CommentPrefix) {
			continue
		}

		res = append(res, Line{n, text})
	}
	return res
}

// SplitTokens splits line into tokens separated by white space and punctuation: ( ) { } [ ] , .
func SplitTokens(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(tokenSeparators, r)
	})
}

// LineResult is a classification result for a single token of an input line.
type LineResult struct {
	Line  int
	Token string
	Result
}

// String returns report line in form: Line <n>: '<token>' is <rule name or INVALID>
func (lr LineResult) String() string {
	return fmt.Sprintf("Line %d: '%s' is %s", lr.Line, lr.Token, lr.Result.String())
}

// Tokens converts lines into a list of tokens to classify.
// Every line is a single token unless split is set, see SplitTokens.
func Tokens(lines []Line, split bool) []LineResult {
	var res []LineResult
	for _, l := range lines {
		if !split {
			res = append(res, LineResult{Line: l.Num, Token: l.Text})
			continue
		}

		for _, t := range SplitTokens(l.Text) {
			res = append(res, LineResult{Line: l.Num, Token: t})
		}
	}
	return res
}

// ClassifyAll fills Result of every item in place using up to workers goroutines,
// results keep input order. Stops early and returns ctx.Err() if ctx is cancelled.
func (c *Classifier) ClassifyAll(ctx context.Context, items []LineResult, workers int) error {
	if workers <= 1 {
		for i := range items {
			if e := ctx.Err(); e != nil {
				return e
			}
			items[i].Result = c.Classify(items[i].Token)
		}
		return nil
	}

	indexes := make(chan int)
	wg := &sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				items[i].Result = c.Classify(items[i].Token)
			}
		}()
	}

	var e error
feed:
	for i := range items {
		if e = ctx.Err(); e != nil {
			break
		}

		select {
		case indexes <- i:
		case <-ctx.Done():
			e = ctx.Err()
			break feed
		}
	}
	close(indexes)
	wg.Wait()
	return e
}
