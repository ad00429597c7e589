package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimple(t *testing.T) {
	node, err := Parse(`echo hello "big world"`)
	require.NoError(t, err)

	simple, ok := node.(*Simple)
	require.True(t, ok)
	assert.Equal(t, []string{"echo", "hello", "big world"}, simple.Args)
}

func TestParseKeepsSubstitutionsWhole(t *testing.T) {
	node, err := Parse("echo $(echo hi there)")
	require.NoError(t, err)

	simple, ok := node.(*Simple)
	require.True(t, ok)
	assert.Equal(t, []string{"echo", "$(echo hi there)"}, simple.Args)
}

func TestParseRedirectInsideSubstitutionStaysInWord(t *testing.T) {
	node, err := Parse("echo $(grep needle < data.txt)")
	require.NoError(t, err)

	simple, ok := node.(*Simple)
	require.True(t, ok)
	assert.Equal(t, []string{"echo", "$(grep needle < data.txt)"}, simple.Args)

	node, err = Parse("echo $(cat < a.txt) > out.txt")
	require.NoError(t, err)

	redir, ok := node.(*Redirected)
	require.True(t, ok)
	assert.Equal(t, RedirectOut, redir.Spec.Kind)
	assert.Equal(t, "out.txt", redir.Spec.Target)
}

func TestParsePipeline(t *testing.T) {
	node, err := Parse("cat notes.txt | grep todo | grep urgent")
	require.NoError(t, err)

	pipe, ok := node.(*Pipeline)
	require.True(t, ok)
	require.Len(t, pipe.Stages, 3)
	assert.Equal(t, "cat", Name(pipe.Stages[0]))
	assert.Equal(t, "grep", Name(pipe.Stages[1]))
}

func TestParsePipelineTailRedirect(t *testing.T) {
	node, err := Parse("cat notes.txt | grep todo > out.txt")
	require.NoError(t, err)

	red, ok := node.(*Redirected)
	require.True(t, ok)
	assert.Equal(t, RedirectOut, red.Spec.Kind)
	assert.Equal(t, "out.txt", red.Spec.Target)

	_, ok = red.Inner.(*Pipeline)
	assert.True(t, ok, "redirect should wrap the whole pipeline")
}

func TestParseRedirects(t *testing.T) {
	cases := []struct {
		input  string
		kind   RedirectKind
		target string
	}{
		{"echo hi > f.txt", RedirectOut, "f.txt"},
		{"echo hi >> f.txt", RedirectAppend, "f.txt"},
		{"cat < f.txt", RedirectIn, "f.txt"},
		{"cat << EOF", RedirectHereDoc, "EOF"},
		{"cat <<- EOF", RedirectHereDocStrip, "EOF"},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			node, err := Parse(tc.input)
			require.NoError(t, err)

			red, ok := node.(*Redirected)
			require.True(t, ok)
			assert.Equal(t, tc.kind, red.Spec.Kind)
			assert.Equal(t, tc.target, red.Spec.Target)
		})
	}
}

func TestParseChainedRedirects(t *testing.T) {
	node, err := Parse("cat < in.txt > out.txt")
	require.NoError(t, err)

	outer, ok := node.(*Redirected)
	require.True(t, ok)
	assert.Equal(t, RedirectOut, outer.Spec.Kind)

	inner, ok := outer.Inner.(*Redirected)
	require.True(t, ok)
	assert.Equal(t, RedirectIn, inner.Spec.Kind)
}

func TestParseBackground(t *testing.T) {
	node, err := Parse("sleep 5 &")
	require.NoError(t, err)

	bg, ok := node.(*Background)
	require.True(t, ok)
	assert.Equal(t, "sleep 5", bg.Raw)
	assert.Equal(t, "sleep", Name(bg.Inner))
}

func TestParseSequence(t *testing.T) {
	node, err := Parse("echo a; echo b; echo c")
	require.NoError(t, err)

	seq, ok := node.(*Sequence)
	require.True(t, ok)
	assert.Len(t, seq.Members, 3)
}

func TestParseConditional(t *testing.T) {
	node, err := Parse("if cat f.txt; then echo yes; else echo no; fi")
	require.NoError(t, err)

	cond, ok := node.(*Conditional)
	require.True(t, ok)
	assert.Equal(t, "cat", Name(cond.Cond))
	assert.Equal(t, "echo", Name(cond.Then))
	require.NotNil(t, cond.Else)
}

func TestParseConditionalNoElse(t *testing.T) {
	node, err := Parse("if cat f.txt; then echo yes; fi")
	require.NoError(t, err)

	cond, ok := node.(*Conditional)
	require.True(t, ok)
	assert.Nil(t, cond.Else)
}

func TestParseWhile(t *testing.T) {
	node, err := Parse("while cat flag; do echo tick; done")
	require.NoError(t, err)

	loop, ok := node.(*WhileLoop)
	require.True(t, ok)
	assert.Equal(t, "cat", Name(loop.Cond))
	assert.Equal(t, "echo", Name(loop.Body))
}

func TestParseFor(t *testing.T) {
	node, err := Parse("for x in a b c; do echo $x; done")
	require.NoError(t, err)

	loop, ok := node.(*ForLoop)
	require.True(t, ok)
	assert.Equal(t, "x", loop.Variable)
	assert.Equal(t, []string{"a", "b", "c"}, loop.Items)
}

func TestParseFunction(t *testing.T) {
	node, err := Parse("function greet() { echo hello $1; }")
	require.NoError(t, err)

	fn, ok := node.(*FunctionDef)
	require.True(t, ok)
	assert.Equal(t, "greet", fn.Name)
	assert.Equal(t, "echo", Name(fn.Body))
}

func TestParseMultiStatementBody(t *testing.T) {
	node, err := Parse("if cat f; then echo a; echo b; fi")
	require.NoError(t, err)

	cond := node.(*Conditional)
	body, ok := cond.Then.(*Compound)
	require.True(t, ok)
	assert.Len(t, body.Members, 2)
}

func TestParseSyntaxErrors(t *testing.T) {
	cases := []string{
		"",
		"if cat f; echo yes; fi",
		"if cat f; then echo yes",
		"while cat f; echo x; done",
		"for x in a b; echo $x; done",
		"function bad { echo hi; }",
		"echo hi >",
		"> f.txt",
		"echo 'unterminated",
		"echo hi > out.txt extra",
	}

	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)

			var syntaxErr *SyntaxError
			assert.ErrorAs(t, err, &syntaxErr)
		})
	}
}

func TestParseHeredocBody(t *testing.T) {
	node, err := ParseBlock(Block{
		Text:    "cat << EOF",
		Heredoc: []string{"first", "second"},
	})
	require.NoError(t, err)

	red := node.(*Redirected)
	assert.Equal(t, []string{"first", "second"}, red.Spec.Body)
}

func TestParseHeredocStripsCommonTabs(t *testing.T) {
	node, err := ParseBlock(Block{
		Text:    "cat <<- EOF",
		Heredoc: []string{"\t\tindented", "\tplain"},
	})
	require.NoError(t, err)

	red := node.(*Redirected)
	assert.Equal(t, []string{"\tindented", "plain"}, red.Spec.Body)
}

func TestDescribe(t *testing.T) {
	node, err := Parse("cat notes.txt | grep todo")
	require.NoError(t, err)
	assert.Equal(t, "cat notes.txt | grep todo", Describe(node))
}
