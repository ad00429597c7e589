package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedAll(t *testing.T, c *Collector, lines ...string) Block {
	t.Helper()
	for i, line := range lines {
		block, done := c.Add(line)
		if i == len(lines)-1 {
			require.True(t, done, "expected final line to complete the block")
			return block
		}
		require.False(t, done, "line %d completed the block early", i)
	}
	return Block{}
}

func TestCollectorSingleLine(t *testing.T) {
	c := NewCollector()
	block, done := c.Add("echo hi")
	assert.True(t, done)
	assert.Equal(t, "echo hi", block.Text)
}

func TestCollectorDiscardsBlanksAndComments(t *testing.T) {
	c := NewCollector()

	_, done := c.Add("")
	assert.False(t, done)
	_, done = c.Add("   ")
	assert.False(t, done)
	_, done = c.Add("# just a comment")
	assert.False(t, done)
	assert.False(t, c.Pending())
}

func TestCollectorWhileBlock(t *testing.T) {
	c := NewCollector()
	block := feedAll(t, c,
		"while cat flag",
		"do",
		"echo tick",
		"done",
	)
	assert.Equal(t, "while cat flag; do echo tick; done", block.Text)
}

func TestCollectorIfElseBlock(t *testing.T) {
	c := NewCollector()
	block := feedAll(t, c,
		"if cat flag",
		"then",
		"echo yes",
		"else",
		"echo no",
		"fi",
	)
	assert.Equal(t, "if cat flag; then echo yes; else echo no; fi", block.Text)
}

func TestCollectorFunctionBlock(t *testing.T) {
	c := NewCollector()
	block := feedAll(t, c,
		"function greet() {",
		"echo hello",
		"}",
	)
	assert.Equal(t, "function greet() { echo hello; }", block.Text)
}

func TestCollectorInlineControlCompletesImmediately(t *testing.T) {
	c := NewCollector()
	block, done := c.Add("if cat flag; then echo yes; fi")
	assert.True(t, done)
	assert.Equal(t, "if cat flag; then echo yes; fi", block.Text)
}

func TestCollectorHeredoc(t *testing.T) {
	c := NewCollector()
	block := feedAll(t, c,
		"cat << EOF",
		"first line",
		"",
		"last line",
		"EOF",
	)
	assert.Equal(t, "cat << EOF", block.Text)
	assert.Equal(t, []string{"first line", "", "last line"}, block.Heredoc)
}

func TestCollectorHeredocStripDelimiter(t *testing.T) {
	c := NewCollector()
	block := feedAll(t, c,
		"cat <<- EOF",
		"\tbody",
		"\tEOF",
	)
	assert.Equal(t, []string{"\tbody"}, block.Heredoc)
}

func TestCollectorPrompts(t *testing.T) {
	c := NewCollector()
	assert.Equal(t, "> ", c.Prompt())

	c.Add("while cat flag")
	assert.Equal(t, ">> ", c.Prompt())
	c.Reset()

	c.Add("cat << EOF")
	assert.Equal(t, "heredoc> ", c.Prompt())
}

func TestCollectorKeywordAsArgumentStaysInert(t *testing.T) {
	c := NewCollector()
	block, done := c.Add("echo done if while")
	assert.True(t, done)
	assert.Equal(t, "echo done if while", block.Text)
}
