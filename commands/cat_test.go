package commands

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatGolden(t *testing.T) {
	cases := goldenTestSuite{
		"no-arg":  {Args: []string{"cat"}},
		"missing": {Args: []string{"cat", "does-not-exist.txt"}},
	}

	cases.Run(t, Cat)
}

func TestCatFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.txt", []byte("first\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/b.txt", []byte("second\n"), 0644))

	inv := &Invocation{Args: []string{"cat", "a.txt", "b.txt"}, FS: fs, Dir: "/"}
	code := Cat(inv)

	assert.Equal(t, 0, code)
	assert.Equal(t, "first\nsecond\n", inv.Out())
}

func TestCatPipedInput(t *testing.T) {
	input := "from the pipe\n"
	inv := &Invocation{Args: []string{"cat"}, Input: &input, FS: afero.NewMemMapFs(), Dir: "/"}
	code := Cat(inv)

	assert.Equal(t, 0, code)
	assert.Equal(t, "from the pipe\n", inv.Out())
}
