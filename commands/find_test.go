package commands

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchesPattern(t *testing.T) {
	cases := []struct {
		name    string
		pattern string
		want    bool
	}{
		{"notes.txt", "*.txt", true},
		{"notes.txt", "notes.*", true},
		{"notes.txt", "*.md", false},
		{"a.go", "?.go", true},
		{"ab.go", "?.go", false},
		{"anything", "*", true},
		{"exact", "exact", true},
		{"exact", "exac?", true},
		{"", "*", true},
		{"", "?", false},
		{"abc", "a*c", true},
		{"ac", "a*c", true},
		{"abd", "a*c", false},
	}

	for _, tc := range cases {
		t.Run(tc.name+"/"+tc.pattern, func(t *testing.T) {
			assert.Equal(t, tc.want, matchesPattern(tc.name, tc.pattern))
		})
	}
}

func TestFindWalksTree(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/top.txt", nil, 0644))
	require.NoError(t, afero.WriteFile(fs, "/work/sub/deep.txt", nil, 0644))
	require.NoError(t, afero.WriteFile(fs, "/work/sub/other.md", nil, 0644))

	inv := &Invocation{Args: []string{"find", "*.txt"}, FS: fs, Dir: "/work"}
	code := Find(inv)

	assert.Equal(t, 0, code)
	assert.Contains(t, inv.Out(), "top.txt")
	assert.Contains(t, inv.Out(), "sub/deep.txt")
	assert.NotContains(t, inv.Out(), "other.md")
}

func TestFindExplicitDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/sub/deep.txt", nil, 0644))
	require.NoError(t, afero.WriteFile(fs, "/work/skip.txt", nil, 0644))

	inv := &Invocation{Args: []string{"find", "sub", "*.txt"}, FS: fs, Dir: "/work"}
	code := Find(inv)

	assert.Equal(t, 0, code)
	assert.Contains(t, inv.Out(), "sub/deep.txt")
	assert.NotContains(t, inv.Out(), "skip.txt")
}

func TestFindMissingDir(t *testing.T) {
	inv := &Invocation{Args: []string{"find", "nowhere", "*"}, FS: afero.NewMemMapFs(), Dir: "/"}
	code := Find(inv)

	assert.Equal(t, 1, code)
	assert.Contains(t, inv.ErrOut(), "nowhere")
}
