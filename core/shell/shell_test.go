package shell

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minsh/core/config"
	"minsh/core/env"
	"minsh/core/interp"
)

func testSession(t *testing.T) (*Session, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/home/amy", 0755))

	e := env.New([]string{"HOME=/home/amy", "USER=amy"})
	it := interp.New(e, fs, "/home/amy")

	out := &bytes.Buffer{}
	errout := &bytes.Buffer{}
	it.Stderr = errout

	s := New(it, config.Default())
	s.Out = out
	s.Errout = errout
	return s, out, errout
}

func TestFeedSingleLine(t *testing.T) {
	s, out, _ := testSession(t)

	exit := s.Feed("echo hello")
	assert.False(t, exit)
	assert.Equal(t, "hello\n", out.String())
}

func TestFeedMultiLineBlock(t *testing.T) {
	s, out, _ := testSession(t)

	assert.False(t, s.Feed("if echo yes"))
	assert.True(t, s.Collector.Pending())
	assert.False(t, s.Feed("then"))
	assert.False(t, s.Feed("echo branch"))
	assert.False(t, s.Feed("fi"))

	assert.False(t, s.Collector.Pending())
	assert.Equal(t, "yes\nbranch\n", out.String())
}

func TestFeedHistoryExpansion(t *testing.T) {
	s, out, _ := testSession(t)

	s.Feed("echo first")
	out.Reset()

	exit := s.Feed("!!")
	assert.False(t, exit)
	assert.Equal(t, "echo first\nfirst\n", out.String(),
		"the expanded line is echoed before running")
}

func TestFeedHistoryExpansionFailure(t *testing.T) {
	s, out, errout := testSession(t)

	exit := s.Feed("!veryunlikelyprefix")
	assert.False(t, exit)
	assert.Empty(t, out.String())
	assert.Equal(t, "minsh: !veryunlikelyprefix: event not found\n", errout.String())
}

func TestFeedRecordsWholeBlocks(t *testing.T) {
	s, _, _ := testSession(t)

	s.Feed("while echo never")
	s.Feed("do echo body")
	s.Feed("done")

	entries := s.Interp.Hist.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "while echo never; do echo body; done", entries[0])
}

func TestFeedErrorsGoToErrout(t *testing.T) {
	s, out, errout := testSession(t)

	exit := s.Feed("frobnicate")
	assert.False(t, exit)
	assert.Empty(t, out.String())
	assert.Equal(t, "minsh: frobnicate: command not found\n", errout.String())
}

func TestFeedExit(t *testing.T) {
	s, out, _ := testSession(t)

	exit := s.Feed("exit")
	assert.True(t, exit)
	assert.Equal(t, "good bye\n", out.String())
}

func TestConfigAliasesInstalled(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/home/amy", 0755))
	it := interp.New(env.New([]string{"HOME=/home/amy"}), fs, "/home/amy")

	cfg := config.Default()
	cfg.Aliases = map[string]string{"greet": "echo hi"}

	out := &bytes.Buffer{}
	s := New(it, cfg)
	s.Out = out

	s.Feed("greet")
	assert.Equal(t, "hi\n", out.String())
}

func TestRunScript(t *testing.T) {
	s, out, _ := testSession(t)

	script := "#!/usr/bin/env minsh\necho one\necho two\n"
	require.NoError(t, afero.WriteFile(s.Interp.FS, "/home/amy/run.sh", []byte(script), 0755))

	require.NoError(t, s.RunScript("/home/amy/run.sh"))
	assert.Equal(t, "one\ntwo\n", out.String())
}

func TestRunScriptStopsAtExit(t *testing.T) {
	s, out, _ := testSession(t)

	script := "echo before\nexit\necho after\n"
	require.NoError(t, afero.WriteFile(s.Interp.FS, "/home/amy/run.sh", []byte(script), 0755))

	require.NoError(t, s.RunScript("/home/amy/run.sh"))
	assert.Equal(t, "before\ngood bye\n", out.String())
}

func TestRunScriptUnterminatedBlock(t *testing.T) {
	s, _, _ := testSession(t)

	script := "if echo cond\nthen\necho body\n"
	require.NoError(t, afero.WriteFile(s.Interp.FS, "/home/amy/bad.sh", []byte(script), 0755))

	err := s.RunScript("/home/amy/bad.sh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated block")
	assert.False(t, s.Collector.Pending())
}

func TestRunScriptMissingFile(t *testing.T) {
	s, _, _ := testSession(t)
	require.Error(t, s.RunScript("/home/amy/nope.sh"))
}

func TestScriptGolden(t *testing.T) {
	s, out, errout := testSession(t)

	script := `#!/usr/bin/env minsh
echo start
write notes.txt alpha beta
cat notes.txt | grep alpha
for item in one two
do echo item $item
done
if grep alpha notes.txt
then
echo found
fi
function shout() { echo HEY $1; }
shout amy
echo end
`
	require.NoError(t, afero.WriteFile(s.Interp.FS, "/home/amy/demo.sh", []byte(script), 0755))

	require.NoError(t, s.RunScript("/home/amy/demo.sh"))
	assert.Empty(t, errout.String())

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)
	g.Assert(t, "script", out.Bytes())
}

func TestPromptFollowsCollectorState(t *testing.T) {
	s, _, _ := testSession(t)

	assert.Equal(t, "> ", s.prompt())
	s.Feed("if echo x")
	assert.Equal(t, ">> ", s.prompt())
	s.Collector.Reset()
	assert.Equal(t, "> ", s.prompt())
}
