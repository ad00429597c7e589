package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), "/home/amy/.minsh.yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFullConfiguration(t *testing.T) {
	fs := afero.NewMemMapFs()
	doc := `prompt: "minsh$ "
history_file: /tmp/hist
history_limit: 50
loop_limit: 10
aliases:
  ll: ls
`
	require.NoError(t, afero.WriteFile(fs, "/cfg.yaml", []byte(doc), 0644))

	cfg, err := Load(fs, "/cfg.yaml")
	require.NoError(t, err)
	assert.Equal(t, "minsh$ ", cfg.Prompt)
	assert.Equal(t, "/tmp/hist", cfg.HistoryFile)
	assert.Equal(t, 50, cfg.HistoryLimit)
	assert.Equal(t, 10, cfg.LoopLimit)
	assert.Equal(t, map[string]string{"ll": "ls"}, cfg.Aliases)
}

func TestLoadPartialConfigurationKeepsDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg.yaml", []byte("history_limit: 5\n"), 0644))

	cfg, err := Load(fs, "/cfg.yaml")
	require.NoError(t, err)
	assert.Equal(t, "> ", cfg.Prompt)
	assert.Equal(t, 5, cfg.HistoryLimit)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg.yaml", []byte("promt: oops\n"), 0644))

	_, err := Load(fs, "/cfg.yaml")
	require.Error(t, err)
}

func TestValidateRejectsNegativeLimits(t *testing.T) {
	cfg := Default()
	cfg.HistoryLimit = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history_limit")
}
