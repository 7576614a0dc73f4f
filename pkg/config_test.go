package pkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ManouchehrRasoulli/fscommander/pkg/command"
	"github.com/ManouchehrRasoulli/fscommander/pkg/commandfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig_Defaults(t *testing.T) {
	c, err := ReadConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), c)

	c, err = ReadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err, "missing config file falls back to defaults.")
	require.Equal(t, DefaultConfig(), c)
	require.NoError(t, c.Validate())
}

func TestReadConfig_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yml")
	content := `
file: ./commands/input.txt
mode: replay
grammar: legacy
root: /srv/files
dedupe_appends: false
buffer_size: 5
verbose: true
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	c, err := ReadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, "./commands/input.txt", c.File)
	assert.Equal(t, "replay", c.Mode)
	assert.Equal(t, "legacy", c.Grammar)
	assert.Equal(t, "/srv/files", c.Root)
	assert.False(t, c.DedupeAppends)
	assert.True(t, c.SkipExisting, "unset keys keep their default.")
	assert.Equal(t, int32(5), c.BufferSize)
	assert.True(t, c.Verbose)
	require.NoError(t, c.Validate())
}

func TestReadConfig_Malformed(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(file, []byte("mode: [tail"), 0o644))

	_, err := ReadConfig(file)
	require.Error(t, err)
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv("FSCOMMANDER_FILE", "/tmp/cmd.txt")
	t.Setenv("FSCOMMANDER_MODE", "replay")
	t.Setenv("FSCOMMANDER_DEDUPE_APPENDS", "false")

	c := DefaultConfig()
	c.Grammar = "legacy"
	require.NoError(t, c.ApplyEnv())

	assert.Equal(t, "/tmp/cmd.txt", c.File)
	assert.Equal(t, "replay", c.Mode)
	assert.False(t, c.DedupeAppends)
	assert.Equal(t, "legacy", c.Grammar, "unset variables keep the current value.")

	t.Setenv("FSCOMMANDER_BUFFER_SIZE", "many")
	require.Error(t, c.ApplyEnv())
}

func TestConfig_Validate(t *testing.T) {
	c := DefaultConfig()
	c.Mode = "diff"
	require.ErrorIs(t, c.Validate(), commandfile.ErrInvalidMode)

	c = DefaultConfig()
	c.Grammar = "fuzzy"
	require.ErrorIs(t, c.Validate(), command.ErrInvalidGrammar)

	c = DefaultConfig()
	c.File = ""
	require.Error(t, c.Validate())

	c = DefaultConfig()
	c.BufferSize = 0
	require.Error(t, c.Validate())
}
