package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"git.lost.host/meutraa/riftvibe/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const session = "../testdata/example.json"

func isolate(t *testing.T) string {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestParseBuiltinDefaults(t *testing.T) {
	isolate(t)
	c, err := Parse([]string{"solve", "-a", session})
	require.NoError(t, err)

	assert.Equal(t, "solve", c.Command)
	assert.Equal(t, []string{session}, c.Files)
	assert.True(t, c.Candidates)
	assert.False(t, c.Save)
	assert.Equal(t, game.DefaultHitWindow, c.HitWindow)
	assert.Equal(t, game.DefaultBeatDivisions, c.BeatDivisions)
	assert.Equal(t, "./riftvibe.db", c.Database)
	assert.Equal(t, "auto", c.Color)
}

func TestParseDefaultsFile(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "riftvibe.yaml")
	require.NoError(t, ioutil.WriteFile(file, []byte("hit_window: 0.2\nbeat_divisions: 8\naddress: \":9000\"\njobs: 3\n"), 0644))

	c, err := Parse([]string{"--config", file, "serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", c.Command)
	assert.Equal(t, 0.2, c.HitWindow)
	assert.Equal(t, 8, c.BeatDivisions)
	assert.Equal(t, ":9000", c.Address)
	assert.Equal(t, 3, c.Jobs)
	assert.Equal(t, "./riftvibe.db", c.Database)

	// Flags win over the file
	c, err = Parse([]string{"-c", file, "--hit-window", "0", "batch", "-j", "2", "../testdata"})
	require.NoError(t, err)
	assert.Equal(t, "batch", c.Command)
	assert.Equal(t, 0.0, c.HitWindow)
	assert.Equal(t, 2, c.Jobs)
	assert.Equal(t, "../testdata", c.Directory)
}

func TestParseCommands(t *testing.T) {
	isolate(t)
	c, err := Parse([]string{"convert", session, "out.bin"})
	require.NoError(t, err)
	assert.Equal(t, session, c.In)
	assert.Equal(t, "out.bin", c.Out)

	c, err = Parse([]string{"history", session})
	require.NoError(t, err)
	assert.Equal(t, "history", c.Command)
	assert.Equal(t, session, c.In)

	_, err = Parse([]string{"solve", "missing.json"})
	assert.Error(t, err)

	_, err = Parse([]string{"--color", "sometimes", "solve", session})
	assert.Error(t, err)
}

func TestLoadDefaultsErrors(t *testing.T) {
	_, err := LoadDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, ioutil.WriteFile(file, []byte("jobs: [1"), 0644))
	_, err = LoadDefaults(file)
	assert.Error(t, err)
}
