package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashquiz/internal/session"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "Questions", cfg.SetsDir)
	assert.Empty(t, cfg.ArchivePath)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, session.Config{}, cfg.Session.SessionConfig())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flashquiz.yaml")
	content := `
env: production
sets_dir: /srv/sets
log_file: /tmp/fq.log
session:
  learn_mode: true
  randomize: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "/srv/sets", cfg.SetsDir)
	assert.Equal(t, "/tmp/fq.log", cfg.LogFile)
	assert.Equal(t, session.Config{LearnMode: true, Randomize: true}, cfg.Session.SessionConfig())
}

func TestLoad_XDGConfigHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "flashquiz"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, "flashquiz", "flashquiz.yaml"), []byte("sets_dir: decks\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "decks", cfg.SetsDir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("FLASHQUIZ_SETS_DIR", "/env/sets")
	t.Setenv("FLASHQUIZ_SESSION_TIMED", "true")
	t.Setenv("FLASHQUIZ_SESSION_NO_FAIL", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/env/sets", cfg.SetsDir)
	assert.True(t, cfg.Session.Timed)
	assert.True(t, cfg.Session.NoFail)
}

func TestLoad_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flashquiz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sets_dir: [unterminated\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
