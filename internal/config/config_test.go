package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "formulabot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "", cfg.Token)
	require.Equal(t, "data/formulabot.db", cfg.Database)
	require.Equal(t, 60, cfg.PollTimeout)
	require.Equal(t, Anchor{}, cfg.Anchor)
	require.Equal(t, slog.LevelInfo, cfg.Level())
	require.ErrorIs(t, cfg.Validate(), ErrNoToken)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
token: abc
database: /tmp/f.db
poll_timeout: 30
anchor:
  x: 3
  y: 7
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "abc", cfg.Token)
	require.Equal(t, "/tmp/f.db", cfg.Database)
	require.Equal(t, 30, cfg.PollTimeout)
	require.Equal(t, Anchor{X: 3, Y: 7}, cfg.Anchor)
	require.Equal(t, slog.LevelDebug, cfg.Level())
	require.NoError(t, cfg.Validate())
}

func TestLoad_CurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "formulabot.yaml"), []byte("token: local\n"), 0o644))
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "local", cfg.Token)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "token: abc\nanchor:\n  x: 3\n")
	t.Setenv("FORMULABOT_TOKEN", "from-env")
	t.Setenv("FORMULABOT_ANCHOR_X", "9")
	t.Setenv("FORMULABOT_POLL_TIMEOUT", "5")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.Token)
	require.Equal(t, 9, cfg.Anchor.X)
	require.Equal(t, 5, cfg.PollTimeout)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate_NegativeTimeout(t *testing.T) {
	cfg := &Config{Token: "t", PollTimeout: -1}
	require.Error(t, cfg.Validate())
}
