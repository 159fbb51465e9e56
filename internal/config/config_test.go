package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"WORDSOLVER_CONFIG", "LOG_LEVEL", "WORDSOLVER_HEURISTIC", "WORDSOLVER_OPENER",
		"LEXICON_DB", "DAILY_SALT", "PORT", "CLIENT_ORIGIN", "JWT_SECRET", "API_KEY_HASH",
		"WORDSOLVER_LENGTH", "WORDSOLVER_BUDGET", "WORDSOLVER_WORKERS", "WORDSOLVER_HARD_MODE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "wordsolver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
solver:
  length: 6
  heuristic: entropy
  hard_mode: false
  budget: 50
server:
  port: "8080"
  token_ttl: 1h
`), 0o644))
	t.Setenv("WORDSOLVER_HEURISTIC", "minimax")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 6, cfg.Solver.Length)
	assert.Equal(t, "minimax", cfg.Solver.Heuristic)
	assert.False(t, cfg.Solver.HardMode)
	assert.Equal(t, 50, cfg.Solver.Budget)
	assert.Equal(t, 0.5, cfg.Solver.Penalty, "unset keys keep defaults")
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Server.TokenTTL)
	assert.Equal(t, "s3cret", cfg.Server.JWTSecret)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "explicit path must exist")

	t.Setenv("WORDSOLVER_LENGTH", "abc")
	_, err = Load("")
	assert.Error(t, err)

	t.Setenv("WORDSOLVER_LENGTH", "40")
	_, err = Load("")
	assert.ErrorContains(t, err, "invalid config")

	t.Setenv("WORDSOLVER_LENGTH", "")
	t.Setenv("WORDSOLVER_HARD_MODE", "maybe")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Batch.Percent = 150
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Solver.Opener = "cr4ne"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())
}
