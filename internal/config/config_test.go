package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost:50151", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, ":memory:", cfg.Store.DSN)
	assert.Equal(t, 3, cfg.Gate.MinQuestionRunes)
	assert.Equal(t, 120, cfg.Gate.MaxQuestionRunes)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: 0.0.0.0:9000
  request_timeout: 2s
gate:
  max_question_runes: 80
logging:
  level: debug
  format: console
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 3, cfg.Gate.MinQuestionRunes, "unset keys keep defaults")
	assert.Equal(t, 80, cfg.Gate.MaxQuestionRunes)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestExampleConfigMatchesDefaults(t *testing.T) {
	for _, k := range []string{"ORB_ADDR", "ORB_DB", "ORB_LOG_LEVEL", "ORB_LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	cfg, err := Load(filepath.Join("..", "..", "orb.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ORB_ADDR", "127.0.0.1:7000")
	t.Setenv("ORB_DB", "file:orb.db")
	t.Setenv("ORB_LOG_LEVEL", "warn")
	t.Setenv("ORB_LOG_FORMAT", "console")

	path := writeConfig(t, "server:\n  addr: ignored:1\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
	assert.Equal(t, "file:orb.db", cfg.Store.DSN)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("inverted gate bounds", func(t *testing.T) {
		_, err := Load(writeConfig(t, "gate:\n  min_question_runes: 10\n  max_question_runes: 5\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_question_runes")
	})

	t.Run("zero timeout", func(t *testing.T) {
		cfg := Default()
		cfg.Server.RequestTimeout = 0
		assert.Error(t, cfg.Validate())
	})
}
