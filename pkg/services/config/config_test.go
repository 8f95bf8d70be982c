package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8484", cfg.Addr())
	assert.Equal(t, "tally.db", cfg.Storage.Path)
	assert.Equal(t, time.Monday, cfg.WeekStartDay())
	assert.False(t, cfg.Tracking.ZeroIsEmpty)
	assert.True(t, cfg.Tracking.SeedDefaults)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_FromFile(t *testing.T) {
	content := `
server:
  host: 0.0.0.0
  port: "9000"
storage:
  path: /tmp/tally-test.db
tracking:
  week_start: sunday
  zero_is_empty: true
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Equal(t, "/tmp/tally-test.db", cfg.Storage.Path)
	assert.Equal(t, time.Sunday, cfg.WeekStartDay())
	assert.True(t, cfg.Tracking.ZeroIsEmpty)
}

func TestLoad_InvalidWeekStart(t *testing.T) {
	content := `
tracking:
  week_start: caturday
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}
