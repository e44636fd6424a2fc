package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{
		"DRILLQ_CONFIG", "DRILLQ_DB", "DRILLQ_CATALOG", "DRILLQ_ANSWER_TIMEOUT",
		"DRILLQ_KEEP_SESSIONS", "DRILLQ_LOG_LEVEL", "DRILLQ_LOG_FORMAT", "DRILLQ_LOG_FILE",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 20*time.Second, cfg.Drill.AnswerTimeout)
	assert.Equal(t, 5, cfg.Drill.KeepSessions)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Store.DBPath)
	assert.Empty(t, cfg.Catalog.Path)
}

func TestLoad_YAMLAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "drillq", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  db_path: /tmp/drills.db
drill:
  answer_timeout: 45s
log:
  level: debug
`), 0o644))

	t.Setenv("DRILLQ_KEEP_SESSIONS", "9")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/drills.db", cfg.Store.DBPath)
	assert.Equal(t, 45*time.Second, cfg.Drill.AnswerTimeout)
	assert.Equal(t, 9, cfg.Drill.KeepSessions)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	dir := isolate(t)
	t.Setenv("DRILLQ_CONFIG", filepath.Join(dir, "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DRILLQ_CATALOG=/data/custom.json\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("DRILLQ_CATALOG") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/custom.json", cfg.Catalog.Path)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Drill: DrillConfig{AnswerTimeout: time.Second, KeepSessions: 1},
			Log:   LogConfig{Level: "info", Format: "json"},
		}
	}

	tests := []struct {
		name    string
		mod     func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"zero timeout", func(c *Config) { c.Drill.AnswerTimeout = 0 }, true},
		{"negative timeout", func(c *Config) { c.Drill.AnswerTimeout = -time.Second }, true},
		{"zero keep", func(c *Config) { c.Drill.KeepSessions = 0 }, true},
		{"unknown level", func(c *Config) { c.Log.Level = "trace" }, true},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mod(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
