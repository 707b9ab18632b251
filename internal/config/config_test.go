package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// chdir changes the working directory for the duration of the test,
// matching testing.T.Chdir (Go 1.24+) on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(env(map[string]string{
		"CALCPAD_ADDR":        ":9090",
		"CALCPAD_STORE":       "redis",
		"CALCPAD_REDIS_ADDR":  "redis:6379",
		"CALCPAD_REDIS_DB":    "3",
		"CALCPAD_SESSION_TTL": "90m",
		"CALCPAD_TELEMETRY":   "true",
		"CALCPAD_LOG_LEVEL":   "debug",
		"OTEL_SERVICE_NAME":   "keypad",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.Telemetry)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "keypad", cfg.ServiceName)
}

func TestApplyEnvIgnoresEmptyValues(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.applyEnv(env(map[string]string{"CALCPAD_ADDR": ""})))
	assert.Equal(t, ":8080", cfg.Addr)
}

func TestApplyEnvRejectsMalformedValues(t *testing.T) {
	for key, value := range map[string]string{
		"CALCPAD_REDIS_DB":    "zero",
		"CALCPAD_SESSION_TTL": "a while",
		"CALCPAD_TELEMETRY":   "sometimes",
	} {
		cfg := Default()
		err := cfg.applyEnv(env(map[string]string{key: value}))
		assert.ErrorContains(t, err, key)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Store = "sqlite"
	cfg.LogLevel = "loud"
	cfg.SessionTTL = -time.Second

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, `unknown store "sqlite"`)
	assert.ErrorContains(t, err, "log level")
	assert.ErrorContains(t, err, "session ttl")
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "calcpad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":7000"
store: redis
session_ttl: 10m
redis:
  addr: "cache:6379"
  db: 2
`), 0o644))

	t.Setenv("CALCPAD_ADDR", ":7001")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7001", cfg.Addr, "environment wins over the file")
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "calcpad:session:", cfg.Redis.Prefix, "unset keys keep defaults")
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CALCPAD_LOG_LEVEL=debug\nCALCPAD_REDIS_PREFIX=dotenv:\n"), 0o644))
	t.Setenv("CALCPAD_LOG_LEVEL", "error")
	t.Setenv("CALCPAD_REDIS_PREFIX", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")
}
