package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/artillery-calculator/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeServerConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultServerAddress, cfg.Address)
	assert.Equal(t, constants.DefaultMaxBodySizeBytes, cfg.BodySizeBytes())
	assert.Equal(t, constants.DefaultShutdownTimeoutSeconds*time.Second, cfg.ShutdownTimeoutDuration())
	assert.Empty(t, cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.Format)
	assert.Empty(t, cfg.Logging.OutputFile)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultServerAddress, cfg.Address)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeServerConfig(t, `address: 127.0.0.1:9000
maxBodySize: 2M
shutdownTimeout: 5s
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Address)
	assert.Equal(t, int64(2*1024*1024), cfg.BodySizeBytes())
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeoutDuration())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "/tmp/server.log", cfg.Logging.OutputFile)
}

func TestLoadConfigInvalidSize(t *testing.T) {
	_, err := LoadConfig(writeServerConfig(t, "maxBodySize: invalid"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidShutdownTimeout(t *testing.T) {
	_, err := LoadConfig(writeServerConfig(t, "shutdownTimeout: soon"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidYaml(t *testing.T) {
	_, err := LoadConfig(writeServerConfig(t, "address: [unterminated"))
	assert.Error(t, err)
}

func TestSetBodySizeBytes(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	cfg.SetBodySizeBytes(1024)
	assert.Equal(t, int64(1024), cfg.BodySizeBytes())
	assert.Equal(t, "1024", cfg.MaxBodySize)

	cfg.SetBodySizeBytes(0)
	assert.Equal(t, int64(1024), cfg.BodySizeBytes())
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":          constants.DefaultMaxBodySizeBytes,
		"1024":      1024,
		"512b":      512,
		"256K":      256 * 1024,
		"1m":        1024 * 1024,
		"3MB":       3 * 1024 * 1024,
		"2G":        2 * 1024 * 1024 * 1024,
		"  4096   ": 4096,
	}

	for input, expected := range tests {
		got, err := ParseSize(input)
		require.NoError(t, err, "ParseSize(%q)", input)
		assert.Equal(t, expected, got, "ParseSize(%q)", input)
	}

	_, err := ParseSize("1TB")
	assert.Error(t, err, "expected error for unsupported unit")
	_, err = ParseSize("abc")
	assert.Error(t, err, "expected error for invalid number")
}
