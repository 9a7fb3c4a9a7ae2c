package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.Equal(t, "repairdesk", cfg.System.Appid)
	require.Equal(t, 1899, cfg.Web.Port)
	require.Equal(t, "2580", cfg.System.Passkey)
	require.False(t, cfg.Database.Enabled)
}

func TestLoadConfigFile(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "repairdesk.yml")
	content := `
system:
  passkey: "9999"
web:
  port: 8080
forward:
  endpoint: http://example.com/submit
`
	require.NoError(t, os.WriteFile(cfile, []byte(content), 0644))

	cfg := LoadConfig(cfile)
	require.Equal(t, "9999", cfg.System.Passkey)
	require.Equal(t, 8080, cfg.Web.Port)
	require.Equal(t, "http://example.com/submit", cfg.Forward.Endpoint)
	// unset values keep defaults
	require.Equal(t, "repairdesk.db", cfg.Storage.Filename)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("REPAIRDESK_SYSTEM_PASSKEY", "0007")
	cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.Equal(t, "0007", cfg.System.Passkey)
}

func TestStoragePath(t *testing.T) {
	cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	cfg.System.Workdir = "/tmp/rd"
	require.Equal(t, "/tmp/rd/data/repairdesk.db", cfg.StoragePath())

	cfg.Storage.Filename = "/abs/path.db"
	require.Equal(t, "/abs/path.db", cfg.StoragePath())
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "repairdesk.yml")
	require.NoError(t, WriteDefault(cfile))

	cfg := LoadConfig(cfile)
	require.Equal(t, DefaultAppConfig.Web.Port, cfg.Web.Port)
	require.Equal(t, DefaultAppConfig.System.Passkey, cfg.System.Passkey)
}
