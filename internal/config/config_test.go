package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivetools/petabox/pkg/archive"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "petabox.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `
base_url   = "https://archive.example.com"
user_agent = "my-tool <me@example.com>"
timeout    = "45s"
access_key = "filekey"
secret_key = "filesecret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://archive.example.com", cfg.BaseURL)
	assert.Equal(t, "my-tool <me@example.com>", cfg.UserAgent)
	assert.Equal(t, "45s", cfg.Timeout)
	assert.Equal(t, "filekey", cfg.AccessKey)
}

func TestLoad_BadFile(t *testing.T) {
	path := writeConfigFile(t, `base_url = `)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfigArchive(t *testing.T) {
	cfg := &Config{
		BaseURL: "https://archive.example.com",
		Timeout: "45s",
	}

	out, err := cfg.Archive()
	require.NoError(t, err)

	assert.Equal(t, "https://archive.example.com", out.BaseURL)
	assert.Equal(t, 45*time.Second, out.Timeout)

	// Unset fields pick up defaults.
	def := archive.DefaultConfig()
	assert.Equal(t, def.S3URL, out.S3URL)
	assert.Equal(t, def.DownloadURL, out.DownloadURL)
	assert.Equal(t, def.CatalogURL, out.CatalogURL)
}

func TestConfigArchive_BadTimeout(t *testing.T) {
	cfg := &Config{Timeout: "soon"}

	_, err := cfg.Archive()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timeout")
}

func TestConfigCredentials(t *testing.T) {
	t.Run("from file", func(t *testing.T) {
		t.Setenv(archive.EnvAccessKey, "envkey")
		t.Setenv(archive.EnvSecretKey, "envsecret")

		cfg := &Config{AccessKey: "filekey", SecretKey: "filesecret"}
		creds := cfg.Credentials()
		require.NotNil(t, creds)
		assert.Equal(t, "filekey", creds.Access)
	})

	t.Run("fallback to environment", func(t *testing.T) {
		t.Setenv(archive.EnvAccessKey, "envkey")
		t.Setenv(archive.EnvSecretKey, "envsecret")

		cfg := &Config{}
		creds := cfg.Credentials()
		require.NotNil(t, creds)
		assert.Equal(t, "envkey", creds.Access)
	})

	t.Run("absent everywhere", func(t *testing.T) {
		t.Setenv(archive.EnvAccessKey, "")
		t.Setenv(archive.EnvSecretKey, "")

		cfg := &Config{AccessKey: "filekey"}
		assert.Nil(t, cfg.Credentials())
	})
}
