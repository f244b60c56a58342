package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPublic = `
log_level: debug
api:
  addr: ":8080"
  allowed_origins: ["http://localhost:8081"]
frontend:
  addr: ":8081"
  api_base_url: "http://localhost:8080"
upstream:
  base_url: "http://auth.internal:9000"
`

func writeConfig(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public.yaml"), []byte(public), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "private.yaml"), []byte(private), 0o600))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := writeConfig(t, validPublic, "activity_key: 'k'\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.RefreshThreshold())
	assert.Equal(t, DefaultUpstreamTimeout, cfg.UpstreamTimeout())
	assert.Equal(t, "memory", cfg.Public.Activity.Driver)
	assert.Equal(t, DefaultHelloMessage, cfg.Public.API.HelloMessage)
	assert.Equal(t, DefaultActivityLimit, cfg.Public.Frontend.ActivityLimit)
	assert.Equal(t, DefaultRetention, cfg.Public.Activity.Retention)
	assert.Equal(t, time.Hour, cfg.Public.Activity.SweepInterval)
	assert.Equal(t, []string{"http://localhost:8081"}, cfg.Public.API.AllowedOrigins)
	assert.Equal(t, "k", cfg.Private.ActivityKey)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := writeConfig(t, validPublic, "")
	t.Setenv("ADMISSIBLE_UPSTREAM_URL", "https://abc.execute-api.example.com")
	t.Setenv("ADMISSIBLE_REFRESH_THRESHOLD", "30s")
	t.Setenv("ADMISSIBLE_ACTIVITY_KEY", "from-env")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://abc.execute-api.example.com", cfg.Public.Upstream.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.RefreshThreshold())
	assert.Equal(t, "from-env", cfg.Private.ActivityKey)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("missing upstream", func(t *testing.T) {
		dir := writeConfig(t, "api:\n  addr: ':8080'\nfrontend:\n  addr: ':8081'\n  api_base_url: 'http://localhost:8080'\n", "")
		_, err := Load(dir)
		assert.Error(t, err)
	})

	t.Run("unknown activity driver", func(t *testing.T) {
		dir := writeConfig(t, validPublic+"activity:\n  driver: mongo\n", "")
		_, err := Load(dir)
		assert.Error(t, err)
	})

	t.Run("sqlite without path", func(t *testing.T) {
		dir := writeConfig(t, validPublic+"activity:\n  driver: sqlite\n", "")
		_, err := Load(dir)
		assert.Error(t, err)
	})
}

func TestMustLoad_MissingFile(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic due to missing config file, got none")
		}
	}()

	_ = MustLoad(t.TempDir())
}

func TestLoad_TrustedProxies(t *testing.T) {
	withProxies := func(list string) string {
		return strings.Replace(validPublic, "api:\n", "api:\n  trusted_proxies: "+list+"\n", 1)
	}

	dir := writeConfig(t, withProxies(`["127.0.0.1", "10.0.0.0/8"]`), "")
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1", "10.0.0.0/8"}, cfg.Public.API.TrustedProxies)

	dir = writeConfig(t, withProxies(`["frontend"]`), "")
	_, err = Load(dir)
	assert.Error(t, err)
}
