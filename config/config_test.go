package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audimew-storefront/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "remote:\n  base_url: \"https://audimew.shop/api\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://audimew.shop/api", cfg.Remote.BaseURL)
	assert.Equal(t, "https://audimew.shop/api", cfg.Remote.ImageBaseURL)
	assert.Equal(t, 30*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, 12, cfg.Catalog.PageSize)
	assert.Equal(t, 10, cfg.Events.PageSize)
	assert.Equal(t, []string{"전체", "헤드셋", "이어폰", "스피커", "앰프"}, cfg.Catalog.Categories)
	assert.Equal(t, []string{"전체", "뮤지컬", "연극", "클래식", "콘서트"}, cfg.Events.Categories)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, "sid", cfg.Session.CookieName)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, model.AllCategory, cfg.Catalog.Categories[0])
	assert.Equal(t, model.AllCategory, cfg.Events.Categories[0])
	assert.Equal(t, 8089, cfg.DevAPI.Port)
	assert.Equal(t, 1000, cfg.DevAPI.Mirror.MaxPages)
	assert.Equal(t, 30*time.Minute, cfg.DevAPI.Mirror.Interval)
	assert.Equal(t, 4, cfg.DevAPI.Mirror.Workers)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\ncatalog:\n  page_size: 24\n")
	t.Setenv("STOREFRONT_SERVER_PORT", "9100")
	t.Setenv("STOREFRONT_REMOTE_BASE_URL", "http://backend:8080/api")
	t.Setenv("STOREFRONT_EVENTS_CATEGORIES", "전체,콘서트")
	t.Setenv("STOREFRONT_DEVAPI_MIRROR_SOURCE_URL", "https://audimew.shop/api")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 24, cfg.Catalog.PageSize)
	assert.Equal(t, "http://backend:8080/api", cfg.Remote.BaseURL)
	assert.Equal(t, []string{"전체", "콘서트"}, cfg.Events.Categories)
	assert.Equal(t, "https://audimew.shop/api", cfg.DevAPI.Mirror.SourceURL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
