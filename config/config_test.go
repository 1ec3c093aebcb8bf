package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/niksmo/shoe-store/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := config.LoadFile("")
		require.NoError(t, err)
		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
		assert.Equal(t, ":8080", cfg.HTTPServerAddr)
		assert.Equal(t, "https://dummyjson.com", cfg.Catalog.BaseURL)
		assert.Equal(t, []string{"mens-shoes", "womens-shoes"}, cfg.Catalog.Categories)
		assert.Equal(t, 10*time.Second, cfg.Catalog.RequestTimeout)
		assert.Equal(t, 1, cfg.Catalog.MaxAttempts)
		assert.False(t, cfg.BrokerEnabled())
	})

	t.Run("File", func(t *testing.T) {
		path := writeConfig(t, `
log_level: debug
http_server_addr: ":9090"
catalog:
  base_url: http://localhost:3000
  categories: [mens-shoes]
  request_timeout: 2s
  max_attempts: 3
broker:
  seed_brokers: [localhost:9092]
  schema_registry_urls: [http://localhost:8081]
  topics:
    cart_events: shop-cart-events
`)
		cfg, err := config.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.Equal(t, ":9090", cfg.HTTPServerAddr)
		assert.Equal(t, "http://localhost:3000", cfg.Catalog.BaseURL)
		assert.Equal(t, []string{"mens-shoes"}, cfg.Catalog.Categories)
		assert.Equal(t, 2*time.Second, cfg.Catalog.RequestTimeout)
		assert.Equal(t, 3, cfg.Catalog.MaxAttempts)
		assert.True(t, cfg.BrokerEnabled())
		assert.Equal(t, "shop-cart-events", cfg.Broker.Topics.CartEvents)
	})

	t.Run("EnvOverride", func(t *testing.T) {
		t.Setenv("SHOP_HTTP_SERVER_ADDR", ":7070")
		cfg, err := config.LoadFile("")
		require.NoError(t, err)
		assert.Equal(t, ":7070", cfg.HTTPServerAddr)
	})

	t.Run("UnknownKey", func(t *testing.T) {
		path := writeConfig(t, "sql_db: postgres://localhost\n")
		_, err := config.LoadFile(path)
		require.Error(t, err)
	})

	t.Run("BrokerWithoutRegistry", func(t *testing.T) {
		path := writeConfig(t, `
broker:
  seed_brokers: [localhost:9092]
`)
		_, err := config.LoadFile(path)
		require.ErrorIs(t, err, config.ErrNoSchemaRegistry)
	})

	t.Run("NoCategories", func(t *testing.T) {
		path := writeConfig(t, `
catalog:
  categories: []
`)
		_, err := config.LoadFile(path)
		require.ErrorIs(t, err, config.ErrNoCategories)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := config.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}
