package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DELIVERY_FEE", "")
	t.Setenv("CART_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, "2.99", cfg.DeliveryFee.StringFixed(2))
	assert.Equal(t, 7*24*time.Hour, cfg.CartTTL)
	assert.Equal(t, "donerci.activities", cfg.KafkaActivityTopic)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DELIVERY_FEE", "3.50")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://donerci.com,")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "3.50", cfg.DeliveryFee.StringFixed(2))
	assert.Equal(t, []string{"http://localhost:5173", "https://donerci.com"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestLoadRejectsBadFee(t *testing.T) {
	t.Setenv("DELIVERY_FEE", "free")
	_, err := Load()
	assert.ErrorContains(t, err, "DELIVERY_FEE")

	t.Setenv("DELIVERY_FEE", "-1")
	_, err = Load()
	assert.ErrorContains(t, err, "negative")
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "donerci.yaml")
	require.NoError(t, os.WriteFile(file, []byte("KAFKA_ACTIVITY_TOPIC: audit\nCART_TTL: 60\n"), 0o600))
	t.Setenv("CONFIG_FILE", file)
	t.Setenv("CART_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "audit", cfg.KafkaActivityTopic)
	assert.Equal(t, time.Minute, cfg.CartTTL)
}
