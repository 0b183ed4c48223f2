package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "EUR", cfg.BaseCurrency)
	assert.Equal(t, 3, cfg.SettlementMaxRetries)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.AutoMigrate)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("BASE_CURRENCY", "usd")
	t.Setenv("SETTLEMENT_MAX_RETRIES", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, "USD", cfg.BaseCurrency)
	assert.Equal(t, 5, cfg.SettlementMaxRetries)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown driver", "STORAGE_DRIVER", "sqlite"},
		{"bad base currency", "BASE_CURRENCY", "EURO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := load(viper.New())
			assert.Error(t, err)
		})
	}
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("IS_PRODUCTION", "true")
	_, err := load(viper.New())
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "prod-secret")
	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction)
}

func TestInvalidRetriesFallsBack(t *testing.T) {
	t.Setenv("SETTLEMENT_MAX_RETRIES", "0")
	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.SettlementMaxRetries)
}
