package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
	assert.False(t, cfg.DB.Enabled(), "sin DB_HOST ni DATABASE_URL se usa el registro en memoria")
	assert.False(t, cfg.MinIO.Enabled())
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "impilo-dashboard", cfg.Tracing.ServiceName)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("IMPILO_API_BASE_URL", "http://192.168.1.175:8080/api/")
	v.Set("IMPILO_API_TIMEOUT_SECONDS", "5")
	v.Set("HTTP_PORT", "9090")
	v.Set("DB_HOST", "db")
	v.Set("DB_PASSWORD", "p@ss/word")
	v.Set("MINIO_ENDPOINT", "minio:9000")
	v.Set("MINIO_BUCKET", "reports")
	v.Set("MINIO_USE_SSL", "true")
	v.Set("TRACING_ENABLED", "true")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "http://192.168.1.175:8080/api", cfg.API.BaseURL, "se elimina la barra final")
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.DB.Enabled())
	assert.Equal(t, "postgres://postgres:p%40ss%2Fword@db:5432/impilo_dashboard?sslmode=disable", cfg.DB.ConnectionString())
	assert.True(t, cfg.MinIO.Enabled())
	assert.True(t, cfg.MinIO.UseSSL)
	assert.True(t, cfg.Tracing.Enabled)
}

func TestFromViper_TimeoutInvalido(t *testing.T) {
	v := viper.New()
	v.Set("IMPILO_API_TIMEOUT_SECONDS", "0")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("IMPILO_API_TOKEN", "service-token")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "service-token", cfg.API.Token)
}
