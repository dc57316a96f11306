package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuparse/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "docuparse", cfg.JWT.Issuer)
	assert.Equal(t, "eng", cfg.OCR.Language)
	assert.Equal(t, 4, cfg.Pipeline.PageConcurrency)
	assert.Equal(t, 50, cfg.Pipeline.MaxPages)
	assert.Len(t, cfg.CORS.AllowedOrigins, 2)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DOCUPARSE_DB_HOST", "db.internal")
	t.Setenv("DOCUPARSE_DB_PASSWORD", "s3cret")
	t.Setenv("DOCUPARSE_PIPELINE_PAGE_CONCURRENCY", "8")
	t.Setenv("DOCUPARSE_OCR_LANGUAGE", "eng+ara")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "s3cret", cfg.DB.Password)
	assert.Equal(t, 8, cfg.Pipeline.PageConcurrency)
	assert.Equal(t, "eng+ara", cfg.OCR.Language)
}

func TestDSN(t *testing.T) {
	db := config.DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "docuparse",
		Password: "pw",
		Name:     "docuparse_db",
		SSLMode:  "disable",
	}
	assert.Equal(t, "postgres://docuparse:pw@localhost:5432/docuparse_db?sslmode=disable", db.DSN())
}

func TestPortEnvFallback(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestExplicitPortWinsOverPlatformPort(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DOCUPARSE_SERVER_PORT", ":7070")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Port)
}
