package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-draft/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.StorageFile, cfg.Draft.Storage)
	assert.Equal(t, "invoiceData", cfg.Draft.StorageKey)
	assert.Equal(t, config.ItemIDsUUID, cfg.Draft.ItemIDs)
	assert.Contains(t, cfg.Draft.StorageDir, ".invoice-draft")
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.JWT.Enabled())
	assert.Equal(t, "en-US", cfg.Preview.Locale)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("DRAFT_STORAGE", "Memory")
	t.Setenv("DRAFT_STORAGE_KEY", "otra")
	t.Setenv("DRAFT_ITEM_IDS", "sequence")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorageMemory, cfg.Draft.Storage)
	assert.Equal(t, "otra", cfg.Draft.StorageKey)
	assert.Equal(t, config.ItemIDsSequence, cfg.Draft.ItemIDs)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.JWT.Enabled())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_BackendDesconocido(t *testing.T) {
	t.Setenv("DRAFT_STORAGE", "redis")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss:w/rd", DBName: "x", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%3Aw%2Frd@db:5432/x?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
