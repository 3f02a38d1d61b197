package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Delete.ConfirmTTL)
	assert.Equal(t, "organon.feed", cfg.NATS.SubjectPrefix)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "valid default config", modify: func(c *Config) {}},
		{name: "sqlite driver", modify: func(c *Config) { c.Database.Driver = "sqlite" }},
		{name: "unknown driver", modify: func(c *Config) { c.Database.Driver = "mongo" }, wantErr: true},
		{name: "missing port", modify: func(c *Config) { c.Server.Port = "" }, wantErr: true},
		{name: "zero token ttl", modify: func(c *Config) { c.Auth.TokenTTL = 0 }, wantErr: true},
		{name: "negative confirm ttl", modify: func(c *Config) { c.Delete.ConfirmTTL = -time.Second }, wantErr: true},
		{name: "bad timezone", modify: func(c *Config) { c.Timezone = "Mars/Olympus" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "organon.yaml")
	content := `
server:
  port: "9090"
database:
  driver: sqlite
  dsn: "file:test.db"
delete:
  confirm_ttl: 2m
nats:
  url: "nats://localhost:4222"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 2*time.Minute, cfg.Delete.ConfirmTTL)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	// untouched sections keep their defaults
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("PORT", "7000")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
