package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"inspection-report/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("INSPECTION_CONFIG", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "Asia/Seoul", cfg.Timezone)
	assert.Equal(t, "inspection-reports", cfg.SupabaseStorageBucket)
	assert.False(t, cfg.UseSupabase())
	assert.Equal(t, "Asia/Seoul", cfg.Location().String())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("INSPECTION_CONFIG", "")

	_, err := config.Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_YAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database_driver: sqlite3\ndatabase_url: file.db\nport: \"9090\"\n"), 0o600))

	t.Setenv("DATABASE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("INSPECTION_CONFIG", path)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", cfg.DatabaseDriver)
	assert.Equal(t, "file.db", cfg.DatabaseURL)
	assert.Equal(t, "9090", cfg.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{"postgres without url", config.Config{DatabaseDriver: "postgres", JWTSecret: "s", Timezone: "UTC"}, "DATABASE_URL"},
		{"unknown driver", config.Config{DatabaseDriver: "mysql", JWTSecret: "s", Timezone: "UTC"}, "unsupported"},
		{"supabase without key", config.Config{DatabaseDriver: "memory", JWTSecret: "s", Timezone: "UTC", SupabaseURL: "https://x.supabase.co"}, "SUPABASE_PUBLISHABLE_KEY"},
		{"bad timezone", config.Config{DatabaseDriver: "memory", JWTSecret: "s", Timezone: "Nowhere/Land"}, "TIMEZONE"},
		{"valid", config.Config{DatabaseDriver: "memory", JWTSecret: "s", Timezone: "UTC"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
