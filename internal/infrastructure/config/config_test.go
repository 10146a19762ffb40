package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	keys := []string{
		"QRMENU_APP_NAME",
		"QRMENU_APP_ENV",
		"QRMENU_APP_PORT",
		"QRMENU_DATABASE_DRIVER",
		"QRMENU_DATABASE_PATH",
		"QRMENU_DATABASE_MAX_OPEN_CONNS",
		"QRMENU_DATABASE_MAX_IDLE_CONNS",
		"QRMENU_DATABASE_AUTO_MIGRATE",
		"QRMENU_JWT_SECRET",
		"QRMENU_JWT_EXPIRATION",
		"QRMENU_STORAGE_DRIVER",
		"QRMENU_STORAGE_S3_BUCKET",
		"QRMENU_HTTP_CORS_ALLOW_ORIGINS",
		"QRMENU_QR_PUBLIC_MENU_URL",
		"QRMENU_BOOTSTRAP_ADMIN_PASSWORD",
		"QRMENU_TELEMETRY_SAMPLING_RATIO",
	}

	originalEnv := make(map[string]string, len(keys))
	for _, k := range keys {
		originalEnv[k] = os.Getenv(k)
	}
	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for _, k := range keys {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()
		os.Setenv("QRMENU_JWT_SECRET", "dev-secret")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "qrmenu-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "5000", cfg.App.Port)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "restaurant.db", cfg.Database.Path)
		assert.True(t, cfg.Database.AutoMigrate)
		assert.Equal(t, 8*time.Hour, cfg.JWT.Expiration)
		assert.Equal(t, "local", cfg.Storage.Driver)
		assert.Equal(t, "uploads", cfg.Storage.LocalDir)
		assert.Equal(t, "/uploads", cfg.Storage.URLPrefix)
		assert.Equal(t, int64(10<<20), cfg.Storage.CategoryMaxSize)
		assert.Equal(t, int64(5<<20), cfg.Storage.ItemMaxSize)
		assert.Equal(t, "http://localhost:3000/menu", cfg.QR.PublicMenuURL)
		assert.Equal(t, "default-business", cfg.Bootstrap.BusinessSlug)
		assert.Equal(t, "admin", cfg.Bootstrap.AdminUsername)
		assert.Empty(t, cfg.Bootstrap.AdminPassword)
		assert.Equal(t, []string{"*"}, cfg.HTTP.CORSAllowOrigins)
	})

	t.Run("loads values from environment variables with QRMENU prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("QRMENU_JWT_SECRET", "dev-secret")
		os.Setenv("QRMENU_APP_NAME", "test-app")
		os.Setenv("QRMENU_APP_PORT", "9000")
		os.Setenv("QRMENU_DATABASE_PATH", "/tmp/menu.db")
		os.Setenv("QRMENU_DATABASE_AUTO_MIGRATE", "false")
		os.Setenv("QRMENU_JWT_EXPIRATION", "2h")
		os.Setenv("QRMENU_QR_PUBLIC_MENU_URL", "https://menu.example.com")
		os.Setenv("QRMENU_BOOTSTRAP_ADMIN_PASSWORD", "Secret123")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "/tmp/menu.db", cfg.Database.Path)
		assert.False(t, cfg.Database.AutoMigrate)
		assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)
		assert.Equal(t, "https://menu.example.com", cfg.QR.PublicMenuURL)
		assert.Equal(t, "Secret123", cfg.Bootstrap.AdminPassword)
	})

	t.Run("requires jwt secret", func(t *testing.T) {
		clearEnv()

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required")
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		clearEnv()
		os.Setenv("QRMENU_JWT_SECRET", "dev-secret")
		os.Setenv("QRMENU_DATABASE_DRIVER", "mysql")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("QRMENU_JWT_SECRET", "dev-secret")
		os.Setenv("QRMENU_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("QRMENU_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("s3 driver requires bucket", func(t *testing.T) {
		clearEnv()
		os.Setenv("QRMENU_JWT_SECRET", "dev-secret")
		os.Setenv("QRMENU_STORAGE_DRIVER", "s3")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.s3.bucket")
	})

	t.Run("production requires long secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("QRMENU_APP_ENV", "production")
		os.Setenv("QRMENU_JWT_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("production rejects wildcard CORS", func(t *testing.T) {
		clearEnv()
		os.Setenv("QRMENU_APP_ENV", "production")
		os.Setenv("QRMENU_JWT_SECRET", strings.Repeat("s", 32))
		os.Setenv("QRMENU_HTTP_CORS_ALLOW_ORIGINS", "*")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})

	t.Run("production has no default CORS origins", func(t *testing.T) {
		clearEnv()
		os.Setenv("QRMENU_APP_ENV", "production")
		os.Setenv("QRMENU_JWT_SECRET", strings.Repeat("s", 32))

		cfg, err := Load()
		require.NoError(t, err)
		assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("rejects sampling ratio out of range", func(t *testing.T) {
		clearEnv()
		os.Setenv("QRMENU_JWT_SECRET", "dev-secret")
		os.Setenv("QRMENU_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("sqlite enables foreign keys", func(t *testing.T) {
		d := &DatabaseConfig{Driver: "sqlite", Path: "data/menu.db"}

		dsn := d.DSN()
		assert.True(t, strings.HasPrefix(dsn, "file:data/menu.db?"))
		assert.Contains(t, dsn, "_foreign_keys=on")
	})

	t.Run("postgres escapes credentials", func(t *testing.T) {
		d := &DatabaseConfig{
			Driver:   "postgres",
			Host:     "db",
			Port:     5432,
			User:     "menu",
			Password: "p@ss word",
			DBName:   "qrmenu",
			SSLMode:  "disable",
		}

		assert.Equal(t, "postgres://menu:p%40ss%20word@db:5432/qrmenu?sslmode=disable", d.DSN())
	})
}

func TestRedisConfig_RedisAddr(t *testing.T) {
	assert.Equal(t, "", (&RedisConfig{Port: 6379}).RedisAddr())
	assert.Equal(t, "cache:6380", (&RedisConfig{Host: "cache", Port: 6380}).RedisAddr())
}
