package database

import (
	"io"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/wanderspark-api/config"
)

func TestNewDatabaseConfig(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("no host disables the database", func(t *testing.T) {
		_, err := NewDatabaseConfig(&config.Config{}, logger)
		assert.ErrorIs(t, err, ErrNotConfigured)

		_, err = NewDatabaseConfig(nil, logger)
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("builds a migrate compatible url", func(t *testing.T) {
		var cfg config.Config
		cfg.Repositories.Postgres.Host = "localhost"
		cfg.Repositories.Postgres.Port = "5432"
		cfg.Repositories.Postgres.Username = "wander"
		cfg.Repositories.Postgres.Password = "p@ss"
		cfg.Repositories.Postgres.DB = "wanderspark"

		dbCfg, err := NewDatabaseConfig(&cfg, logger)
		require.NoError(t, err)

		u, err := url.Parse(dbCfg.ConnectionURL)
		require.NoError(t, err)
		assert.Equal(t, "postgresql", u.Scheme)
		assert.Equal(t, "localhost:5432", u.Host)
		assert.Equal(t, "/wanderspark", u.Path)
		pw, _ := u.User.Password()
		assert.Equal(t, "p@ss", pw)
		assert.Equal(t, "disable", u.Query().Get("sslmode"))
	})
}

func TestRunMigrations_RejectsScheme(t *testing.T) {
	err := RunMigrations("mysql://localhost/db", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationFS.ReadDir("migrations")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
