package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysgest/insights-api/internal/config"
	"go.uber.org/zap"
)

func TestNewDatabaseSQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "data", "insights.db"),
	}

	db, err := NewDatabase(cfg, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db))
	assert.NoError(t, HealthCheck(context.Background(), db))

	_, err = HealthCheckWithStats(context.Background(), db)
	assert.NoError(t, err)
}

func TestNewDatabaseUnsupportedDriver(t *testing.T) {
	_, err := NewDatabase(&config.DatabaseConfig{Driver: "oracle"}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
