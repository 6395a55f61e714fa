package api

import (
	"context"
	"path/filepath"
	"testing"

	"aerosense/estimator/internal/airports"
	"aerosense/estimator/internal/config"
	"aerosense/estimator/internal/events"
	"aerosense/estimator/internal/metrics"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestInitDependencies_WithoutBackends(t *testing.T) {
	dir, err := airports.LoadDefault()
	require.NoError(t, err)

	deps, err := InitDependencies(context.Background(), config.Default(), metrics.NewMetricsRegistry(), dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close() })

	assert.Nil(t, deps.Repo.FareHistory)
	assert.Empty(t, deps.Checks)
	assert.IsType(t, events.NopPublisher{}, deps.Publisher)
	require.NotNil(t, deps.Services.Search)
	require.NotNil(t, deps.Recorder)
}

func TestDependencies_CloseReleasesBothPools(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fares.db")
	orm, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	ormPool, err := orm.DB()
	require.NoError(t, err)
	sqlDB := sqlx.NewDb(ormPool, "sqlite3")

	second, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	secondPool, err := second.DB()
	require.NoError(t, err)

	deps := &Dependencies{sqlDB: sqlDB, orm: second}
	require.NoError(t, deps.Close())

	assert.Error(t, ormPool.Ping())
	assert.Error(t, secondPool.Ping())
}

func TestInitDependencies_BadDefaultAirport(t *testing.T) {
	dir, err := airports.LoadDefault()
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Airports.DefaultOrigin = "QQQ"
	_, err = InitDependencies(context.Background(), cfg, metrics.NewMetricsRegistry(), dir)
	assert.Error(t, err)
}
