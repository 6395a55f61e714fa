package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aerosense/estimator/internal/airports"
	"aerosense/estimator/internal/common"
	"aerosense/estimator/internal/config"
	"aerosense/estimator/internal/db"
	"aerosense/estimator/internal/db/repositories"
	"aerosense/estimator/internal/events"
	"aerosense/estimator/internal/logging"
	"aerosense/estimator/internal/metrics"
	"aerosense/estimator/internal/providers"
	"aerosense/estimator/internal/services"
	"aerosense/estimator/internal/workers"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

const (
	searchQueueSize     = 256
	searchWorkerTimeout = 5 * time.Second
)

type Repositories struct {
	FareHistory *repositories.FareHistoryRepository
}

type Services struct {
	Locations *services.LocationService
	Search    *services.FlightSearchService
	Calendar  *services.FareCalendarService
	Seats     *services.SeatService
}

// Dependencies is everything the router and the background workers share.
// Optional backends (Postgres, Redis, Kafka, Amadeus) are nil or no-ops when
// not configured.
type Dependencies struct {
	Config    *config.Config
	Metrics   *metrics.MetricsRegistry
	Directory *airports.Directory
	Cache     common.CacheInterface
	Repo      *Repositories
	Services  *Services
	Recorder  *workers.SearchRecorder
	Publisher events.Publisher
	Checks    map[string]Pinger

	sqlDB *sqlx.DB
	orm   *gorm.DB
}

func InitDependencies(ctx context.Context, cfg *config.Config, metricsReg *metrics.MetricsRegistry, dir *airports.Directory) (*Dependencies, error) {
	deps := &Dependencies{
		Config:    cfg,
		Metrics:   metricsReg,
		Directory: dir,
		Repo:      &Repositories{},
		Publisher: events.NopPublisher{},
		Checks:    map[string]Pinger{},
	}

	deps.Cache = initCache(ctx, cfg, deps)

	var (
		samples  providers.FareSampleProvider
		recorder providers.FareRecorder
	)
	if cfg.Database.Enabled() {
		repo, err := initFareHistory(ctx, cfg.Database, deps)
		if err != nil {
			deps.Close()
			return nil, err
		}
		deps.Repo.FareHistory = repo
		deps.Checks["postgres"] = repo
		historyProvider := providers.NewFareHistoryProvider(repo, time.Now)
		samples, recorder = historyProvider, historyProvider
	} else {
		logging.Info("No database configured, fare calendars will be estimated")
	}

	if cfg.Kafka.Enabled() {
		pub, err := events.NewKafkaPublisher(cfg.Kafka)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
		}
		deps.Publisher = pub
		logging.Info("Publishing search events", "topic", cfg.Kafka.SearchTopic)
	}

	var live providers.LiveFareProvider
	if cfg.Amadeus.Enabled() {
		live = providers.NewAmadeusProvider(cfg.Amadeus)
		logging.Info("Live fares enabled", "provider", live.GetProviderType())
	}

	locations, err := services.NewLocationService(dir, cfg.Airports, metricsReg)
	if err != nil {
		deps.Close()
		return nil, err
	}

	randSource := services.NewRandSource()
	calendar := services.NewFareCalendarService(locations, samples, deps.Cache, metricsReg, randSource, services.FareCalendarOptions{
		CalendarTTL:    cfg.Cache.CalendarTTL,
		SamplesTTL:     cfg.Cache.SamplesTTL,
		HistoryTimeout: cfg.Cache.HistoryTimeout,
	})
	deps.Recorder = workers.NewSearchRecorder(recorder, deps.Publisher, metricsReg, searchQueueSize, searchWorkerTimeout)

	var sampleLoader services.SampleLoader
	if samples != nil {
		sampleLoader = calendar
	}
	search := services.NewFlightSearchService(
		locations,
		services.NewRequestValidator(),
		live,
		sampleLoader,
		deps.Recorder,
		deps.Cache,
		metricsReg,
		randSource,
		services.FlightSearchOptions{
			CacheTTL:         cfg.Cache.SearchTTL,
			FallbackCacheTTL: cfg.Cache.FallbackSearchTTL,
			LiveTimeout:      cfg.Amadeus.Timeout,
		},
	)

	deps.Services = &Services{
		Locations: locations,
		Search:    search,
		Calendar:  calendar,
		Seats:     services.NewSeatService(),
	}
	return deps, nil
}

// initCache prefers Redis and falls back to the in-process cache when Redis is
// not configured or unreachable.
func initCache(ctx context.Context, cfg *config.Config, deps *Dependencies) common.CacheInterface {
	if cfg.Redis.Enabled() {
		redisCache, err := common.NewRedisCacheService(ctx, common.NewRedisClient(cfg.Redis))
		if err == nil {
			logging.Info("Using Redis cache", "addr", cfg.Redis.Addr)
			deps.Checks["redis"] = redisCache
			return redisCache
		}
		logging.Warn("Redis unavailable, using in-memory cache", "error", err)
	}
	return common.NewCacheService(cfg.Cache.SearchTTL, 10*time.Minute)
}

func initFareHistory(ctx context.Context, dbCfg config.DatabaseConfig, deps *Dependencies) (*repositories.FareHistoryRepository, error) {
	sqlDB, err := db.InitPostgres(ctx, dbCfg.DSN())
	if err != nil {
		return nil, err
	}
	deps.sqlDB = sqlDB

	orm, err := db.InitPostgresORM(dbCfg.DSN())
	if err != nil {
		return nil, err
	}
	deps.orm = orm

	repo := repositories.NewFareHistoryRepository(orm, sqlDB)
	if err := repo.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to migrate fare history: %w", err)
	}
	return repo, nil
}

// Close releases every backend connection. It is safe to call on a partially
// initialized Dependencies.
func (d *Dependencies) Close() error {
	var errs []error
	if d.Publisher != nil {
		errs = append(errs, d.Publisher.Close())
	}
	if d.Cache != nil {
		errs = append(errs, d.Cache.Close())
	}
	if d.sqlDB != nil {
		errs = append(errs, d.sqlDB.Close())
	}
	if d.orm != nil {
		errs = append(errs, db.CloseORM(d.orm))
	}
	return errors.Join(errs...)
}
