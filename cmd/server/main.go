package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"ecofly/radar/internal/analysis"
	"ecofly/radar/internal/api"
	"ecofly/radar/internal/catalog"
	"ecofly/radar/internal/common"
	"ecofly/radar/internal/config"
	"ecofly/radar/internal/db"
	"ecofly/radar/internal/engine"
	"ecofly/radar/internal/fleet"
	"ecofly/radar/internal/logging"
	"ecofly/radar/internal/metrics"
	"ecofly/radar/internal/middleware"
	"ecofly/radar/internal/render"
	"ecofly/radar/internal/routes"
	"ecofly/radar/internal/surface"
)

const shutdownTimeout = 10 * time.Second

func main() {
	boot, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build bootstrap logger: %v", err)
	}
	cfg := config.Load(boot.Sugar())
	_ = boot.Sync()

	if err := logging.Init(logging.Options{AppEnv: cfg.AppEnv, File: cfg.LogFile}); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logging.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error("Radar exited with error", "error", err.Error())
		_ = logging.Close()
		os.Exit(1)
	}
	logging.Info("Radar stopped")
}

func run(ctx context.Context, cfg config.Config) error {
	upSince := time.Now()
	logging.Info("Radar starting up",
		"environment", cfg.AppEnv,
		"fleet_size", cfg.FleetSize,
		"tick_interval", cfg.TickInterval.String(),
		"timestamp", upSince.Format(time.RFC3339),
	)

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)

	orm, err := db.Open(cfg.CatalogDSN, logging.Named("db"))
	if err != nil {
		return err
	}
	sqlDB, err := orm.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	cat, err := loadCatalog(ctx, orm, cfg)
	if err != nil {
		return err
	}

	healthChecks := map[string]api.HealthCheck{
		"catalog": sqlDB.PingContext,
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = common.NewRedisClient(ctx, common.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}, logging.Named("redis"))
		if err != nil && redisClient == nil {
			return err
		}
		if err != nil {
			logging.Warn("Redis unreachable at startup, continuing", "error", err.Error())
		}
		defer redisClient.Close()
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	cache, err := common.NewCache(cfg.CacheBackend, redisClient, logging.Named("cache"))
	if err != nil {
		return err
	}
	defer cache.Close()
	estimator := analysis.NewEstimator(cfg.AnalysisDelay, cache, cfg.Seed, logging.Named("analysis"))

	flights, err := fleet.NewGenerator(cat, cfg.Seed).Generate(cfg.FleetSize)
	if err != nil {
		return err
	}
	store, err := fleet.NewStore(flights)
	if err != nil {
		return err
	}

	mem := surface.NewMemory()
	var target render.Surface = mem
	if redisClient != nil {
		target = surface.NewRedisStream(mem, redisClient, cfg.RedisStream, cfg.RedisStreamMaxLen, logging.Named("surface"))
	}

	eng := engine.New(store, cat, target, estimator, engine.Options{
		Interval:        cfg.TickInterval,
		DistanceScale:   cfg.DistanceScale,
		AnalysisTimeout: cfg.AnalysisTimeout,
		Metrics:         metricsReg,
		Log:             logging.Named("engine"),
	})

	router := routes.RegisterRoutes(&api.Dependencies{
		Engine:       eng,
		Catalog:      cat,
		Surface:      mem,
		HealthChecks: healthChecks,
		UpSince:      upSince,
	}, routes.RouterOptions{
		Metrics:        metricsReg,
		Gatherer:       prometheus.DefaultGatherer,
		CORSOrigins:    cfg.CORSOrigins,
		AnalyzeLimiter: middleware.NewRateLimiter(cfg.AnalyzeRate, cfg.AnalyzeBurst),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return eng.Run(gctx)
	})
	g.Go(func() error {
		logging.Info("Server starting", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loadCatalog seeds the airport table, applies an optional JSON import and
// reads the result back into the in-memory catalog.
func loadCatalog(ctx context.Context, orm *gorm.DB, cfg config.Config) (*catalog.Catalog, error) {
	loader := common.NewAirportLoader(orm, logging.Named("catalog"))
	if _, err := loader.SeedDefaults(ctx); err != nil {
		return nil, err
	}
	if cfg.AirportsFile != "" {
		f, err := os.Open(cfg.AirportsFile)
		if err != nil {
			return nil, err
		}
		n, err := loader.LoadFromJSON(ctx, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		logging.Info("Imported airports", "file", cfg.AirportsFile, "count", n)
	}

	airports, err := loader.Airports(ctx)
	if err != nil {
		return nil, err
	}
	if stats, err := loader.GetStats(ctx); err == nil {
		logging.Info("Airport catalog loaded", "stats", stats)
	}
	return &catalog.Catalog{
		Operators: catalog.DefaultOperators(),
		Airports:  airports,
	}, nil
}
