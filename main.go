package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"car-dealer/config"
	httpLayer "car-dealer/http"
	"car-dealer/logger"
	"car-dealer/repository"
	"car-dealer/service"
)

const recentEstimatesLimit = 500

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err := run(cfg, log); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
	log.Info("Server exited")
}

// run returns instead of exiting so its deferred closes always run.
func run(cfg *config.Config, log *logrus.Logger) error {
	log.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"source":      cfg.InventorySource,
		"cache":       cfg.CacheDriver,
	}).Info("Starting car dealer API")

	source, closeSource, err := openVehicleSource(cfg, log)
	if err != nil {
		return err
	}
	defer closeSource()

	cache, closeCache, err := openCache(cfg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	inventoryService := service.NewInventoryService(source, cfg.QueryCacheSize, cfg.QueryCacheTTL, log)
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	err = inventoryService.Reload(startupCtx)
	cancelStartup()
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}

	loanService := service.NewLoanService(repository.NewEstimateRepositoryMemory(recentEstimatesLimit), cache, log)
	termRecommendationService := service.NewTermRecommendationService(loanService, log)

	var refresher *service.CatalogRefresher
	if cfg.InventoryRefreshSchedule != "" {
		refresher, err = service.NewCatalogRefresher(cfg.InventoryRefreshSchedule, inventoryService, log)
		if err != nil {
			return err
		}
		refresher.Start()
		log.WithField("schedule", cfg.InventoryRefreshSchedule).Info("Inventory refresh scheduled")
	}

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.Services{
		Inventory:          inventoryService,
		Loan:               loanService,
		TermRecommendation: termRecommendationService,
	}, rateLimiter, log)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("API listening on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case err := <-serverErr:
		runErr = fmt.Errorf("start server: %w", err)
	case <-quit:
		log.Info("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if refresher != nil {
		refresher.Stop(ctx)
	}
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	}

	return runErr
}

func openVehicleSource(cfg *config.Config, log *logrus.Logger) (repository.VehicleSource, func(), error) {
	if cfg.InventorySource != config.SourcePostgres {
		return repository.NewVehicleRepositoryEmbedded(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Warn("Error closing database")
		}
	}
	if err := db.Ping(); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	return repository.NewVehicleRepositoryPostgres(db), closeDB, nil
}

// openCache returns a nil cache for CACHE_DRIVER=none.
func openCache(cfg *config.Config, log *logrus.Logger) (repository.CacheRepository, func(), error) {
	switch cfg.CacheDriver {
	case config.CacheNone:
		return nil, func() {}, nil
	case config.CacheRedis:
		redisCache := repository.NewRedisCache(cfg.RedisAddr, "dealer:", cfg.CacheTTL)
		closeRedis := func() {
			if err := redisCache.Close(); err != nil {
				log.WithError(err).Warn("Error closing redis client")
			}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisCache.Ping(ctx); err != nil {
			closeRedis()
			return nil, nil, fmt.Errorf("reach redis: %w", err)
		}
		return redisCache, closeRedis, nil
	default:
		return repository.NewLRUCache(cfg.CacheSize, cfg.CacheTTL), func() {}, nil
	}
}
