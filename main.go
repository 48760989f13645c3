package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"campus-intranet-go/config"
	"campus-intranet-go/db"
	"campus-intranet-go/handlers"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	gin.SetMode(cfg.GinMode)

	prefs := db.NewPreferences(preferenceBackend(cfg, logger), cfg.Language())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := prefs.Load(ctx); err != nil {
		logger.Warn("could not load stored preferences, using defaults", "error", err)
	}
	cancel()

	store := db.NewStore(db.WithPreferences(prefs), db.WithLogger(logger))
	checkAndSeedData(cfg, store, logger)

	if err := handlers.RegisterValidators(); err != nil {
		logger.Error("failed to register validators", "error", err)
		os.Exit(1)
	}

	apiHandler := handlers.NewAPIHandler(store, cfg.UniversityName, logger)

	router := gin.Default()
	apiHandler.RegisterRoutes(router.Group("/api"))

	logger.Info("starting server", "addr", cfg.HTTPAddr, "university", cfg.UniversityName)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		logger.Error("failed to run server", "error", err)
		os.Exit(1)
	}
}

// preferenceBackend connects to Redis when REDIS_ADDR is set and falls back to
// process memory when it is unset or unreachable.
func preferenceBackend(cfg config.Config, logger *slog.Logger) db.PreferenceStore {
	if !cfg.UseRedis() {
		logger.Info("preferences kept in memory")
		return db.NewMemoryPreferences()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := db.NewRedisClient(ctx, db.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Warn("redis unavailable, preferences kept in memory", "addr", cfg.RedisAddr, "error", err)
		return db.NewMemoryPreferences()
	}
	logger.Info("preferences stored in redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	return db.NewRedisPreferences(client, cfg.PreferencePrefix)
}

// checkAndSeedData loads the demo data set into an empty store.
func checkAndSeedData(cfg config.Config, store *db.Store, logger *slog.Logger) {
	if !cfg.SeedData {
		logger.Info("seeding disabled, starting with an empty store")
		return
	}
	if !store.IsEmpty() {
		logger.Info("store already holds data, skipping seed")
		return
	}
	store.Load(db.DefaultSeed())
	logger.Info("demo data loaded", "students", len(store.Students()), "courses", len(store.Courses()))
}
