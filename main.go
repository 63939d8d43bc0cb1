package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"arkalia-engine/config"
	"arkalia-engine/handlers"
	"arkalia-engine/middleware"
	"arkalia-engine/models"
	"arkalia-engine/services"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// No .env file is fine, environment variables are read directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	var backing services.PlayerStore
	if cfg.DatabaseURL != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		if err := db.AutoMigrate(&models.PlayerRecord{}); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
		backing = services.NewGormPlayerStore(db, log)
	} else {
		log.Warn().Msg("DATABASE_URL not set, player state is in-memory only")
		backing = services.NewMemoryPlayerStore()
	}
	store := services.NewCachedPlayerStore(backing, cfg.CacheTTL)

	tracker := services.NewProgressionTracker(store, log)
	challenges := services.NewDailyChallengeScheduler(store, tracker, log)
	leaderboard := services.NewLeaderboardService(store, log)
	emotions := services.NewEmotionalFeedbackEngine(log)
	engine := services.NewGameEngine(tracker, emotions, store, log)

	cron := challenges.StartDailyResetJob()

	app := fiber.New(fiber.Config{AppName: "arkalia-engine"})
	app.Use(middleware.RequestLogger(log))
	handlers.SetupPlayerRoutes(app, engine, leaderboard, challenges)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("server error")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("arkalia engine running")

	<-ctx.Done()
	log.Info().Msg("shutting down")
	if cron != nil {
		if err := cron.Shutdown(); err != nil {
			log.Error().Err(err).Msg("cron shutdown failed")
		}
	}
	_ = app.Shutdown()
}
