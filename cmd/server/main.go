package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/content-planner/configs"
	"github.com/maheshrc27/content-planner/internal/api"
	"github.com/maheshrc27/content-planner/internal/api/handlers"
	"github.com/maheshrc27/content-planner/internal/cache"
	job "github.com/maheshrc27/content-planner/internal/jobs"
	"github.com/maheshrc27/content-planner/internal/repository"
	"github.com/maheshrc27/content-planner/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	ctx := context.Background()
	if err := repository.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to prepare schema: %v", err)
	}

	var quoteCache cache.QuoteCache
	var rdb *redis.Client
	if cfg.RedisURI != "" {
		rdb, err = cache.NewRedisClient(cfg.RedisURI)
		if err != nil {
			log.Fatalf("Invalid redis uri: %v", err)
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("redis unreachable, quote cache disabled", "error", err)
			rdb.Close()
			rdb = nil
		} else {
			quoteCache = cache.NewRedisQuoteCache(rdb)
		}
	}

	httpClient := &http.Client{Timeout: cfg.LookupTimeout}

	var mirror service.ImageMirror
	if cfg.R2.Enabled() {
		r2Service, err := service.NewR2Service(ctx, *cfg, httpClient)
		if err != nil {
			log.Fatalf("Failed to configure R2: %v", err)
		}
		mirror = r2Service
	}

	postRepo := repository.NewPostRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	postService := service.NewPostService(postRepo, service.NewPostNormalizer(cfg.Location()))
	analyticsService := service.NewAnalyticsService(analyticsRepo)
	quoteService := service.NewQuoteService(httpClient, quoteCache)
	imageService := service.NewImageService(httpClient, service.UNSPLASH_RANDOM_URL, cfg.UnsplashAccessKey, mirror)

	// cron jobs
	var scheduler *cron.Cron
	if quoteCache != nil {
		warmup := job.NewQuoteWarmupJob(quoteService, 2*cfg.LookupTimeout+time.Second)
		scheduler, err = warmup.Schedule()
		if err != nil {
			log.Fatalf("Failed to schedule quote warmup: %v", err)
		}
	}

	app := api.NewApp(*cfg, api.Handlers{
		Posts:     handlers.NewPostHandler(postService),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
		Lookups:   handlers.NewLookupHandler(quoteService, imageService),
	}, api.Options{AccessLog: true})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, db, rdb, scheduler)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB, rdb *redis.Client, scheduler *cron.Cron) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	if scheduler != nil {
		scheduler.Stop()
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			slog.Error("failed to close redis", "error", err)
		}
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
