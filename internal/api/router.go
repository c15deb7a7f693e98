package api

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	config "github.com/maheshrc27/content-planner/configs"
	"github.com/maheshrc27/content-planner/internal/api/handlers"
	"github.com/maheshrc27/content-planner/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Posts     *handlers.PostHandler
	Analytics *handlers.AnalyticsHandler
	Lookups   *handlers.LookupHandler
}

type Options struct {
	// AccessLog enables fiber's request logger.
	AccessLog bool
}

func NewApp(cfg config.Config, h Handlers, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    1 * 1024 * 1024, // 1 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(fiber.Map{"detail": fe.Message})
			}
			slog.Error("unhandled error", "error", err, "path", c.Path())
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${locals:requestid} ${ip} - ${method} ${path} - ${status} - ${latency}\n",
		}))
	}
	app.Use(middleware.Metrics())
	app.Use(cors.New(corsConfig(cfg.FrontendURL)))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", h.Analytics.Health)

	posts := app.Group("/posts")
	posts.Get("/analytics", h.Analytics.GetAnalytics)

	lookups := middleware.LookupRateLimiter(cfg.LookupRateLimit)
	posts.Get("/random_quote", lookups, h.Lookups.RandomQuote)
	posts.Get("/fetch_image", lookups, h.Lookups.FetchImage)

	posts.Get("/", h.Posts.ListPosts)
	posts.Post("/", h.Posts.CreatePost)
	posts.Get("/:id<int>", h.Posts.GetPost)
	posts.Put("/:id<int>", h.Posts.UpdatePost)
	posts.Patch("/:id<int>", h.Posts.PatchPost)
	posts.Delete("/:id<int>", h.Posts.DeletePost)

	return app
}

// corsConfig allows credentials only for an explicit frontend origin.
func corsConfig(frontendURL string) cors.Config {
	origins := frontendURL
	if origins == "" {
		origins = "*"
	}

	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: origins != "*",
		MaxAge:           3600,
	}
}
