package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/hoangnm/vn-poi-map/internal/api/http"
	"github.com/hoangnm/vn-poi-map/internal/config"
	"github.com/hoangnm/vn-poi-map/internal/geocode"
	"github.com/hoangnm/vn-poi-map/internal/overpass"
	"github.com/hoangnm/vn-poi-map/internal/poi"
	"github.com/hoangnm/vn-poi-map/internal/scheduler"
	"github.com/hoangnm/vn-poi-map/internal/search"
	"github.com/hoangnm/vn-poi-map/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.OpenWeatherAPIKey == "" {
		log.Println("WARN: OPENWEATHER_API_KEY is not set; weather sections will be omitted")
	}

	// Shared HTTP client for geocoding and weather calls. Overpass queries
	// get their own client with a longer per-mirror budget.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	overpassClient := &http.Client{Timeout: 90 * time.Second}

	resolver := geocode.NewResolver(httpClient, cfg.NominatimURL, cfg.Country, cfg.UserAgent, cfg.CacheTTL)
	mirrors := overpass.NewClient(overpassClient, cfg.OverpassURLs, cfg.UserAgent)
	poiSvc := poi.NewService(mirrors, cfg.CacheTTL)

	weatherClient := weather.NewClient(httpClient, cfg.OpenWeatherAPIKey, cfg.CacheTTL)
	weatherSvc := weather.NewService(weatherClient, cfg.UseOneCall, cfg.Units, cfg.Lang)

	runner := search.NewRunner(resolver, poiSvc, weatherSvc)

	// Janitor that reclaims expired memoization entries.
	janitor := scheduler.New(cfg.CacheTTL, resolver, poiSvc, weatherClient)
	if err := janitor.Start(); err != nil {
		log.Fatalf("failed to start cache janitor: %v", err)
	}
	defer janitor.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "vn-poi-map",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          3 * time.Minute, // searches may wait on slow Overpass mirrors
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "vn-poi-map",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, runner, weatherSvc, cfg)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
