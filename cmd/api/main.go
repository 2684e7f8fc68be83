package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	analyticsHttp "seller-analytics-service/internal/analytics/adapters/http/fiber"
	analyticsMem "seller-analytics-service/internal/analytics/adapters/memory"
	analyticsPg "seller-analytics-service/internal/analytics/adapters/postgres"
	"seller-analytics-service/internal/analytics/core/ports"
	"seller-analytics-service/internal/analytics/core/usecase"
	"seller-analytics-service/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "seller-analytics-service/docs"
)

func main() {
	// Config
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}
	cfg := config.Load()

	// Provider selection: demo mode or postgres with synthetic fallback.
	// Fallback on connectivity failure is an orchestration decision; the
	// providers themselves never substitute data.
	provider := selectProvider(cfg)

	// Usecases
	dashboardUC := usecase.NewDashboardUseCase(provider)
	trendsUC := usecase.NewTrendsUseCase(provider)
	breakdownUC := usecase.NewBreakdownUseCase(provider)
	exportUC := usecase.NewExportUseCase(provider)

	// HTTP (Fiber) app + handlers
	app := fiber.New()

	handler := analyticsHttp.NewAnalyticsHandler(dashboardUC, trendsUC, breakdownUC, exportUC)

	// Time-based response memoization; providers have no caching of their own.
	api := app.Group("/api", cache.New(cache.Config{
		Expiration: time.Duration(cfg.CacheTTLSeconds) * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.OriginalURL()
		},
	}))

	api.Get("/meta/date-range", handler.DateRange)
	api.Get("/meta/locations", handler.Locations)
	api.Get("/meta/categories", handler.Categories)
	api.Get("/sellers", handler.AllSellers)
	api.Get("/sellers/top", handler.TopSellers)
	api.Get("/sellers/:seller_id/breakdown", handler.FullSellerBreakdown)
	api.Get("/kpi", handler.KPIDashboard)
	api.Get("/trend/monthly", handler.MonthlyTrend)
	api.Get("/orders/status", handler.OrderStatusDistribution)
	api.Get("/analysis/ratings-returns", handler.RatingsReturnsCorrelation)
	api.Get("/export", handler.Export)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber stopped: %v", err)
		}
	}()

	log.Printf("server started on :%s", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("fiber shutdown error: %v", err)
	}

	if err := provider.Close(); err != nil {
		log.Printf("provider close error: %v", err)
	}

	log.Println("server exiting")
}

func selectProvider(cfg *config.Config) ports.AnalyticsProviderPort {
	if cfg.DemoMode {
		log.Printf("demo mode: synthetic provider (seed %d)", cfg.DemoSeed)
		return analyticsMem.NewProvider(cfg.DemoSeed)
	}

	db, err := analyticsPg.Connect(cfg.DSN())
	if err != nil {
		log.Printf("postgres unavailable (%v), falling back to synthetic provider", err)
		return analyticsMem.NewProvider(cfg.DemoSeed)
	}

	log.Println("connected to postgres")
	return analyticsPg.NewAnalyticsRepository(db)
}
