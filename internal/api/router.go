package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"
	"xyzbank/internal/api/handler"
	mw "xyzbank/internal/api/middleware"
	"xyzbank/internal/config"
	"xyzbank/internal/domain/registry"

	_ "xyzbank/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// SetupRouter wires the registry into the HTTP surface. ctx bounds the
// lifetime of background helpers such as the local rate limiter's sweeper.
// redisClient may be nil.
func SetupRouter(ctx context.Context, svc registry.RegistryService, cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(ctx, router, cfg, redisClient, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupAuthRoutes(router, cfg, logger)
	setupCustomerRoutes(router, cfg, svc, logger)
	setupRegistryRoutes(router, cfg, svc, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(ctx context.Context, router *chi.Mux, cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiter(ctx, cfg.Server.RateLimit, redisClient, logger))
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(cfg.Server.Auth, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})
}

func setupCustomerRoutes(router chi.Router, cfg *config.Config, svc registry.RegistryService, logger *slog.Logger) {
	customers := handler.NewCustomerHandler(svc, logger)
	loans := handler.NewLoanHandler(svc, logger)

	router.Route("/customers", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", customers.CreateCustomer)
		r.Get("/", customers.ListCustomers)
		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", customers.GetCustomer)
			r.Put("/income", customers.UpdateIncome)
			r.Post("/loans", loans.AddLoan)
			r.Delete("/loans/{recordID}", loans.RemoveLoan)
		})
	})
}

func setupRegistryRoutes(router chi.Router, cfg *config.Config, svc registry.RegistryService, logger *slog.Logger) {
	h := handler.NewRegistryHandler(svc, logger)

	router.Route("/registry", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Get("/", h.GetSummary)
	})
}
