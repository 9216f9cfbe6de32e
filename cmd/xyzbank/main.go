package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"xyzbank/internal/api"
	"xyzbank/internal/batch"
	"xyzbank/internal/config"
	"xyzbank/internal/console"
	"xyzbank/internal/domain/registry"
	"xyzbank/internal/event"
	"xyzbank/internal/infrastructure/logging"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

var version = "dev"

const rabbitMQDialAttempts = 5

// @title XYZ Bank Loan Records API
// @version 1.0
// @description Registers customers, tracks their typed loan records under a global record ceiling and reports loan eligibility.

// @contact.name API Support
// @contact.email support@xyzbank.example

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	command := "console"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "console":
		cfg, logger := initializeApp()
		if err := runConsole(cfg, os.Stdin, os.Stdout, logger); err != nil {
			logger.Error("Console session ended with error", slog.Any("error", err))
			os.Exit(1)
		}
	case "serve":
		cfg, logger := initializeApp()
		runServer(cfg, logger)
	case "version":
		fmt.Println("xyzbank", version)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: xyzbank <command>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  console   interactive loan records menu (default)")
	fmt.Fprintln(w, "  serve     HTTP API with scheduled registry audit")
	fmt.Fprintln(w, "  version   print the build version")
	fmt.Fprintln(w, "  help      show this message")
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "version", version, "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

// runConsole drives the interactive menu until the operator exits, input
// closes or the process is interrupted.
func runConsole(cfg *config.Config, in io.Reader, out io.Writer, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prompter := console.NewPrompter(in, out)
	regCfg, err := resolveRegistryConfig(cfg.Registry, prompter)
	if err != nil {
		if errors.Is(err, console.ErrInputClosed) {
			return nil
		}
		return err
	}

	svc, err := registry.NewRegistryService(regCfg, event.NewLogEventPublisher(logger), logger)
	if err != nil {
		return fmt.Errorf("creating registry: %w", err)
	}
	return console.New(svc, prompter, logger).Run(ctx)
}

// resolveRegistryConfig asks the operator for the record ceiling when the
// configuration leaves it unset.
func resolveRegistryConfig(cfg config.RegistryConfig, p *console.Prompter) (config.RegistryConfig, error) {
	if cfg.MaxRecords > 0 {
		return cfg, nil
	}
	maxRecords, err := p.MaxRecords()
	if err != nil {
		return cfg, err
	}
	cfg.MaxRecords = maxRecords
	return cfg, nil
}

func runServer(cfg *config.Config, logger *slog.Logger) {
	if cfg.Registry.MaxRecords <= 0 {
		logger.Error("registry.maxRecords must be configured for serve mode")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	publisher, rabbitMQConn := initializePublisher(ctx, cfg, logger)
	redisClient := initializeRedisClient(cfg, logger)

	svc, err := registry.NewRegistryService(cfg.Registry, publisher, logger)
	if err != nil {
		logger.Error("Failed to create registry", slog.Any("error", err))
		os.Exit(1)
	}

	auditJob := batch.NewRegistryAuditJob(svc, logger)
	cronScheduler := startBatchJobs(cfg, logger, auditJob)
	router := api.SetupRouter(ctx, svc, cfg, redisClient, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, rabbitMQConn, redisClient, shutdownChan, serverErrors, logger)
}

// initializePublisher returns the RabbitMQ publisher when the broker is
// enabled and reachable, and the log publisher otherwise. The connection is
// nil in the fallback case.
func initializePublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (event.EventPublisher, *amqp.Connection) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ disabled; registry events will be logged.")
		return event.NewLogEventPublisher(logger), nil
	}

	uri, err := rabbitMQURI(cfg.RabbitMQ)
	if err != nil {
		logger.Error("Invalid RabbitMQ configuration; registry events will be logged.", slog.Any("error", err))
		return event.NewLogEventPublisher(logger), nil
	}

	conn, err := event.Dial(ctx, uri, rabbitMQDialAttempts, logger)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ; registry events will be logged.", slog.Any("error", err))
		return event.NewLogEventPublisher(logger), nil
	}

	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to set up RabbitMQ publisher; registry events will be logged.", slog.Any("error", err))
		_ = conn.Close()
		return event.NewLogEventPublisher(logger), nil
	}
	return publisher, conn
}

func rabbitMQURI(cfg config.RabbitMQConfig) (string, error) {
	if cfg.Host == "" {
		return "", errors.New("RabbitMQ host is not configured")
	}
	port := cfg.Port
	if port == 0 {
		port = 5672
	}

	switch {
	case cfg.Username != "" && cfg.Password != "":
		return fmt.Sprintf("amqp://%s:%s@%s:%d", cfg.Username, cfg.Password, cfg.Host, port), nil
	case cfg.Username != "" || cfg.Password != "":
		return "", errors.New("RabbitMQ username and password must be provided together")
	default:
		return fmt.Sprintf("amqp://%s:%d", cfg.Host, port), nil
	}
}

func closeRabbitMQ(conn *amqp.Connection, logger *slog.Logger) {
	if conn == nil {
		return
	}
	logger.Info("Closing RabbitMQ connection...")
	if err := conn.Close(); err != nil {
		logger.Error("Failed to close RabbitMQ connection gracefully", "error", err)
	}
}

// initializeRedisClient returns nil when Redis is not configured or not
// reachable; the rate limiter then falls back to in-process buckets.
func initializeRedisClient(cfg *config.Config, logger *slog.Logger) *redis.Client {
	if cfg.Redis.Addr == "" {
		logger.Info("Redis address not configured; using in-process rate limiting.")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if status := rdb.Ping(ctx); status.Err() != nil {
		logger.Error("Failed to connect to Redis; using in-process rate limiting.", "error", status.Err(), "addr", cfg.Redis.Addr)
		_ = rdb.Close()
		return nil
	}

	logger.Info("Redis client connected successfully.", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	return rdb
}

func closeRedisClient(redisClient *redis.Client, logger *slog.Logger) {
	if redisClient == nil {
		logger.Info("Redis client was not initialized, skipping close.")
		return
	}
	logger.Info("Closing Redis client connection...")
	if err := redisClient.Close(); err != nil {
		logger.Error("Failed to close Redis client connection gracefully", "error", err)
	}
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, auditJob *batch.RegistryAuditJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.AuditSchedule
	if scheduleSpec == "" {
		scheduleSpec = "@every 5m"
		logger.Warn("Registry audit schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.Batch.AuditTimeout
	if jobTimeout <= 0 {
		jobTimeout = 30 * time.Second
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "RegistryAudit")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := auditJob.Run(ctx); runErr != nil {
			jobLogger.Error("Registry audit job finished with error", slog.Any("error", runErr))
		}
	}))
	if err != nil {
		logger.Error("Failed to schedule registry audit job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled registry audit job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "port", cfg.Server.Port)
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(
	srv *http.Server,
	cronScheduler *cron.Cron,
	rabbitMQConn *amqp.Connection,
	redisClient *redis.Client,
	shutdownChan <-chan os.Signal,
	serverErrors <-chan error,
	logger *slog.Logger,
) {
	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
	case err := <-serverErrors:
		if err != nil {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
	}
	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	closeRabbitMQ(rabbitMQConn, logger)
	closeRedisClient(redisClient, logger)

	logger.Info("Application shutdown process complete.")
}
