package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"auction-market/internal/app"
	"auction-market/internal/config"
	"auction-market/internal/events"
	"auction-market/internal/lock"
	"auction-market/internal/metrics"
	"auction-market/internal/notify"
	"auction-market/internal/repository"
	"auction-market/internal/tracing"
	"auction-market/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	configPath := flag.String("config", os.Getenv("AUCTION_CONFIG"), "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		utils.Fatal("failed to load config", map[string]any{"error": err.Error()})
	}

	utils.SetLevel(cfg.LogLevel)
	utils.WithService(cfg.ServiceName, cfg.Env)
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := tracing.InitTracer(cfg.ServiceName, cfg.Env)
	if err != nil {
		utils.Fatal("failed to init tracer", map[string]any{"error": err.Error()})
	}

	registry := metrics.NewRegistry()
	m := metrics.New(registry)

	store, err := openStore(ctx, cfg)
	if err != nil {
		utils.Fatal("failed to open storage", map[string]any{"driver": cfg.Storage.Driver, "error": err.Error()})
	}

	components := app.Components{
		Store:    store,
		Locker:   newLocker(cfg),
		Sender:   newSender(cfg),
		Metrics:  m,
		Registry: registry,
	}
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := events.NewSyncProducer(cfg.Kafka.Brokers, m)
		if err != nil {
			utils.Fatal("failed to create kafka producer", map[string]any{"brokers": cfg.Kafka.Brokers, "error": err.Error()})
		}
		components.Publisher = producer
	}

	application := app.New(cfg, components)
	defer application.Close()

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      application.Router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		utils.Info("starting auction server", map[string]any{"addr": srv.Addr, "storage": cfg.Storage.Driver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("server failed", map[string]any{"error": err.Error()})
		}
	}()
	application.Health.SetReady(true)

	<-ctx.Done()
	utils.Info("shutting down", nil)
	application.Health.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("server shutdown failed", map[string]any{"error": err.Error()})
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		utils.Warn("tracer shutdown failed", map[string]any{"error": err.Error()})
	}
}

// openStore returns the configured repository, seeding or migrating it as requested
func openStore(ctx context.Context, cfg *config.AppConfig) (repository.Store, error) {
	if cfg.Storage.Driver == "postgres" {
		if cfg.Postgres.AutoMigrate {
			applied, err := repository.Migrate(cfg.Postgres.DSN, cfg.Postgres.MigrationsTable)
			if err != nil {
				return nil, err
			}
			utils.Info("migrations checked", map[string]any{"applied": applied})
		}
		return repository.NewPostgresRepo(ctx, cfg.Postgres.DSN)
	}

	repo := repository.NewMemoryRepo()
	if cfg.Auction.SeedDemoData {
		if err := app.SeedDemoData(ctx, repo); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

// newLocker uses redis when configured so several instances share listing locks
func newLocker(cfg *config.AppConfig) lock.Locker {
	if cfg.Redis.Addr == "" {
		return lock.NewKeyedMutex()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	utils.Info("using redis listing locks", map[string]any{"addr": cfg.Redis.Addr})
	return lock.NewRedisLocker(client, cfg.Redis.LockTTL, cfg.ServiceName+":lock:")
}

func newSender(cfg *config.AppConfig) notify.Sender {
	if cfg.SMTP.Host == "" {
		return notify.LogSender{}
	}
	return notify.NewSMTPSender(notify.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		Timeout:  cfg.SMTP.Timeout,
	})
}
