package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/dentix/clinic-api/internal/config"
	"github.com/dentix/clinic-api/internal/email"
	"github.com/dentix/clinic-api/internal/repository/postgres"
	"github.com/dentix/clinic-api/pkg/logger"
	"github.com/dentix/clinic-api/pkg/messaging/redis"
	"github.com/dentix/clinic-api/pkg/metrics"
	"github.com/dentix/clinic-api/pkg/worker"
)

// workerConfig is read from the environment; the worker ships without a
// config file so it can run as a sidecar container.
type workerConfig struct {
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	RedisURL          string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	RedisMaxRetries   int           `envconfig:"REDIS_MAX_RETRIES" default:"3"`
	RedisRetryBackoff time.Duration `envconfig:"REDIS_RETRY_BACKOFF" default:"100ms"`
	RedisPoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`

	OutboxBatchSize     int           `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
	OutboxPollInterval  time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"5s"`
	OutboxRetryAttempts int           `envconfig:"OUTBOX_RETRY_ATTEMPTS" default:"3"`
	OutboxRetryDelay    time.Duration `envconfig:"OUTBOX_RETRY_DELAY" default:"2s"`
	OutboxRetainFor     time.Duration `envconfig:"OUTBOX_RETAIN_FOR" default:"168h"`

	LowStockInterval time.Duration `envconfig:"LOW_STOCK_INTERVAL" default:"1h"`
	LowStockAlertTo  string        `envconfig:"LOW_STOCK_ALERT_TO"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM"`

	HealthPort string `envconfig:"HEALTH_PORT" default:":8081"`
}

func main() {
	var cfg workerConfig
	if err := envconfig.Process("worker", &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load worker configuration")
	}

	l := logger.NewLogger(nil)

	db, err := postgres.NewDB(config.DatabaseConfig{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		l.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.RedisURL,
		MaxRetries:   cfg.RedisMaxRetries,
		RetryBackoff: cfg.RedisRetryBackoff,
		PoolSize:     cfg.RedisPoolSize,
	}, &log.Logger)
	if err != nil {
		l.Fatal(err, "failed to connect to Redis")
	}
	defer broker.Close()

	baseRepo := postgres.NewBaseRepository(db)
	outboxRepo := postgres.NewOutboxRepository(baseRepo)
	inventoryRepo := postgres.NewInventoryRepository(baseRepo)
	clinicRepo := postgres.NewClinicRepository(baseRepo)
	patientRepo := postgres.NewPatientRepository(baseRepo)

	m := metrics.NewMetrics("clinic_worker")

	sender := email.NewSMTPSender(email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})

	processor := worker.NewOutboxProcessor(outboxRepo, patientRepo, broker, sender, worker.OutboxProcessorConfig{
		BatchSize:     cfg.OutboxBatchSize,
		PollInterval:  cfg.OutboxPollInterval,
		RetryAttempts: cfg.OutboxRetryAttempts,
		RetryDelay:    cfg.OutboxRetryDelay,
		RetainFor:     cfg.OutboxRetainFor,
		SendEmail:     cfg.SMTPHost != "",
	}, l, m)

	lowStock := worker.NewLowStockChecker(inventoryRepo, clinicRepo, sender, worker.LowStockCheckerConfig{
		Interval:  cfg.LowStockInterval,
		AlertTo:   cfg.LowStockAlertTo,
		SendEmail: cfg.SMTPHost != "" && cfg.LowStockAlertTo != "",
	}, l, m)

	setupHealthCheck(cfg.HealthPort, l)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		l.Info("Shutting down...")
		cancel()
	}()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		processor.Start(ctx)
	}()
	go func() {
		defer wg.Done()
		lowStock.Start(ctx)
	}()
	wg.Wait()
}

func setupHealthCheck(addr string, l *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			l.Fatal(err, "Health check server failed")
		}
	}()
}
