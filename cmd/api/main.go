package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/dentix/clinic-api/internal/config"
	"github.com/dentix/clinic-api/internal/handler"
	appointmentHandler "github.com/dentix/clinic-api/internal/handler/appointment"
	authHandler "github.com/dentix/clinic-api/internal/handler/auth"
	clinicHandler "github.com/dentix/clinic-api/internal/handler/clinic"
	inventoryHandler "github.com/dentix/clinic-api/internal/handler/inventory"
	patientHandler "github.com/dentix/clinic-api/internal/handler/patient"
	scheduleHandler "github.com/dentix/clinic-api/internal/handler/schedule"
	supplierHandler "github.com/dentix/clinic-api/internal/handler/supplier"
	"github.com/dentix/clinic-api/internal/middleware"
	"github.com/dentix/clinic-api/internal/model"
	"github.com/dentix/clinic-api/internal/repository/postgres"
	"github.com/dentix/clinic-api/internal/router"
	appointmentService "github.com/dentix/clinic-api/internal/service/appointment"
	authService "github.com/dentix/clinic-api/internal/service/auth"
	clinicService "github.com/dentix/clinic-api/internal/service/clinic"
	eventService "github.com/dentix/clinic-api/internal/service/event"
	inventoryService "github.com/dentix/clinic-api/internal/service/inventory"
	patientService "github.com/dentix/clinic-api/internal/service/patient"
	scheduleService "github.com/dentix/clinic-api/internal/service/schedule"
	supplierService "github.com/dentix/clinic-api/internal/service/supplier"
	"github.com/dentix/clinic-api/internal/validation"
	"github.com/dentix/clinic-api/pkg/auth"
	"github.com/dentix/clinic-api/pkg/metrics"
	"github.com/dentix/clinic-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := validation.Register(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	m := metrics.NewMetrics("clinic_api")

	// Repositories
	baseRepo := postgres.NewBaseRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(baseRepo)
	scheduleRepo := postgres.NewScheduleRepository(baseRepo)
	patientRepo := postgres.NewPatientRepository(baseRepo)
	clinicRepo := postgres.NewClinicRepository(baseRepo)
	userRepo := postgres.NewUserRepository(baseRepo)
	inventoryRepo := postgres.NewInventoryRepository(baseRepo)
	supplierRepo := postgres.NewSupplierRepository(baseRepo)
	outboxRepo := postgres.NewOutboxRepository(baseRepo)

	// Services
	eventSvc := eventService.NewService(outboxRepo)
	bookingCfg, err := bookingConfig(cfg.Booking)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid booking configuration")
	}
	appointmentSvc := appointmentService.NewService(appointmentRepo, scheduleRepo, eventSvc, m, bookingCfg)
	scheduleSvc := scheduleService.NewService(scheduleRepo)
	patientSvc := patientService.NewService(patientRepo)
	clinicSvc := clinicService.NewService(clinicRepo)
	inventorySvc := inventoryService.NewService(inventoryRepo, eventSvc, m)
	supplierSvc := supplierService.NewService(supplierRepo)

	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		Secret:             cfg.JWT.Secret,
		RefreshSecret:      cfg.JWT.RefreshSecret,
		ExpiryHours:        cfg.JWT.ExpiryHours,
		RefreshExpiryHours: cfg.JWT.RefreshExpiryHours,
	})
	hasher := security.NewBcryptHasher(0)
	authSvc := authService.NewService(userRepo, jwtSvc, hasher)

	// Handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	slotCache := middleware.NewResponseCache(30 * time.Second)

	authH := authHandler.NewHandler(authSvc)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc, slotCache)
	scheduleH := scheduleHandler.NewHandler(scheduleSvc)
	patientH := patientHandler.NewHandler(patientSvc)
	clinicH := clinicHandler.NewHandler(clinicSvc)
	inventoryH := inventoryHandler.NewHandler(inventorySvc)
	supplierH := supplierHandler.NewHandler(supplierSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.NewRouter(
		authMiddleware,
		authH,
		appointmentH,
		scheduleH,
		patientH,
		clinicH,
		inventoryH,
		supplierH,
		healthH,
		router.Config{
			RateLimit:     rate.Limit(cfg.Server.RateLimitRPS),
			RateBurst:     cfg.Server.RateLimitBurst,
			Timeout:       time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "clinic_api_http",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func bookingConfig(cfg config.BookingConfig) (appointmentService.Config, error) {
	peakStart, err := model.ParseClockTime(cfg.PeakStart)
	if err != nil {
		return appointmentService.Config{}, fmt.Errorf("invalid peak_start: %w", err)
	}
	peakEnd, err := model.ParseClockTime(cfg.PeakEnd)
	if err != nil {
		return appointmentService.Config{}, fmt.Errorf("invalid peak_end: %w", err)
	}

	return appointmentService.Config{
		SlotInterval: time.Duration(cfg.SlotIntervalMinutes) * time.Minute,
		MinDuration:  time.Duration(cfg.MinDurationMinutes) * time.Minute,
		MaxDuration:  time.Duration(cfg.MaxDurationMinutes) * time.Minute,
		MaxAdvance:   time.Duration(cfg.MaxAdvanceDays) * 24 * time.Hour,
		PeakStart:    peakStart,
		PeakEnd:      peakEnd,
	}, nil
}
