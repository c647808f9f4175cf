package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dentix/clinic-api/internal/email"
	"github.com/dentix/clinic-api/internal/model"
	"github.com/dentix/clinic-api/internal/repository"
	"github.com/dentix/clinic-api/pkg/logger"
	"github.com/dentix/clinic-api/pkg/messaging"
	"github.com/dentix/clinic-api/pkg/metrics"
)

type OutboxProcessorConfig struct {
	BatchSize     int
	PollInterval  time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	RetainFor     time.Duration
	SendEmail     bool
}

type OutboxProcessor struct {
	repo     repository.OutboxRepository
	patients repository.PatientRepository
	broker   messaging.Broker
	sender   email.Sender
	config   OutboxProcessorConfig
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewOutboxProcessor(
	repo repository.OutboxRepository,
	patients repository.PatientRepository,
	broker messaging.Broker,
	sender email.Sender,
	config OutboxProcessorConfig,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *OutboxProcessor {
	if config.BatchSize <= 0 {
		panic("BatchSize must be greater than 0")
	}
	if config.PollInterval <= 0 {
		panic("PollInterval must be greater than 0")
	}
	if config.RetryAttempts <= 0 {
		panic("RetryAttempts must be greater than 0")
	}
	if config.RetryDelay <= 0 {
		panic("RetryDelay must be greater than 0")
	}

	return &OutboxProcessor{
		repo:     repo,
		patients: patients,
		broker:   broker,
		sender:   sender,
		config:   config,
		logger:   logger,
		metrics:  metrics,
	}
}

func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	p.logger.Info("Starting outbox processor")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Shutting down outbox processor")
			return
		case <-ticker.C:
			if err := p.processEvents(ctx); err != nil {
				p.logger.Error(err, "Failed to process events")
			}
			p.cleanup(ctx)
		}
	}
}

func (p *OutboxProcessor) processEvents(ctx context.Context) error {
	timer := prometheus.NewTimer(p.metrics.OutboxProcessingLatency)
	defer timer.ObserveDuration()

	events, err := p.repo.GetPendingEventsWithLock(ctx, p.config.BatchSize)
	if err != nil {
		p.metrics.DatabaseOperations.WithLabelValues("get_pending_events", "error").Inc()
		return fmt.Errorf("failed to get pending events: %w", err)
	}
	p.metrics.DatabaseOperations.WithLabelValues("get_pending_events", "success").Inc()

	for _, event := range events {
		if err := p.processEvent(ctx, event); err != nil {
			p.logger.Error(err, "Failed to process event",
				"event_id", event.ID.String(),
				"event_type", event.EventType)
			continue
		}
	}

	return nil
}

func (p *OutboxProcessor) processEvent(ctx context.Context, event *model.OutboxEvent) error {
	err := retry(p.config.RetryAttempts, p.config.RetryDelay, func() error {
		return p.broker.Publish(ctx, event.EventType, event.Payload)
	})

	if err != nil {
		p.metrics.OutboxEventsFailed.Inc()
		errStr := err.Error()
		if updateErr := p.repo.UpdateStatus(ctx, event.ID, model.OutboxStatusFailed, &errStr); updateErr != nil {
			p.logger.Error(updateErr, "Failed to update event status")
		}
		return err
	}

	p.metrics.OutboxEventsProcessed.Inc()
	if err := p.repo.UpdateStatus(ctx, event.ID, model.OutboxStatusProcessed, nil); err != nil {
		p.logger.Error(err, "Failed to update event status", "event_id", event.ID.String())
		return err
	}

	p.notifyPatient(ctx, event)

	return nil
}

// notifyPatient emails a booking confirmation for newly created appointments.
// Delivery is best effort; a failed send never fails the event.
func (p *OutboxProcessor) notifyPatient(ctx context.Context, event *model.OutboxEvent) {
	if !p.config.SendEmail || event.EventType != model.EventAppointmentCreated {
		return
	}

	var apt model.Appointment
	if err := json.Unmarshal(event.Payload, &apt); err != nil {
		p.logger.Error(err, "Failed to decode appointment payload", "event_id", event.ID.String())
		return
	}

	patient, err := p.patients.Get(ctx, apt.PatientID)
	if err != nil {
		p.logger.Error(err, "Failed to load patient for confirmation",
			"appointment_id", apt.ID.String(),
			"patient_id", apt.PatientID.String())
		return
	}
	if patient.Email == "" {
		return
	}

	if err := p.sender.SendAppointmentConfirmation(patient.Email, &apt); err != nil {
		p.logger.Error(err, "Failed to send appointment confirmation",
			"appointment_id", apt.ID.String(),
			"patient_id", patient.ID.String())
	}
}

func (p *OutboxProcessor) cleanup(ctx context.Context) {
	if p.config.RetainFor <= 0 {
		return
	}
	deleted, err := p.repo.DeleteProcessedBefore(ctx, time.Now().Add(-p.config.RetainFor))
	if err != nil {
		p.logger.Error(err, "Failed to prune processed events")
		return
	}
	if deleted > 0 {
		p.logger.Debug("Pruned processed events", "count", deleted)
	}
}

func retry(attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < attempts-1 {
			time.Sleep(delay)
		}
	}
	return err
}
