package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentix/clinic-api/internal/model"
	"github.com/dentix/clinic-api/internal/repository"
	"github.com/dentix/clinic-api/pkg/logger"
	"github.com/dentix/clinic-api/pkg/metrics"
)

// Metrics register against the global prometheus registry, so the package
// shares one instance across tests.
var testMetrics = metrics.NewMetrics("clinic_worker_test")

type fakeOutboxRepo struct {
	pending  []*model.OutboxEvent
	statuses map[uuid.UUID]model.OutboxStatus
}

func newFakeOutboxRepo(events ...*model.OutboxEvent) *fakeOutboxRepo {
	return &fakeOutboxRepo{
		pending:  events,
		statuses: make(map[uuid.UUID]model.OutboxStatus),
	}
}

func (r *fakeOutboxRepo) Create(_ context.Context, e *model.OutboxEvent) error {
	r.pending = append(r.pending, e)
	return nil
}

func (r *fakeOutboxRepo) GetPendingEventsWithLock(_ context.Context, _ int) ([]*model.OutboxEvent, error) {
	return r.pending, nil
}

func (r *fakeOutboxRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.OutboxStatus, _ *string) error {
	r.statuses[id] = status
	return nil
}

func (r *fakeOutboxRepo) DeleteProcessedBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type fakeBroker struct {
	published   []string
	failPublish bool
}

func (b *fakeBroker) Publish(_ context.Context, channel string, _ interface{}) error {
	if b.failPublish {
		return errors.New("broker unavailable")
	}
	b.published = append(b.published, channel)
	return nil
}

func (b *fakeBroker) Subscribe(_ context.Context, _ string) (<-chan []byte, error) {
	return nil, errors.New("not implemented")
}

func (b *fakeBroker) Close() error { return nil }

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func (r *fakePatientRepo) Create(_ context.Context, _ *model.Patient) error { return nil }

func (r *fakePatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, ok := r.patients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return patient, nil
}

func (r *fakePatientRepo) Update(_ context.Context, _ *model.Patient) error { return nil }
func (r *fakePatientRepo) Delete(_ context.Context, _ uuid.UUID) error      { return nil }

func (r *fakePatientRepo) List(_ context.Context, _ *model.PatientFilters) ([]*model.Patient, error) {
	return nil, nil
}

func (r *fakePatientRepo) AddTreatment(_ context.Context, _ *model.TreatmentRecord) error {
	return nil
}

func (r *fakePatientRepo) ListTreatments(_ context.Context, _ uuid.UUID) ([]*model.TreatmentRecord, error) {
	return nil, nil
}

type fakeSender struct {
	confirmations []string
	alerts        []string
	failSend      bool
}

func (s *fakeSender) SendAppointmentConfirmation(to string, _ *model.Appointment) error {
	if s.failSend {
		return errors.New("smtp down")
	}
	s.confirmations = append(s.confirmations, to)
	return nil
}

func (s *fakeSender) SendLowStockAlert(to string, _ *model.InventoryItem) error {
	s.alerts = append(s.alerts, to)
	return nil
}

func outboxEvent(t *testing.T, eventType string, apt *model.Appointment) *model.OutboxEvent {
	t.Helper()
	payload, err := json.Marshal(apt)
	require.NoError(t, err)
	return &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   payload,
		Status:    model.OutboxStatusPending,
	}
}

func testProcessorConfig(sendEmail bool) OutboxProcessorConfig {
	return OutboxProcessorConfig{
		BatchSize:     10,
		PollInterval:  time.Second,
		RetryAttempts: 2,
		RetryDelay:    time.Millisecond,
		SendEmail:     sendEmail,
	}
}

func TestOutboxProcessor(t *testing.T) {
	l := logger.NewLogger(nil)
	patient := &model.Patient{
		Base:  model.Base{ID: uuid.New()},
		Email: "ana@example.com",
	}
	apt := &model.Appointment{
		Base:        model.Base{ID: uuid.New()},
		PatientID:   patient.ID,
		StartTime:   time.Now().Add(48 * time.Hour),
		ServiceType: model.ServiceTypeCheckup,
	}
	patients := &fakePatientRepo{patients: map[uuid.UUID]*model.Patient{patient.ID: patient}}

	t.Run("publishes and confirms created appointments", func(t *testing.T) {
		event := outboxEvent(t, model.EventAppointmentCreated, apt)
		repo := newFakeOutboxRepo(event)
		broker := &fakeBroker{}
		sender := &fakeSender{}
		p := NewOutboxProcessor(repo, patients, broker, sender, testProcessorConfig(true), l, testMetrics)

		require.NoError(t, p.processEvents(context.Background()))

		assert.Equal(t, []string{model.EventAppointmentCreated}, broker.published)
		assert.Equal(t, model.OutboxStatusProcessed, repo.statuses[event.ID])
		assert.Equal(t, []string{patient.Email}, sender.confirmations)
	})

	t.Run("no email when sending is disabled", func(t *testing.T) {
		event := outboxEvent(t, model.EventAppointmentCreated, apt)
		repo := newFakeOutboxRepo(event)
		sender := &fakeSender{}
		p := NewOutboxProcessor(repo, patients, &fakeBroker{}, sender, testProcessorConfig(false), l, testMetrics)

		require.NoError(t, p.processEvents(context.Background()))

		assert.Equal(t, model.OutboxStatusProcessed, repo.statuses[event.ID])
		assert.Empty(t, sender.confirmations)
	})

	t.Run("other event types are published without email", func(t *testing.T) {
		event := outboxEvent(t, model.EventAppointmentCancelled, apt)
		repo := newFakeOutboxRepo(event)
		broker := &fakeBroker{}
		sender := &fakeSender{}
		p := NewOutboxProcessor(repo, patients, broker, sender, testProcessorConfig(true), l, testMetrics)

		require.NoError(t, p.processEvents(context.Background()))

		assert.Equal(t, []string{model.EventAppointmentCancelled}, broker.published)
		assert.Empty(t, sender.confirmations)
	})

	t.Run("failed send leaves the event processed", func(t *testing.T) {
		event := outboxEvent(t, model.EventAppointmentCreated, apt)
		repo := newFakeOutboxRepo(event)
		sender := &fakeSender{failSend: true}
		p := NewOutboxProcessor(repo, patients, &fakeBroker{}, sender, testProcessorConfig(true), l, testMetrics)

		require.NoError(t, p.processEvents(context.Background()))

		assert.Equal(t, model.OutboxStatusProcessed, repo.statuses[event.ID])
	})

	t.Run("publish failure marks the event failed and skips email", func(t *testing.T) {
		event := outboxEvent(t, model.EventAppointmentCreated, apt)
		repo := newFakeOutboxRepo(event)
		sender := &fakeSender{}
		p := NewOutboxProcessor(repo, patients, &fakeBroker{failPublish: true}, sender, testProcessorConfig(true), l, testMetrics)

		require.NoError(t, p.processEvents(context.Background()))

		assert.Equal(t, model.OutboxStatusFailed, repo.statuses[event.ID])
		assert.Empty(t, sender.confirmations)
	})

	t.Run("patient without email is skipped", func(t *testing.T) {
		silent := &model.Patient{Base: model.Base{ID: uuid.New()}}
		repo := newFakeOutboxRepo(outboxEvent(t, model.EventAppointmentCreated, &model.Appointment{
			Base:      model.Base{ID: uuid.New()},
			PatientID: silent.ID,
		}))
		sender := &fakeSender{}
		p := NewOutboxProcessor(repo,
			&fakePatientRepo{patients: map[uuid.UUID]*model.Patient{silent.ID: silent}},
			&fakeBroker{}, sender, testProcessorConfig(true), l, testMetrics)

		require.NoError(t, p.processEvents(context.Background()))
		assert.Empty(t, sender.confirmations)
	})
}
