package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentix/clinic-api/internal/model"
	"github.com/dentix/clinic-api/internal/repository"
	"github.com/dentix/clinic-api/internal/service/event"
	apperrors "github.com/dentix/clinic-api/pkg/errors"
)

type fakeInventoryRepo struct {
	items     map[uuid.UUID]*model.InventoryItem
	movements []*model.StockMovement
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{items: make(map[uuid.UUID]*model.InventoryItem)}
}

func (r *fakeInventoryRepo) CreateItem(_ context.Context, item *model.InventoryItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) GetItem(_ context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *fakeInventoryRepo) UpdateItem(_ context.Context, item *model.InventoryItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) DeleteItem(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeInventoryRepo) ListItems(_ context.Context, _ *model.InventoryFilters) ([]*model.InventoryItem, error) {
	out := make([]*model.InventoryItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeInventoryRepo) ListLowStock(_ context.Context, clinicID uuid.UUID) ([]*model.InventoryItem, error) {
	var out []*model.InventoryItem
	for _, item := range r.items {
		if item.ClinicID == clinicID && item.LowStock() {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) ApplyMovement(_ context.Context, movement *model.StockMovement, delta int) (*model.InventoryItem, error) {
	item, ok := r.items[movement.ItemID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if item.CurrentStock+delta < 0 {
		return nil, repository.ErrInsufficientStock
	}
	item.CurrentStock += delta
	r.movements = append(r.movements, movement)
	cp := *item
	return &cp, nil
}

func (r *fakeInventoryRepo) ListMovements(_ context.Context, itemID uuid.UUID) ([]*model.StockMovement, error) {
	var out []*model.StockMovement
	for _, m := range r.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeOutboxRepo struct {
	events []*model.OutboxEvent
}

func (r *fakeOutboxRepo) Create(_ context.Context, e *model.OutboxEvent) error {
	r.events = append(r.events, e)
	return nil
}

func (r *fakeOutboxRepo) GetPendingEventsWithLock(_ context.Context, _ int) ([]*model.OutboxEvent, error) {
	return r.events, nil
}

func (r *fakeOutboxRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ model.OutboxStatus, _ *string) error {
	return nil
}

func (r *fakeOutboxRepo) DeleteProcessedBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func seedItem(t *testing.T, svc *Service, stock, minimum int) *model.InventoryItem {
	t.Helper()
	item, err := svc.CreateItem(context.Background(), &model.CreateInventoryItemRequest{
		ClinicID:     uuid.New(),
		Name:         "composite resin",
		SKU:          "CR-100",
		Unit:         "syringe",
		CurrentStock: stock,
		MinimumStock: minimum,
		UnitCost:     12.50,
	})
	require.NoError(t, err)
	return item
}

func TestRecordMovement(t *testing.T) {
	userID := uuid.New()

	t.Run("outgoing movement reduces stock", func(t *testing.T) {
		repo := newFakeInventoryRepo()
		svc := NewService(repo, nil, nil)
		item := seedItem(t, svc, 10, 2)

		updated, err := svc.RecordMovement(context.Background(), item.ID, userID, &model.CreateMovementRequest{
			Type:     model.MovementTypeOut,
			Quantity: 3,
		})
		require.NoError(t, err)
		assert.Equal(t, 7, updated.CurrentStock)

		movements, err := svc.ListMovements(context.Background(), item.ID)
		require.NoError(t, err)
		require.Len(t, movements, 1)
		assert.Equal(t, model.MovementTypeOut, movements[0].Type)
		assert.Equal(t, 3, movements[0].Quantity)
	})

	t.Run("stock can never go negative", func(t *testing.T) {
		repo := newFakeInventoryRepo()
		svc := NewService(repo, nil, nil)
		item := seedItem(t, svc, 2, 0)

		_, err := svc.RecordMovement(context.Background(), item.ID, userID, &model.CreateMovementRequest{
			Type:     model.MovementTypeOut,
			Quantity: 5,
		})
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)

		// Stock and movement log are untouched after the rejection.
		got, err := svc.GetItem(context.Background(), item.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.CurrentStock)
		assert.Empty(t, repo.movements)
	})

	t.Run("draining exactly to zero is allowed", func(t *testing.T) {
		svc := NewService(newFakeInventoryRepo(), nil, nil)
		item := seedItem(t, svc, 5, 0)

		updated, err := svc.RecordMovement(context.Background(), item.ID, userID, &model.CreateMovementRequest{
			Type:     model.MovementTypeOut,
			Quantity: 5,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, updated.CurrentStock)
	})

	t.Run("negative adjustment is bounded the same way", func(t *testing.T) {
		svc := NewService(newFakeInventoryRepo(), nil, nil)
		item := seedItem(t, svc, 4, 0)

		_, err := svc.RecordMovement(context.Background(), item.ID, userID, &model.CreateMovementRequest{
			Type:     model.MovementTypeAdjust,
			Quantity: -6,
		})
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
	})

	t.Run("invalid quantities are rejected", func(t *testing.T) {
		svc := NewService(newFakeInventoryRepo(), nil, nil)
		item := seedItem(t, svc, 4, 0)

		for _, req := range []*model.CreateMovementRequest{
			{Type: model.MovementTypeIn, Quantity: -1},
			{Type: model.MovementTypeOut, Quantity: 0},
			{Type: model.MovementTypeAdjust, Quantity: 0},
			{Type: "transfer", Quantity: 1},
		} {
			_, err := svc.RecordMovement(context.Background(), item.ID, userID, req)
			appErr, ok := apperrors.As(err)
			require.True(t, ok, "request %+v must fail", req)
			assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
		}
	})

	t.Run("unknown item yields not found", func(t *testing.T) {
		svc := NewService(newFakeInventoryRepo(), nil, nil)

		_, err := svc.RecordMovement(context.Background(), uuid.New(), userID, &model.CreateMovementRequest{
			Type:     model.MovementTypeIn,
			Quantity: 1,
		})
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
	})

	t.Run("dropping to the minimum records a low stock event", func(t *testing.T) {
		outbox := &fakeOutboxRepo{}
		svc := NewService(newFakeInventoryRepo(), event.NewService(outbox), nil)
		item := seedItem(t, svc, 10, 5)

		_, err := svc.RecordMovement(context.Background(), item.ID, userID, &model.CreateMovementRequest{
			Type:     model.MovementTypeOut,
			Quantity: 5,
		})
		require.NoError(t, err)

		require.Len(t, outbox.events, 1)
		assert.Equal(t, model.EventInventoryLowStock, outbox.events[0].EventType)
	})

	t.Run("movements above the minimum stay quiet", func(t *testing.T) {
		outbox := &fakeOutboxRepo{}
		svc := NewService(newFakeInventoryRepo(), event.NewService(outbox), nil)
		item := seedItem(t, svc, 10, 2)

		_, err := svc.RecordMovement(context.Background(), item.ID, userID, &model.CreateMovementRequest{
			Type:     model.MovementTypeOut,
			Quantity: 3,
		})
		require.NoError(t, err)
		assert.Empty(t, outbox.events)
	})
}

func TestLowStockFlag(t *testing.T) {
	item := &model.InventoryItem{CurrentStock: 5, MinimumStock: 5}
	assert.True(t, item.LowStock(), "stock equal to minimum counts as low")

	item.CurrentStock = 6
	assert.False(t, item.LowStock())
}
