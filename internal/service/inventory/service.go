package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dentix/clinic-api/internal/model"
	"github.com/dentix/clinic-api/internal/repository"
	"github.com/dentix/clinic-api/internal/service/event"
	apperrors "github.com/dentix/clinic-api/pkg/errors"
	"github.com/dentix/clinic-api/pkg/metrics"
)

type Service struct {
	repo    repository.InventoryRepository
	events  *event.Service
	metrics *metrics.Metrics
}

func NewService(repo repository.InventoryRepository, events *event.Service, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		events:  events,
		metrics: m,
	}
}

func (s *Service) CreateItem(ctx context.Context, req *model.CreateInventoryItemRequest) (*model.InventoryItem, error) {
	now := time.Now()
	item := &model.InventoryItem{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ClinicID:     req.ClinicID,
		SupplierID:   req.SupplierID,
		Name:         req.Name,
		SKU:          req.SKU,
		Unit:         req.Unit,
		CurrentStock: req.CurrentStock,
		MinimumStock: req.MinimumStock,
		UnitCost:     req.UnitCost,
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return item, nil
}

func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("inventory item", err)
	}
	return item, nil
}

func (s *Service) UpdateItem(ctx context.Context, id uuid.UUID, req *model.UpdateInventoryItemRequest) (*model.InventoryItem, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("inventory item", err)
	}

	if req.SupplierID != nil {
		item.SupplierID = req.SupplierID
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.MinimumStock != nil {
		item.MinimumStock = *req.MinimumStock
	}
	if req.UnitCost != nil {
		item.UnitCost = *req.UnitCost
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}
	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return nil
}

func (s *Service) ListItems(ctx context.Context, filters *model.InventoryFilters) ([]*model.InventoryItem, error) {
	items, err := s.repo.ListItems(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return items, nil
}

func (s *Service) ListLowStock(ctx context.Context, clinicID uuid.UUID) ([]*model.InventoryItem, error) {
	items, err := s.repo.ListLowStock(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock items: %w", err)
	}
	if s.metrics != nil {
		s.metrics.LowStockItems.Set(float64(len(items)))
	}
	return items, nil
}

// RecordMovement applies a stock movement. Outgoing quantities may not drive
// stock below zero; adjustments carry a signed quantity.
func (s *Service) RecordMovement(ctx context.Context, itemID, userID uuid.UUID, req *model.CreateMovementRequest) (*model.InventoryItem, error) {
	delta, err := movementDelta(req.Type, req.Quantity)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	movement := &model.StockMovement{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ItemID:    itemID,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Reference: req.Reference,
		Notes:     req.Notes,
		CreatedBy: userID,
	}

	item, err := s.repo.ApplyMovement(ctx, movement, delta)
	if errors.Is(err, repository.ErrInsufficientStock) {
		return nil, apperrors.BadRequest("movement would drive stock below zero", err)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("inventory item", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to apply stock movement: %w", err)
	}

	if item.LowStock() && s.events != nil {
		if err := s.events.Record(ctx, model.EventInventoryLowStock, item); err != nil {
			log.Warn().Err(err).Str("item_id", item.ID.String()).Msg("failed to record low stock event")
		}
	}

	return item, nil
}

func (s *Service) ListMovements(ctx context.Context, itemID uuid.UUID) ([]*model.StockMovement, error) {
	movements, err := s.repo.ListMovements(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	return movements, nil
}

// movementDelta converts a movement into a signed stock change.
func movementDelta(movementType model.MovementType, quantity int) (int, error) {
	switch movementType {
	case model.MovementTypeIn:
		if quantity <= 0 {
			return 0, apperrors.BadRequest("incoming quantity must be positive", nil)
		}
		return quantity, nil
	case model.MovementTypeOut:
		if quantity <= 0 {
			return 0, apperrors.BadRequest("outgoing quantity must be positive", nil)
		}
		return -quantity, nil
	case model.MovementTypeAdjust:
		if quantity == 0 {
			return 0, apperrors.BadRequest("adjustment quantity must be non-zero", nil)
		}
		return quantity, nil
	default:
		return 0, apperrors.BadRequest(fmt.Sprintf("unknown movement type %q", movementType), nil)
	}
}
