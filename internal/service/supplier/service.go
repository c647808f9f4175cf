package supplier

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dentix/clinic-api/internal/model"
	"github.com/dentix/clinic-api/internal/repository"
	apperrors "github.com/dentix/clinic-api/pkg/errors"
)

type Service struct {
	repo repository.SupplierRepository
}

func NewService(repo repository.SupplierRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateSupplier(ctx context.Context, req *model.CreateSupplierRequest) (*model.Supplier, error) {
	now := time.Now()
	supplier := &model.Supplier{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Status:        model.SupplierStatusActive,
	}

	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return supplier, nil
}

func (s *Service) GetSupplier(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("supplier", err)
	}
	return supplier, nil
}

func (s *Service) UpdateSupplier(ctx context.Context, id uuid.UUID, req *model.UpdateSupplierRequest) (*model.Supplier, error) {
	supplier, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("supplier", err)
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.ContactPerson != nil {
		supplier.ContactPerson = *req.ContactPerson
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	if req.Status != nil {
		supplier.Status = *req.Status
	}

	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	return supplier, nil
}

func (s *Service) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	return nil
}

func (s *Service) ListSuppliers(ctx context.Context) ([]*model.Supplier, error) {
	suppliers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return suppliers, nil
}
