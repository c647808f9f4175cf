package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dentix/clinic-api/internal/model"
	"github.com/dentix/clinic-api/internal/repository"
)

type supplierRepository struct {
	BaseRepository
}

func NewSupplierRepository(base BaseRepository) repository.SupplierRepository {
	return &supplierRepository{base}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *model.Supplier) error {
	query := `
		INSERT INTO suppliers (
			id, name, contact_person, email, phone, address, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		supplier.ID,
		supplier.Name,
		supplier.ContactPerson,
		supplier.Email,
		supplier.Phone,
		supplier.Address,
		supplier.Status,
		supplier.CreatedAt,
		supplier.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	return nil
}

func (r *supplierRepository) Get(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	query := `
		SELECT id, name, contact_person, email, phone, address, status,
			   created_at, updated_at
		FROM suppliers
		WHERE id = $1
	`
	var supplier model.Supplier
	err := r.db.GetContext(ctx, &supplier, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	return &supplier, nil
}

func (r *supplierRepository) Update(ctx context.Context, supplier *model.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $1, contact_person = $2, email = $3, phone = $4,
			address = $5, status = $6, updated_at = $7
		WHERE id = $8
	`
	supplier.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		supplier.Name,
		supplier.ContactPerson,
		supplier.Email,
		supplier.Phone,
		supplier.Address,
		supplier.Status,
		supplier.UpdatedAt,
		supplier.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update supplier: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("supplier not found")
	}

	return nil
}

func (r *supplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM suppliers
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("supplier not found")
	}

	return nil
}

func (r *supplierRepository) List(ctx context.Context) ([]*model.Supplier, error) {
	query := `
		SELECT id, name, contact_person, email, phone, address, status,
			   created_at, updated_at
		FROM suppliers
		ORDER BY name ASC
	`
	var suppliers []*model.Supplier
	err := r.db.SelectContext(ctx, &suppliers, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return suppliers, nil
}
