package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dentix/clinic-api/internal/model"
	"github.com/dentix/clinic-api/internal/repository"
)

type inventoryRepository struct {
	BaseRepository
}

func NewInventoryRepository(base BaseRepository) repository.InventoryRepository {
	return &inventoryRepository{base}
}

func (r *inventoryRepository) CreateItem(ctx context.Context, item *model.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (
			id, clinic_id, supplier_id, name, sku, unit,
			current_stock, minimum_stock, unit_cost, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.ClinicID,
		item.SupplierID,
		item.Name,
		item.SKU,
		item.Unit,
		item.CurrentStock,
		item.MinimumStock,
		item.UnitCost,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

func (r *inventoryRepository) GetItem(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	query := `
		SELECT id, clinic_id, supplier_id, name, sku, unit,
			   current_stock, minimum_stock, unit_cost, created_at, updated_at
		FROM inventory_items
		WHERE id = $1
	`
	var item model.InventoryItem
	err := r.db.GetContext(ctx, &item, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return &item, nil
}

func (r *inventoryRepository) UpdateItem(ctx context.Context, item *model.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET supplier_id = $1, name = $2, unit = $3, minimum_stock = $4,
			unit_cost = $5, updated_at = $6
		WHERE id = $7
	`
	item.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		item.SupplierID,
		item.Name,
		item.Unit,
		item.MinimumStock,
		item.UnitCost,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("inventory item not found")
	}

	return nil
}

func (r *inventoryRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM inventory_items
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("inventory item not found")
	}

	return nil
}

func (r *inventoryRepository) ListItems(ctx context.Context, filters *model.InventoryFilters) ([]*model.InventoryItem, error) {
	query := `
		SELECT id, clinic_id, supplier_id, name, sku, unit,
			   current_stock, minimum_stock, unit_cost, created_at, updated_at
		FROM inventory_items
		WHERE 1=1
	`
	var args []interface{}
	argCount := 1

	if filters.ClinicID != uuid.Nil {
		query += fmt.Sprintf(" AND clinic_id = $%d", argCount)
		args = append(args, filters.ClinicID)
		argCount++
	}

	if filters.SearchTerm != "" {
		query += fmt.Sprintf(" AND (name ILIKE '%%' || $%d || '%%' OR sku ILIKE '%%' || $%d || '%%')", argCount, argCount)
		args = append(args, filters.SearchTerm)
		argCount++
	}

	if filters.LowStock {
		query += " AND current_stock <= minimum_stock"
	}

	query += " ORDER BY name ASC"

	var items []*model.InventoryItem
	err := r.db.SelectContext(ctx, &items, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return items, nil
}

func (r *inventoryRepository) ListLowStock(ctx context.Context, clinicID uuid.UUID) ([]*model.InventoryItem, error) {
	query := `
		SELECT id, clinic_id, supplier_id, name, sku, unit,
			   current_stock, minimum_stock, unit_cost, created_at, updated_at
		FROM inventory_items
		WHERE clinic_id = $1
		AND current_stock <= minimum_stock
		ORDER BY name ASC
	`
	var items []*model.InventoryItem
	err := r.db.SelectContext(ctx, &items, query, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock items: %w", err)
	}
	return items, nil
}

func (r *inventoryRepository) ApplyMovement(ctx context.Context, movement *model.StockMovement, delta int) (*model.InventoryItem, error) {
	var item model.InventoryItem

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		// Conditional update keeps stock non-negative under concurrent movements.
		updateQuery := `
			UPDATE inventory_items
			SET current_stock = current_stock + $1, updated_at = $2
			WHERE id = $3
			AND current_stock + $1 >= 0
			RETURNING id, clinic_id, supplier_id, name, sku, unit,
					  current_stock, minimum_stock, unit_cost, created_at, updated_at
		`
		err := tx.GetContext(ctx, &item, updateQuery, delta, time.Now(), movement.ItemID)
		if errors.Is(err, sql.ErrNoRows) {
			exists, existsErr := r.itemExists(ctx, tx, movement.ItemID)
			if existsErr != nil {
				return existsErr
			}
			if !exists {
				return repository.ErrNotFound
			}
			return repository.ErrInsufficientStock
		}
		if err != nil {
			return fmt.Errorf("failed to adjust stock: %w", err)
		}

		insertQuery := `
			INSERT INTO stock_movements (
				id, item_id, type, quantity, reference, notes, created_by,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		if _, err := tx.ExecContext(ctx, insertQuery,
			movement.ID,
			movement.ItemID,
			movement.Type,
			movement.Quantity,
			movement.Reference,
			movement.Notes,
			movement.CreatedBy,
			movement.CreatedAt,
			movement.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to record stock movement: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *inventoryRepository) itemExists(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (bool, error) {
	var exists bool
	err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM inventory_items WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check item existence: %w", err)
	}
	return exists, nil
}

func (r *inventoryRepository) ListMovements(ctx context.Context, itemID uuid.UUID) ([]*model.StockMovement, error) {
	query := `
		SELECT id, item_id, type, quantity, reference, notes, created_by,
			   created_at, updated_at
		FROM stock_movements
		WHERE item_id = $1
		ORDER BY created_at DESC
	`
	var movements []*model.StockMovement
	err := r.db.SelectContext(ctx, &movements, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	return movements, nil
}
