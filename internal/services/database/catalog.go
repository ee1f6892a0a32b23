// Package database provides PostgreSQL access to the reference data.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"agri-bnpl-engine/internal/models"
)

// CatalogRepository handles product catalog database operations.
type CatalogRepository struct {
	db *DB
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

const productColumns = `product_id, category, name, name_az, compatible_crops,
		unit_price, unit, quantity_per_hectare, seasonal_timing`

// GetAll retrieves the full product catalog ordered by identifier.
func (r *CatalogRepository) GetAll(ctx context.Context) ([]models.ProductCatalogEntry, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY product_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.ProductCatalogEntry
	for rows.Next() {
		entry, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *entry)
	}

	return products, rows.Err()
}

// Upsert inserts or replaces a catalog entry. Used by the seed script.
func (r *CatalogRepository) Upsert(ctx context.Context, p *models.ProductCatalogEntry) error {
	query := `
		INSERT INTO products (
			product_id, category, name, name_az, compatible_crops,
			unit_price, unit, quantity_per_hectare, seasonal_timing, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (product_id) DO UPDATE SET
			category = EXCLUDED.category,
			name = EXCLUDED.name,
			name_az = EXCLUDED.name_az,
			compatible_crops = EXCLUDED.compatible_crops,
			unit_price = EXCLUDED.unit_price,
			unit = EXCLUDED.unit,
			quantity_per_hectare = EXCLUDED.quantity_per_hectare,
			seasonal_timing = EXCLUDED.seasonal_timing,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		p.ProductID,
		p.Category,
		p.Name,
		p.NameAZ,
		p.CompatibleCrops,
		p.UnitPrice,
		p.Unit,
		p.QuantityPerHectare,
		p.SeasonalTiming,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}

	return nil
}

// scanProduct scans a single row into a ProductCatalogEntry.
func scanProduct(row pgx.Row) (*models.ProductCatalogEntry, error) {
	var p models.ProductCatalogEntry

	err := row.Scan(
		&p.ProductID,
		&p.Category,
		&p.Name,
		&p.NameAZ,
		&p.CompatibleCrops,
		&p.UnitPrice,
		&p.Unit,
		&p.QuantityPerHectare,
		&p.SeasonalTiming,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}
