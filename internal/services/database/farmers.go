// Package database provides PostgreSQL access to the reference data.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"agri-bnpl-engine/internal/models"
)

// FarmerRepository handles farmer profile database operations.
type FarmerRepository struct {
	db *DB
}

// NewFarmerRepository creates a new farmer repository.
func NewFarmerRepository(db *DB) *FarmerRepository {
	return &FarmerRepository{db: db}
}

const farmerColumns = `farmer_id, name, region, farm_type, crop_type, farm_size_hectares,
		years_experience, previous_bnpl_count, previous_bnpl_status,
		average_monthly_revenue, seasonal_revenue_volatility,
		land_ownership, has_irrigation, has_bank_loan,
		requested_amount, requested_products`

// GetByID retrieves a farmer profile by its external identifier.
// Returns models.ErrFarmerNotFound when no row matches.
func (r *FarmerRepository) GetByID(ctx context.Context, farmerID string) (*models.FarmerProfile, error) {
	query := `SELECT ` + farmerColumns + ` FROM farmers WHERE farmer_id = $1`

	profile, err := scanFarmer(r.db.QueryRowContext(ctx, query, farmerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrFarmerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get farmer: %w", err)
	}

	return profile, nil
}

// GetAll retrieves every farmer profile ordered by identifier.
func (r *FarmerRepository) GetAll(ctx context.Context) ([]models.FarmerProfile, error) {
	query := `SELECT ` + farmerColumns + ` FROM farmers ORDER BY farmer_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query farmers: %w", err)
	}
	defer rows.Close()

	var farmers []models.FarmerProfile
	for rows.Next() {
		profile, err := scanFarmer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan farmer: %w", err)
		}
		farmers = append(farmers, *profile)
	}

	return farmers, rows.Err()
}

// Upsert inserts or replaces a farmer profile. Used by the seed script.
func (r *FarmerRepository) Upsert(ctx context.Context, p *models.FarmerProfile) error {
	query := `
		INSERT INTO farmers (
			farmer_id, name, region, farm_type, crop_type, farm_size_hectares,
			years_experience, previous_bnpl_count, previous_bnpl_status,
			average_monthly_revenue, seasonal_revenue_volatility,
			land_ownership, has_irrigation, has_bank_loan,
			requested_amount, requested_products, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (farmer_id) DO UPDATE SET
			name = EXCLUDED.name,
			region = EXCLUDED.region,
			farm_type = EXCLUDED.farm_type,
			crop_type = EXCLUDED.crop_type,
			farm_size_hectares = EXCLUDED.farm_size_hectares,
			years_experience = EXCLUDED.years_experience,
			previous_bnpl_count = EXCLUDED.previous_bnpl_count,
			previous_bnpl_status = EXCLUDED.previous_bnpl_status,
			average_monthly_revenue = EXCLUDED.average_monthly_revenue,
			seasonal_revenue_volatility = EXCLUDED.seasonal_revenue_volatility,
			land_ownership = EXCLUDED.land_ownership,
			has_irrigation = EXCLUDED.has_irrigation,
			has_bank_loan = EXCLUDED.has_bank_loan,
			requested_amount = EXCLUDED.requested_amount,
			requested_products = EXCLUDED.requested_products,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		p.FarmerID,
		p.Name,
		p.Region,
		p.FarmType,
		p.CropType,
		p.FarmSizeHectares,
		p.YearsExperience,
		p.PreviousBNPLCount,
		p.PreviousBNPLStatus,
		p.AverageMonthlyRevenue,
		string(p.SeasonalRevenueVolatility),
		p.LandOwnership,
		p.HasIrrigation,
		p.HasBankLoan,
		p.RequestedAmount,
		p.RequestedProducts,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert farmer: %w", err)
	}

	return nil
}

// scanFarmer scans a single row into a FarmerProfile.
func scanFarmer(row pgx.Row) (*models.FarmerProfile, error) {
	var p models.FarmerProfile
	var volatility string

	err := row.Scan(
		&p.FarmerID,
		&p.Name,
		&p.Region,
		&p.FarmType,
		&p.CropType,
		&p.FarmSizeHectares,
		&p.YearsExperience,
		&p.PreviousBNPLCount,
		&p.PreviousBNPLStatus,
		&p.AverageMonthlyRevenue,
		&volatility,
		&p.LandOwnership,
		&p.HasIrrigation,
		&p.HasBankLoan,
		&p.RequestedAmount,
		&p.RequestedProducts,
	)
	if err != nil {
		return nil, err
	}

	p.SeasonalRevenueVolatility = models.Volatility(volatility)
	return &p, nil
}
