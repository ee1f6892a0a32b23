// Package models defines the data structures for the agri BNPL scoring engine.
package models

import (
	"errors"
	"strings"
)

// Common validation errors
var (
	ErrEmptyFarmerID     = errors.New("farmer_id cannot be empty")
	ErrEmptyRegion       = errors.New("region cannot be empty")
	ErrEmptyFarmType     = errors.New("farm_type cannot be empty")
	ErrEmptyCropType     = errors.New("crop_type cannot be empty")
	ErrInvalidFarmSize   = errors.New("farm_size_hectares must be positive")
	ErrInvalidExperience = errors.New("years_experience cannot be negative")
	ErrInvalidBNPLCount  = errors.New("previous_bnpl_count cannot be negative")
	ErrInvalidRevenue    = errors.New("average_monthly_revenue cannot be negative")
	ErrInvalidRequested  = errors.New("requested_amount cannot be negative")
	ErrFarmerNotFound    = errors.New("farmer not found")
)

// NormalizeVolatility lowercases and underscore-normalizes a free-form
// volatility value. Values outside the known vocabulary pass through
// unchanged; the scorer resolves those to its neutral default rather than
// rejecting.
func NormalizeVolatility(v string) Volatility {
	normalized := strings.ToLower(strings.TrimSpace(v))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")
	return Volatility(normalized)
}

// ValidateProfile checks the structural requirements of a profile before it
// enters the scoring pipeline. Unknown categorical values (region, farm type,
// volatility, history status) are not errors; the scorer resolves those with
// fixed fallback scores.
func ValidateProfile(p *FarmerProfile) error {
	if strings.TrimSpace(p.FarmerID) == "" {
		return ErrEmptyFarmerID
	}
	if strings.TrimSpace(p.Region) == "" {
		return ErrEmptyRegion
	}
	if strings.TrimSpace(p.FarmType) == "" {
		return ErrEmptyFarmType
	}
	if strings.TrimSpace(p.CropType) == "" {
		return ErrEmptyCropType
	}
	if p.FarmSizeHectares <= 0 {
		return ErrInvalidFarmSize
	}
	if p.YearsExperience < 0 {
		return ErrInvalidExperience
	}
	if p.PreviousBNPLCount < 0 {
		return ErrInvalidBNPLCount
	}
	if p.AverageMonthlyRevenue < 0 {
		return ErrInvalidRevenue
	}
	if p.RequestedAmount < 0 {
		return ErrInvalidRequested
	}
	return nil
}
