// Package models defines the data structures for the agri BNPL scoring engine.
package models

import (
	"strconv"
	"strings"
)

// Volatility represents the seasonal revenue volatility of a farm.
type Volatility string

const (
	VolatilityLow      Volatility = "low"
	VolatilityMedium   Volatility = "medium"
	VolatilityHigh     Volatility = "high"
	VolatilityVeryHigh Volatility = "very_high"
)

// FarmerProfile is the input record for a single scoring request.
// Profiles are read-only once constructed; every pipeline stage
// derives its output from the profile without mutating it.
type FarmerProfile struct {
	FarmerID                  string     `json:"farmer_id"`
	Name                      string     `json:"name"`
	Region                    string     `json:"region"`
	FarmType                  string     `json:"farm_type"`
	CropType                  string     `json:"crop_type"`
	FarmSizeHectares          float64    `json:"farm_size_hectares"`
	YearsExperience           int        `json:"years_experience"`
	PreviousBNPLCount         int        `json:"previous_bnpl_count"`
	PreviousBNPLStatus        string     `json:"previous_bnpl_status"`
	AverageMonthlyRevenue     float64    `json:"average_monthly_revenue"`
	SeasonalRevenueVolatility Volatility `json:"seasonal_revenue_volatility"`
	LandOwnership             bool       `json:"land_ownership"`
	HasIrrigation             bool       `json:"has_irrigation"`
	HasBankLoan               bool       `json:"has_bank_loan"`
	RequestedAmount           float64    `json:"requested_amount"`
	RequestedProducts         []string   `json:"requested_products,omitempty"`
}

// BNPLHistoryKind classifies a farmer's repayment record.
type BNPLHistoryKind string

const (
	BNPLHistoryNone      BNPLHistoryKind = "none"        // no prior BNPL loans
	BNPLHistoryAllOnTime BNPLHistoryKind = "all_on_time" // every installment paid on time
	BNPLHistoryMixed     BNPLHistoryKind = "mixed"       // record includes late payments
	BNPLHistoryOnTime    BNPLHistoryKind = "on_time"     // generally on time, no counts given
	BNPLHistoryUnknown   BNPLHistoryKind = "unknown"     // status did not match any known form
)

// BNPLHistory is the normalized repayment record. Upstream data encodes
// history as status strings like "all_on_time" or "2_late_3_on_time";
// parsing happens once here so the scorer only sees counts.
type BNPLHistory struct {
	Kind        BNPLHistoryKind `json:"kind"`
	Count       int             `json:"count"`
	LateCount   int             `json:"late_count"`
	OnTimeCount int             `json:"on_time_count"`
}

// ParseBNPLHistory normalizes the legacy status-string encoding into a
// BNPLHistory. Composite statuses embed counts as digit-prefixed segments
// ("2_late_3_on_time"); a segment without a digit prefix counts as 1.
// Statuses that match no known form are classified as unknown rather than
// rejected.
func ParseBNPLHistory(count int, status string) BNPLHistory {
	h := BNPLHistory{Count: count}

	switch {
	case count == 0:
		h.Kind = BNPLHistoryNone
	case status == "all_on_time":
		h.Kind = BNPLHistoryAllOnTime
	case strings.Contains(status, "late"):
		h.Kind = BNPLHistoryMixed
		h.LateCount, h.OnTimeCount = countHistorySegments(status)
	case strings.Contains(status, "on_time"):
		h.Kind = BNPLHistoryOnTime
	default:
		h.Kind = BNPLHistoryUnknown
	}

	return h
}

// countHistorySegments walks the underscore-separated tokens of a composite
// status and tallies late vs on-time segments. "on_time" spans two tokens.
func countHistorySegments(status string) (late, onTime int) {
	parts := strings.Split(status, "_")
	for i, part := range parts {
		switch {
		case part == "late":
			late += segmentCount(parts, i)
		case part == "on" && i+1 < len(parts) && parts[i+1] == "time":
			onTime += segmentCount(parts, i)
		}
	}
	return late, onTime
}

// segmentCount returns the digit prefix preceding token i, or 1 when absent.
func segmentCount(parts []string, i int) int {
	if i > 0 {
		if n, err := strconv.Atoi(parts[i-1]); err == nil {
			return n
		}
	}
	return 1
}
