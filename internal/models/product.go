// Package models defines the data structures for the agri BNPL scoring engine.
package models

// CropAll is the catalog sentinel marking a product as compatible with
// every crop.
const CropAll = "all"

// ProductCatalogEntry is one product in the static agri-input catalog.
type ProductCatalogEntry struct {
	ProductID          string   `json:"product_id"`
	Category           string   `json:"category"`
	Name               string   `json:"name"`
	NameAZ             string   `json:"name_az,omitempty"`
	CompatibleCrops    []string `json:"compatible_crops"`
	UnitPrice          float64  `json:"unit_price"`
	Unit               string   `json:"unit"`
	QuantityPerHectare float64  `json:"quantity_per_hectare"`
	SeasonalTiming     string   `json:"seasonal_timing,omitempty"`
}

// SupportsCrop reports whether the entry is usable for the given crop,
// either explicitly or via the "all" sentinel.
func (p *ProductCatalogEntry) SupportsCrop(crop string) bool {
	for _, c := range p.CompatibleCrops {
		if c == crop || c == CropAll {
			return true
		}
	}
	return false
}

// Priority ranks how essential a product category is for a farm.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation is one budget-fitted product suggestion.
type Recommendation struct {
	ProductID         string   `json:"product_id"`
	Category          string   `json:"category"`
	Name              string   `json:"name"`
	NameAZ            string   `json:"name_az,omitempty"`
	EstimatedQuantity string   `json:"estimated_quantity"`
	EstimatedPrice    int      `json:"estimated_price"`
	Priority          Priority `json:"priority"`
	MatchScore        int      `json:"match_score"`
	SeasonalTiming    string   `json:"seasonal_timing,omitempty"`
}

// MatchResult is the ordered, budget-constrained recommendation set for
// one farmer.
type MatchResult struct {
	FarmerID           string           `json:"farmer_id"`
	Recommendations    []Recommendation `json:"recommendations"`
	TotalEstimatedCost int              `json:"total_estimated_cost"`
}
