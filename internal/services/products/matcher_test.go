package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agri-bnpl-engine/internal/models"
)

func matchProfile() *models.FarmerProfile {
	return &models.FarmerProfile{
		FarmerID:          "F001",
		CropType:          "wheat",
		FarmSizeHectares:  45,
		YearsExperience:   12,
		RequestedAmount:   4500,
		RequestedProducts: []string{"seeds", "fertilizer"},
	}
}

func seedProduct() models.ProductCatalogEntry {
	return models.ProductCatalogEntry{
		ProductID:          "P001",
		Category:           "seeds",
		Name:               "Premium Wheat Seeds",
		CompatibleCrops:    []string{"wheat"},
		UnitPrice:          10,
		Unit:               "kg",
		QuantityPerHectare: 5,
		SeasonalTiming:     "autumn",
	}
}

func TestMatch_QuantityAndPriceScaleWithFarmSize(t *testing.T) {
	result := Match(matchProfile(), []models.ProductCatalogEntry{seedProduct()}, 5000)

	require.Len(t, result.Recommendations, 1)
	rec := result.Recommendations[0]
	assert.Equal(t, "P001", rec.ProductID)
	assert.Equal(t, "225 kg", rec.EstimatedQuantity)
	assert.Equal(t, 2250, rec.EstimatedPrice)
	assert.Equal(t, models.PriorityHigh, rec.Priority)
	assert.Equal(t, 2250, result.TotalEstimatedCost)
}

func TestMatch_FixedQuantityItem(t *testing.T) {
	profile := matchProfile()
	profile.RequestedProducts = []string{"equipment"}

	catalog := []models.ProductCatalogEntry{{
		ProductID:       "P010",
		Category:        "equipment",
		Name:            "Hand Sprayer",
		CompatibleCrops: []string{"all"},
		UnitPrice:       149.5,
		Unit:            "piece",
	}}

	result := Match(profile, catalog, 5000)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "1 piece", result.Recommendations[0].EstimatedQuantity)
	assert.Equal(t, 150, result.Recommendations[0].EstimatedPrice)
}

func TestMatch_PartialInclusionAtExactThreshold(t *testing.T) {
	profile := matchProfile()
	profile.RequestedAmount = 100

	result := Match(profile, []models.ProductCatalogEntry{seedProduct()}, 5000)

	require.Len(t, result.Recommendations, 1)
	rec := result.Recommendations[0]
	assert.Equal(t, 100, rec.EstimatedPrice)
	assert.Equal(t, "~4% of full quantity", rec.EstimatedQuantity)
	assert.Equal(t, 100, result.TotalEstimatedCost)
}

func TestMatch_SkipsBelowPartialThreshold(t *testing.T) {
	profile := matchProfile()
	profile.RequestedAmount = 99

	result := Match(profile, []models.ProductCatalogEntry{seedProduct()}, 5000)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, 0, result.TotalEstimatedCost)
}

func TestMatch_BudgetIsMinOfRequestedAndLimit(t *testing.T) {
	catalog := []models.ProductCatalogEntry{seedProduct()}

	// Limit caps the requested amount
	profile := matchProfile()
	profile.RequestedAmount = 4500
	result := Match(profile, catalog, 2000)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, 2000, result.Recommendations[0].EstimatedPrice)
	assert.LessOrEqual(t, result.TotalEstimatedCost, 2000)

	// Zero requested amount means zero budget
	profile.RequestedAmount = 0
	result = Match(profile, catalog, 5000)
	assert.Empty(t, result.Recommendations)
}

func TestMatch_CropCompatibility(t *testing.T) {
	profile := matchProfile()
	profile.CropType = "barley"

	catalog := []models.ProductCatalogEntry{
		seedProduct(), // wheat only
		{
			ProductID:          "P002",
			Category:           "fertilizer",
			Name:               "Universal NPK",
			CompatibleCrops:    []string{"all"},
			UnitPrice:          2,
			Unit:               "kg",
			QuantityPerHectare: 10,
		},
	}

	result := Match(profile, catalog, 5000)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "P002", result.Recommendations[0].ProductID)
}

func TestMatch_CategoryMatching(t *testing.T) {
	tests := []struct {
		name      string
		requested []string
		category  string
		want      bool
	}{
		{"exact", []string{"seeds"}, "seeds", true},
		{"requested substring of category", []string{"seed"}, "seeds", true},
		{"category substring of requested", []string{"seeds_premium"}, "seeds", true},
		{"organic seeds synonym", []string{"organic_seeds"}, "seeds", true},
		{"organic fertilizer synonym", []string{"organic_fertilizer"}, "fertilizer", true},
		{"unrelated", []string{"fertilizer"}, "seeds", false},
		{"empty request matches nothing", nil, "seeds", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, categoryRequested(tt.category, tt.requested))
		})
	}
}

func TestMatch_OrderedByPriorityThenScore(t *testing.T) {
	profile := matchProfile()
	profile.RequestedProducts = []string{"seeds", "fertilizer", "irrigation", "equipment"}

	catalog := []models.ProductCatalogEntry{
		{ProductID: "P010", Category: "equipment", Name: "Sprayer", CompatibleCrops: []string{"all"}, UnitPrice: 50, Unit: "piece"},
		{ProductID: "P005", Category: "irrigation", Name: "Drip Kit", CompatibleCrops: []string{"all"}, UnitPrice: 100, Unit: "set"},
		{ProductID: "P002", Category: "fertilizer", Name: "NPK", CompatibleCrops: []string{"all"}, UnitPrice: 1, Unit: "kg", QuantityPerHectare: 2},
		seedProduct(),
	}

	result := Match(profile, catalog, 5000)
	require.Len(t, result.Recommendations, 4)

	// High-priority categories first; explicit wheat match outranks "all"
	assert.Equal(t, "P001", result.Recommendations[0].ProductID)
	assert.Equal(t, "P002", result.Recommendations[1].ProductID)
	assert.Equal(t, "P005", result.Recommendations[2].ProductID)
	assert.Equal(t, "P010", result.Recommendations[3].ProductID)
}

func TestMatch_ScoreComponents(t *testing.T) {
	profile := matchProfile()

	// explicit crop +15, affordable whole-farm cost +10, experience +5
	p := seedProduct()
	assert.Equal(t, 100, matchScore(&p, profile))

	// no explicit crop match when compatible via sentinel only
	p.CompatibleCrops = []string{"all"}
	assert.Equal(t, 85, matchScore(&p, profile))

	// whole-farm cost above the requested amount loses the affordability bonus
	p.UnitPrice = 100
	assert.Equal(t, 75, matchScore(&p, profile))

	// novice farmer loses the experience bonus
	profile.YearsExperience = 2
	assert.Equal(t, 70, matchScore(&p, profile))
}

func TestMatch_NoEligibleProducts(t *testing.T) {
	profile := matchProfile()
	profile.RequestedProducts = []string{"veterinary_supplies"}

	result := Match(profile, []models.ProductCatalogEntry{seedProduct()}, 5000)
	assert.Equal(t, "F001", result.FarmerID)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, 0, result.TotalEstimatedCost)
}
