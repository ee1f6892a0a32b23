package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agri-bnpl-engine/internal/models"
)

func strongProfile() *models.FarmerProfile {
	return &models.FarmerProfile{
		FarmerID:                  "F001",
		Name:                      "Strong Farmer",
		Region:                    "Shirvan",
		FarmType:                  "grain",
		CropType:                  "wheat",
		FarmSizeHectares:          45,
		YearsExperience:           12,
		PreviousBNPLCount:         3,
		PreviousBNPLStatus:        "all_on_time",
		AverageMonthlyRevenue:     2800,
		SeasonalRevenueVolatility: models.VolatilityLow,
		LandOwnership:             true,
		HasIrrigation:             true,
		HasBankLoan:               false,
		RequestedAmount:           4500,
	}
}

func weakProfile() *models.FarmerProfile {
	return &models.FarmerProfile{
		FarmerID:                  "F999",
		Name:                      "Weak Farmer",
		Region:                    "Atlantis",
		FarmType:                  "aquaponic",
		CropType:                  "kelp",
		FarmSizeHectares:          2,
		YearsExperience:           0,
		PreviousBNPLCount:         0,
		PreviousBNPLStatus:        "none",
		AverageMonthlyRevenue:     800,
		SeasonalRevenueVolatility: models.VolatilityVeryHigh,
		LandOwnership:             false,
		HasIrrigation:             false,
		HasBankLoan:               true,
		RequestedAmount:           3000,
	}
}

func TestRegionScore(t *testing.T) {
	assert.Equal(t, 90.0, RegionScore("Shirvan"))
	assert.Equal(t, 68.0, RegionScore("Goranboy"))
	assert.Equal(t, 65.0, RegionScore("Atlantis"))
}

func TestFarmTypeScore(t *testing.T) {
	assert.Equal(t, 85.0, FarmTypeScore("greenhouse"))
	assert.Equal(t, 70.0, FarmTypeScore("organic"))
	assert.Equal(t, 60.0, FarmTypeScore("aquaponic"))
}

func TestExperienceScore(t *testing.T) {
	tests := []struct {
		years int
		want  float64
	}{
		{20, 100}, {15, 100}, {12, 85}, {10, 85}, {7, 65}, {5, 65},
		{4, 45}, {3, 45}, {2, 25}, {1, 25}, {0, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExperienceScore(tt.years), "years=%d", tt.years)
	}
}

func TestRevenueScore(t *testing.T) {
	// magnitude band and volatility band blend 50/50
	assert.Equal(t, 82.5, RevenueScore(2800, models.VolatilityLow))    // 70/95
	assert.Equal(t, 90.0, RevenueScore(3200, models.VolatilityLow))    // 85/95
	assert.Equal(t, 22.5, RevenueScore(800, models.VolatilityVeryHigh)) // 25/20
	assert.Equal(t, 45.0, RevenueScore(1200, "erratic"))               // 40/50 fallback
	assert.Equal(t, 95.0, RevenueScore(4000, models.VolatilityLow))    // 95/95
}

func TestHistoryScore(t *testing.T) {
	tests := []struct {
		name   string
		count  int
		status string
		want   float64
	}{
		{"no history", 0, "", 40},
		{"clean record with repeat bonus", 3, "all_on_time", 96},
		{"clean record bonus capped", 10, "all_on_time", 100},
		{"mixed record below half late", 5, "2_late_3_on_time", 55},
		{"mixed record all late", 1, "1_late", 27},
		{"mixed record exactly half late", 4, "2_late_2_on_time", 33},
		{"on-time without counts", 2, "mostly_on_time", 84},
		{"unrecognized status", 1, "settled", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := models.ParseBNPLHistory(tt.count, tt.status)
			assert.Equal(t, tt.want, HistoryScore(h))
		})
	}
}

func TestBooleanFactorScores(t *testing.T) {
	assert.Equal(t, 90.0, LandOwnershipScore(true))
	assert.Equal(t, 35.0, LandOwnershipScore(false))
	assert.Equal(t, 90.0, IrrigationScore(true))
	assert.Equal(t, 40.0, IrrigationScore(false))
	assert.Equal(t, 30.0, BankLoanScore(true))
	assert.Equal(t, 85.0, BankLoanScore(false))
}

func TestScore_StrongProfile(t *testing.T) {
	result := Score(strongProfile())

	assert.Equal(t, "F001", result.FarmerID)
	assert.Equal(t, 87.4, result.RiskScore)
	assert.Equal(t, models.RiskCategoryLow, result.RiskCategory)
	assert.Equal(t, models.DecisionApproved, result.Decision)
	assert.Equal(t, 5000, result.BNPLLimit)
	assert.Equal(t, 18, result.RecommendedInstallmentMonths)
	assert.Equal(t, 13, result.LatePaymentProbability)
	assert.Equal(t, 72.0, result.ConfidenceLevel)

	raw := result.RawScores
	assert.Equal(t, 90.0, raw.Region)
	assert.Equal(t, 80.0, raw.FarmType)
	assert.Equal(t, 85.0, raw.Experience)
	assert.Equal(t, 82.5, raw.Revenue)
	assert.Equal(t, 96.0, raw.History)
	assert.Equal(t, 90.0, raw.LandOwnership)
	assert.Equal(t, 90.0, raw.Irrigation)
	assert.Equal(t, 85.0, raw.BankLoan)

	contrib := result.Explanation
	assert.Equal(t, 10.8, contrib.Region)
	assert.Equal(t, 6.4, contrib.FarmType)
	assert.Equal(t, 12.8, contrib.Experience)
	assert.Equal(t, 16.5, contrib.Revenue)
	assert.Equal(t, 14.4, contrib.History)
	assert.Equal(t, 10.8, contrib.LandOwnership)
	assert.Equal(t, 7.2, contrib.Irrigation)
	assert.Equal(t, 8.5, contrib.BankLoan)
}

func TestScore_StrongProfileHigherRevenueBand(t *testing.T) {
	p := strongProfile()
	p.AverageMonthlyRevenue = 3200

	result := Score(p)
	assert.Equal(t, 88.9, result.RiskScore)
	assert.Equal(t, models.RiskCategoryLow, result.RiskCategory)
}

func TestScore_WeakProfileRefused(t *testing.T) {
	result := Score(weakProfile())

	assert.Equal(t, 35.0, result.RiskScore)
	assert.Equal(t, models.RiskCategoryVeryHigh, result.RiskCategory)
	assert.Equal(t, models.DecisionRefused, result.Decision)
	assert.Equal(t, 0, result.BNPLLimit)
	assert.Equal(t, 0, result.RecommendedInstallmentMonths)
	assert.Equal(t, 90, result.LatePaymentProbability)
	assert.Equal(t, 60.0, result.ConfidenceLevel)
}

func TestScore_MediumTier(t *testing.T) {
	p := &models.FarmerProfile{
		FarmerID:                  "F100",
		Name:                      "Medium Farmer",
		Region:                    "Barda",
		FarmType:                  "organic",
		CropType:                  "tomato",
		FarmSizeHectares:          5,
		YearsExperience:           5,
		PreviousBNPLCount:         2,
		PreviousBNPLStatus:        "mostly_on_time",
		AverageMonthlyRevenue:     1600,
		SeasonalRevenueVolatility: models.VolatilityMedium,
		LandOwnership:             true,
		HasIrrigation:             false,
		HasBankLoan:               false,
		RequestedAmount:           2000,
	}

	result := Score(p)
	assert.Equal(t, 71.4, result.RiskScore)
	assert.Equal(t, models.RiskCategoryMedium, result.RiskCategory)
	assert.Equal(t, models.DecisionApproved, result.Decision)
	assert.Equal(t, 2140, result.BNPLLimit)
	assert.Equal(t, 8, result.RecommendedInstallmentMonths)
	assert.Equal(t, 39, result.LatePaymentProbability)
	assert.Equal(t, 68.0, result.ConfidenceLevel)
}

func TestScore_HighTier(t *testing.T) {
	p := &models.FarmerProfile{
		FarmerID:                  "F200",
		Name:                      "Borderline Farmer",
		Region:                    "Atlantis",
		FarmType:                  "aquaponic",
		CropType:                  "kelp",
		FarmSizeHectares:          3,
		YearsExperience:           3,
		PreviousBNPLCount:         0,
		PreviousBNPLStatus:        "none",
		AverageMonthlyRevenue:     1200,
		SeasonalRevenueVolatility: "",
		LandOwnership:             true,
		HasIrrigation:             true,
		HasBankLoan:               false,
		RequestedAmount:           1500,
	}

	result := Score(p)
	assert.Equal(t, 60.9, result.RiskScore)
	assert.Equal(t, models.RiskCategoryHigh, result.RiskCategory)
	assert.Equal(t, models.DecisionApproved, result.Decision)
	assert.Equal(t, 1227, result.BNPLLimit)
	assert.Equal(t, 5, result.RecommendedInstallmentMonths)
	assert.Equal(t, 63, result.LatePaymentProbability)
}

func TestScore_WeightsSumToOne(t *testing.T) {
	sum := WeightRegion + WeightFarmType + WeightExperience + WeightRevenue +
		WeightHistory + WeightLandOwnership + WeightIrrigation + WeightBankLoan
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestScore_Deterministic(t *testing.T) {
	p := strongProfile()
	first := Score(p)
	second := Score(p)
	assert.Equal(t, first, second)
}

func TestScore_ConfidenceCapped(t *testing.T) {
	p := strongProfile()
	p.PreviousBNPLCount = 8
	assert.Equal(t, 92.0, Score(p).ConfidenceLevel)

	p.PreviousBNPLCount = 20
	assert.Equal(t, 92.0, Score(p).ConfidenceLevel)
}

func TestScore_ExperienceMonotonic(t *testing.T) {
	p := weakProfile()

	var prev float64 = -1
	for _, years := range []int{0, 1, 3, 5, 10, 15} {
		p.YearsExperience = years
		result := Score(p)
		require.GreaterOrEqual(t, result.RiskScore, prev, "years=%d", years)
		prev = result.RiskScore
	}
}
