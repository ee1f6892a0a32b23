// Package scoring implements the weighted multi-factor BNPL risk scorer.
//
// Decision bands:
//
//	< 50  : Refused
//	50-65 : short term, small amount (up to 1500 AZN, 6 months)
//	65-85 : mid term, moderate amount (up to 3500 AZN, 12 months)
//	85+   : maximum amount, long term (up to 5000 AZN, 18 months)
package scoring

import (
	"math"

	"agri-bnpl-engine/internal/models"
)

// Factor weights. Must sum to exactly 1.0.
const (
	WeightRegion        = 0.12
	WeightFarmType      = 0.08
	WeightExperience    = 0.15
	WeightRevenue       = 0.20
	WeightHistory       = 0.15
	WeightLandOwnership = 0.12
	WeightIrrigation    = 0.08
	WeightBankLoan      = 0.10
)

// regionScores ranks regions by agricultural productivity and infrastructure.
var regionScores = map[string]float64{
	"Shirvan":   90,
	"Ganja":     85,
	"Lankaran":  82,
	"Baku":      80,
	"Shamkir":   88,
	"Guba":      78,
	"Sheki":     75,
	"Shamakhi":  80,
	"Qabala":    77,
	"Qakh":      72,
	"Masalli":   74,
	"Barda":     70,
	"Goranboy":  68,
	"Yevlakh":   72,
	"Agdash":    75,
	"Ismayilli": 73,
}

var farmTypeScores = map[string]float64{
	"grain":      80,
	"vegetable":  75,
	"livestock":  78,
	"greenhouse": 85,
	"mixed":      82,
	"organic":    70,
	"orchard":    80,
}

var volatilityScores = map[models.Volatility]float64{
	models.VolatilityLow:      95,
	models.VolatilityMedium:   70,
	models.VolatilityHigh:     45,
	models.VolatilityVeryHigh: 20,
}

// Fallback scores for categorical values outside the lookup tables.
const (
	unknownRegionScore     = 65
	unknownFarmTypeScore   = 60
	unknownVolatilityScore = 50
)

// RegionScore returns the raw score for a region, falling back to a neutral
// default for regions outside the table.
func RegionScore(region string) float64 {
	if s, ok := regionScores[region]; ok {
		return s
	}
	return unknownRegionScore
}

// FarmTypeScore returns the raw score for a farm type.
func FarmTypeScore(farmType string) float64 {
	if s, ok := farmTypeScores[farmType]; ok {
		return s
	}
	return unknownFarmTypeScore
}

// ExperienceScore is a step function over years of farming experience.
func ExperienceScore(years int) float64 {
	switch {
	case years >= 15:
		return 100
	case years >= 10:
		return 85
	case years >= 5:
		return 65
	case years >= 3:
		return 45
	case years >= 1:
		return 25
	default:
		return 10
	}
}

// RevenueScore blends revenue magnitude with seasonal volatility 50/50.
func RevenueScore(avgMonthlyRevenue float64, volatility models.Volatility) float64 {
	var magnitude float64
	switch {
	case avgMonthlyRevenue >= 4000:
		magnitude = 95
	case avgMonthlyRevenue >= 3000:
		magnitude = 85
	case avgMonthlyRevenue >= 2000:
		magnitude = 70
	case avgMonthlyRevenue >= 1500:
		magnitude = 55
	case avgMonthlyRevenue >= 1000:
		magnitude = 40
	default:
		magnitude = 25
	}

	volScore, ok := volatilityScores[volatility]
	if !ok {
		volScore = unknownVolatilityScore
	}
	return magnitude*0.5 + volScore*0.5
}

// HistoryScore scores the normalized BNPL repayment record. A clean record
// starts at 90, a mixed record is based on the late ratio, and a repeat
// borrower earns a small bonus capped at 10 points.
func HistoryScore(h models.BNPLHistory) float64 {
	if h.Kind == models.BNPLHistoryNone {
		return 40 // no history, neutral-low
	}

	var base float64
	switch h.Kind {
	case models.BNPLHistoryAllOnTime:
		base = 90
	case models.BNPLHistoryMixed:
		total := h.LateCount + h.OnTimeCount
		lateRatio := 0.5
		if total > 0 {
			lateRatio = float64(h.LateCount) / float64(total)
		}
		switch {
		case lateRatio >= 0.5:
			base = 25
		case lateRatio >= 0.3:
			base = 45
		default:
			base = 65
		}
	case models.BNPLHistoryOnTime:
		base = 80
	default:
		base = 40
	}

	bonus := math.Min(float64(h.Count)*2, 10)
	return math.Min(base+bonus, 100)
}

// LandOwnershipScore scores farmland ownership.
func LandOwnershipScore(ownsLand bool) float64 {
	if ownsLand {
		return 90
	}
	return 35
}

// IrrigationScore scores irrigation availability.
func IrrigationScore(hasIrrigation bool) float64 {
	if hasIrrigation {
		return 90
	}
	return 40
}

// BankLoanScore scores existing debt burden. Holding a bank loan is the
// negative case here.
func BankLoanScore(hasLoan bool) float64 {
	if hasLoan {
		return 30
	}
	return 85
}

// RawScores computes all eight factor sub-scores for a profile.
func RawScores(profile *models.FarmerProfile) models.RawFactorScores {
	history := models.ParseBNPLHistory(profile.PreviousBNPLCount, profile.PreviousBNPLStatus)

	return models.RawFactorScores{
		Region:        RegionScore(profile.Region),
		FarmType:      FarmTypeScore(profile.FarmType),
		Experience:    ExperienceScore(profile.YearsExperience),
		Revenue:       RevenueScore(profile.AverageMonthlyRevenue, profile.SeasonalRevenueVolatility),
		History:       HistoryScore(history),
		LandOwnership: LandOwnershipScore(profile.LandOwnership),
		Irrigation:    IrrigationScore(profile.HasIrrigation),
		BankLoan:      BankLoanScore(profile.HasBankLoan),
	}
}

// Score runs the full scoring pipeline for a profile: raw factor scores,
// weighted aggregation, decision tiering, and confidence. It never fails;
// unknown categorical values resolve to their documented fallbacks.
func Score(profile *models.FarmerProfile) *models.ScoreResult {
	raw := RawScores(profile)

	riskScore := round1(
		raw.Region*WeightRegion +
			raw.FarmType*WeightFarmType +
			raw.Experience*WeightExperience +
			raw.Revenue*WeightRevenue +
			raw.History*WeightHistory +
			raw.LandOwnership*WeightLandOwnership +
			raw.Irrigation*WeightIrrigation +
			raw.BankLoan*WeightBankLoan,
	)

	result := &models.ScoreResult{
		FarmerID:  profile.FarmerID,
		RiskScore: riskScore,
		RawScores: raw,
		Explanation: models.FactorContributions{
			Region:        round1(raw.Region * WeightRegion),
			FarmType:      round1(raw.FarmType * WeightFarmType),
			Experience:    round1(raw.Experience * WeightExperience),
			Revenue:       round1(raw.Revenue * WeightRevenue),
			History:       round1(raw.History * WeightHistory),
			LandOwnership: round1(raw.LandOwnership * WeightLandOwnership),
			Irrigation:    round1(raw.Irrigation * WeightIrrigation),
			BankLoan:      round1(raw.BankLoan * WeightBankLoan),
		},
	}

	applyDecision(result)

	bonus := math.Min(float64(profile.PreviousBNPLCount)*4, 32)
	result.ConfidenceLevel = round1(60 + bonus)

	return result
}

// applyDecision maps the aggregate score onto the four decision tiers and
// derives limit, term, and late-payment probability.
func applyDecision(r *models.ScoreResult) {
	score := r.RiskScore

	switch {
	case score >= 85:
		r.Decision = models.DecisionApproved
		r.RiskCategory = models.RiskCategoryLow
		r.BNPLLimit = 5000
		r.RecommendedInstallmentMonths = 18
		r.LatePaymentProbability = maxInt(3, roundInt(100-score))
	case score >= 65:
		r.Decision = models.DecisionApproved
		r.RiskCategory = models.RiskCategoryMedium
		ratio := (score - 65) / 20
		r.BNPLLimit = roundInt(1500 + ratio*2000)
		r.RecommendedInstallmentMonths = roundInt(6 + ratio*6)
		r.LatePaymentProbability = maxInt(10, roundInt(100-score*0.85))
	case score >= 50:
		r.Decision = models.DecisionApproved
		r.RiskCategory = models.RiskCategoryHigh
		ratio := (score - 50) / 15
		r.BNPLLimit = roundInt(500 + ratio*1000)
		r.RecommendedInstallmentMonths = roundInt(3 + ratio*3)
		r.LatePaymentProbability = maxInt(20, roundInt(100-score*0.6))
	default:
		r.Decision = models.DecisionRefused
		r.RiskCategory = models.RiskCategoryVeryHigh
		r.BNPLLimit = 0
		r.RecommendedInstallmentMonths = 0
		r.LatePaymentProbability = maxInt(50, roundInt(100-score*0.3))
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
