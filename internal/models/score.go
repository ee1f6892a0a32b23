// Package models defines the data structures for the agri BNPL scoring engine.
package models

// Decision is the credit decision for a scoring request.
type Decision string

const (
	DecisionApproved Decision = "Approved"
	DecisionRefused  Decision = "Refused"
)

// RiskCategory is the tier band a risk score falls into.
type RiskCategory string

const (
	RiskCategoryLow      RiskCategory = "Low"
	RiskCategoryMedium   RiskCategory = "Medium"
	RiskCategoryHigh     RiskCategory = "High"
	RiskCategoryVeryHigh RiskCategory = "Very High"
)

// RawFactorScores holds the 0-100 sub-score of each weighted factor.
type RawFactorScores struct {
	Region        float64 `json:"region"`
	FarmType      float64 `json:"farm_type"`
	Experience    float64 `json:"experience"`
	Revenue       float64 `json:"revenue"`
	History       float64 `json:"history"`
	LandOwnership float64 `json:"land_ownership"`
	Irrigation    float64 `json:"irrigation"`
	BankLoan      float64 `json:"bank_loan"`
}

// FactorContributions holds the weighted contribution of each factor to the
// final risk score, rounded to one decimal.
type FactorContributions struct {
	Region        float64 `json:"region_contribution"`
	FarmType      float64 `json:"farm_type_contribution"`
	Experience    float64 `json:"experience_contribution"`
	Revenue       float64 `json:"revenue_contribution"`
	History       float64 `json:"history_contribution"`
	LandOwnership float64 `json:"land_ownership_contribution"`
	Irrigation    float64 `json:"irrigation_contribution"`
	BankLoan      float64 `json:"bank_loan_contribution"`
}

// ScoreResult is the full output of the risk scorer for one profile.
type ScoreResult struct {
	FarmerID                     string              `json:"farmer_id"`
	RiskScore                    float64             `json:"risk_score"`
	RiskCategory                 RiskCategory        `json:"risk_category"`
	Decision                     Decision            `json:"decision"`
	BNPLLimit                    int                 `json:"bnpl_limit"`
	RecommendedInstallmentMonths int                 `json:"recommended_installment_months"`
	LatePaymentProbability       int                 `json:"late_payment_probability"`
	ConfidenceLevel              float64             `json:"confidence_level"`
	Explanation                  FactorContributions `json:"explanation"`
	RawScores                    RawFactorScores     `json:"raw_scores"`
}

// FarmerScoreSummary is a compact per-farmer view for dashboard listings.
type FarmerScoreSummary struct {
	FarmerID          string       `json:"farmer_id"`
	Name              string       `json:"name"`
	Region            string       `json:"region"`
	FarmType          string       `json:"farm_type"`
	CropType          string       `json:"crop_type"`
	RiskScore         float64      `json:"risk_score"`
	RiskCategory      RiskCategory `json:"risk_category"`
	Decision          Decision     `json:"decision"`
	BNPLLimit         int          `json:"bnpl_limit"`
	InstallmentMonths int          `json:"installment_months"`
}

// FactorIcon is the qualitative marker shown next to a factor entry.
type FactorIcon string

const (
	FactorIconCheck   FactorIcon = "check"
	FactorIconWarning FactorIcon = "warning"
)

// FactorEntry is one factor's row in an explanation report.
type FactorEntry struct {
	Factor               string     `json:"factor"`
	Value                string     `json:"value"`
	RawScore             float64    `json:"raw_score"`
	WeightedContribution float64    `json:"weighted_contribution"`
	MaxContribution      float64    `json:"max_contribution"`
	Icon                 FactorIcon `json:"icon"`
	Description          string     `json:"description"`
}

// ExplanationReport is the human-readable rendering of a scoring decision.
type ExplanationReport struct {
	FarmerID               string        `json:"farmer_id"`
	FarmerName             string        `json:"farmer_name"`
	RiskScore              float64       `json:"risk_score"`
	RiskCategory           RiskCategory  `json:"risk_category"`
	Decision               Decision      `json:"decision"`
	Summary                string        `json:"summary"`
	Factors                []FactorEntry `json:"factors"`
	BNPLLimit              int           `json:"bnpl_limit"`
	InstallmentMonths      int           `json:"installment_months"`
	LatePaymentProbability int           `json:"late_payment_probability"`
	ConfidenceLevel        float64       `json:"confidence_level"`
}
