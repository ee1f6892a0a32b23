// Package explain renders scoring decisions as human-readable reports for
// loan officers. It derives only qualitative labels; every number comes
// straight from the score result.
package explain

import (
	"fmt"
	"strconv"
	"strings"

	"agri-bnpl-engine/internal/models"
)

// Explain builds the factor-by-factor explanation report for a scored
// profile. The weighted contributions are copied verbatim from the score
// result so the report always reconciles with the decision.
func Explain(profile *models.FarmerProfile, result *models.ScoreResult) *models.ExplanationReport {
	factors := []models.FactorEntry{
		regionFactor(profile, result),
		experienceFactor(profile, result),
		revenueFactor(profile, result),
		historyFactor(profile, result),
		landFactor(profile, result),
		irrigationFactor(profile, result),
		bankLoanFactor(profile, result),
		farmTypeFactor(profile, result),
	}

	return &models.ExplanationReport{
		FarmerID:               profile.FarmerID,
		FarmerName:             profile.Name,
		RiskScore:              result.RiskScore,
		RiskCategory:           result.RiskCategory,
		Decision:               result.Decision,
		Summary:                summarize(profile, result),
		Factors:                factors,
		BNPLLimit:              result.BNPLLimit,
		InstallmentMonths:      result.RecommendedInstallmentMonths,
		LatePaymentProbability: result.LatePaymentProbability,
		ConfidenceLevel:        result.ConfidenceLevel,
	}
}

func regionFactor(p *models.FarmerProfile, r *models.ScoreResult) models.FactorEntry {
	raw := r.RawScores.Region
	var desc string
	switch {
	case raw >= 80:
		desc = "excellent agricultural zone"
	case raw >= 70:
		desc = "good agricultural zone"
	default:
		desc = "moderate agricultural zone"
	}

	return models.FactorEntry{
		Factor:               "Region",
		Value:                p.Region,
		RawScore:             raw,
		WeightedContribution: r.Explanation.Region,
		MaxContribution:      12.0,
		Icon:                 iconFor(raw >= 70),
		Description:          fmt.Sprintf("Region (%s): +%s points (%s)", p.Region, points(r.Explanation.Region), desc),
	}
}

func experienceFactor(p *models.FarmerProfile, r *models.ScoreResult) models.FactorEntry {
	raw := r.RawScores.Experience
	var desc string
	switch {
	case p.YearsExperience >= 10:
		desc = "highly experienced farmer"
	case p.YearsExperience >= 5:
		desc = "experienced farmer"
	case p.YearsExperience >= 3:
		desc = "developing farmer"
	default:
		desc = "new farmer"
	}

	return models.FactorEntry{
		Factor:               "Experience",
		Value:                fmt.Sprintf("%d years", p.YearsExperience),
		RawScore:             raw,
		WeightedContribution: r.Explanation.Experience,
		MaxContribution:      15.0,
		Icon:                 iconFor(raw >= 65),
		Description:          fmt.Sprintf("Experience (%d years): +%s points (%s)", p.YearsExperience, points(r.Explanation.Experience), desc),
	}
}

func revenueFactor(p *models.FarmerProfile, r *models.ScoreResult) models.FactorEntry {
	raw := r.RawScores.Revenue
	var desc string
	switch p.SeasonalRevenueVolatility {
	case models.VolatilityLow:
		desc = "stable income"
	case models.VolatilityMedium:
		desc = "moderate seasonality"
	default:
		desc = "high seasonality risk"
	}

	return models.FactorEntry{
		Factor:               "Revenue Pattern",
		Value:                fmt.Sprintf("%s AZN/month (%s volatility)", amount(p.AverageMonthlyRevenue), p.SeasonalRevenueVolatility),
		RawScore:             raw,
		WeightedContribution: r.Explanation.Revenue,
		MaxContribution:      20.0,
		Icon:                 iconFor(raw >= 60),
		Description:          fmt.Sprintf("Revenue Pattern: +%s points (%s)", points(r.Explanation.Revenue), desc),
	}
}

func historyFactor(p *models.FarmerProfile, r *models.ScoreResult) models.FactorEntry {
	raw := r.RawScores.History
	var desc string
	switch {
	case p.PreviousBNPLCount == 0:
		desc = "no previous BNPL history"
	case p.PreviousBNPLStatus == "all_on_time":
		desc = fmt.Sprintf("%d on-time payments", p.PreviousBNPLCount)
	default:
		desc = fmt.Sprintf("mixed payment record (%s)", strings.ReplaceAll(p.PreviousBNPLStatus, "_", " "))
	}

	return models.FactorEntry{
		Factor:               "BNPL History",
		Value:                strings.ReplaceAll(p.PreviousBNPLStatus, "_", " "),
		RawScore:             raw,
		WeightedContribution: r.Explanation.History,
		MaxContribution:      15.0,
		Icon:                 iconFor(raw >= 60),
		Description:          fmt.Sprintf("BNPL History: +%s points (%s)", points(r.Explanation.History), desc),
	}
}

func landFactor(p *models.FarmerProfile, r *models.ScoreResult) models.FactorEntry {
	value, desc := "Not Owner", "rents / does not own farmland"
	if p.LandOwnership {
		value, desc = "Owner", "owns the farmland"
	}

	return models.FactorEntry{
		Factor:               "Land Ownership",
		Value:                value,
		RawScore:             r.RawScores.LandOwnership,
		WeightedContribution: r.Explanation.LandOwnership,
		MaxContribution:      12.0,
		Icon:                 iconFor(p.LandOwnership),
		Description:          fmt.Sprintf("Land Ownership: +%s points (%s)", points(r.Explanation.LandOwnership), desc),
	}
}

func irrigationFactor(p *models.FarmerProfile, r *models.ScoreResult) models.FactorEntry {
	value, desc := "No", "no irrigation system"
	if p.HasIrrigation {
		value, desc = "Yes", "has irrigation system"
	}

	return models.FactorEntry{
		Factor:               "Irrigation System",
		Value:                value,
		RawScore:             r.RawScores.Irrigation,
		WeightedContribution: r.Explanation.Irrigation,
		MaxContribution:      8.0,
		Icon:                 iconFor(p.HasIrrigation),
		Description:          fmt.Sprintf("Irrigation System: +%s points (%s)", points(r.Explanation.Irrigation), desc),
	}
}

func bankLoanFactor(p *models.FarmerProfile, r *models.ScoreResult) models.FactorEntry {
	value, desc := "No Loan", "no existing bank loan"
	if p.HasBankLoan {
		value, desc = "Has Loan", "has existing bank loan (debt burden)"
	}

	return models.FactorEntry{
		Factor:               "Bank Loan",
		Value:                value,
		RawScore:             r.RawScores.BankLoan,
		WeightedContribution: r.Explanation.BankLoan,
		MaxContribution:      10.0,
		Icon:                 iconFor(!p.HasBankLoan),
		Description:          fmt.Sprintf("Bank Loan: +%s points (%s)", points(r.Explanation.BankLoan), desc),
	}
}

func farmTypeFactor(p *models.FarmerProfile, r *models.ScoreResult) models.FactorEntry {
	raw := r.RawScores.FarmType

	return models.FactorEntry{
		Factor:               "Farm Type",
		Value:                titleCase(p.FarmType),
		RawScore:             raw,
		WeightedContribution: r.Explanation.FarmType,
		MaxContribution:      8.0,
		Icon:                 iconFor(raw >= 75),
		Description:          fmt.Sprintf("Farm Type (%s): +%s points", p.FarmType, points(r.Explanation.FarmType)),
	}
}

// summarize composes the overall narrative. Four branches: refusal with
// concrete deficiencies, then one affirmation per approved risk category.
func summarize(p *models.FarmerProfile, r *models.ScoreResult) string {
	score := points(r.RiskScore)

	if r.Decision == models.DecisionRefused {
		var b strings.Builder
		fmt.Fprintf(&b, "%s - LOAN REQUEST REFUSED. Risk score %s/100 is below the minimum threshold of 50. ", p.Name, score)
		b.WriteString("Multiple risk factors identified including ")
		if !p.LandOwnership {
			b.WriteString("no land ownership, ")
		}
		if p.HasBankLoan {
			b.WriteString("existing bank loan, ")
		}
		if !p.HasIrrigation {
			b.WriteString("no irrigation system, ")
		}
		b.WriteString("resulting in too high a risk for BNPL approval.")
		return b.String()
	}

	limit := commaInt(r.BNPLLimit)
	months := r.RecommendedInstallmentMonths

	switch r.RiskCategory {
	case models.RiskCategoryLow:
		return fmt.Sprintf(
			"%s presents a low-risk profile with a score of %s/100. Strong indicators across all factors. "+
				"APPROVED for maximum BNPL limit of %s AZN with %d-month term.",
			p.Name, score, limit, months)
	case models.RiskCategoryMedium:
		return fmt.Sprintf(
			"%s presents a moderate-risk profile with a score of %s/100. Positive indicators balanced with some areas of concern. "+
				"APPROVED for BNPL limit of %s AZN with %d-month term.",
			p.Name, score, limit, months)
	default:
		return fmt.Sprintf(
			"%s presents a higher-risk profile with a score of %s/100. Limited history or concerning indicators suggest caution. "+
				"APPROVED for reduced BNPL limit of %s AZN with %d-month short term.",
			p.Name, score, limit, months)
	}
}

func iconFor(pass bool) models.FactorIcon {
	if pass {
		return models.FactorIconCheck
	}
	return models.FactorIconWarning
}

// points renders a one-decimal contribution value ("18.0", "10.8").
func points(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// amount renders a revenue figure without trailing zeros ("2800", "1250.5").
func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// commaInt formats an integer with thousand separators ("5,000").
func commaInt(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// titleCase renders "animal_feed" as "Animal Feed".
func titleCase(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
