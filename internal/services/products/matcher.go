// Package products implements the budget-constrained product matcher.
package products

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"agri-bnpl-engine/internal/models"
)

// Budget requested_amount fallback when the profile omits it.
const defaultRequestedAmount = 5000

// Items cheaper than this never enter the result at a reduced quantity;
// below it a partial allocation is not worth stocking.
const minPartialBudget = 100

// categoryPriority ranks how essential each catalog category is.
var categoryPriority = map[string]models.Priority{
	"seeds":               models.PriorityHigh,
	"animal_feed":         models.PriorityHigh,
	"fertilizer":          models.PriorityHigh,
	"veterinary_supplies": models.PriorityHigh,
	"pesticide":           models.PriorityMedium,
	"irrigation":          models.PriorityMedium,
}

var priorityRank = map[models.Priority]int{
	models.PriorityHigh:   0,
	models.PriorityMedium: 1,
	models.PriorityLow:    2,
}

// Match filters the catalog for crop and category compatibility, prices each
// candidate for the farm size, ranks by priority and match score, and
// greedily fills the budget. The budget is min(requested_amount, bnplLimit).
// An empty eligible set is not an error; it yields an empty recommendation
// list with zero cost.
func Match(profile *models.FarmerProfile, catalog []models.ProductCatalogEntry, bnplLimit float64) *models.MatchResult {
	budget := math.Min(profile.RequestedAmount, bnplLimit)

	candidates := make([]models.Recommendation, 0, len(catalog))
	for i := range catalog {
		product := &catalog[i]
		if !product.SupportsCrop(profile.CropType) {
			continue
		}
		if !categoryRequested(product.Category, profile.RequestedProducts) {
			continue
		}

		quantity, price := estimate(product, profile.FarmSizeHectares)
		candidates = append(candidates, models.Recommendation{
			ProductID:         product.ProductID,
			Category:          product.Category,
			Name:              product.Name,
			NameAZ:            product.NameAZ,
			EstimatedQuantity: quantity,
			EstimatedPrice:    price,
			Priority:          priorityFor(product.Category),
			MatchScore:        matchScore(product, profile),
			SeasonalTiming:    product.SeasonalTiming,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := priorityRank[candidates[i].Priority], priorityRank[candidates[j].Priority]
		if ri != rj {
			return ri < rj
		}
		return candidates[i].MatchScore > candidates[j].MatchScore
	})

	included, totalCost := fillBudget(candidates, budget)
	return &models.MatchResult{
		FarmerID:           profile.FarmerID,
		Recommendations:    included,
		TotalEstimatedCost: totalCost,
	}
}

// categoryRequested applies the lenient category match: substring containment
// in either direction plus the two organic synonym rules. The asymmetric
// fuzziness intentionally favors recall over precision.
func categoryRequested(category string, requested []string) bool {
	for _, req := range requested {
		if strings.Contains(category, req) || strings.Contains(req, category) {
			return true
		}
		if req == "organic_seeds" && category == "seeds" {
			return true
		}
		if req == "organic_fertilizer" && category == "fertilizer" {
			return true
		}
	}
	return false
}

// estimate computes the quantity label and integer price for a product on a
// farm of the given size. A zero per-hectare rate marks a fixed-quantity item.
func estimate(p *models.ProductCatalogEntry, farmSize float64) (string, int) {
	if p.QuantityPerHectare > 0 {
		qty := math.Round(p.QuantityPerHectare*farmSize*10) / 10
		price := int(math.Round(p.UnitPrice * qty))
		return strconv.FormatFloat(qty, 'f', -1, 64) + " " + p.Unit, price
	}
	return "1 " + p.Unit, int(math.Round(p.UnitPrice))
}

// matchScore rates product suitability 0-100: 70 base, +15 for an explicit
// crop match, +10 when the whole-farm cost fits the requested amount, +5 for
// experienced farmers.
func matchScore(p *models.ProductCatalogEntry, profile *models.FarmerProfile) int {
	score := 70

	for _, crop := range p.CompatibleCrops {
		if crop == profile.CropType {
			score += 15
			break
		}
	}

	if p.QuantityPerHectare > 0 {
		requested := profile.RequestedAmount
		if requested <= 0 {
			requested = defaultRequestedAmount
		}
		totalCost := p.UnitPrice * p.QuantityPerHectare * profile.FarmSizeHectares
		if totalCost <= requested {
			score += 10
		}
	}

	if profile.YearsExperience >= 5 {
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score
}

func priorityFor(category string) models.Priority {
	if p, ok := categoryPriority[category]; ok {
		return p
	}
	return models.PriorityLow
}

// fillBudget greedily accumulates ranked candidates into the budget. A
// candidate that does not fit whole is included at a reduced price equal to
// the remaining budget when that remainder is at least minPartialBudget, with
// its quantity relabeled as an approximate share of the full amount.
// Candidates that neither fit nor qualify for partial inclusion are skipped.
func fillBudget(candidates []models.Recommendation, budget float64) ([]models.Recommendation, int) {
	var totalCost int
	included := make([]models.Recommendation, 0, len(candidates))

	for _, rec := range candidates {
		remaining := budget - float64(totalCost)
		if remaining <= 0 {
			break
		}
		switch {
		case float64(rec.EstimatedPrice) <= remaining:
			totalCost += rec.EstimatedPrice
			included = append(included, rec)
		case remaining >= minPartialBudget:
			ratio := remaining / float64(rec.EstimatedPrice)
			rec.EstimatedPrice = int(math.Round(remaining))
			rec.EstimatedQuantity = "~" + strconv.Itoa(int(math.Round(ratio*100))) + "% of full quantity"
			totalCost += rec.EstimatedPrice
			included = append(included, rec)
		}
	}

	return included, totalCost
}
