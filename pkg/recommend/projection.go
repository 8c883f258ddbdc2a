package recommend

import "strings"

// Projection holds the premium and cover estimates for one recommendation.
// Monthly and daily figures are always derived from the same annual base so
// the numbers displayed together can never drift apart.
type Projection struct {
	PremiumPercentage    float64
	AnnualPremium        float64
	MonthlyPremium       float64
	DailyPremium         float64
	RecommendedLifeCover float64
	AffordabilityBucket  string
}

// Premium percentage bounds and life-cover multipliers.
const (
	basePremiumPct      = 0.10
	maxPremiumPct       = 0.15
	perDependentPct     = 0.02
	perYearOver30Pct    = 0.001
	coverBaseMultiplier = 8.0
	coverPerDependent   = 2.0
)

// CalculateProjection estimates premium and cover figures for a profile and
// policy category. Negative inputs are clamped to zero rather than rejected.
func CalculateProjection(monthlyIncome, age, dependents int, category string) Projection {
	if monthlyIncome < 0 {
		monthlyIncome = 0
	}
	if dependents < 0 {
		dependents = 0
	}
	if age < 0 {
		age = 0
	}

	pct := basePremiumPct + float64(dependents)*perDependentPct
	if age > 30 {
		pct += float64(age-30) * perYearOver30Pct
	}
	if pct > maxPremiumPct {
		pct = maxPremiumPct
	}

	annualIncome := float64(monthlyIncome) * 12
	annual := annualIncome * pct * categoryFactor(category)

	p := Projection{
		PremiumPercentage:    pct,
		AnnualPremium:        annual,
		MonthlyPremium:       annual / 12,
		DailyPremium:         annual / 365,
		RecommendedLifeCover: annualIncome * (coverBaseMultiplier + coverPerDependent*float64(dependents)),
	}
	p.AffordabilityBucket = affordabilityBucket(p.MonthlyPremium, monthlyIncome)
	return p
}

// categoryFactor adjusts the premium for the coarse policy class: term
// cover is cheap, unit-linked and investment plans cost more, everything
// else is the endowment baseline. Matching is case-insensitive substring.
func categoryFactor(category string) float64 {
	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "term"):
		return 0.3
	case strings.Contains(c, "ulip"), strings.Contains(c, "investment"):
		return 1.2
	default:
		return 1.0
	}
}

// affordabilityBucket is a step function of premium-to-income ratio with
// inclusive boundaries: exactly 10% is still Excellent.
func affordabilityBucket(monthlyPremium float64, monthlyIncome int) string {
	if monthlyIncome <= 0 {
		return "High"
	}
	ratio := monthlyPremium / float64(monthlyIncome) * 100

	switch {
	case ratio <= 10:
		return "Excellent"
	case ratio <= 15:
		return "Good"
	case ratio <= 20:
		return "Moderate"
	default:
		return "High"
	}
}
