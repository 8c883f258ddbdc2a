package entity

import (
	"strings"
	"time"
)

// Policy is the canonical, normalized form of one scraped policy record.
// It is immutable after insertion; a catalog reload replaces the whole set.
type Policy struct {
	Id                string // "<category_slug>_<plan_number>"; plan number falls back to "unknown_<row>"
	Name              string
	Category          string // never empty, defaults to "Unknown"
	Subcategory       string
	PlanNumber        string
	UinNumber         string
	EligibilityAgeMin int
	EligibilityAgeMax int
	IncomeRequirement string
	Features          []string
	MaturityBenefits  []string
	TaxBenefits       []string
	Terms             []string
	Riders            []string
	PremiumOptions    []string
	SurrenderClause   string
	SourceURL         string
	CompletenessScore float64 // [0,1], weighted presence of required fields
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// FeaturesText concatenates the benefit-bearing list fields into one
// searchable blob. Keyword scoring matches against this.
func (p *Policy) FeaturesText() string {
	parts := make([]string, 0, len(p.Features)+len(p.MaturityBenefits)+len(p.TaxBenefits))
	parts = append(parts, p.Features...)
	parts = append(parts, p.MaturityBenefits...)
	parts = append(parts, p.TaxBenefits...)
	return strings.Join(parts, " ")
}
