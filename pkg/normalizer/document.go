package normalizer

import (
	"fmt"
	"strings"

	"insurance-advisor-be/internal/entity"
)

// BuildDocument serializes a canonical policy into the single text blob fed
// to the embedding model. The segment order is fixed and empty segments are
// omitted, so identical policies always produce byte-identical text and
// re-ingestion stays idempotent.
func BuildDocument(p *entity.Policy) string {
	parts := make([]string, 0, 8)

	parts = append(parts, fmt.Sprintf("Policy: %s", p.Name))
	parts = append(parts, fmt.Sprintf("Category: %s", p.Category))

	if len(p.Features) > 0 {
		parts = append(parts, fmt.Sprintf("Features: %s", strings.Join(p.Features, ", ")))
	}

	parts = append(parts, fmt.Sprintf("Age eligibility: %d-%d years", p.EligibilityAgeMin, p.EligibilityAgeMax))

	if len(p.MaturityBenefits) > 0 {
		parts = append(parts, fmt.Sprintf("Maturity benefits: %s", strings.Join(p.MaturityBenefits, ", ")))
	}
	if len(p.TaxBenefits) > 0 {
		parts = append(parts, fmt.Sprintf("Tax benefits: %s", strings.Join(p.TaxBenefits, ", ")))
	}
	if len(p.PremiumOptions) > 0 {
		parts = append(parts, fmt.Sprintf("Premium options: %s", strings.Join(p.PremiumOptions, ", ")))
	}
	if p.SurrenderClause != "" {
		parts = append(parts, fmt.Sprintf("Surrender: %s", p.SurrenderClause))
	}

	return strings.Join(parts, " | ")
}
