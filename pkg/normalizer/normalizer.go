package normalizer

import (
	"fmt"
	"strconv"
	"strings"

	"insurance-advisor-be/internal/entity"
)

// Fallback age bounds used whenever eligibility text cannot be parsed.
// A policy with unknown eligibility is treated as open to everyone rather
// than excluded.
const (
	DefaultAgeMin = 0
	DefaultAgeMax = 100
)

// AgeParseOutcome names the branch the age parser took, so every fallback
// is an explicit, testable decision instead of a swallowed error.
type AgeParseOutcome int

const (
	AgeParsed AgeParseOutcome = iota
	AgeMissing
	AgeNoSeparator
	AgeMinNotNumeric
	AgeMaxNotNumeric
	AgeInvertedRange
)

// ParseAgeRange parses eligibility text of the form "<min>-<max> years".
// Any failure falls back to the open [DefaultAgeMin, DefaultAgeMax] range.
func ParseAgeRange(raw string) (min int, max int, outcome AgeParseOutcome) {
	s := strings.TrimSpace(raw)
	if isBlank(s) {
		return DefaultAgeMin, DefaultAgeMax, AgeMissing
	}

	idx := strings.Index(s, "-")
	if idx < 0 {
		return DefaultAgeMin, DefaultAgeMax, AgeNoSeparator
	}

	minPart := strings.TrimSpace(s[:idx])
	minAge, err := strconv.Atoi(minPart)
	if err != nil {
		return DefaultAgeMin, DefaultAgeMax, AgeMinNotNumeric
	}

	// Max side may carry a unit, e.g. "65 years"; the first token is the number.
	maxPart := strings.TrimSpace(s[idx+1:])
	maxFields := strings.Fields(maxPart)
	if len(maxFields) == 0 {
		return DefaultAgeMin, DefaultAgeMax, AgeMaxNotNumeric
	}
	maxAge, err := strconv.Atoi(maxFields[0])
	if err != nil {
		return DefaultAgeMin, DefaultAgeMax, AgeMaxNotNumeric
	}

	if minAge > maxAge {
		return DefaultAgeMin, DefaultAgeMax, AgeInvertedRange
	}

	return minAge, maxAge, AgeParsed
}

// SplitList splits a pipe-delimited free-text field into trimmed entries,
// dropping empties and duplicates while preserving first-seen order.
func SplitList(raw string) []string {
	if isBlank(raw) {
		return []string{}
	}

	parts := strings.Split(raw, "|")
	seen := make(map[string]bool, len(parts))
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Normalize converts a raw scraped record into the canonical policy form.
// It never fails: every malformed field has a documented permissive default.
func Normalize(raw RawPolicyRecord) *entity.Policy {
	planNumber := strings.TrimSpace(raw.PlanNumber)
	if isBlank(planNumber) {
		// Synthesized per-row token keeps ids unique within one batch.
		planNumber = fmt.Sprintf("unknown_%d", raw.RowIndex)
	}

	category := strings.TrimSpace(raw.Category)
	if isBlank(category) {
		category = "Unknown"
	}

	ageMin, ageMax, _ := ParseAgeRange(raw.EligibilityAge)

	p := &entity.Policy{
		Id:                fmt.Sprintf("%s_%s", slug(category), planNumber),
		Name:              cleanString(raw.PolicyName),
		Category:          category,
		Subcategory:       cleanString(raw.Subcategory),
		PlanNumber:        planNumber,
		UinNumber:         cleanString(raw.UinNumber),
		EligibilityAgeMin: ageMin,
		EligibilityAgeMax: ageMax,
		IncomeRequirement: cleanString(raw.IncomeRequirement),
		Features:          SplitList(raw.FeaturesBenefits),
		MaturityBenefits:  SplitList(raw.MaturityBenefits),
		TaxBenefits:       SplitList(raw.TaxBenefits),
		Terms:             SplitList(raw.TermsConditions),
		Riders:            SplitList(raw.RidersAvailable),
		PremiumOptions:    SplitList(raw.PremiumOptions),
		SurrenderClause:   cleanString(raw.SurrenderClause),
		SourceURL:         cleanString(raw.SourceURL),
	}
	p.CompletenessScore = completenessScore(raw)

	return p
}

// NormalizeBatch normalizes a whole load, assigning row indices and keeping
// ids unique within the batch: a record whose id collides with an earlier
// row (same category and plan number scraped twice) falls back to the
// per-row token instead of silently overwriting or aborting the load.
func NormalizeBatch(records []RawPolicyRecord) []*entity.Policy {
	seen := make(map[string]bool, len(records))
	out := make([]*entity.Policy, len(records))
	for i, raw := range records {
		raw.RowIndex = i
		p := Normalize(raw)
		if seen[p.Id] {
			p.PlanNumber = fmt.Sprintf("unknown_%d", i)
			p.Id = fmt.Sprintf("%s_%s", slug(p.Category), p.PlanNumber)
		}
		seen[p.Id] = true
		out[i] = p
	}
	return out
}

// completenessScore is the weighted fraction of present fields, in [0,1].
// Eligibility and benefit fields weigh more than descriptive ones. Age is a
// single slot satisfied by either the full range or the single-sided limit,
// so a record carrying one form is never docked for missing the other.
func completenessScore(raw RawPolicyRecord) float64 {
	type weightedField struct {
		present bool
		weight  float64
	}

	fields := []weightedField{
		{!isBlank(raw.PolicyName), 1.0},
		{!isBlank(raw.PlanNumber), 1.0},
		{!isBlank(raw.UinNumber), 1.0},
		{!isBlank(raw.FeaturesBenefits), 1.0},
		{!isBlank(raw.EligibilityAge) || !isBlank(raw.AgeLimit), 1.5},
		{!isBlank(raw.IncomeRequirement), 1.5},
		{!isBlank(raw.PremiumOptions), 1.0},
		{!isBlank(raw.MaturityBenefits), 1.5},
		{!isBlank(raw.SurrenderClause), 1.0},
		{!isBlank(raw.TaxBenefits), 1.0},
		{!isBlank(raw.TermsConditions), 1.0},
	}

	var total, achieved float64
	for _, f := range fields {
		total += f.weight
		if f.present {
			achieved += f.weight
		}
	}

	if total == 0 {
		return 0
	}
	return achieved / total
}

func cleanString(s string) string {
	t := strings.TrimSpace(s)
	if isBlank(t) {
		return ""
	}
	return t
}

// isBlank treats empty strings and the scraper's literal "nan" as absent.
func isBlank(s string) bool {
	t := strings.TrimSpace(s)
	return t == "" || strings.EqualFold(t, "nan")
}

func slug(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
