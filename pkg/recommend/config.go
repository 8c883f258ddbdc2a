package recommend

// Config holds the ranking weights and the enum-to-keyword tables. It is
// loaded once at startup and injected read-only into the translator and
// scorer; the values are business tuning knobs, not invariants.
type Config struct {
	// TopN is the size of the final ranked list.
	TopN int
	// CandidateLimit is the vector-search over-fetch. It is deliberately
	// much larger than TopN so rule-based scoring can surface a
	// lower-similarity candidate that fits the profile better.
	CandidateLimit int

	AgeWeight          float64
	GoalWeight         float64
	RiskWeight         float64
	CompletenessWeight float64

	// Query phrases appended to the synthetic search query per enum value.
	GoalQueryPhrases  map[string]string
	RiskQueryPhrases  map[string]string
	StageQueryPhrases map[string]string

	// Keyword lists matched against policy feature text during scoring.
	GoalKeywords map[string][]string
	RiskKeywords map[string][]string
}

// DefaultConfig returns the standard tuning used in production.
func DefaultConfig() *Config {
	return &Config{
		TopN:           3,
		CandidateLimit: 100,

		AgeWeight:          40,
		GoalWeight:         30,
		RiskWeight:         20,
		CompletenessWeight: 10,

		GoalQueryPhrases: map[string]string{
			"wealth_creation":     "protection savings guaranteed returns endowment",
			"child_education":     "child education money back survival benefits",
			"retirement_planning": "pension retirement survival benefits annuity",
			"family_protection":   "death benefit protection term insurance",
			"tax_saving":          "tax benefits section 80C deductions",
		},
		RiskQueryPhrases: map[string]string{
			"conservative": "guaranteed returns endowment traditional",
			"moderate":     "money back survival benefits balanced",
			"aggressive":   "unit linked market investment",
		},
		StageQueryPhrases: map[string]string{
			"single":             "basic protection term insurance",
			"young_family":       "family protection child benefits",
			"established_family": "comprehensive coverage education planning",
			"pre_retirement":     "pension retirement planning",
		},

		GoalKeywords: map[string][]string{
			"wealth_creation":     {"protection", "savings", "guaranteed", "endowment"},
			"child_education":     {"child", "education", "money back", "survival"},
			"retirement_planning": {"pension", "retirement", "annuity"},
			"family_protection":   {"death benefit", "protection", "term"},
			"tax_saving":          {"tax", "80c", "deduction"},
		},
		RiskKeywords: map[string][]string{
			"conservative": {"guaranteed", "traditional", "endowment"},
			"moderate":     {"money back", "balanced", "survival"},
			"aggressive":   {"unit linked", "market", "investment"},
		},
	}
}
