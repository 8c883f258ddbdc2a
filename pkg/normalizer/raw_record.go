package normalizer

// RawPolicyRecord is one flat record as delivered by the scraper export.
// Any field may be empty, "nan" or otherwise junk; Normalize recovers with
// documented fallbacks instead of rejecting the record.
type RawPolicyRecord struct {
	RowIndex          int
	PolicyName        string
	Category          string
	Subcategory       string
	PlanNumber        string
	UinNumber         string
	EligibilityAge    string // e.g. "18-65 years"
	AgeLimit          string // single-sided alternative, e.g. "up to 65"
	IncomeRequirement string
	FeaturesBenefits  string
	MaturityBenefits  string
	TaxBenefits       string
	TermsConditions   string
	RidersAvailable   string
	PremiumOptions    string
	SurrenderClause   string
	SourceURL         string
}
