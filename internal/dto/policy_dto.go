package dto

// UpsertPolicyRequest carries one raw policy record as scraped. List fields
// are pipe-delimited strings exactly as in the CSV export.
type UpsertPolicyRequest struct {
	PolicyName        string `json:"policy_name" validate:"required,max=256"`
	Category          string `json:"category" validate:"omitempty,max=128"`
	Subcategory       string `json:"subcategory" validate:"omitempty,max=128"`
	PlanNumber        string `json:"plan_number" validate:"required,max=64"`
	UinNumber         string `json:"uin_number" validate:"omitempty,max=64"`
	EligibilityAge    string `json:"eligibility_age" validate:"omitempty,max=64"`
	AgeLimit          string `json:"age_limit" validate:"omitempty,max=64"`
	IncomeRequirement string `json:"income_requirement" validate:"omitempty,max=256"`
	FeaturesBenefits  string `json:"features_benefits"`
	MaturityBenefits  string `json:"maturity_benefits"`
	TaxBenefits       string `json:"tax_benefits"`
	TermsConditions   string `json:"terms_conditions"`
	RidersAvailable   string `json:"riders_available"`
	PremiumOptions    string `json:"premium_options"`
	SurrenderClause   string `json:"surrender_clause"`
	SourceURL         string `json:"source_url" validate:"omitempty,url"`
}

type PolicyResponse struct {
	Id                string   `json:"id"`
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	Subcategory       string   `json:"subcategory,omitempty"`
	PlanNumber        string   `json:"plan_number"`
	UinNumber         string   `json:"uin_number,omitempty"`
	EligibilityAgeMin int      `json:"eligibility_age_min"`
	EligibilityAgeMax int      `json:"eligibility_age_max"`
	IncomeRequirement string   `json:"income_requirement,omitempty"`
	Features          []string `json:"features"`
	MaturityBenefits  []string `json:"maturity_benefits"`
	TaxBenefits       []string `json:"tax_benefits"`
	Terms             []string `json:"terms"`
	Riders            []string `json:"riders"`
	PremiumOptions    []string `json:"premium_options"`
	SurrenderClause   string   `json:"surrender_clause,omitempty"`
	SourceURL         string   `json:"source_url,omitempty"`
	CompletenessScore float64  `json:"completeness_score"`
}

type ListPoliciesResponse struct {
	Policies []PolicyResponse `json:"policies"`
	Total    int64            `json:"total"`
}

// CatalogStatsResponse summarizes the loaded catalog for the admin view.
type CatalogStatsResponse struct {
	PolicyCount     int64    `json:"policy_count"`
	EmbeddingCount  int64    `json:"embedding_count"`
	Categories      []string `json:"categories"`
	AvgCompleteness float64  `json:"avg_completeness"`
	WellDocumented  int64    `json:"well_documented"`
}

type ReloadResponse struct {
	Requested bool `json:"requested"`
}
