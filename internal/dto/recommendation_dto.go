package dto

// RecommendationRequest is the user profile as submitted by the advisor UI.
// Age is required for the eligibility gate; the other fields are optional
// and only sharpen the match.
type RecommendationRequest struct {
	Age           int    `json:"age" validate:"required,gt=0,lte=120"`
	MonthlyIncome int    `json:"monthly_income" validate:"omitempty,gte=0"`
	Dependents    int    `json:"dependents" validate:"omitempty,gte=0"`
	LifeStage     string `json:"life_stage" validate:"omitempty,max=64"`
	PrimaryGoal   string `json:"primary_goal" validate:"omitempty,max=64"`
	RiskComfort   string `json:"risk_comfort" validate:"omitempty,oneof=conservative moderate aggressive"`
}

// FinancialProjection carries the premium and cover estimates. Monthly and
// daily figures are derived from the same annual base.
type FinancialProjection struct {
	PremiumPercentage       float64 `json:"premium_percentage"`
	EstimatedAnnualPremium  float64 `json:"estimated_annual_premium"`
	EstimatedMonthlyPremium float64 `json:"estimated_monthly_premium"`
	EstimatedDailyPremium   float64 `json:"estimated_daily_premium"`
	RecommendedLifeCover    float64 `json:"recommended_life_cover"`
	AffordabilityBucket     string  `json:"affordability_bucket"`
}

// RecommendationItem is one ranked policy with enough denormalized data for
// the presentation layer to render without a second lookup.
type RecommendationItem struct {
	PolicyId             string              `json:"policy_id"`
	PolicyName           string              `json:"policy_name"`
	Category             string              `json:"category"`
	PlanNumber           string              `json:"plan_number"`
	Features             []string            `json:"features"`
	MaturityBenefits     []string            `json:"maturity_benefits"`
	TaxBenefits          []string            `json:"tax_benefits"`
	SimilarityScore      float64             `json:"similarity_score"`
	RecommendationScore  float64             `json:"recommendation_score"`
	Projection           FinancialProjection `json:"projection"`
	PersonalizedBenefits []string            `json:"personalized_benefits"`
	AppropriatenessFlags []string            `json:"appropriateness_flags"`
}

type RecommendationResponse struct {
	Recommendations  []RecommendationItem `json:"recommendations"`
	Confidence       float64              `json:"confidence"`
	PoliciesAnalyzed int64                `json:"policies_analyzed"`
}

// PitchRequest asks for a sales pitch for the given profile.
type PitchRequest struct {
	RecommendationRequest
}

type PitchResponse struct {
	Pitch           string               `json:"pitch"`
	Recommendations []RecommendationItem `json:"recommendations"`
	Projection      FinancialProjection  `json:"projection"`
}
