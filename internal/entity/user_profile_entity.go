package entity

// UserProfile is the structured input the recommendation pipeline matches
// against the catalog. It is supplied per request and never persisted.
// Zero values mean "not provided": an absent age disables the eligibility
// filter, an absent goal/risk/stage contributes an empty query phrase.
type UserProfile struct {
	Age           int
	MonthlyIncome int
	Dependents    int
	LifeStage     string // e.g. "young_family"
	PrimaryGoal   string // e.g. "retirement_planning"
	RiskComfort   string // "conservative" | "moderate" | "aggressive"
}
