package specification

import "gorm.io/gorm"

// ByPolicyID filters on the stable catalog id (e.g. "lic_871").
type ByPolicyID struct {
	ID string
}

func (s ByPolicyID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("policies.id = ?", s.ID)
}

// ByCategory filters on the exact category string.
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("policies.category = ?", s.Category)
}

// EligibleForAge keeps only policies whose eligibility window contains the
// given age. This is the structured filter of the vector search read path.
type EligibleForAge struct {
	Age int
}

func (s EligibleForAge) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("policies.eligibility_age_min <= ? AND policies.eligibility_age_max >= ?", s.Age, s.Age)
}

// MinCompleteness filters on the data completeness score.
type MinCompleteness struct {
	Score float64
}

func (s MinCompleteness) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("policies.completeness_score >= ?", s.Score)
}
