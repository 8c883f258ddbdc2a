package model

import (
	"time"

	"gorm.io/datatypes"
)

type Policy struct {
	Id                string `gorm:"type:varchar(64);primaryKey"`
	Name              string `gorm:"type:text;not null"`
	Category          string `gorm:"type:varchar(128);not null;index"`
	Subcategory       string `gorm:"type:varchar(128)"`
	PlanNumber        string `gorm:"type:varchar(64)"`
	UinNumber         string `gorm:"type:varchar(64)"`
	EligibilityAgeMin int    `gorm:"not null;index:idx_policies_age_range"`
	EligibilityAgeMax int    `gorm:"not null;index:idx_policies_age_range"`
	IncomeRequirement string `gorm:"type:text"`
	Features          datatypes.JSON
	MaturityBenefits  datatypes.JSON
	TaxBenefits       datatypes.JSON
	Terms             datatypes.JSON
	Riders            datatypes.JSON
	PremiumOptions    datatypes.JSON
	SurrenderClause   string    `gorm:"type:text"`
	SourceURL         string    `gorm:"type:text"`
	CompletenessScore float64   `gorm:"not null;default:0;index"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (Policy) TableName() string {
	return "policies"
}
