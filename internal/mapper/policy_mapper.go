package mapper

import (
	"encoding/json"
	"time"

	"insurance-advisor-be/internal/entity"
	"insurance-advisor-be/internal/model"

	"gorm.io/datatypes"
)

type PolicyMapper struct{}

func NewPolicyMapper() *PolicyMapper {
	return &PolicyMapper{}
}

func (m *PolicyMapper) ToEntity(p *model.Policy) *entity.Policy {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Policy{
		Id:                p.Id,
		Name:              p.Name,
		Category:          p.Category,
		Subcategory:       p.Subcategory,
		PlanNumber:        p.PlanNumber,
		UinNumber:         p.UinNumber,
		EligibilityAgeMin: p.EligibilityAgeMin,
		EligibilityAgeMax: p.EligibilityAgeMax,
		IncomeRequirement: p.IncomeRequirement,
		Features:          jsonToList(p.Features),
		MaturityBenefits:  jsonToList(p.MaturityBenefits),
		TaxBenefits:       jsonToList(p.TaxBenefits),
		Terms:             jsonToList(p.Terms),
		Riders:            jsonToList(p.Riders),
		PremiumOptions:    jsonToList(p.PremiumOptions),
		SurrenderClause:   p.SurrenderClause,
		SourceURL:         p.SourceURL,
		CompletenessScore: p.CompletenessScore,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *PolicyMapper) ToModel(p *entity.Policy) *model.Policy {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Policy{
		Id:                p.Id,
		Name:              p.Name,
		Category:          p.Category,
		Subcategory:       p.Subcategory,
		PlanNumber:        p.PlanNumber,
		UinNumber:         p.UinNumber,
		EligibilityAgeMin: p.EligibilityAgeMin,
		EligibilityAgeMax: p.EligibilityAgeMax,
		IncomeRequirement: p.IncomeRequirement,
		Features:          listToJSON(p.Features),
		MaturityBenefits:  listToJSON(p.MaturityBenefits),
		TaxBenefits:       listToJSON(p.TaxBenefits),
		Terms:             listToJSON(p.Terms),
		Riders:            listToJSON(p.Riders),
		PremiumOptions:    listToJSON(p.PremiumOptions),
		SurrenderClause:   p.SurrenderClause,
		SourceURL:         p.SourceURL,
		CompletenessScore: p.CompletenessScore,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *PolicyMapper) ToEntities(policies []*model.Policy) []*entity.Policy {
	entities := make([]*entity.Policy, len(policies))
	for i, p := range policies {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

func (m *PolicyMapper) ToModels(policies []*entity.Policy) []*model.Policy {
	models := make([]*model.Policy, len(policies))
	for i, p := range policies {
		models[i] = m.ToModel(p)
	}
	return models
}

// jsonToList tolerates NULL columns and malformed payloads by returning an
// empty slice; list fields are never nil on the entity side.
func jsonToList(data datatypes.JSON) []string {
	if len(data) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return []string{}
	}
	return out
}

func listToJSON(list []string) datatypes.JSON {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}
