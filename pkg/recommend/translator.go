package recommend

import (
	"strings"

	"insurance-advisor-be/internal/entity"
)

// Query is the synthetic search request derived from a user profile.
type Query struct {
	Text   string
	Age    int
	HasAge bool
}

// Translator maps a structured user profile to a search query string plus
// the hard age filter. Unknown enum values degrade to an empty phrase.
type Translator struct {
	cfg *Config
}

func NewTranslator(cfg *Config) *Translator {
	return &Translator{cfg: cfg}
}

func (t *Translator) Translate(profile entity.UserProfile) Query {
	parts := make([]string, 0, 3)

	if profile.PrimaryGoal != "" {
		if phrase := t.cfg.GoalQueryPhrases[profile.PrimaryGoal]; phrase != "" {
			parts = append(parts, phrase)
		}
	}
	if profile.RiskComfort != "" {
		if phrase := t.cfg.RiskQueryPhrases[profile.RiskComfort]; phrase != "" {
			parts = append(parts, phrase)
		}
	}
	if profile.LifeStage != "" {
		if phrase := t.cfg.StageQueryPhrases[profile.LifeStage]; phrase != "" {
			parts = append(parts, phrase)
		}
	}

	q := Query{
		Text: strings.Join(parts, " "),
	}
	if profile.Age > 0 {
		q.Age = profile.Age
		q.HasAge = true
	}
	return q
}
