package recommend

import (
	"sort"
	"strings"

	"insurance-advisor-be/internal/entity"
)

// Candidate is one vector-search hit entering the scorer.
type Candidate struct {
	Policy     *entity.Policy
	Similarity float64
}

// Ranked is a scored candidate in the final list.
type Ranked struct {
	Policy     *entity.Policy
	Similarity float64
	Score      float64
}

// Scorer turns vector-search candidates into a deterministic ranked list by
// layering rule-based scoring on top of raw similarity.
type Scorer struct {
	cfg *Config
}

func NewScorer(cfg *Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Rank scores every candidate, drops age-disqualified ones, orders by score
// descending (ties by similarity, then original position) and truncates to
// TopN. Truncation happens only after full scoring so a lower-similarity
// candidate with a better rule fit can still surface. An empty candidate
// set yields an empty list, never an error.
func (s *Scorer) Rank(candidates []Candidate, profile entity.UserProfile) []Ranked {
	type indexed struct {
		Ranked
		pos int
	}

	ranked := make([]indexed, 0, len(candidates))
	for i, c := range candidates {
		score, eligible := s.Score(c.Policy, profile)
		if !eligible {
			continue
		}
		ranked = append(ranked, indexed{
			Ranked: Ranked{
				Policy:     c.Policy,
				Similarity: c.Similarity,
				Score:      score,
			},
			pos: i,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].Similarity != ranked[j].Similarity {
			return ranked[i].Similarity > ranked[j].Similarity
		}
		return ranked[i].pos < ranked[j].pos
	})

	n := s.cfg.TopN
	if n > len(ranked) {
		n = len(ranked)
	}

	out := make([]Ranked, n)
	for i := 0; i < n; i++ {
		out[i] = ranked[i].Ranked
	}
	return out
}

// Score computes the rule-based score in [0,100] for one candidate. The
// second return value is false when the age gate disqualifies the policy;
// the gate runs before any weighted scoring so high similarity can never
// compensate for ineligibility.
func (s *Scorer) Score(policy *entity.Policy, profile entity.UserProfile) (float64, bool) {
	score := 0.0

	if profile.Age > 0 {
		if profile.Age < policy.EligibilityAgeMin || profile.Age > policy.EligibilityAgeMax {
			return 0, false
		}
		score += s.cfg.AgeWeight
	}

	features := strings.ToLower(policy.FeaturesText())

	if profile.PrimaryGoal != "" {
		keywords := s.cfg.GoalKeywords[profile.PrimaryGoal]
		score += keywordFraction(features, keywords) * s.cfg.GoalWeight
	}

	if profile.RiskComfort != "" {
		keywords := s.cfg.RiskKeywords[profile.RiskComfort]
		score += keywordFraction(features, keywords) * s.cfg.RiskWeight
	}

	score += policy.CompletenessScore * s.cfg.CompletenessWeight

	return score, true
}

// keywordFraction is the fraction of keywords found as case-insensitive
// substrings of the feature text. An empty keyword list (unmapped enum)
// contributes zero rather than erroring.
func keywordFraction(featuresLower string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(featuresLower, strings.ToLower(kw)) {
			matches++
		}
	}
	return float64(matches) / float64(len(keywords))
}
