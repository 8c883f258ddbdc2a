package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"insurance-advisor-be/internal/dto"
	"insurance-advisor-be/internal/entity"
	"insurance-advisor-be/internal/repository/contract"
	"insurance-advisor-be/pkg/recommend"

	"github.com/stretchr/testify/assert"
)

func scoredPolicy(id string, ageMin, ageMax int, features []string, completeness, similarity float64) *contract.ScoredPolicy {
	return &contract.ScoredPolicy{
		Policy: &entity.Policy{
			Id:                id,
			Name:              "Policy " + id,
			Category:          "Term Assurance",
			EligibilityAgeMin: ageMin,
			EligibilityAgeMax: ageMax,
			Features:          features,
			CompletenessScore: completeness,
		},
		Similarity: similarity,
	}
}

func newRecommendationService(t *testing.T) (IRecommendationService, *fakePolicyRepo, *fakeEmbeddingRepo, *fakeEmbeddingProvider) {
	t.Helper()
	factory, policyRepo, embeddingRepo := newFakeUowFactory()
	provider := &fakeEmbeddingProvider{}
	svc := NewRecommendationService(factory, provider, recommend.DefaultConfig(), nopLogger{}, nil, time.Minute, time.Second)
	return svc, policyRepo, embeddingRepo, provider
}

func TestRecommendRanksAndTruncates(t *testing.T) {
	svc, _, embeddingRepo, _ := newRecommendationService(t)

	embeddingRepo.searchRes = []*contract.ScoredPolicy{
		scoredPolicy("a", 18, 65, []string{"death benefit", "protection", "term"}, 1.0, 0.9),
		scoredPolicy("b", 18, 65, nil, 0.5, 0.8),
		scoredPolicy("c", 18, 65, nil, 0.2, 0.7),
		scoredPolicy("d", 18, 65, nil, 0.1, 0.6),
	}

	res, err := svc.Recommend(context.Background(), &dto.RecommendationRequest{
		Age:           30,
		MonthlyIncome: 75000,
		PrimaryGoal:   "family_protection",
	})
	assert.NoError(t, err)
	assert.Len(t, res.Recommendations, 3)
	assert.Equal(t, "a", res.Recommendations[0].PolicyId)
	assert.Equal(t, res.Recommendations[0].RecommendationScore, res.Confidence)

	// Over-fetch and native age filter reach the store.
	assert.Equal(t, 100, embeddingRepo.lastLimit)
	assert.True(t, embeddingRepo.lastFilter.Enabled)
	assert.Equal(t, 30, embeddingRepo.lastFilter.Age)
}

func TestRecommendEmptyIndexIsEmptyResult(t *testing.T) {
	svc, _, _, _ := newRecommendationService(t)

	res, err := svc.Recommend(context.Background(), &dto.RecommendationRequest{Age: 30})
	assert.NoError(t, err)
	assert.Empty(t, res.Recommendations)
	assert.Zero(t, res.Confidence)
}

func TestRecommendStoreFailureIsUnavailable(t *testing.T) {
	svc, _, embeddingRepo, _ := newRecommendationService(t)
	embeddingRepo.searchErr = errors.New("connection refused")

	res, err := svc.Recommend(context.Background(), &dto.RecommendationRequest{Age: 30})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrRecommendationUnavailable)
}

func TestRecommendEmbeddingFailureIsUnavailable(t *testing.T) {
	factory, _, _ := newFakeUowFactory()
	provider := &fakeEmbeddingProvider{failAll: true}
	svc := NewRecommendationService(factory, provider, recommend.DefaultConfig(), nopLogger{}, nil, time.Minute, time.Second)

	res, err := svc.Recommend(context.Background(), &dto.RecommendationRequest{Age: 30})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrRecommendationUnavailable)
}

func TestRecommendIneligibleCandidateExcluded(t *testing.T) {
	svc, _, embeddingRepo, _ := newRecommendationService(t)

	// The store's native filter normally removes these, but the scorer's
	// gate must hold on its own as well.
	embeddingRepo.searchRes = []*contract.ScoredPolicy{
		scoredPolicy("young_only", 18, 50, []string{"death benefit", "protection", "term"}, 1.0, 0.99),
	}

	res, err := svc.Recommend(context.Background(), &dto.RecommendationRequest{
		Age:         60,
		PrimaryGoal: "family_protection",
	})
	assert.NoError(t, err)
	assert.Empty(t, res.Recommendations)
}

func TestRecommendResponseCached(t *testing.T) {
	svc, _, embeddingRepo, provider := newRecommendationService(t)
	embeddingRepo.searchRes = []*contract.ScoredPolicy{
		scoredPolicy("a", 18, 65, nil, 0.5, 0.8),
	}

	req := &dto.RecommendationRequest{Age: 30, MonthlyIncome: 50000}

	first, err := svc.Recommend(context.Background(), req)
	assert.NoError(t, err)
	second, err := svc.Recommend(context.Background(), req)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls, "second call should be served from cache")
}

func TestRecommendProjectionConsistency(t *testing.T) {
	svc, _, embeddingRepo, _ := newRecommendationService(t)
	embeddingRepo.searchRes = []*contract.ScoredPolicy{
		scoredPolicy("a", 18, 65, nil, 0.5, 0.8),
	}

	res, err := svc.Recommend(context.Background(), &dto.RecommendationRequest{
		Age:           32,
		MonthlyIncome: 75000,
		Dependents:    2,
	})
	assert.NoError(t, err)
	assert.Len(t, res.Recommendations, 1)

	p := res.Recommendations[0].Projection
	assert.InDelta(t, p.EstimatedAnnualPremium, p.EstimatedMonthlyPremium*12, 1e-6)
	assert.InDelta(t, p.EstimatedAnnualPremium/365, p.EstimatedDailyPremium, 1e-6)
}
