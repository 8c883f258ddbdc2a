package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"insurance-advisor-be/internal/dto"
	"insurance-advisor-be/internal/entity"
	"insurance-advisor-be/internal/pkg/logger"
	"insurance-advisor-be/internal/repository/contract"
	"insurance-advisor-be/internal/repository/unitofwork"
	"insurance-advisor-be/pkg/embedding"
	"insurance-advisor-be/pkg/recommend"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// ErrRecommendationUnavailable signals that a collaborator (embedding
// provider or vector store) failed. Callers must distinguish this from an
// empty-but-valid result.
var ErrRecommendationUnavailable = errors.New("recommendations unavailable")

type IRecommendationService interface {
	Recommend(ctx context.Context, req *dto.RecommendationRequest) (*dto.RecommendationResponse, error)
}

type recommendationService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	translator        *recommend.Translator
	scorer            *recommend.Scorer
	cfg               *recommend.Config
	logger            logger.ILogger

	rdb           *redis.Client // query-embedding cache, nil disables it
	responseCache *gocache.Cache
	embedTimeout  time.Duration
}

func NewRecommendationService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	cfg *recommend.Config,
	sysLogger logger.ILogger,
	rdb *redis.Client,
	responseTTL time.Duration,
	embedTimeout time.Duration,
) IRecommendationService {
	return &recommendationService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		translator:        recommend.NewTranslator(cfg),
		scorer:            recommend.NewScorer(cfg),
		cfg:               cfg,
		logger:            sysLogger,
		rdb:               rdb,
		responseCache:     gocache.New(responseTTL, 2*responseTTL),
		embedTimeout:      embedTimeout,
	}
}

func (s *recommendationService) Recommend(ctx context.Context, req *dto.RecommendationRequest) (*dto.RecommendationResponse, error) {
	profile := entity.UserProfile{
		Age:           req.Age,
		MonthlyIncome: req.MonthlyIncome,
		Dependents:    req.Dependents,
		LifeStage:     req.LifeStage,
		PrimaryGoal:   req.PrimaryGoal,
		RiskComfort:   req.RiskComfort,
	}

	cacheKey := profileCacheKey(profile)
	if cached, ok := s.responseCache.Get(cacheKey); ok {
		return cached.(*dto.RecommendationResponse), nil
	}

	query := s.translator.Translate(profile)

	queryVector, err := s.queryEmbedding(ctx, query.Text)
	if err != nil {
		s.logger.Error("recommendation", "query embedding failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, ErrRecommendationUnavailable
	}

	filter := contract.AgeFilter{Age: query.Age, Enabled: query.HasAge}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.PolicyEmbeddingRepository().SearchSimilarWithScore(ctx, queryVector, s.cfg.CandidateLimit, filter)
	if err != nil {
		s.logger.Error("recommendation", "vector search failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, ErrRecommendationUnavailable
	}

	candidates := make([]recommend.Candidate, len(scored))
	for i, sp := range scored {
		candidates[i] = recommend.Candidate{
			Policy:     sp.Policy,
			Similarity: sp.Similarity,
		}
	}

	ranked := s.scorer.Rank(candidates, profile)

	policyCount, err := uow.PolicyRepository().Count(ctx)
	if err != nil {
		// Presentation detail only; the ranked list is already valid.
		policyCount = 0
	}

	res := &dto.RecommendationResponse{
		Recommendations:  make([]dto.RecommendationItem, len(ranked)),
		PoliciesAnalyzed: policyCount,
	}
	for i, r := range ranked {
		res.Recommendations[i] = buildRecommendationItem(r, profile)
		if r.Score > res.Confidence {
			res.Confidence = r.Score
		}
	}

	s.responseCache.Set(cacheKey, res, gocache.DefaultExpiration)
	return res, nil
}

// queryEmbedding embeds the synthetic query text, caching vectors in redis
// keyed by text hash. Profiles collapse onto few distinct query strings, so
// the hit rate is high.
func (s *recommendationService) queryEmbedding(ctx context.Context, text string) ([]float32, error) {
	key := "advisor:query_embedding:" + textHash(text)

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var vec []float32
			if err := json.Unmarshal(raw, &vec); err == nil && len(vec) > 0 {
				return vec, nil
			}
		}
	}

	embedCtx, cancel := context.WithTimeout(ctx, s.embedTimeout)
	defer cancel()

	res, err := s.embeddingProvider.Generate(embedCtx, text, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, err
	}
	vec := res.Embedding.Values

	if s.rdb != nil {
		if raw, err := json.Marshal(vec); err == nil {
			if err := s.rdb.Set(ctx, key, raw, time.Hour).Err(); err != nil {
				s.logger.Warn("recommendation", "failed to cache query embedding", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}

	return vec, nil
}

func buildRecommendationItem(r recommend.Ranked, profile entity.UserProfile) dto.RecommendationItem {
	projection := recommend.CalculateProjection(
		profile.MonthlyIncome,
		profile.Age,
		profile.Dependents,
		r.Policy.Category,
	)

	return dto.RecommendationItem{
		PolicyId:            r.Policy.Id,
		PolicyName:          r.Policy.Name,
		Category:            r.Policy.Category,
		PlanNumber:          r.Policy.PlanNumber,
		Features:            r.Policy.Features,
		MaturityBenefits:    r.Policy.MaturityBenefits,
		TaxBenefits:         r.Policy.TaxBenefits,
		SimilarityScore:     r.Similarity,
		RecommendationScore: r.Score,
		Projection: dto.FinancialProjection{
			PremiumPercentage:       projection.PremiumPercentage,
			EstimatedAnnualPremium:  projection.AnnualPremium,
			EstimatedMonthlyPremium: projection.MonthlyPremium,
			EstimatedDailyPremium:   projection.DailyPremium,
			RecommendedLifeCover:    projection.RecommendedLifeCover,
			AffordabilityBucket:     projection.AffordabilityBucket,
		},
		PersonalizedBenefits: recommend.PersonalizedBenefits(profile),
		AppropriatenessFlags: recommend.AppropriatenessFlags(r.Policy, profile),
	}
}

func profileCacheKey(p entity.UserProfile) string {
	return fmt.Sprintf("%d|%d|%d|%s|%s|%s",
		p.Age, p.MonthlyIncome, p.Dependents, p.LifeStage, p.PrimaryGoal, p.RiskComfort)
}

func textHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
