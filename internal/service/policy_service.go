package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"insurance-advisor-be/internal/dto"
	"insurance-advisor-be/internal/entity"
	"insurance-advisor-be/internal/pkg/logger"
	"insurance-advisor-be/internal/repository/specification"
	"insurance-advisor-be/internal/repository/unitofwork"
	"insurance-advisor-be/pkg/events"
	pktNats "insurance-advisor-be/pkg/nats"
	"insurance-advisor-be/pkg/normalizer"
)

// ErrPlanNumberRequired rejects admin upserts without a real plan number.
// The ingestion pipeline synthesizes per-row fallback ids for blank plan
// numbers; a single upsert has no row position, so a fallback id here would
// silently overwrite whichever ingested record happened to get the same one.
var ErrPlanNumberRequired = errors.New("plan number is required")

// Records at or above this completeness are counted as well documented in
// the catalog stats.
const wellDocumentedScore = 0.7

type IPolicyService interface {
	Show(ctx context.Context, id string) (*dto.PolicyResponse, error)
	List(ctx context.Context, category string, age, limit int) (*dto.ListPoliciesResponse, error)
	Stats(ctx context.Context) (*dto.CatalogStatsResponse, error)
	Upsert(ctx context.Context, req *dto.UpsertPolicyRequest) (*dto.PolicyResponse, error)
	RequestReload(ctx context.Context, requestedBy string) error
}

type policyService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewPolicyService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IPolicyService {
	return &policyService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           sysLogger,
	}
}

func (s *policyService) Show(ctx context.Context, id string) (*dto.PolicyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	policy, err := uow.PolicyRepository().FindOne(ctx, specification.ByPolicyID{ID: id})
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, nil
	}
	res := toPolicyResponse(policy)
	return &res, nil
}

func (s *policyService) List(ctx context.Context, category string, age, limit int) (*dto.ListPoliciesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Column: "name"},
	}
	if category != "" {
		specs = append(specs, specification.ByCategory{Category: category})
	}
	if age > 0 {
		specs = append(specs, specification.EligibleForAge{Age: age})
	}
	if limit > 0 {
		specs = append(specs, specification.Limit{N: limit})
	}

	policies, err := uow.PolicyRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := &dto.ListPoliciesResponse{
		Policies: make([]dto.PolicyResponse, len(policies)),
		Total:    int64(len(policies)),
	}
	for i, p := range policies {
		res.Policies[i] = toPolicyResponse(p)
	}
	return res, nil
}

func (s *policyService) Stats(ctx context.Context) (*dto.CatalogStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	policyCount, err := uow.PolicyRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	embeddingCount, err := uow.PolicyEmbeddingRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := uow.PolicyRepository().DistinctCategories(ctx)
	if err != nil {
		return nil, err
	}
	wellDocumented, err := uow.PolicyRepository().Count(ctx, specification.MinCompleteness{Score: wellDocumentedScore})
	if err != nil {
		return nil, err
	}

	var avgCompleteness float64
	if policyCount > 0 {
		policies, err := uow.PolicyRepository().FindAll(ctx)
		if err != nil {
			return nil, err
		}
		var sum float64
		for _, p := range policies {
			sum += p.CompletenessScore
		}
		avgCompleteness = sum / float64(len(policies))
	}

	return &dto.CatalogStatsResponse{
		PolicyCount:     policyCount,
		EmbeddingCount:  embeddingCount,
		Categories:      categories,
		AvgCompleteness: avgCompleteness,
		WellDocumented:  wellDocumented,
	}, nil
}

// Upsert writes one policy and queues it for re-embedding. The embedding
// happens asynchronously on the consumer, so a brief window exists where
// the stored vector reflects the previous document version.
func (s *policyService) Upsert(ctx context.Context, req *dto.UpsertPolicyRequest) (*dto.PolicyResponse, error) {
	plan := strings.TrimSpace(req.PlanNumber)
	if plan == "" || strings.EqualFold(plan, "nan") {
		return nil, ErrPlanNumberRequired
	}

	policy := normalizer.Normalize(normalizer.RawPolicyRecord{
		PolicyName:        req.PolicyName,
		Category:          req.Category,
		Subcategory:       req.Subcategory,
		PlanNumber:        req.PlanNumber,
		UinNumber:         req.UinNumber,
		EligibilityAge:    req.EligibilityAge,
		AgeLimit:          req.AgeLimit,
		IncomeRequirement: req.IncomeRequirement,
		FeaturesBenefits:  req.FeaturesBenefits,
		MaturityBenefits:  req.MaturityBenefits,
		TaxBenefits:       req.TaxBenefits,
		TermsConditions:   req.TermsConditions,
		RidersAvailable:   req.RidersAvailable,
		PremiumOptions:    req.PremiumOptions,
		SurrenderClause:   req.SurrenderClause,
		SourceURL:         req.SourceURL,
	})

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PolicyRepository().Upsert(ctx, policy); err != nil {
		return nil, err
	}

	msgPayload := dto.PublishEmbedPolicyMessage{PolicyId: policy.Id}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewPolicyUpserted(policy.Id)); err != nil {
			s.logger.Warn("policy", "failed to publish upsert event", map[string]interface{}{
				"policy_id": policy.Id,
				"error":     err.Error(),
			})
		}
	}

	res := toPolicyResponse(policy)
	return &res, nil
}

func (s *policyService) RequestReload(ctx context.Context, requestedBy string) error {
	if s.eventPublisher == nil {
		return ErrRecommendationUnavailable
	}
	return s.eventPublisher.Publish(ctx, events.NewCatalogReloadRequest(requestedBy))
}

func toPolicyResponse(p *entity.Policy) dto.PolicyResponse {
	return dto.PolicyResponse{
		Id:                p.Id,
		Name:              p.Name,
		Category:          p.Category,
		Subcategory:       p.Subcategory,
		PlanNumber:        p.PlanNumber,
		UinNumber:         p.UinNumber,
		EligibilityAgeMin: p.EligibilityAgeMin,
		EligibilityAgeMax: p.EligibilityAgeMax,
		IncomeRequirement: p.IncomeRequirement,
		Features:          p.Features,
		MaturityBenefits:  p.MaturityBenefits,
		TaxBenefits:       p.TaxBenefits,
		Terms:             p.Terms,
		Riders:            p.Riders,
		PremiumOptions:    p.PremiumOptions,
		SurrenderClause:   p.SurrenderClause,
		SourceURL:         p.SourceURL,
		CompletenessScore: p.CompletenessScore,
	}
}
