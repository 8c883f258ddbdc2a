package service

import (
	"context"
	"encoding/json"
	"fmt"

	"insurance-advisor-be/internal/dto"
	"insurance-advisor-be/internal/pkg/logger"
	"insurance-advisor-be/pkg/llm"
	"insurance-advisor-be/pkg/recommend"
)

// IAdvisorService generates the personalized sales pitch on top of the
// recommendation engine. The returned text is opaque: it is logged and
// passed through, never parsed back into the data model.
type IAdvisorService interface {
	GeneratePitch(ctx context.Context, req *dto.PitchRequest) (*dto.PitchResponse, error)
}

type advisorService struct {
	recommendationService IRecommendationService
	llmProvider           llm.LLMProvider
	logger                logger.ILogger
}

func NewAdvisorService(
	recommendationService IRecommendationService,
	llmProvider llm.LLMProvider,
	sysLogger logger.ILogger,
) IAdvisorService {
	return &advisorService{
		recommendationService: recommendationService,
		llmProvider:           llmProvider,
		logger:                sysLogger,
	}
}

func (s *advisorService) GeneratePitch(ctx context.Context, req *dto.PitchRequest) (*dto.PitchResponse, error) {
	recRes, err := s.recommendationService.Recommend(ctx, &req.RecommendationRequest)
	if err != nil {
		return nil, err
	}

	projection := recommend.CalculateProjection(
		req.MonthlyIncome,
		req.Age,
		req.Dependents,
		primaryCategory(recRes.Recommendations),
	)

	projectionDTO := dto.FinancialProjection{
		PremiumPercentage:       projection.PremiumPercentage,
		EstimatedAnnualPremium:  projection.AnnualPremium,
		EstimatedMonthlyPremium: projection.MonthlyPremium,
		EstimatedDailyPremium:   projection.DailyPremium,
		RecommendedLifeCover:    projection.RecommendedLifeCover,
		AffordabilityBucket:     projection.AffordabilityBucket,
	}

	prompt, err := s.buildPitchPrompt(req, recRes, projectionDTO)
	if err != nil {
		return nil, err
	}

	pitch, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.7))
	if err != nil {
		s.logger.Error("advisor", "pitch generation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, ErrRecommendationUnavailable
	}

	s.logger.Info("advisor", "pitch generated", map[string]interface{}{
		"pitch_length":    len(pitch),
		"recommendations": len(recRes.Recommendations),
	})

	return &dto.PitchResponse{
		Pitch:           pitch,
		Recommendations: recRes.Recommendations,
		Projection:      projectionDTO,
	}, nil
}

// buildPitchPrompt assembles the structured context bundle: customer
// summary, consistent financial projections and the ranked policies. The
// model is instructed to use only the provided numbers so the pitch can
// never contradict the projection arithmetic.
func (s *advisorService) buildPitchPrompt(req *dto.PitchRequest, recRes *dto.RecommendationResponse, projection dto.FinancialProjection) (string, error) {
	customer := map[string]interface{}{
		"age":            req.Age,
		"monthly_income": req.MonthlyIncome,
		"annual_income":  req.MonthlyIncome * 12,
		"dependents":     req.Dependents,
		"life_stage":     req.LifeStage,
		"primary_goal":   req.PrimaryGoal,
		"risk_comfort":   req.RiskComfort,
	}

	customerJson, err := json.MarshalIndent(customer, "", "  ")
	if err != nil {
		return "", err
	}
	projectionJson, err := json.MarshalIndent(projection, "", "  ")
	if err != nil {
		return "", err
	}

	var primary, alternatives []byte
	if len(recRes.Recommendations) > 0 {
		primary, err = json.MarshalIndent(recRes.Recommendations[0], "", "  ")
		if err != nil {
			return "", err
		}
	}
	if len(recRes.Recommendations) > 1 {
		alternatives, err = json.MarshalIndent(recRes.Recommendations[1:], "", "  ")
		if err != nil {
			return "", err
		}
	}

	return fmt.Sprintf(`PERSONALIZED SALES PITCH GENERATION:

Customer Profile:
%s

Financial Projections (use ONLY these numbers):
%s

Primary Recommendation:
%s

Alternative Options:
%s

REQUIREMENTS:
1. Use only the provided financial projections. Daily premium = annual / 365, monthly = annual / 12. Do not invent numbers.
2. Match the pitch to the customer's life stage, dependents and goal. Address any appropriateness_flags on the primary recommendation honestly.
3. Warm, professional tone. No pressure tactics.`,
		customerJson, projectionJson, primary, alternatives), nil
}

func primaryCategory(items []dto.RecommendationItem) string {
	if len(items) == 0 {
		return ""
	}
	return items[0].Category
}
