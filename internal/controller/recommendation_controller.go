package controller

import (
	"errors"

	"insurance-advisor-be/internal/dto"
	"insurance-advisor-be/internal/pkg/serverutils"
	"insurance-advisor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRecommendationController interface {
	RegisterRoutes(r fiber.Router)
	Recommend(ctx *fiber.Ctx) error
	Pitch(ctx *fiber.Ctx) error
}

type recommendationController struct {
	recommendationService service.IRecommendationService
	advisorService        service.IAdvisorService
}

func NewRecommendationController(
	recommendationService service.IRecommendationService,
	advisorService service.IAdvisorService,
) IRecommendationController {
	return &recommendationController{
		recommendationService: recommendationService,
		advisorService:        advisorService,
	}
}

func (c *recommendationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/recommendation/v1")
	h.Post("", c.Recommend)
	h.Post("pitch", c.Pitch)
}

func (c *recommendationController) Recommend(ctx *fiber.Ctx) error {
	var req dto.RecommendationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.recommendationService.Recommend(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrRecommendationUnavailable) {
			// Distinct from an empty-but-valid list: collaborators are down.
			return ctx.Status(fiber.StatusServiceUnavailable).
				JSON(serverutils.ErrorResponse(503, "Recommendations unavailable"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get recommendations", res))
}

func (c *recommendationController) Pitch(ctx *fiber.Ctx) error {
	var req dto.PitchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req.RecommendationRequest); err != nil {
		return err
	}

	res, err := c.advisorService.GeneratePitch(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrRecommendationUnavailable) {
			return ctx.Status(fiber.StatusServiceUnavailable).
				JSON(serverutils.ErrorResponse(503, "Recommendations unavailable"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate pitch", res))
}
