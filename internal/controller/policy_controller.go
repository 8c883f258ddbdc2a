package controller

import (
	"errors"

	"insurance-advisor-be/internal/dto"
	"insurance-advisor-be/internal/pkg/serverutils"
	"insurance-advisor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPolicyController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	Upsert(ctx *fiber.Ctx) error
	Reload(ctx *fiber.Ctx) error
}

type policyController struct {
	policyService service.IPolicyService
}

func NewPolicyController(policyService service.IPolicyService) IPolicyController {
	return &policyController{
		policyService: policyService,
	}
}

func (c *policyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/policy/v1")
	h.Get("", c.List)
	h.Get("stats", c.Stats)
	h.Get(":id", c.Show)

	// Catalog mutation is admin-only.
	h.Post("", serverutils.JwtMiddleware, c.Upsert)
	h.Post("reload", serverutils.JwtMiddleware, c.Reload)
}

func (c *policyController) List(ctx *fiber.Ctx) error {
	category := ctx.Query("category")
	age := ctx.QueryInt("age")
	limit := ctx.QueryInt("limit")

	res, err := c.policyService.List(ctx.Context(), category, age, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list policies", res))
}

func (c *policyController) Show(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	res, err := c.policyService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).
			JSON(serverutils.ErrorResponse(404, "Policy not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show policy", res))
}

func (c *policyController) Stats(ctx *fiber.Ctx) error {
	res, err := c.policyService.Stats(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get catalog stats", res))
}

func (c *policyController) Upsert(ctx *fiber.Ctx) error {
	var req dto.UpsertPolicyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.policyService.Upsert(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrPlanNumberRequired) {
			return ctx.Status(fiber.StatusBadRequest).
				JSON(serverutils.ErrorResponse(400, "Plan number is required"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upsert policy", res))
}

func (c *policyController) Reload(ctx *fiber.Ctx) error {
	requestedBy, _ := ctx.Locals("user_id").(string)

	if err := c.policyService.RequestReload(ctx.Context(), requestedBy); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Catalog reload requested", dto.ReloadResponse{Requested: true}))
}
