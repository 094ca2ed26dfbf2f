package controller

import (
	"renewal-tracking-be/internal/dto"
	"renewal-tracking-be/internal/pkg/serverutils"
	"renewal-tracking-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRenewalController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	ListAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ListByStatus(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	AddLog(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
}

type renewalController struct {
	renewalService service.IRenewalService
}

func NewRenewalController(renewalService service.IRenewalService) IRenewalController {
	return &renewalController{
		renewalService: renewalService,
	}
}

func (c *renewalController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/renewal/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("statistics", c.Stats)
	h.Get("status/:status", c.ListByStatus)
	h.Get("all", serverutils.RequireAdmin, c.ListAll)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Patch(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Put(":id/status", c.UpdateStatus)
	h.Post(":id/log", c.AddLog)
	h.Get(":id/logs", c.Logs)
}

func identity(ctx *fiber.Ctx) (uuid.UUID, string) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	email, _ := ctx.Locals("user_email").(string)
	return userId, email
}

func (c *renewalController) List(ctx *fiber.Ctx) error {
	userId, _ := identity(ctx)

	var req dto.RenewalListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.renewalService.List(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Renewals", res))
}

func (c *renewalController) ListAll(ctx *fiber.Ctx) error {
	var req dto.RenewalListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.renewalService.ListAll(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Renewals", res))
}

func (c *renewalController) Show(ctx *fiber.Ctx) error {
	userId, _ := identity(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid renewal id")
	}

	shape := service.ParseShape(ctx.Query("shape"))
	res, err := c.renewalService.Show(ctx.Context(), userId, id, shape)
	if err != nil {
		return err
	}
	if res == nil {
		return serverutils.NewAppError(fiber.StatusNotFound, "Renewal not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Renewal", res))
}

func (c *renewalController) Create(ctx *fiber.Ctx) error {
	userId, email := identity(ctx)

	var payload map[string]any
	if err := ctx.BodyParser(&payload); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid request body")
	}

	res, err := c.renewalService.Create(ctx.Context(), userId, email, payload)
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, err.Error())
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Renewal created", res))
}

func (c *renewalController) Update(ctx *fiber.Ctx) error {
	userId, email := identity(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid renewal id")
	}

	var patch map[string]any
	if err := ctx.BodyParser(&patch); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid request body")
	}

	res, err := c.renewalService.Update(ctx.Context(), userId, email, id, patch)
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, err.Error())
	}
	if res == nil {
		return serverutils.NewAppError(fiber.StatusNotFound, "Renewal not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Renewal updated", res))
}

func (c *renewalController) Delete(ctx *fiber.Ctx) error {
	userId, email := identity(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid renewal id")
	}

	if err := c.renewalService.Delete(ctx.Context(), userId, email, id); err != nil {
		return serverutils.NewAppError(fiber.StatusNotFound, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Renewal deleted", nil))
}

func (c *renewalController) ListByStatus(ctx *fiber.Ctx) error {
	userId, _ := identity(ctx)

	req := dto.RenewalListRequest{
		Status: ctx.Params("status"),
		Shape:  ctx.Query("shape"),
	}
	res, err := c.renewalService.List(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Renewals", res))
}

func (c *renewalController) UpdateStatus(ctx *fiber.Ctx) error {
	userId, email := identity(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid renewal id")
	}

	var req dto.UpdateStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.renewalService.UpdateStatus(ctx.Context(), userId, email, id, &req)
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, err.Error())
	}
	if res == nil {
		return serverutils.NewAppError(fiber.StatusNotFound, "Renewal not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Status updated", res))
}

func (c *renewalController) Stats(ctx *fiber.Ctx) error {
	userId, _ := identity(ctx)

	res, err := c.renewalService.Stats(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Renewal statistics", res))
}

func (c *renewalController) AddLog(ctx *fiber.Ctx) error {
	userId, email := identity(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid renewal id")
	}

	var req dto.AddLogRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.renewalService.AddLog(ctx.Context(), userId, email, id, &req); err != nil {
		return serverutils.NewAppError(fiber.StatusNotFound, err.Error())
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse[any]("Log recorded", nil))
}

func (c *renewalController) Logs(ctx *fiber.Ctx) error {
	userId, _ := identity(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid renewal id")
	}

	res, err := c.renewalService.Logs(ctx.Context(), userId, id)
	if err != nil {
		return serverutils.NewAppError(fiber.StatusNotFound, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Renewal history", res))
}
