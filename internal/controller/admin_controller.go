package controller

import (
	"renewal-tracking-be/internal/dto"
	"renewal-tracking-be/internal/pkg/logger"
	"renewal-tracking-be/internal/pkg/serverutils"
	"renewal-tracking-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	ListUsers(ctx *fiber.Ctx) error
	SystemStats(ctx *fiber.Ctx) error
	SystemLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.IAdminService
	logger       logger.ILogger
}

func NewAdminController(adminService service.IAdminService, log logger.ILogger) IAdminController {
	return &adminController{
		adminService: adminService,
		logger:       log,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware, serverutils.RequireAdmin)
	h.Get("users", c.ListUsers)
	h.Get("stats", c.SystemStats)
	h.Get("logs", c.SystemLogs)
}

func (c *adminController) ListUsers(ctx *fiber.Ctx) error {
	var req dto.AdminUserListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.adminService.ListUsers(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Users", res))
}

func (c *adminController) SystemStats(ctx *fiber.Ctx) error {
	res, err := c.adminService.SystemStats(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("System statistics", res))
}

func (c *adminController) SystemLogs(ctx *fiber.Ctx) error {
	var req dto.AdminLogsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}
	if req.Limit <= 0 || req.Limit > 500 {
		req.Limit = 100
	}

	logs, err := c.logger.GetLogs(req.Level, req.Limit, 0)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("System logs", logs))
}
