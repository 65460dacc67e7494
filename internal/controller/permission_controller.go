package controller

import (
	"user-management/internal/config/validation"
	"user-management/internal/dto"
	"user-management/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type PermissionController struct {
	PermissionService *service.PermissionService
	Logger            *logrus.Logger
	Validation        *validation.Validation
	Tracer            trace.Tracer
}

func NewPermissionController(permissionService *service.PermissionService, logger *logrus.Logger, validator *validation.Validation) *PermissionController {
	return &PermissionController{permissionService, logger, validator, otel.Tracer("PermissionController")}
}

func (c *PermissionController) List(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "List")
	defer span.End()

	result, err := c.PermissionService.List(userContext)
	if err != nil {
		c.Logger.WithError(err).Warn("Failed to list permissions")
		return err
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return ctx.SendString(result)
}

func (c *PermissionController) Get(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "Get")
	defer span.End()

	permission, err := c.PermissionService.Get(userContext, ctx.Params("permissionId"))
	if err != nil {
		c.Logger.WithError(err).Warn("Failed to get permission")
		return err
	}

	return ctx.JSON(dto.WebResponse[*dto.PermissionResponse]{Data: permission})
}

func (c *PermissionController) Create(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "Create")
	defer span.End()

	var req dto.CreatePermissionRequest
	if err := ctx.BodyParser(&req); err != nil {
		c.Logger.WithError(err).Error("Failed to parse create permission request")
		return fiber.ErrBadRequest
	}

	if err := c.Validation.Validate(&req); err != nil {
		c.Logger.WithError(err).Warn("Validation failed for create permission request")
		return err
	}

	permission, err := c.PermissionService.Create(userContext, &req)
	if err != nil {
		c.Logger.WithError(err).Warn("Failed to create permission")
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.WebResponse[*dto.PermissionResponse]{Data: permission})
}

// Deactivate performs the logical delete of a permission.
func (c *PermissionController) Deactivate(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "Deactivate")
	defer span.End()

	if err := c.PermissionService.Deactivate(userContext, ctx.Params("permissionId")); err != nil {
		c.Logger.WithError(err).Warn("Failed to deactivate permission")
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
