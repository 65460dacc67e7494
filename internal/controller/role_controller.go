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

type RoleController struct {
	RoleService *service.RoleService
	Logger      *logrus.Logger
	Validation  *validation.Validation
	Tracer      trace.Tracer
}

func NewRoleController(roleService *service.RoleService, logger *logrus.Logger, validator *validation.Validation) *RoleController {
	return &RoleController{roleService, logger, validator, otel.Tracer("RoleController")}
}

func (c *RoleController) List(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "List")
	defer span.End()

	roles, err := c.RoleService.List(userContext)
	if err != nil {
		c.Logger.WithError(err).Warn("Failed to list roles")
		return err
	}

	return ctx.JSON(dto.WebResponse[[]*dto.RoleResponse]{Data: roles})
}

func (c *RoleController) Get(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "Get")
	defer span.End()

	role, err := c.RoleService.Get(userContext, ctx.Params("roleId"))
	if err != nil {
		c.Logger.WithError(err).Warn("Failed to get role")
		return err
	}

	return ctx.JSON(dto.WebResponse[*dto.RoleResponse]{Data: role})
}

func (c *RoleController) Create(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "Create")
	defer span.End()

	var req dto.CreateRoleRequest
	if err := ctx.BodyParser(&req); err != nil {
		c.Logger.WithError(err).Error("Failed to parse create role request")
		return fiber.ErrBadRequest
	}

	if err := c.Validation.Validate(&req); err != nil {
		c.Logger.WithError(err).Warn("Validation failed for create role request")
		return err
	}

	role, err := c.RoleService.Create(userContext, &req)
	if err != nil {
		c.Logger.WithError(err).Warn("Failed to create role")
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.WebResponse[*dto.RoleResponse]{Data: role})
}

func (c *RoleController) AddPermissions(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "AddPermissions")
	defer span.End()

	var req dto.AddRolePermissionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		c.Logger.WithError(err).Error("Failed to parse add permissions request")
		return fiber.ErrBadRequest
	}

	if err := c.Validation.Validate(&req); err != nil {
		c.Logger.WithError(err).Warn("Validation failed for add permissions request")
		return err
	}

	role, err := c.RoleService.AddPermissions(userContext, ctx.Params("roleId"), req.Permissions)
	if err != nil {
		c.Logger.WithError(err).Warn("Failed to add permissions to role")
		return err
	}

	return ctx.JSON(dto.WebResponse[*dto.RoleResponse]{Data: role})
}

func (c *RoleController) RemovePermissions(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "RemovePermissions")
	defer span.End()

	var req dto.RemoveRolePermissionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		c.Logger.WithError(err).Error("Failed to parse remove permissions request")
		return fiber.ErrBadRequest
	}

	if err := c.Validation.Validate(&req); err != nil {
		c.Logger.WithError(err).Warn("Validation failed for remove permissions request")
		return err
	}

	role, err := c.RoleService.RemovePermissions(userContext, ctx.Params("roleId"), req.Keys)
	if err != nil {
		c.Logger.WithError(err).Warn("Failed to remove permissions from role")
		return err
	}

	return ctx.JSON(dto.WebResponse[*dto.RoleResponse]{Data: role})
}

func (c *RoleController) Remove(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "Remove")
	defer span.End()

	if err := c.RoleService.Remove(userContext, ctx.Params("roleId")); err != nil {
		c.Logger.WithError(err).Warn("Failed to remove role")
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
