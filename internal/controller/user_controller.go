package controller

import (
	"math"

	"user-management/internal/config/validation"
	"user-management/internal/dto"
	"user-management/internal/middleware"
	"user-management/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type UserController struct {
	UserService *service.UserService
	Logger      *logrus.Logger
	Validation  *validation.Validation
	Tracer      trace.Tracer
}

func NewUserController(userService *service.UserService, logger *logrus.Logger, validator *validation.Validation) *UserController {
	return &UserController{userService, logger, validator, otel.Tracer("UserController")}
}

// Me returns the authenticated user's own profile.
func (c *UserController) Me(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "Me")
	defer span.End()

	claims := middleware.GetUser(ctx)

	result, err := c.UserService.GetUser(userContext, claims.UUID)
	if err != nil {
		c.Logger.WithError(err).Warn("Failed to load current user")
		return err
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return ctx.SendString(result)
}

func (c *UserController) List(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "List")
	defer span.End()

	req := &dto.SearchUserRequest{
		GivenName: ctx.Query("given_name"),
		Email:     ctx.Query("email"),
		Page:      ctx.QueryInt("page", 1),
		Size:      ctx.QueryInt("size", 10),
	}

	if err := c.Validation.Validate(req); err != nil {
		c.Logger.WithError(err).Warn("Validation failed for user search request")
		return err
	}

	users, total, err := c.UserService.Search(userContext, req)
	if err != nil {
		c.Logger.WithError(err).Warn("Failed to search users")
		return err
	}

	return ctx.JSON(dto.WebResponse[[]*dto.UserResponse]{
		Data: users,
		Paging: &dto.PageMetadata{
			Page:      req.Page,
			Size:      req.Size,
			TotalItem: total,
			TotalPage: int64(math.Ceil(float64(total) / float64(req.Size))),
		},
	})
}

func (c *UserController) Get(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "Get")
	defer span.End()

	result, err := c.UserService.GetUser(userContext, ctx.Params("userId"))
	if err != nil {
		c.Logger.WithError(err).Warn("Failed to get user")
		return err
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return ctx.SendString(result)
}

func (c *UserController) Create(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "Create")
	defer span.End()

	var req dto.CreateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		c.Logger.WithError(err).Error("Failed to parse create user request")
		return fiber.ErrBadRequest
	}

	if err := c.Validation.Validate(&req); err != nil {
		c.Logger.WithError(err).Warn("Validation failed for create user request")
		return err
	}

	user, err := c.UserService.CreateUser(userContext, &req)
	if err != nil {
		c.Logger.WithError(err).Warn("Failed to create user")
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.WebResponse[*dto.UserResponse]{Data: user})
}

func (c *UserController) Update(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "Update")
	defer span.End()

	var req dto.UpdateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		c.Logger.WithError(err).Error("Failed to parse update user request")
		return fiber.ErrBadRequest
	}

	if err := c.Validation.Validate(&req); err != nil {
		c.Logger.WithError(err).Warn("Validation failed for update user request")
		return err
	}

	user, err := c.UserService.UpdateUser(userContext, ctx.Params("userId"), &req)
	if err != nil {
		c.Logger.WithError(err).Warn("Failed to update user")
		return err
	}

	return ctx.JSON(dto.WebResponse[*dto.UserResponse]{Data: user})
}

func (c *UserController) Delete(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "Delete")
	defer span.End()

	if err := c.UserService.DeleteUser(userContext, ctx.Params("userId")); err != nil {
		c.Logger.WithError(err).Warn("Failed to delete user")
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *UserController) AssignRole(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "AssignRole")
	defer span.End()

	var req dto.AssignRoleRequest
	if err := ctx.BodyParser(&req); err != nil {
		c.Logger.WithError(err).Error("Failed to parse assign role request")
		return fiber.ErrBadRequest
	}

	if err := c.Validation.Validate(&req); err != nil {
		c.Logger.WithError(err).Warn("Validation failed for assign role request")
		return err
	}

	user, err := c.UserService.AssignRole(userContext, ctx.Params("userId"), req.RoleUUID)
	if err != nil {
		c.Logger.WithError(err).Warn("Failed to assign role")
		return err
	}

	return ctx.JSON(dto.WebResponse[*dto.UserResponse]{Data: user})
}
