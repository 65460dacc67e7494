package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"user-management/internal/config/env"
	"user-management/internal/config/validation"
	"user-management/internal/controller"
	"user-management/internal/middleware"
	"user-management/internal/repository"
	"user-management/internal/route"
	"user-management/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type BootstrapConfig struct {
	db         *gorm.DB
	web        *fiber.App
	log        *logrus.Logger
	config     *env.Config
	validation *validation.Validation
	redis      *redis.Client
}

func NewApp(log *logrus.Logger, config *env.Config, db *gorm.DB, web *fiber.App, validation *validation.Validation, redis *redis.Client) *BootstrapConfig {
	return &BootstrapConfig{db, web, log, config, validation, redis}
}

func (app *BootstrapConfig) Bootstrap() {
	// setup repositories
	userRepository := repository.NewUserRepository(app.db)
	tokenRepository := repository.NewTokenRepository(app.db)
	roleRepository := repository.NewRoleRepository(app.db)
	permissionRepository := repository.NewPermissionRepository(app.db)

	// setup services
	jwtService := service.NewJwtService(app.log, app.config)
	tokenService := service.NewTokenService(jwtService, tokenRepository, userRepository, app.log)
	emailService := service.NewEmailService(app.log, app.config)
	redisService := service.NewRedisService(app.redis, app.log)
	authService := service.NewAuthService(app.db, tokenService, userRepository, emailService, app.log)
	userService := service.NewUserService(userRepository, roleRepository, redisService, app.log)
	roleService := service.NewRoleService(roleRepository, permissionRepository, app.log)
	permissionService := service.NewPermissionService(permissionRepository, redisService, app.log)

	// setup controllers
	welcomeController := controller.NewWelcomeController()
	authController := controller.NewAuthController(authService, app.log, app.validation)
	userController := controller.NewUserController(userService, app.log, app.validation)
	roleController := controller.NewRoleController(roleService, app.log, app.validation)
	permissionController := controller.NewPermissionController(permissionService, app.log, app.validation)

	// setup middleware
	authMiddleware := middleware.AuthMiddleware(jwtService, app.log)
	app.web.Use(middleware.Cors(app.config))

	// setup routes
	routeConfig := route.NewRouteConfig(app.web)
	routeConfig.WelcomeRoutes(welcomeController)
	routeConfig.RegisterAuthRoutes(authController)
	routeConfig.RegisterUserRoutes(userController, authMiddleware)
	routeConfig.RegisterRoleRoutes(roleController, authMiddleware)
	routeConfig.RegisterPermissionRoutes(permissionController, authMiddleware)
}

func (app *BootstrapConfig) Run() error {
	app.Bootstrap()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.web.Listen(fmt.Sprintf(":%d", app.config.Web.Port))
	})

	g.Go(func() error {
		<-gCtx.Done()
		app.log.Info("Shutting down server")
		return app.web.Shutdown()
	})

	if err := g.Wait(); err != nil {
		app.log.WithError(err).Error("Server stopped")
		return err
	}
	return nil
}
