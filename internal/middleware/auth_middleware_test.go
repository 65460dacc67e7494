package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"user-management/internal/config/env"
	"user-management/internal/config/web"
	"user-management/internal/constant"
	"user-management/internal/model"
	"user-management/internal/service"
)

func setupProtectedApp(t *testing.T) (*fiber.App, *service.JwtService) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &env.Config{}
	cfg.App.Name = "user-management-test"
	cfg.JWT.Secret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.ResetSecret = "reset-secret"
	cfg.JWT.AccessExpirationMinutes = 30
	cfg.JWT.RefreshExpirationDays = 30
	cfg.JWT.ResetExpirationMinutes = 10

	jwtService := service.NewJwtService(log, cfg)

	app := web.NewFiber(log, cfg)
	app.Get("/protected", AuthMiddleware(jwtService, log), func(c *fiber.Ctx) error {
		claims := GetUser(c)
		return c.JSON(fiber.Map{"uuid": claims.UUID})
	})

	return app, jwtService
}

func TestAuthMiddleware(t *testing.T) {
	app, jwtService := setupProtectedApp(t)

	user := &model.User{UUID: "u1", Email: "alice@example.com"}
	accessToken, _, err := jwtService.GenerateToken(context.Background(), user, constant.TokenTypeAccess)
	require.NoError(t, err)
	refreshToken, _, err := jwtService.GenerateToken(context.Background(), user, constant.TokenTypeRefresh)
	require.NoError(t, err)

	type tc struct {
		name       string
		authHeader string
		wantStatus int
	}

	cases := []tc{
		{
			name:       "ValidToken",
			authHeader: "Bearer " + accessToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "MissingHeader",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "WrongScheme",
			authHeader: "Basic " + accessToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "EmptyToken",
			authHeader: "Bearer ",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "GarbageToken",
			authHeader: "Bearer not-a-jwt",
			wantStatus: http.StatusUnauthorized,
		},
		{
			// a refresh token is signed with another secret, so it cannot
			// stand in for an access token
			name:       "RefreshTokenRejected",
			authHeader: "Bearer " + refreshToken,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if c.authHeader != "" {
				req.Header.Set("Authorization", c.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, c.wantStatus, resp.StatusCode)
		})
	}
}
