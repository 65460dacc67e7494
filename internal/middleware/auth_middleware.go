package middleware

import (
	"strings"

	"user-management/internal/constant"
	"user-management/internal/service"
	"user-management/internal/utils/errcode"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

const (
	bearerKeyword = "Bearer"
	bearerLen     = len(bearerKeyword)
	authKey       = "auth"
)

// AuthMiddleware validates the bearer access token and stores its claims in
// request locals. Authorization decisions downstream read roles and
// permission keys straight from the claims, no storage round trip needed.
func AuthMiddleware(jwtService *service.JwtService, log *logrus.Logger) fiber.Handler {
	tracer := otel.Tracer("AuthMiddleware")
	return func(c *fiber.Ctx) error {
		spanCtx, span := tracer.Start(c.UserContext(), "AuthMiddleware")
		defer span.End()

		logger := log.WithContext(spanCtx)

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.Warn("authorization header missing")
			return errcode.ErrAuthorizationHeader
		}

		if !strings.HasPrefix(authHeader, bearerKeyword) {
			logger.Warn("invalid authorization header format")
			return errcode.ErrBearerHeader
		}

		accessToken := strings.TrimSpace(authHeader[bearerLen:])
		if accessToken == "" {
			logger.Warn("access token missing in header")
			return errcode.ErrAccessTokenMissing
		}

		claims, err := jwtService.ValidateToken(spanCtx, accessToken, constant.TokenTypeAccess)
		if err != nil {
			logger.WithError(err).Warn("access token is invalid or expired")
			return errcode.ErrTokenIsExpired
		}

		c.Locals(authKey, claims)
		return c.Next()
	}
}

// GetUser retrieves user claims from fiber context with type assertion
func GetUser(ctx *fiber.Ctx) *service.Claims {
	return ctx.Locals(authKey).(*service.Claims)
}
