package errcode

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	// Authentication Errors
	ErrInvalidEmailOrPassword = errors.New("incorrect email or password")
	ErrPleaseAuthenticate     = errors.New("please authenticate")
	ErrPasswordResetFailed    = errors.New("password reset failed")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrAuthorizationHeader    = errors.New("authorization header is required")
	ErrBearerHeader           = errors.New("authorization header must be a bearer token")
	ErrAccessTokenMissing     = errors.New("access token is required")
	ErrTokenIsExpired         = errors.New("token is expired")
	ErrInvalidToken           = errors.New("invalid token")
	ErrUnexpectedSignMethod   = errors.New("unexpected token signing method")

	// User Errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserSearchFailed  = errors.New("failed to retrieve users")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Role Errors
	ErrRoleNotFound      = errors.New("role not found")
	ErrRoleAlreadyExists = errors.New("role already taken")

	// Permission Errors
	ErrPermissionNotFound      = errors.New("permission not found")
	ErrPermissionAlreadyExists = errors.New("permission already taken")

	// Token Errors
	ErrAccessTokenGeneration  = errors.New("could not generate access token")
	ErrRefreshTokenGeneration = errors.New("could not generate refresh token")
	ErrResetTokenGeneration   = errors.New("could not generate reset password token")

	// Common Errors
	ErrPasswordEncryption  = errors.New("password encryption error")
	ErrDatabaseError       = errors.New("database error")
	ErrDatabaseTransaction = errors.New("database transaction failed")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadRequest          = errors.New("bad request")
)

// errorStatusMap maps application errors to their respective HTTP status codes
var errorStatusMap = map[error]int{
	// 401 Unauthorized Errors
	ErrInvalidEmailOrPassword: fiber.StatusUnauthorized,
	ErrPleaseAuthenticate:     fiber.StatusUnauthorized,
	ErrPasswordResetFailed:    fiber.StatusUnauthorized,
	ErrUnauthorized:           fiber.StatusUnauthorized,
	ErrAuthorizationHeader:    fiber.StatusUnauthorized,
	ErrBearerHeader:           fiber.StatusUnauthorized,
	ErrAccessTokenMissing:     fiber.StatusUnauthorized,
	ErrTokenIsExpired:         fiber.StatusUnauthorized,
	ErrInvalidToken:           fiber.StatusUnauthorized,

	// 404 Not Found Errors
	ErrUserNotFound:       fiber.StatusNotFound,
	ErrRoleNotFound:       fiber.StatusNotFound,
	ErrPermissionNotFound: fiber.StatusNotFound,

	// 409 Conflict Errors
	ErrUserAlreadyExists:       fiber.StatusConflict,
	ErrRoleAlreadyExists:       fiber.StatusConflict,
	ErrPermissionAlreadyExists: fiber.StatusConflict,

	// 400 Bad Request Errors
	ErrBadRequest: fiber.StatusBadRequest,

	// 500 Internal Server Errors
	ErrUserSearchFailed:       fiber.StatusInternalServerError,
	ErrAccessTokenGeneration:  fiber.StatusInternalServerError,
	ErrRefreshTokenGeneration: fiber.StatusInternalServerError,
	ErrResetTokenGeneration:   fiber.StatusInternalServerError,
	ErrPasswordEncryption:     fiber.StatusInternalServerError,
	ErrDatabaseError:          fiber.StatusInternalServerError,
	ErrDatabaseTransaction:    fiber.StatusInternalServerError,
	ErrInternalServerError:    fiber.StatusInternalServerError,
}

// GetHTTPStatus retrieves the HTTP status code for a given error.
func GetHTTPStatus(err error) (int, bool) {
	statusCode, exists := errorStatusMap[err]
	return statusCode, exists
}
