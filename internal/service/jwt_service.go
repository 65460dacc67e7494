package service

import (
	"context"
	"time"

	"user-management/internal/config/env"
	"user-management/internal/constant"
	"user-management/internal/model"
	"user-management/internal/utils/errcode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Claims struct {
	UUID        string             `json:"uuid"`
	Type        constant.TokenType `json:"type"`
	Roles       []string           `json:"roles,omitempty"`
	Permissions []string           `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

type JwtService struct {
	log    *logrus.Logger
	config *env.Config
	tracer trace.Tracer
}

func NewJwtService(log *logrus.Logger, config *env.Config) *JwtService {
	return &JwtService{log, config, otel.Tracer("JwtService")}
}

// GenerateToken signs a token of the given type for the user. Access tokens
// embed role names and permission keys so downstream authorization checks
// stay stateless.
func (j *JwtService) GenerateToken(ctx context.Context, user *model.User, tokenType constant.TokenType) (string, time.Time, error) {
	_, span := j.tracer.Start(ctx, "JwtService.GenerateToken")
	defer span.End()

	expiresAt := time.Now().Add(j.expirationFor(tokenType))

	claims := Claims{
		UUID: user.UUID,
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti keeps tokens unique even when two are minted within the
			// same second
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	if tokenType == constant.TokenTypeAccess {
		claims.Roles, claims.Permissions = flattenRoleClaims(user.Roles)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretFor(tokenType)))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken verifies signature, expiry and type tag, and returns the
// decoded claims.
func (j *JwtService) ValidateToken(ctx context.Context, tokenString string, tokenType constant.TokenType) (*Claims, error) {
	spanCtx, span := j.tracer.Start(ctx, "JwtService.ValidateToken")
	defer span.End()

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			j.log.WithContext(spanCtx).Error("Token method not match")
			return nil, errcode.ErrUnexpectedSignMethod
		}
		return []byte(j.secretFor(tokenType)), nil
	})

	if err != nil {
		j.log.WithContext(spanCtx).WithError(err).Error("Failed to parse with claims")
		return nil, err
	}

	if !token.Valid {
		j.log.WithContext(spanCtx).Error("Token invalid")
		return nil, errcode.ErrInvalidToken
	}

	if claims.Type != tokenType {
		j.log.WithContext(spanCtx).WithField("type", claims.Type).Error("Token type mismatch")
		return nil, errcode.ErrInvalidToken
	}

	return claims, nil
}

func (j *JwtService) secretFor(tokenType constant.TokenType) string {
	switch tokenType {
	case constant.TokenTypeRefresh:
		return j.config.GetRefreshSecret()
	case constant.TokenTypeResetPassword:
		return j.config.GetResetSecret()
	default:
		return j.config.GetAccessSecret()
	}
}

func (j *JwtService) expirationFor(tokenType constant.TokenType) time.Duration {
	switch tokenType {
	case constant.TokenTypeRefresh:
		return j.config.GetRefreshTokenExpiration()
	case constant.TokenTypeResetPassword:
		return j.config.GetResetTokenExpiration()
	default:
		return j.config.GetAccessTokenExpiration()
	}
}

// flattenRoleClaims collects role names and the union of permission keys from
// the role snapshots.
func flattenRoleClaims(roles []model.Role) ([]string, []string) {
	names := make([]string, 0, len(roles))
	seen := make(map[string]struct{})
	var keys []string

	for _, role := range roles {
		names = append(names, role.Name)
		for _, p := range role.Permissions {
			if _, ok := seen[p.Key]; ok {
				continue
			}
			seen[p.Key] = struct{}{}
			keys = append(keys, p.Key)
		}
	}
	return names, keys
}
