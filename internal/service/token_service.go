package service

import (
	"context"

	"user-management/internal/constant"
	"user-management/internal/dto"
	"user-management/internal/model"
	"user-management/internal/repository"
	"user-management/internal/utils/errcode"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// TokenService mints and validates signed tokens and tracks the persisted
// ones (refresh, resetPassword) so they can be revoked and enforced
// single-use. Access tokens are stateless and never stored.
type TokenService struct {
	jwtService      *JwtService
	tokenRepository repository.TokenRepository
	userRepository  repository.UserRepository
	log             *logrus.Logger
	tracer          trace.Tracer
}

func NewTokenService(jwtService *JwtService, tokenRepo repository.TokenRepository, userRepo repository.UserRepository, log *logrus.Logger) *TokenService {
	return &TokenService{jwtService, tokenRepo, userRepo, log, otel.Tracer("TokenService")}
}

// GenerateAuthTokens issues an access/refresh pair and persists the refresh
// token server-side. Expired rows are pruned opportunistically on each issue.
func (s *TokenService) GenerateAuthTokens(ctx context.Context, user *model.User) (*dto.TokenResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "TokenService.GenerateAuthTokens")
	defer span.End()

	logger := s.log.WithContext(spanCtx)

	s.pruneExpired(spanCtx)

	accessToken, _, err := s.jwtService.GenerateToken(spanCtx, user, constant.TokenTypeAccess)
	if err != nil {
		logger.WithError(err).Error("Error generating access token")
		return nil, errcode.ErrAccessTokenGeneration
	}

	refreshToken, refreshExpires, err := s.jwtService.GenerateToken(spanCtx, user, constant.TokenTypeRefresh)
	if err != nil {
		logger.WithError(err).Error("Error generating refresh token")
		return nil, errcode.ErrRefreshTokenGeneration
	}

	record := &model.Token{
		UUID:      uuid.New().String(),
		Token:     refreshToken,
		UserUUID:  user.UUID,
		Type:      constant.TokenTypeRefresh,
		ExpiresAt: refreshExpires,
	}
	if err := s.tokenRepository.Create(spanCtx, record); err != nil {
		logger.WithError(err).Error("Failed to persist refresh token")
		return nil, errcode.ErrRefreshTokenGeneration
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GenerateResetPasswordToken resolves a user by email and issues a persisted
// single-use reset token.
func (s *TokenService) GenerateResetPasswordToken(ctx context.Context, email string) (string, error) {
	spanCtx, span := s.tracer.Start(ctx, "TokenService.GenerateResetPasswordToken")
	defer span.End()

	logger := s.log.WithContext(spanCtx)

	user := new(model.User)
	if err := s.userRepository.FindByEmail(spanCtx, user, email); err != nil {
		logger.WithError(err).Warn("No user found for reset password request")
		return "", errcode.ErrUserNotFound
	}

	s.pruneExpired(spanCtx)

	resetToken, expiresAt, err := s.jwtService.GenerateToken(spanCtx, user, constant.TokenTypeResetPassword)
	if err != nil {
		logger.WithError(err).Error("Error generating reset password token")
		return "", errcode.ErrResetTokenGeneration
	}

	record := &model.Token{
		UUID:      uuid.New().String(),
		Token:     resetToken,
		UserUUID:  user.UUID,
		Type:      constant.TokenTypeResetPassword,
		ExpiresAt: expiresAt,
	}
	if err := s.tokenRepository.Create(spanCtx, record); err != nil {
		logger.WithError(err).Error("Failed to persist reset password token")
		return "", errcode.ErrResetTokenGeneration
	}

	return resetToken, nil
}

// VerifyToken validates signature, expiry and type. For persisted types the
// matching server-side record must still exist; its absence means the token
// was already consumed or revoked.
func (s *TokenService) VerifyToken(ctx context.Context, raw string, tokenType constant.TokenType) (*model.Token, *Claims, error) {
	spanCtx, span := s.tracer.Start(ctx, "TokenService.VerifyToken")
	defer span.End()

	logger := s.log.WithContext(spanCtx)

	claims, err := s.jwtService.ValidateToken(spanCtx, raw, tokenType)
	if err != nil {
		logger.WithError(err).Warn("Token validation failed")
		return nil, nil, errcode.ErrInvalidToken
	}

	if tokenType == constant.TokenTypeAccess {
		return nil, claims, nil
	}

	record := new(model.Token)
	if err := s.tokenRepository.FindByValue(spanCtx, record, raw, tokenType); err != nil {
		logger.WithError(err).Warn("No persisted record for token")
		return nil, nil, errcode.ErrInvalidToken
	}

	if record.UserUUID != claims.UUID {
		logger.Warn("Persisted token does not belong to claimed user")
		return nil, nil, errcode.ErrInvalidToken
	}

	return record, claims, nil
}

// pruneExpired drops rows whose expiry has passed. Best effort: a failed
// prune never blocks token issuance.
func (s *TokenService) pruneExpired(ctx context.Context) {
	pruned, err := s.tokenRepository.DeleteExpired(ctx)
	if err != nil {
		s.log.WithContext(ctx).WithError(err).Warn("Failed to prune expired tokens")
		return
	}
	if pruned > 0 {
		s.log.WithContext(ctx).WithField("count", pruned).Debug("Pruned expired tokens")
	}
}

// Consume deletes the persisted token together with every sibling of the
// same type for that user, so stale tokens issued earlier cannot be replayed.
func (s *TokenService) Consume(ctx context.Context, record *model.Token) error {
	spanCtx, span := s.tracer.Start(ctx, "TokenService.Consume")
	defer span.End()

	return s.tokenRepository.DeleteByUserAndType(spanCtx, record.UserUUID, record.Type)
}
