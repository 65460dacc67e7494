package service

import (
	"context"
	"strings"

	"user-management/internal/constant"
	"user-management/internal/dto"
	"user-management/internal/dto/converter"
	"user-management/internal/model"
	"user-management/internal/repository"
	"user-management/internal/utils/errcode"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Notifier delivers credential-related mail. Delivery mechanics live outside
// the core; failures are logged, not retried.
type Notifier interface {
	SendResetPasswordEmail(ctx context.Context, email, token string) error
}

type AuthService struct {
	db             *gorm.DB
	tokenService   *TokenService
	userRepository repository.UserRepository
	notifier       Notifier
	logger         *logrus.Logger
	tracer         trace.Tracer
}

func NewAuthService(db *gorm.DB, tokenService *TokenService, userRepo repository.UserRepository, notifier Notifier, logger *logrus.Logger) *AuthService {
	return &AuthService{db, tokenService, userRepo, notifier, logger, otel.Tracer("AuthService")}
}

// Login authenticates a user and returns a token pair. A wrong password and
// an unknown email are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	logger := s.logger.WithContext(spanCtx)

	user := new(model.User)
	if err := s.userRepository.FindByEmail(spanCtx, user, normalizeEmail(req.Email)); err != nil {
		logger.WithError(err).Warn("User not found during login")
		return nil, errcode.ErrInvalidEmailOrPassword
	}

	_, passwordSpan := s.tracer.Start(spanCtx, "CompareHashPassword")
	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password))
	passwordSpan.End()
	if err != nil {
		logger.Warn("Invalid password attempt")
		return nil, errcode.ErrInvalidEmailOrPassword
	}

	return s.tokenService.GenerateAuthTokens(spanCtx, user)
}

// Register creates a new user with a hashed password and issues an initial
// token pair.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "AuthService.Register")
	defer span.End()

	logger := s.logger.WithContext(spanCtx)
	email := normalizeEmail(req.Email)

	tx := s.db.Begin()
	txCtx := context.WithValue(spanCtx, repository.TxKey, tx)

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.WithField("panic", r).Error("Recovered from panic during registration")
		}
	}()

	existingUserCount, err := s.userRepository.CountByEmail(txCtx, email)
	if err != nil {
		tx.Rollback()
		logger.WithError(err).Error("Database error checking existing user")
		return nil, errcode.ErrDatabaseError
	}
	if existingUserCount > 0 {
		tx.Rollback()
		logger.Warn("Attempt to register an already existing email")
		return nil, errcode.ErrUserAlreadyExists
	}

	_, hashSpan := s.tracer.Start(spanCtx, "HashPassword")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	hashSpan.End()
	if err != nil {
		tx.Rollback()
		logger.WithError(err).Error("Failed to hash password")
		return nil, errcode.ErrPasswordEncryption
	}

	user := model.User{
		UUID:      uuid.New().String(),
		Email:     email,
		Password:  string(hashedPassword),
		GivenName: req.GivenName,
		SurName:   req.SurName,
	}

	if err := s.userRepository.Create(txCtx, &user); err != nil {
		tx.Rollback()
		logger.WithError(err).Error("Error creating user")
		return nil, errcode.ErrUserAlreadyExists
	}

	if err := tx.Commit().Error; err != nil {
		logger.WithError(err).Error("Transaction commit failed")
		return nil, errcode.ErrDatabaseTransaction
	}

	tokens, err := s.tokenService.GenerateAuthTokens(spanCtx, &user)
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		User:   converter.UserToResponse(&user),
		Tokens: tokens,
	}, nil
}

// RefreshToken rotates a refresh token into a fresh access/refresh pair.
// Every failure collapses to a single generic error so the caller learns
// nothing about why the token was rejected. Two calls racing on the same
// token resolve fail-closed: the loser finds the record consumed.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "AuthService.RefreshToken")
	defer span.End()
	logger := s.logger.WithContext(spanCtx)

	record, claims, err := s.tokenService.VerifyToken(spanCtx, refreshToken, constant.TokenTypeRefresh)
	if err != nil {
		logger.WithError(err).Warn("Invalid refresh token")
		return nil, errcode.ErrPleaseAuthenticate
	}

	user := new(model.User)
	if err := s.userRepository.FindByUUID(spanCtx, user, claims.UUID); err != nil {
		logger.WithError(err).Warn("Refresh token owner no longer exists")
		return nil, errcode.ErrPleaseAuthenticate
	}

	if err := s.tokenService.Consume(spanCtx, record); err != nil {
		logger.WithError(err).Error("Failed to consume refresh token")
		return nil, errcode.ErrPleaseAuthenticate
	}

	tokens, err := s.tokenService.GenerateAuthTokens(spanCtx, user)
	if err != nil {
		logger.WithError(err).Error("Failed to issue new token pair")
		return nil, errcode.ErrPleaseAuthenticate
	}

	return tokens, nil
}

// Logout revokes the presented refresh token and its siblings.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	spanCtx, span := s.tracer.Start(ctx, "AuthService.Logout")
	defer span.End()
	logger := s.logger.WithContext(spanCtx)

	record, _, err := s.tokenService.VerifyToken(spanCtx, refreshToken, constant.TokenTypeRefresh)
	if err != nil {
		logger.WithError(err).Warn("Invalid refresh token on logout")
		return errcode.ErrPleaseAuthenticate
	}

	if err := s.tokenService.Consume(spanCtx, record); err != nil {
		logger.WithError(err).Error("Failed to revoke refresh token")
		return errcode.ErrPleaseAuthenticate
	}

	return nil
}

// ForgotPassword issues a reset token and hands it to the notifier. An
// unknown email returns success without sending anything, so the endpoint
// cannot be used to probe which addresses are registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	spanCtx, span := s.tracer.Start(ctx, "AuthService.ForgotPassword")
	defer span.End()
	logger := s.logger.WithContext(spanCtx)

	email = normalizeEmail(email)

	resetToken, err := s.tokenService.GenerateResetPasswordToken(spanCtx, email)
	if err != nil {
		if err == errcode.ErrUserNotFound {
			logger.Info("Reset password requested for unknown email")
			return nil
		}
		return err
	}

	if err := s.notifier.SendResetPasswordEmail(spanCtx, email, resetToken); err != nil {
		// Fire and forget: delivery is the notifier's problem, not ours.
		logger.WithError(err).Warn("Failed to hand reset token to notifier")
	}

	return nil
}

// ResetPassword verifies a reset token, invalidates every outstanding reset
// token for the user, and stores the new password hash. Failures collapse to
// one generic error.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	spanCtx, span := s.tracer.Start(ctx, "AuthService.ResetPassword")
	defer span.End()
	logger := s.logger.WithContext(spanCtx)

	record, claims, err := s.tokenService.VerifyToken(spanCtx, rawToken, constant.TokenTypeResetPassword)
	if err != nil {
		logger.WithError(err).Warn("Invalid reset password token")
		return errcode.ErrPasswordResetFailed
	}

	user := new(model.User)
	if err := s.userRepository.FindByUUID(spanCtx, user, claims.UUID); err != nil {
		logger.WithError(err).Warn("Reset token owner no longer exists")
		return errcode.ErrPasswordResetFailed
	}

	if err := s.tokenService.Consume(spanCtx, record); err != nil {
		logger.WithError(err).Error("Failed to consume reset password tokens")
		return errcode.ErrPasswordResetFailed
	}

	_, hashSpan := s.tracer.Start(spanCtx, "HashPassword")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	hashSpan.End()
	if err != nil {
		logger.WithError(err).Error("Failed to hash new password")
		return errcode.ErrPasswordResetFailed
	}

	user.Password = string(hashedPassword)
	if err := s.userRepository.Update(spanCtx, user); err != nil {
		logger.WithError(err).Error("Failed to store new password hash")
		return errcode.ErrPasswordResetFailed
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
