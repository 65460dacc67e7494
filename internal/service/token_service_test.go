package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"user-management/internal/constant"
	"user-management/internal/model"
	"user-management/internal/utils/errcode"

	"github.com/stretchr/testify/require"
)

func setupTokenService(t *testing.T) (*TokenService, *fakeTokenRepository, *fakeUserRepository) {
	t.Helper()
	tokenRepo := newFakeTokenRepository()
	userRepo := newFakeUserRepository()
	jwtService := NewJwtService(testLogger(), testEnvConfig())
	return NewTokenService(jwtService, tokenRepo, userRepo, testLogger()), tokenRepo, userRepo
}

func TestTokenService_GenerateAuthTokens(t *testing.T) {
	svc, tokenRepo, _ := setupTokenService(t)
	user := testUserWithRoles()

	tokens, err := svc.GenerateAuthTokens(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	require.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)

	// refresh token is persisted, access token is not
	require.Equal(t, 1, tokenRepo.count(user.UUID, constant.TokenTypeRefresh))
	require.Equal(t, 0, tokenRepo.count(user.UUID, constant.TokenTypeAccess))
}

func TestTokenService_GenerateResetPasswordToken(t *testing.T) {
	svc, tokenRepo, userRepo := setupTokenService(t)
	user := testUserWithRoles()
	require.NoError(t, userRepo.Create(context.Background(), user))

	type tc struct {
		name   string
		email  string
		assert func(t *testing.T, token string, err error)
	}

	cases := []tc{
		{
			name:  "Success",
			email: user.Email,
			assert: func(t *testing.T, token string, err error) {
				require.NoError(t, err)
				require.NotEmpty(t, token)
				require.Equal(t, 1, tokenRepo.count(user.UUID, constant.TokenTypeResetPassword))
			},
		},
		{
			name:  "UnknownEmail",
			email: "nobody@example.com",
			assert: func(t *testing.T, token string, err error) {
				require.Error(t, err)
				require.True(t, errors.Is(err, errcode.ErrUserNotFound))
				require.Empty(t, token)
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			token, err := svc.GenerateResetPasswordToken(context.Background(), c.email)
			c.assert(t, token, err)
		})
	}
}

func TestTokenService_VerifyToken(t *testing.T) {
	svc, _, userRepo := setupTokenService(t)
	user := testUserWithRoles()
	require.NoError(t, userRepo.Create(context.Background(), user))

	tokens, err := svc.GenerateAuthTokens(context.Background(), user)
	require.NoError(t, err)

	t.Run("AccessIsStateless", func(t *testing.T) {
		record, claims, err := svc.VerifyToken(context.Background(), tokens.AccessToken, constant.TokenTypeAccess)
		require.NoError(t, err)
		require.Nil(t, record)
		require.Equal(t, user.UUID, claims.UUID)
	})

	t.Run("RefreshReturnsPersistedRecord", func(t *testing.T) {
		record, claims, err := svc.VerifyToken(context.Background(), tokens.RefreshToken, constant.TokenTypeRefresh)
		require.NoError(t, err)
		require.NotNil(t, record)
		require.Equal(t, user.UUID, record.UserUUID)
		require.Equal(t, constant.TokenTypeRefresh, record.Type)
		require.Equal(t, user.UUID, claims.UUID)
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		_, _, err := svc.VerifyToken(context.Background(), tokens.RefreshToken, constant.TokenTypeAccess)
		require.Error(t, err)
		require.True(t, errors.Is(err, errcode.ErrInvalidToken))
	})

	t.Run("MissingPersistedRecord", func(t *testing.T) {
		record, _, err := svc.VerifyToken(context.Background(), tokens.RefreshToken, constant.TokenTypeRefresh)
		require.NoError(t, err)
		require.NoError(t, svc.Consume(context.Background(), record))

		// the signature is still valid but the server-side record is gone
		_, _, err = svc.VerifyToken(context.Background(), tokens.RefreshToken, constant.TokenTypeRefresh)
		require.Error(t, err)
		require.True(t, errors.Is(err, errcode.ErrInvalidToken))
	})
}

// Issuing a new pair prunes rows whose expiry has passed, so the tokens
// table does not accumulate dead entries.
func TestTokenService_GenerateAuthTokensPrunesExpired(t *testing.T) {
	svc, tokenRepo, _ := setupTokenService(t)
	user := testUserWithRoles()

	stale := &model.Token{
		UUID:      "stale",
		Token:     "stale-raw-token",
		UserUUID:  user.UUID,
		Type:      constant.TokenTypeRefresh,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, tokenRepo.Create(context.Background(), stale))

	_, err := svc.GenerateAuthTokens(context.Background(), user)
	require.NoError(t, err)

	// the expired row is gone, only the freshly issued refresh row remains
	require.Equal(t, 1, tokenRepo.count(user.UUID, constant.TokenTypeRefresh))
	lookup := new(model.Token)
	err = tokenRepo.FindByValue(context.Background(), lookup, "stale-raw-token", constant.TokenTypeRefresh)
	require.Error(t, err)
}

func TestTokenService_ConsumeDeletesSiblings(t *testing.T) {
	svc, tokenRepo, userRepo := setupTokenService(t)
	user := testUserWithRoles()
	require.NoError(t, userRepo.Create(context.Background(), user))

	// two outstanding reset tokens for the same user
	first, err := svc.GenerateResetPasswordToken(context.Background(), user.Email)
	require.NoError(t, err)
	_, err = svc.GenerateResetPasswordToken(context.Background(), user.Email)
	require.NoError(t, err)
	require.Equal(t, 2, tokenRepo.count(user.UUID, constant.TokenTypeResetPassword))

	record, _, err := svc.VerifyToken(context.Background(), first, constant.TokenTypeResetPassword)
	require.NoError(t, err)

	require.NoError(t, svc.Consume(context.Background(), record))
	require.Equal(t, 0, tokenRepo.count(user.UUID, constant.TokenTypeResetPassword))
}
