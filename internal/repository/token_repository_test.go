package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"user-management/internal/constant"
	"user-management/internal/model"
)

func TestTokenRepository_FindByValue(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewTokenRepository(gormDB)

	t.Run("Found", func(t *testing.T) {
		expiresAt := time.Now().Add(time.Hour)
		rows := sqlmock.NewRows([]string{"uuid", "token", "user_uuid", "type", "expires_at", "created_at"}).
			AddRow("t1", "raw-token", "u1", "refresh", expiresAt, time.Now())

		mock.ExpectQuery(`SELECT \* FROM "tokens" WHERE token = \$1 AND type = \$2`).
			WithArgs("raw-token", "refresh", 1).
			WillReturnRows(rows)

		token := new(model.Token)
		err := repo.FindByValue(context.Background(), token, "raw-token", constant.TokenTypeRefresh)
		require.NoError(t, err)
		require.Equal(t, "u1", token.UserUUID)
		require.Equal(t, constant.TokenTypeRefresh, token.Type)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "tokens" WHERE token = \$1 AND type = \$2`).
			WithArgs("unknown", "refresh", 1).
			WillReturnRows(sqlmock.NewRows([]string{"uuid"}))

		token := new(model.Token)
		err := repo.FindByValue(context.Background(), token, "unknown", constant.TokenTypeRefresh)
		require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("TypeIsPartOfTheKey", func(t *testing.T) {
		// the same raw value under another type tag does not match
		mock.ExpectQuery(`SELECT \* FROM "tokens" WHERE token = \$1 AND type = \$2`).
			WithArgs("raw-token", "resetPassword", 1).
			WillReturnRows(sqlmock.NewRows([]string{"uuid"}))

		token := new(model.Token)
		err := repo.FindByValue(context.Background(), token, "raw-token", constant.TokenTypeResetPassword)
		require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTokenRepository_DeleteByUserAndType(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewTokenRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tokens" WHERE user_uuid = \$1 AND type = \$2`).
		WithArgs("u1", "refresh").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.DeleteByUserAndType(context.Background(), "u1", constant.TokenTypeRefresh)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_DeleteExpired(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewTokenRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tokens" WHERE expires_at < \$1`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	pruned, err := repo.DeleteExpired(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(3), pruned)
	require.NoError(t, mock.ExpectationsWereMet())
}
