package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"user-management/internal/model"
)

// The promoted generic methods must satisfy the per-entity interfaces.
var (
	_ UserRepository       = (*userRepository)(nil)
	_ TokenRepository      = (*tokenRepository)(nil)
	_ RoleRepository       = (*roleRepository)(nil)
	_ PermissionRepository = (*permissionRepository)(nil)
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock
}

// A transaction placed on the context takes over from the repository's own
// connection.
func TestRepository_GetDbJoinsContextTransaction(t *testing.T) {
	gormDB, mock := newMockDB(t)
	txDB, txMock := newMockDB(t)

	repo := Repository[struct{ UUID string }]{DB: gormDB}

	txMock.ExpectBegin()
	tx := txDB.Begin()
	ctx := context.WithValue(context.Background(), TxKey, tx)

	require.Same(t, tx.Statement.ConnPool, repo.getDb(ctx).Statement.ConnPool)
	require.NoError(t, txMock.ExpectationsWereMet())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetDbFallsBackToOwnConnection(t *testing.T) {
	gormDB, _ := newMockDB(t)
	repo := Repository[struct{ UUID string }]{DB: gormDB}

	require.Same(t, gormDB.Statement.ConnPool, repo.getDb(context.Background()).Statement.ConnPool)
}

// Role lookups go through the promoted generic FindByUUID.
func TestRoleRepository_FindByUUID(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewRoleRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "roles" WHERE uuid = \$1`).
		WithArgs("r1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"uuid", "name", "is_active", "permissions"}).
			AddRow("r1", "editor", true, `[{"key":"articles","name":"Read articles"}]`))

	role := new(model.Role)
	err := repo.FindByUUID(context.Background(), role, "r1")
	require.NoError(t, err)
	require.Equal(t, "editor", role.Name)
	require.True(t, role.Permissions.ContainsKey("articles"))
	require.NoError(t, mock.ExpectationsWereMet())
}
