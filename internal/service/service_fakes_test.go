package service

import (
	"context"
	"io"
	"sync"
	"time"

	"user-management/internal/config/env"
	"user-management/internal/constant"
	"user-management/internal/dto"
	"user-management/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// helper: default env config for JWT secrets/durations
func testEnvConfig() *env.Config {
	cfg := &env.Config{}
	cfg.JWT.Secret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.ResetSecret = "reset-secret"
	cfg.JWT.AccessExpirationMinutes = 30
	cfg.JWT.RefreshExpirationDays = 30
	cfg.JWT.ResetExpirationMinutes = 10
	cfg.Mail.ResetURL = "http://localhost:3000/reset-password"
	return cfg
}

// helper: silent logger
func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// in-memory user repository
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*model.User)}
}

func (f *fakeUserRepository) Create(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := *user
	f.users[user.UUID] = &u
	return nil
}

func (f *fakeUserRepository) Update(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := *user
	f.users[user.UUID] = &u
	return nil
}

func (f *fakeUserRepository) Delete(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, user.UUID)
	return nil
}

func (f *fakeUserRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total int64
	for _, u := range f.users {
		if u.Email == email {
			total++
		}
	}
	return total, nil
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, user *model.User, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			*user = *u
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByUUID(ctx context.Context, user *model.User, uuid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[uuid]; ok {
		*user = *u
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) AppendRole(ctx context.Context, user *model.User, role *model.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[user.UUID]; ok {
		u.Roles = append(u.Roles, *role)
	}
	return nil
}

func (f *fakeUserRepository) Search(ctx context.Context, request *dto.SearchUserRequest) ([]*model.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*model.User
	for _, u := range f.users {
		result = append(result, u)
	}
	return result, int64(len(result)), nil
}

// in-memory token repository keyed by raw token value
type fakeTokenRepository struct {
	mu   sync.Mutex
	rows map[string]*model.Token
}

func newFakeTokenRepository() *fakeTokenRepository {
	return &fakeTokenRepository{rows: make(map[string]*model.Token)}
}

func (f *fakeTokenRepository) Create(ctx context.Context, token *model.Token) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row := *token
	f.rows[token.Token] = &row
	return nil
}

func (f *fakeTokenRepository) FindByValue(ctx context.Context, token *model.Token, raw string, tokenType constant.TokenType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.rows[raw]; ok && row.Type == tokenType {
		*token = *row
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeTokenRepository) DeleteByUserAndType(ctx context.Context, userUUID string, tokenType constant.TokenType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for raw, row := range f.rows {
		if row.UserUUID == userUUID && row.Type == tokenType {
			delete(f.rows, raw)
		}
	}
	return nil
}

func (f *fakeTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var pruned int64
	for raw, row := range f.rows {
		if row.ExpiresAt.Before(time.Now()) {
			delete(f.rows, raw)
			pruned++
		}
	}
	return pruned, nil
}

func (f *fakeTokenRepository) count(userUUID string, tokenType constant.TokenType) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, row := range f.rows {
		if row.UserUUID == userUUID && row.Type == tokenType {
			total++
		}
	}
	return total
}

// in-memory role repository
type fakeRoleRepository struct {
	mu          sync.Mutex
	roles       map[string]*model.Role
	lookupErr   error
	updateCalls int
}

func newFakeRoleRepository() *fakeRoleRepository {
	return &fakeRoleRepository{roles: make(map[string]*model.Role)}
}

func (f *fakeRoleRepository) Create(ctx context.Context, role *model.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := *role
	f.roles[role.UUID] = &r
	return nil
}

func (f *fakeRoleRepository) Update(ctx context.Context, role *model.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := *role
	f.roles[role.UUID] = &r
	return nil
}

func (f *fakeRoleRepository) Delete(ctx context.Context, role *model.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.roles, role.UUID)
	return nil
}

func (f *fakeRoleRepository) CountByName(ctx context.Context, name string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total int64
	for _, r := range f.roles {
		if r.Name == name {
			total++
		}
	}
	return total, nil
}

func (f *fakeRoleRepository) FindByUUID(ctx context.Context, role *model.Role, uuid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return f.lookupErr
	}
	if r, ok := f.roles[uuid]; ok {
		*role = *r
		role.Permissions = append(model.PermissionSnapshots{}, r.Permissions...)
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRoleRepository) FindActive(ctx context.Context) ([]model.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var roles []model.Role
	for _, r := range f.roles {
		if r.IsActive {
			roles = append(roles, *r)
		}
	}
	return roles, nil
}

func (f *fakeRoleRepository) UpdatePermissions(ctx context.Context, roleUUID string, permissions model.PermissionSnapshots) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if r, ok := f.roles[roleUUID]; ok {
		r.Permissions = append(model.PermissionSnapshots{}, permissions...)
	}
	return nil
}

// in-memory permission repository
type fakePermissionRepository struct {
	mu          sync.Mutex
	permissions map[string]*model.Permission
}

func newFakePermissionRepository() *fakePermissionRepository {
	return &fakePermissionRepository{permissions: make(map[string]*model.Permission)}
}

func (f *fakePermissionRepository) Create(ctx context.Context, permission *model.Permission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := *permission
	f.permissions[permission.UUID] = &p
	return nil
}

func (f *fakePermissionRepository) Update(ctx context.Context, permission *model.Permission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := *permission
	f.permissions[permission.UUID] = &p
	return nil
}

func (f *fakePermissionRepository) FindByUUID(ctx context.Context, permission *model.Permission, uuid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.permissions[uuid]; ok {
		*permission = *p
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (f *fakePermissionRepository) FindByUUIDs(ctx context.Context, uuids []string) ([]model.Permission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Permission
	for _, uuid := range uuids {
		if p, ok := f.permissions[uuid]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (f *fakePermissionRepository) FindActive(ctx context.Context) ([]model.Permission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Permission
	for _, p := range f.permissions {
		if p.IsActive {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (f *fakePermissionRepository) CountByNameOrKey(ctx context.Context, name, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total int64
	for _, p := range f.permissions {
		if p.Name == name || p.Key == key {
			total++
		}
	}
	return total, nil
}

// notifier capturing handed-off reset tokens
type fakeNotifier struct {
	mu     sync.Mutex
	sent   []string
	tokens []string
}

func (f *fakeNotifier) SendResetPasswordEmail(ctx context.Context, email, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, email)
	f.tokens = append(f.tokens, token)
	return nil
}
