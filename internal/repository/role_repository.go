package repository

import (
	"context"

	"user-management/internal/model"

	"gorm.io/gorm"
)

type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	Update(ctx context.Context, role *model.Role) error
	Delete(ctx context.Context, role *model.Role) error
	CountByName(ctx context.Context, name string) (int64, error)
	FindByUUID(ctx context.Context, role *model.Role, uuid string) error
	FindActive(ctx context.Context) ([]model.Role, error)
	UpdatePermissions(ctx context.Context, roleUUID string, permissions model.PermissionSnapshots) error
}

type roleRepository struct {
	Repository[model.Role]
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{
		Repository: Repository[model.Role]{db},
	}
}

// CountByName returns the number of roles with the given name.
func (r *roleRepository) CountByName(ctx context.Context, name string) (int64, error) {
	var total int64
	err := r.getDb(ctx).Model(&model.Role{}).Where("name = ?", name).Count(&total).Error
	return total, err
}

// FindActive returns all roles that have not been deactivated.
func (r *roleRepository) FindActive(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	err := r.getDb(ctx).Where("is_active = ?", true).Find(&roles).Error
	return roles, err
}

// UpdatePermissions overwrites the role's embedded snapshot set in a single
// write, so concurrent per-key mutations cannot interleave partial states.
func (r *roleRepository) UpdatePermissions(ctx context.Context, roleUUID string, permissions model.PermissionSnapshots) error {
	return r.getDb(ctx).Model(&model.Role{}).
		Where("uuid = ?", roleUUID).
		Update("permissions", permissions).Error
}
