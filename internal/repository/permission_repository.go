package repository

import (
	"context"

	"user-management/internal/model"

	"gorm.io/gorm"
)

type PermissionRepository interface {
	Create(ctx context.Context, permission *model.Permission) error
	Update(ctx context.Context, permission *model.Permission) error
	FindByUUID(ctx context.Context, permission *model.Permission, uuid string) error
	FindByUUIDs(ctx context.Context, uuids []string) ([]model.Permission, error)
	FindActive(ctx context.Context) ([]model.Permission, error)
	CountByNameOrKey(ctx context.Context, name, key string) (int64, error)
}

type permissionRepository struct {
	Repository[model.Permission]
}

func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{
		Repository: Repository[model.Permission]{db},
	}
}

// FindByUUIDs returns the permissions matching the given identifiers.
func (r *permissionRepository) FindByUUIDs(ctx context.Context, uuids []string) ([]model.Permission, error) {
	var permissions []model.Permission
	err := r.getDb(ctx).Where("uuid IN ?", uuids).Find(&permissions).Error
	return permissions, err
}

// FindActive returns permissions that have not been logically deleted.
func (r *permissionRepository) FindActive(ctx context.Context) ([]model.Permission, error) {
	var permissions []model.Permission
	err := r.getDb(ctx).Where("is_active = ?", true).Find(&permissions).Error
	return permissions, err
}

// CountByNameOrKey counts records colliding with the given name or key,
// active or not. Uniqueness spans logically deleted permissions too.
func (r *permissionRepository) CountByNameOrKey(ctx context.Context, name, key string) (int64, error) {
	var total int64
	err := r.getDb(ctx).Model(&model.Permission{}).
		Where("name = ? OR key = ?", name, key).
		Count(&total).Error
	return total, err
}
