package repository

import (
	"context"

	"user-management/internal/dto"
	"user-management/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, user *model.User) error
	CountByEmail(ctx context.Context, email string) (int64, error)
	FindByEmail(ctx context.Context, user *model.User, email string) error
	FindByUUID(ctx context.Context, user *model.User, uuid string) error
	AppendRole(ctx context.Context, user *model.User, role *model.Role) error
	Search(ctx context.Context, request *dto.SearchUserRequest) ([]*model.User, int64, error)
}

type userRepository struct {
	Repository[model.User]
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		Repository: Repository[model.User]{db},
	}
}

// CountByEmail returns the number of users with the given email.
func (r *userRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var total int64
	err := r.getDb(ctx).Model(&model.User{}).Where("email = ?", email).Count(&total).Error
	return total, err
}

// FindByEmail finds a user by email with roles preloaded.
func (r *userRepository) FindByEmail(ctx context.Context, user *model.User, email string) error {
	return r.getDb(ctx).Preload("Roles").Where("email = ?", email).First(user).Error
}

// FindByUUID finds a user by UUID with roles preloaded.
func (r *userRepository) FindByUUID(ctx context.Context, user *model.User, uuid string) error {
	return r.getDb(ctx).Preload("Roles").Where("uuid = ?", uuid).First(user).Error
}

// AppendRole attaches a role to the user's role set.
func (r *userRepository) AppendRole(ctx context.Context, user *model.User, role *model.Role) error {
	return r.getDb(ctx).Model(user).Association("Roles").Append(role)
}

// Search returns a list of users and total count based on filter and
// pagination. Find and count run on separate sessions so the page's
// offset/limit never leaks into the total.
func (r *userRepository) Search(ctx context.Context, request *dto.SearchUserRequest) ([]*model.User, int64, error) {
	db := r.getDb(ctx).Model(&model.User{}).Scopes(r.filterUser(request))

	var users []*model.User
	if err := db.Session(&gorm.Session{}).Offset((request.Page - 1) * request.Size).Limit(request.Size).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) filterUser(request *dto.SearchUserRequest) func(tx *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if name := request.GivenName; name != "" {
			tx = tx.Where("given_name LIKE ?", "%"+name+"%")
		}

		if email := request.Email; email != "" {
			tx = tx.Where("email LIKE ?", "%"+email+"%")
		}

		return tx
	}
}
