package service

import (
	"context"
	"fmt"
	"time"

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
)

type UserService struct {
	userRepository repository.UserRepository
	roleRepository repository.RoleRepository
	redisService   *RedisService
	log            *logrus.Logger
	tracer         trace.Tracer
}

func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, redisService *RedisService, log *logrus.Logger) *UserService {
	return &UserService{userRepo, roleRepo, redisService, log, otel.Tracer("UserService")}
}

func userCacheKey(userUUID string) string {
	return fmt.Sprintf("user:me:%s", userUUID)
}

// GetUser retrieves a user by UUID, served from the Redis cache when
// possible.
func (s *UserService) GetUser(ctx context.Context, userUUID string) (string, error) {
	spanCtx, span := s.tracer.Start(ctx, "UserService.GetUser")
	defer span.End()

	logger := s.log.WithContext(spanCtx)
	cacheKey := userCacheKey(userUUID)

	if cached, found := s.redisService.Get(spanCtx, cacheKey); found {
		return cached, nil
	}

	user := new(model.User)
	if err := s.userRepository.FindByUUID(spanCtx, user, userUUID); err != nil {
		logger.WithError(err).Warn("Failed to find user by UUID")
		return "", errcode.ErrUserNotFound
	}

	result, err := s.redisService.Set(spanCtx, cacheKey, dto.WebResponse[*dto.UserResponse]{
		Data: converter.UserToResponse(user),
	}, 5*time.Minute)
	if err != nil {
		logger.WithError(err).Error("Failed to encode user response")
		return "", errcode.ErrInternalServerError
	}

	return result, nil
}

// Search retrieves users based on search criteria.
func (s *UserService) Search(ctx context.Context, request *dto.SearchUserRequest) ([]*dto.UserResponse, int64, error) {
	spanCtx, span := s.tracer.Start(ctx, "UserService.Search")
	defer span.End()

	users, total, err := s.userRepository.Search(spanCtx, request)
	if err != nil {
		s.log.WithContext(spanCtx).WithError(err).Error("Error retrieving users")
		return nil, 0, errcode.ErrUserSearchFailed
	}

	responses := make([]*dto.UserResponse, len(users))
	for i, user := range users {
		responses[i] = converter.UserToResponse(user)
	}

	return responses, total, nil
}

// CreateUser creates a new user with an optional initial role set.
func (s *UserService) CreateUser(ctx context.Context, request *dto.CreateUserRequest) (*dto.UserResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "UserService.CreateUser")
	defer span.End()

	logger := s.log.WithContext(spanCtx)
	email := normalizeEmail(request.Email)

	count, err := s.userRepository.CountByEmail(spanCtx, email)
	if err != nil {
		logger.WithError(err).Error("Failed to check email existence")
		return nil, errcode.ErrDatabaseError
	}
	if count > 0 {
		logger.Warn("Attempt to add an already existing email")
		return nil, errcode.ErrUserAlreadyExists
	}

	_, hashSpan := s.tracer.Start(spanCtx, "HashPassword")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	hashSpan.End()
	if err != nil {
		logger.WithError(err).Error("Failed to hash password")
		return nil, errcode.ErrPasswordEncryption
	}

	var roles []model.Role
	for _, roleUUID := range request.Roles {
		role := new(model.Role)
		if err := s.roleRepository.FindByUUID(spanCtx, role, roleUUID); err != nil {
			logger.WithError(err).Warn("Referenced role not found")
			return nil, errcode.ErrRoleNotFound
		}
		roles = append(roles, *role)
	}

	user := &model.User{
		UUID:           uuid.New().String(),
		GivenName:      request.GivenName,
		SurName:        request.SurName,
		Email:          email,
		Password:       string(hashedPassword),
		PhoneNumber:    request.PhoneNumber,
		JobTitle:       request.JobTitle,
		OfficeLocation: request.OfficeLocation,
		OracleID:       request.OracleID,
		Roles:          roles,
	}

	if err := s.userRepository.Create(spanCtx, user); err != nil {
		logger.WithError(err).Error("Failed to create user")
		return nil, errcode.ErrUserAlreadyExists
	}

	return converter.UserToResponse(user), nil
}

// UpdateUser updates profile fields of an existing user.
func (s *UserService) UpdateUser(ctx context.Context, userUUID string, request *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "UserService.UpdateUser")
	defer span.End()

	logger := s.log.WithContext(spanCtx)

	user := new(model.User)
	if err := s.userRepository.FindByUUID(spanCtx, user, userUUID); err != nil {
		logger.WithError(err).Warn("Failed to find user by UUID")
		return nil, errcode.ErrUserNotFound
	}

	email := normalizeEmail(request.Email)
	if user.Email != email {
		count, err := s.userRepository.CountByEmail(spanCtx, email)
		if err != nil {
			logger.WithError(err).Error("Failed to check email existence")
			return nil, errcode.ErrDatabaseError
		}
		if count > 0 {
			return nil, errcode.ErrUserAlreadyExists
		}
	}

	user.GivenName = request.GivenName
	user.SurName = request.SurName
	user.Email = email
	user.PhoneNumber = request.PhoneNumber
	user.JobTitle = request.JobTitle
	user.OfficeLocation = request.OfficeLocation

	if err := s.userRepository.Update(spanCtx, user); err != nil {
		logger.WithError(err).Error("Failed to update user")
		return nil, errcode.ErrDatabaseError
	}

	s.redisService.Delete(spanCtx, userCacheKey(userUUID))
	return converter.UserToResponse(user), nil
}

// UpdatePassword rehashes and overwrites the user's password. Live refresh
// tokens are not revoked here; the auth engine owns token invalidation.
func (s *UserService) UpdatePassword(ctx context.Context, userUUID, newPassword string) error {
	spanCtx, span := s.tracer.Start(ctx, "UserService.UpdatePassword")
	defer span.End()

	logger := s.log.WithContext(spanCtx)

	user := new(model.User)
	if err := s.userRepository.FindByUUID(spanCtx, user, userUUID); err != nil {
		logger.WithError(err).Warn("Failed to find user by UUID")
		return errcode.ErrUserNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.WithError(err).Error("Failed to hash password")
		return errcode.ErrPasswordEncryption
	}

	user.Password = string(hashedPassword)
	if err := s.userRepository.Update(spanCtx, user); err != nil {
		logger.WithError(err).Error("Failed to store new password hash")
		return errcode.ErrDatabaseError
	}
	return nil
}

// AssignRole attaches an existing role to a user.
func (s *UserService) AssignRole(ctx context.Context, userUUID, roleUUID string) (*dto.UserResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "UserService.AssignRole")
	defer span.End()

	logger := s.log.WithContext(spanCtx)

	user := new(model.User)
	if err := s.userRepository.FindByUUID(spanCtx, user, userUUID); err != nil {
		logger.WithError(err).Warn("Failed to find user by UUID")
		return nil, errcode.ErrUserNotFound
	}

	role := new(model.Role)
	if err := s.roleRepository.FindByUUID(spanCtx, role, roleUUID); err != nil {
		logger.WithError(err).Warn("Failed to find role by UUID")
		return nil, errcode.ErrRoleNotFound
	}

	for _, held := range user.Roles {
		if held.UUID == role.UUID {
			return converter.UserToResponse(user), nil
		}
	}

	if err := s.userRepository.AppendRole(spanCtx, user, role); err != nil {
		logger.WithError(err).Error("Failed to assign role")
		return nil, errcode.ErrDatabaseError
	}

	s.redisService.Delete(spanCtx, userCacheKey(userUUID))

	user.Roles = append(user.Roles, *role)
	return converter.UserToResponse(user), nil
}

// DeleteUser hard-deletes a user by UUID.
func (s *UserService) DeleteUser(ctx context.Context, userUUID string) error {
	spanCtx, span := s.tracer.Start(ctx, "UserService.DeleteUser")
	defer span.End()

	logger := s.log.WithContext(spanCtx)

	user := new(model.User)
	if err := s.userRepository.FindByUUID(spanCtx, user, userUUID); err != nil {
		logger.WithError(err).Warn("Failed to find user by UUID")
		return errcode.ErrUserNotFound
	}

	if err := s.userRepository.Delete(spanCtx, user); err != nil {
		logger.WithError(err).Error("Failed to delete user")
		return errcode.ErrDatabaseError
	}

	s.redisService.Delete(spanCtx, userCacheKey(userUUID))
	return nil
}
