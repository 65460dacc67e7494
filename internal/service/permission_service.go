package service

import (
	"context"
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
)

const (
	permissionListCacheKey = "permissions:active"
	permissionListCacheTTL = 5 * time.Minute
)

type PermissionService struct {
	permissionRepository repository.PermissionRepository
	redisService         *RedisService
	log                  *logrus.Logger
	tracer               trace.Tracer
}

func NewPermissionService(permissionRepo repository.PermissionRepository, redisService *RedisService, log *logrus.Logger) *PermissionService {
	return &PermissionService{permissionRepo, redisService, log, otel.Tracer("PermissionService")}
}

// List returns every active permission, served from the Redis cache when
// possible.
func (s *PermissionService) List(ctx context.Context) (string, error) {
	spanCtx, span := s.tracer.Start(ctx, "PermissionService.List")
	defer span.End()

	logger := s.log.WithContext(spanCtx)

	if cached, found := s.redisService.Get(spanCtx, permissionListCacheKey); found {
		return cached, nil
	}

	permissions, err := s.permissionRepository.FindActive(spanCtx)
	if err != nil {
		logger.WithError(err).Error("Failed to list permissions")
		return "", errcode.ErrDatabaseError
	}

	responses := make([]*dto.PermissionResponse, len(permissions))
	for i := range permissions {
		responses[i] = converter.PermissionToResponse(&permissions[i])
	}

	result, err := s.redisService.Set(spanCtx, permissionListCacheKey, dto.WebResponse[[]*dto.PermissionResponse]{Data: responses}, permissionListCacheTTL)
	if err != nil {
		logger.WithError(err).Error("Failed to encode permission list")
		return "", errcode.ErrInternalServerError
	}
	return result, nil
}

// Create adds a permission. The (name, key) pair must not collide with any
// existing record, active or deactivated.
func (s *PermissionService) Create(ctx context.Context, req *dto.CreatePermissionRequest) (*dto.PermissionResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "PermissionService.Create")
	defer span.End()

	logger := s.log.WithContext(spanCtx)

	count, err := s.permissionRepository.CountByNameOrKey(spanCtx, req.Name, req.Key)
	if err != nil {
		logger.WithError(err).Error("Failed to check permission collision")
		return nil, errcode.ErrDatabaseError
	}
	if count > 0 {
		logger.WithFields(logrus.Fields{"name": req.Name, "key": req.Key}).Warn("Permission name or key already taken")
		return nil, errcode.ErrPermissionAlreadyExists
	}

	permission := &model.Permission{
		UUID:        uuid.New().String(),
		Name:        req.Name,
		Key:         req.Key,
		Description: req.Description,
		Read:        req.Read,
		Write:       req.Write,
		Delete:      req.Delete,
		IsActive:    true,
	}

	if err := s.permissionRepository.Create(spanCtx, permission); err != nil {
		logger.WithError(err).Error("Failed to create permission")
		return nil, errcode.ErrPermissionAlreadyExists
	}

	s.redisService.Delete(spanCtx, permissionListCacheKey)

	return converter.PermissionToResponse(permission), nil
}

// Get returns a single permission by identifier.
func (s *PermissionService) Get(ctx context.Context, permissionUUID string) (*dto.PermissionResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "PermissionService.Get")
	defer span.End()

	permission := new(model.Permission)
	if err := s.permissionRepository.FindByUUID(spanCtx, permission, permissionUUID); err != nil {
		s.log.WithContext(spanCtx).WithError(err).Warn("Permission not found")
		return nil, errcode.ErrPermissionNotFound
	}

	return converter.PermissionToResponse(permission), nil
}

// Deactivate performs the logical delete. The record stays behind for roles
// that already hold a snapshot of it. Calling it on an already inactive
// permission is a no-op.
func (s *PermissionService) Deactivate(ctx context.Context, permissionUUID string) error {
	spanCtx, span := s.tracer.Start(ctx, "PermissionService.Deactivate")
	defer span.End()

	logger := s.log.WithContext(spanCtx)

	permission := new(model.Permission)
	if err := s.permissionRepository.FindByUUID(spanCtx, permission, permissionUUID); err != nil {
		logger.WithError(err).Warn("Permission not found for deactivation")
		return errcode.ErrPermissionNotFound
	}

	if !permission.IsActive {
		return nil
	}

	permission.IsActive = false
	if err := s.permissionRepository.Update(spanCtx, permission); err != nil {
		logger.WithError(err).Error("Failed to deactivate permission")
		return errcode.ErrDatabaseError
	}

	s.redisService.Delete(spanCtx, permissionListCacheKey)
	return nil
}
