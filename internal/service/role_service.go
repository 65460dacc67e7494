package service

import (
	"context"
	"errors"

	"user-management/internal/dto"
	"user-management/internal/dto/converter"
	"user-management/internal/model"
	"user-management/internal/repository"
	"user-management/internal/utils/errcode"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

type RoleService struct {
	roleRepository       repository.RoleRepository
	permissionRepository repository.PermissionRepository
	log                  *logrus.Logger
	tracer               trace.Tracer
}

func NewRoleService(roleRepo repository.RoleRepository, permissionRepo repository.PermissionRepository, log *logrus.Logger) *RoleService {
	return &RoleService{roleRepo, permissionRepo, log, otel.Tracer("RoleService")}
}

// List returns every active role.
func (s *RoleService) List(ctx context.Context) ([]*dto.RoleResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "RoleService.List")
	defer span.End()

	roles, err := s.roleRepository.FindActive(spanCtx)
	if err != nil {
		s.log.WithContext(spanCtx).WithError(err).Error("Failed to list roles")
		return nil, errcode.ErrDatabaseError
	}

	responses := make([]*dto.RoleResponse, len(roles))
	for i := range roles {
		responses[i] = converter.RoleToResponse(&roles[i])
	}
	return responses, nil
}

// Get returns a role by identifier. A missing role is NotFound; any other
// lookup failure, malformed identifiers included, folds to BadRequest.
func (s *RoleService) Get(ctx context.Context, roleUUID string) (*dto.RoleResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "RoleService.Get")
	defer span.End()

	role, err := s.findRole(spanCtx, roleUUID)
	if err != nil {
		return nil, err
	}
	return converter.RoleToResponse(role), nil
}

// Create adds a role with snapshot copies of the referenced permissions.
func (s *RoleService) Create(ctx context.Context, req *dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "RoleService.Create")
	defer span.End()

	logger := s.log.WithContext(spanCtx)

	count, err := s.roleRepository.CountByName(spanCtx, req.Name)
	if err != nil {
		logger.WithError(err).Error("Failed to check role name collision")
		return nil, errcode.ErrDatabaseError
	}
	if count > 0 {
		logger.WithField("name", req.Name).Warn("Role name already taken")
		return nil, errcode.ErrRoleAlreadyExists
	}

	snapshots, err := s.snapshotPermissions(spanCtx, req.Permissions)
	if err != nil {
		return nil, err
	}

	role := &model.Role{
		UUID:        uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		Permissions: snapshots,
	}

	if err := s.roleRepository.Create(spanCtx, role); err != nil {
		logger.WithError(err).Error("Failed to create role")
		return nil, errcode.ErrRoleAlreadyExists
	}

	return converter.RoleToResponse(role), nil
}

// AddPermissions merges snapshot copies of the referenced permissions into
// the role, keyed by permission key. If every incoming key is already
// present the role is returned unchanged without a write.
func (s *RoleService) AddPermissions(ctx context.Context, roleUUID string, permissionUUIDs []string) (*dto.RoleResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "RoleService.AddPermissions")
	defer span.End()

	logger := s.log.WithContext(spanCtx)

	role, err := s.findRole(spanCtx, roleUUID)
	if err != nil {
		return nil, err
	}

	incoming, err := s.snapshotPermissions(spanCtx, permissionUUIDs)
	if err != nil {
		return nil, err
	}

	merged := role.Permissions
	added := false
	for _, snapshot := range incoming {
		if merged.ContainsKey(snapshot.Key) {
			continue
		}
		merged = append(merged, snapshot)
		added = true
	}

	if !added {
		return converter.RoleToResponse(role), nil
	}

	if err := s.roleRepository.UpdatePermissions(spanCtx, role.UUID, merged); err != nil {
		logger.WithError(err).Error("Failed to add permissions to role")
		return nil, errcode.ErrDatabaseError
	}

	role.Permissions = merged
	return converter.RoleToResponse(role), nil
}

// RemovePermissions pulls every embedded snapshot whose key matches one of
// the given keys, in a single write.
func (s *RoleService) RemovePermissions(ctx context.Context, roleUUID string, keys []string) (*dto.RoleResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "RoleService.RemovePermissions")
	defer span.End()

	logger := s.log.WithContext(spanCtx)

	role, err := s.findRole(spanCtx, roleUUID)
	if err != nil {
		return nil, err
	}

	drop := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		drop[key] = struct{}{}
	}

	remaining := make(model.PermissionSnapshots, 0, len(role.Permissions))
	for _, snapshot := range role.Permissions {
		if _, ok := drop[snapshot.Key]; ok {
			continue
		}
		remaining = append(remaining, snapshot)
	}

	if len(remaining) == len(role.Permissions) {
		return converter.RoleToResponse(role), nil
	}

	if err := s.roleRepository.UpdatePermissions(spanCtx, role.UUID, remaining); err != nil {
		logger.WithError(err).Error("Failed to remove permissions from role")
		return nil, errcode.ErrDatabaseError
	}

	role.Permissions = remaining
	return converter.RoleToResponse(role), nil
}

// Remove hard-deletes a role and with it every embedded snapshot.
func (s *RoleService) Remove(ctx context.Context, roleUUID string) error {
	spanCtx, span := s.tracer.Start(ctx, "RoleService.Remove")
	defer span.End()

	logger := s.log.WithContext(spanCtx)

	role := new(model.Role)
	if err := s.roleRepository.FindByUUID(spanCtx, role, roleUUID); err != nil {
		logger.WithError(err).Warn("Role not found for removal")
		return errcode.ErrRoleNotFound
	}

	if err := s.roleRepository.Delete(spanCtx, role); err != nil {
		logger.WithError(err).Error("Failed to delete role")
		return errcode.ErrDatabaseError
	}
	return nil
}

func (s *RoleService) findRole(ctx context.Context, roleUUID string) (*model.Role, error) {
	role := new(model.Role)
	if err := s.roleRepository.FindByUUID(ctx, role, roleUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.WithContext(ctx).WithField("role", roleUUID).Warn("Role not found")
			return nil, errcode.ErrRoleNotFound
		}
		s.log.WithContext(ctx).WithError(err).Warn("Role lookup failed")
		return nil, errcode.ErrBadRequest
	}
	return role, nil
}

// snapshotPermissions resolves canonical permissions and copies them into
// value snapshots owned by the role.
func (s *RoleService) snapshotPermissions(ctx context.Context, permissionUUIDs []string) (model.PermissionSnapshots, error) {
	if len(permissionUUIDs) == 0 {
		return model.PermissionSnapshots{}, nil
	}

	permissions, err := s.permissionRepository.FindByUUIDs(ctx, permissionUUIDs)
	if err != nil {
		s.log.WithContext(ctx).WithError(err).Error("Failed to resolve permissions")
		return nil, errcode.ErrDatabaseError
	}
	if len(permissions) != len(permissionUUIDs) {
		return nil, errcode.ErrPermissionNotFound
	}

	snapshots := make(model.PermissionSnapshots, len(permissions))
	for i := range permissions {
		snapshots[i] = permissions[i].Snapshot()
	}
	return snapshots, nil
}
