package converter

import (
	"user-management/internal/dto"
	"user-management/internal/model"
)

func UserToResponse(user *model.User) *dto.UserResponse {
	roles := make([]dto.RoleResponse, len(user.Roles))
	for i := range user.Roles {
		roles[i] = *RoleToResponse(&user.Roles[i])
	}

	return &dto.UserResponse{
		UUID:           user.UUID,
		GivenName:      user.GivenName,
		SurName:        user.SurName,
		Email:          user.Email,
		PhoneNumber:    user.PhoneNumber,
		JobTitle:       user.JobTitle,
		OfficeLocation: user.OfficeLocation,
		OracleID:       user.OracleID,
		Roles:          roles,
		CreatedAt:      user.CreatedAt.Unix(),
		UpdatedAt:      user.UpdatedAt.Unix(),
	}
}

func RoleToResponse(role *model.Role) *dto.RoleResponse {
	permissions := make([]dto.PermissionResponse, len(role.Permissions))
	for i, snapshot := range role.Permissions {
		permissions[i] = dto.PermissionResponse{
			Name:        snapshot.Name,
			Key:         snapshot.Key,
			Description: snapshot.Description,
			Read:        snapshot.Read,
			Write:       snapshot.Write,
			Delete:      snapshot.Delete,
			IsActive:    true,
		}
	}

	return &dto.RoleResponse{
		UUID:        role.UUID,
		Name:        role.Name,
		Description: role.Description,
		IsActive:    role.IsActive,
		Permissions: permissions,
	}
}

func PermissionToResponse(permission *model.Permission) *dto.PermissionResponse {
	return &dto.PermissionResponse{
		UUID:        permission.UUID,
		Name:        permission.Name,
		Key:         permission.Key,
		Description: permission.Description,
		Read:        permission.Read,
		Write:       permission.Write,
		Delete:      permission.Delete,
		IsActive:    permission.IsActive,
	}
}
