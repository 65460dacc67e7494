package dto

type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required,min=2"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"` // canonical permission UUIDs, snapshotted on create
}

type AddRolePermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required,min=1"` // canonical permission UUIDs
}

type RemoveRolePermissionsRequest struct {
	Keys []string `json:"keys" validate:"required,min=1"` // permission keys to pull from the role
}
