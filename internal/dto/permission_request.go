package dto

type CreatePermissionRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Key         string `json:"key" validate:"required,min=2"`
	Description string `json:"description"`
	Read        bool   `json:"read"`
	Write       bool   `json:"write"`
	Delete      bool   `json:"delete"`
}
