package dto

type PermissionResponse struct {
	UUID        string `json:"uuid,omitempty"`
	Name        string `json:"name"`
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
	Read        bool   `json:"read"`
	Write       bool   `json:"write"`
	Delete      bool   `json:"delete"`
	IsActive    bool   `json:"is_active"`
}
