package model

import "time"

// PermissionSnapshot is a value copy of a Permission taken when it was
// attached to a role. Later changes to the canonical Permission do not
// propagate here.
type PermissionSnapshot struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Read        bool   `json:"read"`
	Write       bool   `json:"write"`
	Delete      bool   `json:"delete"`
}

type PermissionSnapshots []PermissionSnapshot

// ContainsKey reports whether a snapshot with the given key is present.
func (s PermissionSnapshots) ContainsKey(key string) bool {
	for _, p := range s {
		if p.Key == key {
			return true
		}
	}
	return false
}

type Role struct {
	UUID        string              `gorm:"primaryKey;not null" json:"uuid"`
	Name        string              `gorm:"uniqueIndex;not null" json:"name"`
	Description string              `json:"description"`
	IsActive    bool                `gorm:"default:true" json:"is_active"`
	Permissions PermissionSnapshots `gorm:"serializer:json" json:"permissions"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
