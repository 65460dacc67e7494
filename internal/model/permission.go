package model

import "time"

// Permission is the canonical capability record. Deactivation is logical,
// records are never physically removed.
type Permission struct {
	UUID        string    `gorm:"primaryKey;not null" json:"uuid"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Key         string    `gorm:"uniqueIndex;not null" json:"key"`
	Description string    `json:"description"`
	Read        bool      `json:"read"`
	Write       bool      `json:"write"`
	Delete      bool      `json:"delete"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot copies the permission's capability fields into a value type that
// roles embed. The copy is independent of the canonical record from that
// point on.
func (p *Permission) Snapshot() PermissionSnapshot {
	return PermissionSnapshot{
		Key:         p.Key,
		Name:        p.Name,
		Description: p.Description,
		Read:        p.Read,
		Write:       p.Write,
		Delete:      p.Delete,
	}
}
