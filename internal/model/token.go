package model

import (
	"time"

	"user-management/internal/constant"
)

// Token is a server-tracked credential row. Only refresh and resetPassword
// tokens are persisted; access tokens are stateless.
type Token struct {
	UUID      string             `gorm:"primaryKey;not null" json:"uuid"`
	Token     string             `gorm:"uniqueIndex;not null" json:"token"`
	UserUUID  string             `gorm:"index;not null" json:"user_uuid"`
	Type      constant.TokenType `gorm:"index;not null" json:"type"`
	ExpiresAt time.Time          `json:"expires_at"`
	CreatedAt time.Time          `json:"created_at"`
}
