package model

import (
	"time"
)

type User struct {
	UUID           string    `gorm:"primaryKey;not null" json:"uuid"`
	GivenName      string    `gorm:"not null" json:"given_name"`
	SurName        string    `json:"sur_name"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	PhoneNumber    string    `json:"phone_number"`
	JobTitle       string    `json:"job_title"`
	OfficeLocation string    `json:"office_location"`
	OracleID       string    `json:"oracle_id"`
	Roles          []Role    `gorm:"many2many:user_roles;" json:"roles"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
