package model

import (
	"time"

	"gorm.io/gorm"
)

// Role is the global role a user holds. Exactly one of the two.
type Role string

const (
	RoleManager Role = "MANAGER"
	RoleMember  Role = "MEMBER"
)

// Valid reports whether the role is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleManager || r == RoleMember
}

// User represents a registered principal stored in the database.
type User struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Email     string  `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string  `json:"-" gorm:"type:varchar(255);not null"`
	FirstName string  `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName  string  `json:"last_name" gorm:"type:varchar(100);not null"`
	Role      Role    `json:"role" gorm:"type:varchar(20);not null"`
	// NationalID is format-validated only; nullable so the unique index
	// ignores users who never supplied one.
	NationalID *string        `json:"national_id,omitempty" gorm:"type:varchar(11);uniqueIndex"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}
