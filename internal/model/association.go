package model

import "time"

// Association represents a house association, the tenant-scoped resource of
// this service. Each association has exactly one owning manager. Deletion is
// permanent and frees the registration code for reuse.
type Association struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"type:varchar(100);not null"`
	Address string `json:"address" gorm:"type:varchar(255)"`
	// RegistrationNum is the association's registration code, unique among
	// live associations.
	RegistrationNum string    `json:"registration_num" gorm:"type:varchar(20);uniqueIndex;not null"`
	ManagerID       uint      `json:"manager_id" gorm:"index;not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	Memberships []Membership `json:"memberships,omitempty" gorm:"foreignKey:AssociationID"`
}
