package model

import "time"

// Membership links a user to an association. The (user_id, association_id)
// pair is unique; the database constraint is the final arbiter under
// concurrent additions. Rows are removed outright on deletion so the unique
// index never blocks re-adding a previously removed member.
type Membership struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"uniqueIndex:idx_membership_user_association;not null"`
	AssociationID uint      `json:"association_id" gorm:"uniqueIndex:idx_membership_user_association;not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	User        User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Association Association `json:"association,omitempty" gorm:"foreignKey:AssociationID"`
}
