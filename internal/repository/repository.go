package repository

import (
	"context"
	"errors"

	"hoa-service/internal/model"
)

// Sentinel errors returned by all repository implementations so the service
// layer never has to know which store is behind the interface.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository is the principal store.
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByNationalID(ctx context.Context, nationalID string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uint) error
}

// AssociationRepository is the house-association store.
type AssociationRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Association, error)
	// FindByIDWithMember loads the association with its membership roster
	// filtered down to the given user.
	FindByIDWithMember(ctx context.Context, id, userID uint) (*model.Association, error)
	FindByRegistrationNum(ctx context.Context, registrationNum string) (*model.Association, error)
	ListForUser(ctx context.Context, userID uint) ([]model.Association, error)
	CountByManager(ctx context.Context, managerID uint) (int64, error)
	Create(ctx context.Context, association *model.Association) error
	Update(ctx context.Context, association *model.Association) error
	// Delete removes the association and its membership roster atomically.
	Delete(ctx context.Context, id uint) error
}

// MembershipRepository is the membership roster store.
type MembershipRepository interface {
	Find(ctx context.Context, associationID, userID uint) (*model.Membership, error)
	ListByAssociation(ctx context.Context, associationID uint) ([]model.Membership, error)
	Create(ctx context.Context, membership *model.Membership) error
	Delete(ctx context.Context, associationID, userID uint) error
}
