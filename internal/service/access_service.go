package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"hoa-service/internal/apperr"
	"hoa-service/internal/model"
	"hoa-service/internal/repository"
	"hoa-service/pkg/validate"
)

// AccessService decides whether a specific principal may act on a specific
// association. Route-level roles are not enough: a user may hold the MEMBER
// role globally and still have no rights over a particular association.
type AccessService struct {
	associations repository.AssociationRepository
	memberships  repository.MembershipRepository
	users        repository.UserRepository
	log          *zap.Logger
}

// NewAccessService creates the resource access validator.
func NewAccessService(
	associations repository.AssociationRepository,
	memberships repository.MembershipRepository,
	users repository.UserRepository,
	log *zap.Logger,
) *AccessService {
	return &AccessService{
		associations: associations,
		memberships:  memberships,
		users:        users,
		log:          log,
	}
}

// CheckAccess reports whether the user may access the association. The
// manager always may; a MEMBER-role user may iff a membership row exists.
// Any lookup failure resolves to deny, the caller picks the outward error.
func (s *AccessService) CheckAccess(ctx context.Context, associationID, userID uint, role model.Role) bool {
	association, err := s.associations.FindByIDWithMember(ctx, associationID, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("Access check lookup failed",
				zap.Uint("association_id", associationID),
				zap.Uint("user_id", userID),
				zap.Error(err))
		}
		return false
	}

	if association.ManagerID == userID {
		return true
	}
	return role == model.RoleMember && len(association.Memberships) > 0
}

// RequireManager loads the association and fails Forbidden unless the user
// is its manager. A missing association is NotFound so mutations of
// nonexistent resources do not masquerade as permission failures.
func (s *AccessService) RequireManager(ctx context.Context, associationID, userID uint) (*model.Association, error) {
	association, err := s.associations.FindByID(ctx, associationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "association not found")
		}
		return nil, apperr.Internal(err)
	}
	if association.ManagerID != userID {
		return nil, apperr.New(apperr.KindForbidden, "only the association manager may perform this action")
	}
	return association, nil
}

// RequireRegistrationUniqueness fails Conflict when the registration code is
// already held by a different association. Passing the association's own id
// as excludeID lets updates keep their existing code.
func (s *AccessService) RequireRegistrationUniqueness(ctx context.Context, registrationNum string, excludeID uint) error {
	existing, err := s.associations.FindByRegistrationNum(ctx, registrationNum)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return apperr.Internal(err)
	}
	if existing.ID != excludeID {
		return apperr.New(apperr.KindConflict, "registration number already in use")
	}
	return nil
}

// AddMemberByNationalID resolves a national id to a registered user and adds
// them to the association's roster. Only the manager may add members, and
// there is no auto-provisioning: an unknown national id means the person must
// register first.
func (s *AccessService) AddMemberByNationalID(ctx context.Context, associationID uint, nationalID string, requestingUserID uint) (*model.Membership, error) {
	if _, err := s.RequireManager(ctx, associationID, requestingUserID); err != nil {
		return nil, err
	}

	if !validate.NationalID(nationalID) {
		return nil, apperr.New(apperr.KindValidation, "national id must be 10 digits with a valid day and month")
	}
	normalized := validate.NormalizeNationalID(nationalID)

	user, err := s.users.FindByNationalID(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "no registered user with this national id, they must register first")
		}
		return nil, apperr.Internal(err)
	}

	// Courtesy pre-check; the unique constraint decides under races.
	if _, err := s.memberships.Find(ctx, associationID, user.ID); err == nil {
		return nil, apperr.New(apperr.KindConflict, "user is already a member of this association")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal(err)
	}

	membership := &model.Membership{
		UserID:        user.ID,
		AssociationID: associationID,
	}
	if err := s.memberships.Create(ctx, membership); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.KindConflict, "user is already a member of this association")
		}
		return nil, apperr.Internal(err)
	}

	s.log.Info("Member added to association",
		zap.Uint("association_id", associationID),
		zap.Uint("user_id", user.ID),
		zap.Uint("added_by", requestingUserID))
	return membership, nil
}

// ListMembers returns the association's roster to its manager or members.
func (s *AccessService) ListMembers(ctx context.Context, associationID, requestingUserID uint, role model.Role) ([]model.Membership, error) {
	if _, err := s.associations.FindByID(ctx, associationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "association not found")
		}
		return nil, apperr.Internal(err)
	}
	if !s.CheckAccess(ctx, associationID, requestingUserID, role) {
		return nil, apperr.New(apperr.KindForbidden, "access denied")
	}
	memberships, err := s.memberships.ListByAssociation(ctx, associationID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return memberships, nil
}

// RemoveMember deletes a membership. Manager only.
func (s *AccessService) RemoveMember(ctx context.Context, associationID, targetUserID, requestingUserID uint) error {
	if _, err := s.RequireManager(ctx, associationID, requestingUserID); err != nil {
		return err
	}
	if err := s.memberships.Delete(ctx, associationID, targetUserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.KindNotFound, "membership not found")
		}
		return apperr.Internal(err)
	}
	s.log.Info("Member removed from association",
		zap.Uint("association_id", associationID),
		zap.Uint("user_id", targetUserID),
		zap.Uint("removed_by", requestingUserID))
	return nil
}
