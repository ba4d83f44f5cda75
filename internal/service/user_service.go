package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"hoa-service/internal/apperr"
	"hoa-service/internal/model"
	"hoa-service/internal/repository"
	"hoa-service/pkg/hash"
	"hoa-service/pkg/validate"
)

// UserService manages the principal's own profile and lifecycle.
type UserService struct {
	users        repository.UserRepository
	associations repository.AssociationRepository
	log          *zap.Logger
}

// NewUserService creates the user service.
func NewUserService(users repository.UserRepository, associations repository.AssociationRepository, log *zap.Logger) *UserService {
	return &UserService{users: users, associations: associations, log: log}
}

// GetProfile returns the principal's profile.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "user not found")
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// UpdateProfileInput carries a partial profile update.
type UpdateProfileInput struct {
	FirstName  *string
	LastName   *string
	NationalID *string
}

// UpdateProfile applies a partial profile update, re-checking national-id
// format and uniqueness when it changes.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		if !validate.Name(*input.FirstName) {
			return nil, apperr.New(apperr.KindValidation, "names may only contain letters, spaces and hyphens")
		}
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		if !validate.Name(*input.LastName) {
			return nil, apperr.New(apperr.KindValidation, "names may only contain letters, spaces and hyphens")
		}
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.NationalID != nil && *input.NationalID != "" {
		if !validate.NationalID(*input.NationalID) {
			return nil, apperr.New(apperr.KindValidation, "national id must be 10 digits with a valid day and month")
		}
		normalized := validate.NormalizeNationalID(*input.NationalID)
		if existing, err := s.users.FindByNationalID(ctx, normalized); err == nil && existing.ID != id {
			return nil, apperr.New(apperr.KindAlreadyExists, "national id already registered")
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Internal(err)
		}
		user.NationalID = &normalized
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.KindAlreadyExists, "national id already registered")
		}
		return nil, apperr.Internal(err)
	}

	s.log.Info("Profile updated", zap.Uint("user_id", id))
	return user, nil
}

// ChangePassword verifies the current credential before accepting a new one
// that meets the policy.
func (s *UserService) ChangePassword(ctx context.Context, id uint, currentPassword, newPassword string) error {
	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return err
	}

	if !hash.Verify(currentPassword, user.Password) {
		return apperr.New(apperr.KindInvalidCredentials, "current password is incorrect")
	}
	if failures := validate.Password(newPassword); len(failures) > 0 {
		return apperr.New(apperr.KindValidation, "password does not meet the policy").
			WithDetails(map[string]interface{}{"rules": failures})
	}

	hashed, err := hash.Password(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	user.Password = hashed

	if err := s.users.Update(ctx, user); err != nil {
		return apperr.Internal(err)
	}

	s.log.Info("Password changed", zap.Uint("user_id", id))
	return nil
}

// Delete removes the principal. Deletion is blocked while the user still
// manages any association; the associations must be deleted or handed over
// first.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	managed, err := s.associations.CountByManager(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if managed > 0 {
		return apperr.New(apperr.KindConflict, "user still manages associations and cannot be deleted")
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.KindNotFound, "user not found")
		}
		return apperr.Internal(err)
	}

	s.log.Info("User deleted", zap.Uint("user_id", id))
	return nil
}
