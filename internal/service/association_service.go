package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"hoa-service/internal/apperr"
	"hoa-service/internal/model"
	"hoa-service/internal/repository"
)

// AssociationService manages the house-association lifecycle. Resource-scoped
// permission checks are delegated to the AccessService.
type AssociationService struct {
	associations repository.AssociationRepository
	access       *AccessService
	log          *zap.Logger
}

// NewAssociationService creates the association service.
func NewAssociationService(associations repository.AssociationRepository, access *AccessService, log *zap.Logger) *AssociationService {
	return &AssociationService{associations: associations, access: access, log: log}
}

// CreateAssociationInput carries an association creation request.
type CreateAssociationInput struct {
	Name            string
	Address         string
	RegistrationNum string
}

// UpdateAssociationInput carries a partial association update. Nil fields
// are left untouched.
type UpdateAssociationInput struct {
	Name            *string
	Address         *string
	RegistrationNum *string
}

// Create persists a new association owned by the given manager.
func (s *AssociationService) Create(ctx context.Context, managerID uint, input CreateAssociationInput) (*model.Association, error) {
	name := strings.TrimSpace(input.Name)
	registrationNum := strings.TrimSpace(input.RegistrationNum)
	if name == "" || registrationNum == "" {
		return nil, apperr.New(apperr.KindValidation, "name and registration number are required")
	}

	if err := s.access.RequireRegistrationUniqueness(ctx, registrationNum, 0); err != nil {
		return nil, err
	}

	association := &model.Association{
		Name:            name,
		Address:         strings.TrimSpace(input.Address),
		RegistrationNum: registrationNum,
		ManagerID:       managerID,
	}
	if err := s.associations.Create(ctx, association); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.KindConflict, "registration number already in use")
		}
		return nil, apperr.Internal(err)
	}

	s.log.Info("Association created",
		zap.Uint("id", association.ID),
		zap.String("name", association.Name),
		zap.Uint("manager_id", managerID))
	return association, nil
}

// Get returns the association to its manager or members.
func (s *AssociationService) Get(ctx context.Context, id, userID uint, role model.Role) (*model.Association, error) {
	association, err := s.associations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "association not found")
		}
		return nil, apperr.Internal(err)
	}
	if !s.access.CheckAccess(ctx, id, userID, role) {
		return nil, apperr.New(apperr.KindForbidden, "access denied")
	}
	return association, nil
}

// ListForUser returns every association the user manages or belongs to.
func (s *AssociationService) ListForUser(ctx context.Context, userID uint) ([]model.Association, error) {
	associations, err := s.associations.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return associations, nil
}

// Update applies a partial update. Manager only; a changed registration
// number is re-checked for uniqueness against other associations.
func (s *AssociationService) Update(ctx context.Context, id, userID uint, input UpdateAssociationInput) (*model.Association, error) {
	association, err := s.access.RequireManager(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if input.RegistrationNum != nil {
		registrationNum := strings.TrimSpace(*input.RegistrationNum)
		if registrationNum == "" {
			return nil, apperr.New(apperr.KindValidation, "registration number cannot be empty")
		}
		if err := s.access.RequireRegistrationUniqueness(ctx, registrationNum, id); err != nil {
			return nil, err
		}
		association.RegistrationNum = registrationNum
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperr.New(apperr.KindValidation, "name cannot be empty")
		}
		association.Name = name
	}
	if input.Address != nil {
		association.Address = strings.TrimSpace(*input.Address)
	}

	if err := s.associations.Update(ctx, association); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.KindConflict, "registration number already in use")
		}
		return nil, apperr.Internal(err)
	}

	s.log.Info("Association updated", zap.Uint("id", association.ID), zap.Uint("manager_id", userID))
	return association, nil
}

// Delete removes the association and cascades its roster. Manager only.
func (s *AssociationService) Delete(ctx context.Context, id, userID uint) error {
	if _, err := s.access.RequireManager(ctx, id, userID); err != nil {
		return err
	}
	if err := s.associations.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.KindNotFound, "association not found")
		}
		return apperr.Internal(err)
	}
	s.log.Info("Association deleted", zap.Uint("id", id), zap.Uint("manager_id", userID))
	return nil
}
