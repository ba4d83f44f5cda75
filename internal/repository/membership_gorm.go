package repository

import (
	"context"

	"gorm.io/gorm"

	"hoa-service/internal/model"
)

// GormMembershipRepository implements MembershipRepository on a gorm handle.
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewGormMembershipRepository creates the gorm-backed membership repository.
func NewGormMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

func (r *GormMembershipRepository) Find(ctx context.Context, associationID, userID uint) (*model.Membership, error) {
	var membership model.Membership
	err := r.db.WithContext(ctx).
		Where("association_id = ? AND user_id = ?", associationID, userID).
		First(&membership).Error
	if err != nil {
		return nil, translate(err)
	}
	return &membership, nil
}

func (r *GormMembershipRepository) ListByAssociation(ctx context.Context, associationID uint) ([]model.Membership, error) {
	var memberships []model.Membership
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("association_id = ?", associationID).
		Find(&memberships).Error
	if err != nil {
		return nil, translate(err)
	}
	return memberships, nil
}

func (r *GormMembershipRepository) Create(ctx context.Context, membership *model.Membership) error {
	return translate(r.db.WithContext(ctx).Create(membership).Error)
}

func (r *GormMembershipRepository) Delete(ctx context.Context, associationID, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("association_id = ? AND user_id = ?", associationID, userID).
		Delete(&model.Membership{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
