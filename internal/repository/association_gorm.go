package repository

import (
	"context"

	"gorm.io/gorm"

	"hoa-service/internal/model"
)

// GormAssociationRepository implements AssociationRepository on a gorm handle.
type GormAssociationRepository struct {
	db *gorm.DB
}

// NewGormAssociationRepository creates the gorm-backed association repository.
func NewGormAssociationRepository(db *gorm.DB) *GormAssociationRepository {
	return &GormAssociationRepository{db: db}
}

func (r *GormAssociationRepository) FindByID(ctx context.Context, id uint) (*model.Association, error) {
	var association model.Association
	if err := r.db.WithContext(ctx).First(&association, id).Error; err != nil {
		return nil, translate(err)
	}
	return &association, nil
}

func (r *GormAssociationRepository) FindByIDWithMember(ctx context.Context, id, userID uint) (*model.Association, error) {
	var association model.Association
	err := r.db.WithContext(ctx).
		Preload("Memberships", "user_id = ?", userID).
		First(&association, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &association, nil
}

func (r *GormAssociationRepository) FindByRegistrationNum(ctx context.Context, registrationNum string) (*model.Association, error) {
	var association model.Association
	if err := r.db.WithContext(ctx).Where("registration_num = ?", registrationNum).First(&association).Error; err != nil {
		return nil, translate(err)
	}
	return &association, nil
}

func (r *GormAssociationRepository) ListForUser(ctx context.Context, userID uint) ([]model.Association, error) {
	var associations []model.Association
	err := r.db.WithContext(ctx).
		Distinct("associations.*").
		Joins("LEFT JOIN memberships ON memberships.association_id = associations.id").
		Where("associations.manager_id = ? OR memberships.user_id = ?", userID, userID).
		Find(&associations).Error
	if err != nil {
		return nil, translate(err)
	}
	return associations, nil
}

func (r *GormAssociationRepository) CountByManager(ctx context.Context, managerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Association{}).
		Where("manager_id = ?", managerID).
		Count(&count).Error
	if err != nil {
		return 0, translate(err)
	}
	return count, nil
}

func (r *GormAssociationRepository) Create(ctx context.Context, association *model.Association) error {
	return translate(r.db.WithContext(ctx).Create(association).Error)
}

func (r *GormAssociationRepository) Update(ctx context.Context, association *model.Association) error {
	return translate(r.db.WithContext(ctx).Save(association).Error)
}

func (r *GormAssociationRepository) Delete(ctx context.Context, id uint) error {
	// The roster dies with the association.
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("association_id = ?", id).Delete(&model.Membership{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Association{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}
