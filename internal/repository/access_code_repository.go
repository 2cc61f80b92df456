package repository

import (
	"context"

	"github.com/lshigami/ojtportal/internal/model"
	"gorm.io/gorm"
)

type AccessCodeRepository interface {
	WithTx(tx *gorm.DB) AccessCodeRepository
	Create(ctx context.Context, record *model.AccessCodeEmail) error
	ExistsForOJT(ctx context.Context, family model.Family, ojtID uint) (bool, error)
	FindByCode(ctx context.Context, family model.Family, code string) (*model.AccessCodeEmail, error)
	MarkSubmitted(ctx context.Context, id uint) (bool, error)
}

type accessCodeRepository struct {
	db *gorm.DB
}

func NewAccessCodeRepository(db *gorm.DB) AccessCodeRepository {
	return &accessCodeRepository{db: db}
}

func (r *accessCodeRepository) WithTx(tx *gorm.DB) AccessCodeRepository {
	return &accessCodeRepository{db: tx}
}

func (r *accessCodeRepository) Create(ctx context.Context, record *model.AccessCodeEmail) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *accessCodeRepository) ExistsForOJT(ctx context.Context, family model.Family, ojtID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AccessCodeEmail{}).
		Where("family = ? AND ojt_id = ?", family, ojtID).
		Count(&count).Error
	return count > 0, err
}

func (r *accessCodeRepository) FindByCode(ctx context.Context, family model.Family, code string) (*model.AccessCodeEmail, error) {
	var record model.AccessCodeEmail
	err := r.db.WithContext(ctx).
		Where("family = ? AND access_code = ?", family, code).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarkSubmitted flips feedback_submitted and reports whether this call was
// the one that flipped it. The flag never goes back.
func (r *accessCodeRepository) MarkSubmitted(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.AccessCodeEmail{}).
		Where("id = ? AND feedback_submitted = ?", id, false).
		Update("feedback_submitted", true)
	return res.RowsAffected == 1, res.Error
}
