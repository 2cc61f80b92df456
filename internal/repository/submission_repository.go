package repository

import (
	"context"

	"github.com/lshigami/ojtportal/internal/model"
	"gorm.io/gorm"
)

// SubmissionRepository writes the generic student_submissions tracking rows.
type SubmissionRepository interface {
	WithTx(tx *gorm.DB) SubmissionRepository
	Create(ctx context.Context, submission *model.StudentSubmission) error
	FindByOJTID(ctx context.Context, ojtID uint) ([]model.StudentSubmission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) WithTx(tx *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: tx}
}

func (r *submissionRepository) Create(ctx context.Context, submission *model.StudentSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) FindByOJTID(ctx context.Context, ojtID uint) ([]model.StudentSubmission, error) {
	var submissions []model.StudentSubmission
	err := r.db.WithContext(ctx).Where("ojt_id = ?", ojtID).Order("submitted_at ASC").Find(&submissions).Error
	return submissions, err
}
