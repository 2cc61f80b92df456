package repository

import (
	"context"

	"github.com/lshigami/ojtportal/internal/model"
	"gorm.io/gorm"
)

type ResponseRepository interface {
	WithTx(tx *gorm.DB) ResponseRepository
	Create(ctx context.Context, response *model.FeedbackResponse) error
	ExistsForOJTAndTemplate(ctx context.Context, ojtID, templateID uint) (bool, error)
	FindByIDWithDetails(ctx context.Context, family model.Family, id uint) (*model.FeedbackResponse, error)
	FindLatestByOJT(ctx context.Context, family model.Family, ojtID uint) (*model.FeedbackResponse, error)
	FindAllWithDetails(ctx context.Context, family model.Family, filter OJTFilter) ([]model.FeedbackResponse, error)
	RespondedOJTIDs(ctx context.Context, family model.Family) ([]uint, error)
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) WithTx(tx *gorm.DB) ResponseRepository {
	return &responseRepository{db: tx}
}

// Create inserts the snapshot together with its answer rows.
func (r *responseRepository) Create(ctx context.Context, response *model.FeedbackResponse) error {
	return r.db.WithContext(ctx).Omit("OJT", "Template").Create(response).Error
}

func (r *responseRepository) ExistsForOJTAndTemplate(ctx context.Context, ojtID, templateID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FeedbackResponse{}).
		Where("ojt_id = ? AND template_id = ?", ojtID, templateID).
		Count(&count).Error
	return count > 0, err
}

func (r *responseRepository) FindByIDWithDetails(ctx context.Context, family model.Family, id uint) (*model.FeedbackResponse, error) {
	var response model.FeedbackResponse
	err := preloadDetails(r.db.WithContext(ctx)).
		Where("family = ?", family).
		First(&response, id).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) FindLatestByOJT(ctx context.Context, family model.Family, ojtID uint) (*model.FeedbackResponse, error) {
	var response model.FeedbackResponse
	err := preloadDetails(r.db.WithContext(ctx)).
		Where("family = ? AND ojt_id = ?", family, ojtID).
		Order("response_date DESC").Order("id DESC").
		First(&response).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) FindAllWithDetails(ctx context.Context, family model.Family, filter OJTFilter) ([]model.FeedbackResponse, error) {
	var responses []model.FeedbackResponse
	query := preloadDetails(r.db.WithContext(ctx).Model(&model.FeedbackResponse{})).
		Where("feedback_responses.family = ?", family)
	query = filter.apply(query, "feedback_responses.ojt_id")
	err := query.Order("feedback_responses.response_date DESC").Order("feedback_responses.id DESC").
		Find(&responses).Error
	return responses, err
}

func (r *responseRepository) RespondedOJTIDs(ctx context.Context, family model.Family) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.FeedbackResponse{}).
		Where("family = ?", family).
		Distinct().Pluck("ojt_id", &ids).Error
	return ids, err
}

// preloadDetails loads answers joined to their question text, including
// questions that were soft-deleted by a later template edit.
func preloadDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Template").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("response_answers.id ASC")
		}).
		Preload("Answers.Question", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		Preload("OJT.Student").
		Preload("OJT.Company").
		Preload("OJT.Class.Program.Department")
}
