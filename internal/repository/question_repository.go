package repository

import (
	"context"

	"github.com/lshigami/ojtportal/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	WithTx(tx *gorm.DB) QuestionRepository
	CreateBatch(ctx context.Context, questions []model.TemplateQuestion) error
	FindByTemplateID(ctx context.Context, templateID uint) ([]model.TemplateQuestion, error)
	FindByCategoryID(ctx context.Context, categoryID uint) ([]model.TemplateQuestion, error)
	DeleteByTemplateID(ctx context.Context, templateID uint) error
	DeleteByCategoryIDs(ctx context.Context, categoryIDs []uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) WithTx(tx *gorm.DB) QuestionRepository {
	return &questionRepository{db: tx}
}

func (r *questionRepository) CreateBatch(ctx context.Context, questions []model.TemplateQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&questions).Error
}

func (r *questionRepository) FindByTemplateID(ctx context.Context, templateID uint) ([]model.TemplateQuestion, error) {
	var questions []model.TemplateQuestion
	err := r.db.WithContext(ctx).Where("template_id = ?", templateID).
		Order("display_order ASC, id ASC").Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindByCategoryID(ctx context.Context, categoryID uint) ([]model.TemplateQuestion, error) {
	var questions []model.TemplateQuestion
	err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).
		Order("display_order ASC, id ASC").Find(&questions).Error
	return questions, err
}

// DeleteByTemplateID soft-deletes; answer rows keep joining to the text.
func (r *questionRepository) DeleteByTemplateID(ctx context.Context, templateID uint) error {
	return r.db.WithContext(ctx).Where("template_id = ?", templateID).Delete(&model.TemplateQuestion{}).Error
}

func (r *questionRepository) DeleteByCategoryIDs(ctx context.Context, categoryIDs []uint) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("category_id IN ?", categoryIDs).Delete(&model.TemplateQuestion{}).Error
}
