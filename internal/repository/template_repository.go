package repository

import (
	"context"

	"github.com/lshigami/ojtportal/internal/model"
	"gorm.io/gorm"
)

type TemplateWithQuestionCount struct {
	model.FeedbackTemplate
	QuestionCount int
}

type TemplateRepository interface {
	WithTx(tx *gorm.DB) TemplateRepository
	Create(ctx context.Context, template *model.FeedbackTemplate) error
	FindByID(ctx context.Context, id uint) (*model.FeedbackTemplate, error)
	FindByIDWithTree(ctx context.Context, family model.Family, id uint) (*model.FeedbackTemplate, error)
	FindActiveWithTree(ctx context.Context, family model.Family) (*model.FeedbackTemplate, error)
	FindAllWithQuestionCount(ctx context.Context, family model.Family) ([]TemplateWithQuestionCount, error)
	SetActive(ctx context.Context, id uint, active bool) error
	DeactivateOthers(ctx context.Context, family model.Family, keepID uint) error
	BumpVersion(ctx context.Context, id uint) error
	HasVersion(ctx context.Context, id uint, version int) (bool, error)
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) WithTx(tx *gorm.DB) TemplateRepository {
	return &templateRepository{db: tx}
}

func (r *templateRepository) Create(ctx context.Context, template *model.FeedbackTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *templateRepository) FindByID(ctx context.Context, id uint) (*model.FeedbackTemplate, error) {
	var template model.FeedbackTemplate
	if err := r.db.WithContext(ctx).First(&template, id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) FindByIDWithTree(ctx context.Context, family model.Family, id uint) (*model.FeedbackTemplate, error) {
	var template model.FeedbackTemplate
	err := preloadTree(r.db.WithContext(ctx), family).
		Where("family = ?", family).
		First(&template, id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// FindActiveWithTree returns nil, nil when the family has no active template.
func (r *templateRepository) FindActiveWithTree(ctx context.Context, family model.Family) (*model.FeedbackTemplate, error) {
	var templates []model.FeedbackTemplate
	err := preloadTree(r.db.WithContext(ctx), family).
		Where("family = ? AND is_active = ?", family, true).
		Order("created_at DESC").Order("id DESC").
		Limit(1).
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, nil
	}
	return &templates[0], nil
}

func (r *templateRepository) FindAllWithQuestionCount(ctx context.Context, family model.Family) ([]TemplateWithQuestionCount, error) {
	var results []TemplateWithQuestionCount
	err := r.db.WithContext(ctx).Model(&model.FeedbackTemplate{}).
		Select(`feedback_templates.*, (SELECT COUNT(*) FROM template_questions
			WHERE template_questions.deleted_at IS NULL AND (
				template_questions.template_id = feedback_templates.id OR
				template_questions.category_id IN (SELECT id FROM template_categories
					WHERE template_categories.template_id = feedback_templates.id AND template_categories.deleted_at IS NULL)
			)) AS question_count`).
		Where("feedback_templates.family = ?", family).
		Order("feedback_templates.created_at DESC").Order("feedback_templates.id DESC").
		Scan(&results).Error
	return results, err
}

func (r *templateRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return r.db.WithContext(ctx).Model(&model.FeedbackTemplate{ID: id}).Update("is_active", active).Error
}

func (r *templateRepository) DeactivateOthers(ctx context.Context, family model.Family, keepID uint) error {
	return r.db.WithContext(ctx).Model(&model.FeedbackTemplate{}).
		Where("family = ? AND id <> ? AND is_active = ?", family, keepID, true).
		Update("is_active", false).Error
}

// BumpVersion increments the version in place so concurrent bumps never
// collapse into one.
func (r *templateRepository) BumpVersion(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&model.FeedbackTemplate{ID: id}).
		Update("version", gorm.Expr("version + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *templateRepository) HasVersion(ctx context.Context, id uint, version int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FeedbackTemplate{}).
		Where("id = ? AND version = ?", id, version).
		Count(&count).Error
	return count > 0, err
}

func preloadTree(db *gorm.DB, family model.Family) *gorm.DB {
	if family.HasCategories() {
		return db.
			Preload("Categories", func(db *gorm.DB) *gorm.DB {
				return db.Order("template_categories.display_order ASC, template_categories.id ASC")
			}).
			Preload("Categories.Questions", func(db *gorm.DB) *gorm.DB {
				return db.Order("template_questions.display_order ASC, template_questions.id ASC")
			})
	}
	return db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("template_questions.display_order ASC, template_questions.id ASC")
	})
}
