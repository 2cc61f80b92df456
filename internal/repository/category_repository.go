package repository

import (
	"context"

	"github.com/lshigami/ojtportal/internal/model"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	WithTx(tx *gorm.DB) CategoryRepository
	Create(ctx context.Context, category *model.TemplateCategory) error
	FindByID(ctx context.Context, id uint) (*model.TemplateCategory, error)
	FindByTemplateID(ctx context.Context, templateID uint) ([]model.TemplateCategory, error)
	UpdateFields(ctx context.Context, id uint, name string, displayOrder int) error
	Delete(ctx context.Context, ids []uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) WithTx(tx *gorm.DB) CategoryRepository {
	return &categoryRepository{db: tx}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.TemplateCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*model.TemplateCategory, error) {
	var category model.TemplateCategory
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByTemplateID(ctx context.Context, templateID uint) ([]model.TemplateCategory, error) {
	var categories []model.TemplateCategory
	err := r.db.WithContext(ctx).Where("template_id = ?", templateID).
		Order("display_order ASC, id ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) UpdateFields(ctx context.Context, id uint, name string, displayOrder int) error {
	return r.db.WithContext(ctx).Model(&model.TemplateCategory{ID: id}).
		Updates(map[string]interface{}{"name": name, "display_order": displayOrder}).Error
}

func (r *categoryRepository) Delete(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.TemplateCategory{}).Error
}
