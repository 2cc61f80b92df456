package repository

import (
	"context"

	"github.com/lshigami/ojtportal/internal/model"
	"gorm.io/gorm"
)

type OJTRepository interface {
	FindActiveByUserID(ctx context.Context, userID uint) (*model.OJTApplication, error)
	FindByIDWithContext(ctx context.Context, id uint) (*model.OJTApplication, error)
	FindAllWithContext(ctx context.Context, filter OJTFilter) ([]model.OJTApplication, error)
}

type ojtRepository struct {
	db *gorm.DB
}

func NewOJTRepository(db *gorm.DB) OJTRepository {
	return &ojtRepository{db: db}
}

// FindActiveByUserID resolves a logged-in student's current OJT application.
func (r *ojtRepository) FindActiveByUserID(ctx context.Context, userID uint) (*model.OJTApplication, error) {
	var ojt model.OJTApplication
	err := r.db.WithContext(ctx).
		Joins("JOIN students ON students.id = ojt_applications.student_id").
		Where("students.user_id = ? AND ojt_applications.is_active = ?", userID, true).
		Order("ojt_applications.created_at DESC").
		Preload("Student").
		First(&ojt).Error
	if err != nil {
		return nil, err
	}
	return &ojt, nil
}

func (r *ojtRepository) FindByIDWithContext(ctx context.Context, id uint) (*model.OJTApplication, error) {
	var ojt model.OJTApplication
	err := preloadOJTContext(r.db.WithContext(ctx)).First(&ojt, id).Error
	if err != nil {
		return nil, err
	}
	return &ojt, nil
}

func (r *ojtRepository) FindAllWithContext(ctx context.Context, filter OJTFilter) ([]model.OJTApplication, error) {
	var ojts []model.OJTApplication
	query := preloadOJTContext(r.db.WithContext(ctx).Model(&model.OJTApplication{}))
	query = filter.apply(query, "ojt_applications.id")
	err := query.Order("ojt_applications.id ASC").Find(&ojts).Error
	return ojts, err
}

func preloadOJTContext(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Student").
		Preload("Company").
		Preload("Class.Program.Department")
}
