package model

import (
	"time"

	"gorm.io/gorm"
)

type TemplateCategory struct {
	ID           uint               `gorm:"primarykey" json:"id"`
	TemplateID   uint               `json:"templateId" gorm:"not null;index"`
	Name         string             `json:"name" gorm:"not null"`
	DisplayOrder int                `json:"displayOrder" gorm:"not null;default:0"`
	Questions    []TemplateQuestion `json:"questions,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`
}

// TemplateQuestion belongs either to a template (flat families) or to a
// category (appraisal). Replaced questions are soft-deleted so historical
// answers keep their wording.
type TemplateQuestion struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	TemplateID   *uint          `json:"templateId,omitempty" gorm:"index"`
	CategoryID   *uint          `json:"categoryId,omitempty" gorm:"index"`
	Question     string         `json:"question" gorm:"type:text;not null"`
	DisplayOrder int            `json:"displayOrder" gorm:"not null;default:0"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
