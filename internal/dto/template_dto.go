package dto

import (
	"time"

	"github.com/lshigami/ojtportal/internal/model"
)

type QuestionDTO struct {
	ID           uint   `json:"id"`
	Question     string `json:"question"`
	DisplayOrder int    `json:"displayOrder"`
}

type CategoryDTO struct {
	ID           uint          `json:"id"`
	Name         string        `json:"name"`
	DisplayOrder int           `json:"displayOrder"`
	Questions    []QuestionDTO `json:"questions"`
}

// TemplateDTO is a template with its full question tree. Flat families fill
// Questions, appraisal fills Categories.
type TemplateDTO struct {
	ID             uint          `json:"id"`
	Family         model.Family  `json:"family"`
	IsActive       bool          `json:"isActive"`
	Version        int           `json:"version"`
	FormTemplateID *uint         `json:"formTemplateId,omitempty"`
	Questions      []QuestionDTO `json:"questions,omitempty"`
	Categories     []CategoryDTO `json:"categories,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

type TemplateSummaryDTO struct {
	ID            uint         `json:"id"`
	Family        model.Family `json:"family"`
	IsActive      bool         `json:"isActive"`
	Version       int          `json:"version"`
	QuestionCount int          `json:"questionCount"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
