package model

import (
	"time"
)

type FeedbackTemplate struct {
	ID             uint               `gorm:"primarykey" json:"id"`
	Family         Family             `json:"family" gorm:"type:varchar(32);not null;index"`
	IsActive       bool               `json:"isActive" gorm:"not null;default:false;index"`
	Version        int                `json:"version" gorm:"not null;default:1"`
	FormTemplateID *uint              `json:"formTemplateId,omitempty"`
	Categories     []TemplateCategory `json:"categories,omitempty" gorm:"foreignKey:TemplateID"`
	Questions      []TemplateQuestion `json:"questions,omitempty" gorm:"foreignKey:TemplateID"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// QuestionIDs returns the ids of every live question in the template tree.
func (t *FeedbackTemplate) QuestionIDs() map[uint]struct{} {
	ids := make(map[uint]struct{})
	for _, q := range t.Questions {
		ids[q.ID] = struct{}{}
	}
	for _, c := range t.Categories {
		for _, q := range c.Questions {
			ids[q.ID] = struct{}{}
		}
	}
	return ids
}
