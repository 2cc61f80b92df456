package model

import (
	"time"
)

// Likert scale values accepted for feedback answers.
const (
	LikertStronglyAgree    = "SA"
	LikertAgree            = "A"
	LikertNeutral          = "N"
	LikertDisagree         = "D"
	LikertStronglyDisagree = "SD"
)

// FeedbackResponse is an immutable snapshot of one respondent's answers
// against the template version that was current when it was submitted.
type FeedbackResponse struct {
	ID                uint             `gorm:"primarykey" json:"id"`
	Family            Family           `json:"family" gorm:"type:varchar(32);not null;index"`
	OJTID             uint             `json:"ojtId" gorm:"not null;uniqueIndex:idx_response_ojt_template"`
	OJT               OJTApplication   `json:"-" gorm:"foreignKey:OJTID"`
	TemplateID        uint             `json:"templateId" gorm:"not null;uniqueIndex:idx_response_ojt_template"`
	Template          FeedbackTemplate `json:"-" gorm:"foreignKey:TemplateID"`
	TemplateVersion   int              `json:"templateVersion" gorm:"not null"`
	ResponseDate      time.Time        `json:"responseDate" gorm:"not null"`
	ProblemsMet       string           `json:"problemsMet,omitempty" gorm:"type:text"`
	OtherConcerns     string           `json:"otherConcerns,omitempty" gorm:"type:text"`
	Comments          string           `json:"comments,omitempty" gorm:"type:text"`
	Signature         string           `json:"signature" gorm:"not null"`
	TotalPoints       *int             `json:"totalPoints,omitempty"`
	AccessCodeEmailID *uint            `json:"accessCodeEmailId,omitempty" gorm:"index"`
	Answers           []ResponseAnswer `json:"answers,omitempty" gorm:"foreignKey:ResponseID"`
	CreatedAt         time.Time        `json:"createdAt"`
}

type ResponseAnswer struct {
	ID            uint             `gorm:"primarykey" json:"id"`
	ResponseID    uint             `json:"responseId" gorm:"not null;index"`
	QuestionID    uint             `json:"questionId" gorm:"not null;index"`
	Question      TemplateQuestion `json:"-" gorm:"foreignKey:QuestionID"`
	ResponseValue *string          `json:"responseValue,omitempty" gorm:"type:varchar(2)"`
	Rating        *int             `json:"rating,omitempty"`
}
