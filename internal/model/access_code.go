package model

import "time"

// AccessCodeEmail records the single access code issued per OJT and family.
type AccessCodeEmail struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	Family            Family    `json:"family" gorm:"type:varchar(32);not null;uniqueIndex:idx_access_code_family_ojt"`
	OJTID             uint      `json:"ojtId" gorm:"not null;uniqueIndex:idx_access_code_family_ojt"`
	Email             string    `json:"email" gorm:"not null"`
	AccessCode        string    `json:"-" gorm:"not null;index"`
	FeedbackSubmitted bool      `json:"feedbackSubmitted" gorm:"not null;default:false"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
