package dto

import (
	"time"

	"github.com/lshigami/ojtportal/internal/model"
)

type MessageResponse struct {
	Message string `json:"message"`
	ID      *uint  `json:"id,omitempty"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// AnswerDTO carries the question text the answer was given against. Question
// is nil only when the question row no longer exists at all.
type AnswerDTO struct {
	QuestionID    uint    `json:"questionId"`
	Question      *string `json:"question"`
	ResponseValue *string `json:"responseValue,omitempty"`
	Rating        *int    `json:"rating,omitempty"`
}

type NamedRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type StudentDTO struct {
	ID            uint   `json:"id"`
	StudentNumber string `json:"studentNumber"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email,omitempty"`
}

type ResponseDetailDTO struct {
	ID              uint         `json:"id"`
	Family          model.Family `json:"family"`
	OJTID           uint         `json:"ojtId"`
	TemplateID      uint         `json:"templateId"`
	TemplateVersion int          `json:"templateVersion"`
	ResponseDate    time.Time    `json:"responseDate"`
	ProblemsMet     string       `json:"problemsMet,omitempty"`
	OtherConcerns   string       `json:"otherConcerns,omitempty"`
	Comments        string       `json:"comments,omitempty"`
	Signature       string       `json:"signature"`
	TotalPoints     *int         `json:"totalPoints,omitempty"`
	Student         *StudentDTO  `json:"student,omitempty"`
	Company         *NamedRef    `json:"company,omitempty"`
	Class           *NamedRef    `json:"class,omitempty"`
	Program         *NamedRef    `json:"program,omitempty"`
	Department      *NamedRef    `json:"department,omitempty"`
	Answers         []AnswerDTO  `json:"answers"`
}

type OJTSummaryDTO struct {
	ID              uint        `json:"id"`
	Status          string      `json:"status"`
	SupervisorName  string      `json:"supervisorName,omitempty"`
	SupervisorEmail string      `json:"supervisorEmail,omitempty"`
	Student         *StudentDTO `json:"student,omitempty"`
	Company         *NamedRef   `json:"company,omitempty"`
	Class           *NamedRef   `json:"class,omitempty"`
	Program         *NamedRef   `json:"program,omitempty"`
	Department      *NamedRef   `json:"department,omitempty"`
}

type UnansweredDTO struct {
	Count          int             `json:"count"`
	UnansweredOjts []OJTSummaryDTO `json:"unansweredOjts"`
}

// VerifyResponse is returned by access-code redemption. Valid stays true after
// the response is submitted; FeedbackSubmitted tells the client to render a
// read-only view.
type VerifyResponse struct {
	Valid             bool           `json:"valid"`
	OJTID             uint           `json:"ojtId,omitempty"`
	OJT               *OJTSummaryDTO `json:"ojt,omitempty"`
	Template          *TemplateDTO   `json:"template,omitempty"`
	FeedbackSubmitted bool           `json:"feedbackSubmitted"`
	Message           string         `json:"message,omitempty"`
}
