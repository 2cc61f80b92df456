package dto

// CreateTemplateRequest creates a new template for a family. FormTemplateID
// links an appraisal template to its printable form.
type CreateTemplateRequest struct {
	FormTemplateID *uint `json:"formTemplateId"`
}

type PatchTemplateRequest struct {
	IsActive *bool `json:"isActive"`
}

type ReplaceQuestionsRequest struct {
	Questions []string `json:"questions" binding:"required,dive,required"`
}

type CategoryInput struct {
	ID           *uint  `json:"id"`
	Name         string `json:"name" binding:"required"`
	DisplayOrder int    `json:"displayOrder"`
}

type ReplaceCategoriesRequest struct {
	Categories []CategoryInput `json:"categories" binding:"required,dive"`
}

type VerifyCodeRequest struct {
	Code string `json:"code"`
}

// StudentFeedbackPayload is the JSON carried in the "data" multipart field of
// a student feedback submission.
type StudentFeedbackPayload struct {
	ProblemsMet   string          `json:"problemsMet"`
	OtherConcerns string          `json:"otherConcerns"`
	Feedback      map[uint]string `json:"feedback" validate:"required,min=1,dive,likert"`
}

// SupervisorFeedbackPayload is the "data" field of a supervisor feedback submission.
type SupervisorFeedbackPayload struct {
	Feedback map[uint]string `json:"feedback" validate:"required,min=1,dive,likert"`
	Comments string          `json:"comments"`
}

// AppraisalPayload is the "data" field of an appraisal submission.
type AppraisalPayload struct {
	Ratings  map[uint]int `json:"ratings" validate:"required,min=1,dive,min=1,max=5"`
	Comments string       `json:"comments"`
}
