package service

import (
	"github.com/jinzhu/copier"
	"github.com/lshigami/ojtportal/internal/dto"
	"github.com/lshigami/ojtportal/internal/model"
	"github.com/rs/zerolog/log"
)

func toTemplateDTO(template *model.FeedbackTemplate) *dto.TemplateDTO {
	var resp dto.TemplateDTO
	if err := copier.Copy(&resp, template); err != nil {
		log.Error().Err(err).Uint("templateID", template.ID).Msg("Failed to copy template to DTO")
	}
	if template.Family.HasCategories() {
		resp.Questions = nil
		if resp.Categories == nil {
			resp.Categories = []dto.CategoryDTO{}
		}
		for i := range resp.Categories {
			if resp.Categories[i].Questions == nil {
				resp.Categories[i].Questions = []dto.QuestionDTO{}
			}
		}
	} else {
		resp.Categories = nil
		if resp.Questions == nil {
			resp.Questions = []dto.QuestionDTO{}
		}
	}
	return &resp
}

func toStudentDTO(student model.Student) *dto.StudentDTO {
	if student.ID == 0 {
		return nil
	}
	return &dto.StudentDTO{
		ID:            student.ID,
		StudentNumber: student.StudentNumber,
		FirstName:     student.FirstName,
		LastName:      student.LastName,
		Email:         student.Email,
	}
}

func namedRef(id uint, name string) *dto.NamedRef {
	if id == 0 {
		return nil
	}
	return &dto.NamedRef{ID: id, Name: name}
}

// ojtContextRefs flattens the student, company and class hierarchy of an
// OJT application.
func ojtContextRefs(ojt *model.OJTApplication) (student *dto.StudentDTO, company, class, program, department *dto.NamedRef) {
	student = toStudentDTO(ojt.Student)
	if ojt.Company != nil {
		company = namedRef(ojt.Company.ID, ojt.Company.Name)
	}
	class = namedRef(ojt.Class.ID, ojt.Class.Name)
	program = namedRef(ojt.Class.Program.ID, ojt.Class.Program.Name)
	department = namedRef(ojt.Class.Program.Department.ID, ojt.Class.Program.Department.Name)
	return
}

func toOJTSummaryDTO(ojt *model.OJTApplication) dto.OJTSummaryDTO {
	summary := dto.OJTSummaryDTO{
		ID:              ojt.ID,
		Status:          ojt.Status,
		SupervisorName:  ojt.SupervisorName,
		SupervisorEmail: ojt.SupervisorEmail,
	}
	summary.Student, summary.Company, summary.Class, summary.Program, summary.Department = ojtContextRefs(ojt)
	return summary
}

func toResponseDetailDTO(response *model.FeedbackResponse) *dto.ResponseDetailDTO {
	resp := dto.ResponseDetailDTO{
		ID:              response.ID,
		Family:          response.Family,
		OJTID:           response.OJTID,
		TemplateID:      response.TemplateID,
		TemplateVersion: response.TemplateVersion,
		ResponseDate:    response.ResponseDate,
		ProblemsMet:     response.ProblemsMet,
		OtherConcerns:   response.OtherConcerns,
		Comments:        response.Comments,
		Signature:       response.Signature,
		TotalPoints:     response.TotalPoints,
		Answers:         make([]dto.AnswerDTO, 0, len(response.Answers)),
	}
	resp.Student, resp.Company, resp.Class, resp.Program, resp.Department = ojtContextRefs(&response.OJT)

	for _, answer := range response.Answers {
		item := dto.AnswerDTO{
			QuestionID:    answer.QuestionID,
			ResponseValue: answer.ResponseValue,
			Rating:        answer.Rating,
		}
		if answer.Question.ID != 0 {
			text := answer.Question.Question
			item.Question = &text
		}
		resp.Answers = append(resp.Answers, item)
	}
	return &resp
}
