package student

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/ojtportal/internal/controller"
	"github.com/lshigami/ojtportal/internal/dto"
	"github.com/lshigami/ojtportal/internal/middleware"
	"github.com/lshigami/ojtportal/internal/service"
	"github.com/rs/zerolog/log"
)

// FeedbackController serves the logged-in student's own forms.
type FeedbackController struct {
	submissionService service.SubmissionService
	accessCodeService service.AccessCodeService
}

func NewFeedbackController(submissionService service.SubmissionService, accessCodeService service.AccessCodeService) *FeedbackController {
	return &FeedbackController{submissionService: submissionService, accessCodeService: accessCodeService}
}

// SubmitFeedback godoc
// @Summary Submit student feedback
// @Description Stores the caller's evaluation against the active student feedback template. One response per OJT and template.
// @Tags Student Feedback
// @Accept multipart/form-data
// @Produce json
// @Param signature formData file true "Signature image"
// @Param data formData string true "JSON dto.StudentFeedbackPayload"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /student-feedback/response [post]
func (c *FeedbackController) SubmitFeedback(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	var payload dto.StudentFeedbackPayload
	if err := controller.BindMultipartData(ctx, &payload); err != nil {
		log.Warn().Err(err).Uint("userID", userID).Msg("SubmitFeedback: invalid data field")
		controller.BadRequest(ctx, "Invalid feedback data", dto.ValidationDetails(err)...)
		return
	}
	signature, file, err := controller.ReadSignature(ctx)
	if err != nil {
		controller.BadRequest(ctx, "Invalid signature", err.Error())
		return
	}
	if file != nil {
		defer file.Close()
	}

	response, err := c.submissionService.SubmitStudentFeedback(ctx.Request.Context(), userID, service.StudentFeedbackInput{
		ProblemsMet:   payload.ProblemsMet,
		OtherConcerns: payload.OtherConcerns,
		Feedback:      payload.Feedback,
		Signature:     signature,
	})
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "Feedback submitted", ID: &response.ID})
}

// GetMyFeedback godoc
// @Summary Get own student feedback
// @Description The caller's latest student feedback response with the question text it was answered against.
// @Tags Student Feedback
// @Produce json
// @Success 200 {object} dto.ResponseDetailDTO
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /student-feedback/response [get]
func (c *FeedbackController) GetMyFeedback(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}
	response, err := c.submissionService.GetMyStudentFeedback(ctx.Request.Context(), userID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// RequestAccessCode godoc
// @Summary Email an access code to the supervisor
// @Description Issues the single access code for the caller's OJT and emails it to the supervisor on file.
// @Tags Access Codes
// @Produce json
// @Param family path string true "Feedback family" Enums(supervisor-feedback, appraisal)
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /{family}/email [post]
func (c *FeedbackController) RequestAccessCode(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}
	if err := c.accessCodeService.RequestCode(ctx.Request.Context(), controller.Family(ctx), userID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Email sent"})
}
