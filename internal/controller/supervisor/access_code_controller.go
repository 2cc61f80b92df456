package supervisor

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/ojtportal/internal/controller"
	"github.com/lshigami/ojtportal/internal/dto"
	"github.com/lshigami/ojtportal/internal/model"
	"github.com/lshigami/ojtportal/internal/service"
	"github.com/rs/zerolog/log"
)

// AccessCodeController serves company supervisors, who authenticate with an
// emailed access code instead of an account.
type AccessCodeController struct {
	accessCodeService service.AccessCodeService
	submissionService service.SubmissionService
}

func NewAccessCodeController(accessCodeService service.AccessCodeService, submissionService service.SubmissionService) *AccessCodeController {
	return &AccessCodeController{accessCodeService: accessCodeService, submissionService: submissionService}
}

// Verify godoc
// @Summary Verify an access code
// @Description Resolves the code to its OJT and returns the active template. Codes stay valid after submission; feedbackSubmitted reports it.
// @Tags Access Codes
// @Accept json
// @Produce json
// @Param family path string true "Feedback family" Enums(supervisor-feedback, appraisal)
// @Param code body dto.VerifyCodeRequest true "Access code"
// @Success 200 {object} dto.VerifyResponse
// @Failure 400 {object} dto.VerifyResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /{family}/verify [post]
func (c *AccessCodeController) Verify(ctx *gin.Context) {
	var req dto.VerifyCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.VerifyResponse{Valid: false, Message: "Invalid request body"})
		return
	}
	result, err := c.accessCodeService.Verify(ctx.Request.Context(), controller.Family(ctx), req.Code)
	if err != nil {
		status, body := controller.StatusFor(err)
		if status == http.StatusBadRequest {
			ctx.JSON(status, dto.VerifyResponse{Valid: false, Message: body.Message})
			return
		}
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// SubmitResponse godoc
// @Summary Submit supervisor feedback or appraisal
// @Description Stores the supervisor's response for the OJT the access code belongs to. Appraisal totals are computed once here.
// @Tags Access Codes
// @Accept multipart/form-data
// @Produce json
// @Param family path string true "Feedback family" Enums(supervisor-feedback, appraisal)
// @Param code formData string true "Access code"
// @Param ojtId formData int false "OJT application ID, must match the code"
// @Param signature formData file true "Signature image"
// @Param data formData string true "JSON dto.SupervisorFeedbackPayload or dto.AppraisalPayload"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /{family}/response [post]
func (c *AccessCodeController) SubmitResponse(ctx *gin.Context) {
	family := controller.Family(ctx)
	in := service.AccessCodeSubmissionInput{Code: strings.TrimSpace(ctx.PostForm("code"))}
	if in.Code == "" {
		controller.BadRequest(ctx, service.ErrInvalidAccessCode.Error())
		return
	}
	if raw := ctx.PostForm("ojtId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			controller.BadRequest(ctx, "Invalid ojtId")
			return
		}
		ojtID := uint(id)
		in.OJTID = &ojtID
	}

	if family == model.FamilyAppraisal {
		var payload dto.AppraisalPayload
		if err := controller.BindMultipartData(ctx, &payload); err != nil {
			log.Warn().Err(err).Msg("SubmitResponse: invalid appraisal data")
			controller.BadRequest(ctx, "Invalid appraisal data", dto.ValidationDetails(err)...)
			return
		}
		in.Ratings = payload.Ratings
		in.Comments = payload.Comments
	} else {
		var payload dto.SupervisorFeedbackPayload
		if err := controller.BindMultipartData(ctx, &payload); err != nil {
			log.Warn().Err(err).Msg("SubmitResponse: invalid feedback data")
			controller.BadRequest(ctx, "Invalid feedback data", dto.ValidationDetails(err)...)
			return
		}
		in.Feedback = payload.Feedback
		in.Comments = payload.Comments
	}

	signature, file, err := controller.ReadSignature(ctx)
	if err != nil {
		controller.BadRequest(ctx, "Invalid signature", err.Error())
		return
	}
	if file != nil {
		defer file.Close()
	}
	in.Signature = signature

	response, err := c.submissionService.SubmitWithAccessCode(ctx.Request.Context(), family, in)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "Response submitted", ID: &response.ID})
}
