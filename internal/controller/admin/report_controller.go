package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/ojtportal/internal/controller"
	"github.com/lshigami/ojtportal/internal/service"
)

type ReportController struct {
	reportService     service.ReportService
	submissionService service.SubmissionService
}

func NewReportController(reportService service.ReportService, submissionService service.SubmissionService) *ReportController {
	return &ReportController{reportService: reportService, submissionService: submissionService}
}

// ListResponses godoc
// @Summary List responses
// @Description Every stored snapshot of the family with its template version and answers.
// @Tags Reports
// @Produce json
// @Param family path string true "Feedback family"
// @Param departmentId query int false "Department filter"
// @Param programId query int false "Program filter"
// @Success 200 {array} dto.ResponseDetailDTO
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /{family}/response/all [get]
func (c *ReportController) ListResponses(ctx *gin.Context) {
	filter, ok := controller.ParseOJTFilter(ctx)
	if !ok {
		return
	}
	responses, err := c.reportService.ListResponses(ctx.Request.Context(), controller.Family(ctx), filter)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, responses)
}

// CountUnanswered godoc
// @Summary Count OJTs without a response
// @Tags Reports
// @Produce json
// @Param family path string true "Feedback family"
// @Param departmentId query int false "Department filter"
// @Param programId query int false "Program filter"
// @Success 200 {object} dto.UnansweredDTO
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /{family}/response/unanswered [get]
func (c *ReportController) CountUnanswered(ctx *gin.Context) {
	filter, ok := controller.ParseOJTFilter(ctx)
	if !ok {
		return
	}
	result, err := c.reportService.CountUnanswered(ctx.Request.Context(), controller.Family(ctx), filter)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetResponse godoc
// @Summary Get a response snapshot
// @Tags Reports
// @Produce json
// @Param family path string true "Feedback family"
// @Param responseId path int true "Response ID"
// @Success 200 {object} dto.ResponseDetailDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /{family}/response/{responseId} [get]
func (c *ReportController) GetResponse(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "responseId")
	if !ok {
		return
	}
	response, err := c.submissionService.GetResponse(ctx.Request.Context(), controller.Family(ctx), id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}
