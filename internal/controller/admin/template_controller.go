package admin

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/ojtportal/internal/controller"
	"github.com/lshigami/ojtportal/internal/dto"
	"github.com/lshigami/ojtportal/internal/service"
	"github.com/rs/zerolog/log"
)

type TemplateController struct {
	templateService service.TemplateService
}

func NewTemplateController(templateService service.TemplateService) *TemplateController {
	return &TemplateController{templateService: templateService}
}

// CreateTemplate godoc
// @Summary Create a template
// @Description Creates version 1 of a new template. Student feedback templates start active and replace the current one.
// @Tags Templates
// @Accept json
// @Produce json
// @Param family path string true "Feedback family" Enums(student-feedback, supervisor-feedback, appraisal)
// @Param template body dto.CreateTemplateRequest false "Optional printable form link"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /{family} [post]
func (c *TemplateController) CreateTemplate(ctx *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Warn().Err(err).Msg("CreateTemplate: Failed to bind JSON")
		controller.BadRequest(ctx, "Invalid request body", err.Error())
		return
	}

	template, err := c.templateService.CreateTemplate(ctx.Request.Context(), controller.Family(ctx), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "Template created", ID: &template.ID})
}

// ListTemplates godoc
// @Summary List templates
// @Description All templates of a family, newest first, with live question counts.
// @Tags Templates
// @Produce json
// @Param family path string true "Feedback family"
// @Success 200 {array} dto.TemplateSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /{family}/templates [get]
func (c *TemplateController) ListTemplates(ctx *gin.Context) {
	templates, err := c.templateService.ListTemplates(ctx.Request.Context(), controller.Family(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, templates)
}

// GetActiveTemplate godoc
// @Summary Get the active template
// @Description Returns the active template with its question tree, or null when none is active.
// @Tags Templates
// @Produce json
// @Param family path string true "Feedback family"
// @Success 200 {object} dto.TemplateDTO
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /{family} [get]
func (c *TemplateController) GetActiveTemplate(ctx *gin.Context) {
	template, err := c.templateService.GetActiveTemplate(ctx.Request.Context(), controller.Family(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	if template == nil {
		ctx.JSON(http.StatusOK, nil)
		return
	}
	ctx.JSON(http.StatusOK, template)
}

// GetTemplate godoc
// @Summary Get a template by id
// @Tags Templates
// @Produce json
// @Param family path string true "Feedback family"
// @Param id path int true "Template ID"
// @Success 200 {object} dto.TemplateDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /{family}/{id} [get]
func (c *TemplateController) GetTemplate(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	template, err := c.templateService.GetTemplateByID(ctx.Request.Context(), controller.Family(ctx), id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, template)
}

// PatchTemplate godoc
// @Summary Activate or deactivate a template
// @Description Activating a template deactivates every other template of the family.
// @Tags Templates
// @Accept json
// @Produce json
// @Param family path string true "Feedback family"
// @Param id path int true "Template ID"
// @Param flags body dto.PatchTemplateRequest true "Flags to change"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /{family}/{id} [patch]
func (c *TemplateController) PatchTemplate(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.PatchTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, "Invalid request body", err.Error())
		return
	}
	if req.IsActive == nil {
		controller.BadRequest(ctx, "Nothing to update")
		return
	}
	if err := c.templateService.SetActive(ctx.Request.Context(), controller.Family(ctx), id, *req.IsActive); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Template updated", ID: &id})
}

// ReplaceQuestions godoc
// @Summary Replace questions
// @Description Replaces the whole question list and bumps the template version. For appraisal the id is a category id.
// @Tags Templates
// @Accept json
// @Produce json
// @Param family path string true "Feedback family"
// @Param id path int true "Template ID, or category ID for appraisal"
// @Param questions body dto.ReplaceQuestionsRequest true "New question list in display order"
// @Success 200 {object} dto.TemplateDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /{family}/{id}/questions [patch]
func (c *TemplateController) ReplaceQuestions(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.ReplaceQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Uint("ownerID", id).Msg("ReplaceQuestions: Failed to bind JSON")
		controller.BadRequest(ctx, "Invalid request body", err.Error())
		return
	}
	template, err := c.templateService.ReplaceQuestions(ctx.Request.Context(), controller.Family(ctx), id, req.Questions)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, template)
}

// ReplaceCategories godoc
// @Summary Replace appraisal categories
// @Description Updates categories by id, removes missing ones with their questions, creates new ones and bumps the version.
// @Tags Templates
// @Accept json
// @Produce json
// @Param id path int true "Template ID"
// @Param categories body dto.ReplaceCategoriesRequest true "Category list"
// @Success 200 {object} dto.TemplateDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /appraisal/{id}/categories [patch]
func (c *TemplateController) ReplaceCategories(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.ReplaceCategoriesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, "Invalid request body", err.Error())
		return
	}
	template, err := c.templateService.ReplaceCategories(ctx.Request.Context(), controller.Family(ctx), id, req.Categories)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, template)
}
