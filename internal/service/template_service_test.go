package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lshigami/ojtportal/internal/dto"
	"github.com/lshigami/ojtportal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateTemplateDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("student feedback starts active and replaces the current one", func(t *testing.T) {
		first, err := f.templates.CreateTemplate(ctx, model.FamilyStudentFeedback, dto.CreateTemplateRequest{})
		require.NoError(t, err)
		assert.True(t, first.IsActive)
		assert.Equal(t, 1, first.Version)
		assert.Equal(t, []dto.QuestionDTO{}, first.Questions)

		second, err := f.templates.CreateTemplate(ctx, model.FamilyStudentFeedback, dto.CreateTemplateRequest{})
		require.NoError(t, err)
		assert.True(t, second.IsActive)

		reloaded, err := f.templates.GetTemplateByID(ctx, model.FamilyStudentFeedback, first.ID)
		require.NoError(t, err)
		assert.False(t, reloaded.IsActive)

		active, err := f.templates.GetActiveTemplate(ctx, model.FamilyStudentFeedback)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, second.ID, active.ID)
	})

	t.Run("supervisor families start inactive", func(t *testing.T) {
		formID := uint(7)
		created, err := f.templates.CreateTemplate(ctx, model.FamilyAppraisal, dto.CreateTemplateRequest{FormTemplateID: &formID})
		require.NoError(t, err)
		assert.False(t, created.IsActive)
		require.NotNil(t, created.FormTemplateID)
		assert.Equal(t, formID, *created.FormTemplateID)
		assert.Equal(t, []dto.CategoryDTO{}, created.Categories)

		active, err := f.templates.GetActiveTemplate(ctx, model.FamilyAppraisal)
		require.NoError(t, err)
		assert.Nil(t, active)
	})
}

func TestGetTemplateByIDChecksFamily(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.templates.CreateTemplate(ctx, model.FamilySupervisorFeedback, dto.CreateTemplateRequest{})
	require.NoError(t, err)

	_, err = f.templates.GetTemplateByID(ctx, model.FamilyStudentFeedback, created.ID)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	_, err = f.templates.GetTemplateByID(ctx, model.FamilySupervisorFeedback, 999)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestReplaceQuestionsBumpsVersionOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	family := model.FamilySupervisorFeedback

	created, err := f.templates.CreateTemplate(ctx, family, dto.CreateTemplateRequest{})
	require.NoError(t, err)

	tree, err := f.templates.ReplaceQuestions(ctx, family, created.ID, []string{" First ", "Second", "Third"})
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Version)
	require.Len(t, tree.Questions, 3)
	assert.Equal(t, "First", tree.Questions[0].Question)
	assert.Equal(t, "Third", tree.Questions[2].Question)
	assert.Equal(t, 2, tree.Questions[2].DisplayOrder)

	tree, err = f.templates.ReplaceQuestions(ctx, family, created.ID, []string{"Only"})
	require.NoError(t, err)
	assert.Equal(t, 3, tree.Version)
	require.Len(t, tree.Questions, 1)

	tree, err = f.templates.ReplaceQuestions(ctx, family, created.ID, []string{})
	require.NoError(t, err)
	assert.Equal(t, 4, tree.Version)
	assert.Empty(t, tree.Questions)

	var total, live int64
	require.NoError(t, f.db.Unscoped().Model(&model.TemplateQuestion{}).Where("template_id = ?", created.ID).Count(&total).Error)
	require.NoError(t, f.db.Model(&model.TemplateQuestion{}).Where("template_id = ?", created.ID).Count(&live).Error)
	assert.Equal(t, int64(4), total, "replaced questions are kept as soft-deleted rows")
	assert.Equal(t, int64(0), live)
}

func TestReplaceQuestionsRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.templates.CreateTemplate(ctx, model.FamilyStudentFeedback, dto.CreateTemplateRequest{})
	require.NoError(t, err)

	tests := []struct {
		name    string
		family  model.Family
		ownerID uint
		input   []string
		want    error
	}{
		{"unknown template", model.FamilyStudentFeedback, 404, []string{"Q"}, ErrTemplateNotFound},
		{"other family", model.FamilySupervisorFeedback, created.ID, []string{"Q"}, ErrTemplateNotFound},
		{"unknown category", model.FamilyAppraisal, 404, []string{"Q"}, ErrCategoryNotFound},
		{"blank question", model.FamilyStudentFeedback, created.ID, []string{"Q", "  "}, ErrBlankQuestion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.templates.ReplaceQuestions(ctx, tt.family, tt.ownerID, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	reloaded, err := f.templates.GetTemplateByID(ctx, model.FamilyStudentFeedback, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Version)
}

func TestReplaceQuestionsRollsBackOnInsertFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	family := model.FamilyStudentFeedback

	templateID, _ := activeTemplateWith(t, f, family, "Keep me", "And me")

	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register("test:fail_questions", func(tx *gorm.DB) {
		if tx.Statement.Table == "template_questions" {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))

	_, err := f.templates.ReplaceQuestions(ctx, family, templateID, []string{"New"})
	require.Error(t, err)

	require.NoError(t, f.db.Callback().Create().Remove("test:fail_questions"))

	tree, err := f.templates.GetTemplateByID(ctx, family, templateID)
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Version, "failed replace must not bump the version")
	require.Len(t, tree.Questions, 2)
	assert.Equal(t, "Keep me", tree.Questions[0].Question)
}

func TestSetActiveKeepsOneActivePerFamily(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	family := model.FamilySupervisorFeedback

	a, err := f.templates.CreateTemplate(ctx, family, dto.CreateTemplateRequest{})
	require.NoError(t, err)
	b, err := f.templates.CreateTemplate(ctx, family, dto.CreateTemplateRequest{})
	require.NoError(t, err)
	other, err := f.templates.CreateTemplate(ctx, model.FamilyAppraisal, dto.CreateTemplateRequest{})
	require.NoError(t, err)
	require.NoError(t, f.templates.SetActive(ctx, model.FamilyAppraisal, other.ID, true))

	require.NoError(t, f.templates.SetActive(ctx, family, a.ID, true))
	require.NoError(t, f.templates.SetActive(ctx, family, b.ID, true))

	var activeIDs []uint
	require.NoError(t, f.db.Model(&model.FeedbackTemplate{}).
		Where("family = ? AND is_active = ?", family, true).Pluck("id", &activeIDs).Error)
	assert.Equal(t, []uint{b.ID}, activeIDs)

	appraisal, err := f.templates.GetActiveTemplate(ctx, model.FamilyAppraisal)
	require.NoError(t, err)
	require.NotNil(t, appraisal, "families are activated independently")
	assert.Equal(t, other.ID, appraisal.ID)

	require.NoError(t, f.templates.SetActive(ctx, family, b.ID, false))
	active, err := f.templates.GetActiveTemplate(ctx, family)
	require.NoError(t, err)
	assert.Nil(t, active)

	assert.ErrorIs(t, f.templates.SetActive(ctx, model.FamilyStudentFeedback, a.ID, true), ErrTemplateNotFound)
}

func TestReplaceCategories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	family := model.FamilyAppraisal

	created, err := f.templates.CreateTemplate(ctx, family, dto.CreateTemplateRequest{})
	require.NoError(t, err)

	_, err = f.templates.ReplaceCategories(ctx, model.FamilyStudentFeedback, created.ID, nil)
	assert.ErrorIs(t, err, ErrFamilyHasNoCategories)

	tree, err := f.templates.ReplaceCategories(ctx, family, created.ID, []dto.CategoryInput{
		{Name: "Attitude", DisplayOrder: 0},
		{Name: "Quality", DisplayOrder: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Version)
	require.Len(t, tree.Categories, 2)
	attitude, quality := tree.Categories[0], tree.Categories[1]
	assert.Equal(t, []dto.QuestionDTO{}, attitude.Questions)

	tree, err = f.templates.ReplaceQuestions(ctx, family, attitude.ID, []string{"Punctuality", "Initiative"})
	require.NoError(t, err)
	assert.Equal(t, 3, tree.Version)
	require.Len(t, tree.Categories[0].Questions, 2)
	assert.Nil(t, tree.Questions)

	tree, err = f.templates.ReplaceCategories(ctx, family, created.ID, []dto.CategoryInput{
		{ID: &quality.ID, Name: "Work Quality", DisplayOrder: 0},
		{Name: "Teamwork", DisplayOrder: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, tree.Version)
	require.Len(t, tree.Categories, 2)
	assert.Equal(t, quality.ID, tree.Categories[0].ID)
	assert.Equal(t, "Work Quality", tree.Categories[0].Name)
	assert.Equal(t, "Teamwork", tree.Categories[1].Name)

	var liveQuestions int64
	require.NoError(t, f.db.Model(&model.TemplateQuestion{}).Where("category_id = ?", attitude.ID).Count(&liveQuestions).Error)
	assert.Zero(t, liveQuestions, "questions of a removed category are removed with it")

	t.Run("rejects foreign and duplicate ids", func(t *testing.T) {
		stranger := uint(9999)
		_, err := f.templates.ReplaceCategories(ctx, family, created.ID, []dto.CategoryInput{{ID: &stranger, Name: "X"}})
		assert.ErrorIs(t, err, ErrCategoryNotFound)

		_, err = f.templates.ReplaceCategories(ctx, family, created.ID, []dto.CategoryInput{
			{ID: &quality.ID, Name: "A"}, {ID: &quality.ID, Name: "B"},
		})
		assert.ErrorIs(t, err, ErrDuplicateCategory)

		unchanged, err := f.templates.GetTemplateByID(ctx, family, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, unchanged.Version)
	})
}

func TestListTemplatesCountsLiveQuestions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	older, _ := activeTemplateWith(t, f, model.FamilyStudentFeedback, "A", "B", "C")
	newer, _ := activeTemplateWith(t, f, model.FamilyStudentFeedback, "D")
	_, err := f.templates.ReplaceQuestions(ctx, model.FamilyStudentFeedback, newer, []string{"E", "F"})
	require.NoError(t, err)

	summaries, err := f.templates.ListTemplates(ctx, model.FamilyStudentFeedback)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, newer, summaries[0].ID)
	assert.Equal(t, 2, summaries[0].QuestionCount)
	assert.Equal(t, 3, summaries[0].Version)
	assert.True(t, summaries[0].IsActive)
	assert.Equal(t, older, summaries[1].ID)
	assert.Equal(t, 3, summaries[1].QuestionCount)
	assert.False(t, summaries[1].IsActive)
}
