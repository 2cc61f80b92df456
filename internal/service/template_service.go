package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lshigami/ojtportal/internal/dto"
	"github.com/lshigami/ojtportal/internal/metrics"
	"github.com/lshigami/ojtportal/internal/model"
	"github.com/lshigami/ojtportal/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// TemplateService manages the versioned question templates of every family.
// Every structural edit replaces the question set and increments the
// template version inside a single transaction.
type TemplateService interface {
	CreateTemplate(ctx context.Context, family model.Family, req dto.CreateTemplateRequest) (*dto.TemplateDTO, error)
	GetActiveTemplate(ctx context.Context, family model.Family) (*dto.TemplateDTO, error)
	GetTemplateByID(ctx context.Context, family model.Family, id uint) (*dto.TemplateDTO, error)
	ListTemplates(ctx context.Context, family model.Family) ([]dto.TemplateSummaryDTO, error)
	SetActive(ctx context.Context, family model.Family, id uint, active bool) error
	ReplaceQuestions(ctx context.Context, family model.Family, ownerID uint, questions []string) (*dto.TemplateDTO, error)
	ReplaceCategories(ctx context.Context, family model.Family, templateID uint, categories []dto.CategoryInput) (*dto.TemplateDTO, error)
}

type templateService struct {
	templateRepo repository.TemplateRepository
	categoryRepo repository.CategoryRepository
	questionRepo repository.QuestionRepository
	metrics      *metrics.Recorder
	db           *gorm.DB
}

func NewTemplateService(
	templateRepo repository.TemplateRepository,
	categoryRepo repository.CategoryRepository,
	questionRepo repository.QuestionRepository,
	recorder *metrics.Recorder,
	db *gorm.DB,
) TemplateService {
	return &templateService{
		templateRepo: templateRepo,
		categoryRepo: categoryRepo,
		questionRepo: questionRepo,
		metrics:      recorder,
		db:           db,
	}
}

func (s *templateService) CreateTemplate(ctx context.Context, family model.Family, req dto.CreateTemplateRequest) (*dto.TemplateDTO, error) {
	template := model.FeedbackTemplate{
		Family:         family,
		IsActive:       family.DefaultActive(),
		Version:        1,
		FormTemplateID: req.FormTemplateID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		templates := s.templateRepo.WithTx(tx)
		if err := templates.Create(ctx, &template); err != nil {
			return fmt.Errorf("failed to create template: %w", err)
		}
		if template.IsActive {
			return templates.DeactivateOthers(ctx, family, template.ID)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("family", string(family)).Msg("CreateTemplate: transaction failed")
		return nil, err
	}

	log.Info().Uint("templateID", template.ID).Str("family", string(family)).Bool("active", template.IsActive).Msg("Template created")
	return s.GetTemplateByID(ctx, family, template.ID)
}

// GetActiveTemplate returns nil, nil when the family has no active template.
func (s *templateService) GetActiveTemplate(ctx context.Context, family model.Family) (*dto.TemplateDTO, error) {
	template, err := s.templateRepo.FindActiveWithTree(ctx, family)
	if err != nil {
		log.Error().Err(err).Str("family", string(family)).Msg("GetActiveTemplate: query failed")
		return nil, err
	}
	if template == nil {
		return nil, nil
	}
	return toTemplateDTO(template), nil
}

func (s *templateService) GetTemplateByID(ctx context.Context, family model.Family, id uint) (*dto.TemplateDTO, error) {
	template, err := s.templateRepo.FindByIDWithTree(ctx, family, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return toTemplateDTO(template), nil
}

func (s *templateService) ListTemplates(ctx context.Context, family model.Family) ([]dto.TemplateSummaryDTO, error) {
	rows, err := s.templateRepo.FindAllWithQuestionCount(ctx, family)
	if err != nil {
		log.Error().Err(err).Str("family", string(family)).Msg("ListTemplates: query failed")
		return nil, err
	}
	summaries := make([]dto.TemplateSummaryDTO, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, dto.TemplateSummaryDTO{
			ID:            row.ID,
			Family:        row.Family,
			IsActive:      row.IsActive,
			Version:       row.Version,
			QuestionCount: row.QuestionCount,
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
		})
	}
	return summaries, nil
}

// SetActive toggles a template. Activating one deactivates the rest of the
// family in the same transaction.
func (s *templateService) SetActive(ctx context.Context, family model.Family, id uint, active bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		templates := s.templateRepo.WithTx(tx)
		if _, err := s.loadTemplate(ctx, templates, family, id); err != nil {
			return err
		}
		if err := templates.SetActive(ctx, id, active); err != nil {
			return err
		}
		if active {
			if err := templates.DeactivateOthers(ctx, family, id); err != nil {
				return err
			}
		}
		log.Info().Uint("templateID", id).Str("family", string(family)).Bool("active", active).Msg("Template activation changed")
		return nil
	})
}

// ReplaceQuestions swaps the question list of a flat template, or of one
// category when the family groups questions. ownerID is the template id or
// the category id accordingly.
func (s *templateService) ReplaceQuestions(ctx context.Context, family model.Family, ownerID uint, texts []string) (*dto.TemplateDTO, error) {
	cleaned, err := cleanQuestions(texts)
	if err != nil {
		return nil, err
	}

	var templateID uint
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		templates := s.templateRepo.WithTx(tx)
		questions := s.questionRepo.WithTx(tx)

		batch := make([]model.TemplateQuestion, len(cleaned))
		if family.HasCategories() {
			category, err := s.categoryRepo.WithTx(tx).FindByID(ctx, ownerID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCategoryNotFound
				}
				return err
			}
			template, err := s.loadTemplate(ctx, templates, family, category.TemplateID)
			if err != nil {
				if errors.Is(err, ErrTemplateNotFound) {
					return ErrCategoryNotFound
				}
				return err
			}
			templateID = template.ID
			if err := questions.DeleteByCategoryIDs(ctx, []uint{category.ID}); err != nil {
				return fmt.Errorf("failed to remove old questions: %w", err)
			}
			for i, text := range cleaned {
				batch[i] = model.TemplateQuestion{CategoryID: &category.ID, Question: text, DisplayOrder: i}
			}
		} else {
			template, err := s.loadTemplate(ctx, templates, family, ownerID)
			if err != nil {
				return err
			}
			templateID = template.ID
			if err := questions.DeleteByTemplateID(ctx, template.ID); err != nil {
				return fmt.Errorf("failed to remove old questions: %w", err)
			}
			for i, text := range cleaned {
				batch[i] = model.TemplateQuestion{TemplateID: &templateID, Question: text, DisplayOrder: i}
			}
		}

		if err := questions.CreateBatch(ctx, batch); err != nil {
			return fmt.Errorf("failed to insert questions: %w", err)
		}
		return templates.BumpVersion(ctx, templateID)
	})
	if err != nil {
		log.Error().Err(err).Uint("ownerID", ownerID).Str("family", string(family)).Msg("ReplaceQuestions: transaction rolled back")
		return nil, err
	}

	s.metrics.TemplateVersionBumped(family)
	log.Info().Uint("templateID", templateID).Int("questions", len(cleaned)).Msg("Template questions replaced")
	return s.GetTemplateByID(ctx, family, templateID)
}

// ReplaceCategories reconciles the category list of a template. Categories
// with a known id are updated, missing ones are removed along with their
// questions, and entries without an id are created.
func (s *templateService) ReplaceCategories(ctx context.Context, family model.Family, templateID uint, inputs []dto.CategoryInput) (*dto.TemplateDTO, error) {
	if !family.HasCategories() {
		return nil, ErrFamilyHasNoCategories
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		templates := s.templateRepo.WithTx(tx)
		categories := s.categoryRepo.WithTx(tx)

		if _, err := s.loadTemplate(ctx, templates, family, templateID); err != nil {
			return err
		}
		existing, err := categories.FindByTemplateID(ctx, templateID)
		if err != nil {
			return err
		}
		known := make(map[uint]bool, len(existing))
		for _, c := range existing {
			known[c.ID] = true
		}

		kept := make(map[uint]bool, len(inputs))
		for i, in := range inputs {
			name := strings.TrimSpace(in.Name)
			if name == "" {
				return fmt.Errorf("%w: position %d", ErrBlankCategoryName, i)
			}
			if in.ID == nil {
				category := model.TemplateCategory{TemplateID: templateID, Name: name, DisplayOrder: in.DisplayOrder}
				if err := categories.Create(ctx, &category); err != nil {
					return fmt.Errorf("failed to create category: %w", err)
				}
				continue
			}
			if !known[*in.ID] {
				return fmt.Errorf("%w: %d", ErrCategoryNotFound, *in.ID)
			}
			if kept[*in.ID] {
				return fmt.Errorf("%w: %d", ErrDuplicateCategory, *in.ID)
			}
			kept[*in.ID] = true
			if err := categories.UpdateFields(ctx, *in.ID, name, in.DisplayOrder); err != nil {
				return fmt.Errorf("failed to update category %d: %w", *in.ID, err)
			}
		}

		var removed []uint
		for _, c := range existing {
			if !kept[c.ID] {
				removed = append(removed, c.ID)
			}
		}
		if len(removed) > 0 {
			if err := s.questionRepo.WithTx(tx).DeleteByCategoryIDs(ctx, removed); err != nil {
				return err
			}
			if err := categories.Delete(ctx, removed); err != nil {
				return err
			}
		}
		return templates.BumpVersion(ctx, templateID)
	})
	if err != nil {
		log.Error().Err(err).Uint("templateID", templateID).Msg("ReplaceCategories: transaction rolled back")
		return nil, err
	}

	s.metrics.TemplateVersionBumped(family)
	return s.GetTemplateByID(ctx, family, templateID)
}

func (s *templateService) loadTemplate(ctx context.Context, templates repository.TemplateRepository, family model.Family, id uint) (*model.FeedbackTemplate, error) {
	template, err := templates.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if template.Family != family {
		return nil, ErrTemplateNotFound
	}
	return template, nil
}

func cleanQuestions(texts []string) ([]string, error) {
	cleaned := make([]string, len(texts))
	for i, text := range texts {
		cleaned[i] = strings.TrimSpace(text)
		if cleaned[i] == "" {
			return nil, fmt.Errorf("%w: position %d", ErrBlankQuestion, i)
		}
	}
	return cleaned, nil
}
