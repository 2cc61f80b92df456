package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/ojtportal/internal/dto"
	"github.com/lshigami/ojtportal/internal/metrics"
	"github.com/lshigami/ojtportal/internal/model"
	"github.com/lshigami/ojtportal/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const submissionStatusSubmitted = "submitted"

// StudentFeedbackInput is a logged-in student's evaluation of their OJT.
type StudentFeedbackInput struct {
	ProblemsMet   string
	OtherConcerns string
	Feedback      map[uint]string
	Signature     *SignatureFile
}

// AccessCodeSubmissionInput is a supervisor's answer redeemed through an
// access code. Feedback is used by supervisor feedback, Ratings by appraisal.
type AccessCodeSubmissionInput struct {
	Code      string
	OJTID     *uint
	Feedback  map[uint]string
	Ratings   map[uint]int
	Comments  string
	Signature *SignatureFile
}

// SubmissionService stores response snapshots. A snapshot records the
// template version it was answered against and is never edited afterwards.
type SubmissionService interface {
	SubmitStudentFeedback(ctx context.Context, userID uint, in StudentFeedbackInput) (*dto.ResponseDetailDTO, error)
	SubmitWithAccessCode(ctx context.Context, family model.Family, in AccessCodeSubmissionInput) (*dto.ResponseDetailDTO, error)
	GetResponse(ctx context.Context, family model.Family, id uint) (*dto.ResponseDetailDTO, error)
	GetMyStudentFeedback(ctx context.Context, userID uint) (*dto.ResponseDetailDTO, error)
}

type submissionService struct {
	templateRepo   repository.TemplateRepository
	responseRepo   repository.ResponseRepository
	accessCodeRepo repository.AccessCodeRepository
	submissionRepo repository.SubmissionRepository
	ojtRepo        repository.OJTRepository
	ratings        RatingService
	storage        SignatureStorage
	metrics        *metrics.Recorder
	db             *gorm.DB
}

func NewSubmissionService(
	templateRepo repository.TemplateRepository,
	responseRepo repository.ResponseRepository,
	accessCodeRepo repository.AccessCodeRepository,
	submissionRepo repository.SubmissionRepository,
	ojtRepo repository.OJTRepository,
	ratings RatingService,
	storage SignatureStorage,
	recorder *metrics.Recorder,
	db *gorm.DB,
) SubmissionService {
	return &submissionService{
		templateRepo:   templateRepo,
		responseRepo:   responseRepo,
		accessCodeRepo: accessCodeRepo,
		submissionRepo: submissionRepo,
		ojtRepo:        ojtRepo,
		ratings:        ratings,
		storage:        storage,
		metrics:        recorder,
		db:             db,
	}
}

func (s *submissionService) SubmitStudentFeedback(ctx context.Context, userID uint, in StudentFeedbackInput) (*dto.ResponseDetailDTO, error) {
	family := model.FamilyStudentFeedback

	// 1. Resolve OJT and the template being answered
	ojt, err := s.ojtRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveOJT
		}
		return nil, err
	}
	template, err := s.activeTemplate(ctx, family)
	if err != nil {
		return nil, err
	}

	// 2. Validate the payload against that template
	if in.Signature == nil {
		return nil, ErrSignatureRequired
	}
	if err := s.ratings.ValidateLikert(in.Feedback); err != nil {
		return nil, err
	}
	answers, err := likertAnswers(template, in.Feedback)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNotResponded(ctx, ojt.ID, template.ID); err != nil {
		return nil, err
	}

	// 3. Upload, then store the snapshot
	signature, err := s.storage.Upload(ctx, in.Signature, fmt.Sprintf("%s/%d", family, ojt.ID))
	if err != nil {
		log.Error().Err(err).Uint("ojtID", ojt.ID).Msg("SubmitStudentFeedback: signature upload failed")
		return nil, err
	}
	response := model.FeedbackResponse{
		Family:          family,
		OJTID:           ojt.ID,
		TemplateID:      template.ID,
		TemplateVersion: template.Version,
		ResponseDate:    time.Now(),
		ProblemsMet:     in.ProblemsMet,
		OtherConcerns:   in.OtherConcerns,
		Signature:       signature,
		Answers:         answers,
	}
	if err := s.store(ctx, &response, nil); err != nil {
		return nil, err
	}
	return s.GetResponse(ctx, family, response.ID)
}

// SubmitWithAccessCode stores a supervisor feedback or appraisal response.
// The OJT is always taken from the code; a client-supplied id must agree.
func (s *submissionService) SubmitWithAccessCode(ctx context.Context, family model.Family, in AccessCodeSubmissionInput) (*dto.ResponseDetailDTO, error) {
	if !family.UsesAccessCode() {
		return nil, ErrFamilyNotSupported
	}

	// 1. Redeem the code
	code, err := findAccessCode(ctx, s.accessCodeRepo, family, in.Code)
	if err != nil {
		return nil, err
	}
	if in.OJTID != nil && *in.OJTID != code.OJTID {
		return nil, ErrAccessCodeMismatch
	}
	if code.FeedbackSubmitted {
		return nil, ErrAlreadyResponded
	}
	ojt, err := s.ojtRepo.FindByIDWithContext(ctx, code.OJTID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOJTNotFound
		}
		return nil, err
	}
	template, err := s.activeTemplate(ctx, family)
	if err != nil {
		return nil, err
	}

	// 2. Validate
	if in.Signature == nil {
		return nil, ErrSignatureRequired
	}
	response := model.FeedbackResponse{
		Family:            family,
		OJTID:             ojt.ID,
		TemplateID:        template.ID,
		TemplateVersion:   template.Version,
		Comments:          in.Comments,
		AccessCodeEmailID: &code.ID,
	}
	if family.RatesNumerically() {
		if err := s.ratings.ValidateRatings(in.Ratings); err != nil {
			return nil, err
		}
		if response.Answers, err = ratingAnswers(template, in.Ratings); err != nil {
			return nil, err
		}
		total := s.ratings.TotalPoints(in.Ratings)
		response.TotalPoints = &total
	} else {
		if err := s.ratings.ValidateLikert(in.Feedback); err != nil {
			return nil, err
		}
		if response.Answers, err = likertAnswers(template, in.Feedback); err != nil {
			return nil, err
		}
	}
	if err := s.ensureNotResponded(ctx, ojt.ID, template.ID); err != nil {
		return nil, err
	}

	// 3. Upload and store
	signature, err := s.storage.Upload(ctx, in.Signature, fmt.Sprintf("%s/%d", family, ojt.ID))
	if err != nil {
		log.Error().Err(err).Uint("ojtID", ojt.ID).Str("family", string(family)).Msg("SubmitWithAccessCode: signature upload failed")
		return nil, err
	}
	response.Signature = signature
	response.ResponseDate = time.Now()
	if err := s.store(ctx, &response, code); err != nil {
		return nil, err
	}
	return s.GetResponse(ctx, family, response.ID)
}

func (s *submissionService) GetResponse(ctx context.Context, family model.Family, id uint) (*dto.ResponseDetailDTO, error) {
	response, err := s.responseRepo.FindByIDWithDetails(ctx, family, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResponseNotFound
		}
		return nil, err
	}
	return toResponseDetailDTO(response), nil
}

func (s *submissionService) GetMyStudentFeedback(ctx context.Context, userID uint) (*dto.ResponseDetailDTO, error) {
	ojt, err := s.ojtRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveOJT
		}
		return nil, err
	}
	response, err := s.responseRepo.FindLatestByOJT(ctx, model.FamilyStudentFeedback, ojt.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResponseNotFound
		}
		return nil, err
	}
	return toResponseDetailDTO(response), nil
}

// store inserts the snapshot and, for access-code families, claims the code
// and records the companion submission row. The template must still be at
// the version the answers were validated against when the transaction ends.
func (s *submissionService) store(ctx context.Context, response *model.FeedbackResponse, code *model.AccessCodeEmail) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.responseRepo.WithTx(tx).Create(ctx, response); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyResponded
			}
			return fmt.Errorf("failed to store response: %w", err)
		}

		if code != nil {
			claimed, err := s.accessCodeRepo.WithTx(tx).MarkSubmitted(ctx, code.ID)
			if err != nil {
				return err
			}
			if !claimed {
				return ErrAlreadyResponded
			}
			family := response.Family
			submission := model.StudentSubmission{
				OJTID:              response.OJTID,
				Phase:              model.OJTStatusPostOJT,
				Requirement:        family.Requirement(),
				Status:             submissionStatusSubmitted,
				FeedbackFamily:     &family,
				FeedbackResponseID: &response.ID,
				SubmittedAt:        response.ResponseDate,
			}
			if err := s.submissionRepo.WithTx(tx).Create(ctx, &submission); err != nil {
				return fmt.Errorf("failed to record submission: %w", err)
			}
		}

		current, err := s.templateRepo.WithTx(tx).HasVersion(ctx, response.TemplateID, response.TemplateVersion)
		if err != nil {
			return err
		}
		if !current {
			return ErrTemplateChanged
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("ojtID", response.OJTID).Str("family", string(response.Family)).Msg("Response snapshot not stored")
		return err
	}

	s.metrics.ResponseStored(response.Family)
	log.Info().Uint("responseID", response.ID).Uint("ojtID", response.OJTID).
		Uint("templateID", response.TemplateID).Int("version", response.TemplateVersion).
		Msg("Response snapshot stored")
	return nil
}

func (s *submissionService) activeTemplate(ctx context.Context, family model.Family) (*model.FeedbackTemplate, error) {
	template, err := s.templateRepo.FindActiveWithTree(ctx, family)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrNoActiveTemplate
	}
	return template, nil
}

func (s *submissionService) ensureNotResponded(ctx context.Context, ojtID, templateID uint) error {
	exists, err := s.responseRepo.ExistsForOJTAndTemplate(ctx, ojtID, templateID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyResponded
	}
	return nil
}

// orderedQuestionIDs lists the template's questions in display order.
func orderedQuestionIDs(template *model.FeedbackTemplate) []uint {
	var ids []uint
	for _, q := range template.Questions {
		ids = append(ids, q.ID)
	}
	for _, c := range template.Categories {
		for _, q := range c.Questions {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

func checkQuestionIDs[V any](template *model.FeedbackTemplate, values map[uint]V) error {
	known := template.QuestionIDs()
	for id := range values {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: %d", ErrUnknownQuestion, id)
		}
	}
	return nil
}

func likertAnswers(template *model.FeedbackTemplate, feedback map[uint]string) ([]model.ResponseAnswer, error) {
	if err := checkQuestionIDs(template, feedback); err != nil {
		return nil, err
	}
	answers := make([]model.ResponseAnswer, 0, len(feedback))
	for _, id := range orderedQuestionIDs(template) {
		value, ok := feedback[id]
		if !ok {
			continue
		}
		answers = append(answers, model.ResponseAnswer{QuestionID: id, ResponseValue: &value})
	}
	return answers, nil
}

func ratingAnswers(template *model.FeedbackTemplate, ratings map[uint]int) ([]model.ResponseAnswer, error) {
	if err := checkQuestionIDs(template, ratings); err != nil {
		return nil, err
	}
	answers := make([]model.ResponseAnswer, 0, len(ratings))
	for _, id := range orderedQuestionIDs(template) {
		rating, ok := ratings[id]
		if !ok {
			continue
		}
		answers = append(answers, model.ResponseAnswer{QuestionID: id, Rating: &rating})
	}
	return answers, nil
}
