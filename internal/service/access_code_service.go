package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/lshigami/ojtportal/config"
	"github.com/lshigami/ojtportal/internal/dto"
	"github.com/lshigami/ojtportal/internal/metrics"
	"github.com/lshigami/ojtportal/internal/model"
	"github.com/lshigami/ojtportal/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const defaultAccessCodeLength = 6

// AccessCodeService issues and redeems the emailed codes that let a company
// supervisor answer without an account.
type AccessCodeService interface {
	RequestCode(ctx context.Context, family model.Family, userID uint) error
	Verify(ctx context.Context, family model.Family, code string) (*dto.VerifyResponse, error)
}

type accessCodeService struct {
	accessCodeRepo repository.AccessCodeRepository
	ojtRepo        repository.OJTRepository
	templateRepo   repository.TemplateRepository
	mailer         Mailer
	metrics        *metrics.Recorder
	db             *gorm.DB
	codeLength     int
	frontendURL    string
}

func NewAccessCodeService(
	accessCodeRepo repository.AccessCodeRepository,
	ojtRepo repository.OJTRepository,
	templateRepo repository.TemplateRepository,
	mailer Mailer,
	recorder *metrics.Recorder,
	db *gorm.DB,
	cfg *config.Config,
) AccessCodeService {
	return &accessCodeService{
		accessCodeRepo: accessCodeRepo,
		ojtRepo:        ojtRepo,
		templateRepo:   templateRepo,
		mailer:         mailer,
		metrics:        recorder,
		db:             db,
		codeLength:     cfg.App.AccessCodeLength,
		frontendURL:    strings.TrimRight(cfg.App.FrontendBaseURL, "/"),
	}
}

// GenerateAccessCode returns length random bytes hex-encoded, so the code is
// twice as many characters long.
func GenerateAccessCode(length int) (string, error) {
	if length <= 0 {
		length = defaultAccessCodeLength
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate access code: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// RequestCode issues the one access code a student's supervisor gets for a
// family and emails it. The record is only kept if the email went out.
func (s *accessCodeService) RequestCode(ctx context.Context, family model.Family, userID uint) error {
	if !family.UsesAccessCode() {
		return ErrFamilyNotSupported
	}

	// 1. Resolve the student's OJT and its supervisor
	active, err := s.ojtRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveOJT
		}
		return err
	}
	ojt, err := s.ojtRepo.FindByIDWithContext(ctx, active.ID)
	if err != nil {
		return err
	}
	email := strings.TrimSpace(ojt.SupervisorEmail)
	if email == "" {
		return ErrNoSupervisorEmail
	}

	// 2. One code per OJT and family, ever
	exists, err := s.accessCodeRepo.ExistsForOJT(ctx, family, ojt.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailAlreadySent
	}

	code, err := GenerateAccessCode(s.codeLength)
	if err != nil {
		return err
	}

	// 3. Persist and send together
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := model.AccessCodeEmail{
			Family:     family,
			OJTID:      ojt.ID,
			Email:      email,
			AccessCode: code,
		}
		if err := s.accessCodeRepo.WithTx(tx).Create(ctx, &record); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailAlreadySent
			}
			return fmt.Errorf("failed to store access code: %w", err)
		}
		return s.mailer.SendAccessCode(ctx, AccessCodeMessage{
			To:          email,
			Supervisor:  ojt.SupervisorName,
			StudentName: ojt.Student.FullName(),
			Family:      family,
			Code:        code,
			Link:        s.formLink(family, code),
		})
	})
	if err != nil {
		log.Error().Err(err).Uint("ojtID", ojt.ID).Str("family", string(family)).Msg("RequestCode: access code not issued")
		return err
	}

	s.metrics.AccessCodeIssued(family)
	log.Info().Uint("ojtID", ojt.ID).Str("family", string(family)).Msg("Access code issued")
	return nil
}

// Verify redeems a code for viewing. A code stays valid after its response is
// submitted so the supervisor can still open the read-only form.
func (s *accessCodeService) Verify(ctx context.Context, family model.Family, code string) (*dto.VerifyResponse, error) {
	if !family.UsesAccessCode() {
		return nil, ErrFamilyNotSupported
	}
	record, err := findAccessCode(ctx, s.accessCodeRepo, family, code)
	if err != nil {
		return nil, err
	}

	template, err := s.templateRepo.FindActiveWithTree(ctx, family)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrNoActiveTemplate
	}

	ojt, err := s.ojtRepo.FindByIDWithContext(ctx, record.OJTID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOJTNotFound
		}
		return nil, err
	}

	summary := toOJTSummaryDTO(ojt)
	return &dto.VerifyResponse{
		Valid:             true,
		OJTID:             ojt.ID,
		OJT:               &summary,
		Template:          toTemplateDTO(template),
		FeedbackSubmitted: record.FeedbackSubmitted,
	}, nil
}

func findAccessCode(ctx context.Context, repo repository.AccessCodeRepository, family model.Family, code string) (*model.AccessCodeEmail, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalidAccessCode
	}
	record, err := repo.FindByCode(ctx, family, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidAccessCode
		}
		return nil, err
	}
	return record, nil
}

func (s *accessCodeService) formLink(family model.Family, code string) string {
	return s.frontendURL + "/" + string(family) + "?code=" + url.QueryEscape(code)
}
