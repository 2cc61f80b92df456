package service

import (
	"context"

	"github.com/lshigami/ojtportal/internal/dto"
	"github.com/lshigami/ojtportal/internal/model"
	"github.com/lshigami/ojtportal/internal/repository"
	"github.com/rs/zerolog/log"
)

// ReportService aggregates stored snapshots for coordinators. It only reads.
type ReportService interface {
	ListResponses(ctx context.Context, family model.Family, filter repository.OJTFilter) ([]dto.ResponseDetailDTO, error)
	CountUnanswered(ctx context.Context, family model.Family, filter repository.OJTFilter) (*dto.UnansweredDTO, error)
}

type reportService struct {
	responseRepo repository.ResponseRepository
	ojtRepo      repository.OJTRepository
}

func NewReportService(responseRepo repository.ResponseRepository, ojtRepo repository.OJTRepository) ReportService {
	return &reportService{responseRepo: responseRepo, ojtRepo: ojtRepo}
}

func (s *reportService) ListResponses(ctx context.Context, family model.Family, filter repository.OJTFilter) ([]dto.ResponseDetailDTO, error) {
	responses, err := s.responseRepo.FindAllWithDetails(ctx, family, filter)
	if err != nil {
		log.Error().Err(err).Str("family", string(family)).Msg("ListResponses: query failed")
		return nil, err
	}
	result := make([]dto.ResponseDetailDTO, 0, len(responses))
	for i := range responses {
		result = append(result, *toResponseDetailDTO(&responses[i]))
	}
	return result, nil
}

// CountUnanswered lists OJT applications that have no snapshot in the family.
func (s *reportService) CountUnanswered(ctx context.Context, family model.Family, filter repository.OJTFilter) (*dto.UnansweredDTO, error) {
	ojts, err := s.ojtRepo.FindAllWithContext(ctx, filter)
	if err != nil {
		return nil, err
	}
	responded, err := s.responseRepo.RespondedOJTIDs(ctx, family)
	if err != nil {
		return nil, err
	}
	answered := make(map[uint]struct{}, len(responded))
	for _, id := range responded {
		answered[id] = struct{}{}
	}

	result := &dto.UnansweredDTO{UnansweredOjts: []dto.OJTSummaryDTO{}}
	for i := range ojts {
		if _, ok := answered[ojts[i].ID]; ok {
			continue
		}
		result.UnansweredOjts = append(result.UnansweredOjts, toOJTSummaryDTO(&ojts[i]))
	}
	result.Count = len(result.UnansweredOjts)
	return result, nil
}
