package service

import (
	"fmt"

	"github.com/lshigami/ojtportal/internal/dto"
)

// Appraisal ratings are whole points on a 1..5 scale.
const (
	MinAppraisalRating = 1
	MaxAppraisalRating = 5
)

// RatingService validates answer values and computes appraisal totals.
type RatingService interface {
	ValidateLikert(feedback map[uint]string) error
	ValidateRatings(ratings map[uint]int) error
	TotalPoints(ratings map[uint]int) int
}

type ratingService struct{}

func NewRatingService() RatingService {
	return &ratingService{}
}

func (s *ratingService) ValidateLikert(feedback map[uint]string) error {
	if len(feedback) == 0 {
		return ErrAnswersRequired
	}
	for questionID, value := range feedback {
		if !dto.IsLikert(value) {
			return fmt.Errorf("%w: question %d has %q, expected one of SA, A, N, D, SD", ErrInvalidAnswer, questionID, value)
		}
	}
	return nil
}

func (s *ratingService) ValidateRatings(ratings map[uint]int) error {
	if len(ratings) == 0 {
		return ErrAnswersRequired
	}
	for questionID, rating := range ratings {
		if rating < MinAppraisalRating || rating > MaxAppraisalRating {
			return fmt.Errorf("%w: question %d rated %d, expected %d-%d", ErrInvalidAnswer, questionID, rating, MinAppraisalRating, MaxAppraisalRating)
		}
	}
	return nil
}

// TotalPoints is stored once at submission and never recomputed.
func (s *ratingService) TotalPoints(ratings map[uint]int) int {
	total := 0
	for _, rating := range ratings {
		total += rating
	}
	return total
}
