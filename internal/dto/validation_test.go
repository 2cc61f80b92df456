package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload interface{}
		valid   bool
	}{
		{"student feedback", &StudentFeedbackPayload{Feedback: map[uint]string{1: "SA", 2: "SD"}}, true},
		{"student feedback empty", &StudentFeedbackPayload{Feedback: map[uint]string{}}, false},
		{"student feedback missing", &StudentFeedbackPayload{}, false},
		{"student feedback bad value", &StudentFeedbackPayload{Feedback: map[uint]string{1: "Agree"}}, false},
		{"supervisor feedback", &SupervisorFeedbackPayload{Feedback: map[uint]string{3: "N"}}, true},
		{"appraisal", &AppraisalPayload{Ratings: map[uint]int{1: 1, 2: 5}}, true},
		{"appraisal out of range", &AppraisalPayload{Ratings: map[uint]int{1: 6}}, false},
		{"appraisal zero", &AppraisalPayload{Ratings: map[uint]int{1: 0}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.payload)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.NotEmpty(t, ValidationDetails(err))
		})
	}
}

func TestIsLikert(t *testing.T) {
	for _, v := range []string{"SA", "A", "N", "D", "SD"} {
		assert.True(t, IsLikert(v), v)
	}
	for _, v := range []string{"", "sa", "Strongly Agree", "X"} {
		assert.False(t, IsLikert(v), v)
	}
}
