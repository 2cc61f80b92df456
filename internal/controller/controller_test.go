package controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/ojtportal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
		details bool
	}{
		{service.ErrNoActiveTemplate, http.StatusNotFound, "No active template found", false},
		{service.ErrEmailAlreadySent, http.StatusBadRequest, "Email already sent", false},
		{service.ErrInvalidAccessCode, http.StatusBadRequest, "Invalid access code", false},
		{fmt.Errorf("%w: question 3", service.ErrInvalidAnswer), http.StatusBadRequest, service.ErrInvalidAnswer.Error(), true},
		{service.ErrAlreadyResponded, http.StatusConflict, service.ErrAlreadyResponded.Error(), false},
		{service.ErrTemplateChanged, http.StatusConflict, service.ErrTemplateChanged.Error(), false},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "Something went wrong", false},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, body := StatusFor(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, tt.details, len(body.Details) > 0)
		})
	}
}

func TestParseHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(rec)
		ctx.Params = gin.Params{{Key: "id", Value: "NaN"}}
		_, ok := ParseID(ctx, "id")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		ctx, _ = gin.CreateTestContext(httptest.NewRecorder())
		ctx.Params = gin.Params{{Key: "id", Value: "12"}}
		id, ok := ParseID(ctx, "id")
		require.True(t, ok)
		assert.Equal(t, uint(12), id)
	})

	t.Run("filter", func(t *testing.T) {
		ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
		ctx.Request = httptest.NewRequest(http.MethodGet, "/x?departmentId=3", nil)
		filter, ok := ParseOJTFilter(ctx)
		require.True(t, ok)
		require.NotNil(t, filter.DepartmentID)
		assert.Equal(t, uint(3), *filter.DepartmentID)
		assert.Nil(t, filter.ProgramID)

		rec := httptest.NewRecorder()
		ctx, _ = gin.CreateTestContext(rec)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/x?programId=abc", nil)
		_, ok = ParseOJTFilter(ctx)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
