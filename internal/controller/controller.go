package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/ojtportal/internal/dto"
	"github.com/lshigami/ojtportal/internal/model"
	"github.com/lshigami/ojtportal/internal/repository"
	"github.com/lshigami/ojtportal/internal/service"
	"github.com/rs/zerolog/log"
)

// MaxSignatureBytes caps the uploaded signature image.
const MaxSignatureBytes = 5 << 20

const contextFamily = "family"

var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrTemplateNotFound, http.StatusNotFound},
	{service.ErrCategoryNotFound, http.StatusNotFound},
	{service.ErrNoActiveTemplate, http.StatusNotFound},
	{service.ErrOJTNotFound, http.StatusNotFound},
	{service.ErrNoActiveOJT, http.StatusNotFound},
	{service.ErrResponseNotFound, http.StatusNotFound},
	{service.ErrAlreadyResponded, http.StatusConflict},
	{service.ErrTemplateChanged, http.StatusConflict},
	{service.ErrSignatureRequired, http.StatusBadRequest},
	{service.ErrAnswersRequired, http.StatusBadRequest},
	{service.ErrInvalidAnswer, http.StatusBadRequest},
	{service.ErrUnknownQuestion, http.StatusBadRequest},
	{service.ErrBlankQuestion, http.StatusBadRequest},
	{service.ErrBlankCategoryName, http.StatusBadRequest},
	{service.ErrDuplicateCategory, http.StatusBadRequest},
	{service.ErrFamilyHasNoCategories, http.StatusBadRequest},
	{service.ErrFamilyNotSupported, http.StatusBadRequest},
	{service.ErrInvalidAccessCode, http.StatusBadRequest},
	{service.ErrAccessCodeMismatch, http.StatusBadRequest},
	{service.ErrEmailAlreadySent, http.StatusBadRequest},
	{service.ErrNoSupervisorEmail, http.StatusBadRequest},
}

// StatusFor maps a service error to its HTTP status and client message.
// Unknown errors are internal and never leak their text.
func StatusFor(err error) (int, dto.ErrorResponse) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			resp := dto.ErrorResponse{Message: e.err.Error()}
			if err.Error() != e.err.Error() {
				resp.Details = []string{err.Error()}
			}
			return e.status, resp
		}
	}
	return http.StatusInternalServerError, dto.ErrorResponse{Message: "Something went wrong"}
}

// RespondError writes the error body for err and logs internal failures.
func RespondError(ctx *gin.Context, err error) {
	status, body := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("method", ctx.Request.Method).Str("path", ctx.FullPath()).Msg("Unhandled service error")
	}
	ctx.JSON(status, body)
}

func BadRequest(ctx *gin.Context, message string, details ...string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: message, Details: details})
}

// ParseID reads a numeric path parameter, answering 400 when it is not one.
func ParseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		BadRequest(ctx, fmt.Sprintf("Invalid %s", name))
		return 0, false
	}
	return uint(id), true
}

// WithFamily pins the feedback family served by a route group.
func WithFamily(family model.Family) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(contextFamily, family)
		ctx.Next()
	}
}

func Family(ctx *gin.Context) model.Family {
	family, _ := ctx.Get(contextFamily)
	f, _ := family.(model.Family)
	return f
}

// ParseOJTFilter reads the optional departmentId and programId query params.
func ParseOJTFilter(ctx *gin.Context) (repository.OJTFilter, bool) {
	var filter repository.OJTFilter
	for key, dst := range map[string]**uint{"departmentId": &filter.DepartmentID, "programId": &filter.ProgramID} {
		raw := ctx.Query(key)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			BadRequest(ctx, fmt.Sprintf("Invalid %s", key))
			return filter, false
		}
		v := uint(id)
		*dst = &v
	}
	return filter, true
}

// ReadSignature opens the "signature" multipart file. A missing file yields a
// nil result so the service can report it alongside other validation.
func ReadSignature(ctx *gin.Context) (*service.SignatureFile, multipart.File, error) {
	header, err := ctx.FormFile("signature")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	if header.Size > MaxSignatureBytes {
		return nil, nil, fmt.Errorf("signature exceeds %d bytes", MaxSignatureBytes)
	}
	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, nil, fmt.Errorf("signature must be an image, got %s", ct)
	}
	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return &service.SignatureFile{Reader: file, Filename: header.Filename, Size: header.Size}, file, nil
}

// BindMultipartData decodes the JSON "data" form field into payload and runs
// its validate tags.
func BindMultipartData(ctx *gin.Context, payload interface{}) error {
	raw := ctx.PostForm("data")
	if strings.TrimSpace(raw) == "" {
		return errors.New("data field is required")
	}
	if err := json.Unmarshal([]byte(raw), payload); err != nil {
		return fmt.Errorf("data is not valid JSON: %w", err)
	}
	return dto.Validate(payload)
}
