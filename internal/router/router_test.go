package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/ojtportal/config"
	"github.com/lshigami/ojtportal/database"
	"github.com/lshigami/ojtportal/internal/controller/admin"
	"github.com/lshigami/ojtportal/internal/controller/student"
	"github.com/lshigami/ojtportal/internal/controller/supervisor"
	"github.com/lshigami/ojtportal/internal/dto"
	"github.com/lshigami/ojtportal/internal/metrics"
	"github.com/lshigami/ojtportal/internal/middleware"
	"github.com/lshigami/ojtportal/internal/model"
	"github.com/lshigami/ojtportal/internal/repository"
	"github.com/lshigami/ojtportal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type memoryStorage struct{}

func (memoryStorage) Upload(_ context.Context, file *service.SignatureFile, folder string) (string, error) {
	return "https://cdn.test/" + folder + "/" + file.Filename, nil
}

type outbox struct{ sent []service.AccessCodeMessage }

func (o *outbox) SendAccessCode(_ context.Context, msg service.AccessCodeMessage) error {
	o.sent = append(o.sent, msg)
	return nil
}

type apiTest struct {
	t      *testing.T
	engine *gin.Engine
	db     *gorm.DB
	auth   *middleware.Authenticator
	outbox *outbox
}

func newAPITest(t *testing.T) *apiTest {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true, Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		App:  config.App{FrontendBaseURL: "http://portal.test", AccessCodeLength: 6},
		Auth: config.Auth{JWTSecret: "router-test"},
	}
	recorder := metrics.NewRecorder()
	templateRepo := repository.NewTemplateRepository(db)
	responseRepo := repository.NewResponseRepository(db)
	accessCodeRepo := repository.NewAccessCodeRepository(db)
	ojtRepo := repository.NewOJTRepository(db)
	box := &outbox{}

	templates := service.NewTemplateService(templateRepo, repository.NewCategoryRepository(db), repository.NewQuestionRepository(db), recorder, db)
	submissions := service.NewSubmissionService(templateRepo, responseRepo, accessCodeRepo, repository.NewSubmissionRepository(db),
		ojtRepo, service.NewRatingService(), memoryStorage{}, recorder, db)
	accessCodes := service.NewAccessCodeService(accessCodeRepo, ojtRepo, templateRepo, box, recorder, db, cfg)
	reports := service.NewReportService(responseRepo, ojtRepo)

	auth := middleware.NewAuthenticator(cfg)
	engine := gin.New()
	RegisterRoutes(engine, db, auth, recorder,
		admin.NewTemplateController(templates),
		admin.NewReportController(reports, submissions),
		student.NewFeedbackController(submissions, accessCodes),
		supervisor.NewAccessCodeController(accessCodes, submissions),
	)
	return &apiTest{t: t, engine: engine, db: db, auth: auth, outbox: box}
}

func (a *apiTest) token(userID uint, role string) string {
	token, err := a.auth.IssueToken(userID, role, time.Hour)
	require.NoError(a.t, err)
	return token
}

func (a *apiTest) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func (a *apiTest) multipart(path, token string, fields map[string]string, withSignature bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(a.t, w.WriteField(k, v))
	}
	if withSignature {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="signature"; filename="sig.png"`)
		h.Set("Content-Type", "image/png")
		part, err := w.CreatePart(h)
		require.NoError(a.t, err)
		_, err = part.Write([]byte("\x89PNG"))
		require.NoError(a.t, err)
	}
	require.NoError(a.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (a *apiTest) seedOJT(userID uint, supervisorEmail string) model.OJTApplication {
	department := model.Department{Name: "Computing"}
	require.NoError(a.t, a.db.FirstOrCreate(&department, model.Department{Name: "Computing"}).Error)
	program := model.Program{Name: "BSIT", DepartmentID: department.ID}
	require.NoError(a.t, a.db.FirstOrCreate(&program, model.Program{Name: "BSIT"}).Error)
	class := model.Class{Name: "BSIT 4-A", ProgramID: program.ID}
	require.NoError(a.t, a.db.FirstOrCreate(&class, model.Class{Name: "BSIT 4-A"}).Error)
	s := model.Student{UserID: userID, StudentNumber: fmt.Sprint(userID), FirstName: "Ana", LastName: "Reyes"}
	require.NoError(a.t, a.db.Create(&s).Error)
	ojt := model.OJTApplication{StudentID: s.ID, ClassID: class.ID, Status: model.OJTStatusPostOJT, IsActive: true, SupervisorEmail: supervisorEmail}
	require.NoError(a.t, a.db.Create(&ojt).Error)
	return ojt
}

func TestStudentFeedbackOverHTTP(t *testing.T) {
	api := newAPITest(t)
	adminToken := api.token(1, middleware.RoleAdmin)
	studentToken := api.token(10, middleware.RoleStudent)
	api.seedOJT(10, "")
	api.seedOJT(11, "")

	rec := api.do(http.MethodPost, "/api/v1/student-feedback", adminToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[dto.MessageResponse](t, rec)
	require.NotNil(t, created.ID)
	base := fmt.Sprintf("/api/v1/student-feedback/%d", *created.ID)

	rec = api.do(http.MethodPatch, base+"/questions", adminToken, dto.ReplaceQuestionsRequest{Questions: []string{"Q1", "Q2", "Q3"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tree := decode[dto.TemplateDTO](t, rec)
	assert.Equal(t, 2, tree.Version)

	rec = api.do(http.MethodGet, "/api/v1/student-feedback", studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	active := decode[dto.TemplateDTO](t, rec)
	require.Len(t, active.Questions, 3)

	feedback := map[uint]string{active.Questions[0].ID: "SA", active.Questions[1].ID: "A", active.Questions[2].ID: "N"}
	data, err := json.Marshal(dto.StudentFeedbackPayload{Feedback: feedback})
	require.NoError(t, err)

	rec = api.multipart("/api/v1/student-feedback/response", studentToken, map[string]string{"data": string(data)}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Signature is required", decode[dto.ErrorResponse](t, rec).Message)

	rec = api.multipart("/api/v1/student-feedback/response", studentToken, map[string]string{"data": `{"feedback":{}}`}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.multipart("/api/v1/student-feedback/response", studentToken, map[string]string{"data": string(data)}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.multipart("/api/v1/student-feedback/response", studentToken, map[string]string{"data": string(data)}, true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodPatch, base+"/questions", adminToken, dto.ReplaceQuestionsRequest{Questions: []string{"Changed"}})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/student-feedback/response", studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[dto.ResponseDetailDTO](t, rec)
	assert.Equal(t, 2, mine.TemplateVersion)
	require.Len(t, mine.Answers, 3)
	assert.Equal(t, "Q1", *mine.Answers[0].Question)

	rec = api.do(http.MethodGet, "/api/v1/student-feedback/response/unanswered", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[dto.UnansweredDTO](t, rec).Count)

	rec = api.do(http.MethodGet, fmt.Sprintf("/api/v1/student-feedback/response/%d", mine.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(http.MethodGet, fmt.Sprintf("/api/v1/appraisal/response/%d", mine.ID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAccessCodeOverHTTP(t *testing.T) {
	api := newAPITest(t)
	adminToken := api.token(1, middleware.RoleAdmin)
	studentToken := api.token(10, middleware.RoleStudent)
	ojt := api.seedOJT(10, "boss@acme.test")

	rec := api.do(http.MethodPost, "/api/v1/supervisor-feedback/verify", "", dto.VerifyCodeRequest{Code: ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	invalid := decode[dto.VerifyResponse](t, rec)
	assert.False(t, invalid.Valid)
	assert.Equal(t, "Invalid access code", invalid.Message)

	rec = api.do(http.MethodPost, "/api/v1/supervisor-feedback", adminToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := *decode[dto.MessageResponse](t, rec).ID
	base := fmt.Sprintf("/api/v1/supervisor-feedback/%d", id)
	rec = api.do(http.MethodPatch, base+"/questions", adminToken, dto.ReplaceQuestionsRequest{Questions: []string{"Prepared"}})
	require.Equal(t, http.StatusOK, rec.Code)
	questionID := decode[dto.TemplateDTO](t, rec).Questions[0].ID
	active := true
	rec = api.do(http.MethodPatch, base, adminToken, dto.PatchTemplateRequest{IsActive: &active})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/supervisor-feedback/email", studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = api.do(http.MethodPost, "/api/v1/supervisor-feedback/email", studentToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already sent", decode[dto.ErrorResponse](t, rec).Message)
	require.Len(t, api.outbox.sent, 1)
	code := api.outbox.sent[0].Code

	rec = api.do(http.MethodPost, "/api/v1/supervisor-feedback/verify", "", dto.VerifyCodeRequest{Code: code})
	require.Equal(t, http.StatusOK, rec.Code)
	verified := decode[dto.VerifyResponse](t, rec)
	assert.True(t, verified.Valid)
	assert.Equal(t, ojt.ID, verified.OJTID)
	assert.False(t, verified.FeedbackSubmitted)

	data := fmt.Sprintf(`{"feedback":{"%d":"SA"},"comments":"Good"}`, questionID)
	rec = api.multipart("/api/v1/supervisor-feedback/response", "", map[string]string{"code": code, "ojtId": "999", "data": data}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.multipart("/api/v1/supervisor-feedback/response", "", map[string]string{"code": code, "ojtId": fmt.Sprint(ojt.ID), "data": data}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/v1/supervisor-feedback/verify", "", dto.VerifyCodeRequest{Code: code})
	require.Equal(t, http.StatusOK, rec.Code)
	verified = decode[dto.VerifyResponse](t, rec)
	assert.True(t, verified.Valid)
	assert.True(t, verified.FeedbackSubmitted)

	rec = api.multipart("/api/v1/supervisor-feedback/response", "", map[string]string{"code": code, "data": data}, true)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouteGuards(t *testing.T) {
	api := newAPITest(t)
	studentToken := api.token(10, middleware.RoleStudent)
	adminToken := api.token(1, middleware.RoleAdmin)

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/v1/appraisal", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/api/v1/appraisal", studentToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/api/v1/appraisal/email", adminToken, nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/v1/appraisal/NaN", adminToken, nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/v1/appraisal/response/all?departmentId=x", adminToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPatch, "/api/v1/student-feedback/1/categories", adminToken, nil).Code)

	rec := api.do(http.MethodGet, "/api/v1/appraisal", studentToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))

	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/healthz", "", nil).Code)
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/metrics", "", nil).Code)
}
