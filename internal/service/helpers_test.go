package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/lshigami/ojtportal/config"
	"github.com/lshigami/ojtportal/database"
	"github.com/lshigami/ojtportal/internal/dto"
	"github.com/lshigami/ojtportal/internal/metrics"
	"github.com/lshigami/ojtportal/internal/model"
	"github.com/lshigami/ojtportal/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a migrated in-memory database. One connection keeps every
// query on the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

type fakeStorage struct {
	mu      sync.Mutex
	uploads []string
	err     error
}

func (f *fakeStorage) Upload(_ context.Context, file *SignatureFile, folder string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if _, err := io.ReadAll(file.Reader); err != nil {
		return "", err
	}
	url := fmt.Sprintf("https://cdn.test/%s/%s", folder, file.Filename)
	f.uploads = append(f.uploads, url)
	return url, nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []AccessCodeMessage
	err  error
}

func (f *fakeMailer) SendAccessCode(_ context.Context, msg AccessCodeMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fixture struct {
	db          *gorm.DB
	templates   TemplateService
	submissions SubmissionService
	accessCodes AccessCodeService
	reports     ReportService
	storage     *fakeStorage
	mailer      *fakeMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{App: config.App{FrontendBaseURL: "http://portal.test/", AccessCodeLength: 6}}
	recorder := metrics.NewRecorder()

	templateRepo := repository.NewTemplateRepository(db)
	responseRepo := repository.NewResponseRepository(db)
	accessCodeRepo := repository.NewAccessCodeRepository(db)
	ojtRepo := repository.NewOJTRepository(db)

	f := &fixture{db: db, storage: &fakeStorage{}, mailer: &fakeMailer{}}
	f.templates = NewTemplateService(templateRepo, repository.NewCategoryRepository(db), repository.NewQuestionRepository(db), recorder, db)
	f.submissions = NewSubmissionService(templateRepo, responseRepo, accessCodeRepo, repository.NewSubmissionRepository(db),
		ojtRepo, NewRatingService(), f.storage, recorder, db)
	f.accessCodes = NewAccessCodeService(accessCodeRepo, ojtRepo, templateRepo, f.mailer, recorder, db, cfg)
	f.reports = NewReportService(responseRepo, ojtRepo)
	return f
}

type ojtSeed struct {
	id         uint
	userID     uint
	department string
	program    string
	supervisor string
}

// seedOJT creates an OJT application together with its student and class
// hierarchy. Departments and programs are reused by name.
func seedOJT(t *testing.T, db *gorm.DB, s ojtSeed) *model.OJTApplication {
	t.Helper()
	if s.department == "" {
		s.department = "Computing"
	}
	if s.program == "" {
		s.program = "BSIT"
	}
	department := model.Department{Name: s.department}
	require.NoError(t, db.Where(model.Department{Name: s.department}).FirstOrCreate(&department).Error)
	program := model.Program{Name: s.program, DepartmentID: department.ID}
	require.NoError(t, db.Where(model.Program{Name: s.program}).FirstOrCreate(&program).Error)
	class := model.Class{Name: s.program + " 4-A", ProgramID: program.ID}
	require.NoError(t, db.Where(model.Class{Name: class.Name}).FirstOrCreate(&class).Error)
	company := model.Company{Name: "Acme"}
	require.NoError(t, db.Where(model.Company{Name: "Acme"}).FirstOrCreate(&company).Error)

	student := model.Student{
		UserID:        s.userID,
		StudentNumber: fmt.Sprintf("2021-%04d", s.userID),
		FirstName:     "Student",
		LastName:      fmt.Sprint(s.userID),
	}
	require.NoError(t, db.Create(&student).Error)

	ojt := model.OJTApplication{
		ID:              s.id,
		StudentID:       student.ID,
		ClassID:         class.ID,
		CompanyID:       &company.ID,
		Status:          model.OJTStatusPostOJT,
		IsActive:        true,
		SupervisorName:  "Carla Santos",
		SupervisorEmail: s.supervisor,
	}
	require.NoError(t, db.Create(&ojt).Error)
	return &ojt
}

func signature(name string) *SignatureFile {
	return &SignatureFile{Reader: strings.NewReader("png-bytes"), Filename: name, Size: 9}
}

// activeTemplateWith creates and activates a flat template with the given questions.
func activeTemplateWith(t *testing.T, f *fixture, family model.Family, questions ...string) (uint, []uint) {
	t.Helper()
	ctx := context.Background()
	created, err := f.templates.CreateTemplate(ctx, family, dto.CreateTemplateRequest{})
	require.NoError(t, err)
	require.NoError(t, f.templates.SetActive(ctx, family, created.ID, true))
	tree, err := f.templates.ReplaceQuestions(ctx, family, created.ID, questions)
	require.NoError(t, err)
	ids := make([]uint, len(tree.Questions))
	for i, q := range tree.Questions {
		ids[i] = q.ID
	}
	return created.ID, ids
}
