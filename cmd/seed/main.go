package main

import (
	"context"
	"time"

	"github.com/lshigami/ojtportal/config"
	"github.com/lshigami/ojtportal/database"
	"github.com/lshigami/ojtportal/internal/dto"
	"github.com/lshigami/ojtportal/internal/logger"
	"github.com/lshigami/ojtportal/internal/metrics"
	"github.com/lshigami/ojtportal/internal/middleware"
	"github.com/lshigami/ojtportal/internal/model"
	"github.com/lshigami/ojtportal/internal/repository"
	"github.com/lshigami/ojtportal/internal/service"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var studentFeedbackQuestions = []string{
	"The company provided a proper orientation on my first week.",
	"My assigned tasks were related to my program of study.",
	"My supervisor gave clear instructions and regular feedback.",
	"The workplace was safe and had the tools I needed.",
	"I would recommend this company to future trainees.",
}

var supervisorFeedbackQuestions = []string{
	"The trainee was prepared for the tasks assigned.",
	"The school coordinated well with the company during the OJT.",
	"The trainee's skills matched the program description.",
}

var appraisalCategories = map[string][]string{
	"Work Attitude": {"Punctuality", "Initiative", "Cooperation"},
	"Work Quality":  {"Accuracy", "Quality of output"},
}

// Seeds reference data and one template per family for local development,
// then prints tokens that can be used against the API.
func main() {
	logger.Init()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate")
	}

	ctx := context.Background()
	if err := seedOJTs(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed OJT applications")
	}
	if err := seedTemplates(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed templates")
	}

	auth := middleware.NewAuthenticator(cfg)
	for _, who := range []struct {
		userID uint
		role   string
	}{{1, middleware.RoleAdmin}, {101, middleware.RoleStudent}} {
		token, err := auth.IssueToken(who.userID, who.role, 24*time.Hour)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to issue token")
		}
		log.Info().Uint("userID", who.userID).Str("role", who.role).Str("token", token).Msg("Development token")
	}
}

func seedOJTs(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		department := model.Department{Name: "College of Computing"}
		if err := tx.Where(model.Department{Name: department.Name}).FirstOrCreate(&department).Error; err != nil {
			return err
		}
		program := model.Program{Name: "BS Information Technology", DepartmentID: department.ID}
		if err := tx.Where(model.Program{Name: program.Name}).FirstOrCreate(&program).Error; err != nil {
			return err
		}
		class := model.Class{Name: "BSIT 4-A", ProgramID: program.ID}
		if err := tx.Where(model.Class{Name: class.Name}).FirstOrCreate(&class).Error; err != nil {
			return err
		}
		company := model.Company{Name: "Acme Software", Address: "Makati City"}
		if err := tx.Where(model.Company{Name: company.Name}).FirstOrCreate(&company).Error; err != nil {
			return err
		}

		students := []model.Student{
			{UserID: 101, StudentNumber: "2021-0001", FirstName: "Ana", LastName: "Reyes", Email: "ana.reyes@example.edu"},
			{UserID: 102, StudentNumber: "2021-0002", FirstName: "Ben", LastName: "Cruz", Email: "ben.cruz@example.edu"},
		}
		for i := range students {
			if err := tx.Where(model.Student{UserID: students[i].UserID}).FirstOrCreate(&students[i]).Error; err != nil {
				return err
			}
			ojt := model.OJTApplication{
				StudentID:       students[i].ID,
				ClassID:         class.ID,
				CompanyID:       &company.ID,
				Status:          model.OJTStatusPostOJT,
				IsActive:        true,
				SupervisorName:  "Carla Santos",
				SupervisorEmail: "supervisor@example.com",
			}
			if err := tx.Where(model.OJTApplication{StudentID: ojt.StudentID}).FirstOrCreate(&ojt).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func seedTemplates(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.FeedbackTemplate{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info().Int64("templates", count).Msg("Templates already seeded")
		return nil
	}

	templates := service.NewTemplateService(
		repository.NewTemplateRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewQuestionRepository(db),
		metrics.NewRecorder(),
		db,
	)

	flat := map[model.Family][]string{
		model.FamilyStudentFeedback:    studentFeedbackQuestions,
		model.FamilySupervisorFeedback: supervisorFeedbackQuestions,
	}
	for family, questions := range flat {
		template, err := templates.CreateTemplate(ctx, family, dto.CreateTemplateRequest{})
		if err != nil {
			return err
		}
		if _, err := templates.ReplaceQuestions(ctx, family, template.ID, questions); err != nil {
			return err
		}
		if err := templates.SetActive(ctx, family, template.ID, true); err != nil {
			return err
		}
	}

	appraisal, err := templates.CreateTemplate(ctx, model.FamilyAppraisal, dto.CreateTemplateRequest{})
	if err != nil {
		return err
	}
	var inputs []dto.CategoryInput
	names := []string{"Work Attitude", "Work Quality"}
	for i, name := range names {
		inputs = append(inputs, dto.CategoryInput{Name: name, DisplayOrder: i})
	}
	tree, err := templates.ReplaceCategories(ctx, model.FamilyAppraisal, appraisal.ID, inputs)
	if err != nil {
		return err
	}
	for _, category := range tree.Categories {
		if _, err := templates.ReplaceQuestions(ctx, model.FamilyAppraisal, category.ID, appraisalCategories[category.Name]); err != nil {
			return err
		}
	}
	return templates.SetActive(ctx, model.FamilyAppraisal, appraisal.ID, true)
}
