package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lshigami/ojtportal/config"
	"github.com/lshigami/ojtportal/database"
	_ "github.com/lshigami/ojtportal/docs" // Swagger docs
	"github.com/lshigami/ojtportal/internal/controller/admin"
	"github.com/lshigami/ojtportal/internal/controller/student"
	"github.com/lshigami/ojtportal/internal/controller/supervisor"
	"github.com/lshigami/ojtportal/internal/dto"
	"github.com/lshigami/ojtportal/internal/logger"
	"github.com/lshigami/ojtportal/internal/metrics"
	"github.com/lshigami/ojtportal/internal/middleware"
	"github.com/lshigami/ojtportal/internal/repository"
	"github.com/lshigami/ojtportal/internal/router"
	"github.com/lshigami/ojtportal/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title OJT Portal Feedback API
// @version 1.0
// @description Versioned feedback templates, response snapshots, supervisor access codes and reporting.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			metrics.NewRecorder,
			middleware.NewAuthenticator,
			NewGinEngine,
		),

		// Repositories
		fx.Provide(
			repository.NewTemplateRepository,
			repository.NewCategoryRepository,
			repository.NewQuestionRepository,
			repository.NewResponseRepository,
			repository.NewAccessCodeRepository,
			repository.NewSubmissionRepository,
			repository.NewOJTRepository,
		),

		// Services
		fx.Provide(
			service.NewRatingService,
			service.NewCloudinaryStorage,
			service.NewSendGridMailer,
			service.NewTemplateService,
			service.NewSubmissionService,
			service.NewAccessCodeService,
			service.NewReportService,
		),

		// Controllers
		fx.Provide(
			admin.NewTemplateController,
			admin.NewReportController,
			student.NewFeedbackController,
			supervisor.NewAccessCodeController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(router.RegisterRoutes),
		fx.Invoke(StartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

func NewGinEngine(cfg *config.Config) (*gin.Engine, error) {
	gin.SetMode(cfg.Server.GinMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidations(v); err != nil {
			return nil, err
		}
	}

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.App.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r, nil
}

// StartServer binds the HTTP server to the fx lifecycle.
func StartServer(lc fx.Lifecycle, router *gin.Engine, cfg *config.Config) {
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("%s server starting on port %s", cfg.App.Name, cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB, cfg *config.Config) error {
	if !cfg.Database.AutoMigrate {
		log.Info().Msg("AUTO_MIGRATE disabled, skipping migrations")
		return nil
	}
	return database.Migrate(db)
}
