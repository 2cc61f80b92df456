package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/ojtportal/internal/controller"
	"github.com/lshigami/ojtportal/internal/controller/admin"
	"github.com/lshigami/ojtportal/internal/controller/student"
	"github.com/lshigami/ojtportal/internal/controller/supervisor"
	"github.com/lshigami/ojtportal/internal/metrics"
	"github.com/lshigami/ojtportal/internal/middleware"
	"github.com/lshigami/ojtportal/internal/model"
	"gorm.io/gorm"
)

// RegisterRoutes mounts every family under /api/v1/{family} plus the
// operational endpoints.
func RegisterRoutes(
	router *gin.Engine,
	db *gorm.DB,
	auth *middleware.Authenticator,
	recorder *metrics.Recorder,
	templates *admin.TemplateController,
	reports *admin.ReportController,
	feedback *student.FeedbackController,
	supervisors *supervisor.AccessCodeController,
) {
	router.GET("/healthz", healthz(db))
	router.GET("/metrics", gin.WrapH(recorder.Handler()))

	api := router.Group("/api/v1")
	for _, family := range model.Families {
		group := api.Group("/"+string(family), controller.WithFamily(family))
		authed := group.Group("", auth.RequireAuth())
		staff := authed.Group("", middleware.RequireRoles(middleware.RoleAdmin, middleware.RoleCoordinator))
		students := authed.Group("", middleware.RequireRoles(middleware.RoleStudent))

		staff.POST("", templates.CreateTemplate)
		staff.GET("/templates", templates.ListTemplates)
		authed.GET("", templates.GetActiveTemplate)
		authed.GET("/:id", templates.GetTemplate)
		staff.PATCH("/:id", templates.PatchTemplate)
		staff.PATCH("/:id/questions", templates.ReplaceQuestions)
		if family.HasCategories() {
			staff.PATCH("/:id/categories", templates.ReplaceCategories)
		}

		staff.GET("/response/all", reports.ListResponses)
		staff.GET("/response/unanswered", reports.CountUnanswered)
		staff.GET("/response/:responseId", reports.GetResponse)

		if family.UsesAccessCode() {
			students.POST("/email", feedback.RequestAccessCode)
			group.POST("/verify", supervisors.Verify)
			group.POST("/response", supervisors.SubmitResponse)
		} else {
			students.POST("/response", feedback.SubmitFeedback)
			students.GET("/response", feedback.GetMyFeedback)
		}
	}
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx.Request.Context())
		}
		if err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
