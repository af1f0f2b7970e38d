package routes

import (
	"log/slog"
	"os"

	"github.com/OrangeSorbet/annavistara/controllers"
	"github.com/OrangeSorbet/annavistara/middlewares"
	"github.com/OrangeSorbet/annavistara/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	hub := services.NewRealtimeHub()
	logSvc := services.NewLogService(db)
	shortcutSvc := services.NewShortcutService(db)
	geminiSvc := services.NewGeminiService(logger)
	reportSvc := services.NewReportService(db, logSvc)
	exportSvc := services.NewExportService(db, logSvc)
	backupSvc := services.NewBackupService(db, logSvc, shortcutSvc)
	advisorSvc := services.NewAdvisorService(db, geminiSvc, logSvc)
	authSvc := services.NewAuthService(db)

	authCtl := controllers.NewAuthController(authSvc)
	userCtl := controllers.NewUserController(db)
	rdaCtl := controllers.NewRDAController(db)
	logCtl := controllers.NewLogController(db, logSvc, geminiSvc, shortcutSvc, reportSvc, hub)
	reportCtl := controllers.NewReportController(reportSvc)
	exportCtl := controllers.NewExportController(exportSvc)
	backupCtl := controllers.NewBackupController(backupSvc)
	shortcutCtl := controllers.NewShortcutController(shortcutSvc)
	advisorCtl := controllers.NewAdvisorController(advisorSvc)
	realtimeCtl := controllers.NewRealtimeController(hub)

	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
	}

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/user/profile", userCtl.GetProfile)
		api.PUT("/user/profile", userCtl.UpdateProfile)
		api.GET("/user/bmi", userCtl.GetBMI)

		api.GET("/rda", rdaCtl.GetRDA)

		api.GET("/log/:date", logCtl.GetDay)
		api.POST("/log/:date/meals", logCtl.AddMeal)
		api.PUT("/log/:date/meals/:itemID", logCtl.UpdateMeal)
		api.DELETE("/log/:date/meals/:itemID", logCtl.DeleteMeal)
		api.POST("/log/:date/supplements", logCtl.AddSupplement)
		api.PUT("/log/:date/supplements/:itemID", logCtl.UpdateSupplement)
		api.DELETE("/log/:date/supplements/:itemID", logCtl.DeleteSupplement)

		api.GET("/summary/:date", reportCtl.GetDaySummary)
		api.GET("/summary/:date/status", reportCtl.GetDayStatus)
		api.GET("/calendar/:year/:month", reportCtl.GetCalendar)

		api.GET("/export", exportCtl.GetExport)

		api.GET("/backup", backupCtl.Export)
		api.POST("/backup", backupCtl.Import)

		api.GET("/shortcuts/:kind", shortcutCtl.List)
		api.POST("/shortcuts/:kind", shortcutCtl.Save)
		api.GET("/shortcuts/:kind/:keyword", shortcutCtl.Resolve)
		api.DELETE("/shortcuts/:kind/:keyword", shortcutCtl.Delete)

		api.POST("/advisor/supplements", advisorCtl.SuggestSupplement)
		api.POST("/advisor/meals", advisorCtl.SuggestMeal)

		api.GET("/ws/log", realtimeCtl.LogWS)
	}

	return r
}
