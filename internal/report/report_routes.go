package report

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/guandanclub/scorekeeper/config"
	"github.com/guandanclub/scorekeeper/internal/match"
)

// ReportRoutes sets up all report-related routes.
func ReportRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	matchRepo := match.NewGormMatchRepository(db)
	reportController := NewReportController(matchRepo, appConfig)

	reportRoutes := router.Group("/reports")
	{
		reportRoutes.GET("/annual", reportController.GetAnnualReport)
	}
}
