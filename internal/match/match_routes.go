package match

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/guandanclub/scorekeeper/config"
)

// MatchRoutes sets up all match-related routes.
func MatchRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	matchRepo := NewGormMatchRepository(db)
	matchController := NewMatchController(matchRepo, appConfig)

	matchRoutes := router.Group("/matches")
	{
		matchRoutes.POST("", matchController.CreateMatch)
		matchRoutes.GET("", matchController.GetMatches)
		matchRoutes.GET("/:id", matchController.GetMatchByID)
		matchRoutes.DELETE("/:id", matchController.DeleteMatch)

		matchRoutes.POST("/:id/rounds", matchController.SubmitRound)
		matchRoutes.POST("/:id/finish", matchController.FinishMatch)
	}
}
