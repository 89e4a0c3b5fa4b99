package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guandanclub/scorekeeper/config"
	"github.com/guandanclub/scorekeeper/internal/match"
	"github.com/guandanclub/scorekeeper/internal/report"
)

func SetupRoutes(appConfig *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	match.MatchRoutes(api, config.DB, appConfig)
	report.ReportRoutes(api, config.DB, appConfig)

	return r
}
