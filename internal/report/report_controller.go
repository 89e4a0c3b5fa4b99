package report

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guandanclub/scorekeeper/config"
	"github.com/guandanclub/scorekeeper/internal/match"
	"github.com/guandanclub/scorekeeper/internal/stats"
	"github.com/guandanclub/scorekeeper/pkg/responses"
)

// ReportController handles report-related HTTP requests
type ReportController struct {
	repo      match.MatchRepository
	appConfig *config.Config
}

// NewReportController creates a new report controller
func NewReportController(repo match.MatchRepository, appConfig *config.Config) *ReportController {
	return &ReportController{
		repo:      repo,
		appConfig: appConfig,
	}
}

// @Summary      Annual report
// @Description  Year-in-review: counts, leaderboards, superlatives, head-to-head records and the profit ledger. Empty boards come back null, not as errors.
// @Tags         Reports
// @Produce      json
// @Param        year  query  int  false  "Calendar year (defaults to the current year)"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /reports/annual [get]
func (rc *ReportController) GetAnnualReport(c *gin.Context) {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			responses.BadRequest(c, "Invalid year")
			return
		}
		year = parsed
	}

	snapshot, err := stats.LoadSnapshot(rc.repo, &year)
	if err != nil {
		responses.InternalServerError(c, "Failed to load matches: "+err.Error())
		return
	}

	annual := stats.BuildAnnualReport(year, snapshot, stats.ReportOptions{
		MinMatches: rc.appConfig.Report.MinMatches,
		ProfitCap:  rc.appConfig.Report.ProfitCap,
	})
	responses.SendSuccess(c, http.StatusOK, "", annual)
}
