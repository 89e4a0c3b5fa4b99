package match

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guandanclub/scorekeeper/config"
	"github.com/guandanclub/scorekeeper/internal/models"
	"github.com/guandanclub/scorekeeper/internal/stats"
	"github.com/guandanclub/scorekeeper/pkg/responses"
)

// MatchController handles match-related HTTP requests
type MatchController struct {
	repo      MatchRepository
	appConfig *config.Config
}

// NewMatchController creates a new match controller
func NewMatchController(repo MatchRepository, appConfig *config.Config) *MatchController {
	return &MatchController{
		repo:      repo,
		appConfig: appConfig,
	}
}

// --- DTOs for requests ---

// CreateMatchRequest defines the request payload for creating a match.
// Players and score rules are seat-ordered: player_names[i] sits at seat
// i+1, rule_points[i] is the award for finishing at rank i+1.
type CreateMatchRequest struct {
	PlayerCount int        `json:"player_count" binding:"required,min=4"`
	Time        *time.Time `json:"time,omitempty"`
	Location    string     `json:"location,omitempty" binding:"max=100"`
	PlayerNames []string   `json:"player_names" binding:"required,min=4,dive,required,max=50"`
	RulePoints  []int      `json:"rule_points" binding:"required,min=4"`
}

// SubmitRoundRequest carries one round's results: ranked_player_ids[i] is
// the player who finished at rank i+1.
type SubmitRoundRequest struct {
	RankedPlayerIDs []uint `json:"ranked_player_ids" binding:"required,min=4"`
}

func parseMatchID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return 0, false
	}
	return uint(id), true
}

// --- Match Controller Methods ---

// @Summary      Create a match
// @Description  Create a match with its players and per-rank score rules in one transaction.
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Param        match  body  CreateMatchRequest  true  "Match details"
// @Success      201  {object}  responses.SuccessResponse
// @Failure      400  {object}  responses.ErrorResponse "Odd player count, or names/rules not matching the player count"
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}
	if req.PlayerCount%2 != 0 {
		responses.BadRequest(c, ErrPlayerCount.Error())
		return
	}
	if len(req.PlayerNames) != req.PlayerCount || len(req.RulePoints) != req.PlayerCount {
		responses.BadRequest(c, "player_names and rule_points must both have player_count entries")
		return
	}

	m := models.Match{
		PlayerCount: req.PlayerCount,
		Time:        req.Time,
		Location:    req.Location,
	}
	if err := mc.repo.CreateMatch(&m, req.PlayerNames, req.RulePoints); err != nil {
		if errors.Is(err, ErrPlayerCount) || errors.Is(err, ErrRuleCount) {
			responses.BadRequest(c, err.Error())
			return
		}
		responses.InternalServerError(c, "Failed to create match: "+err.Error())
		return
	}

	created, err := mc.repo.GetMatchByID(m.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load created match")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Match created successfully", created)
}

// @Summary      List matches
// @Description  List matches newest first, together with the overall score and win-rate leaderboards.
// @Tags         Matches
// @Produce      json
// @Param        year  query  int  false  "Restrict to a calendar year"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /matches [get]
func (mc *MatchController) GetMatches(c *gin.Context) {
	var year *int
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			responses.BadRequest(c, "Invalid year")
			return
		}
		year = &parsed
	}

	snapshot, err := stats.LoadSnapshot(mc.repo, year)
	if err != nil {
		responses.InternalServerError(c, "Failed to load matches: "+err.Error())
		return
	}

	matches := make([]models.Match, 0, len(snapshot))
	for _, md := range snapshot {
		matches = append(matches, md.Match)
	}
	agg := stats.BuildAggregates(snapshot, mc.appConfig.Report.ProfitCap)

	responses.SendSuccess(c, http.StatusOK, "", gin.H{
		"matches":           matches,
		"score_rankings":    stats.ScoreRankings(snapshot),
		"win_rate_rankings": stats.WinRateRankings(agg),
	})
}

// @Summary      Get match detail
// @Description  Match detail with sorted standings, team scores, score gap, leading team, level cards and rounds.
// @Tags         Matches
// @Produce      json
// @Param        id  path  int  true  "Match ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /matches/{id} [get]
func (mc *MatchController) GetMatchByID(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	m, err := mc.repo.GetMatchByID(id)
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			responses.NotFound(c, "Match")
			return
		}
		responses.InternalServerError(c, "Failed to load match")
		return
	}

	players, err := mc.repo.ListPlayers(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to load players")
		return
	}
	scores, err := mc.repo.ListRoundScores(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to load round scores")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", stats.Summarize(*m, players, scores))
}

// @Summary      Submit a round
// @Description  Record one round's results; the i-th player ID finished at rank i+1. All-or-nothing.
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Param        id     path  int                 true  "Match ID"
// @Param        round  body  SubmitRoundRequest  true  "Ranked player IDs"
// @Success      201  {object}  responses.SuccessResponse
// @Failure      400  {object}  responses.ErrorResponse "Duplicate or unknown player in the submission"
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse "Match already finished"
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /matches/{id}/rounds [post]
func (mc *MatchController) SubmitRound(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	var req SubmitRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	if err := mc.repo.AppendRound(id, req.RankedPlayerIDs); err != nil {
		switch {
		case errors.Is(err, ErrMatchNotFound):
			responses.NotFound(c, "Match")
		case errors.Is(err, ErrMatchFinished):
			responses.Conflict(c, err.Error())
		case errors.Is(err, ErrDuplicatePlayer), errors.Is(err, ErrPlayerNotFound), errors.Is(err, ErrPlayerCount):
			responses.BadRequest(c, err.Error())
		default:
			responses.InternalServerError(c, "Failed to record round: "+err.Error())
		}
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Round recorded successfully", nil)
}

// @Summary      Finish a match
// @Description  Transition a match to finished. The transition is terminal.
// @Tags         Matches
// @Produce      json
// @Param        id  path  int  true  "Match ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse "Match already finished"
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /matches/{id}/finish [post]
func (mc *MatchController) FinishMatch(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	if err := mc.repo.FinishMatch(id); err != nil {
		switch {
		case errors.Is(err, ErrMatchNotFound):
			responses.NotFound(c, "Match")
		case errors.Is(err, ErrMatchFinished):
			responses.Conflict(c, err.Error())
		default:
			responses.InternalServerError(c, "Failed to finish match: "+err.Error())
		}
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Match finished", nil)
}

// @Summary      Delete a match
// @Description  Delete an ongoing match with all its players, rules and rounds. Finished matches cannot be deleted.
// @Tags         Matches
// @Produce      json
// @Param        id  path  int  true  "Match ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse "Match already finished"
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /matches/{id} [delete]
func (mc *MatchController) DeleteMatch(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	if err := mc.repo.DeleteMatch(id); err != nil {
		switch {
		case errors.Is(err, ErrMatchNotFound):
			responses.NotFound(c, "Match")
		case errors.Is(err, ErrMatchFinished):
			responses.Conflict(c, err.Error())
		default:
			responses.InternalServerError(c, "Failed to delete match: "+err.Error())
		}
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Match deleted", nil)
}
