package match

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/guandanclub/scorekeeper/internal/models"
)

// MatchRepository is the storage boundary for matches and their rounds.
// The statistics code in internal/stats only ever sees snapshots read
// through this interface; it never touches the database itself.
type MatchRepository interface {
	CreateMatch(m *models.Match, playerNames []string, rulePoints []int) error
	GetMatchByID(id uint) (*models.Match, error)
	ListMatches(year *int) ([]models.Match, error)
	DeleteMatch(id uint) error
	FinishMatch(id uint) error

	ListPlayers(matchID uint) ([]models.Player, error)
	ListAllPlayers() ([]models.Player, error)
	ListScoreRules(matchID uint) (map[int]int, error)
	ListRoundScores(matchID uint) ([]models.RoundScore, error)

	// AppendRound records one full round. rankedPlayerIDs[i] is the
	// player finishing at rank i+1. The write is all-or-nothing.
	AppendRound(matchID uint, rankedPlayerIDs []uint) error

	// Transaction support
	WithTransaction(txFunc func(MatchRepository) error) error
}

// GormMatchRepository implements MatchRepository using GORM
type GormMatchRepository struct {
	db *gorm.DB
}

// NewGormMatchRepository creates a new GormMatchRepository
func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

// WithTransaction implements transaction support
func (r *GormMatchRepository) WithTransaction(txFunc func(MatchRepository) error) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	txRepo := &GormMatchRepository{db: tx}
	if err := txFunc(txRepo); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// CreateMatch creates the match together with its players and score rules
// in a single transaction. playerNames are seat-ordered; rulePoints[i] is
// the award for rank i+1.
func (r *GormMatchRepository) CreateMatch(m *models.Match, playerNames []string, rulePoints []int) error {
	if m.PlayerCount < 4 || m.PlayerCount%2 != 0 {
		return ErrPlayerCount
	}
	if len(playerNames) != m.PlayerCount || len(rulePoints) != m.PlayerCount {
		return ErrRuleCount
	}

	return r.WithTransaction(func(txRepo MatchRepository) error {
		tx := txRepo.(*GormMatchRepository).db
		m.Status = models.StatusOngoing
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		for i, name := range playerNames {
			player := models.Player{
				MatchID:      m.ID,
				PlayerNumber: i + 1,
				Name:         name,
				Team:         models.TeamForNumber(i + 1),
			}
			if err := tx.Create(&player).Error; err != nil {
				return err
			}
		}
		for i, points := range rulePoints {
			rule := models.ScoreRule{MatchID: m.ID, Rank: i + 1, Points: points}
			if err := tx.Create(&rule).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetMatchByID retrieves a match with its players preloaded.
func (r *GormMatchRepository) GetMatchByID(id uint) (*models.Match, error) {
	var m models.Match
	result := r.db.Preload("Players", func(db *gorm.DB) *gorm.DB {
		return db.Order("player_number ASC")
	}).First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, result.Error
	}
	return &m, nil
}

// ListMatches retrieves matches newest first, optionally restricted to a
// calendar year of the scheduled time.
func (r *GormMatchRepository) ListMatches(year *int) ([]models.Match, error) {
	var matches []models.Match
	query := r.db.Model(&models.Match{}).Order("time DESC NULLS LAST")
	if year != nil {
		start := time.Date(*year, time.January, 1, 0, 0, 0, 0, time.Local)
		end := start.AddDate(1, 0, 0)
		query = query.Where("time >= ? AND time < ?", start, end)
	}
	if err := query.Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

// DeleteMatch removes an ongoing match and everything under it.
// Finished matches are frozen and cannot be deleted.
func (r *GormMatchRepository) DeleteMatch(id uint) error {
	return r.WithTransaction(func(txRepo MatchRepository) error {
		tx := txRepo.(*GormMatchRepository).db
		var m models.Match
		if err := tx.First(&m, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMatchNotFound
			}
			return err
		}
		if m.Status == models.StatusFinished {
			return ErrMatchFinished
		}
		if err := tx.Where("match_id = ?", id).Delete(&models.ScoreRule{}).Error; err != nil {
			return err
		}
		if err := tx.Where("match_id = ?", id).Delete(&models.RoundScore{}).Error; err != nil {
			return err
		}
		if err := tx.Where("match_id = ?", id).Delete(&models.Player{}).Error; err != nil {
			return err
		}
		return tx.Delete(&m).Error
	})
}

// FinishMatch transitions a match to finished. The transition is terminal.
func (r *GormMatchRepository) FinishMatch(id uint) error {
	return r.WithTransaction(func(txRepo MatchRepository) error {
		tx := txRepo.(*GormMatchRepository).db
		var m models.Match
		if err := tx.First(&m, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMatchNotFound
			}
			return err
		}
		if m.Status == models.StatusFinished {
			return ErrMatchFinished
		}
		return tx.Model(&m).Update("status", models.StatusFinished).Error
	})
}

// ListPlayers retrieves a match's players in seat order.
func (r *GormMatchRepository) ListPlayers(matchID uint) ([]models.Player, error) {
	var players []models.Player
	err := r.db.Where("match_id = ?", matchID).Order("player_number ASC").Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}

// ListAllPlayers retrieves every player row across all matches.
func (r *GormMatchRepository) ListAllPlayers() ([]models.Player, error) {
	var players []models.Player
	if err := r.db.Order("match_id ASC, player_number ASC").Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

// ListScoreRules retrieves a match's rank→points mapping.
func (r *GormMatchRepository) ListScoreRules(matchID uint) (map[int]int, error) {
	var rules []models.ScoreRule
	if err := r.db.Where("match_id = ?", matchID).Find(&rules).Error; err != nil {
		return nil, err
	}
	mapping := make(map[int]int, len(rules))
	for _, rule := range rules {
		mapping[rule.Rank] = rule.Points
	}
	return mapping, nil
}

// ListRoundScores retrieves a match's round records in entry order.
func (r *GormMatchRepository) ListRoundScores(matchID uint) ([]models.RoundScore, error) {
	var scores []models.RoundScore
	err := r.db.Where("match_id = ?", matchID).Order("round_number ASC, rank ASC").Find(&scores).Error
	if err != nil {
		return nil, err
	}
	return scores, nil
}

// AppendRound validates and records one round. Duplicate players, unknown
// players and finished matches are rejected before any row is written.
func (r *GormMatchRepository) AppendRound(matchID uint, rankedPlayerIDs []uint) error {
	return r.WithTransaction(func(txRepo MatchRepository) error {
		tx := txRepo.(*GormMatchRepository).db

		var m models.Match
		if err := tx.First(&m, matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMatchNotFound
			}
			return err
		}
		if m.Status == models.StatusFinished {
			return ErrMatchFinished
		}
		if len(rankedPlayerIDs) != m.PlayerCount {
			return ErrPlayerCount
		}

		var players []models.Player
		if err := tx.Where("match_id = ?", matchID).Find(&players).Error; err != nil {
			return err
		}
		known := make(map[uint]bool, len(players))
		for _, p := range players {
			known[p.ID] = true
		}

		seen := make(map[uint]bool, len(rankedPlayerIDs))
		for _, playerID := range rankedPlayerIDs {
			if !known[playerID] {
				return ErrPlayerNotFound
			}
			if seen[playerID] {
				return ErrDuplicatePlayer
			}
			seen[playerID] = true
		}

		var recorded int64
		if err := tx.Model(&models.RoundScore{}).Where("match_id = ?", matchID).Count(&recorded).Error; err != nil {
			return err
		}
		roundNumber := int(recorded)/m.PlayerCount + 1

		var rules []models.ScoreRule
		if err := tx.Where("match_id = ?", matchID).Find(&rules).Error; err != nil {
			return err
		}
		points := make(map[int]int, len(rules))
		for _, rule := range rules {
			points[rule.Rank] = rule.Points
		}

		for i, playerID := range rankedPlayerIDs {
			rank := i + 1
			score := models.RoundScore{
				MatchID:     matchID,
				RoundNumber: roundNumber,
				PlayerID:    playerID,
				Rank:        rank,
				Points:      points[rank],
			}
			if err := tx.Create(&score).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
