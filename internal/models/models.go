// Package models holds the persistent entities shared by the storage and
// statistics packages.
package models

import (
	"time"

	"gorm.io/gorm"
)

type MatchStatus string

const (
	StatusOngoing  MatchStatus = "ongoing"
	StatusFinished MatchStatus = "finished"
)

// Match represents one Guandan session. Players and scoring rules are
// created together with the match and never change afterwards; the only
// mutations a match sees are appended rounds and the ongoing→finished
// transition.
type Match struct {
	gorm.Model
	PlayerCount int         `json:"player_count" gorm:"not null"`
	Time        *time.Time  `json:"time,omitempty" gorm:"index"`
	Location    string      `json:"location,omitempty" gorm:"size:100"`
	Status      MatchStatus `json:"status" gorm:"index;default:'ongoing'"`

	Players     []Player     `json:"players,omitempty" gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
	ScoreRules  []ScoreRule  `json:"score_rules,omitempty" gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
	RoundScores []RoundScore `json:"round_scores,omitempty" gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
}

// Player is one seat in one match. Names are free text and not unique
// across matches; cross-match statistics resolve them in internal/stats.
type Player struct {
	gorm.Model
	MatchID      uint   `json:"match_id" gorm:"index;not null;uniqueIndex:idx_match_player_number"`
	PlayerNumber int    `json:"player_number" gorm:"not null;uniqueIndex:idx_match_player_number"`
	Name         string `json:"name" gorm:"size:50;not null"`
	Team         int    `json:"team" gorm:"not null"` // 1 for odd seats, 2 for even
}

// TeamForNumber derives the team from a 1-based seat number.
func TeamForNumber(playerNumber int) int {
	if playerNumber%2 == 1 {
		return 1
	}
	return 2
}

// ScoreRule maps a finishing rank to the points it awards. One rule per
// rank 1..PlayerCount, fixed at match creation. Negative points are
// normal for the bottom ranks.
type ScoreRule struct {
	gorm.Model
	MatchID uint `json:"match_id" gorm:"index;not null;uniqueIndex:idx_match_rule_rank"`
	Rank    int  `json:"rank" gorm:"not null;uniqueIndex:idx_match_rule_rank"`
	Points  int  `json:"points" gorm:"not null"`
}

// RoundScore is one player's result in one round. Points are a
// denormalized copy of the score rule at entry time, so historical
// rounds never shift under a rule change.
type RoundScore struct {
	gorm.Model
	MatchID     uint `json:"match_id" gorm:"index;not null"`
	RoundNumber int  `json:"round_number" gorm:"not null"`
	PlayerID    uint `json:"player_id" gorm:"index;not null"`
	Rank        int  `json:"rank" gorm:"not null"`
	Points      int  `json:"points" gorm:"not null"`
}
