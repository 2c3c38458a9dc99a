package models

import (
	"time"
)

type GameStatus string

const (
	GameStatusNotStarted GameStatus = "not_started"
	GameStatusRunning    GameStatus = "running"
	GameStatusPaused     GameStatus = "paused"
	GameStatusEnded      GameStatus = "ended"
)

// GameState is a single-row table tracking the simulation lifecycle.
type GameState struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Status    GameStatus `gorm:"size:20;not null;default:not_started" json:"status"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GameState model
func (GameState) TableName() string {
	return "game_state"
}

// ValidGameStatus reports whether s is a known lifecycle status.
func ValidGameStatus(s GameStatus) bool {
	switch s {
	case GameStatusNotStarted, GameStatusRunning, GameStatusPaused, GameStatusEnded:
		return true
	}
	return false
}
