package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Team represents a participating team (or the admin account)
type Team struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Industry       string          `gorm:"size:50;not null;index" json:"industry"`
	Username       string          `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash   string          `gorm:"size:255;not null" json:"-"`
	InitialBalance decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"initial_balance"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"current_balance"`
	IsAdmin        bool            `gorm:"default:false" json:"is_admin"`
	CreatedAt      time.Time       `json:"created_at"`
}

// TableName specifies the table name for Team model
func (Team) TableName() string {
	return "teams"
}

// CreateTeamRequest is the payload for registering a new team
type CreateTeamRequest struct {
	Name     string `json:"name" binding:"required"`
	Industry string `json:"industry" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the payload for team login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
