package models

import (
	"time"
)

// Gift is a one-shot admin grant of material units to a team. A team
// with an applied gift can never receive another.
type Gift struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TeamID        uint      `gorm:"not null;index" json:"team_id"`
	Industry      string    `gorm:"size:50;not null" json:"industry"`
	Units         int       `gorm:"not null" json:"units"`
	SentByAdminID uint      `gorm:"not null" json:"sent_by_admin_id"`
	IsApplied     bool      `gorm:"default:false" json:"is_applied"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name for Gift model
func (Gift) TableName() string {
	return "gifts"
}

// SendGiftRequest is the payload for the admin gift endpoint
type SendGiftRequest struct {
	TeamID uint `json:"team_id" binding:"required"`
	Units  int  `json:"units" binding:"required"`
}
