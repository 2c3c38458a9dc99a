package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TradeStatus string

const (
	TradeStatusPending   TradeStatus = "pending"
	TradeStatusAccepted  TradeStatus = "accepted"
	TradeStatusRejected  TradeStatus = "rejected"
	TradeStatusCancelled TradeStatus = "cancelled"
)

// TradeRequest is a directed bilateral offer: the requester (from) is
// the buyer, the counterparty (to) is the seller. Pending requests
// transition exactly once, to accepted, rejected or cancelled.
type TradeRequest struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	FromTeamID   uint            `gorm:"not null;index" json:"from_team_id"`
	ToTeamID     uint            `gorm:"not null;index" json:"to_team_id"`
	Industry     string          `gorm:"size:50;not null" json:"industry"`
	Units        int             `gorm:"not null" json:"units"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price_per_unit"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	Status       TradeStatus     `gorm:"size:20;not null;default:pending;index" json:"status"`
	IsSecret     bool            `gorm:"default:false" json:"is_secret"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name for TradeRequest model
func (TradeRequest) TableName() string {
	return "trade_requests"
}

// CreateTradeRequest is the payload for opening a bilateral trade
type CreateTradeRequest struct {
	ToTeamID     uint            `json:"to_team_id" binding:"required"`
	Industry     string          `json:"industry" binding:"required"`
	Units        int             `json:"units" binding:"required"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" binding:"required"`
	IsSecret     bool            `json:"is_secret"`
}

// TradeListing is a trade request joined with the counterparty's name
type TradeListing struct {
	ID           uuid.UUID       `json:"id"`
	FromTeamID   uint            `json:"from_team_id"`
	ToTeamID     uint            `json:"to_team_id"`
	Counterparty string          `json:"counterparty"`
	Industry     string          `json:"industry"`
	Units        int             `json:"units"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       TradeStatus     `json:"status"`
	IsSecret     bool            `json:"is_secret"`
	CreatedAt    time.Time       `json:"created_at"`
}
