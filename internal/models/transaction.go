package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionPurchase       TransactionType = "purchase"
	TransactionSale           TransactionType = "sale"
	TransactionSecretTrade    TransactionType = "secret_trade"
	TransactionGift           TransactionType = "gift"
	TransactionProductionCost TransactionType = "production_cost"
	TransactionAdjustment     TransactionType = "adjustment"
)

// Transaction is the append-only ledger of every balance- or
// inventory-affecting event. Marketplace purchases write two rows (one
// per perspective); accepted trade requests write one. The leaderboard
// is derived entirely from this table plus the production log, so each
// economic side effect must land here exactly once.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Type        TransactionType `gorm:"size:50;not null;index" json:"type"`
	FromTeamID  *uint           `gorm:"index" json:"from_team_id"`
	ToTeamID    *uint           `gorm:"index" json:"to_team_id"`
	Industry    *string         `gorm:"size:50" json:"industry"`
	Units       *int            `json:"units"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description string          `gorm:"size:500" json:"description"`
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
