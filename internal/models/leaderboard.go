package models

import (
	"github.com/shopspring/decimal"
)

// LeaderboardEntry is one team's aggregated standing, derived from the
// transaction ledger and production log only.
type LeaderboardEntry struct {
	Rank            int             `json:"rank"`
	TeamID          uint            `json:"team_id"`
	TeamName        string          `json:"team_name"`
	Industry        string          `json:"industry"`
	Revenue         decimal.Decimal `json:"revenue"`
	Expenses        decimal.Decimal `json:"expenses"`
	Profit          decimal.Decimal `json:"profit"`
	TotalProduction int             `json:"total_production"`
	TotalPurchases  int             `json:"total_purchases"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
}
