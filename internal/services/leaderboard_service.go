package services

import (
	"sort"

	"trading-sim/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LeaderboardService ranks teams from the transaction ledger and the
// production log. Read-only: it never mutates state, so repeated calls
// over the same snapshot return the same order.
type LeaderboardService struct {
	db *gorm.DB
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// Leaderboard computes standings for every non-admin team.
//
// Revenue attribution mirrors how the two trade paths write the ledger:
// a marketplace buy logs a purchase row (buyer from, seller to) plus a
// sale row (seller from, buyer to), while an accepted trade request
// logs only one purchase/secret_trade row. The seller side is therefore
// to_team on purchase and secret_trade rows, and from_team on sale rows.
func (s *LeaderboardService) Leaderboard() ([]models.LeaderboardEntry, error) {
	var teams []models.Team
	if err := s.db.Where("is_admin = ?", false).Find(&teams).Error; err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(teams))
	for _, team := range teams {
		revenue := decimal.Zero
		for _, sum := range []struct {
			column string
			types  []models.TransactionType
		}{
			{"to_team_id", []models.TransactionType{models.TransactionPurchase, models.TransactionSecretTrade}},
			{"from_team_id", []models.TransactionType{models.TransactionSale}},
		} {
			amount, err := s.sumAmounts(sum.column, team.ID, sum.types)
			if err != nil {
				return nil, err
			}
			revenue = revenue.Add(amount)
		}

		expenses, err := s.sumAmounts("from_team_id", team.ID,
			[]models.TransactionType{models.TransactionPurchase, models.TransactionSecretTrade})
		if err != nil {
			return nil, err
		}

		var production int
		if err := s.db.Model(&models.ProductionLog{}).
			Where("team_id = ?", team.ID).
			Select("COALESCE(SUM(units_produced), 0)").
			Scan(&production).Error; err != nil {
			return nil, err
		}

		var purchases int
		if err := s.db.Model(&models.Transaction{}).
			Where("from_team_id = ? AND type IN ?", team.ID,
				[]models.TransactionType{models.TransactionPurchase, models.TransactionSecretTrade}).
			Select("COALESCE(SUM(units), 0)").
			Scan(&purchases).Error; err != nil {
			return nil, err
		}

		entries = append(entries, models.LeaderboardEntry{
			TeamID:          team.ID,
			TeamName:        team.Name,
			Industry:        team.Industry,
			Revenue:         revenue,
			Expenses:        expenses,
			Profit:          revenue.Sub(expenses),
			TotalProduction: production,
			TotalPurchases:  purchases,
			CurrentBalance:  team.CurrentBalance,
		})
	}

	// Revenue desc, profit desc, production desc, purchases desc, then
	// team ID asc as the deterministic final tiebreak.
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		if !a.Profit.Equal(b.Profit) {
			return a.Profit.GreaterThan(b.Profit)
		}
		if a.TotalProduction != b.TotalProduction {
			return a.TotalProduction > b.TotalProduction
		}
		if a.TotalPurchases != b.TotalPurchases {
			return a.TotalPurchases > b.TotalPurchases
		}
		return a.TeamID < b.TeamID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (s *LeaderboardService) sumAmounts(column string, teamID uint, types []models.TransactionType) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.Model(&models.Transaction{}).
		Where(column+" = ? AND type IN ?", teamID, types).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
