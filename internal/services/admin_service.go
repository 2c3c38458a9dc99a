package services

import (
	"fmt"
	"log"
	"math/rand"

	"trading-sim/internal/models"
	"trading-sim/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AdminService holds the trusted escape hatches: direct edits to
// inventories, balances and history. These are operator tools, not
// economic operations; apart from clamping inventory at zero they
// bypass the invariants the regular services enforce.
type AdminService struct {
	db *gorm.DB
}

// NewAdminService creates a new AdminService
func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// SetGameStatus forces the simulation lifecycle status
func (s *AdminService) SetGameStatus(status models.GameStatus) error {
	if !models.ValidGameStatus(status) {
		return fmt.Errorf("unknown game status %q", status)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var state models.GameState
		err := tx.First(&state).Error
		if err == gorm.ErrRecordNotFound {
			state = models.GameState{Status: status}
			return tx.Create(&state).Error
		}
		if err != nil {
			return err
		}
		state.Status = status
		return tx.Save(&state).Error
	})
}

// AdjustInventory adds delta to one inventory field (negative deltas
// subtract), clamping at zero, and logs an adjustment row.
func (s *AdminService) AdjustInventory(adminID, teamID uint, industry string, material bool, delta int) (*models.Inventory, error) {
	if !models.ValidIndustry(industry) {
		return nil, fmt.Errorf("unknown industry %q", industry)
	}

	var inv *models.Inventory
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := repository.GetTeam(tx, teamID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrTeamNotFound
			}
			return err
		}

		var err error
		inv, err = repository.GetOrCreateInventory(tx, teamID, industry)
		if err != nil {
			return err
		}

		field := "raw units"
		if material {
			inv.MaterialUnits += delta
			if inv.MaterialUnits < 0 {
				inv.MaterialUnits = 0
			}
			field = "material units"
		} else {
			inv.RawUnits += delta
			if inv.RawUnits < 0 {
				inv.RawUnits = 0
			}
		}
		if err := tx.Save(inv).Error; err != nil {
			return err
		}

		units := delta
		if units < 0 {
			units = -units
		}
		row := models.Transaction{
			Type:        models.TransactionAdjustment,
			FromTeamID:  &adminID,
			ToTeamID:    &teamID,
			Industry:    &industry,
			Units:       &units,
			Amount:      decimal.Zero,
			Description: fmt.Sprintf("Admin adjustment: %+d %s %s", delta, industry, field),
		}
		return repository.LogTransaction(tx, &row)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// AdjustBalance adds delta to a team's balance. The only path that may
// drive a balance negative.
func (s *AdminService) AdjustBalance(adminID, teamID uint, delta decimal.Decimal) (*models.Team, error) {
	var team *models.Team
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		team, err = repository.GetTeam(tx, teamID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrTeamNotFound
			}
			return err
		}

		team.CurrentBalance = team.CurrentBalance.Add(delta)
		if err := tx.Save(team).Error; err != nil {
			return err
		}

		row := models.Transaction{
			Type:        models.TransactionAdjustment,
			FromTeamID:  &adminID,
			ToTeamID:    &teamID,
			Amount:      delta.Abs(),
			Description: fmt.Sprintf("Admin balance adjustment: %s", delta.String()),
		}
		return repository.LogTransaction(tx, &row)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Admin %d adjusted team %d balance by %s", adminID, teamID, delta.String())
	return team, nil
}

// ForceTrade moves units and money between two teams without consent
// checks. Unlike the regular flows it allows negative seller stock and
// buyer balance; the transfer still credits the buyer's material units,
// matching the normal purchase convention. Logged as one secret_trade.
func (s *AdminService) ForceTrade(sellerID, buyerID uint, industry string, units int, totalPrice decimal.Decimal) error {
	if sellerID == buyerID {
		return ErrSelfTrade
	}
	if units <= 0 {
		return ErrInvalidAmount
	}
	if !models.ValidIndustry(industry) {
		return fmt.Errorf("unknown industry %q", industry)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		seller, err := repository.GetTeam(tx, sellerID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrTeamNotFound
			}
			return err
		}
		buyer, err := repository.GetTeam(tx, buyerID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrTeamNotFound
			}
			return err
		}

		sellerInv, err := repository.GetOrCreateInventory(tx, sellerID, industry)
		if err != nil {
			return err
		}
		buyerInv, err := repository.GetOrCreateInventory(tx, buyerID, industry)
		if err != nil {
			return err
		}

		sellerInv.MaterialUnits -= units
		buyerInv.MaterialUnits += units
		buyer.CurrentBalance = buyer.CurrentBalance.Sub(totalPrice)
		seller.CurrentBalance = seller.CurrentBalance.Add(totalPrice)

		for _, m := range []interface{}{seller, buyer, sellerInv, buyerInv} {
			if err := tx.Save(m).Error; err != nil {
				return err
			}
		}

		row := models.Transaction{
			Type:        models.TransactionSecretTrade,
			FromTeamID:  &buyerID,
			ToTeamID:    &sellerID,
			Industry:    &industry,
			Units:       &units,
			Amount:      totalPrice,
			Description: fmt.Sprintf("Forced trade: %d %s units", units, industry),
		}
		return repository.LogTransaction(tx, &row)
	})
}

// ReallocateRawUnits resets every non-admin team's raw units to fresh
// random allocations in [min, max].
func (s *AdminService) ReallocateRawUnits(min, max int) error {
	if min <= 0 || max < min {
		return ErrInvalidAmount
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var teams []models.Team
		if err := tx.Where("is_admin = ?", false).Find(&teams).Error; err != nil {
			return err
		}

		for _, team := range teams {
			var invs []models.Inventory
			if err := tx.Where("team_id = ?", team.ID).Find(&invs).Error; err != nil {
				return err
			}
			for i := range invs {
				invs[i].RawUnits = min + rand.Intn(max-min+1)
				if err := tx.Save(&invs[i]).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// ResetBalances sets every non-admin team's balance to the given value
func (s *AdminService) ResetBalances(balance decimal.Decimal) error {
	return s.db.Model(&models.Team{}).
		Where("is_admin = ?", false).
		Update("current_balance", balance).Error
}

// TruncateLogs erases the transaction ledger and production history.
// The admin nuke: nothing derived survives this.
func (s *AdminService) TruncateLogs() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.ProductionLog{}).Error
	})
}

// DeleteAllTeams removes every non-admin team and all dependent rows
func (s *AdminService) DeleteAllTeams() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Gift{},
			&models.ProductionLog{},
			&models.MarketplaceOffer{},
			&models.TradeRequest{},
			&models.Transaction{},
			&models.Inventory{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Where("is_admin = ?", false).Delete(&models.Team{}).Error
	})
}

// Transactions lists ledger rows, newest first, for admin reporting
func (s *AdminService) Transactions(limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []models.Transaction
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
