package services

import (
	"fmt"
	"log"

	"trading-sim/internal/models"
	"trading-sim/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GiftService hands out the one-time admin grant of material units.
// No money changes hands; the ledger row carries a zero amount.
type GiftService struct {
	db *gorm.DB
}

// NewGiftService creates a new GiftService
func NewGiftService(db *gorm.DB) *GiftService {
	return &GiftService{db: db}
}

// SendGift grants units material units of the team's own industry. The
// already-gifted check and the write share one transaction, so two
// concurrent sends cannot both apply.
func (s *GiftService) SendGift(adminID uint, teamID uint, units int) (*models.Gift, error) {
	if units <= 0 {
		return nil, ErrInvalidAmount
	}

	var gift *models.Gift
	err := s.db.Transaction(func(tx *gorm.DB) error {
		admin, err := repository.GetTeam(tx, adminID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrTeamNotFound
			}
			return err
		}
		if !admin.IsAdmin {
			return ErrUnauthorized
		}

		team, err := repository.GetTeam(tx, teamID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrTeamNotFound
			}
			return err
		}
		if team.IsAdmin {
			return ErrUnauthorized
		}

		var existing models.Gift
		err = tx.Where("team_id = ? AND is_applied = ?", teamID, true).First(&existing).Error
		if err == nil {
			return ErrAlreadyGifted
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		inv, err := repository.GetOrCreateInventory(tx, teamID, team.Industry)
		if err != nil {
			return err
		}
		inv.MaterialUnits += units
		if err := tx.Save(inv).Error; err != nil {
			return err
		}

		gift = &models.Gift{
			TeamID:        teamID,
			Industry:      team.Industry,
			Units:         units,
			SentByAdminID: adminID,
			IsApplied:     true,
		}
		if err := tx.Create(gift).Error; err != nil {
			return err
		}

		industry := team.Industry
		row := models.Transaction{
			Type:        models.TransactionGift,
			ToTeamID:    &teamID,
			Industry:    &industry,
			Units:       &units,
			Amount:      decimal.Zero,
			Description: fmt.Sprintf("Admin gift: %d %s material units", units, industry),
		}
		return repository.LogTransaction(tx, &row)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Admin %d gifted %d %s units to team %d", adminID, gift.Units, gift.Industry, teamID)
	return gift, nil
}

// GiftStatus reports whether a team has received its gift
func (s *GiftService) GiftStatus(teamID uint) (*models.Gift, error) {
	if _, err := repository.GetTeam(s.db, teamID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	var gift models.Gift
	err := s.db.Where("team_id = ? AND is_applied = ?", teamID, true).First(&gift).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &gift, nil
}

// AllGifts lists every gift sent, newest first
func (s *GiftService) AllGifts() ([]models.Gift, error) {
	var gifts []models.Gift
	if err := s.db.Order("created_at DESC").Find(&gifts).Error; err != nil {
		return nil, err
	}
	return gifts, nil
}

// TeamsWithoutGifts lists non-admin teams still eligible for a gift
func (s *GiftService) TeamsWithoutGifts() ([]models.Team, error) {
	var teams []models.Team
	err := s.db.Where("is_admin = ?", false).
		Where("id NOT IN (?)", s.db.Model(&models.Gift{}).Select("team_id").Where("is_applied = ?", true)).
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}
