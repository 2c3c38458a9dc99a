package services

import (
	"fmt"
	"log"

	"trading-sim/internal/models"
	"trading-sim/internal/repository"

	"gorm.io/gorm"
)

// ProductionService converts raw units from the other four industries
// into material units of the team's own industry, one for one.
type ProductionService struct {
	db *gorm.DB
}

// NewProductionService creates a new ProductionService
func NewProductionService(db *gorm.DB) *ProductionService {
	return &ProductionService{db: db}
}

// ProduceResult summarizes a successful production run
type ProduceResult struct {
	Industry      string         `json:"industry"`
	UnitsProduced int            `json:"units_produced"`
	InputsUsed    map[string]int `json:"inputs_used"`
	Message       string         `json:"message"`
}

// Produce converts units raw units from each other industry into units
// material units of the team's own industry. The checks and the commit
// run in one transaction: either every input row has enough and all are
// decremented together, or nothing is consumed.
func (s *ProductionService) Produce(teamID uint, units int) (*ProduceResult, error) {
	if units <= 0 {
		return nil, ErrInvalidAmount
	}

	var result *ProduceResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		team, err := repository.GetTeam(tx, teamID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrTeamNotFound
			}
			return err
		}

		others := models.OtherIndustries(team.Industry)

		// Gate on every input industry before touching any row.
		inputs := make([]*models.Inventory, 0, len(others))
		for _, industry := range others {
			inv, err := repository.GetInventory(tx, teamID, industry)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return fmt.Errorf("%w: no %s inventory", ErrInsufficientInput, industry)
				}
				return err
			}
			if inv.RawUnits < units {
				return fmt.Errorf("%w: %s has %d, need %d", ErrInsufficientInput, industry, inv.RawUnits, units)
			}
			inputs = append(inputs, inv)
		}

		ownInv, err := repository.GetOrCreateInventory(tx, teamID, team.Industry)
		if err != nil {
			return err
		}

		prodLog := models.ProductionLog{
			TeamID:        teamID,
			UnitsProduced: units,
		}
		for _, inv := range inputs {
			inv.RawUnits -= units
			if err := tx.Save(inv).Error; err != nil {
				return err
			}
			prodLog.SetInputUsed(inv.Industry, units)
		}

		ownInv.MaterialUnits += units
		if err := tx.Save(ownInv).Error; err != nil {
			return err
		}

		if err := tx.Create(&prodLog).Error; err != nil {
			return err
		}

		result = &ProduceResult{
			Industry:      team.Industry,
			UnitsProduced: units,
			InputsUsed:    prodLog.InputsUsed(),
			Message:       fmt.Sprintf("Successfully produced %d %s material units", units, team.Industry),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Team %d produced %d %s units", teamID, result.UnitsProduced, result.Industry)
	return result, nil
}

// Requirements reports, for each input industry, required versus
// available raw units for producing the given amount. Mutates nothing.
func (s *ProductionService) Requirements(teamID uint, units int) (string, bool, []models.ProductionRequirement, error) {
	team, err := repository.GetTeam(s.db, teamID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", false, nil, ErrTeamNotFound
		}
		return "", false, nil, err
	}

	canProduce := true
	others := models.OtherIndustries(team.Industry)
	requirements := make([]models.ProductionRequirement, 0, len(others))

	for _, industry := range others {
		available := 0
		if inv, err := repository.GetInventory(s.db, teamID, industry); err == nil {
			available = inv.RawUnits
		} else if err != gorm.ErrRecordNotFound {
			return "", false, nil, err
		}

		sufficient := available >= units
		if !sufficient {
			canProduce = false
		}
		requirements = append(requirements, models.ProductionRequirement{
			Industry:   industry,
			Required:   units,
			Available:  available,
			Sufficient: sufficient,
		})
	}

	return team.Industry, canProduce, requirements, nil
}

// History returns the team's most recent production runs
func (s *ProductionService) History(teamID uint, limit int) ([]models.ProductionLog, error) {
	if limit <= 0 {
		limit = 10
	}
	var logs []models.ProductionLog
	if err := s.db.Where("team_id = ?", teamID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
