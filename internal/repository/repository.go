package repository

import (
	"trading-sim/internal/models"

	"gorm.io/gorm"
)

// Shared data access for the economy services. Every function takes the
// gorm handle it should run on, so callers can pass either the root
// connection or the *gorm.DB of an open transaction; the gating reads
// and the mutations of one economic operation must share a handle.

// GetTeam retrieves a team by ID
func GetTeam(db *gorm.DB, teamID uint) (*models.Team, error) {
	var team models.Team
	if err := db.First(&team, teamID).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// GetTeamByUsername retrieves a team by its login username
func GetTeamByUsername(db *gorm.DB, username string) (*models.Team, error) {
	var team models.Team
	if err := db.Where("username = ?", username).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// GetInventory retrieves the (team, industry) inventory row, if any
func GetInventory(db *gorm.DB, teamID uint, industry string) (*models.Inventory, error) {
	var inv models.Inventory
	if err := db.Where("team_id = ? AND industry = ?", teamID, industry).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetOrCreateInventory returns the (team, industry) inventory row,
// creating an empty one on first need. Production, marketplace, trading
// and gifting all go through this upsert instead of creating rows ad hoc.
func GetOrCreateInventory(db *gorm.DB, teamID uint, industry string) (*models.Inventory, error) {
	var inv models.Inventory
	err := db.Where("team_id = ? AND industry = ?", teamID, industry).First(&inv).Error
	if err == nil {
		return &inv, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	inv = models.Inventory{
		TeamID:        teamID,
		Industry:      industry,
		RawUnits:      0,
		MaterialUnits: 0,
	}
	if err := db.Create(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// TeamInventories returns all inventory rows for a team, in canonical
// industry order.
func TeamInventories(db *gorm.DB, teamID uint) ([]models.Inventory, error) {
	var invs []models.Inventory
	if err := db.Where("team_id = ?", teamID).Find(&invs).Error; err != nil {
		return nil, err
	}

	byIndustry := make(map[string]models.Inventory, len(invs))
	for _, inv := range invs {
		byIndustry[inv.Industry] = inv
	}
	ordered := make([]models.Inventory, 0, len(invs))
	for _, ind := range models.Industries {
		if inv, ok := byIndustry[ind]; ok {
			ordered = append(ordered, inv)
		}
	}
	return ordered, nil
}

// TeamNames resolves team IDs to display names in one query
func TeamNames(db *gorm.DB, teamIDs []uint) (map[uint]string, error) {
	if len(teamIDs) == 0 {
		return map[uint]string{}, nil
	}

	var teams []models.Team
	if err := db.Select("id", "name").Where("id IN ?", teamIDs).Find(&teams).Error; err != nil {
		return nil, err
	}

	names := make(map[uint]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}
	return names, nil
}

// LogTransaction appends one row to the transaction ledger
func LogTransaction(db *gorm.DB, tx *models.Transaction) error {
	return db.Create(tx).Error
}
