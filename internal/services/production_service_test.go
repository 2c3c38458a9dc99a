package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"trading-sim/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// cache=shared keeps the schema visible across handles to the
	// in-memory DB within one test binary.
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Team{},
		&models.Inventory{},
		&models.MarketplaceOffer{},
		&models.TradeRequest{},
		&models.Transaction{},
		&models.ProductionLog{},
		&models.Gift{},
		&models.GameState{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	cleanTables(db)
	return db
}

func cleanTables(db *gorm.DB) {
	for _, table := range []string{
		"transactions",
		"production_logs",
		"marketplace_offers",
		"trade_requests",
		"gifts",
		"game_state",
		"inventory",
		"teams",
	} {
		db.Exec("DELETE FROM " + table)
	}
}

// createTeam inserts a team with one inventory row per industry, every
// row holding rawUnits raw units and zero material units.
func createTeam(t *testing.T, db *gorm.DB, name, industry string, balance int64, rawUnits int) *models.Team {
	t.Helper()
	team := models.Team{
		Name:           name,
		Industry:       industry,
		Username:       name,
		PasswordHash:   "x",
		InitialBalance: decimal.NewFromInt(balance),
		CurrentBalance: decimal.NewFromInt(balance),
	}
	if err := db.Create(&team).Error; err != nil {
		t.Fatalf("failed to create team: %v", err)
	}
	for _, ind := range models.Industries {
		inv := models.Inventory{TeamID: team.ID, Industry: ind, RawUnits: rawUnits}
		if err := db.Create(&inv).Error; err != nil {
			t.Fatalf("failed to create inventory: %v", err)
		}
	}
	return &team
}

func setMaterialUnits(t *testing.T, db *gorm.DB, teamID uint, industry string, units int) {
	t.Helper()
	err := db.Model(&models.Inventory{}).
		Where("team_id = ? AND industry = ?", teamID, industry).
		Update("material_units", units).Error
	if err != nil {
		t.Fatalf("failed to set material units: %v", err)
	}
}

func getInventory(t *testing.T, db *gorm.DB, teamID uint, industry string) *models.Inventory {
	t.Helper()
	var inv models.Inventory
	if err := db.Where("team_id = ? AND industry = ?", teamID, industry).First(&inv).Error; err != nil {
		t.Fatalf("failed to get inventory: %v", err)
	}
	return &inv
}

func getTeam(t *testing.T, db *gorm.DB, teamID uint) *models.Team {
	t.Helper()
	var team models.Team
	if err := db.First(&team, teamID).Error; err != nil {
		t.Fatalf("failed to get team: %v", err)
	}
	return &team
}

func TestProduceConsumesAllInputs(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductionService(db)

	team := createTeam(t, db, "tatasteel", models.IndustryIron, 250000, 10)

	result, err := service.Produce(team.ID, 4)
	if err != nil {
		t.Fatalf("Produce failed: %v", err)
	}
	if result.UnitsProduced != 4 {
		t.Errorf("expected 4 units produced, got %d", result.UnitsProduced)
	}

	for _, industry := range models.OtherIndustries(models.IndustryIron) {
		inv := getInventory(t, db, team.ID, industry)
		if inv.RawUnits != 6 {
			t.Errorf("%s: expected 6 raw units left, got %d", industry, inv.RawUnits)
		}
		if used := result.InputsUsed[industry]; used != 4 {
			t.Errorf("%s: expected 4 units used, got %d", industry, used)
		}
	}

	own := getInventory(t, db, team.ID, models.IndustryIron)
	if own.MaterialUnits != 4 {
		t.Errorf("expected 4 material units, got %d", own.MaterialUnits)
	}
	if own.RawUnits != 10 {
		t.Errorf("own raw units should be untouched, got %d", own.RawUnits)
	}

	var count int64
	db.Model(&models.ProductionLog{}).Where("team_id = ?", team.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 production log row, got %d", count)
	}
}

func TestProduceInsufficientInputConsumesNothing(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductionService(db)

	team := createTeam(t, db, "jswsteel", models.IndustryIron, 250000, 10)

	// Drop one input below the requested amount.
	err := db.Model(&models.Inventory{}).
		Where("team_id = ? AND industry = ?", team.ID, models.IndustryWood).
		Update("raw_units", 3).Error
	if err != nil {
		t.Fatalf("failed to set raw units: %v", err)
	}

	_, err = service.Produce(team.ID, 5)
	if !errors.Is(err, ErrInsufficientInput) {
		t.Fatalf("expected ErrInsufficientInput, got %v", err)
	}

	// No partial consumption anywhere.
	for _, industry := range models.OtherIndustries(models.IndustryIron) {
		inv := getInventory(t, db, team.ID, industry)
		want := 10
		if industry == models.IndustryWood {
			want = 3
		}
		if inv.RawUnits != want {
			t.Errorf("%s: expected %d raw units, got %d", industry, want, inv.RawUnits)
		}
	}

	own := getInventory(t, db, team.ID, models.IndustryIron)
	if own.MaterialUnits != 0 {
		t.Errorf("expected 0 material units, got %d", own.MaterialUnits)
	}

	var count int64
	db.Model(&models.ProductionLog{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no production log rows, got %d", count)
	}
}

func TestProduceRejectsNonPositiveUnits(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductionService(db)

	team := createTeam(t, db, "sail", models.IndustryIron, 250000, 10)

	for _, units := range []int{0, -3} {
		if _, err := service.Produce(team.ID, units); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("units=%d: expected ErrInvalidAmount, got %v", units, err)
		}
	}
}

func TestRequirementsReportsShortfalls(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductionService(db)

	team := createTeam(t, db, "hindalco", models.IndustryAluminium, 250000, 8)

	err := db.Model(&models.Inventory{}).
		Where("team_id = ? AND industry = ?", team.ID, models.IndustryEnergy).
		Update("raw_units", 2).Error
	if err != nil {
		t.Fatalf("failed to set raw units: %v", err)
	}

	industry, canProduce, reqs, err := service.Requirements(team.ID, 5)
	if err != nil {
		t.Fatalf("Requirements failed: %v", err)
	}
	if industry != models.IndustryAluminium {
		t.Errorf("expected industry %s, got %s", models.IndustryAluminium, industry)
	}
	if canProduce {
		t.Error("expected canProduce=false with an energy shortfall")
	}
	if len(reqs) != 4 {
		t.Fatalf("expected 4 requirements, got %d", len(reqs))
	}

	for _, req := range reqs {
		if req.Industry == models.IndustryAluminium {
			t.Error("own industry must not appear in requirements")
		}
		if req.Required != 5 {
			t.Errorf("%s: expected required 5, got %d", req.Industry, req.Required)
		}
		wantSufficient := req.Industry != models.IndustryEnergy
		if req.Sufficient != wantSufficient {
			t.Errorf("%s: expected sufficient=%v", req.Industry, wantSufficient)
		}
	}

	// Requirements must not mutate anything.
	inv := getInventory(t, db, team.ID, models.IndustryEnergy)
	if inv.RawUnits != 2 {
		t.Errorf("expected raw units unchanged at 2, got %d", inv.RawUnits)
	}
}
