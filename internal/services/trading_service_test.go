package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"trading-sim/internal/models"
)

func TestAcceptSettlesSecretTrade(t *testing.T) {
	db := setupTestDB(t)
	trading := NewTradingService(db)

	buyer := createTeam(t, db, "ultratechcement", models.IndustryCement, 250000, 10)
	seller := createTeam(t, db, "tatasteel", models.IndustryIron, 250000, 10)
	setMaterialUnits(t, db, seller.ID, models.IndustryIron, 8)

	trade, err := trading.CreateRequest(buyer.ID, &models.CreateTradeRequest{
		ToTeamID:     seller.ID,
		Industry:     models.IndustryIron,
		Units:        8,
		PricePerUnit: decimal.NewFromInt(120),
		IsSecret:     true,
	})
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	if trade.Status != models.TradeStatusPending {
		t.Fatalf("expected pending trade, got %s", trade.Status)
	}
	if !trade.TotalAmount.Equal(decimal.NewFromInt(960)) {
		t.Errorf("expected total 960, got %s", trade.TotalAmount)
	}

	result, err := trading.Accept(trade.ID, seller.ID)
	if err != nil {
		t.Fatalf("Accept failed: %v", err)
	}
	if !result.TotalAmount.Equal(decimal.NewFromInt(960)) {
		t.Errorf("expected settled total 960, got %s", result.TotalAmount)
	}

	if got := getTeam(t, db, buyer.ID).CurrentBalance; !got.Equal(decimal.NewFromInt(249040)) {
		t.Errorf("expected buyer balance 249040, got %s", got)
	}
	if got := getTeam(t, db, seller.ID).CurrentBalance; !got.Equal(decimal.NewFromInt(250960)) {
		t.Errorf("expected seller balance 250960, got %s", got)
	}
	if got := getInventory(t, db, buyer.ID, models.IndustryIron).MaterialUnits; got != 8 {
		t.Errorf("expected buyer holding 8 material units, got %d", got)
	}
	if got := getInventory(t, db, seller.ID, models.IndustryIron).MaterialUnits; got != 0 {
		t.Errorf("expected seller stock emptied, got %d", got)
	}

	// A secret deal writes exactly one secret_trade row and nothing else.
	var rows []models.Transaction
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("failed to load ledger: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 ledger row, got %d", len(rows))
	}
	if rows[0].Type != models.TransactionSecretTrade {
		t.Errorf("expected secret_trade row, got %s", rows[0].Type)
	}
}

func TestAcceptNonSecretLogsPurchase(t *testing.T) {
	db := setupTestDB(t)
	trading := NewTradingService(db)

	buyer := createTeam(t, db, "tatapower", models.IndustryEnergy, 250000, 10)
	seller := createTeam(t, db, "hindalco", models.IndustryAluminium, 250000, 10)
	setMaterialUnits(t, db, seller.ID, models.IndustryAluminium, 3)

	trade, err := trading.CreateRequest(buyer.ID, &models.CreateTradeRequest{
		ToTeamID:     seller.ID,
		Industry:     models.IndustryAluminium,
		Units:        3,
		PricePerUnit: decimal.NewFromInt(200),
	})
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}

	if _, err := trading.Accept(trade.ID, seller.ID); err != nil {
		t.Fatalf("Accept failed: %v", err)
	}

	var row models.Transaction
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("failed to load ledger row: %v", err)
	}
	if row.Type != models.TransactionPurchase {
		t.Errorf("expected purchase row for open trade, got %s", row.Type)
	}
}

func TestAcceptFailureLeavesRequestPending(t *testing.T) {
	db := setupTestDB(t)
	trading := NewTradingService(db)

	buyer := createTeam(t, db, "sail", models.IndustryIron, 250000, 10)
	seller := createTeam(t, db, "centuryply", models.IndustryWood, 250000, 10)
	setMaterialUnits(t, db, seller.ID, models.IndustryWood, 10)

	trade, err := trading.CreateRequest(buyer.ID, &models.CreateTradeRequest{
		ToTeamID:     seller.ID,
		Industry:     models.IndustryWood,
		Units:        10,
		PricePerUnit: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}

	// Buyer's funds drain between request and acceptance.
	err = db.Model(&models.Team{}).Where("id = ?", buyer.ID).
		Update("current_balance", decimal.NewFromInt(500)).Error
	if err != nil {
		t.Fatalf("failed to drain buyer balance: %v", err)
	}

	_, err = trading.Accept(trade.ID, seller.ID)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	var after models.TradeRequest
	if err := db.Where("id = ?", trade.ID).First(&after).Error; err != nil {
		t.Fatalf("failed to reload trade: %v", err)
	}
	if after.Status != models.TradeStatusPending {
		t.Errorf("failed acceptance must leave the request pending, got %s", after.Status)
	}
	if got := getInventory(t, db, seller.ID, models.IndustryWood).MaterialUnits; got != 10 {
		t.Errorf("seller stock should be unchanged, got %d", got)
	}

	// Refunded buyer can still settle the same request.
	err = db.Model(&models.Team{}).Where("id = ?", buyer.ID).
		Update("current_balance", decimal.NewFromInt(250000)).Error
	if err != nil {
		t.Fatalf("failed to restore buyer balance: %v", err)
	}
	if _, err := trading.Accept(trade.ID, seller.ID); err != nil {
		t.Fatalf("Accept after refund failed: %v", err)
	}
}

func TestTradeTransitionsAreSingleShot(t *testing.T) {
	db := setupTestDB(t)
	trading := NewTradingService(db)

	buyer := createTeam(t, db, "jindalsteel", models.IndustryIron, 250000, 10)
	seller := createTeam(t, db, "ntpclimited", models.IndustryEnergy, 250000, 10)
	setMaterialUnits(t, db, seller.ID, models.IndustryEnergy, 5)

	trade, err := trading.CreateRequest(buyer.ID, &models.CreateTradeRequest{
		ToTeamID:     seller.ID,
		Industry:     models.IndustryEnergy,
		Units:        5,
		PricePerUnit: decimal.NewFromInt(30),
	})
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}

	// The requester cannot reject, the counterparty cannot cancel.
	if err := trading.Reject(trade.ID, buyer.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("requester reject: expected ErrUnauthorized, got %v", err)
	}
	if err := trading.Cancel(trade.ID, seller.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("counterparty cancel: expected ErrUnauthorized, got %v", err)
	}

	if err := trading.Reject(trade.ID, seller.ID); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}

	// No further transitions once the request left pending.
	if _, err := trading.Accept(trade.ID, seller.ID); !errors.Is(err, ErrAlreadyProcessed) {
		t.Errorf("accept after reject: expected ErrAlreadyProcessed, got %v", err)
	}
	if err := trading.Cancel(trade.ID, buyer.ID); !errors.Is(err, ErrAlreadyProcessed) {
		t.Errorf("cancel after reject: expected ErrAlreadyProcessed, got %v", err)
	}

	// Rejection has no economic effect.
	if got := getTeam(t, db, buyer.ID).CurrentBalance; !got.Equal(decimal.NewFromInt(250000)) {
		t.Errorf("buyer balance should be unchanged, got %s", got)
	}
	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no ledger rows, got %d", count)
	}
}

func TestCancelRequesterWithdraws(t *testing.T) {
	db := setupTestDB(t)
	trading := NewTradingService(db)

	buyer := createTeam(t, db, "adanipower", models.IndustryEnergy, 250000, 10)
	seller := createTeam(t, db, "ambujacements", models.IndustryCement, 250000, 10)

	trade, err := trading.CreateRequest(buyer.ID, &models.CreateTradeRequest{
		ToTeamID:     seller.ID,
		Industry:     models.IndustryCement,
		Units:        2,
		PricePerUnit: decimal.NewFromInt(45),
	})
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}

	if err := trading.Cancel(trade.ID, buyer.ID); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	var after models.TradeRequest
	if err := db.Where("id = ?", trade.ID).First(&after).Error; err != nil {
		t.Fatalf("failed to reload trade: %v", err)
	}
	if after.Status != models.TradeStatusCancelled {
		t.Errorf("expected cancelled, got %s", after.Status)
	}
}

func TestCreateRequestValidation(t *testing.T) {
	db := setupTestDB(t)
	trading := NewTradingService(db)

	buyer := createTeam(t, db, "relianceenergy", models.IndustryEnergy, 250000, 10)
	seller := createTeam(t, db, "shreecement", models.IndustryCement, 250000, 10)

	_, err := trading.CreateRequest(buyer.ID, &models.CreateTradeRequest{
		ToTeamID:     buyer.ID,
		Industry:     models.IndustryCement,
		Units:        1,
		PricePerUnit: decimal.NewFromInt(10),
	})
	if !errors.Is(err, ErrSelfTrade) {
		t.Errorf("expected ErrSelfTrade, got %v", err)
	}

	_, err = trading.CreateRequest(buyer.ID, &models.CreateTradeRequest{
		ToTeamID:     seller.ID,
		Industry:     "Plastics",
		Units:        1,
		PricePerUnit: decimal.NewFromInt(10),
	})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for unknown industry, got %v", err)
	}

	_, err = trading.CreateRequest(buyer.ID, &models.CreateTradeRequest{
		ToTeamID:     seller.ID,
		Industry:     models.IndustryCement,
		Units:        100000,
		PricePerUnit: decimal.NewFromInt(100),
	})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds beyond buyer balance, got %v", err)
	}
}

func TestIncomingAndOutgoingListings(t *testing.T) {
	db := setupTestDB(t)
	trading := NewTradingService(db)

	buyer := createTeam(t, db, "greenplyindustries", models.IndustryWood, 250000, 10)
	seller := createTeam(t, db, "nalco", models.IndustryAluminium, 250000, 10)
	setMaterialUnits(t, db, seller.ID, models.IndustryAluminium, 5)

	first, err := trading.CreateRequest(buyer.ID, &models.CreateTradeRequest{
		ToTeamID:     seller.ID,
		Industry:     models.IndustryAluminium,
		Units:        2,
		PricePerUnit: decimal.NewFromInt(75),
	})
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	if err := trading.Reject(first.ID, seller.ID); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}

	second, err := trading.CreateRequest(buyer.ID, &models.CreateTradeRequest{
		ToTeamID:     seller.ID,
		Industry:     models.IndustryAluminium,
		Units:        3,
		PricePerUnit: decimal.NewFromInt(75),
	})
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}

	// Incoming shows only pending requests.
	incoming, err := trading.Incoming(seller.ID)
	if err != nil {
		t.Fatalf("Incoming failed: %v", err)
	}
	if len(incoming) != 1 || incoming[0].ID != second.ID {
		t.Fatalf("expected only the pending request incoming, got %d", len(incoming))
	}
	if incoming[0].Counterparty != "greenplyindustries" {
		t.Errorf("expected requester name, got %q", incoming[0].Counterparty)
	}

	// Outgoing shows the full history.
	outgoing, err := trading.Outgoing(buyer.ID)
	if err != nil {
		t.Fatalf("Outgoing failed: %v", err)
	}
	if len(outgoing) != 2 {
		t.Fatalf("expected 2 outgoing requests, got %d", len(outgoing))
	}
}
