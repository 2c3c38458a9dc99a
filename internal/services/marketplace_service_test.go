package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"trading-sim/internal/models"
)

func TestMarketplaceBuySettlesAndDeactivates(t *testing.T) {
	db := setupTestDB(t)
	production := NewProductionService(db)
	marketplace := NewMarketplaceService(db)

	seller := createTeam(t, db, "tatasteel", models.IndustryIron, 250000, 10)
	buyer := createTeam(t, db, "ultratechcement", models.IndustryCement, 250000, 10)

	if _, err := production.Produce(seller.ID, 10); err != nil {
		t.Fatalf("Produce failed: %v", err)
	}

	offer, err := marketplace.CreateOffer(seller.ID, 10, decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("CreateOffer failed: %v", err)
	}

	result, err := marketplace.Buy(buyer.ID, offer.ID, 5)
	if err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if !result.TotalCost.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected total cost 500, got %s", result.TotalCost)
	}

	if got := getTeam(t, db, seller.ID).CurrentBalance; !got.Equal(decimal.NewFromInt(250500)) {
		t.Errorf("expected seller balance 250500, got %s", got)
	}
	if got := getTeam(t, db, buyer.ID).CurrentBalance; !got.Equal(decimal.NewFromInt(249500)) {
		t.Errorf("expected buyer balance 249500, got %s", got)
	}
	if got := getInventory(t, db, seller.ID, models.IndustryIron).MaterialUnits; got != 5 {
		t.Errorf("expected seller left with 5 material units, got %d", got)
	}
	if got := getInventory(t, db, buyer.ID, models.IndustryIron).MaterialUnits; got != 5 {
		t.Errorf("expected buyer holding 5 material units, got %d", got)
	}

	// Each buy writes a purchase row and a sale row.
	var purchases, sales int64
	db.Model(&models.Transaction{}).Where("type = ?", models.TransactionPurchase).Count(&purchases)
	db.Model(&models.Transaction{}).Where("type = ?", models.TransactionSale).Count(&sales)
	if purchases != 1 || sales != 1 {
		t.Errorf("expected 1 purchase and 1 sale row, got %d and %d", purchases, sales)
	}

	// Buying the rest exhausts the offer.
	if _, err := marketplace.Buy(buyer.ID, offer.ID, 5); err != nil {
		t.Fatalf("second Buy failed: %v", err)
	}

	var after models.MarketplaceOffer
	if err := db.First(&after, offer.ID).Error; err != nil {
		t.Fatalf("failed to reload offer: %v", err)
	}
	if after.IsActive {
		t.Error("exhausted offer should be inactive")
	}
	if after.UnitsAvailable != 0 {
		t.Errorf("expected 0 units available, got %d", after.UnitsAvailable)
	}

	if _, err := marketplace.Buy(buyer.ID, offer.ID, 1); !errors.Is(err, ErrOfferNotFound) {
		t.Errorf("expected ErrOfferNotFound on inactive offer, got %v", err)
	}
}

func TestCreateOfferRequiresOwnIndustryStock(t *testing.T) {
	db := setupTestDB(t)
	marketplace := NewMarketplaceService(db)

	seller := createTeam(t, db, "tatapower", models.IndustryEnergy, 250000, 10)

	_, err := marketplace.CreateOffer(seller.ID, 5, decimal.NewFromInt(50))
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock with no material units, got %v", err)
	}

	setMaterialUnits(t, db, seller.ID, models.IndustryEnergy, 5)
	if _, err := marketplace.CreateOffer(seller.ID, 5, decimal.NewFromInt(50)); err != nil {
		t.Fatalf("CreateOffer failed with stock available: %v", err)
	}
}

func TestBuyRejectsOwnOffer(t *testing.T) {
	db := setupTestDB(t)
	marketplace := NewMarketplaceService(db)

	seller := createTeam(t, db, "nalco", models.IndustryAluminium, 250000, 10)
	setMaterialUnits(t, db, seller.ID, models.IndustryAluminium, 5)

	offer, err := marketplace.CreateOffer(seller.ID, 5, decimal.NewFromInt(80))
	if err != nil {
		t.Fatalf("CreateOffer failed: %v", err)
	}

	if _, err := marketplace.Buy(seller.ID, offer.ID, 1); !errors.Is(err, ErrSelfTrade) {
		t.Errorf("expected ErrSelfTrade, got %v", err)
	}
}

func TestBuyInsufficientFundsLeavesStateAlone(t *testing.T) {
	db := setupTestDB(t)
	marketplace := NewMarketplaceService(db)

	seller := createTeam(t, db, "greenply", models.IndustryWood, 250000, 10)
	buyer := createTeam(t, db, "acclimited", models.IndustryCement, 100, 10)
	setMaterialUnits(t, db, seller.ID, models.IndustryWood, 10)

	offer, err := marketplace.CreateOffer(seller.ID, 10, decimal.NewFromInt(50))
	if err != nil {
		t.Fatalf("CreateOffer failed: %v", err)
	}

	_, err = marketplace.Buy(buyer.ID, offer.ID, 10)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if got := getTeam(t, db, buyer.ID).CurrentBalance; !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("buyer balance should be unchanged, got %s", got)
	}
	if got := getInventory(t, db, seller.ID, models.IndustryWood).MaterialUnits; got != 10 {
		t.Errorf("seller stock should be unchanged, got %d", got)
	}

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no ledger rows, got %d", count)
	}
}

func TestBuyChecksLiveSellerStock(t *testing.T) {
	db := setupTestDB(t)
	marketplace := NewMarketplaceService(db)

	seller := createTeam(t, db, "vedanta", models.IndustryAluminium, 250000, 10)
	buyer := createTeam(t, db, "shreecement", models.IndustryCement, 250000, 10)
	setMaterialUnits(t, db, seller.ID, models.IndustryAluminium, 10)

	offer, err := marketplace.CreateOffer(seller.ID, 10, decimal.NewFromInt(60))
	if err != nil {
		t.Fatalf("CreateOffer failed: %v", err)
	}

	// Inventory drains after listing; the offer count goes stale.
	setMaterialUnits(t, db, seller.ID, models.IndustryAluminium, 3)

	_, err = marketplace.Buy(buyer.ID, offer.ID, 5)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock against live inventory, got %v", err)
	}

	// A purchase within the live stock still works.
	if _, err := marketplace.Buy(buyer.ID, offer.ID, 3); err != nil {
		t.Fatalf("Buy within live stock failed: %v", err)
	}
}

func TestUpdateOfferSellerOnly(t *testing.T) {
	db := setupTestDB(t)
	marketplace := NewMarketplaceService(db)

	seller := createTeam(t, db, "balco", models.IndustryAluminium, 250000, 10)
	other := createTeam(t, db, "ntpc", models.IndustryEnergy, 250000, 10)
	setMaterialUnits(t, db, seller.ID, models.IndustryAluminium, 10)

	offer, err := marketplace.CreateOffer(seller.ID, 10, decimal.NewFromInt(40))
	if err != nil {
		t.Fatalf("CreateOffer failed: %v", err)
	}

	newPrice := decimal.NewFromInt(55)
	_, err = marketplace.UpdateOffer(offer.ID, other.ID, &models.UpdateOfferRequest{NewPrice: &newPrice})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for foreign update, got %v", err)
	}

	updated, err := marketplace.UpdateOffer(offer.ID, seller.ID, &models.UpdateOfferRequest{NewPrice: &newPrice})
	if err != nil {
		t.Fatalf("UpdateOffer failed: %v", err)
	}
	if !updated.PricePerUnit.Equal(newPrice) {
		t.Errorf("expected price 55, got %s", updated.PricePerUnit)
	}

	deactivated, err := marketplace.UpdateOffer(offer.ID, seller.ID, &models.UpdateOfferRequest{Deactivate: true})
	if err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if deactivated.IsActive {
		t.Error("offer should be inactive after deactivation")
	}
}

func TestActiveOffersCheapestFirst(t *testing.T) {
	db := setupTestDB(t)
	marketplace := NewMarketplaceService(db)

	a := createTeam(t, db, "kitply", models.IndustryWood, 250000, 10)
	b := createTeam(t, db, "archidply", models.IndustryWood, 250000, 10)
	buyer := createTeam(t, db, "adanipower", models.IndustryEnergy, 250000, 10)
	setMaterialUnits(t, db, a.ID, models.IndustryWood, 10)
	setMaterialUnits(t, db, b.ID, models.IndustryWood, 10)

	if _, err := marketplace.CreateOffer(a.ID, 5, decimal.NewFromInt(90)); err != nil {
		t.Fatalf("CreateOffer failed: %v", err)
	}
	if _, err := marketplace.CreateOffer(b.ID, 5, decimal.NewFromInt(70)); err != nil {
		t.Fatalf("CreateOffer failed: %v", err)
	}

	listings, err := marketplace.ActiveOffers("", 0)
	if err != nil {
		t.Fatalf("ActiveOffers failed: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}
	if !listings[0].PricePerUnit.Equal(decimal.NewFromInt(70)) {
		t.Errorf("expected cheapest offer first, got %s", listings[0].PricePerUnit)
	}
	if listings[0].SellerName != "archidply" {
		t.Errorf("expected seller name resolved, got %q", listings[0].SellerName)
	}

	// Excluding the buyer changes nothing; excluding a seller hides theirs.
	filtered, err := marketplace.ActiveOffers(models.IndustryWood, a.ID)
	if err != nil {
		t.Fatalf("ActiveOffers with filters failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].SellerTeamID != b.ID {
		t.Errorf("expected only team b's offer, got %+v", filtered)
	}

	none, err := marketplace.ActiveOffers(models.IndustryCement, buyer.ID)
	if err != nil {
		t.Fatalf("ActiveOffers failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no cement offers, got %d", len(none))
	}
}
