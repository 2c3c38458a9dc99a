package services

import (
	"fmt"
	"log"

	"trading-sim/internal/models"
	"trading-sim/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MarketplaceService runs the public sell-side order book: teams list
// material units of their own industry, anyone else can buy.
type MarketplaceService struct {
	db *gorm.DB
}

// NewMarketplaceService creates a new MarketplaceService
func NewMarketplaceService(db *gorm.DB) *MarketplaceService {
	return &MarketplaceService{db: db}
}

// CreateOffer lists units of the seller's own-industry material
// inventory at the given price. Inventory is not reserved; the offer's
// available count is advisory until settlement.
func (s *MarketplaceService) CreateOffer(sellerID uint, units int, pricePerUnit decimal.Decimal) (*models.MarketplaceOffer, error) {
	if units <= 0 || pricePerUnit.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	var offer *models.MarketplaceOffer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		team, err := repository.GetTeam(tx, sellerID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrTeamNotFound
			}
			return err
		}

		inv, err := repository.GetInventory(tx, sellerID, team.Industry)
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}
		if inv == nil || inv.MaterialUnits < units {
			return fmt.Errorf("%w: offering %d %s units", ErrInsufficientStock, units, team.Industry)
		}

		offer = &models.MarketplaceOffer{
			SellerTeamID:   sellerID,
			Industry:       team.Industry,
			UnitsAvailable: units,
			PricePerUnit:   pricePerUnit,
			IsActive:       true,
		}
		return tx.Create(offer).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Team %d listed %d %s units at %s/unit", sellerID, units, offer.Industry, pricePerUnit.String())
	return offer, nil
}

// UpdateOffer re-prices, re-sizes or deactivates an offer. Only the
// original seller may mutate it; new unit counts are validated against
// the seller's current inventory.
func (s *MarketplaceService) UpdateOffer(offerID uint, sellerID uint, req *models.UpdateOfferRequest) (*models.MarketplaceOffer, error) {
	var offer models.MarketplaceOffer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&offer, offerID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrOfferNotFound
			}
			return err
		}
		if offer.SellerTeamID != sellerID {
			return ErrUnauthorized
		}

		if req.Deactivate {
			offer.IsActive = false
			return tx.Save(&offer).Error
		}

		if req.NewPrice != nil {
			if req.NewPrice.LessThanOrEqual(decimal.Zero) {
				return ErrInvalidAmount
			}
			offer.PricePerUnit = *req.NewPrice
		}

		if req.NewUnits != nil {
			if *req.NewUnits <= 0 {
				return ErrInvalidAmount
			}
			inv, err := repository.GetInventory(tx, sellerID, offer.Industry)
			if err != nil && err != gorm.ErrRecordNotFound {
				return err
			}
			if inv == nil || inv.MaterialUnits < *req.NewUnits {
				return ErrInsufficientStock
			}
			offer.UnitsAvailable = *req.NewUnits
		}

		return tx.Save(&offer).Error
	})
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// BuyResult summarizes a settled marketplace purchase
type BuyResult struct {
	OfferID   uint            `json:"offer_id"`
	Industry  string          `json:"industry"`
	Units     int             `json:"units"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Message   string          `json:"message"`
}

// Buy settles a purchase against an active offer: debit buyer, credit
// seller, move material units, decrement offer availability, and append
// buyer- and seller-perspective ledger rows. All checks re-read live
// values inside the same transaction that commits the transfer, so the
// seller's actual inventory, not the offer's cached count, is
// authoritative.
func (s *MarketplaceService) Buy(buyerID uint, offerID uint, units int) (*BuyResult, error) {
	var result *BuyResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var offer models.MarketplaceOffer
		if err := tx.Where("id = ? AND is_active = ?", offerID, true).First(&offer).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrOfferNotFound
			}
			return err
		}

		if offer.SellerTeamID == buyerID {
			return ErrSelfTrade
		}
		if units <= 0 || units > offer.UnitsAvailable {
			return ErrInvalidAmount
		}

		totalCost := offer.PricePerUnit.Mul(decimal.NewFromInt(int64(units)))

		buyer, err := repository.GetTeam(tx, buyerID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrTeamNotFound
			}
			return err
		}
		seller, err := repository.GetTeam(tx, offer.SellerTeamID)
		if err != nil {
			return err
		}

		if buyer.CurrentBalance.LessThan(totalCost) {
			return fmt.Errorf("%w: need %s", ErrInsufficientFunds, totalCost.String())
		}

		sellerInv, err := repository.GetInventory(tx, seller.ID, offer.Industry)
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}
		if sellerInv == nil || sellerInv.MaterialUnits < units {
			return fmt.Errorf("%w: seller stock below offer", ErrInsufficientStock)
		}

		buyerInv, err := repository.GetOrCreateInventory(tx, buyerID, offer.Industry)
		if err != nil {
			return err
		}

		// Settle: money one way, units the other.
		buyer.CurrentBalance = buyer.CurrentBalance.Sub(totalCost)
		seller.CurrentBalance = seller.CurrentBalance.Add(totalCost)
		sellerInv.MaterialUnits -= units
		buyerInv.MaterialUnits += units
		offer.UnitsAvailable -= units
		if offer.UnitsAvailable == 0 {
			offer.IsActive = false
		}

		for _, m := range []interface{}{buyer, seller, sellerInv, buyerInv, &offer} {
			if err := tx.Save(m).Error; err != nil {
				return err
			}
		}

		industry := offer.Industry
		buyerRow := models.Transaction{
			Type:        models.TransactionPurchase,
			FromTeamID:  &buyer.ID,
			ToTeamID:    &seller.ID,
			Industry:    &industry,
			Units:       &units,
			Amount:      totalCost,
			Description: fmt.Sprintf("Purchased %d %s units at %s/unit", units, industry, offer.PricePerUnit.String()),
		}
		sellerRow := models.Transaction{
			Type:        models.TransactionSale,
			FromTeamID:  &seller.ID,
			ToTeamID:    &buyer.ID,
			Industry:    &industry,
			Units:       &units,
			Amount:      totalCost,
			Description: fmt.Sprintf("Sold %d %s units at %s/unit", units, industry, offer.PricePerUnit.String()),
		}
		if err := repository.LogTransaction(tx, &buyerRow); err != nil {
			return err
		}
		if err := repository.LogTransaction(tx, &sellerRow); err != nil {
			return err
		}

		result = &BuyResult{
			OfferID:   offer.ID,
			Industry:  industry,
			Units:     units,
			TotalCost: totalCost,
			Message:   fmt.Sprintf("Successfully purchased %d %s units for %s", units, industry, totalCost.String()),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Team %d bought %d units from offer %d for %s", buyerID, units, offerID, result.TotalCost.String())
	return result, nil
}

// ActiveOffers lists active offers sorted cheapest first. The ascending
// price order is part of the contract. Filters are optional: industry
// narrows by industry, excludeTeamID hides a team's own listings.
func (s *MarketplaceService) ActiveOffers(industry string, excludeTeamID uint) ([]models.OfferListing, error) {
	query := s.db.Where("is_active = ?", true)
	if industry != "" {
		query = query.Where("industry = ?", industry)
	}
	if excludeTeamID != 0 {
		query = query.Where("seller_team_id != ?", excludeTeamID)
	}

	var offers []models.MarketplaceOffer
	if err := query.Order("price_per_unit ASC").Find(&offers).Error; err != nil {
		return nil, err
	}

	sellerIDs := make([]uint, 0, len(offers))
	for _, o := range offers {
		sellerIDs = append(sellerIDs, o.SellerTeamID)
	}
	names, err := repository.TeamNames(s.db, sellerIDs)
	if err != nil {
		return nil, err
	}

	listings := make([]models.OfferListing, 0, len(offers))
	for _, o := range offers {
		listings = append(listings, models.OfferListing{
			ID:             o.ID,
			SellerTeamID:   o.SellerTeamID,
			SellerName:     names[o.SellerTeamID],
			Industry:       o.Industry,
			UnitsAvailable: o.UnitsAvailable,
			PricePerUnit:   o.PricePerUnit,
			CreatedAt:      o.CreatedAt,
		})
	}
	return listings, nil
}

// TeamOffers returns all of a team's offers, newest first, regardless
// of active state.
func (s *MarketplaceService) TeamOffers(teamID uint) ([]models.MarketplaceOffer, error) {
	var offers []models.MarketplaceOffer
	if err := s.db.Where("seller_team_id = ?", teamID).
		Order("created_at DESC").
		Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}
