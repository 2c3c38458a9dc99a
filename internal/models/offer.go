package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketplaceOffer is a public sell-side listing of material units.
// The available count is advisory: the seller's live inventory is
// re-checked at settlement time, since stock is not reserved.
type MarketplaceOffer struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	SellerTeamID   uint            `gorm:"not null;index" json:"seller_team_id"`
	Industry       string          `gorm:"size:50;not null;index" json:"industry"`
	UnitsAvailable int             `gorm:"not null" json:"units_available"`
	PricePerUnit   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price_per_unit"`
	IsActive       bool            `gorm:"default:true;index" json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName specifies the table name for MarketplaceOffer model
func (MarketplaceOffer) TableName() string {
	return "marketplace_offers"
}

// CreateOfferRequest is the payload for listing material units for sale
type CreateOfferRequest struct {
	Units        int             `json:"units" binding:"required"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" binding:"required"`
}

// UpdateOfferRequest mutates an existing offer. Nil fields are left
// untouched; Deactivate wins over the other two.
type UpdateOfferRequest struct {
	NewPrice   *decimal.Decimal `json:"new_price"`
	NewUnits   *int             `json:"new_units"`
	Deactivate bool             `json:"deactivate"`
}

// BuyRequest is the payload for buying from an offer
type BuyRequest struct {
	Units int `json:"units" binding:"required"`
}

// OfferListing is an active offer joined with its seller's name
type OfferListing struct {
	ID             uint            `json:"id"`
	SellerTeamID   uint            `json:"seller_team_id"`
	SellerName     string          `json:"seller_name"`
	Industry       string          `json:"industry"`
	UnitsAvailable int             `json:"units_available"`
	PricePerUnit   decimal.Decimal `json:"price_per_unit"`
	CreatedAt      time.Time       `json:"created_at"`
}
