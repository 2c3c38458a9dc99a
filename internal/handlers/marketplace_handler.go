package handlers

import (
	"net/http"
	"strconv"

	"trading-sim/internal/auth"
	"trading-sim/internal/models"
	"trading-sim/internal/services"

	"github.com/gin-gonic/gin"
)

type MarketplaceHandler struct {
	marketplaceService *services.MarketplaceService
}

func NewMarketplaceHandler(marketplaceService *services.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{marketplaceService: marketplaceService}
}

// CreateOffer lists material units for sale
// POST /api/offers
func (h *MarketplaceHandler) CreateOffer(c *gin.Context) {
	teamID, exists := auth.GetTeamID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offer, err := h.marketplaceService.CreateOffer(teamID, req.Units, req.PricePerUnit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, offer)
}

// UpdateOffer re-prices, re-sizes or deactivates the seller's offer
// PUT /api/offers/:id
func (h *MarketplaceHandler) UpdateOffer(c *gin.Context) {
	teamID, exists := auth.GetTeamID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	offerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offer id"})
		return
	}

	var req models.UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offer, err := h.marketplaceService.UpdateOffer(uint(offerID), teamID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

// Buy purchases units from an active offer
// POST /api/offers/:id/buy
func (h *MarketplaceHandler) Buy(c *gin.Context) {
	teamID, exists := auth.GetTeamID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	offerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offer id"})
		return
	}

	var req models.BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.marketplaceService.Buy(teamID, uint(offerID), req.Units)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetActiveOffers lists active offers, cheapest first
// GET /api/offers?industry=&exclude_own=
func (h *MarketplaceHandler) GetActiveOffers(c *gin.Context) {
	industry := c.Query("industry")

	var excludeTeamID uint
	if c.Query("exclude_own") == "true" {
		if teamID, exists := auth.GetTeamID(c); exists {
			excludeTeamID = teamID
		}
	}

	offers, err := h.marketplaceService.ActiveOffers(industry, excludeTeamID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

// GetTeamOffers lists the acting team's own offers
// GET /api/offers/mine
func (h *MarketplaceHandler) GetTeamOffers(c *gin.Context) {
	teamID, exists := auth.GetTeamID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	offers, err := h.marketplaceService.TeamOffers(teamID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}
