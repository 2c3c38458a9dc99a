package handlers

import (
	"net/http"

	"trading-sim/internal/auth"
	"trading-sim/internal/models"
	"trading-sim/internal/services"

	"github.com/gin-gonic/gin"
)

type GiftHandler struct {
	giftService *services.GiftService
}

func NewGiftHandler(giftService *services.GiftService) *GiftHandler {
	return &GiftHandler{giftService: giftService}
}

// SendGift grants a team its one-time material unit gift (admin only)
// POST /api/admin/gifts
func (h *GiftHandler) SendGift(c *gin.Context) {
	adminID, exists := auth.GetTeamID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.SendGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gift, err := h.giftService.SendGift(adminID, req.TeamID, req.Units)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gift)
}

// GetGiftStatus reports whether the acting team has received its gift
// GET /api/gifts/status
func (h *GiftHandler) GetGiftStatus(c *gin.Context) {
	teamID, exists := auth.GetTeamID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	gift, err := h.giftService.GiftStatus(teamID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": gift != nil, "gift": gift})
}

// GetAllGifts lists every gift sent (admin only)
// GET /api/admin/gifts
func (h *GiftHandler) GetAllGifts(c *gin.Context) {
	gifts, err := h.giftService.AllGifts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gifts)
}

// GetPendingGiftTeams lists teams that have not received a gift yet (admin only)
// GET /api/admin/gifts/pending
func (h *GiftHandler) GetPendingGiftTeams(c *gin.Context) {
	teams, err := h.giftService.TeamsWithoutGifts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}
