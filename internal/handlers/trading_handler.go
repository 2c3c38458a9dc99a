package handlers

import (
	"net/http"

	"trading-sim/internal/auth"
	"trading-sim/internal/models"
	"trading-sim/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TradingHandler struct {
	tradingService *services.TradingService
}

func NewTradingHandler(tradingService *services.TradingService) *TradingHandler {
	return &TradingHandler{tradingService: tradingService}
}

// CreateTradeRequest opens a bilateral trade request
// POST /api/trades
func (h *TradingHandler) CreateTradeRequest(c *gin.Context) {
	teamID, exists := auth.GetTeamID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trade, err := h.tradingService.CreateRequest(teamID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trade)
}

// AcceptTrade settles a pending request addressed to the acting team
// POST /api/trades/:id/accept
func (h *TradingHandler) AcceptTrade(c *gin.Context) {
	teamID, tradeID, ok := h.tradeParams(c)
	if !ok {
		return
	}

	result, err := h.tradingService.Accept(tradeID, teamID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RejectTrade declines a pending request addressed to the acting team
// POST /api/trades/:id/reject
func (h *TradingHandler) RejectTrade(c *gin.Context) {
	teamID, tradeID, ok := h.tradeParams(c)
	if !ok {
		return
	}

	if err := h.tradingService.Reject(tradeID, teamID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trade request rejected"})
}

// CancelTrade withdraws a pending request the acting team sent
// POST /api/trades/:id/cancel
func (h *TradingHandler) CancelTrade(c *gin.Context) {
	teamID, tradeID, ok := h.tradeParams(c)
	if !ok {
		return
	}

	if err := h.tradingService.Cancel(tradeID, teamID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trade request cancelled"})
}

// GetIncoming lists pending requests addressed to the acting team
// GET /api/trades/incoming
func (h *TradingHandler) GetIncoming(c *gin.Context) {
	teamID, exists := auth.GetTeamID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	trades, err := h.tradingService.Incoming(teamID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trades)
}

// GetOutgoing lists every request the acting team has sent
// GET /api/trades/outgoing
func (h *TradingHandler) GetOutgoing(c *gin.Context) {
	teamID, exists := auth.GetTeamID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	trades, err := h.tradingService.Outgoing(teamID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trades)
}

func (h *TradingHandler) tradeParams(c *gin.Context) (uint, uuid.UUID, bool) {
	teamID, exists := auth.GetTeamID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, uuid.Nil, false
	}

	tradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trade id"})
		return 0, uuid.Nil, false
	}
	return teamID, tradeID, true
}
