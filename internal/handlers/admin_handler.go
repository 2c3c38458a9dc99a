package handlers

import (
	"net/http"
	"strconv"

	"trading-sim/internal/auth"
	"trading-sim/internal/models"
	"trading-sim/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AdminHandler struct {
	adminService *services.AdminService
	teamService  *services.TeamService
}

func NewAdminHandler(adminService *services.AdminService, teamService *services.TeamService) *AdminHandler {
	return &AdminHandler{adminService: adminService, teamService: teamService}
}

// CreateTeam registers a new team (admin only)
// POST /api/admin/teams
func (h *AdminHandler) CreateTeam(c *gin.Context) {
	var req models.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamService.CreateTeam(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, team)
}

// SetGameStatus forces the simulation lifecycle status
// PUT /api/admin/game-status
func (h *AdminHandler) SetGameStatus(c *gin.Context) {
	var req struct {
		Status models.GameStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.adminService.SetGameStatus(req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

// AdjustInventory adds or removes units from one inventory slot
// POST /api/admin/inventory
func (h *AdminHandler) AdjustInventory(c *gin.Context) {
	adminID, exists := auth.GetTeamID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		TeamID   uint   `json:"team_id" binding:"required"`
		Industry string `json:"industry" binding:"required"`
		Material bool   `json:"material"`
		Delta    int    `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv, err := h.adminService.AdjustInventory(adminID, req.TeamID, req.Industry, req.Material, req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// AdjustBalance adds delta to a team's balance
// POST /api/admin/balance
func (h *AdminHandler) AdjustBalance(c *gin.Context) {
	adminID, exists := auth.GetTeamID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		TeamID uint            `json:"team_id" binding:"required"`
		Delta  decimal.Decimal `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.adminService.AdjustBalance(adminID, req.TeamID, req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// ForceTrade settles a trade between two teams without their consent
// POST /api/admin/force-trade
func (h *AdminHandler) ForceTrade(c *gin.Context) {
	var req struct {
		SellerID   uint            `json:"seller_id" binding:"required"`
		BuyerID    uint            `json:"buyer_id" binding:"required"`
		Industry   string          `json:"industry" binding:"required"`
		Units      int             `json:"units" binding:"required"`
		TotalPrice decimal.Decimal `json:"total_price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.adminService.ForceTrade(req.SellerID, req.BuyerID, req.Industry, req.Units, req.TotalPrice); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trade executed"})
}

// ReallocateRawUnits rerolls every team's raw unit allocations
// POST /api/admin/reallocate
func (h *AdminHandler) ReallocateRawUnits(c *gin.Context) {
	var req struct {
		Min int `json:"min"`
		Max int `json:"max"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Min == 0 && req.Max == 0 {
		req.Min = models.MinInitialRawUnits
		req.Max = models.MaxInitialRawUnits
	}

	if err := h.adminService.ReallocateRawUnits(req.Min, req.Max); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Raw units reallocated"})
}

// ResetBalances sets every team's balance back to a fixed value
// POST /api/admin/reset-balances
func (h *AdminHandler) ResetBalances(c *gin.Context) {
	var req struct {
		Balance *decimal.Decimal `json:"balance"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	balance := decimal.NewFromInt(models.InitialBalance)
	if req.Balance != nil {
		balance = *req.Balance
	}

	if err := h.adminService.ResetBalances(balance); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Balances reset", "balance": balance})
}

// TruncateLogs erases the transaction ledger and production history
// POST /api/admin/truncate-logs
func (h *AdminHandler) TruncateLogs(c *gin.Context) {
	if err := h.adminService.TruncateLogs(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logs truncated"})
}

// DeleteAllTeams removes every non-admin team and all dependent rows
// DELETE /api/admin/teams
func (h *AdminHandler) DeleteAllTeams(c *gin.Context) {
	if err := h.adminService.DeleteAllTeams(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All teams deleted"})
}

// GetTransactions lists recent ledger rows for admin reporting
// GET /api/admin/transactions
func (h *AdminHandler) GetTransactions(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	rows, err := h.adminService.Transactions(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
