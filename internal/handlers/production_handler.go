package handlers

import (
	"net/http"
	"strconv"

	"trading-sim/internal/auth"
	"trading-sim/internal/models"
	"trading-sim/internal/services"

	"github.com/gin-gonic/gin"
)

type ProductionHandler struct {
	productionService *services.ProductionService
}

func NewProductionHandler(productionService *services.ProductionService) *ProductionHandler {
	return &ProductionHandler{productionService: productionService}
}

// Produce runs a production batch for the acting team
// POST /api/production
func (h *ProductionHandler) Produce(c *gin.Context) {
	teamID, exists := auth.GetTeamID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.ProduceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.productionService.Produce(teamID, req.Units)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetRequirements previews input needs without producing
// GET /api/production/requirements?units=N
func (h *ProductionHandler) GetRequirements(c *gin.Context) {
	teamID, exists := auth.GetTeamID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	units, err := strconv.Atoi(c.DefaultQuery("units", "1"))
	if err != nil || units <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid units"})
		return
	}

	industry, canProduce, requirements, err := h.productionService.Requirements(teamID, units)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"team_industry": industry,
		"can_produce":   canProduce,
		"requirements":  requirements,
	})
}

// GetHistory returns the acting team's recent production runs
// GET /api/production/history
func (h *ProductionHandler) GetHistory(c *gin.Context) {
	teamID, exists := auth.GetTeamID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	logs, err := h.productionService.History(teamID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
