package handlers

import (
	"net/http"

	"trading-sim/internal/auth"
	"trading-sim/internal/services"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// GetDashboard returns the acting team with its inventories
// GET /api/dashboard
func (h *TeamHandler) GetDashboard(c *gin.Context) {
	teamID, exists := auth.GetTeamID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	dashboard, err := h.teamService.GetDashboard(teamID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// GetTeams lists all non-admin teams
// GET /api/teams
func (h *TeamHandler) GetTeams(c *gin.Context) {
	teams, err := h.teamService.Teams()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// GetGameStatus returns the simulation lifecycle status
// GET /api/game-status
func (h *TeamHandler) GetGameStatus(c *gin.Context) {
	status, err := h.teamService.GameStatus()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}
