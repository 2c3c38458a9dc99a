package handlers

import (
	"net/http"

	"trading-sim/internal/auth"
	"trading-sim/internal/models"
	"trading-sim/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	teamService *services.TeamService
}

func NewAuthHandler(teamService *services.TeamService) *AuthHandler {
	return &AuthHandler{teamService: teamService}
}

// Login authenticates a team and returns a session token
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, token, err := h.teamService.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"team":  team,
	})
}

// GetMe returns the acting team
// GET /auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
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
	c.JSON(http.StatusOK, dashboard.Team)
}
