package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"trading-sim/internal/auth"
	"trading-sim/internal/config"
	"trading-sim/internal/database"
	"trading-sim/internal/handlers"
	"trading-sim/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Initialize services
	teamService := services.NewTeamService(db)
	productionService := services.NewProductionService(db)
	marketplaceService := services.NewMarketplaceService(db)
	tradingService := services.NewTradingService(db)
	leaderboardService := services.NewLeaderboardService(db)
	giftService := services.NewGiftService(db)
	adminService := services.NewAdminService(db)

	// Make sure the game-master account exists
	if cfg.App.AdminPassword != "" {
		if _, err := teamService.EnsureAdmin(cfg.App.AdminUsername, cfg.App.AdminPassword); err != nil {
			log.Fatalf("Failed to ensure admin account: %v", err)
		}
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(teamService)
	teamHandler := handlers.NewTeamHandler(teamService)
	productionHandler := handlers.NewProductionHandler(productionService)
	marketplaceHandler := handlers.NewMarketplaceHandler(marketplaceService)
	tradingHandler := handlers.NewTradingHandler(tradingService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	giftHandler := handlers.NewGiftHandler(giftService)
	adminHandler := handlers.NewAdminHandler(adminService, teamService)

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	router.POST("/auth/login", authHandler.Login)

	// Authenticated /auth/me route
	authProtected := router.Group("/auth")
	authProtected.Use(auth.AuthMiddleware())
	{
		authProtected.GET("/me", authHandler.GetMe)
	}

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		// Team endpoints
		api.GET("/dashboard", teamHandler.GetDashboard)
		api.GET("/teams", teamHandler.GetTeams)
		api.GET("/game-status", teamHandler.GetGameStatus)

		// Production endpoints
		api.POST("/production", productionHandler.Produce)
		api.GET("/production/requirements", productionHandler.GetRequirements)
		api.GET("/production/history", productionHandler.GetHistory)

		// Marketplace endpoints
		api.POST("/offers", marketplaceHandler.CreateOffer)
		api.PUT("/offers/:id", marketplaceHandler.UpdateOffer)
		api.POST("/offers/:id/buy", marketplaceHandler.Buy)
		api.GET("/offers", marketplaceHandler.GetActiveOffers)
		api.GET("/offers/mine", marketplaceHandler.GetTeamOffers)

		// Trade negotiation endpoints
		api.POST("/trades", tradingHandler.CreateTradeRequest)
		api.GET("/trades/incoming", tradingHandler.GetIncoming)
		api.GET("/trades/outgoing", tradingHandler.GetOutgoing)
		api.POST("/trades/:id/accept", tradingHandler.AcceptTrade)
		api.POST("/trades/:id/reject", tradingHandler.RejectTrade)
		api.POST("/trades/:id/cancel", tradingHandler.CancelTrade)

		// Leaderboard
		api.GET("/leaderboard", leaderboardHandler.GetLeaderboard)

		// Gift status for the acting team
		api.GET("/gifts/status", giftHandler.GetGiftStatus)
	}

	// Admin routes (protected + admin only)
	admin := router.Group("/api/admin")
	admin.Use(auth.AuthMiddleware())
	admin.Use(auth.AdminMiddleware())
	{
		admin.POST("/teams", adminHandler.CreateTeam)
		admin.DELETE("/teams", adminHandler.DeleteAllTeams)
		admin.PUT("/game-status", adminHandler.SetGameStatus)
		admin.POST("/inventory", adminHandler.AdjustInventory)
		admin.POST("/balance", adminHandler.AdjustBalance)
		admin.POST("/force-trade", adminHandler.ForceTrade)
		admin.POST("/reallocate", adminHandler.ReallocateRawUnits)
		admin.POST("/reset-balances", adminHandler.ResetBalances)
		admin.POST("/truncate-logs", adminHandler.TruncateLogs)
		admin.GET("/transactions", adminHandler.GetTransactions)

		// Gift management
		admin.POST("/gifts", giftHandler.SendGift)
		admin.GET("/gifts", giftHandler.GetAllGifts)
		admin.GET("/gifts/pending", giftHandler.GetPendingGiftTeams)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
