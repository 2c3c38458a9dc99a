package main

import (
	"log"

	"trading-sim/internal/config"
	"trading-sim/internal/database"
	"trading-sim/internal/models"
	"trading-sim/internal/services"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// companyTeams is the default roster: four company teams per industry.
var companyTeams = map[string][]models.CreateTeamRequest{
	models.IndustryCement: {
		{Name: "UltraTech Cement", Username: "ultratechcement", Password: "ultratechcement1983"},
		{Name: "ACC Limited", Username: "acclimited", Password: "acclimited1936"},
		{Name: "Ambuja Cements", Username: "ambujacements", Password: "ambujacements1983"},
		{Name: "Shree Cement", Username: "shreecement", Password: "shreecement1979"},
	},
	models.IndustryEnergy: {
		{Name: "Reliance Energy", Username: "relianceenergy", Password: "relianceenergy1973"},
		{Name: "Tata Power", Username: "tatapower", Password: "tatapower1919"},
		{Name: "Adani Power", Username: "adanipower", Password: "adanipower1996"},
		{Name: "NTPC Limited", Username: "ntpclimited", Password: "ntpclimited1975"},
	},
	models.IndustryIron: {
		{Name: "Tata Steel", Username: "tatasteel", Password: "tatasteel1907"},
		{Name: "JSW Steel", Username: "jswsteel", Password: "jswsteel1982"},
		{Name: "SAIL", Username: "sail", Password: "sail1954"},
		{Name: "Jindal Steel", Username: "jindalsteel", Password: "jindalsteel1979"},
	},
	models.IndustryAluminium: {
		{Name: "Hindalco", Username: "hindalco", Password: "hindalco1958"},
		{Name: "Vedanta Aluminium", Username: "vedantaaluminium", Password: "vedantaaluminium1976"},
		{Name: "NALCO", Username: "nalco", Password: "nalco1981"},
		{Name: "Balco", Username: "balco", Password: "balco1965"},
	},
	models.IndustryWood: {
		{Name: "Century Plyboards", Username: "centuryplyboards", Password: "centuryplyboards1986"},
		{Name: "Greenply Industries", Username: "greenplyindustries", Password: "greenplyindustries1990"},
		{Name: "Kitply Industries", Username: "kitplyindustries", Password: "kitplyindustries1982"},
		{Name: "Archidply Industries", Username: "archidplyindustries", Password: "archidplyindustries1976"},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	teamService := services.NewTeamService(db)

	adminPassword := cfg.App.AdminPassword
	if adminPassword == "" {
		adminPassword = "gamemaster369"
	}
	if _, err := teamService.EnsureAdmin(cfg.App.AdminUsername, adminPassword); err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}

	created, skipped := 0, 0
	for _, industry := range models.Industries {
		for _, req := range companyTeams[industry] {
			req.Industry = industry
			if _, err := teamService.CreateTeam(&req); err != nil {
				// Existing usernames are fine on reruns
				log.Printf("Skipping %s: %v", req.Username, err)
				skipped++
				continue
			}
			created++
		}
	}

	log.Printf("Seed complete: %d teams created, %d skipped", created, skipped)
}
