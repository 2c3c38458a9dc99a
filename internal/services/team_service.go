package services

import (
	"fmt"
	"log"
	"math/rand"

	"trading-sim/internal/auth"
	"trading-sim/internal/models"
	"trading-sim/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TeamService handles team accounts: login, creation and dashboards.
type TeamService struct {
	db *gorm.DB
}

// NewTeamService creates a new TeamService
func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{db: db}
}

// Login verifies credentials and returns the team plus a signed token
func (s *TeamService) Login(username, password string) (*models.Team, string, error) {
	team, err := repository.GetTeamByUsername(s.db, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", fmt.Errorf("invalid username or password")
		}
		return nil, "", err
	}

	if !auth.CheckPassword(password, team.PasswordHash) {
		return nil, "", fmt.Errorf("invalid username or password")
	}

	token, err := auth.GenerateToken(team.ID, team.Username, team.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return team, token, nil
}

// CreateTeam registers a team with the starting balance and one
// inventory row per industry, each seeded with a random raw allocation.
func (s *TeamService) CreateTeam(req *models.CreateTeamRequest) (*models.Team, error) {
	if !models.ValidIndustry(req.Industry) {
		return nil, fmt.Errorf("%w: unknown industry %q", ErrInvalidAmount, req.Industry)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var team *models.Team
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Team
		if err := tx.Where("username = ?", req.Username).First(&existing).Error; err == nil {
			return fmt.Errorf("username %q already exists", req.Username)
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		team = &models.Team{
			Name:           req.Name,
			Industry:       req.Industry,
			Username:       req.Username,
			PasswordHash:   hash,
			InitialBalance: decimal.NewFromInt(models.InitialBalance),
			CurrentBalance: decimal.NewFromInt(models.InitialBalance),
		}
		if err := tx.Create(team).Error; err != nil {
			return err
		}

		for _, industry := range models.Industries {
			inv := models.Inventory{
				TeamID:   team.ID,
				Industry: industry,
				RawUnits: models.MinInitialRawUnits +
					rand.Intn(models.MaxInitialRawUnits-models.MinInitialRawUnits+1),
			}
			if err := tx.Create(&inv).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Created team %q (%s)", team.Name, team.Industry)
	return team, nil
}

// EnsureAdmin creates the game-master account if it does not exist
func (s *TeamService) EnsureAdmin(username, password string) (*models.Team, error) {
	admin, err := repository.GetTeamByUsername(s.db, username)
	if err == nil {
		return admin, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin = &models.Team{
		Name:           "GameMaster",
		Industry:       models.IndustryAdmin,
		Username:       username,
		PasswordHash:   hash,
		InitialBalance: decimal.Zero,
		CurrentBalance: decimal.Zero,
		IsAdmin:        true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return nil, err
	}

	log.Printf("Created admin account %q", username)
	return admin, nil
}

// Dashboard bundles a team with its inventories
type Dashboard struct {
	Team        *models.Team       `json:"team"`
	Inventories []models.Inventory `json:"inventories"`
}

// GetDashboard returns a team's current state
func (s *TeamService) GetDashboard(teamID uint) (*Dashboard, error) {
	team, err := repository.GetTeam(s.db, teamID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	invs, err := repository.TeamInventories(s.db, teamID)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Team: team, Inventories: invs}, nil
}

// Teams lists all non-admin teams
func (s *TeamService) Teams() ([]models.Team, error) {
	var teams []models.Team
	if err := s.db.Where("is_admin = ?", false).Order("id ASC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// GameStatus returns the current lifecycle status, defaulting to
// not_started when the row does not exist yet.
func (s *TeamService) GameStatus() (models.GameStatus, error) {
	var state models.GameState
	err := s.db.First(&state).Error
	if err == gorm.ErrRecordNotFound {
		return models.GameStatusNotStarted, nil
	}
	if err != nil {
		return "", err
	}
	return state.Status, nil
}
