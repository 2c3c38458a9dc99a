package services

import (
	"fmt"
	"log"

	"trading-sim/internal/models"
	"trading-sim/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TradingService runs bilateral negotiated trades: the requester is the
// buyer, the counterparty the seller. A pending request leaves pending
// exactly once, to accepted, rejected or cancelled.
type TradingService struct {
	db *gorm.DB
}

// NewTradingService creates a new TradingService
func NewTradingService(db *gorm.DB) *TradingService {
	return &TradingService{db: db}
}

// CreateRequest opens a pending trade request. The balance check here
// is a soft guard only; the binding check happens again at Accept,
// since the buyer's balance may change in between.
func (s *TradingService) CreateRequest(fromID uint, req *models.CreateTradeRequest) (*models.TradeRequest, error) {
	if fromID == req.ToTeamID {
		return nil, ErrSelfTrade
	}
	if req.Units <= 0 || req.PricePerUnit.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if !models.ValidIndustry(req.Industry) {
		return nil, fmt.Errorf("%w: unknown industry %q", ErrInvalidAmount, req.Industry)
	}

	var trade *models.TradeRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		from, err := repository.GetTeam(tx, fromID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrTeamNotFound
			}
			return err
		}
		if _, err := repository.GetTeam(tx, req.ToTeamID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrTeamNotFound
			}
			return err
		}

		total := req.PricePerUnit.Mul(decimal.NewFromInt(int64(req.Units)))
		if from.CurrentBalance.LessThan(total) {
			return fmt.Errorf("%w: trade totals %s", ErrInsufficientFunds, total.String())
		}

		trade = &models.TradeRequest{
			ID:           uuid.New(),
			FromTeamID:   fromID,
			ToTeamID:     req.ToTeamID,
			Industry:     req.Industry,
			Units:        req.Units,
			PricePerUnit: req.PricePerUnit,
			TotalAmount:  total,
			Status:       models.TradeStatusPending,
			IsSecret:     req.IsSecret,
		}
		return tx.Create(trade).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Trade request %s: team %d -> team %d, %d %s units", trade.ID, fromID, req.ToTeamID, req.Units, req.Industry)
	return trade, nil
}

// AcceptResult summarizes a settled bilateral trade
type AcceptResult struct {
	TradeID     uuid.UUID       `json:"trade_id"`
	Industry    string          `json:"industry"`
	Units       int             `json:"units"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Message     string          `json:"message"`
}

// Accept settles a pending request. Only the counterparty may accept.
// Buyer funds and the acceptor's live material stock are re-validated
// inside the settling transaction; on either shortfall the request
// stays pending. Settlement logs a single ledger row: secret_trade for
// secret deals, purchase otherwise.
func (s *TradingService) Accept(tradeID uuid.UUID, actingTeamID uint) (*AcceptResult, error) {
	var result *AcceptResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		trade, err := s.lockPending(tx, tradeID, actingTeamID, false)
		if err != nil {
			return err
		}

		buyer, err := repository.GetTeam(tx, trade.FromTeamID)
		if err != nil {
			return err
		}
		seller, err := repository.GetTeam(tx, trade.ToTeamID)
		if err != nil {
			return err
		}

		if buyer.CurrentBalance.LessThan(trade.TotalAmount) {
			return fmt.Errorf("%w: buyer cannot cover %s", ErrInsufficientFunds, trade.TotalAmount.String())
		}

		sellerInv, err := repository.GetInventory(tx, seller.ID, trade.Industry)
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}
		if sellerInv == nil || sellerInv.MaterialUnits < trade.Units {
			return fmt.Errorf("%w: cannot fulfill %d %s units", ErrInsufficientStock, trade.Units, trade.Industry)
		}

		buyerInv, err := repository.GetOrCreateInventory(tx, buyer.ID, trade.Industry)
		if err != nil {
			return err
		}

		buyer.CurrentBalance = buyer.CurrentBalance.Sub(trade.TotalAmount)
		seller.CurrentBalance = seller.CurrentBalance.Add(trade.TotalAmount)
		sellerInv.MaterialUnits -= trade.Units
		buyerInv.MaterialUnits += trade.Units
		trade.Status = models.TradeStatusAccepted

		for _, m := range []interface{}{buyer, seller, sellerInv, buyerInv, trade} {
			if err := tx.Save(m).Error; err != nil {
				return err
			}
		}

		txType := models.TransactionPurchase
		if trade.IsSecret {
			txType = models.TransactionSecretTrade
		}
		industry := trade.Industry
		units := trade.Units
		row := models.Transaction{
			Type:        txType,
			FromTeamID:  &buyer.ID,
			ToTeamID:    &seller.ID,
			Industry:    &industry,
			Units:       &units,
			Amount:      trade.TotalAmount,
			Description: fmt.Sprintf("Trade: %d %s units at %s/unit", units, industry, trade.PricePerUnit.String()),
		}
		if err := repository.LogTransaction(tx, &row); err != nil {
			return err
		}

		result = &AcceptResult{
			TradeID:     trade.ID,
			Industry:    industry,
			Units:       units,
			TotalAmount: trade.TotalAmount,
			Message:     "Trade accepted successfully",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Trade %s accepted by team %d", tradeID, actingTeamID)
	return result, nil
}

// Reject declines a pending request. Counterparty only, no economic effect.
func (s *TradingService) Reject(tradeID uuid.UUID, actingTeamID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		trade, err := s.lockPending(tx, tradeID, actingTeamID, false)
		if err != nil {
			return err
		}
		trade.Status = models.TradeStatusRejected
		return tx.Save(trade).Error
	})
}

// Cancel withdraws a pending request. Requester only, no economic effect.
func (s *TradingService) Cancel(tradeID uuid.UUID, actingTeamID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		trade, err := s.lockPending(tx, tradeID, actingTeamID, true)
		if err != nil {
			return err
		}
		trade.Status = models.TradeStatusCancelled
		return tx.Save(trade).Error
	})
}

// lockPending fetches a trade request and verifies the acting team owns
// the requested transition: the requester for cancels, the counterparty
// otherwise. Non-pending requests fail with ErrAlreadyProcessed.
func (s *TradingService) lockPending(tx *gorm.DB, tradeID uuid.UUID, actingTeamID uint, asRequester bool) (*models.TradeRequest, error) {
	var trade models.TradeRequest
	if err := tx.Where("id = ?", tradeID).First(&trade).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTradeNotFound
		}
		return nil, err
	}

	owner := trade.ToTeamID
	if asRequester {
		owner = trade.FromTeamID
	}
	if owner != actingTeamID {
		return nil, ErrUnauthorized
	}
	if trade.Status != models.TradeStatusPending {
		return nil, ErrAlreadyProcessed
	}
	return &trade, nil
}

// Incoming returns pending requests addressed to the team, newest first
func (s *TradingService) Incoming(teamID uint) ([]models.TradeListing, error) {
	var trades []models.TradeRequest
	if err := s.db.Where("to_team_id = ? AND status = ?", teamID, models.TradeStatusPending).
		Order("created_at DESC").
		Find(&trades).Error; err != nil {
		return nil, err
	}
	return s.toListings(trades, true)
}

// Outgoing returns every request the team has sent, any status, newest first
func (s *TradingService) Outgoing(teamID uint) ([]models.TradeListing, error) {
	var trades []models.TradeRequest
	if err := s.db.Where("from_team_id = ?", teamID).
		Order("created_at DESC").
		Find(&trades).Error; err != nil {
		return nil, err
	}
	return s.toListings(trades, false)
}

func (s *TradingService) toListings(trades []models.TradeRequest, fromSide bool) ([]models.TradeListing, error) {
	ids := make([]uint, 0, len(trades))
	for _, t := range trades {
		if fromSide {
			ids = append(ids, t.FromTeamID)
		} else {
			ids = append(ids, t.ToTeamID)
		}
	}
	names, err := repository.TeamNames(s.db, ids)
	if err != nil {
		return nil, err
	}

	listings := make([]models.TradeListing, 0, len(trades))
	for _, t := range trades {
		counterparty := names[t.ToTeamID]
		if fromSide {
			counterparty = names[t.FromTeamID]
		}
		listings = append(listings, models.TradeListing{
			ID:           t.ID,
			FromTeamID:   t.FromTeamID,
			ToTeamID:     t.ToTeamID,
			Counterparty: counterparty,
			Industry:     t.Industry,
			Units:        t.Units,
			PricePerUnit: t.PricePerUnit,
			TotalAmount:  t.TotalAmount,
			Status:       t.Status,
			IsSecret:     t.IsSecret,
			CreatedAt:    t.CreatedAt,
		})
	}
	return listings, nil
}
