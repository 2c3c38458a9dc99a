package services

import (
	"errors"
)

// Sentinel errors for the economy core. Services validate everything
// before mutating; when one of these comes back, nothing was written.
// Handlers map them to HTTP status codes with errors.Is.
var (
	ErrTeamNotFound  = errors.New("team not found")
	ErrOfferNotFound = errors.New("offer not found or inactive")
	ErrTradeNotFound = errors.New("trade request not found")

	ErrUnauthorized = errors.New("not allowed to act on this resource")

	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrInsufficientStock = errors.New("insufficient material units")
	ErrInsufficientInput = errors.New("insufficient raw units")

	ErrSelfTrade        = errors.New("cannot trade with yourself")
	ErrAlreadyProcessed = errors.New("trade request already processed")
	ErrAlreadyGifted    = errors.New("team has already received a gift")
)
