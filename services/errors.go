package services

import "errors"

// Expected business outcomes, reported to the caller without retry. Anything
// else bubbling out of a service is a store failure the caller may retry
// wholesale.
var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrRoundClosed         = errors.New("round is closed for betting")
	ErrAlreadySettled      = errors.New("round already settled")
	ErrInvalidStake        = errors.New("stake below minimum bet")
	ErrInvalidBetValue     = errors.New("invalid bet value")
	ErrInvalidOutcome      = errors.New("invalid outcome")
	ErrMinDeposit          = errors.New("amount below minimum deposit")
	ErrMinWithdrawal       = errors.New("amount below minimum withdrawal")
	ErrEntryNotPending     = errors.New("ledger entry is not pending")
	ErrNotFound            = errors.New("record not found")
)
