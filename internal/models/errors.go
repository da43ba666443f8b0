package models

import "errors"

// Domain errors. State-machine errors abort the operation before any
// mutation; handlers map them to HTTP codes.
var (
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrInvalidStateTransition = errors.New("operation not permitted in current account state")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrUnknownAccountType     = errors.New("unknown account type")
	ErrUnknownTransactionType = errors.New("unknown transaction type")
	ErrMissingAccountNumber   = errors.New("missing account number")
	ErrSameAccount            = errors.New("transfer source and destination are the same account")
	ErrAccountNotFound        = errors.New("account not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
)
