package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrSessionNotFound         = errors.New("session_not_found")
	ErrPlayerNotFound          = errors.New("player_not_found")
	ErrPlayerAlreadyExists     = errors.New("player_already_exists")
	ErrTransactionNotFound     = errors.New("transaction_not_found")
	ErrTransactionAlreadyVoid  = errors.New("transaction_already_voided")
	ErrTransactionWrongSession = errors.New("transaction_wrong_session")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// LedgerStateError signals malformed input reaching the settlement engine:
// a transaction referencing an unknown player, a negative or non-finite
// amount. It is fatal for the calculation — recomputing with the same input
// yields the same failure.
type LedgerStateError struct {
	Message string
}

func (e *LedgerStateError) Error() string {
	return fmt.Sprintf("invalid_ledger_state: %s", e.Message)
}

// UnbalancedError signals that the players' net positions do not sum to zero
// within tolerance before optimization begins. This indicates an upstream
// ledger bug, not a user mistake, and must not be silently absorbed.
type UnbalancedError struct {
	SumCents       int64
	ToleranceCents int64
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("unbalanced_positions: net positions sum to %s, tolerance %d cents",
		FormatCentsSigned(e.SumCents), e.ToleranceCents)
}

// OverflowError signals a monetary sum that would exceed the representable
// integer range.
type OverflowError struct {
	Op string
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("precision_overflow: %s exceeds representable range", e.Op)
}
