package domain

import "time"

// Payment is one instructed transfer in a settlement plan.
type Payment struct {
	FromPlayerID string
	ToPlayerID   string
	AmountCents  int64
}

// OptimizedSettlement is the result of settlement optimization: a payment
// plan that zeroes every player's net position, plus metrics comparing it to
// the naive everyone-settles-with-the-organizer baseline.
type OptimizedSettlement struct {
	SessionID              string
	Payments               []Payment
	TransactionCount       int
	DirectTransactionCount int
	ReductionPercent       float64
	IsBalanced             bool
	CalculatedAt           time.Time
}

// CashOutDirection indicates which way money moves for an early cash-out.
type CashOutDirection string

const (
	CashOutOwed CashOutDirection = "owed" // bank pays the player
	CashOutOwes CashOutDirection = "owes" // player pays the bank
)

// EarlyCashOutResult is the outcome of a mid-game cash-out calculation for a
// single player. CanPayout=false is a business finding, not an error: the
// bank lacks the funds to pay a departing winner and the organizer must
// confirm or block the payout.
type EarlyCashOutResult struct {
	PlayerID        string
	NetCents        int64
	SettlementCents int64
	Direction       CashOutDirection
	CanPayout       bool
	BankBeforeCents int64
	BankAfterCents  int64
	CalculatedAt    time.Time
}

// Severity classifies a settlement validation finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// SettlementError is a single validation finding with a machine-readable
// code and a severity. Critical findings block settlement.
type SettlementError struct {
	Code     string
	Message  string
	Severity Severity
}

// SettlementValidation is the full result of validating a payment plan
// against player positions. AuditTrail records the arithmetic performed for
// each check, in order, for dispute resolution.
type SettlementValidation struct {
	IsValid    bool
	Errors     []SettlementError
	Warnings   []string
	AuditTrail []string
}
