package domain

import "time"

// TransactionType identifies the direction of a ledger entry.
type TransactionType string

const (
	TransactionBuyIn   TransactionType = "buy_in"
	TransactionCashOut TransactionType = "cash_out"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionBuyIn || t == TransactionCashOut
}

// Transaction is one immutable monetary event in a session's ledger.
// Transactions are never edited or deleted; an undo is recorded by setting
// VoidedAt, after which the transaction is excluded from all balances.
type Transaction struct {
	TransactionID string
	SessionID     string
	PlayerID      string
	Type          TransactionType
	AmountCents   int64
	CreatedAt     time.Time
	VoidedAt      *time.Time
}

// Voided reports whether the transaction has been undone.
func (t *Transaction) Voided() bool {
	return t.VoidedAt != nil
}
