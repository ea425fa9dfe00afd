package store

import (
	"sync"
	"time"

	"github.com/potledger/potledger/internal/domain"
)

// TransactionStore is a thread-safe in-memory ledger of monetary events,
// with a primary index by transaction_id and a secondary index by
// session_id. Transactions are append-only; undo is modeled as voiding.
type TransactionStore struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction
	bySession    map[string][]*domain.Transaction // session_id → transactions (append-only)
}

// NewTransactionStore creates an empty TransactionStore.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		transactions: make(map[string]*domain.Transaction),
		bySession:    make(map[string][]*domain.Transaction),
	}
}

// Append adds a transaction to the ledger and the session's secondary index.
func (s *TransactionStore) Append(tx *domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions[tx.TransactionID] = tx
	s.bySession[tx.SessionID] = append(s.bySession[tx.SessionID], tx)
}

// Get retrieves a transaction by ID. It returns
// domain.ErrTransactionNotFound if the transaction does not exist.
func (s *TransactionStore) Get(id string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return tx, nil
}

// ListBySession returns a session's transactions in insertion order.
// Voided transactions are excluded unless includeVoided is set.
func (s *TransactionStore) ListBySession(sessionID string, includeVoided bool) []*domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.bySession[sessionID]
	out := make([]*domain.Transaction, 0, len(all))
	for _, tx := range all {
		if !includeVoided && tx.Voided() {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// Void marks a transaction as undone. It returns
// domain.ErrTransactionNotFound for an unknown ID and
// domain.ErrTransactionAlreadyVoid when the transaction was already voided.
func (s *TransactionStore) Void(id string, at time.Time) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	if tx.Voided() {
		return nil, domain.ErrTransactionAlreadyVoid
	}
	tx.VoidedAt = &at
	return tx, nil
}
