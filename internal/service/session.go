package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/potledger/potledger/internal/domain"
	"github.com/potledger/potledger/internal/store"
)

// CreateSessionRequest represents the input for session creation.
type CreateSessionRequest struct {
	Name string
}

// AddPlayerRequest represents the input for adding a player to a session.
type AddPlayerRequest struct {
	Name string
}

// RecordTransactionRequest represents the input for recording a buy-in or
// cash-out. Amount is a decimal dollar value; it is converted to cents at
// this boundary and stays integer from here on.
type RecordTransactionRequest struct {
	PlayerID string
	Type     string
	Amount   float64
}

// SessionSummary represents the response for the session detail endpoint.
type SessionSummary struct {
	Session           *domain.Session
	Players           []*domain.Player
	BankBalanceCents  int64
	TotalBuyInsCents  int64
	TotalCashOutCents int64
	TransactionCount  int
}

// SessionService handles session lifecycle and ledger recording.
type SessionService struct {
	sessions     *store.SessionStore
	transactions *store.TransactionStore
}

// NewSessionService creates a new SessionService.
func NewSessionService(sessions *store.SessionStore, transactions *store.TransactionStore) *SessionService {
	return &SessionService{
		sessions:     sessions,
		transactions: transactions,
	}
}

// CreateSession validates the request and creates a session.
func (s *SessionService) CreateSession(req CreateSessionRequest) (*domain.Session, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 80 {
		return nil, &domain.ValidationError{Message: "name must be 1-80 characters"}
	}

	sess := &domain.Session{
		SessionID: uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	s.sessions.CreateSession(sess)
	return sess, nil
}

// GetSummary returns a session with its roster and ledger totals.
func (s *SessionService) GetSummary(sessionID string) (*SessionSummary, error) {
	sess, err := s.sessions.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	players, err := s.sessions.ListPlayers(sessionID)
	if err != nil {
		return nil, err
	}

	txs := s.transactions.ListBySession(sessionID, false)
	summary := &SessionSummary{
		Session:          sess,
		Players:          players,
		TransactionCount: len(txs),
	}
	for _, tx := range txs {
		switch tx.Type {
		case domain.TransactionBuyIn:
			summary.TotalBuyInsCents, err = domain.AddCents(summary.TotalBuyInsCents, tx.AmountCents)
		case domain.TransactionCashOut:
			summary.TotalCashOutCents, err = domain.AddCents(summary.TotalCashOutCents, tx.AmountCents)
		}
		if err != nil {
			return nil, err
		}
	}
	summary.BankBalanceCents = summary.TotalBuyInsCents - summary.TotalCashOutCents
	return summary, nil
}

// AddPlayer validates the request and adds a player to the session roster.
func (s *SessionService) AddPlayer(sessionID string, req AddPlayerRequest) (*domain.Player, error) {
	if !s.sessions.Exists(sessionID) {
		return nil, domain.ErrSessionNotFound
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 64 {
		return nil, &domain.ValidationError{Message: "name must be 1-64 characters"}
	}

	player := &domain.Player{
		PlayerID:  uuid.New().String(),
		SessionID: sessionID,
		Name:      name,
		JoinedAt:  time.Now(),
	}
	if err := s.sessions.AddPlayer(player); err != nil {
		return nil, err
	}
	return player, nil
}

// ListPlayers returns the session roster in join order.
func (s *SessionService) ListPlayers(sessionID string) ([]*domain.Player, error) {
	return s.sessions.ListPlayers(sessionID)
}

// RecordTransaction validates and appends a buy-in or cash-out to the
// session ledger. A cash-out may not exceed the current bank balance — the
// bank cannot pay out money it never took in.
func (s *SessionService) RecordTransaction(sessionID string, req RecordTransactionRequest) (*domain.Transaction, error) {
	if !s.sessions.Exists(sessionID) {
		return nil, domain.ErrSessionNotFound
	}
	if _, err := s.sessions.GetPlayer(sessionID, req.PlayerID); err != nil {
		return nil, err
	}

	txType := domain.TransactionType(req.Type)
	if !txType.Valid() {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("type must be %q or %q", domain.TransactionBuyIn, domain.TransactionCashOut),
		}
	}
	if req.Amount <= 0 {
		return nil, &domain.ValidationError{Message: "amount must be > 0"}
	}
	cents, err := domain.AmountToCents(req.Amount)
	if err != nil {
		return nil, err
	}

	if txType == domain.TransactionCashOut {
		summary, err := s.GetSummary(sessionID)
		if err != nil {
			return nil, err
		}
		if cents > summary.BankBalanceCents {
			return nil, &domain.ValidationError{
				Message: fmt.Sprintf("cash-out %s exceeds bank balance %s",
					domain.FormatCents(cents), domain.FormatCents(summary.BankBalanceCents)),
			}
		}
	}

	tx := &domain.Transaction{
		TransactionID: uuid.New().String(),
		SessionID:     sessionID,
		PlayerID:      req.PlayerID,
		Type:          txType,
		AmountCents:   cents,
		CreatedAt:     time.Now(),
	}
	s.transactions.Append(tx)
	return tx, nil
}

// ListTransactions returns a session's non-voided transactions.
func (s *SessionService) ListTransactions(sessionID string) ([]*domain.Transaction, error) {
	if !s.sessions.Exists(sessionID) {
		return nil, domain.ErrSessionNotFound
	}
	return s.transactions.ListBySession(sessionID, false), nil
}

// VoidTransaction undoes a recorded transaction. The transaction must belong
// to the given session.
func (s *SessionService) VoidTransaction(sessionID, transactionID string) (*domain.Transaction, error) {
	if !s.sessions.Exists(sessionID) {
		return nil, domain.ErrSessionNotFound
	}
	tx, err := s.transactions.Get(transactionID)
	if err != nil {
		return nil, err
	}
	if tx.SessionID != sessionID {
		return nil, domain.ErrTransactionWrongSession
	}
	return s.transactions.Void(transactionID, time.Now())
}

// BankBalance returns the session's current bank in cents: buy-ins minus
// cash-outs over non-voided transactions.
func (s *SessionService) BankBalance(sessionID string) (int64, error) {
	summary, err := s.GetSummary(sessionID)
	if err != nil {
		return 0, err
	}
	return summary.BankBalanceCents, nil
}
