package service

import (
	"errors"
	"testing"
	"time"

	"github.com/potledger/potledger/internal/domain"
	"github.com/potledger/potledger/internal/engine"
	"github.com/potledger/potledger/internal/store"
)

// testEnv bundles all dependencies needed for service tests.
type testEnv struct {
	sessions     *store.SessionStore
	transactions *store.TransactionStore
	sessionSvc   *SessionService
	settleSvc    *SettlementService
}

func newTestEnv() *testEnv {
	ss := store.NewSessionStore()
	ts := store.NewTransactionStore()
	return &testEnv{
		sessions:     ss,
		transactions: ts,
		sessionSvc:   NewSessionService(ss, ts),
		settleSvc:    NewSettlementService(ss, ts, engine.NewResultCache(time.Minute), 1),
	}
}

// seedSession creates a session with the given player names and returns the
// session id and player ids in order.
func (env *testEnv) seedSession(t *testing.T, playerNames ...string) (string, []string) {
	t.Helper()
	sess, err := env.sessionSvc.CreateSession(CreateSessionRequest{Name: "Friday game"})
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	ids := make([]string, len(playerNames))
	for i, name := range playerNames {
		p, err := env.sessionSvc.AddPlayer(sess.SessionID, AddPlayerRequest{Name: name})
		if err != nil {
			t.Fatalf("AddPlayer(%s) returned error: %v", name, err)
		}
		ids[i] = p.PlayerID
	}
	return sess.SessionID, ids
}

// buyIn records a buy-in and fails the test on error.
func (env *testEnv) buyIn(t *testing.T, sessionID, playerID string, amount float64) *domain.Transaction {
	t.Helper()
	tx, err := env.sessionSvc.RecordTransaction(sessionID, RecordTransactionRequest{
		PlayerID: playerID,
		Type:     string(domain.TransactionBuyIn),
		Amount:   amount,
	})
	if err != nil {
		t.Fatalf("buy-in for %s returned error: %v", playerID, err)
	}
	return tx
}

func TestCreateSessionValidation(t *testing.T) {
	env := newTestEnv()

	var validationErr *domain.ValidationError
	if _, err := env.sessionSvc.CreateSession(CreateSessionRequest{Name: "  "}); !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for blank name, got %v", err)
	}

	sess, err := env.sessionSvc.CreateSession(CreateSessionRequest{Name: "  Friday game  "})
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	if sess.Name != "Friday game" {
		t.Fatalf("name not trimmed: %q", sess.Name)
	}
	if sess.SessionID == "" {
		t.Fatal("session id not assigned")
	}
}

func TestAddPlayerRules(t *testing.T) {
	env := newTestEnv()
	sessionID, _ := env.seedSession(t, "Alice")

	if _, err := env.sessionSvc.AddPlayer("missing", AddPlayerRequest{Name: "Bob"}); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := env.sessionSvc.AddPlayer(sessionID, AddPlayerRequest{Name: "Alice"}); !errors.Is(err, domain.ErrPlayerAlreadyExists) {
		t.Fatalf("expected ErrPlayerAlreadyExists, got %v", err)
	}

	var validationErr *domain.ValidationError
	if _, err := env.sessionSvc.AddPlayer(sessionID, AddPlayerRequest{Name: ""}); !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for empty name, got %v", err)
	}
}

func TestRecordTransactionAndBankBalance(t *testing.T) {
	env := newTestEnv()
	sessionID, ids := env.seedSession(t, "Alice", "Bob")

	env.buyIn(t, sessionID, ids[0], 100)
	env.buyIn(t, sessionID, ids[1], 50.25)

	balance, err := env.sessionSvc.BankBalance(sessionID)
	if err != nil {
		t.Fatalf("BankBalance returned error: %v", err)
	}
	if balance != 15025 {
		t.Fatalf("bank = %d cents, want 15025", balance)
	}

	// Cash-out reduces the bank.
	if _, err := env.sessionSvc.RecordTransaction(sessionID, RecordTransactionRequest{
		PlayerID: ids[0],
		Type:     string(domain.TransactionCashOut),
		Amount:   40,
	}); err != nil {
		t.Fatalf("cash-out returned error: %v", err)
	}
	balance, _ = env.sessionSvc.BankBalance(sessionID)
	if balance != 11025 {
		t.Fatalf("bank = %d cents after cash-out, want 11025", balance)
	}

	// A cash-out larger than the bank is refused.
	var validationErr *domain.ValidationError
	_, err = env.sessionSvc.RecordTransaction(sessionID, RecordTransactionRequest{
		PlayerID: ids[0],
		Type:     string(domain.TransactionCashOut),
		Amount:   500,
	})
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for overdrawn cash-out, got %v", err)
	}
}

func TestRecordTransactionValidation(t *testing.T) {
	env := newTestEnv()
	sessionID, ids := env.seedSession(t, "Alice")

	var validationErr *domain.ValidationError

	_, err := env.sessionSvc.RecordTransaction(sessionID, RecordTransactionRequest{
		PlayerID: ids[0], Type: "rebuy", Amount: 10,
	})
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for bad type, got %v", err)
	}

	_, err = env.sessionSvc.RecordTransaction(sessionID, RecordTransactionRequest{
		PlayerID: ids[0], Type: string(domain.TransactionBuyIn), Amount: 0,
	})
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for zero amount, got %v", err)
	}

	_, err = env.sessionSvc.RecordTransaction(sessionID, RecordTransactionRequest{
		PlayerID: ids[0], Type: string(domain.TransactionBuyIn), Amount: 10.005,
	})
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for sub-cent amount, got %v", err)
	}

	_, err = env.sessionSvc.RecordTransaction(sessionID, RecordTransactionRequest{
		PlayerID: "ghost", Type: string(domain.TransactionBuyIn), Amount: 10,
	})
	if !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestVoidTransactionRestoresBalance(t *testing.T) {
	env := newTestEnv()
	sessionID, ids := env.seedSession(t, "Alice")

	before, _ := env.sessionSvc.BankBalance(sessionID)
	tx := env.buyIn(t, sessionID, ids[0], 100)

	if _, err := env.sessionSvc.VoidTransaction(sessionID, tx.TransactionID); err != nil {
		t.Fatalf("VoidTransaction returned error: %v", err)
	}

	after, _ := env.sessionSvc.BankBalance(sessionID)
	if after != before {
		t.Fatalf("bank = %d after void, want %d", after, before)
	}

	// A transaction can only be voided through its own session.
	other, _ := env.sessionSvc.CreateSession(CreateSessionRequest{Name: "Other game"})
	tx2 := env.buyIn(t, sessionID, ids[0], 10)
	if _, err := env.sessionSvc.VoidTransaction(other.SessionID, tx2.TransactionID); !errors.Is(err, domain.ErrTransactionWrongSession) {
		t.Fatalf("expected ErrTransactionWrongSession, got %v", err)
	}
}
