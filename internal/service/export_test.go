package service

import (
	"strings"
	"testing"

	"github.com/potledger/potledger/internal/domain"
)

func TestRenderSettlement(t *testing.T) {
	env := newTestEnv()
	sessionID, ids := env.seedSession(t, "Alice", "Bob")

	env.buyIn(t, sessionID, ids[0], 100)
	env.buyIn(t, sessionID, ids[1], 100)

	chips := map[string]float64{ids[0]: 150, ids[1]: 50}
	positions, err := env.settleSvc.Positions(sessionID, chips)
	if err != nil {
		t.Fatalf("Positions returned error: %v", err)
	}
	result, err := env.settleSvc.Settle(sessionID, chips)
	if err != nil {
		t.Fatalf("Settle returned error: %v", err)
	}

	sess, _ := env.sessions.GetSession(sessionID)
	players, _ := env.sessions.ListPlayers(sessionID)

	text := NewExportService().RenderSettlement(sess, players, result, positions)

	if !strings.Contains(text, "Friday game — settlement") {
		t.Fatalf("missing header:\n%s", text)
	}
	if !strings.Contains(text, "Bob pays Alice 50.00") {
		t.Fatalf("missing payment line:\n%s", text)
	}
	if !strings.Contains(text, "Alice: buy-ins 100.00") {
		t.Fatalf("missing position line:\n%s", text)
	}
	if !strings.Contains(text, "Verified: all positions settle to zero.") {
		t.Fatalf("missing verification line:\n%s", text)
	}
}

func TestRenderSettlementEvenSession(t *testing.T) {
	env := newTestEnv()
	sessionID, ids := env.seedSession(t, "Alice", "Bob")

	env.buyIn(t, sessionID, ids[0], 100)
	env.buyIn(t, sessionID, ids[1], 100)

	chips := map[string]float64{ids[0]: 100, ids[1]: 100}
	positions, err := env.settleSvc.Positions(sessionID, chips)
	if err != nil {
		t.Fatalf("Positions returned error: %v", err)
	}
	result, err := env.settleSvc.Settle(sessionID, chips)
	if err != nil {
		t.Fatalf("Settle returned error: %v", err)
	}

	sess, _ := env.sessions.GetSession(sessionID)
	players, _ := env.sessions.ListPlayers(sessionID)

	text := NewExportService().RenderSettlement(sess, players, result, positions)
	if !strings.Contains(text, "everyone is even") {
		t.Fatalf("missing even-session line:\n%s", text)
	}
}

func TestRenderSettlementInvalidPlanWarning(t *testing.T) {
	sess := &domain.Session{SessionID: "s1", Name: "Friday game"}
	positions := []domain.PlayerPosition{
		{PlayerID: "a", PlayerName: "Alice", NetCents: -5000},
		{PlayerID: "b", PlayerName: "Bob", NetCents: 5000},
	}
	result := &SettlementResult{
		Settlement: &domain.OptimizedSettlement{
			SessionID: "s1",
			Payments:  []domain.Payment{{FromPlayerID: "a", ToPlayerID: "b", AmountCents: 4000}},
		},
		Validation: domain.SettlementValidation{
			IsValid: false,
			Errors: []domain.SettlementError{{
				Code:     "player_balance_mismatch",
				Message:  "player b: plan settles +40.00 but net position is +50.00",
				Severity: domain.SeverityCritical,
			}},
		},
	}

	text := NewExportService().RenderSettlement(sess, nil, result, positions)
	if !strings.Contains(text, "do not pay out") {
		t.Fatalf("missing validation warning:\n%s", text)
	}
	if !strings.Contains(text, "player_balance_mismatch") {
		t.Fatalf("missing critical error detail:\n%s", text)
	}
}
