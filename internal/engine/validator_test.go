package engine

import (
	"strings"
	"testing"

	"github.com/potledger/potledger/internal/domain"
)

func criticalCodes(v domain.SettlementValidation) []string {
	var codes []string
	for _, e := range v.Errors {
		if e.Severity == domain.SeverityCritical {
			codes = append(codes, e.Code)
		}
	}
	return codes
}

func TestValidateSettlementValidPlan(t *testing.T) {
	positions := []domain.PlayerPosition{
		{PlayerID: "a", PlayerName: "Alice", NetCents: -5000},
		{PlayerID: "b", PlayerName: "Bob", NetCents: 3000},
		{PlayerID: "c", PlayerName: "Cara", NetCents: 2000},
	}
	payments := []domain.Payment{
		{FromPlayerID: "a", ToPlayerID: "b", AmountCents: 3000},
		{FromPlayerID: "a", ToPlayerID: "c", AmountCents: 2000},
	}

	v := ValidateSettlement(payments, positions, 1)

	if !v.IsValid {
		t.Fatalf("expected valid, got errors: %+v", v.Errors)
	}
	if len(v.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", v.Warnings)
	}
	if len(v.AuditTrail) == 0 {
		t.Fatal("expected a non-empty audit trail")
	}

	// The trail walks players in id order with the arithmetic spelled out.
	if !strings.Contains(v.AuditTrail[0], "Alice") || !strings.Contains(v.AuditTrail[0], "-50.00") {
		t.Fatalf("audit line 0 = %q", v.AuditTrail[0])
	}
	if !strings.Contains(v.AuditTrail[1], "expected +30.00") || !strings.Contains(v.AuditTrail[1], "✓") {
		t.Fatalf("audit line 1 = %q", v.AuditTrail[1])
	}
}

func TestValidateSettlementPlayerMismatch(t *testing.T) {
	positions := []domain.PlayerPosition{
		{PlayerID: "a", PlayerName: "Alice", NetCents: -5000},
		{PlayerID: "b", PlayerName: "Bob", NetCents: 5000},
	}
	// Tampered amount: 10.00 short.
	payments := []domain.Payment{
		{FromPlayerID: "a", ToPlayerID: "b", AmountCents: 4000},
	}

	v := ValidateSettlement(payments, positions, 1)

	if v.IsValid {
		t.Fatal("expected invalid for tampered plan")
	}
	codes := criticalCodes(v)
	if len(codes) != 2 {
		t.Fatalf("expected 2 critical mismatches (both players), got %v", codes)
	}
	for _, code := range codes {
		if code != "player_balance_mismatch" {
			t.Fatalf("unexpected code %q", code)
		}
	}
}

func TestValidateSettlementGlobalImbalance(t *testing.T) {
	// Losses exceed winnings by 10.00: the positions themselves are broken.
	positions := []domain.PlayerPosition{
		{PlayerID: "a", PlayerName: "Alice", NetCents: -5000},
		{PlayerID: "b", PlayerName: "Bob", NetCents: 4000},
	}
	payments := []domain.Payment{
		{FromPlayerID: "a", ToPlayerID: "b", AmountCents: 4000},
	}

	v := ValidateSettlement(payments, positions, 1)

	if v.IsValid {
		t.Fatal("expected invalid for imbalanced positions")
	}
	found := false
	for _, code := range criticalCodes(v) {
		if code == "global_imbalance" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected global_imbalance, got %+v", v.Errors)
	}
}

func TestValidateSettlementRoundingDriftIsWarning(t *testing.T) {
	positions := []domain.PlayerPosition{
		{PlayerID: "a", PlayerName: "Alice", NetCents: -5001},
		{PlayerID: "b", PlayerName: "Bob", NetCents: 5000},
	}
	payments := []domain.Payment{
		{FromPlayerID: "a", ToPlayerID: "b", AmountCents: 5000},
	}

	v := ValidateSettlement(payments, positions, 1)

	if !v.IsValid {
		t.Fatalf("one-cent drift must not block settlement: %+v", v.Errors)
	}
	if len(v.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", v.Warnings)
	}
	foundWarning := false
	for _, e := range v.Errors {
		if e.Severity == domain.SeverityWarning && e.Code == "rounding_drift" {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Fatalf("expected a rounding_drift warning entry, got %+v", v.Errors)
	}
}

func TestValidateSettlementNonPositiveAmount(t *testing.T) {
	positions := []domain.PlayerPosition{
		{PlayerID: "a", PlayerName: "Alice", NetCents: 0},
		{PlayerID: "b", PlayerName: "Bob", NetCents: 0},
	}
	payments := []domain.Payment{
		{FromPlayerID: "a", ToPlayerID: "b", AmountCents: 0},
	}

	v := ValidateSettlement(payments, positions, 1)

	if v.IsValid {
		t.Fatal("expected invalid for zero-amount payment")
	}
	found := false
	for _, code := range criticalCodes(v) {
		if code == "non_positive_amount" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected non_positive_amount, got %+v", v.Errors)
	}
}

func TestValidateSettlementUnknownPlayer(t *testing.T) {
	positions := []domain.PlayerPosition{
		{PlayerID: "a", PlayerName: "Alice", NetCents: 0},
	}
	payments := []domain.Payment{
		{FromPlayerID: "a", ToPlayerID: "ghost", AmountCents: 100},
	}

	v := ValidateSettlement(payments, positions, 1)

	if v.IsValid {
		t.Fatal("expected invalid for payment to unknown player")
	}
	found := false
	for _, code := range criticalCodes(v) {
		if code == "unknown_player" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unknown_player, got %+v", v.Errors)
	}
}

func TestValidateSettlementEmptyPlanAllZero(t *testing.T) {
	positions := []domain.PlayerPosition{
		{PlayerID: "a", PlayerName: "Alice", NetCents: 0},
		{PlayerID: "b", PlayerName: "Bob", NetCents: 0},
	}

	v := ValidateSettlement(nil, positions, 1)

	if !v.IsValid {
		t.Fatalf("empty plan over zero positions must be valid: %+v", v.Errors)
	}
}
