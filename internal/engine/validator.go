package engine

import (
	"fmt"
	"sort"

	"github.com/potledger/potledger/internal/domain"
)

// ValidateSettlement verifies that a payment plan actually settles the given
// positions before anyone is told to move real money. Three checks run in
// order: per-player balance (inbound minus outbound equals net position),
// global balance (debits equal credits), and payment positivity. Every piece
// of arithmetic is recorded in the audit trail for dispute resolution.
//
// Findings are data, never errors. A per-player mismatch beyond the
// tolerance is critical and blocks settlement; a drift within the tolerance
// (distributed rounding) is a non-blocking warning.
func ValidateSettlement(payments []domain.Payment, positions []domain.PlayerPosition, toleranceCents int64) domain.SettlementValidation {
	v := domain.SettlementValidation{
		IsValid:    true,
		Errors:     []domain.SettlementError{},
		Warnings:   []string{},
		AuditTrail: []string{},
	}

	known := make(map[string]domain.PlayerPosition, len(positions))
	for _, pos := range positions {
		known[pos.PlayerID] = pos
	}

	// Net movement per player implied by the plan.
	inbound := make(map[string]int64)
	outbound := make(map[string]int64)
	paymentCounts := make(map[string]int)

	for i, p := range payments {
		if _, ok := known[p.FromPlayerID]; !ok {
			addCritical(&v, "unknown_player", fmt.Sprintf("payment %d pays from unknown player %s", i, p.FromPlayerID))
		}
		if _, ok := known[p.ToPlayerID]; !ok {
			addCritical(&v, "unknown_player", fmt.Sprintf("payment %d pays to unknown player %s", i, p.ToPlayerID))
		}
		outbound[p.FromPlayerID] += p.AmountCents
		inbound[p.ToPlayerID] += p.AmountCents
		paymentCounts[p.FromPlayerID]++
		paymentCounts[p.ToPlayerID]++
	}

	// Check 1: each player's inbound minus outbound equals their net position.
	ordered := make([]domain.PlayerPosition, len(positions))
	copy(ordered, positions)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].PlayerID < ordered[j].PlayerID })

	for _, pos := range ordered {
		computed := inbound[pos.PlayerID] - outbound[pos.PlayerID]
		diff := computed - pos.NetCents
		if diff < 0 {
			diff = -diff
		}

		line := fmt.Sprintf("Player %s (%s): expected %s, computed from %d payments = %s",
			pos.PlayerName, pos.PlayerID,
			domain.FormatCentsSigned(pos.NetCents),
			paymentCounts[pos.PlayerID],
			domain.FormatCentsSigned(computed))

		switch {
		case diff == 0:
			v.AuditTrail = append(v.AuditTrail, line+" ✓")
		case diff <= toleranceCents:
			v.AuditTrail = append(v.AuditTrail, line+fmt.Sprintf(" ~ (off by %s, within tolerance)", domain.FormatCents(diff)))
			msg := fmt.Sprintf("player %s settles %s off expected due to rounding", pos.PlayerID, domain.FormatCents(diff))
			v.Warnings = append(v.Warnings, msg)
			v.Errors = append(v.Errors, domain.SettlementError{
				Code:     "rounding_drift",
				Message:  msg,
				Severity: domain.SeverityWarning,
			})
		default:
			v.AuditTrail = append(v.AuditTrail, line+fmt.Sprintf(" ✗ (off by %s)", domain.FormatCents(diff)))
			addCritical(&v, "player_balance_mismatch",
				fmt.Sprintf("player %s: plan settles %s but net position is %s",
					pos.PlayerID, domain.FormatCentsSigned(computed), domain.FormatCentsSigned(pos.NetCents)))
		}
	}

	// Check 2: global balance — total losses across positions equal total
	// winnings. Payments are symmetric by construction, so this is checked
	// against the positions, not the plan.
	var totalDebits, totalCredits int64
	for _, pos := range ordered {
		if pos.NetCents < 0 {
			totalDebits += -pos.NetCents
		} else {
			totalCredits += pos.NetCents
		}
	}
	globalDiff := totalDebits - totalCredits
	if globalDiff < 0 {
		globalDiff = -globalDiff
	}
	globalLine := fmt.Sprintf("Global: debits %s, credits %s",
		domain.FormatCents(totalDebits), domain.FormatCents(totalCredits))
	switch {
	case globalDiff == 0:
		v.AuditTrail = append(v.AuditTrail, globalLine+" ✓")
	case globalDiff <= toleranceCents:
		v.AuditTrail = append(v.AuditTrail, globalLine+fmt.Sprintf(" ~ (off by %s, within tolerance)", domain.FormatCents(globalDiff)))
	default:
		v.AuditTrail = append(v.AuditTrail, globalLine+" ✗")
		addCritical(&v, "global_imbalance",
			fmt.Sprintf("total debits %s do not equal total credits %s",
				domain.FormatCents(totalDebits), domain.FormatCents(totalCredits)))
	}

	// Check 3: every payment amount is strictly positive.
	badAmounts := 0
	for i, p := range payments {
		if p.AmountCents <= 0 {
			badAmounts++
			v.AuditTrail = append(v.AuditTrail, fmt.Sprintf("Payment %d: %s → %s amount %s ✗",
				i, p.FromPlayerID, p.ToPlayerID, domain.FormatCents(p.AmountCents)))
			addCritical(&v, "non_positive_amount",
				fmt.Sprintf("payment %d has non-positive amount %s", i, domain.FormatCents(p.AmountCents)))
		}
	}
	if badAmounts == 0 {
		v.AuditTrail = append(v.AuditTrail, fmt.Sprintf("Amounts: %d payments, all positive ✓", len(payments)))
	}

	return v
}

func addCritical(v *domain.SettlementValidation, code, message string) {
	v.Errors = append(v.Errors, domain.SettlementError{
		Code:     code,
		Message:  message,
		Severity: domain.SeverityCritical,
	})
	v.IsValid = false
}
