package engine

import (
	"time"

	"github.com/potledger/potledger/internal/domain"
)

// CalculateEarlyCashOut computes what a single player receives or pays when
// cashing out mid-game, against the session bank (buy-ins not yet paid out).
//
// Business conditions are returned as data, never as errors: a bank that
// cannot cover a departing winner yields CanPayout=false with the computed
// amount intact, so the caller can require organizer confirmation.
func CalculateEarlyCashOut(pos domain.PlayerPosition, bankBalanceCents int64) domain.EarlyCashOutResult {
	result := domain.EarlyCashOutResult{
		PlayerID:        pos.PlayerID,
		NetCents:        pos.NetCents,
		BankBeforeCents: bankBalanceCents,
		CalculatedAt:    time.Now(),
	}

	if pos.NetCents >= 0 {
		result.Direction = domain.CashOutOwed
		result.SettlementCents = pos.NetCents
		result.CanPayout = bankBalanceCents >= result.SettlementCents
		result.BankAfterCents = bankBalanceCents - result.SettlementCents
	} else {
		result.Direction = domain.CashOutOwes
		result.SettlementCents = -pos.NetCents
		// A player paying in never depends on bank funds.
		result.CanPayout = true
		result.BankAfterCents = bankBalanceCents + result.SettlementCents
	}

	return result
}
