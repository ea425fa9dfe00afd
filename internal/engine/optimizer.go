package engine

import (
	"time"

	"github.com/google/btree"

	"github.com/potledger/potledger/internal/domain"
)

// partyEntry represents one non-zero position inside the optimizer's
// priority structure. AmountCents is always the positive magnitude,
// regardless of which side the party is on.
type partyEntry struct {
	AmountCents int64
	PlayerID    string
}

// partyLess orders entries by magnitude descending, then player id
// ascending. Min() returns the largest outstanding party; the player-id
// tie-break makes plans reproducible for equal magnitudes.
func partyLess(a, b partyEntry) bool {
	if a.AmountCents != b.AmountCents {
		return a.AmountCents > b.AmountCents
	}
	return a.PlayerID < b.PlayerID
}

// OptimizeSettlement produces a payment plan that zeroes every player's net
// position using greedy debt reduction: the current largest debtor pays the
// current largest creditor min(|debtor|, creditor), both shrink, and parties
// drop out as they reach zero. For n non-zero positions the plan needs at
// most n-1 payments.
//
// Positions must sum to zero within toleranceCents; a larger residue means
// the upstream ledger is broken and yields an UnbalancedError rather than a
// silently wrong plan. Any residue inside the tolerance is absorbed by the
// last remaining party.
//
// DirectTransactionCount is the naive baseline: one transfer per non-zero
// position (every debtor pays the organizer, the organizer pays every
// creditor).
func OptimizeSettlement(sessionID string, positions []domain.PlayerPosition, toleranceCents int64) (*domain.OptimizedSettlement, error) {
	var sum int64
	for _, pos := range positions {
		var err error
		sum, err = domain.AddCents(sum, pos.NetCents)
		if err != nil {
			return nil, err
		}
	}
	if sum > toleranceCents || sum < -toleranceCents {
		return nil, &domain.UnbalancedError{SumCents: sum, ToleranceCents: toleranceCents}
	}

	const degree = 8
	creditors := btree.NewG[partyEntry](degree, partyLess)
	debtors := btree.NewG[partyEntry](degree, partyLess)

	nonZero := 0
	for _, pos := range positions {
		switch {
		case pos.NetCents > 0:
			creditors.ReplaceOrInsert(partyEntry{AmountCents: pos.NetCents, PlayerID: pos.PlayerID})
			nonZero++
		case pos.NetCents < 0:
			debtors.ReplaceOrInsert(partyEntry{AmountCents: -pos.NetCents, PlayerID: pos.PlayerID})
			nonZero++
		}
	}

	payments := make([]domain.Payment, 0, nonZero)

	for creditors.Len() > 0 && debtors.Len() > 0 {
		debtor, _ := debtors.DeleteMin()
		creditor, _ := creditors.DeleteMin()

		transfer := debtor.AmountCents
		if creditor.AmountCents < transfer {
			transfer = creditor.AmountCents
		}

		payments = append(payments, domain.Payment{
			FromPlayerID: debtor.PlayerID,
			ToPlayerID:   creditor.PlayerID,
			AmountCents:  transfer,
		})

		if remaining := debtor.AmountCents - transfer; remaining > 0 {
			debtors.ReplaceOrInsert(partyEntry{AmountCents: remaining, PlayerID: debtor.PlayerID})
		}
		if remaining := creditor.AmountCents - transfer; remaining > 0 {
			creditors.ReplaceOrInsert(partyEntry{AmountCents: remaining, PlayerID: creditor.PlayerID})
		}
	}

	// Whatever is left on either side is the rounding residue already proven
	// to be within tolerance.
	var residue int64
	for _, tree := range []*btree.BTreeG[partyEntry]{creditors, debtors} {
		tree.Ascend(func(e partyEntry) bool {
			residue += e.AmountCents
			return true
		})
	}

	settlement := &domain.OptimizedSettlement{
		SessionID:              sessionID,
		Payments:               payments,
		TransactionCount:       len(payments),
		DirectTransactionCount: nonZero,
		IsBalanced:             residue <= toleranceCents,
		CalculatedAt:           time.Now(),
	}
	if nonZero > 0 {
		settlement.ReductionPercent = float64(nonZero-len(payments)) / float64(nonZero) * 100
	}

	return settlement, nil
}
