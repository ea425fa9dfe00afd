package engine

import (
	"fmt"
	"sort"

	"github.com/potledger/potledger/internal/domain"
)

// Aggregate converts a session's transaction history and current chip counts
// into one normalized PlayerPosition per rostered player. Voided transactions
// are expected to be filtered out by the caller and are skipped defensively
// if seen. Chip counts are keyed by player id; players absent from the map
// are treated as holding zero chips.
//
// Returns a LedgerStateError when a transaction or chip count references a
// player outside the roster, or when any amount is negative. Returns an
// OverflowError when a cumulative sum would exceed the representable range.
//
// The result is sorted by player id ascending so downstream calculations and
// audit trails are deterministic.
func Aggregate(players []*domain.Player, transactions []*domain.Transaction, chipCounts map[string]int64) ([]domain.PlayerPosition, error) {
	byID := make(map[string]*domain.PlayerPosition, len(players))
	for _, p := range players {
		byID[p.PlayerID] = &domain.PlayerPosition{
			PlayerID:   p.PlayerID,
			PlayerName: p.Name,
		}
	}

	for _, tx := range transactions {
		if tx.Voided() {
			continue
		}
		pos, ok := byID[tx.PlayerID]
		if !ok {
			return nil, &domain.LedgerStateError{
				Message: fmt.Sprintf("transaction %s references unknown player %s", tx.TransactionID, tx.PlayerID),
			}
		}
		if tx.AmountCents < 0 {
			return nil, &domain.LedgerStateError{
				Message: fmt.Sprintf("transaction %s has negative amount %d", tx.TransactionID, tx.AmountCents),
			}
		}

		var err error
		switch tx.Type {
		case domain.TransactionBuyIn:
			pos.TotalBuyInsCents, err = domain.AddCents(pos.TotalBuyInsCents, tx.AmountCents)
		case domain.TransactionCashOut:
			pos.TotalCashOutsCents, err = domain.AddCents(pos.TotalCashOutsCents, tx.AmountCents)
		default:
			return nil, &domain.LedgerStateError{
				Message: fmt.Sprintf("transaction %s has unknown type %q", tx.TransactionID, tx.Type),
			}
		}
		if err != nil {
			return nil, err
		}
	}

	for playerID, chips := range chipCounts {
		pos, ok := byID[playerID]
		if !ok {
			return nil, &domain.LedgerStateError{
				Message: fmt.Sprintf("chip count references unknown player %s", playerID),
			}
		}
		if chips < 0 {
			return nil, &domain.LedgerStateError{
				Message: fmt.Sprintf("chip count for player %s is negative", playerID),
			}
		}
		pos.CurrentChipsCents = chips
	}

	positions := make([]domain.PlayerPosition, 0, len(byID))
	for _, pos := range byID {
		// net = chips + cash-outs - buy-ins
		net, err := domain.AddCents(pos.CurrentChipsCents, pos.TotalCashOutsCents)
		if err != nil {
			return nil, err
		}
		net, err = domain.AddCents(net, -pos.TotalBuyInsCents)
		if err != nil {
			return nil, err
		}
		pos.NetCents = net
		positions = append(positions, *pos)
	}

	sort.Slice(positions, func(i, j int) bool {
		return positions[i].PlayerID < positions[j].PlayerID
	})

	return positions, nil
}
