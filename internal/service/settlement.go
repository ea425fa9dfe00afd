package service

import (
	"github.com/potledger/potledger/internal/domain"
	"github.com/potledger/potledger/internal/engine"
	"github.com/potledger/potledger/internal/store"
)

// SettlementResult bundles a payment plan with its validation for the
// settlement endpoint. Plans are always validated before being returned —
// nobody is shown money instructions that don't add up.
type SettlementResult struct {
	Settlement *domain.OptimizedSettlement
	Validation domain.SettlementValidation
	FromCache  bool
}

// SettlementService orchestrates the settlement engine over the ledger
// stores: aggregate → optimize → validate, with a TTL result cache in front
// of the optimizer. The calculators themselves are pure; all state lives
// here or in the stores.
type SettlementService struct {
	sessions       *store.SessionStore
	transactions   *store.TransactionStore
	cache          *engine.ResultCache
	toleranceCents int64
}

// NewSettlementService creates a new SettlementService. cache may be nil to
// disable caching.
func NewSettlementService(
	sessions *store.SessionStore,
	transactions *store.TransactionStore,
	cache *engine.ResultCache,
	toleranceCents int64,
) *SettlementService {
	return &SettlementService{
		sessions:       sessions,
		transactions:   transactions,
		cache:          cache,
		toleranceCents: toleranceCents,
	}
}

// Positions builds the position snapshot for a session from its ledger and
// the chip counts supplied by the caller. Chip counts are decimal dollar
// values keyed by player id; players left out of the map count as holding
// zero chips.
func (s *SettlementService) Positions(sessionID string, chipCounts map[string]float64) ([]domain.PlayerPosition, error) {
	if !s.sessions.Exists(sessionID) {
		return nil, domain.ErrSessionNotFound
	}
	players, err := s.sessions.ListPlayers(sessionID)
	if err != nil {
		return nil, err
	}

	chipCents := make(map[string]int64, len(chipCounts))
	for playerID, chips := range chipCounts {
		cents, err := domain.AmountToCents(chips)
		if err != nil {
			return nil, err
		}
		chipCents[playerID] = cents
	}

	txs := s.transactions.ListBySession(sessionID, false)
	return engine.Aggregate(players, txs, chipCents)
}

// EarlyCashOut computes the amount a single player receives or pays when
// leaving mid-game with the given chips in front of them.
func (s *SettlementService) EarlyCashOut(sessionID, playerID string, currentChips float64) (*domain.EarlyCashOutResult, error) {
	player, err := s.sessions.GetPlayer(sessionID, playerID)
	if err != nil {
		return nil, err
	}
	chipCents, err := domain.AmountToCents(currentChips)
	if err != nil {
		return nil, err
	}

	// Aggregate just this player's slice of the ledger.
	var playerTxs []*domain.Transaction
	var bank int64
	for _, tx := range s.transactions.ListBySession(sessionID, false) {
		switch tx.Type {
		case domain.TransactionBuyIn:
			bank, err = domain.AddCents(bank, tx.AmountCents)
		case domain.TransactionCashOut:
			bank, err = domain.AddCents(bank, -tx.AmountCents)
		}
		if err != nil {
			return nil, err
		}
		if tx.PlayerID == playerID {
			playerTxs = append(playerTxs, tx)
		}
	}

	positions, err := engine.Aggregate(
		[]*domain.Player{player},
		playerTxs,
		map[string]int64{playerID: chipCents},
	)
	if err != nil {
		return nil, err
	}

	result := engine.CalculateEarlyCashOut(positions[0], bank)
	return &result, nil
}

// Settle computes the end-of-session payment plan for the given final chip
// counts and validates it. Identical snapshots within the cache TTL reuse
// the previously computed plan; validation is cheap and always runs fresh.
func (s *SettlementService) Settle(sessionID string, chipCounts map[string]float64) (*SettlementResult, error) {
	positions, err := s.Positions(sessionID, chipCounts)
	if err != nil {
		return nil, err
	}

	var key string
	if s.cache != nil {
		key = engine.CacheKey(sessionID, positions)
		if cached, ok := s.cache.Get(key); ok {
			return &SettlementResult{
				Settlement: cached,
				Validation: engine.ValidateSettlement(cached.Payments, positions, s.toleranceCents),
				FromCache:  true,
			}, nil
		}
	}

	settlement, err := engine.OptimizeSettlement(sessionID, positions, s.toleranceCents)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Put(key, settlement)
	}

	return &SettlementResult{
		Settlement: settlement,
		Validation: engine.ValidateSettlement(settlement.Payments, positions, s.toleranceCents),
	}, nil
}
