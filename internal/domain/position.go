package domain

// PlayerPosition is a player's normalized standing at a point in time,
// produced by the balance aggregator from the transaction history and the
// chips counted in front of the player. All amounts are int64 cents.
//
// NetCents = CurrentChipsCents + TotalCashOutsCents - TotalBuyInsCents.
// Positive means the player is owed money; negative means the player owes.
type PlayerPosition struct {
	PlayerID           string
	PlayerName         string
	TotalBuyInsCents   int64
	TotalCashOutsCents int64
	CurrentChipsCents  int64
	NetCents           int64
}
