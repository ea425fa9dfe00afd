package domain

import "time"

// Session represents one poker game from first buy-in to final settlement.
type Session struct {
	SessionID string
	Name      string
	CreatedAt time.Time
}

// Player represents a participant in a single session. Player identities are
// scoped to their session; the same person in two sessions is two players.
type Player struct {
	PlayerID  string
	SessionID string
	Name      string
	JoinedAt  time.Time
}
