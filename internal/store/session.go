package store

import (
	"sync"

	"github.com/potledger/potledger/internal/domain"
)

// SessionStore is a thread-safe in-memory store for sessions and their
// player rosters, keyed by session_id with a secondary index by player_id.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	rosters  map[string][]*domain.Player // session_id → players (append-only)
	players  map[string]*domain.Player   // player_id → player
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*domain.Session),
		rosters:  make(map[string][]*domain.Player),
		players:  make(map[string]*domain.Player),
	}
}

// CreateSession adds a session to the store.
func (s *SessionStore) CreateSession(sess *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.SessionID] = sess
	s.rosters[sess.SessionID] = []*domain.Player{}
}

// GetSession retrieves a session by ID. It returns
// domain.ErrSessionNotFound if the session does not exist.
func (s *SessionStore) GetSession(id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// AddPlayer appends a player to a session's roster. It returns
// domain.ErrSessionNotFound for an unknown session and
// domain.ErrPlayerAlreadyExists when the session already has a player with
// the same name.
func (s *SessionStore) AddPlayer(p *domain.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	roster, ok := s.rosters[p.SessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	for _, existing := range roster {
		if existing.Name == p.Name {
			return domain.ErrPlayerAlreadyExists
		}
	}

	s.rosters[p.SessionID] = append(roster, p)
	s.players[p.PlayerID] = p
	return nil
}

// GetPlayer retrieves a player by ID within a session. It returns
// domain.ErrPlayerNotFound if the player does not exist or belongs to a
// different session.
func (s *SessionStore) GetPlayer(sessionID, playerID string) (*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[playerID]
	if !ok || p.SessionID != sessionID {
		return nil, domain.ErrPlayerNotFound
	}
	return p, nil
}

// ListPlayers returns a session's roster in join order. It returns
// domain.ErrSessionNotFound for an unknown session.
func (s *SessionStore) ListPlayers(sessionID string) ([]*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roster, ok := s.rosters[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	out := make([]*domain.Player, len(roster))
	copy(out, roster)
	return out, nil
}

// Exists returns true if a session with the given ID exists.
func (s *SessionStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.sessions[id]
	return ok
}
