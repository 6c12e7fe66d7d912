package dashboard

import "github.com/matchsight/matchsight/internal/pkg/models"

// ValueBetStore holds value bets in insertion order. The store is append-only
// at the top level: Add never deduplicates, and if two bets with the same key
// are appended before any update, both remain until an update collapses
// lookups onto the first.
//
// Like PredictionStore, it relies on the owning Session for serialization.
type ValueBetStore struct {
	bets []models.ValueBet
}

// Add unconditionally appends the bet.
func (s *ValueBetStore) Add(b models.ValueBet) {
	s.bets = append(s.bets, b)
}

// Update replaces the first bet with the same (matchId, pattern type) key in
// place. When no bet matches, the update is a silent no-op: it does not fall
// back to insert. Returns whether a replacement happened.
func (s *ValueBetStore) Update(b models.ValueBet) bool {
	key := b.Key()
	for i := range s.bets {
		if s.bets[i].Key() == key {
			s.bets[i] = b
			return true
		}
	}
	return false
}

// All returns a copy of the ordered bets.
func (s *ValueBetStore) All() []models.ValueBet {
	out := make([]models.ValueBet, len(s.bets))
	copy(out, s.bets)
	return out
}

// Len returns the number of stored bets.
func (s *ValueBetStore) Len() int {
	return len(s.bets)
}
