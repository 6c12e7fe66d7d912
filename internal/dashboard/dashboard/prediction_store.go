package dashboard

import "github.com/matchsight/matchsight/internal/pkg/models"

// PredictionStore holds canonical prediction records in insertion order. At
// most one record exists per fixture (team-name pair); a later save replaces
// the earlier record in place, never appends a duplicate.
//
// The store does no locking of its own: the owning Session serializes access.
type PredictionStore struct {
	records []models.MatchPrediction
}

// Save upserts by fixture identity. A replacement keeps the record's original
// position; only a genuinely new fixture is appended. Returns true when the
// prediction is new. The store does not validate team names: the adapter is
// the gatekeeper, not the store.
func (s *PredictionStore) Save(p models.MatchPrediction) bool {
	key := models.KeyOf(p.Match)
	for i := range s.records {
		if models.KeyOf(s.records[i].Match) == key {
			s.records[i] = p
			return false
		}
	}
	s.records = append(s.records, p)
	return true
}

// Last returns the most recently newly-saved prediction, if any. Position
// only advances on new fixture saves, so updates to existing fixtures do not
// change which prediction is last.
func (s *PredictionStore) Last() (models.MatchPrediction, bool) {
	if len(s.records) == 0 {
		return models.MatchPrediction{}, false
	}
	return s.records[len(s.records)-1], true
}

// All returns a copy of the ordered records.
func (s *PredictionStore) All() []models.MatchPrediction {
	out := make([]models.MatchPrediction, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of stored predictions.
func (s *PredictionStore) Len() int {
	return len(s.records)
}
