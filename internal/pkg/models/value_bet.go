package models

import "time"

// ValueBet represents a flagged betting opportunity tied to a detected
// pattern for a given fixture. Bookmaker and odds fields are carried through
// as-is; the reconciliation core never interprets them.
type ValueBet struct {
	ID      string  `json:"id,omitempty"`
	MatchID string  `json:"match_id"`
	Pattern Pattern `json:"pattern"`

	Bookmaker string  `json:"bookmaker,omitempty"`
	Market    string  `json:"market,omitempty"`
	Outcome   string  `json:"outcome,omitempty"`
	Odds      float64 `json:"odds,omitempty"`
	Stake     float64 `json:"stake,omitempty"`

	FoundAt time.Time `json:"found_at,omitempty"`
}

// BetKey identifies the "current" version of a value bet: at most one bet per
// match per pattern type is live at a time.
type BetKey struct {
	MatchID     string
	PatternType string
}

// Key returns the bet's upsert identity.
func (b ValueBet) Key() BetKey {
	return BetKey{MatchID: b.MatchID, PatternType: b.Pattern.Type}
}
