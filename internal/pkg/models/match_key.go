package models

// MatchKey identifies a fixture by its team-name pair. The date is
// deliberately not part of the key: a rematch between the same two teams
// replaces the earlier prediction (downstream history display relies on
// this, see Fixture in the product glossary).
//
// Comparison is exact and case-sensitive on both fields jointly. MatchKey is
// comparable, so it can be used directly with == and as a map key.
type MatchKey struct {
	HomeTeam string
	AwayTeam string
}

// KeyOf returns the fixture identity of a match.
func KeyOf(m Match) MatchKey {
	return MatchKey{HomeTeam: m.HomeTeam, AwayTeam: m.AwayTeam}
}

// FallbackID builds the composite match identifier used when a match carries
// no explicit ID: "home-away-date". Team names containing hyphens can collide
// under this scheme, which is why explicit IDs win when present.
func (m Match) FallbackID() string {
	return m.HomeTeam + "-" + m.AwayTeam + "-" + m.Date
}

// BelongsTo reports whether bet refers to the given match. The explicit match
// identifier is checked first; otherwise the fallback composite ID must match
// exactly. No fuzzy matching: a miss is a normal outcome, not a failure.
func (b ValueBet) BelongsTo(m Match) bool {
	if m.ID != "" && m.ID == b.MatchID {
		return true
	}
	return b.MatchID == m.FallbackID()
}
