package models

import "testing"

func TestFallbackID(t *testing.T) {
	m := Match{
		HomeTeam: "X",
		AwayTeam: "Y",
		Date:     "2024-01-01T00:00:00.000Z",
	}

	want := "X-Y-2024-01-01T00:00:00.000Z"
	if got := m.FallbackID(); got != want {
		t.Errorf("FallbackID() = %q, want %q", got, want)
	}
}

func TestBelongsTo_FallbackKey(t *testing.T) {
	m := Match{
		HomeTeam: "X",
		AwayTeam: "Y",
		Date:     "2024-01-01T00:00:00.000Z",
	}
	bet := ValueBet{MatchID: "X-Y-2024-01-01T00:00:00.000Z"}

	if !bet.BelongsTo(m) {
		t.Errorf("bet with matchID %q should resolve to match without explicit ID", bet.MatchID)
	}
}

func TestBelongsTo_ExplicitID(t *testing.T) {
	m := Match{
		ID:       "ext-42",
		HomeTeam: "Arsenal",
		AwayTeam: "Chelsea",
		Date:     "2024-03-10T15:00:00.000Z",
	}

	tests := []struct {
		name    string
		matchID string
		want    bool
	}{
		{"explicit id match", "ext-42", true},
		{"fallback still works alongside explicit id", "Arsenal-Chelsea-2024-03-10T15:00:00.000Z", true},
		{"different id", "ext-43", false},
		{"case sensitive", "ARSENAL-Chelsea-2024-03-10T15:00:00.000Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bet := ValueBet{MatchID: tt.matchID}
			if got := bet.BelongsTo(m); got != tt.want {
				t.Errorf("BelongsTo with matchID %q = %v, want %v", tt.matchID, got, tt.want)
			}
		})
	}
}

func TestKeyOf_TeamPairEquality(t *testing.T) {
	a := Match{HomeTeam: "A", AwayTeam: "B", Date: "2024-01-01T00:00:00.000Z"}
	b := Match{HomeTeam: "A", AwayTeam: "B", Date: "2024-06-01T00:00:00.000Z"}
	c := Match{HomeTeam: "A", AwayTeam: "C", Date: "2024-01-01T00:00:00.000Z"}

	if KeyOf(a) != KeyOf(b) {
		t.Error("same team pair on different dates should share one fixture key")
	}
	if KeyOf(a) == KeyOf(c) {
		t.Error("different away teams must not share a fixture key")
	}
}

func TestBetKey(t *testing.T) {
	b1 := ValueBet{MatchID: "m1", Pattern: Pattern{Type: "high_scoring"}, Odds: 1.9}
	b2 := ValueBet{MatchID: "m1", Pattern: Pattern{Type: "high_scoring"}, Odds: 2.4}
	b3 := ValueBet{MatchID: "m1", Pattern: Pattern{Type: "btts"}}

	if b1.Key() != b2.Key() {
		t.Error("bets for the same match and pattern type must share a key")
	}
	if b1.Key() == b3.Key() {
		t.Error("different pattern types must not share a key")
	}
}
