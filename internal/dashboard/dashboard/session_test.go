package dashboard

import (
	"testing"
	"time"

	"github.com/matchsight/matchsight/internal/pkg/models"
)

func testSession() *Session {
	s := NewSession(nil)
	s.now = func() time.Time {
		return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return s
}

func prediction(home, away, date string) models.MatchPrediction {
	return models.MatchPrediction{
		Match: models.Match{HomeTeam: home, AwayTeam: away, Date: date},
	}
}

func bet(matchID, patternType string, odds float64) models.ValueBet {
	return models.ValueBet{
		MatchID: matchID,
		Pattern: models.Pattern{Type: patternType},
		Odds:    odds,
	}
}

func TestSavePrediction_UpsertIdempotence(t *testing.T) {
	s := testSession()
	p := prediction("A", "B", "2024-01-01T00:00:00.000Z")

	if !s.SavePrediction(p) {
		t.Error("first save should be new")
	}
	if s.SavePrediction(p) {
		t.Error("second save of the same fixture should replace, not add")
	}

	preds := s.Predictions()
	if len(preds) != 1 {
		t.Fatalf("store should hold exactly one record, got %d", len(preds))
	}
}

func TestSavePrediction_IdentityPairStrictness(t *testing.T) {
	s := testSession()

	s.SavePrediction(prediction("A", "B", "2024-01-01T00:00:00.000Z"))
	s.SavePrediction(prediction("A", "C", "2024-01-01T00:00:00.000Z"))

	if got := len(s.Predictions()); got != 2 {
		t.Fatalf("(A,B) and (A,C) are distinct fixtures, want 2 records, got %d", got)
	}

	// Same pair on a different date collapses onto the existing record.
	s.SavePrediction(prediction("A", "B", "2024-06-01T00:00:00.000Z"))

	preds := s.Predictions()
	if len(preds) != 2 {
		t.Fatalf("rematch must replace, want 2 records, got %d", len(preds))
	}
	if preds[0].Match.Date != "2024-06-01T00:00:00.000Z" {
		t.Errorf("replacement should carry the later date, got %q", preds[0].Match.Date)
	}
}

func TestSavePrediction_ReplacementKeepsPosition(t *testing.T) {
	s := testSession()

	s.SavePrediction(prediction("A", "B", "d1"))
	s.SavePrediction(prediction("C", "D", "d1"))

	// Updating the first fixture must not bump it to the end.
	s.SavePrediction(prediction("A", "B", "d2"))

	preds := s.Predictions()
	if preds[0].Match.HomeTeam != "A" || preds[1].Match.HomeTeam != "C" {
		t.Errorf("order changed on update: %q then %q",
			preds[0].Match.HomeTeam, preds[1].Match.HomeTeam)
	}

	// Active prediction stays the last newly-saved fixture.
	active := s.ActivePrediction()
	if active == nil || active.Match.HomeTeam != "C" {
		t.Error("update to an earlier fixture must not change the active prediction")
	}
}

func TestSavePrediction_NotifiesOnlyOnNew(t *testing.T) {
	s := testSession()

	var notified int
	s.OnNewPrediction(func(models.MatchPrediction) { notified++ })

	s.SavePrediction(prediction("A", "B", "d1"))
	s.SavePrediction(prediction("A", "B", "d2"))
	s.SavePrediction(prediction("C", "D", "d1"))

	if notified != 2 {
		t.Errorf("expected 2 notifications (new fixtures only), got %d", notified)
	}
}

func TestSaveValueBet_AttachesToOwningPrediction(t *testing.T) {
	s := testSession()

	p := prediction("X", "Y", "2024-01-01T00:00:00.000Z")
	s.SavePrediction(p)

	b := s.SaveValueBet(bet("X-Y-2024-01-01T00:00:00.000Z", "btts", 1.9))

	if b.ID == "" {
		t.Error("saved bet should receive an ID")
	}

	active := s.ActivePrediction()
	if active == nil || len(active.ValueBets) != 1 {
		t.Fatal("bet should be attached to the owning prediction")
	}
	if active.ValueBets[0].Pattern.Type != "btts" {
		t.Errorf("attached bet pattern = %q, want btts", active.ValueBets[0].Pattern.Type)
	}

	if got := len(s.ValueBets()); got != 1 {
		t.Errorf("value-bet store should hold the bet, got %d", got)
	}
}

func TestSaveValueBet_EmptyPredictionStoreIsFine(t *testing.T) {
	s := testSession()

	s.SaveValueBet(bet("X-Y-d", "btts", 1.9))

	if got := len(s.ValueBets()); got != 1 {
		t.Errorf("bet should land in the store even with no predictions, got %d", got)
	}
	if s.ActivePrediction() != nil {
		t.Error("no prediction should exist")
	}
}

func TestSaveValueBet_UnrelatedPredictionUntouched(t *testing.T) {
	s := testSession()

	s.SavePrediction(prediction("X", "Y", "d1"))
	s.SaveValueBet(bet("other-match", "btts", 1.9))

	if bets := s.ActiveBets(); len(bets) != 0 {
		t.Errorf("unrelated bet must not attach, got %d embedded bets", len(bets))
	}
}

func TestUpdateValueBet_Coherence(t *testing.T) {
	s := testSession()

	s.SavePrediction(prediction("X", "Y", "2024-01-01T00:00:00.000Z"))
	matchID := "X-Y-2024-01-01T00:00:00.000Z"

	saved := s.SaveValueBet(bet(matchID, "btts", 1.9))

	updated := saved
	updated.Odds = 2.4
	if !s.UpdateValueBet(updated) {
		t.Fatal("update of an existing bet should replace it")
	}

	// Store and embedded copy must agree on the updated fields.
	storeBets := s.ValueBets()
	if len(storeBets) != 1 || storeBets[0].Odds != 2.4 {
		t.Errorf("store copy not updated: %+v", storeBets)
	}
	embedded := s.ActiveBets()
	if len(embedded) != 1 || embedded[0].Odds != 2.4 {
		t.Errorf("embedded copy not updated: %+v", embedded)
	}
}

func TestUpdateValueBet_MissIsSilentNoOp(t *testing.T) {
	s := testSession()

	s.SavePrediction(prediction("X", "Y", "d1"))
	if s.UpdateValueBet(bet("nowhere", "btts", 2.0)) {
		t.Error("update of an unknown bet must not insert")
	}
	if got := len(s.ValueBets()); got != 0 {
		t.Errorf("store should stay empty after a missed update, got %d", got)
	}
}

func TestUpdateValueBet_ReattachRunsWithoutStoreHit(t *testing.T) {
	s := testSession()

	s.SavePrediction(prediction("X", "Y", "2024-01-01T00:00:00.000Z"))
	matchID := "X-Y-2024-01-01T00:00:00.000Z"

	// Attach two bets with the same key by adding twice: the top level is
	// append-only, so both remain.
	s.SaveValueBet(bet(matchID, "btts", 1.9))
	s.SaveValueBet(bet(matchID, "btts", 2.0))

	if got := len(s.ValueBets()); got != 2 {
		t.Fatalf("append-only store should hold both bets, got %d", got)
	}
	if got := len(s.ActiveBets()); got != 2 {
		t.Fatalf("both bets should be embedded, got %d", got)
	}

	// Update collapses lookups onto the first store match but reattaches
	// every embedded copy with the key.
	s.UpdateValueBet(bet(matchID, "btts", 3.5))

	embedded := s.ActiveBets()
	for i, b := range embedded {
		if b.Odds != 3.5 {
			t.Errorf("embedded bet %d not reattached: odds = %v", i, b.Odds)
		}
	}
	storeBets := s.ValueBets()
	if storeBets[0].Odds != 3.5 {
		t.Error("first store match should be replaced")
	}
	if storeBets[1].Odds != 2.0 {
		t.Error("second store copy stays until its own update")
	}
}

func TestPropagationCompleteness_Interleavings(t *testing.T) {
	// For any interleaving of saves and adds, every bet resolving to an
	// existing prediction ends up embedded exactly once per key.
	matchID := "X-Y-2024-01-01T00:00:00.000Z"
	p := prediction("X", "Y", "2024-01-01T00:00:00.000Z")

	tests := []struct {
		name string
		run  func(s *Session)
	}{
		{"prediction first", func(s *Session) {
			s.SavePrediction(p)
			s.SaveValueBet(bet(matchID, "btts", 1.9))
			s.SaveValueBet(bet(matchID, "high_scoring", 2.1))
		}},
		{"bets between saves", func(s *Session) {
			s.SavePrediction(p)
			s.SaveValueBet(bet(matchID, "btts", 1.9))
			s.SavePrediction(prediction("C", "D", "d1"))
			s.SaveValueBet(bet(matchID, "high_scoring", 2.1))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSession()
			tt.run(s)

			var target *models.MatchPrediction
			for _, pr := range s.Predictions() {
				if pr.Match.HomeTeam == "X" {
					cp := pr
					target = &cp
					break
				}
			}
			if target == nil {
				t.Fatal("prediction for X vs Y missing")
			}

			seen := make(map[models.BetKey]int)
			for _, b := range target.ValueBets {
				seen[b.Key()]++
			}
			for _, b := range s.ValueBets() {
				if !b.BelongsTo(target.Match) {
					continue
				}
				if seen[b.Key()] != 1 {
					t.Errorf("bet key %+v embedded %d times, want 1", b.Key(), seen[b.Key()])
				}
			}
		})
	}
}

func TestActiveSelectors_EmptyStore(t *testing.T) {
	s := testSession()

	if s.ActivePrediction() != nil {
		t.Error("ActivePrediction on a fresh session should be nil")
	}
	bets := s.ActiveBets()
	if bets == nil || len(bets) != 0 {
		t.Errorf("ActiveBets on a fresh session should be an empty sequence, got %v", bets)
	}
}

func TestStoreAcceptsEmptyTeamNames(t *testing.T) {
	// The adapter is the gatekeeper; the store itself does not validate.
	s := testSession()

	if !s.SavePrediction(prediction("", "B", "d1")) {
		t.Error("store should accept a prediction with an empty team name")
	}
	if got := len(s.Predictions()); got != 1 {
		t.Errorf("record should be stored, got %d", got)
	}
}
