package dashboard

import "github.com/matchsight/matchsight/internal/pkg/models"

// Cross-store propagation keeps the value bets embedded in predictions in
// sync with the value-bet store. Both steps run inside the Session's critical
// section, so a bet's store mutation and its propagation are atomic with
// respect to other events.

// attachBet appends the bet to every prediction whose match it belongs to.
// Every matching prediction receives the bet, not just the first: if the
// store's uniqueness invariant has been violated elsewhere, propagation still
// reaches all copies. An empty store means there is nothing to propagate into
// yet, which is not an error. Returns the number of predictions touched.
func attachBet(preds *PredictionStore, bet models.ValueBet) int {
	if preds.Len() == 0 {
		return 0
	}

	attached := 0
	for i := range preds.records {
		if bet.BelongsTo(preds.records[i].Match) {
			preds.records[i].ValueBets = append(preds.records[i].ValueBets, bet)
			attached++
		}
	}
	return attached
}

// reattachBet replaces, in place, every embedded bet whose (matchId, pattern
// type) key equals the updated bet's key. Predictions with no matching
// embedded bet are left untouched. This runs regardless of whether the
// value-bet store itself found a record to replace. Returns the number of
// embedded copies replaced.
func reattachBet(preds *PredictionStore, bet models.ValueBet) int {
	key := bet.Key()
	replaced := 0
	for i := range preds.records {
		for j := range preds.records[i].ValueBets {
			if preds.records[i].ValueBets[j].Key() == key {
				preds.records[i].ValueBets[j] = bet
				replaced++
			}
		}
	}
	return replaced
}
