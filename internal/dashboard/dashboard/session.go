// Package dashboard implements the prediction/value-bet reconciliation core
// behind the match prediction dashboard, plus the HTTP surface that exposes
// it to the frontend.
package dashboard

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matchsight/matchsight/internal/pkg/metrics"
	"github.com/matchsight/matchsight/internal/pkg/models"
	"github.com/matchsight/matchsight/internal/pkg/predictor"
)

// Session owns the prediction and value-bet stores for one dashboard view
// session. All mutations go through Session entry points, which take a single
// mutex so a store mutation and its cross-store propagation form one critical
// section and events serialize in arrival order.
//
// The stores live only as long as the session; a dataset refresh never
// touches them.
type Session struct {
	mu          sync.Mutex
	predictions PredictionStore
	valueBets   ValueBetStore

	now     func() time.Time
	metrics *metrics.DashboardMetrics

	onNewPrediction []func(models.MatchPrediction)
}

// NewSession creates an empty session. metrics may be nil.
func NewSession(m *metrics.DashboardMetrics) *Session {
	return &Session{
		now:     time.Now,
		metrics: m,
	}
}

// OnNewPrediction registers a callback fired after a new (non-replacing)
// prediction is saved. Updates to existing fixtures and all value-bet
// operations stay silent at this layer. Callbacks run outside the store lock.
func (s *Session) OnNewPrediction(fn func(models.MatchPrediction)) {
	s.onNewPrediction = append(s.onNewPrediction, fn)
}

// Adapt runs the prediction adapter against the session clock. A nil result
// means no prediction could be produced (empty team name).
func (s *Session) Adapt(homeTeam, awayTeam string, out predictor.Output) *models.MatchPrediction {
	return AdaptPrediction(homeTeam, awayTeam, out, s.now())
}

// SavePrediction upserts the prediction by fixture identity and returns
// whether it was new. Only a new fixture triggers the notification fan-out.
func (s *Session) SavePrediction(p models.MatchPrediction) bool {
	s.mu.Lock()
	isNew := s.predictions.Save(p)
	count := s.predictions.Len()
	s.mu.Unlock()

	if s.metrics != nil {
		outcome := "replaced"
		if isNew {
			outcome = "new"
		}
		s.metrics.PredictionsSaved.WithLabelValues(outcome).Inc()
		s.metrics.PredictionCount.Set(float64(count))
	}

	if isNew {
		slog.Info("prediction saved",
			"home", p.Match.HomeTeam, "away", p.Match.AwayTeam,
			"result", p.PredictedResult)
		for _, fn := range s.onNewPrediction {
			fn(p)
		}
	}
	return isNew
}

// SaveValueBet appends the bet to the store and attaches it to every owning
// prediction. A missing bet ID is filled in; the found-at timestamp is set if
// zero. The stored bet is returned.
func (s *Session) SaveValueBet(b models.ValueBet) models.ValueBet {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.FoundAt.IsZero() {
		b.FoundAt = s.now()
	}

	s.mu.Lock()
	s.valueBets.Add(b)
	attached := attachBet(&s.predictions, b)
	count := s.valueBets.Len()
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.ValueBetsSaved.Inc()
		s.metrics.ValueBetCount.Set(float64(count))
		s.metrics.PropagationFanout.Observe(float64(attached))
	}

	slog.Debug("value bet saved",
		"match_id", b.MatchID, "pattern", b.Pattern.Type, "attached", attached)
	return b
}

// UpdateValueBet replaces the current bet for (matchId, pattern type) in the
// store and in every embedded copy. A miss at the store level is a silent
// no-op there, but the reattach step still runs. Returns whether the store
// held a bet to replace.
func (s *Session) UpdateValueBet(b models.ValueBet) bool {
	s.mu.Lock()
	replaced := s.valueBets.Update(b)
	reattached := reattachBet(&s.predictions, b)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.ValueBetsUpdated.Inc()
		s.metrics.PropagationFanout.Observe(float64(reattached))
	}

	slog.Debug("value bet updated",
		"match_id", b.MatchID, "pattern", b.Pattern.Type,
		"replaced", replaced, "reattached", reattached)
	return replaced
}

// ActivePrediction returns the most recently newly-saved prediction, or nil
// when the store is empty. "Most recent" is store position, which only
// advances on new fixture saves.
func (s *Session) ActivePrediction() *models.MatchPrediction {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.predictions.Last()
	if !ok {
		return nil
	}
	return &p
}

// ActiveBets returns the active prediction's embedded bets, or an empty
// sequence when there is no active prediction or it carries none.
func (s *Session) ActiveBets() []models.ValueBet {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.predictions.Last()
	if !ok || len(p.ValueBets) == 0 {
		return []models.ValueBet{}
	}
	out := make([]models.ValueBet, len(p.ValueBets))
	copy(out, p.ValueBets)
	return out
}

// Predictions returns a copy of all saved predictions in store order.
func (s *Session) Predictions() []models.MatchPrediction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.predictions.All()
}

// ValueBets returns a copy of all saved value bets in store order.
func (s *Session) ValueBets() []models.ValueBet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.valueBets.All()
}
