package dashboard

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/matchsight/matchsight/internal/pkg/models"
	"github.com/matchsight/matchsight/internal/pkg/stats"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// handleGeneratePrediction runs the model for a fixture and saves the adapted
// prediction. An empty team name yields the null case, not an error.
func (s *Server) handleGeneratePrediction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HomeTeam string `json:"home_team"`
		AwayTeam string `json:"away_team"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	historical := s.loadHistory(r.Context(), req.HomeTeam, req.AwayTeam)
	out := s.model.Predict(req.HomeTeam, req.AwayTeam, historical)

	prediction := s.session.Adapt(req.HomeTeam, req.AwayTeam, out)
	if prediction == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"prediction": nil})
		return
	}

	isNew := s.session.SavePrediction(*prediction)
	if isNew {
		s.hub.Broadcast(WSEvent{Type: "prediction_saved", Data: prediction})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"prediction": prediction,
		"new":        isNew,
	})
}

// loadHistory fetches matches involving either team. Missing storage or a
// query failure degrades to an empty history; the model falls back to league
// averages.
func (s *Server) loadHistory(ctx context.Context, homeTeam, awayTeam string) []models.Match {
	if s.storage == nil {
		return nil
	}
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	historical, err := s.storage.GetMatchesForTeams(queryCtx, homeTeam, awayTeam)
	if err != nil {
		slog.Error("Failed to load history", "home", homeTeam, "away", awayTeam, "error", err)
		return nil
	}
	return historical
}

// handleSavePrediction saves a full prediction record directly.
func (s *Server) handleSavePrediction(w http.ResponseWriter, r *http.Request) {
	var p models.MatchPrediction
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid prediction body")
		return
	}

	isNew := s.session.SavePrediction(p)
	if isNew {
		s.hub.Broadcast(WSEvent{Type: "prediction_saved", Data: p})
	}

	writeJSON(w, http.StatusOK, map[string]bool{"new": isNew})
}

func (s *Server) handleGetPredictions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Predictions())
}

func (s *Server) handleSaveValueBet(w http.ResponseWriter, r *http.Request) {
	var b models.ValueBet
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, "invalid value bet body")
		return
	}

	stored := s.session.SaveValueBet(b)
	writeJSON(w, http.StatusOK, stored)
}

func (s *Server) handleUpdateValueBet(w http.ResponseWriter, r *http.Request) {
	var b models.ValueBet
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, "invalid value bet body")
		return
	}

	replaced := s.session.UpdateValueBet(b)
	writeJSON(w, http.StatusOK, map[string]bool{"replaced": replaced})
}

func (s *Server) handleGetValueBets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.ValueBets())
}

func (s *Server) handleActivePrediction(w http.ResponseWriter, r *http.Request) {
	// Encodes as null when the store is empty.
	writeJSON(w, http.StatusOK, s.session.ActivePrediction())
}

func (s *Server) handleActiveBets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.ActiveBets())
}

func (s *Server) handleLeagueStats(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil {
		writeJSON(w, http.StatusOK, stats.Aggregate(nil))
		return
	}

	queryCtx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	matches, err := s.storage.GetMatches(queryCtx)
	if err != nil {
		slog.Error("Failed to load matches for league stats", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load matches")
		return
	}

	writeJSON(w, http.StatusOK, stats.Aggregate(matches))
}

// handleRefresh replaces the historical dataset from the data provider. The
// session stores are independent of dataset freshness and are never cleared.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.client == nil {
		writeError(w, http.StatusServiceUnavailable, "data source is not configured")
		return
	}

	fetchCtx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	matches, err := s.client.GetMatches(fetchCtx)
	if err != nil {
		s.countRefresh("error")
		slog.Error("Dataset refresh failed", "error", err)
		writeError(w, http.StatusBadGateway, "failed to fetch matches from provider")
		return
	}

	if s.storage != nil {
		if err := s.storage.StoreMatches(fetchCtx, matches); err != nil {
			s.countRefresh("error")
			slog.Error("Failed to store refreshed dataset", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to store matches")
			return
		}
	}

	s.countRefresh("ok")
	slog.Info("Dataset refreshed", "matches", len(matches))
	s.hub.Broadcast(WSEvent{Type: "dataset_refreshed", Data: map[string]int{"matches": len(matches)}})

	writeJSON(w, http.StatusOK, map[string]int{"matches": len(matches)})
}

func (s *Server) countRefresh(status string) {
	if s.metrics != nil {
		s.metrics.DatasetRefreshes.WithLabelValues(status).Inc()
	}
}
