package dashboard

import (
	"testing"
	"time"

	"github.com/matchsight/matchsight/internal/pkg/models"
	"github.com/matchsight/matchsight/internal/pkg/predictor"
)

var adaptNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func modelOutput() predictor.Output {
	return predictor.Output{
		PredictedWinner: "home",
		Confidence:      0.61,
		ModelPredictions: predictor.ModelPredictions{
			Poisson: predictor.PoissonPrediction{HomeGoals: 1.8, AwayGoals: 0.9},
		},
		Patterns: []models.Pattern{
			{Type: "high_scoring", Confidence: 0.7},
		},
		HomeExpectedGoals: 1.8,
		AwayExpectedGoals: 0.9,
	}
}

func TestAdaptPrediction_WinnerMapping(t *testing.T) {
	tests := []struct {
		winner string
		want   models.PredictedResult
	}{
		{"home", models.ResultHomeWin},
		{"away", models.ResultAwayWin},
		{"draw", models.ResultDraw},
		{"", models.ResultDraw},
		{"unknown", models.ResultDraw},
	}

	for _, tt := range tests {
		t.Run("winner="+tt.winner, func(t *testing.T) {
			out := modelOutput()
			out.PredictedWinner = tt.winner

			p := AdaptPrediction("A", "B", out, adaptNow)
			if p == nil {
				t.Fatal("adapter returned nil for valid team names")
			}
			if p.PredictedResult != tt.want {
				t.Errorf("predictedResult = %q, want %q", p.PredictedResult, tt.want)
			}
		})
	}
}

func TestAdaptPrediction_EmptyInputRejection(t *testing.T) {
	out := modelOutput()

	if AdaptPrediction("", "Team B", out, adaptNow) != nil {
		t.Error("empty home team should yield the null case")
	}
	if AdaptPrediction("Team A", "", out, adaptNow) != nil {
		t.Error("empty away team should yield the null case")
	}
}

func TestAdaptPrediction_Fields(t *testing.T) {
	p := AdaptPrediction("Team A", "Team B", modelOutput(), adaptNow)
	if p == nil {
		t.Fatal("adapter returned nil")
	}

	if p.Match.HomeTeam != "Team A" || p.Match.AwayTeam != "Team B" {
		t.Errorf("match teams = %q/%q", p.Match.HomeTeam, p.Match.AwayTeam)
	}
	if p.Match.Date != "2024-01-01T00:00:00.000Z" {
		t.Errorf("match date = %q, want current instant in ISO-8601 millis", p.Match.Date)
	}
	if p.Match.HomeScore != 0 || p.Match.AwayScore != 0 ||
		p.Match.HTHomeScore != 0 || p.Match.HTAwayScore != 0 {
		t.Error("placeholder fixture must have zeroed scores")
	}

	if p.ConfidenceLevel != 0.61 {
		t.Errorf("confidence = %v, want 0.61 copied verbatim", p.ConfidenceLevel)
	}
	if p.PredictedScore.Home != 1.8 || p.PredictedScore.Away != 0.9 {
		t.Errorf("predictedScore = %+v, want the Poisson pair", p.PredictedScore)
	}
	if len(p.Patterns) != 1 || p.Patterns[0].Type != "high_scoring" {
		t.Errorf("patterns not carried over: %+v", p.Patterns)
	}
	if len(p.HTFTAnalysis) != 0 {
		t.Error("htft analysis must start empty")
	}
}

func TestAdaptPrediction_HeadToHeadZeros(t *testing.T) {
	p := AdaptPrediction("A", "B", modelOutput(), adaptNow)
	if p == nil {
		t.Fatal("adapter returned nil")
	}

	h2h := p.HeadToHead
	if h2h.TotalMatches != 0 || h2h.HomeWins != 0 || h2h.Draws != 0 || h2h.AwayWins != 0 ||
		h2h.HomeGoals != 0 || h2h.AwayGoals != 0 || h2h.BothTeamsScored != 0 || h2h.HTFTReversals != 0 {
		t.Errorf("head-to-head counters must all be zero at adaptation time: %+v", h2h)
	}
	if h2h.AvgTotalGoals != 2.7 {
		t.Errorf("avgTotalGoals = %v, want home+away expected goals (2.7)", h2h.AvgTotalGoals)
	}
}

func TestAdaptPrediction_PatternsCopied(t *testing.T) {
	out := modelOutput()
	p := AdaptPrediction("A", "B", out, adaptNow)
	if p == nil {
		t.Fatal("adapter returned nil")
	}

	// Mutating the model output afterwards must not leak into the record.
	out.Patterns[0].Type = "mutated"

	if p.Patterns[0].Type != "high_scoring" {
		t.Errorf("stored patterns observed caller mutation: %q", p.Patterns[0].Type)
	}
}
