package dashboard

import (
	"time"

	"github.com/matchsight/matchsight/internal/pkg/models"
	"github.com/matchsight/matchsight/internal/pkg/predictor"
)

// AdaptPrediction converts raw model output into the canonical prediction
// record. It returns nil when either team name is empty: no prediction can be
// produced, and callers treat that as the null case rather than an error.
//
// The function is pure apart from the supplied clock value.
func AdaptPrediction(homeTeam, awayTeam string, out predictor.Output, now time.Time) *models.MatchPrediction {
	if homeTeam == "" || awayTeam == "" {
		return nil
	}

	// Placeholder fixture dated now, not yet played.
	match := models.Match{
		HomeTeam: homeTeam,
		AwayTeam: awayTeam,
		Date:     now.UTC().Format(models.ISO8601Millis),
	}

	result := models.ResultDraw
	switch out.PredictedWinner {
	case "home":
		result = models.ResultHomeWin
	case "away":
		result = models.ResultAwayWin
	}
	// Anything else, including "draw" and absent, stays a draw: the adapter
	// never fails on an unrecognized winner value.

	// Defensive copy so later mutation of the model output does not leak into
	// the stored record.
	patterns := make([]models.Pattern, len(out.Patterns))
	copy(patterns, out.Patterns)

	return &models.MatchPrediction{
		Match:           match,
		PredictedResult: result,
		ConfidenceLevel: out.Confidence,
		PredictedScore: models.PredictedScore{
			Home: out.ModelPredictions.Poisson.HomeGoals,
			Away: out.ModelPredictions.Poisson.AwayGoals,
		},
		Patterns:     patterns,
		HTFTAnalysis: []models.HTFTEntry{},
		// Head-to-head stays zeroed at adaptation time except for the average;
		// the adapter does not scan historical matches here.
		HeadToHead: models.HeadToHead{
			AvgTotalGoals: out.HomeExpectedGoals + out.AwayExpectedGoals,
		},
		CreatedAt: now,
	}
}
