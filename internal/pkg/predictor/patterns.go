package predictor

import (
	"fmt"

	"github.com/matchsight/matchsight/internal/pkg/models"
)

// Pattern types emitted by the detector. Value bets reference these through
// Pattern.Type, so the strings are part of the wire contract.
const (
	PatternHighScoring  = "high_scoring"
	PatternBTTS         = "btts"
	PatternHomeStreak   = "home_streak"
	PatternHTFTReversal = "htft_reversal"
)

// detectPatterns scans both teams' history for recurring statistical signals.
// Patterns below the configured confidence floor are dropped.
func (m *Model) detectPatterns(homeTeam, awayTeam string, historical []models.Match) []models.Pattern {
	var relevant []models.Match
	for _, h := range historical {
		if involves(h, homeTeam) || involves(h, awayTeam) {
			relevant = append(relevant, h)
		}
	}
	if len(relevant) == 0 {
		return nil
	}

	var patterns []models.Pattern

	var totalGoals, btts, reversals int
	for _, h := range relevant {
		totalGoals += h.HomeScore + h.AwayScore
		if h.HomeScore > 0 && h.AwayScore > 0 {
			btts++
		}
		if htftReversed(h) {
			reversals++
		}
	}
	n := float64(len(relevant))

	if avg := float64(totalGoals) / n; avg > 3.0 {
		patterns = append(patterns, models.Pattern{
			Type:        PatternHighScoring,
			Description: fmt.Sprintf("averages %.1f goals per match across recent meetings", avg),
			Confidence:  clamp01(avg / 5.0),
		})
	}

	if rate := float64(btts) / n; rate > 0.6 {
		patterns = append(patterns, models.Pattern{
			Type:        PatternBTTS,
			Description: fmt.Sprintf("both teams scored in %.0f%% of recent matches", rate*100),
			Confidence:  rate,
		})
	}

	if streak := homeWinStreak(homeTeam, historical); streak >= 3 {
		patterns = append(patterns, models.Pattern{
			Type:        PatternHomeStreak,
			Description: fmt.Sprintf("%s won their last %d matches", homeTeam, streak),
			Confidence:  clamp01(float64(streak) / 5.0),
		})
	}

	if rate := float64(reversals) / n; rate > 0.2 {
		patterns = append(patterns, models.Pattern{
			Type:        PatternHTFTReversal,
			Description: fmt.Sprintf("half-time lead reversed in %.0f%% of recent matches", rate*100),
			Confidence:  rate,
		})
	}

	if m.minPatternConf > 0 {
		kept := patterns[:0]
		for _, p := range patterns {
			if p.Confidence >= m.minPatternConf {
				kept = append(kept, p)
			}
		}
		patterns = kept
	}
	return patterns
}

func involves(m models.Match, team string) bool {
	return m.HomeTeam == team || m.AwayTeam == team
}

// htftReversed reports whether the half-time leader failed to win.
func htftReversed(m models.Match) bool {
	htDiff := m.HTHomeScore - m.HTAwayScore
	ftDiff := m.HomeScore - m.AwayScore
	if htDiff == 0 {
		return false
	}
	if htDiff > 0 {
		return ftDiff <= 0
	}
	return ftDiff >= 0
}

// homeWinStreak counts consecutive wins by team from the start of the
// history, which arrives newest first.
func homeWinStreak(team string, historical []models.Match) int {
	streak := 0
	for _, h := range historical {
		if !involves(h, team) {
			continue
		}
		won := (h.HomeTeam == team && h.HomeScore > h.AwayScore) ||
			(h.AwayTeam == team && h.AwayScore > h.HomeScore)
		if !won {
			break
		}
		streak++
	}
	return streak
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
