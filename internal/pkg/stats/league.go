// Package stats aggregates league-wide statistics from the historical match
// dataset. Results are read-only and feed the dashboard's statistics view;
// the reconciliation core never touches them.
package stats

import (
	"sort"

	"github.com/matchsight/matchsight/internal/pkg/models"
)

// LeagueStats is the aggregate shown on the statistics tab.
type LeagueStats struct {
	TotalMatches     int     `json:"total_matches"`
	HomeWins         int     `json:"home_wins"`
	Draws            int     `json:"draws"`
	AwayWins         int     `json:"away_wins"`
	TotalGoals       int     `json:"total_goals"`
	AvgGoalsPerMatch float64 `json:"avg_goals_per_match"`
	BTTSPercent      float64 `json:"btts_percent"`
	HTFTReversals    int     `json:"htft_reversals"`

	TopScorers []TeamGoals `json:"top_scorers"`
}

// TeamGoals pairs a team with its goals scored across the dataset.
type TeamGoals struct {
	Team  string `json:"team"`
	Goals int    `json:"goals"`
}

// topScorersLimit bounds the ranking shown on the dashboard.
const topScorersLimit = 10

// Aggregate computes league statistics over played matches.
func Aggregate(matches []models.Match) LeagueStats {
	s := LeagueStats{}
	goalsByTeam := make(map[string]int)
	btts := 0

	for _, m := range matches {
		s.TotalMatches++
		s.TotalGoals += m.HomeScore + m.AwayScore

		switch {
		case m.HomeScore > m.AwayScore:
			s.HomeWins++
		case m.HomeScore == m.AwayScore:
			s.Draws++
		default:
			s.AwayWins++
		}

		if m.HomeScore > 0 && m.AwayScore > 0 {
			btts++
		}
		if reversed(m) {
			s.HTFTReversals++
		}

		goalsByTeam[m.HomeTeam] += m.HomeScore
		goalsByTeam[m.AwayTeam] += m.AwayScore
	}

	if s.TotalMatches > 0 {
		s.AvgGoalsPerMatch = float64(s.TotalGoals) / float64(s.TotalMatches)
		s.BTTSPercent = float64(btts) / float64(s.TotalMatches) * 100
	}

	s.TopScorers = rankTeams(goalsByTeam)
	return s
}

func reversed(m models.Match) bool {
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

func rankTeams(goalsByTeam map[string]int) []TeamGoals {
	ranked := make([]TeamGoals, 0, len(goalsByTeam))
	for team, goals := range goalsByTeam {
		ranked = append(ranked, TeamGoals{Team: team, Goals: goals})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Goals != ranked[j].Goals {
			return ranked[i].Goals > ranked[j].Goals
		}
		return ranked[i].Team < ranked[j].Team
	})
	if len(ranked) > topScorersLimit {
		ranked = ranked[:topScorersLimit]
	}
	return ranked
}
