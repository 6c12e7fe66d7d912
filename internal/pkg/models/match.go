package models

import "time"

// ISO8601Millis is the wire format for match dates. Historical data providers
// ship timestamps with millisecond precision, so the fallback match identifier
// has to reproduce it exactly.
const ISO8601Millis = "2006-01-02T15:04:05.000Z07:00"

// Match represents a fixture between two named teams. Scores stay zero for
// matches that have not been played yet. A Match has no lifecycle of its own;
// it is embedded in a MatchPrediction.
type Match struct {
	ID          string `json:"id,omitempty"`
	HomeTeam    string `json:"home_team"`
	AwayTeam    string `json:"away_team"`
	Date        string `json:"date"` // ISO-8601 timestamp string
	HomeScore   int    `json:"home_score"`
	AwayScore   int    `json:"away_score"`
	HTHomeScore int    `json:"ht_home_score"`
	HTAwayScore int    `json:"ht_away_score"`
}

// PredictedResult is the three-way outcome of a prediction.
type PredictedResult string

const (
	ResultHomeWin PredictedResult = "home_win"
	ResultDraw    PredictedResult = "draw"
	ResultAwayWin PredictedResult = "away_win"
)

// PredictedScore holds the model's expected goals for each side.
type PredictedScore struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
}

// Pattern is a detected statistical signal attached to a prediction. The
// reconciliation core only looks at Type; everything else is carried through
// for display.
type Pattern struct {
	Type        string  `json:"type"`
	Description string  `json:"description,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
}

// HeadToHead aggregates historical results between the two teams of a fixture.
type HeadToHead struct {
	TotalMatches    int     `json:"total_matches"`
	HomeWins        int     `json:"home_wins"`
	Draws           int     `json:"draws"`
	AwayWins        int     `json:"away_wins"`
	HomeGoals       int     `json:"home_goals"`
	AwayGoals       int     `json:"away_goals"`
	BothTeamsScored int     `json:"both_teams_scored"`
	HTFTReversals   int     `json:"htft_reversals"`
	AvgTotalGoals   float64 `json:"avg_total_goals"`
}

// HTFTEntry is one half-time/full-time combination observed for a fixture.
// The core stores these untouched.
type HTFTEntry struct {
	HalfTime string `json:"half_time"`
	FullTime string `json:"full_time"`
	Count    int    `json:"count"`
}

// MatchPrediction is the canonical prediction record.
type MatchPrediction struct {
	Match           Match           `json:"match"`
	PredictedResult PredictedResult `json:"predicted_result"`
	ConfidenceLevel float64         `json:"confidence_level"`
	PredictedScore  PredictedScore  `json:"predicted_score"`
	Patterns        []Pattern       `json:"patterns"`
	ValueBets       []ValueBet      `json:"value_bets,omitempty"`
	HTFTAnalysis    []HTFTEntry     `json:"htft_analysis,omitempty"`
	HeadToHead      HeadToHead      `json:"head_to_head"`
	CreatedAt       time.Time       `json:"created_at"`
}
