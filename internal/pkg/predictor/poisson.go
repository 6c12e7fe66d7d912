// Package predictor implements the statistical prediction model consumed by
// the dashboard. The reconciliation core treats its output as opaque: only
// the shape of Output matters there.
package predictor

import (
	"math"

	"github.com/matchsight/matchsight/internal/pkg/config"
	"github.com/matchsight/matchsight/internal/pkg/models"
)

// Output is the raw model result handed to the prediction adapter.
type Output struct {
	PredictedWinner   string           `json:"predicted_winner"` // "home", "away" or "draw"
	Confidence        float64          `json:"confidence"`       // probability of the predicted outcome, 0..1
	ModelPredictions  ModelPredictions `json:"model_predictions"`
	Patterns          []models.Pattern `json:"patterns"`
	HomeExpectedGoals float64          `json:"home_expected_goals"`
	AwayExpectedGoals float64          `json:"away_expected_goals"`
}

// ModelPredictions groups per-model goal expectations. Poisson is the only
// model wired in for now.
type ModelPredictions struct {
	Poisson PoissonPrediction `json:"poisson"`
}

// PoissonPrediction holds the Poisson model's expected goals pair.
type PoissonPrediction struct {
	HomeGoals float64 `json:"home_goals"`
	AwayGoals float64 `json:"away_goals"`
}

// Model predicts match outcomes from historical results using independent
// Poisson goal distributions.
type Model struct {
	maxGoals       int
	homeAdvantage  float64
	minPatternConf float64
}

func New(cfg *config.PredictorConfig) *Model {
	m := &Model{maxGoals: 10, homeAdvantage: 1.15}
	if cfg != nil {
		if cfg.MaxGoals > 0 {
			m.maxGoals = cfg.MaxGoals
		}
		if cfg.HomeAdvantage > 0 {
			m.homeAdvantage = cfg.HomeAdvantage
		}
		m.minPatternConf = cfg.MinPatternConf
	}
	return m
}

// Predict is a pure function of its inputs. With no relevant history it
// falls back to league-average expected goals, so it always produces a
// conforming Output.
func (m *Model) Predict(homeTeam, awayTeam string, historical []models.Match) Output {
	homeLambda, awayLambda := m.expectedGoals(homeTeam, awayTeam, historical)

	pHome, pDraw, pAway := m.outcomeProbabilities(homeLambda, awayLambda)

	winner := "draw"
	confidence := pDraw
	if pHome >= pDraw && pHome >= pAway {
		winner = "home"
		confidence = pHome
	} else if pAway > pHome && pAway >= pDraw {
		winner = "away"
		confidence = pAway
	}

	return Output{
		PredictedWinner: winner,
		Confidence:      confidence,
		ModelPredictions: ModelPredictions{
			Poisson: PoissonPrediction{HomeGoals: homeLambda, AwayGoals: awayLambda},
		},
		Patterns:          m.detectPatterns(homeTeam, awayTeam, historical),
		HomeExpectedGoals: homeLambda,
		AwayExpectedGoals: awayLambda,
	}
}

// leagueAvgGoals is the fallback scoring rate when a team has no history.
const leagueAvgGoals = 1.35

// expectedGoals derives Poisson rates from each team's scoring and conceding
// averages over the supplied history.
func (m *Model) expectedGoals(homeTeam, awayTeam string, historical []models.Match) (float64, float64) {
	homeScored, homeConceded, homePlayed := teamRates(homeTeam, historical)
	awayScored, awayConceded, awayPlayed := teamRates(awayTeam, historical)

	homeAttack := leagueAvgGoals
	awayDefense := leagueAvgGoals
	if homePlayed > 0 {
		homeAttack = homeScored / float64(homePlayed)
	}
	if awayPlayed > 0 {
		awayDefense = awayConceded / float64(awayPlayed)
	}

	awayAttack := leagueAvgGoals
	homeDefense := leagueAvgGoals
	if awayPlayed > 0 {
		awayAttack = awayScored / float64(awayPlayed)
	}
	if homePlayed > 0 {
		homeDefense = homeConceded / float64(homePlayed)
	}

	homeLambda := (homeAttack + awayDefense) / 2 * m.homeAdvantage
	awayLambda := (awayAttack + homeDefense) / 2

	return homeLambda, awayLambda
}

// teamRates sums goals scored and conceded by team across the history.
func teamRates(team string, historical []models.Match) (scored, conceded float64, played int) {
	for _, h := range historical {
		switch team {
		case h.HomeTeam:
			scored += float64(h.HomeScore)
			conceded += float64(h.AwayScore)
			played++
		case h.AwayTeam:
			scored += float64(h.AwayScore)
			conceded += float64(h.HomeScore)
			played++
		}
	}
	return scored, conceded, played
}

// outcomeProbabilities integrates the score grid up to maxGoals per side.
func (m *Model) outcomeProbabilities(homeLambda, awayLambda float64) (pHome, pDraw, pAway float64) {
	for hg := 0; hg <= m.maxGoals; hg++ {
		for ag := 0; ag <= m.maxGoals; ag++ {
			p := poissonPMF(hg, homeLambda) * poissonPMF(ag, awayLambda)
			switch {
			case hg > ag:
				pHome += p
			case hg == ag:
				pDraw += p
			default:
				pAway += p
			}
		}
	}

	// Normalize the truncated grid so the three outcomes sum to 1.
	total := pHome + pDraw + pAway
	if total > 0 {
		pHome /= total
		pDraw /= total
		pAway /= total
	}
	return pHome, pDraw, pAway
}

func poissonPMF(k int, lambda float64) float64 {
	if lambda <= 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	logP := float64(k)*math.Log(lambda) - lambda - logFactorial(k)
	return math.Exp(logP)
}

func logFactorial(k int) float64 {
	lf := 0.0
	for i := 2; i <= k; i++ {
		lf += math.Log(float64(i))
	}
	return lf
}
