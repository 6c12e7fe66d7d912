package storage

import (
	"context"

	"github.com/matchsight/matchsight/internal/pkg/models"
)

// MatchStorage persists the historical match dataset that feeds the
// prediction model and the league statistics display. The prediction and
// value-bet session stores are in-memory only and never go through here.
type MatchStorage interface {
	// StoreMatches upserts a batch of played matches.
	StoreMatches(ctx context.Context, matches []models.Match) error

	// GetMatches retrieves the full historical dataset.
	GetMatches(ctx context.Context) ([]models.Match, error)

	// GetMatchesForTeams retrieves matches where either team took part,
	// newest first. Used to build the model input for one fixture.
	GetMatchesForTeams(ctx context.Context, homeTeam, awayTeam string) ([]models.Match, error)

	// Close closes the underlying connection.
	Close() error
}
