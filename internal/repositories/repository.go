package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chughjug/ratings-sub000/internal/models"
)

// TournamentRepository defines the interface for tournament data operations
type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tournament, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// StandingsRepository defines the interface for standings data operations
type StandingsRepository interface {
	ReplaceForTournament(ctx context.Context, tournamentID primitive.ObjectID, entries []*models.StandingsEntry) error
	FindByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.StandingsEntry, error)
	FindBySection(ctx context.Context, tournamentID primitive.ObjectID, section string) ([]*models.StandingsEntry, error)
	DistinctSections(ctx context.Context, tournamentID primitive.ObjectID) ([]string, error)
	UpdateRating(ctx context.Context, tournamentID primitive.ObjectID, playerID string, rating *int) error
	DeleteForTournament(ctx context.Context, tournamentID primitive.ObjectID) error
	CountByTournament(ctx context.Context, tournamentID primitive.ObjectID) (int64, error)
}

// PrizeSettingsRepository defines the interface for prize configuration operations.
// Each tournament has at most one settings document.
type PrizeSettingsRepository interface {
	FindByTournament(ctx context.Context, tournamentID primitive.ObjectID) (*models.PrizeSettings, error)
	Upsert(ctx context.Context, settings *models.PrizeSettings) error
	DeleteByTournament(ctx context.Context, tournamentID primitive.ObjectID) error
}

// DistributionRepository defines the interface for the automatic prize batch.
// A tournament's automatic rows live in one batch document so replacing the
// batch is a single write.
type DistributionRepository interface {
	ReplaceBatch(ctx context.Context, batch *models.PrizeBatch) error
	FindBatch(ctx context.Context, tournamentID primitive.ObjectID) (*models.PrizeBatch, error)
	DeleteBatch(ctx context.Context, tournamentID primitive.ObjectID) error
}

// ManualPrizeRepository defines the interface for director-entered prize rows
type ManualPrizeRepository interface {
	Create(ctx context.Context, prize *models.PrizeDistribution) error
	FindByID(ctx context.Context, id string) (*models.PrizeDistribution, error)
	FindByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.PrizeDistribution, error)
	Delete(ctx context.Context, id string) error
	DeleteByTournament(ctx context.Context, tournamentID primitive.ObjectID) error
}
