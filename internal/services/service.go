package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chughjug/ratings-sub000/internal/models"
)

// PrizeService defines the interface for prize-related operations
type PrizeService interface {
	// GetSettings retrieves a tournament's prize configuration, creating a
	// disabled default when none exists yet
	GetSettings(ctx context.Context, tournamentID primitive.ObjectID) (*models.PrizeSettings, error)

	// UpdateSettings validates and saves a tournament's prize configuration
	UpdateSettings(ctx context.Context, settings *models.PrizeSettings) (*models.PrizeSettings, error)

	// GenerateStructure proposes a prize structure from the tournament's
	// current standings and a total cash fund; nothing is persisted
	GenerateStructure(ctx context.Context, tournamentID primitive.ObjectID, fund models.Money) (*models.PrizeSettings, error)

	// CalculatePrizes computes and atomically stores the tournament's
	// automatic prize distributions
	CalculatePrizes(ctx context.Context, tournamentID primitive.ObjectID) (*models.PrizeBatch, error)

	// GetPrizes returns the stored distributions, automatic and manual
	GetPrizes(ctx context.Context, tournamentID primitive.ObjectID) ([]models.PrizeDistribution, error)

	// GetWinners returns the stored distributions grouped by section with
	// per-section and tournament-wide statistics
	GetWinners(ctx context.Context, tournamentID primitive.ObjectID) (*models.WinnersReport, error)

	// AddManualPrize records a director-entered prize row
	AddManualPrize(ctx context.Context, tournamentID primitive.ObjectID, prize *models.PrizeDistribution) (*models.PrizeDistribution, error)

	// DeleteManualPrize removes a director-entered prize row
	DeleteManualPrize(ctx context.Context, tournamentID primitive.ObjectID, prizeID string) error

	// HandleRoundComplete reacts to a round-completion event, recomputing
	// prizes when the final round of an auto-assign tournament finishes.
	// It reports whether a computation was actually triggered.
	HandleRoundComplete(ctx context.Context, event *models.RoundCompleteEvent) (bool, error)
}

// TournamentService defines the interface for tournament operations
type TournamentService interface {
	Create(ctx context.Context, tournament *models.Tournament) (*models.Tournament, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Tournament, error)
	GetAll(ctx context.Context, page, limit int) ([]*models.Tournament, int64, error)
	Update(ctx context.Context, tournament *models.Tournament) (*models.Tournament, error)
	// Delete removes a tournament together with its standings, prize
	// settings and stored distributions
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// StandingsService defines the interface for standings operations
type StandingsService interface {
	// ReplaceStandings swaps a tournament's standings for a fresh set
	ReplaceStandings(ctx context.Context, tournamentID primitive.ObjectID, entries []*models.StandingsEntry) (int, error)

	// GetStandings returns a tournament's standings ordered by section and score
	GetStandings(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.StandingsEntry, error)

	// GetSections lists the section names present in a tournament's
	// standings; results are cached briefly
	GetSections(ctx context.Context, tournamentID primitive.ObjectID) ([]string, error)

	// RefreshRatings looks up current ratings for entries that carry a
	// US Chess ID and updates the stored standings. It returns how many
	// entries changed.
	RefreshRatings(ctx context.Context, tournamentID primitive.ObjectID) (int, error)
}
