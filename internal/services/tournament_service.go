package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chughjug/ratings-sub000/internal/models"
	"github.com/chughjug/ratings-sub000/internal/repositories"
)

// Compile-time check to ensure TournamentServiceImpl implements TournamentService
var _ TournamentService = (*TournamentServiceImpl)(nil)

// TournamentServiceImpl handles tournament lifecycle operations
type TournamentServiceImpl struct {
	tournamentRepo   repositories.TournamentRepository
	standingsRepo    repositories.StandingsRepository
	settingsRepo     repositories.PrizeSettingsRepository
	distributionRepo repositories.DistributionRepository
	manualRepo       repositories.ManualPrizeRepository
}

// NewTournamentService creates a new TournamentServiceImpl
func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	standingsRepo repositories.StandingsRepository,
	settingsRepo repositories.PrizeSettingsRepository,
	distributionRepo repositories.DistributionRepository,
	manualRepo repositories.ManualPrizeRepository,
) *TournamentServiceImpl {
	return &TournamentServiceImpl{
		tournamentRepo:   tournamentRepo,
		standingsRepo:    standingsRepo,
		settingsRepo:     settingsRepo,
		distributionRepo: distributionRepo,
		manualRepo:       manualRepo,
	}
}

// Create creates a new tournament
func (s *TournamentServiceImpl) Create(ctx context.Context, tournament *models.Tournament) (*models.Tournament, error) {
	if tournament.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidTournament)
	}
	if tournament.Rounds < 0 {
		return nil, fmt.Errorf("%w: rounds cannot be negative", ErrInvalidTournament)
	}
	if tournament.Status == "" {
		tournament.Status = models.TournamentStatusRegistration
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		slog.Error("Failed to create tournament", "error", err, "name", tournament.Name)
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	slog.Info("Tournament created", "tournamentId", tournament.ID.Hex(), "name", tournament.Name)
	return tournament, nil
}

// GetByID retrieves a tournament by ID
func (s *TournamentServiceImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Tournament, error) {
	return requireTournament(ctx, s.tournamentRepo, id)
}

// GetAll retrieves tournaments with pagination, together with the total count
func (s *TournamentServiceImpl) GetAll(ctx context.Context, page, limit int) ([]*models.Tournament, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	tournaments, err := s.tournamentRepo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tournaments: %w", err)
	}
	total, err := s.tournamentRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tournaments: %w", err)
	}
	return tournaments, total, nil
}

// Update updates a tournament's editable fields
func (s *TournamentServiceImpl) Update(ctx context.Context, tournament *models.Tournament) (*models.Tournament, error) {
	existing, err := requireTournament(ctx, s.tournamentRepo, tournament.ID)
	if err != nil {
		return nil, err
	}
	if tournament.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidTournament)
	}

	tournament.CreatedAt = existing.CreatedAt
	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		slog.Error("Failed to update tournament", "error", err, "tournamentId", tournament.ID.Hex())
		return nil, fmt.Errorf("failed to update tournament: %w", err)
	}

	slog.Info("Tournament updated", "tournamentId", tournament.ID.Hex(), "name", tournament.Name)
	return tournament, nil
}

// Delete removes a tournament with its standings, prize settings and stored
// distributions. The dependent collections are cleared first so a failure
// leaves the tournament visible rather than orphaning its data.
func (s *TournamentServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := requireTournament(ctx, s.tournamentRepo, id); err != nil {
		return err
	}

	if err := s.standingsRepo.DeleteForTournament(ctx, id); err != nil {
		return fmt.Errorf("failed to delete standings: %w", err)
	}
	if err := s.settingsRepo.DeleteByTournament(ctx, id); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to delete prize settings: %w", err)
	}
	if err := s.distributionRepo.DeleteBatch(ctx, id); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to delete prize batch: %w", err)
	}
	if err := s.manualRepo.DeleteByTournament(ctx, id); err != nil {
		return fmt.Errorf("failed to delete manual prizes: %w", err)
	}
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}

	slog.Info("Tournament deleted", "tournamentId", id.Hex())
	return nil
}
