package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chughjug/ratings-sub000/internal/models"
	"github.com/chughjug/ratings-sub000/internal/repositories"
	"github.com/chughjug/ratings-sub000/pkg/uscf"
)

// RatingLookup is the part of the US Chess client the standings service uses
type RatingLookup interface {
	LookupMember(ctx context.Context, memberID string) (*uscf.Member, error)
}

// Compile-time check to ensure StandingsServiceImpl implements StandingsService
var _ StandingsService = (*StandingsServiceImpl)(nil)

// StandingsServiceImpl handles standings storage and rating refreshes
type StandingsServiceImpl struct {
	standingsRepo  repositories.StandingsRepository
	tournamentRepo repositories.TournamentRepository
	ratings        RatingLookup
	sections       *expirable.LRU[string, []string]
}

// NewStandingsService creates a new StandingsServiceImpl. Section listings
// are cached per tournament for cacheTTL, holding at most cacheSize
// tournaments.
func NewStandingsService(
	standingsRepo repositories.StandingsRepository,
	tournamentRepo repositories.TournamentRepository,
	ratings RatingLookup,
	cacheSize int,
	cacheTTL time.Duration,
) *StandingsServiceImpl {
	return &StandingsServiceImpl{
		standingsRepo:  standingsRepo,
		tournamentRepo: tournamentRepo,
		ratings:        ratings,
		sections:       expirable.NewLRU[string, []string](cacheSize, nil, cacheTTL),
	}
}

// ReplaceStandings swaps a tournament's standings for a fresh set of entries
// and invalidates the cached section list
func (s *StandingsServiceImpl) ReplaceStandings(ctx context.Context, tournamentID primitive.ObjectID, entries []*models.StandingsEntry) (int, error) {
	if _, err := requireTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return 0, err
	}

	for i, entry := range entries {
		if entry.PlayerID == "" {
			return 0, fmt.Errorf("%w: entry %d has no player id", ErrInvalidStandings, i+1)
		}
		if entry.PlayerName == "" {
			return 0, fmt.Errorf("%w: entry %d has no player name", ErrInvalidStandings, i+1)
		}
		if entry.Section == "" {
			return 0, fmt.Errorf("%w: entry %d has no section", ErrInvalidStandings, i+1)
		}
		if entry.Score < 0 {
			return 0, fmt.Errorf("%w: entry %d has negative score", ErrInvalidStandings, i+1)
		}
	}

	if err := s.standingsRepo.ReplaceForTournament(ctx, tournamentID, entries); err != nil {
		slog.Error("Failed to replace standings", "error", err, "tournamentId", tournamentID.Hex())
		return 0, fmt.Errorf("failed to replace standings: %w", err)
	}
	s.sections.Remove(tournamentID.Hex())

	slog.Info("Standings replaced", "tournamentId", tournamentID.Hex(), "entries", len(entries))
	return len(entries), nil
}

// GetStandings returns a tournament's standings ordered by section and score
func (s *StandingsServiceImpl) GetStandings(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.StandingsEntry, error) {
	if _, err := requireTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return nil, err
	}
	entries, err := s.standingsRepo.FindByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings: %w", err)
	}
	return entries, nil
}

// GetSections lists the section names in a tournament's standings. Results
// are cached briefly since the section list changes only when standings are
// replaced.
func (s *StandingsServiceImpl) GetSections(ctx context.Context, tournamentID primitive.ObjectID) ([]string, error) {
	key := tournamentID.Hex()
	if cached, ok := s.sections.Get(key); ok {
		return cached, nil
	}

	if _, err := requireTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return nil, err
	}
	names, err := s.standingsRepo.DistinctSections(ctx, tournamentID)
	if err != nil {
		slog.Error("Failed to list sections", "error", err, "tournamentId", key)
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	sort.Strings(names)
	s.sections.Add(key, names)
	return names, nil
}

// RefreshRatings looks up current ratings for entries carrying a US Chess ID
// and updates the stored standings. Individual lookup failures are logged
// and skipped; the refresh reports how many entries changed.
func (s *StandingsServiceImpl) RefreshRatings(ctx context.Context, tournamentID primitive.ObjectID) (int, error) {
	if _, err := requireTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return 0, err
	}
	entries, err := s.standingsRepo.FindByTournament(ctx, tournamentID)
	if err != nil {
		return 0, fmt.Errorf("failed to load standings: %w", err)
	}

	updated := 0
	for _, entry := range entries {
		if entry.USCFID == "" {
			continue
		}
		member, err := s.ratings.LookupMember(ctx, entry.USCFID)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return updated, err
			}
			slog.Warn("Rating lookup failed", "uscfId", entry.USCFID, "playerId", entry.PlayerID, "error", err)
			continue
		}
		if member.RegularRating == nil {
			continue
		}
		if entry.Rating != nil && *entry.Rating == *member.RegularRating {
			continue
		}
		if err := s.standingsRepo.UpdateRating(ctx, tournamentID, entry.PlayerID, member.RegularRating); err != nil {
			slog.Error("Failed to store refreshed rating", "error", err, "playerId", entry.PlayerID)
			continue
		}
		updated++
	}

	slog.Info("Ratings refreshed", "tournamentId", tournamentID.Hex(), "updated", updated, "entries", len(entries))
	return updated, nil
}
