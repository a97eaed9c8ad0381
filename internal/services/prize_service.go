package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/chughjug/ratings-sub000/internal/models"
	"github.com/chughjug/ratings-sub000/internal/prizing"
	"github.com/chughjug/ratings-sub000/internal/repositories"
)

// roundEventCacheSize bounds how many processed round events are remembered
// for deduplication
const roundEventCacheSize = 2048

// Compile-time check to ensure PrizeServiceImpl implements PrizeService
var _ PrizeService = (*PrizeServiceImpl)(nil)

// PrizeServiceImpl handles prize configuration, computation and reporting
type PrizeServiceImpl struct {
	tournamentRepo   repositories.TournamentRepository
	settingsRepo     repositories.PrizeSettingsRepository
	standingsRepo    repositories.StandingsRepository
	distributionRepo repositories.DistributionRepository
	manualRepo       repositories.ManualPrizeRepository
	clock            clockwork.Clock
	locks            *tournamentLocks
	seenEvents       *lru.Cache[string, struct{}]
}

// NewPrizeService creates a new PrizeServiceImpl
func NewPrizeService(
	tournamentRepo repositories.TournamentRepository,
	settingsRepo repositories.PrizeSettingsRepository,
	standingsRepo repositories.StandingsRepository,
	distributionRepo repositories.DistributionRepository,
	manualRepo repositories.ManualPrizeRepository,
	clock clockwork.Clock,
) *PrizeServiceImpl {
	seenEvents, _ := lru.New[string, struct{}](roundEventCacheSize)
	return &PrizeServiceImpl{
		tournamentRepo:   tournamentRepo,
		settingsRepo:     settingsRepo,
		standingsRepo:    standingsRepo,
		distributionRepo: distributionRepo,
		manualRepo:       manualRepo,
		clock:            clock,
		locks:            newTournamentLocks(),
		seenEvents:       seenEvents,
	}
}

// requireTournament loads a tournament or reports that it does not exist
func requireTournament(ctx context.Context, repo repositories.TournamentRepository, id primitive.ObjectID) (*models.Tournament, error) {
	tournament, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTournamentNotFound
		}
		slog.Error("Failed to load tournament", "error", err, "tournamentId", id.Hex())
		return nil, fmt.Errorf("failed to load tournament: %w", err)
	}
	return tournament, nil
}

// GetSettings retrieves a tournament's prize settings. The first read for a
// tournament stores a disabled default so clients always have a document to
// edit, mirroring how system settings behave elsewhere.
func (s *PrizeServiceImpl) GetSettings(ctx context.Context, tournamentID primitive.ObjectID) (*models.PrizeSettings, error) {
	if _, err := requireTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.FindByTournament(ctx, tournamentID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		slog.Error("Failed to load prize settings", "error", err, "tournamentId", tournamentID.Hex())
		return nil, fmt.Errorf("failed to load prize settings: %w", err)
	}

	settings = &models.PrizeSettings{
		TournamentID: tournamentID,
		Enabled:      false,
		AutoAssign:   false,
		Sections:     []models.PrizeSection{},
	}
	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		slog.Error("Failed to create default prize settings", "error", err, "tournamentId", tournamentID.Hex())
		return nil, fmt.Errorf("failed to create default prize settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings validates and saves a tournament's prize configuration.
// Invalid configurations are rejected whole; nothing is partially applied.
func (s *PrizeServiceImpl) UpdateSettings(ctx context.Context, settings *models.PrizeSettings) (*models.PrizeSettings, error) {
	if _, err := requireTournament(ctx, s.tournamentRepo, settings.TournamentID); err != nil {
		return nil, err
	}

	if err := prizing.ValidateSettings(settings); err != nil {
		slog.Warn("Rejected invalid prize settings", "tournamentId", settings.TournamentID.Hex(), "error", err)
		return nil, err
	}

	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		slog.Error("Failed to save prize settings", "error", err, "tournamentId", settings.TournamentID.Hex())
		return nil, fmt.Errorf("failed to save prize settings: %w", err)
	}

	slog.Info("Prize settings updated", "tournamentId", settings.TournamentID.Hex(),
		"sections", len(settings.Sections), "enabled", settings.Enabled, "autoAssign", settings.AutoAssign)
	return settings, nil
}

// GenerateStructure proposes a prize structure from the tournament's current
// standings. The total fund is split evenly across sections and each
// section's share is spread over its paid places. The proposal is returned
// to the caller unsaved.
func (s *PrizeServiceImpl) GenerateStructure(ctx context.Context, tournamentID primitive.ObjectID, fund models.Money) (*models.PrizeSettings, error) {
	if _, err := requireTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return nil, err
	}

	entries, err := s.standingsRepo.FindByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNoStandings
	}

	perSection := partitionBySection(entries)
	names := make([]string, 0, len(perSection))
	for name := range perSection {
		names = append(names, name)
	}
	sort.Strings(names)

	funds := prizing.SplitFund(fund, len(names))
	sections := make([]models.PrizeSection, 0, len(names))
	for i, name := range names {
		sections = append(sections, models.PrizeSection{
			Name:   name,
			Prizes: prizing.GenerateStructure(len(perSection[name]), funds[i]),
		})
	}

	return &models.PrizeSettings{
		TournamentID: tournamentID,
		Enabled:      true,
		Sections:     sections,
	}, nil
}

// CalculatePrizes computes the tournament's automatic prize distributions
// and stores them as one batch, replacing the previous batch in a single
// write. Manual rows are untouched. Unchanged inputs reproduce the previous
// batch exactly, row IDs and batch ID included.
func (s *PrizeServiceImpl) CalculatePrizes(ctx context.Context, tournamentID primitive.ObjectID) (*models.PrizeBatch, error) {
	// 1. The tournament must exist and only one computation may run per tournament
	if _, err := requireTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return nil, err
	}
	key := tournamentID.Hex()
	if !s.locks.tryAcquire(key) {
		slog.Warn("Prize computation already running", "tournamentId", key)
		return nil, ErrComputationInProgress
	}
	defer s.locks.release(key)

	// 2. Load and validate the configuration; an invalid configuration
	// aborts the whole computation
	settings, err := s.settingsRepo.FindByTournament(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPrizesDisabled
		}
		slog.Error("Failed to load prize settings", "error", err, "tournamentId", key)
		return nil, fmt.Errorf("failed to load prize settings: %w", err)
	}
	if !settings.Enabled {
		return nil, ErrPrizesDisabled
	}
	if err := prizing.ValidateSettings(settings); err != nil {
		slog.Warn("Prize computation aborted by invalid settings", "tournamentId", key, "error", err)
		return nil, err
	}

	// 3. Snapshot the standings once; every section is computed from this
	// single read
	entries, err := s.standingsRepo.FindByTournament(ctx, tournamentID)
	if err != nil {
		slog.Error("Failed to load standings", "error", err, "tournamentId", key)
		return nil, fmt.Errorf("failed to load standings: %w", err)
	}
	perSection := partitionBySection(entries)
	if len(entries) == 0 {
		slog.Warn("Computing prizes with empty standings", "tournamentId", key)
	}

	// 4. Compute the configured sections concurrently; a section with no
	// entrants simply yields no rows
	results := make([][]models.PrizeDistribution, len(settings.Sections))
	g, gctx := errgroup.WithContext(ctx)
	for i := range settings.Sections {
		i := i
		section := settings.Sections[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = prizing.AllocateSection(section, perSection[section.Name])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("prize computation aborted: %w", err)
	}

	// 5. Merge sections, enforce one cash prize per player, then fix row
	// order, tie group numbers and identifiers deterministically
	rows := make([]models.PrizeDistribution, 0)
	for _, sectionRows := range results {
		rows = append(rows, sectionRows...)
	}
	rows = prizing.ReconcileCash(rows)
	prizing.SortDistributions(rows)
	prizing.RenumberTieGroups(rows)
	for i := range rows {
		rows[i].TournamentID = tournamentID
		rows[i].Source = models.PrizeSourceAuto
		rows[i].ID = distributionID(key, &rows[i])
	}

	// 6. Replace the stored batch in one write; on failure the previous
	// batch remains authoritative
	batch := &models.PrizeBatch{
		TournamentID:  tournamentID,
		BatchID:       batchID(key, rows),
		ComputedAt:    s.clock.Now().UTC(),
		Distributions: rows,
	}
	if err := s.distributionRepo.ReplaceBatch(ctx, batch); err != nil {
		slog.Error("Failed to persist prize batch", "error", err, "tournamentId", key)
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	slog.Info("Prize distributions computed", "tournamentId", key,
		"batchId", batch.BatchID, "rows", len(rows), "sections", len(settings.Sections))
	return batch, nil
}

// GetPrizes returns the stored distributions for a tournament, automatic
// rows first and manual rows after them. It never recomputes anything.
func (s *PrizeServiceImpl) GetPrizes(ctx context.Context, tournamentID primitive.ObjectID) ([]models.PrizeDistribution, error) {
	if _, err := requireTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return nil, err
	}

	rows := make([]models.PrizeDistribution, 0)
	batch, err := s.distributionRepo.FindBatch(ctx, tournamentID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		slog.Error("Failed to load prize batch", "error", err, "tournamentId", tournamentID.Hex())
		return nil, fmt.Errorf("failed to load prize batch: %w", err)
	}
	if err == nil {
		rows = append(rows, batch.Distributions...)
	}

	manual, err := s.manualRepo.FindByTournament(ctx, tournamentID)
	if err != nil {
		slog.Error("Failed to load manual prizes", "error", err, "tournamentId", tournamentID.Hex())
		return nil, fmt.Errorf("failed to load manual prizes: %w", err)
	}
	for _, prize := range manual {
		rows = append(rows, *prize)
	}
	return rows, nil
}

// GetWinners returns the stored distributions grouped by section together
// with per-section and tournament-wide statistics
func (s *PrizeServiceImpl) GetWinners(ctx context.Context, tournamentID primitive.ObjectID) (*models.WinnersReport, error) {
	rows, err := s.GetPrizes(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return buildWinnersReport(tournamentID, rows), nil
}

// AddManualPrize records a director-entered prize row alongside the
// automatic batch. Manual rows survive recomputation untouched.
func (s *PrizeServiceImpl) AddManualPrize(ctx context.Context, tournamentID primitive.ObjectID, prize *models.PrizeDistribution) (*models.PrizeDistribution, error) {
	if _, err := requireTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return nil, err
	}
	if err := validateManualPrize(prize); err != nil {
		slog.Warn("Rejected invalid manual prize", "tournamentId", tournamentID.Hex(), "error", err)
		return nil, err
	}

	prize.TournamentID = tournamentID
	prize.ID = primitive.NewObjectID().Hex()
	prize.Source = models.PrizeSourceManual
	if err := s.manualRepo.Create(ctx, prize); err != nil {
		slog.Error("Failed to save manual prize", "error", err, "tournamentId", tournamentID.Hex())
		return nil, fmt.Errorf("failed to save manual prize: %w", err)
	}

	slog.Info("Manual prize added", "tournamentId", tournamentID.Hex(),
		"prizeId", prize.ID, "playerId", prize.PlayerID, "prizeName", prize.PrizeName)
	return prize, nil
}

// DeleteManualPrize removes a director-entered prize row. Automatic rows
// cannot be deleted this way; they disappear only through recomputation.
func (s *PrizeServiceImpl) DeleteManualPrize(ctx context.Context, tournamentID primitive.ObjectID, prizeID string) error {
	if _, err := requireTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return err
	}

	existing, err := s.manualRepo.FindByID(ctx, prizeID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPrizeNotFound
		}
		return fmt.Errorf("failed to load manual prize: %w", err)
	}
	if existing.TournamentID != tournamentID {
		return ErrPrizeNotFound
	}

	if err := s.manualRepo.Delete(ctx, prizeID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPrizeNotFound
		}
		slog.Error("Failed to delete manual prize", "error", err, "prizeId", prizeID)
		return fmt.Errorf("failed to delete manual prize: %w", err)
	}

	slog.Info("Manual prize deleted", "tournamentId", tournamentID.Hex(), "prizeId", prizeID)
	return nil
}

// HandleRoundComplete reacts to a round-completion event. Redelivered
// events are ignored. When the final round of an enabled, auto-assign
// tournament completes, the distributions are recomputed.
func (s *PrizeServiceImpl) HandleRoundComplete(ctx context.Context, event *models.RoundCompleteEvent) (bool, error) {
	if event.EventID != "" {
		if _, seen := s.seenEvents.Get(event.EventID); seen {
			slog.Info("Ignoring duplicate round event", "eventId", event.EventID)
			return false, nil
		}
		s.seenEvents.Add(event.EventID, struct{}{})
	}

	tournament, err := requireTournament(ctx, s.tournamentRepo, event.TournamentID)
	if err != nil {
		s.forgetEvent(event)
		return false, err
	}

	final := event.FinalRound || (tournament.Rounds > 0 && event.Round >= tournament.Rounds)

	// Keep the tournament's round bookkeeping in step with the event
	if event.Round > tournament.CurrentRound {
		tournament.CurrentRound = event.Round
		if final {
			tournament.Status = models.TournamentStatusCompleted
		}
		if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
			slog.Error("Failed to update tournament round", "error", err,
				"tournamentId", tournament.ID.Hex(), "round", event.Round)
		}
	}

	if !final {
		return false, nil
	}

	settings, err := s.settingsRepo.FindByTournament(ctx, event.TournamentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		s.forgetEvent(event)
		return false, fmt.Errorf("failed to load prize settings: %w", err)
	}
	if !settings.Enabled || !settings.AutoAssign {
		slog.Info("Final round complete, prize auto-assign is off",
			"tournamentId", event.TournamentID.Hex(), "round", event.Round)
		return false, nil
	}

	if _, err := s.CalculatePrizes(ctx, event.TournamentID); err != nil {
		s.forgetEvent(event)
		return false, err
	}
	return true, nil
}

// forgetEvent drops an event from the deduplication cache so a redelivery
// can retry after a failure
func (s *PrizeServiceImpl) forgetEvent(event *models.RoundCompleteEvent) {
	if event.EventID != "" {
		s.seenEvents.Remove(event.EventID)
	}
}

// partitionBySection groups standings entries by their section name
func partitionBySection(entries []*models.StandingsEntry) map[string][]models.StandingsEntry {
	perSection := make(map[string][]models.StandingsEntry)
	for _, entry := range entries {
		perSection[entry.Section] = append(perSection[entry.Section], *entry)
	}
	return perSection
}

// validateManualPrize checks the fields of a director-entered prize row
func validateManualPrize(prize *models.PrizeDistribution) error {
	if prize.PlayerID == "" {
		return &prizing.ValidationError{
			Kind:    prizing.KindMissingPlayer,
			Section: prize.Section,
			Field:   "playerId",
			Message: "manual prize has no player",
		}
	}
	if prize.PrizeName == "" {
		return &prizing.ValidationError{
			Kind:    prizing.KindMissingPrizeName,
			Section: prize.Section,
			Field:   "prizeName",
			Message: "manual prize has no name",
		}
	}
	if !prize.PrizeType.Valid() {
		return &prizing.ValidationError{
			Kind:    prizing.KindInvalidPrizeType,
			Section: prize.Section,
			Field:   "prizeType",
			Message: fmt.Sprintf("manual prize %q has unknown type %q", prize.PrizeName, prize.PrizeType),
		}
	}
	if prize.PrizeType.IsCash() {
		if prize.Amount == nil {
			return &prizing.ValidationError{
				Kind:    prizing.KindMissingAmount,
				Section: prize.Section,
				Field:   "amount",
				Message: fmt.Sprintf("manual cash prize %q has no amount", prize.PrizeName),
			}
		}
		if prize.Amount.IsNegative() {
			return &prizing.ValidationError{
				Kind:    prizing.KindNegativeAmount,
				Section: prize.Section,
				Field:   "amount",
				Message: fmt.Sprintf("manual cash prize %q has negative amount %s", prize.PrizeName, prize.Amount.String()),
			}
		}
	}
	return nil
}

// distributionID derives a stable identifier for an automatic row. The same
// prize awarded to the same player always maps to the same document ID,
// which is what makes recomputation idempotent at the storage level.
func distributionID(tournamentID string, row *models.PrizeDistribution) string {
	var b strings.Builder
	b.WriteString(tournamentID)
	for _, part := range []string{row.Section, row.PrizeName, string(row.PrizeType), row.RatingCategory, row.PlayerID} {
		b.WriteByte('|')
		b.WriteString(part)
	}
	b.WriteByte('|')
	if row.Position != nil {
		b.WriteString(strconv.Itoa(*row.Position))
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:12])
}

// batchID derives a deterministic batch identifier from the row contents,
// so an unchanged computation reproduces the same ID
func batchID(tournamentID string, rows []models.PrizeDistribution) string {
	h := sha256.New()
	h.Write([]byte(tournamentID))
	for i := range rows {
		h.Write([]byte(rows[i].ID))
		if rows[i].Amount != nil {
			h.Write([]byte(rows[i].Amount.String()))
		}
		if rows[i].TieGroup != nil {
			h.Write([]byte(strconv.Itoa(*rows[i].TieGroup)))
		}
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, h.Sum(nil)).String()
}

// buildWinnersReport groups stored rows by section and computes the stats
// for the winners view
func buildWinnersReport(tournamentID primitive.ObjectID, rows []models.PrizeDistribution) *models.WinnersReport {
	bySection := make(map[string][]models.PrizeDistribution)
	names := make([]string, 0)
	for _, row := range rows {
		if _, ok := bySection[row.Section]; !ok {
			names = append(names, row.Section)
		}
		bySection[row.Section] = append(bySection[row.Section], row)
	}
	sort.Strings(names)

	report := &models.WinnersReport{
		TournamentID: tournamentID,
		Sections:     make([]models.SectionWinners, 0, len(names)),
	}
	totalCash := decimal.Zero
	allPlayers := make(map[string]bool)
	for _, name := range names {
		winners := bySection[name]
		stats := models.SectionStats{}
		sectionCash := decimal.Zero
		players := make(map[string]bool)
		for _, winner := range winners {
			players[winner.PlayerID] = true
			allPlayers[winner.PlayerID] = true
			if winner.PrizeType.IsCash() && winner.Amount != nil {
				stats.CashCount++
				sectionCash = sectionCash.Add(winner.Amount.Decimal)
			} else {
				stats.NonCashCount++
			}
		}
		stats.CashTotal = models.NewMoney(sectionCash)
		stats.UniquePlayers = len(players)
		totalCash = totalCash.Add(sectionCash)

		report.Totals.CashCount += stats.CashCount
		report.Totals.NonCashCount += stats.NonCashCount
		report.Sections = append(report.Sections, models.SectionWinners{
			Section: name,
			Winners: winners,
			Stats:   stats,
		})
	}
	report.Totals.CashTotal = models.NewMoney(totalCash)
	report.Totals.UniquePlayers = len(allPlayers)
	report.Totals.Sections = len(report.Sections)
	return report
}
