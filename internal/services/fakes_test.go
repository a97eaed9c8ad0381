package services

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chughjug/ratings-sub000/internal/models"
	"github.com/chughjug/ratings-sub000/internal/repositories"
	"github.com/chughjug/ratings-sub000/pkg/uscf"
)

// Map-backed repository fakes. They return mongo.ErrNoDocuments on misses
// like the real implementations so the services' error mapping is exercised.

type fakeTournamentRepo struct {
	mu          sync.Mutex
	tournaments map[primitive.ObjectID]models.Tournament
	findErr     error
}

var _ repositories.TournamentRepository = (*fakeTournamentRepo)(nil)

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{tournaments: make(map[primitive.ObjectID]models.Tournament)}
}

func (f *fakeTournamentRepo) Create(_ context.Context, tournament *models.Tournament) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tournament.ID.IsZero() {
		tournament.ID = primitive.NewObjectID()
	}
	f.tournaments[tournament.ID] = *tournament
	return nil
}

func (f *fakeTournamentRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	tournament, ok := f.tournaments[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	found := tournament
	return &found, nil
}

func (f *fakeTournamentRepo) FindAll(_ context.Context, page, limit int) ([]*models.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]*models.Tournament, 0, len(f.tournaments))
	for id := range f.tournaments {
		tournament := f.tournaments[id]
		all = append(all, &tournament)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (f *fakeTournamentRepo) Update(_ context.Context, tournament *models.Tournament) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tournaments[tournament.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	f.tournaments[tournament.ID] = *tournament
	return nil
}

func (f *fakeTournamentRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tournaments, id)
	return nil
}

func (f *fakeTournamentRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.tournaments)), nil
}

type fakeStandingsRepo struct {
	mu            sync.Mutex
	entries       map[primitive.ObjectID][]models.StandingsEntry
	distinctCalls int
}

var _ repositories.StandingsRepository = (*fakeStandingsRepo)(nil)

func newFakeStandingsRepo() *fakeStandingsRepo {
	return &fakeStandingsRepo{entries: make(map[primitive.ObjectID][]models.StandingsEntry)}
}

func (f *fakeStandingsRepo) ReplaceForTournament(_ context.Context, tournamentID primitive.ObjectID, entries []*models.StandingsEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := make([]models.StandingsEntry, 0, len(entries))
	for _, entry := range entries {
		copied := *entry
		copied.TournamentID = tournamentID
		stored = append(stored, copied)
	}
	f.entries[tournamentID] = stored
	return nil
}

func (f *fakeStandingsRepo) FindByTournament(_ context.Context, tournamentID primitive.ObjectID) ([]*models.StandingsEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := f.entries[tournamentID]
	out := make([]*models.StandingsEntry, 0, len(stored))
	for i := range stored {
		entry := stored[i]
		out = append(out, &entry)
	}
	return out, nil
}

func (f *fakeStandingsRepo) FindBySection(_ context.Context, tournamentID primitive.ObjectID, section string) ([]*models.StandingsEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.StandingsEntry, 0)
	for _, entry := range f.entries[tournamentID] {
		if entry.Section == section {
			copied := entry
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeStandingsRepo) DistinctSections(_ context.Context, tournamentID primitive.ObjectID) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.distinctCalls++
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, entry := range f.entries[tournamentID] {
		if !seen[entry.Section] {
			seen[entry.Section] = true
			names = append(names, entry.Section)
		}
	}
	return names, nil
}

func (f *fakeStandingsRepo) UpdateRating(_ context.Context, tournamentID primitive.ObjectID, playerID string, rating *int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := f.entries[tournamentID]
	for i := range stored {
		if stored[i].PlayerID == playerID {
			stored[i].Rating = rating
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeStandingsRepo) DeleteForTournament(_ context.Context, tournamentID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, tournamentID)
	return nil
}

func (f *fakeStandingsRepo) CountByTournament(_ context.Context, tournamentID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.entries[tournamentID])), nil
}

type fakeSettingsRepo struct {
	mu       sync.Mutex
	settings map[primitive.ObjectID]models.PrizeSettings
	upserts  int
}

var _ repositories.PrizeSettingsRepository = (*fakeSettingsRepo)(nil)

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: make(map[primitive.ObjectID]models.PrizeSettings)}
}

func (f *fakeSettingsRepo) FindByTournament(_ context.Context, tournamentID primitive.ObjectID) (*models.PrizeSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	settings, ok := f.settings[tournamentID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	found := settings
	return &found, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, settings *models.PrizeSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	f.settings[settings.TournamentID] = *settings
	return nil
}

func (f *fakeSettingsRepo) DeleteByTournament(_ context.Context, tournamentID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.settings, tournamentID)
	return nil
}

type fakeDistributionRepo struct {
	mu           sync.Mutex
	batches      map[primitive.ObjectID]models.PrizeBatch
	replaceErr   error
	replaceCalls int
}

var _ repositories.DistributionRepository = (*fakeDistributionRepo)(nil)

func newFakeDistributionRepo() *fakeDistributionRepo {
	return &fakeDistributionRepo{batches: make(map[primitive.ObjectID]models.PrizeBatch)}
}

func (f *fakeDistributionRepo) ReplaceBatch(_ context.Context, batch *models.PrizeBatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaceCalls++
	if f.replaceErr != nil {
		return f.replaceErr
	}
	stored := *batch
	stored.Distributions = append([]models.PrizeDistribution(nil), batch.Distributions...)
	f.batches[batch.TournamentID] = stored
	return nil
}

func (f *fakeDistributionRepo) FindBatch(_ context.Context, tournamentID primitive.ObjectID) (*models.PrizeBatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	batch, ok := f.batches[tournamentID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	found := batch
	found.Distributions = append([]models.PrizeDistribution(nil), batch.Distributions...)
	return &found, nil
}

func (f *fakeDistributionRepo) DeleteBatch(_ context.Context, tournamentID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.batches, tournamentID)
	return nil
}

type fakeManualRepo struct {
	mu     sync.Mutex
	prizes []models.PrizeDistribution
}

var _ repositories.ManualPrizeRepository = (*fakeManualRepo)(nil)

func newFakeManualRepo() *fakeManualRepo {
	return &fakeManualRepo{}
}

func (f *fakeManualRepo) Create(_ context.Context, prize *models.PrizeDistribution) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prizes = append(f.prizes, *prize)
	return nil
}

func (f *fakeManualRepo) FindByID(_ context.Context, id string) (*models.PrizeDistribution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.prizes {
		if f.prizes[i].ID == id {
			found := f.prizes[i]
			return &found, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeManualRepo) FindByTournament(_ context.Context, tournamentID primitive.ObjectID) ([]*models.PrizeDistribution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.PrizeDistribution, 0)
	for i := range f.prizes {
		if f.prizes[i].TournamentID == tournamentID {
			found := f.prizes[i]
			out = append(out, &found)
		}
	}
	return out, nil
}

func (f *fakeManualRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.prizes {
		if f.prizes[i].ID == id {
			f.prizes = append(f.prizes[:i], f.prizes[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeManualRepo) DeleteByTournament(_ context.Context, tournamentID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.prizes[:0]
	for _, prize := range f.prizes {
		if prize.TournamentID != tournamentID {
			kept = append(kept, prize)
		}
	}
	f.prizes = kept
	return nil
}

// fakeRatings serves member lookups from a fixed map
type fakeRatings struct {
	mu      sync.Mutex
	members map[string]uscf.Member
	calls   int
}

var _ RatingLookup = (*fakeRatings)(nil)

func (f *fakeRatings) LookupMember(ctx context.Context, memberID string) (*uscf.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	member, ok := f.members[memberID]
	if !ok {
		return nil, uscf.ErrMemberNotFound
	}
	found := member
	return &found, nil
}
