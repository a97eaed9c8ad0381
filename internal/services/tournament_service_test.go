package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chughjug/ratings-sub000/internal/models"
)

type tournamentFixture struct {
	tournaments *fakeTournamentRepo
	standings   *fakeStandingsRepo
	settings    *fakeSettingsRepo
	batches     *fakeDistributionRepo
	manual      *fakeManualRepo
	service     *TournamentServiceImpl
}

func newTournamentFixture() *tournamentFixture {
	f := &tournamentFixture{
		tournaments: newFakeTournamentRepo(),
		standings:   newFakeStandingsRepo(),
		settings:    newFakeSettingsRepo(),
		batches:     newFakeDistributionRepo(),
		manual:      newFakeManualRepo(),
	}
	f.service = NewTournamentService(f.tournaments, f.standings, f.settings, f.batches, f.manual)
	return f
}

func TestCreateTournament(t *testing.T) {
	f := newTournamentFixture()

	created, err := f.service.Create(context.Background(), &models.Tournament{Name: "City Championship", Rounds: 5})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID.IsZero() {
		t.Error("created tournament has no ID")
	}
	if created.Status != models.TournamentStatusRegistration {
		t.Errorf("status %q, want default registration", created.Status)
	}
}

func TestCreateTournamentValidates(t *testing.T) {
	f := newTournamentFixture()

	if _, err := f.service.Create(context.Background(), &models.Tournament{}); !errors.Is(err, ErrInvalidTournament) {
		t.Fatalf("expected ErrInvalidTournament for empty name, got %v", err)
	}
	if _, err := f.service.Create(context.Background(), &models.Tournament{Name: "Open", Rounds: -1}); !errors.Is(err, ErrInvalidTournament) {
		t.Fatalf("expected ErrInvalidTournament for negative rounds, got %v", err)
	}
}

func TestUpdateTournament(t *testing.T) {
	f := newTournamentFixture()

	missing := &models.Tournament{ID: primitive.NewObjectID(), Name: "Ghost Open"}
	if _, err := f.service.Update(context.Background(), missing); !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("expected ErrTournamentNotFound, got %v", err)
	}

	created, err := f.service.Create(context.Background(), &models.Tournament{Name: "City Championship", Rounds: 5})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	createdAt := created.CreatedAt

	updated, err := f.service.Update(context.Background(), &models.Tournament{
		ID:     created.ID,
		Name:   "City Championship 2026",
		Status: models.TournamentStatusActive,
		Rounds: 5,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "City Championship 2026" {
		t.Errorf("name %q not updated", updated.Name)
	}
	if !updated.CreatedAt.Equal(createdAt) {
		t.Errorf("CreatedAt changed on update: %v vs %v", updated.CreatedAt, createdAt)
	}
}

func TestGetAllReportsTotal(t *testing.T) {
	f := newTournamentFixture()
	for _, name := range []string{"April Action", "May Masters", "June Jamboree"} {
		if _, err := f.service.Create(context.Background(), &models.Tournament{Name: name, Rounds: 4}); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	tournaments, total, err := f.service.GetAll(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(tournaments) != 2 {
		t.Errorf("page size %d, want 2", len(tournaments))
	}
	if total != 3 {
		t.Errorf("total %d, want 3", total)
	}
}

func TestDeleteTournamentCascades(t *testing.T) {
	f := newTournamentFixture()

	created, err := f.service.Create(context.Background(), &models.Tournament{Name: "City Championship", Rounds: 5})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := created.ID

	if err := f.standings.ReplaceForTournament(context.Background(), id, []*models.StandingsEntry{
		entry("p1", "Alice Adams", "Open", 4, nil),
	}); err != nil {
		t.Fatalf("seed standings: %v", err)
	}
	if err := f.settings.Upsert(context.Background(), &models.PrizeSettings{TournamentID: id, Enabled: true}); err != nil {
		t.Fatalf("seed settings: %v", err)
	}
	if err := f.batches.ReplaceBatch(context.Background(), &models.PrizeBatch{
		TournamentID: id,
		BatchID:      "batch-1",
		ComputedAt:   time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed batch: %v", err)
	}
	if err := f.manual.Create(context.Background(), &models.PrizeDistribution{
		ID:           primitive.NewObjectID().Hex(),
		TournamentID: id,
		PlayerID:     "p1",
		PrizeName:    "Best Game",
		PrizeType:    models.PrizeTypeMedal,
		Source:       models.PrizeSourceManual,
	}); err != nil {
		t.Fatalf("seed manual prize: %v", err)
	}

	if err := f.service.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := f.tournaments.FindByID(context.Background(), id); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Error("tournament still present after delete")
	}
	if count, _ := f.standings.CountByTournament(context.Background(), id); count != 0 {
		t.Errorf("%d standings entries survived the delete", count)
	}
	if _, err := f.settings.FindByTournament(context.Background(), id); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Error("prize settings survived the delete")
	}
	if _, err := f.batches.FindBatch(context.Background(), id); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Error("prize batch survived the delete")
	}
	if rows, _ := f.manual.FindByTournament(context.Background(), id); len(rows) != 0 {
		t.Errorf("%d manual prizes survived the delete", len(rows))
	}
}
