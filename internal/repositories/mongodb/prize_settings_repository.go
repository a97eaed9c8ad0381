package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chughjug/ratings-sub000/internal/models"
	"github.com/chughjug/ratings-sub000/internal/repositories"
)

// PrizeSettingsRepository implements the repositories.PrizeSettingsRepository interface
type PrizeSettingsRepository struct {
	collection *mongo.Collection
}

// NewPrizeSettingsRepository creates a new PrizeSettingsRepository
func NewPrizeSettingsRepository(db *mongo.Database) repositories.PrizeSettingsRepository {
	return &PrizeSettingsRepository{
		collection: db.Collection("prize_settings"),
	}
}

// FindByTournament finds the prize settings document for a tournament
func (r *PrizeSettingsRepository) FindByTournament(ctx context.Context, tournamentID primitive.ObjectID) (*models.PrizeSettings, error) {
	var settings models.PrizeSettings
	err := r.collection.FindOne(ctx, bson.M{"tournamentId": tournamentID}).Decode(&settings)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert writes a tournament's prize settings, replacing any previous document
func (r *PrizeSettingsRepository) Upsert(ctx context.Context, settings *models.PrizeSettings) error {
	settings.UpdatedAt = time.Now()
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = settings.UpdatedAt
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"tournamentId": settings.TournamentID}, settings, opts)
	return err
}

// DeleteByTournament removes a tournament's prize settings document
func (r *PrizeSettingsRepository) DeleteByTournament(ctx context.Context, tournamentID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"tournamentId": tournamentID})
	return err
}
