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

// ManualPrizeRepository implements the repositories.ManualPrizeRepository interface
type ManualPrizeRepository struct {
	collection *mongo.Collection
}

// NewManualPrizeRepository creates a new ManualPrizeRepository
func NewManualPrizeRepository(db *mongo.Database) repositories.ManualPrizeRepository {
	return &ManualPrizeRepository{
		collection: db.Collection("manual_prizes"),
	}
}

// Create creates a new manual prize row
func (r *ManualPrizeRepository) Create(ctx context.Context, prize *models.PrizeDistribution) error {
	prize.Source = models.PrizeSourceManual
	prize.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, prize)
	return err
}

// FindByID finds a manual prize row by ID
func (r *ManualPrizeRepository) FindByID(ctx context.Context, id string) (*models.PrizeDistribution, error) {
	var prize models.PrizeDistribution
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&prize)
	if err != nil {
		return nil, err
	}
	return &prize, nil
}

// FindByTournament finds a tournament's manual prize rows
func (r *ManualPrizeRepository) FindByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.PrizeDistribution, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "section", Value: 1},
		{Key: "createdAt", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{"tournamentId": tournamentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var prizes []*models.PrizeDistribution
	if err := cursor.All(ctx, &prizes); err != nil {
		return nil, err
	}
	return prizes, nil
}

// Delete deletes a manual prize row
func (r *ManualPrizeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteByTournament removes all manual prize rows for a tournament
func (r *ManualPrizeRepository) DeleteByTournament(ctx context.Context, tournamentID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"tournamentId": tournamentID})
	return err
}
