package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chughjug/ratings-sub000/internal/models"
	"github.com/chughjug/ratings-sub000/internal/repositories"
)

// DistributionRepository implements the repositories.DistributionRepository interface.
// All of a tournament's automatic rows live inside one batch document, so a
// recomputation swaps every row in a single ReplaceOne.
type DistributionRepository struct {
	collection *mongo.Collection
}

// NewDistributionRepository creates a new DistributionRepository
func NewDistributionRepository(db *mongo.Database) repositories.DistributionRepository {
	return &DistributionRepository{
		collection: db.Collection("prize_batches"),
	}
}

// ReplaceBatch writes a tournament's automatic prize batch, replacing any
// previous batch in one atomic document write
func (r *DistributionRepository) ReplaceBatch(ctx context.Context, batch *models.PrizeBatch) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"tournamentId": batch.TournamentID}, batch, opts)
	return err
}

// FindBatch finds a tournament's automatic prize batch
func (r *DistributionRepository) FindBatch(ctx context.Context, tournamentID primitive.ObjectID) (*models.PrizeBatch, error) {
	var batch models.PrizeBatch
	err := r.collection.FindOne(ctx, bson.M{"tournamentId": tournamentID}).Decode(&batch)
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// DeleteBatch removes a tournament's automatic prize batch
func (r *DistributionRepository) DeleteBatch(ctx context.Context, tournamentID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"tournamentId": tournamentID})
	return err
}
