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

// TournamentRepository implements the repositories.TournamentRepository interface
type TournamentRepository struct {
	collection *mongo.Collection
}

// NewTournamentRepository creates a new TournamentRepository
func NewTournamentRepository(db *mongo.Database) repositories.TournamentRepository {
	return &TournamentRepository{
		collection: db.Collection("tournaments"),
	}
}

// Create creates a new tournament
func (r *TournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	tournament.CreatedAt = time.Now()
	tournament.UpdatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, tournament)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		tournament.ID = id
	}
	return nil
}

// FindByID finds a tournament by ID
func (r *TournamentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tournament, error) {
	var tournament models.Tournament
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tournament)
	if err != nil {
		return nil, err
	}
	return &tournament, nil
}

// FindAll finds all tournaments with pagination
func (r *TournamentRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Tournament, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tournaments []*models.Tournament
	if err := cursor.All(ctx, &tournaments); err != nil {
		return nil, err
	}
	return tournaments, nil
}

// Update updates a tournament
func (r *TournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	tournament.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": tournament.ID}, tournament)
	return err
}

// Delete deletes a tournament
func (r *TournamentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Count counts all tournaments
func (r *TournamentRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
