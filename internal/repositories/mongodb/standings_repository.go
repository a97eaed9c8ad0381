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

// StandingsRepository implements the repositories.StandingsRepository interface
type StandingsRepository struct {
	collection *mongo.Collection
}

// NewStandingsRepository creates a new StandingsRepository
func NewStandingsRepository(db *mongo.Database) repositories.StandingsRepository {
	return &StandingsRepository{
		collection: db.Collection("standings"),
	}
}

// ReplaceForTournament replaces a tournament's standings with a fresh set of entries
func (r *StandingsRepository) ReplaceForTournament(ctx context.Context, tournamentID primitive.ObjectID, entries []*models.StandingsEntry) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"tournamentId": tournamentID}); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, 0, len(entries))
	for _, entry := range entries {
		entry.TournamentID = tournamentID
		entry.UpdatedAt = now
		docs = append(docs, entry)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindByTournament finds all standings entries for a tournament
func (r *StandingsRepository) FindByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.StandingsEntry, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "section", Value: 1},
		{Key: "score", Value: -1},
		{Key: "playerName", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{"tournamentId": tournamentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.StandingsEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FindBySection finds a tournament's standings entries for one section
func (r *StandingsRepository) FindBySection(ctx context.Context, tournamentID primitive.ObjectID, section string) ([]*models.StandingsEntry, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "score", Value: -1},
		{Key: "playerName", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{"tournamentId": tournamentID, "section": section}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.StandingsEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// DistinctSections lists the section names present in a tournament's standings
func (r *StandingsRepository) DistinctSections(ctx context.Context, tournamentID primitive.ObjectID) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "section", bson.M{"tournamentId": tournamentID})
	if err != nil {
		return nil, err
	}
	sections := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			sections = append(sections, s)
		}
	}
	return sections, nil
}

// UpdateRating sets or clears one player's rating in a tournament's standings
func (r *StandingsRepository) UpdateRating(ctx context.Context, tournamentID primitive.ObjectID, playerID string, rating *int) error {
	update := bson.M{
		"$set": bson.M{"rating": rating, "updatedAt": time.Now()},
	}
	if rating == nil {
		update = bson.M{
			"$unset": bson.M{"rating": ""},
			"$set":   bson.M{"updatedAt": time.Now()},
		}
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"tournamentId": tournamentID, "playerId": playerID}, update)
	return err
}

// DeleteForTournament removes all standings entries for a tournament
func (r *StandingsRepository) DeleteForTournament(ctx context.Context, tournamentID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"tournamentId": tournamentID})
	return err
}

// CountByTournament counts a tournament's standings entries
func (r *StandingsRepository) CountByTournament(ctx context.Context, tournamentID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"tournamentId": tournamentID})
}
