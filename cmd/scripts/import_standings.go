package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chughjug/ratings-sub000/internal/models"
	"github.com/chughjug/ratings-sub000/pkg/mongodb"
)

// Imports tournament standings from a CSV file into MongoDB. Expected columns:
// playerId, playerName, section, score, rating (optional), uscfId (optional).
func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get MongoDB connection string from environment
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable is required")
	}

	// Get database name from environment
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "chess-prizes"
	}

	// Get tournament ID and CSV file path from command line arguments
	if len(os.Args) < 3 {
		log.Fatal("Usage: import_standings <tournament-id> <csv-file>")
	}
	tournamentID, err := primitive.ObjectIDFromHex(os.Args[1])
	if err != nil {
		log.Fatalf("Invalid tournament ID %q: %v", os.Args[1], err)
	}
	csvFilePath := os.Args[2]

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongodb.NewClient(ctx, mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	// Get database
	db := client.Database(dbName)

	// Import standings
	count, err := importStandings(db, tournamentID, csvFilePath)
	if err != nil {
		log.Fatalf("Failed to import standings: %v", err)
	}

	log.Printf("Imported %d standings entries for tournament %s", count, tournamentID.Hex())
}

// importStandings replaces a tournament's standings with the rows parsed
// from a CSV file
func importStandings(db *mongo.Database, tournamentID primitive.ObjectID, csvFilePath string) (int, error) {
	// Open CSV file
	file, err := os.Open(csvFilePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Parse CSV file
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to parse CSV file: %v", err)
	}

	// Check if CSV file has header
	if len(records) < 2 {
		return 0, fmt.Errorf("CSV file is empty or has only header")
	}

	// Process records
	now := time.Now()
	var entries []interface{}
	for i, record := range records {
		// Skip header
		if i == 0 {
			continue
		}

		// Check if record has enough fields
		if len(record) < 4 {
			log.Printf("Warning: Record %d has less than 4 fields, skipping", i)
			continue
		}

		// Parse record
		playerID := record[0]
		playerName := record[1]
		section := record[2]
		if playerID == "" || playerName == "" || section == "" {
			log.Printf("Warning: Record %d is missing player or section, skipping", i)
			continue
		}
		score, err := strconv.ParseFloat(record[3], 64)
		if err != nil || score < 0 {
			log.Printf("Warning: Record %d has invalid score, skipping", i)
			continue
		}

		entry := models.StandingsEntry{
			TournamentID: tournamentID,
			PlayerID:     playerID,
			PlayerName:   playerName,
			Section:      section,
			Score:        score,
			UpdatedAt:    now,
		}
		if len(record) > 4 && record[4] != "" {
			rating, err := strconv.Atoi(record[4])
			if err != nil {
				log.Printf("Warning: Record %d has invalid rating, skipping", i)
				continue
			}
			entry.Rating = &rating
		}
		if len(record) > 5 {
			entry.USCFID = record[5]
		}

		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return 0, fmt.Errorf("CSV file contains no valid standings rows")
	}

	// Replace existing standings for the tournament
	collection := db.Collection("standings")
	_, err = collection.DeleteMany(context.Background(), bson.M{"tournamentId": tournamentID})
	if err != nil {
		return 0, fmt.Errorf("failed to clear existing standings: %v", err)
	}
	_, err = collection.InsertMany(context.Background(), entries)
	if err != nil {
		return 0, fmt.Errorf("failed to insert standings: %v", err)
	}

	return len(entries), nil
}
