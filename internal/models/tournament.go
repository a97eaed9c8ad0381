package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TournamentStatus represents the lifecycle state of a tournament
type TournamentStatus string

const (
	// TournamentStatusRegistration means the tournament is accepting entries
	TournamentStatusRegistration TournamentStatus = "registration"
	// TournamentStatusActive means rounds are being played
	TournamentStatusActive TournamentStatus = "active"
	// TournamentStatusCompleted means the final round has been finished
	TournamentStatusCompleted TournamentStatus = "completed"
)

// Tournament represents a tournament in the system
type Tournament struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Location     string             `bson:"location,omitempty" json:"location,omitempty"`
	Status       TournamentStatus   `bson:"status" json:"status"`
	Rounds       int                `bson:"rounds" json:"rounds"`
	CurrentRound int                `bson:"currentRound" json:"currentRound"`
	StartDate    time.Time          `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate      time.Time          `bson:"endDate,omitempty" json:"endDate,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RoundCompleteEvent represents a notification that a round has finished.
// Events carry an identifier so redeliveries can be recognized and skipped.
type RoundCompleteEvent struct {
	EventID      string             `bson:"eventId" json:"eventId"`
	TournamentID primitive.ObjectID `bson:"tournamentId" json:"tournamentId"`
	Round        int                `bson:"round" json:"round"`
	FinalRound   bool               `bson:"finalRound" json:"finalRound"`
	OccurredAt   time.Time          `bson:"occurredAt" json:"occurredAt"`
}
