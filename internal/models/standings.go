package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StandingsEntry represents one player's line in a tournament's standings.
// Score is the cumulative game score (wins 1, draws 0.5) after the most
// recently completed round. Rating is nil for unrated players.
type StandingsEntry struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TournamentID primitive.ObjectID `bson:"tournamentId" json:"tournamentId"`
	PlayerID     string             `bson:"playerId" json:"playerId"`
	PlayerName   string             `bson:"playerName" json:"playerName"`
	USCFID       string             `bson:"uscfId,omitempty" json:"uscfId,omitempty"`
	Section      string             `bson:"section" json:"section"`
	Score        float64            `bson:"score" json:"score"`
	Rating       *int               `bson:"rating,omitempty" json:"rating,omitempty"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
