package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrizeSource indicates how a distribution row came to exist
type PrizeSource string

const (
	// PrizeSourceAuto marks rows produced by the allocation engine
	PrizeSourceAuto PrizeSource = "auto"
	// PrizeSourceManual marks rows entered by a tournament director
	PrizeSourceManual PrizeSource = "manual"
)

// PrizeDistribution represents one awarded prize for one player. For pooled
// cash prizes, Position holds the tie group's top rank and TieGroup carries a
// shared identifier across the players splitting the pool. Automatic rows
// have deterministic IDs so recomputation writes identical documents.
type PrizeDistribution struct {
	ID             string             `bson:"_id" json:"id"`
	TournamentID   primitive.ObjectID `bson:"tournamentId" json:"tournamentId"`
	PlayerID       string             `bson:"playerId" json:"playerId"`
	PlayerName     string             `bson:"playerName" json:"playerName"`
	Section        string             `bson:"section" json:"section"`
	PrizeName      string             `bson:"prizeName" json:"prizeName"`
	PrizeType      PrizeType          `bson:"prizeType" json:"prizeType"`
	Amount         *Money             `bson:"amount,omitempty" json:"amount,omitempty"`
	Position       *int               `bson:"position,omitempty" json:"position,omitempty"`
	RatingCategory string             `bson:"ratingCategory,omitempty" json:"ratingCategory,omitempty"`
	TieGroup       *int               `bson:"tieGroup,omitempty" json:"tieGroup,omitempty"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Source         PrizeSource        `bson:"source" json:"source"`
	CreatedAt      time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// PrizeBatch is the single document holding a tournament's automatic
// distributions. Replacing the whole document makes a recomputation swap
// every automatic row in one write while manual rows live elsewhere.
type PrizeBatch struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	TournamentID  primitive.ObjectID  `bson:"tournamentId" json:"tournamentId"`
	BatchID       string              `bson:"batchId" json:"batchId"`
	ComputedAt    time.Time           `bson:"computedAt" json:"computedAt"`
	Distributions []PrizeDistribution `bson:"distributions" json:"distributions"`
}

// SectionStats summarizes the prizes awarded within one section
type SectionStats struct {
	CashTotal     Money `json:"cashTotal"`
	CashCount     int   `json:"cashCount"`
	NonCashCount  int   `json:"nonCashCount"`
	UniquePlayers int   `json:"uniquePlayers"`
}

// SectionWinners is the grouped view of one section's awarded prizes
type SectionWinners struct {
	Section string              `json:"section"`
	Winners []PrizeDistribution `json:"winners"`
	Stats   SectionStats        `json:"stats"`
}

// WinnersTotals aggregates the whole tournament's awarded prizes
type WinnersTotals struct {
	CashTotal     Money `json:"cashTotal"`
	CashCount     int   `json:"cashCount"`
	NonCashCount  int   `json:"nonCashCount"`
	UniquePlayers int   `json:"uniquePlayers"`
	Sections      int   `json:"sections"`
}

// WinnersReport is the full grouped winners view for a tournament
type WinnersReport struct {
	TournamentID primitive.ObjectID `json:"tournamentId"`
	Sections     []SectionWinners   `json:"sections"`
	Totals       WinnersTotals      `json:"totals"`
}
