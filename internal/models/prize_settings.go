package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrizeType represents the kind of prize being awarded
type PrizeType string

const (
	// PrizeTypeCash is a monetary prize; cash prizes pool and split on ties
	PrizeTypeCash PrizeType = "cash"
	// PrizeTypeTrophy is a physical trophy; duplicated across tied players
	PrizeTypeTrophy PrizeType = "trophy"
	// PrizeTypeMedal is a medal award
	PrizeTypeMedal PrizeType = "medal"
	// PrizeTypePlaque is a plaque award
	PrizeTypePlaque PrizeType = "plaque"
)

// Valid reports whether t is one of the supported prize types
func (t PrizeType) Valid() bool {
	switch t {
	case PrizeTypeCash, PrizeTypeTrophy, PrizeTypeMedal, PrizeTypePlaque:
		return true
	}
	return false
}

// IsCash reports whether the prize carries a monetary amount
func (t PrizeType) IsCash() bool {
	return t == PrizeTypeCash
}

// RatingBand defines which ratings qualify for a rating-restricted prize.
// A nil MinRating or MaxRating leaves that side of the band open. Unrated
// players qualify only when IncludeUnrated is set.
type RatingBand struct {
	MinRating      *int `bson:"minRating,omitempty" json:"minRating,omitempty"`
	MaxRating      *int `bson:"maxRating,omitempty" json:"maxRating,omitempty"`
	IncludeUnrated bool `bson:"includeUnrated" json:"includeUnrated"`
}

// Eligible reports whether a player with the given rating falls inside the
// band. Eligibility never depends on the prize's display label.
func (b *RatingBand) Eligible(rating *int) bool {
	if rating == nil {
		return b.IncludeUnrated
	}
	if b.MinRating != nil && *rating < *b.MinRating {
		return false
	}
	if b.MaxRating != nil && *rating > *b.MaxRating {
		return false
	}
	return true
}

// PrizeConfiguration represents one configured prize within a section.
// A prize targets either a finishing position or a rating category, never
// both. Amount is set only for cash prizes.
type PrizeConfiguration struct {
	Name           string      `bson:"name" json:"name"`
	Type           PrizeType   `bson:"type" json:"type"`
	Position       *int        `bson:"position,omitempty" json:"position,omitempty"`
	Amount         *Money      `bson:"amount,omitempty" json:"amount,omitempty"`
	RatingCategory string      `bson:"ratingCategory,omitempty" json:"ratingCategory,omitempty"`
	RatingBand     *RatingBand `bson:"ratingBand,omitempty" json:"ratingBand,omitempty"`
	Description    string      `bson:"description,omitempty" json:"description,omitempty"`
}

// IsPositional reports whether the prize targets a finishing position
func (p *PrizeConfiguration) IsPositional() bool {
	return p.Position != nil
}

// IsCategory reports whether the prize targets a rating category
func (p *PrizeConfiguration) IsCategory() bool {
	return p.RatingCategory != ""
}

// PrizeSection groups the prizes configured for one tournament section
type PrizeSection struct {
	Name   string               `bson:"name" json:"name"`
	Prizes []PrizeConfiguration `bson:"prizes" json:"prizes"`
}

// PrizeSettings represents the prize configuration for a tournament. One
// document exists per tournament; saving replaces the previous configuration.
type PrizeSettings struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TournamentID primitive.ObjectID `bson:"tournamentId" json:"tournamentId"`
	Enabled      bool               `bson:"enabled" json:"enabled"`
	AutoAssign   bool               `bson:"autoAssign" json:"autoAssign"`
	Sections     []PrizeSection     `bson:"sections" json:"sections"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Section returns the named section's configuration, or nil if absent
func (s *PrizeSettings) Section(name string) *PrizeSection {
	for i := range s.Sections {
		if s.Sections[i].Name == name {
			return &s.Sections[i]
		}
	}
	return nil
}
