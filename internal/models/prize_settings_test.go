package models

import "testing"

func TestRatingBandEligible(t *testing.T) {
	rating := func(n int) *int { return &n }

	cases := []struct {
		name   string
		band   RatingBand
		rating *int
		want   bool
	}{
		{"inside closed band", RatingBand{MinRating: rating(1200), MaxRating: rating(1599)}, rating(1400), true},
		{"at lower bound", RatingBand{MinRating: rating(1200), MaxRating: rating(1599)}, rating(1200), true},
		{"at upper bound", RatingBand{MinRating: rating(1200), MaxRating: rating(1599)}, rating(1599), true},
		{"below band", RatingBand{MinRating: rating(1200), MaxRating: rating(1599)}, rating(1199), false},
		{"above band", RatingBand{MinRating: rating(1200), MaxRating: rating(1599)}, rating(1600), false},
		{"open lower side", RatingBand{MaxRating: rating(1599)}, rating(100), true},
		{"open upper side", RatingBand{MinRating: rating(1800)}, rating(2700), true},
		{"unrated excluded by default", RatingBand{MaxRating: rating(1599)}, nil, false},
		{"unrated included when flagged", RatingBand{MaxRating: rating(1599), IncludeUnrated: true}, nil, true},
		{"unrated ignores bounds", RatingBand{MinRating: rating(2000), IncludeUnrated: true}, nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.band.Eligible(tc.rating); got != tc.want {
				t.Errorf("Eligible(%v) = %v, want %v", tc.rating, got, tc.want)
			}
		})
	}
}
