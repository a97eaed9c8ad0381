package prizing

import (
	"fmt"

	"github.com/chughjug/ratings-sub000/internal/models"
)

// ValidateSettings checks a prize configuration before it is saved or used
// for allocation. It returns a *ValidationError for the first rule violation
// found, or nil when the configuration is acceptable.
func ValidateSettings(settings *models.PrizeSettings) error {
	seenSections := make(map[string]bool)
	for si := range settings.Sections {
		section := &settings.Sections[si]
		if section.Name == "" {
			return &ValidationError{
				Kind:    KindMissingSectionName,
				Field:   "name",
				Message: fmt.Sprintf("section %d has no name", si+1),
			}
		}
		if seenSections[section.Name] {
			return &ValidationError{
				Kind:    KindDuplicateSection,
				Section: section.Name,
				Field:   "name",
				Message: fmt.Sprintf("duplicate prize section %q", section.Name),
			}
		}
		seenSections[section.Name] = true

		if err := validateSection(section); err != nil {
			return err
		}
	}
	return nil
}

func validateSection(section *models.PrizeSection) error {
	seenPositions := make(map[int]bool)
	for pi := range section.Prizes {
		prize := &section.Prizes[pi]
		if !prize.Type.Valid() {
			return &ValidationError{
				Kind:    KindInvalidPrizeType,
				Section: section.Name,
				Field:   "type",
				Message: fmt.Sprintf("prize %q has unknown type %q", prize.Name, prize.Type),
			}
		}
		if prize.IsPositional() && prize.IsCategory() {
			return &ValidationError{
				Kind:    KindConflictingTarget,
				Section: section.Name,
				Field:   "position",
				Message: fmt.Sprintf("prize %q targets both a position and a rating category", prize.Name),
			}
		}
		if !prize.IsPositional() && !prize.IsCategory() {
			return &ValidationError{
				Kind:    KindMissingPositionOrCategory,
				Section: section.Name,
				Field:   "position",
				Message: fmt.Sprintf("prize %q targets neither a position nor a rating category", prize.Name),
			}
		}
		if prize.IsPositional() && *prize.Position < 1 {
			return &ValidationError{
				Kind:    KindInvalidPosition,
				Section: section.Name,
				Field:   "position",
				Message: fmt.Sprintf("prize %q has position %d, positions start at 1", prize.Name, *prize.Position),
			}
		}
		if prize.IsCategory() && prize.RatingBand == nil {
			return &ValidationError{
				Kind:    KindMissingRatingBand,
				Section: section.Name,
				Field:   "ratingBand",
				Message: fmt.Sprintf("rating prize %q has no rating band", prize.Name),
			}
		}
		if prize.Type.IsCash() {
			if prize.Amount == nil {
				return &ValidationError{
					Kind:    KindMissingAmount,
					Section: section.Name,
					Field:   "amount",
					Message: fmt.Sprintf("cash prize %q has no amount", prize.Name),
				}
			}
			if prize.Amount.IsNegative() {
				return &ValidationError{
					Kind:    KindNegativeAmount,
					Section: section.Name,
					Field:   "amount",
					Message: fmt.Sprintf("cash prize %q has negative amount %s", prize.Name, prize.Amount.String()),
				}
			}
			if prize.IsPositional() {
				if seenPositions[*prize.Position] {
					return &ValidationError{
						Kind:    KindDuplicatePosition,
						Section: section.Name,
						Field:   "position",
						Message: fmt.Sprintf("more than one cash prize at position %d", *prize.Position),
					}
				}
				seenPositions[*prize.Position] = true
			}
		}
	}
	return nil
}
