package prizing

import "fmt"

// ValidationKind identifies the specific rule a prize configuration broke
type ValidationKind string

const (
	KindMissingSectionName        ValidationKind = "MISSING_SECTION_NAME"
	KindDuplicateSection          ValidationKind = "DUPLICATE_SECTION"
	KindDuplicatePosition         ValidationKind = "DUPLICATE_POSITION"
	KindInvalidPosition           ValidationKind = "INVALID_POSITION"
	KindInvalidPrizeType          ValidationKind = "INVALID_PRIZE_TYPE"
	KindMissingAmount             ValidationKind = "MISSING_AMOUNT"
	KindNegativeAmount            ValidationKind = "NEGATIVE_AMOUNT"
	KindMissingPositionOrCategory ValidationKind = "MISSING_POSITION_OR_CATEGORY"
	KindConflictingTarget         ValidationKind = "CONFLICTING_TARGET"
	KindMissingRatingBand         ValidationKind = "MISSING_RATING_BAND"
	KindMissingPlayer             ValidationKind = "MISSING_PLAYER"
	KindMissingPrizeName          ValidationKind = "MISSING_PRIZE_NAME"
)

// ValidationError describes why a prize configuration was rejected. Section
// and Field locate the offending entry so clients can point at the exact
// input that needs fixing.
type ValidationError struct {
	Kind    ValidationKind `json:"kind"`
	Section string         `json:"section,omitempty"`
	Field   string         `json:"field,omitempty"`
	Message string         `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("section %q: %s", e.Section, e.Message)
	}
	return e.Message
}
