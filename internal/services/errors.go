package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP status codes; everything else is treated as an internal failure.
var (
	// ErrTournamentNotFound means the referenced tournament does not exist
	ErrTournamentNotFound = errors.New("tournament not found")

	// ErrPrizesDisabled means prize distribution is switched off in the
	// tournament's settings, so nothing may be computed
	ErrPrizesDisabled = errors.New("prize distribution is disabled for this tournament")

	// ErrNoStandings means an operation needed standings that have not
	// been recorded yet
	ErrNoStandings = errors.New("no standings recorded for this tournament")

	// ErrComputationInProgress means another prize computation holds the
	// tournament's lock; the caller should retry shortly
	ErrComputationInProgress = errors.New("a prize computation is already running for this tournament")

	// ErrPrizeNotFound means the referenced manual prize row does not exist
	ErrPrizeNotFound = errors.New("prize not found")

	// ErrInvalidTournament means a tournament create or update carried
	// unusable fields
	ErrInvalidTournament = errors.New("invalid tournament")

	// ErrInvalidStandings means a standings upload carried unusable entries
	ErrInvalidStandings = errors.New("invalid standings")

	// ErrPersistenceFailure means the storage layer rejected a write; the
	// previously stored state remains authoritative
	ErrPersistenceFailure = errors.New("failed to persist prize distributions")
)
