package services

import (
	"sync"

	"golang.org/x/sync/semaphore"
)

// tournamentLocks hands out a single-slot semaphore per tournament so at
// most one prize computation runs for a tournament at a time. Computations
// for different tournaments proceed independently.
type tournamentLocks struct {
	mu    sync.Mutex
	locks map[string]*semaphore.Weighted
}

func newTournamentLocks() *tournamentLocks {
	return &tournamentLocks{locks: make(map[string]*semaphore.Weighted)}
}

func (l *tournamentLocks) get(tournamentID string) *semaphore.Weighted {
	l.mu.Lock()
	defer l.mu.Unlock()
	sem, ok := l.locks[tournamentID]
	if !ok {
		sem = semaphore.NewWeighted(1)
		l.locks[tournamentID] = sem
	}
	return sem
}

// tryAcquire attempts to take the tournament's lock without blocking
func (l *tournamentLocks) tryAcquire(tournamentID string) bool {
	return l.get(tournamentID).TryAcquire(1)
}

// release frees the tournament's lock taken by tryAcquire
func (l *tournamentLocks) release(tournamentID string) {
	l.get(tournamentID).Release(1)
}
