// Package registry is the process-wide map of owner id to in-progress
// activity: transaction locks, pending evolutions, trade sessions, and
// active encounters. Every multi-step flow checks-then-sets here
// before touching the store and clears its entry on every exit path.
package registry

import (
	"sync"

	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/errors"
	"github.com/fernway/kobold/internal/pkg/clock"
)

// Registry holds all ephemeral per-owner session state. Evolution
// entries are the only part rebuilt from durable storage at boot;
// everything else dies with the process by design.
type Registry struct {
	mu         sync.Mutex
	locks      map[string]*entities.TransactionLock
	evolutions map[string]*entities.EvolutionSession
	trades     map[string]*entities.TradeSession
	encounters map[string]*entities.EncounterSession
	clock      clock.Clock
}

// New creates an empty registry
func New(clk clock.Clock) *Registry {
	return &Registry{
		locks:      make(map[string]*entities.TransactionLock),
		evolutions: make(map[string]*entities.EvolutionSession),
		trades:     make(map[string]*entities.TradeSession),
		encounters: make(map[string]*entities.EncounterSession),
		clock:      clk,
	}
}

// blockingActivity reports what currently occupies an owner, if
// anything. Caller must hold mu.
func (r *Registry) blockingActivity(ownerID string) (entities.Activity, bool) {
	if lock, ok := r.locks[ownerID]; ok {
		return lock.Activity, true
	}
	if _, ok := r.evolutions[ownerID]; ok {
		return entities.ActivityEvolution, true
	}
	if _, ok := r.trades[ownerID]; ok {
		return entities.ActivityTrade, true
	}
	if _, ok := r.encounters[ownerID]; ok {
		return entities.ActivityEncounter, true
	}
	return "", false
}

// Activity reports what currently occupies an owner, if anything
func (r *Registry) Activity(ownerID string) (entities.Activity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blockingActivity(ownerID)
}

// CheckAvailable returns Busy naming the blocking activity when the
// owner is occupied, nil otherwise.
func (r *Registry) CheckAvailable(ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if activity, busy := r.blockingActivity(ownerID); busy {
		return errors.Busy(string(activity))
	}
	return nil
}

// Lock takes the owner's transaction lock for a flow. It is a single
// check-then-set: Busy when anything already occupies the owner.
func (r *Registry) Lock(ownerID string, activity entities.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if blocking, busy := r.blockingActivity(ownerID); busy {
		return errors.Busy(string(blocking))
	}

	r.locks[ownerID] = &entities.TransactionLock{
		OwnerID:  ownerID,
		Activity: activity,
		TakenAt:  r.clock.Now(),
	}
	return nil
}

// Unlock releases the owner's transaction lock. Releasing an absent
// lock is a no-op so error paths can call it unconditionally.
func (r *Registry) Unlock(ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locks, ownerID)
}

// SetEvolution records a pending evolution session. At most one per
// owner; a second is AlreadyExists.
func (r *Registry) SetEvolution(session *entities.EvolutionSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.evolutions[session.OwnerID]; ok {
		return errors.AlreadyExists("an evolution is already pending")
	}
	r.evolutions[session.OwnerID] = session
	return nil
}

// Evolution returns the owner's pending evolution session, if any
func (r *Registry) Evolution(ownerID string) (*entities.EvolutionSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.evolutions[ownerID]
	return s, ok
}

// ClearEvolution removes the owner's pending evolution session
func (r *Registry) ClearEvolution(ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.evolutions, ownerID)
}

// SetTrade records one participant's trade session
func (r *Registry) SetTrade(session *entities.TradeSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trades[session.OwnerID] = session
}

// Trade returns the owner's trade session, if any
func (r *Registry) Trade(ownerID string) (*entities.TradeSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.trades[ownerID]
	return s, ok
}

// ClearTrade removes the owner's trade session
func (r *Registry) ClearTrade(ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.trades, ownerID)
}

// SetEncounter records the owner's active encounter
func (r *Registry) SetEncounter(session *entities.EncounterSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.encounters[session.OwnerID] = session
}

// Encounter returns the owner's active encounter, if any
func (r *Registry) Encounter(ownerID string) (*entities.EncounterSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.encounters[ownerID]
	return s, ok
}

// ClearEncounter removes the owner's active encounter
func (r *Registry) ClearEncounter(ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.encounters, ownerID)
}
