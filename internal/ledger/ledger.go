// Package ledger owns the authoritative set of active time-limited status
// effects and a bounded history of expired ones.
package ledger

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/oneiric/dreamtemple/pkg/models"
)

// StateKey is the state-store key holding the ledger snapshot.
const StateKey = "status_ledger"

// HistoryCap bounds the expired-effect history. Older entries are dropped.
const HistoryCap = 50

// StateStore persists whole ledger snapshots. Writes are best-effort:
// a failed save is logged, never surfaced to the caller.
type StateStore interface {
	Load(key string, out any) (bool, error)
	Save(key string, value any) error
}

// ExpiredFunc is notified whenever a sweep moves effects to history.
type ExpiredFunc func(expired []models.ExpiredStatusEffect)

// Ledger is the status-effect lifecycle engine. All state transitions
// replace the whole snapshot under one mutex so readers always observe a
// consistent active/history pair.
type Ledger struct {
	mu        sync.Mutex
	state     models.LedgerState
	store     StateStore
	onExpired ExpiredFunc
}

// New creates a Ledger, restoring any persisted snapshot.
func New(store StateStore) (*Ledger, error) {
	l := &Ledger{store: store}

	found, err := store.Load(StateKey, &l.state)
	if err != nil {
		return nil, fmt.Errorf("restore ledger: %w", err)
	}
	if !found {
		l.state = models.LedgerState{}
	}
	return l, nil
}

// SetOnExpired registers a callback invoked (outside the lock) with each
// batch of swept effects.
func (l *Ledger) SetOnExpired(fn ExpiredFunc) {
	l.mu.Lock()
	l.onExpired = fn
	l.mu.Unlock()
}

// Admit stamps and inserts a new effect, returning its id. The spec must
// carry a positive duration; zero or negative durations are rejected so a
// dead-on-arrival effect can never enter the active set. Duplicate names
// are allowed and independently timed.
func (l *Ledger) Admit(spec models.EffectSpec, now int64) (string, error) {
	if spec.DurationMs <= 0 {
		return "", fmt.Errorf("admit %q: duration must be positive, got %dms", spec.Name, spec.DurationMs)
	}

	effect := models.StatusEffect{
		ID:          uuid.NewString(),
		Name:        spec.Name,
		Description: spec.Description,
		Source:      spec.Source,
		Icon:        spec.Icon,
		Kind:        spec.Kind,
		Rarity:      spec.Rarity,
		CreatedAt:   now,
		ExpiresAt:   now + spec.DurationMs,
		Magnitudes:  spec.Magnitudes,
	}
	if effect.Kind == "" {
		effect.Kind = models.EffectKindBuff
	}
	if effect.Rarity == "" {
		effect.Rarity = models.RarityCommon
	}

	// Sweep first so the admission lands on a fresh snapshot; a concurrent
	// sweep can then never drop the new effect.
	l.mu.Lock()
	expired := l.sweepLocked(now)
	active := make([]models.StatusEffect, 0, len(l.state.Active)+1)
	active = append(active, l.state.Active...)
	active = append(active, effect)
	l.state = models.LedgerState{Active: active, History: l.state.History}
	l.persistLocked()
	fn := l.onExpired
	l.mu.Unlock()

	l.notify(fn, expired)
	return effect.ID, nil
}

// Revoke moves an active effect to the front of history, stamped with the
// revocation time. Returns false when the id is not active - an idempotent
// no-op, not an error.
func (l *Ledger) Revoke(id string, now int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.state.Active {
		if l.state.Active[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	revoked := toExpired(l.state.Active[idx], now)

	active := make([]models.StatusEffect, 0, len(l.state.Active)-1)
	active = append(active, l.state.Active[:idx]...)
	active = append(active, l.state.Active[idx+1:]...)

	history := make([]models.ExpiredStatusEffect, 0, len(l.state.History)+1)
	history = append(history, revoked)
	history = append(history, l.state.History...)
	if len(history) > HistoryCap {
		history = history[:HistoryCap]
	}

	l.state = models.LedgerState{Active: active, History: history}
	l.persistLocked()
	return true
}

// SweepExpired partitions the active set at now and moves just-expired
// effects to the front of history, most recent first. Idempotent: an effect
// swept once never reappears in a later sweep's expired set. Returns the
// batch swept by this call.
func (l *Ledger) SweepExpired(now int64) []models.ExpiredStatusEffect {
	l.mu.Lock()
	expired := l.sweepLocked(now)
	fn := l.onExpired
	l.mu.Unlock()

	l.notify(fn, expired)
	return expired
}

// Active returns a copy of the active set after a lazy sweep at now.
func (l *Ledger) Active(now int64) []models.StatusEffect {
	l.mu.Lock()
	expired := l.sweepLocked(now)
	active := make([]models.StatusEffect, len(l.state.Active))
	copy(active, l.state.Active)
	fn := l.onExpired
	l.mu.Unlock()

	l.notify(fn, expired)
	return active
}

// History returns a copy of the expired-effect history, most recent first.
func (l *Ledger) History() []models.ExpiredStatusEffect {
	l.mu.Lock()
	defer l.mu.Unlock()

	history := make([]models.ExpiredStatusEffect, len(l.state.History))
	copy(history, l.state.History)
	return history
}

// AggregateMagnitudes folds all active effects' magnitudes into one view of
// the modifiers that currently apply. Multiplier-named keys combine
// multiplicatively over identity 1; all other keys add over identity 0.
func (l *Ledger) AggregateMagnitudes(now int64) map[string]float64 {
	l.mu.Lock()
	expired := l.sweepLocked(now)

	aggregate := make(map[string]float64)
	for i := range l.state.Active {
		for key, value := range l.state.Active[i].Magnitudes {
			current, seen := aggregate[key]
			if ClassifyEffectKey(key) == Multiplicative {
				if !seen {
					current = 1
				}
				aggregate[key] = current * value
			} else {
				aggregate[key] = current + value
			}
		}
	}
	fn := l.onExpired
	l.mu.Unlock()

	l.notify(fn, expired)
	return aggregate
}

// Counts returns the active and history sizes after a lazy sweep.
func (l *Ledger) Counts(now int64) (active, history int) {
	l.mu.Lock()
	expired := l.sweepLocked(now)
	active = len(l.state.Active)
	history = len(l.state.History)
	fn := l.onExpired
	l.mu.Unlock()

	l.notify(fn, expired)
	return active, history
}

// sweepLocked performs the expiry partition. Caller holds the mutex.
func (l *Ledger) sweepLocked(now int64) []models.ExpiredStatusEffect {
	var justExpired []models.ExpiredStatusEffect
	stillActive := make([]models.StatusEffect, 0, len(l.state.Active))

	for i := range l.state.Active {
		if l.state.Active[i].ExpiresAt <= now {
			justExpired = append(justExpired, toExpired(l.state.Active[i], now))
		} else {
			stillActive = append(stillActive, l.state.Active[i])
		}
	}
	if len(justExpired) == 0 {
		return nil
	}

	// Most recently expired first: reverse the partition order so the last
	// swept effect leads the history.
	for i, j := 0, len(justExpired)-1; i < j; i, j = i+1, j-1 {
		justExpired[i], justExpired[j] = justExpired[j], justExpired[i]
	}

	history := make([]models.ExpiredStatusEffect, 0, len(justExpired)+len(l.state.History))
	history = append(history, justExpired...)
	history = append(history, l.state.History...)
	if len(history) > HistoryCap {
		history = history[:HistoryCap]
	}

	l.state = models.LedgerState{Active: stillActive, History: history}
	l.persistLocked()
	return justExpired
}

// persistLocked writes the snapshot to the store. Best-effort by design:
// the in-memory ledger stays authoritative if the write fails.
func (l *Ledger) persistLocked() {
	if l.store == nil {
		return
	}
	if err := l.store.Save(StateKey, &l.state); err != nil {
		log.Warn().Err(err).Msg("Failed to persist ledger state")
	}
}

func (l *Ledger) notify(fn ExpiredFunc, expired []models.ExpiredStatusEffect) {
	if fn != nil && len(expired) > 0 {
		fn(expired)
	}
}

func toExpired(e models.StatusEffect, now int64) models.ExpiredStatusEffect {
	return models.ExpiredStatusEffect{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Source:      e.Source,
		Icon:        e.Icon,
		Kind:        e.Kind,
		Rarity:      e.Rarity,
		ExpiredAt:   now,
		Magnitudes:  e.Magnitudes,
	}
}
