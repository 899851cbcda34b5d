// Package rewards tracks lifetime player stats, daily streaks, and the
// achievements they unlock.
package rewards

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/oneiric/dreamtemple/pkg/models"
)

// State-store keys for the persisted tracker state.
const (
	StatsKey       = "player_stats"
	UnlockedKey    = "unlocked_achievements"
	streakStepSize = 0.1
)

// StateStore persists the tracker state between runs.
type StateStore interface {
	Load(key string, out any) (bool, error)
	Save(key string, value any) error
}

// SessionUpdate carries the per-session deltas folded into the stats.
type SessionUpdate struct {
	ImprintScore   int
	XPGained       int
	DreamTokens    int
	DurationMs     int64
	CompanionBonds map[string]int
}

// Tracker owns the player's lifetime stats and unlocked achievements.
type Tracker struct {
	mu       sync.Mutex
	stats    models.PlayerStats
	unlocked map[string]int64
	store    StateStore
}

// NewTracker creates a Tracker, restoring persisted stats and unlocks.
func NewTracker(store StateStore) (*Tracker, error) {
	t := &Tracker{
		stats:    models.NewPlayerStats(),
		unlocked: make(map[string]int64),
		store:    store,
	}
	if store == nil {
		return t, nil
	}

	if _, err := store.Load(StatsKey, &t.stats); err != nil {
		return nil, fmt.Errorf("restore player stats: %w", err)
	}
	if t.stats.CompanionBonds == nil {
		t.stats.CompanionBonds = make(map[string]int)
	}
	if _, err := store.Load(UnlockedKey, &t.unlocked); err != nil {
		return nil, fmt.Errorf("restore achievements: %w", err)
	}
	if t.unlocked == nil {
		t.unlocked = make(map[string]int64)
	}
	return t, nil
}

// Stats returns a copy of the current stats.
func (t *Tracker) Stats() models.PlayerStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.copyStatsLocked()
}

// StreakMultiplier returns the XP multiplier a session at now earns from
// the daily streak: one tenth per consecutive day.
func (t *Tracker) StreakMultiplier(now int64) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	streak := t.projectStreakLocked(now)
	return 1.0 + streakStepSize*float64(streak)
}

// Achievements returns the full catalog with unlock timestamps filled in
// for the ones this player has earned.
func (t *Tracker) Achievements() []models.Achievement {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]models.Achievement, len(catalog))
	copy(out, catalog)
	for i := range out {
		if at, ok := t.unlocked[out[i].ID]; ok {
			out[i].UnlockedAt = at
		}
	}
	return out
}

// ApplySession folds a completed session into the stats, advances the
// daily streak, and returns any achievements this session unlocked.
// Achievement XP is added to the totals; achievement effect specs are
// left for the caller to admit.
func (t *Tracker) ApplySession(update SessionUpdate, now int64) ([]models.Achievement, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	streak := t.projectStreakLocked(now)

	s := &t.stats
	s.TotalSessions++
	s.TotalXP += update.XPGained
	s.TotalDreamTokens += update.DreamTokens
	s.TotalDurationMs += update.DurationMs
	if update.ImprintScore > s.HighestImprint {
		s.HighestImprint = update.ImprintScore
	}
	s.AverageImprint = (s.AverageImprint*float64(s.TotalSessions-1) + float64(update.ImprintScore)) / float64(s.TotalSessions)
	s.StreakCurrent = streak
	if streak > s.StreakLongest {
		s.StreakLongest = streak
	}
	if s.FirstSessionAt == 0 {
		s.FirstSessionAt = now
	}
	s.LastSessionAt = now

	for name, bond := range update.CompanionBonds {
		if bond > s.CompanionBonds[name] {
			s.CompanionBonds[name] = bond
		}
	}

	var newlyUnlocked []models.Achievement
	for _, a := range catalog {
		if _, done := t.unlocked[a.ID]; done {
			continue
		}
		if !conditionMet(a.Condition, s) {
			continue
		}
		t.unlocked[a.ID] = now
		s.TotalXP += a.XPReward

		unlocked := a
		unlocked.UnlockedAt = now
		newlyUnlocked = append(newlyUnlocked, unlocked)
		log.Info().
			Str("achievement", a.ID).
			Int("xp_reward", a.XPReward).
			Msg("Achievement unlocked")
	}

	if err := t.persistLocked(); err != nil {
		return newlyUnlocked, err
	}
	return newlyUnlocked, nil
}

// projectStreakLocked computes the streak a session at now would have:
// same calendar day keeps it, the next day extends it, any gap resets
// to one.
func (t *Tracker) projectStreakLocked(now int64) int {
	if t.stats.LastSessionAt == 0 {
		return 1
	}

	last := dayOf(t.stats.LastSessionAt)
	current := dayOf(now)
	gap := int(current.Sub(last).Hours() / 24)

	switch {
	case gap == 0:
		if t.stats.StreakCurrent < 1 {
			return 1
		}
		return t.stats.StreakCurrent
	case gap == 1:
		return t.stats.StreakCurrent + 1
	default:
		return 1
	}
}

func dayOf(epochMs int64) time.Time {
	ts := time.UnixMilli(epochMs)
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}

func (t *Tracker) persistLocked() error {
	if t.store == nil {
		return nil
	}
	if err := t.store.Save(StatsKey, &t.stats); err != nil {
		return fmt.Errorf("persist player stats: %w", err)
	}
	if err := t.store.Save(UnlockedKey, t.unlocked); err != nil {
		return fmt.Errorf("persist achievements: %w", err)
	}
	return nil
}

func (t *Tracker) copyStatsLocked() models.PlayerStats {
	out := t.stats
	out.CompanionBonds = make(map[string]int, len(t.stats.CompanionBonds))
	for k, v := range t.stats.CompanionBonds {
		out.CompanionBonds[k] = v
	}
	return out
}
