// Package models contains domain models for dreamtemple.
package models

// EffectKind distinguishes positive effects (buffs) from negative ones (curses).
// Informational only - aggregation math does not depend on it.
type EffectKind string

const (
	EffectKindBuff  EffectKind = "buff"
	EffectKindCurse EffectKind = "curse"
)

// RarityTier orders effects for display and sorting.
type RarityTier string

const (
	RarityCommon    RarityTier = "common"
	RarityUncommon  RarityTier = "uncommon"
	RarityRare      RarityTier = "rare"
	RarityEpic      RarityTier = "epic"
	RarityLegendary RarityTier = "legendary"
)

// StatusEffect is a named, time-limited modifier bundle.
// Magnitudes maps effect keys (e.g. "xpMultiplier", "dreamClarity") to
// numeric magnitudes. Keys containing "Multiplier" combine multiplicatively
// when aggregated, all other keys combine additively.
type StatusEffect struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Source      string             `json:"source"`
	Icon        string             `json:"icon"`
	Kind        EffectKind         `json:"kind"`
	Rarity      RarityTier         `json:"rarity"`
	CreatedAt   int64              `json:"created_at"`
	ExpiresAt   int64              `json:"expires_at"`
	Magnitudes  map[string]float64 `json:"magnitudes"`
}

// EffectSpec describes an effect to admit into the ledger. The ledger
// stamps the id and timestamps; callers supply everything else.
type EffectSpec struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Source      string             `json:"source"`
	Icon        string             `json:"icon"`
	Kind        EffectKind         `json:"kind"`
	Rarity      RarityTier         `json:"rarity"`
	DurationMs  int64              `json:"duration_ms"`
	Magnitudes  map[string]float64 `json:"magnitudes"`
}

// ExpiredStatusEffect is the terminal state of a StatusEffect. The creation
// and expiry deadlines are dropped; only the moment it actually expired is
// kept for the history view.
type ExpiredStatusEffect struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Source      string             `json:"source"`
	Icon        string             `json:"icon"`
	Kind        EffectKind         `json:"kind"`
	Rarity      RarityTier         `json:"rarity"`
	ExpiredAt   int64              `json:"expired_at"`
	Magnitudes  map[string]float64 `json:"magnitudes"`
}

// LedgerState is the persisted active/history record of status effects.
type LedgerState struct {
	Active  []StatusEffect        `json:"active"`
	History []ExpiredStatusEffect `json:"history"`
}
