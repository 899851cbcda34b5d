package models

// PlayerStats accumulates lifetime progress across sessions.
type PlayerStats struct {
	TotalSessions    int            `json:"total_sessions"`
	TotalXP          int            `json:"total_xp"`
	TotalDreamTokens int            `json:"total_dream_tokens"`
	HighestImprint   int            `json:"highest_imprint"`
	AverageImprint   float64        `json:"average_imprint"`
	TotalDurationMs  int64          `json:"total_duration_ms"`
	StreakCurrent    int            `json:"streak_current"`
	StreakLongest    int            `json:"streak_longest"`
	CompanionBonds   map[string]int `json:"companion_bonds"`
	FirstSessionAt   int64          `json:"first_session_at"`
	LastSessionAt    int64          `json:"last_session_at"`
}

// NewPlayerStats returns zeroed stats with initialized maps.
func NewPlayerStats() PlayerStats {
	return PlayerStats{CompanionBonds: make(map[string]int)}
}

// AchievementTier orders achievement brackets for display.
type AchievementTier string

const (
	TierBronze    AchievementTier = "bronze"
	TierSilver    AchievementTier = "silver"
	TierGold      AchievementTier = "gold"
	TierDiamond   AchievementTier = "diamond"
	TierLegendary AchievementTier = "legendary"
)

// ConditionType selects which stat an achievement condition checks.
type ConditionType string

const (
	CondSessionCount  ConditionType = "session_count"
	CondImprintScore  ConditionType = "imprint_score"
	CondTotalXP       ConditionType = "total_xp"
	CondCompanionBond ConditionType = "companion_bond"
	CondStreak        ConditionType = "streak"
	CondMultipleBonds ConditionType = "multiple_bonds"
)

// AchievementCondition is the unlock predicate for an achievement.
// Value is the inclusive lower bound; Threshold applies only to
// multiple_bonds conditions (minimum bond strength counted).
type AchievementCondition struct {
	Type      ConditionType `json:"type"`
	Value     int           `json:"value"`
	Threshold int           `json:"threshold,omitempty"`
}

// Achievement is a one-time unlockable reward definition.
type Achievement struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Icon        string               `json:"icon"`
	Category    string               `json:"category"`
	Tier        AchievementTier      `json:"tier"`
	Condition   AchievementCondition `json:"condition"`
	XPReward    int                  `json:"xp_reward"`
	EffectSpec  *EffectSpec          `json:"effect_spec,omitempty"`
	UnlockedAt  int64                `json:"unlocked_at,omitempty"`
}
