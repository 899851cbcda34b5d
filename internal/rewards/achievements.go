package rewards

import "github.com/oneiric/dreamtemple/pkg/models"

const achievementSource = "Achievements"

const achievementHourMs = int64(60 * 60 * 1000)

// Catalog returns the built-in achievement definitions. Callers must not
// mutate the returned entries.
func Catalog() []models.Achievement {
	return catalog
}

var catalog = []models.Achievement{
	{
		ID:          "first_steps",
		Name:        "First Steps",
		Description: "Complete your first simulation session",
		Icon:        "🌟",
		Category:    "sessions",
		Tier:        models.TierBronze,
		Condition:   models.AchievementCondition{Type: models.CondSessionCount, Value: 1},
		XPReward:    100,
	},
	{
		ID:          "dedicated_dreamer",
		Name:        "Dedicated Dreamer",
		Description: "Complete 10 simulation sessions",
		Icon:        "🎯",
		Category:    "sessions",
		Tier:        models.TierSilver,
		Condition:   models.AchievementCondition{Type: models.CondSessionCount, Value: 10},
		XPReward:    500,
		EffectSpec: &models.EffectSpec{
			Name:        "Dedication Boost",
			Description: "Achievement reward: Dedicated Dreamer",
			Icon:        "🔥",
			Kind:        models.EffectKindBuff,
			Rarity:      models.RarityEpic,
			DurationMs:  24 * achievementHourMs,
			Magnitudes:  map[string]float64{"xpMultiplier": 1.25},
			Source:      achievementSource,
		},
	},
	{
		ID:          "master_practitioner",
		Name:        "Master Practitioner",
		Description: "Complete 50 simulation sessions",
		Icon:        "👑",
		Category:    "sessions",
		Tier:        models.TierGold,
		Condition:   models.AchievementCondition{Type: models.CondSessionCount, Value: 50},
		XPReward:    2000,
		EffectSpec: &models.EffectSpec{
			Name:        "Master's Focus",
			Description: "Achievement reward: Master Practitioner",
			Icon:        "🧠",
			Kind:        models.EffectKindBuff,
			Rarity:      models.RarityEpic,
			DurationMs:  48 * achievementHourMs,
			Magnitudes:  map[string]float64{"lucidBonus": 20, "xpMultiplier": 1.5},
			Source:      achievementSource,
		},
	},
	{
		ID:          "legendary_voyager",
		Name:        "Legendary Voyager",
		Description: "Complete 100 simulation sessions",
		Icon:        "🌌",
		Category:    "sessions",
		Tier:        models.TierLegendary,
		Condition:   models.AchievementCondition{Type: models.CondSessionCount, Value: 100},
		XPReward:    5000,
	},
	{
		ID:          "lucid_awakening",
		Name:        "Lucid Awakening",
		Description: "Achieve an imprint score of 70 or higher",
		Icon:        "💫",
		Category:    "lucidity",
		Tier:        models.TierBronze,
		Condition:   models.AchievementCondition{Type: models.CondImprintScore, Value: 70},
		XPReward:    300,
	},
	{
		ID:          "consciousness_master",
		Name:        "Consciousness Master",
		Description: "Achieve an imprint score of 90 or higher",
		Icon:        "🧠",
		Category:    "lucidity",
		Tier:        models.TierGold,
		Condition:   models.AchievementCondition{Type: models.CondImprintScore, Value: 90},
		XPReward:    1000,
		EffectSpec: &models.EffectSpec{
			Name:        "Consciousness Mastery",
			Description: "Achievement reward: Consciousness Master",
			Icon:        "🔮",
			Kind:        models.EffectKindBuff,
			Rarity:      models.RarityEpic,
			DurationMs:  72 * achievementHourMs,
			Magnitudes:  map[string]float64{"lucidBonus": 25, "realityControl": 50},
			Source:      achievementSource,
		},
	},
	{
		ID:          "transcendent_being",
		Name:        "Transcendent Being",
		Description: "Achieve a perfect imprint score of 100",
		Icon:        "✨",
		Category:    "lucidity",
		Tier:        models.TierLegendary,
		Condition:   models.AchievementCondition{Type: models.CondImprintScore, Value: 100},
		XPReward:    3000,
	},
	{
		ID:          "first_bond",
		Name:        "First Bond",
		Description: "Form a bond with any companion",
		Icon:        "💖",
		Category:    "companions",
		Tier:        models.TierBronze,
		Condition:   models.AchievementCondition{Type: models.CondCompanionBond, Value: 50},
		XPReward:    200,
	},
	{
		ID:          "soul_connection",
		Name:        "Soul Connection",
		Description: "Reach 90+ bond strength with any companion",
		Icon:        "💫",
		Category:    "companions",
		Tier:        models.TierGold,
		Condition:   models.AchievementCondition{Type: models.CondCompanionBond, Value: 90},
		XPReward:    1500,
		EffectSpec: &models.EffectSpec{
			Name:        "Soul Resonance",
			Description: "Achievement reward: Soul Connection",
			Icon:        "💞",
			Kind:        models.EffectKindBuff,
			Rarity:      models.RarityEpic,
			DurationMs:  48 * achievementHourMs,
			Magnitudes:  map[string]float64{"companionXpBonus": 100, "bondStrength": 25},
			Source:      achievementSource,
		},
	},
	{
		ID:          "harem_master",
		Name:        "Harem Master",
		Description: "Form strong bonds with 3 different companions",
		Icon:        "👑",
		Category:    "companions",
		Tier:        models.TierDiamond,
		Condition:   models.AchievementCondition{Type: models.CondMultipleBonds, Value: 3, Threshold: 70},
		XPReward:    2500,
	},
	{
		ID:          "consistent_practice",
		Name:        "Consistent Practice",
		Description: "Complete sessions on 7 consecutive days",
		Icon:        "🔥",
		Category:    "special",
		Tier:        models.TierSilver,
		Condition:   models.AchievementCondition{Type: models.CondStreak, Value: 7},
		XPReward:    600,
		EffectSpec: &models.EffectSpec{
			Name:        "Consistency Boost",
			Description: "Achievement reward: Consistent Practice",
			Icon:        "📈",
			Kind:        models.EffectKindBuff,
			Rarity:      models.RarityEpic,
			DurationMs:  168 * achievementHourMs,
			Magnitudes:  map[string]float64{"xpMultiplier": 1.3, "streakBonus": 10},
			Source:      achievementSource,
		},
	},
	{
		ID:          "unwavering_devotion",
		Name:        "Unwavering Devotion",
		Description: "Complete sessions on 30 consecutive days",
		Icon:        "💎",
		Category:    "special",
		Tier:        models.TierDiamond,
		Condition:   models.AchievementCondition{Type: models.CondStreak, Value: 30},
		XPReward:    5000,
	},
}

// conditionMet evaluates one achievement condition against the stats.
func conditionMet(cond models.AchievementCondition, stats *models.PlayerStats) bool {
	switch cond.Type {
	case models.CondSessionCount:
		return stats.TotalSessions >= cond.Value
	case models.CondImprintScore:
		return stats.HighestImprint >= cond.Value
	case models.CondTotalXP:
		return stats.TotalXP >= cond.Value
	case models.CondStreak:
		return stats.StreakCurrent >= cond.Value
	case models.CondCompanionBond:
		for _, bond := range stats.CompanionBonds {
			if bond >= cond.Value {
				return true
			}
		}
		return false
	case models.CondMultipleBonds:
		strong := 0
		for _, bond := range stats.CompanionBonds {
			if bond >= cond.Threshold {
				strong++
			}
		}
		return strong >= cond.Value
	}
	return false
}
