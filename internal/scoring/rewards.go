package scoring

import (
	"github.com/oneiric/dreamtemple/pkg/models"
)

// Tier names for the primary imprint reward bracket.
const (
	TierNone      = "none"
	TierUncommon  = "uncommon"
	TierRare      = "rare"
	TierEpic      = "epic"
	TierLegendary = "legendary"
	TierForbidden = "forbidden"
)

const hourMs = int64(60 * 60 * 1000)

const rewardSource = "Simulation Engine"

// imprintTiers maps imprint thresholds to the primary reward effect.
// Ordered highest first; the first qualifying tier wins. All thresholds
// are inclusive lower bounds.
var imprintTiers = []struct {
	threshold int
	tier      string
	spec      models.EffectSpec
}{
	{90, TierForbidden, models.EffectSpec{
		Name:        "Forbidden Lucidity",
		Description: "Absolute mastery over dream consciousness and reality manipulation.",
		Icon:        "🌑",
		Kind:        models.EffectKindBuff,
		Rarity:      models.RarityLegendary,
		DurationMs:  72 * hourMs,
		Magnitudes:  map[string]float64{"dreamClarity": 100, "xpMultiplier": 3.0, "companionXpBonus": 50, "realityControl": 100},
	}},
	{80, TierLegendary, models.EffectSpec{
		Name:        "Legendary Dream Mastery",
		Description: "Legendary control over dream states and consciousness.",
		Icon:        "👑",
		Kind:        models.EffectKindBuff,
		Rarity:      models.RarityLegendary,
		DurationMs:  48 * hourMs,
		Magnitudes:  map[string]float64{"dreamClarity": 75, "xpMultiplier": 2.5, "companionXpBonus": 40, "realityControl": 75},
	}},
	{70, TierEpic, models.EffectSpec{
		Name:        "Epic Lucid Control",
		Description: "Exceptional lucid dreaming abilities and consciousness control.",
		Icon:        "🔮",
		Kind:        models.EffectKindBuff,
		Rarity:      models.RarityEpic,
		DurationMs:  24 * hourMs,
		Magnitudes:  map[string]float64{"dreamClarity": 50, "xpMultiplier": 2.0, "companionXpBonus": 30, "realityControl": 50},
	}},
	{60, TierRare, models.EffectSpec{
		Name:        "Rare Dream Awareness",
		Description: "Enhanced dream awareness and lucidity triggers.",
		Icon:        "👁️",
		Kind:        models.EffectKindBuff,
		Rarity:      models.RarityRare,
		DurationMs:  12 * hourMs,
		Magnitudes:  map[string]float64{"dreamClarity": 30, "xpMultiplier": 1.5, "companionXpBonus": 20, "realityControl": 30},
	}},
	{40, TierUncommon, models.EffectSpec{
		Name:        "Uncommon Lucid Spark",
		Description: "Basic lucid dreaming enhancement and awareness boost.",
		Icon:        "✨",
		Kind:        models.EffectKindBuff,
		Rarity:      models.RarityUncommon,
		DurationMs:  6 * hourMs,
		Magnitudes:  map[string]float64{"dreamClarity": 15, "xpMultiplier": 1.2, "companionXpBonus": 10, "realityControl": 15},
	}},
}

// MapRewards maps a session's scores to a reward bundle: the primary
// imprint-tier effect plus independently-triggered bonus effects on the
// climax, companion-bond, and emotion axes. A session can yield zero to
// many simultaneous effect admissions.
func (e *Engine) MapRewards(scores models.SessionScores, sessionType models.SessionType, durationMs int64, streakMultiplier float64) models.RewardBundle {
	bundle := models.RewardBundle{
		Tier:     TierNone,
		XPReward: e.XPReward(scores, sessionType, durationMs, streakMultiplier),
	}

	for _, t := range imprintTiers {
		if scores.Imprint >= t.threshold {
			bundle.Tier = t.tier
			bundle.EffectSpecs = append(bundle.EffectSpecs, withSource(t.spec))
			break
		}
	}

	switch {
	case scores.Climax >= 95:
		bundle.EffectSpecs = append(bundle.EffectSpecs, withSource(models.EffectSpec{
			Name:        "Transcendent Climax",
			Description: "Perfect emotional peak achievement with transcendent bliss.",
			Icon:        "🌟",
			Kind:        models.EffectKindBuff,
			Rarity:      models.RarityLegendary,
			DurationMs:  24 * hourMs,
			Magnitudes:  map[string]float64{"emotionBonus": 50, "climaxMastery": 100, "blissMultiplier": 2.0},
		}))
	case scores.Climax >= 80:
		bundle.EffectSpecs = append(bundle.EffectSpecs, withSource(models.EffectSpec{
			Name:        "Euphoric Peak",
			Description: "Intense emotional peak with euphoric enhancement.",
			Icon:        "💫",
			Kind:        models.EffectKindBuff,
			Rarity:      models.RarityEpic,
			DurationMs:  12 * hourMs,
			Magnitudes:  map[string]float64{"emotionBonus": 30, "climaxMastery": 50, "blissMultiplier": 1.5},
		}))
	}

	switch {
	case scores.CompanionBond >= 90:
		bundle.EffectSpecs = append(bundle.EffectSpecs, withSource(models.EffectSpec{
			Name:        "Companion Soul Bond",
			Description: "Deep spiritual connection with dream companions.",
			Icon:        "💫",
			Kind:        models.EffectKindBuff,
			Rarity:      models.RarityLegendary,
			DurationMs:  48 * hourMs,
			Magnitudes:  map[string]float64{"companionXpBonus": 100, "bondStrength": 100, "loveMultiplier": 2.0},
		}))
	case scores.CompanionBond >= 70:
		bundle.EffectSpecs = append(bundle.EffectSpecs, withSource(models.EffectSpec{
			Name:        "Deep Companion Connection",
			Description: "Strong emotional bond with dream companions.",
			Icon:        "💖",
			Kind:        models.EffectKindBuff,
			Rarity:      models.RarityEpic,
			DurationMs:  24 * hourMs,
			Magnitudes:  map[string]float64{"companionXpBonus": 50, "bondStrength": 50, "loveMultiplier": 1.5},
		}))
	}

	if scores.Emotion >= 90 {
		bundle.EffectSpecs = append(bundle.EffectSpecs, withSource(models.EffectSpec{
			Name:        "Emotion Mastery",
			Description: "Perfect emotional control and intensity management.",
			Icon:        "🎭",
			Kind:        models.EffectKindBuff,
			Rarity:      models.RarityEpic,
			DurationMs:  18 * hourMs,
			Magnitudes:  map[string]float64{"emotionBonus": 40, "emotionalControl": 100, "intensityBonus": 50},
		}))
	}

	if scores.Imprint >= 85 {
		bundle.DreamTokens = scores.Imprint / 25
	}

	return bundle
}

func withSource(spec models.EffectSpec) models.EffectSpec {
	spec.Source = rewardSource
	return spec
}
