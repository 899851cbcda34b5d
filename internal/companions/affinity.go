package companions

import (
	"fmt"
	"strings"

	"github.com/oneiric/dreamtemple/pkg/models"
)

// BondTier grades the strength of a companion bond for buff purposes.
type BondTier string

const (
	TierCompanion BondTier = "companion"
	TierLover     BondTier = "lover"
	TierSoulmate  BondTier = "soulmate"
	TierGoddess   BondTier = "goddess"
)

const affinitySource = "Companion Scanner"

const affinityHourMs = int64(60 * 60 * 1000)

var tierIcons = map[BondTier]string{
	TierCompanion: "💝",
	TierLover:     "💖",
	TierSoulmate:  "💫",
	TierGoddess:   "👑",
}

// TierForBond grades a bond strength and returns the buff duration in
// hours for that tier.
func TierForBond(bondStrength int) (BondTier, int64) {
	switch {
	case bondStrength >= 90:
		return TierGoddess, 48
	case bondStrength >= 70:
		return TierSoulmate, 24
	case bondStrength >= 50:
		return TierLover, 12
	default:
		return TierCompanion, 6
	}
}

// GenerateAffinityBuffs maps detections to companion-flavored effect
// specs. Buff magnitudes follow the companion's personality; the tier
// scales the multiplier and the duration.
func GenerateAffinityBuffs(detections []models.CompanionDetection) []models.EffectSpec {
	var buffs []models.EffectSpec

	for _, d := range detections {
		c := ByName(d.Name)
		if c == nil {
			continue
		}

		tier, hours := TierForBond(d.BondStrength)
		multiplier := 1.5
		if tier == TierGoddess {
			multiplier = 2.0
		}

		magnitudes := make(map[string]float64, 3)
		switch c.Personality {
		case DominantGoddess:
			magnitudes["submissionBonus"] = float64(d.BondStrength)
			magnitudes["worshipMultiplier"] = multiplier
			magnitudes["devotionXP"] = float64(d.AffinityBonus)
		case SpiritualGuide:
			magnitudes["wisdomBonus"] = float64(d.BondStrength)
			magnitudes["enlightenmentMultiplier"] = multiplier
			magnitudes["spiritualXP"] = float64(d.AffinityBonus)
		case PlayfulInnocent:
			magnitudes["curiosityBonus"] = float64(d.BondStrength)
			magnitudes["adventureMultiplier"] = multiplier
			magnitudes["joyXP"] = float64(d.AffinityBonus)
		case GentleElegant:
			magnitudes["graceBonus"] = float64(d.BondStrength)
			magnitudes["beautyMultiplier"] = multiplier
			magnitudes["harmonyXP"] = float64(d.AffinityBonus)
		case DarkSeductive:
			magnitudes["mysteryBonus"] = float64(d.BondStrength)
			magnitudes["seductionMultiplier"] = multiplier
			magnitudes["passionXP"] = float64(d.AffinityBonus)
		}

		buffs = append(buffs, models.EffectSpec{
			Name:        fmt.Sprintf("%s's %s Bond", title(d.Name), title(string(tier))),
			Description: fmt.Sprintf("Enhanced connection with %s grants special abilities and XP bonuses.", d.Name),
			Icon:        tierIcons[tier],
			Kind:        models.EffectKindBuff,
			Rarity:      models.RarityEpic,
			DurationMs:  hours * affinityHourMs,
			Magnitudes:  magnitudes,
			Source:      affinitySource,
		})
	}
	return buffs
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
