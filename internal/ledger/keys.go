package ledger

import "strings"

// MagnitudeClass tells how a magnitude key combines during aggregation.
type MagnitudeClass int

const (
	// Additive keys fold with + over identity 0.
	Additive MagnitudeClass = iota
	// Multiplicative keys fold with * over identity 1.
	Multiplicative
)

// ClassifyEffectKey decides how a magnitude key aggregates. Keys containing
// the substring "Multiplier" (case-sensitive) are multiplicative; everything
// else is additive. This is a naming convention, not a registry: callers
// coin ad hoc keys like "tokenMultiplier" or "dreamClarity" and rely on the
// substring match to pick the right fold.
func ClassifyEffectKey(key string) MagnitudeClass {
	if strings.Contains(key, "Multiplier") {
		return Multiplicative
	}
	return Additive
}
