package models

// InteractionLevel classifies how intensely a companion featured in a
// session's text, from incidental mention to transcendent devotion.
type InteractionLevel string

const (
	InteractionNone         InteractionLevel = "none"
	InteractionCasual       InteractionLevel = "casual"
	InteractionIntimate     InteractionLevel = "intimate"
	InteractionPassionate   InteractionLevel = "passionate"
	InteractionTranscendent InteractionLevel = "transcendent"
)

// interactionRank orders levels for comparisons. Declaration order matters:
// a later level only wins classification on a strictly greater keyword count.
var interactionRank = map[InteractionLevel]int{
	InteractionNone:         0,
	InteractionCasual:       1,
	InteractionIntimate:     2,
	InteractionPassionate:   3,
	InteractionTranscendent: 4,
}

// AtLeast reports whether l is at or above the given level.
func (l InteractionLevel) AtLeast(other InteractionLevel) bool {
	return interactionRank[l] >= interactionRank[other]
}

// CompanionDetection is the result of scanning free text for one companion.
type CompanionDetection struct {
	Name             string           `json:"name"`
	Confidence       int              `json:"confidence"`
	Mentions         int              `json:"mentions"`
	InteractionLevel InteractionLevel `json:"interaction_level"`
	BondStrength     int              `json:"bond_strength"`
	XPGained         int              `json:"xp_gained"`
	AffinityBonus    int              `json:"affinity_bonus"`
	Keywords         []string         `json:"keywords"`
	ContextSnippets  []string         `json:"context_snippets"`
}

// CompanionBond is the persisted relationship record for one companion.
type CompanionBond struct {
	Name         string `json:"name"`
	BondStrength int    `json:"bond_strength"`
	TotalXP      int    `json:"total_xp"`
	Encounters   int    `json:"encounters"`
	LastSeenAt   int64  `json:"last_seen_at"`
}

// BondMeter is the display view of a companion bond.
type BondMeter struct {
	Name              string  `json:"name"`
	Current           int     `json:"current"`
	Level             int     `json:"level"`
	NextLevelProgress float64 `json:"next_level_progress"`
}
