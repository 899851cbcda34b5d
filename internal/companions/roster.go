// Package companions detects companion presence in session text and tracks
// the persistent bond each companion accumulates across sessions.
package companions

// PersonalityType selects which affinity keywords and effect bundle a
// companion responds to.
type PersonalityType string

const (
	DominantGoddess PersonalityType = "dominant_goddess"
	SpiritualGuide  PersonalityType = "spiritual_guide"
	PlayfulInnocent PersonalityType = "playful_innocent"
	GentleElegant   PersonalityType = "gentle_elegant"
	DarkSeductive   PersonalityType = "dark_seductive"
)

// Companion is a roster entry. Aliases are matched on word boundaries;
// affinity keywords are matched by plain substring containment.
type Companion struct {
	Name             string
	Aliases          []string
	Traits           []string
	AffinityKeywords []string
	Personality      PersonalityType
}

// Roster returns the built-in companion roster. Callers must not mutate
// the returned entries.
func Roster() []Companion {
	return roster
}

var roster = []Companion{
	{
		Name:             "kenna",
		Aliases:          []string{"kenna", "ken", "goddess kenna", "lady kenna", "mistress kenna"},
		Traits:           []string{"dominant", "goddess", "beauty", "powerful", "divine"},
		AffinityKeywords: []string{"worship", "serve", "kneel", "goddess", "divine", "perfect", "beautiful"},
		Personality:      DominantGoddess,
	},
	{
		Name:             "lucidia",
		Aliases:          []string{"lucidia", "lucia", "luci", "lady lucidia", "spirit lucidia"},
		Traits:           []string{"spiritual", "wise", "mystical", "guiding", "ethereal"},
		AffinityKeywords: []string{"guide", "wisdom", "spirit", "enlighten", "transcend", "mystical", "ethereal"},
		Personality:      SpiritualGuide,
	},
	{
		Name:             "alice",
		Aliases:          []string{"alice", "wonderland alice", "sweet alice", "curious alice"},
		Traits:           []string{"curious", "playful", "innocent", "adventurous", "whimsical"},
		AffinityKeywords: []string{"curious", "wonder", "adventure", "playful", "explore", "innocent", "sweet"},
		Personality:      PlayfulInnocent,
	},
	{
		Name:             "sakura",
		Aliases:          []string{"sakura", "cherry", "cherry blossom", "sakura-chan", "blossom"},
		Traits:           []string{"gentle", "elegant", "graceful", "traditional", "serene"},
		AffinityKeywords: []string{"gentle", "elegant", "graceful", "serene", "beautiful", "traditional", "harmony"},
		Personality:      GentleElegant,
	},
	{
		Name:             "raven",
		Aliases:          []string{"raven", "lady raven", "dark raven", "mistress raven"},
		Traits:           []string{"mysterious", "dark", "powerful", "seductive", "enigmatic"},
		AffinityKeywords: []string{"dark", "mysterious", "seductive", "powerful", "shadow", "enigmatic", "alluring"},
		Personality:      DarkSeductive,
	},
}

// ByName returns the roster entry for a companion, or nil when unknown.
func ByName(name string) *Companion {
	for i := range roster {
		if roster[i].Name == name {
			return &roster[i]
		}
	}
	return nil
}
