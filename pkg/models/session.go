package models

// SessionType identifies how a simulation session captured its content.
type SessionType string

const (
	SessionText    SessionType = "text"
	SessionImage   SessionType = "image"
	SessionDeck    SessionType = "deck"
	SessionVoice   SessionType = "voice"
	SessionPassive SessionType = "passive"
)

// ValidSessionType reports whether t is one of the known session types.
func ValidSessionType(t SessionType) bool {
	switch t {
	case SessionText, SessionImage, SessionDeck, SessionVoice, SessionPassive:
		return true
	}
	return false
}

// SessionScores holds the bounded [0,100] axis scores derived from a
// session's content plus the composite imprint score.
type SessionScores struct {
	Realism       int `json:"realism"`
	Emotion       int `json:"emotion"`
	Climax        int `json:"climax"`
	CompanionBond int `json:"companion_bond"`
	Imprint       int `json:"imprint"`
}

// ScoredSession pairs a session's input with its computed scores.
// Ephemeral - the scoring engine never persists it.
type ScoredSession struct {
	TextContent        string        `json:"text_content"`
	Type               SessionType   `json:"type"`
	CompanionsDetected []string      `json:"companions_detected"`
	Scores             SessionScores `json:"scores"`
}

// SimulationSession is a completed guided session with its rewards.
type SimulationSession struct {
	ID                 string        `json:"id"`
	Type               SessionType   `json:"type"`
	StartedAt          int64         `json:"started_at"`
	DurationMs         int64         `json:"duration_ms"`
	Scores             SessionScores `json:"scores"`
	XPEarned           int           `json:"xp_earned"`
	DreamTokens        int           `json:"dream_tokens"`
	BuffsAwarded       []string      `json:"buffs_awarded"`
	CompanionsDetected []string      `json:"companions_detected"`
	Tags               []string      `json:"tags"`
}

// RewardBundle is the output of the reward mapping step: the XP and
// currency to grant plus the status effects to admit into the ledger.
type RewardBundle struct {
	Tier        string       `json:"tier"`
	XPReward    int          `json:"xp_reward"`
	DreamTokens int          `json:"dream_tokens"`
	EffectSpecs []EffectSpec `json:"effect_specs"`
}
