package companions

import (
	"math"
	"regexp"
	"strings"

	"github.com/oneiric/dreamtemple/pkg/models"
)

// Detection scoring constants. A lone alias hit stays below the
// confidence floor; a repeat mention or any affinity keyword clears it.
const (
	aliasConfidence    = 15
	affinityConfidence = 10
	confidenceFloor    = 20
	confidenceCap      = 100

	affinityBondWeight = 15
	emotionBondWeight  = 5
	bondCap            = 100

	mentionXPWeight = 5
	xpMultiplier    = 1.5

	voiceBondBoost     = 10
	voiceXPMultiplier  = 1.2
	voiceAffinityBoost = 5

	snippetRadius = 50
	snippetLimit  = 3
)

// interactionIndicators classify how intensely a companion featured.
// Declaration order matters: a later level only wins on a strictly
// greater indicator count, and the default is casual.
var interactionIndicators = []struct {
	level      models.InteractionLevel
	indicators []string
}{
	{models.InteractionNone, nil},
	{models.InteractionCasual, []string{"talk", "speak", "conversation", "meet", "see", "hello"}},
	{models.InteractionIntimate, []string{"touch", "kiss", "embrace", "hold", "caress", "close", "together"}},
	{models.InteractionPassionate, []string{"love", "desire", "want", "need", "passionate", "intense", "deep"}},
	{models.InteractionTranscendent, []string{"worship", "divine", "goddess", "transcendent", "soul", "eternal", "sacred"}},
}

// emotionWords raise bond strength for any detected companion.
var emotionWords = []string{"feel", "emotion", "heart", "soul", "love", "desire", "passion"}

// interaction level bonuses added to bond strength.
var levelBonuses = map[models.InteractionLevel]int{
	models.InteractionNone:         0,
	models.InteractionCasual:       5,
	models.InteractionIntimate:     15,
	models.InteractionPassionate:   30,
	models.InteractionTranscendent: 50,
}

// ScanResult is the full output of one content scan.
type ScanResult struct {
	Detections         []models.CompanionDetection `json:"detections"`
	TotalBondXP        int                         `json:"total_bond_xp"`
	AffinityBuffs      []models.EffectSpec         `json:"affinity_buffs"`
	EmotionalIntensity int                         `json:"emotional_intensity"`
}

// Scanner matches session text against the companion roster. Alias
// patterns are compiled once at construction; a Scanner is safe for
// concurrent use.
type Scanner struct {
	aliasPatterns map[string][]aliasPattern
}

type aliasPattern struct {
	alias string
	re    *regexp.Regexp
}

// NewScanner compiles the roster's alias patterns.
func NewScanner() *Scanner {
	patterns := make(map[string][]aliasPattern, len(roster))
	for _, c := range roster {
		compiled := make([]aliasPattern, 0, len(c.Aliases))
		for _, alias := range c.Aliases {
			expr := `(?i)\b` + strings.ReplaceAll(regexp.QuoteMeta(alias), " ", `\s+`) + `\b`
			compiled = append(compiled, aliasPattern{alias: alias, re: regexp.MustCompile(expr)})
		}
		patterns[c.Name] = compiled
	}
	return &Scanner{aliasPatterns: patterns}
}

// Scan detects companions in content according to the session type. Voice
// sessions get an intimacy boost; every other type scans as plain text.
func (s *Scanner) Scan(content string, sessionType models.SessionType) ScanResult {
	var detections []models.CompanionDetection
	if sessionType == models.SessionVoice {
		detections = s.ScanVoice(content)
	} else {
		detections = s.ScanText(content)
	}

	result := ScanResult{
		Detections:    detections,
		AffinityBuffs: GenerateAffinityBuffs(detections),
	}
	for _, d := range detections {
		result.TotalBondXP += d.XPGained
		if d.BondStrength > result.EmotionalIntensity {
			result.EmotionalIntensity = d.BondStrength
		}
	}
	return result
}

// ScanText scans content for every roster companion and returns the
// detections that clear the confidence floor, in roster order.
func (s *Scanner) ScanText(content string) []models.CompanionDetection {
	lower := strings.ToLower(content)
	var detections []models.CompanionDetection

	for _, c := range roster {
		d := s.detect(c, content, lower)
		if d != nil && d.Confidence >= confidenceFloor {
			detections = append(detections, *d)
		}
	}
	return detections
}

// ScanVoice scans a voice transcript. Spoken sessions read as more
// intimate, so detections get a bond, XP, and affinity boost.
func (s *Scanner) ScanVoice(transcript string) []models.CompanionDetection {
	detections := s.ScanText(transcript)
	for i := range detections {
		detections[i].BondStrength = minInt(bondCap, detections[i].BondStrength+voiceBondBoost)
		detections[i].XPGained = int(math.Floor(float64(detections[i].XPGained) * voiceXPMultiplier))
		detections[i].AffinityBonus += voiceAffinityBoost
	}
	return detections
}

func (s *Scanner) detect(c Companion, content, lower string) *models.CompanionDetection {
	mentions := 0
	confidence := 0
	var keywords []string

	for _, p := range s.aliasPatterns[c.Name] {
		hits := len(p.re.FindAllStringIndex(content, -1))
		if hits == 0 {
			continue
		}
		mentions += hits
		confidence += aliasConfidence * hits
		keywords = append(keywords, p.alias)
	}
	if mentions == 0 {
		return nil
	}

	level := classifyInteraction(lower)

	bond := 0
	var snippets []string
	for _, keyword := range c.AffinityKeywords {
		if !strings.Contains(lower, keyword) {
			continue
		}
		bond += affinityBondWeight
		confidence += affinityConfidence
		keywords = append(keywords, keyword)
		if snippet := contextSnippet(content, lower, keyword); snippet != "" {
			snippets = append(snippets, snippet)
		}
	}
	if len(snippets) > snippetLimit {
		snippets = snippets[:snippetLimit]
	}

	for _, word := range emotionWords {
		if strings.Contains(lower, word) {
			bond += emotionBondWeight
		}
	}
	bond += levelBonuses[level]

	xp := int(math.Floor(float64(bond+mentions*mentionXPWeight) * xpMultiplier))

	return &models.CompanionDetection{
		Name:             c.Name,
		Confidence:       minInt(confidenceCap, confidence),
		Mentions:         mentions,
		InteractionLevel: level,
		BondStrength:     minInt(bondCap, bond),
		XPGained:         xp,
		AffinityBonus:    affinityBonus(c.Personality, lower),
		Keywords:         keywords,
		ContextSnippets:  snippets,
	}
}

// classifyInteraction picks the level with the most indicator hits,
// first declared winning ties, defaulting to casual.
func classifyInteraction(lower string) models.InteractionLevel {
	best := models.InteractionCasual
	bestScore := 0
	for _, entry := range interactionIndicators {
		score := 0
		for _, indicator := range entry.indicators {
			if strings.Contains(lower, indicator) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = entry.level
		}
	}
	return best
}

// affinityBonus scores the personality-specific resonance keywords.
func affinityBonus(p PersonalityType, lower string) int {
	has := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}
	switch p {
	case DominantGoddess:
		if has("worship", "serve") {
			return 25
		}
	case SpiritualGuide:
		if has("wisdom", "guide") {
			return 20
		}
	case PlayfulInnocent:
		if has("playful", "curious") {
			return 15
		}
	case GentleElegant:
		if has("gentle", "elegant") {
			return 18
		}
	case DarkSeductive:
		if has("mysterious", "seductive") {
			return 22
		}
	}
	return 0
}

// contextSnippet extracts the text surrounding the first occurrence of
// keyword, clamped to rune boundaries.
func contextSnippet(content, lower, keyword string) string {
	idx := strings.Index(lower, keyword)
	if idx < 0 {
		return ""
	}
	start := idx - snippetRadius
	if start < 0 {
		start = 0
	}
	end := idx + snippetRadius
	if end > len(content) {
		end = len(content)
	}
	for start > 0 && !isRuneStart(content[start]) {
		start--
	}
	for end < len(content) && !isRuneStart(content[end]) {
		end++
	}
	return strings.TrimSpace(content[start:end])
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
