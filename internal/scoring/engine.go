// Package scoring derives bounded [0,100] scores from free-text session
// content and maps score combinations to reward bundles.
package scoring

import (
	"math"
	"strings"
	"sync"

	"github.com/oneiric/dreamtemple/internal/config"
	"github.com/oneiric/dreamtemple/pkg/models"
)

// Engine is the rule-based content scorer. The coefficient table can be
// swapped at runtime, so all reads go through the mutex.
type Engine struct {
	mu      sync.RWMutex
	weights *config.Weights
}

// NewEngine creates a scoring engine with the given coefficient table,
// falling back to defaults when nil.
func NewEngine(weights *config.Weights) *Engine {
	if weights == nil {
		weights = config.DefaultWeights()
	}
	return &Engine{weights: weights}
}

// SetWeights replaces the coefficient table. A nil table restores the
// defaults. Sessions already being scored keep the table they started
// with.
func (e *Engine) SetWeights(weights *config.Weights) {
	if weights == nil {
		weights = config.DefaultWeights()
	}
	e.mu.Lock()
	e.weights = weights
	e.mu.Unlock()
}

func (e *Engine) currentWeights() *config.Weights {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.weights
}

// ScoreSession computes all axis scores plus the composite imprint score
// for a session's content. Empty content degrades to floor scores; it
// never fails.
func (e *Engine) ScoreSession(content string, sessionType models.SessionType, companionsDetected []string) models.ScoredSession {
	emotion, climax := e.emotionAndClimax(content)
	realism := e.realism(content, sessionType)
	bond := e.companionBond(content, companionsDetected)

	scores := models.SessionScores{
		Realism:       realism,
		Emotion:       emotion,
		Climax:        climax,
		CompanionBond: bond,
	}
	scores.Imprint = e.imprint(scores, content, sessionType, len(companionsDetected) > 0)

	return models.ScoredSession{
		TextContent:        content,
		Type:               sessionType,
		CompanionsDetected: companionsDetected,
		Scores:             scores,
	}
}

// emotionAndClimax tallies weighted keyword-category hits plus length,
// first-person, and sensory bonuses.
func (e *Engine) emotionAndClimax(content string) (emotion, climax int) {
	lower := strings.ToLower(content)

	for category, keywords := range emotionCategories {
		hits := countContained(lower, keywords)
		if hits == 0 {
			continue
		}
		emotion += hits * emotionWeight

		if category == "climax" {
			climax += hits * climaxPrimaryWeight
		}
		for _, intense := range highIntensityCategories {
			if category == intense {
				climax += hits * climaxSecondaryWeight
			}
		}
	}

	wordCount := len(strings.Fields(content))
	emotion += minInt(lengthBonusCap, wordCount/wordsPerLengthPoint)
	emotion += countContained(lower, firstPersonPhrases) * firstPersonWeight
	emotion += countContained(lower, sensoryWords) * sensoryWeight

	return clampScore(emotion), clampScore(climax)
}

// realism scores detail, body, environment, and temporal-sequencing
// keywords, scaled by the per-session-type multiplier.
func (e *Engine) realism(content string, sessionType models.SessionType) int {
	lower := strings.ToLower(content)

	score := float64(countContained(lower, detailKeywords) * detailWeight)
	score += float64(countContained(lower, bodyPartKeywords) * bodyPartWeight)
	score += float64(countContained(lower, environmentKeywords) * environmentWeight)
	score += float64(countContained(lower, temporalKeywords) * temporalWeight)

	score *= e.currentWeights().TypeTuningFor(string(sessionType)).RealismMultiplier

	wordCount := len(strings.Fields(content))
	if wordCount > 200 {
		score += lengthBonusAt200
	}
	if wordCount > 500 {
		score += lengthBonusAt500
	}

	return clampScore(int(math.Round(score)))
}

// companionBond tallies per-companion mention, proximity, and emotional
// connection signals, then averages across all detected companions.
func (e *Engine) companionBond(content string, companionsDetected []string) int {
	if len(companionsDetected) == 0 {
		return 0
	}
	lower := strings.ToLower(content)

	total := 0
	for _, companion := range companionsDetected {
		name := strings.ToLower(companion)
		score := strings.Count(lower, name) * mentionWeight

		for _, word := range proximityWords {
			if strings.Contains(lower, word+" "+name) || strings.Contains(lower, name+" "+word) {
				score += proximityWeight
			}
		}
		for _, word := range connectionWords {
			if strings.Contains(lower, word) && strings.Contains(lower, name) {
				score += connectionWeight
			}
		}
		total += score
	}

	return clampScore(total / len(companionsDetected))
}

// imprint combines the axis scores with the tunable coefficient table.
// Monotonic non-decreasing in every axis and bounded [0,100].
func (e *Engine) imprint(scores models.SessionScores, content string, sessionType models.SessionType, companionsHit bool) int {
	weights := e.currentWeights()
	w := weights.Imprint

	score := float64(scores.Realism)*w.Realism +
		float64(scores.Emotion)*w.Emotion +
		float64(scores.Climax)*w.Climax +
		float64(scores.CompanionBond)*w.CompanionBond

	score *= weights.TypeTuningFor(string(sessionType)).ImprintMultiplier

	if len(content) > 500 {
		score += w.LongTextBonus
	}
	if companionsHit {
		score += w.CompanionHit
	}

	return clampScore(int(math.Round(score)))
}

// XPReward derives the session XP from the imprint score, session type,
// streak multiplier, and duration. Monotonic non-decreasing in every axis
// score (via the imprint) and never negative.
func (e *Engine) XPReward(scores models.SessionScores, sessionType models.SessionType, durationMs int64, streakMultiplier float64) int {
	weights := e.currentWeights()
	base := math.Floor(float64(scores.Imprint) * weights.XP.ImprintFactor)
	total := base + float64(weights.TypeTuningFor(string(sessionType)).XPBonus)

	if streakMultiplier > 1 {
		total *= streakMultiplier
	}
	if durationMs > weights.XP.DurationMinMs {
		total *= weights.XP.DurationBonus
	}

	xp := int(math.Floor(total))
	if xp < 0 {
		return 0
	}
	return xp
}

// countContained counts how many keywords appear in text (each at most once).
func countContained(text string, keywords []string) int {
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			count++
		}
	}
	return count
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
