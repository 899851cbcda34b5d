// Package session runs the full post-session pipeline: scan companions,
// score the content, map rewards, admit status effects, and fold the
// results into persistent player progress.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/oneiric/dreamtemple/internal/companions"
	"github.com/oneiric/dreamtemple/internal/ledger"
	"github.com/oneiric/dreamtemple/internal/rewards"
	"github.com/oneiric/dreamtemple/internal/scoring"
	"github.com/oneiric/dreamtemple/pkg/models"
)

// SessionSink persists completed sessions.
type SessionSink interface {
	CreateSession(ctx context.Context, sess *models.SimulationSession) error
}

// Input describes a finished session to process.
type Input struct {
	Content    string             `json:"content"`
	Type       models.SessionType `json:"type"`
	StartedAt  int64              `json:"started_at"`
	DurationMs int64              `json:"duration_ms"`
}

// Result is the full outcome of one completed session.
type Result struct {
	Session       *models.SimulationSession   `json:"session"`
	Tier          string                      `json:"tier"`
	Detections    []models.CompanionDetection `json:"detections"`
	Bonds         []models.CompanionBond      `json:"bonds"`
	BuffsAdmitted []string                    `json:"buffs_admitted"`
	Achievements  []models.Achievement        `json:"achievements"`
	DreamTokens   int                         `json:"dream_tokens"`
	XPEarned      int                         `json:"xp_earned"`
}

// Engine orchestrates the session completion pipeline.
type Engine struct {
	scorer   *scoring.Engine
	scanner  *companions.Scanner
	registry *companions.Registry
	tracker  *rewards.Tracker
	ledger   *ledger.Ledger
	sink     SessionSink
	now      func() int64
}

// NewEngine wires the pipeline. The sink may be nil when persistence of
// session records is not wanted.
func NewEngine(
	scorer *scoring.Engine,
	scanner *companions.Scanner,
	registry *companions.Registry,
	tracker *rewards.Tracker,
	ldg *ledger.Ledger,
	sink SessionSink,
) *Engine {
	return &Engine{
		scorer:   scorer,
		scanner:  scanner,
		registry: registry,
		tracker:  tracker,
		ledger:   ldg,
		sink:     sink,
		now:      func() int64 { return time.Now().UnixMilli() },
	}
}

// Complete processes a finished session end to end and returns everything
// it earned. The input type defaults to text; unknown types are rejected.
func (e *Engine) Complete(ctx context.Context, input Input) (*Result, error) {
	if input.Type == "" {
		input.Type = models.SessionText
	}
	if !models.ValidSessionType(input.Type) {
		return nil, fmt.Errorf("complete session: unknown type %q", input.Type)
	}
	if input.DurationMs < 0 {
		return nil, fmt.Errorf("complete session: negative duration %dms", input.DurationMs)
	}

	now := e.now()
	startedAt := input.StartedAt
	if startedAt == 0 {
		startedAt = now - input.DurationMs
	}

	scan := e.scanner.Scan(input.Content, input.Type)
	names := make([]string, 0, len(scan.Detections))
	bondsByName := make(map[string]int, len(scan.Detections))
	for _, d := range scan.Detections {
		names = append(names, d.Name)
		bondsByName[d.Name] = d.BondStrength
	}

	scored := e.scorer.ScoreSession(input.Content, input.Type, names)
	streakMultiplier := e.tracker.StreakMultiplier(now)
	bundle := e.scorer.MapRewards(scored.Scores, input.Type, input.DurationMs, streakMultiplier)

	var buffNames []string
	admit := func(specs []models.EffectSpec) {
		for _, spec := range specs {
			if _, err := e.ledger.Admit(spec, now); err != nil {
				log.Warn().Err(err).Str("effect", spec.Name).Msg("Skipping effect admission")
				continue
			}
			buffNames = append(buffNames, spec.Name)
		}
	}
	admit(bundle.EffectSpecs)
	admit(scan.AffinityBuffs)

	bonds, err := e.registry.Record(scan.Detections, now)
	if err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}

	unlocked, err := e.tracker.ApplySession(rewards.SessionUpdate{
		ImprintScore:   scored.Scores.Imprint,
		XPGained:       bundle.XPReward,
		DreamTokens:    bundle.DreamTokens,
		DurationMs:     input.DurationMs,
		CompanionBonds: bondsByName,
	}, now)
	if err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}
	for _, a := range unlocked {
		if a.EffectSpec != nil {
			admit([]models.EffectSpec{*a.EffectSpec})
		}
	}

	sess := &models.SimulationSession{
		ID:                 uuid.NewString(),
		Type:               input.Type,
		StartedAt:          startedAt,
		DurationMs:         input.DurationMs,
		Scores:             scored.Scores,
		XPEarned:           bundle.XPReward,
		DreamTokens:        bundle.DreamTokens,
		BuffsAwarded:       buffNames,
		CompanionsDetected: names,
	}
	if e.sink != nil {
		if err := e.sink.CreateSession(ctx, sess); err != nil {
			return nil, fmt.Errorf("persist session: %w", err)
		}
	}

	log.Info().
		Str("session_id", sess.ID).
		Str("type", string(sess.Type)).
		Int("imprint", sess.Scores.Imprint).
		Str("tier", bundle.Tier).
		Int("xp", sess.XPEarned).
		Int("companions", len(names)).
		Int("achievements", len(unlocked)).
		Msg("Session completed")

	return &Result{
		Session:       sess,
		Tier:          bundle.Tier,
		Detections:    scan.Detections,
		Bonds:         bonds,
		BuffsAdmitted: buffNames,
		Achievements:  unlocked,
		DreamTokens:   bundle.DreamTokens,
		XPEarned:      bundle.XPReward,
	}, nil
}
