package store

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"gorm.io/gorm"

	"github.com/oneiric/dreamtemple/pkg/models"
)

// SessionStore provides session-record database operations.
type SessionStore struct {
	db *gorm.DB
}

// NewSessionStore creates a new session store.
func NewSessionStore(s *Store) *SessionStore {
	return &SessionStore{db: s.DB}
}

// SessionFilter narrows ListSessions results. Zero values mean "no filter".
type SessionFilter struct {
	Type       models.SessionType
	MinImprint int
	Limit      int
}

// CreateSession persists a completed session.
func (s *SessionStore) CreateSession(ctx context.Context, sess *models.SimulationSession) error {
	buffs, err := json.Marshal(sess.BuffsAwarded)
	if err != nil {
		return fmt.Errorf("encode buffs: %w", err)
	}
	companions, err := json.Marshal(sess.CompanionsDetected)
	if err != nil {
		return fmt.Errorf("encode companions: %w", err)
	}

	rec := SessionRecord{
		ID:             sess.ID,
		Type:           string(sess.Type),
		StartedAtEpoch: sess.StartedAt,
		DurationMs:     sess.DurationMs,
		RealismScore:   sess.Scores.Realism,
		EmotionScore:   sess.Scores.Emotion,
		ClimaxScore:    sess.Scores.Climax,
		BondScore:      sess.Scores.CompanionBond,
		ImprintScore:   sess.Scores.Imprint,
		XPEarned:       sess.XPEarned,
		DreamTokens:    sess.DreamTokens,
		Buffs:          string(buffs),
		Companions:     string(companions),
	}
	return s.db.WithContext(ctx).Create(&rec).Error
}

// ListSessions returns completed sessions, newest first.
func (s *SessionStore) ListSessions(ctx context.Context, filter SessionFilter) ([]*models.SimulationSession, error) {
	q := s.db.WithContext(ctx).Model(&SessionRecord{}).Order("started_at_epoch DESC")
	if filter.Type != "" {
		q = q.Where("type = ?", string(filter.Type))
	}
	if filter.MinImprint > 0 {
		q = q.Where("imprint_score >= ?", filter.MinImprint)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var recs []SessionRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}

	sessions := make([]*models.SimulationSession, 0, len(recs))
	for i := range recs {
		sess, err := toModelSession(&recs[i])
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

// CountSessionsToday returns the number of sessions started today.
func (s *SessionStore) CountSessionsToday(ctx context.Context) (int64, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int64
	err := s.db.WithContext(ctx).Model(&SessionRecord{}).
		Where("started_at_epoch >= ?", startOfDay.UnixMilli()).
		Count(&count).Error
	return count, err
}

func toModelSession(rec *SessionRecord) (*models.SimulationSession, error) {
	sess := &models.SimulationSession{
		ID:         rec.ID,
		Type:       models.SessionType(rec.Type),
		StartedAt:  rec.StartedAtEpoch,
		DurationMs: rec.DurationMs,
		Scores: models.SessionScores{
			Realism:       rec.RealismScore,
			Emotion:       rec.EmotionScore,
			Climax:        rec.ClimaxScore,
			CompanionBond: rec.BondScore,
			Imprint:       rec.ImprintScore,
		},
		XPEarned:    rec.XPEarned,
		DreamTokens: rec.DreamTokens,
	}
	if rec.Buffs != "" {
		if err := json.Unmarshal([]byte(rec.Buffs), &sess.BuffsAwarded); err != nil {
			return nil, fmt.Errorf("decode buffs for %s: %w", rec.ID, err)
		}
	}
	if rec.Companions != "" {
		if err := json.Unmarshal([]byte(rec.Companions), &sess.CompanionsDetected); err != nil {
			return nil, fmt.Errorf("decode companions for %s: %w", rec.ID, err)
		}
	}
	return sess, nil
}
