package session

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/suite"

	"github.com/oneiric/dreamtemple/internal/companions"
	"github.com/oneiric/dreamtemple/internal/ledger"
	"github.com/oneiric/dreamtemple/internal/rewards"
	"github.com/oneiric/dreamtemple/internal/scoring"
	"github.com/oneiric/dreamtemple/pkg/models"
)

type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Load(key string, out any) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (m *memStore) Save(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

type memSink struct {
	sessions []*models.SimulationSession
}

func (m *memSink) CreateSession(_ context.Context, sess *models.SimulationSession) error {
	m.sessions = append(m.sessions, sess)
	return nil
}

type EngineSuite struct {
	suite.Suite
	engine  *Engine
	ledger  *ledger.Ledger
	tracker *rewards.Tracker
	sink    *memSink
	now     int64
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	store := newMemStore()

	var err error
	s.ledger, err = ledger.New(store)
	s.Require().NoError(err)
	registry, err := companions.NewRegistry(store)
	s.Require().NoError(err)
	s.tracker, err = rewards.NewTracker(store)
	s.Require().NoError(err)

	s.sink = &memSink{}
	s.engine = NewEngine(
		scoring.NewEngine(nil),
		companions.NewScanner(),
		registry,
		s.tracker,
		s.ledger,
		s.sink,
	)
	s.now = time.Date(2026, time.August, 1, 12, 0, 0, 0, time.Local).UnixMilli()
	s.engine.now = func() int64 { return s.now }
}

func (s *EngineSuite) TestComplete_FullPipeline() {
	result, err := s.engine.Complete(context.Background(), Input{
		Content:    "I worship Kenna, my goddess. I kneel before her divine beauty and feel intense waves of bliss wash over my body.",
		Type:       models.SessionText,
		DurationMs: 15 * 60 * 1000,
	})
	s.Require().NoError(err)

	s.Require().Len(result.Detections, 1)
	s.Equal("kenna", result.Detections[0].Name)
	s.Require().Len(result.Bonds, 1)
	s.Equal("kenna", result.Bonds[0].Name)

	s.Positive(result.XPEarned)
	s.NotEmpty(result.BuffsAdmitted)

	// Affinity buff must be live in the ledger.
	active := s.ledger.Active(s.now)
	s.NotEmpty(active)
	names := make([]string, 0, len(active))
	for _, e := range active {
		names = append(names, e.Name)
	}
	s.Contains(names, "Kenna's Goddess Bond")

	// First session unlocks the starter achievement.
	ids := make([]string, 0, len(result.Achievements))
	for _, a := range result.Achievements {
		ids = append(ids, a.ID)
	}
	s.Contains(ids, "first_steps")

	stats := s.tracker.Stats()
	s.Equal(1, stats.TotalSessions)
	s.Equal(result.Detections[0].BondStrength, stats.CompanionBonds["kenna"])

	s.Require().Len(s.sink.sessions, 1)
	persisted := s.sink.sessions[0]
	s.Equal(result.Session.ID, persisted.ID)
	s.Equal([]string{"kenna"}, persisted.CompanionsDetected)
	s.Equal(result.XPEarned, persisted.XPEarned)
	s.Equal(s.now-15*60*1000, persisted.StartedAt)
}

func (s *EngineSuite) TestComplete_EmptyContent() {
	result, err := s.engine.Complete(context.Background(), Input{Content: "", Type: models.SessionText})
	s.Require().NoError(err)

	s.Empty(result.Detections)
	s.Equal(scoring.TierNone, result.Tier)
	s.Zero(result.Session.Scores.Imprint)
	s.Len(s.sink.sessions, 1)
}

func (s *EngineSuite) TestComplete_DefaultsToTextType() {
	result, err := s.engine.Complete(context.Background(), Input{Content: "a quiet evening"})
	s.Require().NoError(err)
	s.Equal(models.SessionText, result.Session.Type)
}

func (s *EngineSuite) TestComplete_RejectsUnknownType() {
	_, err := s.engine.Complete(context.Background(), Input{Content: "x", Type: "hologram"})
	s.Error(err)
	s.Empty(s.sink.sessions)
}

func (s *EngineSuite) TestComplete_RejectsNegativeDuration() {
	_, err := s.engine.Complete(context.Background(), Input{Content: "x", DurationMs: -5})
	s.Error(err)
}

func (s *EngineSuite) TestComplete_AchievementBuffAdmitted() {
	content := "I worship Kenna, my goddess. I kneel before her divine beauty and feel intense waves of bliss wash over my body."
	for day := 1; day <= 10; day++ {
		s.now = time.Date(2026, time.August, day, 12, 0, 0, 0, time.Local).UnixMilli()
		result, err := s.engine.Complete(context.Background(), Input{Content: content})
		s.Require().NoError(err)

		if day == 10 {
			ids := make([]string, 0, len(result.Achievements))
			for _, a := range result.Achievements {
				ids = append(ids, a.ID)
			}
			s.Contains(ids, "dedicated_dreamer")
			s.Contains(result.BuffsAdmitted, "Dedication Boost")

			// Streak ran unbroken across all ten days.
			s.Equal(10, s.tracker.Stats().StreakCurrent)
		}
	}
}

func (s *EngineSuite) TestComplete_RespectsStreakMultiplier() {
	content := "I feel intense waves of euphoria and bliss wash over my body"

	first, err := s.engine.Complete(context.Background(), Input{Content: content})
	s.Require().NoError(err)

	s.now = time.Date(2026, time.August, 2, 12, 0, 0, 0, time.Local).UnixMilli()
	second, err := s.engine.Complete(context.Background(), Input{Content: content})
	s.Require().NoError(err)

	// Same content on a longer streak earns strictly more XP.
	s.Greater(second.XPEarned, first.XPEarned)
}
