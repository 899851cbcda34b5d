package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm/logger"

	"github.com/oneiric/dreamtemple/pkg/models"
)

func testStore(t *testing.T) (*Store, func()) {
	t.Helper()

	st, err := NewStore(Config{
		Path:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel: logger.Silent,
	})
	require.NoError(t, err)

	return st, func() { _ = st.Close() }
}

func TestNewStore_MigratesAndPings(t *testing.T) {
	st, cleanup := testStore(t)
	defer cleanup()

	require.NoError(t, st.Ping())
	require.True(t, st.DB.Migrator().HasTable("state_documents"))
	require.True(t, st.DB.Migrator().HasTable("session_records"))
}

type StateStoreSuite struct {
	suite.Suite
	store   *Store
	state   *StateStore
	cleanup func()
}

func TestStateStoreSuite(t *testing.T) {
	suite.Run(t, new(StateStoreSuite))
}

func (s *StateStoreSuite) SetupTest() {
	s.store, s.cleanup = testStore(s.T())
	s.state = NewStateStore(s.store)
}

func (s *StateStoreSuite) TearDownTest() {
	s.cleanup()
}

func (s *StateStoreSuite) TestLoad_MissingKey() {
	var out map[string]int
	found, err := s.state.Load("absent", &out)
	s.Require().NoError(err)
	s.False(found)
	s.Nil(out)
}

func (s *StateStoreSuite) TestSaveAndLoad_RoundTrip() {
	in := models.LedgerState{
		Active: []models.StatusEffect{{
			ID:         "e-1",
			Name:       "Test Clarity",
			Kind:       models.EffectKindBuff,
			Rarity:     models.RarityRare,
			CreatedAt:  1000,
			ExpiresAt:  6000,
			Magnitudes: map[string]float64{"dreamClarity": 25},
		}},
	}
	s.Require().NoError(s.state.Save("status_ledger", &in))

	var out models.LedgerState
	found, err := s.state.Load("status_ledger", &out)
	s.Require().NoError(err)
	s.True(found)
	s.Equal(in.Active[0].ID, out.Active[0].ID)
	s.InDelta(25.0, out.Active[0].Magnitudes["dreamClarity"], 1e-9)
}

func (s *StateStoreSuite) TestSave_UpsertReplacesSnapshot() {
	s.Require().NoError(s.state.Save("k", map[string]int{"a": 1}))
	s.Require().NoError(s.state.Save("k", map[string]int{"b": 2}))

	var out map[string]int
	found, err := s.state.Load("k", &out)
	s.Require().NoError(err)
	s.True(found)
	s.Equal(map[string]int{"b": 2}, out)
}

type SessionStoreSuite struct {
	suite.Suite
	store    *Store
	sessions *SessionStore
	cleanup  func()
}

func TestSessionStoreSuite(t *testing.T) {
	suite.Run(t, new(SessionStoreSuite))
}

func (s *SessionStoreSuite) SetupTest() {
	s.store, s.cleanup = testStore(s.T())
	s.sessions = NewSessionStore(s.store)
}

func (s *SessionStoreSuite) TearDownTest() {
	s.cleanup()
}

func (s *SessionStoreSuite) create(id string, sessionType models.SessionType, imprint int, startedAt int64) {
	s.Require().NoError(s.sessions.CreateSession(context.Background(), &models.SimulationSession{
		ID:                 id,
		Type:               sessionType,
		StartedAt:          startedAt,
		DurationMs:         60000,
		Scores:             models.SessionScores{Imprint: imprint},
		XPEarned:           imprint * 2,
		BuffsAwarded:       []string{"Uncommon Lucid Spark"},
		CompanionsDetected: []string{"kenna"},
	}))
}

func (s *SessionStoreSuite) TestCreateAndList_NewestFirst() {
	s.create("s-1", models.SessionText, 50, 1000)
	s.create("s-2", models.SessionVoice, 80, 2000)

	sessions, err := s.sessions.ListSessions(context.Background(), SessionFilter{})
	s.Require().NoError(err)
	s.Require().Len(sessions, 2)
	s.Equal("s-2", sessions[0].ID)
	s.Equal("s-1", sessions[1].ID)
	s.Equal([]string{"kenna"}, sessions[0].CompanionsDetected)
	s.Equal([]string{"Uncommon Lucid Spark"}, sessions[0].BuffsAwarded)
}

func (s *SessionStoreSuite) TestList_FiltersByTypeAndImprint() {
	s.create("s-1", models.SessionText, 50, 1000)
	s.create("s-2", models.SessionVoice, 80, 2000)
	s.create("s-3", models.SessionVoice, 30, 3000)

	byType, err := s.sessions.ListSessions(context.Background(), SessionFilter{Type: models.SessionVoice})
	s.Require().NoError(err)
	s.Len(byType, 2)

	strong, err := s.sessions.ListSessions(context.Background(), SessionFilter{MinImprint: 60})
	s.Require().NoError(err)
	s.Require().Len(strong, 1)
	s.Equal("s-2", strong[0].ID)

	limited, err := s.sessions.ListSessions(context.Background(), SessionFilter{Limit: 1})
	s.Require().NoError(err)
	s.Require().Len(limited, 1)
	s.Equal("s-3", limited[0].ID)
}
