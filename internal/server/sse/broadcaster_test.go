package sse

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type BroadcasterSuite struct {
	suite.Suite
	broadcaster *Broadcaster
}

func TestBroadcasterSuite(t *testing.T) {
	suite.Run(t, new(BroadcasterSuite))
}

func (s *BroadcasterSuite) SetupTest() {
	s.broadcaster = NewBroadcaster()
}

// mockResponseWriter implements http.ResponseWriter and http.Flusher.
type mockResponseWriter struct {
	mu     sync.Mutex
	header http.Header
	body   []byte
}

func newMockResponseWriter() *mockResponseWriter {
	return &mockResponseWriter{header: make(http.Header)}
}

func (m *mockResponseWriter) Header() http.Header { return m.header }

func (m *mockResponseWriter) Write(data []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.body = append(m.body, data...)
	return len(data), nil
}

func (m *mockResponseWriter) WriteHeader(int) {}

func (m *mockResponseWriter) Flush() {}

func (m *mockResponseWriter) GetBody() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.body)
}

func (s *BroadcasterSuite) TestAddClient() {
	w := newMockResponseWriter()

	client, err := s.broadcaster.AddClient(w)
	s.Require().NoError(err)
	s.NotEmpty(client.ID)
	s.NotNil(client.Done)
	s.Equal(1, s.broadcaster.ClientCount())
}

func (s *BroadcasterSuite) TestAddClient_UniqueIDs() {
	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		client, err := s.broadcaster.AddClient(newMockResponseWriter())
		s.Require().NoError(err)
		s.False(seen[client.ID])
		seen[client.ID] = true
	}
	s.Equal(5, s.broadcaster.ClientCount())
}

func (s *BroadcasterSuite) TestRemoveClient_ClosesDone() {
	client, err := s.broadcaster.AddClient(newMockResponseWriter())
	s.Require().NoError(err)

	s.broadcaster.RemoveClient(client)
	s.Equal(0, s.broadcaster.ClientCount())

	select {
	case <-client.Done:
	default:
		s.Fail("Done channel should be closed")
	}

	// A second removal must not panic or double-close.
	s.broadcaster.RemoveClient(client)
}

func (s *BroadcasterSuite) TestBroadcast_DeliversToAllClients() {
	writers := make([]*mockResponseWriter, 3)
	for i := range writers {
		writers[i] = newMockResponseWriter()
		_, err := s.broadcaster.AddClient(writers[i])
		s.Require().NoError(err)
	}

	s.broadcaster.Broadcast(Event{Type: "effects_expired", Data: []string{"Euphoric Peak"}})

	for i, w := range writers {
		body := w.GetBody()
		s.Contains(body, "data:", "client %d", i)
		s.Contains(body, "effects_expired", "client %d", i)
		s.Contains(body, "Euphoric Peak", "client %d", i)
	}
}

func (s *BroadcasterSuite) TestBroadcast_NoClients() {
	// Must be a no-op, not a panic.
	s.broadcaster.Broadcast(Event{Type: "noop"})
}

func (s *BroadcasterSuite) TestBroadcast_SkipsRemovedClients() {
	kept := newMockResponseWriter()
	_, err := s.broadcaster.AddClient(kept)
	s.Require().NoError(err)

	dropped := newMockResponseWriter()
	client, err := s.broadcaster.AddClient(dropped)
	s.Require().NoError(err)
	s.broadcaster.RemoveClient(client)

	s.broadcaster.Broadcast(Event{Type: "tick"})

	s.Contains(kept.GetBody(), "tick")
	s.Empty(dropped.GetBody())
}

func TestClient(t *testing.T) {
	w := newMockResponseWriter()
	client := &Client{ID: "test-client", Writer: w, Flusher: w, Done: make(chan struct{})}

	assert.Equal(t, "test-client", client.ID)
	close(client.Done)
	select {
	case <-client.Done:
	default:
		t.Error("Done channel should be closed")
	}
}
