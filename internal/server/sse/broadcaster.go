// Package sse provides Server-Sent Events broadcasting for temple clients.
package sse

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// WriteTimeout bounds a single client write so one stale connection
// cannot stall a broadcast.
const WriteTimeout = 2 * time.Second

// Event is a typed broadcast payload.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Client is one connected SSE stream.
type Client struct {
	ID      string
	Writer  http.ResponseWriter
	Flusher http.Flusher
	Done    chan struct{}
}

// Broadcaster fans events out to all connected SSE clients.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[string]*Client
	nextID  int
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{clients: make(map[string]*Client)}
}

// AddClient registers a response writer as an SSE stream.
func (b *Broadcaster) AddClient(w http.ResponseWriter) (*Client, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	b.mu.Lock()
	b.nextID++
	client := &Client{
		ID:      fmt.Sprintf("client-%d", b.nextID),
		Writer:  w,
		Flusher: flusher,
		Done:    make(chan struct{}),
	}
	b.clients[client.ID] = client
	total := len(b.clients)
	b.mu.Unlock()

	log.Debug().Str("clientId", client.ID).Int("totalClients", total).Msg("SSE client connected")
	return client, nil
}

// RemoveClient drops a client and closes its done channel.
func (b *Broadcaster) RemoveClient(client *Client) {
	b.mu.Lock()
	if _, ok := b.clients[client.ID]; ok {
		delete(b.clients, client.ID)
		close(client.Done)
	}
	total := len(b.clients)
	b.mu.Unlock()

	log.Debug().Str("clientId", client.ID).Int("totalClients", total).Msg("SSE client disconnected")
}

// ClientCount returns the number of connected clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Broadcast sends an event to every connected client. Writes run
// concurrently with a per-client timeout; clients that fail or time out
// are removed.
func (b *Broadcaster) Broadcast(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("event", event.Type).Msg("Failed to marshal SSE event")
		return
	}
	message := fmt.Sprintf("data: %s\n\n", payload)

	b.mu.RLock()
	clients := make([]*Client, 0, len(b.clients))
	for _, c := range b.clients {
		clients = append(clients, c)
	}
	b.mu.RUnlock()

	if len(clients) == 0 {
		return
	}

	dead := make(chan *Client, len(clients))
	var wg sync.WaitGroup
	for _, client := range clients {
		select {
		case <-client.Done:
			continue
		default:
		}
		wg.Add(1)
		go func(c *Client) {
			defer wg.Done()
			b.writeToClient(c, message, dead)
		}(client)
	}
	wg.Wait()
	close(dead)

	for client := range dead {
		b.RemoveClient(client)
	}
}

func (b *Broadcaster) writeToClient(client *Client, message string, dead chan<- *Client) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := client.Writer.Write([]byte(message)); err != nil {
			log.Debug().Str("clientId", client.ID).Err(err).Msg("SSE write failed, removing client")
			dead <- client
			return
		}
		client.Flusher.Flush()
	}()

	select {
	case <-done:
	case <-time.After(WriteTimeout):
		log.Warn().Str("clientId", client.ID).Dur("timeout", WriteTimeout).Msg("SSE write timed out, removing client")
		dead <- client
	case <-client.Done:
	}
}

// HandleSSE upgrades the request to an event stream and blocks until the
// client disconnects.
func (b *Broadcaster) HandleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	client, err := b.AddClient(w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer b.RemoveClient(client)

	fmt.Fprintf(w, "data: {\"type\":\"connected\",\"clientId\":\"%s\"}\n\n", client.ID)
	client.Flusher.Flush()

	<-r.Context().Done()
}
