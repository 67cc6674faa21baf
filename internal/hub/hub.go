package hub

import (
	"log/slog"
	"sync"

	"github.com/goccy/go-json"
)

// Event types published on the library stream.
const (
	TopicRatingUpdated = "rating.updated"
	TopicLibrarySynced = "library.synced"
)

// Topics lists every topic a client may subscribe to.
var Topics = []string{TopicRatingUpdated, TopicLibrarySynced}

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Client is the outbound queue of one SSE connection.
type Client chan []byte

// Hub fans events out to the clients subscribed to their topic.
type Hub struct {
	topics map[string]map[Client]struct{}
	closed bool
	mu     sync.RWMutex
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		topics: make(map[string]map[Client]struct{}),
		logger: logger,
	}
}

// Subscribe registers client on each topic. On a closed hub the client is
// closed right away.
func (h *Hub) Subscribe(client Client, topics ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(client)
		return
	}

	for _, topic := range topics {
		if _, ok := h.topics[topic]; !ok {
			h.topics[topic] = make(map[Client]struct{})
		}
		h.topics[topic][client] = struct{}{}
	}
}

// Unsubscribe removes client from every topic and closes it.
func (h *Hub) Unsubscribe(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	found := false
	for topic, clients := range h.topics {
		if _, ok := clients[client]; !ok {
			continue
		}
		found = true
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.topics, topic)
		}
	}
	if found {
		close(client)
	}
}

// Close closes every subscribed client so their streams end, and refuses
// later subscriptions.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	seen := make(map[Client]struct{})
	for _, clients := range h.topics {
		for client := range clients {
			if _, ok := seen[client]; ok {
				continue
			}
			seen[client] = struct{}{}
			close(client)
		}
	}
	h.topics = make(map[string]map[Client]struct{})
	h.logger.Info("hub_closed", "clients", len(seen))
}

// Publish sends event to the subscribers of event.Type. Slow clients whose
// queue is full miss the event.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.topics[event.Type]
	if !ok {
		return
	}
	message, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("hub_event_encode_failed", "type", event.Type, "err", err)
		return
	}
	for client := range clients {
		select {
		case client <- message:
		default:
			h.logger.Warn("hub_client_dropped_event", "type", event.Type)
		}
	}
}

// Subscribers returns the number of clients on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}
