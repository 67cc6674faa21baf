package handler

import (
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"gamevault/backend/internal/hub"
)

const (
	clientBuffer      = 16
	keepAliveInterval = 25 * time.Second
)

type EventsHandler struct {
	hub       *hub.Hub
	keepAlive time.Duration
	upgrader  websocket.Upgrader
}

// NewEventsHandler serves hub events. WebSocket upgrades are accepted from
// the given origins, or from any origin when the list is empty.
func NewEventsHandler(h *hub.Hub, origins []string) *EventsHandler {
	return &EventsHandler{
		hub:       h,
		keepAlive: keepAliveInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(origins) == 0 || origin == "" || slices.Contains(origins, origin)
			},
		},
	}
}

func (h *EventsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/events", h.Stream)
	rg.GET("/events/ws", h.Socket)
}

func requestedTopics(c *gin.Context) []string {
	raw := c.Query("topics")
	if raw == "" {
		return hub.Topics
	}
	var topics []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		for _, known := range hub.Topics {
			if t == known {
				topics = append(topics, t)
			}
		}
	}
	return topics
}

// Stream godoc
// @Summary      Library event stream
// @Description  Server-sent events for rating updates and library syncs.
// @Tags         events
// @Produce      text/event-stream
// @Param        topics query string false "Comma-separated topics (rating.updated, library.synced)"
// @Success      200 {string} string "event stream"
// @Failure      400 {object} ErrorResponse
// @Router       /events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	topics := requestedTopics(c)
	if len(topics) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown topics"})
		return
	}

	client := make(hub.Client, clientBuffer)
	h.hub.Subscribe(client, topics...)
	defer h.hub.Unsubscribe(client)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	c.SSEvent("ready", strings.Join(topics, ","))
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(msg))
			return true
		case <-ticker.C:
			c.SSEvent("ping", "")
			return true
		}
	})
}

// Socket godoc
// @Summary      Library event socket
// @Description  WebSocket variant of the event stream. Each text frame is one JSON event.
// @Tags         events
// @Param        topics query string false "Comma-separated topics (rating.updated, library.synced)"
// @Success      101 {string} string "switching protocols"
// @Failure      400 {object} ErrorResponse
// @Router       /events/ws [get]
func (h *EventsHandler) Socket(c *gin.Context) {
	topics := requestedTopics(c)
	if len(topics) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown topics"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer func() { _ = conn.Close() }()

	client := make(hub.Client, clientBuffer)
	h.hub.Subscribe(client, topics...)
	defer h.hub.Unsubscribe(client)

	// inbound frames are discarded; a read error means the peer is gone
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(hub.Event{Type: "ready", Payload: topics}); err != nil {
		return
	}

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case msg, ok := <-client:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}
