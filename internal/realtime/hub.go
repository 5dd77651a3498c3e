// Package realtime fans record events out to websocket subscribers.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	EventRecordSubmitted = "record.submitted"
	EventRecordDeleted   = "record.deleted"

	// ChannelRecords receives every event.
	ChannelRecords = "records"
)

var ErrHubClosed = errors.New("realtime hub is not running")

// UserChannel is the channel for events about one user's records.
func UserChannel(userID string) string {
	return "user:" + userID
}

type Event struct {
	Type      string         `json:"type"`
	Channel   string         `json:"channel"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Hub tracks subscribers per channel. Run owns delivery; Publish and the
// client pumps only talk to it through channels.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	mu         sync.RWMutex
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		broadcast:  make(chan Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes registrations and broadcasts until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		h.mu.Lock()
		for channel, clients := range h.clients {
			for c := range clients {
				close(c.send)
			}
			delete(h.clients, channel)
		}
		h.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.clients[c.channel] == nil {
				h.clients[c.channel] = make(map[*Client]struct{})
			}
			h.clients[c.channel][c] = struct{}{}
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			h.remove(c)
			h.mu.Unlock()

		case e := <-h.broadcast:
			msg, err := json.Marshal(e)
			if err != nil {
				h.logger.Error("failed to marshal event", zap.String("type", e.Type), zap.Error(err))
				continue
			}
			h.mu.Lock()
			for c := range h.clients[e.Channel] {
				select {
				case c.send <- msg:
				default:
					h.logger.Warn("dropping slow websocket client", zap.String("channel", c.channel))
					h.remove(c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove must be called with mu held.
func (h *Hub) remove(c *Client) {
	clients, ok := h.clients[c.channel]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.clients, c.channel)
	}
}

// Publish queues an event for channel.
func (h *Hub) Publish(channel, eventType string, payload map[string]any) error {
	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}

	e := Event{Type: eventType, Channel: channel, Payload: payload, Timestamp: time.Now()}
	select {
	case h.broadcast <- e:
		return nil
	case <-h.done:
		return ErrHubClosed
	}
}

// PublishRecordEvent sends an event to the records channel and, when userID
// is set, to that user's channel.
func (h *Hub) PublishRecordEvent(userID, eventType string, payload map[string]any) error {
	if err := h.Publish(ChannelRecords, eventType, payload); err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	if userID == "" {
		return nil
	}
	if err := h.Publish(UserChannel(userID), eventType, payload); err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	return nil
}

// ClientCount reports the subscribers of channel.
func (h *Hub) ClientCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[channel])
}

// Event payloads

func SubmittedPayload(rowID, itemName, sheetName, sheetURL string) map[string]any {
	return map[string]any{
		"rowId":     rowID,
		"itemName":  itemName,
		"sheetName": sheetName,
		"sheetUrl":  sheetURL,
	}
}

func DeletedPayload(rowID string) map[string]any {
	return map[string]any{
		"rowId": rowID,
	}
}
