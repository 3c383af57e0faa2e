package services

import "sync"

// Event is one mutation notification pushed to subscribers.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Client is one subscriber's buffered event channel.
type Client struct {
	ch chan Event
}

// Chan exposes the receive side of the client's channel.
func (c *Client) Chan() <-chan Event {
	return c.ch
}

// EventHub broadcasts mutation events to subscribed clients, replacing the
// product's storage-polling timers. Broadcast never blocks: a slow client
// misses events rather than stalling the writer.
type EventHub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
}

// NewEventHub creates an empty hub.
func NewEventHub() *EventHub {
	return &EventHub{clients: map[*Client]struct{}{}}
}

// Subscribe registers a new client.
func (h *EventHub) Subscribe() *Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	client := &Client{ch: make(chan Event, 8)}
	h.clients[client] = struct{}{}
	return client
}

// Unsubscribe removes a client and closes its channel.
func (h *EventHub) Unsubscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.ch)
	}
}

// Publish delivers an event to every subscribed client.
func (h *EventHub) Publish(evt Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.ch <- evt:
		default:
		}
	}
}
