// Package socket pushes freshly saved documents to open preview tabs. A
// client subscribes to one document key over /ws; every successful PUT for
// that key is broadcast so the preview refreshes without polling. Clients
// never send document data upstream.
package socket

import (
	"encoding/json"

	"vitrina/pkg/logger"
)

type Update struct {
	Key     string          `json:"key"`
	Payload json.RawMessage `json:"payload"`
}

type Hub struct {
	Rooms      map[string]map[*Client]bool // document key -> subscribers
	Broadcast  chan Update
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		Rooms:      make(map[string]map[*Client]bool),
		Broadcast:  make(chan Update),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Publish hands a saved document to the hub for fan-out. Safe to call from
// any goroutine.
func (h *Hub) Publish(key string, payload json.RawMessage) {
	h.Broadcast <- Update{Key: key, Payload: payload}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			if h.Rooms[client.Key] == nil {
				h.Rooms[client.Key] = make(map[*Client]bool)
			}
			h.Rooms[client.Key][client] = true
			logger.Sugar.Debugf("Preview client subscribed to %s", client.Key)

		case client := <-h.Unregister:
			if _, ok := h.Rooms[client.Key][client]; ok {
				delete(h.Rooms[client.Key], client)
				close(client.Send)
				if len(h.Rooms[client.Key]) == 0 {
					delete(h.Rooms, client.Key)
				}
			}

		case update := <-h.Broadcast:
			payload, err := json.Marshal(update)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling preview update: %v", err)
				continue
			}
			for client := range h.Rooms[update.Key] {
				select {
				case client.Send <- payload:
				default:
					// Lagging client; drop it rather than block the hub.
					logger.Sugar.Warnf("Preview client for %s is not keeping up, dropping", update.Key)
					delete(h.Rooms[update.Key], client)
					close(client.Send)
				}
			}
		}
	}
}
