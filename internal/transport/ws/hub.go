package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Counsellor feed message types
const (
	MsgEscalationAlert   MessageType = "escalation_alert"
	MsgAlertAcknowledged MessageType = "alert_acknowledged"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans alert events out to every connected counsellor
type Hub struct {
	// counsellorID -> open connections (one per browser tab)
	conns map[string]map[*Connection]struct{}

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *Message
	done       chan struct{}
	closeOnce  sync.Once
}

// Connection represents a counsellor WebSocket connection
type Connection struct {
	CounsellorID string
	Send         chan []byte
	Hub          *Hub
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *Message, 256),
		done:       make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.CounsellorID] == nil {
				h.conns[conn.CounsellorID] = make(map[*Connection]struct{})
			}
			h.conns[conn.CounsellorID][conn] = struct{}{}
			h.mu.Unlock()
			log.Printf("[WS] counsellor %s connected", conn.CounsellorID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.conns[conn.CounsellorID]; ok {
				if _, ok := set[conn]; ok {
					delete(set, conn)
					close(conn.Send)
					if len(set) == 0 {
						delete(h.conns, conn.CounsellorID)
					}
					log.Printf("[WS] counsellor %s disconnected", conn.CounsellorID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("[WS] ERROR: failed to encode %s: %v", msg.Type, err)
				continue
			}
			h.mu.RLock()
			for _, set := range h.conns {
				for conn := range set {
					select {
					case conn.Send <- data:
					default:
						// Drop message if buffer full
					}
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for id, set := range h.conns {
				for conn := range set {
					close(conn.Send)
				}
				delete(h.conns, id)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Close stops the hub and closes every counsellor connection
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// ConnectionCount returns the number of open counsellor connections
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, set := range h.conns {
		n += len(set)
	}
	return n
}

// BroadcastToCounsellors sends an event to every connected counsellor (implements service.Broadcaster)
func (h *Hub) BroadcastToCounsellors(msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[WS] ERROR: failed to encode %s payload: %v", msgType, err)
		return
	}
	msg := &Message{Type: MessageType(msgType), Payload: data}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		log.Printf("[WS] WARN: broadcast queue full, dropping %s", msgType)
	}
}
