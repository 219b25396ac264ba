package broadcaster

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Digitaltwinshub2025/ALLEY-BLOOM/internal/placement"
)

// ============================================================
// WebSocket Transport
// ============================================================

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The web app and the broadcaster run on different ports; the relay
	// itself carries no credentials, so any origin may connect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// client is one websocket connection participating in the hub.
type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex // serializes writes, gorilla allows one writer at a time
}

func (c *client) ID() string {
	return c.id
}

// Send writes one envelope frame guarded by the write mutex and a write
// deadline.
func (c *client) Send(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	frame, err := json.Marshal(placement.Envelope{Event: event, Data: data})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, frame)
}

// HandleWS upgrades the request and runs the read loop until the peer
// goes away. Malformed frames are dropped with a log line; the
// connection stays up.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] upgrade: %v", err)
		return
	}

	c := &client{id: uuid.NewString(), conn: conn}
	log.Printf("[WS] client connected: %s", c.id)

	if err := c.Send("connection_response", placement.NoticePayload{Message: "Connected to co-design space"}); err != nil {
		log.Printf("[WS] greet %s: %v", c.id, err)
	}

	defer func() {
		h.Disconnect(c)
		conn.Close()
		log.Printf("[WS] client disconnected: %s", c.id)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] read %s: %v", c.id, err)
			}
			return
		}

		var env placement.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			log.Printf("[WS] bad frame from %s: %v", c.id, err)
			continue
		}
		if err := h.Dispatch(c, env); err != nil {
			log.Printf("[WS] dispatch %s from %s: %v", env.Event, c.id, err)
		}
	}
}

// HandleRoomItems serves the HTTP snapshot of one room's item set, used
// by the web service for cross-page handoff.
func (h *Hub) HandleRoomItems(w http.ResponseWriter, r *http.Request) {
	alleyID := r.PathValue("id")
	if alleyID == "" {
		http.Error(w, `{"error":"alley id required"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(placement.LoadDesignPayload{Items: h.RoomItems(alleyID)}); err != nil {
		log.Printf("[WS] encode room snapshot: %v", err)
	}
}
