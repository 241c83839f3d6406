package gateway

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/suryamp/echo-chat/internal/model/chat"
)

// Handler is the echo gateway: every inbound JSON frame is sent back with a
// fresh id, sender "server" and a current timestamp. It keeps no session
// state and never touches the stores; persistence is the client's job.
type Handler struct {
	upgrader websocket.Upgrader
}

// New creates the gateway handler.
func New() *Handler {
	return &Handler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// ServeHTTP upgrades the connection and runs the echo loop until the peer
// goes away.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[gateway] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Println("[gateway] client connected")
	defer log.Println("[gateway] client disconnected")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[gateway] read error: %v", err)
			}
			return
		}

		response, ok := Echo(data)
		if !ok {
			// Malformed frames are dropped; the connection stays up.
			log.Printf("[gateway] dropping malformed frame: %q", data)
			continue
		}

		if err := conn.WriteMessage(websocket.TextMessage, response); err != nil {
			log.Printf("[gateway] write error: %v", err)
			return
		}
	}
}

// Echo restamps an inbound frame. The input must be a JSON object; its
// fields are preserved and id, sender and timestamp are overwritten.
func Echo(data []byte) ([]byte, bool) {
	var frame map[string]any
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, false
	}
	// A literal null frame decodes without error into a nil map; restamp it
	// as an empty object.
	if frame == nil {
		frame = map[string]any{}
	}

	frame["id"] = uuid.NewString()
	frame["sender"] = chat.SenderServer
	frame["timestamp"] = time.Now().UnixMilli()

	out, err := json.Marshal(frame)
	if err != nil {
		return nil, false
	}
	return out, true
}
