package client

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/suryamp/echo-chat/internal/model/chat"
)

// Responder produces the server reply for a sent message. deliver is called
// with the session the message was sent from, so a reply can never land in
// a different session.
type Responder interface {
	Respond(sessionID string, sent chat.Message, deliver func(sessionID string, m chat.Message))
	Cancel(sessionID string)
	Close()
}

// LocalEcho simulates the server reply after a fixed delay. Timers are
// tracked per session and are cancelled when the session's lifetime ends.
type LocalEcho struct {
	delay  time.Duration
	mu     sync.Mutex
	timers map[string]map[*time.Timer]struct{}
}

func NewLocalEcho(delay time.Duration) *LocalEcho {
	return &LocalEcho{
		delay:  delay,
		timers: make(map[string]map[*time.Timer]struct{}),
	}
}

func (e *LocalEcho) Respond(sessionID string, sent chat.Message, deliver func(string, chat.Message)) {
	var timer *time.Timer
	timer = time.AfterFunc(e.delay, func() {
		e.forget(sessionID, timer)
		deliver(sessionID, chat.Message{
			ID:        uuid.NewString(),
			Content:   sent.Content,
			Sender:    chat.SenderServer,
			Timestamp: time.Now().UTC(),
		})
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.timers[sessionID] == nil {
		e.timers[sessionID] = make(map[*time.Timer]struct{})
	}
	e.timers[sessionID][timer] = struct{}{}
}

// Cancel stops every pending reply for the session.
func (e *LocalEcho) Cancel(sessionID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for timer := range e.timers[sessionID] {
		timer.Stop()
	}
	delete(e.timers, sessionID)
}

// Close stops every pending reply.
func (e *LocalEcho) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, timers := range e.timers {
		for timer := range timers {
			timer.Stop()
		}
	}
	e.timers = make(map[string]map[*time.Timer]struct{})
}

func (e *LocalEcho) forget(sessionID string, timer *time.Timer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if timers := e.timers[sessionID]; timers != nil {
		delete(timers, timer)
	}
}

// GatewayEcho asks the real echo gateway for the reply over a WebSocket.
type GatewayEcho struct {
	url  string
	mu   sync.Mutex
	conn *websocket.Conn
}

func NewGatewayEcho(url string) *GatewayEcho {
	return &GatewayEcho{url: url}
}

func (e *GatewayEcho) Respond(sessionID string, sent chat.Message, deliver func(string, chat.Message)) {
	reply, err := e.roundTrip(sent)
	if err != nil {
		// No delivery guarantees: a failed round trip just drops the reply.
		return
	}
	deliver(sessionID, reply)
}

func (e *GatewayEcho) roundTrip(sent chat.Message) (chat.Message, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.conn == nil {
		conn, _, err := websocket.DefaultDialer.Dial(e.url, nil)
		if err != nil {
			return chat.Message{}, fmt.Errorf("dial gateway: %w", err)
		}
		e.conn = conn
	}

	frame, err := json.Marshal(map[string]any{"content": sent.Content})
	if err != nil {
		return chat.Message{}, err
	}
	if err := e.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		e.reset()
		return chat.Message{}, err
	}

	_, data, err := e.conn.ReadMessage()
	if err != nil {
		e.reset()
		return chat.Message{}, err
	}

	var echoed struct {
		ID        string `json:"id"`
		Content   string `json:"content"`
		Sender    string `json:"sender"`
		Timestamp int64  `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &echoed); err != nil {
		return chat.Message{}, err
	}

	return chat.Message{
		ID:        echoed.ID,
		Content:   echoed.Content,
		Sender:    echoed.Sender,
		Timestamp: time.UnixMilli(echoed.Timestamp).UTC(),
	}, nil
}

// Cancel is a no-op: gateway replies are synchronous.
func (e *GatewayEcho) Cancel(string) {}

// Close drops the gateway connection.
func (e *GatewayEcho) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

func (e *GatewayEcho) reset() {
	if e.conn != nil {
		e.conn.Close()
		e.conn = nil
	}
}
