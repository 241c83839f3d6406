package gateway

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/suryamp/echo-chat/internal/model/chat"
)

func dialTestGateway(t *testing.T) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(New())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial gateway: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestEchoRestampsFrame(t *testing.T) {
	conn := dialTestGateway(t)

	before := time.Now().UnixMilli()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"text":"hi"}`)); err != nil {
		t.Fatalf("failed to send frame: %v", err)
	}

	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read reply: %v", err)
	}

	var reply map[string]any
	if err := json.Unmarshal(data, &reply); err != nil {
		t.Fatalf("reply is not JSON: %v", err)
	}

	if reply["text"] != "hi" {
		t.Fatalf("expected original field preserved, got %v", reply["text"])
	}
	if id, _ := reply["id"].(string); id == "" {
		t.Fatal("expected a non-empty id")
	}
	if reply["sender"] != chat.SenderServer {
		t.Fatalf("expected sender %q, got %v", chat.SenderServer, reply["sender"])
	}
	ts, ok := reply["timestamp"].(float64)
	if !ok || int64(ts) < before {
		t.Fatalf("expected timestamp >= send time, got %v", reply["timestamp"])
	}
}

func TestMalformedFrameIsDroppedConnectionStaysUp(t *testing.T) {
	conn := dialTestGateway(t)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("failed to send malformed frame: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"text":"still here"}`)); err != nil {
		t.Fatalf("failed to send second frame: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("expected reply to the valid frame, got error: %v", err)
	}

	var reply map[string]any
	if err := json.Unmarshal(data, &reply); err != nil {
		t.Fatalf("reply is not JSON: %v", err)
	}
	if reply["text"] != "still here" {
		t.Fatalf("expected reply to the second frame, got %v", reply)
	}
}

func TestEchoOverwritesReservedFields(t *testing.T) {
	out, ok := Echo([]byte(`{"id":"client-id","sender":"user","content":"x"}`))
	if !ok {
		t.Fatal("expected frame to be echoed")
	}

	var reply map[string]any
	if err := json.Unmarshal(out, &reply); err != nil {
		t.Fatalf("echoed frame is not JSON: %v", err)
	}
	if reply["id"] == "client-id" {
		t.Fatal("expected a fresh id")
	}
	if reply["sender"] != chat.SenderServer {
		t.Fatalf("expected sender overwritten, got %v", reply["sender"])
	}
}

func TestEchoNullFrame(t *testing.T) {
	out, ok := Echo([]byte(`null`))
	if !ok {
		t.Fatal("expected null frame to be echoed as an empty object")
	}

	var reply map[string]any
	if err := json.Unmarshal(out, &reply); err != nil {
		t.Fatalf("echoed frame is not JSON: %v", err)
	}
	if id, _ := reply["id"].(string); id == "" {
		t.Fatal("expected a non-empty id")
	}
	if reply["sender"] != chat.SenderServer {
		t.Fatalf("expected sender %q, got %v", chat.SenderServer, reply["sender"])
	}
	if _, ok := reply["timestamp"]; !ok {
		t.Fatal("expected a timestamp")
	}
}

func TestNullFrameKeepsConnectionUp(t *testing.T) {
	conn := dialTestGateway(t)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`null`)); err != nil {
		t.Fatalf("failed to send null frame: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("expected a reply to the null frame, got error: %v", err)
	}

	var reply map[string]any
	if err := json.Unmarshal(data, &reply); err != nil {
		t.Fatalf("reply is not JSON: %v", err)
	}
	if reply["sender"] != chat.SenderServer {
		t.Fatalf("expected sender %q, got %v", chat.SenderServer, reply["sender"])
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"text":"after"}`)); err != nil {
		t.Fatalf("failed to send follow-up frame: %v", err)
	}
	_, data, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("expected reply to follow-up frame, got error: %v", err)
	}
	if err := json.Unmarshal(data, &reply); err != nil {
		t.Fatalf("reply is not JSON: %v", err)
	}
	if reply["text"] != "after" {
		t.Fatalf("expected reply to the follow-up frame, got %v", reply)
	}
}

func TestEchoRejectsNonObject(t *testing.T) {
	if _, ok := Echo([]byte(`"just a string"`)); ok {
		t.Fatal("expected non-object frame to be rejected")
	}
	if _, ok := Echo([]byte(`garbage`)); ok {
		t.Fatal("expected malformed frame to be rejected")
	}
}
