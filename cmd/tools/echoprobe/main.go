package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/gorilla/websocket"
)

// echoprobe sends one frame to the echo gateway and prints the reply.
func main() {
	url := flag.String("url", "ws://localhost:8081/", "gateway websocket URL")
	text := flag.String("text", "hello", "message content to send")
	flag.Parse()

	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		log.Fatalf("failed to dial gateway: %v", err)
	}
	defer conn.Close()

	frame, _ := json.Marshal(map[string]string{"content": *text})
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		log.Fatalf("failed to send frame: %v", err)
	}

	_, reply, err := conn.ReadMessage()
	if err != nil {
		log.Fatalf("failed to read reply: %v", err)
	}

	fmt.Printf("sent:     %s\nreceived: %s\n", frame, reply)
}
