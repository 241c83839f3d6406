package chat

import "time"

// Message senders. A message either came from the user or is a server
// reply; nothing else ever appears in a transcript.
const (
	SenderUser   = "user"
	SenderServer = "server"
)

// Message is a single immutable turn. SessionID and OwnerID are optional:
// messages embedded in a session document carry neither, while rows in the
// standalone messages collection carry the owner injected from the token.
type Message struct {
	ID        string    `bson:"_id" json:"id"`
	SessionID string    `bson:"session_id,omitempty" json:"sessionId,omitempty"`
	OwnerID   string    `bson:"owner_id,omitempty" json:"ownerId,omitempty"`
	Content   string    `bson:"content" json:"content"`
	Sender    string    `bson:"sender" json:"sender"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}
