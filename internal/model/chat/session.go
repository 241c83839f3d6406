package chat

import "time"

// Session is a named container of an ordered message history, owned by
// exactly one user. Messages are embedded so an append is a single
// document write and insertion order is display order.
type Session struct {
	ID        string    `bson:"_id" json:"id"`
	OwnerID   string    `bson:"owner_id" json:"ownerId"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	Messages  []Message `bson:"messages" json:"messages"`
}
