package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/suryamp/echo-chat/internal/model/chat"
)

// MongoMessageRepository implements MessageRepository on the messages
// collection.
type MongoMessageRepository struct {
	col *mongo.Collection
}

func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{col: db.Collection("messages")}
}

func (r *MongoMessageRepository) Insert(ctx context.Context, m chat.Message) error {
	_, err := r.col.InsertOne(ctx, m)
	return err
}
