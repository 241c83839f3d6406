package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/suryamp/echo-chat/internal/model/chat"
)

// MongoSessionRepository implements SessionRepository on the sessions
// collection. Messages live inside the session document, so an append is a
// single $push and message order is Mongo's single-document write order.
type MongoSessionRepository struct {
	col *mongo.Collection
}

func NewMongoSessionRepository(db *mongo.Database) *MongoSessionRepository {
	return &MongoSessionRepository{col: db.Collection("sessions")}
}

func (r *MongoSessionRepository) Create(ctx context.Context, s chat.Session) error {
	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *MongoSessionRepository) ListByOwner(ctx context.Context, ownerID string) ([]chat.Session, error) {
	cur, err := r.col.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	sessions := make([]chat.Session, 0)
	if err := cur.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *MongoSessionRepository) FindByID(ctx context.Context, id string) (chat.Session, error) {
	var s chat.Session
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return chat.Session{}, ErrNotFound
	}
	return s, err
}

func (r *MongoSessionRepository) AppendMessage(ctx context.Context, sessionID string, m chat.Message) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": sessionID},
		bson.M{"$push": bson.M{"messages": m}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
