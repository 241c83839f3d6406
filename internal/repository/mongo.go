package repository

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect establishes the Mongo client, verifies the connection and ensures
// the indexes the repositories rely on.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}
	log.Println("MongoDB connected and indexes ensured")
	return db, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	// users: unique index on email backs the duplicate-email invariant.
	mi := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_email").SetUnique(true),
	}
	if _, err := db.Collection("users").Indexes().CreateOne(ctx, mi); err != nil {
		return err
	}

	mi = mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}},
		Options: options.Index().SetName("idx_owner_id"),
	}
	if _, err := db.Collection("sessions").Indexes().CreateOne(ctx, mi); err != nil {
		return err
	}
	return nil
}
