package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/weslymega/testefeirastudio-sub000/internal/db"
)

const stateCollection = "app_state"

// stateDoc is one persisted collection: the key is the document id, the
// value stays opaque JSON so the layout matches the other backends.
type stateDoc struct {
	Key  string `bson:"_id"`
	Data []byte `bson:"data"`
}

// MongoBackend stores each collection as one document in a single
// collection, keyed by the collection name.
type MongoBackend struct {
	coll *mongo.Collection
}

// NewMongoBackend wraps an already-connected database handle.
func NewMongoBackend(database *mongo.Database) *MongoBackend {
	return &MongoBackend{coll: database.Collection(stateCollection)}
}

func (m *MongoBackend) Read(ctx context.Context, key string) ([]byte, error) {
	var doc stateDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s from mongo: %w", key, err)
	}
	return doc.Data, nil
}

func (m *MongoBackend) Write(ctx context.Context, key string, data []byte) error {
	op := func() error {
		opts := options.Replace().SetUpsert(true)
		_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": key}, stateDoc{Key: key, Data: data}, opts)
		return err
	}
	// Concurrent upserts on the same key can race into a duplicate-key error.
	if err := db.Try(op); err != nil {
		return fmt.Errorf("failed to write %s to mongo: %w", key, err)
	}
	return nil
}

func (m *MongoBackend) Reset(ctx context.Context) error {
	if _, err := m.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear state collection: %w", err)
	}
	return nil
}
