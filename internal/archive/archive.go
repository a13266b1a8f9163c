// Package archive keeps the raw JSON bodies of fetched entities so a run's
// inputs can be inspected after the fact. Archiving is optional and
// warn-only; it never gates the export itself.
package archive

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists raw entity snapshots in MongoDB. A nil *Store is a valid
// no-op store.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Connect opens the archive database and verifies the connection.
func Connect(ctx context.Context, uri string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}

	db := client.Database("vmexport")
	return &Store{client: client, collection: db.Collection("raw_entities")}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

type rawDocument struct {
	ID        string    `bson:"_id"`
	Kind      string    `bson:"kind"`
	EntityID  string    `bson:"entityId"`
	RunID     string    `bson:"runId"`
	FetchedAt time.Time `bson:"fetchedAt"`
	Body      string    `bson:"body"`
}

// Save upserts one raw body keyed by kind and entity id, so re-runs replace
// earlier snapshots. Safe to call from concurrent fetchers.
func (s *Store) Save(ctx context.Context, kind, entityID, runID string, body []byte) error {
	if s == nil {
		return nil
	}
	doc := rawDocument{
		ID:        kind + ":" + entityID,
		Kind:      kind,
		EntityID:  entityID,
		RunID:     runID,
		FetchedAt: time.Now().UTC(),
		Body:      string(body),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}
