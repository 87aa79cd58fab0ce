package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDBSnapshotRepository implements SnapshotRepository using MongoDB.
type MongoDBSnapshotRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// SnapshotDocument is the stored shape of one slot.
type SnapshotDocument struct {
	SlotKey string    `bson:"slot_key"`
	Payload string    `bson:"payload"`
	SavedAt time.Time `bson:"saved_at"`
}

// NewMongoDBSnapshotRepository connects to MongoDB and ensures the slot index.
func NewMongoDBSnapshotRepository(uri, database, collection string) (*MongoDBSnapshotRepository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(10).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	coll := client.Database(database).Collection(collection)

	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slot_key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &MongoDBSnapshotRepository{client: client, collection: coll}, nil
}

// NewMongoDBSnapshotRepositoryFromCollection wraps an existing collection.
// The caller owns the client; Close leaves it connected.
func NewMongoDBSnapshotRepositoryFromCollection(coll *mongo.Collection) *MongoDBSnapshotRepository {
	return &MongoDBSnapshotRepository{collection: coll}
}

// LoadSnapshot returns the payload stored under key.
func (r *MongoDBSnapshotRepository) LoadSnapshot(ctx context.Context, key string) ([]byte, error) {
	var doc SnapshotDocument
	err := r.collection.FindOne(ctx, bson.M{"slot_key": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return []byte(doc.Payload), nil
}

// SaveSnapshot upserts the payload stored under key.
func (r *MongoDBSnapshotRepository) SaveSnapshot(ctx context.Context, key string, data []byte) error {
	doc := SnapshotDocument{
		SlotKey: key,
		Payload: string(data),
		SavedAt: time.Now().UTC(),
	}
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"slot_key": key},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// GetStats returns statistics about the snapshot collection.
func (r *MongoDBSnapshotRepository) GetStats(ctx context.Context) (map[string]interface{}, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return map[string]interface{}{
		"backend":    "mongodb",
		"snapshots":  count,
		"collection": r.collection.Name(),
	}, nil
}

// Close disconnects from MongoDB if this repository dialed the client.
func (r *MongoDBSnapshotRepository) Close() error {
	if r.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

var _ SnapshotRepository = (*MongoDBSnapshotRepository)(nil)
