package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sceneforge/depsgraph/pkg/errors"
	"github.com/sceneforge/depsgraph/pkg/graphio"
)

// MongoStore archives snapshots in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and returns a snapshot store backed
// by the given database and collection. The connection is verified
// before the store is returned.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to reach mongodb")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Save archives a snapshot under the given name, replacing any existing
// snapshot with that name.
func (s *MongoStore) Save(ctx context.Context, name string, snap graphio.Snapshot) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "snapshot name cannot be empty")
	}

	entry := Entry{
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Snapshot:  snap,
	}

	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"name": name},
		entry,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to save snapshot %s", name)
	}
	return nil
}

// Load retrieves a snapshot by name.
func (s *MongoStore) Load(ctx context.Context, name string) (*Entry, error) {
	var entry Entry
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeSnapshotNotFound, "snapshot not found: %s", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to load snapshot %s", name)
	}
	return &entry, nil
}

// List returns all archived entries, most recent first.
func (s *MongoStore) List(ctx context.Context) ([]Entry, error) {
	cursor, err := s.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to list snapshots")
	}
	defer cursor.Close(ctx)

	var entries []Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to decode snapshots")
	}
	return entries, nil
}

// Delete removes a snapshot by name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to delete snapshot %s", name)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeSnapshotNotFound, "snapshot not found: %s", name)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
