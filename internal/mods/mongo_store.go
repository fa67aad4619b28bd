package mods

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// summaryProjection drops the heavyweight fields from listing queries.
var summaryProjection = bson.M{"content": 0, "versions": 0}

// MongoStore is the canonical mod store, one document per mod keyed by the
// mod id field.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Mod, error) {
	var m Mod

	err := s.coll.FindOne(ctx, bson.M{"id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mods: find failed: %w", err)
	}

	return &m, nil
}

func (s *MongoStore) ListForMaintainer(ctx context.Context, userID string) ([]Summary, error) {
	filter := bson.M{"maintainers": userID, "deleted": false}
	return s.listSummaries(ctx, filter)
}

func (s *MongoStore) ListPublished(ctx context.Context) ([]Summary, error) {
	filter := bson.M{"deleted": false, "latest": bson.M{"$exists": true}}
	return s.listSummaries(ctx, filter)
}

func (s *MongoStore) listSummaries(ctx context.Context, filter bson.M) ([]Summary, error) {
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetProjection(summaryProjection))
	if err != nil {
		return nil, fmt.Errorf("mods: list failed: %w", err)
	}

	summaries := []Summary{}
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("mods: list decode failed: %w", err)
	}

	return summaries, nil
}

func (s *MongoStore) Insert(ctx context.Context, m *Mod) error {
	if _, err := s.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("mods: insert failed: %w", err)
	}
	return nil
}

func (s *MongoStore) Replace(ctx context.Context, id string, m *Mod) error {
	res, err := s.coll.ReplaceOne(ctx, bson.M{"id": id}, m)
	if err != nil {
		return fmt.Errorf("mods: replace failed: %w", err)
	}

	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}
