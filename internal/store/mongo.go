package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"echofeed-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStore is the durable submission backend. The application-level id
// field is the lookup key; Mongo's own _id stays internal.
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		collection: db.Collection("submissions"),
	}
}

func (m *MongoStore) Insert(ctx context.Context, s *models.Submission) error {
	if s.Timestamp == 0 {
		s.Timestamp = time.Now().UnixMilli()
	}
	if _, err := m.collection.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

func (m *MongoStore) ListAll(ctx context.Context) ([]models.Submission, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := m.collection.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer cursor.Close(ctx)

	submissions := []models.Submission{}
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, fmt.Errorf("failed to decode submissions: %w", err)
	}
	return submissions, nil
}

func (m *MongoStore) UpdatePartial(ctx context.Context, id string, fields Fields) (*models.Submission, error) {
	updateOpts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Submission
	err := m.collection.FindOneAndUpdate(
		ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M(fields)},
		updateOpts,
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}
	return &updated, nil
}

// EnsureIndexes creates the indexes the submissions collection relies on.
func (m *MongoStore) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "timestamp", Value: -1}},
		},
	}
	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
