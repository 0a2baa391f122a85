package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/casemate-ai/casemate-gateway/internal/model"
)

const conversationCollection = "conversations"

// MongoStore is the MongoDB-backed conversation store. One document per
// conversation; messages live as an embedded array on the document.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// ConnectMongo establishes a MongoDB connection, verifies it with a ping,
// and returns a store over the conversations collection.
func ConnectMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(conversationCollection),
	}, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping verifies the connection is alive.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Insert stores a new conversation.
func (s *MongoStore) Insert(ctx context.Context, conv *model.Conversation) error {
	if _, err := s.coll.InsertOne(ctx, conv); err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}
	return nil
}

// ListByOwner returns conversations owned by userID, capped at limit.
func (s *MongoStore) ListByOwner(ctx context.Context, userID string, limit int64) ([]model.Conversation, error) {
	cursor, err := s.coll.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer cursor.Close(ctx)

	conversations := []model.Conversation{}
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, fmt.Errorf("failed to decode conversations: %w", err)
	}
	return conversations, nil
}

// FindByIDAndOwner returns the conversation matched by id and owner.
func (s *MongoStore) FindByIDAndOwner(ctx context.Context, id, userID string) (*model.Conversation, error) {
	var conv model.Conversation
	err := s.coll.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&conv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversation: %w", err)
	}
	return &conv, nil
}

// AppendMessages atomically pushes messages onto the conversation matched
// by id and owner.
func (s *MongoStore) AppendMessages(ctx context.Context, id, userID string, msgs ...model.Message) error {
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$push": bson.M{"messages": bson.M{"$each": msgs}}},
	)
	if err != nil {
		return fmt.Errorf("failed to append messages: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the conversation matched by id and owner.
func (s *MongoStore) Delete(ctx context.Context, id, userID string) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
