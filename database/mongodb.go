package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"healthcare-assistant-backend/config"
	"healthcare-assistant-backend/models"
)

const messagesCollection = "messages"

// MongoStore persists session history in a MongoDB collection.
type MongoStore struct {
	client   *mongo.Client
	messages *mongo.Collection
}

// ConnectMongoDB establishes connection to MongoDB
func ConnectMongoDB(ctx context.Context, cfg *config.Config) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Set client options
	clientOptions := options.Client().
		ApplyURI(cfg.BuildDatabaseURI()).
		SetMaxPoolSize(uint64(cfg.Database.MaxConnections)).
		SetMinPoolSize(uint64(cfg.Database.MinConnections)).
		SetMaxConnIdleTime(cfg.Database.MaxIdleTime)

	// Connect to MongoDB
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping the database
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	store := &MongoStore{
		client:   client,
		messages: client.Database(cfg.Database.Name).Collection(messagesCollection),
	}

	log.Printf("Connected to MongoDB database: %s", cfg.Database.Name)

	if err := store.createIndexes(ctx, cfg.Database.HistoryTTL); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return store, nil
}

// createIndexes creates necessary indexes
func (s *MongoStore) createIndexes(ctx context.Context, ttl time.Duration) error {
	messageIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "session_id", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
		{
			Keys:    bson.D{{Key: "timestamp", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(ttl.Seconds())),
		},
		{
			Keys: bson.D{{Key: "type", Value: 1}},
		},
	}

	if _, err := s.messages.Indexes().CreateMany(ctx, messageIndexes); err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}

	log.Println("Database indexes created successfully")
	return nil
}

func (s *MongoStore) SaveMessage(ctx context.Context, message *models.Message) error {
	if _, err := s.messages.InsertOne(ctx, message); err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

func (s *MongoStore) GetHistory(ctx context.Context, sessionID string, limit int) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.messages.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer cursor.Close(ctx)

	var history []models.Message
	if err := cursor.All(ctx, &history); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}

	// newest first from the query; callers want chronological order
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	return history, nil
}

func (s *MongoStore) ClearHistory(ctx context.Context, sessionID string) error {
	if _, err := s.messages.DeleteMany(ctx, bson.M{"session_id": sessionID}); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary())
}

// Close closes the MongoDB connection
func (s *MongoStore) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	log.Println("Disconnected from MongoDB")
	return nil
}
