package database

import (
	"context"
	"fmt"
	"time"

	"linkedin-poster/internal/database/models"

	"go.mongodb.org/mongo-driver/mongo"
)

const postLogCollection = "post_logs"

// MongoPostLogger implements PostLogger using MongoDB.
type MongoPostLogger struct {
	db *mongo.Database
}

// NewMongoPostLogger creates a MongoPostLogger backed by the given database.
func NewMongoPostLogger(db *mongo.Database) *MongoPostLogger {
	return &MongoPostLogger{db: db}
}

// LogPublishedPost writes a log entry for one publish attempt.
func (m *MongoPostLogger) LogPublishedPost(logEntry models.PostLog) error {
	collection := m.db.Collection(postLogCollection)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := collection.InsertOne(ctx, logEntry); err != nil {
		return fmt.Errorf("failed to insert post log into collection %q: %w", postLogCollection, err)
	}
	return nil
}
