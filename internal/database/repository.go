package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ExtractionRepository provides operations on extraction logs
type ExtractionRepository struct {
	collection *mongo.Collection
}

// NewExtractionRepository returns a repository bound to the extractions collection
func NewExtractionRepository(conn *Connection) *ExtractionRepository {
	return &ExtractionRepository{collection: conn.GetCollection(ExtractionsCollection)}
}

// InsertExtractionLog inserts a new extraction log
func (r *ExtractionRepository) InsertExtractionLog(ctx context.Context, log *ExtractionLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, log); err != nil {
		return fmt.Errorf("failed to insert extraction log: %w", err)
	}
	return nil
}

// GetRecentExtractionLogs returns up to limit logs, newest first
func (r *ExtractionRepository) GetRecentExtractionLogs(ctx context.Context, limit int64) ([]*ExtractionLog, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find extraction logs: %w", err)
	}
	defer cursor.Close(ctx)

	logs := make([]*ExtractionLog, 0, limit)
	for cursor.Next(ctx) {
		var log ExtractionLog
		if err := cursor.Decode(&log); err != nil {
			return nil, fmt.Errorf("failed to decode extraction log: %w", err)
		}
		logs = append(logs, &log)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return logs, nil
}

// GetExtractionLogByRequestID returns nil, nil when no log matches
func (r *ExtractionRepository) GetExtractionLogByRequestID(ctx context.Context, requestID string) (*ExtractionLog, error) {
	var log ExtractionLog
	err := r.collection.FindOne(ctx, bson.M{"request_id": requestID}).Decode(&log)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get extraction log by request ID: %w", err)
	}
	return &log, nil
}
