package repository

import (
	"context"
	"time"

	"github.com/adityadutt29/EmeLoc/internal/domain/entity"
	"github.com/adityadutt29/EmeLoc/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoNotificationLogRepository implements the NotificationLogRepository interface
type MongoNotificationLogRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationLogRepository creates a new MongoDB notification log repository
func NewMongoNotificationLogRepository(db *mongo.Database) repository.NotificationLogRepository {
	collection := db.Collection("notificationLogs")

	// Indexes for the case audit view
	ctx := context.Background()
	caseIndex := mongo.IndexModel{
		Keys: bson.M{"caseId": 1},
	}
	createdAtIndex := mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	}
	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{caseIndex, createdAtIndex})

	return &MongoNotificationLogRepository{
		collection: collection,
	}
}

// Save persists one dispatch attempt
func (r *MongoNotificationLogRepository) Save(ctx context.Context, log *entity.NotificationLog) error {
	if log.ID == "" {
		log.ID = primitive.NewObjectID().Hex()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, log)
	return err
}

// FindByCase returns the dispatch history for a case, newest first
func (r *MongoNotificationLogRepository) FindByCase(ctx context.Context, caseID string) ([]*entity.NotificationLog, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"caseId": caseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []*entity.NotificationLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
