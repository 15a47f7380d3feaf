package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/whitebrim/melanoscan-backend/internal/database"
	"github.com/whitebrim/melanoscan-backend/internal/models"
)

// usageDocID keys the singleton ledger document.
const usageDocID = "guest_usage"

// UsageLedger is the global guest usage counter pair. One ledger is
// shared by every anonymous visitor; it is not per-session.
type UsageLedger interface {
	Current(ctx context.Context) (models.GuestUsage, error)
	IncrementUploads(ctx context.Context) error
	IncrementChatbotInteractions(ctx context.Context) error
}

// MongoUsageLedger persists the ledger as a single document in the
// guest_usage collection. Increments are atomic $inc upserts so
// concurrent guest requests never lose updates. Durability is that of
// the Mongo deployment; counters survive process restarts.
type MongoUsageLedger struct {
	col *mongo.Collection
}

func NewMongoUsageLedger() *MongoUsageLedger {
	return &MongoUsageLedger{col: database.DB.Collection("guest_usage")}
}

func (l *MongoUsageLedger) Current(ctx context.Context) (models.GuestUsage, error) {
	var usage models.GuestUsage
	err := l.col.FindOne(ctx, bson.M{"_id": usageDocID}).Decode(&usage)
	if err == mongo.ErrNoDocuments {
		return models.GuestUsage{ID: usageDocID}, nil
	}
	return usage, err
}

func (l *MongoUsageLedger) IncrementUploads(ctx context.Context) error {
	return l.increment(ctx, "uploads")
}

func (l *MongoUsageLedger) IncrementChatbotInteractions(ctx context.Context) error {
	return l.increment(ctx, "chatbot_interactions")
}

func (l *MongoUsageLedger) increment(ctx context.Context, field string) error {
	_, err := l.col.UpdateOne(ctx,
		bson.M{"_id": usageDocID},
		bson.M{"$inc": bson.M{field: 1}},
		options.Update().SetUpsert(true),
	)
	return err
}
