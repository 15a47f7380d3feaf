package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/whitebrim/melanoscan-backend/internal/database"
	"github.com/whitebrim/melanoscan-backend/internal/models"
)

// UploadRecorder persists upload metadata. Records are insert-only.
type UploadRecorder interface {
	// Record stores an upload. userID is empty for guest uploads.
	Record(ctx context.Context, userID, filename string) error
}

// MongoUploadStore writes upload records to the uploads collection.
type MongoUploadStore struct {
	col *mongo.Collection
}

func NewMongoUploadStore() *MongoUploadStore {
	return &MongoUploadStore{col: database.DB.Collection("uploads")}
}

func (s *MongoUploadStore) Record(ctx context.Context, userID, filename string) error {
	record := models.UploadRecord{
		Filename:  filename,
		CreatedAt: time.Now(),
	}
	if userID != "" {
		record.UserID = &userID
	}
	_, err := s.col.InsertOne(ctx, record)
	return err
}
