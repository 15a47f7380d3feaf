package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UploadRecord links an uploaded image to the account that uploaded it.
// UserID is nil for guest uploads. Records are insert-only; deleting a
// stored image does not remove its record.
type UploadRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    *string            `bson:"user_id" json:"user_id"`
	Filename  string             `bson:"filename" json:"filename"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
