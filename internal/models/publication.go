package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Publication is a user-authored post stored in MongoDB. OwnerID is the
// numeric id of the owning user in PostgreSQL.
type Publication struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID   uint               `json:"owner_id" bson:"owner_id"`
	Text      string             `json:"text" bson:"text"`
	File      string             `json:"file,omitempty" bson:"file,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// CreatePublicationRequest defines the request body for creating a publication
type CreatePublicationRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

// UpdatePublicationRequest defines the request body for updating a publication
type UpdatePublicationRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}
