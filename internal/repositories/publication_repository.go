package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/apperrors"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PublicationRepository defines the interface for publication data operations
type PublicationRepository interface {
	CreatePublication(ctx context.Context, publication *models.Publication) error
	GetPublicationByID(ctx context.Context, id string) (*models.Publication, error)
	GetPublicationsByOwner(ctx context.Context, ownerID uint, skip, limit int64) ([]models.Publication, error)
	GetFeedPublications(ctx context.Context, ownerIDs []uint, skip, limit int64) ([]models.Publication, error)
	UpdatePublicationText(ctx context.Context, id string, ownerID uint, text string) (*models.Publication, error)
	AttachFile(ctx context.Context, id string, ownerID uint, file string) (*models.Publication, error)
	DeletePublication(ctx context.Context, id string, ownerID uint) (*models.Publication, error)
}

// MongoPublicationRepository implements PublicationRepository for MongoDB
type MongoPublicationRepository struct {
	collection *mongo.Collection
}

// NewMongoPublicationRepository creates a new MongoPublicationRepository
func NewMongoPublicationRepository(db *mongo.Database) *MongoPublicationRepository {
	return &MongoPublicationRepository{collection: db.Collection("publications")}
}

// feedSort orders newest first; the ObjectID is the stable tie-break for
// identical timestamps, keeping pagination deterministic.
var feedSort = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

// CreatePublication inserts a new publication
func (r *MongoPublicationRepository) CreatePublication(ctx context.Context, publication *models.Publication) error {
	publication.ID = primitive.NewObjectID()
	publication.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, publication)
	return err
}

// GetPublicationByID retrieves a publication by its hex id
func (r *MongoPublicationRepository) GetPublicationByID(ctx context.Context, id string) (*models.Publication, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidID
	}

	var publication models.Publication
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&publication)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrPublicationNotFound
		}
		return nil, err
	}
	return &publication, nil
}

// GetPublicationsByOwner retrieves one page of a user's publications, newest first
func (r *MongoPublicationRepository) GetPublicationsByOwner(ctx context.Context, ownerID uint, skip, limit int64) ([]models.Publication, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(feedSort)
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	publications := []models.Publication{}
	if err = cursor.All(ctx, &publications); err != nil {
		return nil, err
	}
	return publications, nil
}

// GetFeedPublications retrieves one page of publications owned by any of
// ownerIDs, newest first. It always reads current collection state, so
// deleted publications can never reappear from a stale snapshot.
func (r *MongoPublicationRepository) GetFeedPublications(ctx context.Context, ownerIDs []uint, skip, limit int64) ([]models.Publication, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(feedSort)
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": bson.M{"$in": ownerIDs}}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	publications := []models.Publication{}
	if err = cursor.All(ctx, &publications); err != nil {
		return nil, err
	}
	return publications, nil
}

// UpdatePublicationText updates the text of the caller's own publication and
// returns the updated document. A publication owned by someone else is
// indistinguishable from a missing one.
func (r *MongoPublicationRepository) UpdatePublicationText(ctx context.Context, id string, ownerID uint, text string) (*models.Publication, error) {
	return r.findOneAndUpdate(ctx, id, ownerID, bson.M{"$set": bson.M{"text": text}})
}

// AttachFile stores the uploaded image filename on the caller's own publication
func (r *MongoPublicationRepository) AttachFile(ctx context.Context, id string, ownerID uint, file string) (*models.Publication, error) {
	return r.findOneAndUpdate(ctx, id, ownerID, bson.M{"$set": bson.M{"file": file}})
}

func (r *MongoPublicationRepository) findOneAndUpdate(ctx context.Context, id string, ownerID uint, update bson.M) (*models.Publication, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var publication models.Publication
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID, "owner_id": ownerID}, update, opts).Decode(&publication)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrPublicationNotFound
		}
		return nil, err
	}
	return &publication, nil
}

// DeletePublication removes the caller's own publication and returns the
// removed document; ownership-scoped like UpdatePublicationText.
func (r *MongoPublicationRepository) DeletePublication(ctx context.Context, id string, ownerID uint) (*models.Publication, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidID
	}

	var publication models.Publication
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": objID, "owner_id": ownerID}).Decode(&publication)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrPublicationNotFound
		}
		return nil, err
	}
	return &publication, nil
}
