package repositories

import (
	"errors"

	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/apperrors"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow-graph operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(followerID, followedID uint) (*models.Follow, error)
	IsFollowing(followerID, followedID uint) (bool, error)
	GetFollowing(userID uint) ([]models.Follow, error)
	GetFollowers(userID uint) ([]models.Follow, error)
	GetFollowingIDs(userID uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts an edge. The compound unique index on
// (follower_id, followed_id) is the race guard: a concurrent duplicate
// insert surfaces as ErrAlreadyFollowing.
func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	if err := r.db.Create(follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

// DeleteFollow removes an edge and returns it, or ErrFollowNotFound when no
// such edge exists.
func (r *PostgresFollowRepository) DeleteFollow(followerID, followedID uint) (*models.Follow, error) {
	var follow models.Follow
	err := r.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).First(&follow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFollowNotFound
		}
		return nil, err
	}
	if err := r.db.Delete(&follow).Error; err != nil {
		return nil, err
	}
	return &follow, nil
}

// IsFollowing reports whether an edge (followerID -> followedID) exists
func (r *PostgresFollowRepository) IsFollowing(followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowing returns all outbound edges for userID
func (r *PostgresFollowRepository) GetFollowing(userID uint) ([]models.Follow, error) {
	var follows []models.Follow
	err := r.db.Where("follower_id = ?", userID).Order("created_at DESC, id DESC").Find(&follows).Error
	return follows, err
}

// GetFollowers returns all inbound edges for userID
func (r *PostgresFollowRepository) GetFollowers(userID uint) ([]models.Follow, error) {
	var follows []models.Follow
	err := r.db.Where("followed_id = ?", userID).Order("created_at DESC, id DESC").Find(&follows).Error
	return follows, err
}

// GetFollowingIDs returns the ids of every user that userID follows
func (r *PostgresFollowRepository) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Pluck("followed_id", &ids).Error
	return ids, err
}
