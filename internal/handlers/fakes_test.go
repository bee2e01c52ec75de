package handlers

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/apperrors"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They enforce the same uniqueness rules the
// real stores enforce through indexes, so handler behavior under duplicates
// can be exercised without a database.

type fakeUserRepo struct {
	nextID uint
	users  map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[uint]*models.User)}
}

func (r *fakeUserRepo) collides(candidate *models.User) bool {
	for _, u := range r.users {
		if u.ID == candidate.ID {
			continue
		}
		if strings.EqualFold(u.Email, candidate.Email) || strings.EqualFold(u.Nick, candidate.Nick) {
			return true
		}
	}
	return false
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	if r.collides(user) {
		return apperrors.ErrDuplicateUser
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetUsersByIDs(ids []uint) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindByEmailOrNick(email, nick string) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) || strings.EqualFold(u.Nick, nick) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListUsers(page, limit int) ([]models.User, int64, error) {
	all := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	if r.collides(user) {
		return apperrors.ErrDuplicateUser
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

type fakeFollowRepo struct {
	nextID uint
	edges  []models.Follow
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{nextID: 1}
}

func (r *fakeFollowRepo) CreateFollow(follow *models.Follow) error {
	for _, e := range r.edges {
		if e.FollowerID == follow.FollowerID && e.FollowedID == follow.FollowedID {
			return apperrors.ErrAlreadyFollowing
		}
	}
	follow.ID = r.nextID
	r.nextID++
	follow.CreatedAt = time.Now()
	r.edges = append(r.edges, *follow)
	return nil
}

func (r *fakeFollowRepo) DeleteFollow(followerID, followedID uint) (*models.Follow, error) {
	for i, e := range r.edges {
		if e.FollowerID == followerID && e.FollowedID == followedID {
			r.edges = append(r.edges[:i], r.edges[i+1:]...)
			return &e, nil
		}
	}
	return nil, apperrors.ErrFollowNotFound
}

func (r *fakeFollowRepo) IsFollowing(followerID, followedID uint) (bool, error) {
	for _, e := range r.edges {
		if e.FollowerID == followerID && e.FollowedID == followedID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFollowRepo) GetFollowing(userID uint) ([]models.Follow, error) {
	var out []models.Follow
	for _, e := range r.edges {
		if e.FollowerID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeFollowRepo) GetFollowers(userID uint) ([]models.Follow, error) {
	var out []models.Follow
	for _, e := range r.edges {
		if e.FollowedID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeFollowRepo) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	for _, e := range r.edges {
		if e.FollowerID == userID {
			ids = append(ids, e.FollowedID)
		}
	}
	return ids, nil
}

type fakePublicationRepo struct {
	pubs []models.Publication
}

func newFakePublicationRepo() *fakePublicationRepo {
	return &fakePublicationRepo{}
}

// add seeds a publication with a chosen creation time, bypassing the
// create path so ordering scenarios can control timestamps.
func (r *fakePublicationRepo) add(ownerID uint, text string, createdAt time.Time) models.Publication {
	p := models.Publication{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		Text:      text,
		CreatedAt: createdAt,
	}
	r.pubs = append(r.pubs, p)
	return p
}

func (r *fakePublicationRepo) CreatePublication(_ context.Context, publication *models.Publication) error {
	publication.ID = primitive.NewObjectID()
	publication.CreatedAt = time.Now()
	r.pubs = append(r.pubs, *publication)
	return nil
}

func (r *fakePublicationRepo) GetPublicationByID(_ context.Context, id string) (*models.Publication, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidID
	}
	for _, p := range r.pubs {
		if p.ID == objID {
			clone := p
			return &clone, nil
		}
	}
	return nil, apperrors.ErrPublicationNotFound
}

// sortNewestFirst mirrors the Mongo feed sort: created_at desc, _id desc.
func sortNewestFirst(pubs []models.Publication) {
	sort.Slice(pubs, func(i, j int) bool {
		if !pubs[i].CreatedAt.Equal(pubs[j].CreatedAt) {
			return pubs[i].CreatedAt.After(pubs[j].CreatedAt)
		}
		return pubs[i].ID.Hex() > pubs[j].ID.Hex()
	})
}

func paginate(pubs []models.Publication, skip, limit int64) []models.Publication {
	if skip > int64(len(pubs)) {
		skip = int64(len(pubs))
	}
	end := skip + limit
	if end > int64(len(pubs)) {
		end = int64(len(pubs))
	}
	return pubs[skip:end]
}

func (r *fakePublicationRepo) GetPublicationsByOwner(_ context.Context, ownerID uint, skip, limit int64) ([]models.Publication, error) {
	var out []models.Publication
	for _, p := range r.pubs {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	sortNewestFirst(out)
	return paginate(out, skip, limit), nil
}

func (r *fakePublicationRepo) GetFeedPublications(_ context.Context, ownerIDs []uint, skip, limit int64) ([]models.Publication, error) {
	owners := make(map[uint]bool, len(ownerIDs))
	for _, id := range ownerIDs {
		owners[id] = true
	}
	var out []models.Publication
	for _, p := range r.pubs {
		if owners[p.OwnerID] {
			out = append(out, p)
		}
	}
	sortNewestFirst(out)
	return paginate(out, skip, limit), nil
}

func (r *fakePublicationRepo) UpdatePublicationText(_ context.Context, id string, ownerID uint, text string) (*models.Publication, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidID
	}
	for i := range r.pubs {
		if r.pubs[i].ID == objID && r.pubs[i].OwnerID == ownerID {
			r.pubs[i].Text = text
			clone := r.pubs[i]
			return &clone, nil
		}
	}
	return nil, apperrors.ErrPublicationNotFound
}

func (r *fakePublicationRepo) AttachFile(_ context.Context, id string, ownerID uint, file string) (*models.Publication, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidID
	}
	for i := range r.pubs {
		if r.pubs[i].ID == objID && r.pubs[i].OwnerID == ownerID {
			r.pubs[i].File = file
			clone := r.pubs[i]
			return &clone, nil
		}
	}
	return nil, apperrors.ErrPublicationNotFound
}

func (r *fakePublicationRepo) DeletePublication(_ context.Context, id string, ownerID uint) (*models.Publication, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidID
	}
	for i := range r.pubs {
		if r.pubs[i].ID == objID && r.pubs[i].OwnerID == ownerID {
			removed := r.pubs[i]
			r.pubs = append(r.pubs[:i], r.pubs[i+1:]...)
			return &removed, nil
		}
	}
	return nil, apperrors.ErrPublicationNotFound
}
