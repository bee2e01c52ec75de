package handlers

import (
	"strconv"

	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/models"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler composes the caller's feed from the follow graph and the
// publication store.
type FeedHandler struct {
	publicationRepository repositories.PublicationRepository
	userRepository        repositories.UserRepository
	followRepository      repositories.FollowRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	publicationRepo repositories.PublicationRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
) *FeedHandler {
	return &FeedHandler{
		publicationRepository: publicationRepo,
		userRepository:        userRepo,
		followRepository:      followRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// EnrichedPublication is a publication with its author's public profile
type EnrichedPublication struct {
	models.Publication
	Author models.PublicProfile `json:"author"`
}

// GetFeed returns publications from the users the caller follows, newest
// first. The caller's own publications never appear: the feed is restricted
// to the following set, and self-follow edges cannot exist.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	skip := int64((page - 1) * limit)

	followingIDs, err := h.followRepository.GetFollowingIDs(currentUserID)
	if err != nil {
		return err
	}

	// Following nobody is an empty feed, not an error
	if len(followingIDs) == 0 {
		return success(c, echo.Map{
			"feed": []EnrichedPublication{},
			"meta": echo.Map{"currentPage": page, "itemsPerPage": limit},
		})
	}

	publications, err := h.publicationRepository.GetFeedPublications(c.Request().Context(), followingIDs, skip, int64(limit))
	if err != nil {
		return err
	}

	feed, err := h.enrichAuthors(publications)
	if err != nil {
		return err
	}

	return success(c, echo.Map{
		"feed": feed,
		"meta": echo.Map{"currentPage": page, "itemsPerPage": limit},
	})
}

// enrichAuthors attaches each publication's owner profile, fetched in one
// id-set query. Credential hashes never reach the projection.
func (h *FeedHandler) enrichAuthors(publications []models.Publication) ([]EnrichedPublication, error) {
	seen := make(map[uint]bool)
	ownerIDs := make([]uint, 0, len(publications))
	for _, p := range publications {
		if !seen[p.OwnerID] {
			seen[p.OwnerID] = true
			ownerIDs = append(ownerIDs, p.OwnerID)
		}
	}

	owners, err := h.userRepository.GetUsersByIDs(ownerIDs)
	if err != nil {
		return nil, err
	}
	profiles := make(map[uint]models.PublicProfile, len(owners))
	for i := range owners {
		profiles[owners[i].ID] = owners[i].ToPublic()
	}

	enriched := make([]EnrichedPublication, len(publications))
	for i, p := range publications {
		enriched[i] = EnrichedPublication{Publication: p, Author: profiles[p.OwnerID]}
	}
	return enriched, nil
}
