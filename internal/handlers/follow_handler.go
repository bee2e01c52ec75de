package handlers

import (
	"strconv"

	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/apperrors"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/models"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles the follow-graph HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follow/:id", h.Follow)
	g.DELETE("/unfollow/:id", h.Unfollow)
	g.GET("/following", h.Following)
	g.GET("/followers", h.Followers)
}

// followView pairs an edge with the counterpart user's public profile
type followView struct {
	models.Follow
	User models.PublicProfile `json:"user"`
}

// Follow creates a follow edge from the caller to :id. No reciprocal edge
// is created. Toggle UIs should treat the already-following error as
// "already in desired state".
func (h *FollowHandler) Follow(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return apperrors.ErrInvalidID
	}

	if currentUserID == uint(targetID) {
		return apperrors.ErrSelfFollow
	}

	// Advisory check; the compound unique index settles concurrent requests
	isFollowing, err := h.followRepository.IsFollowing(currentUserID, uint(targetID))
	if err != nil {
		return err
	}
	if isFollowing {
		return apperrors.ErrAlreadyFollowing
	}

	follow := &models.Follow{
		FollowerID: currentUserID,
		FollowedID: uint(targetID),
	}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		return err
	}

	return success(c, echo.Map{
		"message": "user followed",
		"follow":  follow,
	})
}

// Unfollow removes the caller's follow edge to :id and returns it
func (h *FollowHandler) Unfollow(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return apperrors.ErrInvalidID
	}

	follow, err := h.followRepository.DeleteFollow(currentUserID, uint(targetID))
	if err != nil {
		return err
	}

	return success(c, echo.Map{
		"message": "user unfollowed",
		"follow":  follow,
	})
}

// Following lists the caller's outbound edges with the followed users' profiles
func (h *FollowHandler) Following(c echo.Context) error {
	follows, err := h.followRepository.GetFollowing(getUserIDFromContext(c))
	if err != nil {
		return err
	}

	views, err := h.enrich(follows, func(f models.Follow) uint { return f.FollowedID })
	if err != nil {
		return err
	}
	return success(c, echo.Map{"following": views})
}

// Followers lists the caller's inbound edges with the followers' profiles
func (h *FollowHandler) Followers(c echo.Context) error {
	follows, err := h.followRepository.GetFollowers(getUserIDFromContext(c))
	if err != nil {
		return err
	}

	views, err := h.enrich(follows, func(f models.Follow) uint { return f.FollowerID })
	if err != nil {
		return err
	}
	return success(c, echo.Map{"followers": views})
}

func (h *FollowHandler) enrich(follows []models.Follow, counterpart func(models.Follow) uint) ([]followView, error) {
	ids := make([]uint, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, counterpart(f))
	}

	users, err := h.userRepository.GetUsersByIDs(ids)
	if err != nil {
		return nil, err
	}
	profiles := make(map[uint]models.PublicProfile, len(users))
	for i := range users {
		profiles[users[i].ID] = users[i].ToPublic()
	}

	views := make([]followView, 0, len(follows))
	for _, f := range follows {
		views = append(views, followView{Follow: f, User: profiles[counterpart(f)]})
	}
	return views, nil
}
