package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/apperrors"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/models"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/repositories"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/uploads"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	userRepository repositories.UserRepository
	uploadsDir     string
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, uploadsDir string) *UserHandler {
	return &UserHandler{userRepository: userRepo, uploadsDir: uploadsDir}
}

// RegisterProfileRoutes registers the authenticated profile routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.GET("/profile/:id", h.GetUser)
	g.GET("/list", h.ListUsers)
	g.PUT("/update", h.UpdateProfile)
	g.POST("/upload-avatar", h.UploadAvatar)
	g.POST("/upload-cover", h.UploadCover)
}

// RegisterPublicRoutes registers the routes that serve stored images
func (h *UserHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/avatar/:file", h.GetAvatar)
	g.GET("/cover/:file", h.GetCover)
}

// GetProfile returns the authenticated user's own profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(getUserIDFromContext(c))
	if err != nil {
		return err
	}
	return success(c, echo.Map{"user": user})
}

// GetUser returns another user's profile by id
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return apperrors.ErrInvalidID
	}
	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		return err
	}
	return success(c, echo.Map{"user": user})
}

// ListUsers returns one page of the user directory, newest first
func (h *UserHandler) ListUsers(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 5
	}

	users, total, err := h.userRepository.ListUsers(page, limit)
	if err != nil {
		return err
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	return success(c, echo.Map{
		"users":       users,
		"totalDocs":   total,
		"totalPages":  totalPages,
		"currentPage": page,
	})
}

// UpdateProfile updates the authenticated user's mutable fields. Role and
// password are not mutable through this endpoint. Email/nick changes go
// through the same case-insensitive duplicate check as registration,
// excluding the caller's own record.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return err
	}

	if req.Email != "" || req.Nick != "" {
		email := req.Email
		if email == "" {
			email = user.Email
		}
		nick := req.Nick
		if nick == "" {
			nick = user.Nick
		}
		matches, err := h.userRepository.FindByEmailOrNick(email, nick)
		if err != nil {
			return err
		}
		for _, m := range matches {
			if m.ID != currentUserID {
				return apperrors.ErrDuplicateUser
			}
		}
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Surname != "" {
		user.Surname = req.Surname
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Nick != "" {
		user.Nick = req.Nick
	}
	if req.Email != "" {
		user.Email = strings.ToLower(req.Email)
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return err
	}

	return success(c, echo.Map{
		"message": "user updated",
		"user":    user,
	})
}

// UploadAvatar stores a new avatar image and updates the user record
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	return h.uploadUserImage(c, "avatar")
}

// UploadCover stores a new cover image and updates the user record
func (h *UserHandler) UploadCover(c echo.Context) error {
	return h.uploadUserImage(c, "cover")
}

func (h *UserHandler) uploadUserImage(c echo.Context, kind string) error {
	user, err := h.userRepository.GetUserByID(getUserIDFromContext(c))
	if err != nil {
		return err
	}

	file, err := c.FormFile(kind)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no image uploaded")
	}

	name, err := uploads.SaveImage(file, filepath.Join(h.uploadsDir, kind+"s"), kind)
	if err != nil {
		return err
	}

	if kind == "avatar" {
		user.Image = name
	} else {
		user.Cover = name
	}
	if err := h.userRepository.UpdateUser(user); err != nil {
		return err
	}

	return success(c, echo.Map{
		"message": kind + " updated",
		"file":    name,
		"user":    user,
	})
}

// GetAvatar serves a stored avatar image
func (h *UserHandler) GetAvatar(c echo.Context) error {
	return h.serveImage(c, "avatars")
}

// GetCover serves a stored cover image
func (h *UserHandler) GetCover(c echo.Context) error {
	return h.serveImage(c, "covers")
}

func (h *UserHandler) serveImage(c echo.Context, subdir string) error {
	path, ok := uploads.Resolve(filepath.Join(h.uploadsDir, subdir), c.Param("file"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "image does not exist")
	}
	return c.File(path)
}
