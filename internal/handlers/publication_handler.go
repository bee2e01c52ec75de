package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/apperrors"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/models"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/repositories"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/uploads"
	"github.com/labstack/echo/v4"
)

// PublicationHandler handles HTTP requests related to publications
type PublicationHandler struct {
	publicationRepository repositories.PublicationRepository
	userRepository        repositories.UserRepository
	uploadsDir            string
}

// NewPublicationHandler creates a new PublicationHandler
func NewPublicationHandler(publicationRepo repositories.PublicationRepository, userRepo repositories.UserRepository, uploadsDir string) *PublicationHandler {
	return &PublicationHandler{
		publicationRepository: publicationRepo,
		userRepository:        userRepo,
		uploadsDir:            uploadsDir,
	}
}

// RegisterPublicationRoutes registers the authenticated publication routes
func (h *PublicationHandler) RegisterPublicationRoutes(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("/user/:id", h.UserPublications)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/upload-image/:id", h.UploadImage)
}

// RegisterPublicRoutes registers the public image-serving route
func (h *PublicationHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/image/:file", h.GetImage)
}

// Create creates a new publication owned by the caller
func (h *PublicationHandler) Create(c echo.Context) error {
	var req models.CreatePublicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	publication := &models.Publication{
		OwnerID: getUserIDFromContext(c),
		Text:    req.Text,
	}
	if err := h.publicationRepository.CreatePublication(c.Request().Context(), publication); err != nil {
		return err
	}

	return success(c, echo.Map{
		"message":     "publication created",
		"publication": publication,
	})
}

// UserPublications lists a user's publications, newest first, with the
// owner's public profile attached once.
func (h *PublicationHandler) UserPublications(c echo.Context) error {
	ownerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return apperrors.ErrInvalidID
	}

	owner, err := h.userRepository.GetUserByID(uint(ownerID))
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	skip := int64((page - 1) * limit)

	publications, err := h.publicationRepository.GetPublicationsByOwner(c.Request().Context(), uint(ownerID), skip, int64(limit))
	if err != nil {
		return err
	}

	return success(c, echo.Map{
		"user":         owner.ToPublic(),
		"publications": publications,
	})
}

// Update edits the text of the caller's own publication. A publication owned
// by someone else reports not-found.
func (h *PublicationHandler) Update(c echo.Context) error {
	var req models.UpdatePublicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	publication, err := h.publicationRepository.UpdatePublicationText(c.Request().Context(), c.Param("id"), getUserIDFromContext(c), req.Text)
	if err != nil {
		return err
	}

	return success(c, echo.Map{
		"message":     "publication updated",
		"publication": publication,
	})
}

// Delete removes the caller's own publication and returns it
func (h *PublicationHandler) Delete(c echo.Context) error {
	publication, err := h.publicationRepository.DeletePublication(c.Request().Context(), c.Param("id"), getUserIDFromContext(c))
	if err != nil {
		return err
	}

	return success(c, echo.Map{
		"message":     "publication deleted",
		"publication": publication,
	})
}

// UploadImage attaches an image to the caller's own publication
func (h *PublicationHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no file uploaded")
	}

	name, err := uploads.SaveImage(file, filepath.Join(h.uploadsDir, "publications"), "pub")
	if err != nil {
		return err
	}

	publication, err := h.publicationRepository.AttachFile(c.Request().Context(), c.Param("id"), getUserIDFromContext(c), name)
	if err != nil {
		return err
	}

	return success(c, echo.Map{
		"message":     "image uploaded",
		"publication": publication,
	})
}

// GetImage serves a stored publication image
func (h *PublicationHandler) GetImage(c echo.Context) error {
	path, ok := uploads.Resolve(filepath.Join(h.uploadsDir, "publications"), c.Param("file"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "image does not exist")
	}
	return c.File(path)
}
