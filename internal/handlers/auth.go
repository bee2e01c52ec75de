package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/apperrors"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/models"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles registration and authentication HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	firebaseAuth   *auth.Client
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler. firebaseAuthClient may be nil
// when Firebase credentials are not configured.
func NewAuthHandler(userRepo repositories.UserRepository, firebaseAuthClient *auth.Client, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		firebaseAuth:   firebaseAuthClient,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	if h.firebaseAuth != nil {
		g.POST("/firebase-login", h.FirebaseLogin)
	}
}

// Register handles user registration. Email and nick uniqueness is
// case-insensitive: the pre-check here gives a friendly message, the unique
// indexes settle concurrent registrations.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	existing, err := h.userRepository.FindByEmailOrNick(req.Email, req.Nick)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return apperrors.ErrDuplicateUser
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:     req.Name,
		Surname:  req.Surname,
		Bio:      req.Bio,
		Nick:     req.Nick,
		Email:    strings.ToLower(req.Email),
		Password: string(hashedPassword),
		Role:     "role_user",
		Image:    "default.png",
		Cover:    "default-cover.png",
	}

	if err := h.userRepository.CreateUser(user); err != nil {
		return err
	}

	return success(c, echo.Map{
		"message": "user registered",
		"user":    user,
	})
}

// Login handles email+password authentication and issues a bearer token
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrInvalidCredentials
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return apperrors.ErrInvalidCredentials
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return err
	}

	return success(c, echo.Map{
		"message": "login ok",
		"user":    user,
		"token":   token,
	})
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// FirebaseLogin verifies a Firebase ID token, finds or creates the local
// user for its email, and issues a local bearer token.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.firebaseAuth.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	email, _ := token.Claims["email"].(string)
	if email == "" {
		return apperrors.ErrInvalidToken
	}
	name, _ := token.Claims["name"].(string)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	user, err := h.userRepository.GetUserByEmail(email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			return err
		}
		user, err = h.createFederatedUser(name, email)
		if err != nil {
			return err
		}
	}

	localJWT, err := h.generateJWT(user)
	if err != nil {
		return err
	}

	return success(c, echo.Map{
		"message": "login ok",
		"user":    user,
		"token":   localJWT,
	})
}

// createFederatedUser provisions a local account for a federated identity.
// The password slot gets a random hashed value so the account cannot be
// entered through the password login path.
func (h *AuthHandler) createFederatedUser(name, email string) (*models.User, error) {
	nick := strings.SplitN(email, "@", 2)[0]
	if existing, err := h.userRepository.FindByEmailOrNick(email, nick); err != nil {
		return nil, err
	} else if len(existing) > 0 {
		nick = nick + "-" + uuid.NewString()[:8]
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Nick:     nick,
		Email:    strings.ToLower(email),
		Password: string(hashedPassword),
		Role:     "role_user",
		Image:    "default.png",
		Cover:    "default-cover.png",
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// generateJWT signs a token whose payload carries the user's id and public
// profile fields, valid for 30 days.
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID:  user.ID,
		Name:    user.Name,
		Surname: user.Surname,
		Nick:    user.Nick,
		Email:   user.Email,
		Role:    user.Role,
		Image:   user.Image,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
