package router

import (
	"fmt"

	"firebase.google.com/go/v4/auth"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/handlers"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/middleware"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/models"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/repositories"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// Migrate runs the PostgreSQL auto-migrations plus the expression index that
// enforces case-insensitive nick uniqueness (not expressible via struct tags).
func Migrate(pgdb *gorm.DB) error {
	if err := pgdb.AutoMigrate(&models.User{}, &models.Follow{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	err := pgdb.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_users_nick_lower ON users (LOWER(nick))").Error
	if err != nil {
		return fmt.Errorf("create nick index: %w", err)
	}
	return nil
}

// SetupRoutes wires repositories and handlers and registers all routes.
// firebaseAuthClient may be nil; the federated login route is then skipped.
func SetupRoutes(e *echo.Echo, cfg *config.Config, logger *zap.Logger, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) error {
	if err := Migrate(pgdb); err != nil {
		return err
	}
	logger.Info("postgres migrations completed")

	e.GET("/health", handlers.HealthCheck)

	userRepo := repositories.NewPostgresUserRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	publicationRepo := repositories.NewMongoPublicationRepository(mgClient.Database(cfg.MongoDB))

	userHandler := handlers.NewUserHandler(userRepo, cfg.UploadsDir)
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	publicationHandler := handlers.NewPublicationHandler(publicationRepo, userRepo, cfg.UploadsDir)
	feedHandler := handlers.NewFeedHandler(publicationRepo, userRepo, followRepo)

	// Unauthenticated: registration, login and stored images
	users := e.Group("/api/users")
	authHandler.RegisterAuthRoutes(users)
	userHandler.RegisterPublicRoutes(users)

	publicationsPublic := e.Group("/api/publications")
	publicationHandler.RegisterPublicRoutes(publicationsPublic)

	// Authenticated
	jwtAuth := middleware.JWTAuth(cfg.JWTSecret)

	usersAuth := e.Group("/api/users", jwtAuth)
	userHandler.RegisterProfileRoutes(usersAuth)

	api := e.Group("/api", jwtAuth)
	followHandler.RegisterFollowRoutes(api)
	feedHandler.RegisterFeedRoutes(api)

	publications := e.Group("/api/publications", jwtAuth)
	publicationHandler.RegisterPublicationRoutes(publications)

	logger.Info("routes configured")
	return nil
}
