package main

import (
	"context"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/handlers"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/router"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/pkg/config"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/pkg/firebase"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.Load()

	db, err := config.InitDB(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB()

	// Firebase is optional: without credentials the federated login route
	// simply is not registered.
	var firebaseAuthClient *firebaseauth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			logger.Fatal("failed to initialize Firebase", zap.Error(err))
		}
		firebaseAuthClient = firebaseApp.AuthClient
		logger.Info("firebase auth client initialized")
	} else {
		logger.Info("no firebase credentials configured, federated login disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(logger)

	router.SetupMiddleware(e)

	if err := router.SetupRoutes(e, cfg, logger, db.Postgres, db.Mongo, firebaseAuthClient); err != nil {
		logger.Fatal("failed to set up routes", zap.Error(err))
	}

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
