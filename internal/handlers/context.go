package handlers

import (
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/models"
	"github.com/labstack/echo/v4"
)

// getUserClaims returns the JWT claims stored by the auth middleware, or nil
// on an unauthenticated request.
func getUserClaims(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}

// getUserIDFromContext returns the authenticated user's id, 0 if none.
func getUserIDFromContext(c echo.Context) uint {
	if claims := getUserClaims(c); claims != nil {
		return claims.UserID
	}
	return 0
}
