// auth.go - Bearer token authentication middleware
//
// Authentication Flow:
// 1. Extract the bearer token from the Authorization header
// 2. Resolve it to a stored user (signature, expiry, revocation, existence)
// 3. Store the user in the context for handlers
//
// Authorization Flow (Admin):
// 1. Run authentication first
// 2. Check the resolved user's role

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ui-gallery-backend/models"
	"ui-gallery-backend/services"
)

const userKey = "user"

// CallerResolver maps a bearer token to its user.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, token string) (*models.User, error)
}

// BearerToken returns the token from "Authorization: Bearer <token>", or "".
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// CurrentUser returns the user stored by AuthMiddleware, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// AbortUnauthorized stops the request with 401 and a Bearer challenge.
func AbortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
}

// AuthMiddleware requires a valid bearer token.
func AuthMiddleware(resolver CallerResolver, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, resolver, log) {
			return
		}
		c.Next()
	}
}

// AdminMiddleware requires a valid bearer token belonging to an ADMIN.
func AdminMiddleware(resolver CallerResolver, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, resolver, log) {
			return
		}

		// STEP 4: Check the role
		if err := services.RequireAdmin(CurrentUser(c)); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Not authorized"})
			return
		}
		c.Next()
	}
}

// authenticate resolves the caller into the context, aborting on failure.
func authenticate(c *gin.Context, resolver CallerResolver, log *logrus.Logger) bool {
	// STEP 1: Extract token
	token := BearerToken(c)
	if token == "" {
		AbortUnauthorized(c)
		return false
	}

	// STEP 2: Resolve the caller
	user, err := resolver.ResolveCaller(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			AbortUnauthorized(c)
			return false
		}
		log.WithError(err).Error("failed to resolve caller")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return false
	}

	// STEP 3: Store the user for handlers
	c.Set(userKey, user)
	return true
}
