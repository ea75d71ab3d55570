// user.go - Handles registration, login, logout and the caller's own data

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ui-gallery-backend/dto"
	"ui-gallery-backend/middleware"
	"ui-gallery-backend/services"
)

// UserHandler serves the account endpoints.
type UserHandler struct {
	auth       *services.AuthService
	moderation *services.ModerationService
	tokenTTL   time.Duration
	log        *logrus.Logger
}

// NewUserHandler creates a UserHandler issuing tokens valid for tokenTTL.
func NewUserHandler(auth *services.AuthService, moderation *services.ModerationService, tokenTTL time.Duration, log *logrus.Logger) *UserHandler {
	return &UserHandler{auth: auth, moderation: moderation, tokenTTL: tokenTTL, log: log}
}

// Register creates a USER account.
func (h *UserHandler) Register(c *gin.Context) {
	// STEP 1: Parse and validate the JSON body
	var input dto.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	// STEP 2: Create the account (duplicate email is a 400)
	user, err := h.auth.Register(c.Request.Context(), input.Email, input.Username, input.Password)
	if err != nil {
		respondError(c, h.log, err, "User")
		return
	}
	c.JSON(http.StatusOK, dto.NewUserView(user)) // never includes the hash
}

// Login issues a bearer token. It accepts the OAuth2 password form
// (username, password) as well as a JSON body (email, password).
func (h *UserHandler) Login(c *gin.Context) {
	// STEP 1: Bind form or JSON depending on Content-Type
	var input dto.LoginRequest
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}

	// STEP 2: Check the password and sign a token
	cred, err := h.auth.Authenticate(c.Request.Context(), input.Email, input.Password, h.tokenTTL)
	if err != nil {
		respondError(c, h.log, err, "User")
		return
	}
	// STEP 3: Return it in the OAuth2 token shape
	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: cred.Token,
		TokenType:   "bearer",
		ExpiresAt:   cred.ExpiresAt,
	})
}

// Logout revokes the presented token.
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.BearerToken(c)); err != nil {
		respondError(c, h.log, err, "Token")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// Me returns the caller.
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewUserView(middleware.CurrentUser(c)))
}

// MyComponents lists the caller's components in every status.
func (h *UserHandler) MyComponents(c *gin.Context) {
	user := middleware.CurrentUser(c)
	views, err := h.moderation.ListByOwner(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.log, err, "User")
		return
	}
	c.JSON(http.StatusOK, views)
}
