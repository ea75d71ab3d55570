// admin.go - Moderation queue and user administration

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ui-gallery-backend/dto"
	"ui-gallery-backend/middleware"
	"ui-gallery-backend/models"
	"ui-gallery-backend/services"
)

// AdminHandler serves the /admin endpoints. Routes are expected behind
// AdminMiddleware; the services check the role again.
type AdminHandler struct {
	moderation *services.ModerationService
	users      *services.UserService
	log        *logrus.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(moderation *services.ModerationService, users *services.UserService, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{moderation: moderation, users: users, log: log}
}

// Pending lists components awaiting review.
func (h *AdminHandler) Pending(c *gin.Context) {
	views, err := h.moderation.ListPending(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, h.log, err, "Component")
		return
	}
	c.JSON(http.StatusOK, views)
}

// SetStatus moves a component to the status given as ?status= or in the
// JSON body.
func (h *AdminHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	// STEP 1: Read the target status, query string first
	status := c.Query("status")
	if status == "" && c.Request.ContentLength != 0 {
		var body dto.StatusRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}
		status = body.Status
	}

	// STEP 2: Apply it (admin check, status check, then lookup)
	view, err := h.moderation.Transition(c.Request.Context(), id, middleware.CurrentUser(c), models.Status(status))
	if err != nil {
		respondError(c, h.log, err, "Component")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Status updated successfully",
		"status":    view.Status,
		"component": view,
	})
}

// DeleteComponent removes a component and its ratings.
func (h *AdminHandler) DeleteComponent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.moderation.Delete(c.Request.Context(), id, middleware.CurrentUser(c)) // ratings go with it
	if err == nil && !deleted {
		err = services.ErrNotFound
	}
	if err != nil {
		respondError(c, h.log, err, "Component")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Component deleted successfully"})
}

// Users pages through all accounts.
func (h *AdminHandler) Users(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	views, err := h.users.ListUsers(c.Request.Context(), middleware.CurrentUser(c), q.Skip, q.Limit)
	if err != nil {
		respondError(c, h.log, err, "User")
		return
	}
	c.JSON(http.StatusOK, views)
}

// DeleteUser removes a user with everything they own or rated.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.users.DeleteUser(c.Request.Context(), middleware.CurrentUser(c), id)
	if err == nil && !deleted {
		err = services.ErrNotFound
	}
	if err != nil {
		respondError(c, h.log, err, "User")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}

// UserComponents lists one user's components in every status.
func (h *AdminHandler) UserComponents(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	views, err := h.moderation.ListByOwner(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "User")
		return
	}
	c.JSON(http.StatusOK, views)
}
