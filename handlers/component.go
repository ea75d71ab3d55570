// component.go - Public gallery, submission and voting

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ui-gallery-backend/dto"
	"ui-gallery-backend/middleware"
	"ui-gallery-backend/services"
)

// ComponentHandler serves the component endpoints.
type ComponentHandler struct {
	moderation *services.ModerationService
	ratings    *services.RatingService
	log        *logrus.Logger
}

// NewComponentHandler creates a ComponentHandler.
func NewComponentHandler(moderation *services.ModerationService, ratings *services.RatingService, log *logrus.Logger) *ComponentHandler {
	return &ComponentHandler{moderation: moderation, ratings: ratings, log: log}
}

// List returns accepted components filtered by skip, limit, search and
// category.
func (h *ComponentHandler) List(c *gin.Context) {
	var q dto.ComponentListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	views, err := h.moderation.ListPublic(c.Request.Context(), dto.ComponentFilter{
		Category: q.Category,
		Search:   q.Search,
	}, q.Skip, q.Limit)
	if err != nil {
		respondError(c, h.log, err, "Component")
		return
	}
	c.JSON(http.StatusOK, views)
}

// Get returns one component.
func (h *ComponentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.moderation.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "Component")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Create submits a component for review.
func (h *ComponentHandler) Create(c *gin.Context) {
	var input dto.ComponentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	// New components always start IN_REVIEW, whoever submits them
	view, err := h.moderation.Submit(c.Request.Context(), middleware.CurrentUser(c), input.Category, *input.HTMLCode, *input.CSSCode)
	if err != nil {
		respondError(c, h.log, err, "Component")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Rate records the caller's vote.
func (h *ComponentHandler) Rate(c *gin.Context) {
	// STEP 1: Parse the component id and the score
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input dto.RatingRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	// STEP 2: Upsert the vote (a second vote replaces the first)
	if err := h.ratings.Vote(c.Request.Context(), middleware.CurrentUser(c), id, *input.Score); err != nil {
		respondError(c, h.log, err, "Component")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Rating submitted"})
}
