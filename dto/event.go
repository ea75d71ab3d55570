package dto

import (
	"time"

	"ui-gallery-backend/models"
)

// Moderation event actions.
const (
	ActionStatusChanged = "status_changed"
	ActionDeleted       = "deleted"
)

// ModerationEvent is published after an administrator changes or removes a
// component.
type ModerationEvent struct {
	ComponentID uint          `json:"component_id"`
	Action      string        `json:"action"`
	Status      models.Status `json:"status,omitempty"`
	ModeratorID uint          `json:"moderator_id"`
	At          time.Time     `json:"at"`
}
