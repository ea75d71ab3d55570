package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"ui-gallery-backend/dto"
	"ui-gallery-backend/metrics"
	"ui-gallery-backend/models"
	"ui-gallery-backend/repository"
)

// Listing defaults.
const (
	DefaultOffset = 0
	DefaultLimit  = 100
)

// EventPublisher receives moderation events.
type EventPublisher interface {
	PublishModeration(ctx context.Context, event dto.ModerationEvent) error
}

// ModerationService owns the component lifecycle: submission, review and
// removal, plus the public and per-owner listings.
type ModerationService struct {
	components repository.ComponentRepository
	users      repository.UserRepository
	ratings    *RatingService
	events     EventPublisher
	log        *logrus.Logger
	now        func() time.Time
}

// NewModerationService creates a ModerationService. A nil publisher drops
// events.
func NewModerationService(components repository.ComponentRepository, users repository.UserRepository, ratings *RatingService, events EventPublisher, log *logrus.Logger) *ModerationService {
	if events == nil {
		events = nopPublisher{}
	}
	return &ModerationService{
		components: components,
		users:      users,
		ratings:    ratings,
		events:     events,
		log:        log,
		now:        time.Now,
	}
}

// Submit stores a new component owned by owner. New components always start
// IN_REVIEW.
func (s *ModerationService) Submit(ctx context.Context, owner *models.User, category, html, css string) (*dto.ComponentView, error) {
	if owner == nil {
		return nil, ErrUnauthorized
	}

	component := &models.Component{
		Category: category,
		HTMLCode: html,
		CSSCode:  css,
		Status:   models.StatusInReview,
		UserID:   owner.ID,
	}
	if err := s.components.Create(ctx, component); err != nil {
		return nil, err
	}

	metrics.ComponentSubmitted()
	s.log.WithFields(logrus.Fields{
		"component_id": component.ID,
		"user_id":      owner.ID,
		"category":     category,
	}).Info("component submitted")

	view := dto.NewComponentView(component, owner, 0, 0)
	return &view, nil
}

// Transition sets a component's status. Any status may move to any other,
// including itself; only administrators may do it.
func (s *ModerationService) Transition(ctx context.Context, componentID uint, caller *models.User, status models.Status) (*dto.ComponentView, error) {
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	component, err := s.components.UpdateStatus(ctx, componentID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	metrics.ModerationDecision(string(status))
	s.log.WithFields(logrus.Fields{
		"component_id": componentID,
		"status":       status,
		"moderator_id": caller.ID,
	}).Info("component status changed")
	s.publish(ctx, dto.ModerationEvent{
		ComponentID: componentID,
		Action:      dto.ActionStatusChanged,
		Status:      status,
		ModeratorID: caller.ID,
		At:          s.now().UTC(),
	})

	views, err := s.project(ctx, []models.Component{*component})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Delete removes a component and its ratings. It reports false when there was
// nothing to delete.
func (s *ModerationService) Delete(ctx context.Context, componentID uint, caller *models.User) (bool, error) {
	if err := RequireAdmin(caller); err != nil {
		return false, err
	}

	deleted, err := s.components.DeleteCascade(ctx, componentID)
	if err != nil || !deleted {
		return false, err
	}

	s.log.WithFields(logrus.Fields{
		"component_id": componentID,
		"moderator_id": caller.ID,
	}).Info("component deleted")
	s.publish(ctx, dto.ModerationEvent{
		ComponentID: componentID,
		Action:      dto.ActionDeleted,
		ModeratorID: caller.ID,
		At:          s.now().UTC(),
	})
	return true, nil
}

// ListPublic returns accepted components, optionally narrowed by exact
// category and a case-insensitive search over category and markup. Negative
// offset or non-positive limit fall back to the defaults.
func (s *ModerationService) ListPublic(ctx context.Context, filter dto.ComponentFilter, offset, limit int) ([]dto.ComponentView, error) {
	if offset < 0 {
		offset = DefaultOffset
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	components, err := s.components.QueryAccepted(ctx, repository.ComponentQuery{
		Category: filter.Category,
		Search:   filter.Search,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}
	return s.project(ctx, components)
}

// ListPending returns every component awaiting review.
func (s *ModerationService) ListPending(ctx context.Context, caller *models.User) ([]dto.ComponentView, error) {
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}

	components, err := s.components.FindByStatus(ctx, models.StatusInReview)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, components)
}

// ListByOwner returns all of a user's components regardless of status.
func (s *ModerationService) ListByOwner(ctx context.Context, userID uint) ([]dto.ComponentView, error) {
	components, err := s.components.FindByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, components)
}

// Get returns one component in any status.
func (s *ModerationService) Get(ctx context.Context, componentID uint) (*dto.ComponentView, error) {
	component, err := s.components.FindByID(ctx, componentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	views, err := s.project(ctx, []models.Component{*component})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *ModerationService) project(ctx context.Context, components []models.Component) ([]dto.ComponentView, error) {
	views := make([]dto.ComponentView, 0, len(components))
	if len(components) == 0 {
		return views, nil
	}

	ids := make([]uint, 0, len(components))
	for _, c := range components {
		ids = append(ids, c.UserID)
	}
	owners, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range components {
		avg, count, err := s.ratings.AverageAndCount(ctx, components[i].ID)
		if err != nil {
			return nil, err
		}
		views = append(views, dto.NewComponentView(&components[i], owners[components[i].UserID], avg, count))
	}
	return views, nil
}

// publish never fails the calling operation; the change is already stored.
func (s *ModerationService) publish(ctx context.Context, event dto.ModerationEvent) {
	if err := s.events.PublishModeration(ctx, event); err != nil {
		s.log.WithError(err).WithField("component_id", event.ComponentID).Warn("failed to publish moderation event")
	}
}

type nopPublisher struct{}

func (nopPublisher) PublishModeration(context.Context, dto.ModerationEvent) error { return nil }
