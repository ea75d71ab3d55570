package services

import (
	"context"
	"errors"
	"math"

	"github.com/sirupsen/logrus"

	"ui-gallery-backend/metrics"
	"ui-gallery-backend/models"
	"ui-gallery-backend/repository"
)

// RatingService records votes and aggregates them per component.
type RatingService struct {
	ratings    repository.RatingRepository
	components repository.ComponentRepository
	log        *logrus.Logger
}

// NewRatingService creates a RatingService.
func NewRatingService(ratings repository.RatingRepository, components repository.ComponentRepository, log *logrus.Logger) *RatingService {
	return &RatingService{ratings: ratings, components: components, log: log}
}

// Vote records user's score for a component, replacing any earlier vote by
// the same user. Scores are stored as given.
func (s *RatingService) Vote(ctx context.Context, user *models.User, componentID uint, score int) error {
	if user == nil {
		return ErrUnauthorized
	}

	if _, err := s.components.FindByID(ctx, componentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.ratings.Upsert(ctx, user.ID, componentID, score); err != nil {
		return err
	}

	metrics.VoteCast()
	s.log.WithFields(logrus.Fields{
		"user_id":      user.ID,
		"component_id": componentID,
		"score":        score,
	}).Debug("vote recorded")
	return nil
}

// AverageAndCount returns the mean score rounded to one decimal place and the
// number of votes. A component without votes yields (0, 0).
func (s *RatingService) AverageAndCount(ctx context.Context, componentID uint) (float64, int, error) {
	ratings, err := s.ratings.FindByComponent(ctx, componentID)
	if err != nil {
		return 0, 0, err
	}
	if len(ratings) == 0 {
		return 0, 0, nil
	}

	total := 0
	for _, r := range ratings {
		total += r.Score
	}
	avg := float64(total) / float64(len(ratings))
	return math.Round(avg*10) / 10, len(ratings), nil
}
