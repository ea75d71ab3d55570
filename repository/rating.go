package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ui-gallery-backend/models"
)

// RatingRepository defines the rating store.
type RatingRepository interface {
	Upsert(ctx context.Context, userID, componentID uint, score int) error
	FindByComponent(ctx context.Context, componentID uint) ([]models.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new RatingRepository instance.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert writes the score in one statement; a second vote by the same user
// overwrites the first.
func (r *ratingRepository) Upsert(ctx context.Context, userID, componentID uint, score int) error {
	rating := models.Rating{UserID: userID, ComponentID: componentID, Score: score}
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "component_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score"}),
		}).
		Create(&rating).Error
	if err != nil {
		return fmt.Errorf("failed to save rating of user %d for component %d: %w", userID, componentID, err)
	}
	return nil
}

func (r *ratingRepository) FindByComponent(ctx context.Context, componentID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).Where("component_id = ?", componentID).Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings for component %d: %w", componentID, err)
	}
	return ratings, nil
}
