package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ui-gallery-backend/models"
)

// AllCategories is the category sentinel that disables category filtering.
const AllCategories = "All"

// ComponentQuery narrows the public listing.
type ComponentQuery struct {
	Category string
	Search   string
	Offset   int
	Limit    int
}

// ComponentRepository defines the component store.
type ComponentRepository interface {
	Create(ctx context.Context, component *models.Component) error
	FindByID(ctx context.Context, id uint) (*models.Component, error)
	FindByOwner(ctx context.Context, userID uint) ([]models.Component, error)
	FindByStatus(ctx context.Context, status models.Status) ([]models.Component, error)
	UpdateStatus(ctx context.Context, id uint, status models.Status) (*models.Component, error)
	DeleteCascade(ctx context.Context, id uint) (bool, error)
	QueryAccepted(ctx context.Context, q ComponentQuery) ([]models.Component, error)
}

type componentRepository struct {
	db *gorm.DB
}

// NewComponentRepository creates a new ComponentRepository instance.
func NewComponentRepository(db *gorm.DB) ComponentRepository {
	return &componentRepository{db: db}
}

func (r *componentRepository) Create(ctx context.Context, component *models.Component) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(component).Error; err != nil {
		return fmt.Errorf("failed to create component: %w", err)
	}
	return nil
}

func (r *componentRepository) FindByID(ctx context.Context, id uint) (*models.Component, error) {
	var component models.Component
	if err := r.db.WithContext(ctx).First(&component, id).Error; err != nil {
		return nil, wrapLookup(err, "failed to find component %d", id)
	}
	return &component, nil
}

func (r *componentRepository) FindByOwner(ctx context.Context, userID uint) ([]models.Component, error) {
	var components []models.Component
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&components).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find components of user %d: %w", userID, err)
	}
	return components, nil
}

func (r *componentRepository) FindByStatus(ctx context.Context, status models.Status) ([]models.Component, error) {
	var components []models.Component
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("id").Find(&components).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find %s components: %w", status, err)
	}
	return components, nil
}

func (r *componentRepository) UpdateStatus(ctx context.Context, id uint, status models.Status) (*models.Component, error) {
	var component models.Component
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&component, id).Error; err != nil {
			return err
		}
		component.Status = status
		return tx.Model(&component).Update("status", status).Error
	})
	if err != nil {
		return nil, wrapLookup(err, "failed to update status of component %d", id)
	}
	return &component, nil
}

// DeleteCascade removes the component and its ratings.
func (r *componentRepository) DeleteCascade(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var component models.Component
		if err := tx.First(&component, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Where("component_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&component).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete component %d: %w", id, err)
	}
	return deleted, nil
}

// QueryAccepted lists ACCEPTED components only, whatever the filters say.
func (r *componentRepository) QueryAccepted(ctx context.Context, q ComponentQuery) ([]models.Component, error) {
	query := r.db.WithContext(ctx).Model(&models.Component{}).
		Where("status = ?", models.StatusAccepted)

	if q.Category != "" && q.Category != AllCategories {
		query = query.Where("category = ?", q.Category)
	}

	if q.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(q.Search)) + "%"
		query = query.Where(
			`(category_fold LIKE ? ESCAPE '\' OR html_fold LIKE ? ESCAPE '\')`,
			pattern, pattern,
		)
	}

	var components []models.Component
	err := query.Order("id").Offset(q.Offset).Limit(q.Limit).Find(&components).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query accepted components: %w", err)
	}
	return components, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
