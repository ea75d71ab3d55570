// component.go - Defines submitted components and their moderation status

package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Status is the moderation state of a component.
type Status string

const (
	StatusInReview Status = "IN_REVIEW"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

// Valid reports whether s is one of the three moderation states.
func (s Status) Valid() bool {
	switch s {
	case StatusInReview, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Component is an HTML/CSS snippet submitted by a user.
type Component struct {
	ID        uint   `gorm:"primaryKey"`
	Category  string `gorm:"index;not null"`
	HTMLCode  string `gorm:"type:text"`
	CSSCode   string `gorm:"type:text"`
	Status    Status `gorm:"type:varchar(16);index;not null;default:'IN_REVIEW'"`
	CreatedAt time.Time
	UserID    uint `gorm:"index;not null"`
	User      User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`

	// Lower-cased copies for search. Folding happens here rather than in SQL
	// because sqlite's LOWER() only folds ASCII.
	CategoryFold string `gorm:"type:text"`
	HTMLFold     string `gorm:"type:text"`
}

// BeforeSave keeps the search columns in step with the content.
func (c *Component) BeforeSave(*gorm.DB) error {
	c.CategoryFold = strings.ToLower(c.Category)
	c.HTMLFold = strings.ToLower(c.HTMLCode)
	return nil
}
