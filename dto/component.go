// Package dto holds the public shapes returned by the API.
package dto

import (
	"time"

	"ui-gallery-backend/models"
)

// UserView is a user as shown to other callers; the password hash never
// leaves the service.
type UserView struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
}

// ComponentView is the only public representation of a component.
type ComponentView struct {
	ID          uint          `json:"id"`
	Category    string        `json:"category"`
	HTMLCode    string        `json:"html_code"`
	CSSCode     string        `json:"css_code"`
	Status      models.Status `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	Owner       UserView      `json:"owner"`
	Rating      float64       `json:"rating"`
	ReviewCount int           `json:"review_count"`
}

// ComponentFilter holds the optional public listing filters.
type ComponentFilter struct {
	Category string
	Search   string
}

// NewUserView projects a user.
func NewUserView(u *models.User) UserView {
	if u == nil {
		return UserView{}
	}
	return UserView{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// NewComponentView projects a component together with its owner and its
// rating aggregate. Every read path goes through here.
func NewComponentView(c *models.Component, owner *models.User, average float64, count int) ComponentView {
	return ComponentView{
		ID:          c.ID,
		Category:    c.Category,
		HTMLCode:    c.HTMLCode,
		CSSCode:     c.CSSCode,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		Owner:       NewUserView(owner),
		Rating:      average,
		ReviewCount: count,
	}
}
