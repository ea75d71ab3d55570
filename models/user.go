// user.go - Defines the User model and roles

package models

import "time"

// Role separates regular members from moderators.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is a registered gallery member. Components reference it by UserID;
// there is no back-reference slice here.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	Username     string
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"type:varchar(10);not null;default:'USER'"`
	CreatedAt    time.Time
}

// IsAdmin reports whether the user may moderate.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
