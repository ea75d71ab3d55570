package models

// Rating is one user's score for one component. The composite unique index
// keeps at most one row per (user, component).
type Rating struct {
	ID          uint      `gorm:"primaryKey"`
	Score       int       `gorm:"not null"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_rating_user_component"`
	ComponentID uint      `gorm:"not null;uniqueIndex:idx_rating_user_component;index"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Component   Component `gorm:"foreignKey:ComponentID;constraint:OnDelete:CASCADE;"`
}
