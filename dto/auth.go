package dto

import "time"

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest accepts either the OAuth2 password form (username carries the
// email) or a JSON body.
type LoginRequest struct {
	Email    string `json:"email" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ComponentRequest is the submission payload. Markup fields must be present
// but may be empty, hence the pointers.
type ComponentRequest struct {
	Category string  `json:"category" binding:"required"`
	HTMLCode *string `json:"html_code" binding:"required"`
	CSSCode  *string `json:"css_code" binding:"required"`
}

// RatingRequest carries a score. The score must be present (0 is a valid
// score, hence the pointer) but its range is not checked here.
type RatingRequest struct {
	Score *int `json:"score" binding:"required"`
}

// StatusRequest is the optional JSON body of a status change.
type StatusRequest struct {
	Status string `json:"status"`
}

// PageQuery is the skip/limit pair accepted by listing endpoints.
type PageQuery struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}

// ComponentListQuery is the query string of the public listing.
type ComponentListQuery struct {
	PageQuery
	Search   string `form:"search"`
	Category string `form:"category"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
