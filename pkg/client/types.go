package client

import "time"

// Account is the public view of a user.
type Account struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// Session is returned by signup and signin.
type Session struct {
	Account
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SignupRequest creates an account.
type SignupRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	DisplayName     string `json:"displayName"`
}

// PasswordChange replaces the caller's password.
type PasswordChange struct {
	Password           string `json:"password"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// ReviewAuthor identifies who wrote a review.
type ReviewAuthor struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
}

// Review is a stored review.
type Review struct {
	ID          string       `json:"id"`
	User        ReviewAuthor `json:"user"`
	MediaID     string       `json:"mediaId"`
	MediaType   string       `json:"mediaType"`
	MediaTitle  string       `json:"mediaTitle"`
	MediaPoster string       `json:"mediaPoster"`
	Content     string       `json:"content"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// NewReview is the payload for creating a review.
type NewReview struct {
	MediaID     string `json:"mediaId"`
	MediaType   string `json:"mediaType"`
	MediaTitle  string `json:"mediaTitle"`
	MediaPoster string `json:"mediaPoster"`
	Content     string `json:"content"`
}

// Favorite is a bookmarked title.
type Favorite struct {
	ID          string    `json:"id"`
	User        string    `json:"user"`
	MediaID     string    `json:"mediaId"`
	MediaType   string    `json:"mediaType"`
	MediaTitle  string    `json:"mediaTitle"`
	MediaPoster string    `json:"mediaPoster"`
	MediaRate   float64   `json:"mediaRate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewFavorite is the payload for bookmarking a title.
type NewFavorite struct {
	MediaID     string  `json:"mediaId"`
	MediaType   string  `json:"mediaType"`
	MediaTitle  string  `json:"mediaTitle"`
	MediaPoster string  `json:"mediaPoster"`
	MediaRate   float64 `json:"mediaRate"`
}
