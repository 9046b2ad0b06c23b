package domain

import "time"

// User is both the account record and the channel identity. RefreshToken is
// the single rotating token field: whatever is stored here is the only
// refresh token the server will honor for this account.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	FullName     string    `json:"full_name"`
	Avatar       string    `json:"avatar,omitempty"`
	CoverImage   string    `json:"cover_image,omitempty"`
	PasswordHash string    `json:"-" gorm:"not null"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WatchEntry records that a user viewed a video.
type WatchEntry struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	VideoID   string    `json:"video_id" gorm:"not null"`
	WatchedAt time.Time `json:"watched_at"`
}
