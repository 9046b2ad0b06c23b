package domain

import "time"

// Comment is attached to one video. OwnerID is immutable after creation.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	VideoID   string    `json:"video_id" gorm:"index;not null"`
	OwnerID   string    `json:"owner_id" gorm:"index;not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
