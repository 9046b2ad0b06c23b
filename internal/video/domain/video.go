package domain

import "time"

// Video is an uploaded media item. OwnerID is set once at publish time and
// never changes; every mutating operation is authorized against it.
type Video struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	OwnerID     string    `json:"owner_id" gorm:"index;not null"`
	VideoFile   string    `json:"video_file" gorm:"not null"`
	Thumbnail   string    `json:"thumbnail" gorm:"not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views" gorm:"default:0"`
	IsPublished bool      `json:"is_published" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
