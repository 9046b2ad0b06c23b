package domain

import "time"

type Playlist struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	OwnerID     string    `json:"owner_id" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlaylistVideo links a video into a playlist. The composite unique
// index makes adding the same video twice a constraint violation, which
// the usecase absorbs as a no-op.
type PlaylistVideo struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	PlaylistID string    `json:"playlist_id" gorm:"uniqueIndex:idx_playlist_videos_pair;not null"`
	VideoID    string    `json:"video_id" gorm:"uniqueIndex:idx_playlist_videos_pair;not null"`
	AddedAt    time.Time `json:"added_at"`
}
