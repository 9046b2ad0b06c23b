package repository

import (
	"context"
	"errors"
	"time"

	"vidtube-backend/internal/playlist/domain"
	"vidtube-backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) error
	FindByID(ctx context.Context, id string) (*domain.Playlist, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Playlist, error)
	Update(ctx context.Context, playlist *domain.Playlist) error
	Delete(ctx context.Context, id string) error

	AddVideo(ctx context.Context, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, playlistID, videoID string) (bool, error)
	VideoIDs(ctx context.Context, playlistID string) ([]string, error)
	RemoveVideoEverywhere(ctx context.Context, videoID string) error
}

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *playlistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	if playlist.ID == "" {
		playlist.ID = uuid.New().String()
	}
	playlist.CreatedAt = time.Now()
	playlist.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Create(playlist).Error
}

func (r *playlistRepository) FindByID(ctx context.Context, id string) (*domain.Playlist, error) {
	var playlist domain.Playlist
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&playlist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &playlist, nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Playlist, error) {
	var playlists []*domain.Playlist
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&playlists).Error
	return playlists, err
}

func (r *playlistRepository) Update(ctx context.Context, playlist *domain.Playlist) error {
	playlist.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Model(&domain.Playlist{}).
		Where("id = ?", playlist.ID).
		Updates(map[string]interface{}{
			"name":        playlist.Name,
			"description": playlist.Description,
			"updated_at":  playlist.UpdatedAt,
		}).Error
}

func (r *playlistRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&domain.PlaylistVideo{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Playlist{}).Error
	})
}

func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID string) error {
	entry := &domain.PlaylistVideo{
		ID:         uuid.New().String(),
		PlaylistID: playlistID,
		VideoID:    videoID,
		AddedAt:    time.Now(),
	}
	err := r.db.WithContext(ctx).Create(entry).Error
	if err != nil && isUniqueViolation(err) {
		return apperr.Conflict("video already in playlist")
	}
	return err
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&domain.PlaylistVideo{})
	return res.RowsAffected > 0, res.Error
}

func (r *playlistRepository) VideoIDs(ctx context.Context, playlistID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&domain.PlaylistVideo{}).
		Where("playlist_id = ?", playlistID).
		Order("added_at ASC").
		Pluck("video_id", &ids).Error
	return ids, err
}

func (r *playlistRepository) RemoveVideoEverywhere(ctx context.Context, videoID string) error {
	return r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Delete(&domain.PlaylistVideo{}).Error
}
