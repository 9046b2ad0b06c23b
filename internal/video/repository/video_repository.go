package repository

import (
	"context"
	"errors"
	"time"

	"vidtube-backend/internal/video/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) error
	FindByID(ctx context.Context, id string) (*domain.Video, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Video, error)
	Update(ctx context.Context, video *domain.Video) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, ownerID, query string, limit, offset int) ([]*domain.Video, int64, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Video, error)
	IncrementViews(ctx context.Context, id string) error
	// OwnerStats returns the number of videos and the summed view count
	// for a channel.
	OwnerStats(ctx context.Context, ownerID string) (int64, int64, error)
	OwnerVideoIDs(ctx context.Context, ownerID string) ([]string, error)
}

// videoRepository implements VideoRepository using GORM.
type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *domain.Video) error {
	if video.ID == "" {
		video.ID = uuid.New().String()
	}
	video.CreatedAt = time.Now()
	video.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoRepository) FindByID(ctx context.Context, id string) (*domain.Video, error) {
	var video domain.Video
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&video).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var videos []*domain.Video
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&videos).Error
	return videos, err
}

func (r *videoRepository) Update(ctx context.Context, video *domain.Video) error {
	video.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("id = ?", video.ID).
		Updates(map[string]interface{}{
			"title":        video.Title,
			"description":  video.Description,
			"thumbnail":    video.Thumbnail,
			"is_published": video.IsPublished,
			"updated_at":   video.UpdatedAt,
		}).Error
}

func (r *videoRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Video{}).Error
}

func (r *videoRepository) List(ctx context.Context, ownerID, query string, limit, offset int) ([]*domain.Video, int64, error) {
	var videos []*domain.Video
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Video{}).Where("is_published = ?", true)
	if ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}
	if query != "" {
		q = q.Where("title ILIKE ?", "%"+query+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&videos).Error
	return videos, total, err
}

func (r *videoRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Video, error) {
	var videos []*domain.Video
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&videos).Error
	return videos, err
}

func (r *videoRepository) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *videoRepository) OwnerStats(ctx context.Context, ownerID string) (int64, int64, error) {
	var stats struct {
		TotalVideos int64
		TotalViews  int64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Video{}).
		Select("COUNT(*) AS total_videos, COALESCE(SUM(views), 0) AS total_views").
		Where("owner_id = ?", ownerID).
		Scan(&stats).Error
	return stats.TotalVideos, stats.TotalViews, err
}

func (r *videoRepository) OwnerVideoIDs(ctx context.Context, ownerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("owner_id = ?", ownerID).
		Pluck("id", &ids).Error
	return ids, err
}
