package repository

import (
	"context"
	"errors"
	"time"

	"vidtube-backend/internal/comment/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	ListByVideo(ctx context.Context, videoID string, limit, offset int) ([]*domain.Comment, int64, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id string) error
	DeleteByVideo(ctx context.Context, videoID string) error
}

// commentRepository implements CommentRepository using GORM.
type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID string, limit, offset int) ([]*domain.Comment, int64, error) {
	var comments []*domain.Comment
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Comment{}).Where("video_id = ?", videoID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&comments).Error
	return comments, total, err
}

func (r *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	comment.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Model(&domain.Comment{}).
		Where("id = ?", comment.ID).
		Updates(map[string]interface{}{"content": comment.Content, "updated_at": comment.UpdatedAt}).Error
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Comment{}).Error
}

func (r *commentRepository) DeleteByVideo(ctx context.Context, videoID string) error {
	return r.db.WithContext(ctx).Where("video_id = ?", videoID).Delete(&domain.Comment{}).Error
}
