package repository

import (
	"context"
	"errors"
	"time"

	"vidtube-backend/internal/tweet/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TweetRepository interface {
	Create(ctx context.Context, tweet *domain.Tweet) error
	FindByID(ctx context.Context, id string) (*domain.Tweet, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Tweet, int64, error)
	Update(ctx context.Context, tweet *domain.Tweet) error
	Delete(ctx context.Context, id string) error
}

// tweetRepository implements TweetRepository using GORM.
type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *domain.Tweet) error {
	if tweet.ID == "" {
		tweet.ID = uuid.New().String()
	}
	tweet.CreatedAt = time.Now()
	tweet.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Create(tweet).Error
}

func (r *tweetRepository) FindByID(ctx context.Context, id string) (*domain.Tweet, error) {
	var tweet domain.Tweet
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tweet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tweet, nil
}

func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Tweet, int64, error) {
	var tweets []*domain.Tweet
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Tweet{}).Where("owner_id = ?", ownerID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&tweets).Error
	return tweets, total, err
}

func (r *tweetRepository) Update(ctx context.Context, tweet *domain.Tweet) error {
	tweet.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Model(&domain.Tweet{}).
		Where("id = ?", tweet.ID).
		Updates(map[string]interface{}{"content": tweet.Content, "updated_at": tweet.UpdatedAt}).Error
}

func (r *tweetRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Tweet{}).Error
}
