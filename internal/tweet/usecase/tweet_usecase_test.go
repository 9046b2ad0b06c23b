package usecase

import (
	"context"
	"sync"
	"testing"

	"vidtube-backend/internal/tweet/domain"
	"vidtube-backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTweetRepository struct {
	mu     sync.Mutex
	tweets map[string]*domain.Tweet
}

func newFakeTweetRepository() *fakeTweetRepository {
	return &fakeTweetRepository{tweets: make(map[string]*domain.Tweet)}
}

func (f *fakeTweetRepository) Create(ctx context.Context, tweet *domain.Tweet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tweet.ID == "" {
		tweet.ID = uuid.New().String()
	}
	clone := *tweet
	f.tweets[tweet.ID] = &clone
	return nil
}

func (f *fakeTweetRepository) FindByID(ctx context.Context, id string) (*domain.Tweet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tweets[id]
	if !ok {
		return nil, nil
	}
	clone := *t
	return &clone, nil
}

func (f *fakeTweetRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Tweet, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*domain.Tweet
	for _, t := range f.tweets {
		if t.OwnerID == ownerID {
			clone := *t
			all = append(all, &clone)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeTweetRepository) Update(ctx context.Context, tweet *domain.Tweet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if stored, ok := f.tweets[tweet.ID]; ok {
		stored.Content = tweet.Content
	}
	return nil
}

func (f *fakeTweetRepository) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tweets, id)
	return nil
}

type tweetLikeCleaner struct {
	cleared []string
}

func (c *tweetLikeCleaner) ClearTweetLikes(ctx context.Context, tweetID string) error {
	c.cleared = append(c.cleared, tweetID)
	return nil
}

func TestCreateTweet(t *testing.T) {
	uc := NewTweetUsecase(newFakeTweetRepository())

	tweet, err := uc.Create(context.Background(), "user-1", "  hello world  ")
	require.NoError(t, err)
	assert.Equal(t, "hello world", tweet.Content, "content is trimmed")
	assert.Equal(t, "user-1", tweet.OwnerID)

	_, err = uc.Create(context.Background(), "user-1", "   ")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}

func TestTweetOwnershipGuards(t *testing.T) {
	uc := NewTweetUsecase(newFakeTweetRepository())
	ctx := context.Background()

	tweet, err := uc.Create(ctx, "user-1", "mine")
	require.NoError(t, err)

	_, err = uc.Update(ctx, "user-2", tweet.ID, "not yours")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	err = uc.Delete(ctx, "user-2", tweet.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	// Missing tweets read as not found regardless of caller.
	_, err = uc.Update(ctx, "user-2", "no-such-tweet", "text")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestDeleteTweetClearsLikes(t *testing.T) {
	repo := newFakeTweetRepository()
	uc := NewTweetUsecase(repo)
	cleaner := &tweetLikeCleaner{}
	uc.SetLikeCleaner(cleaner)
	ctx := context.Background()

	tweet, err := uc.Create(ctx, "user-1", "short lived")
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, "user-1", tweet.ID))
	assert.Contains(t, cleaner.cleared, tweet.ID)

	stored, err := repo.FindByID(ctx, tweet.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestListTweetsByUser(t *testing.T) {
	uc := NewTweetUsecase(newFakeTweetRepository())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := uc.Create(ctx, "user-1", "tweet")
		require.NoError(t, err)
	}
	_, err := uc.Create(ctx, "user-2", "other")
	require.NoError(t, err)

	tweets, total, err := uc.ListByUser(ctx, "user-1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, tweets, 3)
}
