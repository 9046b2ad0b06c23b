package usecase

import (
	"context"
	"strings"

	"vidtube-backend/internal/tweet/domain"
	"vidtube-backend/internal/tweet/repository"
	"vidtube-backend/pkg/apperr"
)

// LikeCleaner removes like edges attached to a tweet when it is deleted.
type LikeCleaner interface {
	ClearTweetLikes(ctx context.Context, tweetID string) error
}

type TweetUsecase interface {
	Create(ctx context.Context, ownerID, content string) (*domain.Tweet, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Tweet, int64, error)
	Update(ctx context.Context, userID, tweetID, content string) (*domain.Tweet, error)
	Delete(ctx context.Context, userID, tweetID string) error
	SetLikeCleaner(cleaner LikeCleaner)
}

type tweetUsecase struct {
	tweetRepo   repository.TweetRepository
	likeCleaner LikeCleaner
}

func NewTweetUsecase(tweetRepo repository.TweetRepository) TweetUsecase {
	return &tweetUsecase{tweetRepo: tweetRepo}
}

func (u *tweetUsecase) SetLikeCleaner(cleaner LikeCleaner) {
	u.likeCleaner = cleaner
}

func (u *tweetUsecase) Create(ctx context.Context, ownerID, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation("content is required")
	}

	tweet := &domain.Tweet{
		OwnerID: ownerID,
		Content: content,
	}
	if err := u.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (u *tweetUsecase) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Tweet, int64, error) {
	if userID == "" {
		return nil, 0, apperr.Validation("user id is required")
	}
	return u.tweetRepo.ListByOwner(ctx, userID, limit, offset)
}

// loadOwned fetches a tweet and checks ownership. Existence is checked
// before ownership so a missing tweet is reported as not found even to
// a caller who would not own it.
func (u *tweetUsecase) loadOwned(ctx context.Context, userID, tweetID string) (*domain.Tweet, error) {
	tweet, err := u.tweetRepo.FindByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if tweet == nil {
		return nil, apperr.NotFound("tweet not found")
	}
	if tweet.OwnerID != userID {
		return nil, apperr.Forbidden("you do not own this tweet")
	}
	return tweet, nil
}

func (u *tweetUsecase) Update(ctx context.Context, userID, tweetID, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation("content is required")
	}

	tweet, err := u.loadOwned(ctx, userID, tweetID)
	if err != nil {
		return nil, err
	}

	tweet.Content = content
	if err := u.tweetRepo.Update(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (u *tweetUsecase) Delete(ctx context.Context, userID, tweetID string) error {
	if _, err := u.loadOwned(ctx, userID, tweetID); err != nil {
		return err
	}
	if err := u.tweetRepo.Delete(ctx, tweetID); err != nil {
		return err
	}
	if u.likeCleaner != nil {
		if err := u.likeCleaner.ClearTweetLikes(ctx, tweetID); err != nil {
			return err
		}
	}
	return nil
}
