package usecase

import (
	"context"
	"strings"

	"vidtube-backend/internal/comment/domain"
	"vidtube-backend/internal/comment/repository"
	"vidtube-backend/pkg/apperr"
)

// VideoChecker answers whether a video exists; comments can only be
// attached to existing videos.
type VideoChecker interface {
	VideoExists(ctx context.Context, videoID string) (bool, error)
}

// LikeCleaner removes like edges for a deleted comment.
type LikeCleaner interface {
	ClearCommentLikes(ctx context.Context, commentID string) error
}

type CommentUsecase interface {
	Add(ctx context.Context, ownerID, videoID, content string) (*domain.Comment, error)
	ListByVideo(ctx context.Context, videoID string, limit, offset int) ([]*domain.Comment, int64, error)
	Update(ctx context.Context, callerID, commentID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, callerID, commentID string) error

	SetVideoChecker(checker VideoChecker)
	SetLikeCleaner(cleaner LikeCleaner)
}

// commentUsecase implements CommentUsecase.
type commentUsecase struct {
	commentRepo repository.CommentRepository
	videos      VideoChecker
	likes       LikeCleaner
}

func NewCommentUsecase(commentRepo repository.CommentRepository) CommentUsecase {
	return &commentUsecase{commentRepo: commentRepo}
}

func (u *commentUsecase) SetVideoChecker(checker VideoChecker) {
	u.videos = checker
}

func (u *commentUsecase) SetLikeCleaner(cleaner LikeCleaner) {
	u.likes = cleaner
}

func (u *commentUsecase) Add(ctx context.Context, ownerID, videoID, content string) (*domain.Comment, error) {
	if videoID == "" {
		return nil, apperr.Validation("video id is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("comment content is required")
	}

	if u.videos != nil {
		exists, err := u.videos.VideoExists(ctx, videoID)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		if !exists {
			return nil, apperr.NotFound("video does not exist")
		}
	}

	comment := &domain.Comment{
		VideoID: videoID,
		OwnerID: ownerID,
		Content: content,
	}
	if err := u.commentRepo.Create(ctx, comment); err != nil {
		return nil, apperr.Storage(err)
	}
	return comment, nil
}

func (u *commentUsecase) ListByVideo(ctx context.Context, videoID string, limit, offset int) ([]*domain.Comment, int64, error) {
	if videoID == "" {
		return nil, 0, apperr.Validation("video id is required")
	}

	if u.videos != nil {
		exists, err := u.videos.VideoExists(ctx, videoID)
		if err != nil {
			return nil, 0, apperr.Storage(err)
		}
		if !exists {
			return nil, 0, apperr.NotFound("video does not exist")
		}
	}

	comments, total, err := u.commentRepo.ListByVideo(ctx, videoID, limit, offset)
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}
	return comments, total, nil
}

// loadOwned enforces existence first, ownership second.
func (u *commentUsecase) loadOwned(ctx context.Context, callerID, commentID string) (*domain.Comment, error) {
	if commentID == "" {
		return nil, apperr.Validation("comment id is required")
	}

	comment, err := u.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if comment == nil {
		return nil, apperr.NotFound("comment does not exist")
	}
	if comment.OwnerID != callerID {
		return nil, apperr.Forbidden("caller does not own this comment")
	}
	return comment, nil
}

func (u *commentUsecase) Update(ctx context.Context, callerID, commentID, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("comment content is required")
	}

	comment, err := u.loadOwned(ctx, callerID, commentID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := u.commentRepo.Update(ctx, comment); err != nil {
		return nil, apperr.Storage(err)
	}
	return comment, nil
}

func (u *commentUsecase) Delete(ctx context.Context, callerID, commentID string) error {
	if _, err := u.loadOwned(ctx, callerID, commentID); err != nil {
		return err
	}

	if err := u.commentRepo.Delete(ctx, commentID); err != nil {
		return apperr.Storage(err)
	}
	if u.likes != nil {
		_ = u.likes.ClearCommentLikes(ctx, commentID)
	}
	return nil
}
