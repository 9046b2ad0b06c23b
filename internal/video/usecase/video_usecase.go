package usecase

import (
	"context"
	"regexp"

	"vidtube-backend/internal/video/domain"
	"vidtube-backend/internal/video/repository"
	"vidtube-backend/pkg/apperr"
	"vidtube-backend/pkg/storage"
)

var (
	videoFilePattern = regexp.MustCompile(`(?i)\.(mp4|mkv|avi|mov|wmv|flv)$`)
	thumbnailPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png)$`)
)

// VideoView is a video plus viewer-relative engagement facts.
type VideoView struct {
	*domain.Video
	LikeCount int64 `json:"like_count"`
	IsLiked   bool  `json:"is_liked"`
}

// LikeFacts is what the video feature needs from the relationship engine.
type LikeFacts interface {
	VideoLikeCount(ctx context.Context, videoID string) (int64, error)
	IsVideoLiked(ctx context.Context, userID, videoID string) (bool, error)
	LikedVideoIDs(ctx context.Context, userID string) ([]string, error)
	ClearVideoLikes(ctx context.Context, videoID string) error
}

// WatchRecorder notes that a user viewed a video.
type WatchRecorder interface {
	RecordWatch(ctx context.Context, userID, videoID string) error
}

// Cascade removes rows in other features that reference a deleted video.
type Cascade interface {
	DeleteVideoComments(ctx context.Context, videoID string) error
	RemoveVideoFromPlaylists(ctx context.Context, videoID string) error
}

type PublishInput struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

type UpdateInput struct {
	Title         string
	Description   string
	ThumbnailPath string
}

type VideoUsecase interface {
	Publish(ctx context.Context, ownerID string, in PublishInput) (*domain.Video, error)
	Get(ctx context.Context, videoID, viewerID string) (*VideoView, error)
	List(ctx context.Context, ownerID, query string, limit, offset int) ([]*domain.Video, int64, error)
	Update(ctx context.Context, callerID, videoID string, in UpdateInput) (*domain.Video, error)
	Delete(ctx context.Context, callerID, videoID string) error
	TogglePublish(ctx context.Context, callerID, videoID string) (*domain.Video, error)
	LikedVideos(ctx context.Context, userID string) ([]*domain.Video, error)

	SetLikeFacts(facts LikeFacts)
	SetWatchRecorder(recorder WatchRecorder)
	SetCascade(cascade Cascade)
}

// videoUsecase implements VideoUsecase.
type videoUsecase struct {
	videoRepo repository.VideoRepository
	uploader  storage.Uploader
	likeFacts LikeFacts
	watches   WatchRecorder
	cascade   Cascade
}

func NewVideoUsecase(videoRepo repository.VideoRepository, uploader storage.Uploader) VideoUsecase {
	return &videoUsecase{
		videoRepo: videoRepo,
		uploader:  uploader,
	}
}

func (u *videoUsecase) SetLikeFacts(facts LikeFacts) {
	u.likeFacts = facts
}

func (u *videoUsecase) SetWatchRecorder(recorder WatchRecorder) {
	u.watches = recorder
}

func (u *videoUsecase) SetCascade(cascade Cascade) {
	u.cascade = cascade
}

func (u *videoUsecase) Publish(ctx context.Context, ownerID string, in PublishInput) (*domain.Video, error) {
	if in.Title == "" {
		return nil, apperr.Validation("title is required")
	}
	if in.VideoPath == "" {
		return nil, apperr.Validation("video file is required")
	}
	if in.ThumbnailPath == "" {
		return nil, apperr.Validation("thumbnail is required")
	}
	if !videoFilePattern.MatchString(in.VideoPath) {
		return nil, apperr.Validation("invalid video file")
	}
	if !thumbnailPattern.MatchString(in.ThumbnailPath) {
		return nil, apperr.Validation("invalid thumbnail file")
	}

	uploadedVideo, err := u.uploader.Upload(ctx, in.VideoPath)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	uploadedThumb, err := u.uploader.Upload(ctx, in.ThumbnailPath)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	video := &domain.Video{
		OwnerID:     ownerID,
		VideoFile:   uploadedVideo.URL,
		Thumbnail:   uploadedThumb.URL,
		Title:       in.Title,
		Description: in.Description,
		Duration:    uploadedVideo.Duration,
		IsPublished: true,
	}
	if err := u.videoRepo.Create(ctx, video); err != nil {
		return nil, apperr.Storage(err)
	}
	return video, nil
}

func (u *videoUsecase) Get(ctx context.Context, videoID, viewerID string) (*VideoView, error) {
	if videoID == "" {
		return nil, apperr.Validation("video id is required")
	}

	video, err := u.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if video == nil {
		return nil, apperr.NotFound("video does not exist")
	}

	if err := u.videoRepo.IncrementViews(ctx, videoID); err == nil {
		video.Views++
	}
	if u.watches != nil && viewerID != "" {
		_ = u.watches.RecordWatch(ctx, viewerID, videoID)
	}

	view := &VideoView{Video: video}
	if u.likeFacts != nil {
		if view.LikeCount, err = u.likeFacts.VideoLikeCount(ctx, videoID); err != nil {
			return nil, err
		}
		if viewerID != "" {
			if view.IsLiked, err = u.likeFacts.IsVideoLiked(ctx, viewerID, videoID); err != nil {
				return nil, err
			}
		}
	}
	return view, nil
}

func (u *videoUsecase) List(ctx context.Context, ownerID, query string, limit, offset int) ([]*domain.Video, int64, error) {
	videos, total, err := u.videoRepo.List(ctx, ownerID, query, limit, offset)
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}
	return videos, total, nil
}

// loadOwned fetches a video and enforces the guard order: existence first,
// then ownership.
func (u *videoUsecase) loadOwned(ctx context.Context, callerID, videoID string) (*domain.Video, error) {
	if videoID == "" {
		return nil, apperr.Validation("video id is required")
	}

	video, err := u.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if video == nil {
		return nil, apperr.NotFound("video does not exist")
	}
	if video.OwnerID != callerID {
		return nil, apperr.Forbidden("caller does not own this video")
	}
	return video, nil
}

func (u *videoUsecase) Update(ctx context.Context, callerID, videoID string, in UpdateInput) (*domain.Video, error) {
	video, err := u.loadOwned(ctx, callerID, videoID)
	if err != nil {
		return nil, err
	}
	if in.Title == "" && in.Description == "" && in.ThumbnailPath == "" {
		return nil, apperr.Validation("nothing to update")
	}

	if in.Title != "" {
		video.Title = in.Title
	}
	if in.Description != "" {
		video.Description = in.Description
	}
	if in.ThumbnailPath != "" {
		if !thumbnailPattern.MatchString(in.ThumbnailPath) {
			return nil, apperr.Validation("invalid thumbnail file")
		}
		uploaded, err := u.uploader.Upload(ctx, in.ThumbnailPath)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		video.Thumbnail = uploaded.URL
	}

	if err := u.videoRepo.Update(ctx, video); err != nil {
		return nil, apperr.Storage(err)
	}
	return video, nil
}

func (u *videoUsecase) Delete(ctx context.Context, callerID, videoID string) error {
	if _, err := u.loadOwned(ctx, callerID, videoID); err != nil {
		return err
	}

	if err := u.videoRepo.Delete(ctx, videoID); err != nil {
		return apperr.Storage(err)
	}
	if u.likeFacts != nil {
		_ = u.likeFacts.ClearVideoLikes(ctx, videoID)
	}
	if u.cascade != nil {
		_ = u.cascade.DeleteVideoComments(ctx, videoID)
		_ = u.cascade.RemoveVideoFromPlaylists(ctx, videoID)
	}
	return nil
}

func (u *videoUsecase) TogglePublish(ctx context.Context, callerID, videoID string) (*domain.Video, error) {
	video, err := u.loadOwned(ctx, callerID, videoID)
	if err != nil {
		return nil, err
	}

	video.IsPublished = !video.IsPublished
	if err := u.videoRepo.Update(ctx, video); err != nil {
		return nil, apperr.Storage(err)
	}
	return video, nil
}

func (u *videoUsecase) LikedVideos(ctx context.Context, userID string) ([]*domain.Video, error) {
	if u.likeFacts == nil {
		return nil, nil
	}
	ids, err := u.likeFacts.LikedVideoIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	videos, err := u.videoRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return videos, nil
}
