package usecase

import (
	"context"
	"strings"

	"vidtube-backend/internal/playlist/domain"
	"vidtube-backend/internal/playlist/repository"
	videodomain "vidtube-backend/internal/video/domain"
	"vidtube-backend/pkg/apperr"
)

// VideoProvider resolves video existence and metadata for playlist contents.
type VideoProvider interface {
	VideoExists(ctx context.Context, videoID string) (bool, error)
	VideosByIDs(ctx context.Context, videoIDs []string) ([]*videodomain.Video, error)
}

// PlaylistView is a playlist with its resolved video list.
type PlaylistView struct {
	*domain.Playlist
	Videos []*videodomain.Video `json:"videos"`
}

type CreateInput struct {
	OwnerID     string
	Name        string
	Description string
}

type UpdateInput struct {
	Name        *string
	Description *string
}

type PlaylistUsecase interface {
	Create(ctx context.Context, input CreateInput) (*domain.Playlist, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Playlist, error)
	Get(ctx context.Context, playlistID string) (*PlaylistView, error)
	Update(ctx context.Context, userID, playlistID string, input UpdateInput) (*domain.Playlist, error)
	Delete(ctx context.Context, userID, playlistID string) error
	AddVideo(ctx context.Context, userID, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, userID, playlistID, videoID string) error
	SetVideoProvider(provider VideoProvider)
}

type playlistUsecase struct {
	playlistRepo  repository.PlaylistRepository
	videoProvider VideoProvider
}

func NewPlaylistUsecase(playlistRepo repository.PlaylistRepository) PlaylistUsecase {
	return &playlistUsecase{playlistRepo: playlistRepo}
}

func (u *playlistUsecase) SetVideoProvider(provider VideoProvider) {
	u.videoProvider = provider
}

func (u *playlistUsecase) Create(ctx context.Context, input CreateInput) (*domain.Playlist, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}

	playlist := &domain.Playlist{
		OwnerID:     input.OwnerID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	}
	if err := u.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (u *playlistUsecase) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Playlist, error) {
	if ownerID == "" {
		return nil, apperr.Validation("owner id is required")
	}
	return u.playlistRepo.ListByOwner(ctx, ownerID)
}

func (u *playlistUsecase) Get(ctx context.Context, playlistID string) (*PlaylistView, error) {
	playlist, err := u.playlistRepo.FindByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, apperr.NotFound("playlist not found")
	}

	view := &PlaylistView{Playlist: playlist, Videos: []*videodomain.Video{}}
	ids, err := u.playlistRepo.VideoIDs(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 && u.videoProvider != nil {
		videos, err := u.videoProvider.VideosByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		view.Videos = videos
	}
	return view, nil
}

// loadOwned fetches a playlist and checks ownership, existence first.
func (u *playlistUsecase) loadOwned(ctx context.Context, userID, playlistID string) (*domain.Playlist, error) {
	playlist, err := u.playlistRepo.FindByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, apperr.NotFound("playlist not found")
	}
	if playlist.OwnerID != userID {
		return nil, apperr.Forbidden("you do not own this playlist")
	}
	return playlist, nil
}

func (u *playlistUsecase) Update(ctx context.Context, userID, playlistID string, input UpdateInput) (*domain.Playlist, error) {
	playlist, err := u.loadOwned(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperr.Validation("name cannot be empty")
		}
		playlist.Name = name
	}
	if input.Description != nil {
		playlist.Description = strings.TrimSpace(*input.Description)
	}

	if err := u.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (u *playlistUsecase) Delete(ctx context.Context, userID, playlistID string) error {
	if _, err := u.loadOwned(ctx, userID, playlistID); err != nil {
		return err
	}
	return u.playlistRepo.Delete(ctx, playlistID)
}

func (u *playlistUsecase) AddVideo(ctx context.Context, userID, playlistID, videoID string) error {
	if _, err := u.loadOwned(ctx, userID, playlistID); err != nil {
		return err
	}

	if u.videoProvider != nil {
		exists, err := u.videoProvider.VideoExists(ctx, videoID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("video not found")
		}
	}

	err := u.playlistRepo.AddVideo(ctx, playlistID, videoID)
	if err != nil && apperr.IsCode(err, apperr.CodeConflict) {
		// Adding an already present video is a no-op.
		return nil
	}
	return err
}

func (u *playlistUsecase) RemoveVideo(ctx context.Context, userID, playlistID, videoID string) error {
	if _, err := u.loadOwned(ctx, userID, playlistID); err != nil {
		return err
	}
	// Removing an absent video is also a no-op.
	_, err := u.playlistRepo.RemoveVideo(ctx, playlistID, videoID)
	return err
}
