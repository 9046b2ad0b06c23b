package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"vidtube-backend/internal/playlist/domain"
	videodomain "vidtube-backend/internal/video/domain"
	"vidtube-backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type playlistEntry struct {
	videoID string
	addedAt time.Time
}

type fakePlaylistRepository struct {
	mu        sync.Mutex
	playlists map[string]*domain.Playlist
	entries   map[string][]playlistEntry
}

func newFakePlaylistRepository() *fakePlaylistRepository {
	return &fakePlaylistRepository{
		playlists: make(map[string]*domain.Playlist),
		entries:   make(map[string][]playlistEntry),
	}
}

func (f *fakePlaylistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if playlist.ID == "" {
		playlist.ID = uuid.New().String()
	}
	clone := *playlist
	f.playlists[playlist.ID] = &clone
	return nil
}

func (f *fakePlaylistRepository) FindByID(ctx context.Context, id string) (*domain.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.playlists[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (f *fakePlaylistRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Playlist
	for _, p := range f.playlists {
		if p.OwnerID == ownerID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakePlaylistRepository) Update(ctx context.Context, playlist *domain.Playlist) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if stored, ok := f.playlists[playlist.ID]; ok {
		stored.Name = playlist.Name
		stored.Description = playlist.Description
	}
	return nil
}

func (f *fakePlaylistRepository) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.playlists, id)
	delete(f.entries, id)
	return nil
}

func (f *fakePlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries[playlistID] {
		if e.videoID == videoID {
			return apperr.Conflict("video already in playlist")
		}
	}
	f.entries[playlistID] = append(f.entries[playlistID], playlistEntry{videoID: videoID, addedAt: time.Now()})
	return nil
}

func (f *fakePlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := f.entries[playlistID]
	for i, e := range entries {
		if e.videoID == videoID {
			f.entries[playlistID] = append(entries[:i], entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePlaylistRepository) VideoIDs(ctx context.Context, playlistID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for _, e := range f.entries[playlistID] {
		ids = append(ids, e.videoID)
	}
	return ids, nil
}

func (f *fakePlaylistRepository) RemoveVideoEverywhere(ctx context.Context, videoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, entries := range f.entries {
		kept := entries[:0]
		for _, e := range entries {
			if e.videoID != videoID {
				kept = append(kept, e)
			}
		}
		f.entries[id] = kept
	}
	return nil
}

type stubVideoProvider struct {
	existing map[string]bool
}

func (s *stubVideoProvider) VideoExists(ctx context.Context, videoID string) (bool, error) {
	return s.existing[videoID], nil
}

func (s *stubVideoProvider) VideosByIDs(ctx context.Context, videoIDs []string) ([]*videodomain.Video, error) {
	var out []*videodomain.Video
	for _, id := range videoIDs {
		if s.existing[id] {
			out = append(out, &videodomain.Video{ID: id, Title: "video " + id})
		}
	}
	return out, nil
}

func newTestPlaylist(t *testing.T) (PlaylistUsecase, *fakePlaylistRepository) {
	t.Helper()
	repo := newFakePlaylistRepository()
	uc := NewPlaylistUsecase(repo)
	uc.SetVideoProvider(&stubVideoProvider{existing: map[string]bool{
		"video-1": true,
		"video-2": true,
	}})
	return uc, repo
}

func create(t *testing.T, uc PlaylistUsecase, ownerID string) *domain.Playlist {
	t.Helper()
	playlist, err := uc.Create(context.Background(), CreateInput{
		OwnerID:     ownerID,
		Name:        "Favorites",
		Description: "things I like",
	})
	require.NoError(t, err)
	return playlist
}

func TestCreatePlaylist(t *testing.T) {
	uc, _ := newTestPlaylist(t)

	playlist := create(t, uc, "owner-1")
	assert.Equal(t, "Favorites", playlist.Name)
	assert.NotEmpty(t, playlist.ID)

	_, err := uc.Create(context.Background(), CreateInput{OwnerID: "owner-1", Name: "   "})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}

func TestAddVideoIdempotent(t *testing.T) {
	uc, _ := newTestPlaylist(t)
	playlist := create(t, uc, "owner-1")
	ctx := context.Background()

	require.NoError(t, uc.AddVideo(ctx, "owner-1", playlist.ID, "video-1"))
	// A second add of the same video is absorbed, not an error.
	require.NoError(t, uc.AddVideo(ctx, "owner-1", playlist.ID, "video-1"))

	view, err := uc.Get(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Len(t, view.Videos, 1)
}

func TestAddVideoMissingVideo(t *testing.T) {
	uc, _ := newTestPlaylist(t)
	playlist := create(t, uc, "owner-1")

	err := uc.AddVideo(context.Background(), "owner-1", playlist.ID, "video-404")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestAddVideoOwnership(t *testing.T) {
	uc, _ := newTestPlaylist(t)
	playlist := create(t, uc, "owner-1")

	err := uc.AddVideo(context.Background(), "intruder", playlist.ID, "video-1")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	// A missing playlist reads as not found before any ownership check.
	err = uc.AddVideo(context.Background(), "intruder", "no-such-playlist", "video-1")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestRemoveVideoIdempotent(t *testing.T) {
	uc, _ := newTestPlaylist(t)
	playlist := create(t, uc, "owner-1")
	ctx := context.Background()

	require.NoError(t, uc.AddVideo(ctx, "owner-1", playlist.ID, "video-1"))
	require.NoError(t, uc.RemoveVideo(ctx, "owner-1", playlist.ID, "video-1"))
	// Removing an absent video is also absorbed.
	require.NoError(t, uc.RemoveVideo(ctx, "owner-1", playlist.ID, "video-1"))

	view, err := uc.Get(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Videos)
}

func TestGetResolvesVideos(t *testing.T) {
	uc, _ := newTestPlaylist(t)
	playlist := create(t, uc, "owner-1")
	ctx := context.Background()

	require.NoError(t, uc.AddVideo(ctx, "owner-1", playlist.ID, "video-1"))
	require.NoError(t, uc.AddVideo(ctx, "owner-1", playlist.ID, "video-2"))

	view, err := uc.Get(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Len(t, view.Videos, 2)

	_, err = uc.Get(ctx, "no-such-playlist")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestUpdateAndDeletePlaylist(t *testing.T) {
	uc, repo := newTestPlaylist(t)
	playlist := create(t, uc, "owner-1")
	ctx := context.Background()

	name := "Watch later"
	updated, err := uc.Update(ctx, "owner-1", playlist.ID, UpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Watch later", updated.Name)

	_, err = uc.Update(ctx, "intruder", playlist.ID, UpdateInput{Name: &name})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	require.NoError(t, uc.Delete(ctx, "owner-1", playlist.ID))
	stored, err := repo.FindByID(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}
