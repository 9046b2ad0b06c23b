package usecase

import (
	"context"
	"testing"

	engagementdomain "vidtube-backend/internal/engagement/domain"
	videodomain "vidtube-backend/internal/video/domain"
	"vidtube-backend/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVideoSource struct {
	videos []*videodomain.Video
}

func (s *stubVideoSource) OwnerStats(ctx context.Context, ownerID string) (int64, int64, error) {
	var count, views int64
	for _, v := range s.videos {
		if v.OwnerID == ownerID {
			count++
			views += v.Views
		}
	}
	return count, views, nil
}

func (s *stubVideoSource) OwnerVideoIDs(ctx context.Context, ownerID string) ([]string, error) {
	var ids []string
	for _, v := range s.videos {
		if v.OwnerID == ownerID {
			ids = append(ids, v.ID)
		}
	}
	return ids, nil
}

func (s *stubVideoSource) ListByOwner(ctx context.Context, ownerID string) ([]*videodomain.Video, error) {
	var out []*videodomain.Video
	for _, v := range s.videos {
		if v.OwnerID == ownerID {
			out = append(out, v)
		}
	}
	return out, nil
}

type stubEngagementSource struct {
	likesPerVideo map[string]int64
	subscribers   map[string]int64
}

func (s *stubEngagementSource) CountForTargets(ctx context.Context, kind engagementdomain.TargetKind, targetIDs []string) (int64, error) {
	var n int64
	for _, id := range targetIDs {
		n += s.likesPerVideo[id]
	}
	return n, nil
}

func (s *stubEngagementSource) SubscriberCount(ctx context.Context, channelID string) (int64, error) {
	return s.subscribers[channelID], nil
}

func TestDashboardStats(t *testing.T) {
	videos := &stubVideoSource{videos: []*videodomain.Video{
		{ID: "v1", OwnerID: "channel-1", Views: 100},
		{ID: "v2", OwnerID: "channel-1", Views: 50},
		{ID: "v3", OwnerID: "channel-2", Views: 999},
	}}
	engagement := &stubEngagementSource{
		likesPerVideo: map[string]int64{"v1": 7, "v2": 3, "v3": 42},
		subscribers:   map[string]int64{"channel-1": 12},
	}
	uc := NewDashboardUsecase(videos, engagement)

	stats, err := uc.Stats(context.Background(), "channel-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalVideos)
	assert.Equal(t, int64(150), stats.TotalViews)
	assert.Equal(t, int64(10), stats.TotalLikes, "only the channel's own videos count")
	assert.Equal(t, int64(12), stats.TotalSubscribers)
}

func TestDashboardStatsEmptyChannel(t *testing.T) {
	uc := NewDashboardUsecase(&stubVideoSource{}, &stubEngagementSource{
		likesPerVideo: map[string]int64{},
		subscribers:   map[string]int64{},
	})

	stats, err := uc.Stats(context.Background(), "channel-empty")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalVideos)
	assert.Zero(t, stats.TotalViews)
	assert.Zero(t, stats.TotalLikes)
	assert.Zero(t, stats.TotalSubscribers)

	_, err = uc.Stats(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}

func TestDashboardChannelVideos(t *testing.T) {
	videos := &stubVideoSource{videos: []*videodomain.Video{
		{ID: "v1", OwnerID: "channel-1", IsPublished: true},
		{ID: "v2", OwnerID: "channel-1", IsPublished: false},
	}}
	uc := NewDashboardUsecase(videos, &stubEngagementSource{})

	list, err := uc.ChannelVideos(context.Background(), "channel-1")
	require.NoError(t, err)
	assert.Len(t, list, 2, "drafts are included in the owner's dashboard")
}
