package usecase

import (
	"context"

	engagementdomain "vidtube-backend/internal/engagement/domain"
	videodomain "vidtube-backend/internal/video/domain"
	"vidtube-backend/pkg/apperr"
)

// VideoSource exposes the video facts the dashboard aggregates.
type VideoSource interface {
	OwnerStats(ctx context.Context, ownerID string) (int64, int64, error)
	OwnerVideoIDs(ctx context.Context, ownerID string) ([]string, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*videodomain.Video, error)
}

// EngagementSource exposes the edge counts the dashboard aggregates.
type EngagementSource interface {
	CountForTargets(ctx context.Context, kind engagementdomain.TargetKind, targetIDs []string) (int64, error)
	SubscriberCount(ctx context.Context, channelID string) (int64, error)
}

// ChannelStats is the aggregate view of a channel. Every count is
// derived from stored rows at read time, nothing is cached.
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalLikes       int64 `json:"totalLikes"`
	TotalSubscribers int64 `json:"totalSubscribers"`
}

type DashboardUsecase interface {
	Stats(ctx context.Context, channelID string) (*ChannelStats, error)
	ChannelVideos(ctx context.Context, channelID string) ([]*videodomain.Video, error)
}

type dashboardUsecase struct {
	videos     VideoSource
	engagement EngagementSource
}

func NewDashboardUsecase(videos VideoSource, engagement EngagementSource) DashboardUsecase {
	return &dashboardUsecase{videos: videos, engagement: engagement}
}

func (u *dashboardUsecase) Stats(ctx context.Context, channelID string) (*ChannelStats, error) {
	if channelID == "" {
		return nil, apperr.Validation("channel id is required")
	}

	totalVideos, totalViews, err := u.videos.OwnerStats(ctx, channelID)
	if err != nil {
		return nil, err
	}

	videoIDs, err := u.videos.OwnerVideoIDs(ctx, channelID)
	if err != nil {
		return nil, err
	}
	var totalLikes int64
	if len(videoIDs) > 0 {
		totalLikes, err = u.engagement.CountForTargets(ctx, engagementdomain.KindVideo, videoIDs)
		if err != nil {
			return nil, err
		}
	}

	totalSubscribers, err := u.engagement.SubscriberCount(ctx, channelID)
	if err != nil {
		return nil, err
	}

	return &ChannelStats{
		TotalVideos:      totalVideos,
		TotalViews:       totalViews,
		TotalLikes:       totalLikes,
		TotalSubscribers: totalSubscribers,
	}, nil
}

func (u *dashboardUsecase) ChannelVideos(ctx context.Context, channelID string) ([]*videodomain.Video, error) {
	if channelID == "" {
		return nil, apperr.Validation("channel id is required")
	}
	return u.videos.ListByOwner(ctx, channelID)
}
