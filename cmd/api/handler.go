package api

import (
	"context"
	"log"

	authUsecase "vidtube-backend/internal/auth/usecase"
	commentRepo "vidtube-backend/internal/comment/repository"
	commentUsecasePkg "vidtube-backend/internal/comment/usecase"
	dashboardUsecasePkg "vidtube-backend/internal/dashboard/usecase"
	engagementdomain "vidtube-backend/internal/engagement/domain"
	engagementUsecasePkg "vidtube-backend/internal/engagement/usecase"
	playlistRepo "vidtube-backend/internal/playlist/repository"
	playlistUsecasePkg "vidtube-backend/internal/playlist/usecase"
	tweetUsecasePkg "vidtube-backend/internal/tweet/usecase"
	videodomain "vidtube-backend/internal/video/domain"
	videoRepo "vidtube-backend/internal/video/repository"
	videoUsecasePkg "vidtube-backend/internal/video/usecase"
	"vidtube-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase      authUsecase.AuthUsecase
	videoUsecase     videoUsecasePkg.VideoUsecase
	commentUsecase   commentUsecasePkg.CommentUsecase
	tweetUsecase     tweetUsecasePkg.TweetUsecase
	playlistUsecase  playlistUsecasePkg.PlaylistUsecase
	toggleUsecase    engagementUsecasePkg.ToggleUsecase
	dashboardUsecase dashboardUsecasePkg.DashboardUsecase
	config           *config.Config
}

// likeFactsAdapter adapts ToggleUsecase to the video feature's LikeFacts interface.
type likeFactsAdapter struct {
	toggleUc engagementUsecasePkg.ToggleUsecase
}

func (a *likeFactsAdapter) VideoLikeCount(ctx context.Context, videoID string) (int64, error) {
	return a.toggleUc.Count(ctx, engagementdomain.KindVideo, videoID)
}

func (a *likeFactsAdapter) IsVideoLiked(ctx context.Context, userID, videoID string) (bool, error) {
	return a.toggleUc.IsPresent(ctx, userID, engagementdomain.KindVideo, videoID)
}

func (a *likeFactsAdapter) LikedVideoIDs(ctx context.Context, userID string) ([]string, error) {
	return a.toggleUc.ListTargets(ctx, userID, engagementdomain.KindVideo)
}

func (a *likeFactsAdapter) ClearVideoLikes(ctx context.Context, videoID string) error {
	return a.toggleUc.ClearTarget(ctx, engagementdomain.KindVideo, videoID)
}

// commentLikeCleanerAdapter adapts ToggleUsecase to the comment feature's LikeCleaner.
type commentLikeCleanerAdapter struct {
	toggleUc engagementUsecasePkg.ToggleUsecase
}

func (a *commentLikeCleanerAdapter) ClearCommentLikes(ctx context.Context, commentID string) error {
	return a.toggleUc.ClearTarget(ctx, engagementdomain.KindComment, commentID)
}

// tweetLikeCleanerAdapter adapts ToggleUsecase to the tweet feature's LikeCleaner.
type tweetLikeCleanerAdapter struct {
	toggleUc engagementUsecasePkg.ToggleUsecase
}

func (a *tweetLikeCleanerAdapter) ClearTweetLikes(ctx context.Context, tweetID string) error {
	return a.toggleUc.ClearTarget(ctx, engagementdomain.KindTweet, tweetID)
}

// videoCheckerAdapter answers video existence for the comment feature.
type videoCheckerAdapter struct {
	videoRepository videoRepo.VideoRepository
}

func (a *videoCheckerAdapter) VideoExists(ctx context.Context, videoID string) (bool, error) {
	video, err := a.videoRepository.FindByID(ctx, videoID)
	if err != nil {
		return false, err
	}
	return video != nil, nil
}

// videoProviderAdapter answers video existence and metadata for the playlist feature.
type videoProviderAdapter struct {
	videoRepository videoRepo.VideoRepository
}

func (a *videoProviderAdapter) VideoExists(ctx context.Context, videoID string) (bool, error) {
	video, err := a.videoRepository.FindByID(ctx, videoID)
	if err != nil {
		return false, err
	}
	return video != nil, nil
}

func (a *videoProviderAdapter) VideosByIDs(ctx context.Context, videoIDs []string) ([]*videodomain.Video, error) {
	return a.videoRepository.FindByIDs(ctx, videoIDs)
}

// cascadeAdapter removes comment and playlist rows referencing a deleted video.
type cascadeAdapter struct {
	commentRepository  commentRepo.CommentRepository
	playlistRepository playlistRepo.PlaylistRepository
}

func (a *cascadeAdapter) DeleteVideoComments(ctx context.Context, videoID string) error {
	return a.commentRepository.DeleteByVideo(ctx, videoID)
}

func (a *cascadeAdapter) RemoveVideoFromPlaylists(ctx context.Context, videoID string) error {
	return a.playlistRepository.RemoveVideoEverywhere(ctx, videoID)
}

func NewHandler(
	authUc authUsecase.AuthUsecase,
	videoUc videoUsecasePkg.VideoUsecase,
	commentUc commentUsecasePkg.CommentUsecase,
	tweetUc tweetUsecasePkg.TweetUsecase,
	playlistUc playlistUsecasePkg.PlaylistUsecase,
	toggleUc engagementUsecasePkg.ToggleUsecase,
	dashboardUc dashboardUsecasePkg.DashboardUsecase,
	videoRepository videoRepo.VideoRepository,
	commentRepository commentRepo.CommentRepository,
	playlistRepository playlistRepo.PlaylistRepository,
	cfg *config.Config,
) *Handler {
	// Cross-feature wiring goes through small adapters so the feature
	// packages stay free of each other's imports.
	authUc.SetSubscriptionFacts(toggleUc)

	videoUc.SetLikeFacts(&likeFactsAdapter{toggleUc: toggleUc})
	videoUc.SetWatchRecorder(authUc)
	videoUc.SetCascade(&cascadeAdapter{
		commentRepository:  commentRepository,
		playlistRepository: playlistRepository,
	})

	commentUc.SetVideoChecker(&videoCheckerAdapter{videoRepository: videoRepository})
	commentUc.SetLikeCleaner(&commentLikeCleanerAdapter{toggleUc: toggleUc})

	tweetUc.SetLikeCleaner(&tweetLikeCleanerAdapter{toggleUc: toggleUc})

	playlistUc.SetVideoProvider(&videoProviderAdapter{videoRepository: videoRepository})

	return &Handler{
		authUsecase:      authUc,
		videoUsecase:     videoUc,
		commentUsecase:   commentUc,
		tweetUsecase:     tweetUc,
		playlistUsecase:  playlistUc,
		toggleUsecase:    toggleUc,
		dashboardUsecase: dashboardUc,
		config:           cfg,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		allowed := h.config.CORSOrigin
		if allowed == "" {
			allowed = origin
		}
		if allowed != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowed)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h)

	log.Printf("Server listening on %s", addr)
	return r.Run(addr)
}
