package api

import (
	"net/http"

	authdelivery "vidtube-backend/internal/auth/delivery"
	commentdelivery "vidtube-backend/internal/comment/delivery"
	dashboarddelivery "vidtube-backend/internal/dashboard/delivery"
	engagementdelivery "vidtube-backend/internal/engagement/delivery"
	playlistdelivery "vidtube-backend/internal/playlist/delivery"
	tweetdelivery "vidtube-backend/internal/tweet/delivery"
	videodelivery "vidtube-backend/internal/video/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	authHandler := authdelivery.NewAuthHandler(h.authUsecase, h.config)
	videoHandler := videodelivery.NewVideoHandler(h.videoUsecase)
	commentHandler := commentdelivery.NewCommentHandler(h.commentUsecase)
	tweetHandler := tweetdelivery.NewTweetHandler(h.tweetUsecase)
	playlistHandler := playlistdelivery.NewPlaylistHandler(h.playlistUsecase)
	engagementHandler := engagementdelivery.NewEngagementHandler(h.toggleUsecase)
	dashboardHandler := dashboarddelivery.NewDashboardHandler(h.dashboardUsecase)

	authRequired := authdelivery.AuthMiddleware(h.authUsecase)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authRequired, authHandler.Logout)
			auth.GET("/me", authRequired, authHandler.Me)
			auth.POST("/change-password", authRequired, authHandler.ChangePassword)
		}

		users := api.Group("/users")
		users.Use(authRequired)
		{
			users.PATCH("/me", authHandler.UpdateAccount)
			users.PATCH("/me/avatar", authHandler.UpdateAvatar)
			users.PATCH("/me/cover-image", authHandler.UpdateCoverImage)
			users.GET("/channel/:username", authHandler.Channel)
			users.GET("/history", authHandler.WatchHistory)
		}

		videos := api.Group("/videos")
		videos.Use(authRequired)
		{
			videos.POST("", videoHandler.Publish)
			videos.GET("", videoHandler.List)
			videos.GET("/:videoId", videoHandler.Get)
			videos.PATCH("/:videoId", videoHandler.Update)
			videos.DELETE("/:videoId", videoHandler.Delete)
			videos.PATCH("/:videoId/publish", videoHandler.TogglePublish)

			videos.GET("/:videoId/comments", commentHandler.List)
			videos.POST("/:videoId/comments", commentHandler.Add)
		}

		comments := api.Group("/comments")
		comments.Use(authRequired)
		{
			comments.PATCH("/:commentId", commentHandler.Update)
			comments.DELETE("/:commentId", commentHandler.Delete)
		}

		tweets := api.Group("/tweets")
		tweets.Use(authRequired)
		{
			tweets.POST("", tweetHandler.Create)
			tweets.GET("/user/:userId", tweetHandler.ListByUser)
			tweets.PATCH("/:tweetId", tweetHandler.Update)
			tweets.DELETE("/:tweetId", tweetHandler.Delete)
		}

		playlists := api.Group("/playlists")
		playlists.Use(authRequired)
		{
			playlists.POST("", playlistHandler.Create)
			playlists.GET("/user/:userId", playlistHandler.ListByUser)
			playlists.GET("/:playlistId", playlistHandler.Get)
			playlists.PATCH("/:playlistId", playlistHandler.Update)
			playlists.DELETE("/:playlistId", playlistHandler.Delete)
			playlists.POST("/:playlistId/videos/:videoId", playlistHandler.AddVideo)
			playlists.DELETE("/:playlistId/videos/:videoId", playlistHandler.RemoveVideo)
		}

		subscriptions := api.Group("/subscriptions")
		subscriptions.Use(authRequired)
		{
			subscriptions.POST("/:channelId", engagementHandler.ToggleSubscription)
			subscriptions.GET("/:channelId/subscribers", engagementHandler.ChannelSubscribers)
			subscriptions.GET("/user/:userId/channels", engagementHandler.SubscribedChannels)
		}

		likes := api.Group("/likes")
		likes.Use(authRequired)
		{
			likes.POST("/video/:videoId", engagementHandler.ToggleVideoLike)
			likes.POST("/comment/:commentId", engagementHandler.ToggleCommentLike)
			likes.POST("/tweet/:tweetId", engagementHandler.ToggleTweetLike)
			likes.GET("/videos", videoHandler.LikedVideos)
		}

		dashboard := api.Group("/dashboard")
		dashboard.Use(authRequired)
		{
			dashboard.GET("/stats", dashboardHandler.Stats)
			dashboard.GET("/videos", dashboardHandler.Videos)
		}
	}
}
