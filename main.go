package main

import (
	"log"

	api "vidtube-backend/cmd/api"
	authdomain "vidtube-backend/internal/auth/domain"
	authRepo "vidtube-backend/internal/auth/repository"
	authUsecase "vidtube-backend/internal/auth/usecase"
	commentdomain "vidtube-backend/internal/comment/domain"
	commentRepo "vidtube-backend/internal/comment/repository"
	commentUsecase "vidtube-backend/internal/comment/usecase"
	dashboardUsecase "vidtube-backend/internal/dashboard/usecase"
	engagementdomain "vidtube-backend/internal/engagement/domain"
	engagementRepo "vidtube-backend/internal/engagement/repository"
	engagementUsecase "vidtube-backend/internal/engagement/usecase"
	playlistdomain "vidtube-backend/internal/playlist/domain"
	playlistRepo "vidtube-backend/internal/playlist/repository"
	playlistUsecase "vidtube-backend/internal/playlist/usecase"
	tweetdomain "vidtube-backend/internal/tweet/domain"
	tweetRepo "vidtube-backend/internal/tweet/repository"
	tweetUsecase "vidtube-backend/internal/tweet/usecase"
	videodomain "vidtube-backend/internal/video/domain"
	videoRepo "vidtube-backend/internal/video/repository"
	videoUsecase "vidtube-backend/internal/video/usecase"
	"vidtube-backend/pkg/config"
	"vidtube-backend/pkg/database"
	"vidtube-backend/pkg/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.WatchEntry{},
		&engagementdomain.Edge{},
		&videodomain.Video{},
		&commentdomain.Comment{},
		&tweetdomain.Tweet{},
		&playlistdomain.Playlist{},
		&playlistdomain.PlaylistVideo{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize media storage
	uploader := storage.NewCloudinaryUploader(cfg)

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	edgeRepository := engagementRepo.NewEdgeRepository(db)
	videoRepository := videoRepo.NewVideoRepository(db)
	commentRepository := commentRepo.NewCommentRepository(db)
	tweetRepository := tweetRepo.NewTweetRepository(db)
	playlistRepository := playlistRepo.NewPlaylistRepository(db)

	// Initialize use cases
	authUc := authUsecase.NewAuthUsecase(userRepository, uploader, cfg)
	toggleUc := engagementUsecase.NewToggleUsecase(edgeRepository)
	videoUc := videoUsecase.NewVideoUsecase(videoRepository, uploader)
	commentUc := commentUsecase.NewCommentUsecase(commentRepository)
	tweetUc := tweetUsecase.NewTweetUsecase(tweetRepository)
	playlistUc := playlistUsecase.NewPlaylistUsecase(playlistRepository)
	dashboardUc := dashboardUsecase.NewDashboardUsecase(videoRepository, toggleUc)

	// Initialize HTTP handler (wires cross-feature adapters)
	handler := api.NewHandler(
		authUc,
		videoUc,
		commentUc,
		tweetUc,
		playlistUc,
		toggleUc,
		dashboardUc,
		videoRepository,
		commentRepository,
		playlistRepository,
		cfg,
	)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
