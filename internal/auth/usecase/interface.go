package usecase

import (
	"context"

	authdomain "vidtube-backend/internal/auth/domain"
	authdto "vidtube-backend/internal/auth/dto"
)

// AuthUsecase covers account lifecycle and the token service.
type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (*authdomain.User, error)
	Login(ctx context.Context, in LoginInput) (*authdto.TokenResponse, error)
	Logout(ctx context.Context, userID string) error

	// VerifyAccess checks an access token's signature and expiry only.
	VerifyAccess(token string) (string, error)
	// RedeemRefresh exchanges a refresh token for a fresh pair. Every
	// successful redemption rotates the stored refresh token, so a token
	// can be redeemed at most once.
	RedeemRefresh(ctx context.Context, refreshToken string) (*authdto.TokenResponse, error)

	GetUser(ctx context.Context, id string) (*authdomain.User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	UpdateAccount(ctx context.Context, userID, fullName, email string) (*authdomain.User, error)
	UpdateAvatar(ctx context.Context, userID, localPath string) (*authdomain.User, error)
	UpdateCoverImage(ctx context.Context, userID, localPath string) (*authdomain.User, error)
	ChannelProfile(ctx context.Context, username, viewerID string) (*authdto.ChannelProfile, error)
	RecordWatch(ctx context.Context, userID, videoID string) error
	WatchHistory(ctx context.Context, userID string, limit, offset int) ([]*authdomain.WatchEntry, error)

	// SetSubscriptionFacts wires in the relationship engine after both
	// usecases exist.
	SetSubscriptionFacts(facts SubscriptionFacts)
}

// SubscriptionFacts is what the auth feature needs to know from the
// relationship engine to render a channel profile.
type SubscriptionFacts interface {
	SubscriberCount(ctx context.Context, channelID string) (int64, error)
	SubscribedChannelCount(ctx context.Context, userID string) (int64, error)
	IsSubscribed(ctx context.Context, subscriberID, channelID string) (bool, error)
}

type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	FullName       string
	AvatarPath     string
	CoverImagePath string
}

type LoginInput struct {
	Username string
	Email    string
	Password string
}
