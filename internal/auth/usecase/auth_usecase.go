package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	authdomain "vidtube-backend/internal/auth/domain"
	authdto "vidtube-backend/internal/auth/dto"
	"vidtube-backend/internal/auth/repository"
	"vidtube-backend/pkg/apperr"
	"vidtube-backend/pkg/config"
	"vidtube-backend/pkg/storage"

	"github.com/golang-jwt/jwt/v5"
)

// authUsecase implements AuthUsecase.
type authUsecase struct {
	userRepo repository.UserRepository
	uploader storage.Uploader
	config   *config.Config
	subFacts SubscriptionFacts
}

func NewAuthUsecase(userRepo repository.UserRepository, uploader storage.Uploader, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		uploader: uploader,
		config:   cfg,
	}
}

func (u *authUsecase) SetSubscriptionFacts(facts SubscriptionFacts) {
	u.subFacts = facts
}

func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (*authdomain.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" || in.Email == "" || in.Password == "" || in.FullName == "" {
		return nil, apperr.Validation("all fields are required")
	}

	existing, err := u.userRepo.FindByUsernameOrEmail(ctx, username, in.Email)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("user with this username or email already exists")
	}

	hash, err := repository.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Username:     username,
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: hash,
	}

	if in.AvatarPath != "" {
		uploaded, err := u.uploader.Upload(ctx, in.AvatarPath)
		if err != nil {
			return nil, apperr.Validation("failed to upload avatar")
		}
		user.Avatar = uploaded.URL
	}
	if in.CoverImagePath != "" {
		uploaded, err := u.uploader.Upload(ctx, in.CoverImagePath)
		if err != nil {
			return nil, apperr.Validation("failed to upload cover image")
		}
		user.CoverImage = uploaded.URL
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if _, ok := apperr.As(err); ok {
			return nil, err
		}
		return nil, apperr.Storage(err)
	}

	return u.userRepo.FindByIDPublic(ctx, user.ID)
}

func (u *authUsecase) Login(ctx context.Context, in LoginInput) (*authdto.TokenResponse, error) {
	if in.Username == "" && in.Email == "" {
		return nil, apperr.Validation("username or email is required")
	}

	username := strings.ToLower(strings.TrimSpace(in.Username))
	user, err := u.userRepo.FindByUsernameOrEmail(ctx, username, in.Email)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if user == nil {
		return nil, apperr.NotFound("user does not exist")
	}

	if !repository.CheckPasswordHash(in.Password, user.PasswordHash) {
		return nil, apperr.Unauthenticated("incorrect password")
	}

	accessToken, refreshToken, err := u.issuePair(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	publicUser, err := u.userRepo.FindByIDPublic(ctx, user.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	return &authdto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         publicUser,
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, userID string) error {
	// Clearing the stored token revokes every outstanding refresh token:
	// the equality check in RedeemRefresh can never match again.
	if err := u.userRepo.UpdateRefreshToken(ctx, userID, ""); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// issuePair signs a fresh access/refresh pair and persists the refresh token
// onto the account, overwriting any prior value. That single write is the
// rotation point: the previous refresh token is dead from here on even
// though its signature stays valid.
func (u *authUsecase) issuePair(ctx context.Context, userID string) (string, string, error) {
	now := time.Now()

	accessToken, err := signToken(userID, u.config.AccessTokenSecret, now, u.config.AccessTokenExpiry)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := signToken(userID, u.config.RefreshTokenSecret, now, u.config.RefreshTokenExpiry)
	if err != nil {
		return "", "", err
	}

	if err := u.userRepo.UpdateRefreshToken(ctx, userID, refreshToken); err != nil {
		return "", "", apperr.Storage(err)
	}

	return accessToken, refreshToken, nil
}

func signToken(userID, secret string, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperr.Unauthenticated("token expired")
		}
		return "", apperr.Unauthenticated("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperr.Unauthenticated("invalid token claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", apperr.Unauthenticated("invalid token claims")
	}
	return sub, nil
}

func (u *authUsecase) VerifyAccess(token string) (string, error) {
	return parseToken(token, u.config.AccessTokenSecret)
}

func (u *authUsecase) RedeemRefresh(ctx context.Context, refreshToken string) (*authdto.TokenResponse, error) {
	if refreshToken == "" {
		return nil, apperr.Unauthenticated("refresh token is required")
	}

	userID, err := parseToken(refreshToken, u.config.RefreshTokenSecret)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if user == nil {
		return nil, apperr.Unauthenticated("invalid refresh token")
	}

	// Signature validity is not authority: the presented token must also be
	// the one currently on file. A rotated-away or logged-out token fails
	// here even though it still parses.
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, apperr.TokenRevoked("refresh token has been revoked")
	}

	accessToken, newRefreshToken, err := u.issuePair(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

func (u *authUsecase) GetUser(ctx context.Context, id string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByIDPublic(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

func (u *authUsecase) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return apperr.Storage(err)
	}
	if user == nil {
		return apperr.NotFound("user not found")
	}

	if !repository.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return apperr.Validation("invalid old password")
	}

	hash, err := repository.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := u.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (u *authUsecase) UpdateAccount(ctx context.Context, userID, fullName, email string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByIDPublic(ctx, userID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	user.FullName = fullName
	user.Email = email
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, apperr.Storage(err)
	}
	return u.userRepo.FindByIDPublic(ctx, userID)
}

func (u *authUsecase) UpdateAvatar(ctx context.Context, userID, localPath string) (*authdomain.User, error) {
	return u.updateImage(ctx, userID, localPath, func(user *authdomain.User, url string) {
		user.Avatar = url
	})
}

func (u *authUsecase) UpdateCoverImage(ctx context.Context, userID, localPath string) (*authdomain.User, error) {
	return u.updateImage(ctx, userID, localPath, func(user *authdomain.User, url string) {
		user.CoverImage = url
	})
}

func (u *authUsecase) updateImage(ctx context.Context, userID, localPath string, assign func(*authdomain.User, string)) (*authdomain.User, error) {
	if localPath == "" {
		return nil, apperr.Validation("image file is required")
	}

	user, err := u.userRepo.FindByIDPublic(ctx, userID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	uploaded, err := u.uploader.Upload(ctx, localPath)
	if err != nil {
		return nil, apperr.Validation("failed to upload image")
	}

	assign(user, uploaded.URL)
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, apperr.Storage(err)
	}
	return u.userRepo.FindByIDPublic(ctx, userID)
}

func (u *authUsecase) ChannelProfile(ctx context.Context, username, viewerID string) (*authdto.ChannelProfile, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperr.Validation("username is required")
	}

	user, err := u.userRepo.FindByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if user == nil {
		return nil, apperr.NotFound("channel does not exist")
	}

	profile := &authdto.ChannelProfile{User: user}

	if u.subFacts != nil {
		if profile.SubscriberCount, err = u.subFacts.SubscriberCount(ctx, user.ID); err != nil {
			return nil, apperr.Storage(err)
		}
		if profile.SubscribedTo, err = u.subFacts.SubscribedChannelCount(ctx, user.ID); err != nil {
			return nil, apperr.Storage(err)
		}
		if viewerID != "" {
			if profile.IsSubscribed, err = u.subFacts.IsSubscribed(ctx, viewerID, user.ID); err != nil {
				return nil, apperr.Storage(err)
			}
		}
	}

	return profile, nil
}

func (u *authUsecase) RecordWatch(ctx context.Context, userID, videoID string) error {
	return u.userRepo.RecordWatch(ctx, userID, videoID)
}

func (u *authUsecase) WatchHistory(ctx context.Context, userID string, limit, offset int) ([]*authdomain.WatchEntry, error) {
	entries, err := u.userRepo.WatchHistory(ctx, userID, limit, offset)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return entries, nil
}
