package dto

import authdomain "vidtube-backend/internal/auth/domain"

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type UpdateAccountRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type TokenResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	User         *authdomain.User `json:"user,omitempty"`
}

// ChannelProfile is a user profile enriched with subscription facts relative
// to the requesting viewer.
type ChannelProfile struct {
	User            *authdomain.User `json:"user"`
	SubscriberCount int64            `json:"subscriber_count"`
	SubscribedTo    int64            `json:"subscribed_to_count"`
	IsSubscribed    bool             `json:"is_subscribed"`
}
