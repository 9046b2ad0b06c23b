package repository

import (
	"context"
	"errors"
	"time"

	authdomain "vidtube-backend/internal/auth/domain"
	"vidtube-backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserRepository is the credential store adapter: one record per account,
// including the password hash and the single rotating refresh token field.
type UserRepository interface {
	Create(ctx context.Context, user *authdomain.User) error
	FindByID(ctx context.Context, id string) (*authdomain.User, error)
	// FindByIDPublic loads a user without the password hash and refresh
	// token columns.
	FindByIDPublic(ctx context.Context, id string) (*authdomain.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*authdomain.User, error)
	FindByUsername(ctx context.Context, username string) (*authdomain.User, error)
	Update(ctx context.Context, user *authdomain.User) error
	// UpdateRefreshToken atomically overwrites the stored refresh token.
	// Passing the empty string clears it (logout / revocation).
	UpdateRefreshToken(ctx context.Context, userID, token string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	RecordWatch(ctx context.Context, userID, videoID string) error
	WatchHistory(ctx context.Context, userID string, limit, offset int) ([]*authdomain.WatchEntry, error)
}

// userRepository implements UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *authdomain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("user with this username or email already exists")
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDPublic(ctx context.Context, id string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.WithContext(ctx).
		Omit("password_hash", "refresh_token").
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.WithContext(ctx).
		Omit("password_hash", "refresh_token").
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *authdomain.User) error {
	user.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Model(&authdomain.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"full_name":   user.FullName,
			"email":       user.Email,
			"avatar":      user.Avatar,
			"cover_image": user.CoverImage,
			"updated_at":  user.UpdatedAt,
		}).Error
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID, token string) error {
	return r.db.WithContext(ctx).
		Model(&authdomain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"refresh_token": token, "updated_at": time.Now()}).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&authdomain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"password_hash": passwordHash, "updated_at": time.Now()}).Error
}

func (r *userRepository) RecordWatch(ctx context.Context, userID, videoID string) error {
	entry := &authdomain.WatchEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		VideoID:   videoID,
		WatchedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *userRepository) WatchHistory(ctx context.Context, userID string, limit, offset int) ([]*authdomain.WatchEntry, error) {
	var entries []*authdomain.WatchEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("watched_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
