package content

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/vidtube/backend/internal/auth"
	"github.com/vidtube/backend/internal/logging"
	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// SessionManager issues, rotates and revokes token pairs.
type SessionManager interface {
	Issue(ctx context.Context, user models.User) (models.SessionTokens, error)
	Consume(ctx context.Context, refreshToken string) (string, error)
	Revoke(ctx context.Context, userID string) error
}

// RegisterInput carries a sign up request. The avatar is required, the cover image is not.
type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     *media.StagedFile
	CoverImage *media.StagedFile
}

// AccountService handles registration, login and token rotation.
type AccountService struct {
	users    repositories.UserRepository
	sessions SessionManager
	media    MediaHost
	now      func() time.Time
}

// NewAccountService constructs an AccountService.
func NewAccountService(users repositories.UserRepository, sessions SessionManager, host MediaHost) *AccountService {
	return &AccountService{users: users, sessions: sessions, media: host, now: utcNow}
}

// Register creates an account. Uploaded images are removed again if the account cannot be stored.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))
	fullName := strings.TrimSpace(in.FullName)
	if username == "" || email == "" || fullName == "" || in.Password == "" {
		return models.User{}, InvalidArgument("All fields are required")
	}
	if in.Avatar == nil {
		return models.User{}, InvalidArgument("Avatar file is required")
	}

	if _, err := s.users.FindByLogin(ctx, username, email); err == nil {
		return models.User{}, Conflict("User with email or username already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return models.User{}, Internal("Failed to check existing users", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, Internal("Failed to secure password", err)
	}

	avatar, err := s.media.Upload(ctx, *in.Avatar, media.KindImage)
	if err != nil {
		return models.User{}, Internal("Failed to upload avatar", err)
	}
	var cover media.Asset
	if in.CoverImage != nil {
		if cover, err = s.media.Upload(ctx, *in.CoverImage, media.KindImage); err != nil {
			discardAssets(ctx, s.media, avatar.URL)
			return models.User{}, Internal("Failed to upload cover image", err)
		}
	}

	now := s.now()
	user := models.User{
		ID:           models.NewID(),
		Username:     username,
		Email:        email,
		FullName:     fullName,
		Avatar:       avatar.URL,
		CoverImage:   cover.URL,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		discardAssets(ctx, s.media, avatar.URL, cover.URL)
		if errors.Is(err, repositories.ErrConflict) {
			return models.User{}, Conflict("User with email or username already exists")
		}
		return models.User{}, Internal("Failed to register user", err)
	}

	logging.FromContext(ctx).Info("user registered", slog.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials given by username or email and issues a token pair.
func (s *AccountService) Login(ctx context.Context, username, email, password string) (models.User, models.SessionTokens, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" && email == "" {
		return models.User{}, models.SessionTokens{}, InvalidArgument("Username or email is required")
	}

	user, err := s.users.FindByLogin(ctx, username, email)
	if err != nil {
		return models.User{}, models.SessionTokens{}, lookupError(err, "User")
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return models.User{}, models.SessionTokens{}, Unauthenticated("Invalid user credentials")
	}

	tokens, err := s.sessions.Issue(ctx, user)
	if err != nil {
		return models.User{}, models.SessionTokens{}, Internal("Failed to issue tokens", err)
	}
	return user, tokens, nil
}

// Refresh exchanges a refresh token for a new token pair. Each refresh token works once.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (models.SessionTokens, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return models.SessionTokens{}, Unauthenticated("Refresh token is required")
	}

	userID, err := s.sessions.Consume(ctx, refreshToken)
	switch {
	case errors.Is(err, auth.ErrRefreshTokenExpired):
		return models.SessionTokens{}, Unauthenticated("Refresh token is expired")
	case errors.Is(err, auth.ErrSessionNotFound), errors.Is(err, auth.ErrInvalidToken):
		return models.SessionTokens{}, Unauthenticated("Invalid refresh token")
	case err != nil:
		return models.SessionTokens{}, Internal("Failed to refresh session", err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.SessionTokens{}, Unauthenticated("Invalid refresh token")
	} else if err != nil {
		return models.SessionTokens{}, Internal("Failed to load user", err)
	}

	tokens, err := s.sessions.Issue(ctx, user)
	if err != nil {
		return models.SessionTokens{}, Internal("Failed to issue tokens", err)
	}
	return tokens, nil
}

// Logout revokes every refresh session of the caller.
func (s *AccountService) Logout(ctx context.Context, callerID string) error {
	if err := s.sessions.Revoke(ctx, callerID); err != nil {
		return Internal("Failed to log out", err)
	}
	return nil
}

// WatchHistory returns the caller's watched videos, most recent first.
func (s *AccountService) WatchHistory(ctx context.Context, callerID string) ([]models.WatchedVideo, error) {
	history, err := s.users.WatchHistory(ctx, callerID)
	if err != nil {
		return nil, Internal("Failed to fetch watch history", err)
	}
	if history == nil {
		history = []models.WatchedVideo{}
	}
	return history, nil
}
