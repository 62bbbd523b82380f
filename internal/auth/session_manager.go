package auth

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"lukechampine.com/blake3"

	"github.com/vidtube/backend/internal/models"
)

var (
	// ErrSessionNotFound indicates the provided refresh token does not map to an active session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrRefreshTokenExpired indicates the refresh token has expired and cannot be used.
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	// ErrInvalidToken indicates a token failed signature, claim or format checks.
	ErrInvalidToken = errors.New("invalid token")
)

// SessionStore persists issued refresh tokens so they can survive process restarts.
// Only the blake3 digest of a refresh token is ever stored.
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	Find(ctx context.Context, tokenHash string) (Session, error)
	Delete(ctx context.Context, tokenHash string) error
	DeleteForUser(ctx context.Context, userID string) error
}

// Session represents a refresh token issued to a user.
type Session struct {
	TokenHash string
	UserID    string
	ExpiresAt time.Time
}

// Claims are carried by access tokens.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

// TokenConfig holds signing secrets and lifetimes.
type TokenConfig struct {
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
}

// Manager issues signed access tokens and rotating refresh tokens backed by a session store.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration

	store SessionStore
	now   func() time.Time
}

// NewManager constructs a Manager using the provided secrets, TTLs and session store.
func NewManager(cfg TokenConfig, store SessionStore) *Manager {
	if store == nil {
		panic("auth: session store must not be nil")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 10 * 24 * time.Hour
	}
	return &Manager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		store:         store,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Issue creates a new pair of access and refresh tokens for the provided user.
func (m *Manager) Issue(ctx context.Context, user models.User) (models.SessionTokens, error) {
	if user.ID == "" {
		return models.SessionTokens{}, errors.New("user id must be provided")
	}

	now := m.now()
	accessExpires := now.Add(m.accessTTL)
	refreshExpires := now.Add(m.refreshTTL)

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExpires),
		},
	})
	accessToken, err := access.SignedString(m.accessSecret)
	if err != nil {
		return models.SessionTokens{}, fmt.Errorf("sign access token: %w", err)
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(refreshExpires),
	})
	refreshToken, err := refresh.SignedString(m.refreshSecret)
	if err != nil {
		return models.SessionTokens{}, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := m.store.Save(ctx, Session{
		TokenHash: HashToken(refreshToken),
		UserID:    user.ID,
		ExpiresAt: refreshExpires,
	}); err != nil {
		return models.SessionTokens{}, err
	}

	return models.SessionTokens{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpires,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpires,
	}, nil
}

// Verify validates an access token and returns its claims.
func (m *Manager) Verify(accessToken string) (Claims, error) {
	var claims Claims
	if err := m.parse(accessToken, m.accessSecret, &claims); err != nil {
		return Claims{}, err
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// Consume validates a refresh token, removes its session and returns the owning user id.
// Callers issue a fresh pair afterwards, so every refresh token is single use.
func (m *Manager) Consume(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrSessionNotFound
	}

	var claims jwt.RegisteredClaims
	if err := m.parse(refreshToken, m.refreshSecret, &claims); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrRefreshTokenExpired
		}
		return "", err
	}

	hash := HashToken(refreshToken)
	session, err := m.store.Find(ctx, hash)
	if err != nil {
		return "", err
	}

	if session.UserID != claims.Subject {
		return "", ErrInvalidToken
	}

	if m.now().After(session.ExpiresAt) {
		_ = m.store.Delete(ctx, hash)
		return "", ErrRefreshTokenExpired
	}

	if err := m.store.Delete(ctx, hash); err != nil {
		return "", err
	}

	return session.UserID, nil
}

// Revoke removes every active session held by the user.
func (m *Manager) Revoke(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	return m.store.DeleteForUser(ctx, userID)
}

func (m *Manager) parse(token string, secret []byte, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}
		return ErrInvalidToken
	}
	return nil
}

// HashToken returns the hex encoded blake3 digest of a token.
func HashToken(token string) string {
	sum := blake3.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
