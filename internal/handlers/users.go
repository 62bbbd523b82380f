package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/vidtube/backend/internal/auth"
	"github.com/vidtube/backend/internal/content"
	"github.com/vidtube/backend/internal/middleware"
	"github.com/vidtube/backend/internal/models"
)

const refreshTokenCookie = "refreshToken"

// UserHandler implements registration, session and profile endpoints.
type UserHandler struct {
	Accounts *content.AccountService
	Uploads  Uploads
}

type registerRequest struct {
	Username string `form:"username" validate:"notblank,min=3,max=30,alphanum"`
	Email    string `form:"email" validate:"required,email"`
	FullName string `form:"fullName" validate:"notblank,max=100"`
	Password string `form:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required_without=Email"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type sessionResponse struct {
	User         *models.User `json:"user,omitempty"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// Register handles POST /users/register.
func (h UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	f, err := h.Uploads.parse(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer f.cleanup()

	req := registerRequest{
		Username: strings.TrimSpace(f.value("username")),
		Email:    strings.TrimSpace(f.value("email")),
		FullName: f.value("fullName"),
		Password: f.value("password"),
	}
	if err := validateRequest(req); err != nil {
		respondError(w, r, err)
		return
	}

	avatar, err := f.file("avatar")
	if err != nil {
		respondError(w, r, err)
		return
	}
	cover, err := f.file("coverImage")
	if err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.Accounts.Register(r.Context(), content.RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		FullName:   req.FullName,
		Password:   req.Password,
		Avatar:     avatar,
		CoverImage: cover,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusCreated, user, "User registered successfully")
}

// Login handles POST /users/login.
func (h UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(req); err != nil {
		respondError(w, r, err)
		return
	}

	user, tokens, err := h.Accounts.Login(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}
	setSessionCookies(w, tokens)
	respond(r.Context(), w, http.StatusOK, sessionResponse{
		User:         &user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, "User logged in successfully")
}

// Refresh handles POST /users/refresh-token. The token comes from the body or the refresh cookie.
func (h UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	token := strings.TrimSpace(req.RefreshToken)
	if token == "" {
		if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
			token = cookie.Value
		}
	}

	tokens, err := h.Accounts.Refresh(r.Context(), token)
	if err != nil {
		respondError(w, r, err)
		return
	}
	setSessionCookies(w, tokens)
	respond(r.Context(), w, http.StatusOK, sessionResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, "Access token refreshed")
}

// Logout handles POST /users/logout.
func (h UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	if err := h.Accounts.Logout(r.Context(), user.ID); err != nil {
		respondError(w, r, err)
		return
	}
	clearSessionCookies(w)
	respond(r.Context(), w, http.StatusOK, struct{}{}, "User logged out")
}

// CurrentUser handles GET /users/current-user.
func (h UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	respond(r.Context(), w, http.StatusOK, user, "Current user fetched successfully")
}

// History handles GET /users/history.
func (h UserHandler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	history, err := h.Accounts.WatchHistory(r.Context(), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, history, "Watch history fetched successfully")
}

func requireCaller(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		respondError(w, r, content.Unauthenticated("Unauthorized request"))
	}
	return user, ok
}

func setSessionCookies(w http.ResponseWriter, tokens models.SessionTokens) {
	http.SetCookie(w, sessionCookie(middleware.AccessTokenCookie, tokens.AccessToken, tokens.AccessExpiresAt))
	http.SetCookie(w, sessionCookie(refreshTokenCookie, tokens.RefreshToken, tokens.RefreshExpiresAt))
}

func clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{middleware.AccessTokenCookie, refreshTokenCookie} {
		cookie := sessionCookie(name, "", time.Unix(0, 0))
		cookie.MaxAge = -1
		http.SetCookie(w, cookie)
	}
}

func sessionCookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}
