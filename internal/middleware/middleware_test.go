package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vidtube/backend/internal/auth"
	"github.com/vidtube/backend/internal/content"
	"github.com/vidtube/backend/internal/logging"
	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

type stubVerifier struct {
	claims auth.Claims
	err    error
	seen   string
}

func (s *stubVerifier) Verify(token string) (auth.Claims, error) {
	s.seen = token
	return s.claims, s.err
}

type stubUsers struct {
	users map[string]models.User
	err   error
}

func (s stubUsers) FindByID(_ context.Context, id string) (models.User, error) {
	if s.err != nil {
		return models.User{}, s.err
	}
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return user, nil
}

func recordingReject(kinds *[]content.Kind) ErrorResponder {
	return func(w http.ResponseWriter, _ *http.Request, err error) {
		*kinds = append(*kinds, content.KindOf(err))
		w.WriteHeader(http.StatusUnauthorized)
	}
}

func TestAuthenticate(t *testing.T) {
	user := models.User{ID: "64b7f0c2a1b2c3d4e5f60718", Username: "alice"}
	claims := auth.Claims{}
	claims.Subject = user.ID

	tests := []struct {
		name       string
		header     string
		cookie     string
		verifier   *stubVerifier
		users      stubUsers
		wantStatus int
		wantKind   content.Kind
		wantToken  string
	}{
		{
			name:       "bearer header",
			header:     "Bearer abc",
			verifier:   &stubVerifier{claims: claims},
			users:      stubUsers{users: map[string]models.User{user.ID: user}},
			wantStatus: http.StatusNoContent,
			wantToken:  "abc",
		},
		{
			name:       "cookie",
			cookie:     "from-cookie",
			verifier:   &stubVerifier{claims: claims},
			users:      stubUsers{users: map[string]models.User{user.ID: user}},
			wantStatus: http.StatusNoContent,
			wantToken:  "from-cookie",
		},
		{
			name:       "missing token",
			verifier:   &stubVerifier{claims: claims},
			wantStatus: http.StatusUnauthorized,
			wantKind:   content.KindUnauthenticated,
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc",
			verifier:   &stubVerifier{claims: claims},
			wantStatus: http.StatusUnauthorized,
			wantKind:   content.KindUnauthenticated,
		},
		{
			name:       "invalid token",
			header:     "Bearer bad",
			verifier:   &stubVerifier{err: auth.ErrInvalidToken},
			wantStatus: http.StatusUnauthorized,
			wantKind:   content.KindUnauthenticated,
		},
		{
			name:       "deleted user",
			header:     "Bearer abc",
			verifier:   &stubVerifier{claims: claims},
			users:      stubUsers{users: map[string]models.User{}},
			wantStatus: http.StatusUnauthorized,
			wantKind:   content.KindUnauthenticated,
		},
		{
			name:       "store failure",
			header:     "Bearer abc",
			verifier:   &stubVerifier{claims: claims},
			users:      stubUsers{err: errors.New("down")},
			wantStatus: http.StatusUnauthorized,
			wantKind:   content.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var kinds []content.Kind
			handler := Authenticate(tt.verifier, tt.users, recordingReject(&kinds))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, ok := auth.UserFromContext(r.Context())
				if !ok || got.ID != user.ID {
					t.Fatalf("expected caller on context, got %+v", got)
				}
				if logging.UserIDFromContext(r.Context()) != user.ID {
					t.Fatal("expected user id on logging context")
				}
				w.WriteHeader(http.StatusNoContent)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusNoContent {
				if len(kinds) != 1 || kinds[0] != tt.wantKind {
					t.Fatalf("rejected with %v, want %s", kinds, tt.wantKind)
				}
			}
			if tt.wantToken != "" && tt.verifier.seen != tt.wantToken {
				t.Fatalf("verified token %q, want %q", tt.verifier.seen, tt.wantToken)
			}
		})
	}
}

func TestRateLimiterAllowsBurstThenRefills(t *testing.T) {
	limiter := NewIPRateLimiter(2, time.Minute, 2, time.Hour).(*ipRateLimiter)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.WithNowFunc(func() time.Time { return now })

	if !limiter.Allow("1.2.3.4") || !limiter.Allow("1.2.3.4") {
		t.Fatal("expected the burst to be allowed")
	}
	if limiter.Allow("1.2.3.4") {
		t.Fatal("expected the third request to be limited")
	}
	if !limiter.Allow("5.6.7.8") {
		t.Fatal("expected a different client to be allowed")
	}

	now = now.Add(30 * time.Second)
	if !limiter.Allow("1.2.3.4") {
		t.Fatal("expected a token to refill after half the window")
	}
	if limiter.Allow("1.2.3.4") {
		t.Fatal("expected only one refilled token")
	}
}

func TestRateLimiterExpiresIdleVisitors(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Minute, 1, time.Minute).(*ipRateLimiter)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.WithNowFunc(func() time.Time { return now })

	limiter.Allow("a")
	now = now.Add(2 * time.Minute)
	limiter.Allow("b")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if _, ok := limiter.visitors["a"]; ok {
		t.Fatal("expected idle visitor to be collected")
	}
}

type denyAll struct{ keys []string }

func (d *denyAll) Allow(key string) bool {
	d.keys = append(d.keys, key)
	return false
}

func TestLimitMiddleware(t *testing.T) {
	limiter := &denyAll{}
	handler := Limit(limiter, "login", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("limited request reached the handler")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", nil)
	req.Header.Set("X-Forwarded-For", "9.9.9.9, 10.0.0.1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "login:9.9.9.9" {
		t.Fatalf("unexpected keys %v", limiter.keys)
	}

	passthrough := Limit(nil, "login", nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rec = httptest.NewRecorder()
	passthrough.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("nil limiter status = %d", rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	if got := clientIP(req); got != "192.0.2.1" {
		t.Fatalf("clientIP() = %q", got)
	}
}

func TestRequestLoggerRecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := RequestLogger(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body struct {
		Status  int      `json:"status"`
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != http.StatusInternalServerError || body.Errors == nil {
		t.Fatalf("unexpected envelope %+v", body)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a request id header")
	}
	if !strings.Contains(buf.String(), "panic recovered") || !strings.Contains(buf.String(), `"status":500`) {
		t.Fatalf("unexpected log output %s", buf.String())
	}
}
