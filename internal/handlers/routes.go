package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidtube/backend/internal/content"
	"github.com/vidtube/backend/internal/middleware"
)

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Services    content.Services
	Tokens      middleware.TokenVerifier
	Users       middleware.UserFinder
	Uploads     Uploads
	AuthLimiter middleware.RateLimiter
	Health      HealthChecker
}

// NewRouter builds the HTTP routes under /api/v1.
func NewRouter(deps Dependencies) chi.Router {
	health := HealthHandler{Store: deps.Health}
	users := UserHandler{Accounts: deps.Services.Accounts, Uploads: deps.Uploads}
	videos := VideoHandler{Videos: deps.Services.Videos, Uploads: deps.Uploads}
	comments := CommentHandler{Comments: deps.Services.Comments}
	likes := LikeHandler{Likes: deps.Services.Likes}
	subscriptions := SubscriptionHandler{Subscriptions: deps.Services.Subscriptions}
	tweets := TweetHandler{Tweets: deps.Services.Tweets}
	playlists := PlaylistHandler{Playlists: deps.Services.Playlists}
	dashboard := DashboardHandler{Dashboard: deps.Services.Dashboard}

	authenticated := middleware.Authenticate(deps.Tokens, deps.Users, respondError)
	limited := func(scope string) func(http.Handler) http.Handler {
		return middleware.Limit(deps.AuthLimiter, scope, respondTooManyRequests)
	}

	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, content.NotFound("Route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(r.Context(), w, http.StatusMethodNotAllowed, errorEnvelope{
			Status:  http.StatusMethodNotAllowed,
			Message: "Method not allowed",
			Errors:  []string{},
		})
	})

	r.Get("/healthz", health.Handle)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", health.Handle)

		r.Route("/users", func(r chi.Router) {
			r.With(limited("register")).Post("/register", users.Register)
			r.With(limited("login")).Post("/login", users.Login)
			r.With(limited("refresh")).Post("/refresh-token", users.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Post("/logout", users.Logout)
				r.Get("/current-user", users.CurrentUser)
				r.Get("/history", users.History)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticated)

			r.Route("/videos", func(r chi.Router) {
				r.Get("/", videos.List)
				r.Post("/", videos.Publish)
				r.Get("/{videoId}", videos.Get)
				r.Patch("/{videoId}", videos.Update)
				r.Delete("/{videoId}", videos.Delete)
				r.Patch("/toggle/publish/{videoId}", videos.TogglePublish)
			})

			r.Route("/comments", func(r chi.Router) {
				r.Get("/{videoId}", comments.List)
				r.Post("/{videoId}", comments.Add)
				r.Patch("/c/{commentId}", comments.Update)
				r.Delete("/c/{commentId}", comments.Delete)
			})

			r.Route("/likes", func(r chi.Router) {
				r.Post("/toggle/v/{videoId}", likes.ToggleVideo())
				r.Post("/toggle/c/{commentId}", likes.ToggleComment())
				r.Post("/toggle/t/{tweetId}", likes.ToggleTweet())
				r.Get("/videos", likes.LikedVideos)
			})

			r.Route("/subscriptions", func(r chi.Router) {
				r.Post("/c/{channelId}", subscriptions.Toggle)
				r.Get("/c/{channelId}", subscriptions.Subscribers)
				r.Get("/u/{subscriberId}", subscriptions.SubscribedChannels)
			})

			r.Route("/tweets", func(r chi.Router) {
				r.Post("/", tweets.Create)
				r.Get("/user/{userId}", tweets.ListByUser)
				r.Patch("/{tweetId}", tweets.Update)
				r.Delete("/{tweetId}", tweets.Delete)
			})

			r.Route("/playlists", func(r chi.Router) {
				r.Post("/", playlists.Create)
				r.Get("/{playlistId}", playlists.Get)
				r.Patch("/{playlistId}", playlists.Update)
				r.Delete("/{playlistId}", playlists.Delete)
				r.Patch("/add/{videoId}/{playlistId}", playlists.AddVideo)
				r.Patch("/remove/{videoId}/{playlistId}", playlists.RemoveVideo)
				r.Get("/user/{userId}", playlists.UserPlaylists)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/stats", dashboard.Stats)
				r.Get("/videos", dashboard.Videos)
			})
		})
	})

	return r
}
