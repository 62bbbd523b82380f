package repositories

import "github.com/vidtube/backend/internal/auth"

// Store bundles one backend's repositories.
type Store struct {
	Users         UserRepository
	Sessions      auth.SessionStore
	Videos        VideoRepository
	Dashboard     DashboardRepository
	Comments      CommentRepository
	Tweets        TweetRepository
	Likes         LikeRepository
	Subscriptions SubscriptionRepository
	Playlists     PlaylistRepository
}
