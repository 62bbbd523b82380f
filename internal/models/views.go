package models

import "time"

// TargetKind names the entity an interaction points at.
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
	TargetChannel TargetKind = "channel"
)

// Target identifies the entity a like or subscription is attached to.
type Target struct {
	Kind TargetKind
	ID   string
}

// ToggleState reports what a toggle did.
type ToggleState string

const (
	ToggleCreated ToggleState = "created"
	ToggleDeleted ToggleState = "deleted"
)

// ToggleResult is the outcome of flipping an interaction on or off.
type ToggleResult struct {
	State ToggleState `json:"state"`
	Count int64       `json:"count"`
}

// OwnerSummary is the public projection of a user embedded in other views.
type OwnerSummary struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

// VideoDetails is a video joined with its owner's public fields.
type VideoDetails struct {
	Video
	OwnerDetails OwnerSummary `json:"ownerDetails"`
}

// VideoView is the single video read returned to viewers.
type VideoView struct {
	VideoDetails
	TotalLikes int64 `json:"totalLikes"`
}

// CommentDetails is a comment joined with its author's public fields.
type CommentDetails struct {
	Comment
	OwnerDetails OwnerSummary `json:"ownerDetails"`
}

// TweetDetails is a tweet joined with its author's public fields.
type TweetDetails struct {
	Tweet
	OwnerDetails OwnerSummary `json:"ownerDetails"`
}

// LikedVideo is a liked video stripped of internal fields.
type LikedVideo struct {
	ID           string       `json:"_id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	VideoFile    string       `json:"videoFile"`
	Thumbnail    string       `json:"thumbnail"`
	Duration     int64        `json:"duration"`
	CreatedAt    time.Time    `json:"createdAt"`
	LikedAt      time.Time    `json:"likedAt"`
	OwnerDetails OwnerSummary `json:"ownerDetails"`
}

// LikedVideos wraps the liked videos listing with its count.
type LikedVideos struct {
	Videos []LikedVideo `json:"likedVideos"`
	Total  int          `json:"totalLikedVideos"`
}

// ChannelStats aggregates the dashboard counters for one channel.
type ChannelStats struct {
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalVideos      int64 `json:"totalVideos"`
	TotalVideoLikes  int64 `json:"totalVideoLikes"`
	TotalViews       int64 `json:"totalViews"`
}

// ChannelVideo is the reduced video shape shown on the dashboard.
type ChannelVideo struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    int64     `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ChannelVideos wraps the dashboard video listing with its count.
type ChannelVideos struct {
	Videos []ChannelVideo `json:"videos"`
	Total  int            `json:"totalVideos"`
}

// ChannelMember is a user on either side of a subscription.
type ChannelMember struct {
	OwnerSummary
	SubscribedAt time.Time `json:"subscribedAt"`
}

// ChannelMembers wraps a subscriber or subscription listing with its count.
type ChannelMembers struct {
	Members []ChannelMember `json:"members"`
	Total   int64           `json:"total"`
}

// PlaylistDetails is a playlist with its derived video count and owner.
type PlaylistDetails struct {
	Playlist
	TotalVideos  int          `json:"totalVideos"`
	OwnerDetails OwnerSummary `json:"ownerDetails"`
}

// UserPlaylists wraps the playlists of one owner with their count.
type UserPlaylists struct {
	Playlists []PlaylistDetails `json:"playlists"`
	Total     int64             `json:"totalPlaylists"`
}

// WatchedVideo is one entry of a user's watch history.
type WatchedVideo struct {
	VideoDetails
	WatchedAt time.Time `json:"watchedAt"`
}
