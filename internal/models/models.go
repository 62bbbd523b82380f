package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewID returns a fresh document identifier in its 24 character hex form.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// User represents an account within the VidTube platform.
type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	Avatar       string    `json:"avatar"`
	CoverImage   string    `json:"coverImage,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Summary returns the reduced owner shape joined into other views.
func (u User) Summary() OwnerSummary {
	return OwnerSummary{ID: u.ID, Username: u.Username, FullName: u.FullName, Avatar: u.Avatar}
}

// Video is an uploaded media item owned by a channel.
type Video struct {
	ID          string    `json:"_id"`
	Owner       string    `json:"owner"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    int64     `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OwnerID implements the ownership capability.
func (v Video) OwnerID() string { return v.Owner }

// Comment is a remark left on a video.
type Comment struct {
	ID        string    `json:"_id"`
	Content   string    `json:"content"`
	VideoID   string    `json:"video"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerID implements the ownership capability.
func (c Comment) OwnerID() string { return c.Owner }

// Tweet is a short text post published on a channel.
type Tweet struct {
	ID        string    `json:"_id"`
	Content   string    `json:"content"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerID implements the ownership capability.
func (t Tweet) OwnerID() string { return t.Owner }

// Like records that a user liked exactly one video, comment or tweet.
type Like struct {
	ID        string    `json:"_id"`
	LikedBy   string    `json:"likedBy"`
	VideoID   string    `json:"video,omitempty"`
	CommentID string    `json:"comment,omitempty"`
	TweetID   string    `json:"tweet,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Target returns the single entity the like points at.
func (l Like) Target() Target {
	switch {
	case l.VideoID != "":
		return Target{Kind: TargetVideo, ID: l.VideoID}
	case l.CommentID != "":
		return Target{Kind: TargetComment, ID: l.CommentID}
	default:
		return Target{Kind: TargetTweet, ID: l.TweetID}
	}
}

// Subscription links a subscriber to a channel. Both sides are users.
type Subscription struct {
	ID           string    `json:"_id"`
	ChannelID    string    `json:"channel"`
	SubscriberID string    `json:"subscriber"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Playlist is an ordered, duplicate free collection of videos.
type Playlist struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	Videos      []string  `json:"videos"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OwnerID implements the ownership capability.
func (p Playlist) OwnerID() string { return p.Owner }

// SessionTokens groups the bearer credentials issued to authenticated users.
type SessionTokens struct {
	AccessToken      string    `json:"accessToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshToken     string    `json:"refreshToken"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}
