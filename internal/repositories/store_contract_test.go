package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vidtube/backend/internal/auth"
	"github.com/vidtube/backend/internal/models"
)

// runStoreContract exercises the behaviour every Store implementation must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	tests := []struct {
		name string
		run  func(t *testing.T, s Store)
	}{
		{"users", contractUsers},
		{"sessions", contractSessions},
		{"video listing", contractVideoListing},
		{"likes", contractLikes},
		{"subscriptions", contractSubscriptions},
		{"playlists", contractPlaylists},
		{"video delete cascades", contractVideoDeleteCascades},
		{"watch history", contractWatchHistory},
		{"channel stats", contractChannelStats},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.run(t, newStore(t))
		})
	}
}

var contractEpoch = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func contractUser(t *testing.T, s Store, username string) models.User {
	t.Helper()
	user := models.User{
		ID:           models.NewID(),
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "User " + username,
		Avatar:       "https://cdn.test/" + username + ".png",
		PasswordHash: "hash",
		CreatedAt:    contractEpoch,
		UpdatedAt:    contractEpoch,
	}
	if err := s.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func contractVideo(t *testing.T, s Store, owner models.User, title string, views int64, published bool, age time.Duration) models.Video {
	t.Helper()
	video := models.Video{
		ID:          models.NewID(),
		Owner:       owner.ID,
		Title:       title,
		Description: "about " + title,
		VideoFile:   "https://cdn.test/" + title + ".mp4",
		Thumbnail:   "https://cdn.test/" + title + ".png",
		Duration:    30,
		Views:       views,
		IsPublished: published,
		CreatedAt:   contractEpoch.Add(-age),
		UpdatedAt:   contractEpoch.Add(-age),
	}
	if err := s.Videos.Create(context.Background(), video); err != nil {
		t.Fatalf("create video %s: %v", title, err)
	}
	return video
}

func contractUsers(t *testing.T, s Store) {
	ctx := context.Background()
	alice := contractUser(t, s, "alice")

	dup := alice
	dup.ID = models.NewID()
	dup.Email = "other@example.com"
	if err := s.Users.Create(ctx, dup); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate username error = %v, want ErrConflict", err)
	}

	byEmail, err := s.Users.FindByLogin(ctx, "", "alice@example.com")
	if err != nil || byEmail.ID != alice.ID {
		t.Fatalf("FindByLogin(email) = %+v, %v", byEmail, err)
	}
	byName, err := s.Users.FindByLogin(ctx, "alice", "")
	if err != nil || byName.PasswordHash != "hash" {
		t.Fatalf("FindByLogin(username) = %+v, %v", byName, err)
	}
	if _, err := s.Users.FindByID(ctx, models.NewID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("FindByID(missing) error = %v", err)
	}
}

func contractSessions(t *testing.T, s Store) {
	ctx := context.Background()
	user := contractUser(t, s, "sam")
	expires := time.Now().UTC().Add(time.Hour).Truncate(time.Millisecond)
	session := auth.Session{TokenHash: "digest-1", UserID: user.ID, ExpiresAt: expires}
	if err := s.Sessions.Save(ctx, session); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if err := s.Sessions.Save(ctx, auth.Session{TokenHash: "digest-2", UserID: user.ID, ExpiresAt: expires}); err != nil {
		t.Fatalf("save second session: %v", err)
	}

	found, err := s.Sessions.Find(ctx, "digest-1")
	if err != nil || found.UserID != user.ID || !found.ExpiresAt.Equal(session.ExpiresAt) {
		t.Fatalf("Find() = %+v, %v", found, err)
	}

	if err := s.Sessions.DeleteForUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteForUser() error = %v", err)
	}
	for _, digest := range []string{"digest-1", "digest-2"} {
		if _, err := s.Sessions.Find(ctx, digest); !errors.Is(err, auth.ErrSessionNotFound) {
			t.Fatalf("Find(%s) after revoke error = %v", digest, err)
		}
	}
}

func contractVideoListing(t *testing.T, s Store) {
	ctx := context.Background()
	owner := contractUser(t, s, "owner")
	other := contractUser(t, s, "other")

	contractVideo(t, s, owner, "Go Tips", 50, true, 3*time.Hour)
	contractVideo(t, s, owner, "Cooking", 10, true, 2*time.Hour)
	contractVideo(t, s, owner, "Draft go", 99, false, time.Hour)
	contractVideo(t, s, other, "GOLANG deep dive", 5, true, 0)

	q := models.ListQuery{Page: 1, Limit: 10, SortField: models.SortViews, SortDirection: models.SortAscending, TextQuery: "go", PublishedOnly: true}
	videos, err := s.Videos.List(ctx, q)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var titles []string
	for _, v := range videos {
		titles = append(titles, v.Title)
	}
	if len(titles) != 2 || titles[0] != "GOLANG deep dive" || titles[1] != "Go Tips" {
		t.Fatalf("List() titles = %v", titles)
	}
	if videos[0].OwnerDetails.Username != "other" {
		t.Fatalf("expected owner details, got %+v", videos[0].OwnerDetails)
	}
	total, err := s.Videos.Count(ctx, q)
	if err != nil || total != 2 {
		t.Fatalf("Count() = %d, %v", total, err)
	}

	ownerQuery := models.ListQuery{Page: 2, Limit: 2, SortField: models.SortCreatedAt, SortDirection: models.SortDescending, OwnerID: owner.ID}
	page, err := s.Videos.List(ctx, ownerQuery)
	if err != nil || len(page) != 1 || page[0].Title != "Go Tips" {
		t.Fatalf("owner page 2 = %+v, %v", page, err)
	}

	channel, err := s.Videos.ListByOwner(ctx, owner.ID)
	if err != nil || len(channel) != 3 || channel[0].Title != "Draft go" {
		t.Fatalf("ListByOwner() = %+v, %v", channel, err)
	}
}

func contractLikes(t *testing.T, s Store) {
	ctx := context.Background()
	owner := contractUser(t, s, "owner")
	fan := contractUser(t, s, "fan")
	video := contractVideo(t, s, owner, "clip", 0, true, 0)
	target := models.Target{Kind: models.TargetVideo, ID: video.ID}

	like := models.Like{ID: models.NewID(), LikedBy: fan.ID, VideoID: video.ID, CreatedAt: contractEpoch}
	if err := s.Likes.Add(ctx, like); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	again := like
	again.ID = models.NewID()
	if err := s.Likes.Add(ctx, again); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate like error = %v, want ErrConflict", err)
	}
	if n, err := s.Likes.Count(ctx, target); err != nil || n != 1 {
		t.Fatalf("Count() = %d, %v", n, err)
	}

	liked, err := s.Likes.LikedVideos(ctx, fan.ID)
	if err != nil || len(liked) != 1 || liked[0].ID != video.ID || liked[0].OwnerDetails.Username != "owner" {
		t.Fatalf("LikedVideos() = %+v, %v", liked, err)
	}

	draft := contractVideo(t, s, owner, "draft", 0, false, 0)
	for _, actor := range []models.User{fan, owner} {
		if err := s.Likes.Add(ctx, models.Like{ID: models.NewID(), LikedBy: actor.ID, VideoID: draft.ID, CreatedAt: contractEpoch}); err != nil {
			t.Fatalf("like draft: %v", err)
		}
	}
	liked, err = s.Likes.LikedVideos(ctx, fan.ID)
	if err != nil || len(liked) != 1 || liked[0].ID != video.ID {
		t.Fatalf("LikedVideos() exposed a draft: %+v, %v", liked, err)
	}
	own, err := s.Likes.LikedVideos(ctx, owner.ID)
	if err != nil || len(own) != 1 || own[0].ID != draft.ID {
		t.Fatalf("owner LikedVideos() = %+v, %v", own, err)
	}

	removed, err := s.Likes.Remove(ctx, target, fan.ID)
	if err != nil || !removed {
		t.Fatalf("Remove() = %v, %v", removed, err)
	}
	removed, err = s.Likes.Remove(ctx, target, fan.ID)
	if err != nil || removed {
		t.Fatalf("second Remove() = %v, %v", removed, err)
	}
}

func contractSubscriptions(t *testing.T, s Store) {
	ctx := context.Background()
	channel := contractUser(t, s, "channel")
	fan := contractUser(t, s, "fan")

	sub := models.Subscription{ID: models.NewID(), ChannelID: channel.ID, SubscriberID: fan.ID, CreatedAt: contractEpoch}
	if err := s.Subscriptions.Add(ctx, sub); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	sub.ID = models.NewID()
	if err := s.Subscriptions.Add(ctx, sub); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate subscription error = %v, want ErrConflict", err)
	}

	if n, err := s.Subscriptions.CountSubscribers(ctx, channel.ID); err != nil || n != 1 {
		t.Fatalf("CountSubscribers() = %d, %v", n, err)
	}
	subscribers, err := s.Subscriptions.Subscribers(ctx, channel.ID)
	if err != nil || len(subscribers) != 1 || subscribers[0].Username != "fan" {
		t.Fatalf("Subscribers() = %+v, %v", subscribers, err)
	}
	channels, err := s.Subscriptions.SubscribedChannels(ctx, fan.ID)
	if err != nil || len(channels) != 1 || channels[0].Username != "channel" {
		t.Fatalf("SubscribedChannels() = %+v, %v", channels, err)
	}
}

func contractPlaylists(t *testing.T, s Store) {
	ctx := context.Background()
	owner := contractUser(t, s, "owner")
	first := contractVideo(t, s, owner, "first", 0, true, 0)
	second := contractVideo(t, s, owner, "second", 0, true, 0)

	playlist := models.Playlist{ID: models.NewID(), Name: "mix", Owner: owner.ID, Videos: []string{}, CreatedAt: contractEpoch, UpdatedAt: contractEpoch}
	if err := s.Playlists.Create(ctx, playlist); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	for _, v := range []models.Video{first, second} {
		if err := s.Playlists.AddVideo(ctx, playlist.ID, v.ID); err != nil {
			t.Fatalf("AddVideo() error = %v", err)
		}
	}
	if err := s.Playlists.AddVideo(ctx, playlist.ID, first.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate AddVideo() error = %v, want ErrConflict", err)
	}
	if err := s.Playlists.AddVideo(ctx, models.NewID(), first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("AddVideo(missing playlist) error = %v, want ErrNotFound", err)
	}

	stored, err := s.Playlists.FindByID(ctx, playlist.ID)
	if err != nil || len(stored.Videos) != 2 || stored.Videos[0] != first.ID {
		t.Fatalf("FindByID() = %+v, %v", stored, err)
	}

	if err := s.Playlists.RemoveVideo(ctx, playlist.ID, first.ID); err != nil {
		t.Fatalf("RemoveVideo() error = %v", err)
	}
	if err := s.Playlists.RemoveVideo(ctx, playlist.ID, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second RemoveVideo() error = %v, want ErrNotFound", err)
	}

	lists, err := s.Playlists.ListByOwner(ctx, owner.ID)
	if err != nil || len(lists) != 1 || lists[0].TotalVideos != 1 || lists[0].OwnerDetails.Username != "owner" {
		t.Fatalf("ListByOwner() = %+v, %v", lists, err)
	}
	if n, err := s.Playlists.CountByOwner(ctx, owner.ID); err != nil || n != 1 {
		t.Fatalf("CountByOwner() = %d, %v", n, err)
	}
}

func contractVideoDeleteCascades(t *testing.T, s Store) {
	ctx := context.Background()
	owner := contractUser(t, s, "owner")
	fan := contractUser(t, s, "fan")
	video := contractVideo(t, s, owner, "doomed", 0, true, 0)

	comment := models.Comment{ID: models.NewID(), Content: "hi", VideoID: video.ID, Owner: fan.ID, CreatedAt: contractEpoch, UpdatedAt: contractEpoch}
	if err := s.Comments.Create(ctx, comment); err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if err := s.Likes.Add(ctx, models.Like{ID: models.NewID(), LikedBy: fan.ID, CommentID: comment.ID, CreatedAt: contractEpoch}); err != nil {
		t.Fatalf("like comment: %v", err)
	}
	if err := s.Likes.Add(ctx, models.Like{ID: models.NewID(), LikedBy: fan.ID, VideoID: video.ID, CreatedAt: contractEpoch}); err != nil {
		t.Fatalf("like video: %v", err)
	}
	playlist := models.Playlist{ID: models.NewID(), Name: "keep", Owner: fan.ID, Videos: []string{}, CreatedAt: contractEpoch, UpdatedAt: contractEpoch}
	if err := s.Playlists.Create(ctx, playlist); err != nil {
		t.Fatalf("create playlist: %v", err)
	}
	if err := s.Playlists.AddVideo(ctx, playlist.ID, video.ID); err != nil {
		t.Fatalf("add to playlist: %v", err)
	}

	if err := s.Videos.Delete(ctx, video.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Videos.Delete(ctx, video.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete() error = %v, want ErrNotFound", err)
	}

	if _, err := s.Comments.FindByID(ctx, comment.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("comment survived delete: %v", err)
	}
	if n, _ := s.Likes.Count(ctx, models.Target{Kind: models.TargetComment, ID: comment.ID}); n != 0 {
		t.Fatalf("comment likes survived delete: %d", n)
	}
	if n, _ := s.Likes.Count(ctx, models.Target{Kind: models.TargetVideo, ID: video.ID}); n != 0 {
		t.Fatalf("video likes survived delete: %d", n)
	}
	stored, err := s.Playlists.FindByID(ctx, playlist.ID)
	if err != nil || len(stored.Videos) != 0 {
		t.Fatalf("playlist after delete = %+v, %v", stored, err)
	}
}

func contractWatchHistory(t *testing.T, s Store) {
	ctx := context.Background()
	owner := contractUser(t, s, "owner")
	viewer := contractUser(t, s, "viewer")
	first := contractVideo(t, s, owner, "first", 0, true, 0)
	second := contractVideo(t, s, owner, "second", 0, true, 0)

	watches := []struct {
		video models.Video
		at    time.Time
	}{
		{first, contractEpoch},
		{second, contractEpoch.Add(time.Minute)},
		{first, contractEpoch.Add(2 * time.Minute)},
	}
	for _, w := range watches {
		if err := s.Users.RecordWatch(ctx, viewer.ID, w.video.ID, w.at); err != nil {
			t.Fatalf("RecordWatch() error = %v", err)
		}
	}

	history, err := s.Users.WatchHistory(ctx, viewer.ID)
	if err != nil {
		t.Fatalf("WatchHistory() error = %v", err)
	}
	if len(history) != 2 || history[0].ID != first.ID || history[1].ID != second.ID {
		t.Fatalf("WatchHistory() = %+v", history)
	}
	if history[0].OwnerDetails.Username != "owner" {
		t.Fatalf("expected owner details, got %+v", history[0].OwnerDetails)
	}
}

func contractChannelStats(t *testing.T, s Store) {
	ctx := context.Background()
	owner := contractUser(t, s, "owner")
	fan := contractUser(t, s, "fan")

	empty, err := s.Dashboard.ChannelStats(ctx, owner.ID)
	if err != nil || empty != (models.ChannelStats{}) {
		t.Fatalf("ChannelStats(empty) = %+v, %v", empty, err)
	}

	video := contractVideo(t, s, owner, "hit", 7, true, 0)
	contractVideo(t, s, owner, "flop", 3, false, 0)
	if err := s.Likes.Add(ctx, models.Like{ID: models.NewID(), LikedBy: fan.ID, VideoID: video.ID, CreatedAt: contractEpoch}); err != nil {
		t.Fatalf("like video: %v", err)
	}
	if err := s.Subscriptions.Add(ctx, models.Subscription{ID: models.NewID(), ChannelID: owner.ID, SubscriberID: fan.ID, CreatedAt: contractEpoch}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	stats, err := s.Dashboard.ChannelStats(ctx, owner.ID)
	want := models.ChannelStats{TotalSubscribers: 1, TotalVideos: 2, TotalVideoLikes: 1, TotalViews: 10}
	if err != nil || stats != want {
		t.Fatalf("ChannelStats() = %+v, %v, want %+v", stats, err, want)
	}
}
