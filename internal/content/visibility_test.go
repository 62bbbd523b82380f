package content

import (
	"context"
	"testing"
	"time"

	"github.com/vidtube/backend/internal/models"
)

func TestUnpublishedVideoHiddenFromStrangers(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	stranger := f.user(t, "stranger")
	ctx := context.Background()
	draft := f.video(t, owner.ID, "draft", false, time.Now().UTC())
	playlist, err := f.services.Playlists.Create(ctx, stranger.ID, "mine", "")
	if err != nil {
		t.Fatalf("create playlist: %v", err)
	}

	checks := []struct {
		name string
		act  func() error
	}{
		{"like", func() error { _, err := f.services.Likes.ToggleVideoLike(ctx, stranger.ID, draft.ID); return err }},
		{"comment", func() error { _, err := f.services.Comments.Add(ctx, stranger.ID, draft.ID, "hi"); return err }},
		{"list comments", func() error { _, err := f.services.Comments.List(ctx, stranger.ID, draft.ID, ListParams{}); return err }},
		{"add to playlist", func() error {
			_, err := f.services.Playlists.AddVideo(ctx, stranger.ID, draft.ID, playlist.ID)
			return err
		}},
	}
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			requireKind(t, c.act(), KindNotFound)
		})
	}

	if n, _ := f.store.Likes.Count(ctx, models.Target{Kind: models.TargetVideo, ID: draft.ID}); n != 0 {
		t.Fatalf("stranger like was stored: %d", n)
	}
	if got, _ := f.store.Playlists.FindByID(ctx, playlist.ID); len(got.Videos) != 0 {
		t.Fatalf("draft was added to the playlist: %v", got.Videos)
	}
}

func TestUnpublishedVideoUsableByOwner(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	ctx := context.Background()
	draft := f.video(t, owner.ID, "draft", false, time.Now().UTC())

	if res, err := f.services.Likes.ToggleVideoLike(ctx, owner.ID, draft.ID); err != nil || res.Count != 1 {
		t.Fatalf("owner like = %+v, %v", res, err)
	}
	if _, err := f.services.Comments.Add(ctx, owner.ID, draft.ID, "note to self"); err != nil {
		t.Fatalf("owner comment: %v", err)
	}
	page, err := f.services.Comments.List(ctx, owner.ID, draft.ID, ListParams{})
	if err != nil || page.TotalItems != 1 {
		t.Fatalf("owner List() = %+v, %v", page, err)
	}
	liked, err := f.services.Likes.LikedVideos(ctx, owner.ID)
	if err != nil || liked.Total != 1 || liked.Videos[0].ID != draft.ID {
		t.Fatalf("owner LikedVideos() = %+v, %v", liked, err)
	}
}

func TestLikedVideosSkipsForeignDrafts(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	fan := f.user(t, "fan")
	ctx := context.Background()
	public := f.video(t, owner.ID, "public", true, time.Now().UTC())
	draft := f.video(t, owner.ID, "draft", false, time.Now().UTC())

	for _, id := range []string{public.ID, draft.ID} {
		like := models.Like{ID: models.NewID(), LikedBy: fan.ID, VideoID: id, CreatedAt: time.Now().UTC()}
		if err := f.store.Likes.Add(ctx, like); err != nil {
			t.Fatalf("seed like: %v", err)
		}
	}

	liked, err := f.services.Likes.LikedVideos(ctx, fan.ID)
	if err != nil {
		t.Fatalf("LikedVideos() error = %v", err)
	}
	if liked.Total != 1 || liked.Videos[0].ID != public.ID {
		t.Fatalf("LikedVideos() = %+v, want only %s", liked, public.ID)
	}
}
