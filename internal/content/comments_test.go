package content

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

func TestCommentLifecycle(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	fan := f.user(t, "fan")
	ctx := context.Background()
	video := f.video(t, owner.ID, "clip", true, time.Now().UTC())

	comment, err := f.services.Comments.Add(ctx, fan.ID, video.ID, "  great  ")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if comment.Content != "great" || comment.OwnerDetails.Username != "fan" {
		t.Fatalf("unexpected comment %+v", comment)
	}

	updated, err := f.services.Comments.Update(ctx, fan.ID, comment.ID, "even better")
	if err != nil || updated.Content != "even better" {
		t.Fatalf("Update() = %+v, %v", updated, err)
	}

	page, err := f.services.Comments.List(ctx, fan.ID, video.ID, ListParams{})
	if err != nil || page.TotalItems != 1 || page.Items[0].ID != comment.ID {
		t.Fatalf("List() = %+v, %v", page, err)
	}

	if err := f.services.Comments.Delete(ctx, fan.ID, comment.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	page, err = f.services.Comments.List(ctx, fan.ID, video.ID, ListParams{Page: "2"})
	if err != nil || page.TotalItems != 0 || len(page.Items) != 0 {
		t.Fatalf("List() after delete = %+v, %v", page, err)
	}
}

func TestCommentValidation(t *testing.T) {
	f := newFixture(t)
	fan := f.user(t, "fan")
	ctx := context.Background()

	_, err := f.services.Comments.Add(ctx, fan.ID, "bad", "hi")
	requireKind(t, err, KindInvalidArgument)

	_, err = f.services.Comments.Add(ctx, fan.ID, "64b7f0c2a1b2c3d4e5f60718", "hi")
	requireKind(t, err, KindNotFound)

	_, err = f.services.Comments.List(ctx, fan.ID, "64b7f0c2a1b2c3d4e5f60718", ListParams{})
	requireKind(t, err, KindNotFound)
}

func TestTweetsListing(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author")
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		if _, err := f.services.Tweets.Create(ctx, author.ID, text); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	page, err := f.services.Tweets.ListByUser(ctx, author.ID, ListParams{Limit: "2"})
	if err != nil || page.TotalItems != 3 || page.TotalPages != 2 || len(page.Items) != 2 {
		t.Fatalf("ListByUser() = %+v, %v", page, err)
	}

	_, err = f.services.Tweets.Create(ctx, author.ID, "   ")
	requireKind(t, err, KindInvalidArgument)
}

func TestCommentsPageBounds(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	fan := f.user(t, "fan")
	ctx := context.Background()
	video := f.video(t, owner.ID, "clip", true, time.Now().UTC())
	for i := 0; i < 25; i++ {
		if _, err := f.services.Comments.Add(ctx, fan.ID, video.ID, fmt.Sprintf("comment %d", i)); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	page, err := f.services.Comments.List(ctx, fan.ID, video.ID, ListParams{Page: "1", Limit: "10"})
	if err != nil || len(page.Items) != 10 || page.TotalItems != 25 || page.TotalPages != 3 {
		t.Fatalf("List() page 1 = %+v, %v", page, err)
	}
	page, err = f.services.Comments.List(ctx, fan.ID, video.ID, ListParams{Page: "3", Limit: "10"})
	if err != nil || len(page.Items) != 5 {
		t.Fatalf("List() page 3 = %+v, %v", page, err)
	}

	_, err = f.services.Comments.List(ctx, fan.ID, video.ID, ListParams{Page: "4", Limit: "10"})
	requireKind(t, err, KindInvalidArgument)
}

func TestTweetsPageBounds(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author")
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		if _, err := f.services.Tweets.Create(ctx, author.ID, fmt.Sprintf("tweet %d", i)); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	page, err := f.services.Tweets.ListByUser(ctx, author.ID, ListParams{Page: "1", Limit: "10"})
	if err != nil || len(page.Items) != 10 || page.TotalItems != 25 || page.TotalPages != 3 {
		t.Fatalf("ListByUser() page 1 = %+v, %v", page, err)
	}

	_, err = f.services.Tweets.ListByUser(ctx, author.ID, ListParams{Page: "4", Limit: "10"})
	requireKind(t, err, KindInvalidArgument)
}

func TestTimelineListingsRejectVideoSortFields(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	ctx := context.Background()
	video := f.video(t, owner.ID, "clip", true, time.Now().UTC())

	for _, field := range []string{models.SortTitle, models.SortViews, models.SortDuration} {
		t.Run(field, func(t *testing.T) {
			_, err := f.services.Comments.List(ctx, owner.ID, video.ID, ListParams{SortBy: field})
			requireKind(t, err, KindInvalidArgument)
			_, err = f.services.Tweets.ListByUser(ctx, owner.ID, ListParams{SortBy: field})
			requireKind(t, err, KindInvalidArgument)
		})
	}

	if _, err := f.services.Tweets.ListByUser(ctx, owner.ID, ListParams{SortBy: models.SortUpdatedAt, SortType: "asc"}); err != nil {
		t.Fatalf("ListByUser() by updatedAt error = %v", err)
	}
}

type unreadableTweets struct {
	repositories.TweetRepository
}

func (unreadableTweets) FindByID(context.Context, string) (models.Tweet, error) {
	return models.Tweet{}, errStoreDown
}

func TestTweetCreateReturnsOwner(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author")
	ctx := context.Background()

	tweet, err := f.services.Tweets.Create(ctx, author.ID, "  hello  ")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if tweet.Content != "hello" || tweet.OwnerDetails.Username != "author" || tweet.OwnerDetails.ID != author.ID {
		t.Fatalf("unexpected tweet %+v", tweet)
	}
}

func TestTweetCreateFailsWhenReloadFails(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author")
	svc := NewTweetService(unreadableTweets{f.store.Tweets}, f.store.Users)

	_, err := svc.Create(context.Background(), author.ID, "hello")
	requireKind(t, err, KindInternal)
	if n, _ := f.store.Tweets.Count(context.Background(), models.ListQuery{OwnerID: author.ID}); n != 1 {
		t.Fatalf("expected the tweet to be persisted, count = %d", n)
	}
}
