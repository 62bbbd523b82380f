package content

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/vidtube/backend/internal/auth"
	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

type fakeHost struct {
	mu        sync.Mutex
	uploads   []media.Kind
	deleted   []string
	failKinds map[media.Kind]error
	duration  int64
}

func (h *fakeHost) Upload(_ context.Context, file media.StagedFile, kind media.Kind) (media.Asset, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.failKinds[kind]; err != nil {
		return media.Asset{}, err
	}
	h.uploads = append(h.uploads, kind)
	asset := media.Asset{URL: fmt.Sprintf("https://media.test/%s/%d-%s", kind, len(h.uploads), file.OriginalName), Kind: kind}
	if kind == media.KindVideo {
		asset.Duration = h.duration
	}
	return asset, nil
}

func (h *fakeHost) Delete(_ context.Context, location string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deleted = append(h.deleted, location)
	return nil
}

type fixture struct {
	store    repositories.Store
	host     *fakeHost
	services Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repositories.NewMemoryStore()
	host := &fakeHost{duration: 42}
	sessions := auth.NewManager(auth.TokenConfig{AccessSecret: "access", RefreshSecret: "refresh"}, store.Sessions)
	return &fixture{store: store, host: host, services: NewServices(store, host, sessions)}
}

func (f *fixture) user(t *testing.T, username string) models.User {
	t.Helper()
	now := time.Now().UTC()
	user := models.User{
		ID:        models.NewID(),
		Username:  username,
		Email:     username + "@example.com",
		FullName:  "User " + username,
		Avatar:    "https://media.test/avatar.png",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := f.store.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (f *fixture) video(t *testing.T, ownerID, title string, published bool, createdAt time.Time) models.Video {
	t.Helper()
	video := models.Video{
		ID:          models.NewID(),
		Owner:       ownerID,
		Title:       title,
		Description: "about " + title,
		VideoFile:   "https://media.test/video/" + title + ".mp4",
		Thumbnail:   "https://media.test/image/" + title + ".png",
		Duration:    10,
		IsPublished: published,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	if err := f.store.Videos.Create(context.Background(), video); err != nil {
		t.Fatalf("create video: %v", err)
	}
	return video
}

func staged(name string) *media.StagedFile {
	return &media.StagedFile{Path: "/tmp/" + name, OriginalName: name, Size: 1}
}

func requireKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := KindOf(err); got != want {
		t.Fatalf("expected %s error, got %s (%v)", want, got, err)
	}
}

var errStoreDown = errors.New("store down")
