package content

import (
	"context"
	"errors"
	"testing"

	"github.com/vidtube/backend/internal/media"
)

func register(t *testing.T, f *fixture, username string) {
	t.Helper()
	_, err := f.services.Accounts.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		FullName: "Test " + username,
		Password: "password123",
		Avatar:   staged("avatar.png"),
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	register(t, f, "Alice")
	ctx := context.Background()

	user, tokens, err := f.services.Accounts.Login(ctx, "", "ALICE@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.Username != "alice" || user.Avatar == "" {
		t.Fatalf("unexpected user %+v", user)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("expected tokens, got %+v", tokens)
	}

	_, _, err = f.services.Accounts.Login(ctx, "alice", "", "wrong-password")
	requireKind(t, err, KindUnauthenticated)

	_, _, err = f.services.Accounts.Login(ctx, "bob", "", "password123")
	requireKind(t, err, KindNotFound)
}

func TestRegisterConflictAndValidation(t *testing.T) {
	f := newFixture(t)
	register(t, f, "alice")
	ctx := context.Background()

	_, err := f.services.Accounts.Register(ctx, RegisterInput{
		Username: "alice", Email: "other@example.com", FullName: "A", Password: "password123", Avatar: staged("a.png"),
	})
	requireKind(t, err, KindConflict)

	uploads := len(f.host.uploads)
	_, err = f.services.Accounts.Register(ctx, RegisterInput{
		Username: "carol", Email: "carol@example.com", FullName: "C", Password: "password123",
	})
	requireKind(t, err, KindInvalidArgument)
	if len(f.host.uploads) != uploads {
		t.Fatal("expected no uploads without an avatar")
	}
}

func TestRegisterDiscardsAvatarWhenCoverFails(t *testing.T) {
	f := newFixture(t)
	host := &countingHost{fakeHost: f.host, failAfter: 1}
	f.services.Accounts.media = host

	_, err := f.services.Accounts.Register(context.Background(), RegisterInput{
		Username: "dave", Email: "dave@example.com", FullName: "D", Password: "password123",
		Avatar: staged("a.png"), CoverImage: staged("c.png"),
	})
	requireKind(t, err, KindInternal)
	if len(f.host.deleted) != 1 {
		t.Fatalf("expected the avatar to be discarded, got %v", f.host.deleted)
	}
}

type countingHost struct {
	*fakeHost
	failAfter int
	calls     int
}

func (h *countingHost) Upload(ctx context.Context, file media.StagedFile, kind media.Kind) (media.Asset, error) {
	h.calls++
	if h.calls > h.failAfter {
		return media.Asset{}, errors.New("upload refused")
	}
	return h.fakeHost.Upload(ctx, file, kind)
}

func TestRefreshRotatesTokens(t *testing.T) {
	f := newFixture(t)
	register(t, f, "alice")
	ctx := context.Background()

	user, tokens, err := f.services.Accounts.Login(ctx, "alice", "", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	rotated, err := f.services.Accounts.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if rotated.RefreshToken == tokens.RefreshToken {
		t.Fatal("expected a new refresh token")
	}

	_, err = f.services.Accounts.Refresh(ctx, tokens.RefreshToken)
	requireKind(t, err, KindUnauthenticated)

	if err := f.services.Accounts.Logout(ctx, user.ID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	_, err = f.services.Accounts.Refresh(ctx, rotated.RefreshToken)
	requireKind(t, err, KindUnauthenticated)

	_, err = f.services.Accounts.Refresh(ctx, "")
	requireKind(t, err, KindUnauthenticated)
}
