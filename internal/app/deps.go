package app

import (
	"context"
	"time"

	"github.com/vidtube/backend/internal/auth"
	"github.com/vidtube/backend/internal/config"
	"github.com/vidtube/backend/internal/content"
	"github.com/vidtube/backend/internal/handlers"
	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/middleware"
	"github.com/vidtube/backend/internal/repositories"
	"github.com/vidtube/backend/internal/storage"
)

const rateLimiterTTL = 10 * time.Minute

// buildDependencies wires together concrete implementations used by the HTTP handlers.
func buildDependencies(ctx context.Context, cfg config.Config, store repositories.Store, health handlers.HealthChecker) (handlers.Dependencies, error) {
	var objects media.ObjectStorage
	if cfg.ObjectStore.Bucket != "" {
		s3, err := storage.NewS3Storage(ctx, cfg.ObjectStore)
		if err != nil {
			return handlers.Dependencies{}, err
		}
		objects = s3
	}
	host := media.NewHost(objects, media.NewFFProbe(cfg.FFProbePath, cfg.FFProbeTimeout))

	sessions := auth.NewManager(auth.TokenConfig{
		AccessSecret:  cfg.AccessTokenSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshSecret: cfg.RefreshTokenSecret,
		RefreshTTL:    cfg.RefreshTokenTTL,
	}, store.Sessions)

	return handlers.Dependencies{
		Services:    content.NewServices(store, host, sessions),
		Tokens:      sessions,
		Users:       store.Users,
		Uploads:     handlers.Uploads{Dir: cfg.UploadDir, MaxBytes: cfg.MaxUploadBytes},
		AuthLimiter: middleware.NewIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow, cfg.AuthRateLimit, rateLimiterTTL),
		Health:      health,
	}, nil
}
