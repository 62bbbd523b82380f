package media

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/vidtube/backend/internal/logging"
)

// Host uploads staged files to object storage and removes stored assets.
type Host struct {
	storage ObjectStorage
	prober  DurationProber
	newKey  func(kind Kind, originalName string) string
}

// NewHost constructs a Host. A nil storage makes every upload fail with ErrStorageUnavailable.
func NewHost(storage ObjectStorage, prober DurationProber) *Host {
	return &Host{storage: storage, prober: prober, newKey: objectKey}
}

// Upload pushes a staged file to storage. Videos are probed for their duration first.
// The staged file is removed from local disk whether or not the upload succeeds.
func (h *Host) Upload(ctx context.Context, file StagedFile, kind Kind) (Asset, error) {
	defer removeStaged(ctx, file.Path)

	if h == nil || h.storage == nil {
		return Asset{}, ErrStorageUnavailable
	}
	if kind != KindVideo && kind != KindImage {
		return Asset{}, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}

	asset := Asset{Kind: kind}
	if kind == KindVideo && h.prober != nil {
		duration, err := h.prober.Probe(ctx, file.Path)
		if err != nil {
			return Asset{}, fmt.Errorf("probe %s: %w", file.OriginalName, err)
		}
		asset.Duration = int64(math.Round(duration.Seconds()))
	}

	f, err := os.Open(file.Path)
	if err != nil {
		return Asset{}, fmt.Errorf("open staged file: %w", err)
	}
	defer f.Close()

	location, err := h.storage.Save(ctx, h.newKey(kind, file.OriginalName), f)
	if err != nil {
		return Asset{}, fmt.Errorf("store %s: %w", kind, err)
	}
	asset.URL = location

	logging.FromContext(ctx).Debug("media uploaded",
		slog.String("kind", string(kind)),
		slog.String("url", location),
		slog.Int64("size", file.Size),
	)
	return asset, nil
}

// Delete removes a stored asset by the location Upload returned.
func (h *Host) Delete(ctx context.Context, location string) error {
	if h == nil || h.storage == nil {
		return ErrStorageUnavailable
	}
	if strings.TrimSpace(location) == "" {
		return nil
	}
	if err := h.storage.Delete(ctx, location); err != nil {
		return fmt.Errorf("delete %s: %w", location, err)
	}
	return nil
}

func objectKey(kind Kind, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return path.Join(string(kind)+"s", uuid.NewString()+ext)
}

func removeStaged(ctx context.Context, p string) {
	if p == "" {
		return
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		logging.FromContext(ctx).Warn("remove staged upload", slog.String("path", p), slog.Any("error", err))
	}
}
