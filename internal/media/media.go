package media

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrStorageUnavailable indicates no object store is configured.
	ErrStorageUnavailable = errors.New("media storage unavailable")
	// ErrUnsupportedKind indicates an asset kind the host does not know how to store.
	ErrUnsupportedKind = errors.New("unsupported media kind")
)

// Kind distinguishes the media categories the host stores.
type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
)

// StagedFile is an upload written to local disk before it is pushed to object storage.
type StagedFile struct {
	Path         string
	OriginalName string
	ContentType  string
	Size         int64
}

// Asset describes a stored media object.
type Asset struct {
	URL  string
	Kind Kind
	// Duration is the playback length, rounded to whole seconds. Zero for images.
	Duration int64
}

// ObjectStorage persists media bytes and returns the public location.
type ObjectStorage interface {
	Save(ctx context.Context, key string, r io.Reader) (string, error)
	Delete(ctx context.Context, location string) error
}

// DurationProber reports the playback length of a local media file.
type DurationProber interface {
	Probe(ctx context.Context, path string) (time.Duration, error)
}
