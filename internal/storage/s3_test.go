package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vidtube/backend/internal/config"
)

type stubUploader struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (u *stubUploader) Upload(_ context.Context, input *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	if u.err != nil {
		return nil, u.err
	}
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	u.input = input
	u.body = string(data)
	return &manager.UploadOutput{}, nil
}

type stubDeleter struct {
	keys []string
	err  error
}

func (d *stubDeleter) DeleteObject(_ context.Context, input *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if d.err != nil {
		return nil, d.err
	}
	d.keys = append(d.keys, aws.ToString(input.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3StorageSave(t *testing.T) {
	uploader := &stubUploader{}
	store := &S3Storage{uploader: uploader, bucket: "media", baseURL: "https://cdn.example.com"}

	location, err := store.Save(context.Background(), "/videos/a.mp4", strings.NewReader("frames"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if location != "https://cdn.example.com/videos/a.mp4" {
		t.Fatalf("unexpected location %q", location)
	}
	if aws.ToString(uploader.input.Bucket) != "media" || aws.ToString(uploader.input.Key) != "videos/a.mp4" {
		t.Fatalf("unexpected upload input bucket=%q key=%q", aws.ToString(uploader.input.Bucket), aws.ToString(uploader.input.Key))
	}
	if uploader.body != "frames" {
		t.Fatalf("unexpected body %q", uploader.body)
	}
}

func TestS3StorageSaveWithoutBaseURL(t *testing.T) {
	store := &S3Storage{uploader: &stubUploader{}, bucket: "media"}

	location, err := store.Save(context.Background(), "images/a.png", strings.NewReader("pixels"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if location != "images/a.png" {
		t.Fatalf("expected bare key, got %q", location)
	}
}

func TestS3StorageSaveErrors(t *testing.T) {
	store := &S3Storage{uploader: &stubUploader{err: errors.New("denied")}, bucket: "media"}

	if _, err := store.Save(context.Background(), "", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for empty key")
	}
	if _, err := store.Save(context.Background(), "images/a.png", strings.NewReader("x")); err == nil {
		t.Fatal("expected upload error")
	}
}

func TestS3StorageDelete(t *testing.T) {
	deleter := &stubDeleter{}
	store := &S3Storage{deleter: deleter, bucket: "media", baseURL: "https://cdn.example.com"}

	for _, location := range []string{"https://cdn.example.com/videos/a.mp4", "images/b.png"} {
		if err := store.Delete(context.Background(), location); err != nil {
			t.Fatalf("Delete(%q) error = %v", location, err)
		}
	}
	if len(deleter.keys) != 2 || deleter.keys[0] != "videos/a.mp4" || deleter.keys[1] != "images/b.png" {
		t.Fatalf("unexpected deleted keys %v", deleter.keys)
	}

	if err := store.Delete(context.Background(), "https://cdn.example.com/"); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestNewS3StorageRequiresBucket(t *testing.T) {
	if _, err := NewS3Storage(context.Background(), config.ObjectStoreConfig{}); err == nil {
		t.Fatal("expected error without bucket")
	}
}
