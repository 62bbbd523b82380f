package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for input, want := range tests {
		if got := ParseLevel(input); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewWithWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn")

	logger.Info("dropped")
	logger.Warn("kept", slog.String("video_id", "abc"))

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected exactly one json entry, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "kept" || entry["video_id"] != "abc" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNewWithFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vidtube.log")
	logger, closer := New(Options{Level: "info", FilePath: path, MaxSizeMB: 1})
	defer closer.Close()

	logger.Info("written")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestStartSpanCarriesCaller(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), NewWithWriter(&buf, "info"))
	ctx = WithUserID(ctx, "user-1")

	ctx, span := StartSpan(ctx, "videos.publish")
	if TraceIDFromContext(ctx) == "" || SpanIDFromContext(ctx) == "" {
		t.Fatal("expected trace and span ids on context")
	}
	span.End()

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode span entry: %v", err)
	}
	if entry["span_name"] != "videos.publish" || entry["user_id"] != "user-1" {
		t.Fatalf("unexpected span entry %v", entry)
	}
}
