package media

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFFProbeProbe(t *testing.T) {
	probe := NewFFProbe("ffprobe", time.Second)
	probe.Run = func(ctx context.Context, binary string, args ...string) ([]byte, error) {
		wantArgs := []string{"-v", "error", "-show_entries", "format=duration", "-of", "json", "/tmp/clip.mp4"}
		if binary != "ffprobe" {
			t.Fatalf("unexpected binary %q", binary)
		}
		if len(args) != len(wantArgs) {
			t.Fatalf("unexpected args length: got %d want %d", len(args), len(wantArgs))
		}
		for i, arg := range wantArgs {
			if args[i] != arg {
				t.Fatalf("unexpected arg at %d: got %q want %q", i, args[i], arg)
			}
		}
		return []byte(`{"format":{"duration":"12.500000"}}`), nil
	}

	got, err := probe.Probe(context.Background(), "/tmp/clip.mp4")
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if got != 12500*time.Millisecond {
		t.Fatalf("unexpected duration %s", got)
	}
}

func TestFFProbeProbeFailures(t *testing.T) {
	tests := []struct {
		name string
		out  string
		err  error
	}{
		{name: "command error", err: errors.New("exit status 1")},
		{name: "malformed json", out: `{"format":`},
		{name: "missing duration", out: `{"format":{}}`},
		{name: "non numeric duration", out: `{"format":{"duration":"N/A"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := NewFFProbe("", 0)
			probe.Run = func(context.Context, string, ...string) ([]byte, error) {
				return []byte(tt.out), tt.err
			}
			if _, err := probe.Probe(context.Background(), "clip.mp4"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
