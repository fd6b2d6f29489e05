package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	l := slog.New(h)
	return NewSlogLogger(l), &buf
}

func TestSlogLogger_Levels_WriteExpectedOutput(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "debug msg", "k", "v")
	log.Info(ctx, "info msg", "n", 1)
	log.Warn(ctx, "warn msg")
	log.Error(ctx, "error msg", "err", "boom")

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "debug msg", "k=v",
		"level=INFO", "info msg", "n=1",
		"level=WARN", "warn msg",
		"level=ERROR", "error msg", "err=boom",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSlogLogger_With_AddsPersistentFields(t *testing.T) {
	log, buf := newTestLogger(t)

	child := log.With("module", "worker")
	child.Info(context.Background(), "hello")

	out := buf.String()
	if !strings.Contains(out, "module=worker") {
		t.Fatalf("expected persistent field in output:\n%s", out)
	}
	if !strings.Contains(out, "hello") {
		t.Fatalf("expected message in output:\n%s", out)
	}
}
