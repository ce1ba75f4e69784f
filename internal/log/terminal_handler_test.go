package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func handle(t *testing.T, h slog.Handler, level slog.Level, msg string, attrs ...slog.Attr) string {
	t.Helper()
	var buf bytes.Buffer
	th := h.(*TerminalHandler)
	th.w = &buf

	r := slog.NewRecord(time.Date(2026, 1, 15, 10, 30, 45, 123000000, time.UTC), level, msg, 0)
	r.AddAttrs(attrs...)
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	return buf.String()
}

func TestTerminalHandler_Format(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug})

	output := handle(t, h, slog.LevelInfo, "range scanned", slog.Uint64("start", 79))

	for _, want := range []string{"10:30:45.123", "INF", "range scanned", "start=", "79"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
	if !strings.HasSuffix(output, "\n") {
		t.Error("expected trailing newline")
	}
}

func TestTerminalHandler_Levels(t *testing.T) {
	tests := []struct {
		level    slog.Level
		expected string
		colour   string
	}{
		{slog.LevelDebug, "DBG", ansiCyan},
		{slog.LevelInfo, "INF", ansiGreen},
		{slog.LevelWarn, "WRN", ansiYellow},
		{slog.LevelError, "ERR", ansiRed},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			h := newTerminalHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug})
			output := handle(t, h, tt.level, "msg")

			if !strings.Contains(output, tt.colour+tt.expected+ansiReset) {
				t.Errorf("expected coloured %s in output, got: %q", tt.expected, output)
			}
		})
	}
}

func TestTerminalHandler_Enabled(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("INFO should be disabled at WARN level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("ERROR should be enabled at WARN level")
	}
}

func TestTerminalHandler_DefaultLevel(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, nil)

	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("default level should be INFO")
	}
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("DEBUG should be disabled at default INFO level")
	}
}

func TestTerminalHandler_WithAttrsDoesNotLeak(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug})
	child := h.WithAttrs([]slog.Attr{slog.String("part", "2")})

	output := handle(t, child, slog.LevelInfo, "solved", slog.Int("workers", 8))
	if !strings.Contains(output, "part=") || !strings.Contains(output, "workers=") {
		t.Errorf("expected both attrs, got: %s", output)
	}

	output = handle(t, h, slog.LevelInfo, "solved")
	if strings.Contains(output, "part=") {
		t.Errorf("parent handler should not carry child attrs, got: %s", output)
	}
}

func TestTerminalHandler_Groups(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug})

	output := handle(t, h.WithGroup("solve"), slog.LevelInfo, "msg", slog.String("part", "1"))
	if !strings.Contains(output, "solve.part=") {
		t.Errorf("expected grouped attr solve.part, got: %s", output)
	}

	output = handle(t, h, slog.LevelInfo, "msg", slog.Group("range",
		slog.Uint64("start", 79),
		slog.Uint64("length", 14),
	))
	if !strings.Contains(output, "range.start=") || !strings.Contains(output, "range.length=") {
		t.Errorf("expected grouped range attrs, got: %s", output)
	}

	if h.WithGroup("") != slog.Handler(h) {
		t.Error("WithGroup with empty string should return same handler")
	}
}

func TestTerminalHandler_FormatsValues(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug})

	output := handle(t, h, slog.LevelInfo, "msg",
		slog.String("error", "stage 2: bad line"),
		slog.Duration("elapsed", 1234567*time.Nanosecond),
	)
	if !strings.Contains(output, `"stage 2: bad line"`) {
		t.Errorf("expected quoted string value, got: %s", output)
	}
	if !strings.Contains(output, "1.235ms") {
		t.Errorf("expected rounded duration, got: %s", output)
	}
}
