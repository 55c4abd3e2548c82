package discord

import (
	"testing"

	"go.uber.org/zap"
)

func TestNewWebhookLogger_ParsesURL(t *testing.T) {
	w, err := NewWebhookLogger(nil, "https://discord.com/api/webhooks/123456/token-abc", zap.NewNop())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !w.Enabled() {
		t.Fatal("want enabled")
	}
	if w.id != "123456" || w.token != "token-abc" {
		t.Fatalf("bad parse: id=%s token=%s", w.id, w.token)
	}
}

func TestNewWebhookLogger_EmptyURLDisables(t *testing.T) {
	w, err := NewWebhookLogger(nil, "", zap.NewNop())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if w.Enabled() {
		t.Fatal("want disabled")
	}
	// Disabled loggers must still accept calls.
	w.Info("local only")
}

func TestFormatActivity(t *testing.T) {
	if got := formatActivity(nil); got != "No commands in the last 30 minutes" {
		t.Fatalf("empty: got %q", got)
	}
	got := formatActivity(map[string]int{"unix-time": 3, "set-timezone": 1})
	want := "/set-timezone: 1x, /unix-time: 3x"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
