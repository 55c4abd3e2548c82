package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openActivity(t *testing.T) *ActivityLog {
	t.Helper()
	l, err := OpenActivity(context.Background(), filepath.Join(t.TempDir(), "activity.db"))
	if err != nil {
		t.Fatalf("open activity: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestActivity_CountSince(t *testing.T) {
	ctx := context.Background()
	l := openActivity(t)

	now := time.Now()
	stale := now.Add(-2 * time.Hour)
	for _, rec := range []struct {
		cmd string
		at  time.Time
	}{
		{"unix-time", now},
		{"unix-time", now},
		{"set-timezone", now},
		{"unix-timestamp", stale},
	} {
		if err := l.Record(ctx, "tester", rec.cmd, rec.at); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	counts, err := l.CountSince(ctx, now.Add(-30*time.Minute))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts["unix-time"] != 2 || counts["set-timezone"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if _, ok := counts["unix-timestamp"]; ok {
		t.Fatal("stale entry should be outside the window")
	}
}

func TestActivity_Prune(t *testing.T) {
	ctx := context.Background()
	l := openActivity(t)

	now := time.Now()
	if err := l.Record(ctx, "tester", "unix-time", now.Add(-48*time.Hour)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := l.Record(ctx, "tester", "unix-time", now); err != nil {
		t.Fatalf("record: %v", err)
	}

	removed, err := l.Prune(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 1 {
		t.Fatalf("want 1 pruned, got %d", removed)
	}

	counts, err := l.CountSince(ctx, now.Add(-72*time.Hour))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts["unix-time"] != 1 {
		t.Fatalf("unexpected counts after prune: %v", counts)
	}
}
