package status

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeRegistry struct {
	count    int
	source   string
	writable bool
}

func (f fakeRegistry) Count() int            { return f.count }
func (f fakeRegistry) Source() string        { return f.source }
func (f fakeRegistry) PrimaryWritable() bool { return f.writable }

type fakeActivity struct{ counts map[string]int }

func (f fakeActivity) CountSince(_ context.Context, _ time.Time) (map[string]int, error) {
	return f.counts, nil
}

type captureSender struct{ snaps []Snapshot }

func (c *captureSender) SendStatus(snap Snapshot) error {
	c.snaps = append(c.snaps, snap)
	return nil
}

func TestReport_SnapshotContents(t *testing.T) {
	sender := &captureSender{}
	r := New(
		fakeRegistry{count: 7, source: "volume", writable: true},
		fakeActivity{counts: map[string]int{"unix-time": 3}},
		sender,
		func() int { return 2 },
		30*time.Minute,
		zap.NewNop(),
	)

	r.Report(context.Background())

	if len(sender.snaps) != 1 {
		t.Fatalf("want 1 snapshot, got %d", len(sender.snaps))
	}
	snap := sender.snaps[0]
	if snap.TimezoneCount != 7 {
		t.Fatalf("want 7 timezones, got %d", snap.TimezoneCount)
	}
	if snap.GuildCount != 2 {
		t.Fatalf("want 2 guilds, got %d", snap.GuildCount)
	}
	if snap.Source != "volume" || !snap.PrimaryWritable {
		t.Fatalf("storage fields wrong: %+v", snap)
	}
	if snap.Activity["unix-time"] != 3 {
		t.Fatalf("activity missing: %v", snap.Activity)
	}
	if snap.Interval != 30*time.Minute {
		t.Fatalf("interval wrong: %v", snap.Interval)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	sender := &captureSender{}
	r := New(
		fakeRegistry{},
		fakeActivity{},
		sender,
		func() int { return 0 },
		time.Hour,
		zap.NewNop(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reporter did not stop")
	}

	// The immediate first report fired before cancellation took effect.
	if len(sender.snaps) == 0 {
		t.Fatal("want at least one report")
	}
}
