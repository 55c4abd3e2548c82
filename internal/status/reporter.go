package status

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"
)

// activityWindow bounds how far back a report looks for command usage.
const activityWindow = 30 * time.Minute

// Sender delivers a rendered status report. discord.WebhookLogger
// implements this.
type Sender interface {
	SendStatus(snap Snapshot) error
}

// RegistryInfo is the read-only view of the timezone store a report needs.
type RegistryInfo interface {
	Count() int
	Source() string
	PrimaryWritable() bool
}

// ActivitySource aggregates recent command usage.
type ActivitySource interface {
	CountSince(ctx context.Context, since time.Time) (map[string]int, error)
}

// Snapshot is one status report's worth of process health data.
type Snapshot struct {
	GeneratedAt     time.Time
	Uptime          time.Duration
	GuildCount      int
	TimezoneCount   int
	HeapMB          float64
	Source          string
	PrimaryWritable bool
	Interval        time.Duration
	Activity        map[string]int
}

// Reporter periodically snapshots store size and process health and pushes
// the result through the Sender.
type Reporter struct {
	registry  RegistryInfo
	activity  ActivitySource
	sender    Sender
	log       *zap.Logger
	guilds    func() int
	interval  time.Duration
	startedAt time.Time
}

// New creates a Reporter. guilds reports how many guilds the session serves.
func New(registry RegistryInfo, activity ActivitySource, sender Sender, guilds func() int, interval time.Duration, log *zap.Logger) *Reporter {
	return &Reporter{
		registry:  registry,
		activity:  activity,
		sender:    sender,
		log:       log,
		guilds:    guilds,
		interval:  interval,
		startedAt: time.Now(),
	}
}

// Run sends one report immediately, then one per interval until ctx is
// canceled.
func (r *Reporter) Run(ctx context.Context) {
	r.Report(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("status reporter stopping")
			return
		case <-ticker.C:
			r.Report(ctx)
		}
	}
}

// Report builds and sends a single status snapshot. Failures are logged and
// swallowed; reporting must never take the bot down.
func (r *Reporter) Report(ctx context.Context) {
	snap := r.snapshot(ctx)
	if err := r.sender.SendStatus(snap); err != nil {
		r.log.Error("status send failed", zap.Error(err))
		return
	}
	r.log.Info("status report sent",
		zap.Int("timezones", snap.TimezoneCount),
		zap.Int("guilds", snap.GuildCount),
	)
}

func (r *Reporter) snapshot(ctx context.Context) Snapshot {
	now := time.Now()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	activity, err := r.activity.CountSince(ctx, now.Add(-activityWindow))
	if err != nil {
		r.log.Error("activity aggregation failed", zap.Error(err))
		activity = nil
	}

	return Snapshot{
		GeneratedAt:     now,
		Uptime:          now.Sub(r.startedAt).Truncate(time.Second),
		GuildCount:      r.guilds(),
		TimezoneCount:   r.registry.Count(),
		HeapMB:          float64(mem.HeapAlloc) / 1024 / 1024,
		Source:          r.registry.Source(),
		PrimaryWritable: r.registry.PrimaryWritable(),
		Interval:        r.interval,
		Activity:        activity,
	}
}
