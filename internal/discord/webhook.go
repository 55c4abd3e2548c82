package discord

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/m4rv1n33/discord-unix-bot/internal/status"
)

// Log levels forwarded to the webhook channel.
const (
	levelInfo    = "INFO"
	levelWarn    = "WARN"
	levelError   = "ERROR"
	levelDebug   = "DEBUG"
	levelSuccess = "SUCCESS"
	levelStartup = "STARTUP"
	levelStatus  = "STATUS"
)

var levelColors = map[string]int{
	levelInfo:    0x3498DB,
	levelWarn:    0xF39C12,
	levelError:   0xE74C3C,
	levelDebug:   0x9B59B6,
	levelSuccess: 0x2ECC71,
	levelStartup: 0x9B59B6,
	levelStatus:  0x6366F1,
}

const defaultLevelColor = 0x95A5A6

// WebhookLogger mirrors notable events into a Discord channel through a
// webhook. With no webhook configured every call degrades to the local
// zap logger, so callers never need to nil-check.
type WebhookLogger struct {
	session *discordgo.Session
	id      string
	token   string
	log     *zap.Logger
}

// NewWebhookLogger parses a Discord webhook URL of the usual
// .../api/webhooks/{id}/{token} shape. An empty URL yields a local-only
// logger.
func NewWebhookLogger(session *discordgo.Session, url string, log *zap.Logger) (*WebhookLogger, error) {
	w := &WebhookLogger{session: session, log: log}
	if url == "" {
		return w, nil
	}
	parts := strings.Split(strings.TrimRight(url, "/"), "/")
	if len(parts) < 2 {
		return nil, fmt.Errorf("malformed webhook url")
	}
	w.id = parts[len(parts)-2]
	w.token = parts[len(parts)-1]
	if w.id == "" || w.token == "" {
		return nil, fmt.Errorf("malformed webhook url")
	}
	return w, nil
}

// Enabled reports whether a webhook destination is configured.
func (w *WebhookLogger) Enabled() bool {
	return w.id != ""
}

func (w *WebhookLogger) Info(content string)    { w.send(levelInfo, content) }
func (w *WebhookLogger) Warn(content string)    { w.send(levelWarn, content) }
func (w *WebhookLogger) Error(content string)   { w.send(levelError, content) }
func (w *WebhookLogger) Debug(content string)   { w.send(levelDebug, content) }
func (w *WebhookLogger) Success(content string) { w.send(levelSuccess, content) }
func (w *WebhookLogger) Startup(content string) { w.send(levelStartup, content) }

func (w *WebhookLogger) send(level, content string) {
	w.log.Info(content, zap.String("level", level))
	if !w.Enabled() {
		return
	}

	// Discord caps embed descriptions at 4096 characters.
	if len(content) > 3900 {
		content = content[:3900]
	}
	embed := &discordgo.MessageEmbed{
		Color:       colorFor(level),
		Title:       level,
		Description: "```" + content + "```",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Footer:      &discordgo.MessageEmbedFooter{Text: "Unix Timestamp Bot Logger"},
	}
	w.execute("Bot Logger", embed)
}

// SendStatus renders a status snapshot as an embed; this makes WebhookLogger
// satisfy status.Sender.
func (w *WebhookLogger) SendStatus(snap status.Snapshot) error {
	if !w.Enabled() {
		w.log.Info("status report",
			zap.Int("timezones", snap.TimezoneCount),
			zap.Int("guilds", snap.GuildCount),
			zap.Duration("uptime", snap.Uptime),
		)
		return nil
	}

	storage := "Local (data at risk)"
	if snap.PrimaryWritable {
		storage = "Persistent Volume"
	}
	writable := "No"
	if snap.PrimaryWritable {
		writable = "Yes"
	}

	embed := &discordgo.MessageEmbed{
		Color: colorFor(levelStatus),
		Title: "Bot Status Report",
		Description: fmt.Sprintf("**Scheduled Status Update**\nInterval: every %s\nGenerated: %s",
			snap.Interval, snap.GeneratedAt.UTC().Format("15:04:05")),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Uptime", Value: snap.Uptime.String(), Inline: true},
			{Name: "Guilds", Value: fmt.Sprintf("%d servers", snap.GuildCount), Inline: true},
			{Name: "Timezones", Value: fmt.Sprintf("%d configured", snap.TimezoneCount), Inline: true},
			{Name: "Memory", Value: fmt.Sprintf("%.2f MB", snap.HeapMB), Inline: true},
			{Name: "Storage", Value: storage, Inline: true},
			{Name: "Volume Writable", Value: writable, Inline: true},
			{Name: "Data Source", Value: snap.Source, Inline: true},
			{Name: "Recent Activity", Value: formatActivity(snap.Activity), Inline: false},
		},
		Timestamp: snap.GeneratedAt.UTC().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: "Auto Status"},
	}
	_, err := w.session.WebhookExecute(w.id, w.token, false, &discordgo.WebhookParams{
		Username: "Bot Status",
		Embeds:   []*discordgo.MessageEmbed{embed},
	})
	return err
}

func (w *WebhookLogger) execute(username string, embed *discordgo.MessageEmbed) {
	_, err := w.session.WebhookExecute(w.id, w.token, false, &discordgo.WebhookParams{
		Username: username,
		Embeds:   []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		w.log.Warn("webhook send failed", zap.Error(err))
	}
}

func colorFor(level string) int {
	if c, ok := levelColors[level]; ok {
		return c
	}
	return defaultLevelColor
}

// formatActivity renders per-command counts as "/cmd: 3x" pairs in stable
// order.
func formatActivity(counts map[string]int) string {
	if len(counts) == 0 {
		return "No commands in the last 30 minutes"
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("/%s: %dx", name, counts[name]))
	}
	return strings.Join(parts, ", ")
}
