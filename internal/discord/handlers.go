package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/m4rv1n33/discord-unix-bot/internal/domain"
)

const modalSetTZPrefix = "set_tz_modal_"

// --- user commands ---

func (r *Router) handleUnixTimestamp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	ts := r.svc.Now()
	r.log.Debug("generated timestamp", zap.Int64("ts", ts), zap.String("user", user.Username))
	r.replyEmbed(s, i, buildTimestampEmbed(ts, user.ID, r.svc.ResolveTimezone(user.ID)), false)
}

func (r *Router) handleUnixTime(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	opts := commandOptions(i)
	timeStr, dateStr := opts["time"], opts["date"]

	ts, err := r.svc.Convert(user.ID, timeStr, dateStr)
	switch {
	case errors.Is(err, domain.ErrInvalidTimeFormat):
		r.replyText(s, i, "**Invalid time format**\nUse `HH:mm` in 24-hour format (example: `14:30`).", true)
		return
	case errors.Is(err, domain.ErrInvalidDateFormat):
		r.replyText(s, i, "**Invalid date format**\nUse `dd-mm-yyyy` (example: `25-12-2025`).", true)
		return
	case errors.Is(err, domain.ErrInvalidDateTime):
		r.replyText(s, i, "**Invalid date/time combination**\nThat moment does not exist in your timezone.", true)
		return
	case err != nil:
		r.log.Error("conversion failed", zap.Error(err))
		r.replyText(s, i, "An error occurred while processing the time.", true)
		return
	}

	r.webhook.Info(fmt.Sprintf("User %s converted %s %s to timestamp: %d", user.Username, timeStr, dateStr, ts))
	r.replyEmbed(s, i, buildTimestampEmbed(ts, user.ID, r.svc.ResolveTimezone(user.ID)), false)
}

func (r *Router) handleSetTimezone(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	candidate := commandOptions(i)["timezone"]

	zone, err := r.svc.RegisterTimezone(user.ID, candidate)
	switch {
	case errors.Is(err, domain.ErrInvalidTimezone):
		r.replyText(s, i, "**Invalid timezone**\nUse an IANA name like `Europe/Zurich`, or an offset like `GMT+2`.", true)
		return
	case errors.Is(err, domain.ErrStorageWriteFailed):
		// The registration is live for this session; only durability is off.
		r.webhook.Error(fmt.Sprintf("Save failed after %s registered %s", user.Username, zone))
	case err != nil:
		r.log.Error("register failed", zap.Error(err))
		r.replyText(s, i, "An error occurred while saving your timezone.", true)
		return
	default:
		r.webhook.Success(fmt.Sprintf("User %s set timezone to %s", user.Username, zone))
	}

	loc, lerr := domain.LocationFor(zone)
	if lerr != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	r.replyText(s, i, fmt.Sprintf("**Timezone updated**\n`%s`\n**Current time:** %s • %s",
		zone, now.Format("15:04"), now.Format("02/01/2006")), false)
}

// --- context menu commands ---

func (r *Router) handleUserTimestamp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	targetID := i.ApplicationCommandData().TargetID
	ts := r.svc.Now()

	embed := &discordgo.MessageEmbed{
		Color:       embedColor,
		Title:       "Timestamp for user",
		Description: fmt.Sprintf("**Unix Timestamp:** `%d`\n*For: <@%s>*", ts, targetID),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Raw", Value: fmt.Sprintf("```%d```", ts), Inline: false},
			{Name: "Relative", Value: fmt.Sprintf("<t:%d:R>", ts), Inline: true},
			{Name: "Full", Value: fmt.Sprintf("<t:%d:F>", ts), Inline: true},
		},
		Timestamp: time.Unix(ts, 0).UTC().Format(time.RFC3339),
	}
	r.replyEmbed(s, i, embed, true)
}

func (r *Router) handleSetUserTimezoneMenu(s *discordgo.Session, i *discordgo.InteractionCreate) {
	targetID := i.ApplicationCommandData().TargetID
	current := r.svc.ResolveTimezone(targetID)

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: modalSetTZPrefix + targetID,
			Title:    "Set Timezone for User",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID: "timezone_input",
							Label:    "Timezone (e.g., Europe/Zurich)",
							Style:    discordgo.TextInputShort,
							Required: true,
							Value:    current,
						},
					},
				},
			},
		},
	})
	if err != nil {
		r.log.Error("modal open failed", zap.Error(err))
	}
}

func (r *Router) handleSetUserTimezoneSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	targetID := data.CustomID[len(modalSetTZPrefix):]

	row, ok := data.Components[0].(*discordgo.ActionsRow)
	if !ok || len(row.Components) == 0 {
		return
	}
	input, ok := row.Components[0].(*discordgo.TextInput)
	if !ok {
		return
	}

	zone, err := r.svc.RegisterTimezone(targetID, input.Value)
	if errors.Is(err, domain.ErrInvalidTimezone) {
		r.replyText(s, i, fmt.Sprintf("Invalid timezone: `%s`", input.Value), true)
		return
	}
	if err != nil && !errors.Is(err, domain.ErrStorageWriteFailed) {
		r.replyText(s, i, "An error occurred while saving the timezone.", true)
		return
	}

	admin := interactionUser(i)
	r.webhook.Info(fmt.Sprintf("Admin %s set timezone for user %s to %s", admin.Username, targetID, zone))
	r.replyText(s, i, fmt.Sprintf("Set timezone for <@%s> to `%s`", targetID, zone), true)
}

// --- admin commands ---

func (r *Router) handleStorageStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	primary, backup := r.zones.Paths()

	primaryField := "Missing"
	if info, err := os.Stat(primary); err == nil {
		primaryField = fmt.Sprintf("%d bytes", info.Size())
	}
	backupField := "Missing"
	if _, err := os.Stat(backup); err == nil {
		backupField = "Exists"
	}
	writable := "No"
	if r.zones.PrimaryWritable() {
		writable = "Yes"
	}

	embed := &discordgo.MessageEmbed{
		Color:       embedColor,
		Title:       "Storage Status",
		Description: fmt.Sprintf("**Bot Storage Information**\nLoaded from: `%s`", r.zones.Source()),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Timezone Count", Value: fmt.Sprintf("%d users", r.zones.Count()), Inline: true},
			{Name: "Volume Writable", Value: writable, Inline: true},
			{Name: "Primary File", Value: primaryField, Inline: true},
			{Name: "Backup File", Value: backupField, Inline: true},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: "Storage Status"},
	}
	r.replyEmbed(s, i, embed, true)
}

func (r *Router) handleBackup(s *discordgo.Session, i *discordgo.InteractionCreate) {
	snapshot := r.zones.Snapshot()
	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		r.log.Error("backup marshal failed", zap.Error(err))
		r.replyText(s, i, "An error occurred while building the backup.", true)
		return
	}

	admin := interactionUser(i)
	r.webhook.Info(fmt.Sprintf("Admin %s downloaded timezone backup (%d users)", admin.Username, len(snapshot)))

	r.respond(s, i, &discordgo.InteractionResponseData{
		Content: fmt.Sprintf("**Timezone Backup**\nTotal users: %d\nLoaded from: %s", len(snapshot), r.zones.Source()),
		Files: []*discordgo.File{{
			Name:        fmt.Sprintf("timezones_backup_%s.json", time.Now().UTC().Format("20060102_150405")),
			ContentType: "application/json",
			Reader:      bytes.NewReader(payload),
		}},
		Flags: discordgo.MessageFlagsEphemeral,
	})
}

func (r *Router) handleViewLogs(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	activity, err := r.activity.CountSince(context.Background(), time.Now().Add(-30*time.Minute))
	if err != nil {
		r.log.Warn("activity aggregation failed", zap.Error(err))
	}
	reports := "No"
	if r.webhook.Enabled() {
		reports = "Yes"
	}

	embed := &discordgo.MessageEmbed{
		Color:       0x3498DB,
		Title:       "Bot Status Log",
		Description: fmt.Sprintf("**Current Bot Status**\nLast updated: %s", time.Now().UTC().Format("15:04:05")),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Timezones Loaded", Value: fmt.Sprintf("%d users", r.zones.Count()), Inline: true},
			{Name: "Data Source", Value: r.zones.Source(), Inline: true},
			{Name: "Guilds", Value: fmt.Sprintf("%d servers", len(s.State.Guilds)), Inline: true},
			{Name: "Memory Usage", Value: fmt.Sprintf("%.2f MB", float64(mem.HeapAlloc)/1024/1024), Inline: true},
			{Name: "Status Reports", Value: reports, Inline: true},
			{Name: "Recent Activity", Value: formatActivity(activity), Inline: false},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: "Unix Timestamp Bot Logs"},
	}
	r.replyEmbed(s, i, embed, true)
}

func (r *Router) handleForceStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	r.reporter.Report(context.Background())
	r.replyText(s, i, "Status report sent to the logging channel.", true)
}
