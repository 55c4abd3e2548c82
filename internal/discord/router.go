package discord

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/m4rv1n33/discord-unix-bot/internal/domain"
	"github.com/m4rv1n33/discord-unix-bot/internal/store"
)

// StatusTrigger lets an admin force an immediate status report.
// status.Reporter implements this.
type StatusTrigger interface {
	Report(ctx context.Context)
}

// Router wires Discord interactions to handlers.
type Router struct {
	log      *zap.Logger
	svc      *domain.Service
	zones    *store.FileStore
	activity *store.ActivityLog
	webhook  *WebhookLogger
	admins   AdminList
	reporter StatusTrigger
}

// NewRouter creates a Router over the core service and its collaborators.
func NewRouter(log *zap.Logger, svc *domain.Service, zones *store.FileStore, activity *store.ActivityLog, webhook *WebhookLogger, admins AdminList, reporter StatusTrigger) *Router {
	return &Router{
		log:      log,
		svc:      svc,
		zones:    zones,
		activity: activity,
		webhook:  webhook,
		admins:   admins,
		reporter: reporter,
	}
}

// HandleInteraction routes a single interaction to the appropriate handler.
// Registered as a discordgo handler, so the signature is fixed.
func (r *Router) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		r.recordCommand(ctx, i, data.Name)

		switch data.Name {
		case "unix-timestamp":
			r.handleUnixTimestamp(s, i)
		case "unix-time":
			r.handleUnixTime(s, i)
		case "set-timezone":
			r.handleSetTimezone(s, i)
		case "storage-status":
			r.adminOnly(s, i, r.handleStorageStatus)
		case "backup-timezones":
			r.adminOnly(s, i, r.handleBackup)
		case "view-logs":
			r.adminOnly(s, i, r.handleViewLogs)
		case "force-status":
			r.adminOnly(s, i, r.handleForceStatus)
		case cmdGetTimestamp:
			r.handleUserTimestamp(s, i)
		case cmdSetUserTimezone:
			r.adminOnly(s, i, r.handleSetUserTimezoneMenu)
		default:
			r.log.Warn("unknown command", zap.String("name", data.Name))
		}

	case discordgo.InteractionModalSubmit:
		if strings.HasPrefix(i.ModalSubmitData().CustomID, modalSetTZPrefix) {
			r.handleSetUserTimezoneSubmit(s, i)
		}
	}
}

// recordCommand appends to the activity log; failures only get logged, the
// command itself proceeds.
func (r *Router) recordCommand(ctx context.Context, i *discordgo.InteractionCreate, command string) {
	user := interactionUser(i)
	if user == nil {
		return
	}
	if err := r.activity.Record(ctx, user.Username, command, time.Now()); err != nil {
		r.log.Warn("activity record failed", zap.Error(err))
	}
}

// adminOnly rejects non-admin callers with an ephemeral notice.
func (r *Router) adminOnly(s *discordgo.Session, i *discordgo.InteractionCreate, fn func(*discordgo.Session, *discordgo.InteractionCreate)) {
	if !r.admins.Check(i) {
		r.replyText(s, i, "This command requires administrator permissions.", true)
		return
	}
	fn(s, i)
}

// --- reply helpers ---

func (r *Router) replyText(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	r.respond(s, i, data)
}

func (r *Router) replyEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	r.respond(s, i, data)
}

func (r *Router) respond(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		r.log.Error("interaction respond failed", zap.Error(err))
	}
}

// commandOptions flattens interaction options into a name → value map.
func commandOptions(i *discordgo.InteractionCreate) map[string]string {
	opts := i.ApplicationCommandData().Options
	out := make(map[string]string, len(opts))
	for _, opt := range opts {
		if opt.Type == discordgo.ApplicationCommandOptionString {
			out[opt.Name] = opt.StringValue()
		}
	}
	return out
}
