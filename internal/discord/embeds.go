package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/m4rv1n33/discord-unix-bot/internal/domain"
)

const embedColor = 0x6366F1

// buildTimestampEmbed renders a converted timestamp with the raw value, an
// ISO 8601 form and every Discord <t:...> style, headed by the local time in
// the requester's zone.
func buildTimestampEmbed(ts int64, userID, zone string) *discordgo.MessageEmbed {
	loc, err := domain.LocationFor(zone)
	if err != nil {
		loc = time.UTC
		zone = domain.DefaultZone
	}
	local := time.Unix(ts, 0).In(loc)

	return &discordgo.MessageEmbed{
		Color: embedColor,
		Title: "Timestamp Converter",
		Description: fmt.Sprintf("**Local time in `%s`**\n%s\n*For: <@%s>*",
			zone, local.Format("Monday, January 2, 2006 at 3:04:05 PM (MST)"), userID),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Raw Unix Timestamp", Value: fmt.Sprintf("```%d```", ts), Inline: false},
			{Name: "ISO 8601", Value: fmt.Sprintf("```%s```", time.Unix(ts, 0).UTC().Format(time.RFC3339)), Inline: false},
			{Name: "Relative Time", Value: styleField(ts, "R"), Inline: true},
			{Name: "Date & Time", Value: styleField(ts, "f"), Inline: true},
			{Name: "Full Format", Value: styleField(ts, "F"), Inline: true},
			{Name: "Time Only", Value: styleField(ts, "T"), Inline: true},
			{Name: "Date Only", Value: styleField(ts, "D"), Inline: true},
			{Name: "Short Date", Value: styleField(ts, "d"), Inline: true},
			{Name: "Short Time", Value: styleField(ts, "t"), Inline: true},
		},
		Timestamp: time.Unix(ts, 0).UTC().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("ID: %d", ts)},
	}
}

// styleField shows a Discord timestamp style as both markup and rendering.
func styleField(ts int64, style string) string {
	return fmt.Sprintf("`<t:%d:%s>`\n<t:%d:%s>", ts, style, ts, style)
}
