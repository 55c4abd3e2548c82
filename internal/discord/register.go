package discord

import "github.com/bwmarrin/discordgo"

// Context menu command names double as dispatch keys.
const (
	cmdGetTimestamp    = "Get Unix Timestamp"
	cmdSetUserTimezone = "Set Timezone for User"
)

var adminPermission int64 = discordgo.PermissionAdministrator

var (
	timeOptionMin = 5
	dateOptionMin = 10
	zoneOptionMin = 3
)

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "unix-timestamp",
		Description: "Get the current Unix timestamp",
	},
	{
		Name:        "unix-time",
		Description: "Convert a time/date to a Unix timestamp",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "time",
				Description: "Time in 24-hour format: HH:mm (example: 14:30)",
				Required:    true,
				MinLength:   &timeOptionMin,
				MaxLength:   5,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "date",
				Description: "Optional date in dd-mm-yyyy format (example: 25-12-2025)",
				Required:    false,
				MinLength:   &dateOptionMin,
				MaxLength:   10,
			},
		},
	},
	{
		Name:        "set-timezone",
		Description: "Set your timezone (e.g., Europe/Zurich)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "timezone",
				Description: "IANA timezone (example: Europe/Zurich) or offset (example: GMT+2)",
				Required:    true,
				MinLength:   &zoneOptionMin,
				MaxLength:   50,
			},
		},
	},
	{
		Name:                     "storage-status",
		Description:              "[Admin] Check bot storage status",
		DefaultMemberPermissions: &adminPermission,
	},
	{
		Name:                     "backup-timezones",
		Description:              "[Admin] Download timezone data backup",
		DefaultMemberPermissions: &adminPermission,
	},
	{
		Name:                     "view-logs",
		Description:              "[Admin] View bot status and logs",
		DefaultMemberPermissions: &adminPermission,
	},
	{
		Name:                     "force-status",
		Description:              "[Admin] Manually trigger a status report",
		DefaultMemberPermissions: &adminPermission,
	},
	{
		Name: cmdGetTimestamp,
		Type: discordgo.UserApplicationCommand,
	},
	{
		Name:                     cmdSetUserTimezone,
		Type:                     discordgo.UserApplicationCommand,
		DefaultMemberPermissions: &adminPermission,
	},
}

// RegisterCommands replaces the application's command set in one call. An
// empty guildID registers globally (propagation can take up to an hour).
func RegisterCommands(s *discordgo.Session, appID, guildID string) error {
	_, err := s.ApplicationCommandBulkOverwrite(appID, guildID, commands)
	return err
}
