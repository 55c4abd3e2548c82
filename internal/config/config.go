package config

import (
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken       string        `envconfig:"DISCORD_TOKEN" required:"true"`
	GuildID        string        `envconfig:"GUILD_ID" default:""` // empty = register commands globally
	DataDir        string        `envconfig:"DATA_DIR" default:"/data"`
	BackupPath     string        `envconfig:"BACKUP_PATH" default:".timezones_backup.json"`
	ActivityDBPath string        `envconfig:"ACTIVITY_DB_PATH" default:"./data/activity.db"`
	LogWebhookURL  string        `envconfig:"LOG_WEBHOOK_URL" default:""`
	OwnerID        string        `envconfig:"OWNER_ID" default:""`
	AdminIDs       []string      `envconfig:"ADMIN_IDS" default:""`
	StatusInterval time.Duration `envconfig:"STATUS_INTERVAL" default:"30m"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	HTTPAddr       string        `envconfig:"HTTP_ADDR" default:":8080"`
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TimezoneFile is the primary registry path on the data volume.
func (c Config) TimezoneFile() string {
	return filepath.Join(c.DataDir, "timezones.json")
}
