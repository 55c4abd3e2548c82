package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/m4rv1n33/discord-unix-bot/internal/config"
	"github.com/m4rv1n33/discord-unix-bot/internal/discord"
	"github.com/m4rv1n33/discord-unix-bot/internal/domain"
	"github.com/m4rv1n33/discord-unix-bot/internal/status"
	"github.com/m4rv1n33/discord-unix-bot/internal/store"
)

type App struct {
	cfg     config.Config
	log     *zap.Logger
	session *discordgo.Session
	httpSrv *http.Server
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, session: session, httpSrv: srv}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting discord-unix-bot",
		zap.String("data_dir", a.cfg.DataDir),
		zap.String("http", a.cfg.HTTPAddr),
	)

	zones, err := store.Open(a.cfg.TimezoneFile(), a.cfg.BackupPath, a.log)
	if err != nil {
		// Degraded but operational: the registry starts empty.
		a.log.Warn("timezone store started empty", zap.Error(err))
	}

	activity, err := store.OpenActivity(ctx, a.cfg.ActivityDBPath)
	if err != nil {
		a.log.Error("open activity log failed", zap.Error(err))
		return err
	}
	defer func() { _ = activity.Close() }()

	svc := domain.NewService(zones, nil)

	webhook, err := discord.NewWebhookLogger(a.session, a.cfg.LogWebhookURL, a.log)
	if err != nil {
		return fmt.Errorf("webhook logger: %w", err)
	}

	reporter := status.New(
		zones,
		activity,
		webhook,
		func() int { return len(a.session.State.Guilds) },
		a.cfg.StatusInterval,
		a.log,
	)

	admins := discord.NewAdminList(a.cfg.OwnerID, a.cfg.AdminIDs)
	router := discord.NewRouter(a.log, svc, zones, activity, webhook, admins, reporter)

	a.session.AddHandler(router.HandleInteraction)
	a.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		a.log.Info("discord ready",
			zap.String("user", r.User.Username),
			zap.Int("guilds", len(r.Guilds)),
		)
	})
	a.session.AddHandler(func(_ *discordgo.Session, g *discordgo.GuildCreate) {
		webhook.Success(fmt.Sprintf("Joined guild: %s (%s)", g.Name, g.ID))
	})
	a.session.AddHandler(func(_ *discordgo.Session, g *discordgo.GuildDelete) {
		webhook.Warn(fmt.Sprintf("Left guild: %s", g.ID))
	})

	if err := a.session.Open(); err != nil {
		return fmt.Errorf("discord connect: %w", err)
	}
	defer func() { _ = a.session.Close() }()

	if err := discord.RegisterCommands(a.session, a.session.State.User.ID, a.cfg.GuildID); err != nil {
		a.log.Error("command registration failed", zap.Error(err))
		return err
	}
	a.log.Info("commands registered", zap.String("guild", a.cfg.GuildID))

	webhook.Startup(fmt.Sprintf(
		"Bot started\nStorage: %s\nTimezones loaded: %d from %s\nStatus reports: every %s",
		storageMode(zones), zones.Count(), zones.Source(), a.cfg.StatusInterval,
	))

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go reporter.Run(ctx)

	<-ctx.Done()
	a.log.Info("shutdown signal received")

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = a.httpSrv.Shutdown(shCtx)
	cancel()
	if err != nil {
		a.log.Warn("http server shutdown error", zap.Error(err))
	}
	return nil
}

func storageMode(zones *store.FileStore) string {
	if zones.PrimaryWritable() {
		return "Persistent Volume"
	}
	return "Local (data at risk)"
}
