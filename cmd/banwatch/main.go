package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"banwatch/internal/audit"
	"banwatch/internal/banapi"
	"banwatch/internal/bot"
	"banwatch/internal/config"
	"banwatch/internal/discord"
	"banwatch/internal/health"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.BuildLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	raw, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		logger.Fatal("discord session init failed", zap.Error(err))
	}
	raw.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent
	session := discord.NewDiscordSession(raw, logger)

	lookup := banapi.New(banapi.Options{
		BaseURL:    cfg.BanAPI.BaseURL,
		Timeout:    cfg.BanAPI.Timeout(),
		Attempts:   cfg.BanAPI.Attempts,
		RetryDelay: cfg.BanAPI.RetryDelay(),
	}, logger.Named("banapi"))

	botSvc := bot.New(cfg, logger, session, lookup, audit.NewLogger(logger.Named("audit")))

	var server *http.Server
	if cfg.Health.Enabled {
		server = health.NewServer(cfg.Health.Addr, health.NewHandler(botSvc.Identity()))
		go func() {
			logger.Info("health endpoint enabled", zap.String("addr", cfg.Health.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("health server error", zap.Error(err))
			}
		}()
	}

	if err := botSvc.Start(); err != nil {
		logger.Fatal("bot start failed", zap.Error(err))
	}
	logger.Info("bot started",
		zap.String("prefix", cfg.CommandPrefix),
		zap.String("ban_api", cfg.BanAPI.BaseURL),
	)
	if invite := discord.InviteURL(cfg.ApplicationID, discord.InvitePermissions); invite != "" {
		logger.Info("invite url", zap.String("url", invite))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutdown requested")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if server != nil {
		_ = server.Shutdown(ctx)
	}
	botSvc.Close(ctx)
}
