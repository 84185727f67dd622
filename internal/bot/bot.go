package bot

import (
	"context"

	"banwatch/internal/audit"
	"banwatch/internal/badge"
	"banwatch/internal/banapi"
	"banwatch/internal/config"
	"banwatch/internal/cooldown"
	"banwatch/internal/discord"
	"banwatch/internal/guildbans"
	"banwatch/internal/lang"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

type Bot struct {
	cfg      config.Config
	logger   *zap.Logger
	session  discord.Session
	lookup   banapi.Lookuper
	bans     *guildbans.Query
	langs    *lang.Store
	cooldown *cooldown.Limiter
	badges   *badge.Provider
	audit    *audit.Logger
	identity *Identity
	commands map[string]command

	// ctx scopes in-flight commands to the process lifetime.
	ctx    context.Context
	cancel context.CancelFunc
}

func New(cfg config.Config, logger *zap.Logger, session discord.Session, lookup banapi.Lookuper, auditLogger *audit.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	if auditLogger == nil {
		auditLogger = audit.NewLogger(logger)
	}

	b := &Bot{
		cfg:      cfg,
		logger:   logger,
		session:  session,
		lookup:   lookup,
		bans:     guildbans.New(session, logger),
		langs:    lang.NewStore(cfg.DefaultLanguage),
		cooldown: cooldown.New(cfg.Cooldown.Calls, cfg.Cooldown.Window()),
		badges:   badge.NewProvider(cfg.AssetsDir, logger),
		audit:    auditLogger,
		identity: &Identity{},
	}
	b.ctx, b.cancel = context.WithCancel(context.Background())
	b.commands = b.registerCommands()

	if cfg.AuditChannelID != "" {
		b.audit.SetNotifier(func(ctx context.Context, entry audit.Entry) {
			b.notifyAudit(entry)
		})
	}
	return b
}

func (b *Bot) Identity() *Identity {
	return b.identity
}

func (b *Bot) Languages() *lang.Store {
	return b.langs
}

func (b *Bot) Start() error {
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onMessageCreate)
	return b.session.Open()
}

func (b *Bot) Close(_ context.Context) {
	b.cancel()
	if b.session != nil {
		if err := b.session.Close(); err != nil {
			b.logger.Warn("discord close failed", zap.Error(err))
		}
	}
}

func (b *Bot) onReady(_ *discordgo.Session, event *discordgo.Ready) {
	if event == nil || event.User == nil {
		return
	}
	b.identity.Set(guildbans.UserTag(event.User))
	b.logger.Info("discord ready",
		zap.String("user", b.identity.Name()),
		zap.Int("guilds", len(event.Guilds)),
	)
}

func (b *Bot) onMessageCreate(_ *discordgo.Session, msg *discordgo.MessageCreate) {
	if msg == nil || msg.Message == nil {
		return
	}
	b.HandleMessage(b.ctx, msg.Message)
}

func (b *Bot) notifyAudit(entry audit.Entry) {
	if _, err := b.session.ChannelMessageSend(b.cfg.AuditChannelID, entry.Summary()); err != nil {
		b.logger.Warn("audit mirror failed", zap.String("channel_id", b.cfg.AuditChannelID), zap.Error(err))
	}
}
