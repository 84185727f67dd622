package discord

import (
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Session is the subset of the Discord API the bot relies on.
type Session interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelTyping(channelID string, options ...discordgo.RequestOption) error
	Guilds() []*discordgo.Guild
	GuildName(guildID string) string
	GuildBans(guildID string, limit int, beforeID, afterID string, options ...discordgo.RequestOption) ([]*discordgo.GuildBan, error)
	GuildBanCreateWithReason(guildID, userID, reason string, days int, options ...discordgo.RequestOption) error
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMembersSearch(guildID, query string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error)
	UserChannelPermissions(userID, channelID string, options ...discordgo.RequestOption) (int64, error)
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
}

// DiscordSession adapts a *discordgo.Session to Session.
type DiscordSession struct {
	session *discordgo.Session
	logger  *zap.Logger
}

func NewDiscordSession(session *discordgo.Session, logger *zap.Logger) *DiscordSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscordSession{session: session, logger: logger}
}

func (d *DiscordSession) AddHandler(handler interface{}) func() {
	return d.session.AddHandler(handler)
}

func (d *DiscordSession) Open() error {
	d.logger.Info("opening discord gateway connection")
	return d.session.Open()
}

func (d *DiscordSession) Close() error {
	d.logger.Info("closing discord gateway connection")
	return d.session.Close()
}

func (d *DiscordSession) ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	return d.session.ChannelMessageSend(channelID, content, options...)
}

func (d *DiscordSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	return d.session.ChannelMessageSendComplex(channelID, data, options...)
}

func (d *DiscordSession) ChannelTyping(channelID string, options ...discordgo.RequestOption) error {
	return d.session.ChannelTyping(channelID, options...)
}

// Guilds returns a snapshot of the guilds held in the gateway state.
func (d *DiscordSession) Guilds() []*discordgo.Guild {
	state := d.session.State
	if state == nil {
		return nil
	}
	state.RLock()
	defer state.RUnlock()

	out := make([]*discordgo.Guild, len(state.Guilds))
	copy(out, state.Guilds)
	return out
}

// GuildName resolves a guild name from state, falling back to the REST API
// and finally to the raw ID.
func (d *DiscordSession) GuildName(guildID string) string {
	if d.session.State != nil {
		if guild, err := d.session.State.Guild(guildID); err == nil && guild.Name != "" {
			return guild.Name
		}
	}
	guild, err := d.session.Guild(guildID)
	if err != nil {
		d.logger.Debug("guild lookup failed", zap.String("guild_id", guildID), zap.Error(err))
		return guildID
	}
	return guild.Name
}

func (d *DiscordSession) GuildBans(guildID string, limit int, beforeID, afterID string, options ...discordgo.RequestOption) ([]*discordgo.GuildBan, error) {
	return d.session.GuildBans(guildID, limit, beforeID, afterID, options...)
}

func (d *DiscordSession) GuildBanCreateWithReason(guildID, userID, reason string, days int, options ...discordgo.RequestOption) error {
	return d.session.GuildBanCreateWithReason(guildID, userID, reason, days, options...)
}

func (d *DiscordSession) GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
	return d.session.GuildMember(guildID, userID, options...)
}

func (d *DiscordSession) GuildMembersSearch(guildID, query string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error) {
	return d.session.GuildMembersSearch(guildID, query, limit, options...)
}

func (d *DiscordSession) UserChannelPermissions(userID, channelID string, options ...discordgo.RequestOption) (int64, error) {
	return d.session.UserChannelPermissions(userID, channelID, options...)
}
