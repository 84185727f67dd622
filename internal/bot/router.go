package bot

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"banwatch/internal/audit"
	"banwatch/internal/lang"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Request carries everything a handler needs about one invocation.
type Request struct {
	ID        string
	Message   *discordgo.Message
	Author    *discordgo.User
	GuildID   string
	ChannelID string
	Command   string
	// Raw is the trimmed text following the keyword.
	Raw  string
	Args []string
	Lang string
	log  *zap.Logger
}

func (r *Request) Mention() string {
	return r.Author.Mention()
}

// parseCommand splits "<prefix><keyword> <rest>" and reports false when the
// content is not addressed to the bot.
func parseCommand(prefix, content string) (keyword, rest string, ok bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", "", false
	}
	body := content[len(prefix):]
	if body == "" {
		return "", "", false
	}
	if r, _ := utf8.DecodeRuneInString(body); unicode.IsSpace(r) {
		return "", "", false
	}
	end := strings.IndexFunc(body, unicode.IsSpace)
	if end < 0 {
		return body, "", true
	}
	return body[:end], strings.TrimSpace(body[end:]), true
}

// HandleMessage routes a gateway message to its command handler. Panics
// inside a handler are recovered and answered with a generic apology.
func (b *Bot) HandleMessage(ctx context.Context, msg *discordgo.Message) {
	if msg == nil || msg.Author == nil || msg.Author.Bot {
		return
	}
	keyword, rest, ok := parseCommand(b.cfg.CommandPrefix, msg.Content)
	if !ok {
		return
	}
	cmd, ok := b.commands[keyword]
	if !ok {
		b.logger.Debug("unknown command", zap.String("command", keyword), zap.String("user_id", msg.Author.ID))
		return
	}

	req := &Request{
		ID:        uuid.NewString(),
		Message:   msg,
		Author:    msg.Author,
		GuildID:   msg.GuildID,
		ChannelID: msg.ChannelID,
		Command:   keyword,
		Raw:       rest,
		Args:      strings.Fields(rest),
		Lang:      b.langs.Get(msg.Author.ID),
	}
	req.log = b.logger.With(
		zap.String("request_id", req.ID),
		zap.String("command", keyword),
		zap.String("user_id", msg.Author.ID),
		zap.String("guild_id", msg.GuildID),
	)
	req.log.Info("command received", zap.String("lang", req.Lang))

	b.dispatch(ctx, cmd, req)
}

func (b *Bot) dispatch(ctx context.Context, cmd command, req *Request) {
	defer func() {
		if r := recover(); r != nil {
			req.log.Error("command panicked", zap.Any("panic", r), zap.Stack("stack"))
			b.audit.Log(ctx, audit.LevelCrit, req.GuildID, req.Author.ID, "command_panic", fmt.Sprintf("command=%s panic=%v", req.Command, r))
			b.send(req, lang.T(req.Lang, "internal_error"))
		}
	}()

	if cmd.guildOnly && req.GuildID == "" {
		b.send(req, lang.T(req.Lang, "guild_only"))
		return
	}
	cmd.run(ctx, req)
}

func (b *Bot) send(req *Request, content string) {
	if _, err := b.session.ChannelMessageSend(req.ChannelID, content); err != nil {
		req.log.Warn("send message failed", zap.Error(err))
	}
}

func (b *Bot) sendComplex(req *Request, data *discordgo.MessageSend) {
	if _, err := b.session.ChannelMessageSendComplex(req.ChannelID, data); err != nil {
		req.log.Warn("send message failed", zap.Error(err))
	}
}

func (b *Bot) typing(req *Request) {
	if err := b.session.ChannelTyping(req.ChannelID); err != nil {
		req.log.Debug("typing indicator failed", zap.Error(err))
	}
}
