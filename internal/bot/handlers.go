package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"banwatch/internal/audit"
	"banwatch/internal/banapi"
	"banwatch/internal/cooldown"
	"banwatch/internal/guildbans"
	"banwatch/internal/lang"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const banPermissions = discordgo.PermissionBanMembers | discordgo.PermissionAdministrator

func (b *Bot) handleGuilds(ctx context.Context, req *Request) {
	guilds := b.session.Guilds()
	lines := make([]string, 0, len(guilds))
	for i, guild := range guilds {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, guild.Name))
	}
	b.sendChunked(req, lang.T(req.Lang, "guilds_header"), lines)
}

func (b *Bot) handleLang(ctx context.Context, req *Request) {
	if len(req.Args) == 0 {
		b.send(req, lang.T(req.Lang, "lang_usage"))
		return
	}
	if !b.langs.Set(req.Author.ID, req.Args[0]) {
		b.send(req, lang.T(req.Lang, "lang_invalid"))
		return
	}
	code := b.langs.Get(req.Author.ID)
	req.log.Info("language changed", zap.String("new_lang", code))
	b.send(req, req.Mention()+" "+lang.T(code, "lang_set"))
}

func (b *Bot) handleLookupEmbed(ctx context.Context, req *Request) {
	playerID := req.Raw
	if !isDigits(playerID) {
		b.send(req, req.Mention()+" "+lang.T(req.Lang, "id_invalid"))
		return
	}

	b.typing(req)
	result, err := b.lookup.Lookup(ctx, playerID)
	if err != nil {
		b.replyLookupError(req, playerID, err)
		return
	}

	embed := b.resultEmbed(req, playerID, result)
	data := &discordgo.MessageSend{Content: req.Mention(), Embeds: []*discordgo.MessageEmbed{embed}}
	img, err := b.badges.For(result.Banned)
	if err != nil {
		req.log.Warn("badge unavailable", zap.Error(err))
	} else {
		embed.Image = &discordgo.MessageEmbedImage{URL: img.AttachmentURL()}
		data.Files = []*discordgo.File{img.File()}
	}
	req.log.Info("ban lookup answered", zap.String("player_id", playerID), zap.Bool("banned", result.Banned))
	b.sendComplex(req, data)
}

func (b *Bot) handleLookupText(ctx context.Context, req *Request) {
	if len(req.Args) == 0 {
		b.send(req, req.Mention()+" "+lang.T(req.Lang, "ffid_usage"))
		return
	}
	if ok, wait := b.cooldown.Allow(req.Author.ID); !ok {
		b.send(req, req.Mention()+" "+lang.T(req.Lang, "ffid_cooldown", cooldown.RetrySeconds(wait)))
		return
	}
	playerID := req.Args[0]
	if !isDigits(playerID) {
		b.send(req, req.Mention()+" "+lang.T(req.Lang, "ffid_invalid"))
		return
	}

	b.typing(req)
	result, err := b.lookup.Lookup(ctx, playerID)
	if err != nil {
		b.replyLookupError(req, playerID, err)
		return
	}

	nickname := valueOrMissing(req.Lang, result.Nickname)
	region := valueOrMissing(req.Lang, result.Region)
	var text string
	if result.Banned {
		text = lang.T(req.Lang, "ffid_banned", playerID, nickname, region, periodText(req.Lang, result))
	} else {
		text = lang.T(req.Lang, "ffid_clean", playerID, nickname, region)
	}
	b.send(req, req.Mention()+" "+text)
}

func (b *Bot) replyLookupError(req *Request, playerID string, err error) {
	key := "lookup_failed"
	switch {
	case errors.Is(err, banapi.ErrNotFound):
		key = "lookup_not_found"
	case errors.Is(err, banapi.ErrUnavailable):
		key = "lookup_down"
	}
	req.log.Warn("ban lookup failed", zap.String("player_id", playerID), zap.Error(err))
	b.send(req, req.Mention()+" "+lang.T(req.Lang, key))
}

func (b *Bot) handleCheckBan(ctx context.Context, req *Request) {
	if len(req.Args) == 0 {
		b.send(req, req.Mention()+" "+lang.T(req.Lang, "checkban_usage"))
		return
	}
	userID, ok := parseUserID(req.Args[0])
	if !ok {
		b.send(req, req.Mention()+" "+lang.T(req.Lang, "checkban_usage"))
		return
	}

	b.typing(req)
	status := b.bans.Check(req.GuildID, userID)
	guildName := b.session.GuildName(req.GuildID)
	req.log.Info("guild ban checked", zap.String("target_id", userID), zap.Stringer("status", status))

	key := "checkban_unknown"
	switch status {
	case guildbans.Banned:
		key = "checkban_banned"
	case guildbans.NotBanned:
		key = "checkban_clean"
	}
	b.send(req, req.Mention()+" "+lang.T(req.Lang, key, userID, guildName))
}

func (b *Bot) handleListBans(ctx context.Context, req *Request) {
	bans, err := b.bans.List(req.GuildID)
	if err != nil {
		if guildbans.IsForbidden(err) {
			b.audit.Log(ctx, audit.LevelWarn, req.GuildID, req.Author.ID, "listbans_denied", "missing ban members permission")
			b.send(req, lang.T(req.Lang, "listbans_denied"))
			return
		}
		req.log.Error("list guild bans failed", zap.Error(err))
		b.send(req, lang.T(req.Lang, "listbans_error", err.Error()))
		return
	}
	if len(bans) == 0 {
		b.send(req, lang.T(req.Lang, "listbans_empty"))
		return
	}
	req.log.Info("guild bans listed", zap.Int("count", len(bans)))
	b.sendChunked(req, lang.T(req.Lang, "listbans_header"), guildbans.FormatEntries(bans))
}

// sendChunked sends header followed by lines, split so that no message
// exceeds the configured size.
func (b *Bot) sendChunked(req *Request, header string, lines []string) {
	limit := b.cfg.Listing.ChunkSize - utf8.RuneCountInString(header)
	chunks := guildbans.Chunk(lines, limit)
	if len(chunks) == 0 {
		b.send(req, header)
		return
	}
	for _, chunk := range chunks {
		b.send(req, header+chunk)
	}
}

func (b *Bot) handleBan(ctx context.Context, req *Request) {
	if len(req.Args) == 0 {
		b.send(req, lang.T(req.Lang, "ban_usage"))
		return
	}
	perms, err := b.session.UserChannelPermissions(req.Author.ID, req.ChannelID)
	if err != nil || perms&banPermissions == 0 {
		if err != nil {
			req.log.Warn("permission lookup failed", zap.Error(err))
		}
		b.send(req, lang.T(req.Lang, "ban_no_permission"))
		return
	}

	target := req.Args[0]
	member := b.resolveMember(req, target)
	if member == nil {
		b.send(req, lang.T(req.Lang, "ban_member_404", target))
		return
	}

	reason := strings.TrimSpace(strings.TrimPrefix(req.Raw, target))
	shownReason := reason
	if shownReason == "" {
		shownReason = "None"
	}
	tag := guildbans.UserTag(member.User)

	if err := b.session.GuildBanCreateWithReason(req.GuildID, member.User.ID, reason, 0); err != nil {
		req.log.Warn("ban failed", zap.String("target_id", member.User.ID), zap.Error(err))
		b.audit.Log(ctx, audit.LevelWarn, req.GuildID, req.Author.ID, "ban_failed", fmt.Sprintf("target=%s error=%s", member.User.ID, describeError(err)))
		b.send(req, lang.T(req.Lang, "ban_failed", tag, describeError(err)))
		return
	}

	b.audit.Log(ctx, audit.LevelInfo, req.GuildID, req.Author.ID, "ban", fmt.Sprintf("target=%s reason=%s", member.User.ID, shownReason))
	b.send(req, lang.T(req.Lang, "ban_done", tag, shownReason))
}

// resolveMember accepts a mention, a raw user ID, name#discriminator, a
// username or a nickname, in that order of preference.
func (b *Bot) resolveMember(req *Request, ref string) *discordgo.Member {
	if id, ok := parseUserID(ref); ok {
		member, err := b.session.GuildMember(req.GuildID, id)
		if err == nil && member != nil && member.User != nil {
			return member
		}
		req.log.Debug("member lookup by id failed", zap.String("ref", ref), zap.Error(err))
		return nil
	}

	name := ref
	if idx := strings.LastIndex(ref, "#"); idx > 0 {
		name = ref[:idx]
	}
	candidates, err := b.session.GuildMembersSearch(req.GuildID, name, 10)
	if err != nil {
		req.log.Debug("member search failed", zap.String("ref", ref), zap.Error(err))
		return nil
	}
	for _, match := range []func(*discordgo.Member) bool{
		func(m *discordgo.Member) bool { return guildbans.UserTag(m.User) == ref },
		func(m *discordgo.Member) bool { return m.User.Username == ref },
		func(m *discordgo.Member) bool { return m.User.GlobalName == ref },
		func(m *discordgo.Member) bool { return m.Nick == ref },
	} {
		for _, member := range candidates {
			if member != nil && member.User != nil && match(member) {
				return member
			}
		}
	}
	return nil
}

func (b *Bot) handleHelp(ctx context.Context, req *Request) {
	embed := b.commandEmbed(lang.T(req.Lang, "help_title"), lang.T(req.Lang, "help_body"), b.cfg.EmbedColors.Clean, nil)
	b.sendComplex(req, &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{embed}})
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseUserID accepts a snowflake or a <@id>/<@!id> mention.
func parseUserID(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "<@") && strings.HasSuffix(ref, ">") {
		ref = strings.TrimPrefix(ref[2:len(ref)-1], "!")
	}
	n, err := strconv.ParseUint(ref, 10, 64)
	if err != nil {
		return "", false
	}
	return strconv.FormatUint(n, 10), true
}

func describeError(err error) string {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil && restErr.Response != nil {
		return fmt.Sprintf("%s (error code: %d): %s", restErr.Response.Status, restErr.Message.Code, restErr.Message.Message)
	}
	return err.Error()
}
