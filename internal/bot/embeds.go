package bot

import (
	"strings"
	"time"

	"banwatch/internal/banapi"
	"banwatch/internal/lang"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) commandEmbed(title, description string, color int, fields []*discordgo.MessageEmbedField) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   time.Now().Format(time.RFC3339),
		Fields:      fields,
	}
}

// resultEmbed renders a lookup result. The caller attaches the badge image.
func (b *Bot) resultEmbed(req *Request, playerID string, result banapi.Result) *discordgo.MessageEmbed {
	code := req.Lang
	var (
		title string
		color int
		lines []string
	)
	if result.Banned {
		title = lang.T(code, "title_banned")
		color = b.cfg.EmbedColors.Banned
		lines = append(lines,
			bullet(lang.T(code, "field_reason"), lang.T(code, "reason_cheats")),
			bullet(lang.T(code, "field_duration"), periodText(code, result)),
		)
	} else {
		title = lang.T(code, "title_clean")
		color = b.cfg.EmbedColors.Clean
		lines = append(lines, bullet(lang.T(code, "field_status"), lang.T(code, "status_clean")))
	}
	lines = append(lines,
		bullet(lang.T(code, "field_nickname"), "`"+valueOrMissing(code, result.Nickname)+"`"),
		bullet(lang.T(code, "field_player_id"), "`"+playerID+"`"),
		bullet(lang.T(code, "field_region"), "`"+valueOrMissing(code, result.Region)+"`"),
	)

	embed := b.commandEmbed(title, strings.Join(lines, "\n"), color, nil)
	embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: req.Author.AvatarURL("")}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: b.cfg.FooterText}
	if req.Message != nil && !req.Message.Timestamp.IsZero() {
		embed.Timestamp = req.Message.Timestamp.Format(time.RFC3339)
	}
	return embed
}

func bullet(label, value string) string {
	return "**• " + label + " :** " + value
}

func periodText(code string, result banapi.Result) string {
	if !result.PeriodKnown {
		return lang.T(code, "period_unknown")
	}
	return lang.T(code, "period_months", result.PeriodMonths)
}

func valueOrMissing(code, value string) string {
	if strings.TrimSpace(value) == "" {
		return lang.T(code, "value_missing")
	}
	return value
}
