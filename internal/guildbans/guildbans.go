package guildbans

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"banwatch/internal/discord"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Discord caps a single ban listing request at 1000 entries.
const pageSize = 1000

type Status int

const (
	Unknown Status = iota
	NotBanned
	Banned
)

func (s Status) String() string {
	switch s {
	case Banned:
		return "banned"
	case NotBanned:
		return "not_banned"
	default:
		return "unknown"
	}
}

type Query struct {
	session discord.Session
	logger  *zap.Logger
}

func New(session discord.Session, logger *zap.Logger) *Query {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Query{session: session, logger: logger}
}

// List returns every ban entry of the guild, following the after cursor
// until a short page is returned.
func (q *Query) List(guildID string) ([]*discordgo.GuildBan, error) {
	var (
		all   []*discordgo.GuildBan
		after string
	)
	for {
		page, err := q.session.GuildBans(guildID, pageSize, "", after)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
		last := page[len(page)-1]
		if last == nil || last.User == nil || last.User.ID == after {
			return all, nil
		}
		after = last.User.ID
	}
}

// Check scans the guild ban list for userID. Any platform failure yields
// Unknown.
func (q *Query) Check(guildID, userID string) Status {
	bans, err := q.List(guildID)
	if err != nil {
		q.logger.Warn("guild ban list unavailable",
			zap.String("guild_id", guildID),
			zap.String("user_id", userID),
			zap.Bool("forbidden", IsForbidden(err)),
			zap.Error(err),
		)
		return Unknown
	}
	for _, ban := range bans {
		if ban != nil && ban.User != nil && ban.User.ID == userID {
			return Banned
		}
	}
	return NotBanned
}

// IsBanned collapses Check to a boolean; a failed lookup reads as not banned.
func (q *Query) IsBanned(guildID, userID string) bool {
	return q.Check(guildID, userID) == Banned
}

// IsForbidden reports whether err is Discord refusing access to the resource.
func IsForbidden(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Response != nil && restErr.Response.StatusCode == http.StatusForbidden {
		return true
	}
	if restErr.Message != nil {
		switch restErr.Message.Code {
		case discordgo.ErrCodeMissingPermissions, discordgo.ErrCodeMissingAccess:
			return true
		}
	}
	return false
}

// UserTag renders a user the way Discord clients show it: the bare username
// for migrated accounts, name#discriminator for legacy ones.
func UserTag(user *discordgo.User) string {
	if user == nil {
		return "unknown"
	}
	if user.Discriminator == "" || user.Discriminator == "0" {
		return user.Username
	}
	return user.Username + "#" + user.Discriminator
}

func FormatEntries(bans []*discordgo.GuildBan) []string {
	lines := make([]string, 0, len(bans))
	for _, ban := range bans {
		if ban == nil || ban.User == nil {
			continue
		}
		lines = append(lines, UserTag(ban.User)+" - ID: "+ban.User.ID)
	}
	return lines
}

// Chunk joins lines with newlines into pieces of at most limit characters.
// Lines are never split across pieces unless a single line is longer than
// limit on its own.
func Chunk(lines []string, limit int) []string {
	if limit <= 0 {
		limit = 1900
	}

	var (
		chunks []string
		buf    strings.Builder
		size   int
	)
	flush := func() {
		if buf.Len() > 0 {
			chunks = append(chunks, buf.String())
			buf.Reset()
			size = 0
		}
	}

	for _, line := range lines {
		n := utf8.RuneCountInString(line)
		if n > limit {
			flush()
			chunks = append(chunks, splitRunes(line, limit)...)
			continue
		}
		extra := n
		if size > 0 {
			extra++
		}
		if size+extra > limit {
			flush()
			extra = n
		}
		if size > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)
		size += extra
	}
	flush()
	return chunks
}

func splitRunes(s string, limit int) []string {
	runes := []rune(s)
	out := make([]string, 0, len(runes)/limit+1)
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}
