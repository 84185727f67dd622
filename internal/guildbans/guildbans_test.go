package guildbans

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"banwatch/internal/discord"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func forbiddenErr() error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusForbidden, Status: "403 Forbidden"},
		Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingPermissions, Message: "Missing Permissions"},
	}
}

func makeBans(n int) []*discordgo.GuildBan {
	bans := make([]*discordgo.GuildBan, n)
	for i := range bans {
		id := strconv.Itoa(100000 + i)
		bans[i] = &discordgo.GuildBan{User: &discordgo.User{ID: id, Username: "user" + id, Discriminator: "0"}}
	}
	return bans
}

func pagedSession(all []*discordgo.GuildBan, cursors *[]string) *discord.FakeSession {
	session := discord.NewFakeSession()
	session.GuildBansFunc = func(guildID string, limit int, beforeID, afterID string) ([]*discordgo.GuildBan, error) {
		*cursors = append(*cursors, afterID)
		start := 0
		if afterID != "" {
			for i, ban := range all {
				if ban.User.ID == afterID {
					start = i + 1
					break
				}
			}
		}
		end := start + limit
		if end > len(all) {
			end = len(all)
		}
		return all[start:end], nil
	}
	return session
}

func TestListFollowsCursor(t *testing.T) {
	all := makeBans(2500)
	var cursors []string
	query := New(pagedSession(all, &cursors), zap.NewNop())

	bans, err := query.List("g1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bans) != len(all) {
		t.Fatalf("expected %d bans, got %d", len(all), len(bans))
	}
	want := []string{"", "100999", "101999"}
	if strings.Join(cursors, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected cursors %v", cursors)
	}
}

func TestListExactPageBoundary(t *testing.T) {
	all := makeBans(1000)
	var cursors []string
	query := New(pagedSession(all, &cursors), zap.NewNop())

	bans, err := query.List("g1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bans) != 1000 || len(cursors) != 2 {
		t.Fatalf("expected 1000 bans over 2 requests, got %d over %d", len(bans), len(cursors))
	}
}

func TestCheck(t *testing.T) {
	var cursors []string
	query := New(pagedSession(makeBans(3), &cursors), zap.NewNop())

	if got := query.Check("g1", "100001"); got != Banned {
		t.Fatalf("expected banned, got %s", got)
	}
	if got := query.Check("g1", "999"); got != NotBanned {
		t.Fatalf("expected not banned, got %s", got)
	}
	if !query.IsBanned("g1", "100002") {
		t.Fatalf("expected IsBanned true for listed user")
	}
	if query.IsBanned("g1", "1000") {
		t.Fatalf("expected IsBanned false for unlisted user")
	}
}

func TestCheckPlatformFailure(t *testing.T) {
	session := discord.NewFakeSession()
	session.GuildBansFunc = func(string, int, string, string) ([]*discordgo.GuildBan, error) {
		return nil, forbiddenErr()
	}
	query := New(session, zap.NewNop())

	if got := query.Check("g1", "1"); got != Unknown {
		t.Fatalf("expected unknown, got %s", got)
	}
	if query.IsBanned("g1", "1") {
		t.Fatalf("expected permission failure to read as not banned")
	}
}

func TestIsForbidden(t *testing.T) {
	if !IsForbidden(forbiddenErr()) {
		t.Fatalf("expected 403 to be forbidden")
	}
	wrapped := fmt.Errorf("list bans: %w", &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusBadRequest, Status: "400 Bad Request"},
		Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingAccess},
	})
	if !IsForbidden(wrapped) {
		t.Fatalf("expected missing access code to be forbidden")
	}
	serverErr := &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusInternalServerError, Status: "500"}}
	if IsForbidden(serverErr) {
		t.Fatalf("expected 500 not to be forbidden")
	}
	if IsForbidden(errors.New("boom")) {
		t.Fatalf("expected plain error not to be forbidden")
	}
}

func TestFormatEntries(t *testing.T) {
	bans := []*discordgo.GuildBan{
		{User: &discordgo.User{ID: "1", Username: "alice", Discriminator: "0"}},
		{User: &discordgo.User{ID: "2", Username: "bob", Discriminator: "1234"}},
		{User: nil},
	}
	got := FormatEntries(bans)
	want := []string{"alice - ID: 1", "bob#1234 - ID: 2"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestChunkKeepsEntriesWhole(t *testing.T) {
	lines := FormatEntries(makeBans(300))
	chunks := Chunk(lines, 1900)
	if len(chunks) < 2 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}

	seen := make(map[string]int)
	for _, chunk := range chunks {
		if n := utf8.RuneCountInString(chunk); n > 1900 {
			t.Fatalf("chunk of %d characters exceeds limit", n)
		}
		for _, line := range strings.Split(chunk, "\n") {
			seen[line]++
		}
	}
	for _, line := range lines {
		if seen[line] != 1 {
			t.Fatalf("entry %q appears %d times", line, seen[line])
		}
	}
	if strings.Join(chunks, "\n") != strings.Join(lines, "\n") {
		t.Fatalf("chunks do not reassemble into the original list")
	}
}

func TestChunkCountsRunes(t *testing.T) {
	line := strings.Repeat("é", 10)
	chunks := Chunk([]string{line, line, line}, 21)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %q", len(chunks), chunks)
	}
	if chunks[0] != line+"\n"+line {
		t.Fatalf("unexpected first chunk %q", chunks[0])
	}
}

func TestChunkSplitsOversizedLine(t *testing.T) {
	long := strings.Repeat("x", 25)
	chunks := Chunk([]string{"a", long, "b"}, 10)
	want := []string{"a", "xxxxxxxxxx", "xxxxxxxxxx", "xxxxx", "b"}
	if strings.Join(chunks, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %v, got %v", want, chunks)
	}
}

func TestChunkEmpty(t *testing.T) {
	if chunks := Chunk(nil, 1900); len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %v", chunks)
	}
}
