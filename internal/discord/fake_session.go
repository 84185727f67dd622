package discord

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// FakeSession is a programmable Session for tests. Each method delegates to
// its Func field when set and otherwise returns a benign default. Sent
// messages are captured so tests can assert on replies.
type FakeSession struct {
	mu    sync.Mutex
	trace []string
	sent  []*discordgo.MessageSend

	ChannelMessageSendFunc        func(channelID, content string) (*discordgo.Message, error)
	ChannelMessageSendComplexFunc func(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error)
	ChannelTypingFunc             func(channelID string) error
	GuildsFunc                    func() []*discordgo.Guild
	GuildNameFunc                 func(guildID string) string
	GuildBansFunc                 func(guildID string, limit int, beforeID, afterID string) ([]*discordgo.GuildBan, error)
	GuildBanCreateWithReasonFunc  func(guildID, userID, reason string, days int) error
	GuildMemberFunc               func(guildID, userID string) (*discordgo.Member, error)
	GuildMembersSearchFunc        func(guildID, query string, limit int) ([]*discordgo.Member, error)
	UserChannelPermissionsFunc    func(userID, channelID string) (int64, error)
	AddHandlerFunc                func(handler interface{}) func()
	OpenFunc                      func() error
	CloseFunc                     func() error
}

func NewFakeSession() *FakeSession {
	return &FakeSession{}
}

func (f *FakeSession) record(step string) {
	f.mu.Lock()
	f.trace = append(f.trace, step)
	f.mu.Unlock()
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeSession) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Calls counts how many times method was invoked.
func (f *FakeSession) Calls(method string) int {
	n := 0
	for _, step := range f.Trace() {
		if step == method {
			n++
		}
	}
	return n
}

// Sent returns every outgoing message in order. Plain sends are reported
// as a MessageSend with only Content set.
func (f *FakeSession) Sent() []*discordgo.MessageSend {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*discordgo.MessageSend, len(f.sent))
	copy(out, f.sent)
	return out
}

// Contents returns the text content of every outgoing message.
func (f *FakeSession) Contents() []string {
	sent := f.Sent()
	out := make([]string, 0, len(sent))
	for _, msg := range sent {
		out = append(out, msg.Content)
	}
	return out
}

func (f *FakeSession) capture(data *discordgo.MessageSend) {
	f.mu.Lock()
	f.sent = append(f.sent, data)
	f.mu.Unlock()
}

func (f *FakeSession) ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.record("ChannelMessageSend")
	f.capture(&discordgo.MessageSend{Content: content})
	if f.ChannelMessageSendFunc != nil {
		return f.ChannelMessageSendFunc(channelID, content)
	}
	return &discordgo.Message{ID: "fake-msg", ChannelID: channelID, Content: content}, nil
}

func (f *FakeSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.record("ChannelMessageSendComplex")
	f.capture(data)
	if f.ChannelMessageSendComplexFunc != nil {
		return f.ChannelMessageSendComplexFunc(channelID, data)
	}
	return &discordgo.Message{ID: "fake-msg", ChannelID: channelID, Content: data.Content}, nil
}

func (f *FakeSession) ChannelTyping(channelID string, options ...discordgo.RequestOption) error {
	f.record("ChannelTyping")
	if f.ChannelTypingFunc != nil {
		return f.ChannelTypingFunc(channelID)
	}
	return nil
}

func (f *FakeSession) Guilds() []*discordgo.Guild {
	f.record("Guilds")
	if f.GuildsFunc != nil {
		return f.GuildsFunc()
	}
	return nil
}

func (f *FakeSession) GuildName(guildID string) string {
	f.record("GuildName")
	if f.GuildNameFunc != nil {
		return f.GuildNameFunc(guildID)
	}
	return guildID
}

func (f *FakeSession) GuildBans(guildID string, limit int, beforeID, afterID string, options ...discordgo.RequestOption) ([]*discordgo.GuildBan, error) {
	f.record("GuildBans")
	if f.GuildBansFunc != nil {
		return f.GuildBansFunc(guildID, limit, beforeID, afterID)
	}
	return nil, nil
}

func (f *FakeSession) GuildBanCreateWithReason(guildID, userID, reason string, days int, options ...discordgo.RequestOption) error {
	f.record("GuildBanCreateWithReason")
	if f.GuildBanCreateWithReasonFunc != nil {
		return f.GuildBanCreateWithReasonFunc(guildID, userID, reason, days)
	}
	return nil
}

func (f *FakeSession) GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
	f.record("GuildMember")
	if f.GuildMemberFunc != nil {
		return f.GuildMemberFunc(guildID, userID)
	}
	return &discordgo.Member{GuildID: guildID, User: &discordgo.User{ID: userID}}, nil
}

func (f *FakeSession) GuildMembersSearch(guildID, query string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error) {
	f.record("GuildMembersSearch")
	if f.GuildMembersSearchFunc != nil {
		return f.GuildMembersSearchFunc(guildID, query, limit)
	}
	return nil, nil
}

func (f *FakeSession) UserChannelPermissions(userID, channelID string, options ...discordgo.RequestOption) (int64, error) {
	f.record("UserChannelPermissions")
	if f.UserChannelPermissionsFunc != nil {
		return f.UserChannelPermissionsFunc(userID, channelID)
	}
	return 0, nil
}

func (f *FakeSession) AddHandler(handler interface{}) func() {
	f.record("AddHandler")
	if f.AddHandlerFunc != nil {
		return f.AddHandlerFunc(handler)
	}
	return func() {}
}

func (f *FakeSession) Open() error {
	f.record("Open")
	if f.OpenFunc != nil {
		return f.OpenFunc()
	}
	return nil
}

func (f *FakeSession) Close() error {
	f.record("Close")
	if f.CloseFunc != nil {
		return f.CloseFunc()
	}
	return nil
}

var _ Session = (*FakeSession)(nil)
var _ Session = (*DiscordSession)(nil)
