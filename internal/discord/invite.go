package discord

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/oauth2"
)

const authorizeURL = "https://discord.com/oauth2/authorize"

// InvitePermissions covers every command: reading and answering messages,
// attaching badge images and banning members.
const InvitePermissions = discordgo.PermissionViewChannel |
	discordgo.PermissionSendMessages |
	discordgo.PermissionEmbedLinks |
	discordgo.PermissionAttachFiles |
	discordgo.PermissionBanMembers

// InviteURL builds the OAuth2 link that adds the application to a guild.
func InviteURL(applicationID string, permissions int64) string {
	if applicationID == "" {
		return ""
	}
	cfg := oauth2.Config{
		ClientID: applicationID,
		Endpoint: oauth2.Endpoint{AuthURL: authorizeURL},
		Scopes:   []string{"bot"},
	}
	return cfg.AuthCodeURL("", oauth2.SetAuthURLParam("permissions", strconv.FormatInt(permissions, 10)))
}
