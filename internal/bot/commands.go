package bot

import "context"

type handlerFunc func(ctx context.Context, req *Request)

type command struct {
	name      string
	guildOnly bool
	run       handlerFunc
}

// registerCommands builds the keyword table. Keywords are matched exactly,
// so "!id" does not reach the "ID" handler.
func (b *Bot) registerCommands() map[string]command {
	commands := []command{
		{name: "guilds", run: b.handleGuilds},
		{name: "lang", run: b.handleLang},
		{name: "ID", run: b.handleLookupEmbed},
		{name: "checkban", guildOnly: true, run: b.handleCheckBan},
		{name: "listbans", guildOnly: true, run: b.handleListBans},
		{name: "check_freefire_id", run: b.handleLookupText},
		{name: "ban", guildOnly: true, run: b.handleBan},
		{name: "help", run: b.handleHelp},
	}

	table := make(map[string]command, len(commands))
	for _, cmd := range commands {
		table[cmd.name] = cmd
	}
	return table
}
