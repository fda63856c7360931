package utils

import (
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/discord"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/errors"
)

// createHelpCommand creates the /utils help subcommand
func createHelpCommand() *discord.Command {
	return discord.NewCommand(
		"help",
		"Show help information",
		"utils",
		helpHandler,
	)
}

// helpHandler handles the /utils help command
func helpHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		ctx.Reply(
			"📖 **ValuamorBot Go Help**\n\n" +
				"**Available commands:**\n" +
				"• `/redeem <code>` - Redeem a code for an access key\n" +
				"• `/getstatus` - Check your premium and key status\n" +
				"• `/devkey redeem <key>` - Redeem a development key\n" +
				"• `/premium grant|remove|list` - Manage premium buyers (admin)\n" +
				"• `/codes generate|list|delete` - Manage redeem codes (owner)\n" +
				"• `/panel setup|send|status` - Manage control panels (admin)\n" +
				"• `/partner panel|setup|list` - Partnership applications (admin)\n" +
				"• `/utils ping` - Check the latency\n" +
				"• `/utils status` - Bot status\n" +
				"• `/utils stats` - Bot statistics",
		)
	}()
	return nil
}
