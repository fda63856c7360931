// Package codes provides owner-only redeem code administration commands.
package codes

import (
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/discord"
)

// RegisterCodeCommands registers the codes command group
func RegisterCodeCommands(ch *discord.CommandHandler) {
	group := ch.BuildCommandGroup(
		"codes",
		"Administer redeem codes",
		CreateGenerateCommand(),
		CreateListCommand(),
		CreateDeleteCommand(),
	)
	ch.AddGlobalCommand(group)
}
