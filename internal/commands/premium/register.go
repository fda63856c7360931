// Package premium provides redeem, status and premium administration commands.
package premium

import (
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/discord"
)

// RegisterPremiumCommands registers the premium command set
func RegisterPremiumCommands(ch *discord.CommandHandler) {
	ch.RegisterCommand(CreateRedeemCommand())
	ch.RegisterCommand(CreateGetStatusCommand())

	group := ch.BuildCommandGroup(
		"premium",
		"Manage premium buyer entitlements",
		CreateGrantCommand(),
		CreateRemoveCommand(),
		CreateListCommand(),
	)
	ch.AddGlobalCommand(group)
}
