// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (premium, codes, panel, ...)
package commands

import (
	"github.com/ValuamorSystems/ValuamorBotGo/internal/commands/codes"
	"github.com/ValuamorSystems/ValuamorBotGo/internal/commands/devkey"
	"github.com/ValuamorSystems/ValuamorBotGo/internal/commands/panel"
	"github.com/ValuamorSystems/ValuamorBotGo/internal/commands/partner"
	"github.com/ValuamorSystems/ValuamorBotGo/internal/commands/premium"
	"github.com/ValuamorSystems/ValuamorBotGo/internal/commands/utils"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	// Utility commands
	utils.RegisterUtilsCommands(client)

	// Redeem, status and premium administration (/redeem, /getstatus, /premium ...)
	premium.RegisterPremiumCommands(client.CommandHandler)

	// Owner-only redeem code administration (/codes ...)
	codes.RegisterCodeCommands(client.CommandHandler)

	// Development keys (/devkey ...)
	devkey.RegisterDevKeyCommands(client.CommandHandler)

	// Control panels (/panel ...)
	panel.RegisterPanelCommands(client.CommandHandler)

	// Partnership workflow (/partner ...)
	partner.RegisterPartnerCommands(client.CommandHandler)
}
