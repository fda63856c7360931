// Package events provides a registry for organizing bot events.
// Events are organized by category (ready, guild, interaction, ...)
package events

import (
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/discord"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/logger"
)

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	logger.System("📋 Registering bot events...", "Events")

	// Ready event (bot startup, rotating presence)
	RegisterReadyEvent(client)

	// Guild events (server join/leave)
	RegisterGuildEvents(client)

	// Interaction events (panel buttons, partner review, modals)
	RegisterInteractionEvents(client)

	logger.Success("✅ All events registered", "Events")
}
