// Package panel provides the public control panel commands and renderers.
package panel

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/database"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/discord"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/errors"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/logger"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
)

// CreateSetupCommand creates the /panel setup subcommand
func CreateSetupCommand() *discord.Command {
	return discord.NewCommand(
		"setup",
		"Configure a control panel",
		"panel",
		setupHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "panel",
			Description: "Panel to configure",
			Required:    true,
			Choices:     panelChoices,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "title",
			Description: "Embed title",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        "channel",
			Description: "Channel the panel lives in",
			Required:    true,
			ChannelTypes: []discordgo.ChannelType{
				discordgo.ChannelTypeGuildText,
			},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "description",
			Description: "Embed description",
			Required:    false,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "role",
			Description: "Role that grants free access",
			Required:    false,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "script",
			Description: "Script payload served by the panel",
			Required:    false,
		},
	).AsAdminOnly().RequiresDatabase()
}

func setupHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		panelType := ctx.GetStringOption("panel")
		channel := ctx.GetChannelOption("channel")
		if channel == nil {
			sendErrorEmbed(ctx, "Missing Channel", "You have to pick a channel.")
			return
		}

		existing, err := database.GetPanel(panelType)
		if err != nil {
			logger.Error(fmt.Sprintf("Error loading panel %s: %v", panelType, err), "PanelSetup")
			sendErrorEmbed(ctx, "Internal Error", "Could not load the panel, try again later.")
			return
		}
		if existing == nil {
			existing = &models.Panel{Type: panelType}
		}

		existing.Title = ctx.GetStringOption("title")
		existing.ChannelID = channel.ID
		if desc := ctx.GetStringOption("description"); desc != "" {
			existing.Description = desc
		}
		if role := ctx.GetRoleOption("role"); role != nil {
			existing.RequiredRole = role.ID
		}
		if script := ctx.GetStringOption("script"); script != "" {
			existing.Script = script
		}

		if _, err := database.SavePanel(existing); err != nil {
			logger.Error(fmt.Sprintf("Error saving panel %s: %v", panelType, err), "PanelSetup")
			sendErrorEmbed(ctx, "Internal Error", "Could not save the panel, try again later.")
			return
		}

		sendSuccessEmbed(ctx, "Panel Configured", fmt.Sprintf("The `%s` panel is configured for <#%s>. Use `/panel send` to publish it.", panelType, channel.ID))
		logger.Info(fmt.Sprintf("User %s configured panel %s", getUserName(ctx), panelType), "PanelSetup")
	}()

	return nil
}

// CreateSendCommand creates the /panel send subcommand
func CreateSendCommand() *discord.Command {
	return discord.NewCommand(
		"send",
		"Publish a panel to its channel",
		"panel",
		sendHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "panel",
			Description: "Panel to publish",
			Required:    true,
			Choices:     panelChoices,
		},
	).AsAdminOnly().RequiresDatabase()
}

func sendHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		panelType := ctx.GetStringOption("panel")

		p, err := database.GetPanel(panelType)
		if err != nil {
			logger.Error(fmt.Sprintf("Error loading panel %s: %v", panelType, err), "PanelSend")
			sendErrorEmbed(ctx, "Internal Error", "Could not load the panel, try again later.")
			return
		}
		if !p.Configured() {
			sendErrorEmbed(ctx, "Not Configured", fmt.Sprintf("Configure the `%s` panel with `/panel setup` first.", panelType))
			return
		}

		msg, err := ctx.Session.ChannelMessageSendComplex(p.ChannelID, &discordgo.MessageSend{
			Embeds:     []*discordgo.MessageEmbed{BuildEmbed(p)},
			Components: BuildComponents(panelType),
		})
		if err != nil {
			logger.Error(fmt.Sprintf("Error publishing panel %s: %v", panelType, err), "PanelSend")
			sendErrorEmbed(ctx, "Send Failed", "Could not post the panel message. Check the bot's channel permissions.")
			return
		}

		// Drop the previous panel message so only one stays live.
		if p.MessageID != "" {
			if err := ctx.Session.ChannelMessageDelete(p.ChannelID, p.MessageID); err != nil {
				logger.Warn(fmt.Sprintf("Could not delete old panel message %s: %v", p.MessageID, err), "PanelSend")
			}
		}

		p.MessageID = msg.ID
		if _, err := database.SavePanel(p); err != nil {
			logger.Error(fmt.Sprintf("Error saving panel %s: %v", panelType, err), "PanelSend")
		}

		sendSuccessEmbed(ctx, "Panel Published", fmt.Sprintf("The `%s` panel is live in <#%s>.", panelType, p.ChannelID))
		logger.Info(fmt.Sprintf("User %s published panel %s", getUserName(ctx), panelType), "PanelSend")
	}()

	return nil
}

// CreateStatusCommand creates the /panel status subcommand
func CreateStatusCommand() *discord.Command {
	return discord.NewCommand(
		"status",
		"Change a panel's operational status",
		"panel",
		statusHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "panel",
			Description: "Panel to update",
			Required:    true,
			Choices:     panelChoices,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "status",
			Description: "New status",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Active", Value: string(models.PanelActive)},
				{Name: "Maintenance", Value: string(models.PanelMaintenance)},
				{Name: "Down", Value: string(models.PanelDown)},
				{Name: "Banned", Value: string(models.PanelBanned)},
				{Name: "Blacklist", Value: string(models.PanelBlacklist)},
			},
		},
	).AsAdminOnly().RequiresDatabase()
}

func statusHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		panelType := ctx.GetStringOption("panel")
		status := models.PanelStatus(ctx.GetStringOption("status"))

		if _, err := database.SetPanelStatus(panelType, status); err != nil {
			if err == database.ErrPanelNotFound {
				sendErrorEmbed(ctx, "Not Found", fmt.Sprintf("The `%s` panel is not configured yet.", panelType))
				return
			}
			logger.Error(fmt.Sprintf("Error updating panel %s status: %v", panelType, err), "PanelStatus")
			sendErrorEmbed(ctx, "Internal Error", "Could not update the panel, try again later.")
			return
		}

		sendSuccessEmbed(ctx, "Status Updated", fmt.Sprintf("The `%s` panel is now `%s`.", panelType, status))
		logger.Info(fmt.Sprintf("User %s set panel %s to %s", getUserName(ctx), panelType, status), "PanelStatus")
	}()

	return nil
}

// RegisterPanelCommands registers the panel command group
func RegisterPanelCommands(ch *discord.CommandHandler) {
	group := ch.BuildCommandGroup(
		"panel",
		"Configure and publish control panels",
		CreateSetupCommand(),
		CreateSendCommand(),
		CreateStatusCommand(),
	)
	ch.AddGlobalCommand(group)
}
