// Package partner provides the partnership application commands and the
// Discord-backed workflow wiring.
package partner

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/database"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/discord"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/errors"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/logger"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
)

const maxListedRequests = 25

func getUserName(ctx *discord.CommandContext) string {
	if ctx.Interaction.Member != nil && ctx.Interaction.Member.User != nil {
		return ctx.Interaction.Member.User.Username
	}
	if ctx.Interaction.User != nil {
		return ctx.Interaction.User.Username
	}
	return "unknown"
}

func sendErrorEmbed(ctx *discord.CommandContext, title, description string) {
	embed := &discordgo.MessageEmbed{
		Title:       "❌ " + title,
		Description: description,
		Color:       0xED4245,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "💫 Valuamor Systems | ValuamorBot Go",
		},
	}
	ctx.ReplyEphemeralEmbed(embed)
}

func sendSuccessEmbed(ctx *discord.CommandContext, title, description string) {
	embed := &discordgo.MessageEmbed{
		Title:       "✅ " + title,
		Description: description,
		Color:       0x57F287,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "💫 Valuamor Systems | ValuamorBot Go",
		},
	}
	ctx.ReplyEphemeralEmbed(embed)
}

// CreatePanelCommand creates the /partner panel subcommand
func CreatePanelCommand() *discord.Command {
	return discord.NewCommand(
		"panel",
		"Post the partnership application panel",
		"partner",
		panelHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        "channel",
			Description: "Channel to post the panel in",
			Required:    true,
			ChannelTypes: []discordgo.ChannelType{
				discordgo.ChannelTypeGuildText,
			},
		},
	).AsAdminOnly().RequiresDatabase()
}

func panelHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		channel := ctx.GetChannelOption("channel")
		if channel == nil {
			sendErrorEmbed(ctx, "Missing Channel", "You have to pick a channel.")
			return
		}

		embed := &discordgo.MessageEmbed{
			Title:       "🤝 Become a Partner / Jadilah Partner",
			Description: "Want your server featured here? Press the button below and tell us about it. / Ingin servermu ditampilkan di sini? Tekan tombol di bawah dan ceritakan tentangnya.",
			Color:       0x5865F2,
			Footer: &discordgo.MessageEmbedFooter{
				Text: "💫 Valuamor Systems | ValuamorBot Go",
			},
		}
		components := []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Apply / Daftar",
						Style:    discordgo.PrimaryButton,
						CustomID: CustomIDApply,
						Emoji:    &discordgo.ComponentEmoji{Name: "📨"},
					},
				},
			},
		}

		if _, err := ctx.Session.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		}); err != nil {
			logger.Error(fmt.Sprintf("Error posting partner panel: %v", err), "Partner")
			sendErrorEmbed(ctx, "Send Failed", "Could not post the panel message. Check the bot's channel permissions.")
			return
		}

		sendSuccessEmbed(ctx, "Panel Posted", fmt.Sprintf("The partner panel is live in <#%s>.", channel.ID))
		logger.Info(fmt.Sprintf("User %s posted the partner panel", getUserName(ctx)), "Partner")
	}()

	return nil
}

// CreateSetupCommand creates the /partner setup subcommand
func CreateSetupCommand() *discord.Command {
	return discord.NewCommand(
		"setup",
		"Set the user who reviews partner requests",
		"partner",
		setupHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "receiver",
			Description: "User who receives partner requests",
			Required:    true,
		},
	).AsAdminOnly().RequiresDatabase()
}

func setupHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		receiver := ctx.GetUserOption("receiver")
		if receiver == nil {
			sendErrorEmbed(ctx, "Missing User", "You have to pick a user.")
			return
		}

		if _, err := database.SetPartnerConfig(ctx.Interaction.GuildID, receiver.ID); err != nil {
			logger.Error(fmt.Sprintf("Error saving partner config: %v", err), "Partner")
			sendErrorEmbed(ctx, "Internal Error", "Could not save the configuration, try again later.")
			return
		}

		sendSuccessEmbed(ctx, "Receiver Set", fmt.Sprintf("Partner requests now go to <@%s>.", receiver.ID))
		logger.Info(fmt.Sprintf("User %s set the partner receiver to %s", getUserName(ctx), receiver.Username), "Partner")
	}()

	return nil
}

// CreateListCommand creates the /partner list subcommand
func CreateListCommand() *discord.Command {
	return discord.NewCommand(
		"list",
		"List partner requests for this server",
		"partner",
		listHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "status",
			Description: "Only show requests in this state",
			Required:    false,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Pending", Value: string(models.PartnerPending)},
				{Name: "Accepted", Value: string(models.PartnerAccepted)},
				{Name: "Rejected", Value: string(models.PartnerRejected)},
			},
		},
	).AsAdminOnly().RequiresDatabase()
}

func listHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		status := models.PartnerStatus(ctx.GetStringOption("status"))

		requests, err := database.ListPartnerRequests(ctx.Interaction.GuildID, status)
		if err != nil {
			logger.Error(fmt.Sprintf("Error listing partner requests: %v", err), "Partner")
			sendErrorEmbed(ctx, "Internal Error", "Could not load the request list, try again later.")
			return
		}

		if len(requests) == 0 {
			sendSuccessEmbed(ctx, "Partner Requests", "No partner requests found.")
			return
		}

		var lines []string
		for i, req := range requests {
			if i >= maxListedRequests {
				lines = append(lines, fmt.Sprintf("... and %d more", len(requests)-maxListedRequests))
				break
			}
			lines = append(lines, fmt.Sprintf("`%s` **%s** by <@%s> [%s]", req.RequestID, req.ServerName, req.UserID, req.Status))
		}

		embed := &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("🤝 Partner Requests (%d)", len(requests)),
			Description: strings.Join(lines, "\n"),
			Color:       0x5865F2,
			Timestamp:   time.Now().Format(time.RFC3339),
			Footer: &discordgo.MessageEmbedFooter{
				Text: "💫 Valuamor Systems | ValuamorBot Go",
			},
		}
		if err := ctx.ReplyEphemeralEmbed(embed); err != nil {
			logger.Error(fmt.Sprintf("Error sending request list: %v", err), "Partner")
		}
	}()

	return nil
}

// RegisterPartnerCommands registers the partner command group
func RegisterPartnerCommands(ch *discord.CommandHandler) {
	group := ch.BuildCommandGroup(
		"partner",
		"Partnership applications and review",
		CreatePanelCommand(),
		CreateSetupCommand(),
		CreateListCommand(),
	)
	ch.AddGlobalCommand(group)
}
