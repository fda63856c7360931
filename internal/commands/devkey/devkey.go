// Package devkey provides the development key command group.
package devkey

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

const maxListedKeys = 25

func getUserID(ctx *discord.CommandContext) string {
	if ctx.Interaction.Member != nil && ctx.Interaction.Member.User != nil {
		return ctx.Interaction.Member.User.ID
	}
	if ctx.Interaction.User != nil {
		return ctx.Interaction.User.ID
	}
	return ""
}

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

// CreateCreateCommand creates the /devkey create subcommand
func CreateCreateCommand() *discord.Command {
	return discord.NewCommand(
		"create",
		"Issue a development key",
		"devkey",
		createHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "role",
			Description: "Role label the key carries",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "player",
			Description: "Player id the key is tied to",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        "unlimited",
			Description: "Allow unlimited redemptions",
			Required:    false,
		},
	).AsAdminOnly().RequiresDatabase()
}

func createHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		role := ctx.GetStringOption("role")
		playerID := ctx.GetStringOption("player")
		unlimited := ctx.GetBoolOption("unlimited")

		key, err := database.CreateDevelopmentKey(role, playerID, unlimited, getUserID(ctx))
		if err != nil {
			logger.Error(fmt.Sprintf("Error creating development key: %v", err), "DevKey")
			sendErrorEmbed(ctx, "Internal Error", "Could not create the key, try again later.")
			return
		}

		usage := "Single use"
		if key.Unlimited {
			usage = "Unlimited"
		}

		embed := &discordgo.MessageEmbed{
			Title: "🔑 Development Key Created",
			Color: 0x57F287,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Key", Value: fmt.Sprintf("`%s`", key.Key), Inline: false},
				{Name: "Role", Value: key.Role, Inline: true},
				{Name: "Player", Value: key.PlayerID, Inline: true},
				{Name: "Usage", Value: usage, Inline: true},
			},
			Timestamp: time.Now().Format(time.RFC3339),
			Footer: &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("Created by %s", getUserName(ctx)),
			},
		}
		if err := ctx.ReplyEphemeralEmbed(embed); err != nil {
			logger.Error(fmt.Sprintf("Error sending devkey response: %v", err), "DevKey")
		}

		logger.Info(fmt.Sprintf("User %s created development key for player %s", getUserName(ctx), playerID), "DevKey")
	}()

	return nil
}

// CreateRedeemCommand creates the /devkey redeem subcommand
func CreateRedeemCommand() *discord.Command {
	return discord.NewCommand(
		"redeem",
		"Redeem a development key / Tukarkan kunci development",
		"devkey",
		redeemHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "key",
			Description: "The development key / Kunci development",
			Required:    true,
		},
	).RequiresDatabase()
}

func redeemHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		raw := strings.TrimSpace(ctx.GetStringOption("key"))

		key, err := database.ConsumeDevelopmentKey(raw, getUserID(ctx))
		if err != nil {
			switch err {
			case database.ErrDevKeyNotFound:
				sendErrorEmbed(ctx, "Invalid Key", "That key does not exist. / Kunci tersebut tidak ada.")
			case models.ErrDevKeyAlreadyUsed:
				sendErrorEmbed(ctx, "Key Already Used", "This key was already redeemed. / Kunci ini sudah ditukarkan.")
			default:
				logger.Error(fmt.Sprintf("Error redeeming development key: %v", err), "DevKey")
				sendErrorEmbed(ctx, "Internal Error", "Something went wrong, try again later. / Terjadi kesalahan, coba lagi nanti.")
			}
			return
		}

		embed := &discordgo.MessageEmbed{
			Title:       "🔓 Key Redeemed / Kunci Ditukarkan",
			Description: fmt.Sprintf("Role `%s` unlocked for player `%s`.", key.Role, key.PlayerID),
			Color:       0x57F287,
			Footer: &discordgo.MessageEmbedFooter{
				Text: "💫 Valuamor Systems | ValuamorBot Go",
			},
		}
		if err := ctx.ReplyEphemeralEmbed(embed); err != nil {
			logger.Error(fmt.Sprintf("Error sending devkey redeem response: %v", err), "DevKey")
		}
	}()

	return nil
}

// CreateListCommand creates the /devkey list subcommand
func CreateListCommand() *discord.Command {
	return discord.NewCommand(
		"list",
		"List development keys",
		"devkey",
		listHandler,
	).AsAdminOnly().RequiresDatabase()
}

func listHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		keys, err := database.ListDevelopmentKeys()
		if err != nil {
			logger.Error(fmt.Sprintf("Error listing development keys: %v", err), "DevKey")
			sendErrorEmbed(ctx, "Internal Error", "Could not load the key list, try again later.")
			return
		}

		if len(keys) == 0 {
			sendErrorEmbed(ctx, "No Keys", "There are no development keys stored.")
			return
		}

		var lines []string
		for i, key := range keys {
			if i >= maxListedKeys {
				lines = append(lines, fmt.Sprintf("... and %d more", len(keys)-maxListedKeys))
				break
			}
			state := "available"
			if key.Unlimited {
				state = "unlimited"
			} else if key.Used {
				state = fmt.Sprintf("used by <@%s>", key.UsedBy)
			}
			lines = append(lines, fmt.Sprintf("`%s` [%s] %s", key.Key, key.Role, state))
		}

		embed := &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("🔑 Development Keys (%d)", len(keys)),
			Description: strings.Join(lines, "\n"),
			Color:       0x5865F2,
			Timestamp:   time.Now().Format(time.RFC3339),
			Footer: &discordgo.MessageEmbedFooter{
				Text: "💫 Valuamor Systems | ValuamorBot Go",
			},
		}
		if err := ctx.ReplyEphemeralEmbed(embed); err != nil {
			logger.Error(fmt.Sprintf("Error sending devkey list: %v", err), "DevKey")
		}
	}()

	return nil
}

// CreateDeleteCommand creates the /devkey delete subcommand
func CreateDeleteCommand() *discord.Command {
	return discord.NewCommand(
		"delete",
		"Delete a development key",
		"devkey",
		deleteHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "key",
			Description: "The key to delete",
			Required:    true,
		},
	).AsAdminOnly().RequiresDatabase()
}

func deleteHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		raw := strings.TrimSpace(ctx.GetStringOption("key"))

		if err := database.DeleteDevelopmentKey(raw); err != nil {
			if err == database.ErrDevKeyNotFound {
				sendErrorEmbed(ctx, "Not Found", fmt.Sprintf("The key `%s` does not exist.", raw))
				return
			}
			logger.Error(fmt.Sprintf("Error deleting development key: %v", err), "DevKey")
			sendErrorEmbed(ctx, "Internal Error", "Could not delete the key, try again later.")
			return
		}

		embed := &discordgo.MessageEmbed{
			Title:       "🗑️ Key Deleted",
			Description: fmt.Sprintf("The key `%s` was deleted.", raw),
			Color:       0x57F287,
			Footer: &discordgo.MessageEmbedFooter{
				Text: "💫 Valuamor Systems | ValuamorBot Go",
			},
		}
		if err := ctx.ReplyEphemeralEmbed(embed); err != nil {
			logger.Error(fmt.Sprintf("Error sending devkey delete response: %v", err), "DevKey")
		}

		logger.Info(fmt.Sprintf("User %s deleted development key %s", getUserName(ctx), raw), "DevKey")
	}()

	return nil
}

// RegisterDevKeyCommands registers the devkey command group
func RegisterDevKeyCommands(ch *discord.CommandHandler) {
	group := ch.BuildCommandGroup(
		"devkey",
		"Issue and manage development keys",
		CreateCreateCommand(),
		CreateRedeemCommand(),
		CreateListCommand(),
		CreateDeleteCommand(),
	)
	ch.AddGlobalCommand(group)
}
