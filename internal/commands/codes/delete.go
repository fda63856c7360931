package codes

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/database"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/discord"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/errors"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/logger"
)

// CreateDeleteCommand creates the /codes delete subcommand
func CreateDeleteCommand() *discord.Command {
	return discord.NewCommand(
		"delete",
		"Delete a redeem code",
		"codes",
		deleteHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "code",
			Description: "The code to delete",
			Required:    true,
		},
	).AsOwnerOnly().RequiresDatabase()
}

func deleteHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		code := strings.TrimSpace(ctx.GetStringOption("code"))

		if err := database.DeleteRedeemCode(code); err != nil {
			if err == database.ErrCodeNotFound {
				sendErrorEmbed(ctx, "Not Found", fmt.Sprintf("The code `%s` does not exist.", code))
				return
			}
			logger.Error(fmt.Sprintf("Error deleting code %s: %v", code, err), "CodeDelete")
			sendErrorEmbed(ctx, "Internal Error", "Could not delete the code, try again later.")
			return
		}

		embed := &discordgo.MessageEmbed{
			Title:       "🗑️ Code Deleted",
			Description: fmt.Sprintf("The code `%s` was deleted.", code),
			Color:       0x57F287,
			Footer: &discordgo.MessageEmbedFooter{
				Text: "💫 Valuamor Systems | ValuamorBot Go",
			},
		}
		if err := ctx.ReplyEphemeralEmbed(embed); err != nil {
			logger.Error(fmt.Sprintf("Error sending delete response: %v", err), "CodeDelete")
		}

		logger.Info(fmt.Sprintf("User %s deleted code %s", getUserName(ctx), code), "CodeDelete")
	}()

	return nil
}
