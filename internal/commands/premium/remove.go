package premium

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/database"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/discord"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/errors"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/events"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/logger"
)

// CreateRemoveCommand creates the /premium remove subcommand
func CreateRemoveCommand() *discord.Command {
	return discord.NewCommand(
		"remove",
		"Remove a user's premium entitlement",
		"premium",
		removeHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "User whose premium gets removed",
			Required:    true,
		},
	).AsAdminOnly().RequiresDatabase()
}

func removeHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		target := ctx.GetUserOption("user")
		if target == nil {
			sendErrorEmbed(ctx, "Missing User", "You have to pick a user.")
			return
		}

		if err := database.RevokePremium(target.ID); err != nil {
			if err == database.ErrBuyerNotFound {
				sendErrorEmbed(ctx, "Not Found", fmt.Sprintf("<@%s> is not a premium buyer.", target.ID))
				return
			}
			logger.Error(fmt.Sprintf("Error revoking premium for %s: %v", target.ID, err), "PremiumRemove")
			sendErrorEmbed(ctx, "Internal Error", "Could not remove premium, try again later.")
			return
		}

		events.Publish(events.TypePremiumRevoked, map[string]interface{}{
			"userId":    target.ID,
			"revokedBy": getUserID(ctx),
		})

		sendSuccessEmbed(ctx, "Premium Removed", fmt.Sprintf("Premium removed from <@%s>.", target.ID), nil)
		logger.Info(fmt.Sprintf("Premium removed from %s by %s", target.Username, getUserName(ctx)), "PremiumRemove")
	}()

	return nil
}
