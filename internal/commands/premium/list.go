package premium

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/database"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/discord"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/errors"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/logger"
)

const maxListedBuyers = 25

// CreateListCommand creates the /premium list subcommand
func CreateListCommand() *discord.Command {
	return discord.NewCommand(
		"list",
		"List every premium buyer",
		"premium",
		listHandler,
	).AsAdminOnly().RequiresDatabase()
}

func listHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		buyers, err := database.ListPremiumBuyers()
		if err != nil {
			logger.Error(fmt.Sprintf("Error listing premium buyers: %v", err), "PremiumList")
			sendErrorEmbed(ctx, "Internal Error", "Could not load the buyer list, try again later.")
			return
		}

		if len(buyers) == 0 {
			sendSuccessEmbed(ctx, "Premium Buyers", "No premium buyers registered yet.", nil)
			return
		}

		now := time.Now().UnixMilli()
		var lines []string
		for i, b := range buyers {
			if i >= maxListedBuyers {
				lines = append(lines, fmt.Sprintf("... and %d more", len(buyers)-maxListedBuyers))
				break
			}
			lines = append(lines, fmt.Sprintf("<@%s> • %s", b.UserID, b.RemainingTimeAt(now)))
		}

		embed := &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("💎 Premium Buyers (%d)", len(buyers)),
			Description: strings.Join(lines, "\n"),
			Color:       0x5865F2,
			Timestamp:   time.Now().Format(time.RFC3339),
			Footer: &discordgo.MessageEmbedFooter{
				Text: "💫 Valuamor Systems | ValuamorBot Go",
			},
		}
		if err := ctx.ReplyEmbed(embed); err != nil {
			logger.Error(fmt.Sprintf("Error sending buyer list: %v", err), "PremiumList")
		}
	}()

	return nil
}
