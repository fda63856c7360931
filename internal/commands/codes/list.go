package codes

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

const maxListedCodes = 25

// CreateListCommand creates the /codes list subcommand
func CreateListCommand() *discord.Command {
	return discord.NewCommand(
		"list",
		"List every stored redeem code",
		"codes",
		listHandler,
	).AsOwnerOnly().RequiresDatabase()
}

func listHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		all, err := database.ListRedeemCodes()
		if err != nil {
			logger.Error(fmt.Sprintf("Error listing codes: %v", err), "CodeList")
			sendErrorEmbed(ctx, "Internal Error", "Could not load the code list, try again later.")
			return
		}

		if len(all) == 0 {
			sendErrorEmbed(ctx, "No Codes", "There are no redeem codes stored.")
			return
		}

		var lines []string
		for i, code := range all {
			if i >= maxListedCodes {
				lines = append(lines, fmt.Sprintf("... and %d more", len(all)-maxListedCodes))
				break
			}
			state := "available"
			if code.Used {
				state = fmt.Sprintf("used by <@%s>", code.UsedBy)
			}
			lines = append(lines, fmt.Sprintf("`%s` [%s] %s", code.Code, code.Rank, state))
		}

		embed := &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("🎫 Redeem Codes (%d)", len(all)),
			Description: strings.Join(lines, "\n"),
			Color:       0x5865F2,
			Timestamp:   time.Now().Format(time.RFC3339),
			Footer: &discordgo.MessageEmbedFooter{
				Text: "💫 Valuamor Systems | ValuamorBot Go",
			},
		}
		if err := ctx.ReplyEphemeralEmbed(embed); err != nil {
			logger.Error(fmt.Sprintf("Error sending code list: %v", err), "CodeList")
		}
	}()

	return nil
}
