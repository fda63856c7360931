package premium

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/database"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/discord"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/errors"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/events"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/logger"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
)

// CreateRedeemCommand creates the /redeem command
func CreateRedeemCommand() *discord.Command {
	return discord.NewCommand(
		"redeem",
		"Redeem a code for an access key / Tukarkan kode untuk kunci akses",
		"premium",
		redeemHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "code",
			Description: "The code you received / Kode yang kamu terima",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "panel",
			Description: "Which panel the key is for / Panel tujuan kunci",
			Required:    false,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Development", Value: "development"},
				{Name: "Development 2", Value: "development2"},
			},
		},
	).RequiresDatabase()
}

func redeemHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		userID := getUserID(ctx)
		guildID := ctx.Interaction.GuildID
		code := strings.TrimSpace(ctx.GetStringOption("code"))

		panelType := ctx.GetStringOption("panel")
		if panelType == "" {
			panelType = "development"
		}

		panel, err := database.GetPanel(panelType)
		if err != nil {
			logger.Error(fmt.Sprintf("Error loading panel %s: %v", panelType, err), "Redeem")
			sendErrorEmbed(ctx, "Internal Error", "Something went wrong, try again later. / Terjadi kesalahan, coba lagi nanti.")
			return
		}

		key, err := database.ConsumeRedeemCode(code, userID, guildID, panelType, panel.EffectiveScript())
		if err != nil {
			switch err {
			case database.ErrCodeNotFound:
				sendErrorEmbed(ctx, "Invalid Code", "That code does not exist. / Kode tersebut tidak ada.")
			case models.ErrCodeAlreadyUsed:
				sendErrorEmbed(ctx, "Code Already Used", "This code was already redeemed by another user. / Kode ini sudah ditukarkan oleh pengguna lain.")
			case models.ErrCodeWrongGuild:
				sendErrorEmbed(ctx, "Wrong Server", "This code belongs to another server. / Kode ini milik server lain.")
			default:
				logger.Error(fmt.Sprintf("Error redeeming code for %s: %v", userID, err), "Redeem")
				sendErrorEmbed(ctx, "Internal Error", "Something went wrong, try again later. / Terjadi kesalahan, coba lagi nanti.")
			}
			return
		}

		duration := key.Duration
		if duration == "" {
			duration = "Permanent"
		}

		events.Publish(events.TypeCodeRedeemed, map[string]interface{}{
			"userId":  userID,
			"guildId": guildID,
			"rank":    string(key.Rank),
		})

		embed := &discordgo.MessageEmbed{
			Title:       "🎉 Code Redeemed / Kode Ditukarkan",
			Description: "Your access key is ready. Keep it private! / Kunci aksesmu sudah siap. Jaga kerahasiaannya!",
			Color:       0x57F287,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Key", Value: fmt.Sprintf("`%s`", key.Key), Inline: false},
				{Name: "Rank", Value: string(key.Rank), Inline: true},
				{Name: "Duration", Value: duration, Inline: true},
			},
			Timestamp: time.Now().Format(time.RFC3339),
			Footer: &discordgo.MessageEmbedFooter{
				Text: "💫 Valuamor Systems | ValuamorBot Go",
			},
		}
		if err := ctx.ReplyEphemeralEmbed(embed); err != nil {
			logger.Error(fmt.Sprintf("Error sending redeem response: %v", err), "Redeem")
		}

		logger.Info(fmt.Sprintf("User %s redeemed a %s code in guild %s", getUserName(ctx), key.Rank, guildID), "Redeem")
	}()

	return nil
}
