package premium

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/database"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/discord"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/errors"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/logger"
)

// CreateGetStatusCommand creates the /getstatus command
func CreateGetStatusCommand() *discord.Command {
	return discord.NewCommand(
		"getstatus",
		"Check your premium and key status / Cek status premium dan kunci kamu",
		"premium",
		getStatusHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "Check another user instead / Cek pengguna lain",
			Required:    false,
		},
	).RequiresDatabase()
}

func getStatusHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		userID := getUserID(ctx)
		name := getUserName(ctx)
		if target := ctx.GetUserOption("user"); target != nil {
			userID = target.ID
			name = target.Username
		}

		now := time.Now().UnixMilli()

		buyer, err := database.GetPremiumBuyer(userID)
		if err != nil {
			logger.Error(fmt.Sprintf("Error loading premium record for %s: %v", userID, err), "GetStatus")
			sendErrorEmbed(ctx, "Internal Error", "Something went wrong, try again later. / Terjadi kesalahan, coba lagi nanti.")
			return
		}

		key, err := database.GetUserKey(userID)
		if err != nil {
			logger.Error(fmt.Sprintf("Error loading key for %s: %v", userID, err), "GetStatus")
			sendErrorEmbed(ctx, "Internal Error", "Something went wrong, try again later. / Terjadi kesalahan, coba lagi nanti.")
			return
		}

		premiumValue := "Not a premium buyer / Bukan pembeli premium"
		if buyer != nil {
			premiumValue = buyer.RemainingTimeAt(now)
		}

		keyValue := "No key / Tidak ada kunci"
		if key != nil {
			duration := key.Duration
			if duration == "" {
				duration = "Permanent"
			}
			keyValue = fmt.Sprintf("`%s`\nRank: %s | Duration: %s", key.Key, key.Rank, duration)
		}

		embed := &discordgo.MessageEmbed{
			Title: "📊 Status for " + name,
			Color: 0x5865F2,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Premium", Value: premiumValue, Inline: false},
				{Name: "Access Key", Value: keyValue, Inline: false},
			},
			Timestamp: time.Now().Format(time.RFC3339),
			Footer: &discordgo.MessageEmbedFooter{
				Text: "💫 Valuamor Systems | ValuamorBot Go",
			},
		}

		if err := ctx.ReplyEphemeralEmbed(embed); err != nil {
			logger.Error(fmt.Sprintf("Error sending status response: %v", err), "GetStatus")
		}
	}()

	return nil
}
