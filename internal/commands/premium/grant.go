package premium

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/database"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/discord"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/errors"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/events"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/logger"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
)

// CreateGrantCommand creates the /premium grant subcommand
func CreateGrantCommand() *discord.Command {
	return discord.NewCommand(
		"grant",
		"Grant premium time to a user",
		"premium",
		grantHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "User to grant premium to",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "duration",
			Description: "How long the premium lasts",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "1 Day", Value: "1d"},
				{Name: "3 Days", Value: "3d"},
				{Name: "7 Days", Value: "7d"},
				{Name: "1 Month", Value: "1m"},
				{Name: "3 Months", Value: "3m"},
				{Name: "1 Year", Value: "1y"},
				{Name: "Lifetime", Value: "lifetime"},
				{Name: "Custom (seconds)", Value: "custom"},
			},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "seconds",
			Description: "Custom duration in seconds",
			Required:    false,
			MinValue:    float64Ptr(1),
		},
	).AsAdminOnly().RequiresDatabase()
}

// parseDuration maps a duration choice to an accrual unit and value.
func parseDuration(choice string, seconds int64) (models.DurationKind, int64, error) {
	switch choice {
	case "1d":
		return models.DurationDays, 1, nil
	case "3d":
		return models.DurationDays, 3, nil
	case "7d":
		return models.DurationDays, 7, nil
	case "1m":
		return models.DurationMonths, 1, nil
	case "3m":
		return models.DurationMonths, 3, nil
	case "1y":
		return models.DurationYears, 1, nil
	case "lifetime":
		return models.DurationLifetime, 0, nil
	case "custom":
		if seconds <= 0 {
			return "", 0, fmt.Errorf("custom duration requires a positive seconds value")
		}
		return models.DurationSeconds, seconds, nil
	}
	return "", 0, fmt.Errorf("unknown duration choice: %s", choice)
}

func grantHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		target := ctx.GetUserOption("user")
		if target == nil {
			sendErrorEmbed(ctx, "Missing User", "You have to pick a user.")
			return
		}

		kind, value, err := parseDuration(ctx.GetStringOption("duration"), ctx.GetIntOption("seconds"))
		if err != nil {
			sendErrorEmbed(ctx, "Invalid Duration", err.Error())
			return
		}

		record, err := database.GrantPremium(target.ID, kind, value, getUserID(ctx))
		if err != nil {
			logger.Error(fmt.Sprintf("Error granting premium to %s: %v", target.ID, err), "PremiumGrant")
			sendErrorEmbed(ctx, "Internal Error", "Could not grant premium, try again later.")
			return
		}

		now := time.Now().UnixMilli()

		events.Publish(events.TypePremiumGranted, map[string]interface{}{
			"userId":    target.ID,
			"grantedBy": getUserID(ctx),
			"kind":      string(kind),
			"value":     value,
		})

		sendSuccessEmbed(ctx, "Premium Granted", fmt.Sprintf("Premium granted to <@%s>.", target.ID), []*discordgo.MessageEmbedField{
			{Name: "Remaining", Value: record.RemainingTimeAt(now), Inline: true},
			{Name: "Granted By", Value: getUserName(ctx), Inline: true},
		})

		dm := &discordgo.MessageEmbed{
			Title:       "💎 Premium Activated / Premium Aktif",
			Description: "Your premium time was updated. Thank you for supporting us! / Waktu premium kamu diperbarui. Terima kasih atas dukungannya!",
			Color:       0x57F287,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Remaining / Sisa Waktu", Value: record.RemainingTimeAt(now), Inline: false},
			},
			Footer: &discordgo.MessageEmbedFooter{
				Text: "💫 Valuamor Systems | ValuamorBot Go",
			},
		}
		if err := ctx.DM(target.ID, dm); err != nil {
			logger.Warn(fmt.Sprintf("Could not DM premium notice to %s: %v", target.ID, err), "PremiumGrant")
		}

		logger.Success(fmt.Sprintf("Premium granted to %s (%s %d) by %s", target.Username, kind, value, getUserName(ctx)), "PremiumGrant")
	}()

	return nil
}
