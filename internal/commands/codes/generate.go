package codes

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/database"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/discord"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/errors"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/keygen"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/logger"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
)

// CreateGenerateCommand creates the /codes generate subcommand
func CreateGenerateCommand() *discord.Command {
	return discord.NewCommand(
		"generate",
		"Generate redeem codes",
		"codes",
		generateHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "rank",
			Description: "Rank the code grants",
			Required:    true,
			Choices:     rankChoices,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "duration",
			Description: "Duration label stamped on buyer keys",
			Required:    false,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "7 Days", Value: "7 Days"},
				{Name: "30 Days", Value: "30 Days"},
				{Name: "90 Days", Value: "90 Days"},
				{Name: "1 Year", Value: "1 Year"},
				{Name: "Lifetime", Value: "Lifetime"},
			},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "amount",
			Description: "How many codes to generate (1-10)",
			Required:    false,
			MinValue:    float64Ptr(1),
			MaxValue:    10,
		},
	).AsOwnerOnly().RequiresDatabase()
}

func generateHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		rank := models.Rank(ctx.GetStringOption("rank"))
		duration := ctx.GetStringOption("duration")
		amount := ctx.GetIntOption("amount")
		if amount < 1 {
			amount = 1
		}

		var generated []string
		var failed int
		for i := int64(0); i < amount; i++ {
			code, err := database.CreateRedeemCode(keygen.RedeemCode(), rank, duration, getUserID(ctx))
			if err != nil {
				logger.Error(fmt.Sprintf("Error generating code: %v", err), "CodeGen")
				failed++
				continue
			}
			generated = append(generated, code.Code)
		}

		embed := &discordgo.MessageEmbed{
			Title: "🎫 Redeem Codes Generated",
			Color: 0x57F287,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Rank", Value: string(rank), Inline: true},
			},
			Timestamp: time.Now().Format(time.RFC3339),
			Footer: &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("Generated by %s", getUserName(ctx)),
			},
		}

		if duration != "" {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   "Duration",
				Value:  duration,
				Inline: true,
			})
		}

		if len(generated) > 0 {
			codesText := ""
			for _, code := range generated {
				codesText += fmt.Sprintf("`%s`\n", code)
			}
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   fmt.Sprintf("✅ Codes (%d)", len(generated)),
				Value:  codesText,
				Inline: false,
			})
		}

		if failed > 0 {
			embed.Color = 0xFFA500
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   "❌ Failed",
				Value:  fmt.Sprintf("%d codes could not be stored", failed),
				Inline: false,
			})
		}

		if err := ctx.ReplyEphemeralEmbed(embed); err != nil {
			logger.Error(fmt.Sprintf("Error sending code generation response: %v", err), "CodeGen")
		}

		logger.Info(fmt.Sprintf("User %s generated %d %s codes", getUserName(ctx), len(generated), rank), "CodeGen")
	}()

	return nil
}
