package panel

import (
	"github.com/bwmarrin/discordgo"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/discord"
)

var panelChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "Development", Value: "development"},
	{Name: "Development 2", Value: "development2"},
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
