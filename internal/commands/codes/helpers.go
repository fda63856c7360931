package codes

import (
	"github.com/bwmarrin/discordgo"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/discord"
)

func float64Ptr(f float64) *float64 {
	return &f
}

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

var rankChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "Buyer", Value: "buyer"},
	{Name: "Development", Value: "development"},
	{Name: "Staff", Value: "staff"},
	{Name: "Provider", Value: "provider"},
	{Name: "Meytic", Value: "meytic"},
	{Name: "Hack", Value: "hack"},
}
