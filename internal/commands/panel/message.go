package panel

import (
	"github.com/bwmarrin/discordgo"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
)

// Custom id prefixes routed by the interaction handler. The panel type is
// appended after the prefix, e.g. "panel:redeem:development".
const (
	CustomIDRedeem    = "panel:redeem:"
	CustomIDScript    = "panel:script:"
	CustomIDRole      = "panel:role:"
	CustomIDResetHWID = "panel:hwid:"
	CustomIDStats     = "panel:stats:"

	// ModalRedeemCode is the modal opened by the redeem button; the text
	// input inside carries the same id.
	ModalRedeemCode = "panel:redeem-modal:"
	InputRedeemCode = "redeem-code"
)

// BuildEmbed renders the public panel embed.
func BuildEmbed(p *models.Panel) *discordgo.MessageEmbed {
	title := p.Title
	if title == "" {
		title = "Control Panel"
	}
	description := p.Description
	if description == "" {
		description = "Use the buttons below. / Gunakan tombol di bawah."
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       0x5865F2,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "💫 Valuamor Systems | ValuamorBot Go",
		},
	}
}

// BuildComponents renders the panel button rows.
func BuildComponents(panelType string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Redeem Key",
					Style:    discordgo.SuccessButton,
					CustomID: CustomIDRedeem + panelType,
					Emoji:    &discordgo.ComponentEmoji{Name: "🎟️"},
				},
				discordgo.Button{
					Label:    "Get Script",
					Style:    discordgo.PrimaryButton,
					CustomID: CustomIDScript + panelType,
					Emoji:    &discordgo.ComponentEmoji{Name: "📜"},
				},
				discordgo.Button{
					Label:    "Get Role",
					Style:    discordgo.PrimaryButton,
					CustomID: CustomIDRole + panelType,
					Emoji:    &discordgo.ComponentEmoji{Name: "🎭"},
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Reset HWID",
					Style:    discordgo.SecondaryButton,
					CustomID: CustomIDResetHWID + panelType,
					Emoji:    &discordgo.ComponentEmoji{Name: "🔄"},
				},
				discordgo.Button{
					Label:    "Get Stats",
					Style:    discordgo.SecondaryButton,
					CustomID: CustomIDStats + panelType,
					Emoji:    &discordgo.ComponentEmoji{Name: "📊"},
				},
			},
		},
	}
}
