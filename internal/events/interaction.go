// Package events provides event handlers for interaction events: the public
// panel buttons, the partner application modal and the review buttons.
package events

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	panelcmd "github.com/ValuamorSystems/ValuamorBotGo/internal/commands/panel"
	partnercmd "github.com/ValuamorSystems/ValuamorBotGo/internal/commands/partner"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/database"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/discord"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/events"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/keygen"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/logger"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
	partnerflow "github.com/ValuamorSystems/ValuamorBotGo/pkg/partner"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/premium"
)

var workflow *partnerflow.Workflow

// RegisterInteractionEvents registers all interaction-related event handlers
func RegisterInteractionEvents(client *discord.ExtendedClient) {
	workflow = partnercmd.NewWorkflow(client.Session)
	client.Session.AddHandler(onInteractionCreate)
}

// onInteractionCreate routes component clicks and modal submits. Slash
// commands are already handled by the CommandHandler.
func onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		logger.Debug(fmt.Sprintf("🔘 Component clicked: %s", customID), "Interaction")

		switch {
		case strings.HasPrefix(customID, panelcmd.CustomIDRedeem):
			showRedeemModal(s, i, strings.TrimPrefix(customID, panelcmd.CustomIDRedeem))
		case strings.HasPrefix(customID, panelcmd.CustomIDScript):
			handleScriptButton(s, i, strings.TrimPrefix(customID, panelcmd.CustomIDScript))
		case strings.HasPrefix(customID, panelcmd.CustomIDRole):
			handleRoleButton(s, i, strings.TrimPrefix(customID, panelcmd.CustomIDRole))
		case strings.HasPrefix(customID, panelcmd.CustomIDResetHWID):
			handleResetHWIDButton(s, i, strings.TrimPrefix(customID, panelcmd.CustomIDResetHWID))
		case strings.HasPrefix(customID, panelcmd.CustomIDStats):
			handleStatsButton(s, i, strings.TrimPrefix(customID, panelcmd.CustomIDStats))
		case customID == partnercmd.CustomIDApply:
			showApplyModal(s, i)
		case strings.HasPrefix(customID, partnercmd.CustomIDAcceptBase):
			handlePartnerReview(s, i, strings.TrimPrefix(customID, partnercmd.CustomIDAcceptBase), true)
		case strings.HasPrefix(customID, partnercmd.CustomIDRejectBase):
			handlePartnerReview(s, i, strings.TrimPrefix(customID, partnercmd.CustomIDRejectBase), false)
		default:
			logger.Debug(fmt.Sprintf("Unhandled component: %s", customID), "Interaction")
		}

	case discordgo.InteractionModalSubmit:
		modalID := i.ModalSubmitData().CustomID
		logger.Debug(fmt.Sprintf("📝 Modal submitted: %s", modalID), "Interaction")

		switch {
		case strings.HasPrefix(modalID, panelcmd.ModalRedeemCode):
			handleRedeemModal(s, i, strings.TrimPrefix(modalID, panelcmd.ModalRedeemCode))
		case modalID == partnercmd.ModalApply:
			handleApplyModal(s, i)
		default:
			logger.Debug(fmt.Sprintf("Unhandled modal: %s", modalID), "Interaction")
		}
	}
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error responding to interaction: %v", err), "Interaction")
	}
}

func respondEphemeralEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error responding to interaction: %v", err), "Interaction")
	}
}

func memberHasRole(member *discordgo.Member, roleID string) bool {
	if member == nil || roleID == "" {
		return false
	}
	for _, r := range member.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// loadActivePanel loads a panel and enforces its operational status. A nil
// return means the interaction was already answered.
func loadActivePanel(s *discordgo.Session, i *discordgo.InteractionCreate, panelType string) *models.Panel {
	p, err := database.GetPanel(panelType)
	if err != nil {
		logger.Error(fmt.Sprintf("Error loading panel %s: %v", panelType, err), "Interaction")
		respondEphemeral(s, i, "❌ Something went wrong, try again later. / Terjadi kesalahan, coba lagi nanti.")
		return nil
	}

	switch p.EffectiveStatus() {
	case models.PanelActive:
		if p == nil {
			p = &models.Panel{Type: panelType}
		}
		return p
	case models.PanelMaintenance:
		respondEphemeral(s, i, "🔧 This panel is under maintenance. / Panel ini sedang dalam perbaikan.")
	case models.PanelDown:
		respondEphemeral(s, i, "⛔ This panel is currently down. / Panel ini sedang tidak aktif.")
	default:
		respondEphemeral(s, i, "🚫 This panel is disabled. / Panel ini dinonaktifkan.")
	}
	return nil
}

func showRedeemModal(s *discordgo.Session, i *discordgo.InteractionCreate, panelType string) {
	if loadActivePanel(s, i, panelType) == nil {
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: panelcmd.ModalRedeemCode + panelType,
			Title:    "Redeem Key / Tukarkan Kunci",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    panelcmd.InputRedeemCode,
							Label:       "Your code / Kode kamu",
							Style:       discordgo.TextInputShort,
							Placeholder: "Valuamor-XXX-YYY",
							Required:    true,
							MaxLength:   64,
						},
					},
				},
			},
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error showing redeem modal: %v", err), "Interaction")
	}
}

func handleRedeemModal(s *discordgo.Session, i *discordgo.InteractionCreate, panelType string) {
	user := interactionUser(i)
	code := strings.TrimSpace(modalValue(i, panelcmd.InputRedeemCode))

	p, err := database.GetPanel(panelType)
	if err != nil {
		logger.Error(fmt.Sprintf("Error loading panel %s: %v", panelType, err), "Interaction")
		respondEphemeral(s, i, "❌ Something went wrong, try again later. / Terjadi kesalahan, coba lagi nanti.")
		return
	}

	key, err := database.ConsumeRedeemCode(code, user.ID, i.GuildID, panelType, p.EffectiveScript())
	if err != nil {
		switch err {
		case database.ErrCodeNotFound:
			respondEphemeral(s, i, "❌ That code does not exist. / Kode tersebut tidak ada.")
		case models.ErrCodeAlreadyUsed:
			respondEphemeral(s, i, "❌ This code was already redeemed by another user. / Kode ini sudah ditukarkan oleh pengguna lain.")
		case models.ErrCodeWrongGuild:
			respondEphemeral(s, i, "❌ This code belongs to another server. / Kode ini milik server lain.")
		default:
			logger.Error(fmt.Sprintf("Error redeeming code for %s: %v", user.ID, err), "Interaction")
			respondEphemeral(s, i, "❌ Something went wrong, try again later. / Terjadi kesalahan, coba lagi nanti.")
		}
		return
	}

	events.Publish(events.TypeCodeRedeemed, map[string]interface{}{
		"userId":  user.ID,
		"guildId": i.GuildID,
		"rank":    string(key.Rank),
	})

	respondEphemeral(s, i, fmt.Sprintf("🎉 Code redeemed! Your key: `%s` / Kode ditukarkan! Kuncimu: `%s`", key.Key, key.Key))
	logger.Info(fmt.Sprintf("User %s redeemed a %s code via panel %s", user.Username, key.Rank, panelType), "Interaction")
}

func handleScriptButton(s *discordgo.Session, i *discordgo.InteractionCreate, panelType string) {
	p := loadActivePanel(s, i, panelType)
	if p == nil {
		return
	}

	user := interactionUser(i)
	hasRole := memberHasRole(i.Member, p.RequiredRole)

	active, _, err := database.IsPremiumActive(user.ID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error checking premium for %s: %v", user.ID, err), "Interaction")
		respondEphemeral(s, i, "❌ Something went wrong, try again later. / Terjadi kesalahan, coba lagi nanti.")
		return
	}

	key, err := database.GetUserKey(user.ID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error loading key for %s: %v", user.ID, err), "Interaction")
		respondEphemeral(s, i, "❌ Something went wrong, try again later. / Terjadi kesalahan, coba lagi nanti.")
		return
	}

	granted, err := premium.AuthorizeScriptAccess(hasRole, active, key)
	if err != nil {
		switch err {
		case premium.ErrNoKey:
			respondEphemeral(s, i, "❌ You need to redeem a key first. / Kamu harus menukarkan kunci terlebih dahulu.")
		case premium.ErrPremiumRequired:
			respondEphemeral(s, i, "❌ Your premium has expired. / Premium kamu sudah berakhir.")
		default:
			respondEphemeral(s, i, "❌ Access denied. / Akses ditolak.")
		}
		return
	}

	// Role holders without a key get one issued on the spot.
	if key == nil {
		granted.UserID = user.ID
		granted.Key = keygen.UserKey()
		granted.RedeemedAt = time.Now().UnixMilli()
		granted.GuildID = i.GuildID
		granted.PanelType = panelType
		granted.Script = p.EffectiveScript()
		if _, err := database.SaveUserKey(granted); err != nil {
			logger.Error(fmt.Sprintf("Error saving role access key for %s: %v", user.ID, err), "Interaction")
		}
	}

	script := granted.Script
	if script == "" {
		script = p.EffectiveScript()
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📜 Your Script / Script Kamu",
		Description: fmt.Sprintf("```lua\n%s\n```", script),
		Color:       0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Key", Value: fmt.Sprintf("`%s`", granted.Key), Inline: true},
			{Name: "Rank", Value: string(granted.Rank), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "💫 Valuamor Systems | ValuamorBot Go",
		},
	}
	respondEphemeralEmbed(s, i, embed)
}

func handleRoleButton(s *discordgo.Session, i *discordgo.InteractionCreate, panelType string) {
	p := loadActivePanel(s, i, panelType)
	if p == nil {
		return
	}
	if p.RequiredRole == "" {
		respondEphemeral(s, i, "❌ This panel has no role configured. / Panel ini belum memiliki role.")
		return
	}

	user := interactionUser(i)

	active, _, err := database.IsPremiumActive(user.ID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error checking premium for %s: %v", user.ID, err), "Interaction")
		respondEphemeral(s, i, "❌ Something went wrong, try again later. / Terjadi kesalahan, coba lagi nanti.")
		return
	}

	key, err := database.GetUserKey(user.ID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error loading key for %s: %v", user.ID, err), "Interaction")
		respondEphemeral(s, i, "❌ Something went wrong, try again later. / Terjadi kesalahan, coba lagi nanti.")
		return
	}

	if err := premium.AuthorizeRoleGrant(key, active, i.GuildID); err != nil {
		switch err {
		case premium.ErrNoKey:
			respondEphemeral(s, i, "❌ You need to redeem a key first. / Kamu harus menukarkan kunci terlebih dahulu.")
		case premium.ErrPremiumRequired:
			respondEphemeral(s, i, "❌ Active premium is required. / Premium aktif diperlukan.")
		case premium.ErrKeyBoundElsewhere:
			respondEphemeral(s, i, "❌ Your key belongs to another server. / Kuncimu milik server lain.")
		default:
			respondEphemeral(s, i, "❌ Access denied. / Akses ditolak.")
		}
		return
	}

	if err := s.GuildMemberRoleAdd(i.GuildID, user.ID, p.RequiredRole); err != nil {
		logger.Error(fmt.Sprintf("Error assigning role to %s: %v", user.ID, err), "Interaction")
		respondEphemeral(s, i, "❌ Could not assign the role. Contact an admin. / Tidak bisa memberikan role. Hubungi admin.")
		return
	}

	respondEphemeral(s, i, fmt.Sprintf("🎭 Role granted! / Role diberikan! <@&%s>", p.RequiredRole))
}

func handleResetHWIDButton(s *discordgo.Session, i *discordgo.InteractionCreate, panelType string) {
	if loadActivePanel(s, i, panelType) == nil {
		return
	}

	user := interactionUser(i)

	if err := database.ResetHWID(user.ID); err != nil {
		logger.Error(fmt.Sprintf("Error resetting HWID for %s: %v", user.ID, err), "Interaction")
		respondEphemeral(s, i, "❌ Could not reset your HWID, try again later. / Tidak bisa mereset HWID, coba lagi nanti.")
		return
	}

	respondEphemeral(s, i, "🔄 Your HWID was reset. / HWID kamu sudah direset.")
	logger.Info(fmt.Sprintf("User %s reset their HWID", user.Username), "Interaction")
}

func handleStatsButton(s *discordgo.Session, i *discordgo.InteractionCreate, panelType string) {
	if loadActivePanel(s, i, panelType) == nil {
		return
	}

	user := interactionUser(i)
	now := time.Now().UnixMilli()

	buyer, err := database.GetPremiumBuyer(user.ID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error loading premium record for %s: %v", user.ID, err), "Interaction")
		respondEphemeral(s, i, "❌ Something went wrong, try again later. / Terjadi kesalahan, coba lagi nanti.")
		return
	}

	key, err := database.GetUserKey(user.ID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error loading key for %s: %v", user.ID, err), "Interaction")
		respondEphemeral(s, i, "❌ Something went wrong, try again later. / Terjadi kesalahan, coba lagi nanti.")
		return
	}

	premiumValue := "Not a premium buyer / Bukan pembeli premium"
	if buyer != nil {
		premiumValue = buyer.RemainingTimeAt(now)
	}

	keyValue := "No key / Tidak ada kunci"
	if key != nil {
		keyValue = fmt.Sprintf("`%s` (%s)", key.Key, key.Rank)
	}

	embed := &discordgo.MessageEmbed{
		Title: "📊 Your Stats / Statistik Kamu",
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Premium", Value: premiumValue, Inline: false},
			{Name: "Access Key", Value: keyValue, Inline: false},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "💫 Valuamor Systems | ValuamorBot Go",
		},
	}
	respondEphemeralEmbed(s, i, embed)
}

func showApplyModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: partnercmd.ModalApply,
			Title:    "Partner Application / Pendaftaran Partner",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:  partnercmd.InputServerName,
							Label:     "Server name / Nama server",
							Style:     discordgo.TextInputShort,
							Required:  true,
							MaxLength: 100,
						},
					},
				},
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:  partnercmd.InputReason,
							Label:     "Why partner with us? / Kenapa ingin partner?",
							Style:     discordgo.TextInputParagraph,
							Required:  true,
							MaxLength: 1000,
						},
					},
				},
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    partnercmd.InputDiscordLink,
							Label:       "Invite link / Tautan undangan",
							Style:       discordgo.TextInputShort,
							Placeholder: "https://discord.gg/...",
							Required:    true,
							MaxLength:   100,
						},
					},
				},
			},
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error showing apply modal: %v", err), "Interaction")
	}
}

func handleApplyModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)

	form := partnerflow.SubmitForm{
		ServerName:  strings.TrimSpace(modalValue(i, partnercmd.InputServerName)),
		Reason:      strings.TrimSpace(modalValue(i, partnercmd.InputReason)),
		DiscordLink: strings.TrimSpace(modalValue(i, partnercmd.InputDiscordLink)),
	}

	req, err := workflow.Submit(i.GuildID, user.ID, user.Username, form)
	if err != nil {
		if err == database.ErrReceiverNotConfigured {
			respondEphemeral(s, i, "❌ Partnerships are not set up on this server yet. / Kemitraan belum diatur di server ini.")
			return
		}
		logger.Error(fmt.Sprintf("Error submitting partner request for %s: %v", user.ID, err), "Interaction")
		respondEphemeral(s, i, "❌ Something went wrong, try again later. / Terjadi kesalahan, coba lagi nanti.")
		return
	}

	events.Publish(events.TypePartnerSubmitted, map[string]interface{}{
		"requestId": req.RequestID,
		"guildId":   req.GuildID,
		"userId":    req.UserID,
	})

	respondEphemeral(s, i, fmt.Sprintf("📬 Your request `%s` was submitted! / Permintaanmu `%s` sudah dikirim!", req.RequestID, req.RequestID))
	logger.Info(fmt.Sprintf("User %s submitted partner request %s", user.Username, req.RequestID), "Interaction")
}

// canReview reports whether the clicking user may review the request: the
// configured receiver always can, and so can guild members with manage
// permissions when the buttons are clicked inside the guild.
func canReview(i *discordgo.InteractionCreate, req *models.PartnerRequest) bool {
	user := interactionUser(i)

	cfg, err := database.GetPartnerConfig(req.GuildID)
	if err == nil && cfg != nil && cfg.ReceiverID == user.ID {
		return true
	}

	if i.Member != nil {
		perms := i.Member.Permissions
		if perms&discordgo.PermissionAdministrator != 0 || perms&discordgo.PermissionManageGuild != 0 {
			return true
		}
	}
	return false
}

func handlePartnerReview(s *discordgo.Session, i *discordgo.InteractionCreate, requestID string, accept bool) {
	user := interactionUser(i)

	req, err := database.GetPartnerRequest(requestID)
	if err != nil {
		if err == database.ErrRequestNotFound {
			respondEphemeral(s, i, "❌ That request no longer exists.")
			return
		}
		logger.Error(fmt.Sprintf("Error loading partner request %s: %v", requestID, err), "Interaction")
		respondEphemeral(s, i, "❌ Something went wrong, try again later.")
		return
	}

	if accept {
		reviewed, err := workflow.Accept(requestID, req.GuildID, user.ID, canReview(i, req))
		if err != nil {
			switch err {
			case partnerflow.ErrInsufficientPermission:
				respondEphemeral(s, i, "❌ You are not allowed to review this request.")
			case models.ErrAlreadyReviewed:
				respondEphemeral(s, i, "❌ This request was already reviewed.")
			default:
				logger.Error(fmt.Sprintf("Error accepting partner request %s: %v", requestID, err), "Interaction")
				respondEphemeral(s, i, "❌ Provisioning failed, the request stays pending. Try again.")
			}
			return
		}

		events.Publish(events.TypePartnerAccepted, map[string]interface{}{
			"requestId": reviewed.RequestID,
			"guildId":   reviewed.GuildID,
			"channelId": reviewed.ChannelID,
		})

		respondEphemeral(s, i, fmt.Sprintf("✅ Request `%s` accepted. Channel: <#%s>", reviewed.RequestID, reviewed.ChannelID))
		logger.Success(fmt.Sprintf("Partner request %s accepted by %s", reviewed.RequestID, user.Username), "Interaction")
		return
	}

	if !canReview(i, req) {
		respondEphemeral(s, i, "❌ You are not allowed to review this request.")
		return
	}

	reviewed, err := workflow.Reject(requestID, user.ID)
	if err != nil {
		if err == models.ErrAlreadyReviewed {
			respondEphemeral(s, i, "❌ This request was already reviewed.")
			return
		}
		logger.Error(fmt.Sprintf("Error rejecting partner request %s: %v", requestID, err), "Interaction")
		respondEphemeral(s, i, "❌ Something went wrong, try again later.")
		return
	}

	events.Publish(events.TypePartnerRejected, map[string]interface{}{
		"requestId": reviewed.RequestID,
		"guildId":   reviewed.GuildID,
	})

	respondEphemeral(s, i, fmt.Sprintf("🚫 Request `%s` rejected.", reviewed.RequestID))
	logger.Info(fmt.Sprintf("Partner request %s rejected by %s", reviewed.RequestID, user.Username), "Interaction")
}

// modalValue extracts a text input value from a modal submission.
func modalValue(i *discordgo.InteractionCreate, customID string) string {
	data := i.ModalSubmitData()
	for _, component := range data.Components {
		actionRow, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range actionRow.Components {
			if textInput, ok := c.(*discordgo.TextInput); ok && textInput.CustomID == customID {
				return textInput.Value
			}
		}
	}
	return ""
}
